// Package normalize implements C2, the URL canonicalizer: it maps a raw URL
// string to a single canonical byte string (spec §4.1), used as the
// deduplication key by the Bloom filter and as SimHash's feature source.
package normalize

import (
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/fathomcrawl/dedupcore/internal/urlinfo"
)

// CanonicalURL is the immutable output of Normalize. Equality is byte
// equality, so it is represented as a plain Go string.
type CanonicalURL string

// Normalizer canonicalizes raw URL strings according to a fixed Config. It
// is safe for unbounded concurrent use once constructed: the only mutable
// state (tracking params, domain rules) is guarded by a mutex and is meant
// to be configured once at startup, not contended on the hot path.
type Normalizer struct {
	cfg Config

	mu             sync.RWMutex
	trackingParams map[string]struct{}
	domainRules    map[string]DomainRule
}

// New creates a Normalizer with the given Config and the default tracking
// parameter set (spec §6).
func New(cfg Config) *Normalizer {
	n := &Normalizer{
		cfg:            cfg,
		trackingParams: make(map[string]struct{}, len(DefaultTrackingParams)),
		domainRules:    make(map[string]DomainRule),
	}
	for _, k := range DefaultTrackingParams {
		n.trackingParams[k] = struct{}{}
	}
	return n
}

// AddTrackingParam registers an additional query-parameter key to strip
// during normalization.
func (n *Normalizer) AddTrackingParam(key string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.trackingParams[key] = struct{}{}
}

// AddDomainRule registers a DomainRule for a registrable domain. When
// present, it replaces all other normalization for URLs on that domain.
func (n *Normalizer) AddDomainRule(domain string, rule DomainRule) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.domainRules[domain] = rule
}

// Normalize canonicalizes raw per spec §4.1's seven-step procedure.
func (n *Normalizer) Normalize(raw string) (CanonicalURL, error) {
	p, err := urlinfo.Parse(raw)
	if err != nil {
		return "", err
	}

	if rule, ok := n.lookupDomainRule(p.Domain); ok {
		return CanonicalURL(rule.Canonicalize(p)), nil
	}

	var b strings.Builder

	scheme := p.Scheme
	if n.cfg.LowercaseScheme {
		scheme = strings.ToLower(scheme)
	}
	b.WriteString(scheme)
	b.WriteString("://")

	host := p.Host
	if n.cfg.LowercaseHost {
		host = strings.ToLower(host)
	}
	if n.cfg.RemoveWWW && strings.HasPrefix(host, "www.") {
		host = host[len("www."):]
	}
	b.WriteString(host)

	if p.Port >= 0 {
		defaultPort, known := defaultPorts[scheme]
		suppress := n.cfg.RemoveDefaultPort && known && defaultPort == p.Port
		if !suppress {
			b.WriteByte(':')
			b.WriteString(strconv.Itoa(p.Port))
		}
	}

	writePath(&b, p.Path)

	kept := n.filterTrackingParams(p.QueryPairs)
	if n.cfg.SortQueryParams {
		sort.SliceStable(kept, func(i, j int) bool { return kept[i].Key < kept[j].Key })
	}
	writeQuery(&b, kept)

	// Fragment: never emitted when RemoveFragment; the non-default
	// behavior isn't specified by spec.md beyond that flag's name, so
	// a disabled flag simply re-attaches the original fragment.
	if !n.cfg.RemoveFragment && p.Fragment != "" {
		b.WriteByte('#')
		b.WriteString(p.Fragment)
	}

	return CanonicalURL(b.String()), nil
}

func (n *Normalizer) lookupDomainRule(domain string) (DomainRule, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	rule, ok := n.domainRules[domain]
	return rule, ok
}

func (n *Normalizer) filterTrackingParams(pairs []urlinfo.QueryPair) []urlinfo.QueryPair {
	if len(pairs) == 0 {
		return nil
	}
	n.mu.RLock()
	defer n.mu.RUnlock()

	kept := make([]urlinfo.QueryPair, 0, len(pairs))
	for _, qp := range pairs {
		if _, tracked := n.trackingParams[qp.Key]; tracked {
			continue
		}
		kept = append(kept, qp)
	}
	return kept
}

// writePath emits the path with any trailing "/" trimmed, unless the path
// is exactly "/". Shared by the generic pipeline and DomainRule
// implementations so both honor the same trailing-slash rule.
func writePath(b *strings.Builder, p string) {
	if p != "/" {
		p = strings.TrimRight(p, "/")
		if p == "" {
			p = "/"
		}
	}
	b.WriteString(p)
}

// writeQuery emits "?k1=v1&k2=v2..." for a non-empty pair list, or nothing
// at all when every pair was removed.
func writeQuery(b *strings.Builder, pairs []urlinfo.QueryPair) {
	if len(pairs) == 0 {
		return
	}
	b.WriteByte('?')
	for i, qp := range pairs {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(qp.Key)
		b.WriteByte('=')
		b.WriteString(qp.Value)
	}
}
