package normalize

import (
	"sort"
	"strings"

	"github.com/fathomcrawl/dedupcore/internal/urlinfo"
)

// DomainRule produces a canonical string directly from a parsed URL,
// bypassing the generic normalization pipeline entirely (spec §3, §4.1
// step 2). It is a closed variant plus one extension point, per the §9
// design note: a map of heap-allocated closures is replaceable by a small
// interface so the hot path dispatches on a concrete type instead of an
// indirect call through an arbitrary closure.
type DomainRule interface {
	Canonicalize(p *urlinfo.ParsedURL) string
}

// WhitelistRule keeps the scheme, host and path unchanged but restricts the
// query string to an explicit set of allowed keys, dropping everything
// else (session ids, recommendation noise, and similar per-visit cruft
// typical of video-hosting and media domains where only one or two
// parameters — e.g. a video id — identify the resource).
type WhitelistRule struct {
	AllowedParams []string
}

// Canonicalize implements DomainRule.
func (r WhitelistRule) Canonicalize(p *urlinfo.ParsedURL) string {
	allowed := make(map[string]struct{}, len(r.AllowedParams))
	for _, k := range r.AllowedParams {
		allowed[k] = struct{}{}
	}

	var kept []urlinfo.QueryPair
	for _, qp := range p.QueryPairs {
		if _, ok := allowed[qp.Key]; ok {
			kept = append(kept, qp)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool { return kept[i].Key < kept[j].Key })

	var b strings.Builder
	b.WriteString(p.Scheme)
	b.WriteString("://")
	b.WriteString(p.Host)
	writePath(&b, p.Path)
	writeQuery(&b, kept)
	return b.String()
}

// FuncRule wraps a user-supplied canonicalization function, the
// "user-supplied" variant of the tagged enum (§9).
type FuncRule struct {
	Fn func(p *urlinfo.ParsedURL) string
}

// Canonicalize implements DomainRule.
func (r FuncRule) Canonicalize(p *urlinfo.ParsedURL) string {
	return r.Fn(p)
}
