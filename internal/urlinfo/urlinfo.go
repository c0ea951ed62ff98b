// Package urlinfo is the URL-parsing boundary (C1) consumed by the
// normalizer and the SimHash engine. It is a thin wrapper over net/url that
// adds the two pieces of structure the core actually needs on top of a
// syntactic parse: IDN-normalized hosts and a registrable domain, so that
// neither the normalizer nor the SimHash engine has to reach for
// golang.org/x/net directly.
package urlinfo

import (
	"net/url"
	"path"
	"strconv"
	"strings"

	"golang.org/x/net/idna"
	"golang.org/x/net/publicsuffix"

	"github.com/fathomcrawl/dedupcore/internal/xerrors"
)

// QueryPair is a single decoded query-string key/value, preserving the
// textual order it appeared in so callers that want original-order
// semantics (NormalizerConfig.SortQueryParams == false) can honor it;
// net/url.Values is a map and cannot preserve this.
type QueryPair struct {
	Key   string
	Value string
}

// ParsedURL is the structure C2/C4 consume. Port is -1 when no port was
// explicit in the raw URL.
type ParsedURL struct {
	Scheme     string
	Host       string
	Port       int
	Path       string
	QueryPairs []QueryPair
	Fragment   string
	// Domain is the registrable domain ("example.com" for
	// "sub.example.com"), falling back to Host when the public suffix
	// list has no match (localhost, bare IPs, single-label hosts).
	Domain string
}

// Parse parses raw into a ParsedURL, resolving dot-segments in the path and
// IDN-normalizing the host. It requires at minimum a scheme and a host;
// anything less is a ParseError, per spec: canonicalization needs both to
// produce a stable key.
func Parse(raw string) (*ParsedURL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, &xerrors.ParseError{URL: raw, Err: err}
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, &xerrors.ParseError{URL: raw, Err: errMissingSchemeOrHost}
	}

	host, err := normalizeHost(u.Hostname())
	if err != nil {
		return nil, &xerrors.ParseError{URL: raw, Err: err}
	}

	port := -1
	if p := u.Port(); p != "" {
		n, convErr := strconv.Atoi(p)
		if convErr != nil {
			return nil, &xerrors.ParseError{URL: raw, Err: convErr}
		}
		port = n
	}

	domain, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		// No match in the public suffix list (localhost, bare IP,
		// single-label host): the host itself is the best available
		// domain identifier for DomainRuleMap lookups.
		domain = host
	}

	return &ParsedURL{
		Scheme:     strings.ToLower(u.Scheme),
		Host:       host,
		Port:       port,
		Path:       path.Clean("/" + u.EscapedPath()),
		QueryPairs: parseQuery(u.RawQuery),
		Fragment:   u.Fragment,
		Domain:     domain,
	}, nil
}

func normalizeHost(host string) (string, error) {
	host = strings.ToLower(host)
	ascii, err := idna.Lookup.ToASCII(host)
	if err != nil {
		// Not every host that net/url accepts is a valid IDN label
		// (e.g. plain IPv4/IPv6 literals); fall back to the lowercased
		// host rather than failing the whole parse over it.
		return host, nil
	}
	return ascii, nil
}

// parseQuery decodes a raw query string into ordered key/value pairs,
// preserving appearance order and duplicate keys, unlike url.Values.
func parseQuery(raw string) []QueryPair {
	if raw == "" {
		return nil
	}
	var pairs []QueryPair
	for _, part := range strings.Split(raw, "&") {
		if part == "" {
			continue
		}
		key, value, _ := strings.Cut(part, "=")
		dk, err := url.QueryUnescape(key)
		if err != nil {
			dk = key
		}
		dv, err := url.QueryUnescape(value)
		if err != nil {
			dv = value
		}
		pairs = append(pairs, QueryPair{Key: dk, Value: dv})
	}
	return pairs
}

var errMissingSchemeOrHost = missingSchemeOrHostError{}

type missingSchemeOrHostError struct{}

func (missingSchemeOrHostError) Error() string { return "url missing scheme or host" }
