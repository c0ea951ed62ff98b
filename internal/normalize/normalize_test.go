package normalize

import (
	"testing"

	"github.com/fathomcrawl/dedupcore/internal/urlinfo"
)

func TestNormalizeScenario1(t *testing.T) {
	n := New(DefaultConfig())
	got, err := n.Normalize("HTTPS://WWW.Example.com:443/Path/../Page?b=2&utm_source=google&a=1#section")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := CanonicalURL("https://example.com/Page?a=1&b=2")
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestNormalizeDefaultPortOnlyDroppedWhenDefault(t *testing.T) {
	n := New(DefaultConfig())

	got, err := n.Normalize("http://example.com:80")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := CanonicalURL("http://example.com/"); got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	got, err = n.Normalize("http://example.com:8080")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := CanonicalURL("http://example.com:8080/"); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestNormalizeTrackingParamRemoval(t *testing.T) {
	n := New(DefaultConfig())

	got, err := n.Normalize("http://example.com/?utm_source=google&q=test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := CanonicalURL("http://example.com/?q=test"); got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	got, err = n.Normalize("http://example.com/?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := CanonicalURL("http://example.com/"); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	n := New(DefaultConfig())
	inputs := []string{
		"HTTPS://WWW.Example.com:443/Path/../Page?b=2&utm_source=google&a=1#section",
		"http://example.com:8080/a/b/c?z=1&y=2",
		"http://example.com",
	}
	for _, in := range inputs {
		once, err := n.Normalize(in)
		if err != nil {
			t.Fatalf("Normalize(%q): %v", in, err)
		}
		twice, err := n.Normalize(string(once))
		if err != nil {
			t.Fatalf("Normalize(%q) (second pass): %v", once, err)
		}
		if once != twice {
			t.Errorf("normalize not idempotent: normalize(%q)=%q, normalize(that)=%q", in, once, twice)
		}
	}
}

func TestNormalizeSchemeSensitivity(t *testing.T) {
	n := New(DefaultConfig())
	http, err := n.Normalize("http://example.com?a=1&b=2")
	if err != nil {
		t.Fatal(err)
	}
	https, err := n.Normalize("https://example.com?b=2&a=1")
	if err != nil {
		t.Fatal(err)
	}
	if http == https {
		t.Error("scheme-differing URLs canonicalized to the same key; scheme must be preserved")
	}
}

func TestNormalizeDomainRuleOverridesPipeline(t *testing.T) {
	n := New(DefaultConfig())
	n.AddDomainRule("video.example", WhitelistRule{AllowedParams: []string{"v"}})

	got, err := n.Normalize("https://www.video.example/watch?v=abc123&session=xyz&utm_source=x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := CanonicalURL("https://www.video.example/watch?v=abc123")
	if got != want {
		t.Errorf("got %q, want %q (domain rule should not have www stripped, since it bypasses the generic pipeline)", got, want)
	}
}

func TestNormalizeFuncRule(t *testing.T) {
	n := New(DefaultConfig())
	n.AddDomainRule("custom.example", FuncRule{Fn: func(p *urlinfo.ParsedURL) string {
		return "custom:" + p.Host + p.Path
	}})

	got, err := n.Normalize("https://custom.example/anything?ignored=1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := CanonicalURL("custom:custom.example/anything"); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestNormalizeParseError(t *testing.T) {
	n := New(DefaultConfig())
	if _, err := n.Normalize("not a url at all"); err == nil {
		t.Error("expected an error for an unparseable/hostless URL")
	}
}
