package simhash

import "testing"

func TestNewEngineRejectsNonstandardBitWidth(t *testing.T) {
	if _, err := NewEngine(32, 1); err == nil {
		t.Error("expected ConfigError for bit_width != 64")
	}
	if _, err := NewEngine(128, 1); err == nil {
		t.Error("expected ConfigError for bit_width != 64")
	}
}

func TestComputeDeterministic(t *testing.T) {
	e, err := NewEngine(64, 42)
	if err != nil {
		t.Fatal(err)
	}
	a, err := e.Compute("https://example.com/article?id=1")
	if err != nil {
		t.Fatal(err)
	}
	b, err := e.Compute("https://example.com/article?id=1")
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Errorf("Compute is not deterministic within one engine: %d != %d", a, b)
	}
}

func TestSimilaritySymmetryAndUnit(t *testing.T) {
	e, err := NewEngine(64, 42)
	if err != nil {
		t.Fatal(err)
	}
	a, _ := e.Compute("https://example.com/a")
	b, _ := e.Compute("https://example.com/b")

	if Similarity(a, b) != Similarity(b, a) {
		t.Error("Similarity is not symmetric")
	}
	if Similarity(a, a) != 1.0 {
		t.Errorf("Similarity(a, a) = %v, want 1.0", Similarity(a, a))
	}
}

func TestSimilarityNearDuplicate(t *testing.T) {
	e, err := NewEngine(64, 42)
	if err != nil {
		t.Fatal(err)
	}
	a, err := e.Compute("https://example.com/article")
	if err != nil {
		t.Fatal(err)
	}
	b, err := e.Compute("https://example.com/article?id=1")
	if err != nil {
		t.Fatal(err)
	}
	if sim := Similarity(a, b); sim <= 0.95 {
		t.Errorf("Similarity(article, article?id=1) = %v, want > 0.95", sim)
	}
}

func TestSimilarityDifferentDomains(t *testing.T) {
	e, err := NewEngine(64, 42)
	if err != nil {
		t.Fatal(err)
	}
	a, err := e.Compute("https://example.com/page")
	if err != nil {
		t.Fatal(err)
	}
	b, err := e.Compute("https://other.com/page")
	if err != nil {
		t.Fatal(err)
	}
	if sim := Similarity(a, b); sim >= 0.70 {
		t.Errorf("Similarity(example.com/page, other.com/page) = %v, want < 0.70", sim)
	}
}

func TestEnginesWithDifferentSeedsAreIncomparable(t *testing.T) {
	e1, _ := NewEngine(64, 1)
	e2, _ := NewEngine(64, 2)

	a, _ := e1.Compute("https://example.com/page")
	b, _ := e2.Compute("https://example.com/page")

	if a == b {
		t.Skip("collision across seeds is possible in principle but should not happen for this fixture")
	}
}

func TestHammingDistanceIdentical(t *testing.T) {
	if HammingDistance(42, 42) != 0 {
		t.Error("HammingDistance(x, x) should be 0")
	}
}

func TestComputeParseError(t *testing.T) {
	e, err := NewEngine(64, 1)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := e.Compute("not a url"); err == nil {
		t.Error("expected an error for an unparseable URL")
	}
}
