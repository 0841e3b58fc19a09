package skills

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRatio(t *testing.T) {
	t.Parallel()

	tests := []struct {
		a, b   string
		expect float64
	}{
		{a: "", b: "", expect: 100},
		{a: "aws", b: "aws", expect: 100},
		{a: "kubernets", b: "kubernetes", expect: 90},
		{a: "abc", b: "", expect: 0},
		{a: "go", b: "js", expect: 0},
	}

	for _, tt := range tests {
		t.Run(tt.a+"/"+tt.b, func(t *testing.T) {
			assert.InDelta(t, tt.expect, Ratio(tt.a, tt.b), 1e-9)
			assert.InDelta(t, Ratio(tt.b, tt.a), Ratio(tt.a, tt.b), 1e-9)
		})
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	n := NewNormalizer(nil, 0)

	tests := []struct {
		token  string
		expect string
	}{
		{token: "AWS", expect: "aws"},
		{token: "  Golang ", expect: "go"},
		{token: "Kubernets", expect: "kubernetes"},
		{token: "ReactJS", expect: "react"},
		{token: "Amazon Web Services", expect: "aws"},
		{token: "Bookkeeping", expect: "bookkeeping"},
		{token: "", expect: ""},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			assert.Equal(t, tt.expect, n.Normalize(tt.token))
		})
	}
}

func TestNormalizeCanonicalIsIdempotent(t *testing.T) {
	t.Parallel()

	n := NewNormalizer(nil, 0)
	for _, canonical := range n.Canonicals() {
		if got := n.Normalize(canonical); got != canonical {
			t.Fatalf("normalize(%q) = %q", canonical, got)
		}
		if got := n.Normalize(n.Normalize(canonical)); got != canonical {
			t.Fatalf("normalize is not stable for %q: %q", canonical, got)
		}
	}
}

func TestDefaultVocabularyVariantsAreUnique(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool)
	for _, e := range DefaultVocabulary {
		if seen[e.Variant] {
			t.Fatalf("duplicate variant %q", e.Variant)
		}
		seen[e.Variant] = true
	}
}

func TestNormalizeTieGoesToFirstEntry(t *testing.T) {
	t.Parallel()

	n := NewNormalizer([]Entry{
		{Variant: "abcd", Canonical: "first"},
		{Variant: "abce", Canonical: "second"},
	}, 70)

	assert.Equal(t, "first", n.Normalize("abcf"))
	assert.InDelta(t, 70, n.Threshold(), 1e-9)
}

func TestNormalizeThresholdIsExclusive(t *testing.T) {
	t.Parallel()

	// "abcd" vs "abce" scores exactly 75.
	n := NewNormalizer([]Entry{{Variant: "abcd", Canonical: "canonical"}}, 75)
	assert.Equal(t, "abce", n.Normalize("abce"))
}
