// Package skills resolves skill spellings to canonical names with fuzzy matching.
package skills

import "strings"

// DefaultThreshold is the minimum ratio, exclusive, for a vocabulary match.
const DefaultThreshold = 85.0

// Normalizer maps raw tokens to canonical skill names. It is immutable and safe for
// concurrent use.
type Normalizer struct {
	entries   []Entry
	threshold float64
}

// NewNormalizer uses DefaultVocabulary when entries is empty and DefaultThreshold
// when threshold is not positive.
func NewNormalizer(entries []Entry, threshold float64) *Normalizer {
	if len(entries) == 0 {
		entries = DefaultVocabulary
	}
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	normalized := make([]Entry, 0, len(entries))
	for _, e := range entries {
		variant := strings.ToLower(strings.TrimSpace(e.Variant))
		if variant == "" {
			continue
		}
		normalized = append(normalized, Entry{Variant: variant, Canonical: strings.TrimSpace(e.Canonical)})
	}

	return &Normalizer{entries: normalized, threshold: threshold}
}

// Normalize returns the canonical name of the closest vocabulary entry when its ratio
// exceeds the threshold, else the lowercased token. Ties go to the earlier entry.
func (n *Normalizer) Normalize(token string) string {
	token = strings.ToLower(strings.TrimSpace(token))
	if token == "" {
		return ""
	}

	best, bestScore := "", -1.0
	for _, e := range n.entries {
		score := Ratio(token, e.Variant)
		if score > bestScore {
			best, bestScore = e.Canonical, score
		}
		if score == 100 {
			break
		}
	}

	if bestScore > n.threshold {
		return best
	}
	return token
}

// Canonicals returns the distinct canonical names in declaration order.
func (n *Normalizer) Canonicals() []string {
	seen := make(map[string]bool)
	var out []string
	for _, e := range n.entries {
		if !seen[e.Canonical] {
			seen[e.Canonical] = true
			out = append(out, e.Canonical)
		}
	}
	return out
}

// Threshold returns the acceptance threshold in use.
func (n *Normalizer) Threshold() float64 {
	return n.threshold
}
