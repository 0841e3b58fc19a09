package nlp

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// DefaultMinLength is the shortest keyword kept.
const DefaultMinLength = 3

// Extractor pulls noun-like keywords out of free text.
type Extractor struct {
	tagger    Tagger
	minLength int
}

// NewExtractor uses ProseTagger when tagger is nil.
func NewExtractor(tagger Tagger) *Extractor {
	if tagger == nil {
		tagger = ProseTagger{}
	}
	return &Extractor{tagger: tagger, minLength: DefaultMinLength}
}

// Keywords returns lowercased nouns and proper nouns that are not stop words and
// have at least three characters, deduplicated in order of first appearance.
func (e *Extractor) Keywords(text string) ([]string, error) {
	tokens, err := e.tagger.Tag(text)
	if err != nil {
		return nil, fmt.Errorf("extract keywords: %w", err)
	}

	seen := make(map[string]bool)
	out := []string{}
	for _, tok := range tokens {
		if tok.POS != POSNoun && tok.POS != POSProperNoun {
			continue
		}
		word := strings.ToLower(strings.TrimSpace(tok.Text))
		if tok.Stop || IsStopWord(word) || utf8.RuneCountInString(word) < e.minLength {
			continue
		}
		if seen[word] {
			continue
		}
		seen[word] = true
		out = append(out, word)
	}
	return out, nil
}
