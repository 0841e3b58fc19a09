// Package nlp extracts candidate skill keywords from free text.
package nlp

import (
	"fmt"
	"strings"

	"github.com/jdkato/prose/v2"
)

// Universal part-of-speech tags produced by taggers.
const (
	POSNoun       = "NOUN"
	POSProperNoun = "PROPN"
	POSOther      = "X"
)

// Token is one tagged word.
type Token struct {
	Text string
	POS  string
	Stop bool
}

// Tagger annotates text with part-of-speech tags and stop-word flags.
type Tagger interface {
	Tag(text string) ([]Token, error)
}

// ProseTagger tags English text with the prose averaged-perceptron model.
type ProseTagger struct{}

var _ Tagger = ProseTagger{}

func (ProseTagger) Tag(text string) ([]Token, error) {
	if strings.TrimSpace(text) == "" {
		return []Token{}, nil
	}

	doc, err := prose.NewDocument(text,
		prose.WithExtraction(false),
		prose.WithSegmentation(false),
	)
	if err != nil {
		return nil, fmt.Errorf("tag text: %w", err)
	}

	tokens := doc.Tokens()
	out := make([]Token, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, Token{
			Text: tok.Text,
			POS:  universalTag(tok.Tag),
			Stop: IsStopWord(strings.ToLower(tok.Text)),
		})
	}
	return out, nil
}

// universalTag folds Penn Treebank noun tags into NOUN and PROPN.
func universalTag(penn string) string {
	switch penn {
	case "NN", "NNS":
		return POSNoun
	case "NNP", "NNPS":
		return POSProperNoun
	default:
		return POSOther
	}
}
