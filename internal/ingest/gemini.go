package ingest

import (
	"context"
	"errors"
	"fmt"

	_ "embed"

	"github.com/spigell/career-navigator/internal/ai"
)

//go:embed instruction.md
var documentInstruction string

// DocumentConfig keeps document parsing close to deterministic.
var DocumentConfig = ai.GenerationConfig{
	Temperature:     0.3,
	MaxOutputTokens: 4000,
	TopP:            0.9,
	TopK:            40,
}

// GeminiStrategy sends the raw document to a document-understanding model and
// decodes the first JSON object in its answer.
type GeminiStrategy struct {
	switchable
	generator ai.DocumentGenerator
	cfg       ai.GenerationConfig
	accepted  []string
}

func NewGemini(generator ai.DocumentGenerator) *GeminiStrategy {
	return &GeminiStrategy{
		generator: generator,
		cfg:       DocumentConfig,
		accepted:  []string{"application/pdf", "text/plain"},
	}
}

func (s *GeminiStrategy) Name() string { return "gemini" }

func (s *GeminiStrategy) Accepts(mediaType string) bool {
	return acceptsAny(mediaType, s.accepted)
}

func (s *GeminiStrategy) Extract(ctx context.Context, doc Document) (Extraction, error) {
	if s.generator == nil {
		return Extraction{}, errors.New("document generator is not configured")
	}

	raw, err := s.generator.GenerateFromDocument(ctx, documentInstruction, doc.Data, doc.BaseMediaType(), s.cfg)
	if err != nil {
		return Extraction{}, fmt.Errorf("generate from document: %w", err)
	}

	span, err := FirstJSONObject(raw)
	if err != nil {
		return Extraction{}, err
	}

	r, err := decodeResume(span)
	if err != nil {
		return Extraction{}, err
	}

	return Extraction{Text: span, Resume: r}, nil
}

func (s *GeminiStrategy) Status() Status {
	return s.status(s.Name(), map[string]string{"configured": fmt.Sprint(s.generator != nil)})
}
