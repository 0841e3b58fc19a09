package ai

import (
	"context"
	"errors"
	"fmt"
)

// ErrUnavailable marks a failed call to an external model. Scoring and advice have
// no fallback, so callers surface it as "unavailable" instead of a zero value.
var ErrUnavailable = errors.New("ai service unavailable")

// GenerationConfig bounds a text generation request.
type GenerationConfig struct {
	Temperature     float64
	MaxOutputTokens int
	TopP            float64
	TopK            int
	// DisableThinking turns off model-side reasoning budgets where supported.
	DisableThinking bool
}

// Generator produces free text for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string, cfg GenerationConfig) (string, error)
}

// DocumentGenerator produces free text for an instruction plus an attached document.
type DocumentGenerator interface {
	GenerateFromDocument(ctx context.Context, instruction string, data []byte, mediaType string, cfg GenerationConfig) (string, error)
}

// Embedder maps texts to fixed-length vectors, one per input, in input order.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// Unavailable wraps err so that errors.Is(err, ErrUnavailable) holds.
func Unavailable(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrUnavailable) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %w", op, ErrUnavailable, err)
}
