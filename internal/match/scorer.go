// Package match scores a résumé against a job description and lists the skill gap.
package match

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/career-navigator/internal/ai"
	"github.com/spigell/career-navigator/internal/logger"
)

const (
	FeedbackExcellent = "Excellent match"
	FeedbackGood      = "Good match with minor improvements"
	FeedbackWeak      = "Needs significant improvements"

	DefaultExcellent = 0.85
	DefaultGood      = 0.70
)

// Tiers are the lower bounds of the top two feedback categories.
type Tiers struct {
	Excellent float64 `mapstructure:"excellent"`
	Good      float64 `mapstructure:"good"`
}

// DefaultTiers returns the stock thresholds.
func DefaultTiers() Tiers {
	return Tiers{Excellent: DefaultExcellent, Good: DefaultGood}
}

// Feedback labels a similarity score. Negative scores count as zero.
func (t Tiers) Feedback(score float64) string {
	score = math.Max(0, score)
	switch {
	case score >= t.Excellent:
		return FeedbackExcellent
	case score >= t.Good:
		return FeedbackGood
	default:
		return FeedbackWeak
	}
}

// Similarity is a scored comparison. Value is the raw cosine similarity and may be
// slightly negative; Feedback is computed from the value clipped at zero.
type Similarity struct {
	Value    float64 `json:"score"`
	Feedback string  `json:"feedback"`
}

// Scorer compares texts through an embedding service.
type Scorer struct {
	embedder ai.Embedder
	tiers    Tiers
	logger   *zap.Logger
}

func NewScorer(embedder ai.Embedder, tiers Tiers, log *zap.Logger) *Scorer {
	if tiers.Excellent <= 0 && tiers.Good <= 0 {
		tiers = DefaultTiers()
	}
	return &Scorer{embedder: embedder, tiers: tiers, logger: logger.WithFields(log)}
}

// Score embeds both texts in one request and returns their cosine similarity.
// Every failure wraps ai.ErrUnavailable.
func (s *Scorer) Score(ctx context.Context, resumeText, jobText string) (Similarity, error) {
	if s.embedder == nil {
		return Similarity{}, ai.Unavailable("score", errors.New("no embedding service configured"))
	}

	start := time.Now()
	vectors, err := s.embedder.Embed(ctx, []string{resumeText, jobText})
	if err != nil {
		return Similarity{}, ai.Unavailable("score", err)
	}
	if len(vectors) != 2 {
		return Similarity{}, ai.Unavailable("score", fmt.Errorf("expected 2 embeddings, got %d", len(vectors)))
	}

	value, err := Cosine(vectors[0], vectors[1])
	if err != nil {
		return Similarity{}, ai.Unavailable("score", err)
	}

	result := Similarity{Value: value, Feedback: s.tiers.Feedback(value)}
	s.logger.Debug("similarity scored",
		zap.Float64("score", value),
		zap.String("feedback", result.Feedback),
		zap.Duration("duration", time.Since(start)),
	)
	return result, nil
}

// Cosine returns the cosine similarity of a and b.
func Cosine(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("embedding dimensions differ: %d and %d", len(a), len(b))
	}

	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0, errors.New("zero-length embedding vector")
	}

	// Rounding can push identical vectors slightly past 1.
	return math.Max(-1, math.Min(1, dot/(math.Sqrt(na)*math.Sqrt(nb)))), nil
}
