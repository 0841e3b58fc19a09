package match

import (
	"context"
	"errors"
	"hash/fnv"
	"math"
	"strings"
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spigell/career-navigator/internal/ai"
	"github.com/spigell/career-navigator/internal/nlp"
	"github.com/spigell/career-navigator/internal/resume"
	"github.com/spigell/career-navigator/internal/skills"
)

// bagEmbedder hashes words into a fixed number of buckets, so equal texts get equal vectors.
type bagEmbedder struct {
	calls int
	err   error
}

func (b *bagEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	b.calls++
	if b.err != nil {
		return nil, b.err
	}
	out := make([][]float32, 0, len(texts))
	for _, text := range texts {
		vec := make([]float32, 16)
		for _, w := range strings.Fields(strings.ToLower(text)) {
			h := fnv.New32a()
			_, _ = h.Write([]byte(w))
			vec[h.Sum32()%16]++
		}
		out = append(out, vec)
	}
	return out, nil
}

type fixedEmbedder [][]float32

func (f fixedEmbedder) Embed(context.Context, []string) ([][]float32, error) {
	return f, nil
}

// capitalTagger marks capitalized words as proper nouns, everything else as other.
type capitalTagger struct{}

func (capitalTagger) Tag(text string) ([]nlp.Token, error) {
	var out []nlp.Token
	for _, w := range strings.FieldsFunc(text, func(r rune) bool { return r == ',' || r == ':' || unicode.IsSpace(r) }) {
		pos := nlp.POSOther
		if unicode.IsUpper([]rune(w)[0]) {
			pos = nlp.POSProperNoun
		}
		out = append(out, nlp.Token{Text: w, POS: pos, Stop: nlp.IsStopWord(strings.ToLower(w))})
	}
	return out, nil
}

type stubGenerator struct {
	out    string
	err    error
	prompt string
	cfg    ai.GenerationConfig
}

func (s *stubGenerator) Generate(_ context.Context, prompt string, cfg ai.GenerationConfig) (string, error) {
	s.prompt, s.cfg = prompt, cfg
	return s.out, s.err
}

func newGaps() *GapAnalyzer {
	return NewGapAnalyzer(nlp.NewExtractor(capitalTagger{}), skills.NewNormalizer(nil, 0), 0)
}

func TestScoreIdenticalTexts(t *testing.T) {
	t.Parallel()

	emb := &bagEmbedder{}
	s := NewScorer(emb, Tiers{}, zap.NewNop())

	text := "Senior Go engineer building data pipelines on AWS"
	got, err := s.Score(context.Background(), text, text)
	require.NoError(t, err)

	assert.InDelta(t, 1.0, got.Value, 1e-6)
	assert.Equal(t, FeedbackExcellent, got.Feedback)
	assert.Equal(t, 1, emb.calls)
}

func TestScoreNegativeSimilarity(t *testing.T) {
	t.Parallel()

	s := NewScorer(fixedEmbedder{{1, 0}, {-1, 0}}, Tiers{}, nil)

	got, err := s.Score(context.Background(), "a", "b")
	require.NoError(t, err)
	assert.InDelta(t, -1.0, got.Value, 1e-9)
	assert.Equal(t, FeedbackWeak, got.Feedback)
}

func TestScoreUnavailable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		embedder ai.Embedder
	}{
		{name: "embedder error", embedder: &bagEmbedder{err: context.DeadlineExceeded}},
		{name: "zero vector", embedder: fixedEmbedder{{0, 0}, {1, 0}}},
		{name: "dimension mismatch", embedder: fixedEmbedder{{1, 0}, {1}}},
		{name: "wrong count", embedder: fixedEmbedder{{1, 0}}},
		{name: "no embedder", embedder: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewScorer(tt.embedder, Tiers{}, nil).Score(context.Background(), "a", "b")
			assert.True(t, errors.Is(err, ai.ErrUnavailable), "got %v", err)
		})
	}
}

func TestFeedbackTiers(t *testing.T) {
	t.Parallel()

	tiers := DefaultTiers()
	assert.Equal(t, FeedbackExcellent, tiers.Feedback(0.85))
	assert.Equal(t, FeedbackGood, tiers.Feedback(0.70))
	assert.Equal(t, FeedbackGood, tiers.Feedback(0.849))
	assert.Equal(t, FeedbackWeak, tiers.Feedback(0.1))
	assert.Equal(t, FeedbackWeak, tiers.Feedback(math.Inf(-1)))
}

func TestMissingSkillsScenario(t *testing.T) {
	t.Parallel()

	missing, err := newGaps().Analyze("Skills: Python, SQL", "Looking for Python, AWS")
	require.NoError(t, err)

	assert.Contains(t, missing, "aws")
	assert.NotContains(t, missing, "python")
}

func TestMissingAgainstItselfIsEmpty(t *testing.T) {
	t.Parallel()

	g := newGaps()
	sets := [][]string{
		{},
		{"python"},
		{"aws", "kubernetes", "go", "machine learning"},
		{"bookkeeping", "c++", "c#"},
	}
	for _, set := range sets {
		assert.Empty(t, g.Missing(set, set))
	}
}

func TestMissingKeepsJobOrder(t *testing.T) {
	t.Parallel()

	got := newGaps().Missing([]string{"kubernets"}, []string{"terraform", "kubernetes", "docker"})
	assert.Equal(t, []string{"terraform", "docker"}, got)
}

func TestSkillSetDeduplicatesCanonicals(t *testing.T) {
	t.Parallel()

	got, err := newGaps().SkillSet("Golang Go Kubernetes K8s Python")
	require.NoError(t, err)
	// "Go" is shorter than the minimum keyword length.
	assert.Equal(t, []string{"go", "kubernetes", "python"}, got)
}

func TestOptimize(t *testing.T) {
	t.Parallel()

	gen := &stubGenerator{out: "  Cloud-focused engineer with AWS depth.  "}
	o := NewOptimizer(NewScorer(&bagEmbedder{}, Tiers{}, nil), newGaps(), gen, ai.GenerationConfig{}, nil)

	r := resume.New()
	r.Skills = []resume.Skill{{Name: "Python"}, {Name: "SQL"}}
	r.Experience = []resume.Experience{{Position: "Data Engineer"}}

	report, err := o.Optimize(context.Background(), r, "We want Python and AWS")
	require.NoError(t, err)

	assert.Equal(t, []string{"aws"}, report.MissingSkills)
	assert.Equal(t, []string{
		"Add these skills: aws",
		"Add a professional summary.",
		"Include more relevant skills.",
	}, report.Suggestions)
	assert.Equal(t, "Experienced professional with skills in Python, SQL, seeking a role as Data Engineer.", report.OptimizedSummary)
	assert.Equal(t, "Cloud-focused engineer with AWS depth.", report.ResumeBoostParagraph)
	assert.Contains(t, gen.prompt, "using these skills: aws.")
	assert.Contains(t, gen.prompt, "Job Description: We want Python and AWS")
	assert.Equal(t, BoostConfig, gen.cfg)
}

func TestOptimizeNothingMissing(t *testing.T) {
	t.Parallel()

	gen := &stubGenerator{err: errors.New("must not be called")}
	o := NewOptimizer(NewScorer(&bagEmbedder{}, Tiers{}, nil), newGaps(), gen, ai.GenerationConfig{}, nil)

	r := resume.New()
	r.Summary = "Python developer"
	report, err := o.Optimize(context.Background(), r, "Python")
	require.NoError(t, err)

	assert.Equal(t, noGapParagraph, report.ResumeBoostParagraph)
	assert.Equal(t, "Python developer", report.OptimizedSummary)
	assert.Empty(t, gen.prompt)
}

func TestOptimizeSurfacesUnavailable(t *testing.T) {
	t.Parallel()

	o := NewOptimizer(NewScorer(&bagEmbedder{err: errors.New("quota")}, Tiers{}, nil), newGaps(), nil, ai.GenerationConfig{}, nil)
	_, err := o.Optimize(context.Background(), resume.New(), "Go")
	assert.ErrorIs(t, err, ai.ErrUnavailable)

	r := resume.New()
	r.Summary = "Go developer"
	o = NewOptimizer(NewScorer(&bagEmbedder{}, Tiers{}, nil), newGaps(), &stubGenerator{err: errors.New("quota")}, ai.GenerationConfig{}, nil)
	_, err = o.Optimize(context.Background(), r, "Looking for Terraform")
	assert.ErrorIs(t, err, ai.ErrUnavailable)
}
