package ollama

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
	"go.uber.org/zap"

	"github.com/spigell/career-navigator/internal/ai"
)

type stubEmbedder struct {
	vectors [][]float32
	err     error
	texts   []string
}

func (s *stubEmbedder) CreateEmbedding(_ context.Context, texts []string) ([][]float32, error) {
	s.texts = texts
	return s.vectors, s.err
}

func TestGenerateAppliesOptions(t *testing.T) {
	t.Parallel()

	var (
		gotPrompt  string
		gotOptions llms.CallOptions
		deadline   bool
	)
	generate := func(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
		_, deadline = ctx.Deadline()
		gotPrompt = prompt
		for _, opt := range options {
			opt(&gotOptions)
		}
		return "  Summary Advice: tighten it.  ", nil
	}

	c := newClient(generate, nil, Config{Model: "llama-test"}, zap.NewNop())
	out, err := c.Generate(context.Background(), " advise ", ai.GenerationConfig{
		Temperature:     0.7,
		MaxOutputTokens: 350,
		TopP:            0.9,
		TopK:            40,
	})
	require.NoError(t, err)

	assert.Equal(t, "Summary Advice: tighten it.", out)
	assert.Equal(t, "advise", gotPrompt)
	assert.True(t, deadline)
	assert.InDelta(t, 0.7, gotOptions.Temperature, 1e-9)
	assert.Equal(t, 350, gotOptions.MaxTokens)
	assert.InDelta(t, 0.9, gotOptions.TopP, 1e-9)
	assert.Equal(t, 40, gotOptions.TopK)
	assert.Equal(t, "llama-test", c.Model())
}

func TestGenerateErrors(t *testing.T) {
	t.Parallel()

	failing := func(context.Context, string, ...llms.CallOption) (string, error) {
		return "", errors.New("connection refused")
	}
	empty := func(context.Context, string, ...llms.CallOption) (string, error) {
		return " ", nil
	}

	_, err := newClient(failing, nil, Config{}, nil).Generate(context.Background(), "prompt", ai.GenerationConfig{})
	assert.ErrorContains(t, err, "connection refused")

	_, err = newClient(empty, nil, Config{}, nil).Generate(context.Background(), "prompt", ai.GenerationConfig{})
	assert.Error(t, err)

	_, err = newClient(empty, nil, Config{}, nil).Generate(context.Background(), "  ", ai.GenerationConfig{})
	assert.Error(t, err)
}

func TestEmbed(t *testing.T) {
	t.Parallel()

	emb := &stubEmbedder{vectors: [][]float32{{1, 0}, {0, 1}}}
	c := newClient(nil, emb, Config{}, nil)

	vectors, err := c.Embed(context.Background(), []string{"resume", "job"})
	require.NoError(t, err)
	assert.Len(t, vectors, 2)
	assert.Equal(t, []string{"resume", "job"}, emb.texts)

	emb.vectors = [][]float32{{1}}
	_, err = c.Embed(context.Background(), []string{"resume", "job"})
	assert.Error(t, err)

	emb.err = errors.New("model not found")
	_, err = c.Embed(context.Background(), []string{"resume"})
	assert.ErrorContains(t, err, "model not found")
}
