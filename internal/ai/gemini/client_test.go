package gemini

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/spigell/career-navigator/internal/ai"
)

type generateCall struct {
	model    string
	contents []*genai.Content
	config   *genai.GenerateContentConfig
	deadline bool
}

type fakeModels struct {
	mu       sync.Mutex
	calls    []generateCall
	resp     *genai.GenerateContentResponse
	err      error
	embed    *genai.EmbedContentResponse
	embedErr error
}

func (f *fakeModels) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, hasDeadline := ctx.Deadline()
	f.calls = append(f.calls, generateCall{model: model, contents: contents, config: config, deadline: hasDeadline})
	return f.resp, f.err
}

func (f *fakeModels) EmbedContent(_ context.Context, model string, contents []*genai.Content, _ *genai.EmbedContentConfig) (*genai.EmbedContentResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, generateCall{model: model, contents: contents})
	return f.embed, f.embedErr
}

func textResponse(parts ...string) *genai.GenerateContentResponse {
	content := &genai.Content{}
	for _, p := range parts {
		content.Parts = append(content.Parts, &genai.Part{Text: p})
	}
	return &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{Content: content}}}
}

func TestGenerateJoinsParts(t *testing.T) {
	models := &fakeModels{resp: textResponse("Summary Advice:", "  ", "Be concise.")}
	c := newWithModels(models, Config{Model: "gemini-test", Timeout: time.Second}, zap.NewNop())

	out, err := c.Generate(context.Background(), "  advise me  ", ai.GenerationConfig{
		Temperature:     0.7,
		MaxOutputTokens: 350,
		TopP:            0.9,
		TopK:            40,
		DisableThinking: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "Summary Advice:\nBe concise." {
		t.Fatalf("unexpected output: %q", out)
	}

	if len(models.calls) != 1 {
		t.Fatalf("expected a single call, got %d", len(models.calls))
	}
	call := models.calls[0]
	if call.model != "gemini-test" {
		t.Fatalf("unexpected model: %s", call.model)
	}
	if !call.deadline {
		t.Fatalf("expected the call to carry a deadline")
	}
	if call.contents[0].Parts[0].Text != "advise me" {
		t.Fatalf("expected trimmed prompt, got %q", call.contents[0].Parts[0].Text)
	}
	cfg := call.config
	if cfg.Temperature == nil || *cfg.Temperature != float32(0.7) {
		t.Fatalf("unexpected temperature: %v", cfg.Temperature)
	}
	if cfg.TopK == nil || *cfg.TopK != 40 {
		t.Fatalf("unexpected top-k: %v", cfg.TopK)
	}
	if cfg.MaxOutputTokens != 350 {
		t.Fatalf("unexpected max output tokens: %d", cfg.MaxOutputTokens)
	}
	if cfg.ThinkingConfig == nil || cfg.ThinkingConfig.ThinkingBudget == nil || *cfg.ThinkingConfig.ThinkingBudget != 0 {
		t.Fatalf("expected thinking to be disabled")
	}
}

func TestGenerateDoesNotRetry(t *testing.T) {
	models := &fakeModels{err: genai.APIError{Code: http.StatusInternalServerError, Status: "INTERNAL"}}
	c := newWithModels(models, Config{}, nil)

	if _, err := c.Generate(context.Background(), "prompt", ai.GenerationConfig{}); err == nil {
		t.Fatal("expected error")
	}
	if len(models.calls) != 1 {
		t.Fatalf("expected exactly one call, got %d", len(models.calls))
	}
}

func TestGenerateRejectsEmpty(t *testing.T) {
	c := newWithModels(&fakeModels{resp: textResponse("   ")}, Config{}, nil)

	if _, err := c.Generate(context.Background(), "   ", ai.GenerationConfig{}); err == nil {
		t.Fatal("expected error for empty prompt")
	}
	if _, err := c.Generate(context.Background(), "prompt", ai.GenerationConfig{}); err == nil {
		t.Fatal("expected error for empty response")
	}
}

func TestGenerateFromDocumentAttachesBlob(t *testing.T) {
	models := &fakeModels{resp: textResponse(`{"summary": "x"}`)}
	c := newWithModels(models, Config{DocumentModel: "doc-model"}, nil)

	if _, err := c.GenerateFromDocument(context.Background(), "parse it", []byte("%PDF-1.4"), "", ai.GenerationConfig{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	call := models.calls[0]
	if call.model != "doc-model" {
		t.Fatalf("unexpected model: %s", call.model)
	}
	parts := call.contents[0].Parts
	if len(parts) != 2 || parts[0].Text != "parse it" {
		t.Fatalf("unexpected parts: %+v", parts)
	}
	if parts[1].InlineData == nil || parts[1].InlineData.MIMEType != "application/pdf" || string(parts[1].InlineData.Data) != "%PDF-1.4" {
		t.Fatalf("unexpected inline data: %+v", parts[1].InlineData)
	}

	if _, err := c.GenerateFromDocument(context.Background(), "parse it", nil, "application/pdf", ai.GenerationConfig{}); err == nil {
		t.Fatal("expected error for empty document")
	}
}

func TestDocumentModelDefaults(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{name: "unset", cfg: Config{}, want: defaultModel},
		{name: "follows text model", cfg: Config{Model: "gemini-2.5-pro"}, want: "gemini-2.5-pro"},
		{name: "explicit", cfg: Config{Model: "gemini-2.5-pro", DocumentModel: "doc-model"}, want: "doc-model"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			models := &fakeModels{resp: textResponse(`{}`)}
			c := newWithModels(models, tt.cfg, nil)

			if _, err := c.GenerateFromDocument(context.Background(), "parse it", []byte("%PDF-1.4"), "application/pdf", ai.GenerationConfig{}); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := models.calls[0].model; got != tt.want {
				t.Fatalf("document model = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEmbed(t *testing.T) {
	models := &fakeModels{embed: &genai.EmbedContentResponse{Embeddings: []*genai.ContentEmbedding{
		{Values: []float32{1, 0}},
		{Values: []float32{0, 1}},
	}}}
	c := newWithModels(models, Config{EmbeddingModel: "embed-test"}, nil)

	vectors, err := c.Embed(context.Background(), []string{"resume", "job"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(vectors) != 2 || vectors[1][1] != 1 {
		t.Fatalf("unexpected vectors: %v", vectors)
	}
	if models.calls[0].model != "embed-test" || len(models.calls[0].contents) != 2 {
		t.Fatalf("unexpected embed call: %+v", models.calls[0])
	}
}

func TestEmbedCountMismatch(t *testing.T) {
	models := &fakeModels{embed: &genai.EmbedContentResponse{Embeddings: []*genai.ContentEmbedding{{Values: []float32{1}}}}}
	c := newWithModels(models, Config{}, nil)

	if _, err := c.Embed(context.Background(), []string{"a", "b"}); err == nil {
		t.Fatal("expected error on embedding count mismatch")
	}

	models.embed, models.embedErr = nil, errors.New("boom")
	if _, err := c.Embed(context.Background(), []string{"a"}); err == nil {
		t.Fatal("expected error to be surfaced")
	}
}
