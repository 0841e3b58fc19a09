package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/spigell/career-navigator/internal/ai"
	"github.com/spigell/career-navigator/internal/logger"
	"github.com/spigell/career-navigator/internal/utils"
)

const (
	Provider = "gemini"

	defaultModel          = "gemini-2.5-flash"
	defaultEmbeddingModel = "text-embedding-004"
	defaultTimeout        = 60 * time.Second
	defaultMaxLogLength   = 200
)

// modelsAPI is the part of genai.Models the client relies on.
type modelsAPI interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
	EmbedContent(ctx context.Context, model string, contents []*genai.Content, config *genai.EmbedContentConfig) (*genai.EmbedContentResponse, error)
}

// Config selects models and limits for the Gemini backend.
type Config struct {
	APIKey         string
	Model          string
	DocumentModel  string
	EmbeddingModel string
	Timeout        time.Duration
	MaxLogLength   int
}

// Client wraps the Google GenAI client. It serves text generation, document
// understanding and embeddings, and is safe for concurrent use.
type Client struct {
	models         modelsAPI
	model          string
	documentModel  string
	embeddingModel string
	timeout        time.Duration
	maxLogLen      int
	logger         *zap.Logger
}

var (
	_ ai.Generator         = (*Client)(nil)
	_ ai.DocumentGenerator = (*Client)(nil)
	_ ai.Embedder          = (*Client)(nil)
)

// New creates a Client configured for the Gemini API backend.
func New(ctx context.Context, cfg Config, log *zap.Logger) (*Client, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return newWithModels(client.Models, cfg, log), nil
}

func newWithModels(models modelsAPI, cfg Config, log *zap.Logger) *Client {
	c := &Client{
		models:         models,
		model:          strings.TrimSpace(cfg.Model),
		documentModel:  strings.TrimSpace(cfg.DocumentModel),
		embeddingModel: strings.TrimSpace(cfg.EmbeddingModel),
		timeout:        cfg.Timeout,
		maxLogLen:      cfg.MaxLogLength,
	}
	if c.model == "" {
		c.model = defaultModel
	}
	// Documents go to the text model unless a separate one is configured.
	if c.documentModel == "" {
		c.documentModel = c.model
	}
	if c.embeddingModel == "" {
		c.embeddingModel = defaultEmbeddingModel
	}
	if c.timeout <= 0 {
		c.timeout = defaultTimeout
	}
	if c.maxLogLen <= 0 {
		c.maxLogLen = defaultMaxLogLength
	}
	c.logger = logger.WithCommonFields(log, Provider, c.model)
	return c
}

// Generate sends the prompt to Gemini and returns the textual response.
func (c *Client) Generate(ctx context.Context, prompt string, cfg ai.GenerationConfig) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", errors.New("prompt must not be empty")
	}

	return c.generateContent(ctx, c.model, genai.Text(prompt), cfg)
}

// GenerateFromDocument sends the instruction together with the raw document bytes.
func (c *Client) GenerateFromDocument(ctx context.Context, instruction string, data []byte, mediaType string, cfg ai.GenerationConfig) (string, error) {
	if len(data) == 0 {
		return "", errors.New("document must not be empty")
	}
	if strings.TrimSpace(mediaType) == "" {
		mediaType = "application/pdf"
	}

	contents := []*genai.Content{{
		Role: genai.RoleUser,
		Parts: []*genai.Part{
			{Text: instruction},
			{InlineData: &genai.Blob{MIMEType: mediaType, Data: data}},
		},
	}}

	return c.generateContent(ctx, c.documentModel, contents, cfg)
}

// Embed returns one embedding per text using a single request.
func (c *Client) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	contents := make([]*genai.Content, 0, len(texts))
	for _, text := range texts {
		contents = append(contents, &genai.Content{
			Role:  genai.RoleUser,
			Parts: []*genai.Part{{Text: text}},
		})
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.models.EmbedContent(ctx, c.embeddingModel, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("embed content: %w", err)
	}
	if resp == nil || len(resp.Embeddings) != len(texts) {
		return nil, fmt.Errorf("embed content: expected %d embeddings", len(texts))
	}

	vectors := make([][]float32, 0, len(resp.Embeddings))
	for i, emb := range resp.Embeddings {
		if emb == nil || len(emb.Values) == 0 {
			return nil, fmt.Errorf("embed content: empty embedding at index %d", i)
		}
		vectors = append(vectors, emb.Values)
	}

	c.logger.Debug("gemini embed content response",
		zap.String("embedding_model", c.embeddingModel),
		zap.Int("count", len(vectors)),
		zap.Int("dimensions", len(vectors[0])),
	)

	return vectors, nil
}

func (c *Client) generateContent(ctx context.Context, model string, contents []*genai.Content, cfg ai.GenerationConfig) (string, error) {
	if c == nil || c.models == nil {
		return "", errors.New("gemini client is not initialized")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	c.logger.Debug("gemini generate content request",
		zap.String("request_model", model),
		zap.Int("prompt_length", promptLength(contents)),
		zap.String("prompt_preview", utils.TruncateForLog(firstText(contents), c.maxLogLen)),
	)

	resp, err := c.models.GenerateContent(ctx, model, contents, generateConfig(cfg))
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	output := strings.TrimSpace(builder.String())
	if output == "" {
		return "", errors.New("gemini api returned empty response")
	}

	c.logger.Debug("gemini generate content response",
		zap.Int("response_length", utf8.RuneCountInString(output)),
		zap.String("response_preview", utils.TruncateForLog(output, c.maxLogLen)),
	)

	return output, nil
}

func generateConfig(cfg ai.GenerationConfig) *genai.GenerateContentConfig {
	out := &genai.GenerateContentConfig{}
	if cfg.Temperature > 0 {
		out.Temperature = genai.Ptr(float32(cfg.Temperature))
	}
	if cfg.TopP > 0 {
		out.TopP = genai.Ptr(float32(cfg.TopP))
	}
	if cfg.TopK > 0 {
		out.TopK = genai.Ptr(float32(cfg.TopK))
	}
	if cfg.MaxOutputTokens > 0 {
		out.MaxOutputTokens = int32(cfg.MaxOutputTokens)
	}
	if cfg.DisableThinking {
		out.ThinkingConfig = &genai.ThinkingConfig{ThinkingBudget: genai.Ptr(int32(0))}
	}
	return out
}

func firstText(contents []*genai.Content) string {
	for _, content := range contents {
		if content == nil {
			continue
		}
		for _, part := range content.Parts {
			if part != nil && part.Text != "" {
				return part.Text
			}
		}
	}
	return ""
}

func promptLength(contents []*genai.Content) int {
	total := 0
	for _, content := range contents {
		if content == nil {
			continue
		}
		for _, part := range content.Parts {
			if part == nil {
				continue
			}
			total += utf8.RuneCountInString(part.Text)
		}
	}
	return total
}

func (c *Client) Model() string {
	if c == nil {
		return ""
	}
	return c.model
}
