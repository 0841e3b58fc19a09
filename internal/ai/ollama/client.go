package ollama

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"go.uber.org/zap"

	"github.com/spigell/career-navigator/internal/ai"
	"github.com/spigell/career-navigator/internal/logger"
	"github.com/spigell/career-navigator/internal/utils"
)

const (
	Provider = "ollama"

	defaultServerURL      = "http://localhost:11434"
	defaultModel          = "llama3.1"
	defaultEmbeddingModel = "nomic-embed-text:latest"
	defaultTimeout        = 120 * time.Second
	defaultMaxLogLength   = 200
)

type generateFunc func(ctx context.Context, prompt string, options ...llms.CallOption) (string, error)

type embedder interface {
	CreateEmbedding(ctx context.Context, texts []string) ([][]float32, error)
}

// Config points the client at a local Ollama server.
type Config struct {
	ServerURL      string
	Model          string
	EmbeddingModel string
	Timeout        time.Duration
	MaxLogLength   int
}

// Client serves generation and embeddings from an Ollama server through langchaingo.
// It has no document understanding, so it cannot back the Gemini ingestion strategy.
type Client struct {
	generate  generateFunc
	embedder  embedder
	model     string
	timeout   time.Duration
	maxLogLen int
	logger    *zap.Logger
}

var (
	_ ai.Generator = (*Client)(nil)
	_ ai.Embedder  = (*Client)(nil)
)

// New connects two langchaingo Ollama models, one for text and one for embeddings.
func New(cfg Config, log *zap.Logger) (*Client, error) {
	cfg = withDefaults(cfg)

	llm, err := ollama.New(ollama.WithModel(cfg.Model), ollama.WithServerURL(cfg.ServerURL))
	if err != nil {
		return nil, fmt.Errorf("initialize ollama model %q: %w", cfg.Model, err)
	}

	emb, err := ollama.New(ollama.WithModel(cfg.EmbeddingModel), ollama.WithServerURL(cfg.ServerURL))
	if err != nil {
		return nil, fmt.Errorf("initialize ollama embedding model %q: %w", cfg.EmbeddingModel, err)
	}

	generate := func(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
		return llms.GenerateFromSinglePrompt(ctx, llm, prompt, options...)
	}

	return newClient(generate, emb, cfg, log), nil
}

func withDefaults(cfg Config) Config {
	cfg.ServerURL = strings.TrimSpace(cfg.ServerURL)
	if cfg.ServerURL == "" {
		cfg.ServerURL = defaultServerURL
	}
	cfg.Model = strings.TrimSpace(cfg.Model)
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	cfg.EmbeddingModel = strings.TrimSpace(cfg.EmbeddingModel)
	if cfg.EmbeddingModel == "" {
		cfg.EmbeddingModel = defaultEmbeddingModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.MaxLogLength <= 0 {
		cfg.MaxLogLength = defaultMaxLogLength
	}
	return cfg
}

func newClient(generate generateFunc, emb embedder, cfg Config, log *zap.Logger) *Client {
	cfg = withDefaults(cfg)
	return &Client{
		generate:  generate,
		embedder:  emb,
		model:     cfg.Model,
		timeout:   cfg.Timeout,
		maxLogLen: cfg.MaxLogLength,
		logger:    logger.WithCommonFields(log, Provider, cfg.Model),
	}
}

// Generate runs a single-prompt completion.
func (c *Client) Generate(ctx context.Context, prompt string, cfg ai.GenerationConfig) (string, error) {
	if c == nil || c.generate == nil {
		return "", errors.New("ollama client is not initialized")
	}

	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", errors.New("prompt must not be empty")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	c.logger.Debug("ollama generate request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, c.maxLogLen)),
	)

	output, err := c.generate(ctx, prompt, callOptions(cfg)...)
	if err != nil {
		return "", fmt.Errorf("generate from prompt: %w", err)
	}

	output = strings.TrimSpace(output)
	if output == "" {
		return "", errors.New("ollama returned empty response")
	}

	c.logger.Debug("ollama generate response",
		zap.Int("response_length", utf8.RuneCountInString(output)),
		zap.String("response_preview", utils.TruncateForLog(output, c.maxLogLen)),
	)

	return output, nil
}

// Embed returns one vector per text.
func (c *Client) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if c == nil || c.embedder == nil {
		return nil, errors.New("ollama client is not initialized")
	}
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	vectors, err := c.embedder.CreateEmbedding(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("create embedding: %w", err)
	}
	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("create embedding: expected %d embeddings, got %d", len(texts), len(vectors))
	}

	return vectors, nil
}

func callOptions(cfg ai.GenerationConfig) []llms.CallOption {
	var opts []llms.CallOption
	if cfg.Temperature > 0 {
		opts = append(opts, llms.WithTemperature(cfg.Temperature))
	}
	if cfg.MaxOutputTokens > 0 {
		opts = append(opts, llms.WithMaxTokens(cfg.MaxOutputTokens))
	}
	if cfg.TopP > 0 {
		opts = append(opts, llms.WithTopP(cfg.TopP))
	}
	if cfg.TopK > 0 {
		opts = append(opts, llms.WithTopK(cfg.TopK))
	}
	return opts
}

func (c *Client) Model() string {
	if c == nil {
		return ""
	}
	return c.model
}
