package cmd

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/career-navigator/internal/advice"
	"github.com/spigell/career-navigator/internal/ai"
	"github.com/spigell/career-navigator/internal/ai/gemini"
	"github.com/spigell/career-navigator/internal/ai/ollama"
	"github.com/spigell/career-navigator/internal/ingest"
	"github.com/spigell/career-navigator/internal/match"
	"github.com/spigell/career-navigator/internal/nlp"
	"github.com/spigell/career-navigator/internal/secrets"
	"github.com/spigell/career-navigator/internal/skills"
)

// provider is what a configured AI backend offers. Document is nil when the
// backend cannot read documents.
type provider struct {
	name      string
	generator ai.Generator
	embedder  ai.Embedder
	document  ai.DocumentGenerator
}

func newProvider(ctx context.Context, cfg *Config, logger *zap.Logger) (*provider, error) {
	name := strings.TrimSpace(strings.ToLower(cfg.AI.Provider))

	switch name {
	case "", gemini.Provider:
		apiKey, err := secrets.Load(secrets.Source{
			Name:  "gemini api key",
			Value: cfg.AI.Gemini.APIKey,
			File:  cfg.AI.Gemini.APIKeyFile,
			Env:   "GEMINI_API_KEY",
		})
		if err != nil {
			return nil, fmt.Errorf("%w (set ai.gemini.api-key-file, GEMINI_API_KEY_FILE or GEMINI_API_KEY)", err)
		}

		client, err := gemini.New(ctx, gemini.Config{
			APIKey:         apiKey,
			Model:          cfg.AI.Gemini.Model,
			DocumentModel:  cfg.AI.Gemini.DocumentModel,
			EmbeddingModel: cfg.AI.Gemini.EmbeddingModel,
			Timeout:        cfg.AI.Timeout,
			MaxLogLength:   cfg.Log.MaxLength,
		}, logger)
		if err != nil {
			return nil, err
		}
		return &provider{name: gemini.Provider, generator: client, embedder: client, document: client}, nil

	case ollama.Provider:
		client, err := ollama.New(ollama.Config{
			ServerURL:      cfg.AI.Ollama.ServerURL,
			Model:          cfg.AI.Ollama.Model,
			EmbeddingModel: cfg.AI.Ollama.EmbeddingModel,
			Timeout:        cfg.AI.Timeout,
			MaxLogLength:   cfg.Log.MaxLength,
		}, logger)
		if err != nil {
			return nil, err
		}
		return &provider{name: ollama.Provider, generator: client, embedder: client}, nil

	default:
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.AI.Provider)
	}
}

// newOrchestrator builds the ingestion cascade. A missing provider only disables
// the document-understanding step.
func newOrchestrator(cfg *Config, p *provider, providerErr error, logger *zap.Logger) (*ingest.Orchestrator, error) {
	var document ai.DocumentGenerator
	if p != nil {
		document = p.document
	}

	available := []ingest.Strategy{
		ingest.NewGemini(document),
		ingest.NewTika(cfg.Tika.ServerURL, &http.Client{Timeout: cfg.Ingest.Timeout}),
		ingest.NewPDF(logger),
		ingest.NewText(),
	}

	switch {
	case providerErr != nil:
		ingest.DisableByName(available, "gemini", providerErr.Error())
	case document == nil:
		ingest.DisableByName(available, "gemini", fmt.Sprintf("provider %s cannot read documents", p.name))
	}

	strategies, err := ingest.Select(available, cfg.Ingest.Strategies)
	if err != nil {
		return nil, err
	}

	for _, status := range ingest.Describe(strategies) {
		logger.Debug("ingest strategy configured",
			zap.String("strategy", status.Name),
			zap.Bool("enabled", status.Enabled),
			zap.String("reason", status.Reason),
		)
	}

	return ingest.NewOrchestrator(ingest.Config{
		MinContentLength: cfg.Ingest.MinContentLength,
		Timeout:          cfg.Ingest.Timeout,
	}, strategies, logger), nil
}

func newGapAnalyzer(cfg *Config) *match.GapAnalyzer {
	normalizeThreshold := cfg.Matching.NormalizeThreshold
	if normalizeThreshold <= 0 {
		normalizeThreshold = skills.DefaultThreshold
	}
	skillThreshold := cfg.Matching.SkillThreshold
	if skillThreshold <= 0 {
		skillThreshold = match.DefaultSkillThreshold
	}

	return match.NewGapAnalyzer(
		nlp.NewExtractor(nlp.ProseTagger{}),
		skills.NewNormalizer(skills.DefaultVocabulary, normalizeThreshold),
		skillThreshold,
	)
}

func newOptimizer(cfg *Config, p *provider, logger *zap.Logger) *match.Optimizer {
	tiers := match.DefaultTiers()
	if cfg.Matching.Excellent > 0 {
		tiers.Excellent = cfg.Matching.Excellent
	}
	if cfg.Matching.Good > 0 {
		tiers.Good = cfg.Matching.Good
	}

	scorer := match.NewScorer(p.embedder, tiers, logger)
	return match.NewOptimizer(scorer, newGapAnalyzer(cfg), p.generator, boostConfig(cfg), logger)
}

func newAdvisor(cfg *Config, p *provider, logger *zap.Logger) *advice.Advisor {
	return advice.NewAdvisor(p.generator, adviceConfig(cfg), logger, cfg.Log.MaxLength)
}

func boostConfig(cfg *Config) ai.GenerationConfig {
	return generationConfig(cfg.Generation, match.BoostConfig)
}

func adviceConfig(cfg *Config) ai.GenerationConfig {
	return generationConfig(cfg.Generation, advice.DefaultConfig)
}

// generationConfig applies non-zero overrides on top of base.
func generationConfig(overrides *GenerationConfig, base ai.GenerationConfig) ai.GenerationConfig {
	if overrides == nil {
		return base
	}
	if overrides.Temperature > 0 {
		base.Temperature = overrides.Temperature
	}
	if overrides.MaxOutputTokens > 0 {
		base.MaxOutputTokens = overrides.MaxOutputTokens
	}
	if overrides.TopP > 0 {
		base.TopP = overrides.TopP
	}
	if overrides.TopK > 0 {
		base.TopK = overrides.TopK
	}
	return base
}
