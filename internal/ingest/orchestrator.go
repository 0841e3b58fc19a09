package ingest

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spigell/career-navigator/internal/fields"
	"github.com/spigell/career-navigator/internal/logger"
	"github.com/spigell/career-navigator/internal/resume"
	"github.com/spigell/career-navigator/internal/segment"
)

const (
	DefaultMinContentLength = 20
	DefaultTimeout          = 90 * time.Second
)

// Config bounds every attempt of the cascade.
type Config struct {
	MinContentLength int           `mapstructure:"min-content-length"`
	Timeout          time.Duration `mapstructure:"timeout"`
}

// Attempt records one strategy run.
type Attempt struct {
	Strategy   string `json:"strategy"`
	Length     int    `json:"length"`
	DurationMS int64  `json:"duration_ms"`
	Error      string `json:"error,omitempty"`
}

// Failure is set on a Result when no strategy produced a usable résumé.
type Failure struct {
	LastError string `json:"last_error"`
	Err       error  `json:"-"`
}

// Result is the outcome of one ingestion call. Resume is never nil: a failed
// ingestion carries an empty résumé next to the Failure.
type Result struct {
	ID       string         `json:"id"`
	Resume   *resume.Resume `json:"resume"`
	Strategy string         `json:"strategy,omitempty"`
	Attempts []Attempt      `json:"attempts"`
	Failure  *Failure       `json:"failure,omitempty"`
}

func (r *Result) Failed() bool {
	return r.Failure != nil
}

// Orchestrator runs the strategies in order until one yields a résumé.
type Orchestrator struct {
	strategies []Strategy
	segmenter  *segment.Segmenter
	minContent int
	timeout    time.Duration
	logger     *zap.Logger
}

func NewOrchestrator(cfg Config, strategies []Strategy, log *zap.Logger) *Orchestrator {
	if cfg.MinContentLength <= 0 {
		cfg.MinContentLength = DefaultMinContentLength
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Orchestrator{
		strategies: strategies,
		segmenter:  segment.New(),
		minContent: cfg.MinContentLength,
		timeout:    cfg.Timeout,
		logger:     logger.WithFields(log),
	}
}

// Strategies returns the cascade in order.
func (o *Orchestrator) Strategies() []Strategy {
	return o.strategies
}

// Ingest never returns an error. Each enabled strategy that accepts the media type
// is tried at most once; the first adequate result wins.
func (o *Orchestrator) Ingest(ctx context.Context, doc Document) *Result {
	result := &Result{ID: uuid.NewString(), Resume: resume.New(), Attempts: []Attempt{}}
	log := o.logger.With(zap.String(logger.FieldRequestID, result.ID))

	if len(doc.Data) == 0 {
		result.Failure = &Failure{LastError: ErrEmptyDocument.Error(), Err: ErrEmptyDocument}
		log.Warn("ingestion failed", zap.Error(ErrEmptyDocument))
		return result
	}

	mediaType := doc.BaseMediaType()
	var lastErr error
	attempt := 0

	for _, strategy := range o.strategies {
		name := strategy.Name()
		if !strategy.IsEnabled() {
			log.Debug("ingest strategy disabled", logger.StrategyFields(name, 0)...)
			lastErr = fmt.Errorf("%s: %w", name, ErrStrategyDisabled)
			continue
		}
		if !strategy.Accepts(mediaType) {
			log.Debug("ingest strategy skipped",
				append(logger.StrategyFields(name, 0), zap.String("media_type", mediaType))...)
			lastErr = fmt.Errorf("%s: %w: %s", name, ErrUnsupportedMedia, mediaType)
			continue
		}

		attempt++
		start := time.Now()
		r, length, err := o.try(ctx, strategy, doc)
		elapsed := time.Since(start)

		record := Attempt{Strategy: name, Length: length, DurationMS: elapsed.Milliseconds()}
		logFields := append(logger.StrategyFields(name, attempt),
			zap.Int("length", length),
			zap.Duration("duration", elapsed),
		)

		if err != nil {
			lastErr = fmt.Errorf("%s: %w", name, err)
			record.Error = err.Error()
			result.Attempts = append(result.Attempts, record)
			log.Info("ingest strategy", append(logFields, zap.String("outcome", "failed"), zap.Error(err))...)
			continue
		}

		result.Attempts = append(result.Attempts, record)
		result.Resume = r
		result.Strategy = name
		log.Info("ingest strategy", append(logFields, zap.String("outcome", "succeeded"))...)
		return result
	}

	if lastErr == nil {
		lastErr = errors.New("no ingestion strategy configured")
	}
	result.Failure = &Failure{LastError: lastErr.Error(), Err: lastErr}
	log.Warn("ingestion failed", zap.Int("attempts", attempt), zap.Error(lastErr))
	return result
}

// try runs one strategy under its own timeout and validates what it produced.
func (o *Orchestrator) try(ctx context.Context, strategy Strategy, doc Document) (r *resume.Resume, length int, err error) {
	defer func() {
		if p := recover(); p != nil {
			r, err = nil, fmt.Errorf("recovered panic: %v", p)
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	extraction, err := strategy.Extract(ctx, doc)
	if err != nil {
		return nil, 0, err
	}

	text := strings.TrimSpace(extraction.Text)
	length = utf8.RuneCountInString(text)
	if length < o.minContent {
		return nil, length, fmt.Errorf("%w: %d < %d", ErrInsufficientContent, length, o.minContent)
	}

	r = extraction.Resume
	if r == nil {
		r = fields.FromSections(o.segmenter.Segment(text))
	}
	if r.IsEmpty() {
		return nil, length, fmt.Errorf("%w: nothing recognized", ErrInsufficientContent)
	}
	r.Normalize()
	return r, length, nil
}

// Select orders the strategies by name. Strategies not named are left out.
func Select(available []Strategy, names []string) ([]Strategy, error) {
	if len(names) == 0 {
		return available, nil
	}

	byName := make(map[string]Strategy, len(available))
	for _, s := range available {
		byName[s.Name()] = s
	}

	selected := make([]Strategy, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		s, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("unknown ingest strategy %q", name)
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		selected = append(selected, s)
	}
	return selected, nil
}
