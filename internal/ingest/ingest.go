// Package ingest turns a raw résumé document into a structured record by trying an
// ordered cascade of extraction strategies.
package ingest

import (
	"context"
	"errors"
	"mime"
	"net/http"
	"strings"

	"github.com/spigell/career-navigator/internal/resume"
)

var (
	ErrEmptyDocument       = errors.New("document is empty")
	ErrInsufficientContent = errors.New("extracted content is below the minimum length")
	ErrNoJSONObject        = errors.New("no balanced JSON object found")
	ErrUnsupportedMedia    = errors.New("media type is not supported by strategy")
	ErrStrategyDisabled    = errors.New("strategy is disabled")
)

// Document is the raw input of one ingestion call.
type Document struct {
	Name      string
	MediaType string
	Data      []byte
}

// BaseMediaType returns the declared media type without parameters, sniffing the
// content when none was declared.
func (d Document) BaseMediaType() string {
	declared := strings.TrimSpace(d.MediaType)
	if declared == "" {
		declared = http.DetectContentType(d.Data)
	}
	base, _, err := mime.ParseMediaType(declared)
	if err != nil {
		return strings.ToLower(declared)
	}
	return base
}

// Extraction is what a strategy produced. Structured strategies set Resume and put
// the JSON they decoded in Text; text strategies leave Resume nil.
type Extraction struct {
	Text   string
	Resume *resume.Resume
}

// Strategy is one step of the cascade.
type Strategy interface {
	Name() string
	Disable(reason string)
	IsEnabled() bool

	Accepts(mediaType string) bool
	Extract(ctx context.Context, doc Document) (Extraction, error)
}

// Status describes a strategy for display.
type Status struct {
	Name    string            `json:"name"`
	Enabled bool              `json:"enabled"`
	Reason  string            `json:"reason,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

type statusProvider interface {
	Status() Status
}

// DisableByName marks the named strategy as disabled while keeping it in the list.
func DisableByName(strategies []Strategy, name, reason string) {
	for _, s := range strategies {
		if s.Name() == name {
			s.Disable(reason)
		}
	}
}

// Describe returns status entries for the strategies.
func Describe(strategies []Strategy) []Status {
	statuses := make([]Status, 0, len(strategies))
	for _, s := range strategies {
		if reporter, ok := s.(statusProvider); ok {
			statuses = append(statuses, reporter.Status())
			continue
		}
		statuses = append(statuses, Status{Name: s.Name(), Enabled: s.IsEnabled()})
	}
	return statuses
}

// switchable carries the enable flag shared by all strategies.
type switchable struct {
	disabled bool
	reason   string
}

func (s *switchable) Disable(reason string) {
	s.disabled = true
	s.reason = reason
}

func (s *switchable) IsEnabled() bool { return !s.disabled }

func (s *switchable) status(name string, details map[string]string) Status {
	return Status{Name: name, Enabled: !s.disabled, Reason: s.reason, Details: details}
}

func acceptsAny(mediaType string, accepted []string) bool {
	for _, a := range accepted {
		if strings.EqualFold(a, mediaType) {
			return true
		}
	}
	return false
}
