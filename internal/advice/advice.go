// Package advice asks a text generator for résumé improvement advice and splits the
// answer into fixed sections.
package advice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	_ "embed"

	"go.uber.org/zap"

	"github.com/spigell/career-navigator/internal/ai"
	"github.com/spigell/career-navigator/internal/logger"
	"github.com/spigell/career-navigator/internal/resume"
	"github.com/spigell/career-navigator/internal/utils"
)

const (
	MarkerSummary  = "Summary Advice:"
	MarkerSkills   = "Skills Advice:"
	MarkerProjects = "Projects Advice:"

	maxKeywords         = 10
	missingBelow        = 0.5
	defaultMaxLogLength = 200
)

//go:embed prompt.md
var promptTemplate string

// DefaultConfig keeps answers short and moderately creative.
var DefaultConfig = ai.GenerationConfig{
	Temperature:     0.7,
	MaxOutputTokens: 350,
	TopP:            0.9,
	TopK:            40,
	DisableThinking: true,
}

var sectionRes = map[string]*regexp.Regexp{
	MarkerSummary:  sectionRe(MarkerSummary),
	MarkerSkills:   sectionRe(MarkerSkills),
	MarkerProjects: sectionRe(MarkerProjects),
}

func sectionRe(marker string) *regexp.Regexp {
	next := strings.Join([]string{
		regexp.QuoteMeta(MarkerSummary),
		regexp.QuoteMeta(MarkerSkills),
		regexp.QuoteMeta(MarkerProjects),
	}, "|")
	return regexp.MustCompile(`(?s)` + regexp.QuoteMeta(marker) + `\s*(.*?)\s*(?:` + next + `|\z)`)
}

// Record holds the three advice blocks. A block is empty when the answer omitted it.
type Record struct {
	SummaryAdvice  string `json:"summary_advice"`
	SkillsAdvice   string `json:"skills_advice"`
	ProjectsAdvice string `json:"projects_advice"`
}

type Advisor struct {
	generator ai.Generator
	cfg       ai.GenerationConfig
	logger    *zap.Logger
	maxLogLen int
}

func NewAdvisor(generator ai.Generator, cfg ai.GenerationConfig, log *zap.Logger, maxLogLength int) *Advisor {
	if cfg == (ai.GenerationConfig{}) {
		cfg = DefaultConfig
	}
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	return &Advisor{
		generator: generator,
		cfg:       cfg,
		logger:    logger.WithFields(log),
		maxLogLen: maxLogLength,
	}
}

// Advise builds the prompt from the résumé, the compatibility issues and the missing
// keywords, and parses the answer. Generation failures wrap ai.ErrUnavailable.
func (a *Advisor) Advise(ctx context.Context, r *resume.Resume, issues, missing []string) (*Record, error) {
	if a.generator == nil {
		return nil, ai.Unavailable("advise", errors.New("no text generator configured"))
	}

	prompt, err := BuildPrompt(r, issues, missing)
	if err != nil {
		return nil, err
	}

	a.logger.Debug("advice request",
		zap.Int("issues", len(issues)),
		zap.Int("missing_keywords", len(missing)),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
	)

	raw, err := a.generator.Generate(ctx, prompt, a.cfg)
	if err != nil {
		return nil, ai.Unavailable("advise", err)
	}

	a.logger.Debug("advice response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, a.maxLogLen)),
	)

	record := Parse(raw)
	return &record, nil
}

// BuildPrompt fills the prompt template. Only the first ten missing keywords are used.
func BuildPrompt(r *resume.Resume, issues, missing []string) (string, error) {
	if r == nil {
		r = resume.New()
	}
	resumeJSON, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal resume: %w", err)
	}

	issueText := "None"
	if len(issues) > 0 {
		lines := make([]string, 0, len(issues))
		for _, issue := range issues {
			lines = append(lines, "- "+issue)
		}
		issueText = strings.Join(lines, "\n")
	}

	keywordText := "None"
	if len(missing) > maxKeywords {
		missing = missing[:maxKeywords]
	}
	if len(missing) > 0 {
		keywordText = strings.Join(missing, ", ")
	}

	prompt := strings.ReplaceAll(promptTemplate, "{{ATS_ISSUES}}", issueText)
	prompt = strings.ReplaceAll(prompt, "{{MISSING_KEYWORDS}}", keywordText)
	prompt = strings.ReplaceAll(prompt, "{{RESUME_JSON}}", string(resumeJSON))
	return prompt, nil
}

// Parse flattens markdown in raw and captures each section up to the next marker.
func Parse(raw string) Record {
	flat := Flatten(raw)
	return Record{
		SummaryAdvice:  section(flat, MarkerSummary),
		SkillsAdvice:   section(flat, MarkerSkills),
		ProjectsAdvice: section(flat, MarkerProjects),
	}
}

func section(text, marker string) string {
	m := sectionRes[marker].FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// MissingFromMatches returns the keywords scoring below 0.5, sorted.
func MissingFromMatches(matches map[string]float64) []string {
	out := []string{}
	for keyword, score := range matches {
		if score < missingBelow {
			out = append(out, keyword)
		}
	}
	sort.Strings(out)
	return out
}
