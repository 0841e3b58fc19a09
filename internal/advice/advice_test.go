package advice

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/career-navigator/internal/ai"
	"github.com/spigell/career-navigator/internal/resume"
)

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

func TestParseMissingProjectsMarker(t *testing.T) {
	t.Parallel()

	got := Parse("Summary Advice:\nLead with impact.\n\nSkills Advice:\nGroup skills by domain.")

	assert.Equal(t, "Lead with impact.", got.SummaryAdvice)
	assert.Equal(t, "Group skills by domain.", got.SkillsAdvice)
	assert.Equal(t, "", got.ProjectsAdvice)
}

func TestParseFlattensMarkdown(t *testing.T) {
	t.Parallel()

	raw := strings.Join([]string{
		"## Feedback",
		"",
		"**Summary Advice:** Mention *years* of experience.",
		"",
		"**Skills Advice:**",
		"- Add **Kubernetes**",
		"- Drop `jQuery`",
		"",
		"**Projects Advice:**",
		"1. Link the [repo](https://example.com)",
	}, "\n")

	got := Parse(raw)

	assert.Equal(t, "Mention years of experience.", got.SummaryAdvice)
	assert.Equal(t, "Add Kubernetes\nDrop jQuery", got.SkillsAdvice)
	assert.Equal(t, "Link the repo", got.ProjectsAdvice)
}

func TestParseNoMarkers(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Record{}, Parse("I cannot help with that."))
	assert.Equal(t, Record{}, Parse(""))
}

func TestFlatten(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Title\nfirst\nsecond\ncode line", Flatten("# Title\n\n* first\n* second\n\n```\ncode line\n```\n"))
}

func TestBuildPrompt(t *testing.T) {
	t.Parallel()

	r := resume.New()
	r.Summary = "Backend engineer"
	r.Education = []resume.Education{{Institution: "MIT", StartDate: resume.NewDate(2018, time.September, 1)}}

	missing := []string{"k1", "k2", "k3", "k4", "k5", "k6", "k7", "k8", "k9", "k10", "k11"}
	prompt, err := BuildPrompt(r, []string{"Add education section."}, missing)
	require.NoError(t, err)

	assert.Contains(t, prompt, "- Add education section.")
	assert.Contains(t, prompt, "k1, k2, k3, k4, k5, k6, k7, k8, k9, k10\n")
	assert.NotContains(t, prompt, "k11")
	assert.Contains(t, prompt, `"start_date": "2018-09-01"`)
	assert.Contains(t, prompt, `"end_date": null`)
	assert.NotContains(t, prompt, "{{")

	empty, err := BuildPrompt(nil, nil, nil)
	require.NoError(t, err)
	assert.Contains(t, empty, "ATS Issues:\nNone")
	assert.Contains(t, empty, "Missing Keywords:\nNone")
}

func TestAdvise(t *testing.T) {
	t.Parallel()

	core, observed := observer.New(zapcore.DebugLevel)
	gen := &stubGenerator{out: "Summary Advice: a\nSkills Advice: b\nProjects Advice: c"}

	got, err := NewAdvisor(gen, ai.GenerationConfig{}, zap.New(core), 0).Advise(context.Background(), resume.New(), nil, []string{"aws"})
	require.NoError(t, err)

	assert.Equal(t, &Record{SummaryAdvice: "a", SkillsAdvice: "b", ProjectsAdvice: "c"}, got)
	assert.Equal(t, DefaultConfig, gen.cfg)
	assert.Contains(t, gen.prompt, "Missing Keywords:\naws")
	assert.Equal(t, 2, observed.Len())
}

func TestAdviseUnavailable(t *testing.T) {
	t.Parallel()

	_, err := NewAdvisor(&stubGenerator{err: errors.New("timeout")}, ai.GenerationConfig{}, nil, 0).Advise(context.Background(), resume.New(), nil, nil)
	assert.ErrorIs(t, err, ai.ErrUnavailable)

	_, err = NewAdvisor(nil, ai.GenerationConfig{}, nil, 0).Advise(context.Background(), resume.New(), nil, nil)
	assert.ErrorIs(t, err, ai.ErrUnavailable)
}

func TestMissingFromMatches(t *testing.T) {
	t.Parallel()

	got := MissingFromMatches(map[string]float64{
		"terraform": 0.1,
		"python":    0.9,
		"aws":       0.49,
		"docker":    0.5,
	})
	assert.Equal(t, []string{"aws", "terraform"}, got)
	assert.Empty(t, MissingFromMatches(nil))
}
