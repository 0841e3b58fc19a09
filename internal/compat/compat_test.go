package compat

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/spigell/career-navigator/internal/resume"
)

func completeResume() *resume.Resume {
	r := resume.New()
	r.PersonalInfo.Email = "jane@example.com"
	r.PersonalInfo.Phone = "555-123-4567"
	r.Education = []resume.Education{{Institution: "MIT", StartDate: resume.NewDate(2014, time.September, 1)}}
	return r
}

func TestCheckCompatible(t *testing.T) {
	t.Parallel()

	report := Check(completeResume(), nil)

	assert.True(t, report.IsCompatible)
	assert.Empty(t, report.Issues)
	assert.InDelta(t, 1.0, report.Score, 1e-9)
}

func TestCheckMissingContactAndEducation(t *testing.T) {
	t.Parallel()

	r := resume.New()
	report := Check(r, []string{"summary", "experience", "skills"})

	assert.False(t, report.IsCompatible)
	assert.Equal(t, []string{
		"Include phone and email in contact details.",
		"Add education section.",
		"Ensure education section is visible.",
	}, report.Issues)
	assert.GreaterOrEqual(t, len(report.Issues), 3)
	assert.LessOrEqual(t, report.Score, 0.7)
	assert.InDelta(t, 0.7, report.Score, 1e-9)
}

func TestCheckVisibleSets(t *testing.T) {
	t.Parallel()

	r := completeResume()

	none := Check(r, []string{})
	assert.Len(t, none.Issues, 4)
	assert.Equal(t, "Ensure summary section is visible.", none.Issues[0])

	mixedCase := Check(r, []string{" Summary", "EXPERIENCE", "education", "Skills"})
	assert.True(t, mixedCase.IsCompatible)
}

func TestCheckPartialContact(t *testing.T) {
	t.Parallel()

	r := completeResume()
	r.PersonalInfo.Phone = "  "
	report := Check(r, nil)

	assert.Equal(t, []string{"Include phone and email in contact details."}, report.Issues)
}

func TestScoreMonotonic(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 1.0, Score(0), 1e-9)
	prev := Score(0)
	for n := 1; n <= 15; n++ {
		s := Score(n)
		assert.LessOrEqual(t, s, prev)
		assert.GreaterOrEqual(t, s, 0.0)
		prev = s
	}
	assert.Equal(t, 0.0, Score(12))
}
