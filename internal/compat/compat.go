// Package compat checks a structured résumé against fixed readability rules for
// automated screening systems.
package compat

import (
	"fmt"
	"math"
	"strings"

	"github.com/spigell/career-navigator/internal/resume"
)

const issuePenalty = 0.1

// RequiredSections must be visible, checked in this order.
var RequiredSections = []string{"summary", "experience", "education", "skills"}

// DefaultVisibleSections is the section layout assumed when the caller has none.
var DefaultVisibleSections = []string{
	"personal_info",
	"summary",
	"education",
	"experience",
	"skills",
	"projects",
	"achievements",
	"extracurriculars",
	"courses",
	"certifications",
	"volunteer_work",
	"publications",
}

// Report lists rule violations. Score is 1 - 0.1 per issue, floored at 0.
type Report struct {
	IsCompatible bool     `json:"is_compatible"`
	Issues       []string `json:"issues"`
	Score        float64  `json:"compatibility_score"`
}

// Check runs the rules. A nil visible set means DefaultVisibleSections; an empty,
// non-nil set means nothing is visible.
func Check(r *resume.Resume, visible []string) Report {
	if r == nil {
		r = resume.New()
	}
	if visible == nil {
		visible = DefaultVisibleSections
	}

	issues := []string{}
	if strings.TrimSpace(r.PersonalInfo.Email) == "" || strings.TrimSpace(r.PersonalInfo.Phone) == "" {
		issues = append(issues, "Include phone and email in contact details.")
	}
	if len(r.Education) == 0 {
		issues = append(issues, "Add education section.")
	}

	shown := make(map[string]bool, len(visible))
	for _, s := range visible {
		shown[strings.ToLower(strings.TrimSpace(s))] = true
	}
	for _, section := range RequiredSections {
		if !shown[section] {
			issues = append(issues, fmt.Sprintf("Ensure %s section is visible.", section))
		}
	}

	return Report{
		IsCompatible: len(issues) == 0,
		Issues:       issues,
		Score:        Score(len(issues)),
	}
}

// Score maps an issue count to a compatibility score in [0, 1].
func Score(issues int) float64 {
	score := 1 - issuePenalty*float64(issues)
	// Keep 0.7 from printing as 0.7000000000000001.
	return math.Max(0, math.Round(score*1e9)/1e9)
}
