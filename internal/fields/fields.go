// Package fields turns segmented résumé text into structured records. Every parser
// is total: malformed input yields empty values, never an error.
package fields

import (
	"strings"

	"github.com/spigell/career-navigator/internal/resume"
)

// ParseSummary joins the section's lines into one paragraph.
func ParseSummary(text string) string {
	return strings.Join(nonEmptyLines(text), " ")
}

// FromSections assembles a résumé from segmented text. Missing sections leave the
// corresponding fields empty.
func FromSections(sections *resume.SectionMap) *resume.Resume {
	r := resume.New()
	if sections == nil {
		return r
	}

	r.PersonalInfo = ParsePersonalInfo(sections.Get(resume.SectionPersonalInfo))
	r.Summary = ParseSummary(sections.Get(resume.SectionSummary))
	r.Education = ParseEducation(sections.Get(resume.SectionEducation))
	r.Experience = ParseExperience(sections.Get(resume.SectionExperience))
	r.Skills = ParseSkills(sections.Get(resume.SectionSkills))
	r.Projects = ParseProjects(sections.Get(resume.SectionProjects))
	r.Normalize()

	return r
}
