package fields

import (
	"strings"

	"github.com/spigell/career-navigator/internal/resume"
)

// ParseExperience extracts work history. The first line of an entry is
// "Company - Position[ - Location]" or just the company.
func ParseExperience(text string) []resume.Experience {
	out := []resume.Experience{}
	for _, lines := range splitEntries(text) {
		if exp, ok := parseExperienceEntry(lines); ok {
			out = append(out, exp)
		}
	}
	return out
}

func parseExperienceEntry(lines []string) (resume.Experience, bool) {
	exp := resume.Experience{Achievements: []string{}}

	header := splitHeader(stripDate(lines[0]))
	if len(header) > 0 {
		exp.Company = header[0]
	}
	if len(header) > 1 {
		exp.Position = header[1]
	}
	if len(header) > 2 {
		exp.Location = strings.Join(header[2:], ", ")
	}

	dated := false
	var desc []string
	for i, line := range lines {
		if r, _, ok := FindDateRange(line); ok && !dated {
			dated = true
			exp.StartDate, exp.EndDate, exp.Current = r.Start, r.End, r.Current
			if i > 0 {
				// "San Francisco, CA | Jan 2020 - Present"
				if rest := stripDate(line); rest != "" && exp.Location == "" {
					exp.Location = rest
				}
			}
			continue
		}
		if i == 0 {
			continue
		}
		if text, ok := cutBullet(line); ok {
			if text != "" {
				exp.Achievements = append(exp.Achievements, text)
			}
			continue
		}
		if hasDateRange(line) {
			continue
		}
		desc = append(desc, line)
	}
	exp.Description = strings.Join(desc, " ")

	if exp.Company == "" && exp.Description == "" && len(exp.Achievements) == 0 {
		return exp, false
	}
	return exp, true
}
