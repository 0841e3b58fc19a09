package fields

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/spigell/career-navigator/internal/resume"
)

// degreeKeywords is searched in order, so longer titles precede their prefixes.
var degreeKeywords = []string{
	"Bachelor of Science",
	"Bachelor of Arts",
	"Bachelor of Engineering",
	"Bachelor of Technology",
	"Bachelor of Commerce",
	"Master of Science",
	"Master of Arts",
	"Master of Business Administration",
	"Master of Engineering",
	"Master of Technology",
	"Doctor of Philosophy",
	"Associate of Science",
	"Associate of Arts",
	"Bachelors",
	"Bachelor",
	"Masters",
	"Master",
	"Doctorate",
	"Associate",
	"Diploma",
	"Ph.D.",
	"PhD",
	"MBA",
	"B.Tech",
	"M.Tech",
	"B.Sc",
	"M.Sc",
	"B.S.",
	"M.S.",
	"B.A.",
	"M.A.",
	"B.E.",
}

var (
	degreeRes = compileDegrees(degreeKeywords)
	fieldRe   = regexp.MustCompile(`(?i)^(?:'s)?(?:\s+degree)?\s*,?\s*(?:in|of)\s+(.+)`)
	gpaRe     = regexp.MustCompile(`(?i)GPA\s*[:\-]?\s*(\d+(?:\.\d+)?)`)
	fieldStop = regexp.MustCompile(`(?i)\s*(?:,|\||\s-\s|\s–\s|\s—\s|\(|\bGPA\b)`)
)

func compileDegrees(keywords []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(keywords))
	for _, k := range keywords {
		// Titles ending in a dot cannot use a trailing word boundary.
		suffix := `\b`
		if strings.HasSuffix(k, ".") {
			suffix = ``
		}
		out = append(out, regexp.MustCompile(`(?i)(?:^|[^\pL])(`+regexp.QuoteMeta(k)+`)`+suffix))
	}
	return out
}

// ParseEducation extracts education entries. Each entry's first line is the institution.
func ParseEducation(text string) []resume.Education {
	out := []resume.Education{}
	for _, lines := range splitEntries(text) {
		if edu, ok := parseEducationEntry(lines); ok {
			out = append(out, edu)
		}
	}
	return out
}

func parseEducationEntry(lines []string) (resume.Education, bool) {
	var edu resume.Education
	used := make([]bool, len(lines))

	edu.Institution = stripDate(lines[0])
	used[0] = true

	for i, line := range lines {
		if edu.Degree != "" {
			break
		}
		degree, field, ok := parseDegree(line)
		if !ok {
			continue
		}
		edu.Degree, edu.FieldOfStudy = degree, field
		if i > 0 {
			used[i] = true
		} else {
			edu.Institution = institutionBeforeDegree(lines[0], degree)
		}
	}

	for i, line := range lines {
		if m := gpaRe.FindStringSubmatch(line); m != nil && edu.GPA == 0 {
			if gpa, err := strconv.ParseFloat(m[1], 64); err == nil {
				edu.GPA = gpa
			}
			if cleanPart(gpaRe.ReplaceAllString(line, "")) == "" {
				used[i] = true
			}
		}
		if r, _, ok := FindDateRange(line); ok {
			if !edu.StartDate.Valid() && !edu.EndDate.Valid() {
				edu.StartDate, edu.EndDate = r.Start, r.End
			}
			if stripDate(line) == "" {
				used[i] = true
			}
		}
	}

	var desc []string
	for i, line := range lines {
		if used[i] {
			continue
		}
		if text, _ := cutBullet(line); text != "" {
			desc = append(desc, stripDate(text))
		}
	}
	edu.Description = strings.Join(desc, " ")

	if edu.Institution == "" && edu.Degree == "" {
		return edu, false
	}
	return edu, true
}

// parseDegree finds a degree title in line and the field of study that follows it.
func parseDegree(line string) (degree string, field string, ok bool) {
	for _, re := range degreeRes {
		loc := re.FindStringSubmatchIndex(line)
		if loc == nil {
			continue
		}
		degree = line[loc[2]:loc[3]]
		if m := fieldRe.FindStringSubmatch(line[loc[3]:]); m != nil {
			field = m[1]
			if stop := fieldStop.FindStringIndex(field); stop != nil {
				field = field[:stop[0]]
			}
			field = stripDate(field)
		}
		return degree, field, true
	}
	return "", "", false
}

// institutionBeforeDegree handles "MIT, Bachelor of Science in Physics" on one line.
func institutionBeforeDegree(line, degree string) string {
	idx := strings.Index(line, degree)
	if idx <= 0 {
		return ""
	}
	return stripDate(line[:idx])
}
