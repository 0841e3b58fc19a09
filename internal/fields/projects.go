package fields

import (
	"regexp"
	"strings"

	"github.com/spigell/career-navigator/internal/resume"
)

var techLabelRe = regexp.MustCompile(`(?i)^(?:technologies|tech stack|stack|tools|built with)\s*:\s*(.*)$`)

// ParseProjects extracts projects. The first line names the project, a
// "Technologies:" line lists the stack and the first URL becomes the link.
func ParseProjects(text string) []resume.Project {
	out := []resume.Project{}
	for _, lines := range splitEntries(text) {
		if p, ok := parseProjectEntry(lines); ok {
			out = append(out, p)
		}
	}
	return out
}

func parseProjectEntry(lines []string) (resume.Project, bool) {
	p := resume.Project{Technologies: []string{}}

	head := lines[0]
	if r, _, ok := FindDateRange(head); ok {
		p.StartDate, p.EndDate = r.Start, r.End
	}
	if link := urlRe.FindString(head); link != "" {
		p.Link = link
		head = strings.Replace(head, link, " ", 1)
	}
	var desc []string
	if parts := splitHeader(stripDate(head)); len(parts) > 0 {
		p.Name = parts[0]
		desc = append(desc, parts[1:]...)
	}

	for _, line := range lines[1:] {
		text, _ := cutBullet(line)
		if m := techLabelRe.FindStringSubmatch(text); m != nil {
			for _, tech := range strings.Split(m[1], ",") {
				if tech = strings.TrimSpace(tech); tech != "" {
					p.Technologies = append(p.Technologies, tech)
				}
			}
			continue
		}
		if link := urlRe.FindString(text); link != "" && p.Link == "" {
			p.Link = link
			text = strings.Replace(text, link, " ", 1)
		}
		if r, _, ok := FindDateRange(text); ok {
			if !p.StartDate.Valid() && !p.EndDate.Valid() {
				p.StartDate, p.EndDate = r.Start, r.End
			}
			text = stripDate(text)
		}
		if text = cleanPart(text); text != "" {
			desc = append(desc, text)
		}
	}
	p.Description = strings.Join(desc, " ")

	if p.Name == "" && p.Description == "" {
		return p, false
	}
	return p, true
}
