package fields

import (
	"regexp"
	"strings"

	"github.com/spigell/career-navigator/internal/resume"
)

var (
	emailRe    = regexp.MustCompile(`[\w.+\-]+@[\w\-]+(?:\.[\w\-]+)+`)
	phoneRe    = regexp.MustCompile(`(?:\+\d{1,3}[\s.\-]?)?(?:\(\d{3}\)|\d{3})[\s.\-]?\d{3}[\s.\-]?\d{4}\b`)
	linkedInRe = regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?linkedin\.com/in/[\w\-%]+/?`)
	gitHubRe   = regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?github\.com/[\w\-]+(?:/[\w\-.]+)?/?`)
	urlRe      = regexp.MustCompile(`(?i)\b(?:https?://|www\.)[^\s|,]+`)
	fieldLabel = regexp.MustCompile(`^([A-Za-z][A-Za-z ]{0,20}):\s*`)
	segmentSep = regexp.MustCompile(`\s*(?:\||•|·)\s*`)
)

var locationLabels = map[string]bool{"location": true, "address": true, "city": true}

// ParsePersonalInfo recognizes contact details anywhere in the section. The first
// remaining free-text segment is taken as the name and the next one as the location.
func ParsePersonalInfo(text string) resume.PersonalInfo {
	var info resume.PersonalInfo

	claimed := text
	claim := func(re *regexp.Regexp) string {
		match := re.FindString(claimed)
		if match != "" {
			claimed = strings.Replace(claimed, match, " ", 1)
		}
		return strings.TrimSpace(match)
	}

	info.LinkedIn = claim(linkedInRe)
	info.GitHub = claim(gitHubRe)
	info.Portfolio = claim(urlRe)
	info.Email = claim(emailRe)
	info.Phone = claim(phoneRe)

	for _, line := range nonEmptyLines(claimed) {
		for _, seg := range segmentSep.Split(line, -1) {
			seg = strings.TrimSpace(seg)
			if m := fieldLabel.FindStringSubmatch(seg); m != nil {
				label := strings.ToLower(strings.TrimSpace(m[1]))
				seg = strings.TrimSpace(seg[len(m[0]):])
				if locationLabels[label] {
					if info.Location == "" && seg != "" {
						info.Location = cleanPart(seg)
					}
					continue
				}
				if seg == "" {
					continue
				}
			}
			seg = cleanPart(seg)
			if seg == "" || strings.HasSuffix(seg, ":") {
				continue
			}
			switch {
			case info.FullName == "":
				info.FullName = seg
			case info.Location == "":
				info.Location = seg
			}
		}
	}

	return info
}
