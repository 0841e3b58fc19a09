package fields

import (
	"regexp"
	"strings"
)

var (
	blankLineRe = regexp.MustCompile(`\n[ \t]*\n`)
	labelRe     = regexp.MustCompile(`^[A-Za-z][A-Za-z /&]{0,30}:`)
	separators  = []string{" - ", " – ", " — ", " | "}
	bullets     = []string{"-", "•", "*", "●", "▪"}
)

// splitEntries breaks a section into entries. Blank lines delimit entries when the
// text has them. Segmented text has none, so a line that looks like the head of a
// new dated entry starts one instead.
func splitEntries(text string) [][]string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	if blankLineRe.MatchString(text) {
		var out [][]string
		for _, block := range blankLineRe.Split(text, -1) {
			if lines := nonEmptyLines(block); len(lines) > 0 {
				out = append(out, lines)
			}
		}
		return out
	}

	lines := nonEmptyLines(text)
	var (
		out     [][]string
		cur     []string
		curDate bool
	)
	for i, line := range lines {
		if len(cur) > 0 && curDate && startsEntry(lines, i) {
			out = append(out, cur)
			cur, curDate = nil, false
		}
		cur = append(cur, line)
		if hasDateRange(line) {
			curDate = true
		}
	}
	if len(cur) > 0 {
		out = append(out, cur)
	}
	return out
}

func startsEntry(lines []string, i int) bool {
	line := lines[i]
	if isBullet(line) || labelRe.MatchString(line) {
		return false
	}
	if hasDateRange(line) || hasSeparator(line) {
		return true
	}
	if i+1 < len(lines) && hasDateRange(lines[i+1]) {
		return true
	}
	if i+2 < len(lines) && hasDateRange(lines[i+2]) {
		next := lines[i+1]
		return !hasSeparator(next) && !isBullet(next)
	}
	return false
}

func nonEmptyLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

func hasDateRange(line string) bool {
	_, _, ok := FindDateRange(line)
	return ok
}

func hasSeparator(line string) bool {
	for _, sep := range separators {
		if strings.Contains(line, sep) {
			return true
		}
	}
	return false
}

func isBullet(line string) bool {
	_, ok := cutBullet(line)
	return ok
}

// cutBullet strips a leading bullet marker. A marker must be followed by a space.
func cutBullet(line string) (string, bool) {
	for _, b := range bullets {
		if rest, ok := strings.CutPrefix(line, b); ok && (strings.HasPrefix(rest, " ") || strings.HasPrefix(rest, "\t")) {
			return strings.TrimSpace(rest), true
		}
	}
	return line, false
}

// splitHeader splits a heading line on the first kind of spaced separator it contains.
func splitHeader(line string) []string {
	for _, sep := range separators {
		if !strings.Contains(line, sep) {
			continue
		}
		var parts []string
		for _, p := range strings.Split(line, sep) {
			if p = cleanPart(p); p != "" {
				parts = append(parts, p)
			}
		}
		return parts
	}
	if p := cleanPart(line); p != "" {
		return []string{p}
	}
	return nil
}

// stripDate removes the date range text from line and tidies what remains.
func stripDate(line string) string {
	if _, match, ok := FindDateRange(line); ok {
		line = strings.Replace(line, match, " ", 1)
	}
	return cleanPart(line)
}

func cleanPart(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return strings.Trim(s, " ,;|-–—")
}
