// Package segment splits extracted résumé text into labeled sections by header lines.
package segment

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/spigell/career-navigator/internal/resume"
)

// maxHeaderWords bounds how long a line may be and still count as a bare header.
// Longer lines only qualify when the phrase is followed by a colon.
const maxHeaderWords = 4

// Header maps a header phrase to the section it opens.
type Header struct {
	Phrase string
	Kind   resume.SectionKind
}

// DefaultHeaders is matched in declaration order, so multi-word phrases come before
// the single words they start with.
var DefaultHeaders = []Header{
	{Phrase: "contact information", Kind: resume.SectionPersonalInfo},
	{Phrase: "contact", Kind: resume.SectionPersonalInfo},
	{Phrase: "professional summary", Kind: resume.SectionSummary},
	{Phrase: "profile", Kind: resume.SectionSummary},
	{Phrase: "summary", Kind: resume.SectionSummary},
	{Phrase: "objective", Kind: resume.SectionSummary},
	{Phrase: "education", Kind: resume.SectionEducation},
	{Phrase: "work experience", Kind: resume.SectionExperience},
	{Phrase: "professional experience", Kind: resume.SectionExperience},
	{Phrase: "experience", Kind: resume.SectionExperience},
	{Phrase: "employment", Kind: resume.SectionExperience},
	{Phrase: "technical skills", Kind: resume.SectionSkills},
	{Phrase: "skills", Kind: resume.SectionSkills},
	{Phrase: "projects", Kind: resume.SectionProjects},
	{Phrase: "achievements", Kind: resume.SectionOther},
	{Phrase: "certifications", Kind: resume.SectionOther},
	{Phrase: "extracurricular", Kind: resume.SectionOther},
	{Phrase: "volunteer", Kind: resume.SectionOther},
	{Phrase: "publications", Kind: resume.SectionOther},
	{Phrase: "courses", Kind: resume.SectionOther},
}

// Segmenter routes lines to sections. The zero value uses DefaultHeaders.
type Segmenter struct {
	headers []Header
}

// New returns a segmenter matching the given headers, or DefaultHeaders when none are given.
func New(headers ...Header) *Segmenter {
	if len(headers) == 0 {
		headers = DefaultHeaders
	}
	normalized := make([]Header, 0, len(headers))
	for _, h := range headers {
		phrase := strings.ToLower(strings.TrimSpace(h.Phrase))
		if phrase == "" {
			continue
		}
		normalized = append(normalized, Header{Phrase: phrase, Kind: h.Kind})
	}
	return &Segmenter{headers: normalized}
}

// Segment splits text into sections. Content before the first header belongs to
// personal_info, blank lines are dropped and a repeated section replaces the earlier one.
func Segment(text string) *resume.SectionMap {
	return New().Segment(text)
}

func (s *Segmenter) Segment(text string) *resume.SectionMap {
	headers := s.headers
	if len(headers) == 0 {
		headers = New().headers
	}

	sections := resume.NewSectionMap()
	current := resume.SectionPersonalInfo
	var buf []string

	commit := func() {
		if len(buf) > 0 {
			sections.Set(current, strings.Join(buf, "\n"))
		}
		buf = nil
	}

	for _, raw := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		kind, rest, ok := matchHeader(headers, line)
		if !ok {
			buf = append(buf, line)
			continue
		}

		commit()
		current = kind
		if rest != "" {
			buf = append(buf, rest)
		}
	}
	commit()

	return sections
}

// matchHeader reports whether line opens a section. Inline content after
// "Header:" is returned so that "Skills: Go, SQL" keeps its skills.
func matchHeader(headers []Header, line string) (resume.SectionKind, string, bool) {
	lower := strings.ToLower(line)
	for _, h := range headers {
		if !strings.HasPrefix(lower, h.Phrase) {
			continue
		}

		rest := line[len(h.Phrase):]
		if r, _ := utf8.DecodeRuneInString(rest); rest != "" && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			// "Experienced engineer" is not the experience header.
			continue
		}

		trimmed := strings.TrimSpace(rest)
		if after, found := strings.CutPrefix(trimmed, ":"); found {
			return h.Kind, strings.TrimSpace(after), true
		}
		if len(strings.Fields(line)) > maxHeaderWords {
			continue
		}
		return h.Kind, "", true
	}
	return "", "", false
}
