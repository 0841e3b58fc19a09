package fields

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/spigell/career-navigator/internal/resume"
)

const (
	monthName    = `(?:jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|june?|july?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)`
	monthPattern = monthName + `\.?\s+\d{4}`
)

var (
	monthYearRe = regexp.MustCompile(`(?i)^(` + monthName + `)\.?\s+(\d{4})$`)
	rangeRe     = regexp.MustCompile(`(?i)\b(` + monthPattern + `)\s*(?:-|–|—|to)\s*(` + monthPattern + `|present|current)\b`)
	isoRangeRe  = regexp.MustCompile(`(?i)\(\s*(\d{4}-\d{2}-\d{2})\s*(?:–|—|-|to)\s*(\d{4}-\d{2}-\d{2}|present|current)\s*\)`)
)

var months = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March, "apr": time.April,
	"may": time.May, "jun": time.June, "jul": time.July, "aug": time.August,
	"sep": time.September, "oct": time.October, "nov": time.November, "dec": time.December,
}

// DateRange is a parsed start/end pair. Current is set by a Present or Current end
// marker, in which case End is always absent.
type DateRange struct {
	Start   resume.Date
	End     resume.Date
	Current bool
}

// FindDateRange returns the first date range in s and the matched text.
func FindDateRange(s string) (DateRange, string, bool) {
	if loc := isoRangeRe.FindStringSubmatchIndex(s); loc != nil {
		match := s[loc[0]:loc[1]]
		return newRange(resume.ParseISODate(s[loc[2]:loc[3]]), s[loc[4]:loc[5]], resume.ParseISODate), match, true
	}
	if loc := rangeRe.FindStringSubmatchIndex(s); loc != nil {
		match := s[loc[0]:loc[1]]
		return newRange(ParseMonthYear(s[loc[2]:loc[3]]), s[loc[4]:loc[5]], ParseMonthYear), match, true
	}
	return DateRange{}, "", false
}

// ParseDateRange parses s as a whole. Unparseable input yields an empty range.
func ParseDateRange(s string) DateRange {
	r, _, _ := FindDateRange(s)
	return r
}

func newRange(start resume.Date, end string, parse func(string) resume.Date) DateRange {
	end = strings.TrimSpace(end)
	if isOngoing(end) {
		return DateRange{Start: start, Current: true}
	}
	return DateRange{Start: start, End: parse(end)}
}

func isOngoing(s string) bool {
	return strings.EqualFold(s, "present") || strings.EqualFold(s, "current")
}

// ParseMonthYear parses "September 2018" or "Sep. 2018" as the first day of that month.
func ParseMonthYear(s string) resume.Date {
	m := monthYearRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return resume.Date{}
	}
	month, ok := months[strings.ToLower(m[1][:3])]
	if !ok {
		return resume.Date{}
	}
	year, err := strconv.Atoi(m[2])
	if err != nil || year < 1900 || year > 2200 {
		return resume.Date{}
	}
	return resume.NewDate(year, month, 1)
}
