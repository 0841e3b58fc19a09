package fields

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindDateRange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		start   string
		end     string
		current bool
		found   bool
	}{
		{input: "September 2018 – June 2022", start: "2018-09-01", end: "2022-06-01", found: true},
		{input: "Jan 2020 - Present", start: "2020-01-01", current: true, found: true},
		{input: "Acme | Sep. 2019 to CURRENT", start: "2019-09-01", current: true, found: true},
		{input: "Mar 2017 — Dec 2019", start: "2017-03-01", end: "2019-12-01", found: true},
		{input: "(2018-09-01 – 2022-06-15)", start: "2018-09-01", end: "2022-06-15", found: true},
		{input: "(2021-01-10 - present)", start: "2021-01-10", current: true, found: true},
		{input: "(2021-02-30 – 2022-01-01)", start: "", end: "2022-01-01", found: true},
		{input: "2018 - 2022", found: false},
		{input: "sometime last year", found: false},
		{input: "", found: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			r, _, found := FindDateRange(tt.input)
			assert.Equal(t, tt.found, found)
			assert.Equal(t, tt.start, r.Start.String())
			assert.Equal(t, tt.end, r.End.String())
			assert.Equal(t, tt.current, r.Current)
		})
	}
}

func TestOngoingRangeHasNoEndDate(t *testing.T) {
	t.Parallel()

	starts := []string{"Jan 2001", "February 2010", "Sept 2015", "Dec 2024"}
	markers := []string{"Present", "present", "PRESENT", "Current", "current"}
	seps := []string{" - ", " – ", " — ", " to ", "-"}

	for _, start := range starts {
		for _, marker := range markers {
			for _, sep := range seps {
				r := ParseDateRange(start + sep + marker)
				if !r.Current || r.End.Valid() || !r.Start.Valid() {
					t.Fatalf("%q: expected current range without end date, got %+v", start+sep+marker, r)
				}
			}
		}
	}
}

func TestParseMonthYear(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "2018-09-01", ParseMonthYear("September 2018").String())
	assert.Equal(t, "2018-09-01", ParseMonthYear("sep. 2018").String())
	assert.False(t, ParseMonthYear("Smarch 2018").Valid())
	assert.False(t, ParseMonthYear("June 0000").Valid())
}
