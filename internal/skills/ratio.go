package skills

import (
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// Ratio is the edit-distance similarity of a and b on a 0-100 scale:
// 100 * (1 - distance / longer length). Two empty strings are identical.
func Ratio(a, b string) float64 {
	la, lb := utf8.RuneCountInString(a), utf8.RuneCountInString(b)
	longest := max(la, lb)
	if longest == 0 {
		return 100
	}
	d := levenshtein.ComputeDistance(a, b)
	return 100 * (1 - float64(d)/float64(longest))
}
