package parsing

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Ratio returns the longest-matching-block similarity of a and b:
// twice the number of matched characters over the total length of both strings.
// Two empty strings have ratio 1.
func Ratio(a, b string) float64 {
	m := difflib.NewMatcher(splitChars(a), splitChars(b))
	return m.Ratio()
}

// splitChars splits s into one element per character
func splitChars(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.Split(s, "")
}
