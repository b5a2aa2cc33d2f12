package util

import (
	"strings"
	"unicode"
)

// TitleWords upper-cases the first letter of every run of letters and
// lower-cases the rest, so "new york" and "SAINT-ETIENNE" become "New York"
// and "Saint-Etienne".
func TitleWords(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inWord := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if inWord {
				r = unicode.ToLower(r)
			} else {
				r = unicode.ToUpper(r)
			}
			inWord = true
		} else {
			inWord = false
		}
		b.WriteRune(r)
	}
	return b.String()
}
