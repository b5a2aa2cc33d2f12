package util

import "unicode/utf8"

// TruncateUTF8 truncates a string to contain a maximum number of runes,
// cutting on a rune boundary so user input stays printable in logs.
// Returns true if the returned string is shorter than the input.
func TruncateUTF8(s string, maxRunes int) (string, bool) {
	if maxRunes < 0 {
		maxRunes = 0
	}
	if utf8.RuneCountInString(s) <= maxRunes {
		return s, false
	}
	runes := []rune(s)
	return string(runes[:maxRunes]), true
}
