package core

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// NormalizeKeyword converts raw keyword input to its identifier form.
// "  Warm   Hearted " -> "warm hearted".
// Hangul typed as decomposed jamo is composed first so that visually
// identical keywords share an identifier.
func NormalizeKeyword(raw string) string {
	s := norm.NFC.String(raw)

	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return ' '
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)

	// Fields splits on runs of spaces, so joining collapses them and trims the ends.
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// NormalizeTitle lowercases and trims a title or author for comparison.
func NormalizeTitle(raw string) string {
	return strings.ToLower(strings.TrimSpace(norm.NFC.String(raw)))
}

// StripSpaces removes all whitespace from s.
func StripSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
