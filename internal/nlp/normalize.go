package nlp

import (
	"strings"
	"unicode"
)

// Normalize cleans raw user text: trims, collapses internal whitespace, and
// strips any character outside a small allow-list (letters, digits,
// whitespace, and ",.:-'"). The colon and apostrophe survive so that "3:30"
// and "dentist's" reach the matchers intact. Pure and total: never fails.
func Normalize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))

	lastSpace := false
	for _, r := range raw {
		switch {
		case unicode.IsSpace(r):
			if !lastSpace {
				b.WriteByte(' ')
				lastSpace = true
			}
		case unicode.IsLetter(r) || unicode.IsDigit(r) || allowedPunct(r):
			b.WriteRune(r)
			lastSpace = false
		default:
			// dropped
		}
	}
	return strings.TrimSpace(b.String())
}

func allowedPunct(r rune) bool {
	switch r {
	case ',', '.', ':', '-', '\'':
		return true
	}
	return false
}
