package textutil

import (
	"strings"
	"unicode"
)

// NormalizeTitle prepares a title for comparison: lowercase, symbol
// replacement, punctuation stripped, internal whitespace collapsed to single
// spaces, leading/trailing whitespace trimmed. Returns "" for titles with no
// comparable content.
func NormalizeTitle(input string) string {
	if strings.TrimSpace(input) == "" {
		return ""
	}
	// Replace common symbols with word equivalents first so "Fast & Furious"
	// and "Fast and Furious" normalize identically.
	lowered := strings.ToLower(input)
	lowered = strings.ReplaceAll(lowered, "&", " and ")
	lowered = strings.ReplaceAll(lowered, "+", " and ")

	var b strings.Builder
	prevSpace := true
	for _, r := range lowered {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			b.WriteRune(r)
			prevSpace = false
		case unicode.IsSpace(r), r == '-', r == '_', r == '.', r == ':':
			if !prevSpace {
				b.WriteRune(' ')
				prevSpace = true
			}
		}
	}
	return strings.TrimSpace(b.String())
}
