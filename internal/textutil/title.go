package textutil

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// yearSuffixPattern matches a trailing parenthesized or bracketed release
// year, e.g. "Inception (2010)" or "Inception [2010]".
var yearSuffixPattern = regexp.MustCompile(`^(.*?)[\s._-]*[(\[](\d{4})[)\]]\s*$`)

// ParseFolderName splits a library folder name into a display title and an
// optional release year. Year is 0 when the folder name carries none.
func ParseFolderName(name string) (string, int) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", 0
	}
	if m := yearSuffixPattern.FindStringSubmatch(name); m != nil {
		year, err := strconv.Atoi(m[2])
		if err == nil && year >= 1888 && year <= 2200 {
			return strings.TrimSpace(m[1]), year
		}
	}
	return name, 0
}

// CleanTitle turns a raw folder or release name into a human-readable title:
// separators become spaces, punctuation is dropped, and the result is
// title-cased.
func CleanTitle(name string) string {
	cleaned := strings.Builder{}
	prevSpace := false
	for _, r := range name {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r) || r == '\'':
			cleaned.WriteRune(r)
			prevSpace = false
		case unicode.IsSpace(r) || r == '-' || r == '_' || r == '.':
			if !prevSpace {
				cleaned.WriteRune(' ')
				prevSpace = true
			}
		}
	}
	title := strings.TrimSpace(cleaned.String())
	if title == "" {
		return ""
	}
	return cases.Title(language.Und).String(title)
}

// DeriveTitle produces a human-readable title from a filesystem path by
// cleaning the base name: the extension and any trailing year marker are
// dropped before cleaning.
func DeriveTitle(sourcePath string) string {
	if sourcePath == "" {
		return ""
	}
	base := filepath.Base(filepath.Clean(sourcePath))
	base, year := ParseFolderName(base)
	if year == 0 {
		base = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return CleanTitle(base)
}
