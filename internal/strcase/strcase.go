// Package strcase provides string-level case predicates with the exact
// semantics the codecs' training statistics were defined over:
// Capitalize title-cases the first rune and lowercases the rest, and
// IsUpper requires at least one uppercase rune and no lowercase or
// titlecase rune anywhere in the string.
//
// cases.Title from golang.org/x/text segments its input into words and
// title-cases each one, which diverges from these predicates on
// multi-rune and apostrophe-bearing tokens; the encode/decode round
// trip depends on the predicates matching the trainer bit for bit, so
// they are implemented directly.
//
// All functions are safe for concurrent use.
package strcase

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Capitalize returns s with the first rune title-cased and every
// following rune lowercased. The empty string is returned unchanged.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	var b strings.Builder
	b.Grow(len(s))
	b.WriteRune(unicode.ToTitle(r))
	b.WriteString(strings.ToLower(s[size:]))
	return b.String()
}

// IsUpper reports whether s contains at least one uppercase rune and no
// lowercase or titlecase rune. Caseless runes (digits, punctuation,
// CJK) are ignored, so "ABC-1" is uppercase but "123" is not.
func IsUpper(s string) bool {
	hasUpper := false
	for _, r := range s {
		if unicode.IsLower(r) || unicode.IsTitle(r) {
			return false
		}
		if unicode.IsUpper(r) {
			hasUpper = true
		}
	}
	return hasUpper
}

// HasCase reports whether lowercasing and uppercasing s disagree, i.e.
// whether s carries any case distinction at all.
func HasCase(s string) bool {
	return strings.ToUpper(s) != strings.ToLower(s)
}
