// Package humanize converts between Go identifier casing (PascalCase,
// camelCase, snake_case) and the lowercase, space-separated phrases NLSD
// reads and writes for field and variant names (spec §4.4/§4.5/§9).
//
// Consecutive uppercase runs are kept together as a single word ("UserID"
// -> "user id", "HTTPServer" -> "http server") rather than exploded letter
// by letter, matching the acronym-preservation behavior spec §9 calls out
// as a correctness requirement, not a cosmetic nicety.
//
// It lives under internal/ so both pkg/nlsd (the public API) and
// internal/engine (the reflection layer) can depend on it without the two
// depending on each other.
package humanize

import (
	"strings"
	"unicode"
)

// splitWords breaks an identifier into its constituent words without
// lowercasing them, splitting on '_', '-', ' ', and camelCase/acronym
// boundaries.
func splitWords(s string) []string {
	runes := []rune(s)
	var words []string
	var cur []rune

	flush := func() {
		if len(cur) > 0 {
			words = append(words, string(cur))
			cur = nil
		}
	}

	for i, r := range runes {
		switch {
		case r == '_' || r == '-' || r == ' ':
			flush()
		case unicode.IsUpper(r):
			if i > 0 {
				prev := runes[i-1]
				nextIsLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
				switch {
				case unicode.IsLower(prev) || unicode.IsDigit(prev):
					flush()
				case unicode.IsUpper(prev) && nextIsLower:
					flush()
				}
			}
			cur = append(cur, r)
		default:
			cur = append(cur, r)
		}
	}
	flush()
	return words
}

// Humanize converts a Go identifier into the lowercase, space-separated
// phrase NLSD emits for it ("AccessEvent" -> "access event").
func Humanize(name string) string {
	words := splitWords(name)
	for i, w := range words {
		words[i] = strings.ToLower(w)
	}
	return strings.Join(words, " ")
}

// Dehumanize normalizes an NLSD phrase to a canonical snake_case form,
// suitable for comparing against a struct tag or generated identifier
// ("access event" -> "access_event"). It does not attempt to recover
// original casing. internal/engine's field binding uses neither this nor
// Matches: it looks a field up by exact equality between the decoded key
// and Humanize(fieldName) or the field's nlsd tag.
func Dehumanize(phrase string) string {
	return strings.Join(strings.Fields(strings.ToLower(phrase)), "_")
}

// Matches reports whether phrase is the humanized form of fieldName,
// case-insensitively and tolerant of the phrase's own whitespace runs.
func Matches(phrase, fieldName string) bool {
	normalized := strings.Join(strings.Fields(strings.ToLower(phrase)), " ")
	return Humanize(fieldName) == normalized
}
