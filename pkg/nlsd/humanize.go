package nlsd

import "github.com/shapestone/shape-nlsd/internal/humanize"

// Humanize converts a Go identifier into the lowercase, space-separated
// phrase NLSD emits for it ("AccessEvent" -> "access event"). Exposed
// publicly so callers can predict or test the field/variant phrases a
// struct will round-trip through.
func Humanize(name string) string { return humanize.Humanize(name) }

// Dehumanize normalizes an NLSD phrase to canonical snake_case.
func Dehumanize(phrase string) string { return humanize.Dehumanize(phrase) }

// MatchesField reports whether phrase is the humanized form of fieldName.
func MatchesField(phrase, fieldName string) bool { return humanize.Matches(phrase, fieldName) }
