// Package nloq implements the Natural Language Object Query deserializer:
// turning a phrase like "the name of the user of the access event" into an
// ordered sequence of value.Query steps that can be run against a
// value.Value document with value.Access.
//
// NLOQ phrases read leaf-first: "X of Y" means "X, inside Y". The
// deserializer therefore parses surface phrases in the order they appear
// and reverses them at the end, so the returned []value.Query runs
// outermost (the document root) first, the way value.Access expects to
// walk it.
package nloq

import (
	"strconv"
	"strings"

	"github.com/shapestone/shape-nlsd/pkg/value"
)

// ordinalWords maps the English ordinal names NLOQ accepts (spec's "first"
// through "twelfth") to their zero-based index.
var ordinalWords = map[string]int{
	"first": 0, "second": 1, "third": 2, "fourth": 3,
	"fifth": 4, "sixth": 5, "seventh": 6, "eighth": 7,
	"ninth": 8, "tenth": 9, "eleventh": 10, "twelfth": 11,
}

var articlePrefixes = []string{"the ", "a ", "an "}

// Iterator walks an NLOQ phrase one "of"-separated segment at a time, in
// surface (leaf-first) order. Use Parse for the common case of consuming
// the whole phrase at once; Iterator is exposed for callers that need to
// stop partway and inspect what's left (Rest).
type Iterator struct {
	segments []string
	pos      int
}

// NewIterator splits phrase at each standalone "of" word and prepares to
// walk its segments leaf-first (the order they appear on the page). Two
// "of"s in a row, or a leading or trailing "of", leave an empty segment,
// which Next reports as an error.
func NewIterator(phrase string) *Iterator {
	var segs, cur []string
	for _, w := range strings.Fields(phrase) {
		if w == "of" {
			segs = append(segs, strings.Join(cur, " "))
			cur = nil
			continue
		}
		cur = append(cur, w)
	}
	segs = append(segs, strings.Join(cur, " "))
	return &Iterator{segments: segs}
}

// Next parses and returns the next surface-order segment as a Query step.
// The second return value is false once every segment has been consumed.
func (it *Iterator) Next() (value.Query, bool, error) {
	if it.pos >= len(it.segments) {
		return value.Query{}, false, nil
	}
	seg := it.segments[it.pos]
	it.pos++
	q, err := parseSegment(seg)
	if err != nil {
		return value.Query{}, false, err
	}
	return q, true, nil
}

// Rest joins the not-yet-consumed segments back into a single phrase,
// reconstructing the " of " separators.
func (it *Iterator) Rest() string {
	if it.pos >= len(it.segments) {
		return ""
	}
	return strings.Join(it.segments[it.pos:], " of ")
}

// Parse turns a full NLOQ phrase into an outermost-first Query sequence.
func Parse(phrase string) ([]value.Query, error) {
	it := NewIterator(phrase)
	var surface []value.Query
	for {
		q, ok, err := it.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		surface = append(surface, q)
	}
	reverse(surface)
	return surface, nil
}

func reverse(qs []value.Query) {
	for i, j := 0, len(qs)-1; i < j; i, j = i+1, j-1 {
		qs[i], qs[j] = qs[j], qs[i]
	}
}

// parseSegment classifies one leaf-first segment as either an ordinal/index
// step ("the first item", "the 3rd item", "the last item", "the second to
// last item") or a key step ("the access event", "name"). A segment that
// does not end in "item" is always a key step.
func parseSegment(seg string) (value.Query, error) {
	trimmed := seg
	for _, prefix := range articlePrefixes {
		if strings.HasPrefix(strings.ToLower(trimmed), prefix) {
			trimmed = trimmed[len(prefix):]
			break
		}
	}
	words := strings.Fields(trimmed)
	if len(words) == 0 {
		return value.Query{}, &ParseError{Segment: seg, Msg: "empty query segment"}
	}

	if q, ok := parseOrdinalStep(words); ok {
		return q, nil
	}

	return value.QueryKey(strings.Join(words, " ")), nil
}

// parseOrdinalStep recognizes the three index forms the grammar requires a
// trailing "item" keyword for: "last item", "ORDINAL item", and "ORDINAL to
// last item". Without that trailing "item" the words are just a key phrase
// — "first name"/"last name" are ordinary field names, not index steps, so
// this only ever matches when "item" is the very next word (or two words
// later, for the "to last item" form).
func parseOrdinalStep(words []string) (value.Query, bool) {
	lower := strings.ToLower(words[0])

	if lower == "last" {
		if len(words) >= 2 && strings.ToLower(words[1]) == "item" {
			return value.QueryIndexFromLast(0), true
		}
		return value.Query{}, false
	}

	n, ok := parseOrdinalWord(lower)
	if !ok {
		return value.Query{}, false
	}

	if len(words) >= 4 && strings.ToLower(words[1]) == "to" &&
		strings.ToLower(words[2]) == "last" && strings.ToLower(words[3]) == "item" {
		return value.QueryIndexFromLast(n - 1), true
	}

	if len(words) >= 2 && strings.ToLower(words[1]) == "item" {
		return value.QueryIndex(n - 1), true
	}

	return value.Query{}, false
}

// parseOrdinalWord recognizes "first".."twelfth" and a digit run with an
// ordinal suffix ("1st", "22nd", "103rd", "4th"), returning a 1-based
// ordinal. It does not recognize plain cardinal numbers ("two") as indices
// — those remain key phrases, matching the spec's ordinal-only index
// grammar.
func parseOrdinalWord(lower string) (int, bool) {
	if n, isOrdinal := ordinalWords[lower]; isOrdinal {
		return n + 1, true
	}
	if n, isSuffixed := parseDigitOrdinal(lower); isSuffixed {
		return n, true
	}
	return 0, false
}

func parseDigitOrdinal(word string) (int, bool) {
	for _, suffix := range []string{"st", "nd", "rd", "th"} {
		if strings.HasSuffix(word, suffix) && len(word) > len(suffix) {
			digits := word[:len(word)-len(suffix)]
			n, err := strconv.Atoi(digits)
			if err != nil || n < 1 {
				return 0, false
			}
			return n, true
		}
	}
	return 0, false
}

// ParseError reports a malformed NLOQ segment.
type ParseError struct {
	Segment string
	Msg     string
}

func (e *ParseError) Error() string {
	return "nloq: " + e.Msg + ": " + strconv.Quote(e.Segment)
}
