package engine

import "fmt"

// ErrorKind is engine's own closed error taxonomy — a mirror of
// pkg/nlsd.ErrorKind kept in a lower package so engine never has to import
// pkg/nlsd (which itself imports engine). pkg/nlsd's public entry points
// translate an *engine.Error into an *nlsd.Error with the matching Kind.
//
// The split follows spec §7's per-condition table as closely as this
// engine's architecture allows. Two rows of that table have no home here:
// ExpectedUnitVariant/UnexpectedUnitVariant presuppose a typed visitor that
// announces "I expect this specific enum" before decoding starts (text.go's
// package doc explains why this engine's single dynamic decode path doesn't
// have one) — they stay in the taxonomy so a variant-aware Unmarshaler
// built on top of this package has somewhere to report that mismatch, but
// nothing in this package ever constructs them. Similarly, spec's
// ExpectedBool/Null/Integer/Float/Unsigned/Char/String family assumes a
// typed visitor per call site; this engine's untyped parseValue/
// parsePrimitiveToken report any such mismatch under the single
// errKindExpectedValue bucket instead.
type ErrorKind int

const (
	// errKindSyntax wraps a *token.ParseError, with Unwrap() exposing the
	// original token.ErrorKind. Since token.ParseNext falls back to a plain
	// word when a string or number literal is malformed, the one kind that
	// reaches here is UnexpectedEOF (spec's Parse(UnexpectedEof)). It also
	// covers a date/time literal that does not parse against its layout;
	// that error has no wrapped cause.
	errKindSyntax ErrorKind = iota
	// errKindExpectedValue covers parseValue/parsePrimitiveToken finding no
	// token shape it recognizes as any value at all.
	errKindExpectedValue
	// errKindExpectedKeyword is spec's ExpectedKeyWord(w): expectWord
	// required a specific literal ("the", "where", "an", "item", "and",
	// "another", "is", "which") and the next token wasn't it.
	errKindExpectedKeyword
	// errKindExpectedObjectDescriptor is spec's ExpectedObjectDescriptor:
	// after "the [empty]", parseName wanted "list"/"object"/a quoted name
	// and got something else.
	errKindExpectedObjectDescriptor
	// errKindExpectedPrimitiveMapKey is spec's ExpectedPrimitiveMapKey: an
	// object entry's key position held a compound or the unit value instead
	// of a primitive.
	errKindExpectedPrimitiveMapKey
	// errKindExpectedStringMapKey is spec's ExpectedStringMapKey: a decoded
	// key wasn't KeyString where the Go destination (a map[string]T) needs
	// one.
	errKindExpectedStringMapKey
	// errKindShouldBeDeclaredEmpty is spec's ShouldBeDeclaredEmpty: a
	// compound's very first entry named a foreign scope, meaning the
	// compound should have opened as "the empty ...".
	errKindShouldBeDeclaredEmpty
	// errKindExpectedUnitVariant / errKindUnexpectedUnitVariant: reserved,
	// see the type doc above.
	errKindExpectedUnitVariant
	errKindUnexpectedUnitVariant
	// errKindUnknownField covers an object phrase naming a field the target
	// struct doesn't have — bindStruct raises this for any object entry its
	// field table doesn't consume.
	errKindUnknownField
	// errKindUnknownVariant: reserved, see the type doc above — nothing in
	// this reflective bridge dispatches on a known-variant set today.
	errKindUnknownVariant
	// errKindTrailingInput covers leftover, non-whitespace input after a
	// document parses to completion under WithStrictEOF.
	errKindTrailingInput
	// errKindType covers a value of the wrong Kind being asked to decode
	// into a Go type it can't represent (a string into an int field).
	errKindType
	// errKindUnsupportedType covers Encode being asked to serialize a Go
	// value with no NLSD representation (a channel, a function).
	errKindUnsupportedType
	// errKindUnexpectedKeyType is spec's UnexpectedKeyType: Encode received
	// a Go map whose key type doesn't serialize to a back-tick string (a
	// struct, pointer, slice, or map key).
	errKindUnexpectedKeyType
)

// Kind values exported for pkg/nlsd's translation switch.
const (
	KindSyntax                    = errKindSyntax
	KindExpectedValue             = errKindExpectedValue
	KindExpectedKeyword           = errKindExpectedKeyword
	KindExpectedObjectDescriptor  = errKindExpectedObjectDescriptor
	KindExpectedPrimitiveMapKey   = errKindExpectedPrimitiveMapKey
	KindExpectedStringMapKey      = errKindExpectedStringMapKey
	KindShouldBeDeclaredEmpty     = errKindShouldBeDeclaredEmpty
	KindExpectedUnitVariant       = errKindExpectedUnitVariant
	KindUnexpectedUnitVariant     = errKindUnexpectedUnitVariant
	KindUnknownField              = errKindUnknownField
	KindUnknownVariant            = errKindUnknownVariant
	KindTrailingInput             = errKindTrailingInput
	KindType                      = errKindType
	KindUnsupportedType           = errKindUnsupportedType
	KindUnexpectedKeyType         = errKindUnexpectedKeyType
)

// Error is the error type every function in this package returns.
type Error struct {
	Kind   ErrorKind
	Offset int
	Msg    string
	Err    error
}

func (e *Error) Error() string {
	if e.Offset < 0 {
		return fmt.Sprintf("engine: %s: %s", e.kindString(), e.Msg)
	}
	return fmt.Sprintf("engine: %s at offset %d: %s", e.kindString(), e.Offset, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) kindString() string {
	switch e.Kind {
	case errKindSyntax:
		return "syntax"
	case errKindExpectedValue:
		return "expected value"
	case errKindExpectedKeyword:
		return "expected keyword"
	case errKindExpectedObjectDescriptor:
		return "expected object descriptor"
	case errKindExpectedPrimitiveMapKey:
		return "expected primitive map key"
	case errKindExpectedStringMapKey:
		return "expected string map key"
	case errKindShouldBeDeclaredEmpty:
		return "should be declared empty"
	case errKindExpectedUnitVariant:
		return "expected unit variant"
	case errKindUnexpectedUnitVariant:
		return "unexpected unit variant"
	case errKindUnknownField:
		return "unknown field"
	case errKindUnknownVariant:
		return "unknown variant"
	case errKindTrailingInput:
		return "trailing input"
	case errKindType:
		return "type mismatch"
	case errKindUnsupportedType:
		return "unsupported type"
	case errKindUnexpectedKeyType:
		return "unexpected key type"
	default:
		return "unknown"
	}
}

func newError(kind ErrorKind, offset int, format string, args ...any) *Error {
	return &Error{Kind: kind, Offset: offset, Msg: fmt.Sprintf(format, args...)}
}

func wrapError(kind ErrorKind, offset int, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Offset: offset, Msg: fmt.Sprintf(format, args...), Err: cause}
}
