package nlsd

import "fmt"

// ErrorKind closes the taxonomy of errors Decode/Encode can return (spec
// §7), mirroring the shape encoding/json's *SyntaxError family: callers
// switch on Kind, or use errors.Is with an *Error target carrying the
// wanted Kind (see Error.Is), instead of matching on formatted text.
//
// Two rows of spec §7's table have no constructor anywhere in this module:
// ErrExpectedUnitVariant/ErrUnexpectedUnitVariant presuppose a typed
// visitor that announces "I expect this specific enum" before decoding
// starts; this package's single reflective decode path has no such layer
// (internal/engine/text.go's package doc explains why). They stay in the
// taxonomy for a variant-aware Unmarshaler built on top of this package to
// report through, the same way a caller's own MarshalNLSD/UnmarshalNLSD can
// return any error it likes. ErrUnknownVariant is reserved for the same
// reason. Every other Kind below is constructed somewhere in this module.
type ErrorKind int

const (
	// ErrSyntax covers input that ends where a token is required (spec's
	// Parse(UnexpectedEof)) and a date/time literal that does not match its
	// layout. A malformed string literal (an unterminated one, or one not
	// followed by whitespace) is read by the lexer as a plain word, and
	// that word, like any unrecognized one, is reported as ErrExpectedValue.
	ErrSyntax ErrorKind = iota
	// ErrExpectedValue covers a value/token shape mismatch not captured by
	// one of the more specific kinds below (spec's ExpectedBool/Null/
	// Integer/Float/Unsigned/Char/String family collapses here, since this
	// package's decode path has no per-kind typed visitor).
	ErrExpectedValue
	// ErrExpectedKeyword is spec's ExpectedKeyWord(w): a specific literal
	// keyword ("the", "where", "an", "item", "and", "another", "is",
	// "which") was required and the next token wasn't it.
	ErrExpectedKeyword
	// ErrExpectedObjectDescriptor is spec's ExpectedObjectDescriptor: after
	// "the [empty]", "list"/"object"/a quoted name was expected.
	ErrExpectedObjectDescriptor
	// ErrExpectedPrimitiveMapKey is spec's ExpectedPrimitiveMapKey: an
	// object entry's key position held a compound or the unit value.
	ErrExpectedPrimitiveMapKey
	// ErrExpectedStringMapKey is spec's ExpectedStringMapKey: a decoded key
	// wasn't a string where the Go destination (a map[string]T) needs one.
	ErrExpectedStringMapKey
	// ErrShouldBeDeclaredEmpty is spec's ShouldBeDeclaredEmpty: a compound's
	// first entry named a foreign scope, meaning it should have opened as
	// "the empty ...".
	ErrShouldBeDeclaredEmpty
	// ErrExpectedUnitVariant / ErrUnexpectedUnitVariant: reserved, see the
	// type doc above.
	ErrExpectedUnitVariant
	ErrUnexpectedUnitVariant
	// ErrUnknownField covers an object phrase naming a field the target
	// struct doesn't have.
	ErrUnknownField
	// ErrUnknownVariant: reserved, see the type doc above.
	ErrUnknownVariant
	// ErrTrailingInput covers leftover, non-whitespace input after a
	// document parses to completion under WithStrictEOF.
	ErrTrailingInput
	// ErrType covers a value of the wrong Kind being asked to decode into a
	// Go type it can't represent (a string into an int field).
	ErrType
	// ErrUnsupportedType covers Encode being asked to serialize a Go value
	// with no NLSD representation (a channel, a function).
	ErrUnsupportedType
	// ErrUnexpectedKeyType is spec's UnexpectedKeyType: Encode received a
	// map key that does not serialize to a back-tick string.
	ErrUnexpectedKeyType
)

func (k ErrorKind) String() string {
	switch k {
	case ErrSyntax:
		return "syntax"
	case ErrExpectedValue:
		return "expected value"
	case ErrExpectedKeyword:
		return "expected keyword"
	case ErrExpectedObjectDescriptor:
		return "expected object descriptor"
	case ErrExpectedPrimitiveMapKey:
		return "expected primitive map key"
	case ErrExpectedStringMapKey:
		return "expected string map key"
	case ErrShouldBeDeclaredEmpty:
		return "should be declared empty"
	case ErrExpectedUnitVariant:
		return "expected unit variant"
	case ErrUnexpectedUnitVariant:
		return "unexpected unit variant"
	case ErrUnknownField:
		return "unknown field"
	case ErrUnknownVariant:
		return "unknown variant"
	case ErrTrailingInput:
		return "trailing input"
	case ErrType:
		return "type mismatch"
	case ErrUnsupportedType:
		return "unsupported type"
	case ErrUnexpectedKeyType:
		return "unexpected key type"
	default:
		return "unknown error"
	}
}

// Error is the concrete error type Decode and Encode (and their variants)
// return for failures they detect themselves; an error from a caller's
// Marshaler, Unmarshaler or io.Writer is returned unchanged, and pkg/nloq
// reports its own *nloq.ParseError. Offset is the byte offset into the input where the failure was
// detected, or -1 when the error isn't input-position-specific (e.g. an
// encode-side ErrUnsupportedType).
type Error struct {
	Kind   ErrorKind
	Offset int
	Msg    string
	Err    error // wrapped cause, if any
}

func (e *Error) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("nlsd: %s at offset %d: %s", e.Kind, e.Offset, e.Msg)
	}
	return fmt.Sprintf("nlsd: %s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error with the same Kind, so callers can
// write errors.Is(err, &nlsd.Error{Kind: nlsd.ErrUnknownField}).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

func newError(kind ErrorKind, offset int, format string, args ...any) *Error {
	return &Error{Kind: kind, Offset: offset, Msg: fmt.Sprintf(format, args...)}
}

func wrapError(kind ErrorKind, offset int, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Offset: offset, Msg: fmt.Sprintf(format, args...), Err: cause}
}
