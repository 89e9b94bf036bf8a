// Package value implements the generic Value data model shared by NLSD and
// NLOQ (spec §3/§4.2): a tagged variant over null, bool, number, amount,
// string, date/time, array, object, and an opaque custom payload, plus the
// Key/Number/Query types used to index into it.
//
// Value is generic over a unit type U (for Amount) and a custom payload
// type T (for Custom), exactly as spec.md's Value<U,T>. The source this
// spec was distilled from reaches Amount's unit-keyed number by an unsafe
// pointer transmute between Value<NoUnit,T> and Value<U,T> (see spec §9).
// That has no safe Go equivalent and isn't needed: AccessNext below builds
// the child Value directly from the parsed amount entry instead of casting
// anything, which is also what spec §9 recommends ("replace the cast with
// an explicit match that is statically impossible to reach").
package value

import "fmt"

// Unit is the constraint satisfied by a caller-supplied unit type. Parsing
// from string, total ordering, and display-as-string — the three
// capabilities spec §3 asks of U — are supplied separately via a
// UnitCodec[U], not as methods on U itself, so that plain comparable types
// (including string) can be used as units without extra boilerplate.
type Unit interface {
	comparable
}

// UnitCodec supplies the parse/order/display capabilities spec §3 requires
// of a Value's unit type. Construct one per unit vocabulary (e.g. a
// "weight units" codec, a "currency" codec) and pass it wherever an Amount
// is built or queried.
type UnitCodec[U Unit] interface {
	Parse(s string) (U, bool)
	Display(u U) string
	Less(a, b U) bool
}

// NoUnit is the zero-sized unit type used when a Value's domain has no
// Amount values at all — the default Value instantiation (Value[NoUnit,
// any]) never constructs an Amount, but still has to name a unit type to
// satisfy the generic signature.
type NoUnit struct{}

// NoUnitCodec is a UnitCodec[NoUnit] that parses nothing — correct for a
// domain that never uses Amount.
type NoUnitCodec struct{}

func (NoUnitCodec) Parse(string) (NoUnit, bool) { return NoUnit{}, false }
func (NoUnitCodec) Display(NoUnit) string       { return "" }
func (NoUnitCodec) Less(a, b NoUnit) bool       { return false }

// Any is the default custom-payload type: an opaque value the engine
// passes through without interpreting.
type Any = any

// Default is the Value instantiation used when no user-defined schema is
// supplied (spec §2): no units, opaque interface{} custom payloads.
type Default = Value[NoUnit, Any]

// Kind selects which of Value's variants is populated.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindAmount
	KindString
	KindDateTime
	KindDate
	KindTime
	KindArray
	KindObject
	KindCustom
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindAmount:
		return "amount"
	case KindString:
		return "string"
	case KindDateTime:
		return "datetime"
	case KindDate:
		return "date"
	case KindTime:
		return "time"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	case KindCustom:
		return "custom"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Value is the generic tagged-variant data model described by spec §3.
//
// Name is one addition spec §3's Value<U,T> doesn't carry: the source
// keeps a compound's declared NAME/variant tag (§6's NAME grammar, §4.4's
// enum-with-known-variants visitor) on the *visitor* side, never in the
// Value itself, because a separate visitor layer threads that name from
// the wire straight into the caller's struct/enum constructor. Without a
// visitor layer of our own (§1 treats the host serialization framework's
// visitor/seed contract as an external collaborator this module doesn't
// reimplement), a KindArray/KindObject built by the untyped decode path
// has nowhere else to keep a named compound's tag for later re-encoding,
// so it rides along on Value itself. Empty for the anonymous "list"/
// "object" keyword form; set to the humanized type/variant name otherwise.
type Value[U Unit, T any] struct {
	Kind Kind
	Name string

	Bool   bool
	Num    Number
	Amount *Amount[U]
	Str    string
	// Temporal holds the wall-clock value for KindDateTime/KindDate/KindTime.
	// The three textual formats named in spec §3 ("a companion,
	// datetime-parsing library... treated as opaque") are read/written by
	// internal/engine's datetime codec; Value itself only carries the
	// parsed instant plus which of the three textual shapes it came from
	// (recorded by Kind, not by a separate flag).
	Temporal Time
	Array    []Value[U, T]
	Object   *Object[U, T]
	Custom   T
}

// Null, Bool, Num, Str, Array and Object are convenience constructors.

func Null[U Unit, T any]() Value[U, T] { return Value[U, T]{Kind: KindNull} }

func BoolValue[U Unit, T any](b bool) Value[U, T] {
	return Value[U, T]{Kind: KindBool, Bool: b}
}

func NumberValue[U Unit, T any](n Number) Value[U, T] {
	return Value[U, T]{Kind: KindNumber, Num: n}
}

func StringValue[U Unit, T any](s string) Value[U, T] {
	return Value[U, T]{Kind: KindString, Str: s}
}

func ArrayValue[U Unit, T any](items ...Value[U, T]) Value[U, T] {
	return Value[U, T]{Kind: KindArray, Array: items}
}

func ObjectValue[U Unit, T any](obj *Object[U, T]) Value[U, T] {
	return Value[U, T]{Kind: KindObject, Object: obj}
}

func AmountValue[U Unit, T any](a *Amount[U]) Value[U, T] {
	return Value[U, T]{Kind: KindAmount, Amount: a}
}

func CustomValue[U Unit, T any](payload T) Value[U, T] {
	return Value[U, T]{Kind: KindCustom, Custom: payload}
}

// IsNull reports whether v is the null/unit value.
func (v Value[U, T]) IsNull() bool { return v.Kind == KindNull }
