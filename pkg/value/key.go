package value

import "strings"

// KeyKind selects which of Key's three variants is populated.
type KeyKind int

const (
	KeyBool KeyKind = iota
	KeyNumber
	KeyString
)

// Key is a map key in the default Value model: a bool, a Number, or a
// string. Object and Amount maps are keyed by Key.
type Key struct {
	Kind KeyKind
	Bool bool
	Num  Number
	Str  string
}

// BoolKey, NumberKey and StringKey build a Key of the matching kind.
func BoolKey(b bool) Key     { return Key{Kind: KeyBool, Bool: b} }
func NumberKey(n Number) Key { return Key{Kind: KeyNumber, Num: n} }
func StringKey(s string) Key { return Key{Kind: KeyString, Str: s} }

// Equal reports whether two Keys denote the same map slot.
func (k Key) Equal(o Key) bool {
	if k.Kind != o.Kind {
		return false
	}
	switch k.Kind {
	case KeyBool:
		return k.Bool == o.Bool
	case KeyNumber:
		return k.Num.Equal(o.Num)
	default:
		return k.Str == o.Str
	}
}

// Compare imposes the total order over Keys that spec §3 requires of
// Object/Amount maps (deterministic sentence output). Kind is the primary
// sort key (bool < number < string), broken by the natural order within
// each kind.
func (k Key) Compare(o Key) int {
	if k.Kind != o.Kind {
		return int(k.Kind) - int(o.Kind)
	}
	switch k.Kind {
	case KeyBool:
		if k.Bool == o.Bool {
			return 0
		}
		if !k.Bool {
			return -1
		}
		return 1
	case KeyNumber:
		return k.Num.Compare(o.Num)
	default:
		return strings.Compare(k.Str, o.Str)
	}
}
