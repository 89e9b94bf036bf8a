package value

import "sort"

// AmountEntry pairs a single unit of type U with its Number (one entry of
// spec §3's Value::Amount(Map<U,Number>)).
type AmountEntry[U Unit] struct {
	Unit U
	Num  Number
}

// Amount holds one or more (unit, number) pairs plus the UnitCodec that
// knows how to parse/display/order U (spec §3's Amount(Map<U,Number>)). The
// codec travels with the value instead of living on Value itself, so
// building or reading an Amount never needs the unsafe cross-U cast the
// source implementation relies on (spec §9).
type Amount[U Unit] struct {
	entries []AmountEntry[U]
	codec   UnitCodec[U]
}

// NewAmount builds an Amount from one or more (unit, number) pairs, sorted
// into the codec's total order (spec.md:45's "Object/Amount maps preserve a
// total order over keys", needed for reproducible sentence output). A
// duplicate unit overwrites the earlier entry, matching the source's
// Map::insert semantics.
func NewAmount[U Unit](codec UnitCodec[U], entries ...AmountEntry[U]) *Amount[U] {
	a := &Amount[U]{codec: codec}
	for _, e := range entries {
		a.set(e.Unit, e.Num)
	}
	return a
}

func (a *Amount[U]) set(u U, n Number) {
	for i, e := range a.entries {
		if e.Unit == u {
			a.entries[i].Num = n
			return
		}
	}
	a.entries = append(a.entries, AmountEntry[U]{Unit: u, Num: n})
	sort.SliceStable(a.entries, func(i, j int) bool {
		if a.codec == nil {
			return false
		}
		return a.codec.Less(a.entries[i].Unit, a.entries[j].Unit)
	})
}

// Codec returns the UnitCodec this Amount was built with.
func (a *Amount[U]) Codec() UnitCodec[U] { return a.codec }

// Len reports how many (unit, number) pairs a holds. Spec.md:46 routes a
// length-1 Amount through the compact string wire form and any other
// length (including 0) through the tagged-object form.
func (a *Amount[U]) Len() int { return len(a.entries) }

// Entries returns a's pairs in the codec's total order. The returned slice
// must not be mutated by the caller.
func (a *Amount[U]) Entries() []AmountEntry[U] { return a.entries }

// Single returns a's lone pair when Len() == 1, and false otherwise.
func (a *Amount[U]) Single() (AmountEntry[U], bool) {
	if len(a.entries) != 1 {
		return AmountEntry[U]{}, false
	}
	return a.entries[0], true
}

// Get returns the Number stored against unit u, if any.
func (a *Amount[U]) Get(u U) (Number, bool) {
	for _, e := range a.entries {
		if e.Unit == u {
			return e.Num, true
		}
	}
	return Number{}, false
}

// DisplayUnit formats u via a's codec.
func (a *Amount[U]) DisplayUnit(u U) string {
	if a.codec == nil {
		return ""
	}
	return a.codec.Display(u)
}

// Equal reports whether two Amounts hold the same (unit, number) pairs in
// the same order.
func (a *Amount[U]) Equal(b *Amount[U]) bool {
	if a == nil || b == nil {
		return a == b
	}
	if len(a.entries) != len(b.entries) {
		return false
	}
	for i, e := range a.entries {
		o := b.entries[i]
		if e.Unit != o.Unit || !e.Num.Equal(o.Num) {
			return false
		}
	}
	return true
}

// Compare orders two Amounts entry-by-entry in codec order; a shorter
// Amount that is a prefix of a longer one sorts first.
func (a *Amount[U]) Compare(b *Amount[U]) int {
	for i := 0; i < len(a.entries) && i < len(b.entries); i++ {
		ea, eb := a.entries[i], b.entries[i]
		if ea.Unit != eb.Unit {
			if a.codec != nil && a.codec.Less(ea.Unit, eb.Unit) {
				return -1
			}
			return 1
		}
		if c := ea.Num.Compare(eb.Num); c != 0 {
			return c
		}
	}
	switch {
	case len(a.entries) < len(b.entries):
		return -1
	case len(a.entries) > len(b.entries):
		return 1
	default:
		return 0
	}
}
