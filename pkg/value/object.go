package value

import "sort"

// entry is one Object slot. seq records insertion order (the order Set
// first saw this key), independent of the slice's Key.Compare position —
// RangeInsertion replays entries in this order for a caller that asked for
// it (WithMapOrdering's insertion-order mode).
type entry[U Unit, T any] struct {
	Key Key
	Val Value[U, T]
	seq int
}

// Object is a Value map keyed by Key, always iterated in Key.Compare order
// by default. Spec §5 requires NLSD/NLOQ to commit to one deterministic,
// documented map ordering; this module uses key-sorted order, the same
// choice the teacher's marshaler makes for Go map output (sort.Slice over
// collected keys before writing) — Range/Get/Set/Delete all depend on this
// sorted invariant for their binary search. RangeInsertion offers an
// alternate traversal for a caller willing to trade that default for the
// order keys first appeared in, without disturbing the sorted storage
// lookups everywhere else rely on.
//
// Object keeps its entries in a slice sorted by Key.Compare and finds a key
// by binary search, rather than wrapping a Go map, because Key is not
// itself comparable the way map keys must be (it embeds a Number, which
// mixes int64 and float64 representations of the same value).
type Object[U Unit, T any] struct {
	entries []entry[U, T]
	nextSeq int
}

// NewObject builds an empty Object.
func NewObject[U Unit, T any]() *Object[U, T] {
	return &Object[U, T]{}
}

func (o *Object[U, T]) search(k Key) (int, bool) {
	i := sort.Search(len(o.entries), func(i int) bool {
		return o.entries[i].Key.Compare(k) >= 0
	})
	if i < len(o.entries) && o.entries[i].Key.Equal(k) {
		return i, true
	}
	return i, false
}

// Get looks up k, returning its value and whether it was present.
func (o *Object[U, T]) Get(k Key) (Value[U, T], bool) {
	i, ok := o.search(k)
	if !ok {
		var zero Value[U, T]
		return zero, false
	}
	return o.entries[i].Val, true
}

// Set inserts or replaces the value at k, returning the previous value (if
// any) and whether one existed.
func (o *Object[U, T]) Set(k Key, v Value[U, T]) (Value[U, T], bool) {
	i, ok := o.search(k)
	if ok {
		old := o.entries[i].Val
		o.entries[i].Val = v
		return old, true
	}
	o.entries = append(o.entries, entry[U, T]{})
	copy(o.entries[i+1:], o.entries[i:])
	o.entries[i] = entry[U, T]{Key: k, Val: v, seq: o.nextSeq}
	o.nextSeq++
	var zero Value[U, T]
	return zero, false
}

// Delete removes k if present, returning its value and whether it existed.
func (o *Object[U, T]) Delete(k Key) (Value[U, T], bool) {
	i, ok := o.search(k)
	if !ok {
		var zero Value[U, T]
		return zero, false
	}
	old := o.entries[i].Val
	o.entries = append(o.entries[:i], o.entries[i+1:]...)
	return old, true
}

// Len returns the number of entries.
func (o *Object[U, T]) Len() int { return len(o.entries) }

// Keys returns the Object's keys in Key.Compare order.
func (o *Object[U, T]) Keys() []Key {
	keys := make([]Key, len(o.entries))
	for i, e := range o.entries {
		keys[i] = e.Key
	}
	return keys
}

// Range calls fn for every entry in Key.Compare order, stopping early if fn
// returns false.
func (o *Object[U, T]) Range(fn func(Key, Value[U, T]) bool) {
	for _, e := range o.entries {
		if !fn(e.Key, e.Val) {
			return
		}
	}
}

// RangeInsertion calls fn for every entry in the order its key was first
// Set, stopping early if fn returns false. A key's position is fixed at
// first insertion; overwriting its value with a later Set does not move it.
func (o *Object[U, T]) RangeInsertion(fn func(Key, Value[U, T]) bool) {
	ordered := make([]entry[U, T], len(o.entries))
	copy(ordered, o.entries)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].seq < ordered[j].seq })
	for _, e := range ordered {
		if !fn(e.Key, e.Val) {
			return
		}
	}
}
