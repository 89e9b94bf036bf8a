package value

import "fmt"

// AccessError reports why a single Query step could not be applied.
type AccessError struct {
	Query Query
	Msg   string
}

func (e *AccessError) Error() string {
	return fmt.Sprintf("cannot apply query step %v: %s", e.Query, e.Msg)
}

// AccessNext applies a single Query step to v, returning the child Value it
// selects (spec §4.2's "access_next"). An Object honors a key step by
// string equality against Key's String variant, and an index step (unless
// FromLast, which an Object has no well-defined meaning for) by looking up
// Key::Number(index) instead, matching a compound that happens to use
// integer keys. Array steps honor FromLast by converting to a front index
// as len-1-n, matching QueryIndex's negative-n convention.
func AccessNext[U Unit, T any](v Value[U, T], q Query) (Value[U, T], error) {
	switch v.Kind {
	case KindObject:
		if !q.IsKey {
			if q.FromLast {
				return zero[U, T](), &AccessError{Query: q, Msg: "object does not support a from-the-end index step"}
			}
			if v.Object == nil {
				return zero[U, T](), &AccessError{Query: q, Msg: "no such numeric key"}
			}
			val, ok := v.Object.Get(NumberKey(Int(int64(q.Index))))
			if !ok {
				return zero[U, T](), &AccessError{Query: q, Msg: "no such numeric key"}
			}
			return val, nil
		}
		if v.Object == nil {
			return zero[U, T](), &AccessError{Query: q, Msg: "no such key: " + q.Key}
		}
		val, ok := v.Object.Get(StringKey(q.Key))
		if !ok {
			return zero[U, T](), &AccessError{Query: q, Msg: "no such key: " + q.Key}
		}
		return val, nil

	case KindArray:
		if q.IsKey {
			return zero[U, T](), &AccessError{Query: q, Msg: "array requires an index step, got a key step"}
		}
		idx := q.Index
		if q.FromLast {
			idx = len(v.Array) - 1 - q.Index
		}
		if idx < 0 || idx >= len(v.Array) {
			return zero[U, T](), &AccessError{Query: q, Msg: "index out of range"}
		}
		return v.Array[idx], nil

	case KindAmount:
		// A key step against an Amount accesses one of its units: parsing
		// q.Key through the Amount's own codec and, on success, looking that
		// unit up among the Amount's (unit, number) pairs and returning a
		// freshly built numeric Value rather than reinterpreting v itself.
		// This is the non-unsafe replacement for the source's
		// Value<NoUnit,T>/Value<U,T> pointer cast (spec §9).
		if !q.IsKey || v.Amount == nil {
			return zero[U, T](), &AccessError{Query: q, Msg: "amount requires a unit-name key step"}
		}
		codec := v.Amount.Codec()
		if codec == nil {
			return zero[U, T](), &AccessError{Query: q, Msg: "amount has no unit codec"}
		}
		wantUnit, ok := codec.Parse(q.Key)
		if !ok {
			return zero[U, T](), &AccessError{Query: q, Msg: "unrecognized unit: " + q.Key}
		}
		num, ok := v.Amount.Get(wantUnit)
		if !ok {
			return zero[U, T](), &AccessError{Query: q, Msg: "amount has no entry for unit " + q.Key}
		}
		return NumberValue[U, T](num), nil

	default:
		return zero[U, T](), &AccessError{Query: q, Msg: "cannot index into a " + v.Kind.String()}
	}
}

// Access walks the full Query path from v, applying AccessNext at each
// step in order.
func Access[U Unit, T any](v Value[U, T], path []Query) (Value[U, T], error) {
	cur := v
	for _, q := range path {
		next, err := AccessNext(cur, q)
		if err != nil {
			return zero[U, T](), err
		}
		cur = next
	}
	return cur, nil
}

// SetOutcome reports what Set did at the final path step.
type SetOutcome int

const (
	// NotSet means the path could not be navigated to its final step
	// because a step does not fit the value it meets (a type mismatch
	// along the way). A missing intermediate object/array is created, not
	// reported as NotSet.
	NotSet SetOutcome = iota
	// SetNew means the final step created a new entry (object key or array
	// slot) that did not exist before.
	SetNew
	// Replaced means the final step overwrote an existing entry; Old holds
	// the value that was there.
	Replaced
)

// SetResult is the outcome of Set.
type SetResult[U Unit, T any] struct {
	Outcome SetOutcome
	Old     Value[U, T]
}

// Set writes v at the end of path inside root, creating intermediate
// Object/Array containers as needed, and returns what happened at the
// final step. Array growth pads intervening slots with Null, matching
// spec §4.2's array-extension behavior for a set one-past-the-end.
func Set[U Unit, T any](root *Value[U, T], path []Query, v Value[U, T]) (SetResult[U, T], error) {
	if len(path) == 0 {
		old := *root
		*root = v
		return SetResult[U, T]{Outcome: Replaced, Old: old}, nil
	}

	cur := root
	for i := 0; i < len(path)-1; i++ {
		q := path[i]
		child, err := descendForSet(cur, q)
		if err != nil {
			return SetResult[U, T]{Outcome: NotSet}, err
		}
		cur = child
	}

	last := path[len(path)-1]
	return setLast(cur, last, v)
}

// descendForSet returns a pointer to the child selected by q inside cur,
// materializing cur as an Object or Array (and the child as Null) if cur is
// currently Null — spec §4.2's "set creates missing intermediate
// containers" behavior.
func descendForSet[U Unit, T any](cur *Value[U, T], q Query) (*Value[U, T], error) {
	if cur.IsNull() {
		if q.IsKey {
			*cur = ObjectValue[U, T](NewObject[U, T]())
		} else {
			*cur = ArrayValue[U, T]()
		}
	}

	switch cur.Kind {
	case KindObject:
		var key Key
		if q.IsKey {
			key = StringKey(q.Key)
		} else {
			if q.FromLast {
				return nil, &AccessError{Query: q, Msg: "object does not support a from-the-end index step"}
			}
			key = NumberKey(Int(int64(q.Index)))
		}
		if cur.Object == nil {
			cur.Object = NewObject[U, T]()
		}
		if _, ok := cur.Object.Get(key); !ok {
			cur.Object.Set(key, Null[U, T]())
		}
		return objectSlotPointer(cur.Object, key), nil

	case KindArray:
		if q.IsKey {
			return nil, &AccessError{Query: q, Msg: "array requires an index step, got a key step"}
		}
		idx := q.Index
		if q.FromLast {
			idx = len(cur.Array) - 1 - q.Index
		}
		if idx < 0 {
			return nil, &AccessError{Query: q, Msg: "index out of range"}
		}
		for idx >= len(cur.Array) {
			cur.Array = append(cur.Array, Null[U, T]())
		}
		return &cur.Array[idx], nil

	default:
		return nil, &AccessError{Query: q, Msg: "cannot index into a " + cur.Kind.String()}
	}
}

// objectSlotPointer is a helper used by descendForSet: Object stores values
// directly, so a stable pointer into its backing slice is only valid until
// the next Set/Delete reallocates it. descendForSet always performs its one
// Set immediately before calling this, so the slice is not mutated again
// before the returned pointer is dereferenced by the caller's next step.
func objectSlotPointer[U Unit, T any](o *Object[U, T], k Key) *Value[U, T] {
	for i := range o.entries {
		if o.entries[i].Key.Equal(k) {
			return &o.entries[i].Val
		}
	}
	return nil
}

func setLast[U Unit, T any](cur *Value[U, T], q Query, v Value[U, T]) (SetResult[U, T], error) {
	if cur.IsNull() {
		if q.IsKey {
			*cur = ObjectValue[U, T](NewObject[U, T]())
		} else {
			*cur = ArrayValue[U, T]()
		}
	}

	switch cur.Kind {
	case KindObject:
		var key Key
		if q.IsKey {
			key = StringKey(q.Key)
		} else {
			if q.FromLast {
				return SetResult[U, T]{Outcome: NotSet}, &AccessError{Query: q, Msg: "object does not support a from-the-end index step"}
			}
			key = NumberKey(Int(int64(q.Index)))
		}
		if cur.Object == nil {
			cur.Object = NewObject[U, T]()
		}
		old, existed := cur.Object.Set(key, v)
		if existed {
			return SetResult[U, T]{Outcome: Replaced, Old: old}, nil
		}
		return SetResult[U, T]{Outcome: SetNew}, nil

	case KindArray:
		if q.IsKey {
			return SetResult[U, T]{Outcome: NotSet}, &AccessError{Query: q, Msg: "array requires an index step, got a key step"}
		}
		idx := q.Index
		if q.FromLast {
			idx = len(cur.Array) - 1 - q.Index
		}
		if idx < 0 {
			return SetResult[U, T]{Outcome: NotSet}, &AccessError{Query: q, Msg: "index out of range"}
		}
		if idx < len(cur.Array) {
			old := cur.Array[idx]
			cur.Array[idx] = v
			return SetResult[U, T]{Outcome: Replaced, Old: old}, nil
		}
		for idx > len(cur.Array) {
			cur.Array = append(cur.Array, Null[U, T]())
		}
		cur.Array = append(cur.Array, v)
		return SetResult[U, T]{Outcome: SetNew}, nil

	default:
		return SetResult[U, T]{Outcome: NotSet}, &AccessError{Query: q, Msg: "cannot index into a " + cur.Kind.String()}
	}
}

func zero[U Unit, T any]() Value[U, T] {
	var z Value[U, T]
	return z
}
