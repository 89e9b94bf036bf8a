package engine

import (
	"fmt"
	"reflect"
	"time"

	"github.com/shapestone/shape-nlsd/internal/humanize"
	"github.com/shapestone/shape-nlsd/pkg/value"
)

// FromGo converts a Go value into the generic Value tree the text encoder
// walks, the inverse of ToGo. Unsupported kinds (chan, func, complex,
// unsafe.Pointer) report ErrUnsupportedType to the caller rather than
// panicking.
func FromGo(rv reflect.Value) (V, error) {
	if rv.Type() == timeType {
		return V{Kind: value.KindDateTime, Temporal: value.NewTime(rv.Interface().(time.Time))}, nil
	}

	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return value.Null[string, value.Any](), nil
		}
		return FromGo(rv.Elem())

	case reflect.Bool:
		return value.BoolValue[string, value.Any](rv.Bool()), nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return value.NumberValue[string, value.Any](value.Int(rv.Int())), nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return value.NumberValue[string, value.Any](value.Int(int64(rv.Uint()))), nil

	case reflect.Float32, reflect.Float64:
		return value.NumberValue[string, value.Any](value.Float(rv.Float())), nil

	case reflect.String:
		return value.StringValue[string, value.Any](rv.String()), nil

	case reflect.Slice:
		if rv.IsNil() {
			return value.Null[string, value.Any](), nil
		}
		fallthrough
	case reflect.Array:
		items := make([]V, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			item, err := FromGo(rv.Index(i))
			if err != nil {
				return V{}, err
			}
			items[i] = item
		}
		return value.ArrayValue[string, value.Any](items...), nil

	case reflect.Map:
		return mapFromGo(rv)

	case reflect.Struct:
		return structFromGo(rv)

	default:
		return V{}, newError(KindUnsupportedType, -1, "cannot encode %s", rv.Type())
	}
}

func structFromGo(rv reflect.Value) (V, error) {
	obj := value.NewObject[string, value.Any]()
	for _, f := range collectFields(rv.Type()) {
		fv := rv.FieldByIndex(f.Index)
		if f.OmitEmpty && isEmptyValue(fv) {
			continue
		}
		child, err := FromGo(fv)
		if err != nil {
			return V{}, fmt.Errorf("field %q: %w", f.Phrase, err)
		}
		obj.Set(value.StringKey(f.Phrase), child)
	}
	v := value.ObjectValue[string, value.Any](obj)
	v.Name = structVariantName(rv.Type())
	return v, nil
}

// structVariantName returns the humanized type name a named struct encodes
// under (spec §4.5's "structs ... emitted with their declared name
// humanized"), or "" for an anonymous struct type, which falls back to the
// bare "object" keyword.
func structVariantName(t reflect.Type) string {
	if t.Name() == "" {
		return ""
	}
	return humanize.Humanize(t.Name())
}

// mapKeyKinds are the Go kinds this bridge trusts to serialize to a plain
// back-tick string key (spec's UnexpectedKeyType guards everything else: a
// struct, pointer, slice, or nested map used as a map key).
var mapKeyKinds = map[reflect.Kind]bool{
	reflect.String: true,
	reflect.Int: true, reflect.Int8: true, reflect.Int16: true, reflect.Int32: true, reflect.Int64: true,
	reflect.Uint: true, reflect.Uint8: true, reflect.Uint16: true, reflect.Uint32: true, reflect.Uint64: true,
	reflect.Bool: true,
}

func mapFromGo(rv reflect.Value) (V, error) {
	if rv.IsNil() {
		return value.Null[string, value.Any](), nil
	}
	if kt := rv.Type().Key(); !mapKeyKinds[kt.Kind()] {
		return V{}, newError(KindUnexpectedKeyType, -1, "map key type %s does not serialize to a string", kt)
	}
	obj := value.NewObject[string, value.Any]()
	iter := rv.MapRange()
	for iter.Next() {
		k := fmt.Sprint(iter.Key().Interface())
		child, err := FromGo(iter.Value())
		if err != nil {
			return V{}, err
		}
		obj.Set(value.StringKey(k), child)
	}
	return value.ObjectValue[string, value.Any](obj), nil
}
