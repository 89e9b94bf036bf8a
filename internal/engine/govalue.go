package engine

import (
	"fmt"
	"reflect"
	"time"

	"github.com/shapestone/shape-nlsd/pkg/value"
)

var timeType = reflect.TypeOf(time.Time{})

// V is the Value instantiation the engine operates on. Its unit type is
// plain string, not value.NoUnit: an Amount's wire form names its unit as
// literal text ("10 dollars", the `amount` where the `kg` is ... ), and
// this untyped decode path has no caller-supplied UnitCodec[U] to resolve
// that text against a concrete U. A schema-aware caller that wants a real
// unit type on its Amount fields works directly against pkg/value instead
// of through this reflective bridge. Custom payloads are opaque
// interface{}.
type V = value.Value[string, value.Any]

// stringUnitCodec treats unit text as itself: the vocabulary this untyped
// decode path deals in before any further, caller-specific interpretation.
type stringUnitCodec struct{}

func (stringUnitCodec) Parse(s string) (string, bool) { return s, s != "" }
func (stringUnitCodec) Display(u string) string       { return u }
func (stringUnitCodec) Less(a, b string) bool         { return a < b }

// ToGo binds a decoded Value tree to the Go value rv points at (struct,
// map, slice, pointer, interface, or primitive), the way
// pkg/yaml/unmarshal.go's unmarshalValue binds an AST node to a
// reflect.Value.
func ToGo(v V, rv reflect.Value) error {
	if rv.Kind() == reflect.Ptr {
		if v.IsNull() {
			rv.Set(reflect.Zero(rv.Type()))
			return nil
		}
		if rv.IsNil() {
			rv.Set(reflect.New(rv.Type().Elem()))
		}
		return ToGo(v, rv.Elem())
	}

	if v.IsNull() {
		rv.Set(reflect.Zero(rv.Type()))
		return nil
	}

	if rv.Type() == timeType {
		return bindTemporal(v, rv)
	}

	if rv.Kind() == reflect.Interface && rv.NumMethod() == 0 {
		native, err := toNative(v)
		if err != nil {
			return err
		}
		rv.Set(reflect.ValueOf(native))
		return nil
	}

	switch v.Kind {
	case value.KindBool:
		return bindBool(v, rv)
	case value.KindNumber:
		return bindNumber(v, rv)
	case value.KindString:
		return bindString(v, rv)
	case value.KindArray:
		return bindArray(v, rv)
	case value.KindObject:
		return bindObject(v, rv)
	default:
		return fmt.Errorf("engine: cannot bind value of kind %s into %s", v.Kind, rv.Type())
	}
}

func bindTemporal(v V, rv reflect.Value) error {
	switch v.Kind {
	case value.KindDateTime, value.KindDate, value.KindTime:
		rv.Set(reflect.ValueOf(v.Temporal.Time))
		return nil
	default:
		return fmt.Errorf("engine: cannot bind value of kind %s into time.Time", v.Kind)
	}
}

func bindBool(v V, rv reflect.Value) error {
	if rv.Kind() != reflect.Bool {
		return fmt.Errorf("engine: cannot bind bool into %s", rv.Type())
	}
	rv.SetBool(v.Bool)
	return nil
}

func bindNumber(v V, rv reflect.Value) error {
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, ok := v.Num.AsInt()
		if !ok {
			return fmt.Errorf("engine: value %s has a fractional part, cannot bind into %s", v.Num, rv.Type())
		}
		if rv.OverflowInt(n) {
			return fmt.Errorf("engine: value %d overflows %s", n, rv.Type())
		}
		rv.SetInt(n)
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, ok := v.Num.AsInt()
		if !ok || n < 0 {
			return fmt.Errorf("engine: cannot bind %s into unsigned %s", v.Num, rv.Type())
		}
		if rv.OverflowUint(uint64(n)) {
			return fmt.Errorf("engine: value %d overflows %s", n, rv.Type())
		}
		rv.SetUint(uint64(n))
		return nil
	case reflect.Float32, reflect.Float64:
		f := v.Num.AsFloat()
		if rv.OverflowFloat(f) {
			return fmt.Errorf("engine: value %v overflows %s", f, rv.Type())
		}
		rv.SetFloat(f)
		return nil
	default:
		return fmt.Errorf("engine: cannot bind number into %s", rv.Type())
	}
}

func bindString(v V, rv reflect.Value) error {
	if rv.Kind() != reflect.String {
		return fmt.Errorf("engine: cannot bind string into %s", rv.Type())
	}
	rv.SetString(v.Str)
	return nil
}

func bindArray(v V, rv reflect.Value) error {
	switch rv.Kind() {
	case reflect.Slice:
		out := reflect.MakeSlice(rv.Type(), len(v.Array), len(v.Array))
		for i, item := range v.Array {
			if err := ToGo(item, out.Index(i)); err != nil {
				return err
			}
		}
		rv.Set(out)
		return nil
	case reflect.Array:
		if len(v.Array) != rv.Len() {
			return fmt.Errorf("engine: array has %d items, %s has %d", len(v.Array), rv.Type(), rv.Len())
		}
		for i, item := range v.Array {
			if err := ToGo(item, rv.Index(i)); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("engine: cannot bind array into %s", rv.Type())
	}
}

func bindObject(v V, rv reflect.Value) error {
	switch rv.Kind() {
	case reflect.Struct:
		return bindStruct(v, rv)
	case reflect.Map:
		return bindMap(v, rv)
	default:
		return fmt.Errorf("engine: cannot bind object into %s", rv.Type())
	}
}

func bindStruct(v V, rv reflect.Value) error {
	fields := collectFields(rv.Type())
	if v.Object == nil {
		return nil
	}
	consumed := make(map[string]bool, v.Object.Len())
	for _, f := range fields {
		val, ok := v.Object.Get(value.StringKey(f.Phrase))
		if !ok {
			continue
		}
		consumed[f.Phrase] = true
		if err := ToGo(val, rv.FieldByIndex(f.Index)); err != nil {
			return fmt.Errorf("engine: field %q: %w", f.Phrase, err)
		}
	}
	var unknown error
	v.Object.Range(func(k value.Key, _ V) bool {
		if k.Kind != value.KeyString || consumed[k.Str] {
			return true
		}
		unknown = newError(KindUnknownField, -1, "no field on %s matches %q", rv.Type(), k.Str)
		return false
	})
	return unknown
}

func bindMap(v V, rv reflect.Value) error {
	if rv.IsNil() {
		rv.Set(reflect.MakeMap(rv.Type()))
	}
	if v.Object == nil {
		return nil
	}
	keyType := rv.Type().Key()
	elemType := rv.Type().Elem()
	var rerr error
	v.Object.Range(func(k value.Key, val V) bool {
		if keyType.Kind() == reflect.String && k.Kind != value.KeyString {
			rerr = newError(KindExpectedStringMapKey, -1, "map key kind %v is not a string", k.Kind)
			return false
		}
		keyVal := reflect.New(keyType).Elem()
		keyVal.SetString(k.Str)
		elemVal := reflect.New(elemType).Elem()
		if err := ToGo(val, elemVal); err != nil {
			rerr = err
			return false
		}
		rv.SetMapIndex(keyVal, elemVal)
		return true
	})
	return rerr
}

// toNative converts v into the plain Go value a decode-into-interface{}
// target receives: bool, int64/float64, string, []interface{},
// map[string]interface{}, or nil, mirroring pkg/yaml's NodeToInterface.
func toNative(v V) (any, error) {
	switch v.Kind {
	case value.KindNull:
		return nil, nil
	case value.KindBool:
		return v.Bool, nil
	case value.KindNumber:
		if v.Num.IsFloat() {
			return v.Num.AsFloat(), nil
		}
		n, _ := v.Num.AsInt()
		return n, nil
	case value.KindString:
		return v.Str, nil
	case value.KindDateTime, value.KindDate, value.KindTime:
		return v.Temporal.Time, nil
	case value.KindArray:
		out := make([]any, len(v.Array))
		for i, item := range v.Array {
			n, err := toNative(item)
			if err != nil {
				return nil, err
			}
			out[i] = n
		}
		return out, nil
	case value.KindObject:
		out := map[string]any{}
		if v.Object != nil {
			v.Object.Range(func(k value.Key, val V) bool {
				n, err := toNative(val)
				if err != nil {
					return false
				}
				out[k.Str] = n
				return true
			})
		}
		return out, nil
	default:
		return nil, fmt.Errorf("engine: cannot convert value of kind %s to a native Go value", v.Kind)
	}
}
