package value

import (
	"time"

	"gopkg.in/yaml.v3"
)

// ToYAML renders a Default Value as YAML, by first lowering it to the
// native interface{} shape yaml.Marshal already knows how to encode
// (bool, int64/float64, string, []interface{}, map[string]interface{}).
// This is the interop seam for a caller that decoded an NLSD document and
// wants to hand it to YAML-speaking tooling without writing its own
// Value walker.
func ToYAML(v Default) ([]byte, error) {
	return yaml.Marshal(toNative(v))
}

// FromYAML parses YAML bytes into a Default Value.
func FromYAML(data []byte) (Default, error) {
	var native any
	if err := yaml.Unmarshal(data, &native); err != nil {
		return Default{}, err
	}
	return fromNative(native), nil
}

func toNative(v Default) any {
	switch v.Kind {
	case KindNull:
		return nil
	case KindBool:
		return v.Bool
	case KindNumber:
		if v.Num.IsFloat() {
			return v.Num.AsFloat()
		}
		n, _ := v.Num.AsInt()
		return n
	case KindString:
		return v.Str
	case KindDateTime, KindDate, KindTime:
		return v.Temporal.Time
	case KindArray:
		out := make([]any, len(v.Array))
		for i, item := range v.Array {
			out[i] = toNative(item)
		}
		return out
	case KindObject:
		out := map[string]any{}
		if v.Object != nil {
			v.Object.Range(func(k Key, val Default) bool {
				out[k.Str] = toNative(val)
				return true
			})
		}
		return out
	default:
		return nil
	}
}

func fromNative(val any) Default {
	switch v := val.(type) {
	case nil:
		return Null[NoUnit, Any]()
	case bool:
		return BoolValue[NoUnit, Any](v)
	case int:
		return NumberValue[NoUnit, Any](Int(int64(v)))
	case int64:
		return NumberValue[NoUnit, Any](Int(v))
	case float64:
		return NumberValue[NoUnit, Any](Float(v))
	case string:
		return StringValue[NoUnit, Any](v)
	case time.Time:
		return Value[NoUnit, Any]{Kind: KindDateTime, Temporal: NewTime(v)}
	case []any:
		items := make([]Default, len(v))
		for i, item := range v {
			items[i] = fromNative(item)
		}
		return ArrayValue[NoUnit, Any](items...)
	case map[string]any:
		obj := NewObject[NoUnit, Any]()
		for k, child := range v {
			obj.Set(StringKey(k), fromNative(child))
		}
		return ObjectValue[NoUnit, Any](obj)
	default:
		return CustomValue[NoUnit, Any](val)
	}
}
