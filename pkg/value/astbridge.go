package value

import (
	"strconv"
	"time"

	"github.com/shapestone/shape-core/pkg/ast"
)

// ToAST converts a Default Value into a shape-core ast.SchemaNode, the
// introspectable representation pkg/nlsd.Document rides on for tooling
// that wants to walk or transform a document's structure (YAMLPath-style
// queries, diffing) without going back through reflection. It follows the
// same literal/object shape pkg/yaml/convert.go's InterfaceToNode uses:
// scalars become *ast.LiteralNode, arrays/objects become *ast.ObjectNode
// keyed by stringified index or field name.
func ToAST(v Default) (ast.SchemaNode, error) {
	pos := ast.Position{}
	switch v.Kind {
	case KindNull:
		return ast.NewLiteralNode(nil, pos), nil
	case KindBool:
		return ast.NewLiteralNode(v.Bool, pos), nil
	case KindNumber:
		if v.Num.IsFloat() {
			return ast.NewLiteralNode(v.Num.AsFloat(), pos), nil
		}
		n, _ := v.Num.AsInt()
		return ast.NewLiteralNode(n, pos), nil
	case KindString:
		return ast.NewLiteralNode(v.Str, pos), nil
	case KindDateTime, KindDate, KindTime:
		return ast.NewLiteralNode(v.Temporal.Time, pos), nil
	case KindArray:
		props := make(map[string]ast.SchemaNode, len(v.Array))
		for i, item := range v.Array {
			node, err := ToAST(item)
			if err != nil {
				return nil, err
			}
			props[strconv.Itoa(i)] = node
		}
		return ast.NewObjectNode(props, pos), nil
	case KindObject:
		props := map[string]ast.SchemaNode{}
		if v.Object != nil {
			v.Object.Range(func(k Key, val Default) bool {
				node, err := ToAST(val)
				if err != nil {
					return false
				}
				props[k.Str] = node
				return true
			})
		}
		return ast.NewObjectNode(props, pos), nil
	default:
		return ast.NewLiteralNode(nil, pos), nil
	}
}

// FromAST converts a shape-core AST node back into a Default Value,
// disambiguating sequence-shaped ObjectNodes (keys "0".."n-1") from
// genuine map-shaped ones the same way pkg/yaml/convert.go's isSequence
// does.
func FromAST(node ast.SchemaNode) Default {
	switch n := node.(type) {
	case *ast.LiteralNode:
		return literalFromAST(n.Value())
	case *ast.ObjectNode:
		props := n.Properties()
		if isASTSequence(props) {
			items := make([]Default, len(props))
			for i := range items {
				items[i] = FromAST(props[strconv.Itoa(i)])
			}
			return ArrayValue[NoUnit, Any](items...)
		}
		obj := NewObject[NoUnit, Any]()
		for k, child := range props {
			obj.Set(StringKey(k), FromAST(child))
		}
		return ObjectValue[NoUnit, Any](obj)
	default:
		return Null[NoUnit, Any]()
	}
}

func literalFromAST(val any) Default {
	switch v := val.(type) {
	case nil:
		return Null[NoUnit, Any]()
	case bool:
		return BoolValue[NoUnit, Any](v)
	case int64:
		return NumberValue[NoUnit, Any](Int(v))
	case int:
		return NumberValue[NoUnit, Any](Int(int64(v)))
	case float64:
		return NumberValue[NoUnit, Any](Float(v))
	case string:
		return StringValue[NoUnit, Any](v)
	case time.Time:
		// The AST's literal payload has no room for which of
		// datetime/date/time the value started as; round-tripping through
		// FromAST(ToAST(...)) always comes back as KindDateTime.
		return Value[NoUnit, Any]{Kind: KindDateTime, Temporal: NewTime(v)}
	default:
		return CustomValue[NoUnit, Any](val)
	}
}

func isASTSequence(props map[string]ast.SchemaNode) bool {
	if len(props) == 0 {
		return false
	}
	for i := 0; i < len(props); i++ {
		if _, ok := props[strconv.Itoa(i)]; !ok {
			return false
		}
	}
	return true
}
