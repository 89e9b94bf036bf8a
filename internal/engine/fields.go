// Package engine is the reflection layer behind pkg/nlsd: it binds the
// generic value.Value tree produced by the text codec to and from
// caller-supplied Go types, the way pkg/yaml/fields.go and unmarshal.go
// bind an AST to a struct.
package engine

import (
	"reflect"
	"strings"

	"github.com/shapestone/shape-nlsd/internal/humanize"
)

// FieldInfo describes one exported struct field's NLSD binding.
type FieldInfo struct {
	Index     []int
	Phrase    string // humanized field name, or the explicit "nlsd" tag override
	Skip      bool
	OmitEmpty bool
}

// getFieldInfo extracts a field's NLSD binding from its "nlsd" struct tag,
// falling back to the humanized form of its Go name — the same
// tag-then-convention precedence pkg/yaml/fields.go uses for its "yaml"
// tag, with Humanize standing in for strings.ToLower.
func getFieldInfo(field reflect.StructField, index []int) FieldInfo {
	tag := field.Tag.Get("nlsd")
	if tag == "" {
		return FieldInfo{Index: index, Phrase: humanize.Humanize(field.Name)}
	}

	parts := strings.Split(tag, ",")
	name := parts[0]
	if name == "-" {
		return FieldInfo{Index: index, Skip: true}
	}
	if name == "" {
		name = humanize.Humanize(field.Name)
	}

	omitEmpty := false
	for _, opt := range parts[1:] {
		if opt == "omitempty" {
			omitEmpty = true
		}
	}
	return FieldInfo{Index: index, Phrase: name, OmitEmpty: omitEmpty}
}

// collectFields walks a struct type's exported fields (including promoted
// fields from anonymous embeds, depth-first) and returns their FieldInfo.
func collectFields(t reflect.Type) []FieldInfo {
	var out []FieldInfo
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.PkgPath != "" && !f.Anonymous {
			continue // unexported
		}
		info := getFieldInfo(f, []int{i})
		if info.Skip {
			continue
		}
		if f.Anonymous && f.Type.Kind() == reflect.Struct {
			for _, nested := range collectFields(f.Type) {
				nested.Index = append([]int{i}, nested.Index...)
				out = append(out, nested)
			}
			continue
		}
		out = append(out, info)
	}
	return out
}

// isEmptyValue mirrors pkg/yaml/fields.go's isEmptyValue, used to implement
// "omitempty" on the encode side.
func isEmptyValue(rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return rv.Len() == 0
	case reflect.Bool:
		return !rv.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() == 0
	case reflect.Interface, reflect.Ptr:
		return rv.IsNil()
	}
	return false
}
