package engine

import (
	"reflect"
	"strings"

	"github.com/shapestone/shape-nlsd/pkg/value"
)

// MapOrdering selects how writeObject walks an Object's entries. It exists
// because spec §5 only requires NLSD to commit to *some* documented
// ordering, not which one — OrderSorted is the decoder-independent default
// (and the one every other package in this module assumes when it talks
// about "the" map ordering), OrderInsertion is available for a caller that
// would rather its output mirror struct field declaration / map literal
// order than a resorted one.
type MapOrdering int

const (
	OrderSorted MapOrdering = iota
	OrderInsertion
)

// Encode renders a Value tree as an NLSD document in the grammar text.go
// documents, using Object's default key-sorted order. It never emits a
// "henceforth"/"of <alias>" pair: spec §4.5 describes that as an optional
// space optimization a compound may offer once it knows whether any of its
// children are themselves compounds, and every value still has an
// unambiguous encoding without it (scope-escape is a *reader* feature —
// text.go fully supports decoding a document that uses it — not something
// this writer needs to produce).
func Encode(v V) string {
	return EncodeOrdered(v, OrderSorted)
}

// EncodeOrdered is Encode with an explicit MapOrdering for every Object
// this call writes out.
func EncodeOrdered(v V, ordering MapOrdering) string {
	var b strings.Builder
	writeValue(&b, v, ordering)
	return b.String()
}

func writeValue(b *strings.Builder, v V, ordering MapOrdering) {
	switch v.Kind {
	case value.KindNull:
		b.WriteString("nothing")
	case value.KindBool:
		if v.Bool {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case value.KindNumber:
		b.WriteString(v.Num.String())
	case value.KindString:
		writeString(b, v.Str)
	case value.KindArray:
		writeArray(b, v, ordering)
	case value.KindObject:
		writeObject(b, v, ordering)
	case value.KindAmount:
		writeAmount(b, v.Amount)
	case value.KindDateTime:
		writeTemporalVariant(b, "datetime", v.Temporal, value.DateTimeLayout)
	case value.KindDate:
		writeTemporalVariant(b, "date", v.Temporal, value.DateLayout)
	case value.KindTime:
		writeTemporalVariant(b, "time", v.Temporal, value.TimeLayout)
	case value.KindCustom:
		writeCustom(b, v.Custom, ordering)
	default:
		b.WriteString("nothing")
	}
}

// writeTemporalVariant emits DateTime/Date/Time as the newtype-variant form
// text.go's parseNewtypeVariant recognizes by tag.
func writeTemporalVariant(b *strings.Builder, tag string, t value.Time, layout string) {
	b.WriteString("the ")
	writeString(b, tag)
	b.WriteString(" which is ")
	writeString(b, t.Format(layout))
}

// writeCustom emits spec §4.5's "newtype-variant tagged with the synthetic
// name `non standard object`" form. The payload is lowered through FromGo
// (this package's Go-value-to-Value bridge) rather than written directly,
// since v.Custom is an opaque interface{} the caller could have put
// anything reflectable into.
func writeCustom(b *strings.Builder, payload any, ordering MapOrdering) {
	if payload == nil {
		b.WriteString("nothing")
		return
	}
	inner, err := FromGo(reflect.ValueOf(payload))
	if err != nil {
		b.WriteString("nothing")
		return
	}
	b.WriteString("the ")
	writeString(b, customVariantTag)
	b.WriteString(" which is ")
	writeValue(b, inner, ordering)
}

// writeString backtick-quotes s, escaping only the chosen delimiter. When s
// contains a backtick but no double quote it uses double quotes instead, so
// no escape is needed; when s contains both, it keeps backticks and escapes
// each backtick in s.
func writeString(b *strings.Builder, s string) {
	delim := byte('`')
	if strings.ContainsRune(s, '`') && !strings.ContainsRune(s, '"') {
		delim = '"'
	}
	b.WriteByte(delim)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == delim {
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}
	b.WriteByte(delim)
}

// writeNameKeyword writes either the bare keyword (for an anonymous
// compound) or the compound's declared NAME as a backtick string.
func writeNameKeyword(b *strings.Builder, name, keyword string) {
	if name == "" {
		b.WriteString(keyword)
		return
	}
	writeString(b, name)
}

func writeArray(b *strings.Builder, v V, ordering MapOrdering) {
	if len(v.Array) == 0 {
		b.WriteString("the empty ")
		writeNameKeyword(b, v.Name, "list")
		return
	}
	b.WriteString("the ")
	writeNameKeyword(b, v.Name, "list")
	b.WriteString(" where an item is ")
	writeValue(b, v.Array[0], ordering)
	for _, item := range v.Array[1:] {
		b.WriteString(" and another item is ")
		writeValue(b, item, ordering)
	}
}

// writeObject covers every object-shaped production: an anonymous/named
// object, a struct-shaped variant (a tuple-shaped one is an Array with a
// Name and goes through writeArray), a
// newtype variant (Object holds exactly the reserved variantValueKey), and
// a unit variant (Name set, Object nil).
func writeObject(b *strings.Builder, v V, ordering MapOrdering) {
	if v.Object == nil {
		// Unit variant: a bare quoted tag, spec §6's `variant := ... | STRING`
		// alternative — no leading "the" (that production is list/object/
		// newtype/struct variants only, all of which open with "the").
		writeString(b, v.Name)
		return
	}

	if v.Name != "" && v.Object.Len() == 1 {
		if inner, ok := v.Object.Get(value.StringKey(variantValueKey)); ok {
			b.WriteString("the ")
			writeString(b, v.Name)
			b.WriteString(" which is ")
			writeValue(b, inner, ordering)
			return
		}
	}

	if v.Object.Len() == 0 {
		b.WriteString("the empty ")
		writeNameKeyword(b, v.Name, "object")
		return
	}

	b.WriteString("the ")
	writeNameKeyword(b, v.Name, "object")
	b.WriteString(" where ")
	first := true
	entry := func(k value.Key, val V) bool {
		if !first {
			b.WriteString(" and ")
		}
		first = false
		writeObjectEntry(b, k, val, ordering)
		return true
	}
	if ordering == OrderInsertion {
		v.Object.RangeInsertion(entry)
	} else {
		v.Object.Range(entry)
	}
}

// writeObjectEntry writes "the <key> is <value>", dropping the leading
// "the" when key's text itself begins with the verb "is" (spec §4.5) so
// the sentence doesn't read as two consecutive "is"es.
func writeObjectEntry(b *strings.Builder, k value.Key, v V, ordering MapOrdering) {
	if !keyStartsWithIs(k) {
		b.WriteString("the ")
	}
	writeKey(b, k)
	b.WriteString(" is ")
	writeValue(b, v, ordering)
}

func keyStartsWithIs(k value.Key) bool {
	return k.Kind == value.KeyString && (k.Str == "is" || strings.HasPrefix(k.Str, "is "))
}

func writeKey(b *strings.Builder, k value.Key) {
	switch k.Kind {
	case value.KeyBool:
		if k.Bool {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case value.KeyNumber:
		b.WriteString(k.Num.String())
	default:
		writeString(b, k.Str)
	}
}

// writeAmount emits spec §8's required literal form for a length-1 Amount —
// the exact string `` `<number> <unit>` `` with one separating space — and
// spec.md:138/270's tagged-object form (synthetic variant tag `amount`) for
// any other length, including 0.
func writeAmount(b *strings.Builder, a *value.Amount[string]) {
	if a == nil {
		b.WriteString("nothing")
		return
	}
	if e, ok := a.Single(); ok {
		writeString(b, e.Num.String()+" "+a.DisplayUnit(e.Unit))
		return
	}
	if a.Len() == 0 {
		b.WriteString("the empty ")
		writeString(b, amountVariantTag)
		return
	}
	b.WriteString("the ")
	writeString(b, amountVariantTag)
	b.WriteString(" where ")
	for i, e := range a.Entries() {
		if i > 0 {
			b.WriteString(" and ")
		}
		b.WriteString("the ")
		writeString(b, a.DisplayUnit(e.Unit))
		b.WriteString(" is ")
		b.WriteString(e.Num.String())
	}
}
