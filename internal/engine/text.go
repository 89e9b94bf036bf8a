// Decode/Encode implement NLSD's concrete prose grammar (spec §6's wire BNF,
// elaborated by §4.4/§4.5). internal/token supplies the lexical primitives
// (word/string/number recognition); this file owns the grammar built on top
// of them.
//
// Primitive sentences:
//
//	true / on / enabled        -> bool true
//	false / off / disabled     -> bool false
//	empty / nothing            -> null
//	<number token>             -> number
//	<string token>             -> string
//
// Compounds all open with "the":
//
//	the list where an item is <v> and another item is <v> ...
//	the object where the `key` is <v> and the `key2` is <v> ...
//	the `name` where an item is ...       (tuple/list-shaped variant)
//	the `name` where the `key` is ...     (struct-shaped variant)
//	the `name` which is <v>               (newtype variant)
//	the empty list / the empty object / the empty `name`
//
// A unit variant (spec §6's `variant := ... | STRING` alternative) is a
// bare quoted tag with no leading "the" at all, e.g. `` `last variant` ``
// — grammatically identical to a plain string primitive. Disambiguating
// the two is spec §1's driving visitor's job (it announces "I expect an
// enum with known variants" vs. "I expect a string" before decoding), a
// layer this engine doesn't reimplement; parsePrimitiveToken reads a bare
// string as KindString (or, when its text has the compact "<number> <unit>"
// shape, as a length-1 KindAmount; see parseAmountLiteral) and never as a
// unit variant, so a unit variant only round-trips through
// a caller that writes one directly (encode.go's writeObject) and reads
// it back through its own enum-aware Unmarshaler, not through the
// reflective decode path.
//
// Any NAME may carry a "henceforth `alias`" clause right before "where",
// declaring the name under which *this* compound is addressable from a
// nested entry that wants to attach to it instead of its immediate parent
// (spec §4.4's scope/alias mechanism, exercised by scenario 5 in §8). An
// entry of any compound may carry "of `alias`" between its key/item marker
// and "is": if alias matches the enclosing compound's own declared scope,
// the entry belongs here and parsing continues normally; otherwise the
// cursor rolls back to just before the entry's continuation keyword and
// this compound reports itself finished, letting the call stack unwind to
// whichever ancestor's parseListTail/parseObjectTail actually declared that
// alias — no explicit terminator token or alias table is needed, since Go's
// own call stack already threads control back to the right frame.
//
// DateTime/Date/Time values ride the newtype-variant form under the
// synthetic tags "datetime"/"date"/"time", e.g. `` the `datetime` which is
// `2024-03-05T10:30:00Z` ``, parsed against the matching layout via
// time.Parse — the "opaque, already-solved" collaborator spec §1 treats a
// datetime library as.
package engine

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shapestone/shape-nlsd/internal/token"
	"github.com/shapestone/shape-nlsd/pkg/value"
)

// variantValueKey is the reserved Object key a decoded newtype variant's
// payload is stashed under (Name set to the variant tag). Humanized struct
// field phrases never contain "$", so this can never collide with a real
// object entry.
const variantValueKey = "$value"

// decoder walks an NLSD document's byte stream, tracking the cumulative
// byte offset for error reporting. It carries no scope/alias table: the
// henceforth mechanism is resolved purely by each compound comparing
// against its own declared alias and, on mismatch, handing control back up
// the call stack (see package doc).
type decoder struct {
	src    string
	offset int
	trace  func(event string, fields map[string]any)
}

// cursor snapshots a decoder's position so a failed speculative parse (in
// particular, a scope-escape rollback) can be undone.
type cursor struct {
	src    string
	offset int
}

func (d *decoder) snapshot() cursor { return cursor{d.src, d.offset} }
func (d *decoder) restore(c cursor) { d.src, d.offset = c.src, c.offset }

// rollback restores a snapshot taken before a speculative parse and traces
// the decision, so a caller with WithTrace set can see why the decoder
// backed out of an entry rather than just that it did.
func (d *decoder) rollback(c cursor, reason string) {
	from := d.offset
	d.restore(c)
	d.logEvent("rollback", map[string]any{
		"reason":      reason,
		"from_offset": from,
		"to_offset":   c.offset,
	})
}

// Decode parses a complete NLSD document into a Value tree. When
// strictEOF is true, non-whitespace input left over after the top-level
// value parses is reported as a KindTrailingInput error.
func Decode(data []byte, trace func(event string, fields map[string]any), strictEOF bool) (V, error) {
	d := &decoder{src: string(data), trace: trace}
	d.skipSpace()
	v, err := d.parseValue()
	if err != nil {
		return V{}, err
	}
	d.skipSpace()
	if strictEOF && d.src != "" {
		return V{}, newError(errKindTrailingInput, d.offset, "unconsumed input remains: %q", d.src)
	}
	return v, nil
}

func (d *decoder) skipSpace() {
	trimmed := strings.TrimLeft(d.src, " \t\r\n")
	d.offset += len(d.src) - len(trimmed)
	d.src = trimmed
}

// logEvent reports a notable decode decision — a rollback, a henceforth
// scope opening, a compound completing — tagged with structured fields
// rather than a preformatted string, so a caller's WithTrace hook (e.g.
// TraceTo's logrus.Fields bridge) can filter or index on them.
func (d *decoder) logEvent(event string, fields map[string]any) {
	if d.trace == nil {
		return
	}
	d.trace(event, fields)
}

// consume advances past a token whose remaining input (post trailing
// whitespace) is rest, as returned by one of token's ParseXxx functions.
func (d *decoder) consume(rest string) {
	d.offset += len(d.src) - len(rest)
	d.src = rest
}

// peekWord returns the next word token's text without consuming it.
func (d *decoder) peekWord() (string, bool) {
	_, tok, _, err := token.ParseNext(d.src)
	if err != nil || tok.Kind != token.Word {
		return "", false
	}
	return tok.Word, true
}

// expectWord consumes the next word token, requiring it to equal want.
func (d *decoder) expectWord(want string) error {
	_, tok, rest, err := token.ParseNext(d.src)
	if err != nil {
		return d.syntaxErr(err)
	}
	if tok.Kind != token.Word || tok.Word != want {
		return d.expectedKeyword(want)
	}
	d.consume(rest)
	return nil
}

// nextWord consumes and returns the next word token's text.
func (d *decoder) nextWord() (string, error) {
	_, tok, rest, err := token.ParseNext(d.src)
	if err != nil {
		return "", d.syntaxErr(err)
	}
	if tok.Kind != token.Word {
		return "", d.unexpected("expected a word")
	}
	d.consume(rest)
	return tok.Word, nil
}

// nextString consumes the next string token and returns its unescaped text.
func (d *decoder) nextString() (string, error) {
	_, tok, rest, err := token.ParseNext(d.src)
	if err != nil {
		return "", d.syntaxErr(err)
	}
	if tok.Kind != token.Str {
		return "", d.unexpected("expected a quoted string")
	}
	d.consume(rest)
	return tok.Unescaped(), nil
}

func (d *decoder) syntaxErr(pe *token.ParseError) error {
	return wrapError(errKindSyntax, d.offset+pe.Offset, pe, "%s", pe.Error())
}

// unexpected covers a value/token shape mismatch not captured by one of the
// more specific Expected* kinds below — spec's ExpectedBool/Null/Integer/
// Float/Unsigned/Char/String family collapses here (see the ErrorKind doc).
func (d *decoder) unexpected(format string, args ...any) error {
	return newError(errKindExpectedValue, d.offset, format, args...)
}

// expectedKeyword is spec's ExpectedKeyWord(w): a specific literal keyword
// was required at this position and the next token wasn't it.
func (d *decoder) expectedKeyword(want string) error {
	return newError(errKindExpectedKeyword, d.offset, "expected keyword %q", want)
}

// parseValue dispatches on one token of lookahead, per spec §4.1/§9's
// "peek, then commit or roll back" design: peekWord never consumes, so a
// dispatch miss leaves d untouched.
func (d *decoder) parseValue() (V, error) {
	word, ok := d.peekWord()
	if !ok {
		return d.parsePrimitiveToken()
	}
	switch word {
	case "true", "on", "enabled":
		d.nextWord()
		return value.BoolValue[string, value.Any](true), nil
	case "false", "off", "disabled":
		d.nextWord()
		return value.BoolValue[string, value.Any](false), nil
	case "empty", "nothing":
		d.nextWord()
		return value.Null[string, value.Any](), nil
	case "the":
		return d.parseThe()
	default:
		return d.parsePrimitiveToken()
	}
}

// parsePrimitiveToken handles a bare number or string token — including the
// bare-STRING unit-variant form spec §6 names, which this engine (having no
// separate visitor layer to disambiguate "expects a string" from "expects
// an enum") reads as a plain string, or as a length-1 Amount when its text
// is "<number> <unit>" (see the package doc).
func (d *decoder) parsePrimitiveToken() (V, error) {
	_, tok, rest, err := token.ParseNext(d.src)
	if err != nil {
		return V{}, d.syntaxErr(err)
	}
	switch tok.Kind {
	case token.Integer:
		d.consume(rest)
		return value.NumberValue[string, value.Any](value.Int(tok.Int)), nil
	case token.Float:
		d.consume(rest)
		return value.NumberValue[string, value.Any](value.Float(tok.Float)), nil
	case token.Str:
		d.consume(rest)
		text := tok.Unescaped()
		if amt, ok := parseAmountLiteral(text); ok {
			return value.AmountValue[string, value.Any](amt), nil
		}
		return value.StringValue[string, value.Any](text), nil
	default:
		return V{}, d.unexpected("expected a value, got %q", tok.Word)
	}
}

// parseAmountLiteral recognizes spec.md:46's compact length-1 Amount form
// `` `<number> <unit>` `` inside an already-unescaped string token,
// splitting at the first space and trying the left half as a Number and the
// right half as unit text — the same two-sided parse ground truth
// `de.rs`'s ValueVisitor::visit_str performs (split_at(first space), parse
// both halves, fall back to a plain string on either failure). A string
// with no space, or whose left half isn't a number, is just a string.
func parseAmountLiteral(s string) (*value.Amount[string], bool) {
	idx := strings.IndexByte(s, ' ')
	if idx < 0 {
		return nil, false
	}
	numText, unitText := s[:idx], strings.TrimSpace(s[idx+1:])
	if unitText == "" {
		return nil, false
	}
	num, ok := parseNumberText(numText)
	if !ok {
		return nil, false
	}
	return value.NewAmount(stringUnitCodec{}, value.AmountEntry[string]{Unit: unitText, Num: num}), true
}

func parseNumberText(s string) (value.Number, bool) {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return value.Int(n), true
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return value.Float(f), true
	}
	return value.Number{}, false
}

// parseKeyPrimitive reads an object entry's KEY, which spec §4.4 restricts
// to a "key-only visitor that rejects list/object/newtype/enum key shapes"
// — i.e. exactly the primitive grammar, never "the ...".
func (d *decoder) parseKeyPrimitive() (value.Key, error) {
	if word, ok := d.peekWord(); ok {
		switch word {
		case "true", "on", "enabled":
			d.nextWord()
			return value.BoolKey(true), nil
		case "false", "off", "disabled":
			d.nextWord()
			return value.BoolKey(false), nil
		case "empty", "nothing":
			return value.Key{}, d.expectedPrimitiveMapKey("got the unit value")
		case "the":
			return value.Key{}, d.expectedPrimitiveMapKey("got a compound")
		}
	}
	_, tok, rest, err := token.ParseNext(d.src)
	if err != nil {
		return value.Key{}, d.syntaxErr(err)
	}
	switch tok.Kind {
	case token.Integer:
		d.consume(rest)
		return value.NumberKey(value.Int(tok.Int)), nil
	case token.Float:
		d.consume(rest)
		return value.NumberKey(value.Float(tok.Float)), nil
	case token.Str:
		d.consume(rest)
		return value.StringKey(tok.Unescaped()), nil
	default:
		return value.Key{}, d.expectedPrimitiveMapKey(fmt.Sprintf("got %q", tok.Word))
	}
}

// expectedPrimitiveMapKey is spec's ExpectedPrimitiveMapKey: a key position
// held a compound or the unit value instead of a primitive.
func (d *decoder) expectedPrimitiveMapKey(detail string) error {
	return newError(errKindExpectedPrimitiveMapKey, d.offset, "expected a primitive map key, %s", detail)
}

// parseOptionalScope reads a SCOPE := "of" STRING clause if one is present.
func (d *decoder) parseOptionalScope() (alias string, present bool, err error) {
	w, ok := d.peekWord()
	if !ok || w != "of" {
		return "", false, nil
	}
	d.nextWord()
	alias, err = d.nextString()
	if err != nil {
		return "", false, err
	}
	return alias, true, nil
}

type nameKind int

const (
	nameList nameKind = iota
	nameObject
	nameString
)

type parsedName struct {
	kind nameKind
	str  string
}

// parseName reads NAME := "list" | "object" | STRING.
func (d *decoder) parseName() (parsedName, error) {
	_, tok, rest, err := token.ParseNext(d.src)
	if err != nil {
		return parsedName{}, d.syntaxErr(err)
	}
	if tok.Kind == token.Str {
		d.consume(rest)
		return parsedName{kind: nameString, str: tok.Unescaped()}, nil
	}
	if tok.Kind == token.Word {
		switch tok.Word {
		case "list":
			d.consume(rest)
			return parsedName{kind: nameList}, nil
		case "object":
			d.consume(rest)
			return parsedName{kind: nameObject}, nil
		}
	}
	return parsedName{}, newError(errKindExpectedObjectDescriptor, d.offset,
		"expected \"list\", \"object\", or a quoted name")
}

// parseThe handles every compound/variant production, all of which open
// with the literal word "the".
func (d *decoder) parseThe() (V, error) {
	if err := d.expectWord("the"); err != nil {
		return V{}, err
	}

	if w, ok := d.peekWord(); ok && w == "empty" {
		d.nextWord()
		name, err := d.parseName()
		if err != nil {
			return V{}, err
		}
		switch name.kind {
		case nameList:
			return value.ArrayValue[string, value.Any](), nil
		case nameObject:
			return value.ObjectValue[string, value.Any](value.NewObject[string, value.Any]()), nil
		default:
			if name.str == amountVariantTag {
				return value.AmountValue[string, value.Any](value.NewAmount[string](stringUnitCodec{})), nil
			}
			// A STRING name's empty form satisfies either contract (spec
			// §4.4); this engine standardizes on the object shape so a
			// named-empty value always decodes the same way regardless of
			// which Go type originally produced it.
			return value.Value[string, value.Any]{
				Kind:   value.KindObject,
				Name:   name.str,
				Object: value.NewObject[string, value.Any](),
			}, nil
		}
	}

	name, err := d.parseName()
	if err != nil {
		return V{}, err
	}

	if name.kind == nameString {
		if w, ok := d.peekWord(); ok && w == "which" {
			return d.parseNewtypeVariant(name.str)
		}
	}

	alias := ""
	if w, ok := d.peekWord(); ok && w == "henceforth" {
		d.nextWord()
		alias, err = d.nextString()
		if err != nil {
			return V{}, err
		}
		d.logEvent("henceforth_declared", map[string]any{"name": tokenWordFor(name), "alias": alias})
	}

	if w, ok := d.peekWord(); ok && w == "where" {
		d.nextWord()
		body, err := d.parseCompoundBody(name, alias)
		if err != nil {
			return V{}, err
		}
		if name.kind == nameString && name.str == amountVariantTag && body.Kind == value.KindObject {
			return d.amountFromObject(body)
		}
		return body, nil
	}

	if name.kind == nameString {
		return V{}, d.unexpected("expected \"which\" or \"where\" after %q", tokenWordFor(name))
	}
	return V{}, d.unexpected("expected \"where\" after %q", tokenWordFor(name))
}

// amountFromObject converts the tagged-object form spec.md:138/270 reserve
// for an Amount of length != 1 (`` the `amount` where the `<unit>` is
// <number> and ... ``, already parsed as an ordinary named object by
// parseObjectTail) into a proper KindAmount value. Each entry's key must be
// a string (the unit text) and its value a plain number.
func (d *decoder) amountFromObject(body V) (V, error) {
	entries := make([]value.AmountEntry[string], 0, body.Object.Len())
	var fail error
	body.Object.Range(func(k value.Key, val V) bool {
		if k.Kind != value.KeyString || val.Kind != value.KindNumber {
			fail = newError(errKindType, d.offset, "amount entry must be a unit name mapped to a number")
			return false
		}
		entries = append(entries, value.AmountEntry[string]{Unit: k.Str, Num: val.Num})
		return true
	})
	if fail != nil {
		return V{}, fail
	}
	return value.AmountValue[string, value.Any](value.NewAmount(stringUnitCodec{}, entries...)), nil
}

const amountVariantTag = "amount"

func tokenWordFor(n parsedName) string {
	switch n.kind {
	case nameList:
		return "list"
	case nameObject:
		return "object"
	default:
		return n.str
	}
}

// parseNewtypeVariant handles "the `tag` which is <value>", including the
// three temporal tags this engine reserves for DateTime/Date/Time and the
// "non standard object" tag spec §4.5 reserves for Custom(T).
func (d *decoder) parseNewtypeVariant(tag string) (V, error) {
	if err := d.expectWord("which"); err != nil {
		return V{}, err
	}
	if err := d.expectWord("is"); err != nil {
		return V{}, err
	}
	inner, err := d.parseValue()
	if err != nil {
		return V{}, err
	}

	if kind, ok := temporalKindForTag(tag); ok {
		if inner.Kind != value.KindString {
			return V{}, d.unexpected("expected a quoted %s literal", tag)
		}
		layout := layoutForTemporalKind(kind)
		t, perr := time.Parse(layout, inner.Str)
		if perr != nil {
			return V{}, newError(errKindSyntax, d.offset, "invalid %s literal %q: %s", tag, inner.Str, perr)
		}
		return V{Kind: kind, Temporal: value.NewTime(t)}, nil
	}

	if tag == customVariantTag {
		native, nerr := toNative(inner)
		if nerr != nil {
			return V{}, wrapError(errKindType, d.offset, nerr, "non standard object payload: %s", nerr)
		}
		return V{Kind: value.KindCustom, Custom: native}, nil
	}

	obj := value.NewObject[string, value.Any]()
	obj.Set(value.StringKey(variantValueKey), inner)
	return value.Value[string, value.Any]{Kind: value.KindObject, Name: tag, Object: obj}, nil
}

const customVariantTag = "non standard object"

func temporalKindForTag(tag string) (value.Kind, bool) {
	switch tag {
	case "datetime":
		return value.KindDateTime, true
	case "date":
		return value.KindDate, true
	case "time":
		return value.KindTime, true
	default:
		return 0, false
	}
}

func layoutForTemporalKind(kind value.Kind) string {
	switch kind {
	case value.KindDate:
		return value.DateLayout
	case value.KindTime:
		return value.TimeLayout
	default:
		return value.DateTimeLayout
	}
}

// parseCompoundBody disambiguates list vs object (when name is a STRING,
// per spec §4.4: a leading "an" token means list, anything else means
// object) and dispatches to the matching entry-loop.
func (d *decoder) parseCompoundBody(name parsedName, alias string) (V, error) {
	isList := name.kind == nameList
	isObject := name.kind == nameObject
	if !isList && !isObject {
		w, ok := d.peekWord()
		isList = ok && w == "an"
		isObject = !isList
	}
	if isList {
		return d.parseListTail(name.str, alias)
	}
	return d.parseObjectTail(name.str, alias)
}

// parseListTail reads "an item is <v> (and another item is <v>)*" after
// "where" has already been consumed. alias is this compound's own
// "henceforth" name, or "" if it declared none.
func (d *decoder) parseListTail(name, alias string) (V, error) {
	var items []value.Value[string, value.Any]
	for i := 0; ; i++ {
		snap := d.snapshot()
		if i == 0 {
			if err := d.expectWord("an"); err != nil {
				return V{}, err
			}
			if err := d.expectWord("item"); err != nil {
				return V{}, err
			}
		} else {
			w, ok := d.peekWord()
			if !ok || w != "and" {
				d.rollback(snap, "no further \"and another item\" continuation")
				break
			}
			d.nextWord()
			if err := d.expectWord("another"); err != nil {
				return V{}, err
			}
			if err := d.expectWord("item"); err != nil {
				return V{}, err
			}
		}

		scope, hasScope, err := d.parseOptionalScope()
		if err != nil {
			return V{}, err
		}
		if hasScope {
			if i == 0 {
				return V{}, newError(errKindShouldBeDeclaredEmpty, d.offset,
					"first list entry belongs to scope %q: compound should have been declared empty", scope)
			}
			if alias == "" || scope != alias {
				d.rollback(snap, fmt.Sprintf("entry scope %q does not match enclosing alias %q", scope, alias))
				break
			}
			d.logEvent("scope_matched", map[string]any{"alias": alias, "name": name})
		}

		if err := d.expectWord("is"); err != nil {
			return V{}, err
		}
		v, err := d.parseValue()
		if err != nil {
			return V{}, err
		}
		items = append(items, v)
	}
	d.logEvent("list_parsed", map[string]any{"name": name, "items": len(items), "alias": alias})
	return value.Value[string, value.Any]{Kind: value.KindArray, Name: name, Array: items}, nil
}

// parseObjectTail reads "(the)? <key> is <v> (and (the)? <key> is <v>)*"
// after "where" has already been consumed.
func (d *decoder) parseObjectTail(name, alias string) (V, error) {
	obj := value.NewObject[string, value.Any]()
	for i := 0; ; i++ {
		snap := d.snapshot()
		if i > 0 {
			w, ok := d.peekWord()
			if !ok || w != "and" {
				d.rollback(snap, "no further \"and\" continuation")
				break
			}
			d.nextWord()
		}
		if w, ok := d.peekWord(); ok && w == "the" {
			d.nextWord()
		}

		key, err := d.parseKeyPrimitive()
		if err != nil {
			if i > 0 {
				d.rollback(snap, "next entry's key does not belong to this compound")
				break
			}
			return V{}, err
		}

		scope, hasScope, err := d.parseOptionalScope()
		if err != nil {
			return V{}, err
		}
		if hasScope && (alias == "" || scope != alias) {
			d.rollback(snap, fmt.Sprintf("entry scope %q does not match enclosing alias %q", scope, alias))
			break
		}
		if hasScope {
			d.logEvent("scope_matched", map[string]any{"alias": alias, "name": name})
		}

		if err := d.expectWord("is"); err != nil {
			return V{}, err
		}
		v, err := d.parseValue()
		if err != nil {
			return V{}, err
		}
		obj.Set(key, v)
	}
	d.logEvent("object_parsed", map[string]any{"name": name, "entries": obj.Len(), "alias": alias})
	return value.Value[string, value.Any]{Kind: value.KindObject, Name: name, Object: obj}, nil
}
