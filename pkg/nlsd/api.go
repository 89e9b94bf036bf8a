// Package nlsd implements Natural Language Structured Document encoding and
// decoding: a human-readable English-prose serialization format, plus a
// companion Natural Language Object Query language exposed from pkg/nloq.
//
// The package mirrors encoding/json's shape: DecodeFromString/Decode bind a
// document straight into a caller-supplied Go value by reflection;
// EncodeToString/Encode render a Go value back out. Marshaler/Unmarshaler
// let a type take over its own wire representation, as
// pkg/yaml.Marshaler/Unmarshaler do for the teacher's YAML codec.
package nlsd

import (
	"errors"
	"io"
	"reflect"

	"github.com/shapestone/shape-nlsd/internal/engine"
)

// Marshaler is implemented by types that encode themselves to NLSD.
type Marshaler interface {
	MarshalNLSD() ([]byte, error)
}

// Unmarshaler is implemented by types that decode an NLSD document
// themselves.
type Unmarshaler interface {
	UnmarshalNLSD([]byte) error
}

// DecodeFromString parses an NLSD document held in s into v, a non-nil
// pointer.
func DecodeFromString(s string, v any, opts ...Option) error {
	return Decode([]byte(s), v, opts...)
}

// DecodeFromSlice parses an NLSD document held in data into v, a non-nil
// pointer. It is Decode under another name, kept alongside DecodeFromString
// for a caller holding a []byte rather than a string — the teacher's
// pkg/yaml pairs an io.Reader entry point (ParseReader) next to its
// byte-slice Unmarshal the same way.
func DecodeFromSlice(data []byte, v any, opts ...Option) error {
	return Decode(data, v, opts...)
}

// Decode parses an NLSD document into v, a non-nil pointer.
func Decode(data []byte, v any, opts ...Option) error {
	o := buildOptions(opts)

	rv := reflect.ValueOf(v)
	if !rv.IsValid() || v == nil {
		return newError(ErrType, -1, "Decode(nil)")
	}
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return newError(ErrType, -1, "Decode(non-nil-pointer %T)", v)
	}

	if u, ok := v.(Unmarshaler); ok {
		return u.UnmarshalNLSD(data)
	}

	parsed, err := engine.Decode(data, o.trace, o.strictEOF)
	if err != nil {
		return translateEngineErr(err)
	}

	if err := engine.ToGo(parsed, rv.Elem()); err != nil {
		var ee *engine.Error
		if errors.As(err, &ee) {
			return translateEngineErr(err)
		}
		return wrapError(ErrType, -1, err, "binding decoded value")
	}
	return nil
}

// EncodeToString renders v as an NLSD document.
func EncodeToString(v any, opts ...Option) (string, error) {
	b, err := Encode(v, opts...)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// EncodeToWriter renders v as an NLSD document directly to w, mirroring the
// teacher's ParseReader/Unmarshal pairing on the encode side: a caller
// writing straight to a file or network connection shouldn't have to buffer
// through EncodeToString first.
func EncodeToWriter(w io.Writer, v any, opts ...Option) error {
	b, err := Encode(v, opts...)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

// Encode renders v as an NLSD document.
func Encode(v any, opts ...Option) ([]byte, error) {
	if m, ok := v.(Marshaler); ok {
		return m.MarshalNLSD()
	}

	o := buildOptions(opts)

	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return []byte("nothing"), nil
	}
	ev, err := engine.FromGo(rv)
	if err != nil {
		return nil, translateEngineErr(err)
	}
	return []byte(engine.EncodeOrdered(ev, o.mapOrdering)), nil
}

func translateEngineErr(err error) error {
	var ee *engine.Error
	if !errors.As(err, &ee) {
		return err
	}
	return &Error{Kind: translateKind(ee.Kind), Offset: ee.Offset, Msg: ee.Msg, Err: ee.Err}
}

func translateKind(k engine.ErrorKind) ErrorKind {
	switch k {
	case engine.KindSyntax:
		return ErrSyntax
	case engine.KindExpectedValue:
		return ErrExpectedValue
	case engine.KindExpectedKeyword:
		return ErrExpectedKeyword
	case engine.KindExpectedObjectDescriptor:
		return ErrExpectedObjectDescriptor
	case engine.KindExpectedPrimitiveMapKey:
		return ErrExpectedPrimitiveMapKey
	case engine.KindExpectedStringMapKey:
		return ErrExpectedStringMapKey
	case engine.KindShouldBeDeclaredEmpty:
		return ErrShouldBeDeclaredEmpty
	case engine.KindExpectedUnitVariant:
		return ErrExpectedUnitVariant
	case engine.KindUnexpectedUnitVariant:
		return ErrUnexpectedUnitVariant
	case engine.KindUnknownField:
		return ErrUnknownField
	case engine.KindUnknownVariant:
		return ErrUnknownVariant
	case engine.KindTrailingInput:
		return ErrTrailingInput
	case engine.KindType:
		return ErrType
	case engine.KindUnsupportedType:
		return ErrUnsupportedType
	case engine.KindUnexpectedKeyType:
		return ErrUnexpectedKeyType
	default:
		return ErrSyntax
	}
}
