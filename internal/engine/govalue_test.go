package engine

import (
	"reflect"
	"testing"

	"github.com/shapestone/shape-nlsd/pkg/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type person struct {
	Name string
	Age  int
}

func TestToGoBindsKnownFields(t *testing.T) {
	obj := value.NewObject[string, value.Any]()
	obj.Set(value.StringKey("name"), value.StringValue[string, value.Any]("Ada"))
	obj.Set(value.StringKey("age"), value.NumberValue[string, value.Any](value.Int(30)))
	v := value.ObjectValue[string, value.Any](obj)

	var p person
	require.NoError(t, ToGo(v, reflect.ValueOf(&p).Elem()))
	assert.Equal(t, person{Name: "Ada", Age: 30}, p)
}

func TestToGoRejectsUnknownField(t *testing.T) {
	obj := value.NewObject[string, value.Any]()
	obj.Set(value.StringKey("name"), value.StringValue[string, value.Any]("Ada"))
	obj.Set(value.StringKey("nickname"), value.StringValue[string, value.Any]("The Enchantress"))
	v := value.ObjectValue[string, value.Any](obj)

	var p person
	err := ToGo(v, reflect.ValueOf(&p).Elem())
	require.Error(t, err)
	var ee *Error
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, KindUnknownField, ee.Kind)
}

func TestToGoRejectsNonStringMapKey(t *testing.T) {
	obj := value.NewObject[string, value.Any]()
	obj.Set(value.NumberKey(value.Int(1)), value.StringValue[string, value.Any]("one"))
	v := value.ObjectValue[string, value.Any](obj)

	var m map[string]string
	err := ToGo(v, reflect.ValueOf(&m).Elem())
	require.Error(t, err)
	var ee *Error
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, KindExpectedStringMapKey, ee.Kind)
}

func TestFromGoRejectsStructMapKey(t *testing.T) {
	type key struct{ N int }
	m := map[key]string{{N: 1}: "one"}
	_, err := FromGo(reflect.ValueOf(m))
	require.Error(t, err)
	var ee *Error
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, KindUnexpectedKeyType, ee.Kind)
}
