package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectSetAndGet(t *testing.T) {
	o := NewObject[NoUnit, Any]()
	_, existed := o.Set(StringKey("b"), StringValue[NoUnit, Any]("bee"))
	assert.False(t, existed)
	_, existed = o.Set(StringKey("a"), StringValue[NoUnit, Any]("ay"))
	assert.False(t, existed)

	v, ok := o.Get(StringKey("a"))
	require.True(t, ok)
	assert.Equal(t, "ay", v.Str)
}

func TestObjectKeysAreSorted(t *testing.T) {
	o := NewObject[NoUnit, Any]()
	o.Set(StringKey("zebra"), Null[NoUnit, Any]())
	o.Set(StringKey("apple"), Null[NoUnit, Any]())
	o.Set(StringKey("mango"), Null[NoUnit, Any]())

	keys := o.Keys()
	require.Len(t, keys, 3)
	assert.Equal(t, "apple", keys[0].Str)
	assert.Equal(t, "mango", keys[1].Str)
	assert.Equal(t, "zebra", keys[2].Str)
}

func TestObjectSetReplaces(t *testing.T) {
	o := NewObject[NoUnit, Any]()
	o.Set(StringKey("k"), StringValue[NoUnit, Any]("old"))
	old, existed := o.Set(StringKey("k"), StringValue[NoUnit, Any]("new"))
	require.True(t, existed)
	assert.Equal(t, "old", old.Str)

	v, _ := o.Get(StringKey("k"))
	assert.Equal(t, "new", v.Str)
}

func TestObjectDelete(t *testing.T) {
	o := NewObject[NoUnit, Any]()
	o.Set(StringKey("k"), StringValue[NoUnit, Any]("v"))
	old, ok := o.Delete(StringKey("k"))
	require.True(t, ok)
	assert.Equal(t, "v", old.Str)
	assert.Equal(t, 0, o.Len())

	_, ok = o.Delete(StringKey("k"))
	assert.False(t, ok)
}

func TestObjectRangeInsertionPreservesSetOrder(t *testing.T) {
	o := NewObject[NoUnit, Any]()
	o.Set(StringKey("zebra"), Null[NoUnit, Any]())
	o.Set(StringKey("apple"), Null[NoUnit, Any]())
	o.Set(StringKey("mango"), Null[NoUnit, Any]())

	var got []string
	o.RangeInsertion(func(k Key, _ Value[NoUnit, Any]) bool {
		got = append(got, k.Str)
		return true
	})
	assert.Equal(t, []string{"zebra", "apple", "mango"}, got)
}

func TestObjectRangeInsertionKeepsFirstPositionOnOverwrite(t *testing.T) {
	o := NewObject[NoUnit, Any]()
	o.Set(StringKey("a"), StringValue[NoUnit, Any]("1"))
	o.Set(StringKey("b"), StringValue[NoUnit, Any]("2"))
	o.Set(StringKey("a"), StringValue[NoUnit, Any]("3"))

	var got []string
	o.RangeInsertion(func(k Key, v Value[NoUnit, Any]) bool {
		got = append(got, k.Str+"="+v.Str)
		return true
	})
	assert.Equal(t, []string{"a=3", "b=2"}, got)
}
