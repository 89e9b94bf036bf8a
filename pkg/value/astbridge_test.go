package value

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestASTRoundTripObjectAndArray(t *testing.T) {
	obj := NewObject[NoUnit, Any]()
	obj.Set(StringKey("name"), StringValue[NoUnit, Any]("ada"))
	obj.Set(StringKey("tags"), ArrayValue[NoUnit, Any](
		StringValue[NoUnit, Any]("a"),
		StringValue[NoUnit, Any]("b"),
	))
	original := ObjectValue[NoUnit, Any](obj)

	node, err := ToAST(original)
	require.NoError(t, err)

	back := FromAST(node)
	require.Equal(t, KindObject, back.Kind)
	name, ok := back.Object.Get(StringKey("name"))
	require.True(t, ok)
	assert.Equal(t, "ada", name.Str)

	tags, ok := back.Object.Get(StringKey("tags"))
	require.True(t, ok)
	require.Len(t, tags.Array, 2)
	assert.Equal(t, "b", tags.Array[1].Str)
}

func TestASTRoundTripPrimitives(t *testing.T) {
	for _, v := range []Default{
		Null[NoUnit, Any](),
		BoolValue[NoUnit, Any](true),
		NumberValue[NoUnit, Any](Int(7)),
		StringValue[NoUnit, Any]("x"),
	} {
		node, err := ToAST(v)
		require.NoError(t, err)
		back := FromAST(node)
		assert.Equal(t, v.Kind, back.Kind)
	}
}

func TestASTRoundTripDateTime(t *testing.T) {
	at, err := time.Parse(DateTimeLayout, "2024-03-05T10:30:00Z")
	require.NoError(t, err)
	original := Value[NoUnit, Any]{Kind: KindDateTime, Temporal: NewTime(at)}

	node, err := ToAST(original)
	require.NoError(t, err)
	back := FromAST(node)
	require.Equal(t, KindDateTime, back.Kind)
	assert.True(t, at.Equal(back.Temporal.Time))
}
