package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyCompareKindOrdering(t *testing.T) {
	assert.True(t, BoolKey(true).Compare(NumberKey(Int(0))) < 0)
	assert.True(t, NumberKey(Int(0)).Compare(StringKey("")) < 0)
}

func TestKeyCompareWithinKind(t *testing.T) {
	assert.True(t, StringKey("a").Compare(StringKey("b")) < 0)
	assert.True(t, NumberKey(Int(1)).Compare(NumberKey(Int(2))) < 0)
	assert.True(t, BoolKey(false).Compare(BoolKey(true)) < 0)
}

func TestKeyEqual(t *testing.T) {
	assert.True(t, NumberKey(Int(3)).Equal(NumberKey(Float(3.0))))
	assert.False(t, StringKey("a").Equal(StringKey("b")))
}
