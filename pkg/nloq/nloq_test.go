package nloq

import (
	"testing"

	"github.com/shapestone/shape-nlsd/pkg/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKeyChainReversesToOutermostFirst(t *testing.T) {
	got, err := Parse("the name of the user of the access event")
	require.NoError(t, err)
	assert.Equal(t, []value.Query{
		value.QueryKey("access event"),
		value.QueryKey("user"),
		value.QueryKey("name"),
	}, got)
}

func TestParseSingleKey(t *testing.T) {
	got, err := Parse("the title")
	require.NoError(t, err)
	assert.Equal(t, []value.Query{value.QueryKey("title")}, got)
}

func TestParseOrdinalWord(t *testing.T) {
	got, err := Parse("the first item of the fruits")
	require.NoError(t, err)
	assert.Equal(t, []value.Query{
		value.QueryKey("fruits"),
		value.QueryIndex(0),
	}, got)
}

func TestParseLast(t *testing.T) {
	got, err := Parse("the last item of the fruits")
	require.NoError(t, err)
	assert.Equal(t, []value.Query{
		value.QueryKey("fruits"),
		value.QueryIndexFromLast(0),
	}, got)
}

func TestParseDigitOrdinalSuffix(t *testing.T) {
	got, err := Parse("the 3rd item of the log")
	require.NoError(t, err)
	assert.Equal(t, []value.Query{
		value.QueryKey("log"),
		value.QueryIndex(2),
	}, got)
}

func TestParseOrdinalToLastItem(t *testing.T) {
	got, err := Parse("the second to last item of the fruits")
	require.NoError(t, err)
	assert.Equal(t, []value.Query{
		value.QueryKey("fruits"),
		value.QueryIndexFromLast(1),
	}, got)
}

func TestParseLastWithoutItemIsKeyPhrase(t *testing.T) {
	got, err := Parse("the last name of the user")
	require.NoError(t, err)
	assert.Equal(t, []value.Query{
		value.QueryKey("user"),
		value.QueryKey("last name"),
	}, got)
}

func TestParseOrdinalWordWithoutItemIsKeyPhrase(t *testing.T) {
	got, err := Parse("the first name of the user")
	require.NoError(t, err)
	assert.Equal(t, []value.Query{
		value.QueryKey("user"),
		value.QueryKey("first name"),
	}, got)
}

func TestParseEmptySegmentErrors(t *testing.T) {
	_, err := Parse("the name of of the user")
	assert.Error(t, err)
}

func TestIteratorRest(t *testing.T) {
	it := NewIterator("the name of the user of the access event")
	_, ok, err := it.Next()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "the user of the access event", it.Rest())
}
