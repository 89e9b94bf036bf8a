package nlsd

import (
	"testing"

	"github.com/shapestone/shape-nlsd/pkg/nloq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDocumentAndQuery(t *testing.T) {
	doc, err := ParseDocument([]byte(
		"the object where the `user` is the object where the `name` is `ada`",
	))
	require.NoError(t, err)

	path, err := nloq.Parse("the name of the user")
	require.NoError(t, err)

	got, err := doc.Query(path)
	require.NoError(t, err)
	assert.Equal(t, "ada", got.Str)
}

func TestDocumentStringRoundTrips(t *testing.T) {
	doc, err := ParseDocument([]byte("the list where an item is 1 and another item is 2"))
	require.NoError(t, err)

	again, err := ParseDocument([]byte(doc.String()))
	require.NoError(t, err)
	assert.Equal(t, doc.Root().Array, again.Root().Array)
}

func TestDocumentAST(t *testing.T) {
	doc, err := ParseDocument([]byte("42"))
	require.NoError(t, err)
	node, err := doc.AST()
	require.NoError(t, err)
	assert.NotNil(t, node)
}
