package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTokenBasic(t *testing.T) {
	offset, tok, rest, err := ParseToken("  hello world")
	require.Nil(t, err)
	assert.Equal(t, 2, offset)
	assert.Equal(t, Word, tok.Kind)
	assert.Equal(t, "hello", tok.Word)
	assert.Equal(t, "world", rest)
}

func TestParseTokenEmptyInput(t *testing.T) {
	_, _, _, err := ParseToken("")
	require.NotNil(t, err)
	assert.Equal(t, UnexpectedEOF, err.Kind)
}

func TestParseTokenWhitespaceOnly(t *testing.T) {
	_, _, _, err := ParseToken("   \t\n  ")
	require.NotNil(t, err)
	assert.Equal(t, UnexpectedEOF, err.Kind)
}

func TestParseStringEmptyLiteral(t *testing.T) {
	_, tok, rest, err := ParseString("``")
	require.Nil(t, err)
	assert.Equal(t, Str, tok.Kind)
	assert.Equal(t, "", tok.Raw)
	assert.Equal(t, "", rest)
}

func TestParseStringEscape(t *testing.T) {
	_, tok, _, err := ParseString("`a\\`b`")
	require.Nil(t, err)
	assert.Equal(t, "a\\`b", tok.Raw)
	assert.Equal(t, "a`b", tok.Unescaped())
}

func TestParseStringPreservesForeignEscape(t *testing.T) {
	_, tok, _, err := ParseString(`'a\nb'`)
	require.Nil(t, err)
	assert.Equal(t, `a\nb`, tok.Unescaped())
}

func TestParseStringExpectedWhitespace(t *testing.T) {
	_, _, _, err := ParseString("`hi`there")
	require.NotNil(t, err)
	assert.Equal(t, ExpectedWhitespace, err.Kind)
}

func TestParseStringUnterminated(t *testing.T) {
	_, _, _, err := ParseString("`unterminated")
	require.NotNil(t, err)
	assert.Equal(t, UnexpectedEOF, err.Kind)
}

func TestParseStringInvalidLeader(t *testing.T) {
	_, _, _, err := ParseString("nodelim")
	require.NotNil(t, err)
	assert.Equal(t, InvalidString, err.Kind)
}

func TestParseNumberIntegerAndFloat(t *testing.T) {
	_, tok, _, err := ParseNumber("42 rest")
	require.Nil(t, err)
	assert.Equal(t, Integer, tok.Kind)
	assert.Equal(t, int64(42), tok.Int)

	_, tok, _, err = ParseNumber("-1.5 rest")
	require.Nil(t, err)
	assert.Equal(t, Float, tok.Kind)
	assert.Equal(t, -1.5, tok.Float)
}

func TestParseNumberInvalid(t *testing.T) {
	_, _, _, err := ParseNumber("notanumber")
	require.NotNil(t, err)
	assert.Equal(t, InvalidNumber, err.Kind)
}

func TestParseNextPrefersString(t *testing.T) {
	_, tok, _, err := ParseNext("`hi` rest")
	require.Nil(t, err)
	assert.Equal(t, Str, tok.Kind)
}

func TestParseNextPrefersNumberOverWord(t *testing.T) {
	_, tok, _, err := ParseNext("123 rest")
	require.Nil(t, err)
	assert.Equal(t, Integer, tok.Kind)
}

func TestParseNextFallsBackToWord(t *testing.T) {
	_, tok, _, err := ParseNext("plain rest")
	require.Nil(t, err)
	assert.Equal(t, Word, tok.Kind)
	assert.Equal(t, "plain", tok.Word)
}
