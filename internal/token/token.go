// Package token implements the low-level lexer shared by the NLSD decoder
// and the NLOQ path parser: whitespace-delimited words, back-tick/quote
// delimited strings, and signed integer/float literals.
//
// Every function here is pure: it takes a string slice and returns the byte
// offset (relative to that slice) at which the token started, the token
// itself, and whatever of the slice remains unconsumed. Nothing here retains
// or mutates its input, and nothing here is safe-guarded behind a cursor
// type — callers that need an absolute, rebased byte offset (the NLSD
// decoder does, for its rollback machinery) track the cumulative consumed
// length themselves and add it to the offsets returned here. This mirrors
// shape-yaml's internal/fastparser, which also tracks its own byte/line/col
// state around a stateless scan rather than pushing that bookkeeping into
// the scanner.
package token

import (
	"strconv"
	"strings"
)

// Kind identifies which of the three lexical categories a Token belongs to.
type Kind int

const (
	// Word is a maximal whitespace-free run of non-delimiter characters.
	Word Kind = iota
	// Str is the content between a matched pair of `, ", or ' delimiters.
	Str
	// Integer is a token that parsed as a signed 64-bit integer.
	Integer
	// Float is a token that parsed as an IEEE-754 double.
	Float
)

// Token is the output of the lexer: exactly one of its fields is
// meaningful, selected by Kind.
type Token struct {
	Kind Kind

	// Word holds the raw text when Kind == Word.
	Word string

	// Raw holds the delimited content as written, escapes still in place,
	// when Kind == Str. Unescape it with Unescaped(); that allocates only
	// when an escape actually occurs in Raw.
	Raw   string
	Delim byte

	Int   int64
	Float float64
}

// Unescaped returns the string content of a Str token with \<delim>
// replaced by <delim>. It returns Raw itself (no copy) when Raw contains no
// backslash, matching the "allocate only when replacement occurs" rule.
func (t Token) Unescaped() string {
	if t.Kind != Str || !strings.ContainsRune(t.Raw, '\\') {
		return t.Raw
	}
	var b strings.Builder
	b.Grow(len(t.Raw))
	src := t.Raw
	for {
		i := strings.IndexByte(src, '\\')
		if i < 0 {
			b.WriteString(src)
			break
		}
		b.WriteString(src[:i])
		if i+1 < len(src) && src[i+1] == t.Delim {
			b.WriteByte(t.Delim)
			src = src[i+2:]
		} else {
			// Not an escape of the recording delimiter: the backslash is
			// preserved verbatim, per spec.
			b.WriteByte('\\')
			src = src[i+1:]
		}
	}
	return b.String()
}

// ErrorKind enumerates the lexer's closed error taxonomy (spec §3).
type ErrorKind int

const (
	UnexpectedEOF ErrorKind = iota
	InvalidString
	InvalidNumber
	ExpectedWhitespace
)

// ParseError is the lexer's error type. Offset is the byte offset of the
// failure within the slice passed to the failing call; it is meaningless
// (left at 0) for UnexpectedEOF, which by definition has no "next" byte to
// point at.
type ParseError struct {
	Kind   ErrorKind
	Offset int
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case UnexpectedEOF:
		return "token: unexpected end of input"
	case InvalidString:
		return "token: invalid string at byte offset " + strconv.Itoa(e.Offset)
	case InvalidNumber:
		return "token: invalid number at byte offset " + strconv.Itoa(e.Offset)
	case ExpectedWhitespace:
		return "token: expected whitespace at byte offset " + strconv.Itoa(e.Offset)
	default:
		return "token: parse error"
	}
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

func isDelim(b byte) bool {
	return b == '`' || b == '"' || b == '\''
}

// skipWhitespace returns the byte offset of the first non-whitespace byte
// in src, which may equal len(src).
func skipWhitespace(src string) int {
	i := 0
	for i < len(src) && isSpace(src[i]) {
		i++
	}
	return i
}

// ParseToken recognizes the next maximal whitespace-free run of characters.
// Trailing whitespace is consumed as part of the match (but not included in
// the token text).
func ParseToken(src string) (offset int, tok Token, rest string, err *ParseError) {
	start := skipWhitespace(src)
	if start >= len(src) {
		return 0, Token{}, "", &ParseError{Kind: UnexpectedEOF}
	}
	i := start
	for i < len(src) && !isSpace(src[i]) {
		i++
	}
	word := src[start:i]
	j := i
	for j < len(src) && isSpace(src[j]) {
		j++
	}
	return start, Token{Kind: Word, Word: word}, src[j:], nil
}

// ParseString recognizes a back-tick/double-quote/single-quote delimited
// string. The delimiter is whichever of the three characters opens the
// literal; the only escape sequence is a backslash followed by that same
// delimiter.
func ParseString(src string) (offset int, tok Token, rest string, err *ParseError) {
	start := skipWhitespace(src)
	if start >= len(src) {
		return 0, Token{}, "", &ParseError{Kind: UnexpectedEOF}
	}
	delim := src[start]
	if !isDelim(delim) {
		return start, Token{}, "", &ParseError{Kind: InvalidString, Offset: start}
	}
	i := start + 1
	contentStart := i
	for {
		if i >= len(src) {
			return start, Token{}, "", &ParseError{Kind: UnexpectedEOF}
		}
		c := src[i]
		if c == '\\' && i+1 < len(src) {
			// Only \<delim> is a recognized escape; any other backslash is
			// ordinary content and does not suppress the next character's
			// role as a possible closing delimiter.
			if src[i+1] == delim {
				i += 2
				continue
			}
			i++
			continue
		}
		if c == delim {
			break
		}
		i++
	}
	content := src[contentStart:i]
	closeEnd := i + 1
	if closeEnd < len(src) && !isSpace(src[closeEnd]) {
		return start, Token{}, "", &ParseError{Kind: ExpectedWhitespace, Offset: closeEnd}
	}
	j := closeEnd
	for j < len(src) && isSpace(src[j]) {
		j++
	}
	return start, Token{Kind: Str, Raw: content, Delim: delim}, src[j:], nil
}

// ParseNumber recognizes a token that parses as a signed integer or,
// failing that, as an IEEE-754 double.
func ParseNumber(src string) (offset int, tok Token, rest string, err *ParseError) {
	start, wordTok, rest2, werr := ParseToken(src)
	if werr != nil {
		return 0, Token{}, "", werr
	}
	text := wordTok.Word
	if n, convErr := strconv.ParseInt(text, 10, 64); convErr == nil {
		return start, Token{Kind: Integer, Int: n}, rest2, nil
	}
	if f, convErr := strconv.ParseFloat(text, 64); convErr == nil {
		return start, Token{Kind: Float, Float: f}, rest2, nil
	}
	return start, Token{}, "", &ParseError{Kind: InvalidNumber, Offset: start}
}

// ParseNext tries ParseString, then ParseNumber, then ParseToken, in that
// order, returning the first that succeeds.
func ParseNext(src string) (offset int, tok Token, rest string, err *ParseError) {
	if offset, tok, rest, err = ParseString(src); err == nil {
		return offset, tok, rest, nil
	}
	if offset, tok, rest, err = ParseNumber(src); err == nil {
		return offset, tok, rest, nil
	}
	return ParseToken(src)
}
