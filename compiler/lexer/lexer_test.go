package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scanAll(t *testing.T, source string) []Token {
	t.Helper()
	l := New(source)
	tokens, errs := l.ScanTokens()
	require.Empty(t, errs, "unexpected lex errors: %v", errs)
	return tokens
}

func TestKeywordsTokenizeToKeywordKind(t *testing.T) {
	cases := map[string]TokenType{
		"state":      TOKEN_STATE,
		"transition": TOKEN_TRANSITION,
		"when":       TOKEN_WHEN,
		"let":        TOKEN_LET,
		"fn":         TOKEN_FN,
		"if":         TOKEN_IF,
		"else":       TOKEN_ELSE,
		"return":     TOKEN_RETURN,
		"print":      TOKEN_PRINT,
		"true":       TOKEN_TRUE,
		"false":      TOKEN_FALSE,
		"null":       TOKEN_NULL,
		"and":        TOKEN_AND,
		"or":         TOKEN_OR,
		"endpoint":   TOKEN_ENDPOINT,
		"GET":        TOKEN_GET,
		"POST":       TOKEN_POST,
		"PUT":        TOKEN_PUT,
		"DELETE":     TOKEN_DELETE,
		"PATCH":      TOKEN_PATCH,
		"middleware": TOKEN_MIDDLEWARE,
		"use":        TOKEN_USE,
		"next":       TOKEN_NEXT,
		"validate":   TOKEN_VALIDATE,
		"optional":   TOKEN_OPTIONAL,
		"server":     TOKEN_SERVER,
	}

	for lexeme, want := range cases {
		tokens := scanAll(t, lexeme)
		require.Len(t, tokens, 2) // keyword + EOF
		assert.Equal(t, want, tokens[0].Type, "lexeme %q", lexeme)
		assert.NotEqual(t, TOKEN_IDENTIFIER, tokens[0].Type, "lexeme %q tokenized as identifier", lexeme)
	}
}

func TestLineCommentProducesNoToken(t *testing.T) {
	tokens := scanAll(t, "// a full line comment\nlet")
	require.Len(t, tokens, 2) // LET + EOF
	assert.Equal(t, TOKEN_LET, tokens[0].Type)
	assert.Equal(t, 2, tokens[0].Line)
}

func TestStringWithEmbeddedNewline(t *testing.T) {
	tokens := scanAll(t, `"a\nb"`)
	require.Len(t, tokens, 2)
	assert.Equal(t, TOKEN_STRING, tokens[0].Type)
	assert.Equal(t, "a\nb", tokens[0].Literal)
}

func TestSingleQuotedStrings(t *testing.T) {
	tokens := scanAll(t, `'hello'`)
	require.Len(t, tokens, 2)
	assert.Equal(t, TOKEN_STRING, tokens[0].Type)
	assert.Equal(t, "hello", tokens[0].Literal)
}

func TestArrowVersusMinusGreater(t *testing.T) {
	tokens := scanAll(t, "->")
	require.Len(t, tokens, 2)
	assert.Equal(t, TOKEN_ARROW, tokens[0].Type)

	tokens = scanAll(t, "- >")
	require.Len(t, tokens, 3)
	assert.Equal(t, TOKEN_MINUS, tokens[0].Type)
	assert.Equal(t, TOKEN_GREATER, tokens[1].Type)
}

func TestBareBangErrors(t *testing.T) {
	l := New("!")
	_, errs := l.ScanTokens()
	require.Len(t, errs, 1)
}

func TestBangEqual(t *testing.T) {
	tokens := scanAll(t, "!=")
	require.Len(t, tokens, 2)
	assert.Equal(t, TOKEN_BANG_EQUAL, tokens[0].Type)
}

func TestNumberLiterals(t *testing.T) {
	tokens := scanAll(t, "42 3.14")
	require.Len(t, tokens, 3)
	assert.Equal(t, TOKEN_NUMBER, tokens[0].Type)
	assert.Equal(t, 42.0, tokens[0].Literal)
	assert.Equal(t, TOKEN_NUMBER, tokens[1].Type)
	assert.Equal(t, 3.14, tokens[1].Literal)
}

func TestUnterminatedStringIsTolerated(t *testing.T) {
	l := New(`"abc`)
	tokens, errs := l.ScanTokens()
	assert.Empty(t, errs)
	require.Len(t, tokens, 2)
	assert.Equal(t, TOKEN_STRING, tokens[0].Type)
	assert.Equal(t, "abc", tokens[0].Literal)
}

func TestIdentifierVsKeyword(t *testing.T) {
	tokens := scanAll(t, "letter")
	require.Len(t, tokens, 2)
	assert.Equal(t, TOKEN_IDENTIFIER, tokens[0].Type)
	assert.Equal(t, "letter", tokens[0].Lexeme)
}

func TestDottedEventIdentifier(t *testing.T) {
	tokens := scanAll(t, "payment.success")
	require.Len(t, tokens, 4) // IDENTIFIER DOT IDENTIFIER EOF
	assert.Equal(t, TOKEN_IDENTIFIER, tokens[0].Type)
	assert.Equal(t, TOKEN_DOT, tokens[1].Type)
	assert.Equal(t, TOKEN_IDENTIFIER, tokens[2].Type)
}
