package lox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanner_SingleAndTwoCharTokens(t *testing.T) {
	tokens, errs := NewScanner("(){},.-+;/*! != = == > >= < <=").ScanTokens()
	require.Empty(t, errs)

	want := []TokenType{
		LEFT_PAREN, RIGHT_PAREN, LEFT_BRACE, RIGHT_BRACE, COMMA, DOT, MINUS,
		PLUS, SEMICOLON, SLASH, STAR, BANG, BANG_EQUAL, EQUAL, EQUAL_EQUAL,
		GREATER, GREATER_EQUAL, LESS, LESS_EQUAL, EOF,
	}
	require.Len(t, tokens, len(want))
	for i, k := range want {
		assert.Equal(t, k, tokens[i].Type, "token %d", i)
	}
}

func TestScanner_Identifiers_Numbers_Strings(t *testing.T) {
	tokens, errs := NewScanner(`var name = "hello world";
n = 12.5;`).ScanTokens()
	require.Empty(t, errs)

	require.Equal(t, VAR, tokens[0].Type)
	require.Equal(t, IDENTIFIER, tokens[1].Type)
	assert.Equal(t, "name", tokens[1].Lexeme)
	require.Equal(t, EQUAL, tokens[2].Type)
	require.Equal(t, STRING, tokens[3].Type)
	assert.Equal(t, "hello world", tokens[3].Literal)

	// second line
	idx := 7
	require.Equal(t, NUMBER, tokens[idx].Type)
	assert.Equal(t, "12.5", tokens[idx].Literal)
	assert.Equal(t, 2, tokens[idx].Line)
}

func TestScanner_KeywordsNotMisreadAsIdentifiers(t *testing.T) {
	tokens, errs := NewScanner("and class else false for fun if nil or print return super this true var while").ScanTokens()
	require.Empty(t, errs)

	want := []TokenType{AND, CLASS, ELSE, FALSE, FOR, FUN, IF, NIL, OR, PRINT, RETURN, SUPER, THIS, TRUE, VAR, WHILE, EOF}
	require.Len(t, tokens, len(want))
	for i, k := range want {
		assert.Equal(t, k, tokens[i].Type, "token %d (%s)", i, tokens[i].Lexeme)
	}
}

func TestScanner_CommentsAndWhitespaceIgnored(t *testing.T) {
	tokens, errs := NewScanner("// a whole comment line\n  \t 1 + 1 // trailing").ScanTokens()
	require.Empty(t, errs)
	require.Len(t, tokens, 4) // 1, +, 1, EOF
	assert.Equal(t, NUMBER, tokens[0].Type)
	assert.Equal(t, 2, tokens[0].Line)
}

func TestScanner_UnterminatedStringAccumulatesError(t *testing.T) {
	_, errs := NewScanner(`"unterminated`).ScanTokens()
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "Unterminated string.")
}

func TestScanner_AccumulatesMultipleErrorsPerPass(t *testing.T) {
	_, errs := NewScanner("@ # $").ScanTokens()
	require.Len(t, errs, 3)
	for _, e := range errs {
		assert.Contains(t, e.Error(), "Unexpected character.")
	}
}

func TestScanner_StringCanSpanMultipleLinesAndBumpsLineCounter(t *testing.T) {
	tokens, errs := NewScanner("\"line one\nline two\" x").ScanTokens()
	require.Empty(t, errs)
	require.Equal(t, STRING, tokens[0].Type)
	assert.Equal(t, "line one\nline two", tokens[0].Literal)
	assert.Equal(t, IDENTIFIER, tokens[1].Type)
	assert.Equal(t, 2, tokens[1].Line)
}
