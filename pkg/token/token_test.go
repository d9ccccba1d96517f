package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupIdent(t *testing.T) {
	assert.Equal(t, SELECT, LookupIdent("select"))
	assert.Equal(t, INTERVAL, LookupIdent("interval"))
	assert.Equal(t, IDENT, LookupIdent("my_column"))
}

func TestTokenTypeString(t *testing.T) {
	assert.Equal(t, "SELECT", SELECT.String())
	assert.Equal(t, "->>", DARROW.String())
	assert.Equal(t, "TOKEN(900)", TokenType(900).String())
}

func TestIsKeywordAndOperator(t *testing.T) {
	assert.True(t, IsKeyword(SELECT))
	assert.False(t, IsKeyword(PLUS))
	assert.True(t, IsOperator(DCOLON))
	assert.False(t, IsOperator(IDENT))
}

func TestPositionAndSpan(t *testing.T) {
	assert.False(t, Position{}.IsValid())

	start := Position{Line: 1, Column: 8, Offset: 7}
	assert.True(t, start.IsValid())
	assert.Equal(t, "1:8", start.String())

	span := Span{Start: start, End: Position{Line: 1, Column: 12, Offset: 11}}
	assert.True(t, span.IsValid())
	assert.False(t, Span{Start: start}.IsValid())

	assert.True(t, span.Contains(7))
	assert.True(t, span.Contains(10))
	assert.False(t, span.Contains(11), "the end offset is exclusive")
	assert.False(t, span.Contains(6))
}

func TestRegisterDynamicToken(t *testing.T) {
	tok := Register("TESTTYPE")
	require.True(t, IsDynamic(tok))
	assert.Equal(t, "TESTTYPE", tok.String())

	got, ok := LookupDynamicKeyword("TESTTYPE")
	require.True(t, ok)
	assert.Equal(t, tok, got)

	_, ok = LookupDynamicKeyword("NOTREGISTERED")
	assert.False(t, ok)

	other := Register("OTHERTYPE")
	assert.NotEqual(t, tok, other, "each registration gets a distinct ID")

	assert.Contains(t, RegisteredTokens(), tok)
}
