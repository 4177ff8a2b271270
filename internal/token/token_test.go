package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupKeyword(t *testing.T) {
	for kw := Class; kw <= Return; kw++ {
		got, ok := LookupKeyword(kw.String())
		assert.True(t, ok, kw.String())
		assert.Equal(t, kw, got)
	}
	_, ok := LookupKeyword("classy")
	assert.False(t, ok)
	_, ok = LookupKeyword("")
	assert.False(t, ok)
}

func TestTokenPredicates(t *testing.T) {
	assert.True(t, NewKeyword(While).IsKeyword(While))
	assert.False(t, NewKeyword(While).IsKeyword(Do))
	assert.False(t, NewIdentifier("while").IsKeyword(While))
	assert.True(t, NewSymbol('{').IsSymbol('{'))
	assert.False(t, NewString("{").IsSymbol('{'))
	assert.Equal(t, Invalid, Token{}.Kind)
	assert.Equal(t, "end of input", Token{}.String())
	assert.Equal(t, `symbol "~"`, NewSymbol('~').String())
	assert.Equal(t, "integer 42", NewInteger(42).String())
}
