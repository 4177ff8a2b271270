package compiler

import "github.com/libklein/nand2tetris/jackcompiler/internal/token"

// Cursor is a read-only view over a token sequence.
type Cursor struct {
	tokens []token.Token
	pos    int
}

func NewCursor(tokens []token.Token) *Cursor {
	return &Cursor{tokens: tokens}
}

// Peek returns the token offset positions ahead without consuming it. Past
// the last token it returns the zero Token, whose Kind is token.Invalid.
func (c *Cursor) Peek(offset int) token.Token {
	if i := c.pos + offset; i < len(c.tokens) {
		return c.tokens[i]
	}
	return token.Token{}
}

// Advance consumes the current token.
func (c *Cursor) Advance() (token.Token, error) {
	if c.pos >= len(c.tokens) {
		return token.Token{}, errorAt(c.pos, ErrUnexpectedEndOfInput, "no token left to read")
	}
	tok := c.tokens[c.pos]
	c.pos++
	return tok, nil
}

// Pos is the index of the current token.
func (c *Cursor) Pos() int {
	return c.pos
}

// Done reports whether every token has been consumed.
func (c *Cursor) Done() bool {
	return c.pos >= len(c.tokens)
}
