// Package token defines the classified tokens the compiler consumes.
package token

import (
	"fmt"
	"strconv"
)

// MaxInteger is the largest integer literal the target machine can represent.
const MaxInteger = 32767

// Kind tags which variant of Token is populated.
type Kind int

const (
	// Invalid is the zero Kind. The cursor hands it out past the last token.
	Invalid Kind = iota
	KeywordToken
	SymbolToken
	IdentifierToken
	IntegerToken
	StringToken
)

func (k Kind) String() string {
	switch k {
	case KeywordToken:
		return "keyword"
	case SymbolToken:
		return "symbol"
	case IdentifierToken:
		return "identifier"
	case IntegerToken:
		return "integerConstant"
	case StringToken:
		return "stringConstant"
	default:
		return "invalid"
	}
}

// Token is a value type. Only the field matching Kind is meaningful.
type Token struct {
	Kind    Kind
	Keyword Keyword
	Symbol  byte
	// Text holds the identifier name or the unescaped string literal.
	Text string
	Int  int
}

func NewKeyword(kw Keyword) Token {
	return Token{Kind: KeywordToken, Keyword: kw}
}

func NewSymbol(c byte) Token {
	return Token{Kind: SymbolToken, Symbol: c}
}

func NewIdentifier(name string) Token {
	return Token{Kind: IdentifierToken, Text: name}
}

func NewInteger(value int) Token {
	return Token{Kind: IntegerToken, Int: value}
}

func NewString(value string) Token {
	return Token{Kind: StringToken, Text: value}
}

// IsKeyword reports whether t is the given keyword.
func (t Token) IsKeyword(kw Keyword) bool {
	return t.Kind == KeywordToken && t.Keyword == kw
}

// IsSymbol reports whether t is the given single-character symbol.
func (t Token) IsSymbol(c byte) bool {
	return t.Kind == SymbolToken && t.Symbol == c
}

func (t Token) String() string {
	switch t.Kind {
	case KeywordToken:
		return fmt.Sprintf("keyword %q", t.Keyword.String())
	case SymbolToken:
		return fmt.Sprintf("symbol %q", string(t.Symbol))
	case IdentifierToken:
		return fmt.Sprintf("identifier %q", t.Text)
	case IntegerToken:
		return "integer " + strconv.Itoa(t.Int)
	case StringToken:
		return fmt.Sprintf("string %q", t.Text)
	default:
		return "end of input"
	}
}
