package compiler

import (
	"strings"
	"testing"

	"github.com/libklein/nand2tetris/jackcompiler/internal/symbols"
	"github.com/libklein/nand2tetris/jackcompiler/internal/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helpers to spell token sequences without the tokenizer.
func kw(k token.Keyword) token.Token { return token.NewKeyword(k) }
func sym(c byte) token.Token         { return token.NewSymbol(c) }
func id(name string) token.Token     { return token.NewIdentifier(name) }
func num(n int) token.Token          { return token.NewInteger(n) }

func lines(s ...string) string {
	return strings.Join(s, "\n") + "\n"
}

// class Main { function void main() { do Output.printInt(1+2*3); return; } }
func mainTokens() []token.Token {
	return []token.Token{
		kw(token.Class), id("Main"), sym('{'),
		kw(token.Function), kw(token.Void), id("main"), sym('('), sym(')'), sym('{'),
		kw(token.Do), id("Output"), sym('.'), id("printInt"), sym('('),
		num(1), sym('+'), num(2), sym('*'), num(3),
		sym(')'), sym(';'),
		kw(token.Return), sym(';'),
		sym('}'),
		sym('}'),
	}
}

func TestCompileLeftToRight(t *testing.T) {
	out, err := Compile(mainTokens())
	require.NoError(t, err)
	assert.Equal(t, lines(
		"function Main.main 0",
		"push constant 1",
		"push constant 2",
		"add",
		"push constant 3",
		"call Math.multiply 2",
		"call Output.printInt 1",
		"pop temp 0",
		"push constant 0",
		"return",
	), out)
}

func TestCompileTrue(t *testing.T) {
	// class T { function boolean t() { return true; } }
	out, err := Compile([]token.Token{
		kw(token.Class), id("T"), sym('{'),
		kw(token.Function), kw(token.Boolean), id("t"), sym('('), sym(')'), sym('{'),
		kw(token.Return), kw(token.True), sym(';'),
		sym('}'),
		sym('}'),
	})
	require.NoError(t, err)
	assert.Equal(t, lines(
		"function T.t 0",
		"push constant 0",
		"not",
		"return",
	), out)
}

func TestConstructorReturnTypeRejectedBeforeOutput(t *testing.T) {
	// class A { function void f() { return; } constructor B new() { return this; } }
	c := NewCompiler([]token.Token{
		kw(token.Class), id("A"), sym('{'),
		kw(token.Function), kw(token.Void), id("f"), sym('('), sym(')'), sym('{'),
		kw(token.Return), sym(';'),
		sym('}'),
		kw(token.Constructor), id("B"), id("new"), sym('('), sym(')'), sym('{'),
		kw(token.Return), kw(token.This), sym(';'),
		sym('}'),
		sym('}'),
	})
	out, err := c.CompileClass()
	assert.ErrorIs(t, err, ErrInvalidConstructorReturnType)
	assert.Empty(t, out)
	// Only f was written when the constructor was rejected.
	assert.Equal(t, lines("function A.f 0", "push constant 0", "return"), c.writer.String())
}

func TestVoidCalleeLeavesOneValue(t *testing.T) {
	// class A { function void f() { return; } function void g() { do A.f(); return; } }
	c := NewCompiler([]token.Token{
		kw(token.Class), id("A"), sym('{'),
		kw(token.Function), kw(token.Void), id("f"), sym('('), sym(')'), sym('{'),
		kw(token.Return), sym(';'),
		sym('}'),
		kw(token.Function), kw(token.Void), id("g"), sym('('), sym(')'), sym('{'),
		kw(token.Do), id("A"), sym('.'), id("f"), sym('('), sym(')'), sym(';'),
		kw(token.Return), sym(';'),
		sym('}'),
		sym('}'),
	})
	out, err := c.CompileClass()
	require.NoError(t, err)
	assert.Equal(t, lines(
		"function A.f 0",
		"push constant 0",
		"return",
		"function A.g 0",
		"call A.f 0",
		"pop temp 0",
		"push constant 0",
		"return",
	), out)
	// f pushes exactly one value before returning and g pops exactly one.
	assert.Equal(t, 8, c.writer.Instructions())
	assert.Equal(t, 1, strings.Count(out, "pop temp 0"))
}

func TestMethodReceiverIsArgumentZero(t *testing.T) {
	// class P { field int v; method void set(int a, int b) { let v = b; return; } }
	c := NewCompiler([]token.Token{
		kw(token.Class), id("P"), sym('{'),
		kw(token.Field), kw(token.Int), id("v"), sym(';'),
		kw(token.Method), kw(token.Void), id("set"), sym('('),
		kw(token.Int), id("a"), sym(','), kw(token.Int), id("b"),
		sym(')'), sym('{'),
		kw(token.Let), id("v"), sym('='), id("b"), sym(';'),
		kw(token.Return), sym(';'),
		sym('}'),
		sym('}'),
	})
	out, err := c.CompileClass()
	require.NoError(t, err)
	assert.Equal(t, "P", c.ClassName())
	assert.Equal(t, lines(
		"function P.set 0",
		"push argument 0",
		"pop pointer 0",
		"push argument 2",
		"pop this 0",
		"push constant 0",
		"return",
	), out)

	receiver, err := c.symbols.Resolve(receiverName)
	require.NoError(t, err)
	assert.Equal(t, symbols.Argument, receiver.Kind)
	assert.Equal(t, 0, receiver.Index)
	assert.Equal(t, symbols.ClassRef("P"), receiver.Type)
}

func TestCompileErrorsCarryPosition(t *testing.T) {
	// class A { function void f() { let z = 1; return; } }
	_, err := Compile([]token.Token{
		kw(token.Class), id("A"), sym('{'),
		kw(token.Function), kw(token.Void), id("f"), sym('('), sym(')'), sym('{'),
		kw(token.Let), id("z"), sym('='), num(1), sym(';'),
		kw(token.Return), sym(';'),
		sym('}'),
		sym('}'),
	})
	require.ErrorIs(t, err, symbols.ErrUndeclaredName)
	assert.Contains(t, err.Error(), "token 10")
	assert.Contains(t, err.Error(), "A.f")
}

func TestCompileEmptyInput(t *testing.T) {
	out, err := Compile(nil)
	assert.ErrorIs(t, err, ErrUnexpectedEndOfInput)
	assert.Empty(t, out)
}
