package compiler

import (
	"github.com/libklein/nand2tetris/jackcompiler/internal/token"
	"github.com/libklein/nand2tetris/jackcompiler/internal/vm"
	log "github.com/sirupsen/logrus"
)

var binaryOperators = map[byte]vm.Operation{
	'+': vm.Add,
	'-': vm.Sub,
	'*': vm.Multiply,
	'/': vm.Divide,
	'&': vm.And,
	'|': vm.Or,
	'<': vm.Lt,
	'>': vm.Gt,
	'=': vm.Eq,
}

// expression: term (op term)*
//
// There is no precedence: operators apply left to right as they appear.
func (c *Compiler) compileExpression() error {
	log.Trace("Compiling expression")
	if err := c.compileTerm(); err != nil {
		return err
	}
	for {
		next := c.cursor.Peek(0)
		if next.Kind != token.SymbolToken {
			return nil
		}
		op, ok := binaryOperators[next.Symbol]
		if !ok {
			return nil
		}
		c.cursor.Advance()
		if err := c.compileTerm(); err != nil {
			return err
		}
		c.writer.WriteArithmetic(op)
	}
}

// term: integerConstant | stringConstant | keywordConstant | varName |
// varName '[' expression ']' | subroutineCall | '(' expression ')' |
// unaryOp term
func (c *Compiler) compileTerm() error {
	log.Trace("Compiling term")
	tok := c.cursor.Peek(0)
	switch tok.Kind {
	case token.IntegerToken:
		c.cursor.Advance()
		c.writer.WritePush(vm.ConstantSegment, tok.Int)
		return nil
	case token.StringToken:
		c.cursor.Advance()
		c.writer.WriteStringConstant(tok.Text)
		return nil
	case token.KeywordToken:
		return c.compileKeywordConstant(tok)
	case token.SymbolToken:
		return c.compileSymbolTerm(tok)
	case token.IdentifierToken:
		return c.compileVarNameTerm(tok)
	}
	return c.unexpected(tok, "a term")
}

func (c *Compiler) compileKeywordConstant(tok token.Token) error {
	switch tok.Keyword {
	case token.True:
		// All bits set.
		c.writer.WritePush(vm.ConstantSegment, 0)
		c.writer.WriteArithmetic(vm.Not)
	case token.False, token.Null:
		c.writer.WritePush(vm.ConstantSegment, 0)
	case token.This:
		c.writer.WritePush(vm.PointerSegment, 0)
	default:
		return c.unexpected(tok, "a term")
	}
	c.cursor.Advance()
	return nil
}

func (c *Compiler) compileSymbolTerm(tok token.Token) error {
	switch tok.Symbol {
	case '(':
		c.cursor.Advance()
		if err := c.compileExpression(); err != nil {
			return err
		}
		return c.expectSymbol(')')
	case '-':
		c.cursor.Advance()
		if err := c.compileTerm(); err != nil {
			return err
		}
		c.writer.WriteArithmetic(vm.Neg)
		return nil
	case '~':
		c.cursor.Advance()
		if err := c.compileTerm(); err != nil {
			return err
		}
		c.writer.WriteArithmetic(vm.Not)
		return nil
	}
	return c.unexpected(tok, "a term")
}

// compileVarNameTerm tells a variable, an array element and a call apart by
// the token following the name.
func (c *Compiler) compileVarNameTerm(tok token.Token) error {
	pos := c.cursor.Pos()
	next := c.cursor.Peek(1)
	c.cursor.Advance()

	switch {
	case next.IsSymbol('['):
		base, err := c.resolve(tok.Text, pos)
		if err != nil {
			return err
		}
		c.push(base)
		c.cursor.Advance()
		if err := c.compileExpression(); err != nil {
			return err
		}
		if err := c.expectSymbol(']'); err != nil {
			return err
		}
		c.writer.WriteArithmetic(vm.Add)
		c.writer.WritePop(vm.PointerSegment, 1)
		c.writer.WritePush(vm.ThatSegment, 0)
		return nil
	case next.IsSymbol('.'), next.IsSymbol('('):
		return c.compileSubroutineCall(tok.Text, pos)
	}

	symbol, err := c.resolve(tok.Text, pos)
	if err != nil {
		return err
	}
	c.push(symbol)
	return nil
}

// expressionList: (expression (',' expression)*)?
func (c *Compiler) compileExpressionList() (int, error) {
	log.Trace("Compiling expression list")
	if c.cursor.Peek(0).IsSymbol(')') {
		return 0, nil
	}
	count := 0
	for {
		if err := c.compileExpression(); err != nil {
			return 0, err
		}
		count++
		if !c.cursor.Peek(0).IsSymbol(',') {
			return count, nil
		}
		c.cursor.Advance()
	}
}
