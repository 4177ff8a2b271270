package compiler

import (
	"github.com/libklein/nand2tetris/jackcompiler/internal/token"
	"github.com/libklein/nand2tetris/jackcompiler/internal/vm"
	log "github.com/sirupsen/logrus"
)

// statements: statement*
//
// Anything but a statement keyword ends the sequence; the caller decides
// whether what follows is acceptable.
func (c *Compiler) compileStatements() error {
	for {
		next := c.cursor.Peek(0)
		if next.Kind != token.KeywordToken {
			return nil
		}
		var err error
		switch next.Keyword {
		case token.Let:
			err = c.compileLetStatement()
		case token.If:
			err = c.compileIfStatement()
		case token.While:
			err = c.compileWhileStatement()
		case token.Do:
			err = c.compileDoStatement()
		case token.Return:
			err = c.compileReturnStatement()
		default:
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// compileBlock compiles '{' statements '}'.
func (c *Compiler) compileBlock() error {
	if err := c.expectSymbol('{'); err != nil {
		return err
	}
	if err := c.compileStatements(); err != nil {
		return err
	}
	return c.expectSymbol('}')
}

// compileCondition compiles '(' expression ')'.
func (c *Compiler) compileCondition() error {
	if err := c.expectSymbol('('); err != nil {
		return err
	}
	if err := c.compileExpression(); err != nil {
		return err
	}
	return c.expectSymbol(')')
}

// letStatement: 'let' varName ('[' expression ']')? '=' expression ';'
func (c *Compiler) compileLetStatement() error {
	log.Trace("Compiling let statement")
	c.cursor.Advance()
	pos := c.cursor.Pos()
	name, err := c.expectIdentifier("variable name")
	if err != nil {
		return err
	}
	target, err := c.resolve(name, pos)
	if err != nil {
		return err
	}

	if !c.cursor.Peek(0).IsSymbol('[') {
		if err := c.compileAssignment(); err != nil {
			return err
		}
		c.pop(target)
		return nil
	}

	c.cursor.Advance()
	if err := c.compileExpression(); err != nil {
		return err
	}
	if err := c.expectSymbol(']'); err != nil {
		return err
	}
	c.push(target)
	c.writer.WriteArithmetic(vm.Add)
	if err := c.compileAssignment(); err != nil {
		return err
	}
	// The right hand side may itself move pointer 1, so the address is only
	// installed once the value is known.
	c.writer.WritePop(vm.TempSegment, 0)
	c.writer.WritePop(vm.PointerSegment, 1)
	c.writer.WritePush(vm.TempSegment, 0)
	c.writer.WritePop(vm.ThatSegment, 0)
	return nil
}

// compileAssignment compiles '=' expression ';'.
func (c *Compiler) compileAssignment() error {
	if err := c.expectSymbol('='); err != nil {
		return err
	}
	if err := c.compileExpression(); err != nil {
		return err
	}
	return c.expectSymbol(';')
}

// ifStatement: 'if' '(' expression ')' '{' statements '}'
// ('else' '{' statements '}')?
func (c *Compiler) compileIfStatement() error {
	log.Trace("Compiling if statement")
	c.cursor.Advance()
	labels := newIfLabels(c.className, c.labels.NextIf())

	if err := c.compileCondition(); err != nil {
		return err
	}
	c.writer.WriteIf(labels.True)
	c.writer.WriteGoto(labels.False)
	c.writer.WriteLabel(labels.True)
	if err := c.compileBlock(); err != nil {
		return err
	}
	c.writer.WriteGoto(labels.End)
	c.writer.WriteLabel(labels.False)
	if c.cursor.Peek(0).IsKeyword(token.Else) {
		c.cursor.Advance()
		if err := c.compileBlock(); err != nil {
			return err
		}
	}
	c.writer.WriteLabel(labels.End)
	return nil
}

// whileStatement: 'while' '(' expression ')' '{' statements '}'
func (c *Compiler) compileWhileStatement() error {
	log.Trace("Compiling while statement")
	c.cursor.Advance()
	labels := newWhileLabels(c.className, c.labels.NextWhile())

	c.writer.WriteLabel(labels.Exp)
	if err := c.compileCondition(); err != nil {
		return err
	}
	c.writer.WriteArithmetic(vm.Not)
	c.writer.WriteIf(labels.End)
	if err := c.compileBlock(); err != nil {
		return err
	}
	c.writer.WriteGoto(labels.Exp)
	c.writer.WriteLabel(labels.End)
	return nil
}

// doStatement: 'do' subroutineCall ';'
//
// Every subroutine returns a value, void ones included, so the result is
// always discarded.
func (c *Compiler) compileDoStatement() error {
	log.Trace("Compiling do statement")
	c.cursor.Advance()
	pos := c.cursor.Pos()
	name, err := c.expectIdentifier("subroutine, class or variable name")
	if err != nil {
		return err
	}
	if err := c.compileSubroutineCall(name, pos); err != nil {
		return err
	}
	if err := c.expectSymbol(';'); err != nil {
		return err
	}
	c.writer.WritePop(vm.TempSegment, 0)
	return nil
}

// returnStatement: 'return' expression? ';'
func (c *Compiler) compileReturnStatement() error {
	log.Trace("Compiling return statement")
	c.cursor.Advance()
	if c.subroutine.void() {
		c.writer.WritePush(vm.ConstantSegment, 0)
		if next := c.cursor.Peek(0); !next.IsSymbol(';') {
			return errorAt(c.cursor.Pos(), ErrSyntax, "void subroutine %s.%s cannot return a value, got %s", c.className, c.subroutine.name, next)
		}
	} else {
		if c.cursor.Peek(0).IsSymbol(';') {
			return errorAt(c.cursor.Pos(), ErrSyntax, "subroutine %s.%s must return a %s", c.className, c.subroutine.name, c.subroutine.returnType)
		}
		if err := c.compileExpression(); err != nil {
			return err
		}
	}
	if err := c.expectSymbol(';'); err != nil {
		return err
	}
	c.writer.WriteReturn()
	return nil
}
