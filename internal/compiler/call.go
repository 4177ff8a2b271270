package compiler

import (
	"github.com/libklein/nand2tetris/jackcompiler/internal/symbols"
	"github.com/libklein/nand2tetris/jackcompiler/internal/vm"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Receiver says which object, if any, is passed as a hidden first argument.
type Receiver int

const (
	// NoReceiver is a function or constructor call: ClassName.name(...).
	NoReceiver Receiver = iota
	// SelfReceiver is an unqualified call name(...) on the current object.
	SelfReceiver
	// VariableReceiver is a method call through a variable: var.name(...).
	VariableReceiver
)

// CallTarget is a resolved call site.
type CallTarget struct {
	Callee   string
	Receiver Receiver
	// Variable holds the receiver when Receiver is VariableReceiver.
	Variable symbols.Symbol
}

// ImplicitArgs is the number of arguments the receiver adds to the call.
func (t CallTarget) ImplicitArgs() int {
	if t.Receiver == NoReceiver {
		return 0
	}
	return 1
}

// ResolveCall works out the callee of a call site. For a qualified call
// leading.member(...), leading is first looked up as a variable; if it is
// one, the call goes to a method of the variable's class, otherwise leading
// names a class. An unqualified call leading(...) is always a method of
// className.
func ResolveCall(table *symbols.SymbolTable, className, leading, member string, qualified bool) (CallTarget, error) {
	if !qualified {
		return CallTarget{Callee: className + "." + leading, Receiver: SelfReceiver}, nil
	}
	variable, err := table.Resolve(leading)
	if errors.Is(err, symbols.ErrUndeclaredName) {
		return CallTarget{Callee: leading + "." + member, Receiver: NoReceiver}, nil
	} else if err != nil {
		return CallTarget{}, err
	}
	if variable.Type.Kind != symbols.ClassType {
		return CallTarget{}, errors.Wrapf(ErrInvalidReceiver, "cannot call %s on %s of type %s", member, leading, variable.Type)
	}
	return CallTarget{
		Callee:   variable.Type.Class + "." + member,
		Receiver: VariableReceiver,
		Variable: variable,
	}, nil
}

// subroutineCall: subroutineName '(' expressionList ')' |
// (className | varName) '.' subroutineName '(' expressionList ')'
//
// The leading name has already been consumed; pos is its position.
func (c *Compiler) compileSubroutineCall(leading string, pos int) error {
	log.Trace("Compiling subroutine call")
	member := ""
	qualified := c.cursor.Peek(0).IsSymbol('.')
	if qualified {
		c.cursor.Advance()
		var err error
		if member, err = c.expectIdentifier("subroutine name"); err != nil {
			return err
		}
	}

	target, err := ResolveCall(c.symbols, c.className, leading, member, qualified)
	if err != nil {
		return errorAt(pos, err, "in %s.%s", c.className, c.subroutine.name)
	}
	switch target.Receiver {
	case SelfReceiver:
		c.writer.WritePush(vm.PointerSegment, 0)
	case VariableReceiver:
		c.push(target.Variable)
	}

	if err := c.expectSymbol('('); err != nil {
		return err
	}
	nargs, err := c.compileExpressionList()
	if err != nil {
		return err
	}
	if err := c.expectSymbol(')'); err != nil {
		return err
	}
	c.writer.WriteCall(target.Callee, target.ImplicitArgs()+nargs)
	return nil
}
