// Package compiler translates the tokens of one Jack class into VM code in a
// single pass. Parsing, name resolution and code generation happen together
// in one recursive descent; no syntax tree is built.
package compiler

import (
	"github.com/libklein/nand2tetris/jackcompiler/internal/symbols"
	"github.com/libklein/nand2tetris/jackcompiler/internal/token"
	"github.com/libklein/nand2tetris/jackcompiler/internal/vm"
	log "github.com/sirupsen/logrus"
)

// receiverName is the argument a method's receiver is bound to. It is a
// keyword, so no declared variable can collide with it.
const receiverName = "this"

type SubroutineKind int

const (
	FunctionKind SubroutineKind = iota
	ConstructorKind
	MethodKind
)

func (k SubroutineKind) String() string {
	switch k {
	case ConstructorKind:
		return "constructor"
	case MethodKind:
		return "method"
	default:
		return "function"
	}
}

type subroutineContext struct {
	kind SubroutineKind
	name string
	// returnType is nil for void subroutines.
	returnType *symbols.Type
}

func (s *subroutineContext) void() bool {
	return s.returnType == nil
}

// Compiler holds all mutable state of one compilation unit. It is not safe
// for concurrent use; compile independent classes with independent Compilers.
type Compiler struct {
	cursor     *Cursor
	writer     *vm.Writer
	symbols    *symbols.SymbolTable
	labels     LabelAllocator
	className  string
	subroutine subroutineContext
}

func NewCompiler(tokens []token.Token) *Compiler {
	return &Compiler{
		cursor:  NewCursor(tokens),
		writer:  vm.NewWriter(),
		symbols: symbols.NewSymbolTable(),
	}
}

// Compile translates the tokens of exactly one class. On error the partial
// output is discarded and the empty string is returned.
func Compile(tokens []token.Token) (string, error) {
	return NewCompiler(tokens).CompileClass()
}

func (c *Compiler) CompileClass() (string, error) {
	if err := c.compileClass(); err != nil {
		return "", err
	}
	return c.writer.String(), nil
}

// ClassName is the name read from the class header, once it has been parsed.
func (c *Compiler) ClassName() string {
	return c.className
}

// class: 'class' className '{' classVarDec* subroutineDec* '}'
func (c *Compiler) compileClass() error {
	log.Trace("Compiling class")
	c.symbols.Reset()
	if err := c.expectKeyword(token.Class); err != nil {
		return err
	}
	name, err := c.expectIdentifier("class name")
	if err != nil {
		return err
	}
	c.className = name
	if err := c.expectSymbol('{'); err != nil {
		return err
	}
	for {
		ok, err := c.compileClassVarDec()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
	}
	for {
		ok, err := c.compileSubroutineDec()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
	}
	if err := c.expectSymbol('}'); err != nil {
		return err
	}
	if !c.cursor.Done() {
		return errorAt(c.cursor.Pos(), ErrSyntax, "unexpected %s after end of class %s", c.cursor.Peek(0), c.className)
	}
	return nil
}

// classVarDec: ('static' | 'field') type varName (',' varName)* ';'
func (c *Compiler) compileClassVarDec() (bool, error) {
	var kind symbols.Kind
	switch next := c.cursor.Peek(0); {
	case next.IsKeyword(token.Static):
		kind = symbols.Static
	case next.IsKeyword(token.Field):
		kind = symbols.Field
	default:
		return false, nil
	}
	log.Trace("Compiling class var declaration")
	c.cursor.Advance()
	return true, c.compileVarNames(kind)
}

// compileVarNames declares type varName (',' varName)* ';' with kind.
func (c *Compiler) compileVarNames(kind symbols.Kind) error {
	typ, err := c.compileType()
	if err != nil {
		return err
	}
	for {
		if err := c.declare(typ, kind); err != nil {
			return err
		}
		if !c.cursor.Peek(0).IsSymbol(',') {
			break
		}
		c.cursor.Advance()
	}
	return c.expectSymbol(';')
}

func (c *Compiler) declare(typ symbols.Type, kind symbols.Kind) error {
	pos := c.cursor.Pos()
	name, err := c.expectIdentifier("variable name")
	if err != nil {
		return err
	}
	if _, err := c.symbols.Declare(name, typ, kind); err != nil {
		return errorAt(pos, err, "cannot declare %s %q", kind, name)
	}
	return nil
}

// subroutineDec: ('constructor' | 'function' | 'method') ('void' | type)
// subroutineName '(' parameterList ')' subroutineBody
func (c *Compiler) compileSubroutineDec() (bool, error) {
	var kind SubroutineKind
	switch next := c.cursor.Peek(0); {
	case next.IsKeyword(token.Constructor):
		kind = ConstructorKind
	case next.IsKeyword(token.Function):
		kind = FunctionKind
	case next.IsKeyword(token.Method):
		kind = MethodKind
	default:
		return false, nil
	}
	log.Trace("Compiling subroutine declaration")
	c.cursor.Advance()

	c.symbols.StartSubroutine()
	c.subroutine = subroutineContext{kind: kind}
	if kind == MethodKind {
		// Declared first so the receiver always occupies argument 0.
		if _, err := c.symbols.Declare(receiverName, symbols.ClassRef(c.className), symbols.Argument); err != nil {
			return false, err
		}
	}

	pos := c.cursor.Pos()
	if c.cursor.Peek(0).IsKeyword(token.Void) {
		c.cursor.Advance()
	} else {
		typ, err := c.compileType()
		if err != nil {
			return false, err
		}
		c.subroutine.returnType = &typ
	}
	if kind == ConstructorKind {
		if rt := c.subroutine.returnType; rt == nil || rt.Kind != symbols.ClassType || rt.Class != c.className {
			got := "void"
			if rt != nil {
				got = rt.String()
			}
			return false, errorAt(pos, ErrInvalidConstructorReturnType, "constructor of %s must return %s, not %s", c.className, c.className, got)
		}
	}

	name, err := c.expectIdentifier("subroutine name")
	if err != nil {
		return false, err
	}
	c.subroutine.name = name

	if err := c.expectSymbol('('); err != nil {
		return false, err
	}
	if err := c.compileParameterList(); err != nil {
		return false, err
	}
	if err := c.expectSymbol(')'); err != nil {
		return false, err
	}
	return true, c.compileSubroutineBody()
}

// parameterList: ((type varName) (',' type varName)*)?
func (c *Compiler) compileParameterList() error {
	log.Trace("Compiling parameter list")
	if c.cursor.Peek(0).IsSymbol(')') {
		return nil
	}
	for {
		typ, err := c.compileType()
		if err != nil {
			return err
		}
		if err := c.declare(typ, symbols.Argument); err != nil {
			return err
		}
		if !c.cursor.Peek(0).IsSymbol(',') {
			return nil
		}
		c.cursor.Advance()
	}
}

// subroutineBody: '{' varDec* statements '}'
func (c *Compiler) compileSubroutineBody() error {
	log.Trace("Compiling subroutine body")
	if err := c.expectSymbol('{'); err != nil {
		return err
	}
	// varDec: 'var' type varName (',' varName)* ';'
	for c.cursor.Peek(0).IsKeyword(token.Var) {
		c.cursor.Advance()
		if err := c.compileVarNames(symbols.Local); err != nil {
			return err
		}
	}

	nlocals := c.symbols.Count(symbols.Local)
	c.writer.WriteFunction(c.className+"."+c.subroutine.name, nlocals)
	log.Debugf("Compiling %s %s.%s with %d locals", c.subroutine.kind, c.className, c.subroutine.name, nlocals)

	switch c.subroutine.kind {
	case MethodKind:
		c.writer.WritePush(vm.ArgumentSegment, 0)
		c.writer.WritePop(vm.PointerSegment, 0)
	case ConstructorKind:
		c.writer.WritePush(vm.ConstantSegment, c.symbols.Count(symbols.Field))
		c.writer.WriteCall(vm.MemoryAlloc, 1)
		c.writer.WritePop(vm.PointerSegment, 0)
	}

	if err := c.compileStatements(); err != nil {
		return err
	}
	return c.expectSymbol('}')
}

// type: 'int' | 'char' | 'boolean' | className
func (c *Compiler) compileType() (symbols.Type, error) {
	pos := c.cursor.Pos()
	tok, err := c.cursor.Advance()
	if err != nil {
		return symbols.Type{}, err
	}
	switch {
	case tok.IsKeyword(token.Int):
		return symbols.Int, nil
	case tok.IsKeyword(token.Char):
		return symbols.Char, nil
	case tok.IsKeyword(token.Boolean):
		return symbols.Boolean, nil
	case tok.Kind == token.IdentifierToken:
		return symbols.ClassRef(tok.Text), nil
	}
	return symbols.Type{}, errorAt(pos, ErrSyntax, "expected a type (int, char, boolean or class name), got %s", tok)
}

func (c *Compiler) expectSymbol(symbol byte) error {
	pos := c.cursor.Pos()
	tok, err := c.cursor.Advance()
	if err != nil {
		return err
	}
	if !tok.IsSymbol(symbol) {
		return errorAt(pos, ErrSyntax, "expected symbol %q, got %s", string(symbol), tok)
	}
	return nil
}

func (c *Compiler) expectKeyword(kw token.Keyword) error {
	pos := c.cursor.Pos()
	tok, err := c.cursor.Advance()
	if err != nil {
		return err
	}
	if !tok.IsKeyword(kw) {
		return errorAt(pos, ErrSyntax, "expected keyword %q, got %s", kw.String(), tok)
	}
	return nil
}

func (c *Compiler) expectIdentifier(what string) (string, error) {
	pos := c.cursor.Pos()
	tok, err := c.cursor.Advance()
	if err != nil {
		return "", err
	}
	if tok.Kind != token.IdentifierToken {
		return "", errorAt(pos, ErrSyntax, "expected %s, got %s", what, tok)
	}
	return tok.Text, nil
}

// unexpected reports tok, which cannot start the construct being compiled.
func (c *Compiler) unexpected(tok token.Token, what string) error {
	if tok.Kind == token.Invalid {
		return errorAt(c.cursor.Pos(), ErrUnexpectedEndOfInput, "expected %s", what)
	}
	return errorAt(c.cursor.Pos(), ErrSyntax, "expected %s, got %s", what, tok)
}

// resolve looks up name as a variable, reporting failures at pos.
func (c *Compiler) resolve(name string, pos int) (symbols.Symbol, error) {
	symbol, err := c.symbols.Resolve(name)
	if err != nil {
		return symbols.Symbol{}, errorAt(pos, err, "in %s.%s", c.className, c.subroutine.name)
	}
	return symbol, nil
}

func (c *Compiler) push(symbol symbols.Symbol) {
	c.writer.WritePush(symbol.Kind.Segment(), symbol.Index)
}

func (c *Compiler) pop(symbol symbols.Symbol) {
	c.writer.WritePop(symbol.Kind.Segment(), symbol.Index)
}
