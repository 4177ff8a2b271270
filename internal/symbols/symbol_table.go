// Package symbols implements the two-level symbol table of a class: a class
// scope holding statics and fields, and a subroutine scope holding arguments
// and locals.
package symbols

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var (
	ErrDuplicateName  = errors.New("duplicate name")
	ErrUndeclaredName = errors.New("undeclared name")
)

// scope is one uniqueness namespace. Static and Field share the class scope,
// Argument and Local share the subroutine scope.
type scope struct {
	symbols map[string]Symbol
	counts  map[Kind]int
}

func newScope() *scope {
	return &scope{
		symbols: make(map[string]Symbol),
		counts:  make(map[Kind]int),
	}
}

type SymbolTable struct {
	classScope      *scope
	subroutineScope *scope
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		classScope:      newScope(),
		subroutineScope: newScope(),
	}
}

func (s *SymbolTable) scopeOf(kind Kind) *scope {
	if kind.classScoped() {
		return s.classScope
	}
	return s.subroutineScope
}

// Declare registers name and assigns it the next index of its kind.
func (s *SymbolTable) Declare(name string, typ Type, kind Kind) (Symbol, error) {
	sc := s.scopeOf(kind)
	if existing, ok := sc.symbols[name]; ok {
		return Symbol{}, errors.Wrapf(ErrDuplicateName, "%q already declared as %s %s", name, existing.Kind, existing.Type)
	}
	symbol := Symbol{Name: name, Type: typ, Kind: kind, Index: sc.counts[kind]}
	sc.symbols[name] = symbol
	sc.counts[kind]++
	log.Debugf("Registered symbol %q: %s %s %d", name, kind, typ, symbol.Index)
	return symbol, nil
}

// Resolve looks name up in the subroutine scope first, then the class scope,
// so a local or argument shadows a field or static of the same name.
func (s *SymbolTable) Resolve(name string) (Symbol, error) {
	if symbol, ok := s.subroutineScope.symbols[name]; ok {
		return symbol, nil
	}
	if symbol, ok := s.classScope.symbols[name]; ok {
		return symbol, nil
	}
	return Symbol{}, errors.Wrapf(ErrUndeclaredName, "no symbol with name %q declared", name)
}

// Count is the number of symbols declared with kind in its current scope.
func (s *SymbolTable) Count(kind Kind) int {
	return s.scopeOf(kind).counts[kind]
}

// StartSubroutine forgets all arguments and locals.
func (s *SymbolTable) StartSubroutine() {
	s.subroutineScope = newScope()
}

// Reset clears both scopes for a new compilation unit.
func (s *SymbolTable) Reset() {
	s.classScope = newScope()
	s.subroutineScope = newScope()
}
