package symbols

import "github.com/libklein/nand2tetris/jackcompiler/internal/vm"

// Kind is the storage kind of a variable.
type Kind int

const (
	Static Kind = iota
	Field
	Argument
	Local
)

func (k Kind) String() string {
	switch k {
	case Static:
		return "static"
	case Field:
		return "field"
	case Argument:
		return "argument"
	case Local:
		return "local"
	default:
		return "unknown"
	}
}

// Segment is the VM memory segment variables of this kind live in.
func (k Kind) Segment() vm.Segment {
	switch k {
	case Static:
		return vm.StaticSegment
	case Field:
		return vm.ThisSegment
	case Argument:
		return vm.ArgumentSegment
	default:
		return vm.LocalSegment
	}
}

func (k Kind) classScoped() bool {
	return k == Static || k == Field
}

// TypeKind distinguishes the primitive types from class references.
type TypeKind int

const (
	IntType TypeKind = iota
	CharType
	BooleanType
	ClassType
)

// Type is a declared variable type. Class is set for ClassType only.
type Type struct {
	Kind  TypeKind
	Class string
}

var (
	Int     = Type{Kind: IntType}
	Char    = Type{Kind: CharType}
	Boolean = Type{Kind: BooleanType}
)

func ClassRef(name string) Type {
	return Type{Kind: ClassType, Class: name}
}

func (t Type) String() string {
	switch t.Kind {
	case IntType:
		return "int"
	case CharType:
		return "char"
	case BooleanType:
		return "boolean"
	default:
		return t.Class
	}
}

// Symbol is one declared variable.
type Symbol struct {
	Name  string
	Type  Type
	Kind  Kind
	Index int
}
