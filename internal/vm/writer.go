// Package vm accumulates stack machine instructions as text.
package vm

import (
	"fmt"
	"strconv"
	"strings"
)

type Segment string

const (
	ConstantSegment Segment = "constant"
	ArgumentSegment Segment = "argument"
	LocalSegment    Segment = "local"
	StaticSegment   Segment = "static"
	ThisSegment     Segment = "this"
	ThatSegment     Segment = "that"
	PointerSegment  Segment = "pointer"
	TempSegment     Segment = "temp"
)

// Operation is an arithmetic or logical command. Multiply and Divide have no
// VM command of their own and are lowered to runtime library calls.
type Operation string

const (
	Add      Operation = "add"
	Sub      Operation = "sub"
	Neg      Operation = "neg"
	Eq       Operation = "eq"
	Gt       Operation = "gt"
	Lt       Operation = "lt"
	And      Operation = "and"
	Or       Operation = "or"
	Not      Operation = "not"
	Multiply Operation = "mul"
	Divide   Operation = "div"
)

// Runtime library routines the generated code calls.
const (
	MathMultiply     = "Math.multiply"
	MathDivide       = "Math.divide"
	MemoryAlloc      = "Memory.alloc"
	StringNew        = "String.new"
	StringAppendChar = "String.appendChar"
)

// Writer is an append-only buffer of newline terminated instructions.
type Writer struct {
	output       strings.Builder
	instructions int
}

func NewWriter() *Writer {
	return &Writer{}
}

func (w *Writer) WriteCommand(command string) {
	w.output.WriteString(command)
	w.output.WriteByte('\n')
	w.instructions++
}

func (w *Writer) WritePush(segment Segment, index int) {
	w.WriteCommand(fmt.Sprintf("push %s %d", segment, index))
}

func (w *Writer) WritePop(segment Segment, index int) {
	w.WriteCommand(fmt.Sprintf("pop %s %d", segment, index))
}

func (w *Writer) WriteArithmetic(operation Operation) {
	switch operation {
	case Divide:
		w.WriteCall(MathDivide, 2)
	case Multiply:
		w.WriteCall(MathMultiply, 2)
	default:
		w.WriteCommand(string(operation))
	}
}

// WriteStringConstant builds a new String object holding constant and leaves
// its reference on the stack. appendChar returns the string itself, so each
// call consumes the reference and pushes it back.
func (w *Writer) WriteStringConstant(constant string) {
	w.WritePush(ConstantSegment, len(constant))
	w.WriteCall(StringNew, 1)
	for i := 0; i < len(constant); i++ {
		w.WritePush(ConstantSegment, int(constant[i]))
		w.WriteCall(StringAppendChar, 2)
	}
}

func (w *Writer) WriteLabel(label string) {
	w.WriteCommand("label " + label)
}

func (w *Writer) WriteGoto(label string) {
	w.WriteCommand("goto " + label)
}

func (w *Writer) WriteIf(label string) {
	w.WriteCommand("if-goto " + label)
}

func (w *Writer) WriteCall(name string, nargs int) {
	w.WriteCommand("call " + name + " " + strconv.Itoa(nargs))
}

func (w *Writer) WriteFunction(name string, nlocals int) {
	w.WriteCommand("function " + name + " " + strconv.Itoa(nlocals))
}

func (w *Writer) WriteReturn() {
	w.WriteCommand("return")
}

// Instructions is the number of instructions written so far.
func (w *Writer) Instructions() int {
	return w.instructions
}

func (w *Writer) String() string {
	return w.output.String()
}
