package compiler

import "fmt"

// LabelAllocator numbers if and while statements across a whole class so
// that branch targets never collide between subroutines.
type LabelAllocator struct {
	ifCount    int
	whileCount int
}

func (l *LabelAllocator) NextIf() int {
	n := l.ifCount
	l.ifCount++
	return n
}

func (l *LabelAllocator) NextWhile() int {
	n := l.whileCount
	l.whileCount++
	return n
}

type ifLabels struct {
	True, False, End string
}

type whileLabels struct {
	Exp, End string
}

func newIfLabels(className string, n int) ifLabels {
	return ifLabels{
		True:  fmt.Sprintf("%s_IF_TRUE%d", className, n),
		False: fmt.Sprintf("%s_IF_FALSE%d", className, n),
		End:   fmt.Sprintf("%s_IF_END%d", className, n),
	}
}

func newWhileLabels(className string, n int) whileLabels {
	return whileLabels{
		Exp: fmt.Sprintf("%s_WHILE_EXP%d", className, n),
		End: fmt.Sprintf("%s_WHILE_END%d", className, n),
	}
}
