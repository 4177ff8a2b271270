package compiler

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrSyntax marks every structural error: a missing symbol, keyword,
	// name or term.
	ErrSyntax = errors.New("syntax error")
	// ErrUnexpectedEndOfInput is a structural error raised when the cursor
	// runs past the last token.
	ErrUnexpectedEndOfInput = errors.Wrap(ErrSyntax, "unexpected end of input")
	// ErrInvalidConstructorReturnType is raised for a constructor whose
	// declared return type is not its own class.
	ErrInvalidConstructorReturnType = errors.New("invalid constructor return type")
	// ErrInvalidReceiver is raised for a dotted call through a variable of
	// primitive type.
	ErrInvalidReceiver = errors.New("invalid call receiver")
)

// errorAt wraps cause with the position of the offending token.
func errorAt(pos int, cause error, format string, args ...any) error {
	return errors.Wrap(cause, fmt.Sprintf("token %d: ", pos)+fmt.Sprintf(format, args...))
}
