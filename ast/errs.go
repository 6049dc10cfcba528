package ast

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidOperation reports an attribute access, literal access or
	// child append that the node kind does not support. It is always a
	// programming error.
	ErrInvalidOperation = errors.New("invalid operation")
)

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidOperation}, args...)...)
}
