package method

import (
	"errors"
	"fmt"
)

// ErrInvalidMethodName method name can't be decoded as a query
var ErrInvalidMethodName = errors.New("invalid query method name")

// SyntaxError describes where and why a method name failed to parse
type SyntaxError struct {
	Method string
	Pos    int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%v %q: %s at position %d", ErrInvalidMethodName, e.Method, e.Msg, e.Pos)
}

func (e *SyntaxError) Unwrap() error {
	return ErrInvalidMethodName
}
