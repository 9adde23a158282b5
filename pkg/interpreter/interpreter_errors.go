package interpreter

import (
	"fmt"

	"github.com/eugecm/lox/pkg/ast"
)

// ErrorKind classifies fatal runtime faults.
type ErrorKind string

const (
	ErrUndefinedVariable   ErrorKind = "undefined_variable"
	ErrUndefinedProperty   ErrorKind = "undefined_property"
	ErrArityMismatch       ErrorKind = "arity_mismatch"
	ErrNotCallable         ErrorKind = "not_callable"
	ErrTypeMismatch        ErrorKind = "type_mismatch"
	ErrNonBooleanCondition ErrorKind = "non_boolean_condition"
	ErrUnsupportedEquality ErrorKind = "unsupported_equality"
	ErrUnsupportedBind     ErrorKind = "unsupported_bind"
	ErrStackOverflow       ErrorKind = "stack_overflow"
	ErrInternal            ErrorKind = "internal"
)

// RuntimeError aborts the current run.
type RuntimeError struct {
	Kind    ErrorKind
	Message string
	Line    int
	Err     error
}

func (e *RuntimeError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s\n[line %d]", e.Message, e.Line)
	}
	return e.Message
}

func (e *RuntimeError) Unwrap() error { return e.Err }

func runtimeErrorf(kind ErrorKind, node ast.Node, format string, args ...any) *RuntimeError {
	line := 0
	if node != nil {
		line = node.Line()
	}
	return &RuntimeError{Kind: kind, Message: fmt.Sprintf(format, args...), Line: line}
}
