package resolver

import (
	"fmt"

	"github.com/eugecm/lox/pkg/ast"
)

// ErrorKind names a static validity violation.
type ErrorKind string

const (
	ErrDuplicateDeclaration   ErrorKind = "duplicate_declaration"
	ErrReturnOutsideFunction  ErrorKind = "return_outside_function"
	ErrReturnFromInitializer  ErrorKind = "return_value_from_initializer"
	ErrThisOutsideClass       ErrorKind = "this_outside_class"
	ErrSuperOutsideClass      ErrorKind = "super_outside_class"
	ErrSuperWithoutSuperclass ErrorKind = "super_without_superclass"
	ErrSelfInheritance        ErrorKind = "self_inheritance"
	ErrReadInOwnInitializer   ErrorKind = "read_in_own_initializer"
)

// Error is a static error; the program is rejected before execution.
type Error struct {
	Kind    ErrorKind
	Name    string
	Line    int
	Message string
}

func newError(kind ErrorKind, name string, node ast.Node, message string) *Error {
	line := 0
	if node != nil {
		line = node.Line()
	}
	return &Error{Kind: kind, Name: name, Line: line, Message: message}
}

func (e *Error) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("[line %d] Error: %s", e.Line, e.Message)
	}
	return fmt.Sprintf("[line %d] Error at '%s': %s", e.Line, e.Name, e.Message)
}
