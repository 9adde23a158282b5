package parser

import (
	"errors"
	"fmt"
)

// ErrorKind classifies lexing and parsing failures.
type ErrorKind string

const (
	ErrUnexpectedCharacter ErrorKind = "unexpected_character"
	ErrUnterminatedString  ErrorKind = "unterminated_string"
	ErrUnexpectedToken     ErrorKind = "unexpected_token"
	ErrInvalidAssignment   ErrorKind = "invalid_assignment_target"
	ErrTooManyArguments    ErrorKind = "too_many_arguments"
)

// Error is a lexing or parsing diagnostic.
type Error struct {
	Kind    ErrorKind
	Line    int
	Lexeme  string
	Message string
	// AtEOF is set when the failure was caused by running out of input.
	AtEOF bool
}

func (e *Error) Error() string {
	switch {
	case e.AtEOF:
		return fmt.Sprintf("[line %d] Error at end: %s", e.Line, e.Message)
	case e.Lexeme != "":
		return fmt.Sprintf("[line %d] Error at '%s': %s", e.Line, e.Lexeme, e.Message)
	default:
		return fmt.Sprintf("[line %d] Error: %s", e.Line, e.Message)
	}
}

// IsIncomplete reports whether err means the source ended before a complete
// program was read, i.e. more input could make it parse.
func IsIncomplete(err error) bool {
	var perr *Error
	if !errors.As(err, &perr) {
		return false
	}
	return perr.AtEOF || perr.Kind == ErrUnterminatedString
}
