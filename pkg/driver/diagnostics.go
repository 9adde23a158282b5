package driver

import (
	"errors"
	"fmt"
	"strings"

	"github.com/eugecm/lox/pkg/interpreter"
	"github.com/eugecm/lox/pkg/parser"
	"github.com/eugecm/lox/pkg/resolver"
)

// Category names the pipeline stage that rejected a program.
type Category string

const (
	CategoryParse   Category = "parse"
	CategoryStatic  Category = "static"
	CategoryRuntime Category = "runtime"
)

// Diagnostic is the structured failure returned by Run and Session.Eval.
type Diagnostic struct {
	Category Category
	Kind     string
	Message  string
	Line     int
	Path     string
	Err      error
}

func (d *Diagnostic) Error() string {
	return DescribeDiagnostic(d)
}

func (d *Diagnostic) Unwrap() error { return d.Err }

// newDiagnostic classifies err by the tier that produced it.
func newDiagnostic(err error, path string) *Diagnostic {
	var (
		perr *parser.Error
		serr *resolver.Error
		rerr *interpreter.RuntimeError
	)
	switch {
	case errors.As(err, &perr):
		return &Diagnostic{Category: CategoryParse, Kind: string(perr.Kind), Message: describeParseError(perr), Line: perr.Line, Path: path, Err: err}
	case errors.As(err, &serr):
		return &Diagnostic{Category: CategoryStatic, Kind: string(serr.Kind), Message: describeStaticError(serr), Line: serr.Line, Path: path, Err: err}
	case errors.As(err, &rerr):
		return &Diagnostic{Category: CategoryRuntime, Kind: string(rerr.Kind), Message: rerr.Message, Line: rerr.Line, Path: path, Err: err}
	default:
		return &Diagnostic{Category: CategoryRuntime, Kind: string(interpreter.ErrInternal), Message: err.Error(), Path: path, Err: err}
	}
}

func describeParseError(err *parser.Error) string {
	switch {
	case err.AtEOF:
		return "at end: " + err.Message
	case err.Lexeme != "" && err.Kind != parser.ErrUnexpectedCharacter:
		return fmt.Sprintf("at '%s': %s", err.Lexeme, err.Message)
	case err.Lexeme != "":
		return fmt.Sprintf("%s '%s'", err.Message, err.Lexeme)
	default:
		return err.Message
	}
}

func describeStaticError(err *resolver.Error) string {
	if err.Name == "" {
		return err.Message
	}
	return fmt.Sprintf("at '%s': %s", err.Name, err.Message)
}

// DescribeDiagnostic formats a diagnostic for CLI output.
func DescribeDiagnostic(diag *Diagnostic) string {
	if diag == nil {
		return ""
	}
	message := strings.TrimSpace(diag.Message)
	location := formatDiagnosticLocation(diag.Path, diag.Line)
	prefix := string(diag.Category) + ": "
	if location != "" {
		return fmt.Sprintf("%s%s %s", prefix, location, message)
	}
	return prefix + message
}

func formatDiagnosticLocation(path string, line int) string {
	path = strings.TrimSpace(path)
	switch {
	case path != "" && line > 0:
		return fmt.Sprintf("%s:%d:", path, line)
	case path != "":
		return path + ":"
	case line > 0:
		return fmt.Sprintf("line %d:", line)
	default:
		return ""
	}
}
