package interpreter

import (
	"bytes"
	"testing"

	"github.com/eugecm/lox/pkg/ast"
	"github.com/eugecm/lox/pkg/parser"
	"github.com/eugecm/lox/pkg/resolver"
)

// runProgram resolves and interprets program, returning printed output.
func runProgram(t *testing.T, program *ast.Program) (string, error) {
	t.Helper()
	var out bytes.Buffer
	interp := NewWithOptions(Options{Output: &out})
	if err := resolver.New(interp).ResolveProgram(program); err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	err := interp.Interpret(program)
	return out.String(), err
}

func mustRunProgram(t *testing.T, program *ast.Program) string {
	t.Helper()
	out, err := runProgram(t, program)
	if err != nil {
		t.Fatalf("interpret failed: %v", err)
	}
	return out
}

func runSource(t *testing.T, source string) (string, error) {
	t.Helper()
	program, err := parser.Parse(source)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	return runProgram(t, program)
}

func mustRunSource(t *testing.T, source string) string {
	t.Helper()
	out, err := runSource(t, source)
	if err != nil {
		t.Fatalf("interpret failed: %v", err)
	}
	return out
}

func expectRuntimeError(t *testing.T, err error, kind ErrorKind) *RuntimeError {
	t.Helper()
	rerr, ok := err.(*RuntimeError)
	if !ok {
		t.Fatalf("expected *RuntimeError of kind %s, got %T (%v)", kind, err, err)
	}
	if rerr.Kind != kind {
		t.Fatalf("expected kind %s, got %s (%v)", kind, rerr.Kind, rerr)
	}
	return rerr
}
