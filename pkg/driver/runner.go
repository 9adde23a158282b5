package driver

import (
	"io"

	"github.com/eugecm/lox/pkg/interpreter"
	"github.com/eugecm/lox/pkg/parser"
	"github.com/eugecm/lox/pkg/resolver"
)

// Run parses, resolves and interprets src in a fresh interpreter. Failures
// are returned as *Diagnostic; anything printed before the failure remains
// in out.
func Run(src string, cfg Config, out io.Writer) error {
	return NewSession(cfg, out).Eval(src)
}

// Session keeps one interpreter alive across inputs, so globals persist.
// Each input is resolved on its own.
type Session struct {
	interp *interpreter.Interpreter
	// Path labels diagnostics; empty for inline or REPL input.
	Path string
}

func NewSession(cfg Config, out io.Writer) *Session {
	return &Session{interp: interpreter.NewWithOptions(cfg.interpreterOptions(out))}
}

// Eval runs one chunk of source.
func (s *Session) Eval(src string) error {
	program, err := parser.Parse(src)
	if err != nil {
		return newDiagnostic(err, s.Path)
	}
	if err := resolver.New(s.interp).ResolveProgram(program); err != nil {
		return newDiagnostic(err, s.Path)
	}
	if err := s.interp.Interpret(program); err != nil {
		return newDiagnostic(err, s.Path)
	}
	return nil
}

// Interpreter exposes the underlying interpreter, e.g. to register natives.
func (s *Session) Interpreter() *interpreter.Interpreter {
	return s.interp
}
