package interpreter

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/eugecm/lox/pkg/ast"
	"github.com/eugecm/lox/pkg/runtime"
)

// DefaultMaxCallDepth bounds nested user calls before a stack_overflow error.
const DefaultMaxCallDepth = 2048

// Options configures an Interpreter. Zero fields take their defaults.
type Options struct {
	Output          io.Writer
	MaxCallDepth    int
	EchoExpressions bool
	Clock           func() time.Time
}

// Interpreter drives evaluation of resolved programs.
type Interpreter struct {
	global  *runtime.Environment
	locals  map[ast.ExprID]int
	out     io.Writer
	options Options
	depth   int
}

// New returns an interpreter writing to stdout with default options.
func New() *Interpreter {
	return NewWithOptions(Options{})
}

func NewWithOptions(opts Options) *Interpreter {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.MaxCallDepth <= 0 {
		opts.MaxCallDepth = DefaultMaxCallDepth
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	i := &Interpreter{
		global:  runtime.NewEnvironment(nil),
		locals:  make(map[ast.ExprID]int),
		out:     opts.Output,
		options: opts,
	}
	i.initBuiltins()
	return i
}

// GlobalEnvironment returns the interpreter's global environment.
func (i *Interpreter) GlobalEnvironment() *runtime.Environment {
	return i.global
}

// Resolve records the scope distance for a variable, this or super
// reference. It is called by the resolver before Interpret.
func (i *Interpreter) Resolve(id ast.ExprID, depth int) {
	i.locals[id] = depth
}

// Interpret executes a resolved program against the global environment.
// Output printed before a failure stays written.
func (i *Interpreter) Interpret(program *ast.Program) (err error) {
	if program == nil {
		return fmt.Errorf("interpreter: program is nil")
	}
	defer func() {
		if r := recover(); r != nil {
			inv, ok := r.(*runtime.InvariantError)
			if !ok {
				panic(r)
			}
			err = &RuntimeError{Kind: ErrInternal, Message: inv.Message, Err: inv}
		}
	}()
	i.depth = 0
	for _, stmt := range program.Body {
		if expr, ok := stmt.(*ast.ExpressionStatement); ok && i.options.EchoExpressions {
			if err := i.echoExpression(expr); err != nil {
				return err
			}
			continue
		}
		res, err := i.evaluateStatement(stmt, i.global)
		if err != nil {
			return err
		}
		if res.returning {
			return runtimeErrorf(ErrInternal, stmt, "return outside function")
		}
	}
	return nil
}

// echoExpression evaluates a top-level expression statement and prints its
// value. Nested expression statements never echo.
func (i *Interpreter) echoExpression(stmt *ast.ExpressionStatement) error {
	val, err := i.evaluateExpression(stmt.Expression, i.global)
	if err != nil {
		return err
	}
	return i.writeLine(val)
}

// lookupVariable reads a resolved local at its recorded distance, or falls
// back to the global scope by name.
func (i *Interpreter) lookupVariable(name string, expr ast.Expression, env *runtime.Environment) (runtime.Value, error) {
	if distance, ok := i.locals[expr.ID()]; ok {
		return env.GetAt(distance, name), nil
	}
	val, err := i.global.Get(name)
	if err != nil {
		return nil, runtimeErrorf(ErrUndefinedVariable, expr, "Undefined variable '%s'.", name)
	}
	return val, nil
}

func (i *Interpreter) assignVariable(name string, expr ast.Expression, value runtime.Value, env *runtime.Environment) error {
	if distance, ok := i.locals[expr.ID()]; ok {
		env.AssignAt(distance, name, value)
		return nil
	}
	if err := i.global.Assign(name, value); err != nil {
		return runtimeErrorf(ErrUndefinedVariable, expr, "Undefined variable '%s'.", name)
	}
	return nil
}
