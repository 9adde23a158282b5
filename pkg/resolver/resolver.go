package resolver

import (
	"fmt"

	"github.com/eugecm/lox/pkg/ast"
)

type functionType int

const (
	functionNone functionType = iota
	functionFunction
	functionInitializer
	functionMethod
)

type classType int

const (
	classNone classType = iota
	classClass
	classSubclass
)

// LocalsSink receives the scope distance of every reference the resolver
// binds to a local scope. The interpreter implements it.
type LocalsSink interface {
	Resolve(id ast.ExprID, depth int)
}

// Locals is a LocalsSink that simply records the table.
type Locals map[ast.ExprID]int

func (l Locals) Resolve(id ast.ExprID, depth int) { l[id] = depth }

// Resolver computes lexical distances for variable, this and super
// references, and rejects statically invalid programs.
type Resolver struct {
	sink            LocalsSink
	scopes          []map[string]bool
	currentFunction functionType
	currentClass    classType
}

// New returns a resolver reporting distances to sink.
func New(sink LocalsSink) *Resolver {
	return &Resolver{sink: sink}
}

// Resolve runs a resolver over program and returns the collected table.
func Resolve(program *ast.Program) (Locals, error) {
	locals := make(Locals)
	if err := New(locals).ResolveProgram(program); err != nil {
		return nil, err
	}
	return locals, nil
}

// ResolveProgram walks program in order, stopping at the first static error.
func (r *Resolver) ResolveProgram(program *ast.Program) error {
	if program == nil {
		return fmt.Errorf("resolver: program is nil")
	}
	r.scopes = nil
	r.currentFunction = functionNone
	r.currentClass = classNone
	return r.resolveStatements(program.Body)
}

func (r *Resolver) resolveStatements(stmts []ast.Statement) error {
	for _, stmt := range stmts {
		if err := r.resolveStatement(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (r *Resolver) resolveStatement(stmt ast.Statement) error {
	switch s := stmt.(type) {
	case *ast.BlockStatement:
		r.beginScope()
		defer r.endScope()
		return r.resolveStatements(s.Body)
	case *ast.VarDeclaration:
		if err := r.declare(s.Name, s); err != nil {
			return err
		}
		if s.Initializer != nil {
			if err := r.resolveExpression(s.Initializer); err != nil {
				return err
			}
		}
		r.define(s.Name)
		return nil
	case *ast.FunctionDeclaration:
		if err := r.declare(s.Name, s); err != nil {
			return err
		}
		r.define(s.Name)
		return r.resolveFunction(s, functionFunction)
	case *ast.ClassDeclaration:
		return r.resolveClass(s)
	case *ast.ExpressionStatement:
		return r.resolveExpression(s.Expression)
	case *ast.PrintStatement:
		return r.resolveExpression(s.Expression)
	case *ast.IfStatement:
		if err := r.resolveExpression(s.Condition); err != nil {
			return err
		}
		if err := r.resolveStatement(s.ThenBranch); err != nil {
			return err
		}
		if s.ElseBranch != nil {
			return r.resolveStatement(s.ElseBranch)
		}
		return nil
	case *ast.WhileStatement:
		if err := r.resolveExpression(s.Condition); err != nil {
			return err
		}
		return r.resolveStatement(s.Body)
	case *ast.ReturnStatement:
		if r.currentFunction == functionNone {
			return newError(ErrReturnOutsideFunction, "return", s, "Can't return from top-level code.")
		}
		if s.Value == nil {
			return nil
		}
		if r.currentFunction == functionInitializer {
			return newError(ErrReturnFromInitializer, "return", s, "Can't return a value from an initializer.")
		}
		return r.resolveExpression(s.Value)
	case nil:
		return fmt.Errorf("resolver: nil statement")
	default:
		return fmt.Errorf("resolver: unsupported statement %T", stmt)
	}
}

func (r *Resolver) resolveClass(s *ast.ClassDeclaration) error {
	enclosingClass := r.currentClass
	r.currentClass = classClass
	defer func() { r.currentClass = enclosingClass }()

	if err := r.declare(s.Name, s); err != nil {
		return err
	}
	r.define(s.Name)

	if s.Superclass != nil {
		if s.Superclass.Name == s.Name {
			return newError(ErrSelfInheritance, s.Name, s.Superclass, "A class can't inherit from itself.")
		}
		r.currentClass = classSubclass
		if err := r.resolveExpression(s.Superclass); err != nil {
			return err
		}
		r.beginScope()
		defer r.endScope()
		r.scopes[len(r.scopes)-1]["super"] = true
	}

	r.beginScope()
	defer r.endScope()
	r.scopes[len(r.scopes)-1]["this"] = true

	for _, method := range s.Methods {
		kind := functionMethod
		if method.Name == "init" {
			kind = functionInitializer
		}
		if err := r.resolveFunction(method, kind); err != nil {
			return err
		}
	}
	return nil
}

func (r *Resolver) resolveFunction(fn *ast.FunctionDeclaration, kind functionType) error {
	enclosing := r.currentFunction
	r.currentFunction = kind
	defer func() { r.currentFunction = enclosing }()

	r.beginScope()
	defer r.endScope()
	for _, param := range fn.Params {
		if err := r.declare(param, fn); err != nil {
			return err
		}
		r.define(param)
	}
	return r.resolveStatements(fn.Body)
}

func (r *Resolver) resolveExpression(expr ast.Expression) error {
	switch e := expr.(type) {
	case *ast.StringLiteral, *ast.NumberLiteral, *ast.BooleanLiteral, *ast.NilLiteral:
		return nil
	case *ast.Grouping:
		return r.resolveExpression(e.Expression)
	case *ast.UnaryExpression:
		return r.resolveExpression(e.Operand)
	case *ast.BinaryExpression:
		return r.resolvePair(e.Left, e.Right)
	case *ast.LogicalExpression:
		return r.resolvePair(e.Left, e.Right)
	case *ast.Variable:
		if len(r.scopes) > 0 {
			if defined, ok := r.scopes[len(r.scopes)-1][e.Name]; ok && !defined {
				return newError(ErrReadInOwnInitializer, e.Name, e, "Can't read local variable in its own initializer.")
			}
		}
		r.resolveLocal(e, e.Name)
		return nil
	case *ast.Assignment:
		if err := r.resolveExpression(e.Value); err != nil {
			return err
		}
		r.resolveLocal(e, e.Name)
		return nil
	case *ast.CallExpression:
		if err := r.resolveExpression(e.Callee); err != nil {
			return err
		}
		for _, arg := range e.Arguments {
			if err := r.resolveExpression(arg); err != nil {
				return err
			}
		}
		return nil
	case *ast.GetExpression:
		return r.resolveExpression(e.Object)
	case *ast.SetExpression:
		return r.resolvePair(e.Value, e.Object)
	case *ast.ThisExpression:
		if r.currentClass == classNone {
			return newError(ErrThisOutsideClass, "this", e, "Can't use 'this' outside of a class.")
		}
		r.resolveLocal(e, "this")
		return nil
	case *ast.SuperExpression:
		switch r.currentClass {
		case classNone:
			return newError(ErrSuperOutsideClass, "super", e, "Can't use 'super' outside of a class.")
		case classClass:
			return newError(ErrSuperWithoutSuperclass, "super", e, "Can't use 'super' in a class with no superclass.")
		}
		r.resolveLocal(e, "super")
		return nil
	case nil:
		return fmt.Errorf("resolver: nil expression")
	default:
		return fmt.Errorf("resolver: unsupported expression %T", expr)
	}
}

func (r *Resolver) resolvePair(first, second ast.Expression) error {
	if err := r.resolveExpression(first); err != nil {
		return err
	}
	return r.resolveExpression(second)
}

// resolveLocal records the distance to the innermost scope declaring name.
// Names found in no scope are left for global lookup.
func (r *Resolver) resolveLocal(expr ast.Expression, name string) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name]; ok {
			r.sink.Resolve(expr.ID(), len(r.scopes)-1-i)
			return
		}
	}
}

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, make(map[string]bool))
}

func (r *Resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *Resolver) declare(name string, node ast.Node) error {
	if len(r.scopes) == 0 {
		return nil
	}
	scope := r.scopes[len(r.scopes)-1]
	if _, exists := scope[name]; exists {
		return newError(ErrDuplicateDeclaration, name, node, "Already a variable with this name in this scope.")
	}
	scope[name] = false
	return nil
}

func (r *Resolver) define(name string) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name] = true
}
