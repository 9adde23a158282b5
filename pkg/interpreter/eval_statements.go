package interpreter

import (
	"fmt"

	"github.com/eugecm/lox/pkg/ast"
	"github.com/eugecm/lox/pkg/runtime"
)

func (i *Interpreter) evaluateStatement(node ast.Statement, env *runtime.Environment) (completion, error) {
	switch n := node.(type) {
	case *ast.ExpressionStatement:
		_, err := i.evaluateExpression(n.Expression, env)
		return normal, err
	case *ast.PrintStatement:
		val, err := i.evaluateExpression(n.Expression, env)
		if err != nil {
			return normal, err
		}
		return normal, i.writeLine(val)
	case *ast.VarDeclaration:
		var val runtime.Value = runtime.NilValue{}
		if n.Initializer != nil {
			var err error
			if val, err = i.evaluateExpression(n.Initializer, env); err != nil {
				return normal, err
			}
		}
		env.Define(n.Name, val)
		return normal, nil
	case *ast.BlockStatement:
		return i.evaluateBlock(n.Body, runtime.NewEnvironment(env))
	case *ast.IfStatement:
		return i.evaluateIfStatement(n, env)
	case *ast.WhileStatement:
		return i.evaluateWhileLoop(n, env)
	case *ast.FunctionDeclaration:
		env.Define(n.Name, &runtime.FunctionValue{Declaration: n, Closure: env})
		return normal, nil
	case *ast.ClassDeclaration:
		return normal, i.evaluateClassDeclaration(n, env)
	case *ast.ReturnStatement:
		var val runtime.Value = runtime.NilValue{}
		if n.Value != nil {
			var err error
			if val, err = i.evaluateExpression(n.Value, env); err != nil {
				return normal, err
			}
		}
		return returning(val), nil
	case nil:
		return normal, fmt.Errorf("interpreter: nil statement")
	default:
		return normal, fmt.Errorf("unsupported statement type: %s", n.NodeType())
	}
}

// evaluateBlock runs statements in scope, stopping at the first return.
// The caller's env is untouched, so leaving the block restores it on every
// path.
func (i *Interpreter) evaluateBlock(body []ast.Statement, scope *runtime.Environment) (completion, error) {
	for _, stmt := range body {
		res, err := i.evaluateStatement(stmt, scope)
		if err != nil || res.returning {
			return res, err
		}
	}
	return normal, nil
}

func (i *Interpreter) evaluateIfStatement(stmt *ast.IfStatement, env *runtime.Environment) (completion, error) {
	cond, err := i.evaluateCondition(stmt.Condition, env)
	if err != nil {
		return normal, err
	}
	if cond {
		return i.evaluateStatement(stmt.ThenBranch, env)
	}
	if stmt.ElseBranch != nil {
		return i.evaluateStatement(stmt.ElseBranch, env)
	}
	return normal, nil
}

func (i *Interpreter) evaluateWhileLoop(loop *ast.WhileStatement, env *runtime.Environment) (completion, error) {
	for {
		cond, err := i.evaluateCondition(loop.Condition, env)
		if err != nil || !cond {
			return normal, err
		}
		res, err := i.evaluateStatement(loop.Body, env)
		if err != nil || res.returning {
			return res, err
		}
	}
}

func (i *Interpreter) evaluateCondition(expr ast.Expression, env *runtime.Environment) (bool, error) {
	val, err := i.evaluateExpression(expr, env)
	if err != nil {
		return false, err
	}
	b, ok := val.(runtime.BoolValue)
	if !ok {
		return false, runtimeErrorf(ErrNonBooleanCondition, expr, "Condition must be a boolean, got %s.", val.Kind())
	}
	return b.Val, nil
}

func (i *Interpreter) evaluateClassDeclaration(def *ast.ClassDeclaration, env *runtime.Environment) error {
	var superclass *runtime.ClassValue
	if def.Superclass != nil {
		val, err := i.evaluateExpression(def.Superclass, env)
		if err != nil {
			return err
		}
		class, ok := val.(*runtime.ClassValue)
		if !ok {
			return runtimeErrorf(ErrTypeMismatch, def.Superclass, "Superclass must be a class.")
		}
		superclass = class
	}

	env.Define(def.Name, runtime.NilValue{})

	methodEnv := env
	if superclass != nil {
		methodEnv = runtime.NewEnvironment(env)
		methodEnv.Define("super", superclass)
	}
	methods := make(map[string]*runtime.FunctionValue, len(def.Methods))
	for _, method := range def.Methods {
		methods[method.Name] = &runtime.FunctionValue{
			Declaration:   method,
			Closure:       methodEnv,
			IsInitializer: method.Name == runtime.InitializerName,
		}
	}

	env.Define(def.Name, runtime.NewClass(def.Name, superclass, methods))
	return nil
}

func (i *Interpreter) writeLine(val runtime.Value) error {
	if _, err := fmt.Fprintln(i.out, valueToString(val)); err != nil {
		return fmt.Errorf("interpreter: write output: %w", err)
	}
	return nil
}
