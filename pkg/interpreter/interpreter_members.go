package interpreter

import (
	"errors"

	"github.com/eugecm/lox/pkg/ast"
	"github.com/eugecm/lox/pkg/runtime"
)

func (i *Interpreter) evaluateGetExpression(expr *ast.GetExpression, env *runtime.Environment) (runtime.Value, error) {
	obj, err := i.evaluateExpression(expr.Object, env)
	if err != nil {
		return nil, err
	}
	inst, ok := obj.(*runtime.InstanceValue)
	if !ok {
		return nil, runtimeErrorf(ErrTypeMismatch, expr, "Only instances have properties.")
	}
	val, err := inst.Get(expr.Name)
	if err != nil {
		return nil, memberError(expr, expr.Name, err)
	}
	return val, nil
}

func (i *Interpreter) evaluateSetExpression(expr *ast.SetExpression, env *runtime.Environment) (runtime.Value, error) {
	obj, err := i.evaluateExpression(expr.Object, env)
	if err != nil {
		return nil, err
	}
	inst, ok := obj.(*runtime.InstanceValue)
	if !ok {
		return nil, runtimeErrorf(ErrTypeMismatch, expr, "Only instances have fields.")
	}
	val, err := i.evaluateExpression(expr.Value, env)
	if err != nil {
		return nil, err
	}
	inst.Set(expr.Name, val)
	return val, nil
}

// evaluateSuperExpression looks the method up from the statically enclosing
// superclass and binds it to the current receiver, found one scope closer.
func (i *Interpreter) evaluateSuperExpression(expr *ast.SuperExpression, env *runtime.Environment) (runtime.Value, error) {
	distance, ok := i.locals[expr.ID()]
	if !ok {
		return nil, runtimeErrorf(ErrInternal, expr, "unresolved 'super' reference")
	}
	superclass, ok := env.GetAt(distance, "super").(*runtime.ClassValue)
	if !ok {
		return nil, runtimeErrorf(ErrInternal, expr, "'super' is not bound to a class")
	}
	receiver, ok := env.GetAt(distance-1, "this").(*runtime.InstanceValue)
	if !ok {
		return nil, runtimeErrorf(ErrInternal, expr, "'this' is not bound to an instance")
	}
	method, ok := superclass.FindMethod(expr.Method)
	if !ok {
		return nil, runtimeErrorf(ErrUndefinedProperty, expr, "Undefined property '%s'.", expr.Method)
	}
	val, err := method.Bind(receiver)
	if err != nil {
		return nil, memberError(expr, expr.Method, err)
	}
	return val, nil
}

func memberError(node ast.Node, name string, err error) *RuntimeError {
	switch {
	case errors.Is(err, runtime.ErrUndefinedProperty):
		rerr := runtimeErrorf(ErrUndefinedProperty, node, "Undefined property '%s'.", name)
		rerr.Err = err
		return rerr
	case errors.Is(err, runtime.ErrUnsupportedBind):
		rerr := runtimeErrorf(ErrUnsupportedBind, node, "%s", err.Error())
		rerr.Err = err
		return rerr
	default:
		rerr := runtimeErrorf(ErrInternal, node, "%s", err.Error())
		rerr.Err = err
		return rerr
	}
}
