package interpreter

import (
	"github.com/eugecm/lox/pkg/ast"
	"github.com/eugecm/lox/pkg/runtime"
)

func (i *Interpreter) evaluateCallExpression(call *ast.CallExpression, env *runtime.Environment) (runtime.Value, error) {
	callee, err := i.evaluateExpression(call.Callee, env)
	if err != nil {
		return nil, err
	}
	args := make([]runtime.Value, 0, len(call.Arguments))
	for _, argExpr := range call.Arguments {
		val, err := i.evaluateExpression(argExpr, env)
		if err != nil {
			return nil, err
		}
		args = append(args, val)
	}
	return i.callValue(callee, args, call, env)
}

// callValue checks arity and dispatches over the closed set of callables.
func (i *Interpreter) callValue(callee runtime.Value, args []runtime.Value, call *ast.CallExpression, env *runtime.Environment) (runtime.Value, error) {
	fn, ok := callee.(runtime.Callable)
	if !ok {
		return nil, runtimeErrorf(ErrNotCallable, call, "Can only call functions and classes.")
	}
	if len(args) != fn.Arity() {
		return nil, runtimeErrorf(ErrArityMismatch, call, "Expected %d arguments but got %d.", fn.Arity(), len(args))
	}
	if i.depth >= i.options.MaxCallDepth {
		return nil, runtimeErrorf(ErrStackOverflow, call, "Stack overflow.")
	}
	i.depth++
	defer func() { i.depth-- }()

	switch c := fn.(type) {
	case *runtime.FunctionValue:
		return i.invokeFunction(c, args)
	case *runtime.ClassValue:
		return i.constructInstance(c, args)
	case *runtime.NativeFunctionValue:
		val, err := c.Impl(&runtime.NativeCallContext{Env: env}, args)
		if err != nil {
			return nil, &RuntimeError{Kind: ErrInternal, Message: err.Error(), Line: call.Line(), Err: err}
		}
		return val, nil
	default:
		return nil, runtimeErrorf(ErrNotCallable, call, "Can only call functions and classes.")
	}
}

// invokeFunction runs the body in a fresh scope over the closure. Parameters
// and top-level body declarations share that scope.
func (i *Interpreter) invokeFunction(fn *runtime.FunctionValue, args []runtime.Value) (runtime.Value, error) {
	local := runtime.NewEnvironment(fn.Closure)
	for idx, param := range fn.Declaration.Params {
		local.Define(param, args[idx])
	}
	res, err := i.evaluateBlock(fn.Declaration.Body, local)
	if err != nil {
		return nil, err
	}
	if fn.IsInitializer {
		return fn.Closure.GetAt(0, "this"), nil
	}
	if res.returning {
		return res.value, nil
	}
	return runtime.NilValue{}, nil
}

func (i *Interpreter) constructInstance(class *runtime.ClassValue, args []runtime.Value) (runtime.Value, error) {
	instance := runtime.NewInstance(class)
	if init, ok := class.FindMethod(runtime.InitializerName); ok {
		bound, err := init.Bind(instance)
		if err != nil {
			return nil, err
		}
		if _, err := i.invokeFunction(bound.(*runtime.FunctionValue), args); err != nil {
			return nil, err
		}
	}
	return instance, nil
}
