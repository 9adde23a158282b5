package runtime

import (
	"errors"
	"fmt"

	"github.com/eugecm/lox/pkg/ast"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindBool
	KindNil
	KindFunction
	KindNativeFunction
	KindClass
	KindInstance
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindNil:
		return "nil"
	case KindFunction:
		return "function"
	case KindNativeFunction:
		return "native_function"
	case KindClass:
		return "class"
	case KindInstance:
		return "instance"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the shared behaviour for all runtime values.
type Value interface {
	Kind() Kind
}

//-----------------------------------------------------------------------------
// Scalars
//-----------------------------------------------------------------------------

type StringValue struct {
	Val string
}

func (v StringValue) Kind() Kind { return KindString }

type NumberValue struct {
	Val float64
}

func (v NumberValue) Kind() Kind { return KindNumber }

type BoolValue struct {
	Val bool
}

func (v BoolValue) Kind() Kind { return KindBool }

type NilValue struct{}

func (NilValue) Kind() Kind { return KindNil }

//-----------------------------------------------------------------------------
// Callables
//-----------------------------------------------------------------------------

// ErrUnsupportedBind is returned when binding a receiver to something that is
// not a user-defined method.
var ErrUnsupportedBind = errors.New("only user-defined methods can be bound to an instance")

// Callable is the fixed set of invocable values: *FunctionValue, *ClassValue
// and *NativeFunctionValue. Invocation itself lives in the interpreter.
type Callable interface {
	Value
	Arity() int
	Bind(instance *InstanceValue) (Value, error)
}

// FunctionValue is a user-defined function paired with the environment it was
// declared in.
type FunctionValue struct {
	Declaration   *ast.FunctionDeclaration
	Closure       *Environment
	IsInitializer bool
}

func (v *FunctionValue) Kind() Kind { return KindFunction }

func (v *FunctionValue) Name() string {
	if v.Declaration == nil {
		return "<anonymous>"
	}
	return v.Declaration.Name
}

func (v *FunctionValue) Arity() int {
	if v.Declaration == nil {
		return 0
	}
	return len(v.Declaration.Params)
}

// Bind returns a new function whose closure is a fresh child scope of the
// original closure defining `this`. The receiver is left untouched.
func (v *FunctionValue) Bind(instance *InstanceValue) (Value, error) {
	env := NewEnvironment(v.Closure)
	env.Define("this", instance)
	return &FunctionValue{Declaration: v.Declaration, Closure: env, IsInitializer: v.IsInitializer}, nil
}

// NativeCallContext provides hooks for native functions.
type NativeCallContext struct {
	Env *Environment
}

type NativeFunc func(*NativeCallContext, []Value) (Value, error)

type NativeFunctionValue struct {
	Name       string
	ParamCount int
	Impl       NativeFunc
}

func (v *NativeFunctionValue) Kind() Kind { return KindNativeFunction }

func (v *NativeFunctionValue) Arity() int { return v.ParamCount }

func (v *NativeFunctionValue) Bind(*InstanceValue) (Value, error) {
	return nil, fmt.Errorf("native function '%s': %w", v.Name, ErrUnsupportedBind)
}

var (
	_ Callable = (*FunctionValue)(nil)
	_ Callable = (*NativeFunctionValue)(nil)
	_ Callable = (*ClassValue)(nil)
)
