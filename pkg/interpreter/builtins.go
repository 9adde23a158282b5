package interpreter

import (
	"time"

	"github.com/eugecm/lox/pkg/runtime"
)

func (i *Interpreter) initBuiltins() {
	i.DefineNative("clock", 0, func(_ *runtime.NativeCallContext, _ []runtime.Value) (runtime.Value, error) {
		now := i.options.Clock()
		secs := float64(now.Unix()) + float64(now.Nanosecond())/float64(time.Second)
		return runtime.NumberValue{Val: secs}, nil
	})
}

// DefineNative registers a host function as a global.
func (i *Interpreter) DefineNative(name string, arity int, impl runtime.NativeFunc) {
	i.global.Define(name, &runtime.NativeFunctionValue{Name: name, ParamCount: arity, Impl: impl})
}
