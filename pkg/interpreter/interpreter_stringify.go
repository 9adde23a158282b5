package interpreter

import (
	"fmt"
	"strconv"

	"github.com/eugecm/lox/pkg/runtime"
)

// Stringify renders a value the way print does.
func Stringify(val runtime.Value) string {
	return valueToString(val)
}

func valueToString(val runtime.Value) string {
	switch v := val.(type) {
	case runtime.StringValue:
		return v.Val
	case runtime.NumberValue:
		return strconv.FormatFloat(v.Val, 'f', -1, 64)
	case runtime.BoolValue:
		if v.Val {
			return "true"
		}
		return "false"
	case runtime.NilValue:
		return "null"
	case *runtime.FunctionValue:
		return fmt.Sprintf("<fn %s/%d>", v.Name(), v.Arity())
	case *runtime.NativeFunctionValue:
		return fmt.Sprintf("<native fn %s/%d>", v.Name, v.Arity())
	case *runtime.ClassValue:
		return fmt.Sprintf("<class %s>", v.Name)
	case *runtime.InstanceValue:
		return fmt.Sprintf("<%s instance>", v.Class.Name)
	case nil:
		return "<nil>"
	default:
		return fmt.Sprintf("<%s>", val.Kind())
	}
}
