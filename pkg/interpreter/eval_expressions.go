package interpreter

import (
	"fmt"

	"github.com/eugecm/lox/pkg/ast"
	"github.com/eugecm/lox/pkg/runtime"
)

func (i *Interpreter) evaluateExpression(node ast.Expression, env *runtime.Environment) (runtime.Value, error) {
	switch n := node.(type) {
	case *ast.StringLiteral:
		return runtime.StringValue{Val: n.Value}, nil
	case *ast.NumberLiteral:
		return runtime.NumberValue{Val: n.Value}, nil
	case *ast.BooleanLiteral:
		return runtime.BoolValue{Val: n.Value}, nil
	case *ast.NilLiteral:
		return runtime.NilValue{}, nil
	case *ast.Grouping:
		return i.evaluateExpression(n.Expression, env)
	case *ast.UnaryExpression:
		return i.evaluateUnaryExpression(n, env)
	case *ast.BinaryExpression:
		return i.evaluateBinaryExpression(n, env)
	case *ast.LogicalExpression:
		return i.evaluateLogicalExpression(n, env)
	case *ast.Variable:
		return i.lookupVariable(n.Name, n, env)
	case *ast.Assignment:
		val, err := i.evaluateExpression(n.Value, env)
		if err != nil {
			return nil, err
		}
		if err := i.assignVariable(n.Name, n, val, env); err != nil {
			return nil, err
		}
		return val, nil
	case *ast.CallExpression:
		return i.evaluateCallExpression(n, env)
	case *ast.GetExpression:
		return i.evaluateGetExpression(n, env)
	case *ast.SetExpression:
		return i.evaluateSetExpression(n, env)
	case *ast.ThisExpression:
		return i.lookupVariable("this", n, env)
	case *ast.SuperExpression:
		return i.evaluateSuperExpression(n, env)
	case nil:
		return nil, fmt.Errorf("interpreter: nil expression")
	default:
		return nil, fmt.Errorf("unsupported expression type: %s", n.NodeType())
	}
}

func (i *Interpreter) evaluateUnaryExpression(expr *ast.UnaryExpression, env *runtime.Environment) (runtime.Value, error) {
	operand, err := i.evaluateExpression(expr.Operand, env)
	if err != nil {
		return nil, err
	}
	switch expr.Operator {
	case "-":
		num, ok := operand.(runtime.NumberValue)
		if !ok {
			return nil, runtimeErrorf(ErrTypeMismatch, expr, "Operand must be a number.")
		}
		return runtime.NumberValue{Val: -num.Val}, nil
	case "!":
		b, ok := operand.(runtime.BoolValue)
		if !ok {
			return nil, runtimeErrorf(ErrTypeMismatch, expr, "Operand must be a boolean.")
		}
		return runtime.BoolValue{Val: !b.Val}, nil
	default:
		return nil, fmt.Errorf("unsupported unary operator %s", expr.Operator)
	}
}

func (i *Interpreter) evaluateBinaryExpression(expr *ast.BinaryExpression, env *runtime.Environment) (runtime.Value, error) {
	left, err := i.evaluateExpression(expr.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := i.evaluateExpression(expr.Right, env)
	if err != nil {
		return nil, err
	}
	switch expr.Operator {
	case "==", "!=":
		eq, err := valuesEqual(left, right)
		if err != nil {
			return nil, runtimeErrorf(ErrUnsupportedEquality, expr, "%s", err.Error())
		}
		if expr.Operator == "!=" {
			eq = !eq
		}
		return runtime.BoolValue{Val: eq}, nil
	case "+":
		if ls, ok := left.(runtime.StringValue); ok {
			if rs, ok := right.(runtime.StringValue); ok {
				return runtime.StringValue{Val: ls.Val + rs.Val}, nil
			}
		}
		if ln, rn, ok := numberOperands(left, right); ok {
			return runtime.NumberValue{Val: ln + rn}, nil
		}
		return nil, runtimeErrorf(ErrTypeMismatch, expr, "Operands must be two numbers or two strings.")
	case "-", "*", "/", "<", "<=", ">", ">=":
		ln, rn, ok := numberOperands(left, right)
		if !ok {
			return nil, runtimeErrorf(ErrTypeMismatch, expr, "Operands must be numbers.")
		}
		return evaluateArithmetic(expr.Operator, ln, rn), nil
	default:
		return nil, fmt.Errorf("unsupported binary operator %s", expr.Operator)
	}
}

// evaluateLogicalExpression short-circuits on the left operand, which must
// be a boolean, and yields whichever operand decided the result.
func (i *Interpreter) evaluateLogicalExpression(expr *ast.LogicalExpression, env *runtime.Environment) (runtime.Value, error) {
	left, err := i.evaluateExpression(expr.Left, env)
	if err != nil {
		return nil, err
	}
	b, ok := left.(runtime.BoolValue)
	if !ok {
		return nil, runtimeErrorf(ErrNonBooleanCondition, expr, "Operand of '%s' must be a boolean, got %s.", expr.Operator, left.Kind())
	}
	switch expr.Operator {
	case "or":
		if b.Val {
			return left, nil
		}
	case "and":
		if !b.Val {
			return left, nil
		}
	default:
		return nil, fmt.Errorf("unsupported logical operator %s", expr.Operator)
	}
	return i.evaluateExpression(expr.Right, env)
}

func numberOperands(left, right runtime.Value) (float64, float64, bool) {
	ln, ok := left.(runtime.NumberValue)
	if !ok {
		return 0, 0, false
	}
	rn, ok := right.(runtime.NumberValue)
	if !ok {
		return 0, 0, false
	}
	return ln.Val, rn.Val, true
}

func evaluateArithmetic(op string, l, r float64) runtime.Value {
	switch op {
	case "-":
		return runtime.NumberValue{Val: l - r}
	case "*":
		return runtime.NumberValue{Val: l * r}
	case "/":
		return runtime.NumberValue{Val: l / r}
	case "<":
		return runtime.BoolValue{Val: l < r}
	case "<=":
		return runtime.BoolValue{Val: l <= r}
	case ">":
		return runtime.BoolValue{Val: l > r}
	default:
		return runtime.BoolValue{Val: l >= r}
	}
}

// valueTag groups kinds for equality: user and native functions share the
// callable tag.
func valueTag(v runtime.Value) runtime.Kind {
	if v.Kind() == runtime.KindNativeFunction {
		return runtime.KindFunction
	}
	return v.Kind()
}

// valuesEqual compares scalars by value. Differently tagged operands are
// unequal; comparing two callables, classes or instances is unsupported.
func valuesEqual(left, right runtime.Value) (bool, error) {
	if valueTag(left) != valueTag(right) {
		return false, nil
	}
	switch l := left.(type) {
	case runtime.StringValue:
		return l.Val == right.(runtime.StringValue).Val, nil
	case runtime.NumberValue:
		return l.Val == right.(runtime.NumberValue).Val, nil
	case runtime.BoolValue:
		return l.Val == right.(runtime.BoolValue).Val, nil
	case runtime.NilValue:
		return true, nil
	default:
		return false, fmt.Errorf("Equality is not supported between values of kind %s.", valueTag(left))
	}
}
