package ast

// Literal helpers.

func Str(value string) *StringLiteral {
	return NewStringLiteral(value)
}

func Num(value float64) *NumberLiteral {
	return NewNumberLiteral(value)
}

func Bool(value bool) *BooleanLiteral {
	return NewBooleanLiteral(value)
}

func Nil() *NilLiteral {
	return NewNilLiteral()
}

// Expression helpers.

func Group(expr Expression) *Grouping {
	return NewGrouping(expr)
}

func Un(operator string, operand Expression) *UnaryExpression {
	return NewUnaryExpression(operator, operand)
}

func Bin(operator string, left, right Expression) *BinaryExpression {
	return NewBinaryExpression(operator, left, right)
}

func And(left, right Expression) *LogicalExpression {
	return NewLogicalExpression("and", left, right)
}

func Or(left, right Expression) *LogicalExpression {
	return NewLogicalExpression("or", left, right)
}

func Var(name string) *Variable {
	return NewVariable(name)
}

func Assign(name string, value Expression) *Assignment {
	return NewAssignment(name, value)
}

func CallExpr(callee Expression, args ...Expression) *CallExpression {
	return NewCallExpression(callee, args)
}

func Call(name string, args ...Expression) *CallExpression {
	return CallExpr(Var(name), args...)
}

func Get(object Expression, name string) *GetExpression {
	return NewGetExpression(object, name)
}

func Set(object Expression, name string, value Expression) *SetExpression {
	return NewSetExpression(object, name, value)
}

// Method calls object.name(args...).
func Method(object Expression, name string, args ...Expression) *CallExpression {
	return CallExpr(Get(object, name), args...)
}

func This() *ThisExpression {
	return NewThisExpression()
}

func Super(method string) *SuperExpression {
	return NewSuperExpression(method)
}

// Statement helpers.

func Prog(statements ...Statement) *Program {
	return NewProgram(statements)
}

func Let(name string, initializer Expression) *VarDeclaration {
	return NewVarDeclaration(name, initializer)
}

func Expr(expr Expression) *ExpressionStatement {
	return NewExpressionStatement(expr)
}

func Print(expr Expression) *PrintStatement {
	return NewPrintStatement(expr)
}

func If(cond Expression, then Statement, otherwise Statement) *IfStatement {
	return NewIfStatement(cond, then, otherwise)
}

func While(cond Expression, body Statement) *WhileStatement {
	return NewWhileStatement(cond, body)
}

func Block(statements ...Statement) *BlockStatement {
	return NewBlockStatement(statements)
}

func Ret(value Expression) *ReturnStatement {
	return NewReturnStatement(value)
}

func Fn(name string, params []string, body ...Statement) *FunctionDeclaration {
	return NewFunctionDeclaration(name, params, body)
}

// Class declares a class; superclass may be empty.
func Class(name string, superclass string, methods ...*FunctionDeclaration) *ClassDeclaration {
	var super *Variable
	if superclass != "" {
		super = Var(superclass)
	}
	return NewClassDeclaration(name, super, methods)
}
