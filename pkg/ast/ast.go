package ast

import "sync/atomic"

type NodeType string

const (
	NodeProgram             NodeType = "Program"
	NodeStringLiteral       NodeType = "StringLiteral"
	NodeNumberLiteral       NodeType = "NumberLiteral"
	NodeBooleanLiteral      NodeType = "BooleanLiteral"
	NodeNilLiteral          NodeType = "NilLiteral"
	NodeGrouping            NodeType = "Grouping"
	NodeUnaryExpression     NodeType = "UnaryExpression"
	NodeBinaryExpression    NodeType = "BinaryExpression"
	NodeLogicalExpression   NodeType = "LogicalExpression"
	NodeVariable            NodeType = "Variable"
	NodeAssignment          NodeType = "Assignment"
	NodeCallExpression      NodeType = "CallExpression"
	NodeGetExpression       NodeType = "GetExpression"
	NodeSetExpression       NodeType = "SetExpression"
	NodeThisExpression      NodeType = "ThisExpression"
	NodeSuperExpression     NodeType = "SuperExpression"
	NodeVarDeclaration      NodeType = "VarDeclaration"
	NodeExpressionStatement NodeType = "ExpressionStatement"
	NodePrintStatement      NodeType = "PrintStatement"
	NodeIfStatement         NodeType = "IfStatement"
	NodeWhileStatement      NodeType = "WhileStatement"
	NodeBlockStatement      NodeType = "BlockStatement"
	NodeReturnStatement     NodeType = "ReturnStatement"
	NodeFunctionDeclaration NodeType = "FunctionDeclaration"
	NodeClassDeclaration    NodeType = "ClassDeclaration"
)

type Node interface {
	NodeType() NodeType
	// Line is the 1-based source line the node starts on, or 0 when unknown.
	Line() int
	isNode()
}

type nodeImpl struct {
	Type NodeType `json:"type"`
	Pos  int      `json:"line,omitempty"`
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (n nodeImpl) Line() int          { return n.Pos }
func (nodeImpl) isNode()              {}

// SetLine records the source position; the parser calls it right after construction.
func (n *nodeImpl) SetLine(line int) { n.Pos = line }

// ExprID identifies one expression node for the lifetime of the process.
// The resolver keys its scope-distance table by it.
type ExprID int64

var exprCounter atomic.Int64

func nextExprID() ExprID {
	return ExprID(exprCounter.Add(1))
}

type exprImpl struct {
	id ExprID
}

func newExprImpl() exprImpl {
	return exprImpl{id: nextExprID()}
}

func (e exprImpl) ID() ExprID { return e.id }
func (exprImpl) expressionNode() {}

// Marker interfaces.

type Expression interface {
	Node
	ID() ExprID
	expressionNode()
}

type Statement interface {
	Node
	statementNode()
}

type statementMarker struct{}

func (statementMarker) statementNode() {}

// Program is the root of a parsed source file.
type Program struct {
	nodeImpl

	Body []Statement `json:"body"`
}

func NewProgram(body []Statement) *Program {
	return &Program{nodeImpl: newNodeImpl(NodeProgram), Body: body}
}

// Literals

type StringLiteral struct {
	nodeImpl
	exprImpl

	Value string `json:"value"`
}

func NewStringLiteral(value string) *StringLiteral {
	return &StringLiteral{nodeImpl: newNodeImpl(NodeStringLiteral), exprImpl: newExprImpl(), Value: value}
}

type NumberLiteral struct {
	nodeImpl
	exprImpl

	Value float64 `json:"value"`
}

func NewNumberLiteral(value float64) *NumberLiteral {
	return &NumberLiteral{nodeImpl: newNodeImpl(NodeNumberLiteral), exprImpl: newExprImpl(), Value: value}
}

type BooleanLiteral struct {
	nodeImpl
	exprImpl

	Value bool `json:"value"`
}

func NewBooleanLiteral(value bool) *BooleanLiteral {
	return &BooleanLiteral{nodeImpl: newNodeImpl(NodeBooleanLiteral), exprImpl: newExprImpl(), Value: value}
}

type NilLiteral struct {
	nodeImpl
	exprImpl
}

func NewNilLiteral() *NilLiteral {
	return &NilLiteral{nodeImpl: newNodeImpl(NodeNilLiteral), exprImpl: newExprImpl()}
}

// Operators and references

type Grouping struct {
	nodeImpl
	exprImpl

	Expression Expression `json:"expression"`
}

func NewGrouping(expr Expression) *Grouping {
	return &Grouping{nodeImpl: newNodeImpl(NodeGrouping), exprImpl: newExprImpl(), Expression: expr}
}

type UnaryExpression struct {
	nodeImpl
	exprImpl

	Operator string     `json:"operator"`
	Operand  Expression `json:"operand"`
}

func NewUnaryExpression(operator string, operand Expression) *UnaryExpression {
	return &UnaryExpression{nodeImpl: newNodeImpl(NodeUnaryExpression), exprImpl: newExprImpl(), Operator: operator, Operand: operand}
}

type BinaryExpression struct {
	nodeImpl
	exprImpl

	Operator string     `json:"operator"`
	Left     Expression `json:"left"`
	Right    Expression `json:"right"`
}

func NewBinaryExpression(operator string, left, right Expression) *BinaryExpression {
	return &BinaryExpression{nodeImpl: newNodeImpl(NodeBinaryExpression), exprImpl: newExprImpl(), Operator: operator, Left: left, Right: right}
}

// LogicalExpression covers the short-circuiting "and" / "or" operators.
type LogicalExpression struct {
	nodeImpl
	exprImpl

	Operator string     `json:"operator"`
	Left     Expression `json:"left"`
	Right    Expression `json:"right"`
}

func NewLogicalExpression(operator string, left, right Expression) *LogicalExpression {
	return &LogicalExpression{nodeImpl: newNodeImpl(NodeLogicalExpression), exprImpl: newExprImpl(), Operator: operator, Left: left, Right: right}
}

type Variable struct {
	nodeImpl
	exprImpl

	Name string `json:"name"`
}

func NewVariable(name string) *Variable {
	return &Variable{nodeImpl: newNodeImpl(NodeVariable), exprImpl: newExprImpl(), Name: name}
}

type Assignment struct {
	nodeImpl
	exprImpl

	Name  string     `json:"name"`
	Value Expression `json:"value"`
}

func NewAssignment(name string, value Expression) *Assignment {
	return &Assignment{nodeImpl: newNodeImpl(NodeAssignment), exprImpl: newExprImpl(), Name: name, Value: value}
}

type CallExpression struct {
	nodeImpl
	exprImpl

	Callee    Expression   `json:"callee"`
	Arguments []Expression `json:"arguments"`
}

func NewCallExpression(callee Expression, args []Expression) *CallExpression {
	return &CallExpression{nodeImpl: newNodeImpl(NodeCallExpression), exprImpl: newExprImpl(), Callee: callee, Arguments: args}
}

type GetExpression struct {
	nodeImpl
	exprImpl

	Object Expression `json:"object"`
	Name   string     `json:"name"`
}

func NewGetExpression(object Expression, name string) *GetExpression {
	return &GetExpression{nodeImpl: newNodeImpl(NodeGetExpression), exprImpl: newExprImpl(), Object: object, Name: name}
}

type SetExpression struct {
	nodeImpl
	exprImpl

	Object Expression `json:"object"`
	Name   string     `json:"name"`
	Value  Expression `json:"value"`
}

func NewSetExpression(object Expression, name string, value Expression) *SetExpression {
	return &SetExpression{nodeImpl: newNodeImpl(NodeSetExpression), exprImpl: newExprImpl(), Object: object, Name: name, Value: value}
}

type ThisExpression struct {
	nodeImpl
	exprImpl
}

func NewThisExpression() *ThisExpression {
	return &ThisExpression{nodeImpl: newNodeImpl(NodeThisExpression), exprImpl: newExprImpl()}
}

type SuperExpression struct {
	nodeImpl
	exprImpl

	Method string `json:"method"`
}

func NewSuperExpression(method string) *SuperExpression {
	return &SuperExpression{nodeImpl: newNodeImpl(NodeSuperExpression), exprImpl: newExprImpl(), Method: method}
}

// Statements

type VarDeclaration struct {
	nodeImpl
	statementMarker

	Name        string     `json:"name"`
	Initializer Expression `json:"initializer"`
}

func NewVarDeclaration(name string, initializer Expression) *VarDeclaration {
	return &VarDeclaration{nodeImpl: newNodeImpl(NodeVarDeclaration), Name: name, Initializer: initializer}
}

type ExpressionStatement struct {
	nodeImpl
	statementMarker

	Expression Expression `json:"expression"`
}

func NewExpressionStatement(expr Expression) *ExpressionStatement {
	return &ExpressionStatement{nodeImpl: newNodeImpl(NodeExpressionStatement), Expression: expr}
}

type PrintStatement struct {
	nodeImpl
	statementMarker

	Expression Expression `json:"expression"`
}

func NewPrintStatement(expr Expression) *PrintStatement {
	return &PrintStatement{nodeImpl: newNodeImpl(NodePrintStatement), Expression: expr}
}

type IfStatement struct {
	nodeImpl
	statementMarker

	Condition  Expression `json:"condition"`
	ThenBranch Statement  `json:"then"`
	ElseBranch Statement  `json:"else,omitempty"`
}

func NewIfStatement(cond Expression, then, otherwise Statement) *IfStatement {
	return &IfStatement{nodeImpl: newNodeImpl(NodeIfStatement), Condition: cond, ThenBranch: then, ElseBranch: otherwise}
}

type WhileStatement struct {
	nodeImpl
	statementMarker

	Condition Expression `json:"condition"`
	Body      Statement  `json:"body"`
}

func NewWhileStatement(cond Expression, body Statement) *WhileStatement {
	return &WhileStatement{nodeImpl: newNodeImpl(NodeWhileStatement), Condition: cond, Body: body}
}

type BlockStatement struct {
	nodeImpl
	statementMarker

	Body []Statement `json:"body"`
}

func NewBlockStatement(body []Statement) *BlockStatement {
	return &BlockStatement{nodeImpl: newNodeImpl(NodeBlockStatement), Body: body}
}

type ReturnStatement struct {
	nodeImpl
	statementMarker

	// Value is nil for a bare `return;`.
	Value Expression `json:"value,omitempty"`
}

func NewReturnStatement(value Expression) *ReturnStatement {
	return &ReturnStatement{nodeImpl: newNodeImpl(NodeReturnStatement), Value: value}
}

type FunctionDeclaration struct {
	nodeImpl
	statementMarker

	Name   string      `json:"name"`
	Params []string    `json:"params"`
	Body   []Statement `json:"body"`
}

func NewFunctionDeclaration(name string, params []string, body []Statement) *FunctionDeclaration {
	return &FunctionDeclaration{nodeImpl: newNodeImpl(NodeFunctionDeclaration), Name: name, Params: params, Body: body}
}

type ClassDeclaration struct {
	nodeImpl
	statementMarker

	Name       string                 `json:"name"`
	Superclass *Variable              `json:"superclass,omitempty"`
	Methods    []*FunctionDeclaration `json:"methods"`
}

func NewClassDeclaration(name string, superclass *Variable, methods []*FunctionDeclaration) *ClassDeclaration {
	return &ClassDeclaration{nodeImpl: newNodeImpl(NodeClassDeclaration), Name: name, Superclass: superclass, Methods: methods}
}
