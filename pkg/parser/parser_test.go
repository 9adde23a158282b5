package parser_test

import (
	"errors"
	"testing"

	"github.com/eugecm/lox/pkg/ast"
	"github.com/eugecm/lox/pkg/parser"
)

func mustParse(t *testing.T, source string) *ast.Program {
	t.Helper()
	program, err := parser.Parse(source)
	if err != nil {
		t.Fatalf("Parse(%q) returned error: %v", source, err)
	}
	return program
}

func TestParsePrecedence(t *testing.T) {
	program := mustParse(t, "print 1 + 2 * 3 == 7;")
	if len(program.Body) != 1 {
		t.Fatalf("expected one statement, got %d", len(program.Body))
	}
	stmt, ok := program.Body[0].(*ast.PrintStatement)
	if !ok {
		t.Fatalf("expected PrintStatement, got %T", program.Body[0])
	}
	eq, ok := stmt.Expression.(*ast.BinaryExpression)
	if !ok || eq.Operator != "==" {
		t.Fatalf("expected == at the root, got %#v", stmt.Expression)
	}
	sum, ok := eq.Left.(*ast.BinaryExpression)
	if !ok || sum.Operator != "+" {
		t.Fatalf("expected + under ==, got %#v", eq.Left)
	}
	if product, ok := sum.Right.(*ast.BinaryExpression); !ok || product.Operator != "*" {
		t.Fatalf("expected * to bind tighter than +, got %#v", sum.Right)
	}
}

func TestParseAssignmentTargets(t *testing.T) {
	program := mustParse(t, "a = b = 1; obj.field = 2;")
	first := program.Body[0].(*ast.ExpressionStatement)
	outer, ok := first.Expression.(*ast.Assignment)
	if !ok || outer.Name != "a" {
		t.Fatalf("expected assignment to a, got %#v", first.Expression)
	}
	if inner, ok := outer.Value.(*ast.Assignment); !ok || inner.Name != "b" {
		t.Fatalf("assignment should be right-associative, got %#v", outer.Value)
	}
	second := program.Body[1].(*ast.ExpressionStatement)
	set, ok := second.Expression.(*ast.SetExpression)
	if !ok || set.Name != "field" {
		t.Fatalf("expected SetExpression, got %#v", second.Expression)
	}

	_, err := parser.Parse("1 = 2;")
	var perr *parser.Error
	if !errors.As(err, &perr) || perr.Kind != parser.ErrInvalidAssignment {
		t.Fatalf("expected invalid assignment error, got %v", err)
	}
}

func TestParseForDesugarsToWhile(t *testing.T) {
	program := mustParse(t, "for (var i = 0; i < 3; i = i + 1) print i;")
	block, ok := program.Body[0].(*ast.BlockStatement)
	if !ok || len(block.Body) != 2 {
		t.Fatalf("expected block with initializer and loop, got %#v", program.Body[0])
	}
	if _, ok := block.Body[0].(*ast.VarDeclaration); !ok {
		t.Fatalf("expected var initializer, got %T", block.Body[0])
	}
	loop, ok := block.Body[1].(*ast.WhileStatement)
	if !ok {
		t.Fatalf("expected while loop, got %T", block.Body[1])
	}
	body, ok := loop.Body.(*ast.BlockStatement)
	if !ok || len(body.Body) != 2 {
		t.Fatalf("expected body followed by increment, got %#v", loop.Body)
	}

	bare := mustParse(t, "for (;;) print 1;")
	infinite, ok := bare.Body[0].(*ast.WhileStatement)
	if !ok {
		t.Fatalf("expected bare while loop, got %T", bare.Body[0])
	}
	if lit, ok := infinite.Condition.(*ast.BooleanLiteral); !ok || !lit.Value {
		t.Fatalf("missing condition should default to true, got %#v", infinite.Condition)
	}
}

func TestParseClassWithSuperclass(t *testing.T) {
	program := mustParse(t, `
class A { greet() { return "a"; } }
class B < A {
  init(name) { this.name = name; }
  greet() { return super.greet(); }
}
`)
	if len(program.Body) != 2 {
		t.Fatalf("expected two classes, got %d", len(program.Body))
	}
	class, ok := program.Body[1].(*ast.ClassDeclaration)
	if !ok {
		t.Fatalf("expected ClassDeclaration, got %T", program.Body[1])
	}
	if class.Superclass == nil || class.Superclass.Name != "A" {
		t.Fatalf("expected superclass A, got %#v", class.Superclass)
	}
	if len(class.Methods) != 2 || class.Methods[0].Name != "init" || len(class.Methods[0].Params) != 1 {
		t.Fatalf("unexpected methods %#v", class.Methods)
	}
	ret := class.Methods[1].Body[0].(*ast.ReturnStatement)
	call, ok := ret.Value.(*ast.CallExpression)
	if !ok {
		t.Fatalf("expected call in return, got %T", ret.Value)
	}
	if super, ok := call.Callee.(*ast.SuperExpression); !ok || super.Method != "greet" {
		t.Fatalf("expected super.greet callee, got %#v", call.Callee)
	}
	if class.Line() != 3 {
		t.Fatalf("expected class on line 3, got %d", class.Line())
	}
}

func TestParseVarRequiresInitializer(t *testing.T) {
	_, err := parser.Parse("var a;")
	var perr *parser.Error
	if !errors.As(err, &perr) || perr.Kind != parser.ErrUnexpectedToken || perr.Lexeme != ";" {
		t.Fatalf("expected missing initializer error, got %v", err)
	}
}

func TestParseBareReturn(t *testing.T) {
	program := mustParse(t, "fun f() { return; }")
	fn := program.Body[0].(*ast.FunctionDeclaration)
	ret := fn.Body[0].(*ast.ReturnStatement)
	if ret.Value != nil {
		t.Fatalf("expected bare return, got %#v", ret.Value)
	}
}

func TestParseTooManyArguments(t *testing.T) {
	src := "f("
	for i := 0; i < 256; i++ {
		if i > 0 {
			src += ","
		}
		src += "1"
	}
	src += ");"
	_, err := parser.Parse(src)
	var perr *parser.Error
	if !errors.As(err, &perr) || perr.Kind != parser.ErrTooManyArguments {
		t.Fatalf("expected too many arguments error, got %v", err)
	}
}

func TestIsIncomplete(t *testing.T) {
	cases := []struct {
		source     string
		incomplete bool
	}{
		{"fun f() {", true},
		{"print \"abc", true},
		{"print 1", true},
		{"print 1;", false},
		{"print );", false},
	}
	for _, tc := range cases {
		_, err := parser.Parse(tc.source)
		if got := parser.IsIncomplete(err); got != tc.incomplete {
			t.Fatalf("IsIncomplete(%q) = %v, want %v (err=%v)", tc.source, got, tc.incomplete, err)
		}
	}
}

func TestErrorFormatting(t *testing.T) {
	_, err := parser.Parse("var = 1;")
	if err == nil {
		t.Fatalf("expected error")
	}
	if got, want := err.Error(), "[line 1] Error at '=': Expect variable name."; got != want {
		t.Fatalf("unexpected message %q, want %q", got, want)
	}
}
