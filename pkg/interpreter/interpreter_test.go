package interpreter

import (
	"bytes"
	"testing"
	"time"

	"github.com/eugecm/lox/pkg/ast"
	"github.com/eugecm/lox/pkg/parser"
	"github.com/eugecm/lox/pkg/resolver"
	"github.com/eugecm/lox/pkg/runtime"
)

func TestEchoExpressionStatements(t *testing.T) {
	cases := []struct {
		expr ast.Expression
		want string
	}{
		{ast.Bin("+", ast.Num(1), ast.Num(1)), "2\n"},
		{ast.Bin("*", ast.Group(ast.Bin("+", ast.Num(1), ast.Num(3))), ast.Num(5)), "20\n"},
		{ast.Bin("+", ast.Str("foo"), ast.Str("bar")), "foobar\n"},
		{ast.Bin("/", ast.Num(1), ast.Num(4)), "0.25\n"},
	}
	for _, tc := range cases {
		var out bytes.Buffer
		interp := NewWithOptions(Options{Output: &out, EchoExpressions: true})
		if err := interp.Interpret(ast.Prog(ast.Expr(tc.expr))); err != nil {
			t.Fatalf("interpret failed: %v", err)
		}
		if got := out.String(); got != tc.want {
			t.Fatalf("got %q, want %q", got, tc.want)
		}
	}
}

func TestExpressionStatementsAreSilentByDefault(t *testing.T) {
	out := mustRunProgram(t, ast.Prog(ast.Expr(ast.Bin("+", ast.Num(1), ast.Num(1)))))
	if out != "" {
		t.Fatalf("expected no output, got %q", out)
	}
}

func TestEchoOnlyAppliesToTopLevelStatements(t *testing.T) {
	cases := []struct {
		source string
		want   string
	}{
		{"for (var i = 0; i < 3; i = i + 1) {}", ""},
		{"fun f() { 1 + 1; return 3; } f();", "3\n"},
		{"var n = 0; while (n < 2) { n = n + 1; } n;", "2\n"},
		{"{ 1 + 1; }", ""},
	}
	for _, tc := range cases {
		program, err := parser.Parse(tc.source)
		if err != nil {
			t.Fatalf("parse %q: %v", tc.source, err)
		}
		var out bytes.Buffer
		interp := NewWithOptions(Options{Output: &out, EchoExpressions: true})
		if err := resolver.New(interp).ResolveProgram(program); err != nil {
			t.Fatalf("resolve %q: %v", tc.source, err)
		}
		if err := interp.Interpret(program); err != nil {
			t.Fatalf("interpret %q: %v", tc.source, err)
		}
		if got := out.String(); got != tc.want {
			t.Fatalf("%q echoed %q, want %q", tc.source, got, tc.want)
		}
	}
}

func TestMixedAdditionIsTypeError(t *testing.T) {
	_, err := runProgram(t, ast.Prog(ast.Expr(ast.Bin("+", ast.Num(1), ast.Str("a")))))
	expectRuntimeError(t, err, ErrTypeMismatch)
}

func TestComparisonRequiresNumbers(t *testing.T) {
	_, err := runProgram(t, ast.Prog(ast.Print(ast.Bin("<", ast.Str("a"), ast.Str("b")))))
	expectRuntimeError(t, err, ErrTypeMismatch)
}

func TestPrintFormatting(t *testing.T) {
	out := mustRunSource(t, `
print 3;
print 2.5;
print true;
print nil;
print "text";
fun add(a, b) { return a + b; }
print add;
class Point {}
print Point;
print Point();
print clock;
`)
	want := "3\n2.5\ntrue\nnull\ntext\n<fn add/2>\n<class Point>\n<Point instance>\n<native fn clock/0>\n"
	if out != want {
		t.Fatalf("got %q, want %q", out, want)
	}
}

func TestClosureReadsThroughNestedBlocks(t *testing.T) {
	out := mustRunProgram(t, ast.Prog(
		ast.Block(
			ast.Let("a", ast.Num(1)),
			ast.Block(
				ast.Block(
					ast.Block(ast.Print(ast.Var("a"))),
					ast.Expr(ast.Assign("a", ast.Num(2))),
				),
			),
			ast.Print(ast.Var("a")),
		),
	))
	if out != "1\n2\n" {
		t.Fatalf("got %q", out)
	}
}

func TestCounterClosureSharesState(t *testing.T) {
	out := mustRunSource(t, `
fun makeCounter() {
  var i = 0;
  fun count() {
    i = i + 1;
    return i;
  }
  return count;
}
var counter = makeCounter();
print counter();
print counter();
var other = makeCounter();
print other();
print counter();
`)
	if out != "1\n2\n1\n3\n" {
		t.Fatalf("got %q", out)
	}
}

func TestClosureObservesMutationAfterCreation(t *testing.T) {
	out := mustRunSource(t, `
{
  var x = "before";
  fun show() { print x; }
  x = "after";
  show();
}
`)
	if out != "after\n" {
		t.Fatalf("got %q", out)
	}
}

func TestClosureBindsLexicallyNotDynamically(t *testing.T) {
	out := mustRunSource(t, `
var a = "global";
{
  fun showA() { print a; }
  showA();
  var a = "block";
  showA();
}
`)
	if out != "global\nglobal\n" {
		t.Fatalf("got %q", out)
	}
}

func TestGlobalsResolvedByNameAtRunTime(t *testing.T) {
	out := mustRunSource(t, `
fun show() { print later; }
var later = "defined after";
show();
later = "reassigned";
show();
`)
	if out != "defined after\nreassigned\n" {
		t.Fatalf("got %q", out)
	}
}

func TestShadowingInNestedBlock(t *testing.T) {
	out := mustRunSource(t, `
var a = "outer";
{
  var a = "inner";
  print a;
}
print a;
`)
	if out != "inner\nouter\n" {
		t.Fatalf("got %q", out)
	}
}

func TestReturnEscapesNestedBlocksAndLoops(t *testing.T) {
	out := mustRunSource(t, `
fun find() {
  var i = 0;
  while (true) {
    {
      if (i == 3) {
        return i;
      }
    }
    i = i + 1;
  }
  print "unreachable";
}
print find();
fun early() {
  for (var j = 0; j < 10; j = j + 1) {
    if (j == 2) return "stopped";
    print j;
  }
  return "done";
}
print early();
`)
	if out != "3\n0\n1\nstopped\n" {
		t.Fatalf("got %q", out)
	}
}

func TestFunctionWithoutReturnYieldsNull(t *testing.T) {
	out := mustRunSource(t, `
fun noop() {}
fun bare() { return; }
print noop();
print bare();
`)
	if out != "null\nnull\n" {
		t.Fatalf("got %q", out)
	}
}

func TestRecursion(t *testing.T) {
	out := mustRunSource(t, `
fun fib(n) {
  if (n < 2) return n;
  return fib(n - 1) + fib(n - 2);
}
print fib(15);
`)
	if out != "610\n" {
		t.Fatalf("got %q", out)
	}
}

func TestLogicalOperatorsYieldOperand(t *testing.T) {
	out := mustRunSource(t, `
print true or "unused";
print false or "right";
print false and "unused";
print true and 7;
`)
	if out != "true\nright\nfalse\n7\n" {
		t.Fatalf("got %q", out)
	}
}

func TestLogicalShortCircuits(t *testing.T) {
	out := mustRunSource(t, `
var calls = 0;
fun touch() { calls = calls + 1; return true; }
var a = false and touch();
var b = true or touch();
print calls;
`)
	if out != "0\n" {
		t.Fatalf("got %q", out)
	}
}

func TestStrictTruthiness(t *testing.T) {
	cases := []string{
		`if (1) print "x";`,
		`while (nil) print "x";`,
		`print "a" or true;`,
		`print !0;`,
	}
	for _, src := range cases {
		_, err := runSource(t, src)
		if err == nil {
			t.Fatalf("expected runtime error for %q", src)
		}
		rerr := err.(*RuntimeError)
		if rerr.Kind != ErrNonBooleanCondition && rerr.Kind != ErrTypeMismatch {
			t.Fatalf("unexpected kind %s for %q", rerr.Kind, src)
		}
	}
}

func TestEquality(t *testing.T) {
	out := mustRunSource(t, `
print 1 == 1;
print "a" != "b";
print nil == nil;
print 1 == "1";
print nil == false;
print true == true;
`)
	if out != "true\ntrue\ntrue\nfalse\nfalse\ntrue\n" {
		t.Fatalf("got %q", out)
	}
}

func TestEqualityOnReferenceValuesIsUnsupported(t *testing.T) {
	cases := []string{
		`fun f() {} print f == f;`,
		`class A {} print A == A;`,
		`class A {} var a = A(); print a == a;`,
		`fun f() {} print f == clock;`,
	}
	for _, src := range cases {
		_, err := runSource(t, src)
		expectRuntimeError(t, err, ErrUnsupportedEquality)
	}

	out := mustRunSource(t, `class A {} print A == 1; print A() != nil;`)
	if out != "false\ntrue\n" {
		t.Fatalf("differently tagged comparison should succeed, got %q", out)
	}
}

func TestUndefinedVariable(t *testing.T) {
	_, err := runSource(t, `print missing;`)
	rerr := expectRuntimeError(t, err, ErrUndefinedVariable)
	if rerr.Line != 1 {
		t.Fatalf("expected line 1, got %d", rerr.Line)
	}
	_, err = runSource(t, "\n\nmissing = 1;")
	rerr = expectRuntimeError(t, err, ErrUndefinedVariable)
	if rerr.Line != 3 {
		t.Fatalf("expected line 3, got %d", rerr.Line)
	}
}

func TestCallingNonCallable(t *testing.T) {
	_, err := runSource(t, `"text"();`)
	expectRuntimeError(t, err, ErrNotCallable)
}

func TestArityMismatch(t *testing.T) {
	_, err := runSource(t, `fun f(a, b) {} f(1);`)
	expectRuntimeError(t, err, ErrArityMismatch)
	_, err = runSource(t, `clock(1);`)
	expectRuntimeError(t, err, ErrArityMismatch)
}

func TestOutputBeforeFailureIsPreserved(t *testing.T) {
	out, err := runSource(t, `print "first"; print 1 + nil; print "never";`)
	expectRuntimeError(t, err, ErrTypeMismatch)
	if out != "first\n" {
		t.Fatalf("got %q", out)
	}
}

func TestStackOverflowIsReported(t *testing.T) {
	var out bytes.Buffer
	interp := NewWithOptions(Options{Output: &out, MaxCallDepth: 64})
	program := ast.Prog(
		ast.Fn("loop", []string{"n"}, ast.Ret(ast.Call("loop", ast.Bin("+", ast.Var("n"), ast.Num(1))))),
		ast.Expr(ast.Call("loop", ast.Num(0))),
	)
	if err := resolver.New(interp).ResolveProgram(program); err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	expectRuntimeError(t, interp.Interpret(program), ErrStackOverflow)

	// The depth counter unwinds, so the interpreter stays usable.
	ok := ast.Prog(ast.Fn("id", []string{"x"}, ast.Ret(ast.Var("x"))), ast.Print(ast.Call("id", ast.Num(1))))
	if err := resolver.New(interp).ResolveProgram(ok); err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if err := interp.Interpret(ok); err != nil {
		t.Fatalf("interpret after overflow failed: %v", err)
	}
}

func TestInvariantViolationBecomesInternalError(t *testing.T) {
	var out bytes.Buffer
	interp := NewWithOptions(Options{Output: &out})
	ref := ast.Var("x")
	program := ast.Prog(ast.Let("x", ast.Num(1)), ast.Print(ref))
	interp.Resolve(ref.ID(), 3)
	expectRuntimeError(t, interp.Interpret(program), ErrInternal)
}

func TestClockUsesConfiguredSource(t *testing.T) {
	var out bytes.Buffer
	fixed := time.Unix(1700000000, 500000000)
	interp := NewWithOptions(Options{Output: &out, Clock: func() time.Time { return fixed }})
	program := ast.Prog(ast.Print(ast.Call("clock")))
	if err := interp.Interpret(program); err != nil {
		t.Fatalf("interpret failed: %v", err)
	}
	if got := out.String(); got != "1700000000.5\n" {
		t.Fatalf("got %q", got)
	}
}

func TestDefineNative(t *testing.T) {
	var out bytes.Buffer
	interp := NewWithOptions(Options{Output: &out})
	interp.DefineNative("double", 1, func(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
		n := args[0].(runtime.NumberValue)
		return runtime.NumberValue{Val: n.Val * 2}, nil
	})
	if err := interp.Interpret(ast.Prog(ast.Print(ast.Call("double", ast.Num(21))))); err != nil {
		t.Fatalf("interpret failed: %v", err)
	}
	if out.String() != "42\n" {
		t.Fatalf("got %q", out.String())
	}
}
