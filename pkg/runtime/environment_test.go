package runtime

import (
	"errors"
	"testing"
)

func TestEnvironmentGetWalksOutward(t *testing.T) {
	global := NewEnvironment(nil)
	global.Define("a", NumberValue{Val: 1})
	inner := NewEnvironment(NewEnvironment(global))

	got, err := inner.Get("a")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if num, ok := got.(NumberValue); !ok || num.Val != 1 {
		t.Fatalf("expected number 1, got %#v", got)
	}
	if _, err := inner.Get("missing"); !errors.Is(err, ErrUndefinedVariable) {
		t.Fatalf("expected ErrUndefinedVariable, got %v", err)
	}
}

func TestEnvironmentAssignUpdatesDefiningScope(t *testing.T) {
	global := NewEnvironment(nil)
	global.Define("a", NumberValue{Val: 1})
	child := NewEnvironment(global)

	if err := child.Assign("a", NumberValue{Val: 2}); err != nil {
		t.Fatalf("Assign returned error: %v", err)
	}
	if child.HasInCurrentScope("a") {
		t.Fatalf("assign must not create a binding in the child scope")
	}
	got, _ := global.Get("a")
	if num := got.(NumberValue); num.Val != 2 {
		t.Fatalf("expected global a = 2, got %v", num.Val)
	}
	if err := child.Assign("b", NilValue{}); !errors.Is(err, ErrUndefinedVariable) {
		t.Fatalf("expected ErrUndefinedVariable, got %v", err)
	}
}

func TestEnvironmentDefineShadowsOnlyInnermost(t *testing.T) {
	outer := NewEnvironment(nil)
	outer.Define("x", StringValue{Val: "outer"})
	inner := NewEnvironment(outer)
	inner.Define("x", StringValue{Val: "inner"})

	if got := inner.GetAt(0, "x").(StringValue).Val; got != "inner" {
		t.Fatalf("GetAt(0) = %q, want inner", got)
	}
	if got := inner.GetAt(1, "x").(StringValue).Val; got != "outer" {
		t.Fatalf("GetAt(1) = %q, want outer", got)
	}
}

func TestEnvironmentAssignAtTargetsExactScope(t *testing.T) {
	outer := NewEnvironment(nil)
	outer.Define("x", NumberValue{Val: 1})
	middle := NewEnvironment(outer)
	middle.Define("x", NumberValue{Val: 2})
	inner := NewEnvironment(middle)

	inner.AssignAt(2, "x", NumberValue{Val: 10})
	if got := outer.GetAt(0, "x").(NumberValue).Val; got != 10 {
		t.Fatalf("outer x = %v, want 10", got)
	}
	if got := middle.GetAt(0, "x").(NumberValue).Val; got != 2 {
		t.Fatalf("middle x = %v, want 2", got)
	}
}

func TestEnvironmentGetAtMissingPanicsWithInvariantError(t *testing.T) {
	env := NewEnvironment(NewEnvironment(nil))
	defer func() {
		r := recover()
		if _, ok := r.(*InvariantError); !ok {
			t.Fatalf("expected *InvariantError panic, got %#v", r)
		}
	}()
	env.GetAt(1, "ghost")
}

func TestEnvironmentAncestorBeyondChainPanics(t *testing.T) {
	env := NewEnvironment(nil)
	defer func() {
		if _, ok := recover().(*InvariantError); !ok {
			t.Fatalf("expected *InvariantError panic")
		}
	}()
	env.Ancestor(3)
}

func TestEnvironmentKeysSorted(t *testing.T) {
	env := NewEnvironment(nil)
	env.Define("b", NilValue{})
	env.Define("a", NilValue{})
	keys := env.Keys()
	if len(keys) != 2 || keys[0] != "a" || keys[1] != "b" {
		t.Fatalf("unexpected keys %v", keys)
	}
}
