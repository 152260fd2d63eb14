package compiler

import (
	"testing"

	"github.com/ember-lang/ember/internal/gc"
	"github.com/ember-lang/ember/internal/value"
)

func TestCompileSimpleExpression(t *testing.T) {
	heap := gc.New()
	fn, ok := Compile(`print 1 + 2;`, heap)
	if !ok {
		t.Fatalf("expected successful compile")
	}
	if fn.Arity != 0 {
		t.Errorf("script function arity = %d, want 0", fn.Arity)
	}
	if fn.Chunk.Len() == 0 {
		t.Errorf("expected non-empty chunk")
	}
}

func TestCompileFunctionArity(t *testing.T) {
	heap := gc.New()
	fn, ok := Compile(`fun add(a, b, c) { return a + b + c; }`, heap)
	if !ok {
		t.Fatalf("expected successful compile")
	}
	// The script's own chunk contains OP_CLOSURE for `add`; the
	// function's own arity lives on the constant it wraps.
	found := false
	for _, c := range fn.Chunk.Constants {
		if c.IsObj() {
			if inner, ok := c.Obj.(*value.Function); ok {
				found = true
				if inner.Arity != 3 {
					t.Errorf("add arity = %d, want 3", inner.Arity)
				}
			}
		}
	}
	if !found {
		t.Fatalf("expected a Function constant for add")
	}
}

func TestCompileErrorOnMalformedExpression(t *testing.T) {
	heap := gc.New()
	_, ok := Compile(`print 1 +;`, heap)
	if ok {
		t.Fatalf("expected compile error for malformed expression")
	}
}

func TestCompileReturnAtScriptScopeIsError(t *testing.T) {
	heap := gc.New()
	_, ok := Compile(`return 1;`, heap)
	if ok {
		t.Fatalf("expected compile error: can't return from top-level code")
	}
}

func TestCompileDuplicateLocalIsError(t *testing.T) {
	heap := gc.New()
	_, ok := Compile(`{ var a = 1; var a = 2; }`, heap)
	if ok {
		t.Fatalf("expected compile error for duplicate local declaration")
	}
}

func TestCompileClassWithMethods(t *testing.T) {
	heap := gc.New()
	_, ok := Compile(`
		class Greeter {
			init(name) { this.name = name; }
			greet() { return "hi " + this.name; }
		}
		var g = Greeter("world");
	`, heap)
	if !ok {
		t.Fatalf("expected successful compile of class with init/method")
	}
}

func TestCompileInheritanceAndSuper(t *testing.T) {
	heap := gc.New()
	_, ok := Compile(`
		class A { greet() { return "a"; } }
		class B < A { greet() { return super.greet() + "b"; } }
	`, heap)
	if !ok {
		t.Fatalf("expected successful compile of subclass with super call")
	}
}

func TestCompileSuperOutsideClassIsError(t *testing.T) {
	heap := gc.New()
	_, ok := Compile(`fun f() { return super.x(); }`, heap)
	if ok {
		t.Fatalf("expected compile error: super outside a class")
	}
}

func TestCompileSelfInheritanceIsError(t *testing.T) {
	heap := gc.New()
	_, ok := Compile(`class A < A {}`, heap)
	if ok {
		t.Fatalf("expected compile error: a class can't inherit from itself")
	}
}
