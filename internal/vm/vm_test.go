package vm

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ember-lang/ember/internal/gc"
)

// run compiles and interprets source, capturing PRINT output and
// diagnostics, and returns both strings plus the outcome.
func run(t *testing.T, source string) (stdout, stderr string, result InterpretResult) {
	t.Helper()
	heap := gc.New()
	machine := New(heap)
	var out, errOut bytes.Buffer
	machine.SetOutput(&out)
	machine.SetErrorOutput(&errOut)
	result = machine.Interpret(source)
	return out.String(), errOut.String(), result
}

func TestInterpretArithmeticAndPrint(t *testing.T) {
	out, _, result := run(t, `print 1 + 2;`)
	if result != InterpretOK {
		t.Fatalf("result = %v, want InterpretOK", result)
	}
	if strings.TrimSpace(out) != "3" {
		t.Errorf("stdout = %q, want %q", out, "3")
	}
}

func TestInterpretStringConcatenation(t *testing.T) {
	out, _, result := run(t, `print "a" + "b";`)
	if result != InterpretOK {
		t.Fatalf("result = %v, want InterpretOK", result)
	}
	if strings.TrimSpace(out) != "ab" {
		t.Errorf("stdout = %q, want %q", out, "ab")
	}
}

func TestInterpretStringPlusNumberIsRuntimeError(t *testing.T) {
	_, errOut, result := run(t, `print "a" + 1;`)
	if result != InterpretRuntimeError {
		t.Fatalf("result = %v, want InterpretRuntimeError", result)
	}
	if !strings.Contains(errOut, "Operands must be two numbers or two strings.") {
		t.Errorf("stderr = %q, missing expected message", errOut)
	}
}

// TestInterpretThreeLineProgram exercises a sequence of three
// statements: a number print, a string-concatenation print, and a
// runtime type error on the third line.
func TestInterpretThreeLineProgram(t *testing.T) {
	source := "print 1 + 2;\n" +
		"print \"a\" + \"b\";\n" +
		"print \"a\" + 1;\n"
	out, errOut, result := run(t, source)
	if result != InterpretRuntimeError {
		t.Fatalf("result = %v, want InterpretRuntimeError", result)
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 || lines[0] != "3" || lines[1] != "ab" {
		t.Errorf("stdout lines = %v, want [3 ab]", lines)
	}
	if !strings.Contains(errOut, "[line 3]") {
		t.Errorf("stderr = %q, expected a [line 3] trace entry", errOut)
	}
}

func TestInterpretClosureCapturesUpvalue(t *testing.T) {
	out, _, result := run(t, `
		fun makeCounter() {
			var count = 0;
			fun increment() {
				count = count + 1;
				return count;
			}
			return increment;
		}
		var counter = makeCounter();
		print counter();
		print counter();
		print counter();
	`)
	if result != InterpretOK {
		t.Fatalf("result = %v, want InterpretOK", result)
	}
	want := "1\n2\n3\n"
	if out != want {
		t.Errorf("stdout = %q, want %q", out, want)
	}
}

func TestInterpretFieldShadowsMethod(t *testing.T) {
	out, _, result := run(t, `
		class Box {
			value() { return "method"; }
		}
		var b = Box();
		print b.value();
		b.value = "field";
		print b.value;
	`)
	if result != InterpretOK {
		t.Fatalf("result = %v, want InterpretOK, stdout=%q", result, out)
	}
	want := "method\nfield\n"
	if out != want {
		t.Errorf("stdout = %q, want %q", out, want)
	}
}

func TestInterpretInheritanceAndSuperDispatch(t *testing.T) {
	out, _, result := run(t, `
		class Animal {
			speak() { return "..."; }
		}
		class Dog < Animal {
			speak() { return super.speak() + " woof"; }
		}
		print Dog().speak();
	`)
	if result != InterpretOK {
		t.Fatalf("result = %v, want InterpretOK", result)
	}
	if strings.TrimSpace(out) != "... woof" {
		t.Errorf("stdout = %q, want %q", out, "... woof")
	}
}

func TestInterpretInitializerReturnsReceiver(t *testing.T) {
	out, _, result := run(t, `
		class Point {
			init(x, y) {
				this.x = x;
				this.y = y;
			}
		}
		var p = Point(1, 2);
		print p.x;
		print p.y;
	`)
	if result != InterpretOK {
		t.Fatalf("result = %v, want InterpretOK", result)
	}
	want := "1\n2\n"
	if out != want {
		t.Errorf("stdout = %q, want %q", out, want)
	}
}

func TestInterpretUndefinedVariableIsRuntimeError(t *testing.T) {
	_, errOut, result := run(t, `print undefinedThing;`)
	if result != InterpretRuntimeError {
		t.Fatalf("result = %v, want InterpretRuntimeError", result)
	}
	if !strings.Contains(errOut, "Undefined variable 'undefinedThing'.") {
		t.Errorf("stderr = %q, missing expected message", errOut)
	}
}

func TestInterpretCallArityMismatchIsRuntimeError(t *testing.T) {
	_, errOut, result := run(t, `
		fun f(a, b) { return a + b; }
		f(1);
	`)
	if result != InterpretRuntimeError {
		t.Fatalf("result = %v, want InterpretRuntimeError", result)
	}
	if !strings.Contains(errOut, "Expected 2 arguments but got 1.") {
		t.Errorf("stderr = %q, missing expected message", errOut)
	}
}

func TestInterpretGCStressSurvivesProgram(t *testing.T) {
	heap := gc.New()
	heap.SetStressGC(true)
	machine := New(heap)
	var out bytes.Buffer
	machine.SetOutput(&out)

	result := machine.Interpret(`
		fun makeCounter() {
			var count = 0;
			fun increment() {
				count = count + 1;
				return count;
			}
			return increment;
		}
		var counter = makeCounter();
		var i = 0;
		while (i < 20) {
			print counter();
			i = i + 1;
		}
	`)
	if result != InterpretOK {
		t.Fatalf("result = %v, want InterpretOK under GC stress", result)
	}
	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 20 {
		t.Fatalf("got %d lines of output, want 20", len(lines))
	}
	if lines[0] != "1" || lines[19] != "20" {
		t.Errorf("first/last lines = %q/%q, want 1/20", lines[0], lines[19])
	}
}
