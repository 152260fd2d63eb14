// Package vm implements Ember's stack-based bytecode interpreter: the
// call-frame stack, the value stack, global variables, open-upvalue
// tracking, and the calling convention for closures, classes, bound
// methods and natives. Every call activation reserves its slot 0 for
// the callee or, for a method, its receiver; there is no argument
// shifting or partial application.
package vm

import (
	"fmt"
	"io"
	"os"

	"github.com/ember-lang/ember/internal/gc"
	"github.com/ember-lang/ember/internal/runctx"
	"github.com/ember-lang/ember/internal/value"
)

// MaxFrames is the fixed call-frame limit.
const MaxFrames = 64

// stackSize is sized for MaxFrames activations of up to 256 slots each.
const stackSize = MaxFrames * 256

// InterpretResult is the outcome of a top-level Interpret call.
type InterpretResult int

const (
	InterpretOK InterpretResult = iota
	InterpretCompileError
	InterpretRuntimeError
)

// VM is the explicit execution context: an ordinary struct rather
// than module-level globals, so nothing here is shared across
// concurrently running VMs.
type VM struct {
	stack []value.Value
	sp    int

	frames     [MaxFrames]CallFrame
	frameCount int

	globals map[*value.String]value.Value

	openUpvalues *value.Upvalue

	heap *gc.Heap

	// initString is the interned "init" string, cached once so class
	// initializer lookup never has to re-intern it.
	initString *value.String

	stdout io.Writer
	stderr io.Writer

	// RunID identifies this VM instance in diagnostic output (the
	// -gc-log CLI flag prefixes every collection line with it).
	RunID runctx.RunID

	// maxFrames enforces the call-frame ceiling; defaults to MaxFrames
	// but may be lowered by an internal/config.Config.
	maxFrames int
}

// New returns a VM backed by heap, with the clock() native already
// defined and itself (and, transitively, the compiler's chain, once
// registered) wired in as GC roots.
func New(heap *gc.Heap) *VM {
	return NewWithConfig(heap, MaxFrames)
}

// NewWithConfig is like New but enforces maxFrames (capped at the
// fixed MaxFrames array size) as the call-frame ceiling, as loaded
// from an internal/config.Config.
func NewWithConfig(heap *gc.Heap, maxFrames int) *VM {
	if maxFrames <= 0 || maxFrames > MaxFrames {
		maxFrames = MaxFrames
	}
	vm := &VM{
		stack:     make([]value.Value, stackSize),
		globals:   make(map[*value.String]value.Value),
		heap:      heap,
		stdout:    os.Stdout,
		stderr:    os.Stderr,
		RunID:     runctx.New(),
		maxFrames: maxFrames,
	}
	vm.initString = heap.AllocateString("init")
	heap.Register(vm)
	vm.defineNatives()
	return vm
}

// SetOutput redirects PRINT output, for embedding or test capture.
func (vm *VM) SetOutput(w io.Writer) { vm.stdout = w }

// SetErrorOutput redirects compile/runtime diagnostics.
func (vm *VM) SetErrorOutput(w io.Writer) { vm.stderr = w }

func (vm *VM) frame() *CallFrame { return &vm.frames[vm.frameCount-1] }

func (vm *VM) push(v value.Value) {
	vm.stack[vm.sp] = v
	vm.sp++
}

func (vm *VM) pop() value.Value {
	vm.sp--
	return vm.stack[vm.sp]
}

func (vm *VM) peek(distance int) value.Value {
	return vm.stack[vm.sp-1-distance]
}

func (vm *VM) resetStack() {
	vm.sp = 0
	vm.frameCount = 0
	vm.openUpvalues = nil
}

// Interpret compiles and runs source to completion.
func (vm *VM) Interpret(source string) InterpretResult {
	fn, ok := compileSource(source, vm.heap)
	if !ok {
		return InterpretCompileError
	}

	// fn stays on the stack while its closure is allocated, since that
	// allocation can trigger a collection.
	vm.push(value.FromObj(fn))
	closure := vm.heap.AllocateClosure(fn)
	vm.pop()
	vm.push(value.FromObj(closure))
	if err := vm.call(closure, 0); err != nil {
		vm.reportRuntimeError(err)
		vm.resetStack()
		return InterpretRuntimeError
	}

	if err := vm.run(); err != nil {
		vm.reportRuntimeError(err)
		vm.resetStack()
		return InterpretRuntimeError
	}
	return InterpretOK
}

func (vm *VM) runtimeError(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}
