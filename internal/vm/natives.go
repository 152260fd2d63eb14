package vm

import (
	"time"

	"github.com/ember-lang/ember/internal/value"
)

// defineNatives installs the one built-in the language exposes:
// clock(), returning the current time in seconds as a float.
func (vm *VM) defineNatives() {
	vm.defineNative("clock", func(args []value.Value) (value.Value, error) {
		return value.Number(float64(time.Now().UnixNano()) / 1e9), nil
	})
}

func (vm *VM) defineNative(name string, fn value.NativeFn) {
	// Both objects stay on the stack until the globals table holds
	// them, since each allocation can trigger a collection.
	nameStr := vm.heap.AllocateString(name)
	vm.push(value.FromObj(nameStr))
	native := vm.heap.AllocateNative(name, fn)
	vm.push(value.FromObj(native))
	vm.globals[nameStr] = value.FromObj(native)
	vm.pop()
	vm.pop()
}
