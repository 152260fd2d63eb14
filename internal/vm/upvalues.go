package vm

import "github.com/ember-lang/ember/internal/value"

// captureUpvalue walks the open-upvalue list (sorted by descending
// stack address), reusing an existing entry pointing at slot or
// inserting a new one in sorted position.
func (vm *VM) captureUpvalue(slot int) *value.Upvalue {
	var prev *value.Upvalue
	uv := vm.openUpvalues
	for uv != nil && uv.Location > slot {
		prev = uv
		uv = uv.NextOpen
	}
	if uv != nil && uv.Location == slot {
		return uv
	}

	created := vm.heap.AllocateUpvalue(slot)
	created.NextOpen = uv
	if prev == nil {
		vm.openUpvalues = created
	} else {
		prev.NextOpen = created
	}
	return created
}

// closeUpvalues closes every open upvalue at or above last, copying
// its slot's current value into the upvalue itself.
func (vm *VM) closeUpvalues(last int) {
	for vm.openUpvalues != nil && vm.openUpvalues.Location >= last {
		uv := vm.openUpvalues
		uv.Closed = vm.stack[uv.Location]
		uv.IsClosed = true
		vm.openUpvalues = uv.NextOpen
	}
}
