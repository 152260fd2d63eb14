package vm

import "github.com/ember-lang/ember/internal/gc"

// Heap exposes the VM's heap so the CLI can toggle -gc-stress/-gc-log
// and (for -dump) compile without running.
func (vm *VM) Heap() *gc.Heap { return vm.heap }
