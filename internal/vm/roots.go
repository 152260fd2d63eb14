package vm

import "github.com/ember-lang/ember/internal/value"

// AppendRoots and AppendRootObjs make VM a gc.RootProvider: every live
// stack slot and global value is a root, and so is every call frame's
// closure, every open upvalue, and the cached "init" string. Globals
// are deliberately included here — see the corresponding decision in
// DESIGN.md.
func (vm *VM) AppendRoots(roots []value.Value) []value.Value {
	for i := 0; i < vm.sp; i++ {
		roots = append(roots, vm.stack[i])
	}
	for _, v := range vm.globals {
		roots = append(roots, v)
	}
	return roots
}

func (vm *VM) AppendRootObjs(objs []value.Obj) []value.Obj {
	for i := 0; i < vm.frameCount; i++ {
		objs = append(objs, vm.frames[i].closure)
	}
	for uv := vm.openUpvalues; uv != nil; uv = uv.NextOpen {
		objs = append(objs, uv)
	}
	if vm.initString != nil {
		objs = append(objs, vm.initString)
	}
	return objs
}
