package vm

import "github.com/ember-lang/ember/internal/value"

// callValue implements the CALL calling convention: the callee sits
// at stack_top-argCount-1 with its arguments above it.
func (vm *VM) callValue(callee value.Value, argCount int) error {
	if callee.IsObj() {
		switch value.ObjectType(callee.Obj) {
		case value.ObjTypeClosure:
			return vm.call(callee.Obj.(*value.Closure), argCount)
		case value.ObjTypeNative:
			return vm.callNative(callee.Obj.(*value.Native), argCount)
		case value.ObjTypeClass:
			return vm.callClass(callee.Obj.(*value.Class), argCount)
		case value.ObjTypeBoundMethod:
			return vm.callBoundMethod(callee.Obj.(*value.BoundMethod), argCount)
		}
	}
	return vm.runtimeError("Can only call functions and classes.")
}

// call pushes a new frame for closure, requiring an exact arity match
// and enforcing the frame-count ceiling.
func (vm *VM) call(closure *value.Closure, argCount int) error {
	fn := closure.Function
	if argCount != fn.Arity {
		return vm.runtimeError("Expected %d arguments but got %d.", fn.Arity, argCount)
	}
	if vm.frameCount == vm.maxFrames {
		return vm.runtimeError("Stack overflow.")
	}

	frame := &vm.frames[vm.frameCount]
	frame.closure = closure
	frame.ip = 0
	frame.base = vm.sp - argCount - 1
	vm.frameCount++
	return nil
}

func (vm *VM) callNative(native *value.Native, argCount int) error {
	args := vm.stack[vm.sp-argCount : vm.sp]
	result, err := native.Fn(args)
	if err != nil {
		return err
	}
	vm.sp -= argCount + 1
	vm.push(result)
	return nil
}

// callClass replaces the callee slot with a fresh Instance, then, if
// the class defines "init", dispatches to it with the same argCount;
// otherwise argCount must be zero.
func (vm *VM) callClass(class *value.Class, argCount int) error {
	instance := vm.heap.AllocateInstance(class)
	vm.stack[vm.sp-argCount-1] = value.FromObj(instance)

	if init, ok := class.Methods[vm.initString]; ok {
		return vm.call(init, argCount)
	}
	if argCount != 0 {
		return vm.runtimeError("Expected 0 arguments but got %d.", argCount)
	}
	return nil
}

func (vm *VM) callBoundMethod(bound *value.BoundMethod, argCount int) error {
	vm.stack[vm.sp-argCount-1] = bound.Receiver
	return vm.call(bound.Method, argCount)
}

// invoke fuses GET_PROPERTY+CALL: the receiver at stack_top-argCount-1
// must be an Instance. A same-named field shadows a method.
func (vm *VM) invoke(name *value.String, argCount int) error {
	receiver := vm.peek(argCount)
	if !receiver.IsObj() || value.ObjectType(receiver.Obj) != value.ObjTypeInstance {
		return vm.runtimeError("Only instances have methods.")
	}
	instance := receiver.Obj.(*value.Instance)

	if field, ok := instance.Fields[name]; ok {
		vm.stack[vm.sp-argCount-1] = field
		return vm.callValue(field, argCount)
	}

	method, ok := instance.Class.Methods[name]
	if !ok {
		return vm.runtimeError("Undefined property '%s'.", name.Chars)
	}
	return vm.call(method, argCount)
}

// invokeFromClass looks up name directly in class's method table,
// skipping instance field/fields lookup, for SUPER_INVOKE.
func (vm *VM) invokeFromClass(class *value.Class, name *value.String, argCount int) error {
	method, ok := class.Methods[name]
	if !ok {
		return vm.runtimeError("Undefined property '%s'.", name.Chars)
	}
	return vm.call(method, argCount)
}

// bindMethod looks up name in class's method table and, if found,
// pops the receiver already on top of the stack and pushes a fresh
// BoundMethod pairing it with the closure.
func (vm *VM) bindMethod(class *value.Class, name *value.String) error {
	method, ok := class.Methods[name]
	if !ok {
		return vm.runtimeError("Undefined property '%s'.", name.Chars)
	}
	bound := vm.heap.AllocateBoundMethod(vm.peek(0), method)
	vm.pop()
	vm.push(value.FromObj(bound))
	return nil
}
