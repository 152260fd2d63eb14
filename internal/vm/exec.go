package vm

import (
	"fmt"

	"github.com/ember-lang/ember/internal/value"
)

func (vm *VM) readByte() byte {
	f := vm.frame()
	b := f.chunk().Read(f.ip)
	f.ip++
	return b
}

func (vm *VM) readShort() int {
	hi := vm.readByte()
	lo := vm.readByte()
	return int(hi)<<8 | int(lo)
}

func (vm *VM) readConstant() value.Value {
	return vm.frame().chunk().Constants[vm.readByte()]
}

func (vm *VM) readString() *value.String {
	return vm.readConstant().Obj.(*value.String)
}

// run is the main fetch-decode-execute loop. It returns nil on a
// normal OP_RETURN that unwinds the outermost (script) frame, or the
// first runtime error encountered.
func (vm *VM) run() error {
	for {
		op := value.OpCode(vm.readByte())
		switch op {
		case value.OpConstant:
			vm.push(vm.readConstant())

		case value.OpNil:
			vm.push(value.Nil())
		case value.OpTrue:
			vm.push(value.Bool_(true))
		case value.OpFalse:
			vm.push(value.Bool_(false))
		case value.OpPop:
			vm.pop()

		case value.OpGetLocal:
			slot := vm.frame().base + int(vm.readByte())
			vm.push(vm.stack[slot])
		case value.OpSetLocal:
			slot := vm.frame().base + int(vm.readByte())
			vm.stack[slot] = vm.peek(0)

		case value.OpGetGlobal:
			name := vm.readString()
			v, ok := vm.globals[name]
			if !ok {
				return vm.runtimeError("Undefined variable '%s'.", name.Chars)
			}
			vm.push(v)
		case value.OpDefineGlobal:
			name := vm.readString()
			vm.globals[name] = vm.peek(0)
			vm.pop()
		case value.OpSetGlobal:
			name := vm.readString()
			if _, ok := vm.globals[name]; !ok {
				return vm.runtimeError("Undefined variable '%s'.", name.Chars)
			}
			vm.globals[name] = vm.peek(0)

		case value.OpGetUpvalue:
			idx := vm.readByte()
			uv := vm.frame().closure.Upvalues[idx]
			if uv.IsClosed {
				vm.push(uv.Closed)
			} else {
				vm.push(vm.stack[uv.Location])
			}
		case value.OpSetUpvalue:
			idx := vm.readByte()
			uv := vm.frame().closure.Upvalues[idx]
			if uv.IsClosed {
				uv.Closed = vm.peek(0)
			} else {
				vm.stack[uv.Location] = vm.peek(0)
			}

		case value.OpGetProperty:
			if !vm.peek(0).IsObj() || value.ObjectType(vm.peek(0).Obj) != value.ObjTypeInstance {
				return vm.runtimeError("Only instances have properties.")
			}
			instance := vm.peek(0).Obj.(*value.Instance)
			name := vm.readString()
			if field, ok := instance.Fields[name]; ok {
				vm.pop()
				vm.push(field)
				break
			}
			if err := vm.bindMethod(instance.Class, name); err != nil {
				return err
			}
		case value.OpSetProperty:
			if !vm.peek(1).IsObj() || value.ObjectType(vm.peek(1).Obj) != value.ObjTypeInstance {
				return vm.runtimeError("Only instances have fields.")
			}
			instance := vm.peek(1).Obj.(*value.Instance)
			name := vm.readString()
			instance.Fields[name] = vm.peek(0)
			v := vm.pop()
			vm.pop()
			vm.push(v)
		case value.OpGetSuper:
			name := vm.readString()
			superclass := vm.pop().Obj.(*value.Class)
			if err := vm.bindMethod(superclass, name); err != nil {
				return err
			}

		case value.OpEqual:
			b := vm.pop()
			a := vm.pop()
			vm.push(value.Bool_(a.Equal(b)))
		case value.OpGreater, value.OpLess:
			if err := vm.comparisonOp(op); err != nil {
				return err
			}

		case value.OpAdd:
			if err := vm.addOp(); err != nil {
				return err
			}
		case value.OpSubtract, value.OpMultiply, value.OpDivide:
			if err := vm.numericOp(op); err != nil {
				return err
			}
		case value.OpNot:
			vm.push(value.Bool_(vm.pop().IsFalsey()))
		case value.OpNegate:
			if !vm.peek(0).IsNumber() {
				return vm.runtimeError("Operand must be a number.")
			}
			vm.push(value.Number(-vm.pop().Number))

		case value.OpPrint:
			fmt.Fprintln(vm.stdout, vm.pop().String())

		case value.OpJump:
			offset := vm.readShort()
			vm.frame().ip += offset
		case value.OpJumpIfFalse:
			offset := vm.readShort()
			if vm.peek(0).IsFalsey() {
				vm.frame().ip += offset
			}
		case value.OpLoop:
			offset := vm.readShort()
			vm.frame().ip -= offset

		case value.OpCall:
			argCount := int(vm.readByte())
			if err := vm.callValue(vm.peek(argCount), argCount); err != nil {
				return err
			}
		case value.OpInvoke:
			name := vm.readString()
			argCount := int(vm.readByte())
			if err := vm.invoke(name, argCount); err != nil {
				return err
			}
		case value.OpSuperInvoke:
			name := vm.readString()
			argCount := int(vm.readByte())
			superclass := vm.pop().Obj.(*value.Class)
			if err := vm.invokeFromClass(superclass, name, argCount); err != nil {
				return err
			}

		case value.OpClosure:
			fn := vm.readConstant().Obj.(*value.Function)
			closure := vm.heap.AllocateClosure(fn)
			vm.push(value.FromObj(closure))
			for i := 0; i < fn.UpvalueCount; i++ {
				isLocal := vm.readByte()
				index := vm.readByte()
				if isLocal != 0 {
					closure.Upvalues[i] = vm.captureUpvalue(vm.frame().base + int(index))
				} else {
					closure.Upvalues[i] = vm.frame().closure.Upvalues[index]
				}
			}
		case value.OpCloseUpvalue:
			vm.closeUpvalues(vm.sp - 1)
			vm.pop()

		case value.OpReturn:
			result := vm.pop()
			frame := vm.frame()
			vm.closeUpvalues(frame.base)
			vm.frameCount--
			if vm.frameCount == 0 {
				vm.pop()
				return nil
			}
			vm.sp = frame.base
			vm.push(result)

		case value.OpClass:
			vm.push(value.FromObj(vm.heap.AllocateClass(vm.readString())))
		case value.OpInherit:
			superVal := vm.peek(1)
			if !superVal.IsObj() || value.ObjectType(superVal.Obj) != value.ObjTypeClass {
				return vm.runtimeError("Superclass must be a class.")
			}
			superclass := superVal.Obj.(*value.Class)
			subclass := vm.peek(0).Obj.(*value.Class)
			for name, method := range superclass.Methods {
				subclass.Methods[name] = method
			}
			vm.pop()
		case value.OpMethod:
			vm.defineMethod(vm.readString())

		default:
			return vm.runtimeError("Unknown opcode %d.", byte(op))
		}
	}
}

func (vm *VM) defineMethod(name *value.String) {
	method := vm.pop().Obj.(*value.Closure)
	class := vm.peek(0).Obj.(*value.Class)
	class.Methods[name] = method
}

func (vm *VM) comparisonOp(op value.OpCode) error {
	if !vm.peek(0).IsNumber() || !vm.peek(1).IsNumber() {
		return vm.runtimeError("Operands must be numbers.")
	}
	b := vm.pop().Number
	a := vm.pop().Number
	if op == value.OpGreater {
		vm.push(value.Bool_(a > b))
	} else {
		vm.push(value.Bool_(a < b))
	}
	return nil
}

func (vm *VM) numericOp(op value.OpCode) error {
	if !vm.peek(0).IsNumber() || !vm.peek(1).IsNumber() {
		return vm.runtimeError("Operands must be numbers.")
	}
	b := vm.pop().Number
	a := vm.pop().Number
	switch op {
	case value.OpSubtract:
		vm.push(value.Number(a - b))
	case value.OpMultiply:
		vm.push(value.Number(a * b))
	case value.OpDivide:
		vm.push(value.Number(a / b))
	}
	return nil
}

func isStringValue(v value.Value) bool {
	return v.IsObj() && value.ObjectType(v.Obj) == value.ObjTypeString
}

// addOp accepts Number+Number or String+String.
func (vm *VM) addOp() error {
	if vm.peek(0).IsNumber() && vm.peek(1).IsNumber() {
		b := vm.pop().Number
		a := vm.pop().Number
		vm.push(value.Number(a + b))
		return nil
	}
	if isStringValue(vm.peek(0)) && isStringValue(vm.peek(1)) {
		// Operands are kept on the stack (not popped) while
		// AllocateString runs, since interning can itself trigger a
		// collection and both operands must stay reachable as roots.
		b := vm.peek(0).Obj.(*value.String)
		a := vm.peek(1).Obj.(*value.String)
		result := vm.heap.AllocateString(a.Chars + b.Chars)
		vm.pop()
		vm.pop()
		vm.push(value.FromObj(result))
		return nil
	}
	return vm.runtimeError("Operands must be two numbers or two strings.")
}
