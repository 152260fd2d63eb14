package vm

import "fmt"

// reportRuntimeError prints err's message followed by a stack trace,
// one line per frame from innermost to outermost, formatted as
// "[line L] in name()" or "[line L] in script" for the top-level
// activation. The frame stack is still fully intact at this point
// since run() returns the error without unwinding.
func (vm *VM) reportRuntimeError(err error) {
	fmt.Fprintln(vm.stderr, err.Error())

	for i := vm.frameCount - 1; i >= 0; i-- {
		frame := &vm.frames[i]
		fn := frame.closure.Function
		line := frame.chunk().LineOf(frame.ip - 1)
		if fn.Name == nil {
			fmt.Fprintf(vm.stderr, "[line %d] in script\n", line)
		} else {
			fmt.Fprintf(vm.stderr, "[line %d] in %s()\n", line, fn.Name.Chars)
		}
	}
}
