package vm

import "github.com/ember-lang/ember/internal/value"

// CallFrame is a single ongoing call activation: the closure being
// executed, an instruction pointer into that closure's function's
// chunk, and a base pointer into the shared value stack marking slot
// 0 of this activation (the callee or receiver).
type CallFrame struct {
	closure *value.Closure
	ip      int
	base    int
}

func (f *CallFrame) chunk() *value.Chunk { return f.closure.Function.Chunk }
