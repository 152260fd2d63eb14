package compiler

import "github.com/ember-lang/ember/internal/value"

func (c *Compiler) currentChunk() *value.Chunk { return c.fn.fn.Chunk }

func (c *Compiler) emitByte(b byte) {
	c.currentChunk().Write(b, c.prev.Line)
}

func (c *Compiler) emitOp(op value.OpCode) {
	c.currentChunk().WriteOp(op, c.prev.Line)
}

func (c *Compiler) emitOpByte(op value.OpCode, operand byte) {
	c.emitOp(op)
	c.emitByte(operand)
}

func (c *Compiler) emitOps(a, b value.OpCode) {
	c.emitOp(a)
	c.emitOp(b)
}

// emitConstant adds v to the current chunk's constant pool and emits
// OP_CONSTANT for it. Too many constants in one chunk is a compile
// error.
func (c *Compiler) emitConstant(v value.Value) {
	idx := c.makeConstant(v)
	c.emitOpByte(value.OpConstant, idx)
}

func (c *Compiler) makeConstant(v value.Value) byte {
	idx, err := c.currentChunk().AddConstant(v)
	if err != nil {
		c.error("Too many constants in one chunk.")
		return 0
	}
	return byte(idx)
}

// identifierConstant adds name as a string constant (used for every
// global/property/method name reference) and returns its index.
func (c *Compiler) identifierConstant(name string) byte {
	return c.makeConstant(value.FromObj(c.heap.AllocateString(name)))
}

// emitJump emits a jump opcode with a placeholder 16-bit operand and
// returns the offset of that operand, to be backpatched later.
func (c *Compiler) emitJump(op value.OpCode) int {
	c.emitOp(op)
	c.emitByte(0xff)
	c.emitByte(0xff)
	return c.currentChunk().Len() - 2
}

// patchJump backpatches the jump reserved at offset to land at the
// chunk's current end.
func (c *Compiler) patchJump(offset int) {
	if err := c.currentChunk().PatchJump(offset); err != nil {
		c.error("Too much code to jump over.")
	}
}

// emitLoop emits OP_LOOP with the backward distance to loopStart.
func (c *Compiler) emitLoop(loopStart int) {
	c.emitOp(value.OpLoop)
	offset := c.currentChunk().Len() - loopStart + 2
	if offset > 0xFFFF {
		c.error("Loop body too large.")
	}
	c.emitByte(byte((offset >> 8) & 0xFF))
	c.emitByte(byte(offset & 0xFF))
}

// emitReturn emits the implicit return every function gets if control
// falls off the end of its body: the receiver for initializers, nil
// otherwise.
func (c *Compiler) emitReturn() {
	if c.fn.kind == KindInitializer {
		c.emitOpByte(value.OpGetLocal, 0)
	} else {
		c.emitOp(value.OpNil)
	}
	c.emitOp(value.OpReturn)
}
