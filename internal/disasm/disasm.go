// Package disasm renders a Chunk's bytecode as human-readable text,
// one instruction per line, for the -dump CLI flag: a two-column
// offset|line layout with a per-instruction-shape helper per operand
// kind (none, byte, one-byte constant index, 16-bit jump target,
// invoke's name+argcount pair, closure's trailing upvalue descriptors).
package disasm

import (
	"fmt"
	"strings"

	"github.com/ember-lang/ember/internal/value"
)

// Disassemble returns name's header followed by every instruction in
// chunk.
func Disassemble(chunk *value.Chunk, name string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "== %s ==\n", name)
	offset := 0
	for offset < chunk.Len() {
		offset = instruction(&sb, chunk, offset)
	}
	return sb.String()
}

func instruction(sb *strings.Builder, chunk *value.Chunk, offset int) int {
	fmt.Fprintf(sb, "%04d ", offset)
	if offset > 0 && chunk.LineOf(offset) == chunk.LineOf(offset-1) {
		sb.WriteString("   | ")
	} else {
		fmt.Fprintf(sb, "%4d ", chunk.LineOf(offset))
	}

	op := value.OpCode(chunk.Read(offset))
	switch op {
	case value.OpConstant:
		return constantInstruction(sb, op.String(), chunk, offset)
	case value.OpNil, value.OpTrue, value.OpFalse, value.OpPop,
		value.OpEqual, value.OpGreater, value.OpLess,
		value.OpAdd, value.OpSubtract, value.OpMultiply, value.OpDivide,
		value.OpNot, value.OpNegate, value.OpPrint, value.OpCloseUpvalue,
		value.OpReturn, value.OpInherit:
		return simpleInstruction(sb, op.String(), offset)
	case value.OpGetLocal, value.OpSetLocal, value.OpGetUpvalue, value.OpSetUpvalue,
		value.OpCall:
		return byteInstruction(sb, op.String(), chunk, offset)
	case value.OpGetGlobal, value.OpDefineGlobal, value.OpSetGlobal,
		value.OpGetProperty, value.OpSetProperty, value.OpGetSuper,
		value.OpClass, value.OpMethod:
		return constantInstruction(sb, op.String(), chunk, offset)
	case value.OpJump, value.OpJumpIfFalse:
		return jumpInstruction(sb, op.String(), 1, chunk, offset)
	case value.OpLoop:
		return jumpInstruction(sb, op.String(), -1, chunk, offset)
	case value.OpInvoke, value.OpSuperInvoke:
		return invokeInstruction(sb, op.String(), chunk, offset)
	case value.OpClosure:
		return closureInstruction(sb, chunk, offset)
	default:
		fmt.Fprintf(sb, "Unknown opcode %d\n", op)
		return offset + 1
	}
}

func simpleInstruction(sb *strings.Builder, name string, offset int) int {
	fmt.Fprintf(sb, "%s\n", name)
	return offset + 1
}

func byteInstruction(sb *strings.Builder, name string, chunk *value.Chunk, offset int) int {
	slot := chunk.Read(offset + 1)
	fmt.Fprintf(sb, "%-16s %4d\n", name, slot)
	return offset + 2
}

func constantInstruction(sb *strings.Builder, name string, chunk *value.Chunk, offset int) int {
	idx := chunk.Read(offset + 1)
	if int(idx) < len(chunk.Constants) {
		fmt.Fprintf(sb, "%-16s %4d '%s'\n", name, idx, chunk.Constants[idx].String())
	} else {
		fmt.Fprintf(sb, "%-16s %4d (invalid)\n", name, idx)
	}
	return offset + 2
}

func jumpInstruction(sb *strings.Builder, name string, sign int, chunk *value.Chunk, offset int) int {
	jump := int(chunk.Read(offset+1))<<8 | int(chunk.Read(offset+2))
	target := offset + 3 + sign*jump
	fmt.Fprintf(sb, "%-16s %4d -> %d\n", name, jump, target)
	return offset + 3
}

func invokeInstruction(sb *strings.Builder, name string, chunk *value.Chunk, offset int) int {
	nameIdx := chunk.Read(offset + 1)
	argCount := chunk.Read(offset + 2)
	constant := "(invalid)"
	if int(nameIdx) < len(chunk.Constants) {
		constant = chunk.Constants[nameIdx].String()
	}
	fmt.Fprintf(sb, "%-16s (%d args) %4d '%s'\n", name, argCount, nameIdx, constant)
	return offset + 3
}

func closureInstruction(sb *strings.Builder, chunk *value.Chunk, offset int) int {
	idx := chunk.Read(offset + 1)
	pos := offset + 2
	fmt.Fprintf(sb, "%-16s %4d '%s'\n", value.OpClosure.String(), idx, chunk.Constants[idx].String())

	if int(idx) < len(chunk.Constants) {
		if fn, ok := chunk.Constants[idx].Obj.(*value.Function); ok {
			for i := 0; i < fn.UpvalueCount; i++ {
				isLocal := chunk.Read(pos)
				index := chunk.Read(pos + 1)
				kind := "upvalue"
				if isLocal != 0 {
					kind = "local"
				}
				fmt.Fprintf(sb, "%04d      |                     %s %d\n", pos, kind, index)
				pos += 2
			}
		}
	}
	return pos
}
