package compiler

import (
	"github.com/ember-lang/ember/internal/token"
	"github.com/ember-lang/ember/internal/value"
)

func (c *Compiler) beginScope() { c.fn.scopeDepth++ }

// endScope pops every local declared in the scope just left. Captured
// locals are hoisted to the heap with OP_CLOSE_UPVALUE; the rest are
// simply popped.
func (c *Compiler) endScope() {
	c.fn.scopeDepth--
	locals := c.fn.locals
	for len(locals) > 0 && locals[len(locals)-1].depth > c.fn.scopeDepth {
		if locals[len(locals)-1].isCaptured {
			c.emitOp(value.OpCloseUpvalue)
		} else {
			c.emitOp(value.OpPop)
		}
		locals = locals[:len(locals)-1]
	}
	c.fn.locals = locals
}

// declareVariable adds name to the current scope's locals table at
// global scope this is a no-op (globals are resolved by name, not
// slot). Declaring a name already present in the same innermost scope
// is a compile error.
func (c *Compiler) declareVariable(name string) {
	if c.fn.scopeDepth == 0 {
		return
	}
	for i := len(c.fn.locals) - 1; i >= 0; i-- {
		l := c.fn.locals[i]
		if l.depth != -1 && l.depth < c.fn.scopeDepth {
			break
		}
		if l.name == name {
			c.error("Already a variable with this name in this scope.")
		}
	}
	c.addLocal(name)
}

func (c *Compiler) addLocal(name string) {
	if len(c.fn.locals) >= maxLocals {
		c.error("Too many local variables in function.")
		return
	}
	c.fn.locals = append(c.fn.locals, local{name: name, depth: -1})
}

// markInitialized sets the most recently declared local's depth to the
// current scope, completing the declare/define two-step for locals. At
// global scope there is no local to mark; DEFINE_GLOBAL covers both
// steps instead.
func (c *Compiler) markInitialized() {
	if c.fn.scopeDepth == 0 {
		return
	}
	c.fn.locals[len(c.fn.locals)-1].depth = c.fn.scopeDepth
}

// resolveLocal searches fc's locals from newest to oldest. Returns -1
// if not found. A match whose depth is still -1 means the variable is
// being read from within its own initializer, a compile error.
func (c *Compiler) resolveLocal(fc *fnCompiler, name string) int {
	for i := len(fc.locals) - 1; i >= 0; i-- {
		if fc.locals[i].name == name {
			if fc.locals[i].depth == -1 {
				c.error("Can't read local variable in its own initializer.")
			}
			return i
		}
	}
	return -1
}

// resolveUpvalue recursively resolves name in enclosing functions,
// capturing a local (marking it isCaptured) or re-exporting an
// upvalue found further up the chain. Allocation dedupes by
// (index, isLocal). Returns -1 if name is not found in any enclosing
// function (meaning it should be treated as a global).
func (c *Compiler) resolveUpvalue(fc *fnCompiler, name string) int {
	if fc.enclosing == nil {
		return -1
	}
	if local := c.resolveLocal(fc.enclosing, name); local != -1 {
		fc.enclosing.locals[local].isCaptured = true
		return c.addUpvalue(fc, local, true)
	}
	if up := c.resolveUpvalue(fc.enclosing, name); up != -1 {
		return c.addUpvalue(fc, up, false)
	}
	return -1
}

func (c *Compiler) addUpvalue(fc *fnCompiler, index int, isLocal bool) int {
	for i, uv := range fc.upvalues {
		if uv.index == index && uv.isLocal == isLocal {
			return i
		}
	}
	if len(fc.upvalues) >= maxUpvalues {
		c.error("Too many closure variables in function.")
		return 0
	}
	fc.upvalues = append(fc.upvalues, upvalueInfo{index: index, isLocal: isLocal})
	return len(fc.upvalues) - 1
}

// parseVariable consumes an identifier, declares it, and returns the
// constant-pool index of its name (used only for globals; locals carry
// no dedicated opcode operand here).
func (c *Compiler) parseVariable(errMsg string) byte {
	c.consume(token.Identifier, errMsg)
	name := c.prev.Lexeme
	c.declareVariable(name)
	if c.fn.scopeDepth > 0 {
		return 0
	}
	return c.identifierConstant(name)
}

// defineVariable completes the declare/define two-step: at global
// scope it emits DEFINE_GLOBAL; for a local, the initializer's value
// simply remains on the stack and the local's depth is finalized.
func (c *Compiler) defineVariable(global byte) {
	if c.fn.scopeDepth > 0 {
		c.markInitialized()
		return
	}
	c.emitOpByte(value.OpDefineGlobal, global)
}
