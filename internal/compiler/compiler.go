// Package compiler implements Ember's single-pass Pratt compiler: it
// parses directly off the lexer's token stream and emits bytecode as
// it goes, with no intermediate AST. Each function being compiled
// gets its own Local/Upvalue table and links to its lexically
// enclosing compiler, forming a chain that unwinds one link per
// closed function.
package compiler

import (
	"fmt"
	"os"

	"github.com/ember-lang/ember/internal/gc"
	"github.com/ember-lang/ember/internal/lexer"
	"github.com/ember-lang/ember/internal/token"
	"github.com/ember-lang/ember/internal/value"
)

// maxLocals/maxUpvalues/maxArity bound the tables the spec requires to
// fit a single byte operand each; the constant-pool cap is
// value.MaxConstants, enforced by Chunk.AddConstant.
const (
	maxLocals    = 256
	maxUpvalues  = 256
	maxArity     = 255
)

// FunctionKind distinguishes the four contexts a nested compiler can
// be compiling for; it changes how "return" and the receiver binding
// behave.
type FunctionKind int

const (
	KindScript FunctionKind = iota
	KindFunction
	KindMethod
	KindInitializer
)

// local is one entry of a function compiler's locals table.
type local struct {
	name       string
	depth      int
	isCaptured bool
}

// upvalueInfo is one entry of a function compiler's upvalues table.
type upvalueInfo struct {
	index   int
	isLocal bool
}

// fnCompiler is per-function compiler state, pushed when a nested
// function begins and popped when it ends.
type fnCompiler struct {
	enclosing  *fnCompiler
	fn         *value.Function
	kind       FunctionKind
	locals     []local
	upvalues   []upvalueInfo
	scopeDepth int
}

// classCompiler is per-class compiler state, tracking whether the
// class currently being compiled has a superclass (so "super" resolves)
// and chaining to any enclosing class for nested class declarations.
type classCompiler struct {
	enclosing     *classCompiler
	hasSuperclass bool
}

// Compiler is the explicit compilation context: the lexer, the current
// and previous tokens, error/panic-mode state, the heap used to intern
// string constants, and the chain of nested per-function and per-class
// compiler state, held in an ordinary struct rather than module-global
// state, so "the current compiler" is simply c.fn and reentrant use
// needs no guarding.
type Compiler struct {
	lx      *lexer.Lexer
	heap    *gc.Heap
	current token.Token
	prev    token.Token

	hadError  bool
	panicMode bool

	fn    *fnCompiler
	class *classCompiler

	// stderr is where compile-time diagnostics are printed.
	stderr *os.File
}

// New returns a Compiler ready to compile source against heap (used to
// intern string literals and allocate Function objects).
func New(source string, heap *gc.Heap) *Compiler {
	c := &Compiler{lx: lexer.New(source), heap: heap, stderr: os.Stderr}
	c.advance()
	return c
}

// Compile compiles the whole source as a top-level script. It returns
// the script Function and true on success, or nil and false if any
// compile error was reported.
func Compile(source string, heap *gc.Heap) (*value.Function, bool) {
	c := New(source, heap)
	heap.Register(c)
	defer heap.Unregister(c)

	c.beginFunction(KindScript, "")

	for !c.match(token.EOF) {
		c.declaration()
	}

	fn := c.endFunction()
	return fn, !c.hadError
}

// beginFunction pushes a new per-function compiler frame. Slot 0 is
// reserved: empty name for scripts/plain functions, "ego" (the
// internal name for the receiver bound by the "this" keyword) for
// methods and initializers.
func (c *Compiler) beginFunction(kind FunctionKind, name string) {
	fn := c.heap.AllocateFunction()
	fc := &fnCompiler{enclosing: c.fn, fn: fn, kind: kind, scopeDepth: 0}
	slotName := ""
	if kind == KindMethod || kind == KindInitializer {
		slotName = "ego"
	}
	fc.locals = append(fc.locals, local{name: slotName, depth: 0})
	// Link fc into the chain before interning the name, so fn is a GC
	// root if that allocation triggers a collection.
	c.fn = fc
	if name != "" {
		fn.Name = c.heap.AllocateString(name)
	}
}

// endFunction emits the implicit return, pops the per-function frame,
// and returns the completed Function. Arity was already accumulated
// onto fn.Arity as parameters were parsed in function() (or left at 0
// for the top-level script, which never parses a parameter list).
func (c *Compiler) endFunction() *value.Function {
	c.emitReturn()
	fn := c.fn.fn
	fn.UpvalueCount = len(c.fn.upvalues)
	c.fn = c.fn.enclosing
	return fn
}

// ---- token stream plumbing ----

func (c *Compiler) advance() {
	c.prev = c.current
	for {
		c.current = c.lx.NextToken()
		if c.current.Type != token.Error {
			break
		}
		c.errorAtCurrent(c.current.Lexeme)
	}
}

func (c *Compiler) check(t token.Type) bool { return c.current.Type == t }

func (c *Compiler) match(t token.Type) bool {
	if !c.check(t) {
		return false
	}
	c.advance()
	return true
}

func (c *Compiler) consume(t token.Type, msg string) {
	if c.current.Type == t {
		c.advance()
		return
	}
	c.errorAtCurrent(msg)
}

// ---- error reporting: panic-mode synchronization ----

func (c *Compiler) errorAtCurrent(msg string) { c.errorAt(c.current, msg) }
func (c *Compiler) error(msg string)          { c.errorAt(c.prev, msg) }

func (c *Compiler) errorAt(t token.Token, msg string) {
	if c.panicMode {
		return
	}
	c.panicMode = true
	c.hadError = true

	where := "at '" + t.Lexeme + "'"
	switch t.Type {
	case token.EOF:
		where = "at end"
	case token.Error:
		where = "at error"
	}
	fmt.Fprintf(c.stderr, "[line %d] Error %s: %s\n", t.Line, where, msg)
}

// synchronize discards tokens until a likely statement boundary, so a
// single error doesn't cascade into a flood of spurious ones.
func (c *Compiler) synchronize() {
	c.panicMode = false
	for c.current.Type != token.EOF {
		if c.prev.Type == token.Semicolon {
			return
		}
		switch c.current.Type {
		case token.Class, token.Fun, token.Var, token.For,
			token.If, token.While, token.Print, token.Return:
			return
		}
		c.advance()
	}
}
