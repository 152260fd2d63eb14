package compiler

import (
	"github.com/ember-lang/ember/internal/token"
	"github.com/ember-lang/ember/internal/value"
)

func (c *Compiler) declaration() {
	switch {
	case c.match(token.Class):
		c.classDeclaration()
	case c.match(token.Fun):
		c.funDeclaration()
	case c.match(token.Var):
		c.varDeclaration()
	default:
		c.statement()
	}
	if c.panicMode {
		c.synchronize()
	}
}

// classDeclaration compiles "class Name { ... }" and the optional
// "class Name < Super { ... }" form. Each method becomes its own
// nested function compiled with KindMethod (or KindInitializer for
// "init"), then attached to the class object at runtime via
// OP_METHOD.
func (c *Compiler) classDeclaration() {
	c.consume(token.Identifier, "Expect class name.")
	className := c.prev.Lexeme
	nameConstant := c.identifierConstant(className)
	c.declareVariable(className)

	c.emitOpByte(value.OpClass, nameConstant)
	c.defineVariable(nameConstant)

	cc := &classCompiler{enclosing: c.class, hasSuperclass: false}
	c.class = cc

	if c.match(token.Less) {
		c.consume(token.Identifier, "Expect superclass name.")
		c.variable(false)
		if c.prev.Lexeme == className {
			c.error("A class can't inherit from itself.")
		}

		c.beginScope()
		c.addLocal("super")
		c.defineVariable(0)

		c.namedVariable(className, false)
		c.emitOp(value.OpInherit)
		cc.hasSuperclass = true
	}

	c.namedVariable(className, false)
	c.consume(token.LeftBrace, "Expect '{' before class body.")
	for !c.check(token.RightBrace) && !c.check(token.EOF) {
		c.method()
	}
	c.consume(token.RightBrace, "Expect '}' after class body.")
	c.emitOp(value.OpPop)

	if cc.hasSuperclass {
		c.endScope()
	}
	c.class = cc.enclosing
}

func (c *Compiler) method() {
	c.consume(token.Identifier, "Expect method name.")
	name := c.prev.Lexeme
	nameConstant := c.identifierConstant(name)

	kind := KindMethod
	if name == "init" {
		kind = KindInitializer
	}
	c.function(kind, name)
	c.emitOpByte(value.OpMethod, nameConstant)
}

func (c *Compiler) funDeclaration() {
	global := c.parseVariable("Expect function name.")
	c.markInitialized()
	c.function(KindFunction, c.prev.Lexeme)
	c.defineVariable(global)
}

// function compiles a parameter list and body into a fresh nested
// fnCompiler, wraps the result in OP_CLOSURE with its upvalue capture
// descriptors, and leaves the closure value on the stack.
func (c *Compiler) function(kind FunctionKind, name string) {
	c.beginFunction(kind, name)
	c.beginScope()

	c.consume(token.LeftParen, "Expect '(' after function name.")
	if !c.check(token.RightParen) {
		for {
			c.fn.fn.Arity++
			if c.fn.fn.Arity > maxArity {
				c.error("Can't have more than 255 parameters.")
			}
			paramConstant := c.parseVariable("Expect parameter name.")
			c.defineVariable(paramConstant)
			if !c.match(token.Comma) {
				break
			}
		}
	}
	c.consume(token.RightParen, "Expect ')' after parameters.")
	c.consume(token.LeftBrace, "Expect '{' before function body.")
	c.block()

	upvalues := c.fn.upvalues
	fn := c.endFunction()

	c.emitOpByte(value.OpClosure, c.makeConstant(value.FromObj(fn)))
	for _, uv := range upvalues {
		if uv.isLocal {
			c.emitByte(1)
		} else {
			c.emitByte(0)
		}
		c.emitByte(byte(uv.index))
	}
}

func (c *Compiler) varDeclaration() {
	global := c.parseVariable("Expect variable name.")

	if c.match(token.Equal) {
		c.expression()
	} else {
		c.emitOp(value.OpNil)
	}
	c.consume(token.Semicolon, "Expect ';' after variable declaration.")
	c.defineVariable(global)
}

func (c *Compiler) statement() {
	switch {
	case c.match(token.Print):
		c.printStatement()
	case c.match(token.If):
		c.ifStatement()
	case c.match(token.While):
		c.whileStatement()
	case c.match(token.For):
		c.forStatement()
	case c.match(token.Return):
		c.returnStatement()
	case c.match(token.LeftBrace):
		c.beginScope()
		c.block()
		c.endScope()
	default:
		c.expressionStatement()
	}
}

func (c *Compiler) block() {
	for !c.check(token.RightBrace) && !c.check(token.EOF) {
		c.declaration()
	}
	c.consume(token.RightBrace, "Expect '}' after block.")
}

func (c *Compiler) printStatement() {
	c.expression()
	c.consume(token.Semicolon, "Expect ';' after value.")
	c.emitOp(value.OpPrint)
}

func (c *Compiler) expressionStatement() {
	c.expression()
	c.consume(token.Semicolon, "Expect ';' after expression.")
	c.emitOp(value.OpPop)
}

func (c *Compiler) ifStatement() {
	c.consume(token.LeftParen, "Expect '(' after 'if'.")
	c.expression()
	c.consume(token.RightParen, "Expect ')' after condition.")

	thenJump := c.emitJump(value.OpJumpIfFalse)
	c.emitOp(value.OpPop)
	c.statement()

	elseJump := c.emitJump(value.OpJump)
	c.patchJump(thenJump)
	c.emitOp(value.OpPop)

	if c.match(token.Else) {
		c.statement()
	}
	c.patchJump(elseJump)
}

func (c *Compiler) whileStatement() {
	loopStart := c.currentChunk().Len()
	c.consume(token.LeftParen, "Expect '(' after 'while'.")
	c.expression()
	c.consume(token.RightParen, "Expect ')' after condition.")

	exitJump := c.emitJump(value.OpJumpIfFalse)
	c.emitOp(value.OpPop)
	c.statement()
	c.emitLoop(loopStart)

	c.patchJump(exitJump)
	c.emitOp(value.OpPop)
}

// forStatement desugars into an equivalent while loop: the initializer
// runs once in its own scope, the condition gates a jump out, the body
// runs, and the increment is compiled after the body but reached on
// every iteration via an extra forward/backward jump pair.
func (c *Compiler) forStatement() {
	c.beginScope()
	c.consume(token.LeftParen, "Expect '(' after 'for'.")

	switch {
	case c.match(token.Semicolon):
		// no initializer
	case c.match(token.Var):
		c.varDeclaration()
	default:
		c.expressionStatement()
	}

	loopStart := c.currentChunk().Len()
	exitJump := -1
	if !c.match(token.Semicolon) {
		c.expression()
		c.consume(token.Semicolon, "Expect ';' after loop condition.")
		exitJump = c.emitJump(value.OpJumpIfFalse)
		c.emitOp(value.OpPop)
	}

	if !c.match(token.RightParen) {
		bodyJump := c.emitJump(value.OpJump)
		incrementStart := c.currentChunk().Len()
		c.expression()
		c.emitOp(value.OpPop)
		c.consume(token.RightParen, "Expect ')' after for clauses.")

		c.emitLoop(loopStart)
		loopStart = incrementStart
		c.patchJump(bodyJump)
	}

	c.statement()
	c.emitLoop(loopStart)

	if exitJump != -1 {
		c.patchJump(exitJump)
		c.emitOp(value.OpPop)
	}
	c.endScope()
}

func (c *Compiler) returnStatement() {
	if c.fn.kind == KindScript {
		c.error("Can't return from top-level code.")
	}
	if c.match(token.Semicolon) {
		c.emitReturn()
		return
	}
	if c.fn.kind == KindInitializer {
		c.error("Can't return a value from an initializer.")
	}
	c.expression()
	c.consume(token.Semicolon, "Expect ';' after return value.")
	c.emitOp(value.OpReturn)
}
