package compiler

import (
	"strconv"

	"github.com/ember-lang/ember/internal/token"
	"github.com/ember-lang/ember/internal/value"
)

func (c *Compiler) number(canAssign bool) {
	n, err := strconv.ParseFloat(c.prev.Lexeme, 64)
	if err != nil {
		c.error("Invalid number literal.")
		return
	}
	c.emitConstant(value.Number(n))
}

// stringLiteral strips the surrounding quotes the lexer leaves in the
// lexeme and interns the remainder.
func (c *Compiler) stringLiteral(canAssign bool) {
	raw := c.prev.Lexeme
	chars := raw[1 : len(raw)-1]
	c.emitConstant(value.FromObj(c.heap.AllocateString(chars)))
}

func (c *Compiler) literal(canAssign bool) {
	switch c.prev.Type {
	case token.False:
		c.emitOp(value.OpFalse)
	case token.Nil:
		c.emitOp(value.OpNil)
	case token.True:
		c.emitOp(value.OpTrue)
	}
}

func (c *Compiler) grouping(canAssign bool) {
	c.expression()
	c.consume(token.RightParen, "Expect ')' after expression.")
}

func (c *Compiler) unary(canAssign bool) {
	opType := c.prev.Type
	c.parsePrecedence(PrecUnary)
	switch opType {
	case token.Bang:
		c.emitOp(value.OpNot)
	case token.Minus:
		c.emitOp(value.OpNegate)
	}
}

func (c *Compiler) binary(canAssign bool) {
	opType := c.prev.Type
	r := getRule(opType)
	c.parsePrecedence(r.precedence + 1)

	switch opType {
	case token.BangEqual:
		c.emitOps(value.OpEqual, value.OpNot)
	case token.EqualEqual:
		c.emitOp(value.OpEqual)
	case token.Greater:
		c.emitOp(value.OpGreater)
	case token.GreaterEqual:
		c.emitOps(value.OpLess, value.OpNot)
	case token.Less:
		c.emitOp(value.OpLess)
	case token.LessEqual:
		c.emitOps(value.OpGreater, value.OpNot)
	case token.Plus:
		c.emitOp(value.OpAdd)
	case token.Minus:
		c.emitOp(value.OpSubtract)
	case token.Star:
		c.emitOp(value.OpMultiply)
	case token.Slash:
		c.emitOp(value.OpDivide)
	}
}

// and_ short-circuits: if the left operand is falsey, skip the right
// operand entirely, leaving the falsey value as the result.
func (c *Compiler) and_(canAssign bool) {
	endJump := c.emitJump(value.OpJumpIfFalse)
	c.emitOp(value.OpPop)
	c.parsePrecedence(PrecAnd)
	c.patchJump(endJump)
}

// or_ short-circuits the opposite way: a truthy left operand skips the
// right operand.
func (c *Compiler) or_(canAssign bool) {
	elseJump := c.emitJump(value.OpJumpIfFalse)
	endJump := c.emitJump(value.OpJump)
	c.patchJump(elseJump)
	c.emitOp(value.OpPop)
	c.parsePrecedence(PrecOr)
	c.patchJump(endJump)
}

func (c *Compiler) call(canAssign bool) {
	argCount := c.argumentList()
	c.emitOpByte(value.OpCall, argCount)
}

func (c *Compiler) argumentList() byte {
	count := 0
	if !c.check(token.RightParen) {
		for {
			c.expression()
			if count == 255 {
				c.error("Can't have more than 255 arguments.")
			}
			count++
			if !c.match(token.Comma) {
				break
			}
		}
	}
	c.consume(token.RightParen, "Expect ')' after arguments.")
	return byte(count)
}

// dot compiles a property access, fusing a trailing call into a single
// OP_INVOKE to avoid materializing the bound method.
func (c *Compiler) dot(canAssign bool) {
	c.consume(token.Identifier, "Expect property name after '.'.")
	name := c.identifierConstant(c.prev.Lexeme)

	switch {
	case canAssign && c.match(token.Equal):
		c.expression()
		c.emitOpByte(value.OpSetProperty, name)
	case c.match(token.LeftParen):
		argCount := c.argumentList()
		c.emitOpByte(value.OpInvoke, name)
		c.emitByte(argCount)
	default:
		c.emitOpByte(value.OpGetProperty, name)
	}
}

// variable compiles a bare identifier reference, resolving it as a
// local, then an upvalue, then falling back to a global.
func (c *Compiler) variable(canAssign bool) {
	c.namedVariable(c.prev.Lexeme, canAssign)
}

func (c *Compiler) namedVariable(name string, canAssign bool) {
	var getOp, setOp value.OpCode
	arg := c.resolveLocal(c.fn, name)
	if arg != -1 {
		getOp, setOp = value.OpGetLocal, value.OpSetLocal
	} else if arg = c.resolveUpvalue(c.fn, name); arg != -1 {
		getOp, setOp = value.OpGetUpvalue, value.OpSetUpvalue
	} else {
		arg = int(c.identifierConstant(name))
		getOp, setOp = value.OpGetGlobal, value.OpSetGlobal
	}

	if canAssign && c.match(token.Equal) {
		c.expression()
		c.emitOpByte(setOp, byte(arg))
	} else {
		c.emitOpByte(getOp, byte(arg))
	}
}

// this_ binds the "this" keyword to the receiver slot reserved at
// index 0 of every method/initializer's locals, spelled "ego"
// internally (see beginFunction). It is read-only.
func (c *Compiler) this_(canAssign bool) {
	if c.class == nil {
		c.error("Can't use 'this' outside of a class.")
		return
	}
	c.namedVariable("ego", false)
}

// super_ compiles "super.name" or, fused with a following call,
// "super.name(...)" as OP_SUPER_INVOKE. The receiver is read via the
// "ego" slot and the superclass via the synthetic "super" local that
// classDeclaration injects into every subclass's method scope.
func (c *Compiler) super_(canAssign bool) {
	if c.class == nil {
		c.error("Can't use 'super' outside of a class.")
	} else if !c.class.hasSuperclass {
		c.error("Can't use 'super' in a class with no superclass.")
	}

	c.consume(token.Dot, "Expect '.' after 'super'.")
	c.consume(token.Identifier, "Expect superclass method name.")
	name := c.identifierConstant(c.prev.Lexeme)

	c.namedVariable("ego", false)
	if c.match(token.LeftParen) {
		argCount := c.argumentList()
		c.namedVariable("super", false)
		c.emitOpByte(value.OpSuperInvoke, name)
		c.emitByte(argCount)
	} else {
		c.namedVariable("super", false)
		c.emitOpByte(value.OpGetSuper, name)
	}
}
