package compiler

import "github.com/ember-lang/ember/internal/token"

// parseFn is a Pratt handler: prefix handlers consume the token already
// advanced past (in c.prev); infix handlers additionally receive the
// parsed left-hand operand implicitly via the value stack the emitted
// bytecode builds up. canAssign is true only when this expression may
// legally be an assignment target (precedence <= PrecAssignment).
type parseFn func(c *Compiler, canAssign bool)

// rule is one entry of the dispatch table: a pair of handler method
// values plus an infix precedence, giving the usual O(1) table lookup
// of a function-pointer Pratt table.
type rule struct {
	prefix     parseFn
	infix      parseFn
	precedence Precedence
}

var rules map[token.Type]rule

func init() {
	rules = map[token.Type]rule{
		token.LeftParen:    {prefix: (*Compiler).grouping, infix: (*Compiler).call, precedence: PrecCall},
		token.Dot:          {infix: (*Compiler).dot, precedence: PrecCall},
		token.Minus:        {prefix: (*Compiler).unary, infix: (*Compiler).binary, precedence: PrecTerm},
		token.Plus:         {infix: (*Compiler).binary, precedence: PrecTerm},
		token.Slash:        {infix: (*Compiler).binary, precedence: PrecFactor},
		token.Star:         {infix: (*Compiler).binary, precedence: PrecFactor},
		token.Bang:         {prefix: (*Compiler).unary},
		token.BangEqual:    {infix: (*Compiler).binary, precedence: PrecEquality},
		token.EqualEqual:   {infix: (*Compiler).binary, precedence: PrecEquality},
		token.Greater:      {infix: (*Compiler).binary, precedence: PrecComparison},
		token.GreaterEqual: {infix: (*Compiler).binary, precedence: PrecComparison},
		token.Less:         {infix: (*Compiler).binary, precedence: PrecComparison},
		token.LessEqual:    {infix: (*Compiler).binary, precedence: PrecComparison},
		token.Identifier:   {prefix: (*Compiler).variable},
		token.String:       {prefix: (*Compiler).stringLiteral},
		token.Number:       {prefix: (*Compiler).number},
		token.And:          {infix: (*Compiler).and_, precedence: PrecAnd},
		token.False:        {prefix: (*Compiler).literal},
		token.Nil:          {prefix: (*Compiler).literal},
		token.Or:           {infix: (*Compiler).or_, precedence: PrecOr},
		token.Super:        {prefix: (*Compiler).super_},
		token.This:         {prefix: (*Compiler).this_},
		token.True:         {prefix: (*Compiler).literal},
	}
}

func getRule(t token.Type) rule { return rules[t] }

// parsePrecedence consumes the next token, invokes its prefix handler,
// then repeatedly consumes infix tokens whose precedence is >= prec.
func (c *Compiler) parsePrecedence(prec Precedence) {
	c.advance()
	prefix := getRule(c.prev.Type).prefix
	if prefix == nil {
		c.error("Expect expression.")
		return
	}
	canAssign := prec <= PrecAssignment
	prefix(c, canAssign)

	for prec <= getRule(c.current.Type).precedence {
		c.advance()
		infix := getRule(c.prev.Type).infix
		infix(c, canAssign)
	}

	if canAssign && c.match(token.Equal) {
		c.error("Invalid assignment target.")
	}
}

func (c *Compiler) expression() {
	c.parsePrecedence(PrecAssignment)
}
