// Package lexer scans Ember source text into a token stream. It is the
// scanner boundary the compiler consumes: init(source) + next_token().
package lexer

import (
	"unicode/utf8"

	"github.com/ember-lang/ember/internal/token"
)

// Lexer scans a source buffer rune-at-a-time. The source buffer must
// outlive every Token it produces, since Token.Lexeme is a substring of it.
type Lexer struct {
	source       string
	start        int
	position     int
	readPosition int
	ch           rune
	line         int
}

// New creates a Lexer positioned at the start of source.
func New(source string) *Lexer {
	l := &Lexer{source: source, line: 1}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
	}
	if l.readPosition >= len(l.source) {
		l.ch = 0
		l.position = l.readPosition
		return
	}
	r, w := utf8.DecodeRuneInString(l.source[l.readPosition:])
	l.ch = r
	l.position = l.readPosition
	l.readPosition += w
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.source) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.source[l.readPosition:])
	return r
}

func (l *Lexer) atEnd() bool {
	return l.position >= len(l.source)
}

// NextToken returns the next token in the stream. Past end of input it
// returns an EOF token forever.
func (l *Lexer) NextToken() token.Token {
	l.skipWhitespaceAndComments()
	l.start = l.position

	if l.atEnd() {
		return l.make(token.EOF)
	}

	ch := l.ch
	switch {
	case isAlpha(ch):
		return l.identifier()
	case isDigit(ch):
		return l.number()
	case ch == '"':
		return l.string()
	}

	l.readChar()
	switch ch {
	case '(':
		return l.make(token.LeftParen)
	case ')':
		return l.make(token.RightParen)
	case '{':
		return l.make(token.LeftBrace)
	case '}':
		return l.make(token.RightBrace)
	case ',':
		return l.make(token.Comma)
	case '.':
		return l.make(token.Dot)
	case '-':
		return l.make(token.Minus)
	case '+':
		return l.make(token.Plus)
	case ';':
		return l.make(token.Semicolon)
	case '*':
		return l.make(token.Star)
	case '/':
		return l.make(token.Slash)
	case '!':
		if l.matchAdvance('=') {
			return l.make(token.BangEqual)
		}
		return l.make(token.Bang)
	case '=':
		if l.matchAdvance('=') {
			return l.make(token.EqualEqual)
		}
		return l.make(token.Equal)
	case '<':
		if l.matchAdvance('=') {
			return l.make(token.LessEqual)
		}
		return l.make(token.Less)
	case '>':
		if l.matchAdvance('=') {
			return l.make(token.GreaterEqual)
		}
		return l.make(token.Greater)
	}

	return l.errorToken("Unexpected character.")
}

func (l *Lexer) matchAdvance(want rune) bool {
	if l.ch != want {
		return false
	}
	l.readChar()
	return true
}

func (l *Lexer) skipWhitespaceAndComments() {
	for {
		switch l.ch {
		case ' ', '\t', '\r', '\n':
			l.readChar()
		case '/':
			if l.peekChar() == '/' {
				for l.ch != '\n' && !l.atEnd() {
					l.readChar()
				}
			} else {
				return
			}
		default:
			return
		}
	}
}

func (l *Lexer) identifier() token.Token {
	for isAlpha(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	lexeme := l.source[l.start:l.position]
	if kw, ok := token.Keyword(lexeme); ok {
		return l.make(kw)
	}
	return l.make(token.Identifier)
}

func (l *Lexer) number() token.Token {
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	return l.make(token.Number)
}

func (l *Lexer) string() token.Token {
	l.readChar() // opening quote
	for l.ch != '"' && !l.atEnd() {
		l.readChar()
	}
	if l.atEnd() {
		return l.errorToken("Unterminated string.")
	}
	l.readChar() // closing quote
	return l.make(token.String)
}

func (l *Lexer) make(t token.Type) token.Token {
	return token.Token{Type: t, Lexeme: l.source[l.start:l.position], Line: l.line}
}

func (l *Lexer) errorToken(msg string) token.Token {
	return token.Token{Type: token.Error, Lexeme: msg, Line: l.line}
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isAlpha(ch rune) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}
