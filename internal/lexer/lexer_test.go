package lexer

import (
	"testing"

	"github.com/ember-lang/ember/internal/token"
)

func collectTypes(source string) []token.Type {
	l := New(source)
	var types []token.Type
	for {
		tok := l.NextToken()
		types = append(types, tok.Type)
		if tok.Type == token.EOF {
			return types
		}
	}
}

func TestNextTokenPunctuation(t *testing.T) {
	got := collectTypes("(){},.-+;*/")
	want := []token.Type{
		token.LeftParen, token.RightParen, token.LeftBrace, token.RightBrace,
		token.Comma, token.Dot, token.Minus, token.Plus, token.Semicolon,
		token.Star, token.Slash, token.EOF,
	}
	assertTypes(t, got, want)
}

func TestNextTokenTwoCharOperators(t *testing.T) {
	got := collectTypes("!= == <= >= ! = < >")
	want := []token.Type{
		token.BangEqual, token.EqualEqual, token.LessEqual, token.GreaterEqual,
		token.Bang, token.Equal, token.Less, token.Greater, token.EOF,
	}
	assertTypes(t, got, want)
}

func TestNextTokenKeywordsAndIdentifiers(t *testing.T) {
	got := collectTypes("class fun var ego notakeyword")
	want := []token.Type{
		token.Class, token.Fun, token.Var, token.Identifier, token.Identifier, token.EOF,
	}
	assertTypes(t, got, want)
}

func TestNextTokenNumber(t *testing.T) {
	l := New("123 4.5")
	tok := l.NextToken()
	if tok.Type != token.Number || tok.Lexeme != "123" {
		t.Fatalf("got %v %q, want Number 123", tok.Type, tok.Lexeme)
	}
	tok = l.NextToken()
	if tok.Type != token.Number || tok.Lexeme != "4.5" {
		t.Fatalf("got %v %q, want Number 4.5", tok.Type, tok.Lexeme)
	}
}

func TestNextTokenString(t *testing.T) {
	l := New(`"hello"`)
	tok := l.NextToken()
	if tok.Type != token.String || tok.Lexeme != `"hello"` {
		t.Fatalf("got %v %q, want String with quotes", tok.Type, tok.Lexeme)
	}
}

func TestNextTokenUnterminatedString(t *testing.T) {
	l := New(`"hello`)
	tok := l.NextToken()
	if tok.Type != token.Error {
		t.Fatalf("got %v, want Error for unterminated string", tok.Type)
	}
}

func TestNextTokenLineTracking(t *testing.T) {
	l := New("var a;\nvar b;\n")
	var lastLine int
	for {
		tok := l.NextToken()
		if tok.Type == token.EOF {
			break
		}
		lastLine = tok.Line
	}
	if lastLine != 2 {
		t.Errorf("last token line = %d, want 2", lastLine)
	}
}

func TestNextTokenSkipsLineComments(t *testing.T) {
	got := collectTypes("// a comment\nvar")
	want := []token.Type{token.Var, token.EOF}
	assertTypes(t, got, want)
}

func assertTypes(t *testing.T, got, want []token.Type) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d tokens %v, want %d tokens %v", len(got), got, len(want), want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
}
