package token

import "testing"

func TestKeyword(t *testing.T) {
	tests := []struct {
		lexeme string
		want   Type
		ok     bool
	}{
		{"class", Class, true},
		{"fun", Fun, true},
		{"this", This, true},
		{"super", Super, true},
		{"foo", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		got, ok := Keyword(tt.lexeme)
		if ok != tt.ok {
			t.Errorf("Keyword(%q) ok = %v, want %v", tt.lexeme, ok, tt.ok)
			continue
		}
		if ok && got != tt.want {
			t.Errorf("Keyword(%q) = %v, want %v", tt.lexeme, got, tt.want)
		}
	}
}

func TestTypeString(t *testing.T) {
	if Plus.String() != "+" {
		t.Errorf("Plus.String() = %q, want %q", Plus.String(), "+")
	}
	if Identifier.String() != "identifier" {
		t.Errorf("Identifier.String() = %q, want %q", Identifier.String(), "identifier")
	}
	if Class.String() != "class" {
		t.Errorf("Class.String() = %q, want %q", Class.String(), "class")
	}
}
