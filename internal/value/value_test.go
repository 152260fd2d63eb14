package value

import "testing"

func TestEqual(t *testing.T) {
	s1 := NewString("abc")
	s2 := NewString("abc") // deliberately not interned: distinct identity

	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"nil==nil", Nil(), Nil(), true},
		{"true==true", Bool_(true), Bool_(true), true},
		{"true!=false", Bool_(true), Bool_(false), false},
		{"1==1", Number(1), Number(1), true},
		{"1!=2", Number(1), Number(2), false},
		{"nil!=false", Nil(), Bool_(false), false},
		{"same obj identity", FromObj(s1), FromObj(s1), true},
		{"different obj identity", FromObj(s1), FromObj(s2), false},
	}

	for _, tt := range tests {
		if got := tt.a.Equal(tt.b); got != tt.want {
			t.Errorf("%s: Equal() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestIsFalsey(t *testing.T) {
	tests := []struct {
		v    Value
		want bool
	}{
		{Nil(), true},
		{Bool_(false), true},
		{Bool_(true), false},
		{Number(0), false},
		{FromObj(NewString("")), false},
	}
	for _, tt := range tests {
		if got := tt.v.IsFalsey(); got != tt.want {
			t.Errorf("IsFalsey(%v) = %v, want %v", tt.v, got, tt.want)
		}
	}
}

func TestValueString(t *testing.T) {
	if Number(3.0).String() != "3" {
		t.Errorf("Number(3.0).String() = %q, want %q", Number(3.0).String(), "3")
	}
	if Number(3.5).String() != "3.5" {
		t.Errorf("Number(3.5).String() = %q, want %q", Number(3.5).String(), "3.5")
	}
	if Bool_(true).String() != "true" {
		t.Errorf("Bool_(true).String() = %q", Bool_(true).String())
	}
	if Nil().String() != "nil" {
		t.Errorf("Nil().String() = %q", Nil().String())
	}
}

func TestChunkConstantOverflow(t *testing.T) {
	c := NewChunk()
	for i := 0; i < MaxConstants; i++ {
		if _, err := c.AddConstant(Number(float64(i))); err != nil {
			t.Fatalf("unexpected error adding constant %d: %v", i, err)
		}
	}
	if _, err := c.AddConstant(Number(999)); err == nil {
		t.Fatalf("expected error adding 257th constant, got nil")
	}
}

func TestChunkPatchJump(t *testing.T) {
	c := NewChunk()
	c.WriteOp(OpJumpIfFalse, 1)
	offset := c.Len()
	c.Write(0xff, 1)
	c.Write(0xff, 1)
	c.WriteOp(OpPop, 1)

	if err := c.PatchJump(offset); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	hi, lo := c.Read(offset), c.Read(offset+1)
	jump := int(hi)<<8 | int(lo)
	if jump != 1 {
		t.Errorf("patched jump = %d, want 1", jump)
	}
}
