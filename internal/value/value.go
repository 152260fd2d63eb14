// Package value defines the runtime representation of Ember values: a
// tagged Value union over nil, bool, number and heap-object references,
// plus the heap object variants themselves (String, Function, Closure,
// Upvalue, Class, Instance, BoundMethod, Native) and the bytecode Chunk
// that Function objects own.
//
// Chunk lives in this package rather than its own, alongside the object
// types that reference it (Function.Chunk) and that its constant pool
// references back (Value) — splitting them would create an import
// cycle between the two halves of what is really one data model.
package value

// Kind identifies which alternative of the Value union is populated.
type Kind byte

const (
	KindNil Kind = iota
	KindBool
	KindNumber
	KindObj
)

// Value is a tagged sum: nil, boolean, 64-bit float number, or a
// reference to a heap Obj. Different kinds always compare unequal;
// numbers compare by IEEE equality; Obj references compare by identity
// (legal for strings because of interning).
type Value struct {
	Kind   Kind
	Bool   bool
	Number float64
	Obj    Obj
}

func Nil() Value                { return Value{Kind: KindNil} }
func Bool_(b bool) Value        { return Value{Kind: KindBool, Bool: b} }
func Number(n float64) Value    { return Value{Kind: KindNumber, Number: n} }
func FromObj(o Obj) Value       { return Value{Kind: KindObj, Obj: o} }

func (v Value) IsNil() bool    { return v.Kind == KindNil }
func (v Value) IsBool() bool   { return v.Kind == KindBool }
func (v Value) IsNumber() bool { return v.Kind == KindNumber }
func (v Value) IsObj() bool    { return v.Kind == KindObj }

// IsFalsey reports falsiness: nil and false are falsy, everything else
// (including 0 and the empty string) is truthy.
func (v Value) IsFalsey() bool {
	switch v.Kind {
	case KindNil:
		return true
	case KindBool:
		return !v.Bool
	default:
		return false
	}
}

// Equal implements Value equality per the data model: different kinds
// are unequal, numbers compare by value, Obj references compare by
// pointer identity (which is exactly content equality for interned
// strings).
func (v Value) Equal(other Value) bool {
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case KindNil:
		return true
	case KindBool:
		return v.Bool == other.Bool
	case KindNumber:
		return v.Number == other.Number
	case KindObj:
		return v.Obj == other.Obj
	default:
		return false
	}
}

func (v Value) String() string {
	switch v.Kind {
	case KindNil:
		return "nil"
	case KindBool:
		if v.Bool {
			return "true"
		}
		return "false"
	case KindNumber:
		return formatNumber(v.Number)
	case KindObj:
		if v.Obj == nil {
			return "nil"
		}
		return v.Obj.String()
	default:
		return "?"
	}
}

// ObjType tags the concrete variant of a heap Obj, letting the GC and
// the printer switch without a type assertion chain.
type ObjType byte

const (
	ObjTypeString ObjType = iota
	ObjTypeFunction
	ObjTypeNative
	ObjTypeClosure
	ObjTypeUpvalue
	ObjTypeClass
	ObjTypeInstance
	ObjTypeBoundMethod
)

// Header is embedded in every heap object. It carries the GC mark bit
// and the intrusive "next allocated object" link the heap's
// all-objects list is threaded through; Type lets callers switch on the
// concrete variant without a type assertion.
type Header struct {
	Type   ObjType
	Marked bool
	Next   Obj
}

// Obj is implemented by every heap object variant.
type Obj interface {
	objHeader() *Header
	String() string
}

func (h *Header) objHeader() *Header { return h }

// ObjectType returns the concrete variant tag of o.
func ObjectType(o Obj) ObjType { return o.objHeader().Type }

// IsMarked/SetMarked/NextObj/SetNextObj give the GC uniform access to the
// intrusive header fields regardless of concrete object type.
func IsMarked(o Obj) bool        { return o.objHeader().Marked }
func SetMarked(o Obj, m bool)    { o.objHeader().Marked = m }
func NextObj(o Obj) Obj          { return o.objHeader().Next }
func SetNextObj(o Obj, next Obj) { o.objHeader().Next = next }
