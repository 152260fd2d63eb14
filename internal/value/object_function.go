package value

import "fmt"

// Function is an immutable compiled function: an arity, an upvalue
// count, an optional name, and the Chunk of bytecode compiled for its
// body. Immutable once the compiler finishes with it.
type Function struct {
	Header
	Name         *String
	Arity        int
	UpvalueCount int
	Chunk        *Chunk
}

func (f *Function) String() string {
	if f.Name == nil {
		return "<script>"
	}
	return fmt.Sprintf("<fn %s>", f.Name.Chars)
}

func NewFunction() *Function {
	return &Function{Header: Header{Type: ObjTypeFunction}, Chunk: NewChunk()}
}

// NativeFn is the host function signature every Native object wraps:
// the argument slice (its length is the argument count), returning a
// single Value or an error surfaced as a runtime error.
type NativeFn func(args []Value) (Value, error)

// Native wraps a host function as a callable Value.
type Native struct {
	Header
	Name string
	Fn   NativeFn
}

func (n *Native) String() string { return fmt.Sprintf("<native fn %s>", n.Name) }

func NewNative(name string, fn NativeFn) *Native {
	return &Native{Header: Header{Type: ObjTypeNative}, Name: name, Fn: fn}
}

// Upvalue is either open (Location indexes a live VM stack slot) or
// closed (it owns Closed directly). Open upvalues form an intrusive
// list, held by the VM, sorted by descending stack address.
type Upvalue struct {
	Header
	Location int
	Closed   Value
	IsClosed bool
	NextOpen *Upvalue
}

func (u *Upvalue) String() string { return "upvalue" }

func NewUpvalue(location int) *Upvalue {
	return &Upvalue{Header: Header{Type: ObjTypeUpvalue}, Location: location}
}

// Closure pairs a Function with its captured Upvalues; len(Upvalues)
// equals Function.UpvalueCount.
type Closure struct {
	Header
	Function *Function
	Upvalues []*Upvalue
}

func (c *Closure) String() string { return c.Function.String() }

func NewClosure(fn *Function) *Closure {
	return &Closure{
		Header:   Header{Type: ObjTypeClosure},
		Function: fn,
		Upvalues: make([]*Upvalue, fn.UpvalueCount),
	}
}
