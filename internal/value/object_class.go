package value

import "fmt"

// Class is a name plus a mapping from method name to Closure.
type Class struct {
	Header
	Name    *String
	Methods map[*String]*Closure
}

func (c *Class) String() string { return fmt.Sprintf("<class %s>", c.Name.Chars) }

func NewClass(name *String) *Class {
	return &Class{Header: Header{Type: ObjTypeClass}, Name: name, Methods: make(map[*String]*Closure)}
}

// Instance is a Class reference plus a mutable field table.
type Instance struct {
	Header
	Class  *Class
	Fields map[*String]Value
}

func (i *Instance) String() string { return fmt.Sprintf("<%s instance>", i.Class.Name.Chars) }

func NewInstance(class *Class) *Instance {
	return &Instance{Header: Header{Type: ObjTypeInstance}, Class: class, Fields: make(map[*String]Value)}
}

// BoundMethod pairs a receiver (expected to be an *Instance) with the
// Closure it was bound from; callable as if it were a plain closure.
type BoundMethod struct {
	Header
	Receiver Value
	Method   *Closure
}

func (b *BoundMethod) String() string { return b.Method.String() }

func NewBoundMethod(receiver Value, method *Closure) *BoundMethod {
	return &BoundMethod{Header: Header{Type: ObjTypeBoundMethod}, Receiver: receiver, Method: method}
}
