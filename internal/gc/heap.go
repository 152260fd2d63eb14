// Package gc implements Ember's object heap: allocation accounting, the
// interned-string table, and a precise, non-moving tri-color
// mark-sweep collector triggered by allocation pressure. Heap is an
// explicit value threaded through the VM and the compiler rather than
// package-level state, so nothing here is shared across concurrently
// running interpreters.
package gc

import "github.com/ember-lang/ember/internal/value"

// initialNextGC is the first collection threshold: 1 MiB.
const initialNextGC = 1024 * 1024

// growthFactor is applied to bytesAllocated after each collection to
// compute the next threshold.
const growthFactor = 2

// approxSize is a rough, allocation-accounting-only size estimate for
// an object, used solely to pace collections against a byte-count
// threshold. It need not be exact.
func approxSize(o value.Obj) int {
	switch value.ObjectType(o) {
	case value.ObjTypeString:
		return 32 + len(o.(*value.String).Chars)
	case value.ObjTypeFunction:
		return 64
	case value.ObjTypeNative:
		return 32
	case value.ObjTypeClosure:
		c := o.(*value.Closure)
		return 24 + 8*len(c.Upvalues)
	case value.ObjTypeUpvalue:
		return 24
	case value.ObjTypeClass:
		return 32
	case value.ObjTypeInstance:
		return 32
	case value.ObjTypeBoundMethod:
		return 24
	default:
		return 16
	}
}

// RootProvider is implemented by collaborators (the VM, the active
// compiler chain) that hold references the collector must treat as
// roots. Heap.Collect calls AppendRoots on every registered provider
// at the start of each cycle.
type RootProvider interface {
	AppendRoots(roots []value.Value) []value.Value
	AppendRootObjs(objs []value.Obj) []value.Obj
}

// Heap owns every object Ember allocates: the intrusive all-objects
// list, the interned-string table, the allocation counters that pace
// collection, and the gray worklist used while tracing.
type Heap struct {
	objects        value.Obj
	strings        map[uint32][]*value.String
	bytesAllocated int
	nextGC         int
	growthFactor   int
	gray           []value.Obj
	stressGC       bool
	onCollect      func(before, after, next int)
	providers      []RootProvider
}

// New returns an empty Heap with the default pacing.
func New() *Heap {
	return NewWithConfig(initialNextGC, growthFactor)
}

// NewWithConfig returns an empty Heap paced by the given initial
// threshold and post-collection growth factor, as loaded from an
// internal/config.Config.
func NewWithConfig(initialThreshold, growth int) *Heap {
	return &Heap{
		strings:      make(map[uint32][]*value.String),
		nextGC:       initialThreshold,
		growthFactor: growth,
	}
}

// SetStressGC enables or disables forcing a collection before every
// allocation, an optional debug setting for shaking out GC bugs.
func (h *Heap) SetStressGC(on bool) { h.stressGC = on }

// SetCollectLogger installs a callback invoked after every collection
// with the byte counts and the next threshold; pass nil to disable.
func (h *Heap) SetCollectLogger(fn func(before, after, next int)) {
	h.onCollect = fn
}

// Register adds a RootProvider the collector will consult on every
// cycle. The VM registers itself once at startup; a Compiler registers
// itself only for the duration of a single compile, since a REPL
// creates a fresh one per line.
func (h *Heap) Register(p RootProvider) {
	h.providers = append(h.providers, p)
}

// Unregister removes a previously registered RootProvider. Compilers
// call this once compilation finishes.
func (h *Heap) Unregister(p RootProvider) {
	for i, existing := range h.providers {
		if existing == p {
			h.providers = append(h.providers[:i], h.providers[i+1:]...)
			return
		}
	}
}

// BytesAllocated reports current allocation-accounting bytes, for
// tests and the -gc-log CLI flag.
func (h *Heap) BytesAllocated() int { return h.bytesAllocated }

// NextGC reports the next collection threshold.
func (h *Heap) NextGC() int { return h.nextGC }

func (h *Heap) track(o value.Obj) {
	value.SetNextObj(o, h.objects)
	h.objects = o
	h.bytesAllocated += approxSize(o)
}

func (h *Heap) maybeCollect() {
	if h.stressGC {
		h.Collect()
		return
	}
	if h.bytesAllocated > h.nextGC {
		h.Collect()
	}
}

// AllocateString interns chars: if an equal-content string is already
// live, the existing object is returned and no allocation happens.
// Otherwise a new String is allocated, tracked, and interned.
//
// Safety invariant: callers that build a string via concatenation must
// keep every transient piece reachable (e.g. on the VM value stack)
// until this call returns, since interning itself can allocate and
// therefore trigger a collection.
func (h *Heap) AllocateString(chars string) *value.String {
	hash := value.HashString(chars)
	for _, s := range h.strings[hash] {
		if s.Chars == chars {
			return s
		}
	}
	h.maybeCollect()
	s := value.NewString(chars)
	h.track(s)
	h.strings[hash] = append(h.strings[hash], s)
	return s
}

// AllocateFunction allocates a fresh, empty Function object.
func (h *Heap) AllocateFunction() *value.Function {
	h.maybeCollect()
	f := value.NewFunction()
	h.track(f)
	return f
}

// AllocateNative allocates a Native wrapping fn.
func (h *Heap) AllocateNative(name string, fn value.NativeFn) *value.Native {
	h.maybeCollect()
	n := value.NewNative(name, fn)
	h.track(n)
	return n
}

// AllocateClosure allocates a Closure over fn with fresh empty upvalue
// slots.
func (h *Heap) AllocateClosure(fn *value.Function) *value.Closure {
	h.maybeCollect()
	c := value.NewClosure(fn)
	h.track(c)
	return c
}

// AllocateUpvalue allocates a new open Upvalue pointing at stack slot
// location.
func (h *Heap) AllocateUpvalue(location int) *value.Upvalue {
	h.maybeCollect()
	u := value.NewUpvalue(location)
	h.track(u)
	return u
}

// AllocateClass allocates a new, empty Class named name.
func (h *Heap) AllocateClass(name *value.String) *value.Class {
	h.maybeCollect()
	c := value.NewClass(name)
	h.track(c)
	return c
}

// AllocateInstance allocates a new Instance of class.
func (h *Heap) AllocateInstance(class *value.Class) *value.Instance {
	h.maybeCollect()
	i := value.NewInstance(class)
	h.track(i)
	return i
}

// AllocateBoundMethod allocates a BoundMethod pinning receiver to
// method.
func (h *Heap) AllocateBoundMethod(receiver value.Value, method *value.Closure) *value.BoundMethod {
	h.maybeCollect()
	b := value.NewBoundMethod(receiver, method)
	h.track(b)
	return b
}
