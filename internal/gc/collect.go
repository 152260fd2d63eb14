package gc

import "github.com/ember-lang/ember/internal/value"

// Collect runs one full mark-sweep cycle: enumerate roots, trace the
// gray worklist to black, purge the string table of keys about to be
// reclaimed, then sweep the all-objects list.
func (h *Heap) Collect() {
	before := h.bytesAllocated

	h.markRoots()
	h.traceReferences()
	h.removeWhiteStrings()
	h.sweep()

	h.nextGC = h.bytesAllocated * h.growthFactor

	if h.onCollect != nil {
		h.onCollect(before, h.bytesAllocated, h.nextGC)
	}
}

func (h *Heap) markRoots() {
	var roots []value.Value
	var objs []value.Obj
	for _, p := range h.providers {
		roots = p.AppendRoots(roots)
		objs = p.AppendRootObjs(objs)
	}
	for _, v := range roots {
		h.markValue(v)
	}
	for _, o := range objs {
		h.markObject(o)
	}
}

// markValue marks v's referenced heap object, if any. Non-Obj values
// (nil, bool, number) require no action.
func (h *Heap) markValue(v value.Value) {
	if v.IsObj() && v.Obj != nil {
		h.markObject(v.Obj)
	}
}

// markObject marks o gray and appends it to the worklist. It is
// idempotent: marking an already-marked object is a no-op, which is
// what keeps cyclic object graphs (class <-> methods <-> closures <->
// upvalues <-> receivers) from looping the tracer forever.
func (h *Heap) markObject(o value.Obj) {
	if o == nil || value.IsMarked(o) {
		return
	}
	value.SetMarked(o, true)
	h.gray = append(h.gray, o)
}

// traceReferences drains the gray worklist, turning each gray object
// black by marking everything it references in turn. Objects newly
// discovered white along the way are marked gray and appended, so the
// loop runs until no gray objects remain.
func (h *Heap) traceReferences() {
	for len(h.gray) > 0 {
		o := h.gray[len(h.gray)-1]
		h.gray = h.gray[:len(h.gray)-1]
		h.blacken(o)
	}
}

func (h *Heap) blacken(o value.Obj) {
	switch value.ObjectType(o) {
	case value.ObjTypeString, value.ObjTypeNative:
		// No outgoing references.
	case value.ObjTypeFunction:
		fn := o.(*value.Function)
		if fn.Name != nil {
			h.markObject(fn.Name)
		}
		for _, c := range fn.Chunk.Constants {
			h.markValue(c)
		}
	case value.ObjTypeClosure:
		c := o.(*value.Closure)
		h.markObject(c.Function)
		for _, uv := range c.Upvalues {
			if uv != nil {
				h.markObject(uv)
			}
		}
	case value.ObjTypeUpvalue:
		uv := o.(*value.Upvalue)
		if uv.IsClosed {
			h.markValue(uv.Closed)
		}
	case value.ObjTypeClass:
		class := o.(*value.Class)
		h.markObject(class.Name)
		for name, method := range class.Methods {
			h.markObject(name)
			h.markObject(method)
		}
	case value.ObjTypeInstance:
		inst := o.(*value.Instance)
		h.markObject(inst.Class)
		for name, v := range inst.Fields {
			h.markObject(name)
			h.markValue(v)
		}
	case value.ObjTypeBoundMethod:
		bm := o.(*value.BoundMethod)
		h.markValue(bm.Receiver)
		h.markObject(bm.Method)
	}
}

// removeWhiteStrings purges the string table between mark and sweep:
// an entry whose key is unmarked is about to be freed, so the table
// (a set of weak references) must drop it now, before sweep frees the
// object out from under the mark bit it just checked.
func (h *Heap) removeWhiteStrings() {
	for hash, bucket := range h.strings {
		kept := bucket[:0]
		for _, s := range bucket {
			if value.IsMarked(s) {
				kept = append(kept, s)
			}
		}
		if len(kept) == 0 {
			delete(h.strings, hash)
		} else {
			h.strings[hash] = kept
		}
	}
}

// sweep walks the all-objects list, freeing every unmarked (white)
// object and clearing the mark bit on every object that survives, so
// the next cycle starts with everything white again.
func (h *Heap) sweep() {
	var previous value.Obj
	obj := h.objects
	for obj != nil {
		next := value.NextObj(obj)
		if value.IsMarked(obj) {
			value.SetMarked(obj, false)
			previous = obj
		} else {
			if previous != nil {
				value.SetNextObj(previous, next)
			} else {
				h.objects = next
			}
			h.bytesAllocated -= approxSize(obj)
		}
		obj = next
	}
}
