package compiler

import "github.com/ember-lang/ember/internal/value"

// AppendRoots and AppendRootObjs make a Compiler a gc.RootProvider:
// every in-progress Function object in the enclosing chain is a GC
// root for as long as compilation is running. A Compiler holds no
// value.Value roots of its own, only objects.
func (c *Compiler) AppendRoots(roots []value.Value) []value.Value { return roots }

func (c *Compiler) AppendRootObjs(objs []value.Obj) []value.Obj {
	for fc := c.fn; fc != nil; fc = fc.enclosing {
		if fc.fn != nil {
			objs = append(objs, fc.fn)
		}
	}
	return objs
}
