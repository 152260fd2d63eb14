package vm

import (
	"github.com/ember-lang/ember/internal/compiler"
	"github.com/ember-lang/ember/internal/gc"
	"github.com/ember-lang/ember/internal/value"
)

func compileSource(source string, heap *gc.Heap) (*value.Function, bool) {
	return compiler.Compile(source, heap)
}
