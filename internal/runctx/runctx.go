// Package runctx assigns each VM run a unique identifier, for
// correlating -gc-log output back to a single interpreter invocation.
// Runtime error reports do not include it. Grounded on the uuid.New().String()
// id-generation idiom used across the retrieved corpus (e.g.
// chazu-maggie's lib/runtime/objectspace.go object ids).
package runctx

import "github.com/google/uuid"

// RunID is a per-VM-instance identifier, stable for the lifetime of
// one interpreter run.
type RunID string

// New generates a fresh RunID.
func New() RunID {
	return RunID("run-" + uuid.New().String())
}

func (r RunID) String() string { return string(r) }
