// Package task holds primitives shared between the render thread and build workers.
package task

import "sync/atomic"

var generations atomic.Uint64

// CancellationToken lets the owner of an in-flight build request its abandonment.
// The render thread writes it; workers only poll it.
type CancellationToken struct {
	cancelled  atomic.Bool
	generation uint64
}

// NewCancellationToken returns a live token with a process-unique generation.
func NewCancellationToken() *CancellationToken {
	return &CancellationToken{generation: generations.Add(1)}
}

// Cancel marks the token cancelled. Idempotent.
func (t *CancellationToken) Cancel() {
	t.cancelled.Store(true)
}

// IsCancelled reports whether Cancel has been called.
func (t *CancellationToken) IsCancelled() bool {
	return t.cancelled.Load()
}

// Generation identifies the build this token was issued for. Later tokens have
// strictly larger generations.
func (t *CancellationToken) Generation() uint64 {
	return t.generation
}
