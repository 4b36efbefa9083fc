// Package asset provides the shared handle type behind every loaded native resource.
package asset

import (
	"sync"

	"github.com/google/uuid"
)

// ReleaseFunc frees a native value.
type ReleaseFunc[T any] func(T)

// Handle owns one native value and its release function.
//
// Handles are shared by pointer: every Texture cut from the same image holds
// the same Handle, so a release or a hot swap is seen by all of them.
type Handle[T any] struct {
	id       uuid.UUID
	mu       sync.RWMutex
	value    T
	release  ReleaseFunc[T]
	released bool
}

// NewHandle wraps a native value. release may be nil.
func NewHandle[T any](value T, release ReleaseFunc[T]) *Handle[T] {
	return &Handle[T]{
		id:      uuid.New(),
		value:   value,
		release: release,
	}
}

// ID returns the unique identifier of the handle.
func (h *Handle[T]) ID() uuid.UUID {
	return h.id
}

// Get returns the native value and whether it is still live.
func (h *Handle[T]) Get() (T, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.released {
		var zero T
		return zero, false
	}
	return h.value, true
}

// Swap replaces the native value in place and releases the previous one.
// Swapping a released handle revives it.
func (h *Handle[T]) Swap(value T) {
	h.mu.Lock()
	old, wasLive := h.value, !h.released
	h.value = value
	h.released = false
	h.mu.Unlock()

	if wasLive && h.release != nil {
		h.release(old)
	}
}

// Release frees the native value. Calling it again is a no-op.
func (h *Handle[T]) Release() {
	h.mu.Lock()
	if h.released {
		h.mu.Unlock()
		return
	}
	h.released = true
	value := h.value
	var zero T
	h.value = zero
	h.mu.Unlock()

	if h.release != nil {
		h.release(value)
	}
}

// Released reports whether Release has been called.
func (h *Handle[T]) Released() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.released
}
