// Package handle implements the shared-ownership cell backing every
// referenceable value.Value variant.
//
// Go's garbage collector already makes a bare pointer safe to share, but
// the format's object-table back-reference scheme wants two things a raw
// pointer doesn't give for free: a stable identity usable as a map key
// (the pointer value itself, exposed via ID) and, during decoding, a
// documented "unique writer" window in which the Reader may still mutate a
// cell that descendants have already captured through a back-reference
// (see the back-patching note in the reader package). Handle packages both
// up as a small, cheaply-cloned wrapper, the idiomatic Go stand-in for the
// source design's Rc/Arc cell.
package handle

import "unsafe"

// Handle is a shared, reference-counted pointer to a value of type T.
// Copying a Handle is O(1) and shares the underlying T; it never copies T
// itself.
type Handle[T any] struct {
	cell *cell[T]
}

type cell[T any] struct {
	refs refCount
	val  T
}

// New allocates a fresh cell holding v with a reference count of one.
func New[T any](v T) Handle[T] {
	c := &cell[T]{val: v}
	c.refs.init(1)
	return Handle[T]{cell: c}
}

// Get returns a pointer to the shared T, for reading or in-place mutation
// during the documented unique-writer window.
func (h Handle[T]) Get() *T {
	return &h.cell.val
}

// Clone increments the reference count and returns a handle aliasing the
// same cell.
func (h Handle[T]) Clone() Handle[T] {
	h.cell.refs.inc()
	return h
}

// Release decrements the reference count. Go's GC reclaims the cell once
// it is unreachable regardless; Release exists so RefCount/IsUnique stay
// meaningful for callers that track aliasing explicitly. The reader and
// writer packages never call it; the writer tracks aliasing by ID alone.
func (h Handle[T]) Release() {
	h.cell.refs.dec()
}

// RefCount returns the current reference count.
func (h Handle[T]) RefCount() int64 {
	return h.cell.refs.load()
}

// IsUnique reports whether this handle is the only known owner of its
// cell. The Reader does not call it: its in-place back-patching does not
// consult the reference count.
func (h Handle[T]) IsUnique() bool {
	return h.cell.refs.load() == 1
}

// ID returns an address-based identity for this handle's cell, stable for
// the lifetime of the process and suitable as a map key or as the other
// half of a back-reference table. Two handles sharing a cell (produced by
// Clone, or by decoding the same object-table slot twice) always compare
// equal under ID.
func (h Handle[T]) ID() uintptr {
	return uintptr(unsafe.Pointer(h.cell))
}
