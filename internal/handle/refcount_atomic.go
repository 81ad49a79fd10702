//go:build rmarshal_atomic

package handle

import "sync/atomic"

// refCount is the atomic reference counter, selected at build time with
// the rmarshal_atomic tag. Safe to move a decoded value graph across
// goroutines; see refcount_plain.go for the default, non-atomic flavor.
type refCount struct {
	n atomic.Int64
}

func (c *refCount) init(n int64) { c.n.Store(n) }

func (c *refCount) inc()        { c.n.Add(1) }
func (c *refCount) dec()        { c.n.Add(-1) }
func (c *refCount) load() int64 { return c.n.Load() }
