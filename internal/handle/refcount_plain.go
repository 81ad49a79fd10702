//go:build !rmarshal_atomic

package handle

// refCount is the default, single-threaded reference counter. Build with
// the rmarshal_atomic tag to select the atomic flavor instead; see
// refcount_atomic.go.
type refCount struct {
	n int64
}

func (c *refCount) init(n int64)  { c.n = n }
func (c *refCount) inc()          { c.n++ }
func (c *refCount) dec()          { c.n-- }
func (c *refCount) load() int64   { return c.n }
