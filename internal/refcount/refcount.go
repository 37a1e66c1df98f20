// Package refcount provides the atomic reference counter shared by all
// configuration containers.
package refcount

import "sync/atomic"

// Count is a lock-free reference counter. The zero value holds no
// references; owners call Init when the object is created.
//
// Go atomics are sequentially consistent, so the Release that observes zero
// also observes every write other goroutines made before their own Release.
type Count struct {
	n atomic.Int32
}

// Init sets the count to one for a newly created object.
func (c *Count) Init() {
	c.n.Store(1)
}

// Retain adds a reference and returns the new count.
func (c *Count) Retain() int32 {
	return c.n.Add(1)
}

// Release drops a reference and returns the remaining count. A result of
// zero means the caller held the last reference and must destroy the object.
// Releasing an already-dead object returns a negative count and leaves it
// pinned at zero.
func (c *Count) Release() int32 {
	n := c.n.Add(-1)
	if n < 0 {
		c.n.Store(0)
	}
	return n
}

// Load returns the current count.
func (c *Count) Load() int32 {
	return c.n.Load()
}
