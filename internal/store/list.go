package store

import (
	"slices"
	"sync"
	"sync/atomic"

	"github.com/dshills/confstore/internal/refcount"
	"github.com/dshills/confstore/internal/variant"
)

// Last is the index sentinel accepted by List.Remove to drop the final
// element.
const Last = -1

// List is a named ordered sequence of values. Elements may differ in type.
// Index operations are bounds-checked: an out-of-range index is reported
// through the return value and never grows the list.
//
// Element changes do not fire callbacks; only the owning section's
// ListAdd and ListRemove events do.
type List struct {
	refs   refcount.Count
	name   string
	parent atomic.Pointer[Section]

	mu     sync.RWMutex
	values []variant.Variant
}

func newList(name string, parent *Section) *List {
	l := &List{name: name}
	l.refs.Init()
	l.parent.Store(parent)
	return l
}

// Name returns the list name.
func (l *List) Name() string { return l.name }

// Parent returns the owning section, or nil once the list is orphaned.
func (l *List) Parent() *Section { return l.parent.Load() }

// Retain adds a reference held by the caller.
func (l *List) Retain() int32 { return l.refs.Retain() }

// Release drops a caller reference. The last release empties the list.
func (l *List) Release() int32 {
	n := l.refs.Release()
	if n == 0 {
		l.parent.Store(nil)
		l.Clear()
	}
	return n
}

// RefCount returns the current reference count.
func (l *List) RefCount() int32 { return l.refs.Load() }

func (l *List) detach(parent *Section) {
	l.parent.CompareAndSwap(parent, nil)
	l.Release()
}

// Len returns the number of values.
func (l *List) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.values)
}

// Get returns a copy of the value at index i.
func (l *List) Get(i int) (variant.Variant, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if i < 0 || i >= len(l.values) {
		return variant.Variant{}, false
	}
	return l.values[i].Clone(), true
}

// Set replaces the value at index i.
func (l *List) Set(i int, v variant.Variant) bool {
	v = v.Clone()
	l.mu.Lock()
	defer l.mu.Unlock()
	if i < 0 || i >= len(l.values) {
		return false
	}
	l.values[i].Take(&v)
	return true
}

// Insert places v before index i. i may equal Len to append.
func (l *List) Insert(i int, v variant.Variant) bool {
	v = v.Clone()
	l.mu.Lock()
	defer l.mu.Unlock()
	if i < 0 || i > len(l.values) {
		return false
	}
	l.values = slices.Insert(l.values, i, v)
	return true
}

// Append adds v at the end.
func (l *List) Append(v variant.Variant) {
	v = v.Clone()
	l.mu.Lock()
	l.values = append(l.values, v)
	l.mu.Unlock()
}

// Remove deletes the value at index i. Last removes the final value.
func (l *List) Remove(i int) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if i == Last {
		i = len(l.values) - 1
	}
	if i < 0 || i >= len(l.values) {
		return false
	}
	l.values[i].Clear()
	l.values = slices.Delete(l.values, i, i+1)
	return true
}

// Resize sets the length to n, padding with empty values or truncating.
func (l *List) Resize(n int) {
	if n < 0 {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if n <= len(l.values) {
		clear(l.values[n:])
		l.values = l.values[:n]
		return
	}
	l.values = append(l.values, make([]variant.Variant, n-len(l.values))...)
}

// Reserve ensures capacity for at least n values.
func (l *List) Reserve(n int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if n > cap(l.values) {
		l.values = slices.Grow(l.values, n-len(l.values))
	}
}

// Clear removes all values.
func (l *List) Clear() {
	l.mu.Lock()
	clear(l.values)
	l.values = nil
	l.mu.Unlock()
}

// Values returns copies of all values in order.
func (l *List) Values() []variant.Variant {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]variant.Variant, len(l.values))
	for i, v := range l.values {
		out[i] = v.Clone()
	}
	return out
}
