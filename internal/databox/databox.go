// Package databox provides an untyped integer-keyed data store for host
// application extensions.
//
// Each configuration instance owns a private Box for user data. Named boxes
// shared across a process are obtained through GetInstance, whose registry
// has its own lock separate from any Box's lock.
package databox

import (
	"sort"
	"sync"
)

// Box maps integer keys to arbitrary values. The store never interprets the
// values it holds.
type Box struct {
	mu   sync.RWMutex
	name string
	data map[int]any
}

// New creates an unregistered Box.
func New(name string) *Box {
	return &Box{
		name: name,
		data: make(map[int]any),
	}
}

// Name returns the box name.
func (b *Box) Name() string {
	return b.name
}

// Get returns the value stored under key.
func (b *Box) Get(key int) (any, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	v, ok := b.data[key]
	return v, ok
}

// Set stores value under key, replacing any previous value.
func (b *Box) Set(key int, value any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.data[key] = value
}

// Remove deletes key and reports whether it was present.
func (b *Box) Remove(key int) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.data[key]
	delete(b.data, key)
	return ok
}

// Keys returns all keys in ascending order.
func (b *Box) Keys() []int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	keys := make([]int, 0, len(b.data))
	for k := range b.data {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// Len returns the number of stored values.
func (b *Box) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.data)
}

// Clear removes all values.
func (b *Box) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.data = make(map[int]any)
}

var (
	registryMu sync.Mutex
	registry   = make(map[string]*Box)
)

// GetInstance returns the process-wide Box registered under name, creating
// it on first use.
func GetInstance(name string) *Box {
	registryMu.Lock()
	defer registryMu.Unlock()

	if b, ok := registry[name]; ok {
		return b
	}
	b := New(name)
	registry[name] = b
	return b
}

// Drop removes the named Box from the registry. Holders of the Box keep a
// working but unregistered instance.
func Drop(name string) bool {
	registryMu.Lock()
	defer registryMu.Unlock()
	_, ok := registry[name]
	delete(registry, name)
	return ok
}
