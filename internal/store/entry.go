package store

import (
	"hash/fnv"
	"sync"
	"sync/atomic"

	"github.com/dshills/confstore/internal/refcount"
	"github.com/dshills/confstore/internal/variant"
)

// Entry is a named single value inside a Section.
//
// The parent section holds one reference. Callers that keep an entry beyond
// its removal call Retain; when the section lets go the entry survives with
// no parent.
type Entry struct {
	refs   refcount.Count
	name   string
	hash   uint32
	parent atomic.Pointer[Section]

	mu    sync.RWMutex
	value variant.Variant
}

func newEntry(name string, parent *Section) *Entry {
	h := fnv.New32a()
	h.Write([]byte(name))

	e := &Entry{name: name, hash: h.Sum32()}
	e.refs.Init()
	e.parent.Store(parent)
	return e
}

// Name returns the entry name.
func (e *Entry) Name() string { return e.name }

// Hash returns the FNV-1a hash of the entry name.
func (e *Entry) Hash() uint32 { return e.hash }

// Parent returns the owning section, or nil once the entry is orphaned.
func (e *Entry) Parent() *Section { return e.parent.Load() }

// Retain adds a reference held by the caller.
func (e *Entry) Retain() int32 { return e.refs.Retain() }

// Release drops a caller reference. The last release clears the value.
func (e *Entry) Release() int32 {
	n := e.refs.Release()
	if n == 0 {
		e.destroy()
	}
	return n
}

// RefCount returns the current reference count.
func (e *Entry) RefCount() int32 { return e.refs.Load() }

// detach drops the reference held by parent and clears the back-reference.
func (e *Entry) detach(parent *Section) {
	e.parent.CompareAndSwap(parent, nil)
	e.Release()
}

func (e *Entry) destroy() {
	e.parent.Store(nil)
	e.mu.Lock()
	e.value.Clear()
	e.mu.Unlock()
}

// Value returns a copy of the current value.
func (e *Entry) Value() variant.Variant {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.value.Clone()
}

// Kind returns the current value kind.
func (e *Entry) Kind() variant.Kind {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.value.Kind()
}

// Subtype returns the current numeric subtype.
func (e *Entry) Subtype() variant.Subtype {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.value.Subtype()
}

// Size returns the byte size of the current value.
func (e *Entry) Size() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.value.Size()
}

// IsSet reports whether the entry holds a value.
func (e *Entry) IsSet() bool { return e.Kind() != variant.KindNone }

// Set replaces the value and notifies the parent section.
func (e *Entry) Set(v variant.Variant) {
	e.commit(v.Clone(), false)
}

// SetDefault stores v only while the entry holds no value. It reports
// whether v was written. Repeated "add with default" calls therefore never
// clobber a value set earlier, whatever its type.
func (e *Entry) SetDefault(v variant.Variant) bool {
	return e.commit(v.Clone(), true)
}

// commit stores v, which the caller has already copied. Callbacks run after
// the lock is released.
func (e *Entry) commit(v variant.Variant, onlyIfUnset bool) bool {
	e.mu.Lock()
	if onlyIfUnset && !e.value.IsNone() {
		e.mu.Unlock()
		return false
	}
	typeChanged := !e.value.SameType(v)
	valueChanged := typeChanged || e.value.Size() != v.Size() || !e.value.Equal(v)
	e.value.Take(&v)
	e.mu.Unlock()

	e.notify(typeChanged, valueChanged)
	return true
}

func (e *Entry) notify(typeChanged, valueChanged bool) {
	parent := e.parent.Load()
	if parent == nil {
		return
	}
	item := EntryItem(e)
	if typeChanged {
		parent.InvokeCallbacks(EntryTypeChange, item)
	}
	if valueChanged {
		parent.InvokeCallbacks(EntryValueChange, item)
	}
}

// CopyValue copies other's value into e. An unset entry takes other's value
// as-is. Otherwise the kinds must match, and numbers are converted to the
// width and representation e already stores. It reports whether a value was
// copied.
func (e *Entry) CopyValue(other *Entry) bool {
	if other == nil || other == e {
		return false
	}
	src := other.Value()

	e.mu.RLock()
	kind, sub := e.value.Kind(), e.value.Subtype()
	e.mu.RUnlock()

	switch {
	case kind == variant.KindNone:
	case kind != src.Kind():
		return false
	case kind == variant.KindNumber:
		converted, ok := src.Convert(sub)
		if !ok {
			return false
		}
		src = converted
	}
	e.commit(src, false)
	return true
}

// Clear resets the value to none.
func (e *Entry) Clear() {
	e.commit(variant.None(), false)
}

// String returns the value formatted for display.
func (e *Entry) String() string {
	return e.Value().String()
}
