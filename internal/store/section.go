package store

import (
	"strings"
	"sync"
	"sync/atomic"

	"github.com/dshills/confstore/internal/refcount"
	"github.com/dshills/confstore/internal/variant"
)

// Section is a named container of entries, lists and child sections.
//
// The three child kinds live in independent namespaces: one name may denote
// an entry, a list and a section at the same level. Each namespace keeps its
// own insertion order for indexed access, and a combined order drives JSON
// output.
//
// The section lock guards only the maps themselves. Callbacks run after it
// is released, so a callback may add or remove siblings of the child that
// triggered it.
type Section struct {
	refs   refcount.Count
	name   string
	parent atomic.Pointer[Section]

	mu           sync.RWMutex
	entries      map[string]*Entry
	entryOrder   []*Entry
	lists        map[string]*List
	listOrder    []*List
	sections     map[string]*Section
	sectionOrder []*Section
	children     []Item

	callbacks callbacks
}

// NewSection creates a detached section holding one reference.
func NewSection(name string) *Section {
	s := &Section{
		name:     name,
		entries:  make(map[string]*Entry),
		lists:    make(map[string]*List),
		sections: make(map[string]*Section),
	}
	s.refs.Init()
	return s
}

// Name returns the section name.
func (s *Section) Name() string { return s.name }

// Parent returns the owning section, or nil for a root or orphaned section.
func (s *Section) Parent() *Section { return s.parent.Load() }

// Retain adds a reference held by the caller.
func (s *Section) Retain() int32 { return s.refs.Retain() }

// Release drops a caller reference. The last release destroys the section
// and releases its children; children retained elsewhere become orphans.
func (s *Section) Release() int32 {
	n := s.refs.Release()
	if n == 0 {
		s.destroy()
	}
	return n
}

// RefCount returns the current reference count.
func (s *Section) RefCount() int32 { return s.refs.Load() }

func (s *Section) detach(parent *Section) {
	s.parent.CompareAndSwap(parent, nil)
	s.Release()
}

func (s *Section) destroy() {
	s.parent.Store(nil)
	s.callbacks.clearAll()
	s.removeAll(false, true)
}

// AddEntry returns the entry called name, creating an unset one if needed.
func (s *Section) AddEntry(name string) *Entry {
	e, _ := s.addEntry(name, variant.None())
	return e
}

// AddEntryValue returns the entry called name. A new entry starts with v;
// an existing one receives v through SetDefault.
func (s *Section) AddEntryValue(name string, v variant.Variant) *Entry {
	e, created := s.addEntry(name, v.Clone())
	if !created {
		e.SetDefault(v)
	}
	return e
}

// addEntry creates the entry with init as its value and fires EntryAdd.
// It reports false and returns the existing entry if name is taken.
func (s *Section) addEntry(name string, init variant.Variant) (*Entry, bool) {
	s.mu.Lock()
	if e, ok := s.entries[name]; ok {
		s.mu.Unlock()
		return e, false
	}
	e := newEntry(name, s)
	e.value.Take(&init)
	s.entries[name] = e
	s.entryOrder = append(s.entryOrder, e)
	s.children = append(s.children, EntryItem(e))
	s.mu.Unlock()

	s.InvokeCallbacks(EntryAdd, EntryItem(e))
	return e, true
}

// GetEntry returns the entry called name, or nil.
func (s *Section) GetEntry(name string) *Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.entries[name]
}

// GetEntryAt returns the i-th entry in insertion order, or nil.
func (s *Section) GetEntryAt(i int) *Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i < 0 || i >= len(s.entryOrder) {
		return nil
	}
	return s.entryOrder[i]
}

// NumEntries returns the number of entries.
func (s *Section) NumEntries() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entryOrder)
}

// RemoveEntry removes the entry called name and reports whether it existed.
func (s *Section) RemoveEntry(name string) bool {
	s.mu.Lock()
	e, ok := s.entries[name]
	if !ok {
		s.mu.Unlock()
		return false
	}
	delete(s.entries, name)
	s.entryOrder = removeFrom(s.entryOrder, e)
	s.children = s.removeChild(EntryItem(e))
	s.mu.Unlock()

	s.InvokeCallbacks(EntryRemove, EntryItem(e))
	e.detach(s)
	return true
}

// AddList returns the list called name, creating an empty one if needed.
func (s *Section) AddList(name string) *List {
	s.mu.Lock()
	if l, ok := s.lists[name]; ok {
		s.mu.Unlock()
		return l
	}
	l := newList(name, s)
	s.lists[name] = l
	s.listOrder = append(s.listOrder, l)
	s.children = append(s.children, ListItem(l))
	s.mu.Unlock()

	s.InvokeCallbacks(ListAdd, ListItem(l))
	return l
}

// GetList returns the list called name, or nil.
func (s *Section) GetList(name string) *List {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lists[name]
}

// GetListAt returns the i-th list in insertion order, or nil.
func (s *Section) GetListAt(i int) *List {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i < 0 || i >= len(s.listOrder) {
		return nil
	}
	return s.listOrder[i]
}

// NumLists returns the number of lists.
func (s *Section) NumLists() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.listOrder)
}

// RemoveList removes the list called name and reports whether it existed.
func (s *Section) RemoveList(name string) bool {
	s.mu.Lock()
	l, ok := s.lists[name]
	if !ok {
		s.mu.Unlock()
		return false
	}
	delete(s.lists, name)
	s.listOrder = removeFrom(s.listOrder, l)
	s.children = s.removeChild(ListItem(l))
	s.mu.Unlock()

	s.InvokeCallbacks(ListRemove, ListItem(l))
	l.detach(s)
	return true
}

// AddSection returns the child section called name, creating it if needed.
func (s *Section) AddSection(name string) *Section {
	s.mu.Lock()
	if c, ok := s.sections[name]; ok {
		s.mu.Unlock()
		return c
	}
	c := NewSection(name)
	c.parent.Store(s)
	s.sections[name] = c
	s.sectionOrder = append(s.sectionOrder, c)
	s.children = append(s.children, SectionItem(c))
	s.mu.Unlock()

	s.InvokeCallbacks(SectionAdd, SectionItem(c))
	return c
}

// GetSection returns the child section called name, or nil.
func (s *Section) GetSection(name string) *Section {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sections[name]
}

// GetSectionAt returns the i-th child section in insertion order, or nil.
func (s *Section) GetSectionAt(i int) *Section {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i < 0 || i >= len(s.sectionOrder) {
		return nil
	}
	return s.sectionOrder[i]
}

// NumSections returns the number of child sections.
func (s *Section) NumSections() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sectionOrder)
}

// RemoveSection removes the child section called name and reports whether
// it existed. The child's subtree is released with it.
func (s *Section) RemoveSection(name string) bool {
	s.mu.Lock()
	c, ok := s.sections[name]
	if !ok {
		s.mu.Unlock()
		return false
	}
	delete(s.sections, name)
	s.sectionOrder = removeFrom(s.sectionOrder, c)
	s.children = s.removeChild(SectionItem(c))
	s.mu.Unlock()

	s.InvokeCallbacks(SectionRemove, SectionItem(c))
	c.detach(s)
	return true
}

// Descend resolves a dotted path of section names below s. An empty path
// is s itself. With create set, missing sections are added; otherwise a
// missing section yields nil.
func (s *Section) Descend(path string, create bool) *Section {
	cur := s
	if path == "" {
		return cur
	}
	for _, name := range strings.Split(path, ".") {
		if create {
			cur = cur.AddSection(name)
		} else if cur = cur.GetSection(name); cur == nil {
			return nil
		}
	}
	return cur
}

// Children returns every child in combined insertion order.
func (s *Section) Children() []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Item, len(s.children))
	copy(out, s.children)
	return out
}

// IsEmpty reports whether the section has no children of any kind.
func (s *Section) IsEmpty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.children) == 0
}

// Clear removes all entries and child sections, firing a remove event for
// each. Lists are kept; use ClearAll to drop them too.
func (s *Section) Clear() {
	s.removeAll(true, false)
}

// ClearAll removes entries, lists and child sections.
func (s *Section) ClearAll() {
	s.removeAll(true, true)
}

func (s *Section) removeAll(notify, withLists bool) {
	s.mu.Lock()
	entries := s.entryOrder
	sections := s.sectionOrder
	var lists []*List
	if withLists {
		lists = s.listOrder
	}

	s.entries = make(map[string]*Entry)
	s.entryOrder = nil
	s.sections = make(map[string]*Section)
	s.sectionOrder = nil
	kept := s.children[:0:0]
	if !withLists {
		for _, it := range s.children {
			if it.kind == ItemList {
				kept = append(kept, it)
			}
		}
	} else {
		s.lists = make(map[string]*List)
		s.listOrder = nil
	}
	s.children = kept
	s.mu.Unlock()

	for _, e := range entries {
		if notify {
			s.InvokeCallbacks(EntryRemove, EntryItem(e))
		}
		e.detach(s)
	}
	for _, l := range lists {
		if notify {
			s.InvokeCallbacks(ListRemove, ListItem(l))
		}
		l.detach(s)
	}
	for _, c := range sections {
		if notify {
			s.InvokeCallbacks(SectionRemove, SectionItem(c))
		}
		c.detach(s)
	}
}

// AddCallback subscribes fn with arg to event. It returns false if the
// event is unknown, fn is nil, or the same (fn, arg) pair is already
// registered for event.
func (s *Section) AddCallback(event Event, fn Callback, arg any) bool {
	if !s.callbacks.add(event, fn, arg) {
		logger().Warn("callback not registered", "section", s.name, "event", event.String())
		return false
	}
	return true
}

// RemoveCallback unsubscribes the (fn, arg) pair from event. fn must be the
// same func value that was added; a method value such as w.OnChange is a new
// value each time it is written, so keep it in a variable.
func (s *Section) RemoveCallback(event Event, fn Callback, arg any) bool {
	return s.callbacks.remove(event, fn, arg)
}

// ClearCallbacks removes every subscription for event.
func (s *Section) ClearCallbacks(event Event) {
	s.callbacks.clear(event)
}

// NumCallbacks returns the number of subscriptions for event.
func (s *Section) NumCallbacks(event Event) int {
	return s.callbacks.count(event)
}

// InvokeCallbacks calls every subscriber of event synchronously, in
// registration order.
func (s *Section) InvokeCallbacks(event Event, item Item) {
	s.callbacks.invoke(event, item)
}

// removeChild must be called with s.mu held.
func (s *Section) removeChild(it Item) []Item {
	for i, c := range s.children {
		if c.is(it) {
			return append(s.children[:i:i], s.children[i+1:]...)
		}
	}
	return s.children
}

func removeFrom[T comparable](order []T, v T) []T {
	for i, x := range order {
		if x == v {
			return append(order[:i:i], order[i+1:]...)
		}
	}
	return order
}
