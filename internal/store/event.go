package store

import (
	"reflect"
	"sync"
	"unsafe"
)

// Event identifies the kind of section mutation that triggered a callback.
type Event int

const (
	// EntryAdd fires after a new entry is created.
	EntryAdd Event = iota
	// EntryRemove fires after an entry is removed from its section.
	EntryRemove
	// EntryTypeChange fires after an entry's value changes type.
	EntryTypeChange
	// EntryValueChange fires after an entry's value changes.
	EntryValueChange
	// ListAdd fires after a new list is created.
	ListAdd
	// ListRemove fires after a list is removed from its section.
	ListRemove
	// SectionAdd fires after a new child section is created.
	SectionAdd
	// SectionRemove fires after a child section is removed.
	SectionRemove

	numEvents
)

// String returns the event name.
func (e Event) String() string {
	switch e {
	case EntryAdd:
		return "entry_add"
	case EntryRemove:
		return "entry_remove"
	case EntryTypeChange:
		return "entry_type_change"
	case EntryValueChange:
		return "entry_value_change"
	case ListAdd:
		return "list_add"
	case ListRemove:
		return "list_remove"
	case SectionAdd:
		return "section_add"
	case SectionRemove:
		return "section_remove"
	default:
		return "unknown"
	}
}

// ParseEvent returns the event with the given String name.
func ParseEvent(name string) (Event, bool) {
	for e := Event(0); e < numEvents; e++ {
		if e.String() == name {
			return e, true
		}
	}
	return 0, false
}

func (e Event) valid() bool { return e >= 0 && e < numEvents }

// ItemKind tags which child type an Item refers to.
type ItemKind uint8

const (
	ItemNone ItemKind = iota
	ItemEntry
	ItemList
	ItemSection
)

// String returns the item kind name.
func (k ItemKind) String() string {
	switch k {
	case ItemEntry:
		return "entry"
	case ItemList:
		return "list"
	case ItemSection:
		return "section"
	default:
		return "none"
	}
}

// Item refers to exactly one child of a section: an entry, a list or a
// section.
type Item struct {
	kind    ItemKind
	entry   *Entry
	list    *List
	section *Section
}

// EntryItem wraps an entry.
func EntryItem(e *Entry) Item { return Item{kind: ItemEntry, entry: e} }

// ListItem wraps a list.
func ListItem(l *List) Item { return Item{kind: ItemList, list: l} }

// SectionItem wraps a section.
func SectionItem(s *Section) Item { return Item{kind: ItemSection, section: s} }

// Kind returns which child type the item holds.
func (i Item) Kind() ItemKind { return i.kind }

// Entry returns the entry, or nil.
func (i Item) Entry() *Entry { return i.entry }

// List returns the list, or nil.
func (i Item) List() *List { return i.list }

// Section returns the section, or nil.
func (i Item) Section() *Section { return i.section }

// Name returns the child's name.
func (i Item) Name() string {
	switch i.kind {
	case ItemEntry:
		return i.entry.Name()
	case ItemList:
		return i.list.Name()
	case ItemSection:
		return i.section.Name()
	default:
		return ""
	}
}

func (i Item) is(o Item) bool {
	return i.kind == o.kind && i.entry == o.entry && i.list == o.list && i.section == o.section
}

// Callback is invoked synchronously after a section mutation has been
// committed. arg is the opaque value supplied at registration.
type Callback func(event Event, item Item, arg any)

type registration struct {
	fn  Callback
	ptr unsafe.Pointer
	arg any
}

// callbacks is a per-event registry of (callback, argument) pairs. A pair is
// identified by the func value's closure pointer and the argument. Top-level
// functions and non-capturing literals share one closure, so they are told
// apart by arg. Capturing closures and method values get a new closure each
// time they are evaluated: keep the value in a variable to remove it later.
type callbacks struct {
	mu    sync.Mutex
	lists [numEvents][]registration
}

func (c *callbacks) add(event Event, fn Callback, arg any) bool {
	if !event.valid() || fn == nil {
		return false
	}
	reg := registration{fn: fn, ptr: funcPointer(fn), arg: arg}

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, r := range c.lists[event] {
		if r.matches(reg) {
			return false
		}
	}
	c.lists[event] = append(c.lists[event], reg)
	return true
}

func (c *callbacks) remove(event Event, fn Callback, arg any) bool {
	if !event.valid() || fn == nil {
		return false
	}
	reg := registration{ptr: funcPointer(fn), arg: arg}

	c.mu.Lock()
	defer c.mu.Unlock()
	regs := c.lists[event]
	for i, r := range regs {
		if r.matches(reg) {
			c.lists[event] = append(regs[:i:i], regs[i+1:]...)
			return true
		}
	}
	return false
}

func (c *callbacks) clear(event Event) {
	if !event.valid() {
		return
	}
	c.mu.Lock()
	c.lists[event] = nil
	c.mu.Unlock()
}

func (c *callbacks) clearAll() {
	c.mu.Lock()
	c.lists = [numEvents][]registration{}
	c.mu.Unlock()
}

func (c *callbacks) count(event Event) int {
	if !event.valid() {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lists[event])
}

// invoke calls every registration for event in registration order. The
// lock is released first so callbacks may mutate the section.
func (c *callbacks) invoke(event Event, item Item) {
	if !event.valid() {
		return
	}
	c.mu.Lock()
	regs := c.lists[event]
	if len(regs) == 0 {
		c.mu.Unlock()
		return
	}
	snapshot := make([]registration, len(regs))
	copy(snapshot, regs)
	c.mu.Unlock()

	for _, r := range snapshot {
		r.fn(event, item, r.arg)
	}
}

func (r registration) matches(o registration) bool {
	return r.ptr == o.ptr && sameArg(r.arg, o.arg)
}

// funcPointer returns the closure a func value refers to. Unlike the code
// pointer, it differs between receivers of one method and between closures
// built from one literal.
func funcPointer(fn Callback) unsafe.Pointer {
	return *(*unsafe.Pointer)(unsafe.Pointer(&fn))
}

// sameArg compares registration arguments without panicking on
// uncomparable values. Reference types compare by identity.
func sameArg(a, b any) bool {
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if ta == nil || ta.Comparable() {
		return a == b
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	switch va.Kind() {
	case reflect.Slice, reflect.Map, reflect.Func:
		return va.Pointer() == vb.Pointer()
	}
	return false
}
