package store

import (
	"log/slog"
	"os"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/dshills/confstore/internal/databox"
	"github.com/dshills/confstore/internal/refcount"
	"github.com/dshills/confstore/internal/variant"
)

// Config is a named configuration tree: a root section, a JSON bridge, and
// a private user-data box for host extensions.
//
// Operations that take a parent argument act on the root's direct child
// section of that name, or on the root itself when parent is "". Add*
// operations create the parent section if needed; every other operation
// returns nil or false when it does not exist.
type Config struct {
	refs refcount.Count
	name string
	id   uuid.UUID
	root *Section
	data *databox.Box

	mu       sync.Mutex
	released bool
}

var (
	registryMu sync.Mutex
	registry   = make(map[string]*Config)
)

// New creates a Config that is not entered in the process registry.
func New(name string) *Config {
	c := &Config{
		name: name,
		id:   uuid.New(),
		root: NewSection(name),
		data: databox.New(name),
	}
	c.refs.Init()
	return c
}

// GetInstance returns the Config registered under name, creating and
// registering it on first use. The registry owns the initial reference; the
// instance stays reachable until its count drops to zero.
func GetInstance(name string) *Config {
	registryMu.Lock()
	defer registryMu.Unlock()

	if c, ok := registry[name]; ok {
		return c
	}
	c := New(name)
	registry[name] = c
	c.logger().Debug("config instance created")
	return c
}

// Instances returns the names of all registered configs, sorted.
func Instances() []string {
	registryMu.Lock()
	defer registryMu.Unlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Name returns the registry name.
func (c *Config) Name() string { return c.name }

// ID returns the instance identifier used in log output.
func (c *Config) ID() uuid.UUID { return c.id }

// Root returns the root section.
func (c *Config) Root() *Section { return c.root }

// Retain adds a reference held by the caller.
func (c *Config) Retain() int32 { return c.refs.Retain() }

// Release drops a reference. The last release removes the config from the
// registry and releases its tree.
func (c *Config) Release() int32 {
	n := c.refs.Release()
	if n != 0 {
		return n
	}

	registryMu.Lock()
	if registry[c.name] == c {
		delete(registry, c.name)
	}
	registryMu.Unlock()

	c.mu.Lock()
	c.released = true
	c.mu.Unlock()

	c.root.Release()
	c.data.Clear()
	c.logger().Debug("config instance released")
	return 0
}

// RefCount returns the current reference count.
func (c *Config) RefCount() int32 { return c.refs.Load() }

func (c *Config) isReleased() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.released
}

func (c *Config) logger() *slog.Logger {
	return logger().With("config", c.name, "id", c.id.String())
}

// parentSection resolves parent to the root or a direct child of it.
func (c *Config) parentSection(parent string, create bool) *Section {
	if parent == "" {
		return c.root
	}
	if create {
		return c.root.AddSection(parent)
	}
	return c.root.GetSection(parent)
}

// AddEntry returns the entry called name under parent, creating both as
// needed.
func (c *Config) AddEntry(name, parent string) *Entry {
	return c.parentSection(parent, true).AddEntry(name)
}

// AddEntryValue is AddEntry with an initial or default value.
func (c *Config) AddEntryValue(name string, v variant.Variant, parent string) *Entry {
	return c.parentSection(parent, true).AddEntryValue(name, v)
}

// GetEntry returns the entry called name under parent, or nil.
func (c *Config) GetEntry(name, parent string) *Entry {
	if s := c.parentSection(parent, false); s != nil {
		return s.GetEntry(name)
	}
	return nil
}

// GetEntryAt returns the i-th entry under parent, or nil.
func (c *Config) GetEntryAt(i int, parent string) *Entry {
	if s := c.parentSection(parent, false); s != nil {
		return s.GetEntryAt(i)
	}
	return nil
}

// NumEntries returns the number of entries under parent.
func (c *Config) NumEntries(parent string) int {
	if s := c.parentSection(parent, false); s != nil {
		return s.NumEntries()
	}
	return 0
}

// RemoveEntry removes the entry called name under parent.
func (c *Config) RemoveEntry(name, parent string) bool {
	if s := c.parentSection(parent, false); s != nil {
		return s.RemoveEntry(name)
	}
	return false
}

// AddList returns the list called name under parent, creating both as
// needed.
func (c *Config) AddList(name, parent string) *List {
	return c.parentSection(parent, true).AddList(name)
}

// GetList returns the list called name under parent, or nil.
func (c *Config) GetList(name, parent string) *List {
	if s := c.parentSection(parent, false); s != nil {
		return s.GetList(name)
	}
	return nil
}

// GetListAt returns the i-th list under parent, or nil.
func (c *Config) GetListAt(i int, parent string) *List {
	if s := c.parentSection(parent, false); s != nil {
		return s.GetListAt(i)
	}
	return nil
}

// NumLists returns the number of lists under parent.
func (c *Config) NumLists(parent string) int {
	if s := c.parentSection(parent, false); s != nil {
		return s.NumLists()
	}
	return 0
}

// RemoveList removes the list called name under parent.
func (c *Config) RemoveList(name, parent string) bool {
	if s := c.parentSection(parent, false); s != nil {
		return s.RemoveList(name)
	}
	return false
}

// AddSection returns the section called name under parent, creating both
// as needed.
func (c *Config) AddSection(name, parent string) *Section {
	return c.parentSection(parent, true).AddSection(name)
}

// GetSection returns the section called name under parent, or nil.
func (c *Config) GetSection(name, parent string) *Section {
	if s := c.parentSection(parent, false); s != nil {
		return s.GetSection(name)
	}
	return nil
}

// GetSectionAt returns the i-th child section under parent, or nil.
func (c *Config) GetSectionAt(i int, parent string) *Section {
	if s := c.parentSection(parent, false); s != nil {
		return s.GetSectionAt(i)
	}
	return nil
}

// NumSections returns the number of child sections under parent.
func (c *Config) NumSections(parent string) int {
	if s := c.parentSection(parent, false); s != nil {
		return s.NumSections()
	}
	return 0
}

// RemoveSection removes the section called name under parent.
func (c *Config) RemoveSection(name, parent string) bool {
	if s := c.parentSection(parent, false); s != nil {
		return s.RemoveSection(name)
	}
	return false
}

// AddCallback subscribes fn with arg to event on parent, creating the
// parent section if needed.
func (c *Config) AddCallback(event Event, fn Callback, arg any, parent string) bool {
	return c.parentSection(parent, true).AddCallback(event, fn, arg)
}

// RemoveCallback unsubscribes the (fn, arg) pair from event on parent.
func (c *Config) RemoveCallback(event Event, fn Callback, arg any, parent string) bool {
	if s := c.parentSection(parent, false); s != nil {
		return s.RemoveCallback(event, fn, arg)
	}
	return false
}

// ClearCallbacks removes every subscription for event on parent.
func (c *Config) ClearCallbacks(event Event, parent string) {
	if s := c.parentSection(parent, false); s != nil {
		s.ClearCallbacks(event)
	}
}

// Clear removes all entries and sections from the root. Root-level lists
// are kept, as with Section.Clear.
func (c *Config) Clear() {
	c.root.Clear()
}

// UserData returns the config's private data box.
func (c *Config) UserData() *databox.Box { return c.data }

// GetUserData returns the user value stored under key.
func (c *Config) GetUserData(key int) (any, bool) { return c.data.Get(key) }

// SetUserData stores a user value under key.
func (c *Config) SetUserData(key int, value any) { c.data.Set(key, value) }

// ReadFile merges the JSON document at path into the tree.
func (c *Config) ReadFile(path string, overwrite bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := c.Read(data, overwrite); err != nil {
		return err
	}
	c.logger().Debug("config file read", "path", path, "bytes", len(data))
	return nil
}

// WriteFile writes the tree to path as indented JSON. An empty config
// writes nothing and returns ErrEmpty.
func (c *Config) WriteFile(path string) error {
	data := c.WritePretty()
	if data == nil {
		return ErrEmpty
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	c.logger().Debug("config file written", "path", path, "bytes", len(data))
	return nil
}
