// Package store provides a hierarchical, dynamically typed, thread-safe
// configuration store with JSON import/export and change callbacks.
//
// # Model
//
// A Config owns a root Section. A Section holds three independent kinds of
// children, each keyed by name:
//
//   - Entry: a single variant.Variant value
//   - List: an ordered sequence of variant.Variant values
//   - Section: a nested container
//
// One name may be used by an entry, a list and a section at the same level.
//
// # Registry
//
// GetInstance returns a process-wide Config by name, creating it on first
// use:
//
//	cfg := store.GetInstance("game")
//	cfg.AddSection("Graphics", "").AddEntryInt32("Width", 800)
//	width := cfg.GetEntry("Width", "Graphics").GetInt32()
//
// # Defaults
//
// Typed AddEntry calls are idempotent. A second call returns the existing
// entry and applies the value only as a default, which never replaces a
// value already set:
//
//	g := cfg.AddSection("Graphics", "")
//	g.AddEntryInt32("Width", 800)
//	g.AddEntryInt32("Width", 640) // still 800
//
// # Callbacks
//
// Sections notify subscribers synchronously after a mutation is committed.
// No lock is held while callbacks run, so a callback may mutate the same
// section:
//
//	g.AddCallback(store.EntryValueChange, func(ev store.Event, it store.Item, arg any) {
//	    fmt.Println(it.Name(), "changed to", it.Entry().Value())
//	}, nil)
//
// # Ownership
//
// Every container is reference counted. A parent holds one reference to
// each child. A caller that keeps a child past its removal calls Retain,
// and the child then survives as an orphan with a nil Parent.
//
// # JSON
//
// Read merges a JSON object into the tree; Write serializes it back. JSON
// arrays are stored as sections with children named "0", "1", ..., and such
// sections are written back as arrays.
package store
