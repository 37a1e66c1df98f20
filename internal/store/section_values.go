package store

import "github.com/dshills/confstore/internal/variant"

// Typed AddEntry variants create the entry with v, or apply v as a default
// to an existing entry of the same name.

// AddEntryBool adds a bool entry, or applies v as its default.
func (s *Section) AddEntryBool(name string, v bool) *Entry { return s.AddEntryValue(name, variant.Bool(v)) }

// AddEntryChar adds a char entry, or applies v as its default.
func (s *Section) AddEntryChar(name string, v byte) *Entry { return s.AddEntryValue(name, variant.Char(v)) }

// AddEntryInt8 adds an int8 entry, or applies v as its default.
func (s *Section) AddEntryInt8(name string, v int8) *Entry { return s.AddEntryValue(name, variant.Int8(v)) }

// AddEntryInt16 adds an int16 entry, or applies v as its default.
func (s *Section) AddEntryInt16(name string, v int16) *Entry { return s.AddEntryValue(name, variant.Int16(v)) }

// AddEntryInt32 adds an int32 entry, or applies v as its default.
func (s *Section) AddEntryInt32(name string, v int32) *Entry { return s.AddEntryValue(name, variant.Int32(v)) }

// AddEntryInt64 adds an int64 entry, or applies v as its default.
func (s *Section) AddEntryInt64(name string, v int64) *Entry { return s.AddEntryValue(name, variant.Int64(v)) }

// AddEntryUint8 adds a uint8 entry, or applies v as its default.
func (s *Section) AddEntryUint8(name string, v uint8) *Entry { return s.AddEntryValue(name, variant.Uint8(v)) }

// AddEntryUint16 adds a uint16 entry, or applies v as its default.
func (s *Section) AddEntryUint16(name string, v uint16) *Entry { return s.AddEntryValue(name, variant.Uint16(v)) }

// AddEntryUint32 adds a uint32 entry, or applies v as its default.
func (s *Section) AddEntryUint32(name string, v uint32) *Entry { return s.AddEntryValue(name, variant.Uint32(v)) }

// AddEntryUint64 adds a uint64 entry, or applies v as its default.
func (s *Section) AddEntryUint64(name string, v uint64) *Entry { return s.AddEntryValue(name, variant.Uint64(v)) }

// AddEntryFloat32 adds a float32 entry, or applies v as its default.
func (s *Section) AddEntryFloat32(name string, v float32) *Entry { return s.AddEntryValue(name, variant.Float32(v)) }

// AddEntryFloat64 adds a float64 entry, or applies v as its default.
func (s *Section) AddEntryFloat64(name string, v float64) *Entry { return s.AddEntryValue(name, variant.Float64(v)) }

// AddEntryString adds a string entry, or applies v as its default.
func (s *Section) AddEntryString(name string, v string) *Entry { return s.AddEntryValue(name, variant.String(v)) }

// AddEntryBuffer adds a buffer entry, or applies v as its default.
func (s *Section) AddEntryBuffer(name string, v []byte) *Entry { return s.AddEntryValue(name, variant.Buffer(v)) }

// AddEntryPointer stores a pointer the entry does not own.
func (s *Section) AddEntryPointer(name string, p any, size int) *Entry {
	return s.AddEntryValue(name, variant.Pointer(p, size))
}
