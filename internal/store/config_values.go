package store

import "github.com/dshills/confstore/internal/variant"

// AddEntryBool adds a bool entry under parent, or applies v as its default.
func (c *Config) AddEntryBool(name string, v bool, parent string) *Entry {
	return c.AddEntryValue(name, variant.Bool(v), parent)
}

// AddEntryChar adds a char entry under parent, or applies v as its default.
func (c *Config) AddEntryChar(name string, v byte, parent string) *Entry {
	return c.AddEntryValue(name, variant.Char(v), parent)
}

// AddEntryInt8 adds an int8 entry under parent, or applies v as its default.
func (c *Config) AddEntryInt8(name string, v int8, parent string) *Entry {
	return c.AddEntryValue(name, variant.Int8(v), parent)
}

// AddEntryInt16 adds an int16 entry under parent, or applies v as its default.
func (c *Config) AddEntryInt16(name string, v int16, parent string) *Entry {
	return c.AddEntryValue(name, variant.Int16(v), parent)
}

// AddEntryInt32 adds an int32 entry under parent, or applies v as its default.
func (c *Config) AddEntryInt32(name string, v int32, parent string) *Entry {
	return c.AddEntryValue(name, variant.Int32(v), parent)
}

// AddEntryInt64 adds an int64 entry under parent, or applies v as its default.
func (c *Config) AddEntryInt64(name string, v int64, parent string) *Entry {
	return c.AddEntryValue(name, variant.Int64(v), parent)
}

// AddEntryUint8 adds a uint8 entry under parent, or applies v as its default.
func (c *Config) AddEntryUint8(name string, v uint8, parent string) *Entry {
	return c.AddEntryValue(name, variant.Uint8(v), parent)
}

// AddEntryUint16 adds a uint16 entry under parent, or applies v as its default.
func (c *Config) AddEntryUint16(name string, v uint16, parent string) *Entry {
	return c.AddEntryValue(name, variant.Uint16(v), parent)
}

// AddEntryUint32 adds a uint32 entry under parent, or applies v as its default.
func (c *Config) AddEntryUint32(name string, v uint32, parent string) *Entry {
	return c.AddEntryValue(name, variant.Uint32(v), parent)
}

// AddEntryUint64 adds a uint64 entry under parent, or applies v as its default.
func (c *Config) AddEntryUint64(name string, v uint64, parent string) *Entry {
	return c.AddEntryValue(name, variant.Uint64(v), parent)
}

// AddEntryFloat32 adds a float32 entry under parent, or applies v as its default.
func (c *Config) AddEntryFloat32(name string, v float32, parent string) *Entry {
	return c.AddEntryValue(name, variant.Float32(v), parent)
}

// AddEntryFloat64 adds a float64 entry under parent, or applies v as its default.
func (c *Config) AddEntryFloat64(name string, v float64, parent string) *Entry {
	return c.AddEntryValue(name, variant.Float64(v), parent)
}

// AddEntryString adds a string entry under parent, or applies v as its default.
func (c *Config) AddEntryString(name string, v string, parent string) *Entry {
	return c.AddEntryValue(name, variant.String(v), parent)
}

// AddEntryBuffer adds a buffer entry under parent, or applies v as its default.
func (c *Config) AddEntryBuffer(name string, v []byte, parent string) *Entry {
	return c.AddEntryValue(name, variant.Buffer(v), parent)
}
