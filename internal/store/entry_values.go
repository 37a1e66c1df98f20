package store

import "github.com/dshills/confstore/internal/variant"

// Typed getters read the payload as stored; check Kind and Subtype first
// when the entry's type is not known.

// GetBool returns the value as a bool.
func (e *Entry) GetBool() bool { return e.Value().AsBool() }

// GetChar returns the value as a char.
func (e *Entry) GetChar() byte { return e.Value().AsChar() }

// GetInt8 returns the value as an int8.
func (e *Entry) GetInt8() int8 { return e.Value().AsInt8() }

// GetInt16 returns the value as an int16.
func (e *Entry) GetInt16() int16 { return e.Value().AsInt16() }

// GetInt32 returns the value as an int32.
func (e *Entry) GetInt32() int32 { return e.Value().AsInt32() }

// GetInt64 returns the value as an int64.
func (e *Entry) GetInt64() int64 { return e.Value().AsInt64() }

// GetUint8 returns the value as a uint8.
func (e *Entry) GetUint8() uint8 { return e.Value().AsUint8() }

// GetUint16 returns the value as a uint16.
func (e *Entry) GetUint16() uint16 { return e.Value().AsUint16() }

// GetUint32 returns the value as a uint32.
func (e *Entry) GetUint32() uint32 { return e.Value().AsUint32() }

// GetUint64 returns the value as a uint64.
func (e *Entry) GetUint64() uint64 { return e.Value().AsUint64() }

// GetFloat32 returns the value as a float32.
func (e *Entry) GetFloat32() float32 { return e.Value().AsFloat32() }

// GetFloat64 returns the value as a float64.
func (e *Entry) GetFloat64() float64 { return e.Value().AsFloat64() }

// GetString returns the value as a string.
func (e *Entry) GetString() string { return e.Value().AsString() }

// GetBuffer returns the value as a buffer.
func (e *Entry) GetBuffer() []byte { return e.Value().AsBytes() }

// GetPointer returns the value as a pointer.
func (e *Entry) GetPointer() any { return e.Value().AsPointer() }

// SetBool stores v as a bool value.
func (e *Entry) SetBool(v bool) { e.commit(variant.Bool(v), false) }

// SetChar stores v as a char value.
func (e *Entry) SetChar(v byte) { e.commit(variant.Char(v), false) }

// SetInt8 stores v as an int8 value.
func (e *Entry) SetInt8(v int8) { e.commit(variant.Int8(v), false) }

// SetInt16 stores v as an int16 value.
func (e *Entry) SetInt16(v int16) { e.commit(variant.Int16(v), false) }

// SetInt32 stores v as an int32 value.
func (e *Entry) SetInt32(v int32) { e.commit(variant.Int32(v), false) }

// SetInt64 stores v as an int64 value.
func (e *Entry) SetInt64(v int64) { e.commit(variant.Int64(v), false) }

// SetUint8 stores v as a uint8 value.
func (e *Entry) SetUint8(v uint8) { e.commit(variant.Uint8(v), false) }

// SetUint16 stores v as a uint16 value.
func (e *Entry) SetUint16(v uint16) { e.commit(variant.Uint16(v), false) }

// SetUint32 stores v as a uint32 value.
func (e *Entry) SetUint32(v uint32) { e.commit(variant.Uint32(v), false) }

// SetUint64 stores v as a uint64 value.
func (e *Entry) SetUint64(v uint64) { e.commit(variant.Uint64(v), false) }

// SetFloat32 stores v as a float32 value.
func (e *Entry) SetFloat32(v float32) { e.commit(variant.Float32(v), false) }

// SetFloat64 stores v as a float64 value.
func (e *Entry) SetFloat64(v float64) { e.commit(variant.Float64(v), false) }

// SetString stores v as a string value.
func (e *Entry) SetString(v string) { e.commit(variant.String(v), false) }

// SetBuffer stores v as a buffer value.
func (e *Entry) SetBuffer(v []byte) { e.commit(variant.Buffer(v), false) }

// SetPointer stores a pointer the entry does not own.
func (e *Entry) SetPointer(p any, size int) { e.commit(variant.Pointer(p, size), false) }

// SetDefaultBool stores v as a bool only while the entry is unset and reports whether it did.
func (e *Entry) SetDefaultBool(v bool) bool { return e.commit(variant.Bool(v), true) }

// SetDefaultChar stores v as a char only while the entry is unset and reports whether it did.
func (e *Entry) SetDefaultChar(v byte) bool { return e.commit(variant.Char(v), true) }

// SetDefaultInt8 stores v as an int8 only while the entry is unset and reports whether it did.
func (e *Entry) SetDefaultInt8(v int8) bool { return e.commit(variant.Int8(v), true) }

// SetDefaultInt16 stores v as an int16 only while the entry is unset and reports whether it did.
func (e *Entry) SetDefaultInt16(v int16) bool { return e.commit(variant.Int16(v), true) }

// SetDefaultInt32 stores v as an int32 only while the entry is unset and reports whether it did.
func (e *Entry) SetDefaultInt32(v int32) bool { return e.commit(variant.Int32(v), true) }

// SetDefaultInt64 stores v as an int64 only while the entry is unset and reports whether it did.
func (e *Entry) SetDefaultInt64(v int64) bool { return e.commit(variant.Int64(v), true) }

// SetDefaultUint8 stores v as a uint8 only while the entry is unset and reports whether it did.
func (e *Entry) SetDefaultUint8(v uint8) bool { return e.commit(variant.Uint8(v), true) }

// SetDefaultUint16 stores v as a uint16 only while the entry is unset and reports whether it did.
func (e *Entry) SetDefaultUint16(v uint16) bool { return e.commit(variant.Uint16(v), true) }

// SetDefaultUint32 stores v as a uint32 only while the entry is unset and reports whether it did.
func (e *Entry) SetDefaultUint32(v uint32) bool { return e.commit(variant.Uint32(v), true) }

// SetDefaultUint64 stores v as a uint64 only while the entry is unset and reports whether it did.
func (e *Entry) SetDefaultUint64(v uint64) bool { return e.commit(variant.Uint64(v), true) }

// SetDefaultFloat32 stores v as a float32 only while the entry is unset and reports whether it did.
func (e *Entry) SetDefaultFloat32(v float32) bool { return e.commit(variant.Float32(v), true) }

// SetDefaultFloat64 stores v as a float64 only while the entry is unset and reports whether it did.
func (e *Entry) SetDefaultFloat64(v float64) bool { return e.commit(variant.Float64(v), true) }

// SetDefaultString stores v as a string only while the entry is unset and reports whether it did.
func (e *Entry) SetDefaultString(v string) bool { return e.commit(variant.String(v), true) }

// SetDefaultBuffer stores v as a buffer only while the entry is unset and reports whether it did.
func (e *Entry) SetDefaultBuffer(v []byte) bool { return e.commit(variant.Buffer(v), true) }
