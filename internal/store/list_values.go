package store

import "github.com/dshills/confstore/internal/variant"

// Typed accessors mirror Get, Set, Insert and Append for each scalar kind.
// Getters report false only for an out-of-range index; the payload is read
// as stored.

// GetBool returns element i as a bool.
func (l *List) GetBool(i int) (bool, bool) {
	v, ok := l.Get(i)
	return v.AsBool(), ok
}

// GetChar returns element i as a char.
func (l *List) GetChar(i int) (byte, bool) {
	v, ok := l.Get(i)
	return v.AsChar(), ok
}

// GetInt8 returns element i as an int8.
func (l *List) GetInt8(i int) (int8, bool) {
	v, ok := l.Get(i)
	return v.AsInt8(), ok
}

// GetInt16 returns element i as an int16.
func (l *List) GetInt16(i int) (int16, bool) {
	v, ok := l.Get(i)
	return v.AsInt16(), ok
}

// GetInt32 returns element i as an int32.
func (l *List) GetInt32(i int) (int32, bool) {
	v, ok := l.Get(i)
	return v.AsInt32(), ok
}

// GetInt64 returns element i as an int64.
func (l *List) GetInt64(i int) (int64, bool) {
	v, ok := l.Get(i)
	return v.AsInt64(), ok
}

// GetUint8 returns element i as a uint8.
func (l *List) GetUint8(i int) (uint8, bool) {
	v, ok := l.Get(i)
	return v.AsUint8(), ok
}

// GetUint16 returns element i as a uint16.
func (l *List) GetUint16(i int) (uint16, bool) {
	v, ok := l.Get(i)
	return v.AsUint16(), ok
}

// GetUint32 returns element i as a uint32.
func (l *List) GetUint32(i int) (uint32, bool) {
	v, ok := l.Get(i)
	return v.AsUint32(), ok
}

// GetUint64 returns element i as a uint64.
func (l *List) GetUint64(i int) (uint64, bool) {
	v, ok := l.Get(i)
	return v.AsUint64(), ok
}

// GetFloat32 returns element i as a float32.
func (l *List) GetFloat32(i int) (float32, bool) {
	v, ok := l.Get(i)
	return v.AsFloat32(), ok
}

// GetFloat64 returns element i as a float64.
func (l *List) GetFloat64(i int) (float64, bool) {
	v, ok := l.Get(i)
	return v.AsFloat64(), ok
}

// GetString returns element i as a string.
func (l *List) GetString(i int) (string, bool) {
	v, ok := l.Get(i)
	return v.AsString(), ok
}

// GetBuffer returns element i as a buffer.
func (l *List) GetBuffer(i int) ([]byte, bool) {
	v, ok := l.Get(i)
	return v.AsBytes(), ok
}

// SetBool replaces element i with a bool value.
func (l *List) SetBool(i int, v bool) bool { return l.Set(i, variant.Bool(v)) }

// SetChar replaces element i with a char value.
func (l *List) SetChar(i int, v byte) bool { return l.Set(i, variant.Char(v)) }

// SetInt8 replaces element i with an int8 value.
func (l *List) SetInt8(i int, v int8) bool { return l.Set(i, variant.Int8(v)) }

// SetInt16 replaces element i with an int16 value.
func (l *List) SetInt16(i int, v int16) bool { return l.Set(i, variant.Int16(v)) }

// SetInt32 replaces element i with an int32 value.
func (l *List) SetInt32(i int, v int32) bool { return l.Set(i, variant.Int32(v)) }

// SetInt64 replaces element i with an int64 value.
func (l *List) SetInt64(i int, v int64) bool { return l.Set(i, variant.Int64(v)) }

// SetUint8 replaces element i with a uint8 value.
func (l *List) SetUint8(i int, v uint8) bool { return l.Set(i, variant.Uint8(v)) }

// SetUint16 replaces element i with a uint16 value.
func (l *List) SetUint16(i int, v uint16) bool { return l.Set(i, variant.Uint16(v)) }

// SetUint32 replaces element i with a uint32 value.
func (l *List) SetUint32(i int, v uint32) bool { return l.Set(i, variant.Uint32(v)) }

// SetUint64 replaces element i with a uint64 value.
func (l *List) SetUint64(i int, v uint64) bool { return l.Set(i, variant.Uint64(v)) }

// SetFloat32 replaces element i with a float32 value.
func (l *List) SetFloat32(i int, v float32) bool { return l.Set(i, variant.Float32(v)) }

// SetFloat64 replaces element i with a float64 value.
func (l *List) SetFloat64(i int, v float64) bool { return l.Set(i, variant.Float64(v)) }

// SetString replaces element i with a string value.
func (l *List) SetString(i int, v string) bool { return l.Set(i, variant.String(v)) }

// SetBuffer replaces element i with a buffer value.
func (l *List) SetBuffer(i int, v []byte) bool { return l.Set(i, variant.Buffer(v)) }

// InsertBool inserts a bool value before index i.
func (l *List) InsertBool(i int, v bool) bool { return l.Insert(i, variant.Bool(v)) }

// InsertChar inserts a char value before index i.
func (l *List) InsertChar(i int, v byte) bool { return l.Insert(i, variant.Char(v)) }

// InsertInt8 inserts an int8 value before index i.
func (l *List) InsertInt8(i int, v int8) bool { return l.Insert(i, variant.Int8(v)) }

// InsertInt16 inserts an int16 value before index i.
func (l *List) InsertInt16(i int, v int16) bool { return l.Insert(i, variant.Int16(v)) }

// InsertInt32 inserts an int32 value before index i.
func (l *List) InsertInt32(i int, v int32) bool { return l.Insert(i, variant.Int32(v)) }

// InsertInt64 inserts an int64 value before index i.
func (l *List) InsertInt64(i int, v int64) bool { return l.Insert(i, variant.Int64(v)) }

// InsertUint8 inserts a uint8 value before index i.
func (l *List) InsertUint8(i int, v uint8) bool { return l.Insert(i, variant.Uint8(v)) }

// InsertUint16 inserts a uint16 value before index i.
func (l *List) InsertUint16(i int, v uint16) bool { return l.Insert(i, variant.Uint16(v)) }

// InsertUint32 inserts a uint32 value before index i.
func (l *List) InsertUint32(i int, v uint32) bool { return l.Insert(i, variant.Uint32(v)) }

// InsertUint64 inserts a uint64 value before index i.
func (l *List) InsertUint64(i int, v uint64) bool { return l.Insert(i, variant.Uint64(v)) }

// InsertFloat32 inserts a float32 value before index i.
func (l *List) InsertFloat32(i int, v float32) bool { return l.Insert(i, variant.Float32(v)) }

// InsertFloat64 inserts a float64 value before index i.
func (l *List) InsertFloat64(i int, v float64) bool { return l.Insert(i, variant.Float64(v)) }

// InsertString inserts a string value before index i.
func (l *List) InsertString(i int, v string) bool { return l.Insert(i, variant.String(v)) }

// InsertBuffer inserts a buffer value before index i.
func (l *List) InsertBuffer(i int, v []byte) bool { return l.Insert(i, variant.Buffer(v)) }

// AppendBool appends a bool value.
func (l *List) AppendBool(v bool) { l.Append(variant.Bool(v)) }

// AppendChar appends a char value.
func (l *List) AppendChar(v byte) { l.Append(variant.Char(v)) }

// AppendInt8 appends an int8 value.
func (l *List) AppendInt8(v int8) { l.Append(variant.Int8(v)) }

// AppendInt16 appends an int16 value.
func (l *List) AppendInt16(v int16) { l.Append(variant.Int16(v)) }

// AppendInt32 appends an int32 value.
func (l *List) AppendInt32(v int32) { l.Append(variant.Int32(v)) }

// AppendInt64 appends an int64 value.
func (l *List) AppendInt64(v int64) { l.Append(variant.Int64(v)) }

// AppendUint8 appends a uint8 value.
func (l *List) AppendUint8(v uint8) { l.Append(variant.Uint8(v)) }

// AppendUint16 appends a uint16 value.
func (l *List) AppendUint16(v uint16) { l.Append(variant.Uint16(v)) }

// AppendUint32 appends a uint32 value.
func (l *List) AppendUint32(v uint32) { l.Append(variant.Uint32(v)) }

// AppendUint64 appends a uint64 value.
func (l *List) AppendUint64(v uint64) { l.Append(variant.Uint64(v)) }

// AppendFloat32 appends a float32 value.
func (l *List) AppendFloat32(v float32) { l.Append(variant.Float32(v)) }

// AppendFloat64 appends a float64 value.
func (l *List) AppendFloat64(v float64) { l.Append(variant.Float64(v)) }

// AppendString appends a string value.
func (l *List) AppendString(v string) { l.Append(variant.String(v)) }

// AppendBuffer appends a buffer value.
func (l *List) AppendBuffer(v []byte) { l.Append(variant.Buffer(v)) }
