// Package variant provides the tagged-union scalar value stored by every
// configuration entry and list element.
//
// A Variant holds exactly one of: nothing, a bool, a char (byte), a fixed
// width signed or unsigned integer, a 32 or 64 bit float, an owned string,
// an owned byte buffer, or a non-owned pointer. String and buffer payloads
// are exclusively owned by the Variant: Clone deep-copies them, Take moves
// them and leaves the source empty.
//
// Typed accessors read the payload as-is and assume the caller has checked
// the tag. The only conversion they perform is float32/float64 widening and
// narrowing.
package variant

import (
	"bytes"
	"fmt"
	"math"
	"reflect"
	"strconv"
)

// Kind is the primary type tag of a Variant.
type Kind uint8

const (
	// KindNone is an empty Variant.
	KindNone Kind = iota
	// KindBool holds a boolean.
	KindBool
	// KindChar holds a single byte.
	KindChar
	// KindNumber holds an integer or float; see Subtype.
	KindNumber
	// KindString holds an owned string.
	KindString
	// KindBuffer holds an owned byte buffer.
	KindBuffer
	// KindPointer holds a pointer the Variant does not own.
	KindPointer
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindBool:
		return "bool"
	case KindChar:
		return "char"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindBuffer:
		return "buffer"
	case KindPointer:
		return "pointer"
	default:
		return "unknown"
	}
}

// Subtype distinguishes numeric width, signedness and float precision.
// It is SubNone for every non-number kind.
type Subtype uint8

const (
	SubNone Subtype = iota
	SubInt8
	SubInt16
	SubInt32
	SubInt64
	SubUint8
	SubUint16
	SubUint32
	SubUint64
	SubFloat32
	SubFloat64
)

// String returns the subtype name.
func (s Subtype) String() string {
	switch s {
	case SubNone:
		return "none"
	case SubInt8:
		return "int8"
	case SubInt16:
		return "int16"
	case SubInt32:
		return "int32"
	case SubInt64:
		return "int64"
	case SubUint8:
		return "uint8"
	case SubUint16:
		return "uint16"
	case SubUint32:
		return "uint32"
	case SubUint64:
		return "uint64"
	case SubFloat32:
		return "float32"
	case SubFloat64:
		return "float64"
	default:
		return "unknown"
	}
}

// Size returns the storage width in bytes of a numeric subtype.
func (s Subtype) Size() int {
	switch s {
	case SubInt8, SubUint8:
		return 1
	case SubInt16, SubUint16:
		return 2
	case SubInt32, SubUint32, SubFloat32:
		return 4
	case SubInt64, SubUint64, SubFloat64:
		return 8
	default:
		return 0
	}
}

// IsSigned reports whether s is a signed integer subtype.
func (s Subtype) IsSigned() bool { return s >= SubInt8 && s <= SubInt64 }

// IsUnsigned reports whether s is an unsigned integer subtype.
func (s Subtype) IsUnsigned() bool { return s >= SubUint8 && s <= SubUint64 }

// IsFloat reports whether s is a float subtype.
func (s Subtype) IsFloat() bool { return s == SubFloat32 || s == SubFloat64 }

// Float comparison tolerances, matching the C float.h epsilons.
const (
	Float32Epsilon = 1.1920929e-07
	Float64Epsilon = 2.220446049250313e-16
)

// Variant is a tagged-union scalar value. The zero value is KindNone.
type Variant struct {
	kind Kind
	sub  Subtype
	size int

	// bits holds bool, char and numeric payloads. Signed integers are
	// stored sign-extended; floats as their IEEE bit pattern.
	bits uint64

	// data is the owned payload of string and buffer variants.
	data []byte

	// ptr is the non-owned referent of pointer variants.
	ptr any
}

// None returns an empty Variant.
func None() Variant { return Variant{} }

// Bool returns a bool Variant.
func Bool(b bool) Variant {
	v := Variant{kind: KindBool, size: 1}
	if b {
		v.bits = 1
	}
	return v
}

// Char returns a char Variant.
func Char(c byte) Variant { return Variant{kind: KindChar, size: 1, bits: uint64(c)} }

func signed(sub Subtype, n int64) Variant {
	return Variant{kind: KindNumber, sub: sub, size: sub.Size(), bits: uint64(n)}
}

func unsigned(sub Subtype, n uint64) Variant {
	return Variant{kind: KindNumber, sub: sub, size: sub.Size(), bits: n}
}

// Int8 returns an 8-bit signed integer Variant.
func Int8(n int8) Variant { return signed(SubInt8, int64(n)) }

// Int16 returns a 16-bit signed integer Variant.
func Int16(n int16) Variant { return signed(SubInt16, int64(n)) }

// Int32 returns a 32-bit signed integer Variant.
func Int32(n int32) Variant { return signed(SubInt32, int64(n)) }

// Int64 returns a 64-bit signed integer Variant.
func Int64(n int64) Variant { return signed(SubInt64, n) }

// Uint8 returns an 8-bit unsigned integer Variant.
func Uint8(n uint8) Variant { return unsigned(SubUint8, uint64(n)) }

// Uint16 returns a 16-bit unsigned integer Variant.
func Uint16(n uint16) Variant { return unsigned(SubUint16, uint64(n)) }

// Uint32 returns a 32-bit unsigned integer Variant.
func Uint32(n uint32) Variant { return unsigned(SubUint32, uint64(n)) }

// Uint64 returns a 64-bit unsigned integer Variant.
func Uint64(n uint64) Variant { return unsigned(SubUint64, n) }

// Float32 returns a 32-bit float Variant.
func Float32(f float32) Variant {
	return Variant{kind: KindNumber, sub: SubFloat32, size: 4, bits: uint64(math.Float32bits(f))}
}

// Float64 returns a 64-bit float Variant.
func Float64(f float64) Variant {
	return Variant{kind: KindNumber, sub: SubFloat64, size: 8, bits: math.Float64bits(f)}
}

// String returns a Variant owning a copy of s.
func String(s string) Variant {
	return Variant{kind: KindString, size: len(s), data: []byte(s)}
}

// Buffer returns a Variant owning a copy of b.
func Buffer(b []byte) Variant {
	return Variant{kind: KindBuffer, size: len(b), data: bytes.Clone(b)}
}

// Pointer returns a Variant referencing p without owning it. size is the
// caller-declared size of the referent.
func Pointer(p any, size int) Variant {
	if p == nil {
		return Variant{}
	}
	return Variant{kind: KindPointer, size: size, ptr: p}
}

// Kind returns the primary type tag.
func (v Variant) Kind() Kind { return v.kind }

// Subtype returns the numeric subtype, or SubNone.
func (v Variant) Subtype() Subtype { return v.sub }

// Size returns the payload size in bytes.
func (v Variant) Size() int { return v.size }

// IsNone reports whether v holds no value.
func (v Variant) IsNone() bool { return v.kind == KindNone }

// SameType reports whether v and o carry the same kind and subtype.
func (v Variant) SameType(o Variant) bool { return v.kind == o.kind && v.sub == o.sub }

// Owns reports whether v holds an owned heap payload.
func (v Variant) Owns() bool { return v.kind == KindString || v.kind == KindBuffer }

// The As accessors reinterpret the payload without checking the kind; a
// mismatched kind yields a truncated or meaningless value, never a panic.

// AsBool returns the bool payload.
func (v Variant) AsBool() bool { return v.bits != 0 }

// AsChar returns the char payload.
func (v Variant) AsChar() byte { return byte(v.bits) }

// AsInt8 returns the low 8 bits as a signed integer.
func (v Variant) AsInt8() int8 { return int8(v.bits) }

// AsInt16 returns the low 16 bits as a signed integer.
func (v Variant) AsInt16() int16 { return int16(v.bits) }

// AsInt32 returns the low 32 bits as a signed integer.
func (v Variant) AsInt32() int32 { return int32(v.bits) }

// AsInt64 returns the payload as a signed integer.
func (v Variant) AsInt64() int64 { return int64(v.bits) }

// AsUint8 returns the low 8 bits as an unsigned integer.
func (v Variant) AsUint8() uint8 { return uint8(v.bits) }

// AsUint16 returns the low 16 bits as an unsigned integer.
func (v Variant) AsUint16() uint16 { return uint16(v.bits) }

// AsUint32 returns the low 32 bits as an unsigned integer.
func (v Variant) AsUint32() uint32 { return uint32(v.bits) }

// AsUint64 returns the payload as an unsigned integer.
func (v Variant) AsUint64() uint64 { return v.bits }

// AsFloat32 returns the float payload, narrowing a float64.
func (v Variant) AsFloat32() float32 {
	if v.sub == SubFloat64 {
		return float32(math.Float64frombits(v.bits))
	}
	return math.Float32frombits(uint32(v.bits))
}

// AsFloat64 returns the float payload, widening a float32.
func (v Variant) AsFloat64() float64 {
	if v.sub == SubFloat32 {
		return float64(math.Float32frombits(uint32(v.bits)))
	}
	return math.Float64frombits(v.bits)
}

// AsString returns the string payload. Buffers are returned as their bytes.
func (v Variant) AsString() string {
	if !v.Owns() {
		return ""
	}
	return string(v.data)
}

// AsBytes returns a copy of the string or buffer payload.
func (v Variant) AsBytes() []byte {
	if !v.Owns() {
		return nil
	}
	return bytes.Clone(v.data)
}

// AsPointer returns the referent of a pointer Variant.
func (v Variant) AsPointer() any {
	if v.kind != KindPointer {
		return nil
	}
	return v.ptr
}

// Int64Value converts any number to int64. Floats truncate toward zero.
func (v Variant) Int64Value() int64 {
	if v.sub.IsFloat() {
		return int64(v.AsFloat64())
	}
	return int64(v.bits)
}

// Uint64Value converts any number to uint64.
func (v Variant) Uint64Value() uint64 {
	if v.sub.IsFloat() {
		return uint64(v.AsFloat64())
	}
	return v.bits
}

// Float64Value converts any number to float64.
func (v Variant) Float64Value() float64 {
	switch {
	case v.sub.IsFloat():
		return v.AsFloat64()
	case v.sub.IsUnsigned():
		return float64(v.bits)
	default:
		return float64(int64(v.bits))
	}
}

// Convert returns the number v converted to sub. It returns false when v is
// not a number or sub is not a numeric subtype.
func (v Variant) Convert(sub Subtype) (Variant, bool) {
	if v.kind != KindNumber {
		return Variant{}, false
	}
	switch sub {
	case SubInt8:
		return Int8(int8(v.Int64Value())), true
	case SubInt16:
		return Int16(int16(v.Int64Value())), true
	case SubInt32:
		return Int32(int32(v.Int64Value())), true
	case SubInt64:
		return Int64(v.Int64Value()), true
	case SubUint8:
		return Uint8(uint8(v.Uint64Value())), true
	case SubUint16:
		return Uint16(uint16(v.Uint64Value())), true
	case SubUint32:
		return Uint32(uint32(v.Uint64Value())), true
	case SubUint64:
		return Uint64(v.Uint64Value()), true
	case SubFloat32:
		return Float32(float32(v.Float64Value())), true
	case SubFloat64:
		return Float64(v.Float64Value()), true
	default:
		return Variant{}, false
	}
}

// Clone returns a copy of v. Owned payloads are deep-copied.
func (v Variant) Clone() Variant {
	c := v
	if v.Owns() {
		c.data = bytes.Clone(v.data)
		if c.data == nil {
			c.data = []byte{}
		}
	}
	return c
}

// Assign replaces v with a deep copy of o, releasing v's previous payload.
func (v *Variant) Assign(o Variant) {
	v.Clear()
	*v = o.Clone()
}

// Take moves src into v and clears src.
func (v *Variant) Take(src *Variant) {
	if v == src {
		return
	}
	v.Clear()
	*v = *src
	*src = Variant{}
}

// Clear releases any owned payload and resets v to KindNone.
func (v *Variant) Clear() {
	*v = Variant{}
}

// Equal reports whether v and o hold the same type and value.
//
// Floats compare within the precision's epsilon. Strings and buffers compare
// only the overlapping prefix of the two payloads, so "abc" equals "ab".
func (v Variant) Equal(o Variant) bool {
	if !v.SameType(o) {
		return false
	}
	switch v.kind {
	case KindNone:
		return true
	case KindBool, KindChar:
		return v.bits == o.bits
	case KindNumber:
		switch v.sub {
		case SubFloat32:
			return math.Abs(float64(v.AsFloat32()-o.AsFloat32())) <= Float32Epsilon
		case SubFloat64:
			return math.Abs(v.AsFloat64()-o.AsFloat64()) <= Float64Epsilon
		default:
			return v.bits == o.bits
		}
	case KindString, KindBuffer:
		n := min(len(v.data), len(o.data))
		return bytes.Equal(v.data[:n], o.data[:n])
	case KindPointer:
		return samePointer(v.ptr, o.ptr)
	default:
		return false
	}
}

func samePointer(a, b any) bool {
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if ta != nil && ta.Comparable() {
		return a == b
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	switch va.Kind() {
	case reflect.Slice, reflect.Map, reflect.Func, reflect.Chan, reflect.Pointer, reflect.UnsafePointer:
		return va.Pointer() == vb.Pointer()
	}
	return false
}

// Interface returns v as a native Go value: nil, bool, byte, the sized
// integer or float type, string, []byte, or the pointer referent.
func (v Variant) Interface() any {
	switch v.kind {
	case KindBool:
		return v.AsBool()
	case KindChar:
		return v.AsChar()
	case KindNumber:
		switch v.sub {
		case SubInt8:
			return v.AsInt8()
		case SubInt16:
			return v.AsInt16()
		case SubInt32:
			return v.AsInt32()
		case SubInt64:
			return v.AsInt64()
		case SubUint8:
			return v.AsUint8()
		case SubUint16:
			return v.AsUint16()
		case SubUint32:
			return v.AsUint32()
		case SubUint64:
			return v.AsUint64()
		case SubFloat32:
			return v.AsFloat32()
		case SubFloat64:
			return v.AsFloat64()
		}
	case KindString:
		return v.AsString()
	case KindBuffer:
		return v.AsBytes()
	case KindPointer:
		return v.ptr
	}
	return nil
}

// FromValue builds a Variant from a native Go value. int and uint map to
// their 64-bit forms; other pointers become non-owned pointer variants.
func FromValue(x any) (Variant, bool) {
	switch val := x.(type) {
	case nil:
		return Variant{}, true
	case Variant:
		return val.Clone(), true
	case bool:
		return Bool(val), true
	case int:
		return Int64(int64(val)), true
	case int8:
		return Int8(val), true
	case int16:
		return Int16(val), true
	case int32:
		return Int32(val), true
	case int64:
		return Int64(val), true
	case uint:
		return Uint64(uint64(val)), true
	case uint8:
		return Uint8(val), true
	case uint16:
		return Uint16(val), true
	case uint32:
		return Uint32(val), true
	case uint64:
		return Uint64(val), true
	case float32:
		return Float32(val), true
	case float64:
		return Float64(val), true
	case string:
		return String(val), true
	case []byte:
		return Buffer(val), true
	}

	rv := reflect.ValueOf(x)
	if rv.Kind() == reflect.Pointer && !rv.IsNil() {
		return Pointer(x, int(rv.Type().Elem().Size())), true
	}
	return Variant{}, false
}

// String formats v for display and logging.
func (v Variant) String() string {
	switch v.kind {
	case KindNone:
		return "<none>"
	case KindBool:
		return strconv.FormatBool(v.AsBool())
	case KindChar:
		return string(rune(v.AsChar()))
	case KindNumber:
		switch {
		case v.sub == SubFloat32:
			return strconv.FormatFloat(float64(v.AsFloat32()), 'g', -1, 32)
		case v.sub == SubFloat64:
			return strconv.FormatFloat(v.AsFloat64(), 'g', -1, 64)
		case v.sub.IsUnsigned():
			return strconv.FormatUint(v.bits, 10)
		default:
			return strconv.FormatInt(int64(v.bits), 10)
		}
	case KindString:
		return string(v.data)
	case KindBuffer:
		return fmt.Sprintf("buffer(%d)", len(v.data))
	case KindPointer:
		return fmt.Sprintf("pointer(%T)", v.ptr)
	default:
		return "<invalid>"
	}
}
