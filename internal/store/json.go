package store

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"

	"github.com/dshills/confstore/internal/variant"
)

// Read merges a JSON object document into the tree.
//
// Objects and arrays become child sections; array elements are named by
// their index ("0", "1", ...). Scalars become entries. An existing entry is
// overwritten only when overwrite is true. Integers that fit in int64 are
// stored as int64, larger ones as uint64, everything else as float64.
//
// The document is validated before anything is applied, so a syntax error
// leaves the tree untouched.
func (c *Config) Read(data []byte, overwrite bool) error {
	if c.isReleased() {
		return ErrReleased
	}
	if !gjson.ValidBytes(data) {
		err := syntaxError(data)
		c.logger().Warn("rejected JSON document", "error", err)
		return err
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		c.logger().Warn("rejected JSON document", "error", ErrNotObject)
		return ErrNotObject
	}

	readObject(c.root, doc, overwrite)
	c.logger().Debug("JSON read", "bytes", len(data), "overwrite", overwrite)
	return nil
}

// syntaxError locates the problem in an invalid document. gjson reports
// validity only, so the position comes from encoding/json.
func syntaxError(data []byte) error {
	var v any
	err := json.Unmarshal(data, &v)
	var se *json.SyntaxError
	if errors.As(err, &se) {
		return &JSONError{Offset: se.Offset, Message: se.Error()}
	}
	if err != nil {
		return &JSONError{Offset: -1, Message: err.Error()}
	}
	return &JSONError{Offset: -1, Message: "invalid document"}
}

func readObject(s *Section, obj gjson.Result, overwrite bool) {
	obj.ForEach(func(key, value gjson.Result) bool {
		readValue(s, key.String(), value, overwrite)
		return true
	})
}

func readArray(s *Section, arr gjson.Result, overwrite bool) {
	i := 0
	arr.ForEach(func(_, value gjson.Result) bool {
		readValue(s, strconv.Itoa(i), value, overwrite)
		i++
		return true
	})
}

func readValue(s *Section, name string, r gjson.Result, overwrite bool) {
	switch r.Type {
	case gjson.JSON:
		child := s.AddSection(name)
		if r.IsArray() {
			readArray(child, r, overwrite)
		} else {
			readObject(child, r, overwrite)
		}
	case gjson.True:
		s.importScalar(name, variant.Bool(true), overwrite)
	case gjson.False:
		s.importScalar(name, variant.Bool(false), overwrite)
	case gjson.Number:
		s.importScalar(name, parseNumber(r.Raw), overwrite)
	case gjson.String:
		s.importScalar(name, variant.String(r.Str), overwrite)
	case gjson.Null:
		s.importScalar(name, variant.None(), overwrite)
	}
}

// parseNumber applies the integer normalization: int64 when the token fits,
// uint64 above that, float64 otherwise.
func parseNumber(raw string) variant.Variant {
	if !strings.ContainsAny(raw, ".eE") {
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return variant.Int64(n)
		}
		if n, err := strconv.ParseUint(raw, 10, 64); err == nil {
			return variant.Uint64(n)
		}
	}
	f, _ := strconv.ParseFloat(raw, 64)
	return variant.Float64(f)
}

// importScalar creates the entry with v, or overwrites an existing one when
// overwrite is set. An overwrite takes v's type; use CopyValue to keep the
// entry's width.
func (s *Section) importScalar(name string, v variant.Variant, overwrite bool) {
	e, created := s.addEntry(name, v.Clone())
	if !created && overwrite {
		e.Set(v)
	}
}

// Write serializes the tree as compact JSON. It returns nil when the root
// has no members to write.
func (c *Config) Write() []byte {
	if c.isReleased() {
		return nil
	}
	out, n := c.root.appendObject(nil)
	if n == 0 {
		return nil
	}
	c.logger().Debug("JSON written", "bytes", len(out))
	return out
}

// WritePretty is Write with indentation.
func (c *Config) WritePretty() []byte {
	out := c.Write()
	if out == nil {
		return nil
	}
	return pretty.Pretty(out)
}

// ToJSON serializes the section as a JSON object, walking children in
// combined insertion order. Entries, lists and sections sharing a name are
// all emitted, so the object may repeat a key.
func (s *Section) ToJSON() []byte {
	out, _ := s.appendObject(nil)
	return out
}

// appendObject appends s as a JSON object and returns the member count.
// Pointer entries have no JSON form and are skipped.
func (s *Section) appendObject(dst []byte) ([]byte, int) {
	dst = append(dst, '{')
	n := 0
	for _, it := range s.Children() {
		if it.kind == ItemEntry && it.entry.Kind() == variant.KindPointer {
			continue
		}
		if n > 0 {
			dst = append(dst, ',')
		}
		dst = gjson.AppendJSONString(dst, it.Name())
		dst = append(dst, ':')
		dst = appendItem(dst, it)
		n++
	}
	return append(dst, '}'), n
}

// appendArray appends s as a JSON array. Only called for index-named
// sections.
func (s *Section) appendArray(dst []byte, children []Item) []byte {
	dst = append(dst, '[')
	for i, it := range children {
		if i > 0 {
			dst = append(dst, ',')
		}
		dst = appendItem(dst, it)
	}
	return append(dst, ']')
}

func appendItem(dst []byte, it Item) []byte {
	switch it.kind {
	case ItemEntry:
		return appendVariant(dst, it.entry.Value())
	case ItemList:
		dst = append(dst, '[')
		for i, v := range it.list.Values() {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = appendVariant(dst, v)
		}
		return append(dst, ']')
	case ItemSection:
		if children := it.section.Children(); isIndexed(children) {
			return it.section.appendArray(dst, children)
		}
		dst, _ = it.section.appendObject(dst)
		return dst
	default:
		return append(dst, "null"...)
	}
}

// IsArray reports whether the section holds a JSON array: its children are
// named "0".."n-1" in insertion order.
func (s *Section) IsArray() bool {
	return isIndexed(s.Children())
}

// isIndexed reports whether children are named "0".."n-1" in order, which
// is how Read stores a JSON array. An object keyed that way is written back
// as an array, and an empty array as an empty object.
func isIndexed(children []Item) bool {
	if len(children) == 0 {
		return false
	}
	for i, it := range children {
		if it.Name() != strconv.Itoa(i) {
			return false
		}
	}
	return true
}

func appendVariant(dst []byte, v variant.Variant) []byte {
	switch v.Kind() {
	case variant.KindBool:
		return strconv.AppendBool(dst, v.AsBool())
	case variant.KindChar:
		return gjson.AppendJSONString(dst, string(rune(v.AsChar())))
	case variant.KindNumber:
		return appendNumber(dst, v)
	case variant.KindString:
		return gjson.AppendJSONString(dst, v.AsString())
	case variant.KindBuffer:
		return gjson.AppendJSONString(dst, base64.StdEncoding.EncodeToString(v.AsBytes()))
	default:
		return append(dst, "null"...)
	}
}

func appendNumber(dst []byte, v variant.Variant) []byte {
	sub := v.Subtype()
	switch {
	case sub.IsFloat():
		f := v.AsFloat64()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return append(dst, "null"...)
		}
		bits := 64
		if sub == variant.SubFloat32 {
			bits = 32
		}
		start := len(dst)
		dst = strconv.AppendFloat(dst, f, 'g', -1, bits)
		// Keep a float marker so the value reads back as a float.
		if !strings.ContainsAny(string(dst[start:]), ".eE") {
			dst = append(dst, ".0"...)
		}
		return dst
	case sub.IsUnsigned():
		return strconv.AppendUint(dst, v.AsUint64(), 10)
	default:
		return strconv.AppendInt(dst, v.AsInt64(), 10)
	}
}
