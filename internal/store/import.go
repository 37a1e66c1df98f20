package store

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"

	"github.com/dshills/confstore/internal/variant"
)

// Import merges a native Go value into s under name, with the same rules as
// Config.Read: maps become sections, slices become index-named sections,
// and scalars become entries that are overwritten only when overwrite is
// set. Values with no scalar form are stored through their String method
// when they have one. Import reports false for a value it cannot store.
func (s *Section) Import(name string, v any, overwrite bool) bool {
	switch val := v.(type) {
	case map[string]any:
		s.AddSection(name).ImportMap(val, overwrite)
		return true
	case []any:
		child := s.AddSection(name)
		for i, elem := range val {
			child.Import(strconv.Itoa(i), elem, overwrite)
		}
		return true
	case []byte:
		s.importScalar(name, variant.Buffer(val), overwrite)
		return true
	}

	if vv, ok := variant.FromValue(v); ok && vv.Kind() != variant.KindPointer {
		s.importScalar(name, vv, overwrite)
		return true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		child := s.AddSection(name)
		for i := 0; i < rv.Len(); i++ {
			child.Import(strconv.Itoa(i), rv.Index(i).Interface(), overwrite)
		}
		return true
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			break
		}
		m := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			m[iter.Key().String()] = iter.Value().Interface()
		}
		s.AddSection(name).ImportMap(m, overwrite)
		return true
	}

	if str, ok := v.(fmt.Stringer); ok {
		s.importScalar(name, variant.String(str.String()), overwrite)
		return true
	}
	return false
}

// ImportMap imports every member of m into s. Go maps are unordered, so
// members are added in sorted key order.
func (s *Section) ImportMap(m map[string]any, overwrite bool) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		s.Import(k, m[k], overwrite)
	}
}

// Export converts the section to native Go values: sections become
// map[string]any, index-named sections and lists become []any, and entries
// become their Variant.Interface value. When an entry, list and section
// share a name, the later child in insertion order wins. Pointer entries are
// omitted.
func (s *Section) Export() map[string]any {
	out := make(map[string]any)
	for _, it := range s.Children() {
		if v, ok := exportItem(it); ok {
			out[it.Name()] = v
		}
	}
	return out
}

func exportItem(it Item) (any, bool) {
	switch it.kind {
	case ItemEntry:
		v := it.entry.Value()
		if v.Kind() == variant.KindPointer {
			return nil, false
		}
		return v.Interface(), true
	case ItemList:
		vals := it.list.Values()
		out := make([]any, len(vals))
		for i, v := range vals {
			if v.Kind() != variant.KindPointer {
				out[i] = v.Interface()
			}
		}
		return out, true
	case ItemSection:
		children := it.section.Children()
		if isIndexed(children) {
			out := make([]any, len(children))
			for i, c := range children {
				out[i], _ = exportItem(c)
			}
			return out, true
		}
		return it.section.Export(), true
	}
	return nil, false
}
