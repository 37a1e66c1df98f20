package script

import (
	"strconv"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/confstore/internal/store"
	"github.com/dshills/confstore/internal/variant"
)

// toLua converts a Variant to a Lua value. Lua numbers are float64, so
// integers beyond 2^53 lose precision. Pointers have no Lua form.
func toLua(v variant.Variant) lua.LValue {
	switch v.Kind() {
	case variant.KindBool:
		return lua.LBool(v.AsBool())
	case variant.KindChar:
		return lua.LString(string(rune(v.AsChar())))
	case variant.KindNumber:
		return lua.LNumber(v.Float64Value())
	case variant.KindString:
		return lua.LString(v.AsString())
	case variant.KindBuffer:
		return lua.LString(v.AsBytes())
	default:
		return lua.LNil
	}
}

// listTable converts a list's values to a Lua array.
func listTable(L *lua.LState, l *store.List) *lua.LTable {
	values := l.Values()
	tbl := L.CreateTable(len(values), 0)
	for _, v := range values {
		tbl.Append(toLua(v))
	}
	return tbl
}

// toGo converts a Lua value to a native value Section.Import accepts.
// Integral numbers become int64.
func toGo(lv lua.LValue) any {
	return toGoVisited(lv, make(map[*lua.LTable]bool))
}

func toGoVisited(lv lua.LValue, visited map[*lua.LTable]bool) any {
	switch v := lv.(type) {
	case lua.LBool:
		return bool(v)
	case lua.LNumber:
		f := float64(v)
		if f == float64(int64(f)) {
			return int64(f)
		}
		return f
	case lua.LString:
		return string(v)
	case *lua.LTable:
		if visited[v] {
			return nil
		}
		visited[v] = true
		defer delete(visited, v)
		return tableToGo(v, visited)
	default:
		return nil
	}
}

// tableToGo returns a slice for a table whose keys are exactly 1..n and a
// map otherwise.
func tableToGo(t *lua.LTable, visited map[*lua.LTable]bool) any {
	n := t.Len()
	count := 0
	t.ForEach(func(_, _ lua.LValue) { count++ })

	if n > 0 && count == n {
		arr := make([]any, n)
		for i := 1; i <= n; i++ {
			arr[i-1] = toGoVisited(t.RawGetInt(i), visited)
		}
		return arr
	}

	m := make(map[string]any, count)
	t.ForEach(func(k, v lua.LValue) {
		var key string
		switch kv := k.(type) {
		case lua.LString:
			key = string(kv)
		case lua.LNumber:
			key = strconv.FormatFloat(float64(kv), 'f', -1, 64)
		default:
			key = k.String()
		}
		m[key] = toGoVisited(v, visited)
	})
	return m
}
