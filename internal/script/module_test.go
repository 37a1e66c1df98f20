package script

import (
	"context"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/confstore/internal/store"
)

func TestModule_GetSet(t *testing.T) {
	c := newConfig(t)
	c.AddEntryInt32("width", 800, "graphics")
	c.AddEntryChar("grade", 'A', "")
	l := c.AddList("sizes", "")
	l.AppendInt8(1)
	l.AppendString("two")

	s := newState(t, c)
	run(t, s, `
assert(confstore.get("graphics", "width") == 800)
assert(confstore.get("", "grade") == "A")
assert(confstore.get("", "missing") == nil)
assert(confstore.get("nowhere", "width") == nil)

local sizes = confstore.get("", "sizes")
assert(#sizes == 2 and sizes[1] == 1 and sizes[2] == "two")

confstore.set("graphics", "width", 1024)
confstore.set("graphics.window", "title", "demo")
confstore.set("", "ratio", 0.5)
confstore.set("", "on", true)
`)

	if got := c.GetEntry("width", "graphics").GetInt64(); got != 1024 {
		t.Errorf("width = %d, want 1024", got)
	}
	if got := c.GetSection("graphics", "").GetSection("window").GetEntry("title").GetString(); got != "demo" {
		t.Errorf("title = %q, want demo", got)
	}
	if got := c.GetEntry("ratio", "").GetFloat64(); got != 0.5 {
		t.Errorf("ratio = %v, want 0.5", got)
	}
	if !c.GetEntry("on", "").GetBool() {
		t.Error("on = false")
	}
}

func TestModule_SetTable(t *testing.T) {
	c := newConfig(t)
	s := newState(t, c)
	run(t, s, `
confstore.set("", "server", {host = "localhost", port = 8080})
confstore.set("", "ids", {3, 1, 2})
`)

	want := map[string]any{
		"server": map[string]any{"host": "localhost", "port": int64(8080)},
		"ids":    []any{int64(3), int64(1), int64(2)},
	}
	if diff := cmp.Diff(want, c.Root().Export()); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestModule_SetNilClears(t *testing.T) {
	c := newConfig(t)
	c.AddEntryInt32("x", 1, "")
	s := newState(t, c)
	run(t, s, `confstore.set("", "x", nil)`)

	if e := c.GetEntry("x", ""); e == nil || e.IsSet() {
		t.Errorf("entry after set nil = %v, want present and unset", e)
	}
}

func TestModule_SetInvalid(t *testing.T) {
	s := newState(t, newConfig(t))

	for _, code := range []string{
		`confstore.set("", "", 1)`,
		`confstore.set("", "f", function() end)`,
	} {
		if err := s.Run(context.Background(), "invalid", code); err == nil {
			t.Errorf("%s: expected an error", code)
		}
	}
}

func TestModule_Structure(t *testing.T) {
	c := newConfig(t)
	s := newState(t, c)
	run(t, s, `
assert(confstore.add_section("a.b"))
confstore.set("a", "first", 1)
confstore.set("a", "second", 2)
confstore.add_section("a.c")

local e = confstore.entries("a")
assert(#e == 2 and e[1] == "first" and e[2] == "second")
local secs = confstore.sections("a")
assert(#secs == 2 and secs[1] == "b" and secs[2] == "c")
assert(#confstore.entries("missing") == 0)

assert(confstore.remove_entry("a", "first"))
assert(not confstore.remove_entry("a", "first"))
assert(not confstore.remove_entry("missing", "x"))
assert(confstore.remove_section("a.b"))
assert(not confstore.remove_section("a.b"))
assert(not confstore.remove_section("missing.b"))
`)

	a := c.GetSection("a", "")
	if a.NumEntries() != 1 || a.NumSections() != 1 {
		t.Errorf("a has %d entries and %d sections, want 1 and 1", a.NumEntries(), a.NumSections())
	}
	if err := s.Run(context.Background(), "root", `confstore.remove_section("")`); err == nil {
		t.Error("removing the root section succeeded")
	}
}

func TestModule_ReadWrite(t *testing.T) {
	c := newConfig(t)
	c.AddEntryInt32("Width", 800, "Graphics")
	s := newState(t, c)

	run(t, s, `
assert(confstore.read('{"Graphics":{"Width":1024,"Height":768}}'))
assert(confstore.get("Graphics", "Width") == 800)
assert(confstore.get("Graphics", "Height") == 768)
assert(confstore.read('{"Graphics":{"Width":1024}}', true))
assert(confstore.get("Graphics", "Width") == 1024)

local ok, msg = confstore.read('{"broken"')
assert(ok == nil and type(msg) == "string")

out = confstore.write()
pretty = confstore.write(true)
`)

	out, ok := s.GetGlobal("out").(lua.LString)
	if !ok {
		t.Fatalf("write() returned %v", s.GetGlobal("out"))
	}
	if string(out) != string(c.Write()) {
		t.Errorf("write() = %s, want %s", out, c.Write())
	}
	if pretty, ok := s.GetGlobal("pretty").(lua.LString); !ok || string(pretty) != string(c.WritePretty()) {
		t.Errorf("write(true) = %v", s.GetGlobal("pretty"))
	}

	empty := newState(t, newConfig(t))
	run(t, empty, `assert(confstore.write() == nil)`)
}

func TestModule_On(t *testing.T) {
	c := newConfig(t)
	c.AddEntryInt32("Width", 800, "Graphics")
	s := newState(t, c)

	run(t, s, `
seen = {}
id = confstore.on("entry_value_change", "Graphics", function(event, name, value)
  table.insert(seen, event .. ":" .. name .. "=" .. tostring(value))
end)
assert(type(id) == "number")
confstore.set("Graphics", "Width", 1024)
assert(#seen == 1 and seen[1] == "entry_value_change:Width=1024")

confstore.set("Graphics", "Width", 1024)
assert(#seen == 1)

assert(confstore.off(id))
assert(not confstore.off(id))
confstore.set("Graphics", "Width", 640)
assert(#seen == 1)

local bad, msg = confstore.on("no_such_event", "", function() end)
assert(bad == nil and msg ~= nil)
`)

	if n := c.GetSection("Graphics", "").NumCallbacks(store.EntryValueChange); n != 0 {
		t.Errorf("off left %d callbacks", n)
	}
}

func TestModule_OnReentrant(t *testing.T) {
	c := newConfig(t)
	s := newState(t, c)

	run(t, s, `
confstore.on("entry_add", "", function(event, name)
  if name ~= "copy" then
    confstore.set("", "copy", name)
  end
end)
confstore.set("", "first", 1)
assert(confstore.get("", "copy") == "first")
`)
}

func TestModule_OnHandlerErrorLogged(t *testing.T) {
	c := newConfig(t)
	s := newState(t, c)

	run(t, s, `
confstore.on("entry_add", "", function() error("handler failed") end)
after = false
confstore.on("entry_add", "", function() after = true end)
confstore.set("", "x", 1)
assert(after)
`)
}

func TestState_Dispatch(t *testing.T) {
	c := newConfig(t)
	s := newState(t, c)
	run(t, s, `
count = 0
confstore.on("entry_add", "remote", function() count = count + 1 end)
`)

	var wg sync.WaitGroup
	for i := range 5 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.AddEntryInt32(string(rune('a'+i)), int32(i), "remote")
		}()
	}
	wg.Wait()

	if got := s.Pending(); got != 5 {
		t.Fatalf("Pending() = %d, want 5 queued events", got)
	}
	if err := s.Dispatch(); err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if s.Pending() != 0 {
		t.Error("Dispatch left events queued")
	}
	if v, ok := s.GetGlobal("count").(lua.LNumber); !ok || v != 5 {
		t.Errorf("count = %v, want 5", s.GetGlobal("count"))
	}
}

func TestConvert_ToGo(t *testing.T) {
	L := lua.NewState()
	defer L.Close()

	if err := L.DoString(`
v = {
  list = {1, 2.5, "x", true},
  map = {a = 1, [3] = "three"},
  empty = {},
}
`); err != nil {
		t.Fatal(err)
	}

	want := map[string]any{
		"list":  []any{int64(1), 2.5, "x", true},
		"map":   map[string]any{"a": int64(1), "3": "three"},
		"empty": map[string]any{},
	}
	if diff := cmp.Diff(want, toGo(L.GetGlobal("v"))); diff != "" {
		t.Errorf("toGo mismatch (-want +got):\n%s", diff)
	}

	cyclic := L.NewTable()
	cyclic.RawSetString("self", cyclic)
	if diff := cmp.Diff(map[string]any{"self": nil}, toGo(cyclic)); diff != "" {
		t.Errorf("cyclic table mismatch (-want +got):\n%s", diff)
	}
}
