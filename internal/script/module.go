package script

import (
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/confstore/internal/store"
	"github.com/dshills/confstore/internal/variant"
)

const moduleName = "confstore"

// registerModule installs the confstore table. Section paths are dotted
// names relative to the root; "" is the root itself.
func (s *State) registerModule() {
	funcs := map[string]lua.LGFunction{
		"get":            s.get,
		"set":            s.set,
		"add_section":    s.addSection,
		"remove_entry":   s.removeEntry,
		"remove_section": s.removeSection,
		"entries":        s.entries,
		"sections":       s.sections,
		"read":           s.read,
		"write":          s.write,
		"on":             s.on,
		"off":            s.off,
	}

	mod := s.L.NewTable()
	for name, fn := range funcs {
		s.L.SetField(mod, name, s.L.NewFunction(s.counted(fn)))
	}
	s.L.SetField(mod, "name", lua.LString(s.cfg.Name()))
	s.L.SetGlobal(moduleName, mod)
}

// counted charges fn against the call limit and delivers the events its
// mutation queued before returning to Lua.
func (s *State) counted(fn lua.LGFunction) lua.LGFunction {
	return func(L *lua.LState) int {
		s.calls++
		if s.callLimit > 0 && s.calls > s.callLimit {
			s.limitHit = true
			L.RaiseError("%s", ErrCallLimit)
			return 0
		}
		n := fn(L)
		s.drain()
		return n
	}
}

// section resolves a dotted path from the root.
func (s *State) section(path string, create bool) *store.Section {
	return s.cfg.Root().Descend(path, create)
}

// splitPath returns the parent path and last name of a dotted path.
func splitPath(path string) (string, string) {
	if i := strings.LastIndexByte(path, '.'); i >= 0 {
		return path[:i], path[i+1:]
	}
	return "", path
}

// get(path, name) -> value or nil
// Returns the entry's value, or the list's values as an array.
func (s *State) get(L *lua.LState) int {
	path := L.CheckString(1)
	name := L.CheckString(2)

	sec := s.section(path, false)
	if sec == nil {
		L.Push(lua.LNil)
		return 1
	}
	if e := sec.GetEntry(name); e != nil {
		L.Push(toLua(e.Value()))
		return 1
	}
	if l := sec.GetList(name); l != nil {
		L.Push(listTable(L, l))
		return 1
	}
	L.Push(lua.LNil)
	return 1
}

// set(path, name, value)
// Tables become sections, nil clears the entry, and scalars overwrite it.
func (s *State) set(L *lua.LState) int {
	path := L.CheckString(1)
	name := L.CheckString(2)
	value := L.Get(3)

	if name == "" {
		L.ArgError(2, "name cannot be empty")
		return 0
	}
	switch value.Type() {
	case lua.LTFunction, lua.LTUserData, lua.LTThread, lua.LTChannel:
		L.ArgError(3, "unsupported value type "+value.Type().String())
		return 0
	}

	sec := s.section(path, true)
	if value == lua.LNil {
		sec.AddEntry(name).Clear()
		return 0
	}
	sec.Import(name, toGo(value), true)
	return 0
}

// add_section(path) -> true
func (s *State) addSection(L *lua.LState) int {
	path := L.CheckString(1)
	if path == "" {
		L.ArgError(1, "path cannot be empty")
		return 0
	}
	s.section(path, true)
	L.Push(lua.LTrue)
	return 1
}

// remove_entry(path, name) -> bool
func (s *State) removeEntry(L *lua.LState) int {
	path := L.CheckString(1)
	name := L.CheckString(2)

	sec := s.section(path, false)
	L.Push(lua.LBool(sec != nil && sec.RemoveEntry(name)))
	return 1
}

// remove_section(path) -> bool
func (s *State) removeSection(L *lua.LState) int {
	path := L.CheckString(1)
	if path == "" {
		L.ArgError(1, "cannot remove the root section")
		return 0
	}

	parent, name := splitPath(path)
	sec := s.section(parent, false)
	L.Push(lua.LBool(sec != nil && sec.RemoveSection(name)))
	return 1
}

// entries(path) -> array of entry names in insertion order
func (s *State) entries(L *lua.LState) int {
	return s.childNames(L, store.ItemEntry)
}

// sections(path) -> array of section names in insertion order
func (s *State) sections(L *lua.LState) int {
	return s.childNames(L, store.ItemSection)
}

func (s *State) childNames(L *lua.LState, kind store.ItemKind) int {
	path := L.CheckString(1)

	tbl := L.NewTable()
	if sec := s.section(path, false); sec != nil {
		for _, it := range sec.Children() {
			if it.Kind() == kind {
				tbl.Append(lua.LString(it.Name()))
			}
		}
	}
	L.Push(tbl)
	return 1
}

// read(json [, overwrite]) -> true or nil, message
func (s *State) read(L *lua.LState) int {
	doc := L.CheckString(1)
	overwrite := L.OptBool(2, false)

	if err := s.cfg.Read([]byte(doc), overwrite); err != nil {
		L.Push(lua.LNil)
		L.Push(lua.LString(err.Error()))
		return 2
	}
	L.Push(lua.LTrue)
	return 1
}

// write([pretty]) -> string or nil when the config is empty
func (s *State) write(L *lua.LState) int {
	var out []byte
	if L.OptBool(1, false) {
		out = s.cfg.WritePretty()
	} else {
		out = s.cfg.Write()
	}
	if out == nil {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LString(out))
	return 1
}

// on(event, path, fn) -> id or nil, message
// fn is called as fn(event, name, value). value is the entry's value for
// entry events and nil otherwise.
func (s *State) on(L *lua.LState) int {
	eventName := L.CheckString(1)
	path := L.CheckString(2)
	fn := L.CheckFunction(3)

	event, ok := store.ParseEvent(eventName)
	if !ok {
		L.Push(lua.LNil)
		L.Push(lua.LString("unknown event " + eventName))
		return 2
	}

	s.nextID++
	sub := &subscription{
		id:      s.nextID,
		state:   s,
		event:   event,
		section: s.section(path, true),
		fn:      fn,
	}
	if !sub.section.AddCallback(event, deliver, sub) {
		L.Push(lua.LNil)
		L.Push(lua.LString("callback not registered"))
		return 2
	}
	sub.section.Retain()
	s.subs[sub.id] = sub

	L.Push(lua.LNumber(sub.id))
	return 1
}

// off(id) -> bool
func (s *State) off(L *lua.LState) int {
	id := L.CheckInt(1)

	sub, ok := s.subs[id]
	if ok {
		sub.cancel()
		delete(s.subs, id)
	}
	L.Push(lua.LBool(ok))
	return 1
}

// subscription binds a Lua handler to one section event.
type subscription struct {
	id      int
	state   *State
	event   store.Event
	section *store.Section
	fn      *lua.LFunction
}

func (sub *subscription) cancel() {
	sub.section.RemoveCallback(sub.event, deliver, sub)
	sub.section.Release()
}

// delivery is a queued event for a Lua handler.
type delivery struct {
	sub   *subscription
	event store.Event
	name  string
	value variant.Variant
}

// deliver is the store callback for every subscription. It may run on any
// goroutine, so it only queues.
func deliver(event store.Event, item store.Item, arg any) {
	sub := arg.(*subscription)
	d := delivery{sub: sub, event: event, name: item.Name()}
	if e := item.Entry(); e != nil {
		d.value = e.Value()
	}

	s := sub.state
	s.pendingMu.Lock()
	s.pending = append(s.pending, d)
	s.pendingMu.Unlock()
}

// drain calls queued handlers in order until the queue is empty. Events
// raised by the handlers themselves are delivered in the same pass. It must
// be called with s.mu held.
func (s *State) drain() {
	if s.draining {
		return
	}
	s.draining = true
	defer func() { s.draining = false }()

	for {
		s.pendingMu.Lock()
		if len(s.pending) == 0 || s.limitHit {
			s.pending = nil
			s.pendingMu.Unlock()
			return
		}
		d := s.pending[0]
		s.pending = s.pending[1:]
		s.pendingMu.Unlock()

		if s.subs[d.sub.id] != d.sub {
			continue
		}
		err := s.L.CallByParam(lua.P{Fn: d.sub.fn, NRet: 0, Protect: true},
			lua.LString(d.event.String()), lua.LString(d.name), toLua(d.value))
		if err != nil {
			s.logger.Warn("script handler failed", "event", d.event.String(), "name", d.name, "error", err)
		}
	}
}
