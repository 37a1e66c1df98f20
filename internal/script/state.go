// Package script runs Lua scripts against a Config.
//
// Scripts see a global table named confstore (also returned by
// require("confstore")) with functions to read and mutate the Config and
// to subscribe Lua functions to section events. The Lua state is
// sandboxed: only the base, table, string and math libraries are opened,
// and functions that load code from files or strings are removed.
package script

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/confstore/internal/store"
)

// DefaultCallLimit is the default number of confstore calls allowed per run.
const DefaultCallLimit = 1_000_000

// State wraps a gopher-lua state bound to one Config.
//
// gopher-lua's LState is not goroutine-safe. The mutex serializes every
// entry into Lua from Go. Section events raised on other goroutines are
// queued and delivered to Lua handlers by the goroutine that runs the next
// script call or Dispatch.
type State struct {
	L *lua.LState

	mu  sync.Mutex
	cfg *store.Config

	callLimit int64
	calls     int64
	limitHit  bool

	logger *slog.Logger

	subs   map[int]*subscription
	nextID int

	pendingMu sync.Mutex
	pending   []delivery
	draining  bool

	closed bool
}

// StateOption configures a State.
type StateOption func(*State)

// WithCallLimit sets the maximum number of confstore calls per run,
// including calls made by event handlers. Zero disables the limit.
func WithCallLimit(limit int64) StateOption {
	return func(s *State) {
		if limit >= 0 {
			s.callLimit = limit
		}
	}
}

// WithLogger sets the logger for handler failures.
func WithLogger(l *slog.Logger) StateOption {
	return func(s *State) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewState creates a sandboxed Lua state bound to cfg. The state holds a
// reference to cfg until Close.
func NewState(cfg *store.Config, opts ...StateOption) (*State, error) {
	if cfg == nil {
		return nil, fmt.Errorf("script: nil config")
	}

	s := &State{
		cfg:       cfg,
		callLimit: DefaultCallLimit,
		logger:    slog.New(slog.DiscardHandler),
		subs:      make(map[int]*subscription),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.L = lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(s.L)
	s.registerModule()
	installSandbox(s.L)

	cfg.Retain()
	return s, nil
}

// openSafeLibraries opens only the Lua libraries with no host access.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// installSandbox removes functions that load code and replaces require with
// one that only returns already-opened modules.
func installSandbox(L *lua.LState) {
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "module"} {
		L.SetGlobal(name, lua.LNil)
	}

	available := map[string]bool{
		"string": true, "table": true, "math": true, moduleName: true,
	}
	L.SetGlobal("require", L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		if !available[name] {
			L.RaiseError("module %q is not available", name)
			return 0
		}
		L.Push(L.GetGlobal(name))
		return 1
	}))
}

// Config returns the bound config.
func (s *State) Config() *store.Config { return s.cfg }

// Run executes Lua source. name labels the chunk in error messages.
// Cancelling ctx stops the script.
func (s *State) Run(ctx context.Context, name, code string) error {
	return s.exec(ctx, func() error {
		fn, err := s.L.Load(strings.NewReader(code), name)
		if err != nil {
			return err
		}
		s.L.Push(fn)
		return s.L.PCall(0, lua.MultRet, nil)
	})
}

// RunFile executes the Lua file at path.
func (s *State) RunFile(ctx context.Context, path string) error {
	return s.exec(ctx, func() error {
		return s.L.DoFile(path)
	})
}

// exec runs fn with the state locked, the call counter reset, and ctx
// installed, then delivers any events still queued.
func (s *State) exec(ctx context.Context, fn func() error) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStateClosed
	}

	if ctx == nil {
		ctx = context.Background()
	}
	s.calls = 0
	s.limitHit = false
	top := s.L.GetTop()
	s.L.SetContext(ctx)
	defer func() {
		s.L.RemoveContext()
		s.L.SetTop(top)
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()

	if err := fn(); err != nil {
		return s.wrap(ctx, err)
	}
	s.drain()
	if s.limitHit {
		return ErrCallLimit
	}
	return nil
}

func (s *State) wrap(ctx context.Context, err error) error {
	if s.limitHit {
		return fmt.Errorf("%w: %v", ErrCallLimit, err)
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("script: %w", ctxErr)
	}
	return fmt.Errorf("script: %w", err)
}

// Dispatch delivers queued section events to their Lua handlers on the
// calling goroutine.
func (s *State) Dispatch() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStateClosed
	}
	s.calls = 0
	s.limitHit = false
	s.drain()
	if s.limitHit {
		return ErrCallLimit
	}
	return nil
}

// Pending returns the number of queued events.
func (s *State) Pending() int {
	s.pendingMu.Lock()
	defer s.pendingMu.Unlock()
	return len(s.pending)
}

// GetGlobal returns a global variable value.
func (s *State) GetGlobal(name string) lua.LValue {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return lua.LNil
	}
	return s.L.GetGlobal(name)
}

// IsClosed returns true if the state has been closed.
func (s *State) IsClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Close unsubscribes every handler, closes the Lua state and releases the
// config. After Close all other methods return ErrStateClosed.
func (s *State) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	for id, sub := range s.subs {
		sub.cancel()
		delete(s.subs, id)
	}
	s.pendingMu.Lock()
	s.pending = nil
	s.pendingMu.Unlock()

	s.L.Close()
	s.cfg.Release()
	return nil
}
