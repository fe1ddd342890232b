package lua

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/clickaway/internal/logging"
)

// DefaultExecutionTimeout bounds how long a script may run when loaded.
const DefaultExecutionTimeout = 5 * time.Second

// State wraps gopher-lua for script execution.
//
// gopher-lua's LState is not goroutine-safe. The mutex serializes Go callers;
// callbacks into Lua must come from the goroutine that owns the event loop.
type State struct {
	L *lua.LState

	mu sync.Mutex

	executionTimeout time.Duration
	sandbox          *Sandbox
	log              *logging.Logger

	// inLua is set while Lua code runs; Go functions called back from that
	// code may re-enter without taking mu.
	inLua  atomic.Bool
	closed bool
}

// StateOption configures a State.
type StateOption func(*State)

// WithExecutionTimeout sets the timeout for DoFile and DoString.
// Zero disables the timeout.
func WithExecutionTimeout(d time.Duration) StateOption {
	return func(s *State) {
		s.executionTimeout = d
	}
}

// WithLogger routes print and script diagnostics to l.
func WithLogger(l *logging.Logger) StateOption {
	return func(s *State) {
		s.log = l.WithComponent("lua")
	}
}

// NewState creates a new sandboxed Lua state.
func NewState(opts ...StateOption) *State {
	state := &State{
		executionTimeout: DefaultExecutionTimeout,
	}
	for _, opt := range opts {
		opt(state)
	}

	L := lua.NewState(lua.Options{
		SkipOpenLibs: true,
	})
	state.L = L

	openSafeLibraries(L)

	state.sandbox = NewSandbox(L, state.log)
	state.sandbox.Install()

	return state
}

// openSafeLibraries opens only safe Lua standard libraries.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	// io, os, debug, package and channel stay closed.
}

// DoFile executes a Lua file.
func (s *State) DoFile(path string) error {
	return s.run(path, func() error {
		return s.L.DoFile(path)
	})
}

// DoString executes Lua source.
func (s *State) DoString(code string) error {
	return s.run("<string>", func() error {
		return s.L.DoString(code)
	})
}

func (s *State) run(source string, fn func() error) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStateClosed
	}
	s.inLua.Store(true)
	defer s.inLua.Store(false)

	if s.executionTimeout > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), s.executionTimeout)
		defer cancel()
		s.L.SetContext(ctx)
		defer s.L.RemoveContext()
	}

	defer func() {
		if r := recover(); r != nil {
			err = &ScriptError{Source: source, Err: fmt.Errorf("lua panic: %v", r)}
		}
	}()

	start := time.Now()
	if err := fn(); err != nil {
		if errors.Is(err, context.DeadlineExceeded) || (s.executionTimeout > 0 && time.Since(start) >= s.executionTimeout) {
			err = fmt.Errorf("%w: %v", ErrExecutionTimeout, err)
		}
		return &ScriptError{Source: source, Err: err}
	}
	s.log.Debug("loaded %s in %s", source, time.Since(start))
	return nil
}

// Call invokes fn with args in protected mode and raises any Lua error as
// a panic carrying the *lua.ApiError.
func (s *State) Call(fn *lua.LFunction, args ...lua.LValue) {
	if s.inLua.Load() {
		s.call(fn, args)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.inLua.Store(true)
	defer s.inLua.Store(false)
	s.call(fn, args)
}

func (s *State) call(fn *lua.LFunction, args []lua.LValue) {
	if err := s.L.CallByParam(lua.P{Fn: fn, NRet: 0, Protect: true}, args...); err != nil {
		panic(err)
	}
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

// RegisterModule installs a global table holding funcs.
func (s *State) RegisterModule(name string, funcs map[string]lua.LGFunction) *lua.LTable {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	mod := s.L.SetFuncs(s.L.NewTable(), funcs)
	s.L.SetGlobal(name, mod)
	return mod
}

// IsClosed returns true if the state has been closed.
func (s *State) IsClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Close releases the Lua state.
func (s *State) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.L.Close()
	s.closed = true
	return nil
}
