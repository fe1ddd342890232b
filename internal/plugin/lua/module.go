package lua

import (
	"fmt"
	"sort"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/clickaway/internal/clickaway"
	"github.com/dshills/clickaway/internal/input/mouse"
	"github.com/dshills/clickaway/internal/logging"
	"github.com/dshills/clickaway/internal/renderer/core"
)

// ModuleName is the global the module is installed under.
const ModuleName = "clickaway"

// PopoverSpec describes a popover created by a script.
type PopoverSpec struct {
	Title  string
	Bounds core.ScreenRect
	Lines  []string
	Modal  bool
	// OnClose receives the close reason name.
	OnClose func(reason string)
}

// Host is what scripts act on.
type Host interface {
	// Watch registers an outside-click watcher.
	Watch(spec clickaway.Spec) (clickaway.Handle, error)
	// Unwatch removes a watcher registered by Watch.
	Unwatch(h clickaway.Handle)
	// OpenPopover creates and opens a popover, returning its id.
	OpenPopover(spec PopoverSpec) (int, error)
	// ClosePopover closes a popover opened by OpenPopover.
	ClosePopover(id int) bool
	// SetStatus shows msg in the status line.
	SetStatus(msg string)
}

// Module implements the clickaway Lua module.
type Module struct {
	state *State
	host  Host
	log   *logging.Logger

	nextID  int
	handles map[int]clickaway.Handle
}

// NewModule creates the module for state, acting on host.
func NewModule(state *State, host Host, log *logging.Logger) *Module {
	return &Module{
		state:   state,
		host:    host,
		log:     log.WithComponent("lua"),
		handles: make(map[int]clickaway.Handle),
	}
}

// Install registers the module as a global in the state.
func (m *Module) Install() {
	m.state.RegisterModule(ModuleName, map[string]lua.LGFunction{
		"watch":   m.watch,
		"unwatch": m.unwatch,
		"watches": m.watches,
		"popover": m.popover,
		"close":   m.closePopover,
		"status":  m.status,
	})
}

// Len returns the number of live watches.
func (m *Module) Len() int {
	return len(m.handles)
}

// Close removes every watch the scripts registered.
func (m *Module) Close() {
	ids := make([]int, 0, len(m.handles))
	for id := range m.handles {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		m.host.Unwatch(m.handles[id])
		delete(m.handles, id)
	}
}

// watch(opts) -> id
func (m *Module) watch(L *lua.LState) int {
	opts := L.CheckTable(1)

	fn, ok := opts.RawGetString("on_outside").(*lua.LFunction)
	if !ok {
		L.ArgError(1, "on_outside must be a function")
		return 0
	}

	spec := clickaway.Spec{
		OnOutside: func(ev *mouse.Event) {
			m.state.Call(fn, m.eventTable(ev))
		},
	}
	if v := opts.RawGetString("container"); v != lua.LNil {
		r, err := toRect(v)
		if err != nil {
			L.ArgError(1, "container: "+err.Error())
			return 0
		}
		spec.Container = clickaway.Rect(r)
	}
	if v := opts.RawGetString("ignore"); v != lua.LNil {
		list, ok := v.(*lua.LTable)
		if !ok {
			L.ArgError(1, "ignore must be a list of rectangles")
			return 0
		}
		for i := 1; i <= list.Len(); i++ {
			r, err := toRect(list.RawGetInt(i))
			if err != nil {
				L.ArgError(1, fmt.Sprintf("ignore[%d]: %v", i, err))
				return 0
			}
			spec.Ignore = append(spec.Ignore, clickaway.Rect(r))
		}
	}

	h, err := m.host.Watch(spec)
	if err != nil {
		L.RaiseError("watch: %v", err)
		return 0
	}

	m.nextID++
	m.handles[m.nextID] = h
	m.log.Debug("script watch %d registered", m.nextID)

	L.Push(lua.LNumber(m.nextID))
	return 1
}

// unwatch(id) -> bool
func (m *Module) unwatch(L *lua.LState) int {
	id := L.CheckInt(1)
	h, ok := m.handles[id]
	if ok {
		m.host.Unwatch(h)
		delete(m.handles, id)
	}
	L.Push(lua.LBool(ok))
	return 1
}

// watches() -> count
func (m *Module) watches(L *lua.LState) int {
	L.Push(lua.LNumber(len(m.handles)))
	return 1
}

// popover{title=, rect=, lines=, modal=, on_close=} -> id
func (m *Module) popover(L *lua.LState) int {
	opts := L.CheckTable(1)

	r, err := toRect(opts.RawGetString("rect"))
	if err != nil {
		L.ArgError(1, "rect: "+err.Error())
		return 0
	}
	spec := PopoverSpec{
		Title:  lua.LVAsString(opts.RawGetString("title")),
		Bounds: r,
		Modal:  lua.LVAsBool(opts.RawGetString("modal")),
	}
	if lines, ok := opts.RawGetString("lines").(*lua.LTable); ok {
		for i := 1; i <= lines.Len(); i++ {
			spec.Lines = append(spec.Lines, lua.LVAsString(lines.RawGetInt(i)))
		}
	}
	if fn, ok := opts.RawGetString("on_close").(*lua.LFunction); ok {
		spec.OnClose = func(reason string) {
			m.state.Call(fn, lua.LString(reason))
		}
	}

	id, err := m.host.OpenPopover(spec)
	if err != nil {
		L.RaiseError("popover: %v", err)
		return 0
	}
	L.Push(lua.LNumber(id))
	return 1
}

// close(id) -> bool
func (m *Module) closePopover(L *lua.LState) int {
	L.Push(lua.LBool(m.host.ClosePopover(L.CheckInt(1))))
	return 1
}

// status(msg)
func (m *Module) status(L *lua.LState) int {
	m.host.SetStatus(L.CheckString(1))
	return 0
}

// eventTable converts ev for a callback. ev:consume() prevents the default.
func (m *Module) eventTable(ev *mouse.Event) *lua.LTable {
	L := m.state.L
	t := L.NewTable()
	t.RawSetString("row", lua.LNumber(ev.Position.Row))
	t.RawSetString("col", lua.LNumber(ev.Position.Col))
	t.RawSetString("button", lua.LString(ev.Button.String()))
	t.RawSetString("source", lua.LString(ev.Source.String()))
	t.RawSetString("detail", lua.LNumber(ev.Detail))
	t.RawSetString("consume", L.NewFunction(func(L *lua.LState) int {
		ev.PreventDefault()
		return 0
	}))
	t.RawSetString("consumed", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LBool(ev.DefaultPrevented()))
		return 1
	}))
	return t
}

// toRect reads {row=, col=, height=, width=} or {row, col, height, width}.
func toRect(v lua.LValue) (core.ScreenRect, error) {
	t, ok := v.(*lua.LTable)
	if !ok {
		return core.ScreenRect{}, fmt.Errorf("expected table, got %s", v.Type())
	}
	var vals [4]int
	for i, name := range [4]string{"row", "col", "height", "width"} {
		f := t.RawGetString(name)
		if f == lua.LNil {
			f = t.RawGetInt(i + 1)
		}
		n, ok := f.(lua.LNumber)
		if !ok {
			return core.ScreenRect{}, fmt.Errorf("missing %s", name)
		}
		vals[i] = int(n)
	}
	if vals[2] < 0 || vals[3] < 0 {
		return core.ScreenRect{}, fmt.Errorf("negative size %dx%d", vals[2], vals[3])
	}
	return core.RectFromSize(vals[0], vals[1], vals[2], vals[3]), nil
}
