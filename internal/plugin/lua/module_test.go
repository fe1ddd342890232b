package lua

import (
	"strings"
	"testing"

	glua "github.com/yuin/gopher-lua"

	"github.com/dshills/clickaway/internal/clickaway"
	"github.com/dshills/clickaway/internal/input/mouse"
	"github.com/dshills/clickaway/internal/renderer/core"
)

type nopSurface struct{}

func (nopSurface) AddClickListener(clickaway.ClickListener)    {}
func (nopSurface) RemoveClickListener(clickaway.ClickListener) {}

type fakeHost struct {
	reg      *clickaway.Registry
	queue    *clickaway.Queue
	status   []string
	popovers map[int]PopoverSpec
	nextPop  int
}

func newFakeHost() *fakeHost {
	q := clickaway.NewQueue()
	return &fakeHost{
		reg:      clickaway.New(nopSurface{}, q),
		queue:    q,
		popovers: make(map[int]PopoverSpec),
	}
}

func (h *fakeHost) Watch(spec clickaway.Spec) (clickaway.Handle, error) {
	return h.reg.Register(spec)
}

func (h *fakeHost) Unwatch(handle clickaway.Handle) {
	h.reg.Unregister(handle)
}

func (h *fakeHost) OpenPopover(spec PopoverSpec) (int, error) {
	h.nextPop++
	h.popovers[h.nextPop] = spec
	return h.nextPop, nil
}

func (h *fakeHost) ClosePopover(id int) bool {
	spec, ok := h.popovers[id]
	if !ok {
		return false
	}
	delete(h.popovers, id)
	if spec.OnClose != nil {
		spec.OnClose("requested")
	}
	return true
}

func (h *fakeHost) SetStatus(msg string) {
	h.status = append(h.status, msg)
}

func setup(t *testing.T) (*State, *Module, *fakeHost) {
	t.Helper()
	state := NewState()
	t.Cleanup(func() { state.Close() })
	host := newFakeHost()
	m := NewModule(state, host, nil)
	m.Install()
	return state, m, host
}

func TestWatchAndDispatch(t *testing.T) {
	state, m, host := setup(t)

	err := state.DoString(`
		hits = {}
		id = clickaway.watch{
			container = {row = 0, col = 0, height = 5, width = 10},
			ignore = {{10, 10, 2, 2}},
			on_outside = function(ev)
				table.insert(hits, ev.row .. "," .. ev.col .. ":" .. ev.button .. ":" .. ev.detail)
				clickaway.status("outside")
			end,
		}
	`)
	if err != nil {
		t.Fatalf("script failed: %v", err)
	}
	if m.Len() != 1 || host.reg.Pending() != 1 {
		t.Fatalf("expected one pending watch, len=%d pending=%d", m.Len(), host.reg.Pending())
	}
	host.queue.Flush()

	host.reg.HandleClick(mouse.NewClick(core.NewScreenPos(2, 2)))   // inside
	host.reg.HandleClick(mouse.NewClick(core.NewScreenPos(11, 11))) // ignored
	host.reg.HandleClick(mouse.NewClick(core.NewScreenPos(20, 30))) // outside

	hits := state.GetGlobal("hits").(*glua.LTable)
	if hits.Len() != 1 || hits.RawGetInt(1).String() != "20,30:left:1" {
		t.Errorf("unexpected hits %v", hits.RawGetInt(1))
	}
	if len(host.status) != 1 || host.status[0] != "outside" {
		t.Errorf("unexpected status %v", host.status)
	}
	if state.GetGlobal("id") != glua.LNumber(1) {
		t.Errorf("expected id 1, got %v", state.GetGlobal("id"))
	}
}

func TestWatchConsume(t *testing.T) {
	state, _, host := setup(t)

	err := state.DoString(`
		older = 0
		clickaway.watch{on_outside = function(ev) older = older + 1 end}
		clickaway.watch{on_outside = function(ev) ev:consume() end}
	`)
	if err != nil {
		t.Fatal(err)
	}
	host.queue.Flush()

	ev := mouse.NewClick(core.NewScreenPos(1, 1))
	host.reg.HandleClick(ev)
	if !ev.DefaultPrevented() {
		t.Error("ev:consume() should prevent the default")
	}
	if state.GetGlobal("older") != glua.LNumber(0) {
		t.Error("older watcher should not run after consume")
	}
}

func TestUnwatch(t *testing.T) {
	state, m, host := setup(t)

	err := state.DoString(`
		id = clickaway.watch{on_outside = function() end}
		first = clickaway.unwatch(id)
		second = clickaway.unwatch(id)
		count = clickaway.watches()
	`)
	if err != nil {
		t.Fatal(err)
	}
	if state.GetGlobal("first") != glua.LTrue || state.GetGlobal("second") != glua.LFalse {
		t.Error("unwatch should succeed once")
	}
	if state.GetGlobal("count") != glua.LNumber(0) || m.Len() != 0 {
		t.Error("no watches should remain")
	}
	host.queue.Flush()
	if host.reg.Len() != 0 {
		t.Errorf("pending watch should have been cancelled, len=%d", host.reg.Len())
	}
}

func TestWatchValidation(t *testing.T) {
	state, _, _ := setup(t)

	tests := map[string]string{
		"no callback":   `clickaway.watch{}`,
		"bad container": `clickaway.watch{container = {1, 2}, on_outside = function() end}`,
		"bad ignore":    `clickaway.watch{ignore = 3, on_outside = function() end}`,
		"negative size": `clickaway.watch{container = {0, 0, -1, 4}, on_outside = function() end}`,
	}
	for name, code := range tests {
		t.Run(name, func(t *testing.T) {
			if err := state.DoString(code); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestCallbackErrorPanics(t *testing.T) {
	state, _, host := setup(t)

	if err := state.DoString(`clickaway.watch{on_outside = function() error("broken") end}`); err != nil {
		t.Fatal(err)
	}
	host.queue.Flush()

	func() {
		defer func() {
			r := recover()
			err, ok := r.(*glua.ApiError)
			if !ok || !strings.Contains(err.Error(), "broken") {
				t.Errorf("expected ApiError panic, got %v", r)
			}
		}()
		host.reg.HandleClick(mouse.NewClick(core.NewScreenPos(0, 0)))
	}()

	if host.reg.Len() != 1 {
		t.Error("registry should be intact after a callback panic")
	}
}

func TestPopover(t *testing.T) {
	state, _, host := setup(t)

	err := state.DoString(`
		reason = nil
		pid = clickaway.popover{
			title = "Info",
			rect = {row = 3, col = 4, height = 4, width = 20},
			lines = {"one", "two"},
			modal = true,
			on_close = function(r) reason = r end,
		}
		closed = clickaway.close(pid)
		again = clickaway.close(pid)
	`)
	if err != nil {
		t.Fatalf("script failed: %v", err)
	}

	if state.GetGlobal("pid") != glua.LNumber(1) {
		t.Errorf("expected popover id 1")
	}
	if state.GetGlobal("closed") != glua.LTrue || state.GetGlobal("again") != glua.LFalse {
		t.Error("close should succeed once")
	}
	if len(host.popovers) != 0 {
		t.Errorf("expected no open popovers, got %d", len(host.popovers))
	}
	// Close from inside the script re-enters Lua for on_close
	if state.GetGlobal("reason") != glua.LString("requested") {
		t.Errorf("on_close not called, reason=%v", state.GetGlobal("reason"))
	}
}

func TestPopoverSpec(t *testing.T) {
	state, _, host := setup(t)

	if err := state.DoString(`clickaway.popover{title = "T", rect = {1, 2, 3, 4}, lines = {"a"}}`); err != nil {
		t.Fatal(err)
	}
	spec := host.popovers[1]
	if spec.Title != "T" || spec.Modal || len(spec.Lines) != 1 {
		t.Errorf("unexpected spec %+v", spec)
	}
	if !spec.Bounds.Equals(core.RectFromSize(1, 2, 3, 4)) {
		t.Errorf("unexpected bounds %+v", spec.Bounds)
	}

	if err := state.DoString(`clickaway.popover{title = "no rect"}`); err == nil {
		t.Error("popover without rect should fail")
	}
}

func TestModuleClose(t *testing.T) {
	state, m, host := setup(t)

	if err := state.DoString(`
		clickaway.watch{on_outside = function() end}
		clickaway.watch{on_outside = function() end}
	`); err != nil {
		t.Fatal(err)
	}
	host.queue.Flush()
	m.Close()

	if m.Len() != 0 || host.reg.Len() != 0 {
		t.Errorf("Close should unwatch everything, module=%d registry=%d", m.Len(), host.reg.Len())
	}
}
