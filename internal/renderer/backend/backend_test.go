package backend

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/clickaway/internal/renderer/core"
)

func TestNullBackendInit(t *testing.T) {
	b := NewNullBackend(80, 24)
	if err := b.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	w, h := b.Size()
	if w != 80 || h != 24 {
		t.Errorf("expected size (80, 24), got (%d, %d)", w, h)
	}
}

func TestNullBackendSetGetCell(t *testing.T) {
	b := NewNullBackend(80, 24)
	b.Init()

	cell := core.NewStyledCell('X', core.DefaultStyle().WithForeground(core.ColorWhite))
	b.SetCell(10, 5, cell)

	got := b.GetCell(10, 5)
	if !got.Equals(cell) {
		t.Errorf("cell mismatch: expected %+v, got %+v", cell, got)
	}

	// Out of bounds should be ignored/return empty
	b.SetCell(-1, 0, cell)
	b.SetCell(100, 0, cell)

	empty := b.GetCell(-1, 0)
	if !empty.Equals(core.EmptyCell()) {
		t.Error("out of bounds should return empty cell")
	}
}

func TestNullBackendFillAndClear(t *testing.T) {
	b := NewNullBackend(80, 24)
	b.Init()

	cell := core.NewCell('.')
	b.Fill(core.NewScreenRect(5, 10, 10, 20), cell)

	if got := b.GetCell(15, 7); !got.Equals(cell) {
		t.Error("cell inside rect should be filled")
	}
	if got := b.GetCell(0, 0); got.Equals(cell) {
		t.Error("cell outside rect should not be filled")
	}

	b.Clear()
	if got := b.GetCell(15, 7); !got.Equals(core.EmptyCell()) {
		t.Error("clear should reset all cells")
	}
}

func TestNullBackendRow(t *testing.T) {
	b := NewNullBackend(5, 2)
	b.Init()

	b.SetCell(0, 1, core.NewCell('h'))
	b.SetCell(1, 1, core.NewCell('i'))

	if got := b.Row(1); got != "hi   " {
		t.Errorf("expected %q, got %q", "hi   ", got)
	}
	if got := b.Row(7); got != "" {
		t.Errorf("out of range row should be empty, got %q", got)
	}
}

func TestNullBackendEvents(t *testing.T) {
	b := NewNullBackend(80, 24)
	b.Init()

	b.PostEvent(Event{Type: EventMouse, MouseX: 3, MouseY: 4, MouseButton: MouseLeft})

	ev := b.PollEvent()
	if ev.Type != EventMouse {
		t.Fatalf("expected mouse event, got %v", ev.Type)
	}
	if ev.MouseX != 3 || ev.MouseY != 4 || ev.MouseButton != MouseLeft {
		t.Errorf("unexpected event %+v", ev)
	}
}

func TestNullBackendMouseToggle(t *testing.T) {
	b := NewNullBackend(10, 10)
	b.EnableMouse()
	if !b.MouseEnabled() {
		t.Error("mouse should be enabled")
	}
	b.DisableMouse()
	if b.MouseEnabled() {
		t.Error("mouse should be disabled")
	}
}

func TestModMaskHas(t *testing.T) {
	m := ModShift | ModCtrl
	if !m.Has(ModShift) || !m.Has(ModCtrl) {
		t.Error("mask should contain shift and ctrl")
	}
	if m.Has(ModAlt) {
		t.Error("mask should not contain alt")
	}
}

func TestConvertMouseButton(t *testing.T) {
	tests := []struct {
		mask tcell.ButtonMask
		want MouseButton
	}{
		{tcell.Button1, MouseLeft},
		{tcell.Button2, MouseRight},
		{tcell.Button3, MouseMiddle},
		{tcell.WheelUp, MouseWheelUp},
		{tcell.WheelDown, MouseWheelDown},
		{tcell.ButtonNone, MouseNone},
	}
	for _, tt := range tests {
		if got := convertMouseButton(tt.mask); got != tt.want {
			t.Errorf("convertMouseButton(%v) = %v, want %v", tt.mask, got, tt.want)
		}
		if tt.want != MouseNone {
			if back := convertToTcellButton(tt.want); back != tt.mask {
				t.Errorf("convertToTcellButton(%v) = %v, want %v", tt.want, back, tt.mask)
			}
		}
	}
}

func TestTerminalSimulationMouse(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	term := NewTerminalWithScreen(screen)
	if err := term.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer term.Shutdown()

	screen.InjectMouse(7, 3, tcell.Button1, tcell.ModNone)

	ev := term.PollEvent()
	if ev.Type != EventMouse {
		t.Fatalf("expected mouse event, got %v", ev.Type)
	}
	if ev.MouseX != 7 || ev.MouseY != 3 {
		t.Errorf("expected (7, 3), got (%d, %d)", ev.MouseX, ev.MouseY)
	}
	if ev.MouseButton != MouseLeft {
		t.Errorf("expected left button, got %v", ev.MouseButton)
	}
	if ev.Time.IsZero() {
		t.Error("event time should be set")
	}
}

func TestTerminalSimulationCells(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	term := NewTerminalWithScreen(screen)
	if err := term.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer term.Shutdown()

	term.SetCell(2, 1, core.NewStyledCell('Z', core.DefaultStyle().Bold()))

	got := term.GetCell(2, 1)
	if got.Rune != 'Z' {
		t.Errorf("expected 'Z', got %q", got.Rune)
	}
	if !got.Style.Attributes.Has(core.AttrBold) {
		t.Error("expected bold attribute to round-trip")
	}
}
