package clickaway

import (
	"testing"

	"github.com/dshills/clickaway/internal/input/mouse"
	"github.com/dshills/clickaway/internal/renderer/core"
)

func click(row, col int) *mouse.Event {
	return mouse.NewClick(core.NewScreenPos(row, col))
}

func clickWith(row, col int, b mouse.Button) *mouse.Event {
	ev := click(row, col)
	ev.Button = b
	return ev
}

func TestShouldInvokeScenario(t *testing.T) {
	container := Rect(core.NewScreenRect(0, 0, 100, 100))
	ignored := []Region{Rect(core.NewScreenRect(150, 150, 200, 200))}

	tests := []struct {
		name string
		ev   *mouse.Event
		want bool
	}{
		{"outside everything", click(300, 300), true},
		{"inside container", click(50, 50), false},
		{"inside ignored region", click(175, 175), false},
		{"right click outside", clickWith(300, 300, mouse.ButtonRight), false},
		{"middle click outside", clickWith(300, 300, mouse.ButtonMiddle), false},
		{"touch outside", mouse.NewTouch(core.NewScreenPos(300, 300)), true},
		{"touch inside", mouse.NewTouch(core.NewScreenPos(50, 50)), false},
		{"nil event", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShouldInvoke(tt.ev, container, ignored); got != tt.want {
				t.Errorf("ShouldInvoke = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestShouldInvokeContainerWinsOverIgnore(t *testing.T) {
	container := Rect(core.NewScreenRect(0, 0, 10, 10))
	// Ignored region overlapping the container does not change the outcome
	ignored := []Region{Rect(core.NewScreenRect(0, 0, 10, 10))}

	if ShouldInvoke(click(5, 5), container, ignored) {
		t.Error("click inside container must never invoke")
	}
	if ShouldInvoke(click(5, 5), container, nil) {
		t.Error("click inside container must never invoke without ignores")
	}
}

func TestShouldInvokeIgnoreOrderIrrelevant(t *testing.T) {
	container := Rect(core.NewScreenRect(0, 0, 1, 1))
	a := Rect(core.NewScreenRect(10, 10, 20, 20))
	b := Rect(core.NewScreenRect(30, 30, 40, 40))

	for _, pos := range []core.ScreenPos{{Row: 15, Col: 15}, {Row: 35, Col: 35}, {Row: 50, Col: 50}} {
		ev := mouse.NewClick(pos)
		ab := ShouldInvoke(ev, container, []Region{a, b})
		ba := ShouldInvoke(ev, container, []Region{b, a})
		if ab != ba {
			t.Errorf("order changed outcome at %+v: %v vs %v", pos, ab, ba)
		}
	}
}

func TestShouldInvokeStaleRegions(t *testing.T) {
	unmounted := NewRef(nil)
	var nilNode *Node

	// Stale container: everything is outside
	if !ShouldInvoke(click(5, 5), unmounted, nil) {
		t.Error("unmounted container should contain nothing")
	}
	if !ShouldInvoke(click(5, 5), nil, nil) {
		t.Error("nil container should contain nothing")
	}
	if !ShouldInvoke(click(5, 5), nilNode, []Region{nil, unmounted}) {
		t.Error("stale ignored regions should contain nothing")
	}
}

func TestShouldInvokeDescendants(t *testing.T) {
	popover := NewNode(core.NewScreenRect(0, 0, 5, 20))
	submenu := NewNode(core.NewScreenRect(2, 20, 8, 35))
	popover.Append(submenu)

	if ShouldInvoke(click(4, 30), popover, nil) {
		t.Error("click in a descendant is inside the container")
	}
	if !ShouldInvoke(click(10, 30), popover, nil) {
		t.Error("click below everything is outside")
	}
}
