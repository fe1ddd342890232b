package clickaway

import (
	"testing"

	"github.com/dshills/clickaway/internal/renderer/core"
)

func TestRectContains(t *testing.T) {
	r := Rect(core.NewScreenRect(0, 0, 10, 10))

	if !r.Contains(core.NewScreenPos(5, 5)) {
		t.Error("rect should contain interior cell")
	}
	if r.Contains(core.NewScreenPos(10, 5)) {
		t.Error("bottom edge is exclusive")
	}
}

func TestRefLifecycle(t *testing.T) {
	pos := core.NewScreenPos(1, 1)
	ref := NewRef(nil)

	if ref.Contains(pos) {
		t.Error("empty ref should contain nothing")
	}

	ref.Set(Rect(core.NewScreenRect(0, 0, 5, 5)))
	if !ref.Contains(pos) {
		t.Error("mounted ref should delegate containment")
	}
	if ref.Current() == nil {
		t.Error("Current should return the mounted region")
	}

	ref.Clear()
	if ref.Contains(pos) {
		t.Error("cleared ref should contain nothing")
	}
}

func TestNilRefAndNode(t *testing.T) {
	pos := core.NewScreenPos(0, 0)

	var ref *Ref
	if ref.Contains(pos) {
		t.Error("nil ref should contain nothing")
	}
	if ref.Current() != nil {
		t.Error("nil ref should have no current region")
	}

	var node *Node
	if node.Contains(pos) {
		t.Error("nil node should contain nothing")
	}

	if contains(nil, pos) {
		t.Error("nil region should contain nothing")
	}
}

func TestNodeDescendantContainment(t *testing.T) {
	root := NewNode(core.NewScreenRect(0, 0, 10, 10))
	child := NewNode(core.NewScreenRect(2, 2, 4, 4))
	// Grandchild escapes both ancestors' bounds, like a submenu.
	grandchild := NewNode(core.NewScreenRect(20, 20, 25, 25))

	root.Append(child)
	child.Append(grandchild)

	tests := []struct {
		name string
		pos  core.ScreenPos
		want bool
	}{
		{"own bounds", core.NewScreenPos(9, 9), true},
		{"child", core.NewScreenPos(3, 3), true},
		{"grandchild outside ancestors", core.NewScreenPos(22, 22), true},
		{"nowhere", core.NewScreenPos(15, 15), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := root.Contains(tt.pos); got != tt.want {
				t.Errorf("Contains(%+v) = %v, want %v", tt.pos, got, tt.want)
			}
		})
	}
}

func TestNodeHidden(t *testing.T) {
	root := NewNode(core.NewScreenRect(0, 0, 5, 5))
	child := NewNode(core.NewScreenRect(10, 10, 12, 12))
	root.Append(child)

	child.SetHidden(true)
	if root.Contains(core.NewScreenPos(11, 11)) {
		t.Error("hidden child should contain nothing")
	}
	if !child.Hidden() {
		t.Error("child should report hidden")
	}

	root.SetHidden(true)
	if root.Contains(core.NewScreenPos(1, 1)) {
		t.Error("hidden root should contain nothing")
	}
}

func TestNodeReparent(t *testing.T) {
	a := NewNode(core.NewScreenRect(0, 0, 1, 1))
	b := NewNode(core.NewScreenRect(5, 5, 6, 6))
	child := NewNode(core.NewScreenRect(20, 20, 21, 21))
	pos := core.NewScreenPos(20, 20)

	a.Append(child)
	if !a.Contains(pos) || child.Parent() != a {
		t.Fatal("child should belong to a")
	}

	b.Append(child)
	if a.Contains(pos) {
		t.Error("a should lose the child after reparenting")
	}
	if !b.Contains(pos) || child.Parent() != b {
		t.Error("b should own the child")
	}
	if len(a.Children()) != 0 || len(b.Children()) != 1 {
		t.Errorf("unexpected child counts: a=%d b=%d", len(a.Children()), len(b.Children()))
	}

	b.Remove(child)
	if b.Contains(pos) || child.Parent() != nil {
		t.Error("removed child should be detached")
	}

	// Removing a stranger is a no-op
	b.Remove(a)
	a.Append(nil)
	a.Append(a)
	if len(a.Children()) != 0 {
		t.Error("nil and self appends should be ignored")
	}
}

func TestNodeSetBounds(t *testing.T) {
	n := NewNode(core.NewScreenRect(0, 0, 1, 1))
	n.SetBounds(core.NewScreenRect(5, 5, 6, 6))

	if n.Contains(core.NewScreenPos(0, 0)) {
		t.Error("old bounds should no longer be contained")
	}
	if !n.Bounds().Equals(core.NewScreenRect(5, 5, 6, 6)) {
		t.Errorf("unexpected bounds %+v", n.Bounds())
	}
}
