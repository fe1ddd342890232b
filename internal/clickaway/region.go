package clickaway

import (
	"sync"

	"github.com/dshills/clickaway/internal/renderer/core"
)

// Region is an area of the screen that can be tested for containment.
type Region interface {
	// Contains reports whether pos falls on the region or a descendant of it.
	Contains(pos core.ScreenPos) bool
}

// contains reports whether r contains pos. A nil region contains nothing.
func contains(r Region, pos core.ScreenPos) bool {
	if r == nil {
		return false
	}
	return r.Contains(pos)
}

// Rect is a fixed rectangular region.
type Rect core.ScreenRect

// Contains implements Region.
func (r Rect) Contains(pos core.ScreenPos) bool {
	return core.ScreenRect(r).Contains(pos)
}

// Ref holds a region that may come and go, like a widget that is mounted
// and unmounted. An empty Ref contains nothing. Ref is safe for concurrent use.
type Ref struct {
	mu      sync.RWMutex
	current Region
}

// NewRef creates a Ref pointing at r, which may be nil.
func NewRef(r Region) *Ref {
	return &Ref{current: r}
}

// Set points the Ref at r.
func (ref *Ref) Set(r Region) {
	ref.mu.Lock()
	defer ref.mu.Unlock()
	ref.current = r
}

// Clear empties the Ref.
func (ref *Ref) Clear() {
	ref.Set(nil)
}

// Current returns the region the Ref points at, or nil.
func (ref *Ref) Current() Region {
	if ref == nil {
		return nil
	}
	ref.mu.RLock()
	defer ref.mu.RUnlock()
	return ref.current
}

// Contains implements Region.
func (ref *Ref) Contains(pos core.ScreenPos) bool {
	return contains(ref.Current(), pos)
}

// Node is a rectangular region with child regions. Children may extend
// beyond their parent's bounds; a node contains every cell any of its
// descendants contains.
//
// Node is not safe for concurrent use; it belongs to the UI goroutine.
type Node struct {
	bounds   core.ScreenRect
	hidden   bool
	parent   *Node
	children []*Node
}

// NewNode creates a node covering bounds.
func NewNode(bounds core.ScreenRect) *Node {
	return &Node{bounds: bounds}
}

// Bounds returns the node's own rectangle.
func (n *Node) Bounds() core.ScreenRect {
	return n.bounds
}

// SetBounds moves or resizes the node.
func (n *Node) SetBounds(bounds core.ScreenRect) {
	n.bounds = bounds
}

// SetHidden hides or shows the node. A hidden node and its subtree
// contain nothing.
func (n *Node) SetHidden(hidden bool) {
	n.hidden = hidden
}

// Hidden reports whether the node is hidden.
func (n *Node) Hidden() bool {
	return n.hidden
}

// Append attaches child under n, detaching it from any previous parent.
func (n *Node) Append(child *Node) {
	if child == nil || child == n {
		return
	}
	if child.parent != nil {
		child.parent.Remove(child)
	}
	child.parent = n
	n.children = append(n.children, child)
}

// Remove detaches child from n. Removing a node that is not a child is a no-op.
func (n *Node) Remove(child *Node) {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.parent = nil
			return
		}
	}
}

// Parent returns the node's parent, or nil.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the node's children.
func (n *Node) Children() []*Node {
	return n.children
}

// Contains implements Region.
func (n *Node) Contains(pos core.ScreenPos) bool {
	if n == nil || n.hidden {
		return false
	}
	if n.bounds.Contains(pos) {
		return true
	}
	for _, c := range n.children {
		if c.Contains(pos) {
			return true
		}
	}
	return false
}
