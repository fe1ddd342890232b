package ui

import (
	"github.com/dshills/clickaway/internal/clickaway"
	"github.com/dshills/clickaway/internal/input/mouse"
	"github.com/dshills/clickaway/internal/renderer/backend"
	"github.com/dshills/clickaway/internal/renderer/core"
)

// Button is a one-row clickable label.
type Button struct {
	label string
	node  *clickaway.Node
	theme *Theme

	// OnPress is called for a primary click on the button.
	OnPress func(ev *mouse.Event)

	// Exclusive buttons consume the clicks they handle, so outside-click
	// watchers never see them.
	Exclusive bool

	// Active draws the button highlighted.
	Active bool
}

// NewButton creates a button whose top-left cell is at pos.
func NewButton(label string, pos core.ScreenPos, theme *Theme) *Button {
	b := &Button{label: label, theme: theme}
	b.node = clickaway.NewNode(core.RectFromSize(pos.Row, pos.Col, 1, buttonWidth(label)))
	return b
}

func buttonWidth(label string) int {
	return core.StringWidth(label) + 2
}

// Label returns the button text.
func (b *Button) Label() string {
	return b.label
}

// SetLabel changes the text and resizes the button.
func (b *Button) SetLabel(label string) {
	b.label = label
	bounds := b.node.Bounds()
	b.node.SetBounds(core.RectFromSize(bounds.Top, bounds.Left, 1, buttonWidth(label)))
}

// Node returns the cells the button occupies.
func (b *Button) Node() *clickaway.Node {
	return b.node
}

// HandleClick presses the button if ev is a primary click inside it.
// It reports whether the click was handled.
func (b *Button) HandleClick(ev *mouse.Event) bool {
	if ev == nil || ev.DefaultPrevented() || !ev.IsPrimary() || !b.node.Contains(ev.Position) {
		return false
	}
	if b.Exclusive {
		ev.PreventDefault()
	}
	if b.OnPress != nil {
		b.OnPress(ev)
	}
	return true
}

// Draw renders the button.
func (b *Button) Draw(be backend.Backend) {
	if b.node.Hidden() {
		return
	}
	style := b.theme.Button
	if b.Active {
		style = b.theme.ButtonActive
	}
	bounds := b.node.Bounds()
	be.Fill(bounds, core.NewStyledCell(' ', style))
	drawText(be, bounds.Top, bounds.Left+1, bounds.Right-1, b.label, style)
}
