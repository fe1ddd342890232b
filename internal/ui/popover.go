package ui

import (
	"github.com/dshills/clickaway/internal/clickaway"
	"github.com/dshills/clickaway/internal/input/mouse"
	"github.com/dshills/clickaway/internal/renderer/backend"
	"github.com/dshills/clickaway/internal/renderer/core"
)

// CloseReason tells an OnClose callback why a popover closed.
type CloseReason int

const (
	// CloseRequested is a Close or Toggle call.
	CloseRequested CloseReason = iota
	// CloseOutside is a click outside the popover.
	CloseOutside
	// CloseParent is the parent popover closing.
	CloseParent
)

// String returns the reason name.
func (r CloseReason) String() string {
	switch r {
	case CloseRequested:
		return "requested"
	case CloseOutside:
		return "outside"
	case CloseParent:
		return "parent"
	default:
		return "unknown"
	}
}

// Popover is a floating panel that closes when the user clicks outside it.
//
// While open it holds an outside-click watcher on its node. Child popovers
// and buttons added to it are part of its node, so clicks on them count as
// inside.
type Popover struct {
	title   string
	lines   []string
	node    *clickaway.Node
	binding *clickaway.Binding
	theme   *Theme

	ignore   []clickaway.Region
	trigger  *Button
	parent   *Popover
	children []*Popover
	buttons  []*Button

	// Modal popovers consume the click that closes them, so older
	// watchers (such as a parent popover) stay open.
	Modal bool

	// OnClose is called after the popover closes.
	OnClose func(reason CloseReason)
}

// NewPopover creates a closed popover occupying bounds.
func NewPopover(reg *clickaway.Registry, title string, bounds core.ScreenRect, theme *Theme) *Popover {
	p := &Popover{
		title: title,
		node:  clickaway.NewNode(bounds),
		theme: theme,
	}
	p.node.SetHidden(true)
	p.binding = clickaway.NewBinding(reg, p.spec())
	return p
}

func (p *Popover) spec() clickaway.Spec {
	return clickaway.Spec{
		Container: p.node,
		Ignore:    p.ignore,
		OnOutside: p.handleOutside,
	}
}

func (p *Popover) handleOutside(ev *mouse.Event) {
	if p.Modal {
		ev.PreventDefault()
	}
	p.close(CloseOutside)
}

// Title returns the popover title.
func (p *Popover) Title() string {
	return p.title
}

// SetLines replaces the body text.
func (p *Popover) SetLines(lines ...string) {
	p.lines = append(p.lines[:0], lines...)
}

// Node returns the popover's region, including children.
func (p *Popover) Node() *clickaway.Node {
	return p.node
}

// Binding returns the popover's outside-click binding.
func (p *Popover) Binding() *clickaway.Binding {
	return p.binding
}

// Parent returns the popover this one is nested in, or nil.
func (p *Popover) Parent() *Popover {
	return p.parent
}

// Ignore adds a region whose clicks never close the popover.
func (p *Popover) Ignore(r clickaway.Region) error {
	p.ignore = append(p.ignore, r)
	return p.binding.Rebind(p.spec())
}

// AttachTrigger makes b toggle the popover. The button is ignored by the
// popover's watcher so the toggling click is not also an outside click.
func (p *Popover) AttachTrigger(b *Button) error {
	p.trigger = b
	b.OnPress = func(*mouse.Event) {
		_ = p.Toggle()
	}
	b.Active = p.IsOpen()
	return p.Ignore(b.Node())
}

// AddChild nests child inside p. The child closes when p closes.
func (p *Popover) AddChild(child *Popover) {
	if child == nil || child == p {
		return
	}
	child.parent = p
	p.children = append(p.children, child)
	p.node.Append(child.node)
}

// AddButton places b inside the popover.
func (p *Popover) AddButton(b *Button) {
	p.buttons = append(p.buttons, b)
	p.node.Append(b.node)
}

// IsOpen reports whether the popover is shown.
func (p *Popover) IsOpen() bool {
	return !p.node.Hidden()
}

// Open shows the popover and starts watching for outside clicks. The
// watcher takes effect on the next scheduler turn.
func (p *Popover) Open() error {
	if p.IsOpen() {
		return nil
	}
	if err := p.binding.Activate(); err != nil {
		return err
	}
	p.node.SetHidden(false)
	if p.trigger != nil {
		p.trigger.Active = true
	}
	return nil
}

// Close hides the popover and its children.
func (p *Popover) Close() {
	p.close(CloseRequested)
}

// Toggle opens a closed popover and closes an open one.
func (p *Popover) Toggle() error {
	if p.IsOpen() {
		p.Close()
		return nil
	}
	return p.Open()
}

func (p *Popover) close(reason CloseReason) {
	if !p.IsOpen() {
		return
	}
	for _, child := range p.children {
		child.close(CloseParent)
	}
	p.binding.Deactivate()
	p.node.SetHidden(true)
	if p.trigger != nil {
		p.trigger.Active = false
	}
	if p.OnClose != nil {
		p.OnClose(reason)
	}
}

// HandleClick routes a click to the popover's open children and buttons,
// topmost first. It reports whether one of them handled it.
func (p *Popover) HandleClick(ev *mouse.Event) bool {
	if !p.IsOpen() {
		return false
	}
	for i := len(p.children) - 1; i >= 0; i-- {
		if p.children[i].HandleClick(ev) {
			return true
		}
	}
	for _, b := range p.buttons {
		if b.HandleClick(ev) {
			return true
		}
	}
	return false
}

// Draw renders the popover with its shadow, its buttons and its open
// children. A popover entirely off screen draws only its children.
func (p *Popover) Draw(b backend.Backend) {
	if !p.IsOpen() {
		return
	}
	bounds := p.node.Bounds()
	width, height := b.Size()
	if !bounds.IsEmpty() && bounds.Intersects(core.NewScreenRect(0, 0, height, width)) {
		p.drawBody(b, bounds)
	}
	for _, child := range p.children {
		child.Draw(b)
	}
}

func (p *Popover) drawBody(b backend.Backend, bounds core.ScreenRect) {
	b.Fill(bounds, core.NewStyledCell(' ', p.theme.Popover))

	text := bounds.Inset(0, 1, 0, 1)
	origin := text.TopLeft()
	row := origin.Row
	if p.title != "" && row < text.Bottom {
		drawText(b, row, origin.Col, text.Right, p.title, p.theme.PopoverTitle)
		row++
	}
	for _, line := range p.lines {
		if row >= text.Bottom {
			break
		}
		drawText(b, row, origin.Col, text.Right, line, p.theme.Popover)
		row++
	}

	for _, btn := range p.buttons {
		btn.Draw(b)
	}
	drawShadow(b, bounds)
}
