// Package statusline provides the status bar drawn on the bottom row.
package statusline

import (
	"strconv"

	"github.com/dshills/clickaway/internal/renderer/backend"
	"github.com/dshills/clickaway/internal/renderer/core"
)

// StatusLine renders the bottom status bar: a label, the latest message
// and watcher counters.
type StatusLine struct {
	// Display state
	label    string // Left-hand label (application name)
	watchers int    // Active outside-click watchers
	pending  int    // Watchers waiting for their first turn
	lastPos  core.ScreenPos
	lastHit  bool // A click has been seen
	detail   int  // Click count of the last click

	// Message display
	message     string
	messageType MessageType

	// Style configuration
	barStyle   core.Style
	labelStyle core.Style

	width int
}

// MessageType indicates the type of status message.
type MessageType int

const (
	MessageNone MessageType = iota
	MessageInfo
	MessageWarning
	MessageError
)

// New creates a status line drawn in style.
func New(label string, style core.Style) *StatusLine {
	return &StatusLine{
		label:      label,
		barStyle:   style,
		labelStyle: style.Reverse().Bold(),
	}
}

// SetCounts updates the watcher counters.
func (s *StatusLine) SetCounts(watchers, pending int) {
	s.watchers = watchers
	s.pending = pending
}

// SetLastClick records the position and click count of the latest click.
func (s *StatusLine) SetLastClick(pos core.ScreenPos, detail int) {
	s.lastPos = pos
	s.detail = detail
	s.lastHit = true
}

// SetMessage displays a status message.
func (s *StatusLine) SetMessage(msg string, msgType MessageType) {
	s.message = msg
	s.messageType = msgType
}

// ClearMessage clears the status message.
func (s *StatusLine) ClearMessage() {
	s.message = ""
	s.messageType = MessageNone
}

// Message returns the current message.
func (s *StatusLine) Message() string {
	return s.message
}

// Resize updates the status line width.
func (s *StatusLine) Resize(width int) {
	s.width = width
}

// Height returns the number of rows the status line uses.
func (s *StatusLine) Height() int {
	return 1
}

// Render draws the status line to the backend at the given row.
func (s *StatusLine) Render(b backend.Backend, row int) {
	if s.width <= 0 {
		return
	}

	// Clear the line first
	b.Fill(core.RectFromSize(row, 0, 1, s.width), core.NewStyledCell(' ', s.barStyle))

	col := 0
	labelText := " " + s.label + " "
	for _, r := range labelText {
		if col >= s.width {
			break
		}
		b.SetCell(col, row, core.NewStyledCell(r, s.labelStyle))
		col += core.RuneWidth(r)
	}
	col++

	// Right side: counters
	info := s.formatCounters()
	infoStart := s.width - core.StringWidth(info) - 1

	if s.message != "" {
		msgEnd := s.width
		if infoStart > col {
			msgEnd = infoStart - 1
		}
		s.renderMessage(b, row, col, msgEnd)
	}

	if infoStart > col {
		for _, r := range info {
			b.SetCell(infoStart, row, core.NewStyledCell(r, s.barStyle))
			infoStart += core.RuneWidth(r)
		}
	}
}

// renderMessage draws the message between col and end (exclusive).
func (s *StatusLine) renderMessage(b backend.Backend, row, col, end int) {
	msgStyle := s.barStyle
	switch s.messageType {
	case MessageError:
		msgStyle = msgStyle.Bold().WithForeground(core.ColorFromIndex(1))
	case MessageWarning:
		msgStyle = msgStyle.WithForeground(core.ColorFromIndex(3))
	}

	for _, r := range s.message {
		w := core.RuneWidth(r)
		if w == 0 {
			continue
		}
		if col+w > end {
			break
		}
		b.SetCell(col, row, core.NewStyledCell(r, msgStyle))
		col += w
	}
}

// formatCounters formats the info for the right side.
func (s *StatusLine) formatCounters() string {
	// Format: "watchers 2 (+1) | 12,40 x2"
	result := "watchers " + strconv.Itoa(s.watchers)
	if s.pending > 0 {
		result += " (+" + strconv.Itoa(s.pending) + ")"
	}
	if s.lastHit {
		result += " | " + strconv.Itoa(s.lastPos.Row) + "," + strconv.Itoa(s.lastPos.Col)
		if s.detail > 1 {
			result += " x" + strconv.Itoa(s.detail)
		}
	}
	return result
}
