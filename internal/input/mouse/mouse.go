package mouse

import (
	"sync"
	"time"

	"github.com/dshills/clickaway/internal/renderer/backend"
	"github.com/dshills/clickaway/internal/renderer/core"
)

// Button represents a mouse button.
type Button uint8

const (
	// ButtonNone indicates no button.
	ButtonNone Button = iota
	// ButtonLeft is the primary (left) mouse button.
	ButtonLeft
	// ButtonMiddle is the middle mouse button (scroll wheel click).
	ButtonMiddle
	// ButtonRight is the secondary (right) mouse button.
	ButtonRight
)

// String returns a string representation of the button.
func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonMiddle:
		return "middle"
	case ButtonRight:
		return "right"
	default:
		return "none"
	}
}

// Source identifies the kind of device that produced an event.
type Source uint8

const (
	// SourceMouse is a pointer device with buttons.
	SourceMouse Source = iota
	// SourceTouch is a touch contact. Touch events carry no button.
	SourceTouch
)

// String returns a string representation of the source.
func (s Source) String() string {
	if s == SourceTouch {
		return "touch"
	}
	return "mouse"
}

// Event is a click-equivalent interaction.
type Event struct {
	// Position is the cell the interaction targets.
	Position core.ScreenPos

	// Button is the button that was clicked. Meaningful for SourceMouse only.
	Button Button

	// Source is the device kind.
	Source Source

	// Modifiers are any keyboard modifiers held during the release.
	Modifiers backend.ModMask

	// Detail is the consecutive click count (1, 2 or 3).
	Detail int

	// Timestamp is when the interaction completed.
	Timestamp time.Time

	defaultPrevented bool
}

// NewClick creates a primary-button click at pos.
func NewClick(pos core.ScreenPos) *Event {
	return &Event{
		Position:  pos,
		Button:    ButtonLeft,
		Source:    SourceMouse,
		Detail:    1,
		Timestamp: time.Now(),
	}
}

// NewTouch creates a touch interaction at pos.
func NewTouch(pos core.ScreenPos) *Event {
	return &Event{
		Position:  pos,
		Source:    SourceTouch,
		Detail:    1,
		Timestamp: time.Now(),
	}
}

// PreventDefault marks the event as consumed.
func (e *Event) PreventDefault() {
	e.defaultPrevented = true
}

// DefaultPrevented reports whether some consumer has marked the event consumed.
func (e *Event) DefaultPrevented() bool {
	return e.defaultPrevented
}

// IsPrimary reports whether the event is a primary interaction: a touch, or
// a mouse click with the left button.
func (e *Event) IsPrimary() bool {
	return e.Source == SourceTouch || e.Button == ButtonLeft
}

// Config configures click synthesis.
type Config struct {
	// DoubleClickTime is the maximum time between clicks for a double-click.
	DoubleClickTime time.Duration

	// DoubleClickDistance is the maximum distance between clicks for a double-click.
	DoubleClickDistance int

	// DragThreshold is the Manhattan distance the pointer may travel between
	// press and release and still produce a click. Zero means unlimited.
	DragThreshold int
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		DoubleClickTime:     400 * time.Millisecond,
		DoubleClickDistance: 4,
		DragThreshold:       0,
	}
}

// Clicker synthesizes click events from raw terminal mouse reports.
type Clicker struct {
	mu     sync.Mutex
	config Config

	click *clickTracker
	press *pressTracker
}

// NewClicker creates a new click synthesizer with the given configuration.
func NewClicker(config Config) *Clicker {
	return &Clicker{
		config: config,
		click:  newClickTracker(config.DoubleClickTime, config.DoubleClickDistance),
		press:  newPressTracker(),
	}
}

// Handle processes one terminal event and returns a click, or nil if the
// report did not complete one.
func (c *Clicker) Handle(ev backend.Event) *Event {
	if ev.Type != backend.EventMouse {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	pos := core.NewScreenPos(ev.MouseY, ev.MouseX)
	timestamp := ev.Time
	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	switch ev.MouseButton {
	case backend.MouseWheelUp, backend.MouseWheelDown,
		backend.MouseWheelLeft, backend.MouseWheelRight:
		// Wheel reports neither press nor release a button
		return nil

	case backend.MouseNone:
		return c.release(pos, ev.Mod, timestamp)

	default:
		if c.press.active {
			// Motion while held, or a second button pressed during the
			// first. The first press owns the gesture until release.
			c.press.update(pos)
			return nil
		}
		c.press.start(pos, convertButton(ev.MouseButton))
		return nil
	}
}

// release completes a press, if any, into a click.
func (c *Clicker) release(pos core.ScreenPos, mod backend.ModMask, timestamp time.Time) *Event {
	if !c.press.active {
		// Plain motion with no button held
		return nil
	}

	button := c.press.button
	travelled := c.press.travel(pos)
	c.press.end()

	if c.config.DragThreshold > 0 && travelled > c.config.DragThreshold {
		c.click.reset()
		return nil
	}

	detail := 1
	if button == ButtonLeft {
		detail = c.click.recordClick(pos, timestamp)
	}

	return &Event{
		Position:  pos,
		Button:    button,
		Source:    SourceMouse,
		Modifiers: mod,
		Detail:    detail,
		Timestamp: timestamp,
	}
}

// Reset clears all click state.
func (c *Clicker) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.click.reset()
	c.press.end()
}

// IsPressed returns true if a button is currently held.
func (c *Clicker) IsPressed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.press.active
}

// convertButton maps backend buttons onto click buttons.
func convertButton(b backend.MouseButton) Button {
	switch b {
	case backend.MouseLeft:
		return ButtonLeft
	case backend.MouseMiddle:
		return ButtonMiddle
	case backend.MouseRight:
		return ButtonRight
	default:
		return ButtonNone
	}
}
