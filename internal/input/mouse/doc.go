// Package mouse turns raw terminal mouse reports into click-equivalent
// events.
//
// Terminals report button state, not clicks: a report says which button is
// currently down (or none) at a given cell. The Clicker tracks presses and
// emits one Event per press/release pair, positioned at the release cell
// and carrying the pressed button:
//
//	clicker := mouse.NewClicker(mouse.DefaultConfig())
//	if click := clicker.Handle(ev); click != nil {
//	    surface.Dispatch(click)
//	}
//
// # Click Counting
//
// Event.Detail counts consecutive clicks of the same button within
// DoubleClickTime and DoubleClickDistance, wrapping after three:
//
//   - 1: single click
//   - 2: double click
//   - 3: triple click
//
// # Consumption
//
// An Event is passed by pointer through every consumer of one click. Any
// consumer may call PreventDefault; later consumers check DefaultPrevented
// and stand down.
//
// # Thread Safety
//
// Clicker is safe for concurrent use. Event is not; it belongs to the
// goroutine dispatching it.
package mouse
