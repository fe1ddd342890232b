package mouse

import "github.com/dshills/clickaway/internal/renderer/core"

// pressTracker tracks the button currently held down.
type pressTracker struct {
	// active indicates a button is held.
	active bool

	// button is the mouse button being held.
	button Button

	// startPos is where the press happened.
	startPos core.ScreenPos

	// maxTravel is the farthest the pointer moved from startPos while held.
	maxTravel int
}

func newPressTracker() *pressTracker {
	return &pressTracker{}
}

func (t *pressTracker) start(pos core.ScreenPos, button Button) {
	t.active = true
	t.button = button
	t.startPos = pos
	t.maxTravel = 0
}

func (t *pressTracker) update(pos core.ScreenPos) {
	if !t.active {
		return
	}
	if d := distance(t.startPos, pos); d > t.maxTravel {
		t.maxTravel = d
	}
}

// travel records pos and returns the farthest distance travelled.
func (t *pressTracker) travel(pos core.ScreenPos) int {
	t.update(pos)
	return t.maxTravel
}

func (t *pressTracker) end() {
	t.active = false
	t.button = ButtonNone
	t.maxTravel = 0
}
