package clickaway

import "github.com/dshills/clickaway/internal/input/mouse"

// ShouldInvoke decides whether a click is "outside" for one watcher.
//
// It returns false for non-primary mouse buttons, for clicks inside
// container, and for clicks inside any ignored region; true otherwise.
// Nil or empty regions contain nothing.
func ShouldInvoke(ev *mouse.Event, container Region, ignored []Region) bool {
	if ev == nil {
		return false
	}

	// Right, middle and other auxiliary buttons never count
	if !ev.IsPrimary() {
		return false
	}

	if contains(container, ev.Position) {
		return false
	}

	for _, r := range ignored {
		if contains(r, ev.Position) {
			return false
		}
	}

	return true
}
