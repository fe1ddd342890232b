package mouse

import (
	"time"

	"github.com/dshills/clickaway/internal/renderer/core"
)

// distance returns the Manhattan distance (|dRow| + |dCol|) between two cells.
func distance(a, b core.ScreenPos) int {
	dx := a.Col - b.Col
	if dx < 0 {
		dx = -dx
	}
	dy := a.Row - b.Row
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// clickTracker counts consecutive clicks for Event.Detail.
type clickTracker struct {
	maxTime     time.Duration
	maxDistance int

	lastPos   core.ScreenPos
	lastTime  time.Time
	lastCount int
}

func newClickTracker(maxTime time.Duration, maxDistance int) *clickTracker {
	return &clickTracker{
		maxTime:     maxTime,
		maxDistance: maxDistance,
	}
}

// recordClick records a click and returns the click count (1, 2, or 3).
// The count wraps back to 1 after 3.
func (t *clickTracker) recordClick(pos core.ScreenPos, timestamp time.Time) int {
	if t.isPartOfSequence(pos, timestamp) {
		t.lastCount++
		if t.lastCount > 3 {
			t.lastCount = 1
		}
	} else {
		t.lastCount = 1
	}

	t.lastPos = pos
	t.lastTime = timestamp

	return t.lastCount
}

func (t *clickTracker) isPartOfSequence(pos core.ScreenPos, timestamp time.Time) bool {
	if t.lastCount == 0 || t.lastTime.IsZero() {
		return false
	}

	// Negative elapsed time means clock skew; start a new sequence
	elapsed := timestamp.Sub(t.lastTime)
	if elapsed < 0 || elapsed > t.maxTime {
		return false
	}

	return distance(pos, t.lastPos) <= t.maxDistance
}

func (t *clickTracker) reset() {
	t.lastCount = 0
	t.lastTime = time.Time{}
	t.lastPos = core.ScreenPos{}
}
