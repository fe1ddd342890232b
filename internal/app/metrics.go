package app

import (
	"sync/atomic"
	"time"
)

// Metrics tracks event loop counters and timings.
type Metrics struct {
	// Event loop turns
	turnCount   atomic.Uint64
	turnTotalNs atomic.Int64
	turnMaxNs   atomic.Int64

	// Click pipeline
	clickCount    atomic.Uint64
	consumedCount atomic.Uint64
	panicCount    atomic.Uint64
	deferredRun   atomic.Uint64

	// Render timing
	renderCount   atomic.Uint64
	renderTotalNs atomic.Int64

	startTime time.Time
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	return &Metrics{startTime: time.Now()}
}

// RecordTurn records how long one event loop turn took.
func (m *Metrics) RecordTurn(duration time.Duration) {
	ns := duration.Nanoseconds()
	m.turnCount.Add(1)
	m.turnTotalNs.Add(ns)

	for {
		old := m.turnMaxNs.Load()
		if ns <= old {
			break
		}
		if m.turnMaxNs.CompareAndSwap(old, ns) {
			break
		}
	}
}

// RecordClick records a synthesized click and whether a consumer
// prevented its default.
func (m *Metrics) RecordClick(consumed bool) {
	m.clickCount.Add(1)
	if consumed {
		m.consumedCount.Add(1)
	}
}

// RecordPanic records a panic recovered at the turn boundary.
func (m *Metrics) RecordPanic() {
	m.panicCount.Add(1)
}

// RecordDeferred records deferred tasks run after a turn.
func (m *Metrics) RecordDeferred(n int) {
	m.deferredRun.Add(uint64(n))
}

// RecordRender records render timing.
func (m *Metrics) RecordRender(duration time.Duration) {
	m.renderCount.Add(1)
	m.renderTotalNs.Add(duration.Nanoseconds())
}

// Snapshot returns a snapshot of current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	turnCount := m.turnCount.Load()
	renderCount := m.renderCount.Load()

	var avgTurnNs int64
	if turnCount > 0 {
		avgTurnNs = m.turnTotalNs.Load() / int64(turnCount)
	}

	var avgRenderNs int64
	if renderCount > 0 {
		avgRenderNs = m.renderTotalNs.Load() / int64(renderCount)
	}

	return MetricsSnapshot{
		Uptime:        time.Since(m.startTime),
		TurnCount:     turnCount,
		AvgTurnNs:     avgTurnNs,
		MaxTurnNs:     m.turnMaxNs.Load(),
		ClickCount:    m.clickCount.Load(),
		ConsumedCount: m.consumedCount.Load(),
		PanicCount:    m.panicCount.Load(),
		DeferredRun:   m.deferredRun.Load(),
		RenderCount:   renderCount,
		AvgRenderNs:   avgRenderNs,
	}
}

// MetricsSnapshot is a point-in-time view of metrics.
type MetricsSnapshot struct {
	Uptime        time.Duration
	TurnCount     uint64
	AvgTurnNs     int64
	MaxTurnNs     int64
	ClickCount    uint64
	ConsumedCount uint64
	PanicCount    uint64
	DeferredRun   uint64
	RenderCount   uint64
	AvgRenderNs   int64
}

// ConsumedRate returns the percentage of clicks whose default was prevented.
func (s MetricsSnapshot) ConsumedRate() float64 {
	if s.ClickCount == 0 {
		return 0
	}
	return float64(s.ConsumedCount) / float64(s.ClickCount) * 100
}
