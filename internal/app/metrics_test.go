package app

import (
	"sync"
	"testing"
	"time"
)

func TestNewMetrics(t *testing.T) {
	m := NewMetrics()
	if m == nil {
		t.Fatal("NewMetrics() returned nil")
	}

	snapshot := m.Snapshot()
	if snapshot.TurnCount != 0 {
		t.Errorf("expected 0 turns, got %d", snapshot.TurnCount)
	}
	if snapshot.AvgTurnNs != 0 {
		t.Errorf("expected 0 avg turn time, got %d", snapshot.AvgTurnNs)
	}
	if snapshot.ConsumedRate() != 0 {
		t.Errorf("expected 0 consumed rate, got %f", snapshot.ConsumedRate())
	}
}

func TestMetrics_RecordTurn(t *testing.T) {
	m := NewMetrics()

	m.RecordTurn(10 * time.Millisecond)
	m.RecordTurn(20 * time.Millisecond)
	m.RecordTurn(6 * time.Millisecond)

	snapshot := m.Snapshot()
	if snapshot.TurnCount != 3 {
		t.Errorf("expected 3 turns, got %d", snapshot.TurnCount)
	}
	if snapshot.MaxTurnNs != int64(20*time.Millisecond) {
		t.Errorf("expected max 20ms, got %d ns", snapshot.MaxTurnNs)
	}
	if snapshot.AvgTurnNs != int64(12*time.Millisecond) {
		t.Errorf("expected avg 12ms, got %d ns", snapshot.AvgTurnNs)
	}
}

func TestMetrics_RecordClick(t *testing.T) {
	m := NewMetrics()

	m.RecordClick(true)
	m.RecordClick(false)
	m.RecordClick(false)
	m.RecordClick(true)

	snapshot := m.Snapshot()
	if snapshot.ClickCount != 4 {
		t.Errorf("expected 4 clicks, got %d", snapshot.ClickCount)
	}
	if snapshot.ConsumedCount != 2 {
		t.Errorf("expected 2 consumed, got %d", snapshot.ConsumedCount)
	}
	if snapshot.ConsumedRate() != 50 {
		t.Errorf("expected 50%% consumed, got %f", snapshot.ConsumedRate())
	}
}

func TestMetrics_RecordPanicAndDeferred(t *testing.T) {
	m := NewMetrics()

	m.RecordPanic()
	m.RecordDeferred(3)
	m.RecordDeferred(0)
	m.RecordDeferred(2)

	snapshot := m.Snapshot()
	if snapshot.PanicCount != 1 {
		t.Errorf("expected 1 panic, got %d", snapshot.PanicCount)
	}
	if snapshot.DeferredRun != 5 {
		t.Errorf("expected 5 deferred tasks, got %d", snapshot.DeferredRun)
	}
}

func TestMetrics_RecordRender(t *testing.T) {
	m := NewMetrics()

	m.RecordRender(2 * time.Millisecond)
	m.RecordRender(4 * time.Millisecond)

	snapshot := m.Snapshot()
	if snapshot.RenderCount != 2 {
		t.Errorf("expected 2 renders, got %d", snapshot.RenderCount)
	}
	if snapshot.AvgRenderNs != int64(3*time.Millisecond) {
		t.Errorf("expected avg 3ms, got %d ns", snapshot.AvgRenderNs)
	}
}

func TestMetrics_Concurrent(t *testing.T) {
	m := NewMetrics()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				m.RecordTurn(time.Duration(i*100+j) * time.Microsecond)
				m.RecordClick(j%2 == 0)
			}
		}(i)
	}
	wg.Wait()

	snapshot := m.Snapshot()
	if snapshot.TurnCount != 1000 {
		t.Errorf("expected 1000 turns, got %d", snapshot.TurnCount)
	}
	if snapshot.ConsumedCount != 500 {
		t.Errorf("expected 500 consumed, got %d", snapshot.ConsumedCount)
	}
	if snapshot.MaxTurnNs != int64(999*time.Microsecond) {
		t.Errorf("expected max 999us, got %d ns", snapshot.MaxTurnNs)
	}
}
