package statusline

import (
	"strings"
	"testing"

	"github.com/dshills/clickaway/internal/renderer/backend"
	"github.com/dshills/clickaway/internal/renderer/core"
)

func newBackend(t *testing.T, width int) *backend.NullBackend {
	t.Helper()
	b := backend.NewNullBackend(width, 3)
	if err := b.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	return b
}

func TestRenderCounters(t *testing.T) {
	b := newBackend(t, 60)
	s := New("clickaway", core.DefaultStyle())
	s.Resize(60)
	s.SetCounts(2, 1)
	s.SetLastClick(core.NewScreenPos(12, 40), 2)

	s.Render(b, 2)
	row := b.Row(2)

	if !strings.HasPrefix(row, " clickaway ") {
		t.Errorf("expected label at start, got %q", row)
	}
	if !strings.HasSuffix(strings.TrimRight(row, " "), "watchers 2 (+1) | 12,40 x2") {
		t.Errorf("expected counters at end, got %q", row)
	}
	if !b.GetCell(1, 2).Style.Attributes.Has(core.AttrReverse) {
		t.Error("label should be reversed")
	}
}

func TestRenderMessage(t *testing.T) {
	b := newBackend(t, 60)
	s := New("ca", core.DefaultStyle())
	s.Resize(60)

	s.SetMessage("popover closed", MessageInfo)
	s.Render(b, 0)
	if !strings.Contains(b.Row(0), "popover closed") {
		t.Errorf("expected message, got %q", b.Row(0))
	}

	s.SetMessage("script failed", MessageError)
	s.Render(b, 0)
	col := strings.Index(b.Row(0), "script")
	if col < 0 {
		t.Fatalf("expected error message, got %q", b.Row(0))
	}
	if !b.GetCell(col, 0).Style.Attributes.Has(core.AttrBold) {
		t.Error("error message should be bold")
	}

	s.ClearMessage()
	s.Render(b, 0)
	if strings.Contains(b.Row(0), "script") || s.Message() != "" {
		t.Error("message should be cleared")
	}
}

func TestRenderNarrow(t *testing.T) {
	b := newBackend(t, 8)
	s := New("clickaway", core.DefaultStyle())
	s.Resize(8)
	s.SetMessage("hello", MessageInfo)

	// Must not draw past the width or panic
	s.Render(b, 1)
	if got := b.Row(1); len([]rune(got)) != 8 {
		t.Errorf("unexpected row %q", got)
	}
}

func TestFormatCounters(t *testing.T) {
	s := New("", core.DefaultStyle())
	if got := s.formatCounters(); got != "watchers 0" {
		t.Errorf("unexpected %q", got)
	}
	s.SetLastClick(core.NewScreenPos(1, 2), 1)
	if got := s.formatCounters(); got != "watchers 0 | 1,2" {
		t.Errorf("unexpected %q", got)
	}
}
