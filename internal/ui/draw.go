package ui

import (
	"github.com/dshills/clickaway/internal/clickaway"
	"github.com/dshills/clickaway/internal/renderer/backend"
	"github.com/dshills/clickaway/internal/renderer/core"
)

// Widget is anything the application draws and hit-tests.
type Widget interface {
	// Draw renders the widget.
	Draw(b backend.Backend)

	// Node returns the region the widget occupies.
	Node() *clickaway.Node
}

// drawText writes s starting at (row, col), clipped at maxCol (exclusive).
// It returns the column after the last cell written.
func drawText(b backend.Backend, row, col, maxCol int, s string, style core.Style) int {
	for _, r := range s {
		w := core.RuneWidth(r)
		if w == 0 {
			continue
		}
		if col+w > maxCol {
			break
		}
		b.SetCell(col, row, core.Cell{Rune: r, Width: w, Style: style})
		col += w
	}
	return col
}

// drawShadow dims the column right of r and the row below it, keeping
// whatever is drawn there.
func drawShadow(b backend.Backend, r core.ScreenRect) {
	dim := func(x, y int) {
		cell := b.GetCell(x, y)
		if cell.Rune == 0 {
			cell = core.NewCell(' ')
		}
		cell.Style.Attributes |= core.AttrDim
		b.SetCell(x, y, cell)
	}
	for y := r.Top + 1; y <= r.Bottom; y++ {
		dim(r.Right, y)
	}
	for x := r.Left + 1; x < r.Right; x++ {
		dim(x, r.Bottom)
	}
}
