package app

import (
	"github.com/dshills/clickaway/internal/clickaway"
	"github.com/dshills/clickaway/internal/input/mouse"
	"github.com/dshills/clickaway/internal/renderer/backend"
	"github.com/dshills/clickaway/internal/renderer/core"
	"github.com/dshills/clickaway/internal/ui"
)

// demo is the built-in menu bar: File and View menus that close on an
// outside click, a nested Recent submenu, and an exclusive Quit button.
type demo struct {
	buttons  []*ui.Button
	popovers []*ui.Popover

	file   *ui.Popover
	view   *ui.Popover
	recent *ui.Popover
	quit   *ui.Button
}

func newDemo(reg *clickaway.Registry, theme *ui.Theme, quit func()) *demo {
	d := &demo{}

	fileBtn := ui.NewButton("File", core.NewScreenPos(0, 0), theme)
	viewBtn := ui.NewButton("View", core.NewScreenPos(0, fileBtn.Node().Bounds().Right+1), theme)
	d.quit = ui.NewButton("Quit", core.NewScreenPos(0, viewBtn.Node().Bounds().Right+1), theme)
	d.quit.Exclusive = true
	d.quit.OnPress = func(*mouse.Event) { quit() }

	d.file = ui.NewPopover(reg, "File", core.RectFromSize(1, 0, 6, 24), theme)
	d.file.SetLines("New", "Open...", "Save")
	recentBtn := ui.NewButton("Recent >", core.NewScreenPos(5, 1), theme)
	d.file.AddButton(recentBtn)

	d.recent = ui.NewPopover(reg, "Recent", core.RectFromSize(5, 24, 4, 22), theme)
	d.recent.SetLines("notes.txt", "todo.md")
	d.recent.Modal = true
	d.file.AddChild(d.recent)

	d.view = ui.NewPopover(reg, "View", core.RectFromSize(1, viewBtn.Node().Bounds().Left, 4, 28), theme)
	d.view.SetLines("Click outside to close.", "Esc closes all menus.")

	// Binding a trigger only fails for a nil callback, which these never have.
	_ = d.file.AttachTrigger(fileBtn)
	_ = d.view.AttachTrigger(viewBtn)
	_ = d.recent.AttachTrigger(recentBtn)

	d.buttons = []*ui.Button{fileBtn, viewBtn, d.quit}
	d.popovers = []*ui.Popover{d.file, d.view}
	return d
}

// handleClick routes ev to open menus first, then the menu bar.
func (d *demo) handleClick(ev *mouse.Event) bool {
	for i := len(d.popovers) - 1; i >= 0; i-- {
		if d.popovers[i].HandleClick(ev) {
			return true
		}
	}
	for _, b := range d.buttons {
		if b.HandleClick(ev) {
			return true
		}
	}
	return false
}

// closeAll closes every open menu and returns how many were open.
func (d *demo) closeAll() int {
	n := 0
	for _, p := range d.popovers {
		if p.IsOpen() {
			p.Close()
			n++
		}
	}
	return n
}

func (d *demo) draw(b backend.Backend) {
	for _, btn := range d.buttons {
		btn.Draw(b)
	}
	for _, p := range d.popovers {
		p.Draw(b)
	}
}
