package app

import (
	"fmt"
	"sort"

	"github.com/dshills/clickaway/internal/clickaway"
	plua "github.com/dshills/clickaway/internal/plugin/lua"
	"github.com/dshills/clickaway/internal/renderer/statusline"
	"github.com/dshills/clickaway/internal/ui"
)

// The application is the host scripts act on.
var _ plua.Host = (*Application)(nil)

// Watch implements plua.Host.
func (app *Application) Watch(spec clickaway.Spec) (clickaway.Handle, error) {
	return app.registry.Register(spec)
}

// Unwatch implements plua.Host.
func (app *Application) Unwatch(h clickaway.Handle) {
	app.registry.Unregister(h)
}

// OpenPopover implements plua.Host. The popover is forgotten once closed.
func (app *Application) OpenPopover(spec plua.PopoverSpec) (int, error) {
	app.nextPop++
	id := app.nextPop

	p := ui.NewPopover(app.registry, spec.Title, spec.Bounds, &app.theme)
	p.SetLines(spec.Lines...)
	p.Modal = spec.Modal
	p.OnClose = func(reason ui.CloseReason) {
		delete(app.popovers, id)
		app.log.Debug("script popover %d closed (%s)", id, reason)
		if spec.OnClose != nil {
			spec.OnClose(reason.String())
		}
	}

	if err := p.Open(); err != nil {
		return 0, fmt.Errorf("open popover: %w", err)
	}
	app.popovers[id] = p
	app.log.Debug("script popover %d opened", id)
	return id, nil
}

// ClosePopover implements plua.Host.
func (app *Application) ClosePopover(id int) bool {
	p, ok := app.popovers[id]
	if !ok {
		return false
	}
	p.Close()
	return true
}

// SetStatus implements plua.Host.
func (app *Application) SetStatus(msg string) {
	app.status.SetMessage(msg, statusline.MessageInfo)
}

// popoverIDs returns the ids of script popovers, oldest first or newest
// first.
func (app *Application) popoverIDs(newestFirst bool) []int {
	ids := make([]int, 0, len(app.popovers))
	for id := range app.popovers {
		ids = append(ids, id)
	}
	if newestFirst {
		sort.Sort(sort.Reverse(sort.IntSlice(ids)))
	} else {
		sort.Ints(ids)
	}
	return ids
}
