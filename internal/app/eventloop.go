package app

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/dshills/clickaway/internal/input/mouse"
	"github.com/dshills/clickaway/internal/renderer/backend"
	"github.com/dshills/clickaway/internal/renderer/statusline"
)

// maxDeferredRounds bounds how many times deferred tasks are drained after
// one event, so a task that keeps deferring cannot stall the loop.
const maxDeferredRounds = 8

// Run initializes the backend and processes events until a quit key, a
// quit button, Shutdown or ctx cancellation.
func (app *Application) Run(ctx context.Context) error {
	if app.backend == nil {
		return ErrNoBackend
	}
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	if err := app.backend.Init(); err != nil {
		return &InitError{Component: "backend", Err: err}
	}
	defer app.backend.Shutdown()

	if app.config.Mouse.Enabled {
		app.backend.EnableMouse()
		defer app.backend.DisableMouse()
	}
	app.backend.HideCursor()

	width, _ := app.backend.Size()
	app.status.Resize(width)
	app.drain()
	app.render()

	events := make(chan backend.Event, 64)
	go app.poll(events)
	// Wake the poller so it sees done and exits.
	defer app.backend.PostEvent(backend.Event{Type: backend.EventInterrupt})
	defer app.Shutdown()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-app.done:
			return nil
		case ev := <-events:
			if err := app.step(ev); err == ErrQuit {
				return nil
			}
		}
	}
}

// poll forwards backend events until the application stops.
func (app *Application) poll(events chan<- backend.Event) {
	for {
		ev := app.backend.PollEvent()
		select {
		case <-app.done:
			return
		default:
		}
		if ev.Type == backend.EventNone {
			// Backend shut down
			return
		}
		select {
		case events <- ev:
		case <-app.done:
			return
		}
	}
}

// step runs one turn of the loop: handle the event, run deferred tasks,
// redraw. It returns ErrQuit when the application should exit.
func (app *Application) step(ev backend.Event) error {
	start := time.Now()

	err := app.turn(func() error {
		return app.handleEvent(ev)
	})
	if err == ErrQuit || app.quit {
		return ErrQuit
	}
	if err != nil {
		app.reportError(err)
	}

	app.drain()
	app.render()
	app.metrics.RecordTurn(time.Since(start))
	return nil
}

// turn runs fn, recovering any panic raised by a callback into a
// *RecoveredPanicError.
func (app *Application) turn(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			app.metrics.RecordPanic()
			err = NewRecoveredPanicError(r, string(debug.Stack()))
		}
	}()
	return fn()
}

func (app *Application) reportError(err error) {
	if pe, ok := err.(*RecoveredPanicError); ok {
		app.log.Error("%v", pe)
		app.status.SetMessage(fmt.Sprintf("callback failed: %v", pe.Value), statusline.MessageError)
		return
	}
	app.log.Error("%v", err)
	app.status.SetMessage(err.Error(), statusline.MessageError)
}

// drain runs deferred tasks, including tasks they defer, up to
// maxDeferredRounds rounds.
func (app *Application) drain() {
	for i := 0; i < maxDeferredRounds && app.queue.Len() > 0; i++ {
		var n int
		if err := app.turn(func() error {
			n = app.queue.Flush()
			return nil
		}); err != nil {
			app.reportError(err)
		}
		app.metrics.RecordDeferred(n)
	}
	if n := app.queue.Len(); n > 0 {
		app.log.Warn("%d deferred task(s) left for the next turn", n)
	}
}

// handleEvent processes a backend event.
func (app *Application) handleEvent(ev backend.Event) error {
	switch ev.Type {
	case backend.EventResize:
		app.status.Resize(ev.Width)
		return nil
	case backend.EventKey:
		return app.handleKey(ev)
	case backend.EventMouse:
		if !app.config.Mouse.Enabled {
			return nil
		}
		if click := app.clicker.Handle(ev); click != nil {
			app.dispatchClick(click)
		}
		return nil
	default:
		return nil
	}
}

// handleKey quits on q, Ctrl-C or Ctrl-Q. Escape closes open popovers, or
// quits when none is open.
func (app *Application) handleKey(ev backend.Event) error {
	switch ev.Key {
	case backend.KeyCtrlC, backend.KeyCtrlQ:
		return ErrQuit
	case backend.KeyRune:
		if ev.Rune == 'q' {
			return ErrQuit
		}
	case backend.KeyEscape:
		if app.closePopovers() == 0 {
			return ErrQuit
		}
	}
	return nil
}

// dispatchClick delivers a click to the widgets, then to the surface
// listeners. A widget may consume the click before any listener sees it.
func (app *Application) dispatchClick(ev *mouse.Event) {
	app.status.SetLastClick(ev.Position, ev.Detail)
	app.log.Debug("click %s at %d,%d detail=%d", ev.Button, ev.Position.Row, ev.Position.Col, ev.Detail)

	app.status.ClearMessage()

	if app.routeToWidgets(ev) {
		app.log.Debug("click handled by a widget, prevented=%v", ev.DefaultPrevented())
	}

	for _, l := range app.clickListeners() {
		l.HandleClick(ev)
	}
	app.metrics.RecordClick(ev.DefaultPrevented())
}

// routeToWidgets offers the click to script popovers (newest first), then
// to the demo widgets. It reports whether a widget handled it.
func (app *Application) routeToWidgets(ev *mouse.Event) bool {
	for _, id := range app.popoverIDs(true) {
		if p, ok := app.popovers[id]; ok && p.HandleClick(ev) {
			return true
		}
	}
	return app.demo.handleClick(ev)
}

// closePopovers closes every open popover and returns how many were open.
func (app *Application) closePopovers() int {
	n := 0
	for _, id := range app.popoverIDs(true) {
		if p, ok := app.popovers[id]; ok && p.IsOpen() {
			p.Close()
			n++
		}
	}
	return n + app.demo.closeAll()
}

// render redraws the screen.
func (app *Application) render() {
	start := time.Now()
	app.backend.Clear()

	app.demo.draw(app.backend)
	for _, id := range app.popoverIDs(false) {
		app.popovers[id].Draw(app.backend)
	}

	_, height := app.backend.Size()
	app.status.SetCounts(app.registry.Len(), app.registry.Pending())
	app.status.Render(app.backend, height-app.status.Height())

	app.backend.Show()
	app.metrics.RecordRender(time.Since(start))
}
