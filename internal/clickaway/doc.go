// Package clickaway detects clicks that land outside a UI region and
// notifies whoever registered interest in that region.
//
// Popovers, menus and dialogs close when the user clicks elsewhere. Many of
// them can be open at once, so a single Registry multiplexes one listener on
// the input surface to every registered watcher.
//
// # Regions
//
// A Region answers whether a screen cell belongs to it. Node models a
// widget tree: a node contains a cell if its own bounds or any descendant's
// bounds do. Ref is a late-bound region that may be empty (an unmounted
// widget); an empty Ref contains nothing.
//
// # Registration
//
//	reg := clickaway.New(surface, queue)
//	h, err := reg.Register(clickaway.Spec{
//	    Container: popover.Node(),
//	    Ignore:    []clickaway.Region{trigger.Node()},
//	    OnOutside: func(ev *mouse.Event) { popover.Close() },
//	})
//	...
//	reg.Unregister(h)
//
// The Registry attaches itself to the surface when the first watcher is
// registered and detaches when the last one is removed; there is never more
// than one attachment.
//
// A registration takes effect on the next scheduler turn, not immediately.
// A watcher registered while a click is being handled (for example by the
// click that opened the popover) does not see that click.
//
// # Dispatch
//
// For every click the Registry consults watchers newest first. A watcher is
// called when ShouldInvoke approves the click: a primary click (or touch)
// that lands neither in its container nor in any ignored region. A callback
// may call PreventDefault on the event; no older watcher is consulted after
// that. A click whose default was already prevented before it reached the
// Registry is not dispatched at all.
//
// Callbacks run without any Registry lock held and may register or
// unregister freely. A watcher removed during a dispatch is not called for
// the rest of it. Panics raised by callbacks are not recovered.
//
// # Lifecycle
//
// Binding ties one registration to a widget's open/closed state:
// Activate on open, Deactivate on close. Both are idempotent.
package clickaway
