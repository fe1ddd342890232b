package clickaway

import (
	"slices"
	"sync"
	"sync/atomic"

	"github.com/dshills/clickaway/internal/input/mouse"
	"github.com/dshills/clickaway/internal/logging"
)

// ClickListener receives click-equivalent events from a Surface.
type ClickListener interface {
	HandleClick(ev *mouse.Event)
}

// Surface is the input source clicks come from. Listeners are compared
// by identity. Implementations must not call back into the listener from
// AddClickListener or RemoveClickListener.
type Surface interface {
	AddClickListener(l ClickListener)
	RemoveClickListener(l ClickListener)
}

// Scheduler runs tasks on a later turn of the event loop.
type Scheduler interface {
	Defer(task func())
}

// Spec describes one outside-click watcher.
type Spec struct {
	// Container is the region the watcher owns. Clicks inside it are not outside.
	Container Region

	// Ignore lists further regions whose clicks are not outside either.
	Ignore []Region

	// OnOutside is called with each outside click.
	OnOutside func(ev *mouse.Event)
}

// Handle identifies one registration with the Registry that issued it.
// The zero Handle identifies nothing.
type Handle struct {
	id    uint64
	owner *Registry
}

// ID returns the registration's numeric token. Tokens are never reused
// within a Registry.
func (h Handle) ID() uint64 {
	return h.id
}

// IsZero reports whether h is the zero Handle.
func (h Handle) IsZero() bool {
	return h.id == 0
}

// entry is one registered watcher.
type entry struct {
	id        uint64
	container Region
	ignore    []Region
	onOutside func(ev *mouse.Event)
	removed   atomic.Bool
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for attach/detach and activation messages.
func WithLogger(l *logging.Logger) Option {
	return func(r *Registry) {
		r.logger = l.WithComponent("clickaway")
	}
}

// Registry owns the ordered list of watchers and the single surface
// subscription that feeds them.
type Registry struct {
	mu sync.Mutex

	surface Surface
	sched   Scheduler
	logger  *logging.Logger

	nextID   uint64
	active   []*entry
	pending  map[uint64]*entry
	attached bool
}

// New creates a Registry listening on surface and deferring activations
// through sched.
func New(surface Surface, sched Scheduler, opts ...Option) *Registry {
	r := &Registry{
		surface: surface,
		sched:   sched,
		pending: make(map[uint64]*entry),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a watcher. The watcher becomes eligible for dispatch on the
// next scheduler turn. The returned Handle removes it again.
func (r *Registry) Register(spec Spec) (Handle, error) {
	if spec.OnOutside == nil {
		return Handle{}, ErrNoCallback
	}

	r.mu.Lock()
	r.nextID++
	e := &entry{
		id:        r.nextID,
		container: spec.Container,
		ignore:    slices.Clone(spec.Ignore),
		onOutside: spec.OnOutside,
	}
	r.pending[e.id] = e
	if !r.attached {
		r.attached = true
		r.surface.AddClickListener(r)
		r.logger.Debug("listener attached")
	}
	r.mu.Unlock()

	r.sched.Defer(func() { r.activate(e) })

	return Handle{id: e.id, owner: r}, nil
}

// activate moves a pending entry into the dispatch order.
func (r *Registry) activate(e *entry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e.removed.Load() {
		// Unregistered before its turn came
		return
	}
	delete(r.pending, e.id)
	r.active = append(r.active, e)
	r.logger.Debug("watcher %d active (%d total)", e.id, len(r.active))
}

// Unregister removes the watcher identified by h. Unknown, zero,
// already-removed and foreign handles are ignored.
func (r *Registry) Unregister(h Handle) {
	if h.IsZero() || h.owner != r {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.pending[h.id]; ok {
		e.removed.Store(true)
		delete(r.pending, h.id)
	} else {
		i := slices.IndexFunc(r.active, func(e *entry) bool { return e.id == h.id })
		if i < 0 {
			return
		}
		r.active[i].removed.Store(true)
		r.active = slices.Delete(r.active, i, i+1)
	}

	r.detachIfIdleLocked()
}

// Close removes every watcher and detaches from the surface.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range r.active {
		e.removed.Store(true)
	}
	for _, e := range r.pending {
		e.removed.Store(true)
	}
	r.active = nil
	clear(r.pending)

	r.detachIfIdleLocked()
}

func (r *Registry) detachIfIdleLocked() {
	if !r.attached || len(r.active)+len(r.pending) > 0 {
		return
	}
	r.attached = false
	r.surface.RemoveClickListener(r)
	r.logger.Debug("listener detached")
}

// HandleClick dispatches one click to the watchers, newest first. It
// implements ClickListener and is what the Registry attaches to the surface.
func (r *Registry) HandleClick(ev *mouse.Event) {
	if ev == nil || ev.DefaultPrevented() {
		return
	}

	r.mu.Lock()
	snapshot := slices.Clone(r.active)
	r.mu.Unlock()

	for i := len(snapshot) - 1; i >= 0; i-- {
		e := snapshot[i]
		if e.removed.Load() {
			continue
		}
		if ShouldInvoke(ev, e.container, e.ignore) {
			e.onOutside(ev)
		}
		if ev.DefaultPrevented() {
			return
		}
	}
}

// Len returns the number of watchers eligible for dispatch.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.active)
}

// Pending returns the number of watchers waiting for their first turn.
func (r *Registry) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pending)
}

// Attached reports whether the Registry is subscribed to the surface.
func (r *Registry) Attached() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.attached
}
