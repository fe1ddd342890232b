package clickaway

import "sync"

// Binding ties one registration to a widget's lifetime. The widget calls
// Activate when it opens and Deactivate when it closes.
type Binding struct {
	mu       sync.Mutex
	registry *Registry
	spec     Spec
	handle   Handle
	active   bool
}

// NewBinding creates an inactive binding of spec to r.
func NewBinding(r *Registry, spec Spec) *Binding {
	return &Binding{registry: r, spec: spec}
}

// Activate registers the binding's spec. Activating an active binding is
// a no-op.
func (b *Binding) Activate() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.active {
		return nil
	}
	if b.registry == nil {
		return ErrNoRegistry
	}

	h, err := b.registry.Register(b.spec)
	if err != nil {
		return err
	}
	b.handle = h
	b.active = true
	return nil
}

// Deactivate unregisters exactly the handle Activate registered.
// Deactivating an inactive binding is a no-op.
func (b *Binding) Deactivate() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.active {
		return
	}
	b.registry.Unregister(b.handle)
	b.handle = Handle{}
	b.active = false
}

// Rebind replaces the spec. An active binding is re-registered with the
// new spec, which takes effect on the next scheduler turn like any other
// registration.
func (b *Binding) Rebind(spec Spec) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if spec.OnOutside == nil {
		return ErrNoCallback
	}
	b.spec = spec
	if !b.active {
		return nil
	}

	h, err := b.registry.Register(spec)
	if err != nil {
		return err
	}
	b.registry.Unregister(b.handle)
	b.handle = h
	return nil
}

// Active reports whether the binding is registered.
func (b *Binding) Active() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.active
}

// Handle returns the current registration handle, or the zero Handle when
// inactive.
func (b *Binding) Handle() Handle {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.handle
}
