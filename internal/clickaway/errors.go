package clickaway

import "errors"

var (
	// ErrNoCallback indicates a Spec without an OnOutside callback.
	ErrNoCallback = errors.New("clickaway: spec has no OnOutside callback")

	// ErrNoRegistry indicates a Binding created without a Registry.
	ErrNoRegistry = errors.New("clickaway: binding has no registry")
)
