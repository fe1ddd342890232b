package lua

import "errors"

// Errors for Lua state operations.
var (
	// ErrStateClosed is returned when operating on a closed state.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrExecutionTimeout is returned when a script runs past its timeout.
	ErrExecutionTimeout = errors.New("lua execution timeout")
)

// ScriptError wraps a failure loading or running a script.
type ScriptError struct {
	// Source is the file path, or "<string>" for inline code.
	Source string
	Err    error
}

func (e *ScriptError) Error() string {
	return "script " + e.Source + ": " + e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ScriptError) Unwrap() error {
	return e.Err
}
