package app

import (
	"errors"
	"io"
	"strings"
	"testing"
)

func TestInitError(t *testing.T) {
	inner := errors.New("no tty")
	err := &InitError{Component: "backend", Err: inner}

	if err.Error() != "init backend: no tty" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, inner) {
		t.Error("errors.Is should find the wrapped error")
	}
}

func TestRecoveredPanicError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *RecoveredPanicError
		expected string
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: "",
		},
		{
			name:     "value only",
			err:      NewRecoveredPanicError("boom", ""),
			expected: "panic: boom",
		},
		{
			name:     "with stack",
			err:      NewRecoveredPanicError("boom", "goroutine 1"),
			expected: "panic: boom\ngoroutine 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, expected %q", got, tt.expected)
			}
		})
	}
}

func TestRecoveredPanicError_Unwrap(t *testing.T) {
	err := NewRecoveredPanicError(io.EOF, "")
	if !errors.Is(err, io.EOF) {
		t.Error("errors.Is should see an error panic value")
	}

	err = NewRecoveredPanicError(42, "")
	if err.Unwrap() != nil {
		t.Error("expected nil Unwrap for a non-error value")
	}
}

func TestErrorList_Empty(t *testing.T) {
	var list ErrorList

	list.Add(nil)
	if list.Len() != 0 {
		t.Errorf("expected 0 errors, got %d", list.Len())
	}
	if list.AsError() != nil {
		t.Error("AsError() should be nil when empty")
	}
	if list.Errors() != nil {
		t.Error("Errors() should be nil when empty")
	}
	if list.Error() != "" {
		t.Errorf("Error() = %q, expected empty", list.Error())
	}
}

func TestErrorList_Single(t *testing.T) {
	var list ErrorList
	list.Add(io.EOF)

	if list.Error() != io.EOF.Error() {
		t.Errorf("Error() = %q", list.Error())
	}
	if !errors.Is(list.AsError(), io.EOF) {
		t.Error("errors.Is should find the only error")
	}
}

func TestErrorList_Multiple(t *testing.T) {
	var list ErrorList
	first := errors.New("first")
	list.Add(first)
	list.Add(&InitError{Component: "lua", Err: io.ErrUnexpectedEOF})

	err := list.AsError()
	if err == nil {
		t.Fatal("AsError() returned nil")
	}
	if !strings.HasPrefix(err.Error(), "2 errors") {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, first) || !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Error("errors.Is should search every collected error")
	}

	var ie *InitError
	if !errors.As(err, &ie) || ie.Component != "lua" {
		t.Error("errors.As should find the InitError")
	}

	errs := list.Errors()
	errs[0] = nil
	if list.Errors()[0] != first {
		t.Error("Errors() should return a copy")
	}
}
