// Package config holds the application configuration and loads it from
// defaults, a TOML file and CLICKAWAY_ environment variables, in that order
// of increasing precedence.
package config

import (
	"fmt"
	"time"

	"github.com/dshills/clickaway/internal/logging"
	"github.com/dshills/clickaway/internal/renderer/core"
)

// Duration is a time.Duration read from a string such as "400ms".
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Config is the complete application configuration.
type Config struct {
	Log     LogConfig     `toml:"log"`
	Mouse   MouseConfig   `toml:"mouse"`
	Theme   ThemeConfig   `toml:"theme"`
	Scripts ScriptsConfig `toml:"scripts"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level"`
	// File receives log output. Empty discards logs, since the terminal
	// is owned by the UI.
	File string `toml:"file"`
}

// MouseConfig configures click synthesis.
type MouseConfig struct {
	Enabled             bool     `toml:"enabled"`
	DoubleClickTime     Duration `toml:"double_click_time"`
	DoubleClickDistance int      `toml:"double_click_distance"`
	DragThreshold       int      `toml:"drag_threshold"`
}

// ThemeConfig holds hex colors for the widgets.
type ThemeConfig struct {
	PopoverFg string `toml:"popover_fg"`
	PopoverBg string `toml:"popover_bg"`
	ButtonFg  string `toml:"button_fg"`
	ButtonBg  string `toml:"button_bg"`
	StatusFg  string `toml:"status_fg"`
	StatusBg  string `toml:"status_bg"`
}

// ScriptsConfig lists Lua scripts to run at startup.
type ScriptsConfig struct {
	Paths []string `toml:"paths"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level: "info",
		},
		Mouse: MouseConfig{
			Enabled:             true,
			DoubleClickTime:     Duration(400 * time.Millisecond),
			DoubleClickDistance: 4,
		},
		Theme: ThemeConfig{
			PopoverFg: "#eceff4",
			PopoverBg: "#3b4252",
			ButtonFg:  "#2e3440",
			ButtonBg:  "#88c0d0",
			StatusFg:  "#d8dee9",
			StatusBg:  "#4c566a",
		},
	}
}

// Validate checks every setting and returns the first *ValidationError.
func (c *Config) Validate() error {
	if !logging.ValidLevel(c.Log.Level) {
		return &ValidationError{Path: "log.level", Message: "must be debug, info, warn or error", Value: c.Log.Level}
	}
	if c.Mouse.DoubleClickTime < 0 {
		return &ValidationError{Path: "mouse.double_click_time", Message: "must not be negative", Value: time.Duration(c.Mouse.DoubleClickTime)}
	}
	if c.Mouse.DoubleClickDistance < 0 {
		return &ValidationError{Path: "mouse.double_click_distance", Message: "must not be negative", Value: c.Mouse.DoubleClickDistance}
	}
	if c.Mouse.DragThreshold < 0 {
		return &ValidationError{Path: "mouse.drag_threshold", Message: "must not be negative", Value: c.Mouse.DragThreshold}
	}

	colors := []struct {
		path  string
		value string
	}{
		{"theme.popover_fg", c.Theme.PopoverFg},
		{"theme.popover_bg", c.Theme.PopoverBg},
		{"theme.button_fg", c.Theme.ButtonFg},
		{"theme.button_bg", c.Theme.ButtonBg},
		{"theme.status_fg", c.Theme.StatusFg},
		{"theme.status_bg", c.Theme.StatusBg},
	}
	for _, col := range colors {
		if col.value == "" {
			continue
		}
		if _, err := core.ColorFromHex(col.value); err != nil {
			return &ValidationError{Path: col.path, Message: fmt.Sprintf("invalid color: %v", err), Value: col.value}
		}
	}

	for i, p := range c.Scripts.Paths {
		if p == "" {
			return &ValidationError{Path: fmt.Sprintf("scripts.paths[%d]", i), Message: "must not be empty", Value: p}
		}
	}

	return nil
}

// Color parses a theme color, falling back to the terminal default for
// empty or invalid values.
func Color(hex string) core.Color {
	if hex == "" {
		return core.ColorDefault
	}
	c, err := core.ColorFromHex(hex)
	if err != nil {
		return core.ColorDefault
	}
	return c
}
