package ui

import (
	"github.com/dshills/clickaway/internal/config"
	"github.com/dshills/clickaway/internal/renderer/core"
)

// Theme holds the styles widgets draw with.
type Theme struct {
	Popover      core.Style
	PopoverTitle core.Style
	Button       core.Style
	ButtonActive core.Style
	Status       core.Style
}

// activeTint is how far an active button's background moves toward its
// foreground.
const activeTint = 0.35

// ThemeFromConfig builds a theme from configured hex colors.
func ThemeFromConfig(tc config.ThemeConfig) Theme {
	popFg, popBg := config.Color(tc.PopoverFg), config.Color(tc.PopoverBg)
	btnFg, btnBg := config.Color(tc.ButtonFg), config.Color(tc.ButtonBg)

	popover := core.DefaultStyle().WithForeground(popFg).WithBackground(popBg)
	button := core.DefaultStyle().WithForeground(btnFg).WithBackground(btnBg)

	return Theme{
		Popover:      popover,
		PopoverTitle: popover.Bold(),
		Button:       button,
		ButtonActive: button.WithBackground(btnBg.Blend(btnFg, activeTint)).Bold(),
		Status: core.DefaultStyle().
			WithForeground(config.Color(tc.StatusFg)).
			WithBackground(config.Color(tc.StatusBg)),
	}
}

// DefaultTheme returns the theme of the default configuration.
func DefaultTheme() Theme {
	return ThemeFromConfig(config.Default().Theme)
}
