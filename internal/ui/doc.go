// Package ui provides the terminal widgets of the demo: buttons and
// popovers that close when the user clicks elsewhere.
//
// Widgets own a clickaway.Node describing the cells they occupy. A Popover
// ties its open state to a clickaway.Binding, so the watcher exists exactly
// while the popover is shown.
package ui
