// Package ui provides the Bubble Tea TUI for nibble.
package ui

import "github.com/abelbrown/nibble/internal/suggest"

// HealthChecked is sent when the startup health probe finishes.
type HealthChecked struct {
	Health *suggest.Health
	Err    error
}
