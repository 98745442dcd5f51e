//go:build !ebiten

package gui

import "github.com/vovakirdan/tui-invaders/internal/core"

// Run always reports that the GUI build tag is missing.
func Run(Options) (core.SessionResult, error) {
	return core.SessionResult{}, ErrUnavailable
}
