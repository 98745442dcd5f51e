// Package gui runs the game in a desktop window using Ebitengine.
// The window host is only compiled with the 'ebiten' build tag; without it
// Run reports ErrUnavailable.
package gui

import (
	"errors"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-invaders/internal/core"
	"github.com/vovakirdan/tui-invaders/internal/registry"
	"github.com/vovakirdan/tui-invaders/internal/storage"
)

// ErrUnavailable is returned by Run in builds without the 'ebiten' tag.
var ErrUnavailable = errors.New("gui: built without the 'ebiten' tag")

// Options configures a window session.
type Options struct {
	Game     registry.Game
	Runtime  core.RuntimeConfig
	FieldW   float64 // Playfield size in simulation units
	FieldH   float64
	Scale    float64 // Window pixels per playfield unit; <= 0 means 1
	Logger   *log.Logger
	Recorder *storage.Recorder // Records input when set
}
