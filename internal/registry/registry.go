// Package registry provides a global registry for game factories.
// Games register themselves in init() functions, allowing the platform
// to discover and instantiate games without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/vovakirdan/tui-invaders/internal/config"
	"github.com/vovakirdan/tui-invaders/internal/core"
	"github.com/vovakirdan/tui-invaders/internal/render"
)

// Game is the interface hosts drive. Games contain pure logic with no
// external dependencies (especially no Bubble Tea); the platform handles
// input mapping, timing and output.
type Game interface {
	// ID returns a unique identifier for this game (e.g., "invaders").
	// Used for CLI commands and run storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset rebuilds the game from scratch.
	// The RuntimeConfig provides the RNG seed.
	Reset(cfg core.RuntimeConfig) error

	// Step advances the simulation by one fixed tick.
	// now is the host's notion of the current time for this tick.
	Step(in core.InputFrame, now time.Time) core.StepResult

	// Render draws the current state onto the canvas.
	Render(dst render.Canvas)

	// State returns the current game state (score, lives, level, phase).
	State() core.GameState

	// Hash returns a digest of the full simulation state, used to verify replays.
	Hash() uint64
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a new instance of a game from its tuning.
type Factory func(cfg config.InvadersConfig) (Game, error)

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a game factory to the registry.
// Typically called from a game's init() function.
// Panics if a game with the same ID is already registered or the factory
// rejects the default configuration.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	// Get title by creating a temporary instance
	g, err := f(config.DefaultInvadersConfig())
	if err != nil {
		panic(fmt.Sprintf("registry: game %q: %v", id, err))
	}

	factories[id] = f
	titles[id] = g.Title()
}

// List returns information about all registered games, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(factories))
	for id := range factories {
		result = append(result, GameInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new game by its ID.
// Returns an error if the game ID is not registered or cfg is rejected.
func Create(id string, cfg config.InvadersConfig) (Game, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}

	g, err := f(cfg)
	if err != nil {
		return nil, fmt.Errorf("registry: create %q: %w", id, err)
	}
	return g, nil
}

// Exists checks if a game with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
