package invaders

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-invaders/internal/config"
	"github.com/vovakirdan/tui-invaders/internal/core"
	"github.com/vovakirdan/tui-invaders/internal/registry"
	"github.com/vovakirdan/tui-invaders/internal/render"
)

// ID is the registry identifier of the game.
const ID = "invaders"

// Game adapts a Session to the registry.Game interface.
type Game struct {
	cfg     config.InvadersConfig
	session *Session
}

// New creates a game from a configuration. The session is built on Reset.
func New(cfg config.InvadersConfig) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Game{cfg: cfg}, nil
}

func init() {
	registry.Register(ID, func(cfg config.InvadersConfig) (registry.Game, error) {
		return New(cfg)
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return ID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Space Invaders"
}

// Reset builds a fresh session seeded from cfg.Seed.
func (g *Game) Reset(cfg core.RuntimeConfig) error {
	s, err := NewSession(g.cfg, rand.New(rand.NewSource(cfg.Seed)))
	if err != nil {
		return err
	}
	g.session = s
	return nil
}

// Step advances the session by one tick.
func (g *Game) Step(in core.InputFrame, now time.Time) core.StepResult {
	if g.session == nil {
		return core.StepResult{}
	}
	events := g.session.Tick(in, now)
	return core.StepResult{
		State:  g.session.State(),
		Events: events,
	}
}

// Render draws the current state.
func (g *Game) Render(dst render.Canvas) {
	if g.session == nil {
		return
	}
	Render(g.session.Snapshot(), dst)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{}
	}
	return g.session.State()
}

// Hash returns the digest of the current snapshot.
func (g *Game) Hash() uint64 {
	if g.session == nil {
		return 0
	}
	return g.session.Snapshot().Hash()
}

// Snapshot returns the current snapshot, for tests and tools.
func (g *Game) Snapshot() Snapshot {
	if g.session == nil {
		return Snapshot{}
	}
	return g.session.Snapshot()
}
