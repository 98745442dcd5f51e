// Package invaders implements the single-screen shooter simulation:
// a player ship, a marching enemy formation and bullets from both sides.
// The simulation is driven one tick at a time and never reads the clock
// or the keyboard itself.
package invaders

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/tui-invaders/internal/config"
	"github.com/vovakirdan/tui-invaders/internal/core"
)

// ErrNilRand is returned by NewSession when no random source is given.
var ErrNilRand = errors.New("invaders: nil random source")

// Session owns the full simulation state. It is not safe for concurrent use;
// hosts drive it from a single loop.
type Session struct {
	cfg config.InvadersConfig
	rng Rand

	phase Phase
	tick  uint64
	score int
	lives int
	level int

	player        Player
	enemies       []Enemy
	playerBullets []Bullet
	enemyBullets  []Bullet

	direction int     // +1 right, -1 left
	speed     float64 // Current formation speed

	startHeld bool // Start action state on the previous tick, for edge detection
	events    []core.Event
}

// NewSession validates cfg and creates a session in PhaseNotStarted
// with a full formation.
func NewSession(cfg config.InvadersConfig, rng Rand) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invaders: %w", err)
	}
	if rng == nil {
		return nil, ErrNilRand
	}

	s := &Session{cfg: cfg, rng: rng}
	s.reset()
	return s, nil
}

// Config returns the configuration the session was built with.
func (s *Session) Config() config.InvadersConfig {
	return s.cfg
}

// Phase returns the current phase.
func (s *Session) Phase() Phase {
	return s.phase
}

// reset restores the initial world: score 0, full lives, level 1,
// centered ship, fresh formation at base speed moving right, no bullets.
// The start-edge state is kept so a held key does not restart twice.
func (s *Session) reset() {
	s.phase = PhaseNotStarted
	s.score = 0
	s.lives = s.cfg.Player.Lives
	s.level = 1

	p := s.cfg.Player
	s.player = Player{
		Rect:  core.NewRect(s.cfg.Playfield.Width/2-p.Width/2, s.cfg.PlayerY(), p.Width, p.Height),
		Speed: p.Speed,
	}
	s.enemies = buildFormation(s.cfg.Formation)
	s.playerBullets = nil
	s.enemyBullets = nil
	s.direction = 1
	s.speed = s.cfg.Formation.Speed
}

// Tick advances the session by one step using the actions held this tick.
// now is only compared against the previous shot time for the fire cooldown.
// The returned events describe what happened during this tick.
func (s *Session) Tick(in core.InputFrame, now time.Time) []core.Event {
	s.tick++
	s.events = nil

	start := in.Has(core.ActionStart)
	startPressed := start && !s.startHeld
	s.startHeld = start

	switch s.phase {
	case PhaseNotStarted:
		if startPressed {
			s.phase = PhaseRunning
			s.emit(core.EventStarted, s.level)
		}
		return s.events
	case PhaseGameOver:
		if startPressed {
			s.reset()
			s.emit(core.EventReset, 0)
		}
		return s.events
	}

	s.updatePlayer(in, now)
	s.updateBullets()
	s.updateFormation()
	s.resolveCollisions()

	if s.phase == PhaseRunning {
		s.checkLevelComplete()
	}
	return s.events
}

func (s *Session) updatePlayer(in core.InputFrame, now time.Time) {
	p := &s.player
	if in.Has(core.ActionLeft) {
		p.Rect.X -= p.Speed
	}
	if in.Has(core.ActionRight) {
		p.Rect.X += p.Speed
	}
	p.Rect.X = core.ClampF(p.Rect.X, 0, s.cfg.Playfield.Width-p.Rect.W)

	if in.Has(core.ActionFire) && now.Sub(p.LastShot) >= s.cfg.Player.ShootCooldown() {
		b := s.cfg.Bullets
		s.playerBullets = append(s.playerBullets, Bullet{
			Rect: core.NewRect(p.Rect.X+p.Rect.W/2-b.Width/2, p.Rect.Y, b.Width, b.Height),
			Side: SidePlayer,
		})
		p.LastShot = now
	}
}

// updateBullets moves every bullet and drops those whose y left [0, height].
func (s *Session) updateBullets() {
	h := s.cfg.Playfield.Height
	s.playerBullets = moveBullets(s.playerBullets, -s.cfg.Bullets.PlayerSpeed, h)
	s.enemyBullets = moveBullets(s.enemyBullets, s.cfg.Bullets.EnemySpeed, h)
}

func moveBullets(bullets []Bullet, dy, height float64) []Bullet {
	kept := bullets[:0]
	for _, b := range bullets {
		b.Rect.Y += dy
		if b.Rect.Y < 0 || b.Rect.Y > height {
			continue
		}
		kept = append(kept, b)
	}
	clear(bullets[len(kept):])
	return kept
}

// checkLevelComplete starts the next level once the formation is empty.
// Direction is kept; score and lives carry over.
func (s *Session) checkLevelComplete() {
	if len(s.enemies) > 0 {
		return
	}
	s.level++
	s.enemies = buildFormation(s.cfg.Formation)
	s.speed += s.cfg.Formation.SpeedIncrement
	s.playerBullets = nil
	s.enemyBullets = nil
	s.emit(core.EventLevelCleared, s.level)
}

func (s *Session) endGame() {
	if s.phase == PhaseGameOver {
		return
	}
	s.phase = PhaseGameOver
	s.emit(core.EventGameOver, s.score)
}

func (s *Session) emit(kind core.EventKind, value int) {
	s.events = append(s.events, core.Event{Kind: kind, Value: value})
}

// State returns the summary consumed by hosts.
func (s *Session) State() core.GameState {
	return core.GameState{
		Score:    s.score,
		Lives:    s.lives,
		Level:    s.level,
		Running:  s.phase == PhaseRunning,
		GameOver: s.phase == PhaseGameOver,
	}
}
