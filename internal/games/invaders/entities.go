package invaders

import (
	"time"

	"github.com/vovakirdan/tui-invaders/internal/core"
)

// Phase is the top-level state of a session.
type Phase int

const (
	PhaseNotStarted Phase = iota // Waiting for the start key
	PhaseRunning                 // Simulation advancing
	PhaseGameOver                // Waiting for the restart key
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not_started"
	case PhaseRunning:
		return "running"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Tier is an enemy's scoring class, fixed by its formation row.
type Tier int

const (
	TierFast Tier = iota
	TierMedium
	TierSlow
)

// String returns a human-readable name for the tier.
func (t Tier) String() string {
	switch t {
	case TierFast:
		return "fast"
	case TierMedium:
		return "medium"
	case TierSlow:
		return "slow"
	default:
		return "unknown"
	}
}

// Points returns the score awarded for destroying an enemy of this tier.
func (t Tier) Points() int {
	switch t {
	case TierFast:
		return 30
	case TierMedium:
		return 20
	default:
		return 10
	}
}

// Color returns the body color of an enemy of this tier.
func (t Tier) Color() core.Color {
	switch t {
	case TierFast:
		return core.ColorBrightRed
	case TierMedium:
		return core.ColorBrightYellow
	default:
		return core.ColorBrightCyan
	}
}

// tierForRow derives the tier from the row index. The level number plays no part.
func tierForRow(row, fastRows, mediumRows int) Tier {
	switch {
	case row < fastRows:
		return TierFast
	case row < fastRows+mediumRows:
		return TierMedium
	default:
		return TierSlow
	}
}

// Side identifies who fired a bullet.
type Side int

const (
	SidePlayer Side = iota // Travels up
	SideEnemy              // Travels down
)

// Player is the ship controlled by the user.
type Player struct {
	Rect     core.Rect
	Speed    float64
	LastShot time.Time
}

// Enemy is one member of the formation.
type Enemy struct {
	Rect core.Rect
	Tier Tier
	Row  int // Slot in the formation grid
	Col  int
}

// Bullet is a projectile fired by either side.
type Bullet struct {
	Rect core.Rect
	Side Side
}

// Rand is the random source used for enemy fire.
// *math/rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	Intn(n int) int
}
