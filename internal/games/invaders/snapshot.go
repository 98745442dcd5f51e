package invaders

import (
	"encoding/binary"
	"hash/fnv"
	"math"
	"slices"

	"github.com/vovakirdan/tui-invaders/internal/core"
)

// EnemyView is the read-only view of one enemy.
type EnemyView struct {
	Rect core.Rect
	Tier Tier
}

// Snapshot captures the complete simulation state for rendering,
// determinism testing and replay verification.
// It holds copies; mutating it does not affect the session.
type Snapshot struct {
	Tick      uint64
	Phase     Phase
	Score     int
	Lives     int
	Level     int
	Playfield core.Rect

	Player        core.Rect
	Enemies       []EnemyView // Formation order
	PlayerBullets []core.Rect
	EnemyBullets  []core.Rect

	Direction int
	Speed     float64
}

// Snapshot returns the current state.
func (s *Session) Snapshot() Snapshot {
	enemies := make([]EnemyView, len(s.enemies))
	for i, e := range s.enemies {
		enemies[i] = EnemyView{Rect: e.Rect, Tier: e.Tier}
	}

	return Snapshot{
		Tick:          s.tick,
		Phase:         s.phase,
		Score:         s.score,
		Lives:         s.lives,
		Level:         s.level,
		Playfield:     core.NewRect(0, 0, s.cfg.Playfield.Width, s.cfg.Playfield.Height),
		Player:        s.player.Rect,
		Enemies:       enemies,
		PlayerBullets: bulletRects(s.playerBullets),
		EnemyBullets:  bulletRects(s.enemyBullets),
		Direction:     s.direction,
		Speed:         s.speed,
	}
}

func bulletRects(bullets []Bullet) []core.Rect {
	rects := make([]core.Rect, len(bullets))
	for i, b := range bullets {
		rects[i] = b.Rect
	}
	return rects
}

// Equal reports whether two snapshots describe the same state.
func (s Snapshot) Equal(other Snapshot) bool {
	return s.Tick == other.Tick &&
		s.Phase == other.Phase &&
		s.Score == other.Score &&
		s.Lives == other.Lives &&
		s.Level == other.Level &&
		s.Playfield == other.Playfield &&
		s.Player == other.Player &&
		s.Direction == other.Direction &&
		s.Speed == other.Speed &&
		slices.Equal(s.Enemies, other.Enemies) &&
		slices.Equal(s.PlayerBullets, other.PlayerBullets) &&
		slices.Equal(s.EnemyBullets, other.EnemyBullets)
}

// Hash returns a 64-bit FNV-1a digest of the snapshot.
// Two runs fed the same inputs and random source produce the same hash.
func (s Snapshot) Hash() uint64 {
	h := fnv.New64a()
	var buf [8]byte
	putU := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		h.Write(buf[:])
	}
	putI := func(v int) { putU(uint64(int64(v))) }
	putF := func(v float64) { putU(math.Float64bits(v)) }
	putR := func(r core.Rect) {
		putF(r.X)
		putF(r.Y)
		putF(r.W)
		putF(r.H)
	}

	putU(s.Tick)
	putI(int(s.Phase))
	putI(s.Score)
	putI(s.Lives)
	putI(s.Level)
	putR(s.Player)
	putI(s.Direction)
	putF(s.Speed)

	putI(len(s.Enemies))
	for _, e := range s.Enemies {
		putR(e.Rect)
		putI(int(e.Tier))
	}
	putI(len(s.PlayerBullets))
	for _, r := range s.PlayerBullets {
		putR(r)
	}
	putI(len(s.EnemyBullets))
	for _, r := range s.EnemyBullets {
		putR(r)
	}
	return h.Sum64()
}
