package invaders

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/vovakirdan/tui-invaders/internal/config"
	"github.com/vovakirdan/tui-invaders/internal/core"
)

// fixedRand returns the same values on every call.
type fixedRand struct {
	f float64
	n int
}

func (r fixedRand) Float64() float64 { return r.f }
func (r fixedRand) Intn(int) int     { return r.n }

// quiet never lets the formation fire.
var quiet = fixedRand{f: 1}

var t0 = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func frame(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

func newSession(t *testing.T, cfg config.InvadersConfig, rng Rand) *Session {
	t.Helper()
	s, err := NewSession(cfg, rng)
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	return s
}

// newRunning returns a session that has just left PhaseNotStarted.
// The start key is released again before returning.
func newRunning(t *testing.T) *Session {
	t.Helper()
	s := newSession(t, config.DefaultInvadersConfig(), quiet)
	s.Tick(frame(core.ActionStart), t0)
	if s.Phase() != PhaseRunning {
		t.Fatalf("expected running after start, got %v", s.Phase())
	}
	s.startHeld = false
	return s
}

func hasEvent(events []core.Event, kind core.EventKind) bool {
	for _, e := range events {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

func TestNewSessionInitialState(t *testing.T) {
	s := newSession(t, config.DefaultInvadersConfig(), quiet)
	snap := s.Snapshot()

	if snap.Phase != PhaseNotStarted {
		t.Errorf("Phase = %v, expected not_started", snap.Phase)
	}
	if snap.Score != 0 || snap.Lives != 3 || snap.Level != 1 {
		t.Errorf("score/lives/level = %d/%d/%d, expected 0/3/1", snap.Score, snap.Lives, snap.Level)
	}
	if snap.Player != core.NewRect(375, 540, 50, 40) {
		t.Errorf("Player = %+v, expected centered at y=540", snap.Player)
	}
	if len(snap.Enemies) != 50 {
		t.Errorf("expected 50 enemies, got %d", len(snap.Enemies))
	}
	if snap.Direction != 1 || snap.Speed != 1 {
		t.Errorf("direction/speed = %d/%v, expected 1/1", snap.Direction, snap.Speed)
	}
	if len(snap.PlayerBullets) != 0 || len(snap.EnemyBullets) != 0 {
		t.Error("expected no bullets")
	}
}

func TestNewSessionRejectsInvalidConfig(t *testing.T) {
	cfg := config.DefaultInvadersConfig()
	cfg.Formation.Rows = 0

	_, err := NewSession(cfg, quiet)
	if err == nil {
		t.Fatal("expected error for zero rows")
	}
	if !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("error should wrap ErrInvalidConfig: %v", err)
	}

	if _, err := NewSession(config.DefaultInvadersConfig(), nil); !errors.Is(err, ErrNilRand) {
		t.Errorf("expected ErrNilRand, got %v", err)
	}
}

func TestFormationLayoutAndTiers(t *testing.T) {
	s := newSession(t, config.DefaultInvadersConfig(), quiet)

	want := map[int]Tier{0: TierFast, 1: TierFast, 2: TierMedium, 3: TierMedium, 4: TierSlow}
	for i, e := range s.enemies {
		if e.Row != i/10 || e.Col != i%10 {
			t.Fatalf("enemy %d at row %d col %d, expected row-major order", i, e.Row, e.Col)
		}
		if e.Tier != want[e.Row] {
			t.Errorf("enemy row %d has tier %v, expected %v", e.Row, e.Tier, want[e.Row])
		}
		x := 50 + float64(e.Col)*60
		y := 50 + float64(e.Row)*50
		if e.Rect != core.NewRect(x, y, 40, 30) {
			t.Errorf("enemy (%d,%d) rect = %+v", e.Row, e.Col, e.Rect)
		}
	}

	if TierFast.Points() != 30 || TierMedium.Points() != 20 || TierSlow.Points() != 10 {
		t.Error("unexpected tier points")
	}
}

func TestStartOnEdgeOnly(t *testing.T) {
	s := newSession(t, config.DefaultInvadersConfig(), quiet)
	before := s.Snapshot()

	// Input other than start does nothing while waiting.
	s.Tick(frame(core.ActionLeft, core.ActionFire), t0)
	if s.Phase() != PhaseNotStarted {
		t.Fatal("non-start input should not start the game")
	}
	if s.Snapshot().Player != before.Player || len(s.playerBullets) != 0 {
		t.Error("world should not change before start")
	}

	// The start tick itself runs no simulation.
	events := s.Tick(frame(core.ActionStart, core.ActionLeft), t0)
	if s.Phase() != PhaseRunning {
		t.Fatal("start edge should start the game")
	}
	if !hasEvent(events, core.EventStarted) {
		t.Error("expected EventStarted")
	}
	if s.player.Rect != before.Player || s.enemies[0].Rect != before.Enemies[0].Rect {
		t.Error("start tick should not advance the world")
	}
}

func TestPlayerMovementClamped(t *testing.T) {
	s := newRunning(t)

	s.Tick(frame(core.ActionLeft), t0)
	if s.player.Rect.X != 370 {
		t.Errorf("X after left = %v, expected 370", s.player.Rect.X)
	}
	s.Tick(frame(core.ActionRight), t0)
	if s.player.Rect.X != 375 {
		t.Errorf("X after right = %v, expected 375", s.player.Rect.X)
	}
	s.Tick(frame(core.ActionLeft, core.ActionRight), t0)
	if s.player.Rect.X != 375 {
		t.Errorf("X with both held = %v, expected 375", s.player.Rect.X)
	}

	s.player.Rect.X = 2
	s.Tick(frame(core.ActionLeft), t0)
	if s.player.Rect.X != 0 {
		t.Errorf("X at left wall = %v, expected 0", s.player.Rect.X)
	}

	s.player.Rect.X = 748
	s.Tick(frame(core.ActionRight), t0)
	if s.player.Rect.X != 750 {
		t.Errorf("X at right wall = %v, expected 750", s.player.Rect.X)
	}
}

func TestFireCooldown(t *testing.T) {
	s := newRunning(t)

	s.Tick(frame(core.ActionFire), t0)
	if len(s.playerBullets) != 1 {
		t.Fatalf("expected 1 bullet after first shot, got %d", len(s.playerBullets))
	}
	b := s.playerBullets[0].Rect
	if b != core.NewRect(398, 533, 4, 10) {
		t.Errorf("bullet = %+v, expected spawned at ship center and moved once", b)
	}

	s.Tick(frame(core.ActionFire), t0.Add(100*time.Millisecond))
	if len(s.playerBullets) != 1 {
		t.Errorf("shot inside cooldown should be ignored, have %d bullets", len(s.playerBullets))
	}

	s.Tick(frame(core.ActionFire), t0.Add(250*time.Millisecond))
	if len(s.playerBullets) != 2 {
		t.Errorf("shot after cooldown should fire, have %d bullets", len(s.playerBullets))
	}
}

func TestBulletsLeavingPlayfieldAreRemoved(t *testing.T) {
	s := newRunning(t)
	s.playerBullets = []Bullet{
		{Rect: core.NewRect(10, 3, 4, 10), Side: SidePlayer},
		{Rect: core.NewRect(10, 400, 4, 10), Side: SidePlayer},
	}
	s.enemyBullets = []Bullet{
		{Rect: core.NewRect(10, 598, 4, 10), Side: SideEnemy},
	}

	s.Tick(frame(), t0)

	if len(s.playerBullets) != 1 || s.playerBullets[0].Rect.Y != 393 {
		t.Errorf("player bullets = %+v, expected only the one at y=393", s.playerBullets)
	}
	if len(s.enemyBullets) != 0 {
		t.Errorf("enemy bullet below the field should be removed, got %+v", s.enemyBullets)
	}
}

func TestBulletDestroysEnemy(t *testing.T) {
	s := newRunning(t)
	s.playerBullets = []Bullet{{Rect: core.NewRect(60, 70, 4, 10), Side: SidePlayer}}

	events := s.Tick(frame(), t0)

	if s.score != 30 {
		t.Errorf("score = %d, expected 30 for a top-row enemy", s.score)
	}
	if len(s.enemies) != 49 {
		t.Errorf("expected 49 enemies, got %d", len(s.enemies))
	}
	if s.enemies[0].Col != 1 {
		t.Errorf("enemy at column 0 should be gone, first enemy is column %d", s.enemies[0].Col)
	}
	if len(s.playerBullets) != 0 {
		t.Error("bullet should be consumed")
	}
	if !hasEvent(events, core.EventEnemyDestroyed) {
		t.Error("expected EventEnemyDestroyed")
	}
}

func TestBulletDestroysOnlyFirstOverlappingEnemy(t *testing.T) {
	s := newRunning(t)
	s.enemies[1].Rect = s.enemies[0].Rect
	s.playerBullets = []Bullet{{Rect: core.NewRect(60, 70, 4, 10), Side: SidePlayer}}

	s.Tick(frame(), t0)

	if len(s.enemies) != 49 {
		t.Fatalf("expected exactly one enemy destroyed, have %d", len(s.enemies))
	}
	if s.enemies[0].Col != 1 || s.enemies[0].Row != 0 {
		t.Errorf("the enemy earlier in formation order should be destroyed, first left is (%d,%d)",
			s.enemies[0].Row, s.enemies[0].Col)
	}
	if s.score != 30 {
		t.Errorf("score = %d, expected 30", s.score)
	}
}

func TestTwoBulletsOneEnemy(t *testing.T) {
	s := newRunning(t)
	s.playerBullets = []Bullet{
		{Rect: core.NewRect(60, 70, 4, 10), Side: SidePlayer},
		{Rect: core.NewRect(70, 72, 4, 10), Side: SidePlayer},
	}

	s.Tick(frame(), t0)

	if len(s.enemies) != 49 {
		t.Errorf("expected one enemy destroyed, have %d", len(s.enemies))
	}
	if len(s.playerBullets) != 1 {
		t.Errorf("the second bullet should survive, have %d", len(s.playerBullets))
	}
}

func TestScoreByTier(t *testing.T) {
	tests := []struct {
		row    int
		points int
	}{
		{0, 30}, {1, 30}, {2, 20}, {3, 20}, {4, 10},
	}
	for _, tc := range tests {
		s := newRunning(t)
		target := s.enemies[tc.row*10+5].Rect
		// Bullet placed so it overlaps the target after both have moved.
		s.playerBullets = []Bullet{{Rect: core.NewRect(target.X+10, target.Y+17, 4, 10), Side: SidePlayer}}

		s.Tick(frame(), t0)

		if s.score != tc.points {
			t.Errorf("row %d: score = %d, expected %d", tc.row, s.score, tc.points)
		}
	}
}

func TestFormationMarchesAndDropsAtEdges(t *testing.T) {
	s := newRunning(t)
	x0 := s.enemies[0].Rect.X

	s.Tick(frame(), t0)
	if s.enemies[0].Rect.X != x0+1 {
		t.Errorf("formation should step right by speed, X = %v", s.enemies[0].Rect.X)
	}

	// Rightmost enemy at the right limit: next step would cross it.
	shift := 760 - s.enemies[9].Rect.X
	for i := range s.enemies {
		s.enemies[i].Rect.X += shift
	}
	ys := s.enemies[0].Rect.Y
	xs := s.enemies[0].Rect.X

	s.Tick(frame(), t0)

	if s.direction != -1 {
		t.Errorf("direction = %d, expected -1 after hitting the right edge", s.direction)
	}
	if s.enemies[0].Rect.Y != ys+40 || s.enemies[0].Rect.X != xs {
		t.Errorf("edge tick should drop without moving sideways, got %+v", s.enemies[0].Rect)
	}

	// Next tick moves left.
	s.Tick(frame(), t0)
	if s.enemies[0].Rect.X != xs-1 {
		t.Errorf("X = %v, expected %v after stepping left", s.enemies[0].Rect.X, xs-1)
	}
}

func TestFormationLeftEdge(t *testing.T) {
	s := newRunning(t)
	s.direction = -1

	// A step landing exactly on 0 is allowed.
	shift := 1 - s.enemies[0].Rect.X
	for i := range s.enemies {
		s.enemies[i].Rect.X += shift
	}
	s.Tick(frame(), t0)
	if s.enemies[0].Rect.X != 0 || s.direction != -1 {
		t.Fatalf("expected a step to x=0, got x=%v dir=%d", s.enemies[0].Rect.X, s.direction)
	}

	y := s.enemies[0].Rect.Y
	s.Tick(frame(), t0)
	if s.direction != 1 || s.enemies[0].Rect.Y != y+40 {
		t.Errorf("expected drop and flip at the left edge, got dir=%d y=%v", s.direction, s.enemies[0].Rect.Y)
	}
}

func TestEnemyFire(t *testing.T) {
	s := newRunning(t)
	s.rng = fixedRand{f: 0, n: 3}

	s.Tick(frame(), t0)

	if len(s.enemyBullets) != 1 {
		t.Fatalf("expected 1 enemy bullet, got %d", len(s.enemyBullets))
	}
	shooter := s.enemies[3].Rect
	want := core.NewRect(shooter.X+18, shooter.Bottom(), 4, 10)
	if s.enemyBullets[0].Rect != want {
		t.Errorf("bullet = %+v, expected %+v", s.enemyBullets[0].Rect, want)
	}
	if s.enemyBullets[0].Side != SideEnemy {
		t.Error("bullet should belong to the enemy side")
	}
}

func TestEnemyFireProbabilityBoundary(t *testing.T) {
	s := newRunning(t)
	s.rng = fixedRand{f: 0.005}
	s.Tick(frame(), t0)
	if len(s.enemyBullets) != 0 {
		t.Error("a roll equal to the probability should not fire")
	}

	cfg := config.DefaultInvadersConfig()
	cfg.Formation.FireProbability = 0
	s = newSession(t, cfg, fixedRand{f: 0})
	s.Tick(frame(core.ActionStart), t0)
	for range 100 {
		s.Tick(frame(), t0)
	}
	if len(s.enemyBullets) != 0 {
		t.Error("zero probability should never fire")
	}
}

func TestEnemyBulletHitsPlayer(t *testing.T) {
	s := newRunning(t)
	s.enemyBullets = []Bullet{
		{Rect: core.NewRect(400, 530, 4, 10), Side: SideEnemy},
		{Rect: core.NewRect(410, 532, 4, 10), Side: SideEnemy},
	}

	events := s.Tick(frame(), t0)

	if s.lives != 2 {
		t.Errorf("lives = %d, expected one life lost per tick", s.lives)
	}
	if len(s.enemyBullets) != 1 {
		t.Errorf("only the first hitting bullet is consumed, have %d", len(s.enemyBullets))
	}
	if !hasEvent(events, core.EventPlayerHit) {
		t.Error("expected EventPlayerHit")
	}
	if s.Phase() != PhaseRunning {
		t.Error("game should continue with lives left")
	}

	s.Tick(frame(), t0)
	if s.lives != 1 {
		t.Errorf("lives = %d, expected the second bullet to hit on the next tick", s.lives)
	}
}

func TestLastLifeEndsGame(t *testing.T) {
	s := newRunning(t)
	s.lives = 1
	s.enemyBullets = []Bullet{{Rect: core.NewRect(400, 530, 4, 10), Side: SideEnemy}}

	events := s.Tick(frame(), t0)

	if s.lives != 0 {
		t.Errorf("lives = %d, expected 0", s.lives)
	}
	if s.Phase() != PhaseGameOver {
		t.Errorf("phase = %v, expected game over", s.Phase())
	}
	if !hasEvent(events, core.EventGameOver) {
		t.Error("expected EventGameOver")
	}
	state := s.State()
	if state.Running || !state.GameOver {
		t.Errorf("State() = %+v", state)
	}
}

func TestInvasionEndsGame(t *testing.T) {
	s := newRunning(t)
	s.enemies[0].Rect.Y = 509 // Bottom at 539, one unit above the ship

	s.Tick(frame(), t0)
	if s.Phase() != PhaseRunning {
		t.Fatal("enemy above the ship row should not end the game")
	}

	s.enemies[0].Rect.Y = 510
	s.Tick(frame(), t0)
	if s.Phase() != PhaseGameOver {
		t.Errorf("enemy reaching the ship row should end the game, phase = %v", s.Phase())
	}
	if s.lives != 3 {
		t.Errorf("lives = %d, invasion should not touch lives", s.lives)
	}
}

func TestLevelClear(t *testing.T) {
	s := newRunning(t)
	s.enemies = s.enemies[:1]
	s.direction = -1
	s.enemies[0].Rect.X = 300
	s.playerBullets = []Bullet{
		{Rect: core.NewRect(310, 70, 4, 10), Side: SidePlayer},
		{Rect: core.NewRect(700, 300, 4, 10), Side: SidePlayer},
	}
	s.enemyBullets = []Bullet{{Rect: core.NewRect(100, 300, 4, 10), Side: SideEnemy}}

	events := s.Tick(frame(), t0)

	if s.level != 2 {
		t.Errorf("level = %d, expected 2", s.level)
	}
	if s.score != 30 {
		t.Errorf("score = %d, expected 30 to carry over", s.score)
	}
	if len(s.enemies) != 50 {
		t.Errorf("expected a fresh formation, got %d enemies", len(s.enemies))
	}
	if s.enemies[0].Rect != core.NewRect(50, 50, 40, 30) {
		t.Errorf("formation should restart at its origin, got %+v", s.enemies[0].Rect)
	}
	if s.speed != 1.5 {
		t.Errorf("speed = %v, expected 1.5", s.speed)
	}
	if s.direction != -1 {
		t.Errorf("direction = %d, level clear keeps the direction", s.direction)
	}
	if len(s.playerBullets) != 0 || len(s.enemyBullets) != 0 {
		t.Error("level clear should remove all bullets")
	}
	if s.lives != 3 {
		t.Errorf("lives = %d, expected unchanged", s.lives)
	}
	if !hasEvent(events, core.EventLevelCleared) {
		t.Error("expected EventLevelCleared")
	}
}

func TestNoLevelClearOnGameOverTick(t *testing.T) {
	s := newRunning(t)
	s.enemies = s.enemies[:1]
	s.lives = 1
	s.playerBullets = []Bullet{{Rect: core.NewRect(60, 70, 4, 10), Side: SidePlayer}}
	s.enemyBullets = []Bullet{{Rect: core.NewRect(400, 530, 4, 10), Side: SideEnemy}}

	s.Tick(frame(), t0)

	if s.Phase() != PhaseGameOver {
		t.Fatalf("phase = %v, expected game over", s.Phase())
	}
	if s.level != 1 || len(s.enemies) != 0 {
		t.Errorf("level should not advance after game over, level=%d enemies=%d", s.level, len(s.enemies))
	}
}

func TestGameOverFreezesAndRestarts(t *testing.T) {
	s := newRunning(t)
	s.lives = 1
	s.score = 120
	s.speed = 3
	s.enemyBullets = []Bullet{{Rect: core.NewRect(400, 530, 4, 10), Side: SideEnemy}}
	s.Tick(frame(), t0)
	if s.Phase() != PhaseGameOver {
		t.Fatal("expected game over")
	}

	frozen := s.Snapshot()
	s.Tick(frame(core.ActionLeft, core.ActionFire), t0.Add(time.Second))
	after := s.Snapshot()
	after.Tick = frozen.Tick
	if !after.Equal(frozen) {
		t.Error("world should not change during game over")
	}

	events := s.Tick(frame(core.ActionStart), t0)
	if s.Phase() != PhaseNotStarted {
		t.Fatalf("phase = %v, expected not_started after restart", s.Phase())
	}
	if !hasEvent(events, core.EventReset) {
		t.Error("expected EventReset")
	}
	snap := s.Snapshot()
	if snap.Score != 0 || snap.Lives != 3 || snap.Level != 1 || len(snap.Enemies) != 50 {
		t.Errorf("restart should restore the initial world, got %+v", snap)
	}
	if snap.Speed != 1 || snap.Direction != 1 {
		t.Errorf("restart should restore base speed and direction, got %v/%d", snap.Speed, snap.Direction)
	}

	// Holding start does not begin the next game.
	s.Tick(frame(core.ActionStart), t0)
	if s.Phase() != PhaseNotStarted {
		t.Error("held start key should not start the game")
	}
	s.Tick(frame(), t0)
	s.Tick(frame(core.ActionStart), t0)
	if s.Phase() != PhaseRunning {
		t.Error("new start edge should start the game")
	}
}

func TestDeterminism(t *testing.T) {
	// Two sessions with the same seed and inputs should stay identical
	cfg := config.DefaultInvadersConfig()
	cfg.Formation.FireProbability = 0.2

	s1 := newSession(t, cfg, rand.New(rand.NewSource(7)))
	s2 := newSession(t, cfg, rand.New(rand.NewSource(7)))
	c1 := core.NewStepClock(t0, 60)
	c2 := core.NewStepClock(t0, 60)

	for i := range 3000 {
		in := scriptedInput(i)
		s1.Tick(in, c1.Next())
		s2.Tick(in, c2.Next())

		if s1.Snapshot().Hash() != s2.Snapshot().Hash() {
			t.Fatalf("sessions diverged at tick %d", i)
		}
	}
	if !s1.Snapshot().Equal(s2.Snapshot()) {
		t.Error("final snapshots differ")
	}
}

// scriptedInput presses start periodically, fires constantly and sweeps
// left and right.
func scriptedInput(i int) core.InputFrame {
	f := core.NewInputFrame()
	if i%200 == 0 {
		f.Set(core.ActionStart)
	}
	f.Set(core.ActionFire)
	if (i/90)%2 == 0 {
		f.Set(core.ActionLeft)
	} else {
		f.Set(core.ActionRight)
	}
	return f
}

func TestInvariantsHoldDuringPlay(t *testing.T) {
	cfg := config.DefaultInvadersConfig()
	cfg.Formation.FireProbability = 0.3
	s := newSession(t, cfg, rand.New(rand.NewSource(99)))
	inputs := rand.New(rand.NewSource(100))
	clock := core.NewStepClock(t0, 60)

	for i := range 5000 {
		f := core.FrameFromMask(uint8(inputs.Intn(16)))
		s.Tick(f, clock.Next())
		snap := s.Snapshot()

		if snap.Player.X < 0 || snap.Player.Right() > cfg.Playfield.Width {
			t.Fatalf("tick %d: player out of bounds: %+v", i, snap.Player)
		}
		for _, b := range append(snap.PlayerBullets, snap.EnemyBullets...) {
			if b.Y < 0 || b.Y > cfg.Playfield.Height {
				t.Fatalf("tick %d: bullet out of bounds: %+v", i, b)
			}
		}
		if snap.Lives < 0 {
			t.Fatalf("tick %d: negative lives", i)
		}
		if snap.Score%10 != 0 {
			t.Fatalf("tick %d: score %d is not a sum of tier points", i, snap.Score)
		}
		if len(snap.Enemies) > 50 {
			t.Fatalf("tick %d: %d enemies", i, len(snap.Enemies))
		}
		if snap.Phase == PhaseRunning && snap.Lives == 0 {
			t.Fatalf("tick %d: running with no lives", i)
		}
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	s := newRunning(t)
	snap := s.Snapshot()
	snap.Enemies[0].Rect.X = -100

	if s.enemies[0].Rect.X == -100 {
		t.Error("mutating a snapshot should not affect the session")
	}
}

func TestPhaseAndTierStrings(t *testing.T) {
	if PhaseRunning.String() != "running" || PhaseGameOver.String() != "game_over" {
		t.Error("unexpected phase names")
	}
	if TierMedium.String() != "medium" || Tier(9).String() != "unknown" {
		t.Error("unexpected tier names")
	}
}
