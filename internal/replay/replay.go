// Package replay re-simulates recorded runs without a host.
package replay

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/tui-invaders/internal/config"
	"github.com/vovakirdan/tui-invaders/internal/core"
	"github.com/vovakirdan/tui-invaders/internal/registry"
	"github.com/vovakirdan/tui-invaders/internal/storage"
)

// ErrHashMismatch is returned when a replay ends in a different state than
// the one recorded.
var ErrHashMismatch = errors.New("replay: final hash mismatch")

// Origin is the time of tick zero on every host clock.
var Origin = time.Unix(0, 0)

// Game creates the game of a run with the configuration it was recorded
// with, and returns that configuration.
func Game(run storage.Run) (registry.Game, config.InvadersConfig, error) {
	cfg, err := config.Parse([]byte(run.ConfigYAML))
	if err != nil {
		return nil, cfg, fmt.Errorf("replay: run %d config: %w", run.ID, err)
	}
	g, err := registry.Create(run.GameID, cfg)
	return g, cfg, err
}

// Runtime returns the runtime configuration a run was recorded with.
func Runtime(run storage.Run, screenW, screenH int) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  screenW,
		ScreenH:  screenH,
		TickRate: run.TickRate,
		Seed:     run.Seed,
	}
}

// Simulate resets g with rt and steps it for ticks ticks fed by frames.
func Simulate(g registry.Game, rt core.RuntimeConfig, frames []storage.Frame, ticks int64) (core.SessionResult, error) {
	if err := g.Reset(rt); err != nil {
		return core.SessionResult{}, err
	}
	player := storage.NewPlayer(frames)
	clock := core.NewStepClock(Origin, rt.TickRate)

	var res core.SessionResult
	for tick := int64(1); tick <= ticks; tick++ {
		step := g.Step(player.Frame(tick), clock.Next())
		res.State = step.State
		res.Ticks = tick
	}
	res.Hash = g.Hash()
	return res, nil
}

// Verify re-simulates a stored run and checks its final hash.
// The result is returned even on a mismatch.
func Verify(run storage.Run, frames []storage.Frame) (core.SessionResult, error) {
	g, _, err := Game(run)
	if err != nil {
		return core.SessionResult{}, err
	}
	res, err := Simulate(g, Runtime(run, 0, 0), frames, run.Ticks)
	if err != nil {
		return res, err
	}
	if res.Hash != run.FinalHash {
		return res, fmt.Errorf("%w: run %d recorded %016x, got %016x", ErrHashMismatch, run.ID, run.FinalHash, res.Hash)
	}
	return res, nil
}
