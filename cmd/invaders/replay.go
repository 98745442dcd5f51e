package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-invaders/internal/platform/tui"
	"github.com/vovakirdan/tui-invaders/internal/replay"
	"github.com/vovakirdan/tui-invaders/internal/storage"
)

var flagHeadless bool

var replayCmd = &cobra.Command{
	Use:   "replay <id>",
	Short: "Replay a recorded run",
	Long: `Replay a run saved with 'play --record'.

The run is re-simulated from its seed, configuration and recorded input.
With --headless nothing is drawn: the final state is printed and checked
against the hash stored with the run.

Examples:
  invaders replay 3
  invaders replay 3 --headless`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&flagHeadless, "headless", false, "Simulate without drawing and verify the final hash")
}

func runReplay(cmd *cobra.Command, args []string) {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fail("parsing run id", err)
	}

	logger, closeLog, err := newLogger(!flagHeadless)
	if err != nil {
		fail("creating logger", err)
	}
	defer closeLog()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening runs database", err)
	}
	defer store.Close()

	if flagHeadless {
		if err := verifyRun(logger, store, id); err != nil {
			fail("verifying run", err)
		}
		return
	}
	if err := playRun(logger, store, id); err != nil {
		fail("replaying run", err)
	}
}

// loadRun reads a run and its input frames.
func loadRun(store *storage.Store, id int64) (storage.Run, []storage.Frame, error) {
	run, err := store.GetRun(id)
	if err != nil {
		return run, nil, err
	}
	frames, err := store.RunFrames(id)
	if err != nil {
		return run, nil, err
	}
	return run, frames, nil
}

// verifyRun re-simulates a run without drawing and prints the outcome.
func verifyRun(logger *log.Logger, store *storage.Store, id int64) error {
	run, frames, err := loadRun(store, id)
	if err != nil {
		return err
	}

	res, err := replay.Verify(run, frames)
	if err != nil && !errors.Is(err, replay.ErrHashMismatch) {
		return err
	}
	fmt.Printf("Run #%d: score %d, level %d, %d ticks\n", run.ID, res.State.Score, res.State.Level, res.Ticks)
	fmt.Printf("Hash: %016x (recorded %016x)\n", res.Hash, run.FinalHash)
	if err != nil {
		logger.Error("replay diverged", "id", run.ID, "hash", fmt.Sprintf("%016x", res.Hash))
		return err
	}
	logger.Info("replay verified", "id", run.ID, "ticks", res.Ticks)
	return nil
}

// playRun shows a run in the terminal.
func playRun(logger *log.Logger, store *storage.Store, id int64) error {
	run, frames, err := loadRun(store, id)
	if err != nil {
		return err
	}
	game, cfg, err := replay.Game(run)
	if err != nil {
		return err
	}

	width, height := terminalSize()
	res, err := tui.Run(tui.Options{
		Game:      game,
		Runtime:   replay.Runtime(run, width, height),
		FieldW:    cfg.Playfield.Width,
		FieldH:    cfg.Playfield.Height,
		Logger:    logger,
		Replay:    storage.NewPlayer(frames),
		ReplayEnd: run.Ticks,
		Label:     fmt.Sprintf("replay #%d", run.ID),
	})
	if err != nil {
		return err
	}

	printResult(res)
	if res.Ticks == run.Ticks && res.Hash != run.FinalHash {
		return fmt.Errorf("%w: run %d", replay.ErrHashMismatch, run.ID)
	}
	return nil
}
