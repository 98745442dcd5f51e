package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-invaders/internal/platform/gui"
)

var (
	flagScale        float64
	flagWindowRecord bool
)

var windowCmd = &cobra.Command{
	Use:   "window [game]",
	Short: "Play in a desktop window",
	Long: `Start playing in a desktop window.

Requires a binary built with the 'ebiten' tag:
  go build -tags ebiten ./cmd/invaders

Controls:
  Left/A, Right/D - Move
  Space           - Fire / start
  Up/W            - Fire
  Enter           - Start / restart
  Q/Esc           - Quit

Examples:
  invaders window
  invaders window --scale 1.5 --record`,
	Args: cobra.MaximumNArgs(1),
	Run:  runWindow,
}

func init() {
	windowCmd.Flags().Float64Var(&flagScale, "scale", 1, "Window pixels per playfield unit")
	windowCmd.Flags().BoolVar(&flagWindowRecord, "record", false, "Save the run for replay")
}

func runWindow(cmd *cobra.Command, args []string) {
	logger, closeLog, err := newLogger(false)
	if err != nil {
		fail("creating logger", err)
	}
	defer closeLog()

	s, err := newSession(logger, args, flagWindowRecord)
	if err != nil {
		fail("starting game", err)
	}

	res, err := gui.Run(gui.Options{
		Game:     s.game,
		Runtime:  s.runtime,
		FieldW:   s.cfg.Playfield.Width,
		FieldH:   s.cfg.Playfield.Height,
		Scale:    flagScale,
		Logger:   logger,
		Recorder: s.rec,
	})
	if errors.Is(err, gui.ErrUnavailable) {
		fmt.Fprintln(os.Stderr, "Error: this binary was built without window support.")
		fmt.Fprintln(os.Stderr, "Rebuild with: go build -tags ebiten ./cmd/invaders")
		os.Exit(1)
	}
	if err != nil {
		fail("running game", err)
	}
	logger.Info("session ended", "score", res.State.Score, "level", res.State.Level, "ticks", res.Ticks)

	printResult(res)
	s.save(logger, res)
}
