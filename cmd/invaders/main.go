// invaders is a single-screen space shooter for the terminal.
//
// Usage:
//
//	invaders play              - Play in the terminal
//	invaders window            - Play in a desktop window (build tag 'ebiten')
//	invaders replay <id>       - Replay a recorded run
//	invaders runs              - Browse recorded runs
//	invaders config            - Print the effective configuration
//	invaders list              - List registered games
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.invaders/invaders.db)
//	--config <path>       - Use a custom config YAML
//	--difficulty <preset> - easy, normal, hard or fixed
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-invaders/internal/config"

	// Import games to register them
	_ "github.com/vovakirdan/tui-invaders/internal/games/invaders"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "invaders",
	Short: "Space Invaders in your terminal",
	Long: `A single-screen space shooter: move the ship, shoot the descending
formation, and survive its fire.

Available commands:
  play     - Play in the terminal
  window   - Play in a desktop window
  replay   - Replay a recorded run
  runs     - Browse recorded runs
  config   - Print the effective configuration
  list     - Show registered games

Examples:
  invaders play
  invaders play --difficulty hard --record
  invaders runs
  invaders replay 3 --headless`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.invaders/invaders.db", "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(configCmd)
}

// fail prints an error and exits.
func fail(context string, err error) {
	fmt.Fprintf(os.Stderr, "Error %s: %v\n", context, err)
	os.Exit(1)
}

// newLogger creates the command logger. Interactive commands own the
// terminal, so they log to ~/.invaders/invaders.log instead of stderr.
// The returned function closes the log file.
func newLogger(interactive bool) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, err
	}

	out := os.Stderr
	closeFn := func() {}
	if interactive {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, nil, err
		}
		dir := filepath.Join(home, ".invaders")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, err
		}
		f, err := os.OpenFile(filepath.Join(dir, "invaders.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, err
		}
		out = f
		closeFn = func() { f.Close() }
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "invaders",
		Level:           level,
	})
	return logger, closeFn, nil
}

// loadConfig loads the configuration named by --config, applies
// --difficulty and validates the result.
func loadConfig(logger *log.Logger) (config.InvadersConfig, config.DifficultyPreset, error) {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return config.InvadersConfig{}, "", err
	}

	cfg, src, err := config.LoadInvaders(flagConfig)
	if err != nil {
		return cfg, preset, err
	}
	config.ApplyPreset(&cfg, preset)
	if err := cfg.Validate(); err != nil {
		return cfg, preset, err
	}

	logger.Info("config loaded", "source", src, "difficulty", preset)
	return cfg, preset, nil
}

// seed returns --seed, or a time based seed when it is zero.
func seed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}

// terminalSize returns the size of stdout, or 80x24.
func terminalSize() (int, int) {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return width, height
}
