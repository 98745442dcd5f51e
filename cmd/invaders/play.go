package main

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-invaders/internal/config"
	"github.com/vovakirdan/tui-invaders/internal/core"
	"github.com/vovakirdan/tui-invaders/internal/games/invaders"
	"github.com/vovakirdan/tui-invaders/internal/platform/tui"
	"github.com/vovakirdan/tui-invaders/internal/registry"
	"github.com/vovakirdan/tui-invaders/internal/storage"
)

var flagRecord bool

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play in the terminal",
	Long: `Start playing in the terminal.

Controls:
  Left/A/H, Right/D/L - Move
  Space               - Fire / start
  Up/W                - Fire
  Enter               - Start / restart
  Ctrl+S              - Screenshot
  ?                   - Toggle help
  Q/Esc/Ctrl+C        - Quit

Difficulty options:
  easy   - More lives, slower formation, less enemy fire
  normal - Values from the config file
  hard   - Fewer lives, faster formation and enemy fire
  fixed  - Formation does not speed up between levels

Examples:
  invaders play
  invaders play --difficulty hard
  invaders play --seed 42 --record
  invaders play --config ./my-invaders.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagRecord, "record", false, "Save the run for replay")
}

// session holds what a play command needs to start and record a game.
type session struct {
	game    registry.Game
	cfg     config.InvadersConfig
	preset  config.DifficultyPreset
	runtime core.RuntimeConfig
	rec     *storage.Recorder
}

// newSession loads the config and creates the game named by args.
func newSession(logger *log.Logger, args []string, record bool) (*session, error) {
	gameID := invaders.ID
	if len(args) > 0 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		return nil, fmt.Errorf("unknown game %q (run 'invaders list')", gameID)
	}

	cfg, preset, err := loadConfig(logger)
	if err != nil {
		return nil, err
	}
	game, err := registry.Create(gameID, cfg)
	if err != nil {
		return nil, err
	}

	width, height := terminalSize()
	s := &session{
		game:   game,
		cfg:    cfg,
		preset: preset,
		runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: flagFPS,
			Seed:     seed(),
		},
	}
	if record {
		s.rec = storage.NewRecorder()
	}
	return s, nil
}

// save stores a recorded session. It is a no-op when not recording.
func (s *session) save(logger *log.Logger, res core.SessionResult) {
	if s.rec == nil || res.Ticks == 0 {
		return
	}

	yml, err := config.Marshal(s.cfg)
	if err != nil {
		fail("saving run", err)
	}
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening runs database", err)
	}
	defer store.Close()

	run := storage.Run{
		GameID:     s.game.ID(),
		Seed:       s.runtime.Seed,
		TickRate:   s.runtime.TickRate,
		Difficulty: string(s.preset),
		ConfigYAML: string(yml),
		Score:      res.State.Score,
		Level:      res.State.Level,
		Ticks:      res.Ticks,
		FinalHash:  res.Hash,
	}
	id, err := store.SaveRun(run, s.rec.Frames())
	if err != nil {
		fail("saving run", err)
	}
	logger.Info("run saved", "id", id, "ticks", res.Ticks, "score", res.State.Score)
	fmt.Printf("Saved run #%d (replay with 'invaders replay %d')\n", id, id)
}

func printResult(res core.SessionResult) {
	fmt.Printf("Final score: %d (level %d, %d ticks)\n", res.State.Score, res.State.Level, res.Ticks)
}

func runPlay(cmd *cobra.Command, args []string) {
	logger, closeLog, err := newLogger(true)
	if err != nil {
		fail("opening log", err)
	}
	defer closeLog()

	s, err := newSession(logger, args, flagRecord)
	if err != nil {
		fail("starting game", err)
	}

	res, err := tui.Run(tui.Options{
		Game:     s.game,
		Runtime:  s.runtime,
		FieldW:   s.cfg.Playfield.Width,
		FieldH:   s.cfg.Playfield.Height,
		Logger:   logger,
		Recorder: s.rec,
	})
	if err != nil {
		fail("running game", err)
	}
	logger.Info("session ended", "score", res.State.Score, "level", res.State.Level, "ticks", res.Ticks)

	printResult(res)
	s.save(logger, res)
}
