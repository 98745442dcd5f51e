//go:build ebiten

package gui

import (
	"errors"
	"image/color"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/tui-invaders/internal/core"
	"github.com/vovakirdan/tui-invaders/internal/registry"
	"github.com/vovakirdan/tui-invaders/internal/render"
	"github.com/vovakirdan/tui-invaders/internal/storage"
)

// Debug font metrics of ebitenutil.DebugPrintAt.
const (
	glyphW = 6
	glyphH = 16
)

// keyBindings maps held keys to game actions.
var keyBindings = map[core.Action][]ebiten.Key{
	core.ActionLeft:  {ebiten.KeyArrowLeft, ebiten.KeyA},
	core.ActionRight: {ebiten.KeyArrowRight, ebiten.KeyD},
	core.ActionFire:  {ebiten.KeySpace, ebiten.KeyArrowUp, ebiten.KeyW},
	core.ActionStart: {ebiten.KeySpace, ebiten.KeyEnter},
}

// window adapts a registry.Game to the ebiten.Game interface.
type window struct {
	game     registry.Game
	keyState *core.KeyState
	clock    *core.StepClock
	recorder *storage.Recorder
	logger   *log.Logger
	fieldW   float64
	fieldH   float64
	scale    float64
	ticks    int64
	state    core.GameState
}

// Update samples the keyboard and advances the simulation by one tick.
func (w *window) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	for action, keys := range keyBindings {
		down := false
		for _, k := range keys {
			if ebiten.IsKeyPressed(k) {
				down = true
				break
			}
		}
		if down {
			w.keyState.Press(action)
		} else {
			w.keyState.Release(action)
		}
	}

	w.ticks++
	in := w.keyState.Snapshot()
	if w.recorder != nil {
		w.recorder.Record(w.ticks, in)
	}
	res := w.game.Step(in, w.clock.Next())
	w.state = res.State
	for _, e := range res.Events {
		w.logger.Info(e.Kind.String(), "tick", w.ticks, "value", e.Value, "score", res.State.Score)
	}
	return nil
}

// Draw renders the current state.
func (w *window) Draw(screen *ebiten.Image) {
	w.game.Render(&imageCanvas{dst: screen, scale: w.scale})
}

// Layout keeps a fixed logical size matching the scaled playfield.
func (w *window) Layout(int, int) (int, int) {
	return int(w.fieldW * w.scale), int(w.fieldH * w.scale)
}

// imageCanvas draws canvas primitives onto an ebiten image.
type imageCanvas struct {
	dst   *ebiten.Image
	scale float64
}

func (c *imageCanvas) FillRect(r core.Rect, f render.Fill) {
	vector.DrawFilledRect(c.dst,
		float32(r.X*c.scale), float32(r.Y*c.scale),
		float32(r.W*c.scale), float32(r.H*c.scale),
		rgba(f.Color), false)
}

// DrawText uses the debug font, which has a single size and color.
func (c *imageCanvas) DrawText(x, y float64, text string, style render.TextStyle) {
	px := int(x * c.scale)
	if style.Align == render.AlignCenter {
		px -= len(text) * glyphW / 2
	}
	ebitenutil.DebugPrintAt(c.dst, text, px, int(y*c.scale)-glyphH)
}

func rgba(c core.Color) color.Color {
	r, g, b := c.RGB()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

// Run opens a window and blocks until it is closed.
func Run(opts Options) (core.SessionResult, error) {
	cfg := opts.Runtime
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	if err := opts.Game.Reset(cfg); err != nil {
		return core.SessionResult{}, err
	}

	w := &window{
		game:     opts.Game,
		keyState: core.NewKeyState(),
		clock:    core.NewStepClock(time.Unix(0, 0), cfg.TickRate),
		recorder: opts.Recorder,
		logger:   logger,
		fieldW:   opts.FieldW,
		fieldH:   opts.FieldH,
		scale:    scale,
	}

	ebiten.SetWindowTitle(opts.Game.Title())
	ebiten.SetWindowSize(int(opts.FieldW*scale), int(opts.FieldH*scale))
	ebiten.SetTPS(cfg.TickRate)

	logger.Info("window opened", "game", opts.Game.ID(), "seed", cfg.Seed, "scale", scale)
	if err := ebiten.RunGame(w); err != nil && !errors.Is(err, ebiten.Termination) {
		return core.SessionResult{}, err
	}
	return core.SessionResult{State: w.state, Ticks: w.ticks, Hash: opts.Game.Hash()}, nil
}
