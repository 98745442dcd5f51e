package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-invaders/internal/core"
	"github.com/vovakirdan/tui-invaders/internal/registry"
	"github.com/vovakirdan/tui-invaders/internal/render"
	"github.com/vovakirdan/tui-invaders/internal/storage"
)

// Minimum terminal size for playing
const (
	minWidth  = 40
	minHeight = 12
)

// Options configures a game model.
type Options struct {
	Game      registry.Game
	Runtime   core.RuntimeConfig
	FieldW    float64 // Playfield size in simulation units
	FieldH    float64
	Logger    *log.Logger
	Recorder  *storage.Recorder // Records live input when set
	Replay    *storage.Player   // Replaces the keyboard when set
	ReplayEnd int64             // Last tick of a replay; 0 plays until quit
	Hold      time.Duration     // Key hold window; 0 uses DefaultHoldWindow
	ShotDir   string            // Screenshot directory; empty uses ~/.invaders/screenshots
	Label     string            // Shown in the status line, e.g. "replay #3"
}

// Model is the Bubble Tea model for running the game.
type Model struct {
	game     registry.Game
	screen   *core.Screen
	canvas   *render.ScreenCanvas
	config   core.RuntimeConfig
	fieldW   float64
	fieldH   float64
	logger   *log.Logger
	mapper   *KeyMapper
	help     help.Model
	held     *HoldInput
	keyState *core.KeyState
	clock    *core.StepClock
	recorder *storage.Recorder
	replay   *storage.Player
	end      int64
	shotDir  string
	label    string
	now      func() time.Time

	ticks     int64
	gameState core.GameState
	tooSmall  bool
	quitting  bool
	initErr   error
	status    string // Transient message, e.g. screenshot path
}

// NewModel creates a new Bubble Tea model for the given game.
// The game is reset immediately so the first frame can be drawn.
func NewModel(opts Options) Model {
	cfg := opts.Runtime
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	h := help.New()
	h.ShowAll = false

	m := Model{
		game:     opts.Game,
		screen:   core.NewScreen(max(cfg.ScreenW, 1), max(cfg.ScreenH, 1)),
		config:   cfg,
		fieldW:   opts.FieldW,
		fieldH:   opts.FieldH,
		logger:   logger,
		mapper:   NewKeyMapper(),
		help:     h,
		held:     NewHoldInput(opts.Hold),
		keyState: core.NewKeyState(),
		clock:    core.NewStepClock(time.Unix(0, 0), cfg.TickRate),
		recorder: opts.Recorder,
		replay:   opts.Replay,
		end:      opts.ReplayEnd,
		shotDir:  opts.ShotDir,
		label:    opts.Label,
		now:      time.Now,
	}
	m.layout(cfg.ScreenW, cfg.ScreenH)

	if err := m.game.Reset(cfg); err != nil {
		m.initErr = err
	}
	m.gameState = m.game.State()
	return m
}

// layout sizes the screen and maps the playfield onto all rows but the status line.
func (m *Model) layout(w, h int) {
	m.config.ScreenW = w
	m.config.ScreenH = h
	m.tooSmall = w < minWidth || h < minHeight
	if m.tooSmall {
		// The game is paused; keys must not stay held across the pause.
		m.held.Reset()
		m.keyState.ReleaseAll()
	}
	m.screen.Resize(max(w, 1), max(h-1, 1))
	m.canvas = render.NewScreenCanvas(m.screen, m.fieldW, m.fieldH)
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	if m.initErr != nil {
		return tea.Quit
	}
	m.logger.Info("session started", "game", m.game.ID(), "seed", m.config.Seed, "tick_rate", m.config.TickRate)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.layout(msg.Width, msg.Height)
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.mapper.Keys()
	switch {
	case key.Matches(msg, keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	pressed := m.now()
	for _, a := range m.mapper.MapKey(msg) {
		if a == core.ActionQuit {
			m.quitting = true
			return m, tea.Quit
		}
		// Recorded input drives replays; the keyboard only quits them.
		if m.replay == nil {
			m.held.Press(a, pressed)
		}
	}
	return m, nil
}

// handleTick runs one simulation step.
func (m Model) handleTick(at time.Time) (tea.Model, tea.Cmd) {
	if m.tooSmall {
		return m, tickCmd(m.config.TickRate)
	}

	m.ticks++
	var in core.InputFrame
	if m.replay != nil {
		in = m.replay.Frame(m.ticks)
	} else {
		m.held.Apply(m.keyState, at)
		in = m.keyState.Snapshot()
	}
	if m.recorder != nil {
		m.recorder.Record(m.ticks, in)
	}

	result := m.game.Step(in, m.clock.Next())
	m.gameState = result.State
	m.logEvents(result.Events)

	if m.replay != nil && m.end > 0 && m.ticks >= m.end {
		m.logger.Info("replay finished", "ticks", m.ticks, "score", m.gameState.Score)
		m.quitting = true
		return m, tea.Quit
	}

	return m, tickCmd(m.config.TickRate)
}

func (m Model) logEvents(events []core.Event) {
	for _, e := range events {
		switch e.Kind {
		case core.EventEnemyDestroyed, core.EventPlayerHit:
			m.logger.Debug(e.Kind.String(), "tick", m.ticks, "value", e.Value, "score", m.gameState.Score)
		default:
			m.logger.Info(e.Kind.String(), "tick", m.ticks, "value", e.Value,
				"score", m.gameState.Score, "level", m.gameState.Level)
		}
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.screen.Clear()
	m.game.Render(m.canvas)

	dir := m.shotDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			m.logger.Warn("screenshot failed", "err", err)
			return
		}
		dir = filepath.Join(home, ".invaders", "screenshots")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot failed", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "err", err)
		return
	}
	m.status = "saved " + path
	m.logger.Info("screenshot saved", "path", path)
}

var (
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	labelStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	warnStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
)

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.initErr != nil {
		return warnStyle.Render(m.initErr.Error())
	}
	if m.tooSmall {
		msg := fmt.Sprintf("Terminal too small: %dx%d (need %dx%d)",
			m.config.ScreenW, m.config.ScreenH, minWidth, minHeight)
		return warnStyle.Render(centerText(msg, m.config.ScreenW))
	}

	m.screen.Clear()
	m.game.Render(m.canvas)

	var status []string
	if m.label != "" {
		status = append(status, labelStyle.Render(m.label))
	}
	if m.status != "" {
		status = append(status, statusStyle.Render(m.status))
	}
	status = append(status, statusStyle.Render(m.help.View(m.mapper.Keys())))

	return RenderFrame(m.screen, strings.Join(status, "  "))
}

// Ticks returns the number of simulated ticks.
func (m Model) Ticks() int64 {
	return m.ticks
}

// Result returns the summary of the session so far.
func (m Model) Result() core.SessionResult {
	return core.SessionResult{State: m.gameState, Ticks: m.ticks, Hash: m.game.Hash()}
}

// Err returns the error that prevented the game from starting, if any.
func (m Model) Err() error {
	return m.initErr
}

// Run starts the Bubble Tea program and returns the session summary.
func Run(opts Options) (core.SessionResult, error) {
	model := NewModel(opts)
	if err := model.Err(); err != nil {
		return core.SessionResult{}, err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	final, err := p.Run()
	if err != nil {
		return core.SessionResult{}, err
	}
	m, ok := final.(Model)
	if !ok {
		return core.SessionResult{}, fmt.Errorf("tui: unexpected model type %T", final)
	}
	return m.Result(), nil
}
