package tui

import (
	"time"

	"github.com/vovakirdan/tui-invaders/internal/core"
)

// DefaultHoldWindow is how long a key counts as held after its last press.
const DefaultHoldWindow = 150 * time.Millisecond

// HoldInput turns terminal key presses into held keys.
// Terminals report presses and auto-repeats but no releases, so a key is
// treated as held until the hold window passes without another press.
type HoldInput struct {
	window    time.Duration
	lastPress map[core.Action]time.Time
}

// NewHoldInput creates a tracker. A window <= 0 uses DefaultHoldWindow.
func NewHoldInput(window time.Duration) *HoldInput {
	if window <= 0 {
		window = DefaultHoldWindow
	}
	return &HoldInput{
		window:    window,
		lastPress: make(map[core.Action]time.Time),
	}
}

// Press records a press (or auto-repeat) of an action at time at.
func (h *HoldInput) Press(a core.Action, at time.Time) {
	h.lastPress[a] = at
}

// Held reports whether the action is still held at now.
func (h *HoldInput) Held(a core.Action, now time.Time) bool {
	at, ok := h.lastPress[a]
	return ok && now.Sub(at) < h.window
}

// Apply updates a key state so it reflects the keys held at now.
func (h *HoldInput) Apply(ks *core.KeyState, now time.Time) {
	for _, a := range []core.Action{core.ActionLeft, core.ActionRight, core.ActionFire, core.ActionStart} {
		if h.Held(a, now) {
			ks.Press(a)
		} else {
			ks.Release(a)
		}
	}
}

// Reset forgets every press.
func (h *HoldInput) Reset() {
	clear(h.lastPress)
}
