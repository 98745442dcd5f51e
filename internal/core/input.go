package core

import "sync"

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone  Action = iota
	ActionLeft         // Left arrow, A - move left
	ActionRight        // Right arrow, D - move right
	ActionFire         // Space, Up arrow, W - shoot
	ActionStart        // Space, Enter - start or restart
	ActionQuit         // Q, Ctrl+C - exit
)

// gameActions lists the actions that are part of the simulated input.
// Their order defines the bit layout of InputFrame.Mask.
var gameActions = []Action{ActionLeft, ActionRight, ActionFire, ActionStart}

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionFire:
		return "Fire"
	case ActionStart:
		return "Start"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame is the key state seen by the simulation during one tick.
// It is a value snapshot; changing the KeyState afterwards does not affect it.
type InputFrame struct {
	// Actions maps action types to whether they are held this frame.
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as held for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action is held this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	return clone
}

// Mask packs the game actions of the frame into a bit set.
// Used by run recordings to store input compactly.
func (f InputFrame) Mask() uint8 {
	var m uint8
	for i, a := range gameActions {
		if f.Has(a) {
			m |= 1 << i
		}
	}
	return m
}

// FrameFromMask is the inverse of InputFrame.Mask.
func FrameFromMask(m uint8) InputFrame {
	f := NewInputFrame()
	for i, a := range gameActions {
		if m&(1<<i) != 0 {
			f.Set(a)
		}
	}
	return f
}

// KeyState is the persistent pressed/released map written by an input
// adapter and read by the host once per tick.
// It is safe for one writer and one reader on different goroutines.
type KeyState struct {
	mu   sync.RWMutex
	down map[Action]bool
}

// NewKeyState creates a key state with every action released.
func NewKeyState() *KeyState {
	return &KeyState{down: make(map[Action]bool)}
}

// Press marks an action as held.
func (k *KeyState) Press(a Action) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.down[a] = true
}

// Release marks an action as released.
func (k *KeyState) Release(a Action) {
	k.mu.Lock()
	defer k.mu.Unlock()
	delete(k.down, a)
}

// ReleaseAll releases every action.
func (k *KeyState) ReleaseAll() {
	k.mu.Lock()
	defer k.mu.Unlock()
	clear(k.down)
}

// IsDown reports whether an action is currently held.
func (k *KeyState) IsDown(a Action) bool {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.down[a]
}

// Snapshot copies the current state into an InputFrame.
func (k *KeyState) Snapshot() InputFrame {
	k.mu.RLock()
	defer k.mu.RUnlock()

	frame := NewInputFrame()
	for a, held := range k.down {
		if held {
			frame.Set(a)
		}
	}
	return frame
}
