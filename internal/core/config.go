package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current score
	Lives    int  // Remaining lives
	Level    int  // Current level, starting at 1
	Running  bool // Whether the simulation is advancing
	GameOver bool // Whether the game has ended
}

// EventKind identifies something notable that happened during a tick.
type EventKind int

const (
	EventStarted EventKind = iota
	EventEnemyDestroyed
	EventPlayerHit
	EventLevelCleared
	EventGameOver
	EventReset
)

// String returns a human-readable name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventStarted:
		return "started"
	case EventEnemyDestroyed:
		return "enemy_destroyed"
	case EventPlayerHit:
		return "player_hit"
	case EventLevelCleared:
		return "level_cleared"
	case EventGameOver:
		return "game_over"
	case EventReset:
		return "reset"
	default:
		return "unknown"
	}
}

// Event is a notable occurrence reported by a tick.
// Value carries kind-specific data: points for EventEnemyDestroyed,
// lives left for EventPlayerHit, the new level for EventLevelCleared.
type Event struct {
	Kind  EventKind
	Value int
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State  GameState
	Events []Event
}

// SessionResult summarizes a finished host session.
type SessionResult struct {
	State GameState
	Ticks int64  // Simulated ticks
	Hash  uint64 // Snapshot hash after the last tick
}
