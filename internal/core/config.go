package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// TickSeconds returns the fixed simulation step in seconds.
func (c RuntimeConfig) TickSeconds() float64 {
	if c.TickRate <= 0 {
		return 1.0 / 60
	}
	return 1.0 / float64(c.TickRate)
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current score
	GameOver bool // Whether the game has ended
	Paused   bool // Whether the game is paused
}

// EventType identifies something that happened during a tick that the
// platform may want to react to (sound, flash, logging).
type EventType int

const (
	EventBounce EventType = iota // An entity was reflected off an arena edge
	EventStar                    // The player collected a star
	EventHit                     // The player was hit
)

// String returns a human-readable name for the event type.
func (e EventType) String() string {
	switch e {
	case EventBounce:
		return "bounce"
	case EventStar:
		return "star"
	case EventHit:
		return "hit"
	default:
		return "unknown"
	}
}

// Event is a single side-effect request produced by a simulation tick.
type Event struct {
	Type     EventType
	EntityID uint64
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State  GameState
	Events []Event
}

// Count returns how many events of the given type the tick produced.
func (r StepResult) Count(t EventType) int {
	n := 0
	for _, e := range r.Events {
		if e.Type == t {
			n++
		}
	}
	return n
}
