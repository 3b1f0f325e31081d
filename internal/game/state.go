// Package game provides the simulation tick loop, its command entry points
// and the terminal game loop.
package game

// State represents the current game state.
type State int

const (
	// StatePlaying advances the simulation every tick.
	StatePlaying State = iota
	// StatePaused keeps rendering but does not step the simulation.
	StatePaused
	// StateQuit ends the game loop.
	StateQuit
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateQuit:
		return "quit"
	default:
		return "unknown"
	}
}
