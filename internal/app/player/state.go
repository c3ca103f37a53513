package player

// State represents the transport state as seen by a listener.
type State int

const (
	StateIdle    State = iota // Nothing loaded
	StatePlaying              // Episode loaded and playing
	StatePaused               // Episode loaded, not playing
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	default:
		return "unknown"
	}
}
