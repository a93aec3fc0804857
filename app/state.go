package app

// State represents the current application state.
type State int

const (
	StateIdle    State = iota // Ready for user input
	StatePending              // Waiting for the controller's reply
	StateError                // Showing the error banner
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePending:
		return "pending"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}
