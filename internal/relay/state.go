package relay

import "errors"

// State is a step in the lifecycle of a single relayed call.
type State uint8

// Lifecycle states. Rejected, NetworkError, BodyReadError and Completed are terminal.
const (
	StateIdle State = iota
	StateValidating
	StateRejected
	StateBuilt
	StateDispatching
	StateNetworkError
	StateBodyReadError
	StateCompleted
)

//nolint:gochecknoglobals // Immutable lookup table used as a constant.
var stateNames = map[State]string{
	StateIdle:          "idle",
	StateValidating:    "validating",
	StateRejected:      "rejected",
	StateBuilt:         "built",
	StateDispatching:   "dispatching",
	StateNetworkError:  "network_error",
	StateBodyReadError: "body_read_error",
	StateCompleted:     "completed",
}

// String returns the state name.
func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}

	return "unknown"
}

// IsTerminal reports whether no further transition leaves the state.
func (s State) IsTerminal() bool {
	switch s {
	case StateRejected, StateNetworkError, StateBodyReadError, StateCompleted:
		return true
	default:
		return false
	}
}

// TerminalState maps the outcome of a call to the terminal state it ended in.
// A missing host counts as a network failure; malformed input counts as a rejection.
func TerminalState(err error) State {
	switch {
	case err == nil:
		return StateCompleted
	case errors.Is(err, ErrBodyRead):
		return StateBodyReadError
	case errors.Is(err, ErrNetwork), errors.Is(err, ErrHostUnavailable):
		return StateNetworkError
	default:
		return StateRejected
	}
}
