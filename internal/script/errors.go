package script

import "errors"

// Errors for script state operations.
var (
	// ErrStateClosed is returned when operating on a closed state.
	ErrStateClosed = errors.New("script state is closed")

	// ErrCallLimit is returned when a run makes more confstore calls than
	// the state allows.
	ErrCallLimit = errors.New("script call limit exceeded")
)
