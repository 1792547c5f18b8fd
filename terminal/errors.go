package terminal

import (
	"errors"
	"fmt"
)

// Predefined error types.
var (
	// ErrInvalidStateTransition is returned in strict mode when the current state
	// does not handle the requested action.
	ErrInvalidStateTransition = errors.New("action not valid in current state")
	// ErrNonPositiveAmount is returned in strict mode for withdraw or deposit amounts <= 0.
	ErrNonPositiveAmount = errors.New("amount must be positive")
	// ErrNegativeBalance indicates an initial balance below zero.
	ErrNegativeBalance = errors.New("initial balance must not be negative")
	// ErrInvalidProbability indicates a failure probability outside [0, 1].
	ErrInvalidProbability = errors.New("failure probability must be within [0, 1]")
	// ErrUnknownState indicates a state name that does not parse.
	ErrUnknownState = errors.New("unknown state")
	// ErrUnknownAction indicates an action name that does not parse.
	ErrUnknownAction = errors.New("unknown action")
	// ErrConfigNameRequired indicates that a configuration name is required.
	ErrConfigNameRequired = errors.New("config name is required")
)

// StateError wraps an error with the state and action it occurred in.
type StateError struct {
	State  State
	Action Action
	Err    error
}

func (e *StateError) Error() string {
	return fmt.Sprintf("state %s, action %s: %v", e.State, e.Action, e.Err)
}

func (e *StateError) Unwrap() error {
	return e.Err
}

// WrapStateError wraps an error with state context.
func WrapStateError(state State, action Action, err error) error {
	if err == nil {
		return nil
	}

	return &StateError{
		State:  state,
		Action: action,
		Err:    err,
	}
}
