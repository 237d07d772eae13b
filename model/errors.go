package model

import (
	"errors"
	"fmt"
)

// ErrCommitRejected is returned by Mine when the freshly mined block fails the
// AddBlock gate. Pending transactions are kept in the pool in that case.
var ErrCommitRejected = errors.New("mined block was rejected by the chain")

// ErrMiningInterrupted is returned when a control command stops the nonce
// search before a valid hash is found.
var ErrMiningInterrupted = errors.New("mining interrupted by command")

// ValidationError reports a constructor argument of the wrong type or shape.
// It names the offending parameter and what was expected.
type ValidationError struct {
	Param string
	Want  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("param %s must be %s", e.Param, e.Want)
}

// NewValidationError creates a ValidationError for the given parameter.
func NewValidationError(param, want string) *ValidationError {
	return &ValidationError{Param: param, Want: want}
}
