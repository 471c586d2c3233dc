package provider

import (
	"errors"
	"fmt"
)

// Status classifies provider failures the way the underlying SDKs report
// them. Session-layer code branches on the status, never on raw SDK errors.
type Status string

const (
	StatusCancelled   Status = "cancelled"            // User dismissed the sign-in flow
	StatusInProgress  Status = "in_progress"          // Another sign-in attempt is already running
	StatusUnavailable Status = "services_unavailable" // Provider prerequisite services unreachable
	StatusUnknown     Status = "unknown"
)

// StatusError wraps a provider failure with its classification.
type StatusError struct {
	Status Status
	Err    error
}

func (e *StatusError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("provider error: %s", e.Status)
	}
	return fmt.Sprintf("provider error (%s): %s", e.Status, e.Err)
}

func (e *StatusError) Unwrap() error {
	return e.Err
}

// NewStatusError builds a classified provider error.
func NewStatusError(status Status, err error) *StatusError {
	return &StatusError{Status: status, Err: err}
}

// StatusOf extracts the classification from an error chain, returning
// StatusUnknown for anything that is not a StatusError.
func StatusOf(err error) Status {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Status
	}
	return StatusUnknown
}
