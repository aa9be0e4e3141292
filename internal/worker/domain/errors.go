package domain

import "errors"

var (
	// ErrTaskNotFound is returned when a task cannot be found in the database
	ErrTaskNotFound = errors.New("task not found")

	// ErrTaskAlreadyClaimed is returned when attempting to claim a task that's already claimed
	ErrTaskAlreadyClaimed = errors.New("task already claimed or not in PENDING status")

	// ErrEntityNotFound is returned when the student or job a task points at is missing
	ErrEntityNotFound = errors.New("entity not found")

	// ErrUnknownTaskKind is returned for task kinds the worker cannot execute
	ErrUnknownTaskKind = errors.New("unknown task kind")

	// ErrMaxRetriesExceeded is returned when a task has exceeded its retry limit
	ErrMaxRetriesExceeded = errors.New("max retries exceeded")
)

// RetryableError wraps transient errors that should trigger a requeue
type RetryableError struct {
	Err error
}

func (e *RetryableError) Error() string {
	return "retryable error: " + e.Err.Error()
}

func (e *RetryableError) Unwrap() error {
	return e.Err
}

// NewRetryableError creates a new retryable error
func NewRetryableError(err error) error {
	return &RetryableError{Err: err}
}
