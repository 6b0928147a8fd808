package session

import "errors"

// Sentinel errors for session operations.
var (
	// ErrNotFound is returned when a session does not exist or has expired.
	ErrNotFound = errors.New("session: not found")

	// ErrClosed is returned when an operation is attempted on a closed store.
	ErrClosed = errors.New("session: store closed")
)
