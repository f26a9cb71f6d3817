package app

import "errors"

// Sentinel errors returned synchronously from service admission paths.
// Faults inside background execution are never surfaced here; they land in
// the operation's terminal result instead.
var (
	// ErrForbidden indicates the caller does not own the operation.
	ErrForbidden = errors.New("operation belongs to another user")

	// ErrInvalidState indicates the operation is not in the state the
	// requested transition requires.
	ErrInvalidState = errors.New("operation is not in progress")

	// ErrInvalidOperationType indicates an unrecognized operation type.
	ErrInvalidOperationType = errors.New("invalid operation type")

	// ErrTargetNotFound indicates a player or NPC target does not exist.
	ErrTargetNotFound = errors.New("target not found")

	// ErrInvalidCredentials indicates a failed login attempt.
	ErrInvalidCredentials = errors.New("invalid username or password")
)
