// Package common defines shared constants and sentinel errors used across
// taskkeeper components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository/store-level errors.
	ErrorNotFound = errors.New("not found")

	// Validation errors (malformed or out-of-range input field,
	// reference to an unknown user at creation time).
	ErrorValidation = errors.New("validation error")

	// Uniqueness violations (username, email, task id) and blocked
	// deletions of still-referenced users.
	ErrorConflict = errors.New("already exists")

	// Credential mismatch on login.
	ErrorAuth = errors.New("invalid credentials")

	// The assignment policy refused the acting user.
	ErrorNotPermitted = errors.New("not permitted")

	// Successor materialization for a recurring task failed.
	ErrorRecurrence = errors.New("recurrence rollover failed")

	// Session token is missing, malformed or expired.
	ErrorInvalidToken = errors.New("invalid token")

	// Generic internal failure.
	ErrorInternal = errors.New("internal error")
)
