package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoAPIKey indicates the user has no AI API key configured.
	// This is a configuration error: fatal, never retried, and reported
	// immediately rather than degraded.
	ErrNoAPIKey = errors.New("no AI API key configured")

	// ErrAuthInvalid indicates the AI provider rejected the credential.
	// Like ErrNoAPIKey this is universal, not item-specific, so no
	// zero-vector fallback is attempted.
	ErrAuthInvalid = errors.New("authentication invalid")

	// ErrBuildInProgress indicates a build is already running for the
	// user. Concurrent builds for one user are not safe: the replace
	// sequence is not mutually exclusive.
	ErrBuildInProgress = errors.New("index build already in progress")
)
