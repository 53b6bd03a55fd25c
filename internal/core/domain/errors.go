package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrConfiguration indicates missing or inconsistent deployment
	// configuration. This is the only error class allowed to abort
	// construction outright; everything else crosses the access layer
	// as Outcome data.
	ErrConfiguration = errors.New("invalid configuration")

	// ErrNoSession indicates an operation that requires a session context
	// was invoked without one.
	ErrNoSession = errors.New("no session context")

	// ErrNoCredential indicates no credential record is stored for the
	// session.
	ErrNoCredential = errors.New("no stored credential")

	// ErrTokenRefreshFailed indicates a token refresh operation failed.
	ErrTokenRefreshFailed = errors.New("token refresh failed")

	// ErrConsentPending indicates the user has not yet completed the
	// consent round trip.
	ErrConsentPending = errors.New("consent pending")
)
