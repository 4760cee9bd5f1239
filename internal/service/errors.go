package service

import "fmt"

// ValidationError reports malformed or missing input. Handlers map it to 400.
type ValidationError struct {
	// Reason is safe to show to the client.
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// AuthError reports a missing privilege or rejected credentials. Handlers map it to 401.
type AuthError struct {
	// Reason is safe to show to the client.
	Reason string
}

func (e *AuthError) Error() string { return e.Reason }

// StoreError wraps a failure of the underlying database. Handlers map it to 500
// and never expose Err to the client.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string { return fmt.Sprintf("store: %s: %v", e.Op, e.Err) }

func (e *StoreError) Unwrap() error { return e.Err }

var (
	// ErrMissingFields is returned when a contact submission lacks name, email or message.
	ErrMissingFields = &ValidationError{Reason: "Missing fields"}
	// ErrInvalidSiteTitle is returned when the new title is not a non-blank string.
	ErrInvalidSiteTitle = &ValidationError{Reason: "Invalid site_title"}

	// ErrUnauthorized is returned when an admin-only operation runs without an admin session.
	ErrUnauthorized = &AuthError{Reason: "Not logged in"}
	// ErrInvalidCredentials is returned by a failed login.
	ErrInvalidCredentials = &AuthError{Reason: "Invalid login"}
)

func storeErr(op string, err error) error {
	return &StoreError{Op: op, Err: err}
}
