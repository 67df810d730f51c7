package core

import (
	"errors"
	"fmt"
)

// Error kinds surfaced by the auth and data layers. Handlers map
// these onto HTTP statuses in the presenter; everything not wrapped
// in one of these is treated as an internal error and never shown to
// the client verbatim.
var (
	// ErrUnauthenticated: no token was supplied at all.
	ErrUnauthenticated = errors.New("authentication required")

	// ErrTokenExpired: the token was valid once but its expiry has
	// passed.
	ErrTokenExpired = errors.New("session token expired")

	// ErrInvalidToken: any other token validation failure (bad
	// signature, malformed payload, wrong algorithm).
	ErrInvalidToken = errors.New("invalid session token")

	// ErrInvalidCredentials: a signin attempt failed. Deliberately
	// generic, it never distinguishes unknown-email from
	// wrong-password.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrForbidden: the caller is authenticated but not allowed to
	// perform the action (role or ownership violation).
	ErrForbidden = errors.New("insufficient privileges")

	// ErrNotFound: the requested resource id does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUpstreamUnavailable: the identity provider or data store
	// failed or timed out. Safe for the caller to retry with backoff.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)

// ValidationError reports a request body that failed schema checks.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid field %q: %s", e.Field, e.Reason)
}

func Invalid(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
