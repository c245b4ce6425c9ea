package auth

import "errors"

// Terminal failure errors. Their messages are the only failure text returned
// to callers; per-method reasons stay in internal logs.
var (
	ErrAuthenticationRequired = errors.New("Authentication required")
	ErrNoValidAuthentication  = errors.New("No valid authentication found")
)

// Internal per-method errors. These drive fallback to the next candidate
// method and are never surfaced in aggregate.
var (
	ErrMissingCredentials   = errors.New("auth: missing credentials")
	ErrInvalidToken         = errors.New("auth: invalid token")
	ErrTokenExpired         = errors.New("auth: token expired")
	ErrTokenMalformed       = errors.New("auth: token malformed")
	ErrKeyNotFound          = errors.New("auth: signing key not found")
	ErrOrganizationRequired = errors.New("auth: organization required")
	ErrPermissionDenied     = errors.New("auth: insufficient permissions")
	ErrVerifierUnavailable  = errors.New("auth: verifier unavailable")
)
