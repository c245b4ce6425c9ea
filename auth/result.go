package auth

import "time"

// ResultMetadata carries request and token metadata attached to a
// successful resolution.
type ResultMetadata struct {
	// TokenType names the kind of credential that was validated
	// (e.g. "session", "widget", "api_key").
	TokenType string

	// IssuedAt is the credential's issue time, when known.
	IssuedAt time.Time

	// ExpiresAt is the credential's expiry time, when known.
	ExpiresAt time.Time

	// Origin is the request origin header.
	Origin string

	// UserAgent is the request user agent.
	UserAgent string

	// ClientIP is the derived client address.
	ClientIP string
}

// Result is the outcome of one resolution attempt. Results are created
// fresh per request and are never cached or persisted by this core.
type Result struct {
	// Authenticated is true if a method fully qualified.
	Authenticated bool

	// Identity is the resolved principal (only if Authenticated).
	Identity *Identity

	// OrganizationID is the organization the engine resolved. It usually
	// matches Identity.OrganizationID but is tracked separately because
	// some verification paths resolve the organization from a claim the
	// identity itself does not carry.
	OrganizationID string

	// Method is the scheme that produced this result.
	Method AuthMethod

	// Metadata is request/token metadata (only on success).
	Metadata ResultMetadata

	// Err is the failure cause (only if !Authenticated). For terminal
	// failures this is one of the opaque terminal errors; per-method
	// causes never leave the engine.
	Err error

	// Reason is a human-readable failure reason. For terminal failures it
	// is exactly the terminal error message and is safe to return to
	// callers; anything more specific is for internal logging only.
	Reason string
}

// Success creates a successful result for the given identity.
func Success(id *Identity, method AuthMethod) *Result {
	return &Result{
		Authenticated:  true,
		Identity:       id,
		OrganizationID: id.OrganizationID,
		Method:         method,
	}
}

// Failure creates a failed result.
func Failure(err error, method AuthMethod) *Result {
	reason := ""
	if err != nil {
		reason = err.Error()
	}
	return &Result{
		Authenticated: false,
		Method:        method,
		Err:           err,
		Reason:        reason,
	}
}
