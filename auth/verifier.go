package auth

import (
	"context"
	"time"
)

// Verification is the structured outcome of an external token verification.
type Verification struct {
	// Valid is true when the credential verified successfully.
	Valid bool

	// Subject is the principal the credential was minted for.
	Subject string

	// Email is the principal's email, when the credential carries one.
	Email string

	// OrganizationID is the organization claim, when present.
	OrganizationID string

	// Role is the role claim, when present.
	Role string

	// Permissions are the permission claims, when present.
	Permissions []string

	// IsWidget marks credentials minted for widget-visitor sessions.
	IsWidget bool

	// VisitorID correlates widget credentials to a visitor record.
	VisitorID string

	// SessionID correlates the credential to a session record.
	SessionID string

	// IssuedAt is the credential's issue time.
	IssuedAt time.Time

	// ExpiresAt is the credential's expiry time.
	ExpiresAt time.Time

	// Claims contains the raw verified claims.
	Claims map[string]any
}

// SessionVerifier owns cryptographic verification of first-party session
// tokens, including signature checking and key management.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: implementations should honor cancellation/deadlines.
// - Errors: rejected tokens return (nil, err) with a sentinel from this
//   package (possibly wrapped); internal failures return any other error.
type SessionVerifier interface {
	VerifySession(ctx context.Context, token string) (*Verification, error)
}

// WidgetVerifier owns verification of tokens minted for embeddable-widget
// sessions. Same contract as SessionVerifier; implementations must reject
// tokens that do not carry widget-session claims.
type WidgetVerifier interface {
	VerifyWidget(ctx context.Context, token string) (*Verification, error)
}

// Verifiers bundles the external collaborators the validator registry
// delegates to. Keys may be nil when the api_key method is not configured;
// likewise for the token verifiers.
type Verifiers struct {
	Session SessionVerifier
	Widget  WidgetVerifier
	Keys    KeyStore
}
