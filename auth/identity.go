package auth

import "time"

// Identity represents a resolved principal.
type Identity struct {
	// ID is the opaque principal identifier.
	ID string

	// Email is the principal's email, when the credential carries one.
	Email string

	// OrganizationID is the tenant this identity belongs to.
	OrganizationID string

	// Role is the principal's role within the organization.
	Role string

	// Permissions are explicit permissions granted to this identity.
	Permissions []string

	// IsWidget marks a non-human widget-visitor principal. Widget
	// identities typically carry no role and minimal permissions.
	IsWidget bool

	// VisitorID correlates widget identities to a visitor record.
	VisitorID string

	// SessionID correlates this identity to a session record.
	SessionID string

	// Method indicates which scheme produced this identity.
	Method AuthMethod

	// IssuedAt is when the underlying credential was issued.
	IssuedAt time.Time

	// ExpiresAt is when the underlying credential expires.
	ExpiresAt time.Time

	// Metadata holds method-specific extras (e.g. which verification
	// path was used, the API key id).
	Metadata map[string]any
}

// HasPermission checks if the identity holds a specific permission.
func (id *Identity) HasPermission(perm string) bool {
	for _, p := range id.Permissions {
		if p == perm {
			return true
		}
	}
	return false
}

// HasAnyPermission checks if the identity holds at least one of the given
// permissions. An empty list matches nothing.
func (id *Identity) HasAnyPermission(perms ...string) bool {
	for _, p := range perms {
		if id.HasPermission(p) {
			return true
		}
	}
	return false
}

// IsExpired checks if the identity's credential has expired.
func (id *Identity) IsExpired() bool {
	if id.ExpiresAt.IsZero() {
		return false
	}
	return time.Now().After(id.ExpiresAt)
}
