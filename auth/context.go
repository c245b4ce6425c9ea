package auth

import "context"

// Context keys for auth-related values.
type contextKey int

const (
	identityKey contextKey = iota
	resultKey
)

// WithIdentity returns a new context with the given identity attached.
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFromContext retrieves the identity from the context.
// Returns nil if no identity is present.
func IdentityFromContext(ctx context.Context) *Identity {
	id, _ := ctx.Value(identityKey).(*Identity)
	return id
}

// OrganizationFromContext retrieves the resolved organization id.
// Returns empty string if no identity is present.
func OrganizationFromContext(ctx context.Context) string {
	if res := ResultFromContext(ctx); res != nil && res.OrganizationID != "" {
		return res.OrganizationID
	}
	id := IdentityFromContext(ctx)
	if id == nil {
		return ""
	}
	return id.OrganizationID
}

// WithResult returns a new context with the full resolution result attached.
func WithResult(ctx context.Context, res *Result) context.Context {
	return context.WithValue(ctx, resultKey, res)
}

// ResultFromContext retrieves the resolution result from the context.
// Returns nil if no result is present.
func ResultFromContext(ctx context.Context) *Result {
	res, _ := ctx.Value(resultKey).(*Result)
	return res
}
