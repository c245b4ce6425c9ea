package auth

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Validator validates one candidate token by delegating to the external
// verifier for its method. Validators never panic and never propagate
// collaborator failures: everything becomes a failed Result whose reason is
// for internal logging only.
type Validator func(ctx context.Context, token string, req *Request) *Result

// NewValidators builds the validator registry for the given collaborators.
// The returned map is built once and must be treated as read-only.
func NewValidators(v Verifiers) map[AuthMethod]Validator {
	sessionValidator := func(method AuthMethod) Validator {
		return func(ctx context.Context, token string, _ *Request) *Result {
			if v.Session == nil {
				return Failure(fmt.Errorf("%w: no session verifier", ErrVerifierUnavailable), method)
			}
			ver, err := v.Session.VerifySession(ctx, token)
			if err != nil {
				return verifierFailure(err, method)
			}
			return verified(ver, method, "session")
		}
	}

	widgetValidator := func(ctx context.Context, token string, _ *Request) *Result {
		if v.Widget == nil {
			return Failure(fmt.Errorf("%w: no widget verifier", ErrVerifierUnavailable), MethodWidget)
		}
		ver, err := v.Widget.VerifyWidget(ctx, token)
		if err != nil {
			return verifierFailure(err, MethodWidget)
		}
		return verified(ver, MethodWidget, "widget")
	}

	// Raw bearer and query tokens are of unknown flavor: the session
	// verifier is tried first, then the widget verifier. Both rejections
	// are kept so the internally logged reason names each cause.
	compositeValidator := func(method AuthMethod) Validator {
		return func(ctx context.Context, token string, _ *Request) *Result {
			var errs []error
			if v.Session != nil {
				ver, err := v.Session.VerifySession(ctx, token)
				if err == nil {
					return verified(ver, method, "session")
				}
				errs = append(errs, err)
			}
			if v.Widget != nil {
				ver, err := v.Widget.VerifyWidget(ctx, token)
				if err == nil {
					return verified(ver, method, "widget")
				}
				errs = append(errs, err)
			}
			if len(errs) == 0 {
				return Failure(fmt.Errorf("%w: no token verifier", ErrVerifierUnavailable), method)
			}
			return verifierFailure(errors.Join(errs...), method)
		}
	}

	apiKeyValidator := func(ctx context.Context, token string, _ *Request) *Result {
		if v.Keys == nil {
			return Failure(fmt.Errorf("%w: no key store", ErrVerifierUnavailable), MethodAPIKey)
		}
		info, err := v.Keys.Lookup(ctx, HashKey(token))
		if err != nil {
			return verifierFailure(err, MethodAPIKey)
		}
		if info == nil {
			return Failure(ErrInvalidToken, MethodAPIKey)
		}
		if !info.ExpiresAt.IsZero() && time.Now().After(info.ExpiresAt) {
			return Failure(ErrTokenExpired, MethodAPIKey)
		}

		identity := &Identity{
			ID:             info.OwnerID,
			OrganizationID: info.OrganizationID,
			Role:           info.Role,
			Permissions:    info.Permissions,
			Method:         MethodAPIKey,
			ExpiresAt:      info.ExpiresAt,
			Metadata:       map[string]any{"key_id": info.ID},
		}
		for k, val := range info.Metadata {
			identity.Metadata[k] = val
		}
		if info.RateLimitPolicy != "" {
			identity.Metadata["rate_limit_policy"] = info.RateLimitPolicy
		}

		res := Success(identity, MethodAPIKey)
		res.Metadata.TokenType = "api_key"
		res.Metadata.ExpiresAt = info.ExpiresAt
		return res
	}

	return map[AuthMethod]Validator{
		MethodSession:    sessionValidator(MethodSession),
		MethodCookie:     sessionValidator(MethodCookie),
		MethodWidget:     widgetValidator,
		MethodBearer:     compositeValidator(MethodBearer),
		MethodQueryToken: compositeValidator(MethodQueryToken),
		MethodAPIKey:     apiKeyValidator,
	}
}

// verified converts a verification into a successful result.
func verified(ver *Verification, method AuthMethod, tokenType string) *Result {
	if ver == nil || !ver.Valid {
		return Failure(ErrInvalidToken, method)
	}

	identity := &Identity{
		ID:             ver.Subject,
		Email:          ver.Email,
		OrganizationID: ver.OrganizationID,
		Role:           ver.Role,
		Permissions:    ver.Permissions,
		IsWidget:       ver.IsWidget,
		VisitorID:      ver.VisitorID,
		SessionID:      ver.SessionID,
		Method:         method,
		IssuedAt:       ver.IssuedAt,
		ExpiresAt:      ver.ExpiresAt,
		Metadata:       map[string]any{"verified_via": tokenType},
	}

	res := Success(identity, method)
	res.Metadata.TokenType = tokenType
	res.Metadata.IssuedAt = ver.IssuedAt
	res.Metadata.ExpiresAt = ver.ExpiresAt
	return res
}

// verifierFailure maps a verifier error to a failed result. Known sentinel
// rejections keep their cause; anything else is a collaborator failure.
func verifierFailure(err error, method AuthMethod) *Result {
	switch {
	case errors.Is(err, ErrTokenExpired),
		errors.Is(err, ErrTokenMalformed),
		errors.Is(err, ErrInvalidToken),
		errors.Is(err, ErrKeyNotFound):
		return Failure(err, method)
	default:
		return Failure(fmt.Errorf("%w: %w", ErrVerifierUnavailable, err), method)
	}
}
