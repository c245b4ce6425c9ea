package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Default claim names shared by the token verifier and the quick-check path.
const (
	defaultSubjectClaim     = "sub"
	defaultEmailClaim       = "email"
	defaultOrgClaim         = "org_id"
	defaultRoleClaim        = "role"
	defaultPermissionsClaim = "permissions"
	defaultWidgetClaim      = "widget_session"
	defaultVisitorClaim     = "visitor_id"
	defaultSessionClaim     = "session_id"
)

// VerifierConfig configures the JWT token verifier.
type VerifierConfig struct {
	// Issuer is the expected token issuer (iss claim).
	Issuer string

	// Audience is the expected token audience (aud claim).
	Audience string

	// SubjectClaim is the claim carrying the principal id. Default: "sub".
	SubjectClaim string

	// OrgClaim is the claim carrying the organization id. Default: "org_id".
	OrgClaim string

	// RoleClaim is the claim carrying the role. Default: "role".
	RoleClaim string

	// PermissionsClaim is the claim carrying permissions. Default: "permissions".
	PermissionsClaim string

	// WidgetClaim marks widget-session tokens. Default: "widget_session".
	WidgetClaim string
}

func (c VerifierConfig) withDefaults() VerifierConfig {
	if c.SubjectClaim == "" {
		c.SubjectClaim = defaultSubjectClaim
	}
	if c.OrgClaim == "" {
		c.OrgClaim = defaultOrgClaim
	}
	if c.RoleClaim == "" {
		c.RoleClaim = defaultRoleClaim
	}
	if c.PermissionsClaim == "" {
		c.PermissionsClaim = defaultPermissionsClaim
	}
	if c.WidgetClaim == "" {
		c.WidgetClaim = defaultWidgetClaim
	}
	return c
}

// TokenVerifier verifies signed JWTs against a KeyProvider. It implements
// both SessionVerifier and WidgetVerifier: the widget path additionally
// requires the widget-session marker claim on the verified token.
type TokenVerifier struct {
	config VerifierConfig
	keys   KeyProvider
}

// NewTokenVerifier creates a token verifier.
func NewTokenVerifier(config VerifierConfig, keys KeyProvider) *TokenVerifier {
	return &TokenVerifier{
		config: config.withDefaults(),
		keys:   keys,
	}
}

// VerifySession verifies a first-party session token.
func (v *TokenVerifier) VerifySession(ctx context.Context, token string) (*Verification, error) {
	return v.verify(ctx, token)
}

// VerifyWidget verifies an embeddable-widget token. Tokens without the
// widget-session marker are rejected even when their signature verifies.
func (v *TokenVerifier) VerifyWidget(ctx context.Context, token string) (*Verification, error) {
	ver, err := v.verify(ctx, token)
	if err != nil {
		return nil, err
	}
	if !ver.IsWidget {
		return nil, fmt.Errorf("%w: not a widget token", ErrInvalidToken)
	}
	return ver, nil
}

func (v *TokenVerifier) verify(ctx context.Context, tokenString string) (*Verification, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		kid := ""
		if kidVal, ok := token.Header["kid"].(string); ok {
			kid = kidVal
		}
		return v.keys.GetKey(ctx, kid)
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, ErrTokenMalformed
		case errors.Is(err, ErrKeyNotFound):
			return nil, err
		default:
			return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
		}
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrTokenMalformed
	}

	if v.config.Issuer != "" {
		if iss, ok := claims["iss"].(string); !ok || iss != v.config.Issuer {
			return nil, fmt.Errorf("%w: issuer mismatch", ErrInvalidToken)
		}
	}
	if v.config.Audience != "" && !containsAudience(claims, v.config.Audience) {
		return nil, fmt.Errorf("%w: audience mismatch", ErrInvalidToken)
	}

	return v.buildVerification(claims), nil
}

func (v *TokenVerifier) buildVerification(claims jwt.MapClaims) *Verification {
	ver := &Verification{
		Valid:  true,
		Claims: make(map[string]any, len(claims)),
	}
	for k, val := range claims {
		ver.Claims[k] = val
	}

	if subject, ok := claims[v.config.SubjectClaim].(string); ok {
		ver.Subject = subject
	}
	if email, ok := claims[defaultEmailClaim].(string); ok {
		ver.Email = email
	}
	if org, ok := claims[v.config.OrgClaim].(string); ok {
		ver.OrganizationID = org
	}
	if role, ok := claims[v.config.RoleClaim].(string); ok {
		ver.Role = role
	}
	if perms, ok := claims[v.config.PermissionsClaim].([]any); ok {
		ver.Permissions = make([]string, 0, len(perms))
		for _, p := range perms {
			if s, ok := p.(string); ok {
				ver.Permissions = append(ver.Permissions, s)
			}
		}
	}
	if widget, ok := claims[v.config.WidgetClaim].(bool); ok {
		ver.IsWidget = widget
	}
	if visitor, ok := claims[defaultVisitorClaim].(string); ok {
		ver.VisitorID = visitor
	}
	if session, ok := claims[defaultSessionClaim].(string); ok {
		ver.SessionID = session
	}
	if exp, ok := claims["exp"].(float64); ok {
		ver.ExpiresAt = time.Unix(int64(exp), 0)
	}
	if iat, ok := claims["iat"].(float64); ok {
		ver.IssuedAt = time.Unix(int64(iat), 0)
	}

	return ver
}

func containsAudience(claims jwt.MapClaims, target string) bool {
	switch v := claims["aud"].(type) {
	case string:
		return v == target
	case []any:
		for _, a := range v {
			if s, ok := a.(string); ok && s == target {
				return true
			}
		}
	}
	return false
}

var (
	_ SessionVerifier = (*TokenVerifier)(nil)
	_ WidgetVerifier  = (*TokenVerifier)(nil)
)
