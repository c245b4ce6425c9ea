package auth

import (
	"encoding/base64"
	"encoding/json"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Extractor pulls a candidate token out of a request without validating it.
// Extractors are pure: no I/O, no panics; any parse error yields absence.
type Extractor func(r *Request) (token string, ok bool)

// ExtractorConfig configures where each method looks for its token.
type ExtractorConfig struct {
	// SessionCookie is the first-party session cookie name.
	// Default: "df_session"
	SessionCookie string

	// TokenCookie is the generic token cookie name.
	// Default: "df_token"
	TokenCookie string

	// APIKeyHeader is the header carrying API keys.
	// Default: "X-API-Key"
	APIKeyHeader string

	// APIKeyPrefix marks bearer tokens that are really API keys.
	// Default: "dk_"
	APIKeyPrefix string

	// APIKeyQueryParam is the query parameter carrying API keys.
	// Default: "api_key"
	APIKeyQueryParam string

	// WidgetClaim is the unverified claim marking widget-session tokens.
	// Default: "widget_session"
	WidgetClaim string
}

func (c ExtractorConfig) withDefaults() ExtractorConfig {
	if c.SessionCookie == "" {
		c.SessionCookie = "df_session"
	}
	if c.TokenCookie == "" {
		c.TokenCookie = "df_token"
	}
	if c.APIKeyHeader == "" {
		c.APIKeyHeader = "X-API-Key"
	}
	if c.APIKeyPrefix == "" {
		c.APIKeyPrefix = "dk_"
	}
	if c.APIKeyQueryParam == "" {
		c.APIKeyQueryParam = "api_key"
	}
	if c.WidgetClaim == "" {
		c.WidgetClaim = "widget_session"
	}
	return c
}

// NewExtractors builds the extractor registry. The returned map is built
// once and must be treated as read-only.
func NewExtractors(cfg ExtractorConfig) map[AuthMethod]Extractor {
	cfg = cfg.withDefaults()

	return map[AuthMethod]Extractor{
		MethodSession: func(r *Request) (string, bool) {
			return cookieToken(r.Cookie(cfg.SessionCookie))
		},
		MethodCookie: func(r *Request) (string, bool) {
			return cookieToken(r.Cookie(cfg.TokenCookie))
		},
		MethodWidget: func(r *Request) (string, bool) {
			token := r.BearerToken()
			if token == "" {
				return "", false
			}
			// Heuristic disambiguation only. The security boundary is
			// signature verification in the validator.
			if !hasUnverifiedClaim(token, cfg.WidgetClaim) {
				return "", false
			}
			return token, true
		},
		MethodBearer: func(r *Request) (string, bool) {
			token := r.BearerToken()
			return token, token != ""
		},
		MethodAPIKey: func(r *Request) (string, bool) {
			if key := strings.TrimSpace(r.Header(cfg.APIKeyHeader)); key != "" {
				return key, true
			}
			if token := r.BearerToken(); strings.HasPrefix(token, cfg.APIKeyPrefix) {
				return token, true
			}
			if key := r.QueryValue(cfg.APIKeyQueryParam); key != "" {
				return key, true
			}
			return "", false
		},
		MethodQueryToken: func(r *Request) (string, bool) {
			token := r.QueryValue("token", "access_token")
			return token, token != ""
		},
	}
}

// wrappedCookie is the base64-wrapped JSON cookie format some application
// versions write instead of the raw token.
type wrappedCookie struct {
	AccessToken string `json:"access_token"`
}

// cookieToken tolerates both raw-token and base64-wrapped JSON cookie
// values. Malformed wrapping falls back to treating the value as a raw
// token; an empty cookie is absence.
func cookieToken(value string) (string, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", false
	}

	for _, enc := range []*base64.Encoding{base64.StdEncoding, base64.URLEncoding, base64.RawURLEncoding} {
		decoded, err := enc.DecodeString(value)
		if err != nil {
			continue
		}
		var wrapped wrappedCookie
		if err := json.Unmarshal(decoded, &wrapped); err != nil {
			continue
		}
		if wrapped.AccessToken != "" {
			return wrapped.AccessToken, true
		}
	}

	return value, true
}

// hasUnverifiedClaim decodes the token payload without verifying the
// signature and reports whether the named claim is truthy.
func hasUnverifiedClaim(token, claim string) bool {
	claims, err := decodeUnverified(token)
	if err != nil {
		return false
	}
	switch v := claims[claim].(type) {
	case bool:
		return v
	case string:
		return v == "true"
	default:
		return false
	}
}

// decodeUnverified parses a JWT payload without signature verification.
func decodeUnverified(token string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, err
	}
	return claims, nil
}
