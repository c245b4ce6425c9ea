package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var testSecret = []byte("test-secret")

func newTestVerifier(cfg VerifierConfig) *TokenVerifier {
	return NewTokenVerifier(cfg, NewStaticKeyProvider(testSecret))
}

func TestTokenVerifier_VerifySession(t *testing.T) {
	now := time.Now()
	token := signTestToken(t, jwt.MapClaims{
		"sub":         "user-1",
		"email":       "agent@example.com",
		"org_id":      "org-1",
		"role":        "admin",
		"permissions": []any{"tickets:read", "tickets:write"},
		"session_id":  "sess-7",
		"iat":         float64(now.Unix()),
		"exp":         float64(now.Add(time.Hour).Unix()),
	})

	ver, err := newTestVerifier(VerifierConfig{}).VerifySession(context.Background(), token)
	if err != nil {
		t.Fatalf("VerifySession: %v", err)
	}
	if ver.Subject != "user-1" || ver.Email != "agent@example.com" {
		t.Errorf("subject/email = %q/%q", ver.Subject, ver.Email)
	}
	if ver.OrganizationID != "org-1" || ver.Role != "admin" {
		t.Errorf("org/role = %q/%q", ver.OrganizationID, ver.Role)
	}
	if len(ver.Permissions) != 2 {
		t.Errorf("permissions = %v", ver.Permissions)
	}
	if ver.SessionID != "sess-7" {
		t.Errorf("session id = %q", ver.SessionID)
	}
	if ver.ExpiresAt.Unix() != now.Add(time.Hour).Unix() {
		t.Errorf("ExpiresAt = %v", ver.ExpiresAt)
	}
}

func TestTokenVerifier_Rejections(t *testing.T) {
	now := time.Now()

	expired := signTestToken(t, jwt.MapClaims{
		"sub": "user-1",
		"exp": float64(now.Add(-time.Hour).Unix()),
	})
	wrongIssuer := signTestToken(t, jwt.MapClaims{"sub": "user-1", "iss": "other"})
	wrongAudience := signTestToken(t, jwt.MapClaims{"sub": "user-1", "aud": "other"})

	wrongKey, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "user-1"}).
		SignedString([]byte("not-the-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	tests := []struct {
		name    string
		cfg     VerifierConfig
		token   string
		wantErr error
	}{
		{name: "expired", token: expired, wantErr: ErrTokenExpired},
		{name: "garbage", token: "...", wantErr: ErrTokenMalformed},
		{name: "wrong signature", token: wrongKey, wantErr: ErrInvalidToken},
		{name: "issuer mismatch", cfg: VerifierConfig{Issuer: "deskforge"}, token: wrongIssuer, wantErr: ErrInvalidToken},
		{name: "audience mismatch", cfg: VerifierConfig{Audience: "api"}, token: wrongAudience, wantErr: ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestVerifier(tt.cfg).VerifySession(context.Background(), tt.token)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestTokenVerifier_VerifyWidget(t *testing.T) {
	widget := signTestToken(t, jwt.MapClaims{
		"sub":            "visitor-1",
		"org_id":         "org-1",
		"widget_session": true,
		"visitor_id":     "v-1",
	})
	session := signTestToken(t, jwt.MapClaims{"sub": "user-1", "org_id": "org-1"})

	v := newTestVerifier(VerifierConfig{})

	ver, err := v.VerifyWidget(context.Background(), widget)
	if err != nil {
		t.Fatalf("VerifyWidget: %v", err)
	}
	if !ver.IsWidget || ver.VisitorID != "v-1" {
		t.Errorf("widget fields = %+v", ver)
	}

	// A signature-valid session token is still not a widget token.
	if _, err := v.VerifyWidget(context.Background(), session); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("err = %v, want ErrInvalidToken", err)
	}

	// And the same token passes the session path.
	if _, err := v.VerifySession(context.Background(), session); err != nil {
		t.Errorf("VerifySession: %v", err)
	}
}

func TestTokenVerifier_CustomClaims(t *testing.T) {
	token := signTestToken(t, jwt.MapClaims{
		"uid":    "user-1",
		"tenant": "org-9",
	})

	ver, err := newTestVerifier(VerifierConfig{
		SubjectClaim: "uid",
		OrgClaim:     "tenant",
	}).VerifySession(context.Background(), token)
	if err != nil {
		t.Fatalf("VerifySession: %v", err)
	}
	if ver.Subject != "user-1" || ver.OrganizationID != "org-9" {
		t.Errorf("subject/org = %q/%q", ver.Subject, ver.OrganizationID)
	}
}
