package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestQuickCheck_ValidToken(t *testing.T) {
	token := signTestToken(t, jwt.MapClaims{
		"sub":    "user-1",
		"org_id": "org-1",
		"exp":    float64(time.Now().Add(time.Hour).Unix()),
	})

	resolver := newTestResolver(Verifiers{})
	req := newTestRequest()
	req.Cookies["df_session"] = token

	res := resolver.QuickCheck(req, Config{Methods: []AuthMethod{MethodSession}})
	if !res.Valid {
		t.Fatal("QuickCheck() = invalid, want valid")
	}
	if res.UserID != "user-1" {
		t.Errorf("UserID = %q, want user-1", res.UserID)
	}
	if res.OrganizationID != "org-1" {
		t.Errorf("OrganizationID = %q, want org-1", res.OrganizationID)
	}
}

func TestQuickCheck_Expiry(t *testing.T) {
	expired := signTestToken(t, jwt.MapClaims{
		"sub": "user-1",
		"exp": float64(time.Now().Add(-time.Hour).Unix()),
	})

	resolver := newTestResolver(Verifiers{})
	req := newTestRequest()
	req.Cookies["df_session"] = expired

	cfg := Config{Methods: []AuthMethod{MethodSession}}
	if res := resolver.QuickCheck(req, cfg); res.Valid {
		t.Error("expired token passed quick check")
	}

	cfg.SkipExpiration = true
	if res := resolver.QuickCheck(req, cfg); !res.Valid {
		t.Error("expired token rejected despite SkipExpiration")
	}
}

func TestQuickCheck_NonJWTCandidates(t *testing.T) {
	resolver := newTestResolver(Verifiers{})

	req := newTestRequest()
	req.Cookies["df_session"] = "not-a-jwt"
	req.Headers.Set("X-API-Key", "dk_opaque")

	res := resolver.QuickCheck(req, Config{
		Methods: []AuthMethod{MethodAPIKey, MethodSession},
	})
	if res.Valid {
		t.Error("opaque tokens must not pass the quick check")
	}
}

func TestQuickCheck_NoCandidates(t *testing.T) {
	resolver := newTestResolver(Verifiers{})
	res := resolver.QuickCheck(newTestRequest(), FlexibleConfig())
	if res.Valid {
		t.Error("empty request passed quick check")
	}
}
