package auth_test

import (
	"context"
	"fmt"
	"net/http"

	"github.com/deskforge/authcore/auth"
)

func ExampleResolver_Authenticate() {
	// Register an API key.
	keys := auth.NewMemoryKeyStore()
	keys.Add(&auth.KeyInfo{
		ID:             "key-1",
		KeyHash:        auth.HashKey("dk_live_abc123"),
		OwnerID:        "svc-reporting",
		OrganizationID: "org-1",
		Role:           "service",
	})

	cfg := auth.ExtractorConfig{}
	resolver := auth.NewResolver(
		auth.NewExtractors(cfg),
		auth.NewValidators(auth.Verifiers{Keys: keys}),
	)

	req := &auth.Request{
		Method: "GET",
		Path:   "/v1/reports",
		Headers: http.Header{
			"X-Api-Key": {"dk_live_abc123"},
		},
	}

	res := resolver.Authenticate(context.Background(), req, auth.Config{
		Methods:  []auth.AuthMethod{auth.MethodAPIKey},
		Required: true,
	})

	fmt.Println("authenticated:", res.Authenticated)
	fmt.Println("method:", res.Method)
	fmt.Println("owner:", res.Identity.ID)
	fmt.Println("organization:", res.OrganizationID)
	// Output:
	// authenticated: true
	// method: api_key
	// owner: svc-reporting
	// organization: org-1
}

func ExampleResolver_Authenticate_terminalFailure() {
	resolver := auth.NewResolver(
		auth.NewExtractors(auth.ExtractorConfig{}),
		auth.NewValidators(auth.Verifiers{}),
	)

	// No credentials anywhere on the request.
	req := &auth.Request{Method: "GET", Path: "/v1/reports"}

	res := resolver.Authenticate(context.Background(), req, auth.Config{
		Methods:  []auth.AuthMethod{auth.MethodAPIKey, auth.MethodSession},
		Required: true,
	})

	fmt.Println("authenticated:", res.Authenticated)
	fmt.Println("reason:", res.Reason)
	// Output:
	// authenticated: false
	// reason: Authentication required
}
