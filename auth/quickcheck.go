package auth

import "time"

// QuickResult is the outcome of a non-authoritative quick check.
type QuickResult struct {
	Valid          bool
	UserID         string
	OrganizationID string
}

// QuickCheck decodes the first JWT-shaped candidate token on the request
// without verifying its signature and returns its subject and organization
// claims. The exp claim is enforced against the current time unless
// cfg.SkipExpiration is set.
//
// This path exists for low-stakes, latency-sensitive decisions (e.g.
// routing) where an authoritative Authenticate still happens downstream.
// It must never be the sole gate for a privileged operation: the decoded
// claims are attacker-controlled until a verifier has checked the signature.
func (r *Resolver) QuickCheck(req *Request, cfg Config) QuickResult {
	for _, method := range cfg.Methods {
		if method == MethodAPIKey {
			// API keys are opaque, not JWT-shaped.
			continue
		}
		extract, ok := r.extractors[method]
		if !ok {
			continue
		}
		token, ok := extract(req)
		if !ok {
			continue
		}

		claims, err := decodeUnverified(token)
		if err != nil {
			continue
		}

		if !cfg.SkipExpiration {
			if exp, ok := claims["exp"].(float64); ok && time.Now().After(time.Unix(int64(exp), 0)) {
				return QuickResult{Valid: false}
			}
		}

		res := QuickResult{Valid: true}
		if sub, ok := claims[defaultSubjectClaim].(string); ok {
			res.UserID = sub
		}
		if org, ok := claims[defaultOrgClaim].(string); ok {
			res.OrganizationID = org
		}
		return res
	}

	return QuickResult{Valid: false}
}
