package ratelimit

import (
	"context"
	"time"
)

// Policy describes how fast a subject may go.
type Policy struct {
	// Rate is the number of requests allowed per second.
	// Default: 10
	Rate float64

	// Burst is the maximum burst size.
	// Default: 20
	Burst int
}

func (p Policy) withDefaults() Policy {
	if p.Rate <= 0 {
		p.Rate = 10
	}
	if p.Burst <= 0 {
		p.Burst = 20
	}
	return p
}

// Decision is the outcome of one rate-limit check.
type Decision struct {
	// Allowed is true when the request may proceed.
	Allowed bool

	// Remaining is the approximate number of requests left in the window.
	Remaining int

	// ResetAt is when a rejected subject may retry.
	ResetAt time.Time
}

// RetryAfter returns the wait before retrying, never negative.
func (d Decision) RetryAfter(now time.Time) time.Duration {
	if d.Allowed || d.ResetAt.IsZero() {
		return 0
	}
	wait := d.ResetAt.Sub(now)
	if wait < 0 {
		return 0
	}
	return wait
}

// Backend checks a subject against a policy.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use from many
//   request handlers; any required synchronization lives behind this
//   interface.
// - Errors: an error means the backend is unavailable, not that the subject
//   is over the limit. Callers decide the failure policy (the middleware
//   fails open).
type Backend interface {
	Check(ctx context.Context, subject string, policy Policy) (Decision, error)
}
