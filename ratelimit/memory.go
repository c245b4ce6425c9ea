package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Memory is an in-process Backend with one token bucket per subject.
// It is intended for development, tests, and single-instance deployments;
// multi-instance deployments should back this interface with a shared store.
type Memory struct {
	mu        sync.Mutex
	buckets   map[string]*bucket
	ttl       time.Duration
	lastSweep time.Time
}

type bucket struct {
	lim  *rate.Limiter
	seen time.Time
}

// NewMemory creates an in-memory backend. Buckets idle longer than five
// minutes are dropped during periodic sweeps.
func NewMemory() *Memory {
	return &Memory{
		buckets:   make(map[string]*bucket),
		ttl:       5 * time.Minute,
		lastSweep: time.Now(),
	}
}

// Check consumes one token from the subject's bucket.
func (m *Memory) Check(_ context.Context, subject string, policy Policy) (Decision, error) {
	policy = policy.withDefaults()
	now := time.Now()

	m.mu.Lock()
	defer m.mu.Unlock()

	m.sweepLocked(now)

	b, ok := m.buckets[subject]
	if !ok {
		b = &bucket{lim: rate.NewLimiter(rate.Limit(policy.Rate), policy.Burst)}
		m.buckets[subject] = b
	}
	b.seen = now

	if b.lim.Allow() {
		return Decision{
			Allowed:   true,
			Remaining: int(b.lim.Tokens()),
		}, nil
	}

	// One token's worth of waiting is enough to retry.
	retry := time.Duration(float64(time.Second) / policy.Rate)
	return Decision{
		Allowed: false,
		ResetAt: now.Add(retry),
	}, nil
}

// sweepLocked drops idle buckets at most once a minute. Caller holds mu.
func (m *Memory) sweepLocked(now time.Time) {
	if now.Sub(m.lastSweep) < time.Minute {
		return
	}
	m.lastSweep = now
	for subject, b := range m.buckets {
		if now.Sub(b.seen) > m.ttl {
			delete(m.buckets, subject)
		}
	}
}

var _ Backend = (*Memory)(nil)
