package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestMemory_AllowsWithinBurst(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	policy := Policy{Rate: 1, Burst: 3}

	for i := 0; i < 3; i++ {
		dec, err := m.Check(ctx, "subject-1", policy)
		if err != nil {
			t.Fatalf("Check: %v", err)
		}
		if !dec.Allowed {
			t.Fatalf("request %d rejected within burst", i+1)
		}
	}

	dec, err := m.Check(ctx, "subject-1", policy)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if dec.Allowed {
		t.Fatal("request allowed past burst")
	}
	if dec.ResetAt.IsZero() {
		t.Error("rejection carries no reset time")
	}
	if dec.RetryAfter(time.Now()) <= 0 {
		t.Error("RetryAfter not positive on rejection")
	}
}

func TestMemory_SubjectsAreIndependent(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	policy := Policy{Rate: 1, Burst: 1}

	if dec, _ := m.Check(ctx, "a", policy); !dec.Allowed {
		t.Fatal("first request for a rejected")
	}
	if dec, _ := m.Check(ctx, "a", policy); dec.Allowed {
		t.Fatal("second request for a allowed")
	}
	if dec, _ := m.Check(ctx, "b", policy); !dec.Allowed {
		t.Fatal("b throttled by a's bucket")
	}
}

func TestMemory_RefillsOverTime(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	policy := Policy{Rate: 100, Burst: 1}

	if dec, _ := m.Check(ctx, "s", policy); !dec.Allowed {
		t.Fatal("first request rejected")
	}
	if dec, _ := m.Check(ctx, "s", policy); dec.Allowed {
		t.Fatal("second immediate request allowed")
	}

	time.Sleep(20 * time.Millisecond)
	if dec, _ := m.Check(ctx, "s", policy); !dec.Allowed {
		t.Error("bucket did not refill")
	}
}

func TestPolicy_Defaults(t *testing.T) {
	p := Policy{}.withDefaults()
	if p.Rate != 10 || p.Burst != 20 {
		t.Errorf("defaults = %+v", p)
	}
}

func TestDecision_RetryAfter(t *testing.T) {
	now := time.Now()

	if d := (Decision{Allowed: true}); d.RetryAfter(now) != 0 {
		t.Error("allowed decision has retry-after")
	}
	if d := (Decision{ResetAt: now.Add(-time.Second)}); d.RetryAfter(now) != 0 {
		t.Error("past reset yields negative retry-after")
	}
	d := Decision{ResetAt: now.Add(2 * time.Second)}
	if got := d.RetryAfter(now); got != 2*time.Second {
		t.Errorf("RetryAfter = %v, want 2s", got)
	}
}
