package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestLimiter_New(t *testing.T) {
	limiter := NewLimiter(10, 5)
	if limiter.defaultBurst != 5 {
		t.Errorf("expected burst 5, got %d", limiter.defaultBurst)
	}

	l2 := NewLimiter(10, -1)
	if l2.defaultBurst != 5 {
		t.Errorf("expected default burst 5 for negative input, got %d", l2.defaultBurst)
	}
}

func TestLimiter_AllowBurst(t *testing.T) {
	limiter := NewLimiter(0.001, 2)

	if !limiter.Allow("10.0.0.1") || !limiter.Allow("10.0.0.1") {
		t.Fatal("expected burst of 2 to be allowed")
	}
	if limiter.Allow("10.0.0.1") {
		t.Error("expected third request to be limited")
	}

	// Other keys have their own bucket
	if !limiter.Allow("10.0.0.2") {
		t.Error("expected separate key to be allowed")
	}
	if limiter.Len() != 2 {
		t.Errorf("expected 2 tracked keys, got %d", limiter.Len())
	}
}

func TestLimiter_Disabled(t *testing.T) {
	limiter := NewLimiter(0, 1)
	for i := 0; i < 100; i++ {
		if !limiter.Allow("client") {
			t.Fatalf("expected unlimited requests, blocked at %d", i)
		}
	}
}

func TestLimiter_Wait(t *testing.T) {
	limiter := NewLimiter(100, 1)
	ctx := context.Background()

	if err := limiter.Wait(ctx, "client"); err != nil {
		t.Errorf("wait failed: %v", err)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if err := limiter.Wait(cancelled, "client"); err == nil {
		t.Error("expected error for cancelled context")
	}
}

func TestLimiter_SetKeyRate(t *testing.T) {
	limiter := NewLimiter(0.001, 1)
	limiter.SetKeyRate("trusted", 1000, 50)

	for i := 0; i < 50; i++ {
		if !limiter.Allow("trusted") {
			t.Fatalf("expected custom burst, blocked at %d", i)
		}
	}
}

func TestLimiter_Prune(t *testing.T) {
	limiter := NewLimiter(10, 1)
	now := time.Now()
	limiter.now = func() time.Time { return now }

	limiter.Allow("old")
	now = now.Add(time.Hour)
	limiter.Allow("fresh")

	limiter.Prune()
	if limiter.Len() != 1 {
		t.Errorf("expected 1 key after prune, got %d", limiter.Len())
	}
}
