package worker

import (
	"context"
	"testing"
	"time"
)

func TestLimiter_New(t *testing.T) {
	if l := NewLimiter(10, 5); l.defaultBurst != 5 {
		t.Errorf("expected burst 5, got %d", l.defaultBurst)
	}
	if l := NewLimiter(10, -1); l.defaultBurst != 5 {
		t.Errorf("expected default burst 5 for negative input, got %d", l.defaultBurst)
	}
}

func TestLimiter_Wait(t *testing.T) {
	limiter := NewLimiter(100, 1)
	ctx := context.Background()

	if err := limiter.Wait(ctx, "en"); err != nil {
		t.Errorf("wait failed: %v", err)
	}
	if err := limiter.Wait(ctx, "fr"); err != nil {
		t.Errorf("wait failed: %v", err)
	}
}

func TestLimiter_PerLanguage(t *testing.T) {
	limiter := NewLimiter(1, 1)

	if !limiter.Allow("en") {
		t.Error("first request should pass")
	}
	if limiter.Allow("en") {
		t.Error("expected allow to fail with exhausted tokens")
	}
	if !limiter.Allow("fr") {
		t.Error("other language should have its own bucket")
	}
}

func TestLimiter_Unlimited(t *testing.T) {
	limiter := NewLimiter(0, 1)
	for i := 0; i < 100; i++ {
		if !limiter.Allow("en") {
			t.Fatalf("request %d refused by unlimited limiter", i)
		}
	}
}

func TestLimiter_SetRate(t *testing.T) {
	limiter := NewLimiter(10, 10)
	limiter.SetRate("zh", 0.1, 1)

	if !limiter.Allow("zh") {
		t.Error("first request should pass")
	}
	if limiter.Allow("zh") {
		t.Error("second request should fail")
	}
	if !limiter.Allow("ja") {
		t.Error("other language should pass")
	}
}

func TestLimiter_WaitHonorsContext(t *testing.T) {
	limiter := NewLimiter(0.01, 1)
	limiter.Allow("en")

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if err := limiter.Wait(ctx, "en"); err == nil {
		t.Error("expected wait to fail once the context expires")
	}
}
