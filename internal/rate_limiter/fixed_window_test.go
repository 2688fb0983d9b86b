package ratelimiter

import (
	"testing"
	"time"

	"github.com/sovanara/cropbox/internal/config"
	"go.uber.org/zap"
)

func newTestLimiter(limit int, frame time.Duration) *FixedWindowRateLimiter {
	return NewFixedWindowLimiter(config.RateLimiterConfig{
		RequestsPerTimeFrame: limit,
		TimeFrame:            frame,
		Enabled:              true,
	}, zap.NewNop().Sugar())
}

func TestFixedWindowAllowsUpToLimit(t *testing.T) {
	rl := newTestLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		if ok, _ := rl.Allow("10.0.0.1"); !ok {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}

	ok, retryAfter := rl.Allow("10.0.0.1")
	if ok {
		t.Fatal("request over the limit should be denied")
	}
	if retryAfter <= 0 || retryAfter > time.Minute {
		t.Errorf("retryAfter = %v, want within the window", retryAfter)
	}
}

func TestFixedWindowSeparatesClients(t *testing.T) {
	rl := newTestLimiter(1, time.Minute)

	if ok, _ := rl.Allow("10.0.0.1"); !ok {
		t.Fatal("first client should be allowed")
	}
	if ok, _ := rl.Allow("10.0.0.2"); !ok {
		t.Error("second client must have its own budget")
	}
}

func TestFixedWindowResets(t *testing.T) {
	rl := newTestLimiter(1, 10*time.Millisecond)

	if ok, _ := rl.Allow("10.0.0.1"); !ok {
		t.Fatal("first request should be allowed")
	}
	if ok, _ := rl.Allow("10.0.0.1"); ok {
		t.Fatal("second request in the same window should be denied")
	}

	time.Sleep(20 * time.Millisecond)

	if ok, _ := rl.Allow("10.0.0.1"); !ok {
		t.Error("request after the window rolled over should be allowed")
	}
}
