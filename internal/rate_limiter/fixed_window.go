package ratelimiter

import (
	"sync"
	"time"

	"github.com/sovanara/cropbox/internal/config"
	"go.uber.org/zap"
)

// FixedWindowRateLimiter counts requests per client within a fixed time
// window. All counters reset together when the window rolls over.
type FixedWindowRateLimiter struct {
	mu          sync.Mutex
	counts      map[string]int
	windowStart time.Time
	cfg         config.RateLimiterConfig
	logger      *zap.SugaredLogger
}

func NewFixedWindowLimiter(cfg config.RateLimiterConfig, logger *zap.SugaredLogger) *FixedWindowRateLimiter {
	return &FixedWindowRateLimiter{
		counts:      make(map[string]int),
		windowStart: time.Now(),
		cfg:         cfg,
		logger:      logger,
	}
}

func (rl *FixedWindowRateLimiter) Enabled() bool {
	return rl.cfg.Enabled
}

// Allow reports whether the client may proceed and, when denied, how long
// until the current window resets.
func (rl *FixedWindowRateLimiter) Allow(client string) (bool, time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	if now.Sub(rl.windowStart) > rl.cfg.TimeFrame {
		rl.counts = make(map[string]int)
		rl.windowStart = now
	}

	if rl.counts[client] >= rl.cfg.RequestsPerTimeFrame {
		retryAfter := rl.cfg.TimeFrame - now.Sub(rl.windowStart)
		rl.logger.Warnf("rate limit exceeded for %s", client)
		return false, retryAfter
	}

	rl.counts[client]++
	return true, 0
}
