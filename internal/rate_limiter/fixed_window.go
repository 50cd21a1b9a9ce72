package ratelimiter

import (
	"sync"
	"time"

	"certwizard/internal/config"
	"go.uber.org/zap"
)

// FixedWindowRateLimiter counts requests per client within a fixed time
// frame. When the frame expires the count starts over.
type FixedWindowRateLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientWindow

	limit     int
	timeFrame time.Duration
	enabled   bool
	logger    *zap.SugaredLogger
}

type clientWindow struct {
	count      int
	windowsEnd time.Time
}

func NewFixedWindowLimiter(cfg config.RateLimiterConfig, logger *zap.SugaredLogger) *FixedWindowRateLimiter {
	return &FixedWindowRateLimiter{
		clients:   make(map[string]*clientWindow),
		limit:     cfg.RequestsPerTimeFrame,
		timeFrame: cfg.TimeFrame,
		enabled:   cfg.Enabled,
		logger:    logger,
	}
}

// Allow reports whether the client may perform another request, and when
// denied, how long until its window resets.
func (rl *FixedWindowRateLimiter) Allow(clientId string) (bool, time.Duration) {
	if !rl.enabled {
		return true, 0
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	window, ok := rl.clients[clientId]
	if !ok || now.After(window.windowsEnd) {
		rl.clients[clientId] = &clientWindow{count: 1, windowsEnd: now.Add(rl.timeFrame)}
		return true, 0
	}

	if window.count >= rl.limit {
		rl.logger.Debugf("Rate limit exceeded for client %s", clientId)
		return false, time.Until(window.windowsEnd)
	}

	window.count++
	return true, 0
}
