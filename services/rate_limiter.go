package services

import (
	"context"
	"sync"
	"time"
)

// RateLimiter serializes outbound evaluator calls, enforcing a minimum
// interval between them. Callers that arrive early block cooperatively
// until the interval elapses; this is the only intentional blocking point
// in the engine.
type RateLimiter struct {
	mu       sync.Mutex
	interval time.Duration
	lastCall time.Time

	// injected for tests
	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

func NewRateLimiter(interval time.Duration) *RateLimiter {
	return &RateLimiter{
		interval: interval,
		now:      time.Now,
		sleep:    sleepContext,
	}
}

// Wait blocks until the minimum interval since the previous call has
// elapsed, then claims the slot. Returns the context error if ctx is
// cancelled while waiting.
func (rl *RateLimiter) Wait(ctx context.Context) error {
	rl.mu.Lock()
	now := rl.now()
	wait := rl.interval - now.Sub(rl.lastCall)
	if wait < 0 {
		wait = 0
	}
	// Claim the slot before sleeping so concurrent callers queue up
	// behind this one instead of racing for the same window.
	rl.lastCall = now.Add(wait)
	rl.mu.Unlock()

	if wait == 0 {
		return nil
	}
	return rl.sleep(ctx, wait)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
