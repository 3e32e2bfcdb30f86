package ratelimit

import (
	"context"
	"sync"
	"time"
)

type tokenBucket struct {
	mu     sync.Mutex
	tokens float64
	last   time.Time
	cfg    Config
}

func newTokenBucket(cfg Config) *tokenBucket {
	return &tokenBucket{
		tokens: float64(cfg.Burst),
		last:   time.Now(),
		cfg:    cfg,
	}
}

func (tb *tokenBucket) Wait(ctx context.Context) error {
	for {
		tb.mu.Lock()
		tb.refill(time.Now())
		if tb.tokens >= 1 {
			tb.tokens--
			tb.mu.Unlock()
			return nil
		}
		deficit := 1 - tb.tokens
		wait := time.Duration(deficit / tb.cfg.RequestsPerSec * float64(time.Second))
		tb.mu.Unlock()

		timer := time.NewTimer(wait + time.Millisecond)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

func (tb *tokenBucket) Allow() bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	tb.refill(time.Now())
	if tb.tokens >= 1 {
		tb.tokens--
		return true
	}
	return false
}

func (tb *tokenBucket) RetryAfter(attempt int) time.Duration {
	return backoff(attempt, tb.cfg)
}

func (tb *tokenBucket) ShouldRetry(attempt int) bool {
	return attempt <= tb.cfg.MaxRetries
}

func (tb *tokenBucket) Reset() {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	tb.tokens = float64(tb.cfg.Burst)
	tb.last = time.Now()
}

// refill credits tokens for elapsed time; call with the lock held.
func (tb *tokenBucket) refill(now time.Time) {
	elapsed := now.Sub(tb.last)
	if elapsed <= 0 {
		return
	}
	tb.tokens += elapsed.Seconds() * tb.cfg.RequestsPerSec
	if limit := float64(tb.cfg.Burst); tb.tokens > limit {
		tb.tokens = limit
	}
	tb.last = now
}
