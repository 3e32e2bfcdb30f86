package ratelimit

import (
	"context"
	"sync"
	"time"
)

type fixedDelay struct {
	mu   sync.Mutex
	next time.Time
	cfg  Config
}

func newFixedDelay(cfg Config) *fixedDelay {
	return &fixedDelay{cfg: cfg}
}

func (fd *fixedDelay) Wait(ctx context.Context) error {
	fd.mu.Lock()
	now := time.Now()
	wait := fd.next.Sub(now)
	if wait < 0 {
		wait = 0
	}
	fd.next = now.Add(wait + fd.cfg.FixedDelay)
	fd.mu.Unlock()

	if wait == 0 {
		return nil
	}

	timer := time.NewTimer(wait)
	select {
	case <-ctx.Done():
		timer.Stop()
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (fd *fixedDelay) Allow() bool {
	fd.mu.Lock()
	defer fd.mu.Unlock()

	now := time.Now()
	if now.Before(fd.next) {
		return false
	}
	fd.next = now.Add(fd.cfg.FixedDelay)
	return true
}

func (fd *fixedDelay) RetryAfter(attempt int) time.Duration {
	return backoff(attempt, fd.cfg)
}

func (fd *fixedDelay) ShouldRetry(attempt int) bool {
	return attempt <= fd.cfg.MaxRetries
}

func (fd *fixedDelay) Reset() {
	fd.mu.Lock()
	defer fd.mu.Unlock()
	fd.next = time.Time{}
}
