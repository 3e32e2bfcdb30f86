package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestTokenBucketAllowAndRefill(t *testing.T) {
	tb := newTokenBucket(applyDefaults(Config{RequestsPerSec: 5, Burst: 5}))

	for i := 0; i < 5; i++ {
		if !tb.Allow() {
			t.Fatalf("expected token available at %d", i)
		}
	}
	if tb.Allow() {
		t.Fatalf("expected no token after burst")
	}

	time.Sleep(250 * time.Millisecond)
	if !tb.Allow() {
		t.Fatalf("expected token after partial refill")
	}
}

func TestTokenBucketWaitRespectsContext(t *testing.T) {
	tb := newTokenBucket(applyDefaults(Config{RequestsPerSec: 1, Burst: 1}))

	if !tb.Allow() {
		t.Fatalf("expected first token")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if err := tb.Wait(ctx); err == nil {
		t.Fatalf("expected timeout")
	}
}

func TestFixedDelay(t *testing.T) {
	delay := 50 * time.Millisecond
	fd := newFixedDelay(applyDefaults(Config{Strategy: StrategyFixedDelay, FixedDelay: delay}))

	if !fd.Allow() {
		t.Fatalf("expected first allow")
	}
	if fd.Allow() {
		t.Fatalf("expected second call to be paced")
	}

	time.Sleep(delay + 10*time.Millisecond)
	if !fd.Allow() {
		t.Fatalf("expected allow after delay elapsed")
	}
}

func TestBackoffBounds(t *testing.T) {
	cfg := applyDefaults(Config{InitialBackoff: time.Second, MaxBackoff: 10 * time.Second, BackoffMultiplier: 2, MaxRetries: 5})

	prev := time.Duration(0)
	for attempt := 1; attempt <= 5; attempt++ {
		d := backoff(attempt, cfg)
		if d <= 0 {
			t.Fatalf("backoff should be positive")
		}
		if d > cfg.MaxBackoff {
			t.Fatalf("backoff should cap at max")
		}
		if d < prev {
			t.Fatalf("backoff should not decrease")
		}
		prev = d
	}

	if d := backoff(20, cfg); d != cfg.MaxBackoff {
		t.Fatalf("expected max backoff for large attempt, got %v", d)
	}
}

func TestShouldRetryHonorsMaxRetries(t *testing.T) {
	lim := New(Config{MaxRetries: 2})

	if !lim.ShouldRetry(1) || !lim.ShouldRetry(2) {
		t.Fatalf("expected retries within the limit to be allowed")
	}
	if lim.ShouldRetry(3) {
		t.Fatalf("expected retry 3 to be rejected with MaxRetries=2")
	}

	fd := New(Config{Strategy: StrategyFixedDelay, MaxRetries: 1})
	if !fd.ShouldRetry(1) || fd.ShouldRetry(2) {
		t.Fatalf("fixed delay limiter ignores MaxRetries")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := applyDefaults(Config{})
	if cfg.Strategy != StrategyTokenBucket {
		t.Fatalf("expected token bucket default")
	}
	if cfg.RequestsPerSec <= 0 || cfg.Burst <= 0 {
		t.Fatalf("expected positive pacing defaults")
	}
	if cfg.BackoffMultiplier <= 1 {
		t.Fatalf("expected multiplier above 1")
	}
}
