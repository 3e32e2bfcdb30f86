// Package ratelimit paces outbound requests to public genomics APIs and
// provides retry backoff for throttled responses.
package ratelimit

import (
	"context"
	"time"
)

// Limiter paces requests and advises on retry timing.
type Limiter interface {
	// Wait blocks until the next request may be sent or ctx is canceled.
	Wait(ctx context.Context) error
	// Allow reports whether a request may be sent immediately.
	Allow() bool
	// RetryAfter returns the backoff before retry number attempt (1-based).
	RetryAfter(attempt int) time.Duration
	// ShouldRetry reports whether retry number attempt is within the
	// configured maximum.
	ShouldRetry(attempt int) bool
	// Reset clears pacing state.
	Reset()
}

// Strategy selects the pacing algorithm.
type Strategy string

const (
	StrategyTokenBucket Strategy = "token_bucket"
	StrategyFixedDelay  Strategy = "fixed_delay"
)

// Config holds limiter configuration, loadable from YAML.
type Config struct {
	Strategy          Strategy      `yaml:"strategy" json:"strategy"`
	RequestsPerSec    float64       `yaml:"requests_per_second" json:"requests_per_second"`
	Burst             int           `yaml:"burst" json:"burst"`
	FixedDelay        time.Duration `yaml:"fixed_delay" json:"fixed_delay"`
	MaxRetries        int           `yaml:"max_retries" json:"max_retries"`
	InitialBackoff    time.Duration `yaml:"initial_backoff" json:"initial_backoff"`
	MaxBackoff        time.Duration `yaml:"max_backoff" json:"max_backoff"`
	BackoffMultiplier float64       `yaml:"backoff_multiplier" json:"backoff_multiplier"`
}

// DefaultConfig returns pacing suitable for the Ensembl REST API, which allows
// 15 requests per second for anonymous clients.
func DefaultConfig() Config {
	return Config{
		Strategy:          StrategyTokenBucket,
		RequestsPerSec:    10.0,
		Burst:             10,
		FixedDelay:        200 * time.Millisecond,
		MaxRetries:        4,
		InitialBackoff:    time.Second,
		MaxBackoff:        30 * time.Second,
		BackoffMultiplier: 2.0,
	}
}

func applyDefaults(cfg Config) Config {
	def := DefaultConfig()
	if cfg.Strategy == "" {
		cfg.Strategy = def.Strategy
	}
	if cfg.RequestsPerSec <= 0 {
		cfg.RequestsPerSec = def.RequestsPerSec
	}
	if cfg.Burst <= 0 {
		cfg.Burst = def.Burst
	}
	if cfg.FixedDelay <= 0 {
		cfg.FixedDelay = def.FixedDelay
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = def.MaxRetries
	}
	if cfg.InitialBackoff <= 0 {
		cfg.InitialBackoff = def.InitialBackoff
	}
	if cfg.MaxBackoff <= 0 {
		cfg.MaxBackoff = def.MaxBackoff
	}
	if cfg.BackoffMultiplier <= 1 {
		cfg.BackoffMultiplier = def.BackoffMultiplier
	}
	return cfg
}

// New creates a limiter for the configured strategy.
func New(cfg Config) Limiter {
	cfg = applyDefaults(cfg)
	if cfg.Strategy == StrategyFixedDelay {
		return newFixedDelay(cfg)
	}
	return newTokenBucket(cfg)
}

// backoff computes capped exponential backoff for the given 1-based attempt.
func backoff(attempt int, cfg Config) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	d := cfg.InitialBackoff
	for i := 1; i < attempt; i++ {
		d = time.Duration(float64(d) * cfg.BackoffMultiplier)
		if d >= cfg.MaxBackoff {
			return cfg.MaxBackoff
		}
	}
	if d > cfg.MaxBackoff {
		return cfg.MaxBackoff
	}
	return d
}
