package services

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"alfredoptarigan/ats-analyzer/internal/config"
)

// Pacer is the backpressure policy applied between consecutive completion calls.
type Pacer interface {
	Wait(ctx context.Context) error
}

// FixedIntervalPacer sleeps for a constant interval, returning early on cancellation.
type FixedIntervalPacer struct {
	Interval time.Duration
}

func (p FixedIntervalPacer) Wait(ctx context.Context) error {
	if p.Interval <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(p.Interval)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// RateLimitPacer is a token bucket: bursts of up to burst calls, refilled once per interval.
type RateLimitPacer struct {
	limiter *rate.Limiter
}

func NewRateLimitPacer(interval time.Duration, burst int) *RateLimitPacer {
	if burst < 1 {
		burst = 1
	}

	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}

	return &RateLimitPacer{limiter: rate.NewLimiter(limit, burst)}
}

func (p *RateLimitPacer) Wait(ctx context.Context) error {
	return p.limiter.Wait(ctx)
}

// PacerFactory hands each batch its own pacer, so concurrent batches never share a bucket.
type PacerFactory func() Pacer

// NewPacer builds the pacer selected by BATCH_PACING.
func NewPacer(cfg config.BatchConfig) Pacer {
	if cfg.Pacing == config.PacingRateLimit {
		return NewRateLimitPacer(cfg.PacingInterval, cfg.Burst)
	}
	return FixedIntervalPacer{Interval: cfg.PacingInterval}
}

func NewPacerFactory(cfg config.BatchConfig) PacerFactory {
	return func() Pacer {
		return NewPacer(cfg)
	}
}
