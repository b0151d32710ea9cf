package ratelimit

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// Config holds the pacing applied to every key
type Config struct {
	// RequestsPerSecond is the sustained rate per key, zero or less disables limiting
	RequestsPerSecond float64
	// Burst is the number of requests allowed at once, defaults to one
	Burst int
}

// Limiter paces requests independently per key, such as a gateway base url
//
//go:generate mockgen -source=limiter.go -destination=../mocks/ratelimit_limiter.go -package=mocks -mock_names=Limiter=MockRateLimiter
type Limiter interface {
	// Wait blocks until a request for key may proceed or ctx is done
	Wait(ctx context.Context, key string) error
}

type limiter struct {
	config   Config
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

type unlimited struct{}

func (unlimited) Wait(ctx context.Context, _ string) error {
	return ctx.Err()
}

// NewLimiter creates a keyed limiter. Per key token buckets are created on first use.
func NewLimiter(cfg Config) Limiter {
	if cfg.RequestsPerSecond <= 0 {
		return unlimited{}
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}

	return &limiter{
		config:   cfg,
		limiters: make(map[string]*rate.Limiter),
	}
}

func (l *limiter) Wait(ctx context.Context, key string) error {
	return l.get(key).Wait(ctx)
}

func (l *limiter) get(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	lim, ok := l.limiters[key]
	if !ok {
		lim = rate.NewLimiter(rate.Limit(l.config.RequestsPerSecond), l.config.Burst)
		l.limiters[key] = lim
	}
	return lim
}
