package crawl

import (
	"context"
	"sync"
	"time"

	crawler "github.com/itisuniqueofficial/advanced-web-crawler"
	"golang.org/x/time/rate"
)

var _ crawler.HostLimiter = (*HostLimiter)(nil)

// HostLimiter paces fetches per host using token buckets. Each host gets
// its own limiter with a burst of 1, so consecutive fetches to the same
// host are at least minInterval apart while different hosts proceed
// independently.
type HostLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	interval time.Duration
}

// NewHostLimiter creates a HostLimiter enforcing minInterval between
// fetches to the same host. A non-positive interval disables pacing.
func NewHostLimiter(minInterval time.Duration) *HostLimiter {
	return &HostLimiter{
		limiters: make(map[string]*rate.Limiter),
		interval: minInterval,
	}
}

// Wait blocks until a fetch to host may proceed.
// Returns an error if ctx is canceled before the wait completes.
func (l *HostLimiter) Wait(ctx context.Context, host string) error {
	if l.interval <= 0 {
		return ctx.Err()
	}

	l.mu.Lock()
	limiter, ok := l.limiters[host]
	if !ok {
		limiter = rate.NewLimiter(rate.Every(l.interval), 1)
		l.limiters[host] = limiter
	}
	l.mu.Unlock()

	return limiter.Wait(ctx)
}
