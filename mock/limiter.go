package mock

import (
	"context"
	"net/url"

	crawler "github.com/itisuniqueofficial/advanced-web-crawler"
)

var _ crawler.HostLimiter = (*HostLimiter)(nil)

// HostLimiter is a mock implementation of crawler.HostLimiter.
type HostLimiter struct {
	WaitFn func(ctx context.Context, host string) error
}

func (l *HostLimiter) Wait(ctx context.Context, host string) error {
	return l.WaitFn(ctx, host)
}

var _ crawler.TrapDetector = (*TrapDetector)(nil)

// TrapDetector is a mock implementation of crawler.TrapDetector.
type TrapDetector struct {
	IsSuspiciousFn func(u *url.URL) bool
	ObserveFn      func(u *url.URL)
}

func (d *TrapDetector) IsSuspicious(u *url.URL) bool {
	return d.IsSuspiciousFn(u)
}

func (d *TrapDetector) Observe(u *url.URL) {
	if d.ObserveFn != nil {
		d.ObserveFn(u)
	}
}

var _ crawler.ProxyPool = (*ProxyPool)(nil)

// ProxyPool is a mock implementation of crawler.ProxyPool.
type ProxyPool struct {
	NextFn func() *crawler.Proxy
}

func (p *ProxyPool) Next() *crawler.Proxy {
	return p.NextFn()
}

var _ crawler.SeedSource = (*SeedSource)(nil)

// SeedSource is a mock implementation of crawler.SeedSource.
type SeedSource struct {
	DiscoverFn func(ctx context.Context, siteURL string) ([]string, error)
}

func (s *SeedSource) Discover(ctx context.Context, siteURL string) ([]string, error) {
	return s.DiscoverFn(ctx, siteURL)
}
