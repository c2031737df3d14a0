// Package mock provides hand-written mocks for the crawler's domain
// interfaces, for use in tests.
package mock

import (
	"context"

	crawler "github.com/itisuniqueofficial/advanced-web-crawler"
)

var _ crawler.PageFetcher = (*PageFetcher)(nil)

// PageFetcher is a mock implementation of crawler.PageFetcher.
type PageFetcher struct {
	FetchFn func(ctx context.Context, rawURL string, proxy *crawler.Proxy) (*crawler.Page, error)
	CloseFn func() error
}

func (f *PageFetcher) Fetch(ctx context.Context, rawURL string, proxy *crawler.Proxy) (*crawler.Page, error) {
	return f.FetchFn(ctx, rawURL, proxy)
}

func (f *PageFetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}

var _ crawler.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of crawler.Extractor.
type Extractor struct {
	ExtractFn func(html string, baseURL string) (*crawler.Page, error)
}

func (e *Extractor) Extract(html string, baseURL string) (*crawler.Page, error) {
	return e.ExtractFn(html, baseURL)
}
