// Package slog provides logging decorators for crawler services.
package slog

import (
	"context"
	"log/slog"
	"time"

	crawler "github.com/itisuniqueofficial/advanced-web-crawler"
)

// Ensure LoggingFetcher implements crawler.PageFetcher.
var _ crawler.PageFetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a PageFetcher and logs one line per fetch.
type LoggingFetcher struct {
	next   crawler.PageFetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next crawler.PageFetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the operation.
func (f *LoggingFetcher) Fetch(ctx context.Context, rawURL string, proxy *crawler.Proxy) (page *crawler.Page, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"url", rawURL,
			"duration", time.Since(begin),
		}
		if proxy != nil {
			attrs = append(attrs, "proxy", proxy.URL.Host)
		}
		if page != nil {
			attrs = append(attrs, "bytes", len(page.HTML), "links", len(page.Links))
		}
		attrs = append(attrs, "err", err)
		f.logger.Info("fetch", attrs...)
	}(time.Now())
	return f.next.Fetch(ctx, rawURL, proxy)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
