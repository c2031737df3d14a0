package crawl

import (
	"context"
	"log/slog"
	"time"

	crawler "github.com/itisuniqueofficial/advanced-web-crawler"
)

// DefaultRetryDelays returns the backoff delays for transient fetch
// failures: 1s then 2s, for three attempts in total.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second}
}

// FetchWithRetry fetches url through fetcher, retrying transient failures
// (network timeouts, 5xx, 429) with the given backoff delays. Fatal
// failures return immediately. The number of attempts is len(delays)+1.
//
// Each retry is logged at debug level.
func FetchWithRetry(
	ctx context.Context,
	fetcher crawler.PageFetcher,
	url string,
	proxy *crawler.Proxy,
	logger *slog.Logger,
	delays []time.Duration,
) (*crawler.Page, error) {
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		page, err := fetcher.Fetch(ctx, url, proxy)
		if err == nil {
			return page, nil
		}
		lastErr = err

		if crawler.ErrorCode(err) != crawler.ETRANSIENT {
			return nil, err
		}
		if attempt >= maxAttempts-1 {
			break
		}

		logger.DebugContext(ctx, "retrying fetch",
			"url", url,
			"attempt", attempt+2,
			"delay", delays[attempt],
			"err", err,
		)

		select {
		case <-ctx.Done():
			return nil, crawler.Errorf(crawler.ECANCELED, "fetch canceled: %v", ctx.Err())
		case <-time.After(delays[attempt]):
		}
	}

	return nil, lastErr
}
