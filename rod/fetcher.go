// Package rod fetches pages through a headless Chrome browser, for sites
// that only produce their content (and links) after executing JavaScript.
package rod

import (
	"context"

	"github.com/go-rod/rod/lib/proto"
	crawler "github.com/itisuniqueofficial/advanced-web-crawler"
)

var _ crawler.PageFetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML using Chrome browser automation and parses
// it with the configured extractor. The per-fetch proxy argument is ignored:
// Chrome takes its proxy as a launch flag, so a proxy must be set on the
// BrowserManager instead.
//
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	manager   *BrowserManager
	extractor crawler.Extractor
}

// NewFetcher creates a Fetcher on top of an existing BrowserManager.
func NewFetcher(manager *BrowserManager, extractor crawler.Extractor) *Fetcher {
	return &Fetcher{manager: manager, extractor: extractor}
}

// Fetch navigates to the URL, waits for the page to load, and extracts the
// rendered document.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string, _ *crawler.Proxy) (*crawler.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, crawler.Errorf(crawler.ECANCELED, "fetch canceled: %v", err)
	}

	page, err := f.manager.Browser().Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, crawler.Errorf(crawler.ETRANSIENT, "opening browser page: %v", err)
	}
	defer page.Close()

	page = page.Context(ctx)

	if err := page.Navigate(rawURL); err != nil {
		return nil, classifyBrowserError(ctx, rawURL, err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, classifyBrowserError(ctx, rawURL, err)
	}

	html, err := page.HTML()
	if err != nil {
		return nil, classifyBrowserError(ctx, rawURL, err)
	}

	// Redirects may have landed somewhere other than rawURL.
	finalURL := rawURL
	if info, err := page.Info(); err == nil && info.URL != "" {
		finalURL = info.URL
	}

	extracted, err := f.extractor.Extract(html, finalURL)
	if err != nil {
		return nil, err
	}
	extracted.FinalURL = finalURL
	extracted.HTML = html

	f.manager.IncrementPageCount()
	return extracted, nil
}

// Close releases browser resources.
func (f *Fetcher) Close() error {
	return f.manager.Close()
}

func classifyBrowserError(ctx context.Context, rawURL string, err error) error {
	if ctx.Err() != nil {
		return crawler.Errorf(crawler.ECANCELED, "fetching %s: %v", rawURL, ctx.Err())
	}
	return crawler.Errorf(crawler.ETRANSIENT, "fetching %s: %v", rawURL, err)
}
