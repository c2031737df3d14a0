package crawler

import (
	"context"
	"net/url"
)

// Link is an outbound link discovered on a fetched page.
type Link struct {
	// Absolute URL the anchor points at.
	URL string

	// NoFollow is true when "nofollow" appears anywhere in the anchor's
	// rel attribute value set, including multi-valued attributes such as
	// rel="nofollow noopener".
	NoFollow bool
}

// Page is the content of a single fetched page, reduced to the fields the
// crawler records and schedules from.
type Page struct {
	// FinalURL is the URL the fetch ended at after redirects.
	FinalURL string

	// CanonicalURL is the page's rel="canonical" hint, or empty.
	CanonicalURL string

	// HTML is the raw (possibly rendered) page source.
	HTML string

	Title           string
	MetaDescription string
	MetaKeywords    string
	Images          []string

	// Links are the page's outbound anchors, resolved to absolute URLs.
	Links []Link
}

// Proxy identifies an upstream proxy a fetch may be routed through.
type Proxy struct {
	URL *url.URL
}

// ProxyPool selects a proxy for each fetch. The selection strategy
// (round-robin, random, health-aware) is up to the implementation.
type ProxyPool interface {
	// Next returns the proxy to use for the next fetch,
	// or nil to fetch directly.
	Next() *Proxy
}

// PageFetcher retrieves a page and its outbound links.
// Implementations may use plain HTTP or browser automation to handle
// JavaScript-rendered content, and must be safe to call concurrently
// from multiple workers.
type PageFetcher interface {
	// Fetch retrieves the page at rawURL, optionally through proxy.
	// Transient failures return errors with code ETRANSIENT; permanent
	// failures return EFATAL.
	Fetch(ctx context.Context, rawURL string, proxy *Proxy) (*Page, error)

	// Close releases fetcher resources (connections, browsers).
	Close() error
}

// Extractor parses HTML into a Page. The baseURL is used to resolve
// relative hrefs and image sources.
type Extractor interface {
	Extract(html string, baseURL string) (*Page, error)
}

// SeedSource discovers additional seed URLs for a site, for example from
// its sitemaps.
type SeedSource interface {
	Discover(ctx context.Context, siteURL string) ([]string, error)
}
