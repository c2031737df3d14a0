// Package http provides an HTTP-based implementation of crawler.PageFetcher
// for fetching static pages that don't require JavaScript rendering.
package http

import (
	"context"
	"crypto/tls"
	"errors"
	"io"
	"net/http"
	"net/url"
	"time"

	crawler "github.com/itisuniqueofficial/advanced-web-crawler"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 10 * time.Second

// DefaultUserAgent mimics a desktop browser; many sites serve reduced or
// blocked content to obvious bots.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/58.0.3029.110 Safari/537.36"

// maxBodySize caps how much of a response body is read.
const maxBodySize = 10 << 20 // 10 MiB

// Ensure Fetcher implements crawler.PageFetcher at compile time.
var _ crawler.PageFetcher = (*Fetcher)(nil)

// Fetcher retrieves pages over plain HTTP. It does not execute JavaScript;
// use the rod package for sites that require rendering. Fetcher is safe
// for concurrent use by multiple workers, including with distinct proxies
// per fetch.
type Fetcher struct {
	client    *http.Client
	extractor crawler.Extractor
	userAgent string
	timeout   time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with each request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// NewFetcher creates an HTTP-based Fetcher that parses responses with
// extractor.
func NewFetcher(extractor crawler.Extractor, opts ...Option) *Fetcher {
	f := &Fetcher{
		extractor: extractor,
		userAgent: DefaultUserAgent,
		timeout:   DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}

	// The proxy is chosen per fetch, so the transport reads it from the
	// request context instead of being configured once.
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.Proxy = proxyFromContext

	f.client = &http.Client{
		Timeout:   f.timeout,
		Transport: transport,
	}

	return f
}

// Fetch retrieves and parses the page at rawURL, optionally through proxy.
// Timeouts, connection failures, 5xx, and 429 responses return ETRANSIENT;
// other 4xx and certificate failures return EFATAL.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string, proxy *crawler.Proxy) (*crawler.Page, error) {
	if proxy != nil && proxy.URL != nil {
		ctx = context.WithValue(ctx, proxyContextKey{}, proxy.URL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, crawler.Errorf(crawler.EINVALID, "building request for %s: %v", rawURL, err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, classifyTransportError(ctx, rawURL, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, crawler.Errorf(crawler.ETRANSIENT, "HTTP %d for %s", resp.StatusCode, rawURL)
	case resp.StatusCode >= 400:
		return nil, crawler.Errorf(crawler.EFATAL, "HTTP %d for %s", resp.StatusCode, rawURL)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, crawler.Errorf(crawler.ETRANSIENT, "reading body of %s: %v", rawURL, err)
	}

	finalURL := resp.Request.URL.String()
	page, err := f.extractor.Extract(string(body), finalURL)
	if err != nil {
		return nil, err
	}
	page.FinalURL = finalURL

	return page, nil
}

// Close releases idle connections held by the underlying client.
func (f *Fetcher) Close() error {
	f.client.CloseIdleConnections()
	return nil
}

// classifyTransportError maps client errors onto the crawler's retry
// taxonomy: cancellation propagates, certificate failures are fatal,
// everything else (DNS, refused connections, timeouts) is transient.
func classifyTransportError(ctx context.Context, rawURL string, err error) error {
	if ctx.Err() != nil {
		return crawler.Errorf(crawler.ECANCELED, "fetch of %s canceled: %v", rawURL, ctx.Err())
	}
	var certErr *tls.CertificateVerificationError
	if errors.As(err, &certErr) {
		return crawler.Errorf(crawler.EFATAL, "TLS failure for %s: %v", rawURL, err)
	}
	return crawler.Errorf(crawler.ETRANSIENT, "fetching %s: %v", rawURL, err)
}

// proxyContextKey carries the per-fetch proxy URL through to the transport.
type proxyContextKey struct{}

func proxyFromContext(req *http.Request) (*url.URL, error) {
	if u, ok := req.Context().Value(proxyContextKey{}).(*url.URL); ok {
		return u, nil
	}
	return nil, nil
}
