package http

import (
	"bufio"
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/beevik/etree"
	crawler "github.com/itisuniqueofficial/advanced-web-crawler"
)

// maxSitemaps bounds sitemap-index recursion against hostile or broken
// indexes that reference themselves.
const maxSitemaps = 100

// Ensure SeedDiscoverer implements crawler.SeedSource.
var _ crawler.SeedSource = (*SeedDiscoverer)(nil)

// SeedDiscoverer expands a site URL into seed URLs listed in the site's
// sitemaps. Sitemap locations come from robots.txt Sitemap directives,
// falling back to /sitemap.xml.
type SeedDiscoverer struct {
	client *http.Client
}

// NewSeedDiscoverer creates a SeedDiscoverer with the given HTTP client.
// If client is nil, http.DefaultClient is used.
func NewSeedDiscoverer(client *http.Client) *SeedDiscoverer {
	if client == nil {
		client = http.DefaultClient
	}
	return &SeedDiscoverer{client: client}
}

// Discover returns the URLs listed in siteURL's sitemaps. A site without
// sitemaps returns an empty slice, not an error.
func (s *SeedDiscoverer) Discover(ctx context.Context, siteURL string) ([]string, error) {
	base, err := url.Parse(siteURL)
	if err != nil || base.Host == "" {
		return nil, crawler.Errorf(crawler.EINVALID, "invalid site URL %q", siteURL)
	}

	sitemaps := s.sitemapLocations(ctx, base)
	if len(sitemaps) == 0 {
		return []string{}, nil
	}

	var urls []string
	seenSitemaps := make(map[string]bool)
	seenURLs := make(map[string]bool)
	for len(sitemaps) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, crawler.Errorf(crawler.ECANCELED, "seed discovery canceled: %v", err)
		}

		loc := sitemaps[0]
		sitemaps = sitemaps[1:]
		if seenSitemaps[loc] || len(seenSitemaps) >= maxSitemaps {
			continue
		}
		seenSitemaps[loc] = true

		pages, children, err := s.readSitemap(ctx, loc)
		if err != nil {
			continue // a broken sitemap doesn't fail discovery
		}
		sitemaps = append(sitemaps, children...)
		for _, u := range pages {
			if !seenURLs[u] {
				seenURLs[u] = true
				urls = append(urls, u)
			}
		}
	}

	return urls, nil
}

// sitemapLocations finds sitemap URLs from robots.txt, falling back to the
// conventional /sitemap.xml location.
func (s *SeedDiscoverer) sitemapLocations(ctx context.Context, base *url.URL) []string {
	robotsURL := base.ResolveReference(&url.URL{Path: "/robots.txt"})
	if body, err := s.get(ctx, robotsURL.String()); err == nil {
		defer body.Close()
		var locations []string
		scanner := bufio.NewScanner(body)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if strings.HasPrefix(strings.ToLower(line), "sitemap:") {
				if loc := strings.TrimSpace(line[len("sitemap:"):]); loc != "" {
					locations = append(locations, loc)
				}
			}
		}
		if len(locations) > 0 {
			return locations
		}
	}

	return []string{base.ResolveReference(&url.URL{Path: "/sitemap.xml"}).String()}
}

// readSitemap parses one sitemap document, returning page URLs and, for
// sitemap indexes, the child sitemap locations.
func (s *SeedDiscoverer) readSitemap(ctx context.Context, loc string) (pages, children []string, err error) {
	body, err := s.get(ctx, loc)
	if err != nil {
		return nil, nil, err
	}
	defer body.Close()

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(body); err != nil {
		return nil, nil, crawler.Errorf(crawler.EINVALID, "parsing sitemap %s: %v", loc, err)
	}

	for _, el := range doc.FindElements("//urlset/url/loc") {
		if u := strings.TrimSpace(el.Text()); u != "" {
			pages = append(pages, u)
		}
	}
	for _, el := range doc.FindElements("//sitemapindex/sitemap/loc") {
		if u := strings.TrimSpace(el.Text()); u != "" {
			children = append(children, u)
		}
	}
	return pages, children, nil
}

func (s *SeedDiscoverer) get(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, crawler.Errorf(crawler.EINVALID, "building request for %s: %v", rawURL, err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, crawler.Errorf(crawler.ETRANSIENT, "fetching %s: %v", rawURL, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, crawler.Errorf(crawler.ENOTFOUND, "HTTP %d for %s", resp.StatusCode, rawURL)
	}
	return resp.Body, nil
}
