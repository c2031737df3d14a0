package main

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"time"

	crawler "github.com/itisuniqueofficial/advanced-web-crawler"
	"github.com/itisuniqueofficial/advanced-web-crawler/crawl"
	"github.com/itisuniqueofficial/advanced-web-crawler/fs"
	"github.com/itisuniqueofficial/advanced-web-crawler/goquery"
	crawlhttp "github.com/itisuniqueofficial/advanced-web-crawler/http"
	"github.com/itisuniqueofficial/advanced-web-crawler/rod"
	crawlslog "github.com/itisuniqueofficial/advanced-web-crawler/slog"
	"github.com/itisuniqueofficial/advanced-web-crawler/sqlite"
)

const timeRounding = 10 * time.Millisecond

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	seeds := c.Seeds
	if c.Sitemap {
		seeds = expandSeeds(deps, seeds)
	}

	sink, cleanup, err := c.buildSink(deps)
	if err != nil {
		return err
	}
	defer cleanup()

	fetcher, err := c.buildFetcher(deps)
	if err != nil {
		return err
	}
	defer fetcher.Close()

	var proxies crawler.ProxyPool
	if len(c.Proxy) > 0 {
		if proxies, err = crawl.NewProxyRing(c.Proxy); err != nil {
			return err
		}
	}

	cr := &crawl.Crawler{
		Fetcher:     fetcher,
		Sink:        sink,
		Limiter:     crawl.NewHostLimiter(c.rateInterval()),
		Detector:    crawl.NewDetector(),
		Proxies:     proxies,
		Logger:      deps.Logger,
		Concurrency: c.Concurrency,
		MaxDepth:    c.Depth,
		MaxPages:    c.MaxPages,
		Restrict:    c.RestrictDomain,
	}

	summary, err := cr.Run(deps.Ctx, seeds)
	if err != nil {
		return err
	}
	if err := sink.Close(); err != nil {
		return err
	}

	for _, f := range summary.Failures {
		fmt.Fprintf(deps.Stderr, "  failed %s: %s\n", f.URL, f.Reason)
	}
	fmt.Fprintf(deps.Stderr, "Crawled %d pages (%d failed, %d skipped) in %s\n",
		summary.Fetched, summary.Failed, summary.Discarded, summary.Elapsed.Round(timeRounding))

	return nil
}

// expandSeeds adds sitemap-advertised URLs to each seed. A site without
// sitemaps keeps just its seed URL.
func expandSeeds(deps *Dependencies, seeds []string) []string {
	discoverer := crawlhttp.NewSeedDiscoverer(nil)
	expanded := make([]string, 0, len(seeds))
	for _, seed := range seeds {
		expanded = append(expanded, seed)
		urls, err := discoverer.Discover(deps.Ctx, seed)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "  sitemap discovery failed for %s: %s\n", seed, crawler.ErrorMessage(err))
			continue
		}
		expanded = append(expanded, urls...)
	}
	return expanded
}

// buildSink assembles the configured output chain. The cleanup function
// closes any files and databases the sink owns.
func (c *CrawlCmd) buildSink(deps *Dependencies) (crawler.ResultSink, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	var w io.Writer = deps.Stdout
	if c.Output != "" {
		f, err := os.Create(c.Output)
		if err != nil {
			return nil, cleanup, fmt.Errorf("failed to create output file: %w", err)
		}
		closers = append(closers, func() { _ = f.Close() })
		w = f
	}

	var sinks []crawler.ResultSink
	switch c.Format {
	case "json":
		sinks = append(sinks, fs.NewJSONWriter(w))
	default:
		sinks = append(sinks, fs.NewCSVWriter(w))
	}

	if c.DB != "" {
		db := sqlite.NewDB(c.DB)
		if err := db.Open(); err != nil {
			return nil, cleanup, fmt.Errorf("failed to open database at %q: %w", c.DB, err)
		}
		closers = append(closers, func() { _ = db.Close() })
		svc := sqlite.NewResultService(db)
		fmt.Fprintf(deps.Stderr, "Storing results under run %s\n", svc.RunID())
		sinks = append(sinks, svc)
	}

	var sink crawler.ResultSink = sinks[0]
	if len(sinks) > 1 {
		sink = newMultiSink(sinks...)
	}
	sink = crawlslog.NewLoggingSink(sink, deps.Logger)

	return sink, cleanup, nil
}

// buildFetcher assembles the page fetcher, either plain HTTP or a headless
// browser when rendering is requested.
func (c *CrawlCmd) buildFetcher(deps *Dependencies) (crawler.PageFetcher, error) {
	extractor := goquery.NewExtractor()

	var fetcher crawler.PageFetcher
	if c.Render {
		opts := []rod.ManagerOption{}
		if len(c.Proxy) > 0 {
			// Chrome takes one proxy for the whole browser; rotation is
			// only available with the plain HTTP fetcher.
			proxyURL, err := url.Parse(c.Proxy[0])
			if err != nil {
				return nil, fmt.Errorf("invalid proxy URL %q: %w", c.Proxy[0], err)
			}
			opts = append(opts, rod.WithProxy(proxyURL))
		}
		manager, err := rod.NewBrowserManager(opts...)
		if err != nil {
			fmt.Fprintln(deps.Stderr, "Hint: Chrome or Chromium must be installed")
			return nil, fmt.Errorf("failed to start browser: %w", err)
		}
		fetcher = rod.NewFetcher(manager, extractor)
	} else {
		fetcher = crawlhttp.NewFetcher(extractor, crawlhttp.WithTimeout(c.Timeout))
	}

	return crawlslog.NewLoggingFetcher(fetcher, deps.Logger), nil
}
