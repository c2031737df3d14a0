package main

import (
	"context"
	"io"
	"log/slog"
	"time"
)

// Dependencies holds shared state and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Crawl   CrawlCmd   `cmd:"" help:"Crawl one or more sites and extract page metadata"`
	Seeds   SeedsCmd   `cmd:"" help:"Show the URLs a site's sitemaps advertise"`
	Results ResultsCmd `cmd:"" help:"List results stored in a crawl database"`

	Verbose bool `short:"v" help:"Log each fetch and recorded page"`
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	Seeds []string `arg:"" name:"url" help:"Seed URLs to start from"`

	Depth          int           `short:"d" default:"2" help:"Maximum link distance from the seeds"`
	RestrictDomain bool          `short:"r" help:"Only follow links within the seed domains"`
	RateLimit      float64       `default:"0" help:"Minimum seconds between requests to the same host (0 disables pacing)"`
	Concurrency    int           `short:"c" default:"10" help:"Number of crawl workers"`
	MaxPages       int           `short:"m" help:"Stop after this many pages (0 means unlimited)"`
	Timeout        time.Duration `default:"10s" help:"Per-request fetch timeout"`

	Proxy  []string `short:"p" help:"Proxy URL to route fetches through (repeatable, rotated round-robin)"`
	Render bool     `help:"Render pages in a headless browser before extraction"`

	Sitemap bool   `help:"Expand each seed with URLs from its sitemaps"`
	Format  string `short:"f" default:"csv" enum:"csv,json" help:"Output format (csv or json)"`
	Output  string `short:"o" help:"Output file (defaults to stdout)"`
	DB      string `help:"Also store results in this SQLite database"`
}

// rateInterval converts the rate-limit flag, given in seconds, into the
// minimum per-host interval.
func (c *CrawlCmd) rateInterval() time.Duration {
	return time.Duration(c.RateLimit * float64(time.Second))
}

// SeedsCmd is the "seeds" subcommand.
type SeedsCmd struct {
	URL string `arg:"" help:"Site URL whose sitemaps to read"`
}

// ResultsCmd is the "results" subcommand.
type ResultsCmd struct {
	DB    string `arg:"" help:"SQLite database written by a previous crawl"`
	RunID string `name:"run" help:"Only show results from this run ID"`
	Limit int    `default:"50" help:"Maximum number of results to show"`
}
