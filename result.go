package crawler

import (
	"context"
	"time"
)

// Result is the record produced for each successfully fetched page.
// Results are append-only: ownership transfers to the ResultSink on Record
// and the crawler never mutates a recorded result.
type Result struct {
	// URL is the page's identity: the canonical URL when the page declared
	// one, otherwise the fetch's final URL.
	URL string `json:"url"`

	// Key is the canonical key the page was counted under.
	Key Key `json:"-"`

	// Depth is the link distance from the seed, with seeds at 0.
	Depth int `json:"depth"`

	Title           string   `json:"title"`
	MetaDescription string   `json:"meta_description"`
	MetaKeywords    string   `json:"meta_keywords"`
	Images          []string `json:"images,omitempty"`

	// ContentHash is an xxHash of the raw page source, usable for
	// duplicate-content detection across distinct URLs.
	ContentHash string `json:"content_hash,omitempty"`

	FetchedAt time.Time `json:"fetched_at"`
}

// Validate returns an error if the result contains invalid fields.
func (r *Result) Validate() error {
	if r.URL == "" {
		return Errorf(EINVALID, "result URL required")
	}
	if r.Depth < 0 {
		return Errorf(EINVALID, "result depth cannot be negative")
	}
	return nil
}

// Failure records a page that could not be fetched after retries.
type Failure struct {
	URL      string    `json:"url"`
	Depth    int       `json:"depth"`
	Reason   string    `json:"reason"`
	FailedAt time.Time `json:"failed_at"`
}

// ResultSink receives crawl output. Implementations serialize results to
// CSV, JSON, or a database; they must be safe for concurrent use by
// multiple workers.
type ResultSink interface {
	// Record appends a successfully fetched page.
	Record(ctx context.Context, res *Result) error

	// RecordFailure appends a page that failed permanently.
	RecordFailure(ctx context.Context, f *Failure) error

	// Close flushes buffered output. No Record calls may follow Close.
	Close() error
}
