// Package fs writes crawl results to local files.
package fs

import (
	"context"
	"encoding/csv"
	"io"
	"strings"
	"sync"

	crawler "github.com/itisuniqueofficial/advanced-web-crawler"
)

var _ crawler.ResultSink = (*CSVWriter)(nil)

var csvHeader = []string{"URL", "Title", "Meta Description", "Meta Keywords", "Images"}

// CSVWriter streams results to w as CSV rows, one per page, with a header
// row written before the first record. Image URLs are joined with "|" to fit
// one cell. Failures are not part of the CSV output.
//
// CSVWriter is safe for concurrent use.
type CSVWriter struct {
	mu      sync.Mutex
	w       *csv.Writer
	wroteHd bool
}

// NewCSVWriter creates a CSVWriter that writes to w. The caller retains
// ownership of w; Close flushes but does not close it.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{w: csv.NewWriter(w)}
}

func (c *CSVWriter) Record(_ context.Context, res *crawler.Result) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.wroteHd {
		if err := c.w.Write(csvHeader); err != nil {
			return crawler.Errorf(crawler.EINTERNAL, "writing CSV header: %v", err)
		}
		c.wroteHd = true
	}

	row := []string{
		res.URL,
		res.Title,
		res.MetaDescription,
		res.MetaKeywords,
		strings.Join(res.Images, "|"),
	}
	if err := c.w.Write(row); err != nil {
		return crawler.Errorf(crawler.EINTERNAL, "writing CSV row for %s: %v", res.URL, err)
	}
	return nil
}

func (c *CSVWriter) RecordFailure(context.Context, *crawler.Failure) error {
	return nil
}

// Close flushes buffered rows. An empty crawl still produces the header.
func (c *CSVWriter) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.wroteHd {
		if err := c.w.Write(csvHeader); err != nil {
			return crawler.Errorf(crawler.EINTERNAL, "writing CSV header: %v", err)
		}
		c.wroteHd = true
	}
	c.w.Flush()
	if err := c.w.Error(); err != nil {
		return crawler.Errorf(crawler.EINTERNAL, "flushing CSV output: %v", err)
	}
	return nil
}
