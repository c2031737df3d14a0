package fs

import (
	"context"
	"encoding/json"
	"io"
	"sync"

	crawler "github.com/itisuniqueofficial/advanced-web-crawler"
)

var _ crawler.ResultSink = (*JSONWriter)(nil)

// JSONWriter collects results and failures and writes them as one indented
// JSON document on Close. Buffering in memory keeps the output a single
// well-formed document even when workers record concurrently.
type JSONWriter struct {
	mu       sync.Mutex
	w        io.Writer
	results  []*crawler.Result
	failures []*crawler.Failure
}

// NewJSONWriter creates a JSONWriter that writes to w on Close. The caller
// retains ownership of w.
func NewJSONWriter(w io.Writer) *JSONWriter {
	return &JSONWriter{w: w}
}

func (j *JSONWriter) Record(_ context.Context, res *crawler.Result) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.results = append(j.results, res)
	return nil
}

func (j *JSONWriter) RecordFailure(_ context.Context, f *crawler.Failure) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.failures = append(j.failures, f)
	return nil
}

// Close writes the collected document.
func (j *JSONWriter) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	doc := struct {
		Results  []*crawler.Result  `json:"results"`
		Failures []*crawler.Failure `json:"failures,omitempty"`
	}{
		Results:  j.results,
		Failures: j.failures,
	}
	if doc.Results == nil {
		doc.Results = []*crawler.Result{}
	}

	enc := json.NewEncoder(j.w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return crawler.Errorf(crawler.EINTERNAL, "writing JSON output: %v", err)
	}
	return nil
}
