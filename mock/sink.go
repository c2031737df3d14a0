package mock

import (
	"context"
	"sync"

	crawler "github.com/itisuniqueofficial/advanced-web-crawler"
)

var _ crawler.ResultSink = (*ResultSink)(nil)

// ResultSink is a mock implementation of crawler.ResultSink.
// When the function fields are nil it collects results and failures
// in memory, which is what most tests want.
type ResultSink struct {
	RecordFn        func(ctx context.Context, res *crawler.Result) error
	RecordFailureFn func(ctx context.Context, f *crawler.Failure) error
	CloseFn         func() error

	mu       sync.Mutex
	results  []*crawler.Result
	failures []*crawler.Failure
}

func (s *ResultSink) Record(ctx context.Context, res *crawler.Result) error {
	if s.RecordFn != nil {
		return s.RecordFn(ctx, res)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = append(s.results, res)
	return nil
}

func (s *ResultSink) RecordFailure(ctx context.Context, f *crawler.Failure) error {
	if s.RecordFailureFn != nil {
		return s.RecordFailureFn(ctx, f)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = append(s.failures, f)
	return nil
}

func (s *ResultSink) Close() error {
	if s.CloseFn != nil {
		return s.CloseFn()
	}
	return nil
}

// Results returns a snapshot of collected results.
func (s *ResultSink) Results() []*crawler.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*crawler.Result, len(s.results))
	copy(out, s.results)
	return out
}

// Failures returns a snapshot of collected failures.
func (s *ResultSink) Failures() []*crawler.Failure {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*crawler.Failure, len(s.failures))
	copy(out, s.failures)
	return out
}
