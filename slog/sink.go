package slog

import (
	"context"
	"log/slog"

	crawler "github.com/itisuniqueofficial/advanced-web-crawler"
)

// Ensure LoggingSink implements crawler.ResultSink.
var _ crawler.ResultSink = (*LoggingSink)(nil)

// LoggingSink wraps a ResultSink and logs each recorded page and failure.
type LoggingSink struct {
	next   crawler.ResultSink
	logger *slog.Logger
}

// NewLoggingSink creates a new LoggingSink.
func NewLoggingSink(next crawler.ResultSink, logger *slog.Logger) *LoggingSink {
	return &LoggingSink{next: next, logger: logger}
}

// Record delegates to the wrapped sink and logs the page.
func (s *LoggingSink) Record(ctx context.Context, res *crawler.Result) error {
	err := s.next.Record(ctx, res)
	s.logger.Info("page",
		"url", res.URL,
		"depth", res.Depth,
		"title", res.Title,
		"err", err,
	)
	return err
}

// RecordFailure delegates to the wrapped sink and logs the failure.
func (s *LoggingSink) RecordFailure(ctx context.Context, f *crawler.Failure) error {
	err := s.next.RecordFailure(ctx, f)
	s.logger.Warn("page failed",
		"url", f.URL,
		"depth", f.Depth,
		"reason", f.Reason,
		"err", err,
	)
	return err
}

// Close delegates to the wrapped sink.
func (s *LoggingSink) Close() error {
	return s.next.Close()
}
