package main

import (
	"context"
	"errors"

	crawler "github.com/itisuniqueofficial/advanced-web-crawler"
)

var _ crawler.ResultSink = (*multiSink)(nil)

// multiSink fans each record out to several sinks, so a crawl can write a
// CSV file and a database in one pass.
type multiSink struct {
	sinks []crawler.ResultSink
}

func newMultiSink(sinks ...crawler.ResultSink) *multiSink {
	return &multiSink{sinks: sinks}
}

func (m *multiSink) Record(ctx context.Context, res *crawler.Result) error {
	var errs []error
	for _, s := range m.sinks {
		errs = append(errs, s.Record(ctx, res))
	}
	return errors.Join(errs...)
}

func (m *multiSink) RecordFailure(ctx context.Context, f *crawler.Failure) error {
	var errs []error
	for _, s := range m.sinks {
		errs = append(errs, s.RecordFailure(ctx, f))
	}
	return errors.Join(errs...)
}

func (m *multiSink) Close() error {
	var errs []error
	for _, s := range m.sinks {
		errs = append(errs, s.Close())
	}
	return errors.Join(errs...)
}
