package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	crawler "github.com/itisuniqueofficial/advanced-web-crawler"
)

// Compile-time interface verification.
var _ crawler.ResultSink = (*ResultService)(nil)

// ResultService persists crawl results and failures using SQLite. Every row
// written through one ResultService carries the same run ID, so multiple
// crawls can share a database and remain distinguishable.
type ResultService struct {
	db    *DB
	runID string
}

// NewResultService creates a ResultService with a fresh run ID.
func NewResultService(db *DB) *ResultService {
	return &ResultService{db: db, runID: uuid.New().String()}
}

// RunID returns the identifier stamped on every row this service writes.
func (s *ResultService) RunID() string {
	return s.runID
}

// Record inserts a successfully fetched page.
func (s *ResultService) Record(ctx context.Context, res *crawler.Result) error {
	if err := res.Validate(); err != nil {
		return err
	}

	fetchedAt := res.FetchedAt
	if fetchedAt.IsZero() {
		fetchedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO pages (id, run_id, url, depth, title, meta_description, meta_keywords, images, content_hash, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, uuid.New().String(), s.runID, res.URL, res.Depth, res.Title, res.MetaDescription,
		res.MetaKeywords, strings.Join(res.Images, "|"), res.ContentHash,
		fetchedAt.Format(time.RFC3339))

	return err
}

// RecordFailure inserts a page that failed permanently.
func (s *ResultService) RecordFailure(ctx context.Context, f *crawler.Failure) error {
	failedAt := f.FailedAt
	if failedAt.IsZero() {
		failedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO failures (id, run_id, url, depth, reason, failed_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, uuid.New().String(), s.runID, f.URL, f.Depth, f.Reason,
		failedAt.Format(time.RFC3339))

	return err
}

// Close is a no-op; the DB owns the connection.
func (s *ResultService) Close() error {
	return nil
}

// ResultFilter selects rows for FindResults. Nil fields match everything.
type ResultFilter struct {
	RunID *string
	URL   *string

	Limit  int
	Offset int
}

// FindResults retrieves recorded pages matching the filter, newest first.
func (s *ResultService) FindResults(ctx context.Context, filter ResultFilter) ([]*crawler.Result, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT url, depth, title, meta_description, meta_keywords, images, content_hash, fetched_at FROM pages WHERE 1=1")

	if filter.RunID != nil {
		query.WriteString(" AND run_id = ?")
		args = append(args, *filter.RunID)
	}
	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}

	query.WriteString(" ORDER BY fetched_at DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []*crawler.Result
	for rows.Next() {
		res, err := scanResult(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, rows.Err()
}

// FindFailures retrieves recorded failures for a run.
func (s *ResultService) FindFailures(ctx context.Context, runID string) ([]*crawler.Failure, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT url, depth, reason, failed_at
		FROM failures
		WHERE run_id = ?
		ORDER BY failed_at ASC
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var failures []*crawler.Failure
	for rows.Next() {
		var f crawler.Failure
		var failedAt string
		if err := rows.Scan(&f.URL, &f.Depth, &f.Reason, &failedAt); err != nil {
			return nil, err
		}
		if f.FailedAt, err = parseRFC3339(failedAt, "failed_at"); err != nil {
			return nil, err
		}
		failures = append(failures, &f)
	}
	return failures, rows.Err()
}

func scanResult(rows *sql.Rows) (*crawler.Result, error) {
	var res crawler.Result
	var images, fetchedAt string

	if err := rows.Scan(&res.URL, &res.Depth, &res.Title, &res.MetaDescription,
		&res.MetaKeywords, &images, &res.ContentHash, &fetchedAt); err != nil {
		return nil, err
	}

	if images != "" {
		res.Images = strings.Split(images, "|")
	}

	var err error
	if res.FetchedAt, err = parseRFC3339(fetchedAt, "fetched_at"); err != nil {
		return nil, err
	}

	return &res, nil
}
