package fs_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"sync"
	"testing"

	crawler "github.com/itisuniqueofficial/advanced-web-crawler"
	"github.com/itisuniqueofficial/advanced-web-crawler/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVWriter_writes_header_and_rows(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := fs.NewCSVWriter(&buf)

	err := w.Record(context.Background(), &crawler.Result{
		URL:             "https://example.com/",
		Title:           "Example",
		MetaDescription: "A page, with a comma",
		MetaKeywords:    "one,two",
		Images:          []string{"https://example.com/a.png", "https://example.com/b.png"},
	})
	require.NoError(t, err)
	require.NoError(t, w.Close())

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"URL", "Title", "Meta Description", "Meta Keywords", "Images"}, records[0])
	assert.Equal(t, []string{
		"https://example.com/",
		"Example",
		"A page, with a comma",
		"one,two",
		"https://example.com/a.png|https://example.com/b.png",
	}, records[1])
}

func TestCSVWriter_empty_crawl_still_writes_header(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := fs.NewCSVWriter(&buf)
	require.NoError(t, w.Close())

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, []string{"URL", "Title", "Meta Description", "Meta Keywords", "Images"}, records[0])
}

func TestCSVWriter_concurrent_records(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := fs.NewCSVWriter(&buf)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = w.Record(context.Background(), &crawler.Result{URL: "https://example.com/x"})
		}()
	}
	wg.Wait()
	require.NoError(t, w.Close())

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 21) // header + 20 rows
}

func TestCSVWriter_ignores_failures(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := fs.NewCSVWriter(&buf)

	require.NoError(t, w.RecordFailure(context.Background(), &crawler.Failure{
		URL:    "https://example.com/gone",
		Reason: "HTTP 404",
	}))
	require.NoError(t, w.Close())

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 1)
}
