package fs_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	crawler "github.com/itisuniqueofficial/advanced-web-crawler"
	"github.com/itisuniqueofficial/advanced-web-crawler/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONWriter_writes_single_document(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := fs.NewJSONWriter(&buf)

	require.NoError(t, w.Record(context.Background(), &crawler.Result{
		URL:   "https://example.com/",
		Depth: 0,
		Title: "Example",
	}))
	require.NoError(t, w.Record(context.Background(), &crawler.Result{
		URL:   "https://example.com/about",
		Depth: 1,
		Title: "About",
	}))
	require.NoError(t, w.RecordFailure(context.Background(), &crawler.Failure{
		URL:    "https://example.com/broken",
		Depth:  1,
		Reason: "HTTP 500",
	}))
	require.NoError(t, w.Close())

	var doc struct {
		Results  []crawler.Result  `json:"results"`
		Failures []crawler.Failure `json:"failures"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	require.Len(t, doc.Results, 2)
	assert.Equal(t, "https://example.com/about", doc.Results[1].URL)
	assert.Equal(t, 1, doc.Results[1].Depth)
	require.Len(t, doc.Failures, 1)
	assert.Equal(t, "HTTP 500", doc.Failures[0].Reason)
}

func TestJSONWriter_empty_crawl_produces_empty_array(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := fs.NewJSONWriter(&buf)
	require.NoError(t, w.Close())

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.JSONEq(t, "[]", string(doc["results"]))
}
