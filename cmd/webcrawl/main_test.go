package main_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	main "github.com/itisuniqueofficial/advanced-web-crawler/cmd/webcrawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestSite serves a small three-page site with one broken link.
func newTestSite(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><head><title>Home</title><meta name="description" content="The home page"></head>
<body><a href="/about">about</a><a href="/contact">contact</a><a href="/missing">missing</a></body></html>`)
	})
	mux.HandleFunc("/about", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><head><title>About</title></head><body><a href="/">home</a></body></html>`)
	})
	mux.HandleFunc("/contact", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><head><title>Contact</title></head><body></body></html>`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestCmdCrawl_WritesCSV(t *testing.T) {
	t.Parallel()

	srv := newTestSite(t)
	outPath := filepath.Join(t.TempDir(), "out.csv")

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	err := main.NewMain().Run(context.Background(), []string{
		"crawl", srv.URL,
		"--rate-limit", "0",
		"--output", outPath,
	}, stdout, stderr)
	require.NoError(t, err)

	f, err := os.Open(outPath)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4, "header plus three pages")

	var urls []string
	for _, rec := range records[1:] {
		urls = append(urls, rec[0])
	}
	assert.ElementsMatch(t, []string{srv.URL + "/", srv.URL + "/about", srv.URL + "/contact"}, urls)

	// Broken link is reported but doesn't fail the run.
	assert.Contains(t, stderr.String(), "/missing")
	assert.Contains(t, stderr.String(), "Crawled 3 pages")
}

func TestCmdCrawl_WritesJSONToStdout(t *testing.T) {
	t.Parallel()

	srv := newTestSite(t)

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	err := main.NewMain().Run(context.Background(), []string{
		"crawl", srv.URL,
		"--rate-limit", "0",
		"--format", "json",
	}, stdout, stderr)
	require.NoError(t, err)

	var doc struct {
		Results []struct {
			URL   string `json:"url"`
			Depth int    `json:"depth"`
			Title string `json:"title"`
		} `json:"results"`
		Failures []struct {
			URL string `json:"url"`
		} `json:"failures"`
	}
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &doc))
	assert.Len(t, doc.Results, 3)
	require.Len(t, doc.Failures, 1)
	assert.Equal(t, srv.URL+"/missing", doc.Failures[0].URL)
}

func TestCmdCrawl_StoresResultsInDatabase(t *testing.T) {
	t.Parallel()

	srv := newTestSite(t)
	dbPath := filepath.Join(t.TempDir(), "crawl.db")

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	err := main.NewMain().Run(context.Background(), []string{
		"crawl", srv.URL,
		"--rate-limit", "0",
		"--output", filepath.Join(t.TempDir(), "out.csv"),
		"--db", dbPath,
	}, stdout, stderr)
	require.NoError(t, err)

	listOut := &bytes.Buffer{}
	err = main.NewMain().Run(context.Background(), []string{"results", dbPath}, listOut, &bytes.Buffer{})
	require.NoError(t, err)

	assert.Contains(t, listOut.String(), srv.URL+"/about")
	assert.Contains(t, listOut.String(), "About")
}

func TestCmdCrawl_RespectsDepthLimit(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		depth := 0
		fmt.Sscanf(r.URL.Path, "/%d", &depth)
		fmt.Fprintf(w, `<html><head><title>Page %d</title></head><body><a href="/%d">next</a></body></html>`,
			depth, depth+1)
	})

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	err := main.NewMain().Run(context.Background(), []string{
		"crawl", srv.URL + "/0",
		"--rate-limit", "0",
		"--depth", "1",
		"--format", "json",
	}, stdout, stderr)
	require.NoError(t, err)

	var doc struct {
		Results []struct {
			Depth int `json:"depth"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &doc))
	require.Len(t, doc.Results, 2)
	for _, res := range doc.Results {
		assert.LessOrEqual(t, res.Depth, 1)
	}
}

func TestCmdSeeds_ListsSitemapURLs(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>%s/docs</loc></url>
  <url><loc>%s/blog</loc></url>
</urlset>`, srv.URL, srv.URL)
	})

	stdout := &bytes.Buffer{}
	err := main.NewMain().Run(context.Background(), []string{"seeds", srv.URL}, stdout, &bytes.Buffer{})
	require.NoError(t, err)

	assert.Contains(t, stdout.String(), srv.URL+"/docs")
	assert.Contains(t, stdout.String(), srv.URL+"/blog")
}

func TestCmdResults_MissingDatabaseIsError(t *testing.T) {
	t.Parallel()

	err := main.NewMain().Run(context.Background(), []string{
		"results", filepath.Join(t.TempDir(), "absent.db"),
	}, &bytes.Buffer{}, &bytes.Buffer{})
	assert.Error(t, err)
}
