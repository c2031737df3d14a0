//go:build integration

package rod_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	crawler "github.com/itisuniqueofficial/advanced-web-crawler"
	"github.com/itisuniqueofficial/advanced-web-crawler/goquery"
	"github.com/itisuniqueofficial/advanced-web-crawler/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRenderingFetcher(t *testing.T) *rod.Fetcher {
	t.Helper()
	manager, err := rod.NewBrowserManager()
	require.NoError(t, err)
	t.Cleanup(func() { _ = manager.Close() })
	return rod.NewFetcher(manager, goquery.NewExtractor())
}

func TestFetcher_extracts_javascript_rendered_links(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<!DOCTYPE html>
<html>
<head><title>Rendered</title></head>
<body>
<nav id="nav"></nav>
<script>
document.getElementById('nav').innerHTML = '<a href="/dynamic">dynamic</a>';
</script>
</body>
</html>`))
	}))
	defer srv.Close()

	page, err := newRenderingFetcher(t).Fetch(context.Background(), srv.URL, nil)

	require.NoError(t, err)
	assert.Equal(t, "Rendered", page.Title)
	require.Len(t, page.Links, 1)
	assert.Equal(t, srv.URL+"/dynamic", page.Links[0].URL)
}

func TestFetcher_cancellation(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {} // never respond
	}))
	defer srv.Close()

	fetcher := newRenderingFetcher(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := fetcher.Fetch(ctx, srv.URL, nil)

	assert.Equal(t, crawler.ECANCELED, crawler.ErrorCode(err))
}
