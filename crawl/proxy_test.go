package crawl_test

import (
	"testing"

	crawler "github.com/itisuniqueofficial/advanced-web-crawler"
	"github.com/itisuniqueofficial/advanced-web-crawler/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProxyRing_rotates_round_robin(t *testing.T) {
	t.Parallel()

	ring, err := crawl.NewProxyRing([]string{
		"http://proxy1.test:8080",
		"http://proxy2.test:8080",
	})
	require.NoError(t, err)

	assert.Equal(t, "proxy1.test:8080", ring.Next().URL.Host)
	assert.Equal(t, "proxy2.test:8080", ring.Next().URL.Host)
	assert.Equal(t, "proxy1.test:8080", ring.Next().URL.Host)
}

func TestProxyRing_empty_ring_fetches_directly(t *testing.T) {
	t.Parallel()

	ring, err := crawl.NewProxyRing(nil)
	require.NoError(t, err)

	assert.Nil(t, ring.Next())
}

func TestNewProxyRing_rejects_invalid_URLs(t *testing.T) {
	t.Parallel()

	_, err := crawl.NewProxyRing([]string{"not a proxy"})

	assert.Equal(t, crawler.EINVALID, crawler.ErrorCode(err))
}
