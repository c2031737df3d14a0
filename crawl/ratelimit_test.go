package crawl_test

import (
	"context"
	"testing"
	"time"

	crawler "github.com/itisuniqueofficial/advanced-web-crawler"
	"github.com/itisuniqueofficial/advanced-web-crawler/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHostLimiter(t *testing.T) {
	t.Parallel()

	t.Run("implements crawler.HostLimiter interface", func(t *testing.T) {
		t.Parallel()
		var _ crawler.HostLimiter = crawl.NewHostLimiter(time.Second)
	})

	t.Run("first fetch to a host is immediate", func(t *testing.T) {
		t.Parallel()

		limiter := crawl.NewHostLimiter(time.Second)

		start := time.Now()
		err := limiter.Wait(context.Background(), "a.test")

		require.NoError(t, err)
		assert.Less(t, time.Since(start), 50*time.Millisecond)
	})

	t.Run("consecutive fetches to one host wait out the interval", func(t *testing.T) {
		t.Parallel()

		limiter := crawl.NewHostLimiter(100 * time.Millisecond)

		require.NoError(t, limiter.Wait(context.Background(), "a.test"))

		start := time.Now()
		err := limiter.Wait(context.Background(), "a.test")

		require.NoError(t, err)
		assert.GreaterOrEqual(t, time.Since(start), 80*time.Millisecond)
	})

	t.Run("hosts are paced independently", func(t *testing.T) {
		t.Parallel()

		limiter := crawl.NewHostLimiter(time.Second)

		require.NoError(t, limiter.Wait(context.Background(), "a.test"))

		start := time.Now()
		err := limiter.Wait(context.Background(), "b.test")

		require.NoError(t, err)
		assert.Less(t, time.Since(start), 50*time.Millisecond, "slow host A should not stall host B")
	})

	t.Run("zero interval disables pacing", func(t *testing.T) {
		t.Parallel()

		limiter := crawl.NewHostLimiter(0)

		start := time.Now()
		for n := 0; n < 100; n++ {
			require.NoError(t, limiter.Wait(context.Background(), "a.test"))
		}
		assert.Less(t, time.Since(start), 100*time.Millisecond)
	})

	t.Run("blocked waits return on cancellation", func(t *testing.T) {
		t.Parallel()

		limiter := crawl.NewHostLimiter(time.Second)
		require.NoError(t, limiter.Wait(context.Background(), "a.test"))

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		err := limiter.Wait(ctx, "a.test")
		assert.Error(t, err)
	})
}
