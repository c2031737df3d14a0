// Package crawl implements the crawl engine: the frontier, deduplication,
// politeness, and worker pool that decide which pages get fetched, in what
// order, how deep, and how fast. Fetching, extraction, and persistence are
// injected collaborators.
package crawl

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	crawler "github.com/itisuniqueofficial/advanced-web-crawler"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the worker pool size when none is configured.
const DefaultConcurrency = 10

// Crawler coordinates a crawl: it owns the frontier and worker pool and
// drives the crawl to quiescence or cancellation. Each Run gets fresh
// frontier, dedup, and per-host pacing state; a Crawler may be reused for
// sequential runs but never shares state between them.
type Crawler struct {
	Fetcher  crawler.PageFetcher
	Sink     crawler.ResultSink
	Limiter  crawler.HostLimiter
	Detector crawler.TrapDetector
	Proxies  crawler.ProxyPool
	Logger   *slog.Logger

	// Concurrency is the fixed number of fetch workers.
	// Defaults to DefaultConcurrency.
	Concurrency int

	// MaxDepth is the maximum link distance from a seed. Seeds are depth 0.
	MaxDepth int

	// MaxPages, when positive, cancels the run once that many pages have
	// been fetched or permanently failed. Partial results are kept.
	MaxPages int

	// Restrict limits the crawl to the seed hosts.
	Restrict bool

	// RetryDelays is the backoff schedule for transient fetch failures.
	// Defaults to DefaultRetryDelays.
	RetryDelays []time.Duration
}

// Summary is the outcome of one crawl run.
type Summary struct {
	RunID     string
	Fetched   int
	Failed    int
	Discarded int // links dropped by trap detection or canonical collapse
	Claimed   int // canonical keys claimed over the run
	Elapsed   time.Duration
	Failures  []crawler.Failure
}

// run holds the state scoped to a single invocation. Fresh per Run, torn
// down when all workers have joined.
type run struct {
	id       string
	frontier *Frontier
	claims   *ClaimSet
	policy   *DomainPolicy
	cancel   context.CancelFunc

	fetched   atomic.Int64
	failed    atomic.Int64
	discarded atomic.Int64

	mu       sync.Mutex
	failures []crawler.Failure
}

// Run crawls from the given seed URLs until the frontier reaches
// quiescence, MaxPages is hit, or ctx is canceled. Cancellation keeps the
// results accumulated so far; only configuration problems (no valid seed,
// missing collaborators, negative depth) return an error.
func (c *Crawler) Run(ctx context.Context, seeds []string) (*Summary, error) {
	if c.Fetcher == nil {
		return nil, crawler.Errorf(crawler.EINVALID, "crawler requires a page fetcher")
	}
	if c.Sink == nil {
		return nil, crawler.Errorf(crawler.EINVALID, "crawler requires a result sink")
	}
	if c.MaxDepth < 0 {
		return nil, crawler.Errorf(crawler.EINVALID, "max depth cannot be negative")
	}

	logger := c.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	limiter := c.Limiter
	if limiter == nil {
		limiter = NewHostLimiter(0)
	}
	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	delays := c.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}

	// Canonicalize seeds, dropping the malformed ones.
	var entries []crawler.Entry
	var seedHosts []string
	for _, seed := range seeds {
		key, u, err := Canonicalize(nil, seed)
		if err != nil {
			logger.Warn("skipping seed", "url", seed, "err", err)
			continue
		}
		entries = append(entries, crawler.Entry{URL: u.String(), Key: key, Depth: 0})
		seedHosts = append(seedHosts, u.Hostname())
	}
	if len(entries) == 0 {
		return nil, crawler.Errorf(crawler.EINVALID, "no valid seed URL")
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	r := &run{
		id:       uuid.New().String(),
		frontier: NewFrontier(c.MaxDepth),
		claims:   NewClaimSet(),
		policy:   NewDomainPolicy(c.Restrict, seedHosts),
		cancel:   cancel,
	}

	// Duplicate seeds collapse through the claim, like any other URL.
	for _, e := range entries {
		if !r.claims.TryClaim(e.Key) {
			continue
		}
		if err := r.frontier.Push(e); err != nil {
			return nil, crawler.Errorf(crawler.EINTERNAL, "seeding frontier: %v", err)
		}
		c.observe(e.URL)
	}

	logger.Info("crawl started",
		"run_id", r.id,
		"seeds", len(entries),
		"max_depth", c.MaxDepth,
		"workers", concurrency,
		"restricted", c.Restrict,
	)
	begin := time.Now()

	g, gctx := errgroup.WithContext(runCtx)
	for i := 0; i < concurrency; i++ {
		g.Go(func() error {
			for {
				e, ok := r.frontier.Pop(gctx)
				if !ok {
					return nil
				}
				c.process(gctx, r, e, limiter, logger, delays)
				r.frontier.Done()
			}
		})
	}
	_ = g.Wait()

	// Cancellation can leave the frontier open with queued entries.
	r.frontier.Close()

	summary := &Summary{
		RunID:     r.id,
		Fetched:   int(r.fetched.Load()),
		Failed:    int(r.failed.Load()),
		Discarded: int(r.discarded.Load()),
		Claimed:   r.claims.Size(),
		Elapsed:   time.Since(begin),
		Failures:  r.failures,
	}
	logger.Info("crawl complete",
		"run_id", summary.RunID,
		"fetched", summary.Fetched,
		"failed", summary.Failed,
		"discarded", summary.Discarded,
		"claimed", summary.Claimed,
		"elapsed", summary.Elapsed,
	)
	return summary, nil
}

// process fetches one frontier entry, records its result, and pushes the
// gated outbound links back onto the frontier at depth+1.
func (c *Crawler) process(
	ctx context.Context,
	r *run,
	e crawler.Entry,
	limiter crawler.HostLimiter,
	logger *slog.Logger,
	delays []time.Duration,
) {
	host := hostOf(e.URL)
	if err := limiter.Wait(ctx, host); err != nil {
		return
	}

	var proxy *crawler.Proxy
	if c.Proxies != nil {
		proxy = c.Proxies.Next()
	}

	page, err := FetchWithRetry(ctx, c.Fetcher, e.URL, proxy, logger, delays)
	if err != nil {
		if ctx.Err() != nil || crawler.ErrorCode(err) == crawler.ECANCELED {
			return
		}
		c.recordFailure(ctx, r, e, err, logger)
		c.enforcePageLimit(r)
		return
	}

	resultURL := page.FinalURL
	if resultURL == "" {
		resultURL = e.URL
	}
	base, parseErr := url.Parse(resultURL)
	if parseErr != nil {
		base = nil
	}

	// A canonical hint moves the page's identity to the canonical key.
	// If that key is already claimed the page was counted before under
	// another URL, so nothing new is recorded.
	key := e.Key
	if page.CanonicalURL != "" {
		if ck, cu, cerr := Canonicalize(base, page.CanonicalURL); cerr == nil && ck != e.Key {
			if !r.claims.TryClaim(ck) {
				r.discarded.Add(1)
				logger.Debug("canonical duplicate", "url", e.URL, "canonical", cu.String())
				return
			}
			key = ck
			resultURL = cu.String()
		}
	}

	res := &crawler.Result{
		URL:             resultURL,
		Key:             key,
		Depth:           e.Depth,
		Title:           page.Title,
		MetaDescription: page.MetaDescription,
		MetaKeywords:    page.MetaKeywords,
		Images:          page.Images,
		ContentHash:     hashContent(page.HTML),
		FetchedAt:       time.Now().UTC(),
	}
	if err := c.Sink.Record(ctx, res); err != nil {
		c.recordFailure(ctx, r, e, err, logger)
		c.enforcePageLimit(r)
		return
	}
	r.fetched.Add(1)

	if c.enforcePageLimit(r) {
		return
	}
	if e.Depth >= c.MaxDepth {
		return
	}

	for _, l := range page.Links {
		if l.NoFollow {
			continue
		}
		lkey, lu, lerr := Canonicalize(base, l.URL)
		if lerr != nil {
			continue // malformed links are dropped, not errors
		}
		if c.Detector != nil && c.Detector.IsSuspicious(lu) {
			r.discarded.Add(1)
			logger.Debug("spider trap rejected", "url", lu.String(), "source", resultURL)
			continue
		}
		if !r.policy.Allow(lu.Hostname()) {
			continue
		}
		if !r.claims.TryClaim(lkey) {
			continue
		}
		if err := r.frontier.Push(crawler.Entry{
			URL:    lu.String(),
			Key:    lkey,
			Depth:  e.Depth + 1,
			Source: resultURL,
		}); err != nil {
			continue // depth bound or closing frontier; dropped silently
		}
		c.observe(lu.String())
	}
}

func (c *Crawler) recordFailure(ctx context.Context, r *run, e crawler.Entry, cause error, logger *slog.Logger) {
	f := crawler.Failure{
		URL:      e.URL,
		Depth:    e.Depth,
		Reason:   crawler.ErrorMessage(cause),
		FailedAt: time.Now().UTC(),
	}
	r.failed.Add(1)
	r.mu.Lock()
	r.failures = append(r.failures, f)
	r.mu.Unlock()

	if err := c.Sink.RecordFailure(ctx, &f); err != nil {
		logger.Error("recording failure", "url", e.URL, "err", err)
	}
	logger.Warn("fetch failed", "url", e.URL, "depth", e.Depth, "err", cause)
}

// enforcePageLimit cancels the run once MaxPages pages have completed,
// successfully or not. Returns true when the limit has been reached.
func (c *Crawler) enforcePageLimit(r *run) bool {
	if c.MaxPages <= 0 {
		return false
	}
	if r.fetched.Load()+r.failed.Load() >= int64(c.MaxPages) {
		r.cancel()
		return true
	}
	return false
}

func (c *Crawler) observe(rawURL string) {
	if c.Detector == nil {
		return
	}
	if u, err := url.Parse(rawURL); err == nil {
		c.Detector.Observe(u)
	}
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}

// hashContent computes an xxHash of the page source as a hex string.
func hashContent(content string) string {
	if content == "" {
		return ""
	}
	return fmt.Sprintf("%016x", xxhash.Sum64String(content))
}
