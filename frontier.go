package crawler

import (
	"context"
	"net/url"
)

// Key is the canonical identity of a URL used for deduplication.
// Two URLs with the same Key are the same page for crawl purposes.
type Key string

// Entry is a unit of crawl work: one URL waiting to be fetched.
// Entries are immutable after creation and owned exclusively by the
// frontier until handed to a single worker.
type Entry struct {
	// URL is the absolute, canonicalized URL to fetch.
	URL string

	// Key is the URL's canonical key.
	Key Key

	// Depth is the link distance from the seed, with seeds at 0.
	Depth int

	// Source is the URL of the page the entry was discovered on,
	// or empty for seeds.
	Source string
}

// Frontier is the depth-aware queue of URLs known but not yet fetched.
// It tracks in-flight work and closes itself exactly once when the crawl
// reaches quiescence: every entry ever pushed has been popped and completed.
type Frontier interface {
	// Push adds an entry to the frontier.
	Push(e Entry) error

	// Pop blocks until an entry is available, the frontier closes, or ctx
	// is canceled. It returns ok=false on closure or cancellation.
	Pop(ctx context.Context) (e Entry, ok bool)

	// Done marks a popped entry as completed. Every successful Pop must be
	// matched by exactly one Done, whatever the outcome of the fetch.
	Done()

	// Len returns the number of queued (not in-flight) entries.
	Len() int
}

// DedupStore is the set of canonical keys claimed by the current run.
// A key transitions from unclaimed to claimed at most once, which is the
// invariant that prevents duplicate fetches.
type DedupStore interface {
	// TryClaim atomically claims key. It returns true for exactly one
	// caller over the lifetime of a run; all later calls return false.
	TryClaim(key Key) bool

	// Size returns the number of claimed keys. For metrics and
	// termination reporting only.
	Size() int
}

// HostLimiter enforces a minimum interval between fetches to the same host.
// Hosts are paced independently: a slow host never stalls fetches to others.
type HostLimiter interface {
	// Wait blocks until a fetch to host may proceed.
	// Returns an error if ctx is canceled first.
	Wait(ctx context.Context, host string) error
}

// TrapDetector rejects pathological URL patterns (calendar pagers,
// repeating path segments) before they enter the frontier.
type TrapDetector interface {
	// IsSuspicious reports whether u looks like a spider trap.
	IsSuspicious(u *url.URL) bool

	// Observe records u as accepted, feeding per-host state used to
	// detect cycles in later URLs.
	Observe(u *url.URL)
}
