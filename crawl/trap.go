package crawl

import (
	"net/url"
	"strings"
	"sync"

	crawler "github.com/itisuniqueofficial/advanced-web-crawler"
	"github.com/itisuniqueofficial/advanced-web-crawler/bloom"
)

// Trap detection defaults.
const (
	// DefaultMaxPathSegments is the path length ceiling beyond which a URL
	// is treated as a trap.
	DefaultMaxPathSegments = 20

	// DefaultMaxSegmentRepeat is how many times a path segment may repeat
	// immediately before the URL is treated as a trap.
	DefaultMaxSegmentRepeat = 3

	// ancestorFilterSize is the expected number of observed paths per host
	// for Bloom filter sizing.
	ancestorFilterSize = 50000

	// ancestorFalsePositiveRate is acceptable because a false positive only
	// drops a URL whose tail already looks cyclic.
	ancestorFalsePositiveRate = 0.001
)

var _ crawler.TrapDetector = (*Detector)(nil)

// Detector flags URL patterns that generate unbounded distinct links:
// immediately repeating path segments, paths beyond a length ceiling, and,
// when ancestor tracking is enabled, growing path cycles whose prefix was
// already crawled. State is per run and keyed by host.
//
// It is safe for concurrent use by multiple goroutines.
type Detector struct {
	maxSegments int
	maxRepeat   int
	ancestors   bool

	mu    sync.Mutex
	hosts map[string]*bloom.Filter
}

// DetectorOption configures a Detector.
type DetectorOption func(*Detector)

// WithMaxPathSegments sets the path segment ceiling.
func WithMaxPathSegments(n int) DetectorOption {
	return func(d *Detector) {
		d.maxSegments = n
	}
}

// WithMaxSegmentRepeat sets how many immediate repeats of one segment are
// tolerated before the URL is flagged.
func WithMaxSegmentRepeat(n int) DetectorOption {
	return func(d *Detector) {
		d.maxRepeat = n
	}
}

// WithAncestorTracking enables prefix-cycle detection: a URL whose path tail
// repeats a block of segments is flagged when the path without that block
// was already observed on the same host. Intended for adversarial sites.
func WithAncestorTracking() DetectorOption {
	return func(d *Detector) {
		d.ancestors = true
	}
}

// NewDetector creates a Detector with the given options.
func NewDetector(opts ...DetectorOption) *Detector {
	d := &Detector{
		maxSegments: DefaultMaxPathSegments,
		maxRepeat:   DefaultMaxSegmentRepeat,
		hosts:       make(map[string]*bloom.Filter),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// IsSuspicious reports whether u looks like a spider trap.
func (d *Detector) IsSuspicious(u *url.URL) bool {
	segs := pathSegments(u)

	if len(segs) > d.maxSegments {
		return true
	}
	if maxImmediateRepeat(segs) >= d.maxRepeat {
		return true
	}
	if d.ancestors {
		return d.extendsSeenCycle(u.Hostname(), segs)
	}
	return false
}

// Observe records u's path as crawled on its host. Only meaningful with
// ancestor tracking enabled; a no-op otherwise.
func (d *Detector) Observe(u *url.URL) {
	if !d.ancestors {
		return
	}
	d.hostFilter(u.Hostname()).Add(strings.Join(pathSegments(u), "/"))
}

// extendsSeenCycle reports whether the path ends in a repeated block of
// segments and the path without the final block was already observed.
// This catches period-N cycles like /docs/a/b/a/b growing one period at a
// time, which the immediate-repeat rule cannot see for N > 1.
func (d *Detector) extendsSeenCycle(host string, segs []string) bool {
	filter := d.hostFilter(host)
	for period := 1; period <= 4 && 2*period <= len(segs); period++ {
		tail := segs[len(segs)-period:]
		prev := segs[len(segs)-2*period : len(segs)-period]
		if !equalSegments(tail, prev) {
			continue
		}
		if filter.Test(strings.Join(segs[:len(segs)-period], "/")) {
			return true
		}
	}
	return false
}

func (d *Detector) hostFilter(host string) *bloom.Filter {
	d.mu.Lock()
	defer d.mu.Unlock()

	f, ok := d.hosts[host]
	if !ok {
		f = bloom.NewFilter(ancestorFilterSize, ancestorFalsePositiveRate)
		d.hosts[host] = f
	}
	return f
}

func pathSegments(u *url.URL) []string {
	var segs []string
	for _, s := range strings.Split(u.EscapedPath(), "/") {
		if s != "" {
			segs = append(segs, s)
		}
	}
	return segs
}

func maxImmediateRepeat(segs []string) int {
	longest, run := 0, 0
	for i, s := range segs {
		if i > 0 && s == segs[i-1] {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}

func equalSegments(a, b []string) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
