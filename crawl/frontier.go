package crawl

import (
	"container/heap"
	"context"
	"errors"
	"sync"

	crawler "github.com/itisuniqueofficial/advanced-web-crawler"
)

// Frontier errors. Callers drop the entry on either; neither is surfaced
// to the user.
var (
	// ErrDepthExceeded is returned by Push for entries beyond the depth bound.
	ErrDepthExceeded = errors.New("entry exceeds maximum depth")

	// ErrClosed is returned by Push after the frontier has closed.
	ErrClosed = errors.New("frontier is closed")
)

var _ crawler.Frontier = (*Frontier)(nil)

// Frontier is a depth-ordered blocking work queue with quiescence
// detection. Entries at shallower depth are popped first, giving a
// breadth-leaning schedule; order within a depth is unspecified.
//
// The frontier counts queued and in-flight entries and closes itself
// exactly once when both reach zero: true quiescence, not merely an empty
// queue, since an in-flight entry may still push children.
//
// It is safe for concurrent use by multiple goroutines.
type Frontier struct {
	maxDepth int

	mu      sync.Mutex
	cond    *sync.Cond
	queue   entryHeap
	pending int // queued + in-flight entries
	closed  bool
}

// NewFrontier creates an open Frontier bounded at maxDepth.
func NewFrontier(maxDepth int) *Frontier {
	f := &Frontier{maxDepth: maxDepth}
	f.cond = sync.NewCond(&f.mu)
	return f
}

// Push adds an entry. It returns ErrDepthExceeded for entries beyond the
// depth bound and ErrClosed after closure; the entry is not queued in
// either case.
func (f *Frontier) Push(e crawler.Entry) error {
	if e.Depth > f.maxDepth {
		return ErrDepthExceeded
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return ErrClosed
	}
	f.pending++
	heap.Push(&f.queue, e)
	f.cond.Signal()
	return nil
}

// Pop blocks until an entry is available, the frontier closes, or ctx is
// canceled. It returns ok=false on closure or cancellation. Each
// successful Pop must be matched by exactly one Done call.
func (f *Frontier) Pop(ctx context.Context) (crawler.Entry, bool) {
	// Wake waiters when ctx is canceled; cond has no notion of context.
	stop := context.AfterFunc(ctx, func() {
		f.mu.Lock()
		f.cond.Broadcast()
		f.mu.Unlock()
	})
	defer stop()

	f.mu.Lock()
	defer f.mu.Unlock()

	for f.queue.Len() == 0 && !f.closed && ctx.Err() == nil {
		f.cond.Wait()
	}
	if f.closed || ctx.Err() != nil {
		return crawler.Entry{}, false
	}

	e, _ := heap.Pop(&f.queue).(crawler.Entry)
	return e, true
}

// Done marks a popped entry completed. When the last pending entry
// completes the frontier closes and all blocked Pops return.
func (f *Frontier) Done() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.pending--
	if f.pending == 0 && !f.closed {
		f.closed = true
		f.cond.Broadcast()
	}
}

// Close closes the frontier regardless of pending work, releasing all
// blocked Pops. Used on cancellation; safe to call more than once.
func (f *Frontier) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.closed {
		f.closed = true
		f.cond.Broadcast()
	}
}

// Len returns the number of queued (not in-flight) entries.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queue.Len()
}

// entryHeap implements heap.Interface ordering entries by ascending depth.
type entryHeap []crawler.Entry

func (h entryHeap) Len() int           { return len(h) }
func (h entryHeap) Less(i, j int) bool { return h[i].Depth < h[j].Depth }
func (h entryHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *entryHeap) Push(x any) {
	e, _ := x.(crawler.Entry)
	*h = append(*h, e)
}

func (h *entryHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[0 : n-1]
	return x
}
