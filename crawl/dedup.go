package crawl

import (
	"sync"

	crawler "github.com/itisuniqueofficial/advanced-web-crawler"
)

// Compile-time interface verification.
var _ crawler.DedupStore = (*ClaimSet)(nil)

// ClaimSet is an exact, in-memory dedup store. TryClaim is the only way a
// key transitions from unclaimed to claimed, and the transition happens for
// exactly one caller per key. A ClaimSet is scoped to a single crawl run;
// runs never share one.
//
// It is safe for concurrent use by multiple goroutines.
type ClaimSet struct {
	mu      sync.Mutex
	claimed map[crawler.Key]struct{}
}

// NewClaimSet creates an empty ClaimSet.
func NewClaimSet() *ClaimSet {
	return &ClaimSet{
		claimed: make(map[crawler.Key]struct{}),
	}
}

// TryClaim atomically claims key, returning true only if it was unclaimed.
func (s *ClaimSet) TryClaim(key crawler.Key) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.claimed[key]; ok {
		return false
	}
	s.claimed[key] = struct{}{}
	return true
}

// Size returns the number of claimed keys.
func (s *ClaimSet) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.claimed)
}
