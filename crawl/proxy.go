package crawl

import (
	"net/url"
	"sync/atomic"

	crawler "github.com/itisuniqueofficial/advanced-web-crawler"
)

var _ crawler.ProxyPool = (*ProxyRing)(nil)

// ProxyRing hands out proxies from a static list in round-robin order,
// spreading fetches evenly across them. It is safe for concurrent use.
type ProxyRing struct {
	proxies []crawler.Proxy
	next    atomic.Uint64
}

// NewProxyRing parses proxyURLs into a ProxyRing.
// Returns EINVALID if any URL cannot be parsed.
func NewProxyRing(proxyURLs []string) (*ProxyRing, error) {
	r := &ProxyRing{}
	for _, raw := range proxyURLs {
		u, err := url.Parse(raw)
		if err != nil || u.Host == "" {
			return nil, crawler.Errorf(crawler.EINVALID, "invalid proxy URL %q", raw)
		}
		r.proxies = append(r.proxies, crawler.Proxy{URL: u})
	}
	return r, nil
}

// Next returns the next proxy in rotation, or nil when the ring is empty.
func (r *ProxyRing) Next() *crawler.Proxy {
	if len(r.proxies) == 0 {
		return nil
	}
	n := r.next.Add(1) - 1
	return &r.proxies[n%uint64(len(r.proxies))]
}
