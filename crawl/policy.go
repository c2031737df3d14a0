package crawl

import "strings"

// Allow reports whether a link from sourceHost to targetHost may be
// followed. When restricted is false every target is allowed; otherwise
// the hosts must match exactly, ignoring case. Schemes play no part.
func Allow(sourceHost, targetHost string, restricted bool) bool {
	if !restricted {
		return true
	}
	return strings.EqualFold(sourceHost, targetHost)
}

// DomainPolicy is the per-run domain restriction: when enabled, only hosts
// that appeared in the seed set may be crawled.
type DomainPolicy struct {
	restricted bool
	seeds      []string
}

// NewDomainPolicy creates a DomainPolicy over the given seed hosts.
func NewDomainPolicy(restricted bool, seedHosts []string) *DomainPolicy {
	return &DomainPolicy{restricted: restricted, seeds: seedHosts}
}

// Allow reports whether host may be crawled under this policy. A host is
// allowed when a link from any seed host to it would be allowed.
func (p *DomainPolicy) Allow(host string) bool {
	if !p.restricted {
		return true
	}
	for _, seed := range p.seeds {
		if Allow(seed, host, true) {
			return true
		}
	}
	return false
}
