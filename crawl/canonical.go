package crawl

import (
	"net/url"
	"strings"

	crawler "github.com/itisuniqueofficial/advanced-web-crawler"
)

// Canonicalize resolves href against base and normalizes the result into a
// comparable identity. Normalization lower-cases the scheme and host, drops
// default ports, strips the fragment, sorts query parameters, and removes a
// trailing slash from non-root paths. The returned URL is the normalized
// absolute URL to fetch; the key is its string form.
//
// base may be nil for absolute hrefs (seeds). Returns EINVALID when href
// cannot be parsed or does not resolve to an http(s) URL; such links are
// dropped by callers, never retried.
//
// Canonicalize is idempotent: canonicalizing its own output is a no-op.
func Canonicalize(base *url.URL, href string) (crawler.Key, *url.URL, error) {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return "", nil, crawler.Errorf(crawler.EINVALID, "malformed URL %q: %v", href, err)
	}

	u := ref
	if base != nil {
		u = base.ResolveReference(ref)
	}

	u.Scheme = strings.ToLower(u.Scheme)
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", nil, crawler.Errorf(crawler.EINVALID, "non-HTTP URL %q", href)
	}
	if u.Host == "" {
		return "", nil, crawler.Errorf(crawler.EINVALID, "URL %q has no host", href)
	}

	u.Host = strings.ToLower(u.Host)
	u.Host = strings.TrimSuffix(u.Host, defaultPort(u.Scheme))
	u.Fragment = ""
	u.User = nil

	// A root path and an empty path are the same page.
	if u.Path == "" {
		u.Path = "/"
	} else if u.Path != "/" {
		u.Path = strings.TrimSuffix(u.Path, "/")
	}

	// url.Values.Encode emits keys in sorted order, which makes query
	// parameter order irrelevant to the key.
	if u.RawQuery != "" {
		u.RawQuery = u.Query().Encode()
	}

	return crawler.Key(u.String()), u, nil
}

func defaultPort(scheme string) string {
	if scheme == "https" {
		return ":443"
	}
	return ":80"
}
