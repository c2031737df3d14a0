// Package goquery provides HTML parsing for the crawler: outbound links,
// meta tags, images, and the canonical hint, extracted with CSS selectors.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	crawler "github.com/itisuniqueofficial/advanced-web-crawler"
)

// Compile-time interface verification.
var _ crawler.Extractor = (*Extractor)(nil)

// Extractor parses HTML into the fields the crawler records and schedules
// from. It is stateless and safe for concurrent use.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract parses html and returns the page's title, meta description and
// keywords, image sources, canonical hint, and outbound links. Relative
// hrefs and srcs are resolved against baseURL. Anchors whose rel attribute
// contains "nofollow" anywhere in its space-separated value set are marked
// NoFollow.
func (e *Extractor) Extract(html string, baseURL string) (*crawler.Page, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, crawler.Errorf(crawler.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, crawler.Errorf(crawler.EINVALID, "failed to parse HTML: %v", err)
	}

	page := &crawler.Page{
		HTML:            html,
		Title:           strings.TrimSpace(doc.Find("title").First().Text()),
		MetaDescription: metaContent(doc, "description"),
		MetaKeywords:    metaContent(doc, "keywords"),
	}

	if href, ok := doc.Find(`link[rel="canonical"]`).First().Attr("href"); ok {
		if resolved := resolve(base, href); resolved != "" {
			page.CanonicalURL = resolved
		}
	}

	doc.Find("img[src]").Each(func(_ int, sel *goquery.Selection) {
		src, _ := sel.Attr("src")
		if resolved := resolve(base, src); resolved != "" {
			page.Images = append(page.Images, resolved)
		}
	})

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if href == "" || isNonHTTPLink(href) {
			return
		}
		resolved := resolve(base, href)
		if resolved == "" {
			return
		}
		page.Links = append(page.Links, crawler.Link{
			URL:      resolved,
			NoFollow: hasRel(sel, "nofollow"),
		})
	})

	return page, nil
}

// metaContent returns the content attribute of <meta name=...>.
func metaContent(doc *goquery.Document, name string) string {
	content, _ := doc.Find(`meta[name="` + name + `"]`).First().Attr("content")
	return strings.TrimSpace(content)
}

// hasRel reports whether value appears in the selection's rel attribute,
// treating the attribute as a space-separated set.
func hasRel(sel *goquery.Selection, value string) bool {
	rel, ok := sel.Attr("rel")
	if !ok {
		return false
	}
	for _, v := range strings.Fields(rel) {
		if strings.EqualFold(v, value) {
			return true
		}
	}
	return false
}

// isNonHTTPLink checks for URL schemes that can never be crawled.
func isNonHTTPLink(href string) bool {
	lower := strings.ToLower(href)
	for _, prefix := range []string{"javascript:", "mailto:", "tel:", "data:", "ftp:", "file:"} {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}

// resolve resolves href against base, returning "" for unparseable hrefs.
func resolve(base *url.URL, href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}
