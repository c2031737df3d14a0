package main

import (
	"fmt"

	crawler "github.com/itisuniqueofficial/advanced-web-crawler"
	crawlhttp "github.com/itisuniqueofficial/advanced-web-crawler/http"
)

// Run executes the seeds command.
func (c *SeedsCmd) Run(deps *Dependencies) error {
	urls, err := crawlhttp.NewSeedDiscoverer(nil).Discover(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", crawler.ErrorMessage(err))
		return err
	}
	if len(urls) == 0 {
		fmt.Fprintf(deps.Stderr, "No sitemaps found for %s\n", c.URL)
		return nil
	}
	for _, u := range urls {
		fmt.Fprintln(deps.Stdout, u)
	}
	return nil
}
