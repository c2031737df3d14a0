package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/itisuniqueofficial/advanced-web-crawler/sqlite"
)

// Run executes the results command.
func (c *ResultsCmd) Run(deps *Dependencies) error {
	if _, err := os.Stat(c.DB); err != nil {
		return fmt.Errorf("database %q not found", c.DB)
	}

	db := sqlite.NewDB(c.DB)
	if err := db.Open(); err != nil {
		return fmt.Errorf("failed to open database at %q: %w", c.DB, err)
	}
	defer db.Close()

	filter := sqlite.ResultFilter{Limit: c.Limit}
	if c.RunID != "" {
		filter.RunID = &c.RunID
	}

	results, err := sqlite.NewResultService(db).FindResults(deps.Ctx, filter)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Fprintln(deps.Stderr, "No results found")
		return nil
	}

	w := tabwriter.NewWriter(deps.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "URL\tDEPTH\tTITLE\tFETCHED")
	for _, res := range results {
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\n",
			res.URL, res.Depth, res.Title, res.FetchedAt.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}
