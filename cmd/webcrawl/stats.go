package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/fwojciec/frontier"
	"github.com/fwojciec/frontier/sqlite"
)

// Run executes the "stats" subcommand.
func (c *StatsCmd) Run(deps *Dependencies) error {
	db := sqlite.NewDB(c.DB)
	if err := db.Open(); err != nil {
		return fmt.Errorf("failed to open database at %q: %w", c.DB, err)
	}
	defer db.Close()

	store := sqlite.NewPageStore(db)
	stats, err := store.FindCrawlStats(deps.Ctx, c.CrawlID)
	if err != nil {
		return err
	}

	printStats(deps.Stdout, stats)
	return nil
}

// printStats writes a stats summary in a stable order.
func printStats(w io.Writer, stats *frontier.Stats) {
	fmt.Fprintf(w, "pages crawled:    %d\n", stats.PagesCrawled)
	fmt.Fprintf(w, "frontier left:    %d\n", stats.FrontierRemaining)
	fmt.Fprintf(w, "unique URLs:      %d\n", stats.UniqueURLsSeen)
	fmt.Fprintf(w, "unique content:   %d\n", stats.UniqueContentHashes)

	statuses := make([]string, 0, len(stats.StatusCounts))
	for status := range stats.StatusCounts {
		statuses = append(statuses, string(status))
	}
	sort.Strings(statuses)
	for _, status := range statuses {
		fmt.Fprintf(w, "  %-14s  %d\n", status, stats.StatusCounts[frontier.Status(status)])
	}
}
