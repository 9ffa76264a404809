package main

import (
	"fmt"
	"log/slog"

	"github.com/fwojciec/frontier"
	"github.com/fwojciec/frontier/crawl"
	"github.com/fwojciec/frontier/goquery"
	"github.com/fwojciec/frontier/htmltomarkdown"
	crawlhttp "github.com/fwojciec/frontier/http"
	frontierslog "github.com/fwojciec/frontier/slog"
	"github.com/fwojciec/frontier/sqlite"
	"github.com/fwojciec/frontier/trafilatura"
)

// robotsRPS rate-limits auxiliary robots.txt traffic per host.
const robotsRPS = 1.0

// Run executes the "run" subcommand.
func (c *RunCmd) Run(deps *Dependencies) error {
	if c.Config != "" {
		file, err := loadFileConfig(c.Config)
		if err != nil {
			return fmt.Errorf("failed to load config file: %w", err)
		}
		c.apply(file)
	}

	if len(c.Seeds) == 0 {
		return frontier.Errorf(frontier.EINVALID, "at least one seed URL required")
	}

	engine, err := crawl.New(frontier.Config{
		MaxPages:         c.MaxPages,
		MaxDepth:         c.MaxDepth,
		Delay:            c.Delay,
		RespectRobots:    !c.NoRobots,
		AllowedDomains:   c.Allow,
		ExcludedPatterns: c.Exclude,
		UserAgent:        c.UserAgent,
		Timeout:          c.Timeout,
	})
	if err != nil {
		return err
	}

	httpFetcher := crawlhttp.NewFetcher(
		crawlhttp.WithTimeout(c.Timeout),
		crawlhttp.WithUserAgent(c.UserAgent),
	)
	var fetcher frontier.Fetcher = httpFetcher
	if deps.Logger.Enabled(deps.Ctx, slog.LevelDebug) {
		fetcher = frontierslog.NewLoggingFetcher(httpFetcher, deps.Logger)
	}

	var extractor frontier.Extractor
	switch c.Extractor {
	case "trafilatura":
		extractor = trafilatura.NewExtractor()
	default:
		extractor = goquery.NewExtractor()
	}

	seeds := c.Seeds
	if c.Sitemap {
		source := frontierslog.NewLoggingSeedSource(
			crawlhttp.NewSeedSource(httpFetcher.Client()), deps.Logger)
		discovered, err := source.Discover(deps.Ctx, seeds[0])
		if err != nil {
			return fmt.Errorf("sitemap discovery: %w", err)
		}
		seeds = append(seeds, discovered...)
	}

	var store frontier.PageStore
	if c.DB != "" {
		db := sqlite.NewDB(c.DB)
		if err := db.Open(); err != nil {
			return fmt.Errorf("failed to open database at %q: %w", c.DB, err)
		}
		defer db.Close()
		store = sqlite.NewPageStore(db)
	}

	runner := &crawl.Runner{
		Engine:      engine,
		Fetcher:     fetcher,
		Extractor:   extractor,
		Converter:   htmltomarkdown.NewConverter(),
		Robots:      crawlhttp.NewRobotsSource(httpFetcher.Client(), c.UserAgent),
		Store:       store,
		Limiter:     crawl.NewDomainLimiter(robotsRPS),
		Logger:      deps.Logger,
		Concurrency: c.Concurrency,
		Progress: func(event crawl.ProgressEvent) {
			switch event.Type {
			case crawl.ProgressCompleted:
				fmt.Fprintf(deps.Stdout, "  ok    %s\n", event.URL)
			case crawl.ProgressSkipped:
				fmt.Fprintf(deps.Stdout, "  skip  %s\n", event.URL)
			case crawl.ProgressFailed:
				fmt.Fprintf(deps.Stdout, "  fail  %s: %v\n", event.URL, event.Error)
			}
		},
	}

	summary, err := runner.Run(deps.Ctx, seeds)
	if err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "\nCrawled %d pages (%d saved, %d skipped, %d failed)\n",
		summary.Crawled, summary.Saved, summary.Skipped, summary.Failed)
	printStats(deps.Stdout, summary.Stats)
	return nil
}
