package main

import (
	"context"
	"io"
	"log/slog"
	"time"
)

// Dependencies holds shared services and configuration for command
// execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Run   RunCmd   `cmd:"" help:"Crawl starting from the given seed URLs"`
	Stats StatsCmd `cmd:"" help:"Show statistics for a stored crawl"`

	Verbose bool `short:"v" help:"Enable debug logging"`
}

// RunCmd is the "run" subcommand.
type RunCmd struct {
	Seeds []string `arg:"" optional:"" help:"Seed URLs"`

	Config string `short:"c" type:"path" help:"YAML config file; flags override its values"`

	MaxPages  int           `default:"100" help:"Maximum number of pages to fetch"`
	MaxDepth  int           `default:"3" help:"Maximum link depth from a seed"`
	Delay     time.Duration `default:"1s" help:"Minimum delay between requests to one host"`
	Timeout   time.Duration `default:"10s" help:"Per-request timeout"`
	UserAgent string        `name:"user-agent" default:"frontier/1.0" help:"User-Agent header"`

	Allow    []string `help:"Restrict the crawl to these domains (repeatable)"`
	Exclude  []string `help:"Skip URLs containing these substrings (repeatable)"`
	NoRobots bool     `name:"no-robots" help:"Ignore robots.txt"`

	Sitemap     bool   `help:"Discover additional seeds from the first seed's sitemap"`
	Extractor   string `default:"goquery" enum:"goquery,trafilatura" help:"Content extractor"`
	Concurrency int    `default:"1" help:"Number of crawl workers"`

	DB string `type:"path" help:"SQLite database to persist pages into"`
}

// StatsCmd is the "stats" subcommand.
type StatsCmd struct {
	CrawlID string `arg:"" help:"Crawl session ID"`
	DB      string `type:"path" required:"" help:"SQLite database to read"`
}
