package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/medroster"
	"github.com/fwojciec/medroster/config"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx        context.Context
	Stdout     io.Writer
	Stderr     io.Writer
	Logger     *slog.Logger
	Config     *config.Config
	Vocabulary *medroster.Vocabulary

	Fetcher     medroster.Fetcher
	Reader      medroster.PageReader
	Links       medroster.LinkReader
	Extractor   medroster.Extractor
	Sitemaps    medroster.SitemapService
	RateLimiter medroster.HostLimiter

	// Records and Runs are nil unless a database is configured.
	Records medroster.RecordService
	Runs    medroster.RunService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config   string `short:"C" type:"path" help:"YAML config file" env:"MEDROSTER_CONFIG"`
	DB       string `type:"path" help:"SQLite database for records and run history"`
	LogLevel string `name:"log-level" help:"Log level: debug, info, warn or error (default from config)"`

	Scrape  ScrapeCmd  `cmd:"" help:"Discover and scrape doctor profiles into a raw CSV"`
	Clean   CleanCmd   `cmd:"" help:"Normalize, validate and deduplicate a dataset"`
	Repair  RepairCmd  `cmd:"" help:"Re-fetch profiles missing specialty, hospital or location"`
	Extract ExtractCmd `cmd:"" help:"Run the field extractor on a saved page"`
	Runs    RunsCmd    `cmd:"" help:"List recorded pipeline runs"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	URL         string   `arg:"" help:"Listing page URL, or the directory root with --country or --sitemap"`
	Out         string   `short:"o" required:"" type:"path" help:"Raw CSV dataset; existing rows are kept and skipped"`
	Country     []string `name:"country" help:"Build listing URLs for these countries (repeatable)"`
	Sitemap     bool     `help:"Discover profiles from the sitemap instead of listing pages"`
	Static      bool     `help:"Fetch with plain HTTP instead of a headless browser"`
	Preview     bool     `short:"p" help:"Print profile URLs without scraping"`
	Dump        string   `type:"path" help:"Directory to save each page's text lines"`
	Concurrency int      `short:"c" help:"Concurrent fetch limit (default from config)"`
	MaxPages    int      `name:"max-pages" help:"Listing pages to visit (default from config)"`
}

// CleanCmd is the "clean" subcommand.
type CleanCmd struct {
	In           string   `arg:"" type:"existingfile" help:"Raw or normalized CSV dataset"`
	Out          string   `arg:"" type:"path" help:"Clean CSV dataset to write"`
	Country      []string `name:"country" help:"Countries to keep (repeatable, default from config)"`
	AllCountries bool     `name:"all-countries" help:"Keep records from every country"`
	XLSX         string   `name:"xlsx" type:"path" help:"Also write the clean dataset as an Excel workbook"`
}

// RepairCmd is the "repair" subcommand.
type RepairCmd struct {
	In          string `arg:"" type:"existingfile" help:"Dataset with incomplete records"`
	Out         string `arg:"" type:"path" help:"Repaired dataset to write"`
	Static      bool   `help:"Fetch with plain HTTP instead of a headless browser"`
	Concurrency int    `short:"c" help:"Concurrent fetch limit (default from config)"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	File string `arg:"" type:"existingfile" help:"Text file of page lines, as written by scrape --dump"`
	URL  string `help:"Profile URL to report when the file has no header"`
}

// RunsCmd is the "runs" subcommand.
type RunsCmd struct {
	Limit int `short:"n" default:"20" help:"Number of runs to show"`
}
