package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/medroster"
	"github.com/fwojciec/medroster/config"
	"github.com/fwojciec/medroster/crawl"
	"github.com/fwojciec/medroster/goquery"
	"github.com/fwojciec/medroster/heuristic"
	medhttp "github.com/fwojciec/medroster/http"
	"github.com/fwojciec/medroster/rod"
	medslog "github.com/fwojciec/medroster/slog"
	"github.com/fwojciec/medroster/sqlite"
	medyaml "github.com/fwojciec/medroster/yaml"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// FetcherFunc builds the page fetcher for scrape and repair.
type FetcherFunc func(cfg *config.Config, static bool) (medroster.Fetcher, error)

// Main represents the program.
type Main struct {
	// SQLite database, opened when a database path is configured.
	DB *sqlite.DB

	// NewFetcher builds the page fetcher. Defaults to a headless browser,
	// or plain HTTP when static is set.
	NewFetcher FetcherFunc
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{NewFetcher: defaultFetcher}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("medroster"),
		kong.Description("Scrape, clean and store doctor directory profiles."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'medroster --help' to see available commands")
	}
	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := kongCtx.Selected().Name

	cfg, err := config.Load(cli.Config)
	if err != nil {
		return fmt.Errorf("config: %s", medroster.ErrorMessage(err))
	}
	if cli.LogLevel != "" {
		cfg.Log.Level = strings.ToLower(cli.LogLevel)
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("config: %s", medroster.ErrorMessage(err))
		}
	}
	if cli.DB != "" {
		cfg.DB.Path = cli.DB
	}
	deps.Config = cfg
	deps.Logger = medslog.NewLogger(stderr, cfg.Log.Level)

	deps.Vocabulary = medroster.DefaultVocabulary()
	if cfg.Clean.Vocabulary != "" {
		deps.Vocabulary, err = medyaml.LoadVocabulary(cfg.Clean.Vocabulary)
		if err != nil {
			return fmt.Errorf("vocabulary: %s", medroster.ErrorMessage(err))
		}
	}
	deps.Extractor = medslog.NewLoggingExtractor(heuristic.NewExtractor(deps.Vocabulary), deps.Logger)
	deps.Reader = goquery.NewPageReader()

	if cfg.DB.Path != "" {
		m.DB = sqlite.NewDB(cfg.DB.Path)
		if err := m.DB.Open(ctx); err != nil {
			fmt.Fprintln(stderr, "Hint: Set MEDROSTER_DB_PATH or --db to use a different database path")
			return fmt.Errorf("failed to open database at %q: %w", cfg.DB.Path, err)
		}
		defer m.Close()

		deps.Records = medslog.NewLoggingRecordService(sqlite.NewRecordService(m.DB), deps.Logger)
		deps.Runs = sqlite.NewRunService(m.DB)
	}

	if cmd == "scrape" || cmd == "repair" {
		links := goquery.NewLinkReader()
		links.ProfileMarker = cfg.Scrape.ProfileMarker
		deps.Links = links
		deps.Sitemaps = medslog.NewLoggingSitemapService(medhttp.NewSitemapService(nil), deps.Logger)
		var limits []crawl.LimiterOption
		for host, rps := range cfg.Scrape.HostRates {
			limits = append(limits, crawl.WithHostRate(host, rps))
		}
		deps.RateLimiter = crawl.NewHostLimiter(cfg.Scrape.RequestsPerSecond, limits...)

		static := cli.Repair.Static
		if cmd == "scrape" {
			static = cli.Scrape.Static
		}
		if cmd != "scrape" || !cli.Scrape.Preview || !cli.Scrape.Sitemap {
			fetcher, err := m.NewFetcher(cfg, static)
			if err != nil {
				fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed, or pass --static")
				return fmt.Errorf("failed to start browser: %w", err)
			}
			defer fetcher.Close()
			deps.Fetcher = medslog.NewLoggingFetcher(fetcher, deps.Logger)
		}
	}

	return kongCtx.Run(deps)
}

func defaultFetcher(cfg *config.Config, static bool) (medroster.Fetcher, error) {
	if static {
		return medhttp.NewFetcher(medhttp.WithTimeout(cfg.Scrape.FetchTimeout)), nil
	}
	return rod.NewFetcher(
		rod.WithFetchTimeout(cfg.Scrape.FetchTimeout),
		rod.WithBrowserOptions(rod.WithUserAgent(medhttp.DefaultUserAgent)),
	)
}
