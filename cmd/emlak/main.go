package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/pelinbingl/emlak"
	"github.com/pelinbingl/emlak/assemble"
	"github.com/pelinbingl/emlak/csv"
	"github.com/pelinbingl/emlak/fs"
	"github.com/pelinbingl/emlak/goquery"
	emlakhttp "github.com/pelinbingl/emlak/http"
	"github.com/pelinbingl/emlak/ingest"
	"github.com/pelinbingl/emlak/readability"
	"github.com/pelinbingl/emlak/rod"
	emlakslog "github.com/pelinbingl/emlak/slog"
	"github.com/pelinbingl/emlak/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// A missing .env file is not an error.
	_ = godotenv.Load()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// SQLite database used by the listing service. Nil when --db is empty.
	DB *sqlite.DB

	// Fetcher is closed when Run returns.
	Fetcher emlak.Fetcher
}

// NewMain returns a new instance of Main.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	var errs []error
	if m.Fetcher != nil {
		errs = append(errs, m.Fetcher.Close())
	}
	if m.DB != nil {
		errs = append(errs, m.DB.Close())
	}
	return errors.Join(errs...)
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
		kong.Name("emlak"),
		kong.Description("Extract real-estate listings from saved pages or listing URLs."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'emlak --help' to see available commands")
	}
	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	defer m.Close()

	deps.Logger = newLogger(stderr, cli.Verbose)
	deps.Concurrency = cli.Concurrency

	if cli.DB != "" {
		if err := os.MkdirAll(filepath.Dir(cli.DB), 0755); err != nil {
			return err
		}
		m.DB = sqlite.NewDB(cli.DB)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintln(stderr, "Hint: Set EMLAK_DB to use a different database path, or --db='' to disable it")
			return fmt.Errorf("failed to open database at %q: %w", cli.DB, err)
		}
		deps.Listings = sqlite.NewListingService(m.DB)
	}

	switch command := strings.Fields(kongCtx.Command())[0]; command {
	case "parse", "fetch":
		ingester, err := m.newIngester(cli, command == "fetch", deps)
		if err != nil {
			return err
		}
		deps.Ingester = ingester
	}

	return kongCtx.Run(deps)
}

// newIngester wires the extraction pipeline and its stores.
func (m *Main) newIngester(cli *CLI, live bool, deps *Dependencies) (*ingest.Ingester, error) {
	policy, err := emlak.ParseDefaultPolicy(cli.Policy)
	if err != nil {
		return nil, err
	}
	logger := deps.Logger

	assembler := &assemble.Assembler{
		State:   goquery.NewStateExtractor(),
		Fields:  goquery.NewFieldExtractor(),
		Images:  goquery.NewImageFinder(),
		Content: readability.NewExtractor(),
		Policy:  policy,
	}

	writers := []emlak.ListingWriter{
		emlakslog.NewLoggingWriter(fs.NewListingStore(cli.Data), logger, "fs"),
		emlakslog.NewLoggingWriter(csv.NewWriter(cli.Out), logger, "csv"),
	}
	if deps.Listings != nil {
		writers = append(writers, emlakslog.NewLoggingWriter(deps.Listings, logger, "sqlite"))
	}

	in := &ingest.Ingester{
		Assembler: emlakslog.NewLoggingAssembler(assembler, logger),
		Writer:    ingest.NewMultiWriter(writers...),
		DataDir:   cli.Data,
		Logf: func(format string, args ...any) {
			logger.Warn(fmt.Sprintf(format, args...))
		},
	}
	if !cli.NoImages {
		in.Assets = &fs.AssetStore{Timeout: cli.Timeout}
	}

	if !live {
		return in, nil
	}

	httpFetcher := emlakhttp.NewFetcher(emlakhttp.WithTimeout(cli.Timeout))
	fetcher := &ingest.FallbackFetcher{Primary: emlakslog.NewLoggingFetcher(httpFetcher, logger, "http")}
	m.Fetcher = fetcher
	if cli.Render {
		renderer, err := rod.NewFetcher(rod.WithFetchTimeout(max(2*cli.Timeout, rod.DefaultFetchTimeout)))
		if err != nil {
			fmt.Fprintln(deps.Stderr, "Hint: Chrome or Chromium must be installed for --render")
			return nil, fmt.Errorf("failed to start browser: %w", err)
		}
		fetcher.Render = emlakslog.NewLoggingFetcher(renderer, logger, "rod")
	}

	in.Fetcher = fetcher
	in.RetryDelays = ingest.DefaultRetryDelays()
	if in.Assets != nil {
		in.Assets.Downloader = emlakslog.NewLoggingDownloader(httpFetcher, logger)
		in.Assets.Limiter = ingest.NewHostLimiter(ingest.DefaultHostRate)
	}
	return in, nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
