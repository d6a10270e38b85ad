package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/pelinbingl/emlak"
	"github.com/pelinbingl/emlak/ingest"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx         context.Context
	Stdout      io.Writer
	Stderr      io.Writer
	Logger      *slog.Logger
	Ingester    *ingest.Ingester
	Listings    emlak.ListingService
	Concurrency int
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Out         string        `default:"data/all_listings.csv" env:"EMLAK_OUT" help:"Master CSV file listings are appended to"`
	Data        string        `default:"data" env:"EMLAK_DATA" help:"Root folder of per-listing folders"`
	DB          string        `name:"db" default:"data/emlak.db" env:"EMLAK_DB" help:"SQLite database of stored listings (empty disables it)"`
	Policy      string        `default:"sentinel" enum:"sentinel,site" env:"EMLAK_POLICY" help:"Default for unresolved fields (sentinel or site)"`
	Timeout     time.Duration `default:"15s" env:"EMLAK_TIMEOUT" help:"Page and image request timeout"`
	Concurrency int           `short:"c" default:"4" env:"EMLAK_CONCURRENCY" help:"Documents processed at once"`
	NoImages    bool          `help:"Keep image references without copying or downloading images"`
	Render      bool          `help:"Fall back to a headless browser for blocked or script-only pages"`
	Verbose     bool          `short:"v" help:"Log every fetch, field and store operation"`

	Parse ParseCmd `cmd:"" help:"Extract listings from saved HTML pages"`
	Fetch FetchCmd `cmd:"" help:"Fetch listing pages and extract their listings"`
	List  ListCmd  `cmd:"" help:"List listings stored in the database"`
}

// ParseCmd is the "parse" subcommand.
type ParseCmd struct {
	Files []string `arg:"" name:"html" help:"Saved listing pages"`
}

// FetchCmd is the "fetch" subcommand.
type FetchCmd struct {
	URLs []string `arg:"" name:"url" help:"Listing page URLs"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	City      string `help:"Only listings in this city"`
	District  string `help:"Only listings in this district"`
	ListingID string `name:"listing-id" help:"Only listings with this listing number"`
	Limit     int    `default:"20" help:"Maximum listings shown (0 for all)"`
}
