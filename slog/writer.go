package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/pelinbingl/emlak"
)

// Ensure LoggingWriter implements emlak.ListingWriter.
var _ emlak.ListingWriter = (*LoggingWriter)(nil)

// LoggingWriter wraps a ListingWriter with logging.
type LoggingWriter struct {
	next   emlak.ListingWriter
	logger *slog.Logger
	name   string
}

// NewLoggingWriter creates a new LoggingWriter. name identifies the store,
// e.g. "csv" or "sqlite".
func NewLoggingWriter(next emlak.ListingWriter, logger *slog.Logger, name string) *LoggingWriter {
	return &LoggingWriter{next: next, logger: logger, name: name}
}

// CreateListing logs the stored listing and delegates to the wrapped writer.
func (w *LoggingWriter) CreateListing(ctx context.Context, listing *emlak.Listing) (err error) {
	defer func(begin time.Time) {
		w.logger.Info("store listing",
			"store", w.name,
			"source", listing.SourceReference,
			"listing_id", listing.ListingID,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return w.next.CreateListing(ctx, listing)
}
