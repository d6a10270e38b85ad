// Package slog provides logging decorators for the emlak services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/pelinbingl/emlak"
)

// Ensure the logging wrappers implement their interfaces.
var (
	_ emlak.Fetcher    = (*LoggingFetcher)(nil)
	_ emlak.Downloader = (*LoggingDownloader)(nil)
)

// LoggingFetcher wraps a Fetcher with logging.
type LoggingFetcher struct {
	next   emlak.Fetcher
	logger *slog.Logger
	name   string
}

// NewLoggingFetcher creates a new LoggingFetcher. name tells fetchers apart
// in the log, e.g. "http" or "render".
func NewLoggingFetcher(next emlak.Fetcher, logger *slog.Logger, name string) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger, name: name}
}

// Fetch logs the URL being fetched and delegates to the wrapped fetcher.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		f.logger.Info("fetch",
			"fetcher", f.name,
			"url", url,
			"bytes", len(html),
			"duration", time.Since(begin),
			"code", emlak.ErrorCode(err),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}

// LoggingDownloader wraps a Downloader with debug logging.
type LoggingDownloader struct {
	next   emlak.Downloader
	logger *slog.Logger
}

// NewLoggingDownloader creates a new LoggingDownloader.
func NewLoggingDownloader(next emlak.Downloader, logger *slog.Logger) *LoggingDownloader {
	return &LoggingDownloader{next: next, logger: logger}
}

// Download logs each image retrieval. Failures are logged at warn level
// since the listing is still saved without the image.
func (d *LoggingDownloader) Download(ctx context.Context, url string) (data []byte, err error) {
	defer func(begin time.Time) {
		level := slog.LevelDebug
		if err != nil {
			level = slog.LevelWarn
		}
		d.logger.Log(ctx, level, "download",
			"url", url,
			"bytes", len(data),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return d.next.Download(ctx, url)
}
