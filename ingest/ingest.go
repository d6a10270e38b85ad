// Package ingest turns saved pages and listing URLs into stored listings.
// It coordinates fetching, assembly, image storage and persistence.
package ingest

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/pelinbingl/emlak"
	"github.com/pelinbingl/emlak/fs"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of documents a batch processes at once.
const DefaultConcurrency = 4

// Ingester extracts one listing per document and stores it.
type Ingester struct {
	Assembler emlak.Assembler
	Writer    emlak.ListingWriter

	// Fetcher retrieves pages for IngestURL.
	Fetcher emlak.Fetcher

	// Assets stores listing images under DataDir. Nil keeps the discovered
	// image references as they are.
	Assets  *fs.AssetStore
	DataDir string

	RetryDelays []time.Duration
	Logf        LogFunc
}

// Result is the outcome of ingesting one document.
type Result struct {
	Source   string
	Listing  *emlak.Listing
	Warnings []string

	// Images is nil when no images were stored.
	Images *fs.AssetReport
}

// IngestFile extracts the listing from a saved page. Images are copied from
// the page's saved-assets folder when there is one.
func (in *Ingester) IngestFile(ctx context.Context, path string) (*Result, error) {
	html, err := fs.ReadHTML(path)
	if err != nil {
		return nil, err
	}

	asm, err := in.Assembler.Assemble(ctx, path, html)
	if err != nil {
		return nil, err
	}
	result := &Result{Source: path, Listing: asm.Listing, Warnings: asm.Warnings}

	if saved := fs.SavedAssetsDir(path); saved != "" && in.Assets != nil {
		report, err := in.Assets.CopyLocal(fs.ListingDir(in.DataDir, asm.Listing), saved)
		if err != nil {
			return nil, fmt.Errorf("copy images: %w", err)
		}
		in.attachImages(result, report)
	}

	return result, in.store(ctx, result)
}

// IngestURL fetches a listing page and extracts its listing. Images are
// downloaded into the listing folder.
func (in *Ingester) IngestURL(ctx context.Context, rawURL string) (*Result, error) {
	if in.Fetcher == nil {
		return nil, emlak.Errorf(emlak.EINVALID, "no fetcher configured")
	}

	html, err := FetchWithRetry(ctx, rawURL, in.Fetcher.Fetch, in.Logf, in.RetryDelays)
	if err != nil {
		return nil, err
	}

	asm, err := in.Assembler.Assemble(ctx, rawURL, html)
	if err != nil {
		return nil, err
	}
	result := &Result{Source: rawURL, Listing: asm.Listing, Warnings: asm.Warnings}

	if in.Assets != nil && len(asm.Listing.ImageReferences) > 0 {
		report, err := in.Assets.Download(ctx, fs.ListingDir(in.DataDir, asm.Listing), asm.Listing.ImageReferences)
		if err != nil {
			return nil, fmt.Errorf("download images: %w", err)
		}
		in.attachImages(result, report)
	}

	return result, in.store(ctx, result)
}

// Ingest dispatches to IngestURL for http(s) URLs and to IngestFile
// otherwise.
func (in *Ingester) Ingest(ctx context.Context, source string) (*Result, error) {
	if isURL(source) {
		return in.IngestURL(ctx, source)
	}
	return in.IngestFile(ctx, source)
}

// attachImages replaces the listing's references with the stored files.
func (in *Ingester) attachImages(result *Result, report *fs.AssetReport) {
	result.Images = report
	result.Listing.AttachImages(report.Saved)
	for _, f := range report.Failed {
		if in.Logf != nil {
			in.Logf("image %s skipped: %v", f.Ref, f.Err)
		}
	}
}

func (in *Ingester) store(ctx context.Context, result *Result) error {
	if in.Writer == nil {
		return nil
	}
	if err := in.Writer.CreateListing(ctx, result.Listing); err != nil {
		return fmt.Errorf("store %s: %w", result.Source, err)
	}
	return nil
}

func isURL(source string) bool {
	u, err := url.Parse(source)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// BatchResult holds the outcome of a batch.
type BatchResult struct {
	Saved  int
	Failed int

	// Results holds one entry per source, in source order. Failed sources
	// have a nil entry.
	Results []*Result
}

// ProgressEvent reports progress during a batch.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	Source    string
	Result    *Result
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting batch progress.
type ProgressFunc func(event ProgressEvent)

// Batch ingests every source with at most concurrency documents in flight.
// A failed document is reported through progress and the batch moves on.
// Cancelling ctx stops the batch and returns the context error.
// Progress events are delivered from a single goroutine.
func (in *Ingester) Batch(ctx context.Context, sources []string, concurrency int, progress ProgressFunc) (*BatchResult, error) {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	if progress == nil {
		progress = func(ProgressEvent) {}
	}

	type outcome struct {
		position int
		result   *Result
		err      error
	}

	total := len(sources)
	progress(ProgressEvent{Type: ProgressStarted, Total: total})

	outcomes := make(chan outcome, total)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, source := range sources {
			if gctx.Err() != nil {
				break
			}
			g.Go(func() error {
				result, err := in.Ingest(gctx, source)
				outcomes <- outcome{position: i, result: result, err: err}
				return nil
			})
		}
		_ = g.Wait()
		close(outcomes)
	}()

	batch := &BatchResult{Results: make([]*Result, total)}
	var completed int
	for o := range outcomes {
		completed++
		if o.err != nil {
			batch.Failed++
			progress(ProgressEvent{
				Type:      ProgressFailed,
				Completed: completed,
				Total:     total,
				Source:    sources[o.position],
				Error:     o.err,
			})
			continue
		}
		batch.Saved++
		batch.Results[o.position] = o.result
		progress(ProgressEvent{
			Type:      ProgressCompleted,
			Completed: completed,
			Total:     total,
			Source:    sources[o.position],
			Result:    o.result,
		})
	}

	if err := ctx.Err(); err != nil {
		return batch, err
	}

	progress(ProgressEvent{Type: ProgressFinished, Completed: batch.Saved + batch.Failed, Total: total})
	return batch, nil
}
