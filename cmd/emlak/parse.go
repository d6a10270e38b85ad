package main

import (
	"fmt"

	"github.com/pelinbingl/emlak"
	"github.com/pelinbingl/emlak/ingest"
)

// Run executes the parse command.
func (c *ParseCmd) Run(deps *Dependencies) error {
	return runBatch(deps, c.Files)
}

// runBatch ingests sources and prints one line per stored listing.
// Extraction warnings reach stderr through the logger.
// A failed document is reported and the batch continues. The returned
// error reports how many documents failed.
func runBatch(deps *Dependencies, sources []string) error {
	progress := func(event ingest.ProgressEvent) {
		switch event.Type {
		case ingest.ProgressCompleted:
			l := event.Result.Listing
			fmt.Fprintf(deps.Stdout, "  [%d/%d] %s  %s  (%d images)\n",
				event.Completed, event.Total, listingLabel(l), l.Title, l.ImageCount)
		case ingest.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", event.Source, event.Error)
		}
	}

	result, err := deps.Ingester.Batch(deps.Ctx, sources, deps.Concurrency, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Saved %d listings\n", result.Saved)
	if result.Failed > 0 {
		return fmt.Errorf("%d of %d documents failed", result.Failed, len(sources))
	}
	return nil
}

func listingLabel(l *emlak.Listing) string {
	if l.ListingID == "" {
		return "-"
	}
	return l.ListingID
}
