package ingest

import (
	"context"

	"github.com/pelinbingl/emlak"
)

var _ emlak.ListingWriter = (*MultiWriter)(nil)

// MultiWriter stores a listing in several writers, in order.
type MultiWriter struct {
	writers []emlak.ListingWriter
}

// NewMultiWriter creates a MultiWriter. Nil writers are skipped.
func NewMultiWriter(writers ...emlak.ListingWriter) *MultiWriter {
	mw := &MultiWriter{}
	for _, w := range writers {
		if w != nil {
			mw.writers = append(mw.writers, w)
		}
	}
	return mw
}

// CreateListing passes the listing to every writer and stops at the first
// error.
func (mw *MultiWriter) CreateListing(ctx context.Context, listing *emlak.Listing) error {
	for _, w := range mw.writers {
		if err := w.CreateListing(ctx, listing); err != nil {
			return err
		}
	}
	return nil
}
