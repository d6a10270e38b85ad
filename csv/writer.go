// Package csv appends listings to a tabular CSV file.
package csv

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/pelinbingl/emlak"
)

// utf8BOM lets spreadsheet applications detect UTF-8 and render Turkish
// characters correctly.
const utf8BOM = "\ufeff"

// Ensure Writer implements emlak.ListingWriter at compile time.
var _ emlak.ListingWriter = (*Writer)(nil)

// Writer appends one row per listing to a CSV file. The header row is
// written only when the file is new or empty, so repeated runs against the
// same file keep a single schema. It is safe for concurrent use.
type Writer struct {
	mu   sync.Mutex
	path string
	bom  bool
}

// Option configures a Writer.
type Option func(*Writer)

// WithBOM controls whether a UTF-8 byte order mark starts a new file.
// Enabled by default.
func WithBOM(enabled bool) Option {
	return func(w *Writer) {
		w.bom = enabled
	}
}

// NewWriter creates a Writer for the file at path. The file and its parent
// directories are created on the first write.
func NewWriter(path string, opts ...Option) *Writer {
	w := &Writer{path: path, bom: true}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// CreateListing appends listing as one row in emlak.Columns order.
func (w *Writer) CreateListing(ctx context.Context, listing *emlak.Listing) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := listing.Validate(); err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(w.path), 0755); err != nil {
		return fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.OpenFile(w.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("csv: open %q: %w", w.path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("csv: stat %q: %w", w.path, err)
	}

	if info.Size() == 0 && w.bom {
		if _, err := f.WriteString(utf8BOM); err != nil {
			return fmt.Errorf("csv: write BOM: %w", err)
		}
	}

	cw := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := cw.Write(emlak.Columns()); err != nil {
			return fmt.Errorf("csv: write header: %w", err)
		}
	}
	if err := cw.Write(listing.Values()); err != nil {
		return fmt.Errorf("csv: write row: %w", err)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("csv: flush: %w", err)
	}
	return f.Close()
}
