package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelinbingl/emlak"
	"github.com/pelinbingl/emlak/csv"
)

// MaxSlugLength caps the length of a listing folder name.
const MaxSlugLength = 80

// Names of the files inside a listing folder.
const (
	MetaFile    = "meta.json"
	ListingFile = "listing.csv"
	ImagesDir   = "images"
)

// ListingSlug returns the folder name of a listing: its slugified title,
// or "ilan-<id>" when the title is unknown.
func ListingSlug(l *emlak.Listing) string {
	if l.Title == "" || l.Title == emlak.Unspecified {
		if l.ListingID != "" {
			return emlak.DefaultSlug + "-" + l.ListingID
		}
		return emlak.DefaultSlug
	}

	slug := emlak.Slugify(l.Title)
	if len(slug) > MaxSlugLength {
		slug = strings.TrimRight(slug[:MaxSlugLength], "-")
	}
	return slug
}

// ListingDir returns the folder of a listing under root.
func ListingDir(root string, l *emlak.Listing) string {
	return filepath.Join(root, ListingSlug(l))
}

// Ensure ListingStore implements emlak.ListingWriter at compile time.
var _ emlak.ListingWriter = (*ListingStore)(nil)

// ListingStore writes each listing's meta.json and listing.csv into its
// folder under a root directory.
//
// Files are written to a sibling temporary directory and renamed into place,
// so a reader never sees a half-written file. Other content of the listing
// folder, such as images, is left alone.
type ListingStore struct {
	root string
}

// NewListingStore creates a ListingStore rooted at root.
func NewListingStore(root string) *ListingStore {
	return &ListingStore{root: root}
}

// CreateListing writes the listing files, replacing earlier ones.
func (s *ListingStore) CreateListing(ctx context.Context, listing *emlak.Listing) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := listing.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(s.root, 0755); err != nil {
		return err
	}
	dir := ListingDir(s.root, listing)
	tmp, err := os.MkdirTemp(s.root, filepath.Base(dir)+".tmp-")
	if err != nil {
		return err
	}
	defer os.RemoveAll(tmp)

	if err := writeMeta(filepath.Join(tmp, MetaFile), listing); err != nil {
		return err
	}
	w := csv.NewWriter(filepath.Join(tmp, ListingFile))
	if err := w.CreateListing(ctx, listing); err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	for _, name := range []string{MetaFile, ListingFile} {
		if err := os.Rename(filepath.Join(tmp, name), filepath.Join(dir, name)); err != nil {
			return fmt.Errorf("commit %s: %w", name, err)
		}
	}
	return nil
}

func writeMeta(path string, listing *emlak.Listing) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(listing); err != nil {
		return fmt.Errorf("encode %s: %w", MetaFile, err)
	}
	return f.Close()
}
