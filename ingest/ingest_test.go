package ingest_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/pelinbingl/emlak"
	"github.com/pelinbingl/emlak/fs"
	"github.com/pelinbingl/emlak/ingest"
	"github.com/pelinbingl/emlak/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// listingAssembler returns an assembler producing a valid listing titled
// after the source's base name, with the given image references.
func listingAssembler(images ...string) *mock.Assembler {
	return &mock.Assembler{
		AssembleFn: func(ctx context.Context, source, html string) (*emlak.Assembly, error) {
			if strings.Contains(html, "bozuk") {
				return nil, emlak.Errorf(emlak.EMALFORMED, "input is not HTML")
			}
			l := &emlak.Listing{}
			for _, c := range emlak.Columns() {
				l.Set(emlak.Field(c), emlak.Unspecified)
			}
			l.SourceReference = source
			l.ListingID = emlak.ListingID(source)
			l.Title = "Satılık Daire " + strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
			l.IsRealEstate = true
			l.AttachImages(images)
			return &emlak.Assembly{Listing: l, Warnings: []string{"breadcrumb has 2 location tokens, need 3; ignored"}}, nil
		},
	}
}

// recordingWriter collects stored listings. Safe for concurrent use.
type recordingWriter struct {
	mu       sync.Mutex
	listings []*emlak.Listing
}

func (w *recordingWriter) CreateListing(ctx context.Context, l *emlak.Listing) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.listings = append(w.listings, l)
	return nil
}

func writePage(t *testing.T, dir, name, html string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(html), 0644))
	return path
}

func TestIngester_IngestFile(t *testing.T) {
	t.Parallel()

	t.Run("copies saved images into listing folder", func(t *testing.T) {
		t.Parallel()

		pages := t.TempDir()
		data := t.TempDir()
		path := writePage(t, pages, "ilan1.html", "<html><h1>Daire</h1></html>")
		saved := filepath.Join(pages, "ilan1_files")
		require.NoError(t, os.Mkdir(saved, 0755))
		require.NoError(t, os.WriteFile(filepath.Join(saved, "b.png"), []byte("b"), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(saved, "a.jpg"), []byte("a"), 0644))

		writer := &recordingWriter{}
		in := &ingest.Ingester{
			Assembler: listingAssembler("https://img.example.com/x.jpg"),
			Writer:    writer,
			Assets:    &fs.AssetStore{},
			DataDir:   data,
		}

		result, err := in.IngestFile(context.Background(), path)

		require.NoError(t, err)
		images := filepath.Join(data, "satilik-daire-ilan1", fs.ImagesDir)
		assert.Equal(t, []string{filepath.Join(images, "01.jpg"), filepath.Join(images, "02.png")}, result.Listing.ImageReferences)
		assert.Equal(t, 2, result.Listing.ImageCount)
		assert.NotNil(t, result.Images)
		assert.Len(t, result.Warnings, 1)
		require.Len(t, writer.listings, 1)
		assert.Same(t, result.Listing, writer.listings[0])
	})

	t.Run("keeps references without saved folder", func(t *testing.T) {
		t.Parallel()

		path := writePage(t, t.TempDir(), "ilan2.html", "<html></html>")
		in := &ingest.Ingester{
			Assembler: listingAssembler("https://img.example.com/x.jpg"),
			Assets:    &fs.AssetStore{},
			DataDir:   t.TempDir(),
		}

		result, err := in.IngestFile(context.Background(), path)

		require.NoError(t, err)
		assert.Equal(t, []string{"https://img.example.com/x.jpg"}, result.Listing.ImageReferences)
		assert.Nil(t, result.Images)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		in := &ingest.Ingester{Assembler: listingAssembler()}

		_, err := in.IngestFile(context.Background(), filepath.Join(t.TempDir(), "yok.html"))

		assert.Equal(t, emlak.ENOTFOUND, emlak.ErrorCode(err))
	})

	t.Run("writer failure is returned", func(t *testing.T) {
		t.Parallel()

		path := writePage(t, t.TempDir(), "ilan3.html", "<html></html>")
		in := &ingest.Ingester{
			Assembler: listingAssembler(),
			Writer: &mock.ListingWriter{CreateListingFn: func(ctx context.Context, l *emlak.Listing) error {
				return emlak.Errorf(emlak.EINVALID, "listing phone is not canonical")
			}},
		}

		_, err := in.IngestFile(context.Background(), path)

		require.Error(t, err)
		assert.Equal(t, emlak.EINVALID, emlak.ErrorCode(err))
		assert.Contains(t, err.Error(), "ilan3.html")
	})
}

func TestIngester_IngestURL(t *testing.T) {
	t.Parallel()

	t.Run("downloads images through the asset store", func(t *testing.T) {
		t.Parallel()

		data := t.TempDir()
		var fetched string
		in := &ingest.Ingester{
			Assembler: listingAssembler("https://img.example.com/1.jpg", "https://img.example.com/2.jpg"),
			Fetcher: &mock.Fetcher{FetchFn: func(ctx context.Context, url string) (string, error) {
				fetched = url
				return "<html></html>", nil
			}},
			Assets: &fs.AssetStore{Downloader: &mock.Downloader{
				DownloadFn: func(ctx context.Context, url string) ([]byte, error) {
					if strings.HasSuffix(url, "2.jpg") {
						return nil, emlak.Errorf(emlak.ENOTFOUND, "HTTP 404")
					}
					return []byte("jpeg"), nil
				},
			}},
			DataDir: data,
		}

		result, err := in.IngestURL(context.Background(), "https://example.com/ilan/555")

		require.NoError(t, err)
		assert.Equal(t, "https://example.com/ilan/555", fetched)
		assert.Equal(t, "555", result.Listing.ListingID)
		assert.Equal(t, []string{filepath.Join(data, "satilik-daire-555", fs.ImagesDir, "01.jpg")}, result.Listing.ImageReferences)
		require.Len(t, result.Images.Failed, 1)
		assert.Equal(t, "https://img.example.com/2.jpg", result.Images.Failed[0].Ref)
	})

	t.Run("fetch failure is returned", func(t *testing.T) {
		t.Parallel()

		in := &ingest.Ingester{
			Assembler: listingAssembler(),
			Fetcher: &mock.Fetcher{FetchFn: func(ctx context.Context, url string) (string, error) {
				return "", emlak.Errorf(emlak.EBLOCKED, "HTTP 403")
			}},
		}

		_, err := in.IngestURL(context.Background(), "https://example.com/ilan/1")

		assert.Equal(t, emlak.EBLOCKED, emlak.ErrorCode(err))
	})

	t.Run("requires fetcher", func(t *testing.T) {
		t.Parallel()

		_, err := (&ingest.Ingester{Assembler: listingAssembler()}).IngestURL(context.Background(), "https://example.com/ilan/1")

		assert.Equal(t, emlak.EINVALID, emlak.ErrorCode(err))
	})
}

func TestIngester_Batch(t *testing.T) {
	t.Parallel()

	t.Run("continues past malformed documents", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		sources := []string{
			writePage(t, dir, "ilan1.html", "<html>1</html>"),
			writePage(t, dir, "bozuk.html", "bozuk"),
			writePage(t, dir, "ilan3.html", "<html>3</html>"),
		}
		writer := &recordingWriter{}
		in := &ingest.Ingester{Assembler: listingAssembler(), Writer: writer}

		var events []ingest.ProgressEvent
		batch, err := in.Batch(context.Background(), sources, 2, func(e ingest.ProgressEvent) {
			events = append(events, e)
		})

		require.NoError(t, err)
		assert.Equal(t, 2, batch.Saved)
		assert.Equal(t, 1, batch.Failed)
		require.Len(t, batch.Results, 3)
		assert.NotNil(t, batch.Results[0])
		assert.Nil(t, batch.Results[1])
		assert.Equal(t, "1", batch.Results[0].Listing.ListingID)
		assert.Equal(t, "3", batch.Results[2].Listing.ListingID)
		assert.Len(t, writer.listings, 2)

		require.Len(t, events, 5)
		assert.Equal(t, ingest.ProgressStarted, events[0].Type)
		assert.Equal(t, 3, events[0].Total)
		assert.Equal(t, ingest.ProgressFinished, events[4].Type)
		var failed []ingest.ProgressEvent
		for _, e := range events {
			if e.Type == ingest.ProgressFailed {
				failed = append(failed, e)
			}
		}
		require.Len(t, failed, 1)
		assert.Equal(t, sources[1], failed[0].Source)
		assert.Equal(t, emlak.EMALFORMED, emlak.ErrorCode(failed[0].Error))
	})

	t.Run("mixes files and urls", func(t *testing.T) {
		t.Parallel()

		path := writePage(t, t.TempDir(), "ilan7.html", "<html></html>")
		in := &ingest.Ingester{
			Assembler: listingAssembler(),
			Fetcher: &mock.Fetcher{FetchFn: func(ctx context.Context, url string) (string, error) {
				return "<html></html>", nil
			}},
		}

		batch, err := in.Batch(context.Background(), []string{path, "https://example.com/ilan/8"}, 0, nil)

		require.NoError(t, err)
		assert.Equal(t, 2, batch.Saved)
		assert.Equal(t, "7", batch.Results[0].Listing.ListingID)
		assert.Equal(t, "8", batch.Results[1].Listing.ListingID)
	})

	t.Run("stops on canceled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		in := &ingest.Ingester{Assembler: listingAssembler()}

		batch, err := in.Batch(ctx, []string{"a.html", "b.html"}, 1, nil)

		assert.ErrorIs(t, err, context.Canceled)
		assert.Zero(t, batch.Saved)
	})
}
