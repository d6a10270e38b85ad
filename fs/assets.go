package fs

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/pelinbingl/emlak"
)

// DefaultImageTimeout bounds a single image download.
const DefaultImageTimeout = 20 * time.Second

// rasterExts are the image extensions kept from saved pages and URLs.
var rasterExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// AssetFailure records an image that could not be stored.
type AssetFailure struct {
	Ref string
	Err error
}

// AssetReport lists the stored image files, in numbering order, and the
// references that failed.
type AssetReport struct {
	Saved  []string
	Failed []AssetFailure
}

// AssetStore stores listing images under "<dir>/images".
type AssetStore struct {
	// Downloader fetches remote images. Required by Download.
	Downloader emlak.Downloader

	// Limiter paces downloads per host. Optional.
	Limiter emlak.DomainLimiter

	// Timeout bounds each download. Zero means DefaultImageTimeout.
	Timeout time.Duration
}

// Download fetches the absolute http(s) references into the images folder
// of dir. Files are numbered by the position of the reference in refs, so
// "03.png" is always the third discovered image. A failed image is recorded
// in the report and skipped. Only cancellation of ctx aborts the run, and
// then the existing images folder is left untouched.
//
// On success the images folder holds exactly the saved files.
func (s *AssetStore) Download(ctx context.Context, dir string, refs []string) (*AssetReport, error) {
	if s.Downloader == nil {
		return nil, emlak.Errorf(emlak.EINVALID, "asset store has no downloader")
	}
	report := &AssetReport{}
	if len(refs) == 0 {
		return report, nil
	}

	stage, err := newImageStage(dir)
	if err != nil {
		return nil, err
	}
	defer stage.discard()

	var names []string
	for i, ref := range refs {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		u, err := url.Parse(ref)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			report.Failed = append(report.Failed, AssetFailure{
				Ref: ref,
				Err: emlak.Errorf(emlak.EINVALID, "not an absolute http(s) reference"),
			})
			continue
		}

		name := imageName(i+1, path.Ext(u.Path))
		if err := s.fetch(ctx, u, stage.path(name)); err != nil {
			if ctx.Err() != nil {
				return report, ctx.Err()
			}
			report.Failed = append(report.Failed, AssetFailure{Ref: ref, Err: err})
			continue
		}
		names = append(names, name)
	}

	if report.Saved, err = stage.commit(names); err != nil {
		return nil, err
	}
	return report, nil
}

func (s *AssetStore) fetch(ctx context.Context, u *url.URL, target string) error {
	if s.Limiter != nil {
		if err := s.Limiter.Wait(ctx, u.Host); err != nil {
			return err
		}
	}

	timeout := s.Timeout
	if timeout <= 0 {
		timeout = DefaultImageTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	data, err := s.Downloader.Download(ctx, u.String())
	if err != nil {
		return err
	}
	return os.WriteFile(target, data, 0644)
}

// CopyLocal copies the raster images found anywhere under savedDir into the
// images folder of dir. Images are ordered by their path relative to
// savedDir before numbering and keep their lower-cased extension. At most
// emlak.MaxImages files are copied.
func (s *AssetStore) CopyLocal(dir, savedDir string) (*AssetReport, error) {
	var found []string
	err := filepath.WalkDir(savedDir, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !rasterExts[strings.ToLower(filepath.Ext(p))] {
			return nil
		}
		rel, err := filepath.Rel(savedDir, p)
		if err != nil {
			return err
		}
		found = append(found, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", savedDir, err)
	}
	sort.Strings(found)
	if len(found) > emlak.MaxImages {
		found = found[:emlak.MaxImages]
	}

	report := &AssetReport{}
	stage, err := newImageStage(dir)
	if err != nil {
		return nil, err
	}
	defer stage.discard()

	var names []string
	for i, rel := range found {
		name := imageName(i+1, filepath.Ext(rel))
		if err := copyFile(filepath.Join(savedDir, rel), stage.path(name)); err != nil {
			report.Failed = append(report.Failed, AssetFailure{Ref: rel, Err: err})
			continue
		}
		names = append(names, name)
	}

	if report.Saved, err = stage.commit(names); err != nil {
		return nil, err
	}
	return report, nil
}

// commitMu serializes folder swaps. Listings whose titles share a slug share
// an images folder, and concurrent swaps of one folder would race between
// removal and rename.
var commitMu sync.Mutex

// imageStage collects the numbered images of one run in a temporary folder
// inside the listing folder.
type imageStage struct {
	tmp   string
	final string
}

func newImageStage(dir string) (*imageStage, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	tmp, err := os.MkdirTemp(dir, ImagesDir+".tmp-")
	if err != nil {
		return nil, err
	}
	return &imageStage{tmp: tmp, final: filepath.Join(dir, ImagesDir)}, nil
}

func (st *imageStage) path(name string) string {
	return filepath.Join(st.tmp, name)
}

// commit replaces the images folder with the staged one and returns the
// final paths of names. Images from an earlier run are dropped. With no
// names the listing is left without an images folder.
func (st *imageStage) commit(names []string) ([]string, error) {
	commitMu.Lock()
	defer commitMu.Unlock()

	if err := os.RemoveAll(st.final); err != nil {
		return nil, fmt.Errorf("clear %s: %w", st.final, err)
	}
	if len(names) == 0 {
		return nil, nil
	}
	if err := os.Rename(st.tmp, st.final); err != nil {
		return nil, fmt.Errorf("commit %s: %w", st.final, err)
	}

	saved := make([]string, len(names))
	for i, name := range names {
		saved[i] = filepath.Join(st.final, name)
	}
	return saved, nil
}

func (st *imageStage) discard() {
	os.RemoveAll(st.tmp)
}

// imageName returns the numbered file name of the n-th image. Unknown
// extensions become ".jpg".
func imageName(n int, ext string) string {
	ext = strings.ToLower(ext)
	if !rasterExts[ext] {
		ext = ".jpg"
	}
	return fmt.Sprintf("%02d%s", n, ext)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
