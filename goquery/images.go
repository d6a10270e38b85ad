package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pelinbingl/emlak"
)

// Ensure ImageFinder implements emlak.ImageFinder at compile time.
var _ emlak.ImageFinder = (*ImageFinder)(nil)

var rasterImageRe = regexp.MustCompile(`(?i)\.(jpe?g|png|webp)(\?|$)`)

// ImageFinder collects listing photo references from img elements.
type ImageFinder struct{}

// NewImageFinder creates a new ImageFinder.
func NewImageFinder() *ImageFinder {
	return &ImageFinder{}
}

// FindImages prefers the lazy-load data-src attribute over src and keeps
// only raster image references. Pages that fail to parse yield no images.
func (f *ImageFinder) FindImages(rawHTML string) []string {
	doc, err := parsePage(rawHTML)
	if err != nil {
		return nil
	}

	seen := make(map[string]struct{})
	var refs []string
	doc.Find(imageElements).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		ref := imageRef(s)
		if ref == "" || !rasterImageRe.MatchString(ref) {
			return true
		}
		if _, ok := seen[ref]; ok {
			return true
		}
		seen[ref] = struct{}{}
		refs = append(refs, ref)
		return len(refs) < emlak.MaxImages
	})
	return refs
}

func imageRef(s *goquery.Selection) string {
	if v := strings.TrimSpace(s.AttrOr("data-src", "")); v != "" {
		return v
	}
	return strings.TrimSpace(s.AttrOr("src", ""))
}
