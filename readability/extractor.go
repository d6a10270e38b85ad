// Package readability finds the main text of a page with go-readability.
package readability

import (
	"strings"

	"github.com/go-shiori/go-readability"
	"github.com/pelinbingl/emlak"
)

// Ensure Extractor implements emlak.ContentExtractor at compile time.
var _ emlak.ContentExtractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract the main text from HTML.
// Navigation, sidebars and footers are dropped.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractContent returns the plain text of the page's main content.
// Returns ENOTFOUND when no readable content is left.
func (e *Extractor) ExtractContent(rawHTML string) (string, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return "", emlak.Errorf(emlak.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return "", emlak.Errorf(emlak.EMALFORMED, "readability: %v", err)
	}

	text := strings.TrimSpace(article.TextContent)
	if text == "" {
		return "", emlak.Errorf(emlak.ENOTFOUND, "no main content")
	}
	return text, nil
}
