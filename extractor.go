package emlak

// StructuredState holds listing fields read from a page's embedded
// application state. The zero value means no structured data was available.
type StructuredState struct {
	Title        string
	Price        string
	Description  string
	City         string
	District     string
	Neighborhood string
	OwnerName    string
	Phone        string
}

// Empty reports whether no field was populated.
func (s *StructuredState) Empty() bool {
	return s == nil || *s == StructuredState{}
}

// StateExtractor reads the embedded state blob of a page.
type StateExtractor interface {
	// ExtractState never fails: a missing or unparseable blob yields an
	// empty StructuredState.
	ExtractState(html string) *StructuredState
}

// Location is the three-level administrative location of a listing.
type Location struct {
	City         string
	District     string
	Neighborhood string

	// Warning is set when the location came from a heuristic whose
	// assumptions did not hold for this page.
	Warning string
}

// Extraction holds the raw values found by selectors and heuristics.
// Empty strings mean the corresponding selector found nothing.
type Extraction struct {
	Title       string
	Price       string
	Description string
	OwnerName   string

	// Phone is the raw candidate found by the tel: link, label and
	// full-text strategies, in that order.
	Phone string

	Location   Location
	Attributes *AttributeTable

	// Text is the visible page text with whitespace collapsed, used by
	// full-text fallback patterns.
	Text string
}

// FieldExtractor runs the selector and heuristic strategies over a page.
type FieldExtractor interface {
	// ExtractFields returns EMALFORMED if html is not markup.
	ExtractFields(html string) (*Extraction, error)
}

// ImageFinder discovers candidate image references in a page.
type ImageFinder interface {
	// FindImages returns deduplicated references in document order,
	// capped at MaxImages.
	FindImages(html string) []string
}

// ContentExtractor extracts the main body text of a page. It is consulted
// for the description when no listing-specific container exists.
type ContentExtractor interface {
	ExtractContent(html string) (string, error)
}
