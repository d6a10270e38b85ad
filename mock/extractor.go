package mock

import "github.com/pelinbingl/emlak"

var (
	_ emlak.StateExtractor   = (*StateExtractor)(nil)
	_ emlak.FieldExtractor   = (*FieldExtractor)(nil)
	_ emlak.ImageFinder      = (*ImageFinder)(nil)
	_ emlak.ContentExtractor = (*ContentExtractor)(nil)
)

// StateExtractor is a mock implementation of emlak.StateExtractor.
type StateExtractor struct {
	ExtractStateFn func(html string) *emlak.StructuredState
}

func (e *StateExtractor) ExtractState(html string) *emlak.StructuredState {
	return e.ExtractStateFn(html)
}

// FieldExtractor is a mock implementation of emlak.FieldExtractor.
type FieldExtractor struct {
	ExtractFieldsFn func(html string) (*emlak.Extraction, error)
}

func (e *FieldExtractor) ExtractFields(html string) (*emlak.Extraction, error) {
	return e.ExtractFieldsFn(html)
}

// ImageFinder is a mock implementation of emlak.ImageFinder.
type ImageFinder struct {
	FindImagesFn func(html string) []string
}

func (f *ImageFinder) FindImages(html string) []string {
	return f.FindImagesFn(html)
}

// ContentExtractor is a mock implementation of emlak.ContentExtractor.
type ContentExtractor struct {
	ExtractContentFn func(html string) (string, error)
}

func (e *ContentExtractor) ExtractContent(html string) (string, error) {
	return e.ExtractContentFn(html)
}
