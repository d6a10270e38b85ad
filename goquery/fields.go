package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pelinbingl/emlak"
)

// Ensure FieldExtractor implements emlak.FieldExtractor at compile time.
var _ emlak.FieldExtractor = (*FieldExtractor)(nil)

// FieldExtractor runs the selector and heuristic strategies over a listing
// page.
type FieldExtractor struct{}

// NewFieldExtractor creates a new FieldExtractor.
func NewFieldExtractor() *FieldExtractor {
	return &FieldExtractor{}
}

// ExtractFields builds the attribute table and collects the raw selector
// values. Fields the page does not carry are left empty.
func (e *FieldExtractor) ExtractFields(rawHTML string) (*emlak.Extraction, error) {
	doc, err := parsePage(rawHTML)
	if err != nil {
		return nil, err
	}

	pageText := nodeText(doc.Nodes)
	attrs := extractAttributes(doc)

	return &emlak.Extraction{
		Title:       firstText(doc.Selection, titleSelectors...),
		Price:       firstText(doc.Selection, priceSelectors...),
		Description: firstText(doc.Selection, descriptionSelectors...),
		OwnerName:   firstText(doc.Selection, ownerSelectors...),
		Phone:       extractPhone(doc, pageText),
		Location:    extractLocation(doc, attrs),
		Attributes:  attrs,
		Text:        pageText,
	}, nil
}

// extractAttributes scans the label/value list items, then the two-cell
// rows, then header tables. A label keeps the first value found for it.
func extractAttributes(doc *goquery.Document) *emlak.AttributeTable {
	attrs := emlak.NewAttributeTable()

	doc.Find(labelValueItems).Each(func(_ int, s *goquery.Selection) {
		label := s.Find("strong").First()
		if label.Length() == 0 {
			return
		}
		setAttribute(attrs, text(label), text(s.Find("span").First()))
	})

	doc.Find(cellRows).Each(func(_ int, s *goquery.Selection) {
		cells := s.Find("td, span")
		if cells.Length() < 2 {
			return
		}
		setAttribute(attrs, text(cells.Eq(0)), text(cells.Eq(1)))
	})

	doc.Find(headerRows).Each(func(_ int, s *goquery.Selection) {
		th, td := s.Find("th").First(), s.Find("td").First()
		if th.Length() == 0 || td.Length() == 0 {
			return
		}
		setAttribute(attrs, text(th), text(td))
	})

	return attrs
}

func setAttribute(attrs *emlak.AttributeTable, label, value string) {
	label = strings.TrimRight(strings.TrimSpace(label), ": ")
	if value == "" {
		return
	}
	attrs.Set(label, value)
}
