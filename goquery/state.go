package goquery

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pelinbingl/emlak"
)

// Ensure StateExtractor implements emlak.StateExtractor at compile time.
var _ emlak.StateExtractor = (*StateExtractor)(nil)

var initialStateRe = regexp.MustCompile(`(?s)window\.__INITIAL_STATE__\s*=\s*(\{.*?\});`)

// StateExtractor reads the window.__INITIAL_STATE__ blob that listing pages
// embed in an inline script.
type StateExtractor struct{}

// NewStateExtractor creates a new StateExtractor.
func NewStateExtractor() *StateExtractor {
	return &StateExtractor{}
}

// ExtractState scans every script element for the state assignment and
// maps the first blob that decodes. Scripts whose blob does not decode are
// skipped. The result is empty when no blob decodes.
func (e *StateExtractor) ExtractState(rawHTML string) *emlak.StructuredState {
	state := &emlak.StructuredState{}
	if strings.TrimSpace(rawHTML) == "" {
		return state
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return state
	}

	doc.Find(scriptElements).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		root, ok := decodeInitialState(s.Text())
		if !ok {
			return true
		}
		state = root.listingState()
		return false
	})
	return state
}

// decodeInitialState decodes the lazily matched object literal. The lazy
// match ends at the first "};", which may sit inside a string value, so on
// failure the decoder reads from the opening brace and stops at the end of
// the first complete value.
func decodeInitialState(script string) (object, bool) {
	loc := initialStateRe.FindStringSubmatchIndex(script)
	if loc == nil {
		return nil, false
	}

	if root, err := decodeObject(script[loc[2]:loc[3]]); err == nil {
		return root, true
	}
	if root, err := decodeObject(script[loc[2]:]); err == nil {
		return root, true
	}
	return nil, false
}

func decodeObject(s string) (object, error) {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()
	var root map[string]any
	if err := dec.Decode(&root); err != nil {
		return nil, err
	}
	return root, nil
}

// object is a decoded JSON object with lenient accessors: a missing key or
// a value of an unexpected type reads as empty.
type object map[string]any

func (o object) object(key string) object {
	if v, ok := o[key].(map[string]any); ok {
		return v
	}
	return nil
}

func (o object) string(key string) string {
	switch v := o[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return ""
}

// listingState maps the classified detail of the state blob.
func (o object) listingState() *emlak.StructuredState {
	classified := o.object("classifiedDetail")
	if len(classified) == 0 {
		classified = o.object("classified")
	}

	price := classified.object("price").string("valueFormatted")
	if price == "" {
		price = classified.object("price").string("value")
	}

	user := classified.object("user")
	return &emlak.StructuredState{
		Title:        classified.string("title"),
		Price:        price,
		Description:  classified.string("description"),
		City:         classified.object("city").string("name"),
		District:     classified.object("town").string("name"),
		Neighborhood: classified.object("quarter").string("name"),
		OwnerName:    user.string("name"),
		Phone:        user.string("phoneNumber"),
	}
}
