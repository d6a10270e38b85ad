package goquery

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pelinbingl/emlak"
)

// navigationTokenRe matches breadcrumb entries that name site sections
// rather than places.
var navigationTokenRe = regexp.MustCompile(`(?i)^(?:Emlak|Konut|Satılık|Kiralık|Türkiye|Ana\s*Sayfa|Anasayfa|Tüm\s*İlanlar|Real\s*Estate|Housing|For\s*Sale|For\s*Rent|Home|All\s*Listings)(?:\s|$)`)

// breadcrumbDepth is the number of trailing breadcrumb tokens that name the
// city, district and neighborhood.
const breadcrumbDepth = 3

// extractLocation resolves the location triple from the attribute rows, then
// the breadcrumb trail, then the "City / District / Neighborhood" heading.
// The first source naming both city and district supplies the whole triple;
// parts are never combined across sources.
func extractLocation(doc *goquery.Document, attrs *emlak.AttributeTable) emlak.Location {
	var rows emlak.Location
	rows.City, _ = attrs.Pick(emlak.LabelCity)
	rows.District, _ = attrs.Pick(emlak.LabelDistrict)
	rows.Neighborhood, _ = attrs.Pick(emlak.LabelNeighborhood)
	if complete(rows) {
		return rows
	}

	crumbs := breadcrumbLocation(doc)
	loc, source := crumbs, "breadcrumb"
	if !complete(loc) {
		loc, source = headingLocation(doc), "heading"
		loc.Warning = crumbs.Warning
	}
	if !complete(loc) {
		rows.Warning = crumbs.Warning
		return rows
	}

	if conflicts(rows, loc) {
		w := fmt.Sprintf("location rows incomplete (city %q, district %q); used %s location %s / %s",
			rows.City, rows.District, source, loc.City, loc.District)
		loc.Warning = joinWarnings(loc.Warning, w)
	}
	return loc
}

func complete(loc emlak.Location) bool {
	return loc.City != "" && loc.District != ""
}

// conflicts reports whether a partial row location names a part that the
// replacement disagrees with.
func conflicts(rows, loc emlak.Location) bool {
	differs := func(a, b string) bool { return a != "" && !strings.EqualFold(a, b) }
	return differs(rows.City, loc.City) ||
		differs(rows.District, loc.District) ||
		differs(rows.Neighborhood, loc.Neighborhood)
}

func joinWarnings(a, b string) string {
	if a == "" {
		return b
	}
	return a + "; " + b
}

// breadcrumbLocation takes the last three non-navigational breadcrumb
// tokens. The trail is assumed to end in exactly those three; when more
// remain the result carries a warning.
func breadcrumbLocation(doc *goquery.Document) emlak.Location {
	var tokens []string
	doc.Find(breadcrumbLinks).Each(func(_ int, s *goquery.Selection) {
		t := text(s)
		if t == "" || navigationTokenRe.MatchString(t) {
			return
		}
		tokens = append(tokens, t)
	})

	switch {
	case len(tokens) == 0:
		return emlak.Location{}
	case len(tokens) < breadcrumbDepth:
		return emlak.Location{
			Warning: fmt.Sprintf("breadcrumb has %d location tokens, need %d; ignored", len(tokens), breadcrumbDepth),
		}
	}

	last := tokens[len(tokens)-breadcrumbDepth:]
	loc := emlak.Location{City: last[0], District: last[1], Neighborhood: last[2]}
	if len(tokens) > breadcrumbDepth {
		loc.Warning = fmt.Sprintf("breadcrumb has %d location tokens (%s); used the last %d",
			len(tokens), strings.Join(tokens, " > "), breadcrumbDepth)
	}
	return loc
}

// headingLocation splits the "City / District / Neighborhood" heading shown
// above the attribute list on saved pages.
func headingLocation(doc *goquery.Document) emlak.Location {
	heading := text(doc.Find(locationHeading))
	if heading == "" {
		return emlak.Location{}
	}

	var parts []string
	for _, p := range strings.Split(heading, "/") {
		if p = emlak.CollapseWhitespace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) < 2 {
		return emlak.Location{}
	}

	loc := emlak.Location{City: parts[0], District: parts[1]}
	if len(parts) > 2 {
		loc.Neighborhood = parts[2]
	}
	return loc
}
