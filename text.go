package emlak

import (
	"net/url"
	"path"
	"regexp"
	"strings"
)

// DefaultSlug is returned by Slugify when nothing usable is left of its input.
const DefaultSlug = "ilan"

// CollapseWhitespace trims s and replaces every run of whitespace with a
// single space. Non-breaking spaces count as whitespace.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

var (
	slugReplacer = strings.NewReplacer(
		"ç", "c", "ğ", "g", "ı", "i", "ö", "o", "ş", "s", "ü", "u",
		"Ç", "c", "Ğ", "g", "İ", "i", "Ö", "o", "Ş", "s", "Ü", "u",
		"+", "-plus-",
	)
	slugStripRe = regexp.MustCompile(`[^\w\s-]`)
	slugSpaceRe = regexp.MustCompile(`\s+`)
)

// Slugify converts a listing title into a lowercase ASCII folder name.
// Turkish letters are folded to their ASCII base, "+" becomes "-plus-",
// other punctuation is dropped and whitespace runs become single hyphens.
// Returns DefaultSlug when the result would be empty.
func Slugify(name string) string {
	if name == "" {
		return DefaultSlug
	}
	s := slugReplacer.Replace(name)
	s = strings.ToLower(s)
	s = slugStripRe.ReplaceAllString(s, "")
	s = slugSpaceRe.ReplaceAllString(strings.TrimSpace(s), "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return DefaultSlug
	}
	return s
}

var digitRunRe = regexp.MustCompile(`\d+`)

// ListingID derives the listing number from a source reference.
// URLs are inspected by path, file paths by base name. The longest run of
// digits wins, the first one on ties. Returns "" when there are no digits.
func ListingID(source string) string {
	var name string
	if u, err := url.Parse(source); err == nil && u.Scheme != "" && u.Host != "" {
		name = u.Path
	} else {
		name = path.Base(strings.ReplaceAll(source, `\`, "/"))
	}

	var best string
	for _, run := range digitRunRe.FindAllString(name, -1) {
		if len(run) > len(best) {
			best = run
		}
	}
	return best
}
