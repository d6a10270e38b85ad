package emlak

import (
	"fmt"
	"regexp"
	"strings"
)

// Unspecified is the sentinel stored in any field no extraction tier resolved.
const Unspecified = "Belirtilmemiş"

var (
	nonDigitRe       = regexp.MustCompile(`\D`)
	canonicalPhoneRe = regexp.MustCompile(`^0 \(\d{3}\) \d{3} \d{2} \d{2}$`)
	canonicalPriceRe = regexp.MustCompile(`^\d[\d.]* TL$`)
	priceHistoryRe   = regexp.MustCompile(`(?i)Fiyat.*$`)
	priceAmountRe    = regexp.MustCompile(`(\d[\d.,]*)\s*(?:TL|₺)?`)
	areaValueRe      = regexp.MustCompile(`\d[\d.]*`)
	titleSuffixRe    = regexp.MustCompile(`\s*-\s*(?:Satılık|Kiralık).*$`)
)

// NormalizePhone formats a Turkish phone number as "0 (5XX) XXX XX XX".
//
// Non-digits are dropped first. A ten digit number starting with 5 gets the
// national trunk 0 prepended and a twelve digit "90..." number loses its
// country code. Anything else that does not reach eleven digits starting
// with 0 is returned unchanged. Blank input yields Unspecified.
func NormalizePhone(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return Unspecified
	}

	d := nonDigitRe.ReplaceAllString(raw, "")
	if len(d) == 12 && strings.HasPrefix(d, "905") {
		d = d[2:]
	}
	if len(d) == 10 && d[0] == '5' {
		d = "0" + d
	}
	if len(d) >= 11 && d[0] == '0' {
		return fmt.Sprintf("%s (%s) %s %s %s", d[0:1], d[1:4], d[4:7], d[7:9], d[9:11])
	}
	return raw
}

// IsCanonicalPhone reports whether s is in the format produced by NormalizePhone.
func IsCanonicalPhone(s string) bool {
	return canonicalPhoneRe.MatchString(s)
}

// NormalizePrice reduces a price cell to "<amount> TL".
// Text from "Fiyat" onwards (price history widgets) is discarded and comma
// separators become dots. Returns Unspecified when no amount is present.
func NormalizePrice(raw string) string {
	s := CollapseWhitespace(raw)
	if s == "" {
		return Unspecified
	}
	s = priceHistoryRe.ReplaceAllString(s, "")

	m := priceAmountRe.FindStringSubmatch(s)
	if m == nil {
		return Unspecified
	}
	amount := strings.TrimRight(strings.ReplaceAll(m[1], ",", "."), ".")
	return amount + " TL"
}

// IsCanonicalPrice reports whether s is in the format produced by NormalizePrice.
func IsCanonicalPrice(s string) bool {
	return canonicalPriceRe.MatchString(s)
}

// ExtractArea finds a square-meter figure labelled with label in text.
// Both "Brüt m²: 120" and "m² (Brüt) 120" are recognised, "m2" is accepted
// for "m²" and matching ignores case. Returns the digits or "".
func ExtractArea(text, label string) string {
	if text == "" || label == "" {
		return ""
	}
	return firstGroup(areaPattern(label), text)
}

func areaPattern(label string) *regexp.Regexp {
	l := regexp.QuoteMeta(label)
	return regexp.MustCompile(`(?i)(?:` + l + `\s*m(?:²|2)?|m(?:²|2)\s*\(\s*` + l + `\s*\))\s*[:\-]?\s*(\d+)`)
}

// NormalizeArea returns the first number in an attribute value with
// thousands dots removed, e.g. "1.200 m²" becomes "1200".
func NormalizeArea(raw string) string {
	m := areaValueRe.FindString(raw)
	return strings.ReplaceAll(m, ".", "")
}

// StripTitleSuffix collapses whitespace in a title and removes a trailing
// " - Satılık ..." or " - Kiralık ..." marketing suffix.
func StripTitleSuffix(title string) string {
	return titleSuffixRe.ReplaceAllString(CollapseWhitespace(title), "")
}

func firstGroup(re *regexp.Regexp, text string) string {
	m := re.FindStringSubmatch(text)
	if len(m) < 2 {
		return ""
	}
	return strings.TrimSpace(m[1])
}
