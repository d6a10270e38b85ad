package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pelinbingl/emlak"
	"golang.org/x/net/html"
)

var (
	telHrefRe    = regexp.MustCompile(`(?i)^\s*tel:\s*\+?\d`)
	phoneLabelRe = regexp.MustCompile(`(?i)(?:^|[^\p{L}])(?:Cep|Telefon)(?:[^\p{L}]|$)`)
	mobileRe     = regexp.MustCompile(`0?\s*\(?5\d{2}\)?[\s\-]?\d{3}[\s\-]?\d{2}[\s\-]?\d{2}`)
	nonDigitRe   = regexp.MustCompile(`\D`)
)

// extractPhone returns the first phone candidate that normalizes to the
// canonical form, trying tel: links, then text next to a "Cep" or "Telefon"
// label, then the whole page text.
func extractPhone(doc *goquery.Document, pageText string) string {
	for _, candidate := range telCandidates(doc) {
		if emlak.IsCanonicalPhone(emlak.NormalizePhone(candidate)) {
			return candidate
		}
	}
	for _, candidate := range labelCandidates(doc) {
		if emlak.IsCanonicalPhone(emlak.NormalizePhone(candidate)) {
			return candidate
		}
	}
	for _, candidate := range mobileRe.FindAllString(pageText, -1) {
		if emlak.IsCanonicalPhone(emlak.NormalizePhone(candidate)) {
			return strings.TrimSpace(candidate)
		}
	}
	return ""
}

func telCandidates(doc *goquery.Document) []string {
	var out []string
	doc.Find(linkElements).Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		if telHrefRe.MatchString(href) {
			out = append(out, nonDigitRe.ReplaceAllString(href, ""))
		}
	})
	return out
}

// labelCandidates searches the text surrounding each phone label: the
// label's parent element first, then its grandparent.
func labelCandidates(doc *goquery.Document) []string {
	var out []string
	for _, root := range doc.Nodes {
		walkText(root, func(n *html.Node) {
			if !phoneLabelRe.MatchString(n.Data) {
				return
			}
			for p, depth := n.Parent, 0; p != nil && depth < 2; p, depth = p.Parent, depth+1 {
				if m := mobileRe.FindString(nodeText([]*html.Node{p})); m != "" {
					out = append(out, strings.TrimSpace(m))
					return
				}
			}
		})
	}
	return out
}

// walkText calls fn for every visible text node under n in document order.
func walkText(n *html.Node, fn func(*html.Node)) {
	switch n.Type {
	case html.TextNode:
		fn(n)
		return
	case html.ElementNode:
		if skipText(n) {
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkText(c, fn)
	}
}
