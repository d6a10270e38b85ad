// Package goquery implements the HTML extraction strategies of emlak using
// CSS selectors: the embedded state reader, the attribute table and
// heuristic field extractor, and the image reference finder.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pelinbingl/emlak"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// parsePage parses raw HTML, rejecting input that is not markup at all.
func parsePage(rawHTML string) (*goquery.Document, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, emlak.Errorf(emlak.EMALFORMED, "empty HTML input")
	}
	if strings.IndexByte(rawHTML, 0) >= 0 {
		return nil, emlak.Errorf(emlak.EMALFORMED, "HTML input contains binary data")
	}
	if !strings.Contains(rawHTML, "<") {
		return nil, emlak.Errorf(emlak.EMALFORMED, "input contains no markup")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, emlak.Errorf(emlak.EMALFORMED, "failed to parse HTML: %v", err)
	}
	return doc, nil
}

// nodeText joins the text nodes under nodes with spaces and collapses
// whitespace. Script, style and noscript contents are skipped.
func nodeText(nodes []*html.Node) string {
	var b strings.Builder
	for _, n := range nodes {
		writeText(&b, n)
	}
	return emlak.CollapseWhitespace(b.String())
}

func writeText(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		b.WriteByte(' ')
		return
	case html.CommentNode:
		return
	case html.ElementNode:
		if skipText(n) {
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeText(b, c)
	}
}

func skipText(n *html.Node) bool {
	switch n.DataAtom {
	case atom.Script, atom.Style, atom.Noscript, atom.Template:
		return true
	}
	return false
}

// text returns the collapsed text of the first node in sel.
func text(sel *goquery.Selection) string {
	if sel.Length() == 0 {
		return ""
	}
	return nodeText(sel.Nodes[:1])
}

// firstText tries each selector in turn and returns the text of the first
// non-empty match.
func firstText(sel *goquery.Selection, selectors ...string) string {
	for _, s := range selectors {
		var found string
		sel.Find(s).EachWithBreak(func(_ int, m *goquery.Selection) bool {
			found = text(m)
			return found == ""
		})
		if found != "" {
			return found
		}
	}
	return ""
}
