// Package goquery reads rendered directory HTML: profile pages become line
// sequences and listing pages yield profile and pagination links.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/medroster"
	"golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"
)

// DefaultHeadingSelector matches the elements directories use for a
// doctor's name, in document order.
const DefaultHeadingSelector = `h1, h2[class*="name"], div[class*="doctor-name"], div[class*="profile"] h2`

// Compile-time interface verification.
var _ medroster.PageReader = (*PageReader)(nil)

// PageReader converts rendered HTML into the visible line sequence, the way
// a browser lays text out: block elements start new lines, inline elements
// run together.
type PageReader struct {
	HeadingSelector string
}

// NewPageReader creates a PageReader using DefaultHeadingSelector.
func NewPageReader() *PageReader {
	return &PageReader{HeadingSelector: DefaultHeadingSelector}
}

// ReadPage parses the HTML and returns its line sequence.
func (r *PageReader) ReadPage(htmlContent string, pageURL string) (*medroster.Page, error) {
	if strings.TrimSpace(htmlContent) == "" {
		return nil, medroster.Errorf(medroster.EINVALID, "empty HTML input")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, medroster.Errorf(medroster.EINVALID, "failed to parse HTML: %v", err)
	}

	page := &medroster.Page{URL: pageURL}
	if r.HeadingSelector != "" {
		page.Heading = cleanLine(doc.Find(r.HeadingSelector).First().Text())
	}

	root := doc.Find("body")
	if root.Length() == 0 {
		root = doc.Selection
	}
	w := &lineWriter{}
	for _, n := range root.Nodes {
		w.walk(n)
	}
	w.flush()
	page.Lines = w.lines

	return page, nil
}

// lineWriter accumulates text into lines while walking the DOM.
type lineWriter struct {
	current strings.Builder
	lines   []string
}

func (w *lineWriter) walk(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		w.current.WriteString(n.Data)
		return
	case html.ElementNode:
		if skipElement(n) {
			return
		}
		if n.Data == "br" {
			w.flush()
			return
		}
	}

	block := n.Type == html.ElementNode && isBlock(n.Data)
	if block {
		w.flush()
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.walk(c)
	}
	if block {
		w.flush()
	}
}

func (w *lineWriter) flush() {
	if line := cleanLine(w.current.String()); line != "" {
		w.lines = append(w.lines, line)
	}
	w.current.Reset()
}

// cleanLine composes characters to NFC and collapses whitespace runs.
func cleanLine(s string) string {
	return strings.Join(strings.Fields(norm.NFC.String(s)), " ")
}

func skipElement(n *html.Node) bool {
	switch n.Data {
	case "script", "style", "noscript", "template", "head", "svg", "iframe":
		return true
	}
	for _, a := range n.Attr {
		if a.Key == "hidden" || (a.Key == "aria-hidden" && a.Val == "true") {
			return true
		}
	}
	return false
}

func isBlock(tag string) bool {
	switch tag {
	case "address", "article", "aside", "blockquote", "body", "dd", "details",
		"dialog", "div", "dl", "dt", "fieldset", "figcaption", "figure",
		"footer", "form", "h1", "h2", "h3", "h4", "h5", "h6", "header", "hr",
		"li", "main", "nav", "ol", "p", "pre", "section", "summary", "table",
		"tbody", "td", "tfoot", "th", "thead", "tr", "ul", "option", "button",
		"label", "select":
		return true
	}
	return false
}
