// Package extract turns documents in various formats into plain text ready
// for sentence segmentation.
package extract

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// blockElements end a run of text; a paragraph break follows them so the
// segmenter never glues a heading onto the next sentence
var blockElements = map[atom.Atom]bool{
	atom.P: true, atom.Div: true, atom.Section: true, atom.Article: true,
	atom.Li: true, atom.Ul: true, atom.Ol: true, atom.Br: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Tr: true, atom.Table: true, atom.Blockquote: true, atom.Pre: true,
	atom.Dd: true, atom.Dt: true,
}

// FromHTML extracts the visible text of an HTML document, preferring the
// main content area when the page marks one
func FromHTML(htmlContent string) (string, error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return "", err
	}

	root := mainContent(doc)

	var buf strings.Builder
	writeVisibleText(&buf, root)

	return normalizeLines(buf.String()), nil
}

// mainContent finds <main>, then <article> or role=main, falling back to the document
func mainContent(doc *html.Node) *html.Node {
	if n := findFirst(doc, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.DataAtom == atom.Main
	}); n != nil {
		return n
	}

	if n := findFirst(doc, func(n *html.Node) bool {
		return n.Type == html.ElementNode &&
			(n.DataAtom == atom.Article || attribute(n, "role") == "main")
	}); n != nil {
		return n
	}

	return doc
}

// writeVisibleText writes text nodes, skipping scripts and styles
func writeVisibleText(buf *strings.Builder, n *html.Node) {
	if n.Type == html.ElementNode {
		switch n.DataAtom {
		case atom.Script, atom.Style, atom.Noscript, atom.Iframe, atom.Template, atom.Head:
			return
		}
	}

	if n.Type == html.TextNode {
		text := strings.Join(strings.Fields(n.Data), " ")
		if text != "" {
			buf.WriteString(text)
			buf.WriteString(" ")
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeVisibleText(buf, c)
	}

	if n.Type == html.ElementNode && blockElements[n.DataAtom] {
		buf.WriteString("\n\n")
	}
}

// findFirst finds the first node matching a predicate (depth-first)
func findFirst(n *html.Node, predicate func(*html.Node) bool) *html.Node {
	if predicate(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, predicate); found != nil {
			return found
		}
	}
	return nil
}

// attribute gets an attribute value from a node
func attribute(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}
