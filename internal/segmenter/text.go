package segmenter

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/pagelens-labs/pagelens-cli/internal/core/domain"
)

// extractText returns the visible text of a subtree with whitespace
// collapsed. Script, style and similar non-content subtrees are
// skipped.
func extractText(n *html.Node) string {
	var b strings.Builder
	appendText(&b, n)
	return collapseWhitespace(b.String())
}

func appendText(b *strings.Builder, n *html.Node) {
	if n.Type == html.ElementNode && isNonContent(n) {
		return
	}
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
		b.WriteByte(' ')
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		appendText(b, c)
	}
}

// isNonContent matches subtrees that never contribute readable text.
func isNonContent(n *html.Node) bool {
	switch n.DataAtom {
	case atom.Script, atom.Style, atom.Noscript, atom.Template, atom.Svg, atom.Iframe:
		return true
	default:
		return false
	}
}

// collapseWhitespace trims and collapses runs of whitespace to single
// spaces.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// collectLinks returns the hyperlinks inside a subtree in document
// order. Anchors without an href are skipped.
func collectLinks(n *html.Node) []domain.Link {
	var links []domain.Link
	walk(n, func(d *html.Node) bool {
		if d.Type == html.ElementNode && d.DataAtom == atom.A {
			href := attr(d, "href")
			if href == "" {
				return true
			}
			links = append(links, domain.Link{
				Text: extractText(d),
				Href: href,
			})
		}
		return true
	})
	return links
}
