package segmenter

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// structuralSelector builds a positional selector for an element that
// has no id: a chain of tag:nth-of-type(n) steps from the nearest
// ancestor with an id (or the body) down to the element.
func structuralSelector(n *html.Node) string {
	var steps []string
	for cur := n; cur != nil && cur.Type == html.ElementNode; cur = parentElement(cur) {
		if id := attr(cur, "id"); id != "" && cur != n {
			steps = append(steps, "#"+id)
			break
		}
		if cur.DataAtom == atom.Body || cur.DataAtom == atom.Html {
			steps = append(steps, cur.Data)
			break
		}
		steps = append(steps, fmt.Sprintf("%s:nth-of-type(%d)", cur.Data, nthOfType(cur)))
	}

	// Steps were collected bottom-up.
	for i, j := 0, len(steps)-1; i < j; i, j = i+1, j-1 {
		steps[i], steps[j] = steps[j], steps[i]
	}
	return strings.Join(steps, " > ")
}

// nthOfType returns the 1-based position of n among same-tag siblings.
func nthOfType(n *html.Node) int {
	idx := 1
	for sib := n.Parent.FirstChild; sib != nil; sib = sib.NextSibling {
		if sib == n {
			break
		}
		if sib.Type == html.ElementNode && sib.DataAtom == n.DataAtom && sib.Data == n.Data {
			idx++
		}
	}
	return idx
}

func parentElement(n *html.Node) *html.Node {
	p := n.Parent
	for p != nil && p.Type != html.ElementNode {
		p = p.Parent
	}
	return p
}
