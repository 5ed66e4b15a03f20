// Package segmenter walks a page snapshot and produces the ordered,
// non-overlapping section set used for search and navigation.
package segmenter

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/pagelens-labs/pagelens-cli/internal/core/domain"
	"github.com/pagelens-labs/pagelens-cli/internal/core/ports/driven"
)

// Thresholds for the segmentation passes.
const (
	// minSemanticLength is the minimum body text for a SemanticBlock.
	minSemanticLength = 100

	// minTextBlockLength and maxTextBlockLength bound a TextBlock.
	minTextBlockLength = 100
	maxTextBlockLength = 1000

	// minTextBlockWords is the minimum word count for a TextBlock.
	minTextBlockWords = 20

	// excerptLength caps the display excerpt.
	excerptLength = 200
)

// semanticPatterns are id/class substrings that mark a container as a
// content landmark.
var semanticPatterns = []string{"content", "main", "article", "post", "entry"}

// Segmenter extracts sections from a page snapshot. Each call to
// Segment is one pass; section ids are unique and stable only within
// that pass.
type Segmenter struct{}

// New creates a new segmenter.
func New() *Segmenter {
	return &Segmenter{}
}

// Segment produces the ordered section list for one snapshot.
//
// Three passes, each claiming the nodes it consumes so no content is
// counted twice: heading sections first, semantic landmark containers
// second, standalone paragraph-like text blocks last.
func (s *Segmenter) Segment(snap *driven.PageSnapshot) ([]domain.Section, error) {
	if snap == nil || snap.Root == nil {
		return nil, domain.ErrInvalidInput
	}

	root := findBody(snap.Root)
	claimed := make(map[*html.Node]bool)
	var sections []domain.Section

	// Pass 1: headings and their following bodies. Every heading element
	// opens its own section; the claimed check only suppresses headings
	// nested inside a body element already consumed by a prior section.
	for _, h := range collectElements(root, isHeading) {
		if claimed[h] {
			continue
		}
		level := headingLevel(h)

		// Body is the run of following siblings up to the next heading.
		// Stopping at any heading level keeps sibling subheadings out of
		// this body so their text is never counted twice.
		var body []*html.Node
		for sib := nextElement(h); sib != nil; sib = nextElement(sib) {
			if isHeading(sib) {
				break
			}
			body = append(body, sib)
		}

		claimSubtree(claimed, h)
		for _, n := range body {
			claimSubtree(claimed, n)
		}

		sec := buildSection(h, body, domain.HeadingSection, level, snap.Layout)
		sections = append(sections, sec)
	}

	// Pass 2: semantic landmark containers not yet claimed.
	for _, el := range collectElements(root, isSemanticLandmark) {
		if claimed[el] || subtreeContainsClaimed(claimed, el) {
			continue
		}
		text := extractText(el)
		if len(text) <= minSemanticLength {
			continue
		}
		claimSubtree(claimed, el)
		sections = append(sections, buildSection(el, nil, domain.SemanticBlock, 0, snap.Layout))
	}

	// Pass 3: remaining standalone paragraph-like elements.
	for _, el := range collectElements(root, isParagraphLike) {
		if claimed[el] || subtreeContainsClaimed(claimed, el) {
			continue
		}
		text := extractText(el)
		if len(text) <= minTextBlockLength || len(text) > maxTextBlockLength {
			continue
		}
		if len(strings.Fields(text)) <= minTextBlockWords {
			continue
		}
		claimSubtree(claimed, el)
		sections = append(sections, buildSection(el, nil, domain.TextBlock, 0, snap.Layout))
	}

	return sections, nil
}

// buildSection assembles a Section from a root element and optional
// body nodes (heading sections carry their following siblings as body).
func buildSection(
	rootEl *html.Node, body []*html.Node, typ domain.SectionType, level int,
	layout map[string]domain.Rect,
) domain.Section {
	var heading, bodyText string
	textNodes := body

	if typ == domain.HeadingSection {
		heading = extractText(rootEl)
	} else {
		textNodes = []*html.Node{rootEl}
	}

	var parts []string
	for _, n := range textNodes {
		if t := extractText(n); t != "" {
			parts = append(parts, t)
		}
	}
	bodyText = strings.Join(parts, " ")

	links := collectLinks(rootEl)
	for _, n := range body {
		links = append(links, collectLinks(n)...)
	}

	// Normalised content: heading, body and link texts, collapsed.
	contentParts := make([]string, 0, 2+len(links))
	if heading != "" {
		contentParts = append(contentParts, heading)
	}
	if bodyText != "" {
		contentParts = append(contentParts, bodyText)
	}
	for _, l := range links {
		if l.Text != "" && !strings.Contains(bodyText, l.Text) {
			contentParts = append(contentParts, l.Text)
		}
	}
	content := collapseWhitespace(strings.Join(contentParts, " "))

	excerpt := bodyText
	if excerpt == "" {
		excerpt = heading
	}
	if len(excerpt) > excerptLength {
		cut := excerptLength
		for cut > 0 && !utf8.RuneStart(excerpt[cut]) {
			cut--
		}
		excerpt = excerpt[:cut]
	}

	id := attr(rootEl, "id")
	selector := ""
	if id != "" {
		selector = "#" + id
	} else {
		id = "pagelens-" + uuid.New().String()[:8]
		selector = structuralSelector(rootEl)
	}

	return domain.Section{
		ID:       id,
		Heading:  heading,
		Text:     excerpt,
		Content:  content,
		Selector: selector,
		Type:     typ,
		Level:    level,
		Links:    links,
		Rect:     layout[selector],
	}
}

// findBody returns the body element, or the document root when the
// tree has none (fragments).
func findBody(root *html.Node) *html.Node {
	var body *html.Node
	walk(root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.DataAtom == atom.Body {
			body = n
			return false
		}
		return true
	})
	if body != nil {
		return body
	}
	return root
}

// collectElements returns elements under root matching the predicate,
// in document order.
func collectElements(root *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	walk(root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && match(n) {
			out = append(out, n)
		}
		return true
	})
	return out
}

// walk performs a depth-first traversal. Returning false from fn stops
// the walk.
func walk(n *html.Node, fn func(*html.Node) bool) bool {
	if !fn(n) {
		return false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !walk(c, fn) {
			return false
		}
	}
	return true
}

// claimSubtree marks a node and all its descendants as consumed.
func claimSubtree(claimed map[*html.Node]bool, n *html.Node) {
	walk(n, func(d *html.Node) bool {
		claimed[d] = true
		return true
	})
}

// subtreeContainsClaimed reports whether any descendant of n is already
// claimed. Claiming such a container would double-count content.
func subtreeContainsClaimed(claimed map[*html.Node]bool, n *html.Node) bool {
	found := false
	walk(n, func(d *html.Node) bool {
		if claimed[d] {
			found = true
			return false
		}
		return true
	})
	return found
}

// nextElement returns the next element sibling, skipping text and
// comment nodes.
func nextElement(n *html.Node) *html.Node {
	for sib := n.NextSibling; sib != nil; sib = sib.NextSibling {
		if sib.Type == html.ElementNode {
			return sib
		}
	}
	return nil
}

func isHeading(n *html.Node) bool {
	return headingLevel(n) > 0
}

// headingLevel returns 1-6 for h1-h6 elements, 0 otherwise.
func headingLevel(n *html.Node) int {
	if n.Type != html.ElementNode {
		return 0
	}
	switch n.DataAtom {
	case atom.H1:
		return 1
	case atom.H2:
		return 2
	case atom.H3:
		return 3
	case atom.H4:
		return 4
	case atom.H5:
		return 5
	case atom.H6:
		return 6
	default:
		return 0
	}
}

// isSemanticLandmark matches article/section/content-role containers.
func isSemanticLandmark(n *html.Node) bool {
	switch n.DataAtom {
	case atom.Article, atom.Section, atom.Main:
		return true
	}
	switch attr(n, "role") {
	case "main", "article":
		return true
	}
	idClass := strings.ToLower(attr(n, "id") + " " + attr(n, "class"))
	if idClass != " " {
		for _, p := range semanticPatterns {
			if strings.Contains(idClass, p) {
				return true
			}
		}
	}
	return false
}

func isParagraphLike(n *html.Node) bool {
	switch n.DataAtom {
	case atom.P, atom.Blockquote, atom.Pre:
		return true
	default:
		return false
	}
}

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}
