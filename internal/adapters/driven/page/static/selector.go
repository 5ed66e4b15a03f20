package static

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// findBySelector resolves the selector dialect the segmenter emits:
// either "#id", or a direct-child chain anchored at "#id", "body" or
// "html" with "tag:nth-of-type(n)" steps, e.g.
// "body > div:nth-of-type(2) > h2:nth-of-type(1)".
func findBySelector(root *html.Node, selector string) *html.Node {
	steps := strings.Split(selector, ">")
	for i := range steps {
		steps[i] = strings.TrimSpace(steps[i])
	}
	if len(steps) == 0 || steps[0] == "" {
		return nil
	}

	cur := anchor(root, steps[0])
	for _, step := range steps[1:] {
		if cur == nil {
			return nil
		}
		cur = childByStep(cur, step)
	}
	return cur
}

// anchor resolves the first selector step against the whole document.
func anchor(root *html.Node, step string) *html.Node {
	if id, ok := strings.CutPrefix(step, "#"); ok {
		return findByID(root, id)
	}
	tag, n := parseStep(step)
	if n > 0 {
		// A positional step can anchor a selector when the segmenter
		// found no id'd ancestor above the body.
		if body := findByTag(root, "body"); body != nil {
			return childByStep(body, step)
		}
		return nil
	}
	return findByTag(root, tag)
}

// childByStep finds the direct child matching one "tag:nth-of-type(n)"
// step (bare "tag" means the first of its type).
func childByStep(parent *html.Node, step string) *html.Node {
	tag, n := parseStep(step)
	if tag == "" {
		return nil
	}
	if n == 0 {
		n = 1
	}

	count := 0
	for c := parent.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || c.Data != tag {
			continue
		}
		count++
		if count == n {
			return c
		}
	}
	return nil
}

// parseStep splits "tag:nth-of-type(n)" into its parts; n is 0 for a
// bare tag.
func parseStep(step string) (tag string, n int) {
	tag, rest, found := strings.Cut(step, ":nth-of-type(")
	if !found {
		return step, 0
	}
	num, ok := strings.CutSuffix(rest, ")")
	if !ok {
		return "", 0
	}
	n, err := strconv.Atoi(num)
	if err != nil || n < 1 {
		return "", 0
	}
	return tag, n
}

func findByID(n *html.Node, id string) *html.Node {
	if n.Type == html.ElementNode {
		for _, a := range n.Attr {
			if a.Key == "id" && a.Val == id {
				return n
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByID(c, id); found != nil {
			return found
		}
	}
	return nil
}

func findByTag(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByTag(c, tag); found != nil {
			return found
		}
	}
	return nil
}
