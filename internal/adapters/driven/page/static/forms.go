package static

import (
	"fmt"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/pagelens-labs/pagelens-cli/internal/core/ports/driven"
)

// collectFormFields walks the document for input, select and textarea
// elements. Label resolution order: <label for=...>, aria-label,
// placeholder, then the name attribute.
func collectFormFields(root *html.Node) []driven.FormField {
	labels := labelIndex(root)

	var fields []driven.FormField
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.Input, atom.Select, atom.Textarea:
				if f, ok := buildField(n, labels); ok {
					fields = append(fields, f)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return fields
}

func buildField(n *html.Node, labels map[string]string) (driven.FormField, bool) {
	kind := n.Data
	if n.DataAtom == atom.Input {
		kind = attrValue(n, "type")
		if kind == "" {
			kind = "text"
		}
		// Hidden inputs and buttons are not user-fillable fields.
		switch kind {
		case "hidden", "submit", "button", "image", "reset":
			return driven.FormField{}, false
		}
	}

	id := attrValue(n, "id")
	name := attrValue(n, "name")

	label := labels[id]
	if label == "" {
		label = attrValue(n, "aria-label")
	}
	if label == "" {
		label = attrValue(n, "placeholder")
	}
	if label == "" {
		label = name
	}

	selector := ""
	switch {
	case id != "":
		selector = "#" + id
	case name != "":
		selector = fmt.Sprintf("%s[name=%q]", n.Data, name)
	}

	return driven.FormField{
		Name:     name,
		Kind:     kind,
		Label:    label,
		Selector: selector,
		Required: attrValue(n, "required") != "" || hasAttr(n, "required"),
	}, true
}

// labelIndex maps element ids to their <label for=...> text.
func labelIndex(root *html.Node) map[string]string {
	index := make(map[string]string)
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.Label {
			if target := attrValue(n, "for"); target != "" {
				index[target] = nodeText(n)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return index
}

func hasAttr(n *html.Node, key string) bool {
	for _, a := range n.Attr {
		if a.Key == key {
			return true
		}
	}
	return false
}
