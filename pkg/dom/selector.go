package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// compound is one space-separated part of a selector: an optional tag, an
// optional id and any number of classes, e.g. "a#lang-toggle.button".
type compound struct {
	tag     string
	id      string
	classes []string
}

func parseCompound(s string) compound {
	var c compound
	cur := &c.tag
	var buf strings.Builder
	flush := func() {
		*cur = buf.String()
		buf.Reset()
	}
	var class string
	for _, r := range s {
		switch r {
		case '#':
			flush()
			cur = &c.id
		case '.':
			flush()
			if class != "" {
				c.classes = append(c.classes, class)
			}
			class = ""
			cur = &class
		default:
			buf.WriteRune(r)
		}
	}
	flush()
	if class != "" {
		c.classes = append(c.classes, class)
	}
	return c
}

func (c compound) match(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	if c.tag != "" && n.Data != c.tag {
		return false
	}
	if c.id != "" {
		if v, ok := Attr(n, "id"); !ok || v != c.id {
			return false
		}
	}
	for _, cl := range c.classes {
		if !HasClass(n, cl) {
			return false
		}
	}
	return true
}

// Query returns the first element matching selector. Only tag, #id and
// .class compounds joined by the descendant combinator are understood
// ("#nav .icons", "a.page", ".posts").
func Query(root *html.Node, selector string) *html.Node {
	all := QueryAll(root, selector)
	if len(all) == 0 {
		return nil
	}
	return all[0]
}

// QueryAll returns every element matching selector in document order.
func QueryAll(root *html.Node, selector string) []*html.Node {
	parts := strings.Fields(selector)
	if len(parts) == 0 {
		return nil
	}
	chain := make([]compound, len(parts))
	for i, p := range parts {
		chain[i] = parseCompound(p)
	}
	last := chain[len(chain)-1]
	return FindAll(root, func(n *html.Node) bool {
		return last.match(n) && ancestorsMatch(n.Parent, chain[:len(chain)-1])
	})
}

// ancestorsMatch checks that chain matches, right to left, some ancestors of n.
func ancestorsMatch(n *html.Node, chain []compound) bool {
	if len(chain) == 0 {
		return true
	}
	want := chain[len(chain)-1]
	for a := n; a != nil; a = a.Parent {
		if want.match(a) && ancestorsMatch(a.Parent, chain[:len(chain)-1]) {
			return true
		}
	}
	return false
}
