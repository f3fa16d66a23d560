package site

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"

	"portfolio/pkg/dom"
)

// Page is one parsed page of the site. It is never modified after loading;
// every request works on its own Document.
type Page struct {
	Path string
	// FormAction is the markup action of the page's contact form, if any.
	FormAction string

	root *html.Node
}

func parsePage(path string, r io.Reader) (*Page, error) {
	root, err := dom.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	p := &Page{Path: path, root: root}
	if form := dom.ByID(root, "contact-form"); form != nil {
		p.FormAction, _ = dom.Attr(form, "action")
		p.FormAction = strings.TrimSpace(p.FormAction)
	}
	return p, nil
}

// Open returns a fresh, bound copy of the page.
func (p *Page) Open() *Document {
	root := dom.Clone(p.root)
	return &Document{Path: p.Path, Root: root, bindings: bind(root)}
}

// Document is a request-scoped copy of a page.
type Document struct {
	Path string
	Root *html.Node

	bindings []Binding
}

// Bindings returns the tagged elements bound so far, in document order.
func (d *Document) Bindings() []Binding {
	return d.bindings
}

// Track binds the tagged elements of a subtree created after Open.
func (d *Document) Track(n *html.Node) {
	d.bindings = append(d.bindings, bind(n)...)
}

// Repaint fills every bound element whose key lookup succeeds.
func (d *Document) Repaint(lookup func(key string) (string, bool)) {
	for _, b := range d.bindings {
		if v, ok := lookup(b.Key); ok {
			b.Fill(v)
		}
	}
}

// Query returns the first element matching selector.
func (d *Document) Query(selector string) *html.Node {
	return dom.Query(d.Root, selector)
}

// ByID returns the element with the given id.
func (d *Document) ByID(id string) *html.Node {
	return dom.ByID(d.Root, id)
}

// Render serializes the document.
func (d *Document) Render(w io.Writer) error {
	return dom.Render(w, d.Root)
}

// Bytes serializes the document into memory.
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
