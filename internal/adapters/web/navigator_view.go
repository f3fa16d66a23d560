package web

import (
	"strings"

	"golang.org/x/net/html"

	"portfolio/internal/application"
	"portfolio/internal/domain/entities"
	"portfolio/internal/infrastructure/site"
	"portfolio/internal/ports/output"
	"portfolio/pkg/dom"
)

// navigatorView renders previous/next project links on project pages.
type navigatorView struct {
	doc       *site.Document
	dict      output.Dictionary
	navigator *application.Navigator
	neighbors application.Neighbors
	container *html.Node
}

func newNavigatorView(doc *site.Document, dict output.Dictionary, nav *application.Navigator) *navigatorView {
	return &navigatorView{doc: doc, dict: dict, navigator: nav}
}

// Init locates the project for path and renders the links. Pages outside
// projectsPath, unknown projects and pages without a place for the links
// are left alone.
func (v *navigatorView) Init(path, projectsPath string, l entities.Locale) bool {
	if !strings.Contains(path, projectsPath) {
		return false
	}
	n, ok := v.navigator.Locate(path)
	if !ok {
		return false
	}
	v.neighbors = n

	v.container = v.doc.Query(".pagination")
	if v.container == nil {
		footer := v.doc.ByID("footer")
		if footer == nil {
			return false
		}
		v.container = dom.Element("div",
			dom.A("class", "pagination"),
			dom.A("style", "text-align: center; margin-top: 2em"),
		)
		dom.InsertBefore(footer, v.container)
	}
	v.Render(l)
	return true
}

// Render rebuilds the links with labels in l.
func (v *navigatorView) Render(l entities.Locale) {
	c := v.container
	dom.RemoveChildren(c)
	dom.SetAttr(c, "style", "text-align: center; margin-top: 2em; display: flex; justify-content: center; align-items: center; gap: 1em")

	c.AppendChild(v.link(l, "nav.prevProject", v.neighbors.Previous))

	counter := dom.Element("span", dom.A("style", "padding: 0 1em; font-weight: bold"))
	dom.SetText(counter, v.neighbors.Counter())
	c.AppendChild(counter)

	c.AppendChild(v.link(l, "nav.nextProject", v.neighbors.Next))
}

func (v *navigatorView) link(l entities.Locale, key string, p entities.Project) *html.Node {
	a := anchor("button", p.Href(), p.Name(l))
	dom.SetAttr(a, site.I18nAttr, key)
	dom.SetAttr(a, "style", "margin: 0")
	if label, ok := v.dict.Lookup(l, key); ok {
		if err := dom.SetInnerHTML(a, label); err != nil {
			dom.SetText(a, label)
		}
	}
	dom.SetAttr(a, "title", p.Name(l))
	return a
}
