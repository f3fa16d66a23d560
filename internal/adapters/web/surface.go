package web

import (
	"net/url"

	"golang.org/x/net/html"

	"portfolio/internal/domain/entities"
	"portfolio/internal/infrastructure/site"
	"portfolio/internal/ports/output"
	"portfolio/pkg/dom"
)

const (
	toggleID  = "lang-toggle"
	langParam = "lang"
)

var _ output.Surface = (*pageSurface)(nil)

// pageSurface lets a LanguageSwitcher paint a request's document.
type pageSurface struct {
	doc   *site.Document
	query url.Values
}

func newPageSurface(doc *site.Document, query url.Values) *pageSurface {
	return &pageSurface{doc: doc, query: query}
}

func (s *pageSurface) Repaint(lookup func(string) (string, bool)) {
	s.doc.Repaint(lookup)
}

func (s *pageSurface) EnsureToggle(target entities.Locale) bool {
	if s.doc.ByID(toggleID) != nil {
		return true
	}
	icons := s.doc.Query("#nav .icons")
	if icons == nil {
		return false
	}
	li := dom.Element("li")
	li.AppendChild(dom.Element("a",
		dom.A("href", s.toggleHref(target)),
		dom.A("id", toggleID),
		dom.A("class", "button small"),
	))
	icons.AppendChild(li)
	return true
}

func (s *pageSurface) UpdateToggle(target entities.Locale, label, title string) {
	toggle := s.doc.ByID(toggleID)
	if toggle == nil {
		return
	}
	dom.SetText(toggle, label)
	if title != "" {
		dom.SetAttr(toggle, "title", title)
	}
	dom.SetAttr(toggle, "href", s.toggleHref(target))
}

// toggleHref keeps the current query, e.g. the pager position, and only
// replaces the language.
func (s *pageSurface) toggleHref(target entities.Locale) string {
	q := url.Values{}
	for k, v := range s.query {
		q[k] = append([]string(nil), v...)
	}
	q.Set(langParam, target.String())
	return "?" + q.Encode()
}

// anchor builds a link with a text label.
func anchor(class, href, label string) *html.Node {
	a := dom.Element("a", dom.A("class", class), dom.A("href", href))
	dom.SetText(a, label)
	return a
}
