package web

import (
	"strconv"

	"golang.org/x/net/html"

	"portfolio/internal/application"
	"portfolio/internal/domain/entities"
	"portfolio/internal/infrastructure/site"
	"portfolio/internal/ports/output"
	"portfolio/pkg/dom"
)

const pageParam = "page"

// pagerView paginates the project cards of the home page.
type pagerView struct {
	doc        *site.Document
	dict       output.Dictionary
	size       int
	container  *html.Node
	cards      []*html.Node
	pagination application.Pagination
}

func newPagerView(doc *site.Document, dict output.Dictionary, size int) *pagerView {
	return &pagerView{doc: doc, dict: dict, size: size}
}

// Init shows the requested page and builds the control bar. It reports
// false, leaving the document untouched, when there is nothing to paginate.
func (v *pagerView) Init(page int, l entities.Locale) bool {
	v.container = v.doc.Query(".posts")
	if v.container == nil {
		return false
	}
	v.cards = dom.ChildElements(v.container, "article")
	p, ok := application.Paginate(len(v.cards), v.size, page)
	if !ok {
		return false
	}
	v.pagination = p
	v.showPage()
	v.Render(l)
	return true
}

func (v *pagerView) showPage() {
	for i, card := range v.cards {
		if v.pagination.Visible(i) {
			dom.SetAttr(card, "style", "display: block")
		} else {
			dom.SetAttr(card, "style", "display: none")
		}
	}
}

// Render rebuilds the control bar with labels in l.
func (v *pagerView) Render(l entities.Locale) {
	bar := v.doc.Query(".pagination")
	if bar == nil {
		bar = dom.Element("div", dom.A("class", "pagination"))
		dom.InsertAfter(v.container, bar)
	}
	dom.RemoveChildren(bar)

	for _, c := range v.pagination.Controls {
		href := "?" + pageParam + "=" + strconv.Itoa(c.Page)
		switch c.Kind {
		case application.ControlPrevious:
			bar.AppendChild(anchor("previous", href, v.label(l, "btn.prev")))
		case application.ControlNext:
			bar.AppendChild(anchor("next", href, v.label(l, "btn.next")))
		default:
			class := "page"
			if c.Active {
				class = "page active"
			}
			bar.AppendChild(anchor(class, href, strconv.Itoa(c.Page)))
		}
	}
}

func (v *pagerView) label(l entities.Locale, key string) string {
	if s, ok := v.dict.Lookup(l, key); ok {
		return s
	}
	return key
}
