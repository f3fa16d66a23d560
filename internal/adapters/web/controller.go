package web

import (
	"net/url"
	"time"

	"portfolio/internal/application"
	"portfolio/internal/domain/entities"
	"portfolio/internal/infrastructure/site"
	"portfolio/internal/ports/output"
)

// viewRequest is what a page view needs from the HTTP request.
type viewRequest struct {
	Path      string
	Persisted string
	Page      int
	Switch    string
	Status    *entities.FormStatus
	Now       time.Time
}

// pageController runs the page components over one request's document. It
// owns every component of the view; nothing is shared between views.
type pageController struct {
	doc       *site.Document
	switcher  *application.LanguageSwitcher
	pager     *pagerView
	navigator *navigatorView
	form      *formView
	settings  Settings
}

func newPageController(
	doc *site.Document,
	dict output.Dictionary,
	store output.LocaleStore,
	nav *application.Navigator,
	settings Settings,
	query url.Values,
) *pageController {
	return &pageController{
		doc:       doc,
		switcher:  application.NewLanguageSwitcher(dict, newPageSurface(doc, query), store, settings.DefaultLocale),
		pager:     newPagerView(doc, dict, settings.PageSize),
		navigator: newNavigatorView(doc, dict, nav),
		form:      newFormView(doc, dict),
		settings:  settings,
	}
}

// Run applies every component in order and returns the locale the page
// ends up in.
func (c *pageController) Run(req viewRequest) entities.Locale {
	c.switcher.Init(req.Persisted)
	l := c.switcher.Active()

	if c.pager.Init(req.Page, l) {
		c.switcher.Subscribe(c.pager.Render)
	} else if c.navigator.Init(req.Path, c.settings.ProjectsPath, l) {
		c.switcher.Subscribe(c.navigator.Render)
	}
	if c.form.Init(req.Path, req.Status, req.Now, l) {
		c.switcher.Subscribe(c.form.Render)
	}

	if req.Switch != "" {
		if target, err := entities.ParseLocale(req.Switch); err == nil {
			c.switcher.Switch(target)
		}
	}
	return c.switcher.Active()
}
