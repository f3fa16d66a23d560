package web

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio/internal/domain/entities"
	"portfolio/pkg/dom"
)

type markupDict map[string]string

func (d markupDict) Lookup(_ entities.Locale, key string) (string, bool) {
	v, ok := d[key]
	return v, ok
}

func (d markupDict) Keys(entities.Locale) []string { return nil }

func TestNavigatorLinkLabels(t *testing.T) {
	v := &navigatorView{dict: markupDict{
		"nav.prevProject": "<strong>Prev</strong> project",
		"nav.nextProject": "Next & more",
	}}
	p := entities.Project{Slug: "facturia", Names: map[entities.Locale]string{entities.LocaleEN: "FacturIA"}}

	prev := v.link(entities.LocaleEN, "nav.prevProject", p)
	require.NotNil(t, dom.Query(prev, "strong"))
	assert.Equal(t, "Prev project", dom.TextContent(prev))
	assert.Equal(t, "facturia.html", attr(prev, "href"))
	assert.Equal(t, "FacturIA", attr(prev, "title"))

	next := v.link(entities.LocaleEN, "nav.nextProject", p)
	assert.Equal(t, "Next & more", dom.TextContent(next))

	missing := v.link(entities.LocaleES, "nav.unknown", p)
	assert.Equal(t, "facturia", dom.TextContent(missing), "without a label the project name stays")
}
