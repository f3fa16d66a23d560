package application

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio/internal/domain/entities"
)

func projects(slugs ...string) []entities.Project {
	out := make([]entities.Project, len(slugs))
	for i, s := range slugs {
		out[i] = entities.Project{Slug: s}
	}
	return out
}

func TestNavigatorMiddleProject(t *testing.T) {
	nav := NewNavigator(projects("a", "b", "c"))

	n, ok := nav.Locate("/proyectos-web/b.html")
	require.True(t, ok)
	assert.Equal(t, "a", n.Previous.Slug)
	assert.Equal(t, "c", n.Next.Slug)
	assert.Equal(t, "2 / 3", n.Counter())
	assert.Equal(t, "a.html", n.Previous.Href())
}

func TestNavigatorWrapsAround(t *testing.T) {
	nav := NewNavigator(projects("a", "b", "c"))

	first, ok := nav.Locate("/proyectos-web/a.html")
	require.True(t, ok)
	assert.Equal(t, "c", first.Previous.Slug)

	last, ok := nav.Locate("/proyectos-web/c.html")
	require.True(t, ok)
	assert.Equal(t, "a", last.Next.Slug)
	assert.Equal(t, "3 / 3", last.Counter())
}

func TestNavigatorFirstMatchWins(t *testing.T) {
	nav := NewNavigator(projects("facturia2", "facturia", "analisis-clientes", "dashboard-ventas"))

	n, ok := nav.Locate("/proyectos-web/facturia2.html")
	require.True(t, ok)
	assert.Equal(t, "facturia2", n.Current.Slug)
	assert.Equal(t, "dashboard-ventas", n.Previous.Slug)

	n, ok = nav.Locate("/proyectos-web/facturia.html")
	require.True(t, ok)
	assert.Equal(t, "facturia", n.Current.Slug)
	assert.Equal(t, 2, n.Position)
}

func TestNavigatorNoMatch(t *testing.T) {
	nav := NewNavigator(projects("a", "b"))
	_, ok := nav.Locate("/about.html")
	assert.False(t, ok)

	_, ok = NewNavigator(nil).Locate("/proyectos-web/a.html")
	assert.False(t, ok)
}

func TestWrapStaysInRange(t *testing.T) {
	for l := 1; l <= 7; l++ {
		for i := -2 * l; i <= 2*l; i++ {
			w := Wrap(i, l)
			assert.GreaterOrEqual(t, w, 0)
			assert.Less(t, w, l)
		}
	}
	assert.Equal(t, 0, Wrap(5, 0))
}
