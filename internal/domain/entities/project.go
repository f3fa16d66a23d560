package entities

// Project describes one project detail page. The order of a project list is
// the navigation order.
type Project struct {
	Slug  string            `yaml:"slug"`
	Names map[Locale]string `yaml:"names"`
}

// Name returns the display name for l, falling back to the slug.
func (p Project) Name(l Locale) string {
	if n, ok := p.Names[l]; ok && n != "" {
		return n
	}
	return p.Slug
}

// Href is the relative link to the project's detail page.
func (p Project) Href() string {
	return p.Slug + ".html"
}
