package application

import (
	"fmt"
	"strings"

	"portfolio/internal/domain/entities"
)

// Neighbors locates a project detail page within the project list.
type Neighbors struct {
	Current  entities.Project
	Previous entities.Project
	Next     entities.Project
	// Position is 1-based.
	Position int
	Total    int
}

// Counter renders the "position / total" text.
func (n Neighbors) Counter() string {
	return fmt.Sprintf("%d / %d", n.Position, n.Total)
}

type Navigator struct {
	projects []entities.Project
}

func NewNavigator(projects []entities.Project) *Navigator {
	return &Navigator{projects: append([]entities.Project(nil), projects...)}
}

// Projects returns the navigation order.
func (n *Navigator) Projects() []entities.Project {
	return append([]entities.Project(nil), n.projects...)
}

// Locate finds the first project, in list order, whose slug occurs in path.
// Navigation wraps around the list in both directions.
func (n *Navigator) Locate(path string) (Neighbors, bool) {
	for i, p := range n.projects {
		if p.Slug == "" || !strings.Contains(path, p.Slug) {
			continue
		}
		l := len(n.projects)
		return Neighbors{
			Current:  p,
			Previous: n.projects[Wrap(i-1, l)],
			Next:     n.projects[Wrap(i+1, l)],
			Position: i + 1,
			Total:    l,
		}, true
	}
	return Neighbors{}, false
}

// Wrap maps i onto [0, length).
func Wrap(i, length int) int {
	if length <= 0 {
		return 0
	}
	return ((i % length) + length) % length
}
