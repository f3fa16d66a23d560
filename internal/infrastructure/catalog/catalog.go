package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"portfolio/internal/domain/entities"
)

//go:embed projects.yaml
var defaultProjects []byte

var ErrEmptyCatalog = errors.New("project catalog is empty")

type document struct {
	Projects []entities.Project `yaml:"projects"`
}

// Load reads the project list from path, or the built-in list when path is
// empty.
func Load(path string) ([]entities.Project, error) {
	data := defaultProjects
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read project catalog: %w", err)
		}
		data = b
	}
	return Parse(data)
}

// Parse decodes and validates a project list document.
func Parse(data []byte) ([]entities.Project, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode project catalog: %w", err)
	}
	if len(doc.Projects) == 0 {
		return nil, ErrEmptyCatalog
	}
	seen := make(map[string]bool, len(doc.Projects))
	for i, p := range doc.Projects {
		slug := strings.TrimSpace(p.Slug)
		if slug == "" {
			return nil, fmt.Errorf("project %d: missing slug", i+1)
		}
		if seen[slug] {
			return nil, fmt.Errorf("project %q: duplicate slug", slug)
		}
		seen[slug] = true
		doc.Projects[i].Slug = slug
	}
	return doc.Projects, nil
}
