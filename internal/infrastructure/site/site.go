package site

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"

	"portfolio/internal/domain"
)

//go:embed sample
var sample embed.FS

// Sample returns the built-in example site.
func Sample() fs.FS {
	sub, err := fs.Sub(sample, "sample")
	if err != nil {
		panic(err)
	}
	return sub
}

// Site is a loaded set of pages plus the file system they were read from.
type Site struct {
	pages map[string]*Page
	files fs.FS
}

// Load parses every .html file of fsys. Pages are keyed by their slash
// path relative to the root, e.g. "index.html" or "proyectos-web/a.html".
func Load(fsys fs.FS) (*Site, error) {
	s := &Site{pages: make(map[string]*Page), files: fsys}
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(path.Ext(p), ".html") {
			return nil
		}
		f, err := fsys.Open(p)
		if err != nil {
			return err
		}
		defer f.Close()
		page, err := parsePage(p, f)
		if err != nil {
			return err
		}
		s.pages[p] = page
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load site: %w", err)
	}
	if len(s.pages) == 0 {
		return nil, fmt.Errorf("load site: no pages found")
	}
	return s, nil
}

// Page resolves a request path to a page. "/" and directory paths map to
// their index.html.
func (s *Site) Page(urlPath string) (*Page, error) {
	p := strings.TrimPrefix(path.Clean("/"+urlPath), "/")
	if p == "" || strings.HasSuffix(urlPath, "/") {
		p = path.Join(p, "index.html")
	}
	page, ok := s.pages[p]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrPageNotFound, urlPath)
	}
	return page, nil
}

// Paths lists the page paths in lexical order.
func (s *Site) Paths() []string {
	out := make([]string, 0, len(s.pages))
	for p := range s.pages {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Files is the file system the site was loaded from, for static assets.
func (s *Site) Files() fs.FS {
	return s.files
}

// Holder publishes the current Site and swaps it atomically on reload.
type Holder struct {
	current atomic.Pointer[Site]
	source  func() fs.FS
	logger  *zap.Logger
}

// NewHolder loads the site from source.
func NewHolder(source func() fs.FS, logger *zap.Logger) (*Holder, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &Holder{source: source, logger: logger}
	if err := h.Reload(); err != nil {
		return nil, err
	}
	return h, nil
}

// Site returns the most recently loaded site.
func (h *Holder) Site() *Site {
	return h.current.Load()
}

// Reload re-reads the site. On failure the previous site stays published.
func (h *Holder) Reload() error {
	s, err := Load(h.source())
	if err != nil {
		return err
	}
	h.current.Store(s)
	h.logger.Info("site loaded", zap.Int("pages", len(s.pages)))
	return nil
}
