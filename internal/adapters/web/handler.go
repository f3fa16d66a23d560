package web

import (
	"time"

	"go.uber.org/zap"

	"portfolio/internal/application"
	"portfolio/internal/domain/entities"
	"portfolio/internal/infrastructure/site"
	"portfolio/internal/ports/input"
	"portfolio/internal/ports/output"
)

// Settings are the page behaviors that come from configuration.
type Settings struct {
	DefaultLocale entities.Locale
	PageSize      int
	ProjectsPath  string
	// FormEndpoint, when set, replaces the contact form action of every page.
	FormEndpoint string
	StatusTTL    time.Duration
}

// Handler serves the pages and the contact form using use cases.
type Handler struct {
	site      *site.Holder
	dict      output.Translator
	contacts  input.ContactUseCase
	navigator *application.Navigator
	statuses  *StatusStore
	metrics   *Metrics
	settings  Settings
	logger    *zap.Logger
}

// NewHandler creates a Handler.
func NewHandler(
	holder *site.Holder,
	dict output.Translator,
	contacts input.ContactUseCase,
	navigator *application.Navigator,
	statuses *StatusStore,
	metrics *Metrics,
	settings Settings,
	logger *zap.Logger,
) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		site:      holder,
		dict:      dict,
		contacts:  contacts,
		navigator: navigator,
		statuses:  statuses,
		metrics:   metrics,
		settings:  settings,
		logger:    logger,
	}
}
