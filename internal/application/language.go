package application

import (
	"strings"

	"portfolio/internal/domain/entities"
	"portfolio/internal/ports/output"
)

// LanguageSwitcher owns the active locale of one page view. It paints every
// tagged element of its surface and tells subscribers about each switch.
type LanguageSwitcher struct {
	dict        output.Dictionary
	surface     output.Surface
	store       output.LocaleStore
	fallback    entities.Locale
	active      entities.Locale
	subscribers []func(entities.Locale)
}

func NewLanguageSwitcher(
	dict output.Dictionary,
	surface output.Surface,
	store output.LocaleStore,
	fallback entities.Locale,
) *LanguageSwitcher {
	return &LanguageSwitcher{
		dict:     dict,
		surface:  surface,
		store:    store,
		fallback: fallback,
		active:   fallback,
	}
}

// Active returns the current locale.
func (s *LanguageSwitcher) Active() entities.Locale {
	return s.active
}

// Subscribe registers fn to run after every switch, in registration order.
func (s *LanguageSwitcher) Subscribe(fn func(entities.Locale)) {
	s.subscribers = append(s.subscribers, fn)
}

// Init paints the page in the persisted locale. A missing or unrecognized
// persisted value falls back to the switcher's default locale.
func (s *LanguageSwitcher) Init(persisted string) {
	l, err := entities.ParseLocale(persisted)
	if err != nil {
		l = s.fallback
	}
	s.active = l
	s.CreateToggle()
	s.Switch(l)
}

// CreateToggle adds the toggle control unless the page already has one.
func (s *LanguageSwitcher) CreateToggle() {
	if s.surface.EnsureToggle(s.active.Other()) {
		s.updateToggle()
	}
}

// Switch makes l the active locale, persists it and repaints the surface.
func (s *LanguageSwitcher) Switch(l entities.Locale) {
	s.active = l
	if s.store != nil {
		s.store.SaveLocale(l)
	}
	s.surface.Repaint(func(key string) (string, bool) {
		return s.dict.Lookup(l, key)
	})
	s.updateToggle()
	for _, fn := range s.subscribers {
		fn(l)
	}
}

// Toggle switches to the inactive locale.
func (s *LanguageSwitcher) Toggle() {
	s.Switch(s.active.Other())
}

// updateToggle labels the toggle with the locale a click would switch to.
func (s *LanguageSwitcher) updateToggle() {
	target := s.active.Other()
	label, ok := s.dict.Lookup(target, "toggle.label")
	if !ok {
		label = strings.ToUpper(target.String())
	}
	title, _ := s.dict.Lookup(target, "toggle.title")
	s.surface.UpdateToggle(target, label, title)
}
