package output

import "portfolio/internal/domain/entities"

// Surface is the page a LanguageSwitcher paints on.
type Surface interface {
	// Repaint replaces the content of every tagged element whose key lookup
	// succeeds. Elements whose key is missing keep their content.
	Repaint(lookup func(key string) (string, bool))
	// EnsureToggle creates the language toggle control when the page has none
	// yet. It reports whether a toggle exists afterwards.
	EnsureToggle(target entities.Locale) bool
	// UpdateToggle sets the toggle's label, tooltip and target locale.
	UpdateToggle(target entities.Locale, label, title string)
}

// LocaleStore persists the visitor's language preference.
type LocaleStore interface {
	SaveLocale(entities.Locale)
}
