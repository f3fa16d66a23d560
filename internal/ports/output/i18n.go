package output

import "portfolio/internal/domain/entities"

// Translator exposes a minimal i18n contract for user-facing messages.
// Implementations provide message lookup + templating for a given locale.
type T interface {
	// T renders the message identified by key for the given locale.
	// data is an optional map used for template placeholders (may be nil).
	T(locale entities.Locale, key string, data map[string]any) string
}

// Dictionary is the raw, fallback-free view of the locale dictionary used to
// repaint tagged elements.
type Dictionary interface {
	// Lookup returns the value of key in locale. ok is false when the key is
	// not defined for that locale.
	Lookup(locale entities.Locale, key string) (value string, ok bool)
	// Keys returns the sorted keys defined for locale.
	Keys(locale entities.Locale) []string
}

// Translator is a Dictionary that can also render messages with fallback.
type Translator interface {
	Dictionary
	T
}
