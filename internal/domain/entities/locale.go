package entities

import (
	"fmt"
	"strings"

	"portfolio/internal/domain"
)

// Locale is one of the two languages the site is written in.
type Locale string

const (
	LocaleES Locale = "es"
	LocaleEN Locale = "en"
)

// Locales lists the supported locales, default first.
var Locales = []Locale{LocaleES, LocaleEN}

// ParseLocale validates s against the supported locales.
func ParseLocale(s string) (Locale, error) {
	l := Locale(strings.ToLower(strings.TrimSpace(s)))
	switch l {
	case LocaleES, LocaleEN:
		return l, nil
	}
	return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedLocale, s)
}

// Other returns the locale that is not l.
func (l Locale) Other() Locale {
	if l == LocaleEN {
		return LocaleES
	}
	return LocaleEN
}

func (l Locale) String() string {
	return string(l)
}
