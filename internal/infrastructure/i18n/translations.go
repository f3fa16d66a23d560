package i18n

import (
	"embed"
	"errors"
	"fmt"
	"sort"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"portfolio/internal/domain/entities"
	"portfolio/internal/ports/output"
)

//go:embed active.*.toml
var localeFS embed.FS

// Ensure Translator implements the output ports.
var (
	_ output.T          = (*Translator)(nil)
	_ output.Dictionary = (*Translator)(nil)
	_ output.Translator = (*Translator)(nil)
)

// Translator is a thin wrapper around go-i18n's Bundle/Localizer.
type Translator struct {
	bundle          *i18n.Bundle
	defaultLanguage language.Tag
	keys            map[entities.Locale][]string
	logger          *zap.Logger
}

// NewTranslator builds a Translator backed by go-i18n using the given default
// locale. Translations are loaded from the embedded active.*.toml files.
func NewTranslator(defaultLocale entities.Locale, logger *zap.Logger) (*Translator, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	tag, err := language.Parse(defaultLocale.String())
	if err != nil {
		return nil, fmt.Errorf("i18n: default locale %q: %w", defaultLocale, err)
	}
	bundle := i18n.NewBundle(tag)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	t := &Translator{
		bundle:          bundle,
		defaultLanguage: tag,
		keys:            make(map[entities.Locale][]string, len(entities.Locales)),
		logger:          logger,
	}
	for _, l := range entities.Locales {
		file := "active." + l.String() + ".toml"
		mf, err := bundle.LoadMessageFileFS(localeFS, file)
		if err != nil {
			return nil, fmt.Errorf("i18n: load %s: %w", file, err)
		}
		ids := make([]string, 0, len(mf.Messages))
		for _, m := range mf.Messages {
			ids = append(ids, m.ID)
		}
		sort.Strings(ids)
		t.keys[l] = ids
	}
	return t, nil
}

// Lookup returns the value of key defined for locale, without falling back to
// the default language.
func (t *Translator) Lookup(locale entities.Locale, key string) (string, bool) {
	if key == "" {
		return "", false
	}
	tag, err := language.Parse(locale.String())
	if err != nil {
		return "", false
	}
	localizer := i18n.NewLocalizer(t.bundle, locale.String())
	msg, used, err := localizer.LocalizeWithTag(&i18n.LocalizeConfig{MessageID: key})
	if err != nil || used != tag {
		return "", false
	}
	return msg, true
}

// Keys returns the sorted keys defined for locale.
func (t *Translator) Keys(locale entities.Locale) []string {
	return append([]string(nil), t.keys[locale]...)
}

// T renders the message identified by key for the given locale.
// If the key/locale is not found, it falls back to the default locale,
// then finally to the key itself.
func (t *Translator) T(locale entities.Locale, key string, data map[string]any) string {
	if key == "" {
		return ""
	}

	languages := []string{}
	if locale != "" {
		languages = append(languages, locale.String())
	}
	languages = append(languages, t.defaultLanguage.String())

	localizer := i18n.NewLocalizer(t.bundle, languages...)
	msg, err := localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: data,
	})
	if err != nil {
		var notFound *i18n.MessageNotFoundErr
		if !errors.As(err, &notFound) {
			t.logger.Warn("i18n: localize failed",
				zap.String("key", key), zap.Strings("locales", languages), zap.Error(err))
			return key
		}
		t.logger.Debug("i18n: missing message", zap.String("key", key), zap.Strings("locales", languages))
		return key
	}
	return msg
}

// Missing reports, per locale, which of keys have no value in that locale.
// Locales without gaps are omitted.
func Missing(d output.Dictionary, keys []string) map[entities.Locale][]string {
	out := make(map[entities.Locale][]string)
	for _, l := range entities.Locales {
		for _, k := range keys {
			if _, ok := d.Lookup(l, k); !ok {
				out[l] = append(out[l], k)
			}
		}
	}
	return out
}

// AllKeys returns the sorted union of the keys of every locale.
func AllKeys(d output.Dictionary) []string {
	seen := make(map[string]struct{})
	for _, l := range entities.Locales {
		for _, k := range d.Keys(l) {
			seen[k] = struct{}{}
		}
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
