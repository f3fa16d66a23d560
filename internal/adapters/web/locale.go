package web

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"

	"portfolio/internal/domain/entities"
	"portfolio/internal/ports/output"
)

const (
	localeCookie = "language"
	localeMaxAge = 365 * 24 * time.Hour
)

var (
	_ output.LocaleStore = (*cookieLocaleStore)(nil)

	localeTags    = []language.Tag{language.Spanish, language.English}
	localeMatcher = language.NewMatcher(localeTags)
)

// cookieLocaleStore remembers the last saved locale of a request and
// writes it as a single cookie.
type cookieLocaleStore struct {
	saved entities.Locale
}

func (s *cookieLocaleStore) SaveLocale(l entities.Locale) {
	s.saved = l
}

func (s *cookieLocaleStore) flush(c *gin.Context) {
	if s.saved == "" {
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(localeCookie, s.saved.String(), int(localeMaxAge.Seconds()), "/", "", false, false)
}

// persistedLocale returns the cookie value, or the best Accept-Language
// match when the visitor has no cookie yet. An empty result means the
// default locale.
func persistedLocale(c *gin.Context) string {
	if v, err := c.Cookie(localeCookie); err == nil {
		return v
	}
	return matchAcceptLanguage(c.GetHeader("Accept-Language"))
}

func matchAcceptLanguage(header string) string {
	if header == "" {
		return ""
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return ""
	}
	_, idx, conf := localeMatcher.Match(tags...)
	if conf == language.No {
		return ""
	}
	return entities.Locales[idx].String()
}

// requestLocale resolves the locale of a non-page request such as a form
// post.
func (h *Handler) requestLocale(c *gin.Context) entities.Locale {
	if l, err := entities.ParseLocale(persistedLocale(c)); err == nil {
		return l
	}
	return h.settings.DefaultLocale
}
