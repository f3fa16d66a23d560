package web

import (
	"errors"
	"html"
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio/internal/domain"
	"portfolio/internal/domain/entities"
)

// errorMessageKey maps a domain error to the dictionary key shown to the
// visitor.
func errorMessageKey(err error) string {
	if domain.Code(err) == "page_not_found" {
		return "error.notFound"
	}
	return "form.error"
}

func (h *Handler) message(l entities.Locale, key string) string {
	return h.dict.T(l, key, nil)
}

// respondError writes a small localized page for err.
func (h *Handler) respondError(c *gin.Context, l entities.Locale, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, domain.ErrPageNotFound) {
		status = http.StatusNotFound
	}
	msg := html.EscapeString(h.message(l, errorMessageKey(err)))
	body := `<!DOCTYPE html><html lang="` + l.String() + `"><head><meta charset="utf-8"><title>` + msg +
		`</title></head><body><h1>` + msg + `</h1><p><a href="/">/</a></p></body></html>`
	c.Data(status, "text/html; charset=utf-8", []byte(body))
}

// wantsJSON reports whether the client asked for a JSON answer.
func wantsJSON(c *gin.Context) bool {
	return c.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) == gin.MIMEJSON
}
