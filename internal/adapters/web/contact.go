package web

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"portfolio/internal/application"
	"portfolio/internal/domain/entities"
)

const maxFormMemory = 1 << 20

type contactResponse struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

// SubmitContact relays a contact form submission and reports the outcome,
// as JSON to clients that ask for it and as a redirect back to the form
// otherwise.
func (h *Handler) SubmitContact(c *gin.Context) {
	var span trace.Span
	ctx := c.Request.Context()
	ctx, span = tracer.Start(ctx, "Handler.SubmitContact")
	defer span.End()

	l := h.requestLocale(c)

	if err := c.Request.ParseMultipartForm(maxFormMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		span.RecordError(err)
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}
	if c.Request.PostForm == nil {
		if err := c.Request.ParseForm(); err != nil {
			c.AbortWithStatus(http.StatusBadRequest)
			return
		}
	}

	fields := entities.Fields{}
	for name, values := range c.Request.PostForm {
		if name == originField {
			continue
		}
		fields[name] = append([]string(nil), values...)
	}

	origin, destination := h.resolveOrigin(c.Request.PostForm.Get(originField))
	span.SetAttributes(attribute.String("origin", origin))

	started := time.Now()
	msg, status, err := h.contacts.Submit(ctx, application.ContactRequest{
		Origin:      origin,
		Destination: destination,
		Locale:      l,
		Fields:      fields,
	})
	h.metrics.relayDuration.Observe(time.Since(started).Seconds())
	h.metrics.submissions.WithLabelValues(string(status.Outcome)).Inc()
	h.statuses.Put(status)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		h.logger.Warn("contact form not delivered", zap.Stringer("id", msg.ID), zap.String("origin", origin), zap.Error(err))
	} else {
		h.logger.Info("contact form delivered", zap.Stringer("id", msg.ID), zap.String("origin", origin))
	}

	if wantsJSON(c) {
		code := http.StatusOK
		if err != nil {
			code = http.StatusBadGateway
		}
		c.JSON(code, contactResponse{OK: err == nil, Message: h.message(l, status.MessageKey())})
		return
	}

	maxAge := int((h.settings.StatusTTL + time.Second - 1) / time.Second)
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(statusCookie, status.ID.String(), maxAge, "/", "", false, true)
	c.Redirect(http.StatusSeeOther, origin+"#contact-form")
}

// resolveOrigin maps the submitted origin to a page of the site and the
// destination its form posts to. Unknown origins fall back to the home page
// without a destination unless one is configured.
func (h *Handler) resolveOrigin(raw string) (origin, destination string) {
	origin = "/"
	if page, err := h.site.Site().Page(strings.TrimSpace(raw)); err == nil && raw != "" {
		origin = "/" + page.Path
		destination = page.FormAction
	}
	if h.settings.FormEndpoint != "" {
		destination = h.settings.FormEndpoint
	}
	return origin, destination
}
