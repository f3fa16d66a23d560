package web

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"portfolio/internal/domain"
	"portfolio/internal/domain/entities"
)

const statusCookie = "form_status"

// RenderPage serves one page of the site with every component applied.
func (h *Handler) RenderPage(c *gin.Context) {
	var span trace.Span
	ctx := c.Request.Context()
	ctx, span = tracer.Start(ctx, "Handler.RenderPage")
	c.Request = c.Request.WithContext(ctx)
	defer span.End()

	urlPath := c.Request.URL.Path
	page, err := h.site.Site().Page(urlPath)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		h.respondError(c, h.requestLocale(c), err)
		return
	}

	doc := page.Open()
	store := &cookieLocaleStore{}
	query := c.Request.URL.Query()
	query.Del(langParam)
	ctrl := newPageController(doc, h.dict, store, h.navigator, h.settings, query)

	req := viewRequest{
		Path:      urlPath,
		Persisted: persistedLocale(c),
		Page:      pageNumber(c.Query(pageParam)),
		Switch:    c.Query(langParam),
		Status:    h.pendingStatus(c),
		Now:       h.statuses.now(),
	}
	_, runSpan := tracer.Start(ctx, "pageController.Run")
	l := ctrl.Run(req)
	runSpan.End()
	span.SetAttributes(attribute.String("page", page.Path), attribute.String("locale", l.String()))

	body, err := doc.Bytes()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		h.logger.Error("render page", zap.String("page", page.Path), zap.Error(err))
		h.respondError(c, l, err)
		return
	}
	store.flush(c)
	h.metrics.pageViews.WithLabelValues(l.String()).Inc()
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "text/html; charset=utf-8", body)
}

// NotFound serves pages reached through the router's fallback and answers
// 404 for anything else.
func (h *Handler) NotFound(c *gin.Context) {
	p := c.Request.URL.Path
	if (c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead) &&
		(strings.HasSuffix(p, ".html") || strings.HasSuffix(p, "/")) {
		h.RenderPage(c)
		return
	}
	h.respondError(c, h.requestLocale(c), domain.ErrPageNotFound)
}

// pendingStatus returns the visitor's still visible form status, clearing
// the cookie once it has expired.
func (h *Handler) pendingStatus(c *gin.Context) *entities.FormStatus {
	v, err := c.Cookie(statusCookie)
	if err != nil || v == "" {
		return nil
	}
	id, err := uuid.Parse(v)
	if err == nil {
		if st, ok := h.statuses.Get(id); ok {
			return &st
		}
	}
	c.SetCookie(statusCookie, "", -1, "/", "", false, true)
	return nil
}

// pageNumber parses ?page=, treating anything unusable as the first page.
func pageNumber(v string) int {
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return 1
	}
	return n
}
