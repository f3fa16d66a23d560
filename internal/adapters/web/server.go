package web

import (
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	sloggin "github.com/samber/slog-gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/trace"
)

// NewRouter wires the handler into a gin engine.
func NewRouter(h *Handler, gatherer prometheus.Gatherer, serviceName string, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	mux := gin.New()

	mux.Use(
		sloggin.NewWithConfig(logger.WithGroup("http"),
			sloggin.Config{
				DefaultLevel:     slog.LevelInfo,
				ClientErrorLevel: slog.LevelWarn,
				ServerErrorLevel: slog.LevelError,
			},
		),
		gin.Recovery(), otelgin.Middleware(serviceName), slogAddTraceAttributes,
	)

	mux.GET("/healthz", h.Health)
	mux.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	mux.GET("/assets/*filepath", h.StaticFile)
	mux.GET("/images/*filepath", h.StaticFile)
	mux.GET("/", h.RenderPage)
	mux.POST(contactPath, h.SubmitContact)
	mux.NoRoute(h.NotFound)

	return mux
}

// Health reports that the server is up and a site is loaded.
func (h *Handler) Health(c *gin.Context) {
	s := h.site.Site()
	if s == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "no site"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "pages": len(s.Paths())})
}

// StaticFile serves assets and images from the currently loaded site.
func (h *Handler) StaticFile(c *gin.Context) {
	name := strings.TrimPrefix(path.Clean(c.Request.URL.Path), "/")
	files := h.site.Site().Files()
	if fi, err := fs.Stat(files, name); err != nil || fi.IsDir() {
		h.NotFound(c)
		return
	}
	c.FileFromFS(name, http.FS(files))
}

func slogAddTraceAttributes(c *gin.Context) {
	sc := trace.SpanFromContext(c.Request.Context()).SpanContext()
	sloggin.AddCustomAttributes(c, slog.String("trace-id", sc.TraceID().String()))
	sloggin.AddCustomAttributes(c, slog.String("span-id", sc.SpanID().String()))
	c.Next()
}
