package web

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"golang.org/x/net/html"

	"portfolio/internal/application"
	"portfolio/internal/domain"
	"portfolio/internal/domain/entities"
	"portfolio/internal/infrastructure/catalog"
	"portfolio/internal/infrastructure/i18n"
	"portfolio/internal/infrastructure/memory"
	"portfolio/internal/infrastructure/site"
	"portfolio/pkg/dom"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type recordingGateway struct {
	mu           sync.Mutex
	destinations []string
	fields       []entities.Fields
	err          error
	// during runs inside Submit, e.g. to move a fake clock.
	during func()
}

func (g *recordingGateway) Submit(_ context.Context, destination string, fields entities.Fields) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.destinations = append(g.destinations, destination)
	g.fields = append(g.fields, fields)
	if g.during != nil {
		g.during()
	}
	return g.err
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func (g *recordingGateway) calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.destinations)
}

type testServer struct {
	router   *gin.Engine
	statuses *StatusStore
	gateway  *recordingGateway
	contacts *memory.ContactStore
}

func newTestServer(t *testing.T, gw *recordingGateway, configure ...func(*Settings)) *testServer {
	t.Helper()
	return newClockedTestServer(t, gw, time.Now, configure...)
}

func newClockedTestServer(t *testing.T, gw *recordingGateway, now func() time.Time, configure ...func(*Settings)) *testServer {
	t.Helper()
	holder, err := site.NewHolder(site.Sample, nil)
	require.NoError(t, err)
	dict, err := i18n.NewTranslator(entities.LocaleES, nil)
	require.NoError(t, err)
	projects, err := catalog.Load("")
	require.NoError(t, err)

	settings := Settings{
		DefaultLocale: entities.LocaleES,
		PageSize:      2,
		ProjectsPath:  "/proyectos-web/",
		StatusTTL:     application.DefaultStatusTTL,
	}
	for _, fn := range configure {
		fn(&settings)
	}

	store := memory.NewContactStore()
	svc := application.NewContactService(store, gw, nil,
		application.WithStatusTTL(settings.StatusTTL), application.WithClock(now))
	reg := prometheus.NewRegistry()
	statuses := NewStatusStore(now)
	h := NewHandler(holder, dict, svc, application.NewNavigator(projects), statuses, NewMetrics(reg), settings, nil)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return &testServer{
		router:   NewRouter(h, reg, "test", logger),
		statuses: statuses,
		gateway:  gw,
		contacts: store,
	}
}

func (s *testServer) get(t *testing.T, target string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) post(t *testing.T, fields map[string]string, accept string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/contact", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func parse(t *testing.T, rec *httptest.ResponseRecorder) *html.Node {
	t.Helper()
	doc, err := dom.Parse(strings.NewReader(rec.Body.String()))
	require.NoError(t, err)
	return doc
}

func cookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func text(n *html.Node) string {
	if n == nil {
		return ""
	}
	return strings.TrimSpace(dom.TextContent(n))
}

func attr(n *html.Node, key string) string {
	if n == nil {
		return ""
	}
	v, _ := dom.Attr(n, key)
	return v
}

func contactFields() map[string]string {
	return map[string]string{
		"name":    "Ada",
		"email":   "ada@example.com",
		"message": "Hello",
		"_origin": "/index.html",
	}
}

func newID(t *testing.T) uuid.UUID {
	t.Helper()
	id, err := uuid.NewRandom()
	require.NoError(t, err)
	return id
}

func TestIndexShowsFirstPageInSpanish(t *testing.T) {
	s := newTestServer(t, &recordingGateway{})
	rec := s.get(t, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	doc := parse(t, rec)

	cards := dom.QueryAll(doc, ".posts article")
	require.Len(t, cards, 4)
	assert.Equal(t, "display: block", attr(cards[0], "style"))
	assert.Equal(t, "display: block", attr(cards[1], "style"))
	assert.Equal(t, "display: none", attr(cards[2], "style"))
	assert.Equal(t, "display: none", attr(cards[3], "style"))

	assert.Nil(t, dom.Query(doc, ".pagination a.previous"))
	assert.Equal(t, "1", text(dom.Query(doc, ".pagination a.page.active")))
	assert.Len(t, dom.QueryAll(doc, ".pagination a.page"), 2)
	next := dom.Query(doc, ".pagination a.next")
	assert.Equal(t, "Siguiente", text(next))
	assert.Equal(t, "?page=2", attr(next, "href"))

	assert.Equal(t, "Sobre Mí", text(dom.QueryAll(doc, "#nav .links a")[1]))
	assert.Equal(t, "es", cookie(rec, "language").Value)
}

func TestIndexSecondPageInEnglish(t *testing.T) {
	s := newTestServer(t, &recordingGateway{})
	rec := s.get(t, "/index.html?page=2", &http.Cookie{Name: "language", Value: "en"})
	doc := parse(t, rec)

	cards := dom.QueryAll(doc, ".posts article")
	assert.Equal(t, "display: none", attr(cards[0], "style"))
	assert.Equal(t, "display: block", attr(cards[3], "style"))

	assert.Equal(t, "Prev", text(dom.Query(doc, ".pagination a.previous")))
	assert.Equal(t, "2", text(dom.Query(doc, ".pagination a.page.active")))
	assert.Nil(t, dom.Query(doc, ".pagination a.next"))
	assert.Contains(t, rec.Body.String(), "About Me")
}

func TestPageParamOutOfRangeIsClamped(t *testing.T) {
	s := newTestServer(t, &recordingGateway{})
	for target, active := range map[string]string{"/?page=9": "2", "/?page=abc": "1", "/?page=-1": "1"} {
		doc := parse(t, s.get(t, target))
		assert.Equal(t, active, text(dom.Query(doc, ".pagination a.page.active")), target)
	}
}

func TestLanguageToggle(t *testing.T) {
	s := newTestServer(t, &recordingGateway{})

	doc := parse(t, s.get(t, "/"))
	toggle := dom.ByID(doc, "lang-toggle")
	require.NotNil(t, toggle)
	assert.Equal(t, "EN", text(toggle))
	assert.Equal(t, "Switch to English", attr(toggle, "title"))
	assert.Equal(t, "?lang=en", attr(toggle, "href"))
	assert.Len(t, dom.QueryAll(doc, "#nav .icons li"), 2)

	rec := s.get(t, "/?page=2&lang=en")
	assert.Equal(t, "en", cookie(rec, "language").Value)
	doc = parse(t, rec)
	toggle = dom.ByID(doc, "lang-toggle")
	assert.Equal(t, "ES", text(toggle))
	assert.Equal(t, "Cambiar a Español", attr(toggle, "title"))
	assert.Equal(t, "?lang=es&page=2", attr(toggle, "href"))
	assert.Equal(t, "Prev", text(dom.Query(doc, ".pagination a.previous")))
}

func TestUnknownLanguageFallsBackToDefault(t *testing.T) {
	s := newTestServer(t, &recordingGateway{})
	rec := s.get(t, "/", &http.Cookie{Name: "language", Value: "fr"})
	assert.Equal(t, "es", cookie(rec, "language").Value)

	rec = s.get(t, "/?lang=de", &http.Cookie{Name: "language", Value: "en"})
	assert.Equal(t, "en", cookie(rec, "language").Value)
}

func TestAcceptLanguageWithoutCookie(t *testing.T) {
	s := newTestServer(t, &recordingGateway{})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	assert.Equal(t, "en", cookie(rec, "language").Value)
	assert.Contains(t, rec.Body.String(), "About Me")
}

func TestProjectNavigation(t *testing.T) {
	s := newTestServer(t, &recordingGateway{})
	doc := parse(t, s.get(t, "/proyectos-web/facturia2.html"))

	bar := dom.Query(doc, ".pagination")
	require.NotNil(t, bar)
	footer := dom.ByID(doc, "footer")
	next := bar.NextSibling
	for next != nil && next.Type != html.ElementNode {
		next = next.NextSibling
	}
	assert.Same(t, footer, next)

	links := dom.QueryAll(bar, "a.button")
	require.Len(t, links, 2)
	assert.Equal(t, "dashboard-ventas.html", attr(links[0], "href"))
	assert.Equal(t, "nav.prevProject", attr(links[0], "data-i18n"))
	assert.Equal(t, "← Proyecto Anterior", text(links[0]))
	assert.Equal(t, "facturia.html", attr(links[1], "href"))
	assert.Equal(t, "1 / 4", text(dom.Query(bar, "span")))

	doc = parse(t, s.get(t, "/proyectos-web/dashboard-ventas.html?lang=en"))
	links = dom.QueryAll(doc, ".pagination a.button")
	require.Len(t, links, 2)
	assert.Equal(t, "analisis-clientes.html", attr(links[0], "href"))
	assert.Equal(t, "facturia2.html", attr(links[1], "href"))
	assert.Equal(t, "Next Project →", text(links[1]))
	assert.Equal(t, "4 / 4", text(dom.Query(doc, ".pagination span")))
}

func TestContactFormIsRewritten(t *testing.T) {
	s := newTestServer(t, &recordingGateway{})
	doc := parse(t, s.get(t, "/index.html"))

	form := dom.ByID(doc, "contact-form")
	require.NotNil(t, form)
	assert.Equal(t, "/contact", attr(form, "action"))
	assert.Equal(t, "post", attr(form, "method"))
	assert.Equal(t, "multipart/form-data", attr(form, "enctype"))

	var origin, submit *html.Node
	for _, in := range dom.QueryAll(form, "input") {
		switch {
		case attr(in, "name") == "_origin":
			origin = in
		case attr(in, "type") == "submit":
			submit = in
		}
	}
	require.NotNil(t, origin)
	assert.Equal(t, "/index.html", attr(origin, "value"))
	assert.Equal(t, "Enviando...", attr(submit, "data-sending-label"))
	assert.Equal(t, "Enviar Mensaje", attr(submit, "value"))
	assert.Equal(t, "Nombre", attr(dom.ByID(doc, "name"), "placeholder"))
}

func TestContactSuccessRedirectsAndClearsForm(t *testing.T) {
	gw := &recordingGateway{}
	s := newTestServer(t, gw)

	rec := s.post(t, contactFields(), "")
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/index.html#contact-form", rec.Header().Get("Location"))

	require.Equal(t, 1, gw.calls())
	assert.Equal(t, "https://formspree.io/f/your-form-id", gw.destinations[0])
	assert.Equal(t, "Ada", gw.fields[0].Get("name"))
	assert.NotContains(t, gw.fields[0], "_origin")

	status := cookie(rec, "form_status")
	require.NotNil(t, status)
	assert.Equal(t, 5, status.MaxAge)

	doc := parse(t, s.get(t, "/index.html", status))
	node := dom.ByID(doc, "form-status")
	assert.Equal(t, "¡Gracias! Tu mensaje ha sido enviado.", text(node))
	assert.True(t, strings.HasPrefix(attr(node, "style"), "display: block; color: #18bfef;"), attr(node, "style"))
	assert.Equal(t, "", attr(dom.ByID(doc, "name"), "value"))

	recent, err := s.contacts.List(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, entities.ContactDelivered, recent[0].Status)
}

func TestContactFailureKeepsValues(t *testing.T) {
	gw := &recordingGateway{err: domain.ErrRelayRejected}
	s := newTestServer(t, gw)

	rec := s.post(t, contactFields(), "", &http.Cookie{Name: "language", Value: "en"})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, 1, gw.calls())

	doc := parse(t, s.get(t, "/index.html", cookie(rec, "form_status"), &http.Cookie{Name: "language", Value: "en"}))
	node := dom.ByID(doc, "form-status")
	assert.Equal(t, "Oops! There was a problem. Please try again.", text(node))
	assert.True(t, strings.HasPrefix(attr(node, "style"), "display: block; color: #ff6b6b;"), attr(node, "style"))
	assert.Equal(t, "Ada", attr(dom.ByID(doc, "name"), "value"))
	assert.Equal(t, "ada@example.com", attr(dom.ByID(doc, "email"), "value"))
	assert.Equal(t, "Hello", text(dom.ByID(doc, "message")))
}

func TestContactJSON(t *testing.T) {
	gw := &recordingGateway{}
	s := newTestServer(t, gw)

	rec := s.post(t, contactFields(), "application/json")
	require.Equal(t, http.StatusOK, rec.Code)
	var got contactResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.True(t, got.OK)
	assert.Equal(t, "¡Gracias! Tu mensaje ha sido enviado.", got.Message)

	gw.err = domain.ErrRelayRejected
	rec = s.post(t, contactFields(), "application/json", &http.Cookie{Name: "language", Value: "en"})
	require.Equal(t, http.StatusBadGateway, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.False(t, got.OK)
	assert.Equal(t, "Oops! There was a problem. Please try again.", got.Message)
	assert.Equal(t, 2, gw.calls())
}

func TestContactUnknownOriginHasNoDestination(t *testing.T) {
	gw := &recordingGateway{}
	s := newTestServer(t, gw)

	fields := contactFields()
	fields["_origin"] = "https://evil.example/"
	rec := s.post(t, fields, "")
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/#contact-form", rec.Header().Get("Location"))
	assert.Equal(t, 0, gw.calls())
}

func TestContactFormEndpointOverride(t *testing.T) {
	gw := &recordingGateway{}
	s := newTestServer(t, gw, func(st *Settings) { st.FormEndpoint = "https://forms.example/override" })

	fields := contactFields()
	fields["_origin"] = "/about.html"
	s.post(t, fields, "")
	require.Equal(t, 1, gw.calls())
	assert.Equal(t, "https://forms.example/override", gw.destinations[0])
}

func TestUnknownPageIsLocalized404(t *testing.T) {
	s := newTestServer(t, &recordingGateway{})
	rec := s.get(t, "/nope.html", &http.Cookie{Name: "language", Value: "en"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Page not found")

	rec = s.get(t, "/assets/missing.css")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Página no encontrada")
}

func TestStaticHealthAndMetrics(t *testing.T) {
	s := newTestServer(t, &recordingGateway{})

	rec := s.get(t, "/assets/css/custom.css")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), ".pagination")

	rec = s.get(t, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)

	s.get(t, "/")
	rec = s.get(t, "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `portfolio_page_views_total{locale="es"} 1`)
}

func TestStatusStoreExpiresIndependently(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	store := NewStatusStore(func() time.Time { return now })

	first := entities.FormStatus{ID: newID(t), Outcome: entities.OutcomeSent, ExpiresAt: now.Add(5 * time.Second)}
	store.Put(first)
	now = now.Add(3 * time.Second)
	second := entities.FormStatus{ID: newID(t), Outcome: entities.OutcomeFailed, ExpiresAt: now.Add(5 * time.Second)}
	store.Put(second)

	now = now.Add(2 * time.Second)
	_, ok := store.Get(first.ID)
	assert.False(t, ok, "first status expires 5s after its own submission")
	_, ok = store.Get(second.ID)
	assert.True(t, ok, "a later submission keeps its full 5s")

	now = now.Add(3 * time.Second)
	assert.Equal(t, 1, store.Sweep())
	assert.Equal(t, 0, store.Len())
}

func TestStatusSweeperStops(t *testing.T) {
	store := NewStatusStore(nil)
	store.Put(entities.FormStatus{ID: newID(t), ExpiresAt: time.Now().Add(-time.Second)})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- store.RunSweeper(ctx, 10*time.Millisecond, nil) }()

	assert.Eventually(t, func() bool { return store.Len() == 0 }, time.Second, 10*time.Millisecond)
	cancel()
	assert.NoError(t, <-done)
}

func TestMatchAcceptLanguage(t *testing.T) {
	for header, want := range map[string]string{
		"":               "",
		"en-GB":          "en",
		"es-AR,es;q=0.9": "es",
		"fr-FR":          "",
		"de,en;q=0.5":    "en",
	} {
		assert.Equal(t, want, matchAcceptLanguage(header), header)
	}
}

func TestSlowRelayStatusStillShown(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	gw := &recordingGateway{err: domain.ErrRelayRejected, during: func() { clock.Advance(30 * time.Second) }}
	s := newClockedTestServer(t, gw, clock.Now)

	rec := s.post(t, contactFields(), "")
	require.Equal(t, http.StatusSeeOther, rec.Code)

	clock.Advance(time.Second)
	doc := parse(t, s.get(t, "/index.html", cookie(rec, "form_status")))
	node := dom.ByID(doc, "form-status")
	assert.Equal(t, "Oops! Hubo un problema. Por favor intenta de nuevo.", text(node))
	assert.Contains(t, attr(node, "style"), "animation: form-status-hide 0s linear 4.000s forwards")
	assert.Equal(t, "Ada", attr(dom.ByID(doc, "name"), "value"))

	clock.Advance(4 * time.Second)
	doc = parse(t, s.get(t, "/index.html", cookie(rec, "form_status")))
	assert.Equal(t, "", text(dom.ByID(doc, "form-status")))
}

func TestStatusHidesInBrowser(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	s := newClockedTestServer(t, &recordingGateway{}, clock.Now)

	rec := s.post(t, contactFields(), "")
	clock.Advance(1500 * time.Millisecond)
	doc := parse(t, s.get(t, "/index.html", cookie(rec, "form_status")))

	assert.Contains(t, attr(dom.ByID(doc, "form-status"), "style"), "form-status-hide 0s linear 3.500s forwards")
	style := dom.ByID(doc, "form-status-style")
	require.NotNil(t, style)
	assert.True(t, dom.IsElement(style.Parent, "head"))
	assert.Contains(t, dom.TextContent(style), "@keyframes form-status-hide")
}

func TestSubmitShowsSendingLabel(t *testing.T) {
	s := newTestServer(t, &recordingGateway{})
	doc := parse(t, s.get(t, "/index.html"))

	script := dom.ByID(doc, "contact-form-script")
	require.NotNil(t, script)
	assert.True(t, dom.IsElement(script.Parent, "body"))
	assert.Contains(t, dom.TextContent(script), `getAttribute("data-sending-label")`)
	assert.Len(t, dom.QueryAll(doc, "script"), 1)

	assert.Nil(t, dom.ByID(doc, "form-status-style"), "no status, no keyframes")
	assert.Nil(t, dom.ByID(parse(t, s.get(t, "/proyectos-web/facturia.html")), "contact-form-script"))
}
