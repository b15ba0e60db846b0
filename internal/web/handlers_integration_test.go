package web

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"mouldsite/internal/api"
	"mouldsite/internal/config"
	"mouldsite/internal/locations"
	"mouldsite/internal/metrics"
	"mouldsite/internal/resolver"
	"mouldsite/internal/suburbs"
	"mouldsite/internal/web/appcore"

	"github.com/google/uuid"
)

const testRootURL = "https://example.test"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestCatalog(t *testing.T) *locations.Catalog {
	t.Helper()

	catalog, err := locations.NewCatalog(locations.CatalogConfig{
		Registry: suburbs.Default(),
		Phone:    "1800 954 117",
		RootURL:  testRootURL,
	}, locations.Factories())
	if err != nil {
		t.Fatalf("new catalog: %v", err)
	}
	return catalog
}

func newTestHandler(t *testing.T, loader resolver.Loader) (http.Handler, *metrics.Metrics) {
	t.Helper()

	m := metrics.New()
	if loader == nil {
		loader = newTestCatalog(t)
	}
	res, err := resolver.New(resolver.Config{
		Registry:    suburbs.Default(),
		Loader:      loader,
		LoadTimeout: time.Second,
		Logger:      discardLogger(),
		OnResult: func(result resolver.Result, elapsed time.Duration) {
			m.ObserveResolution(result.Outcome(), elapsed)
		},
	})
	if err != nil {
		t.Fatalf("new resolver: %v", err)
	}

	apiHandler, err := api.New(api.Config{SigningKey: "test", Environment: "test", Metrics: m})
	if err != nil {
		t.Fatalf("new api: %v", err)
	}

	cfg := config.Config{RootURL: testRootURL, StaticDir: "static", Phone: "1800 954 117"}
	handler, err := NewHandler(Deps{
		Config: cfg,
		App: appcore.NewContext(appcore.ContextConfig{
			Registry: suburbs.Default(),
			Resolver: res,
			Metrics:  m,
			Logger:   discardLogger(),
			Phone:    cfg.Phone,
			RootURL:  cfg.RootURL,
		}),
		API:     apiHandler.Router(),
		Metrics: m,
		Logger:  discardLogger(),
	})
	if err != nil {
		t.Fatalf("new handler: %v", err)
	}
	return handler, m
}

func requireBody(t *testing.T, body io.Reader) string {
	t.Helper()

	content, err := io.ReadAll(body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(content)
}

func performRequest(handler http.Handler, method string, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func performLiveRequest(handler http.Handler, path string, signals string) *httptest.ResponseRecorder {
	if signals != "" {
		path += "?datastar=" + url.QueryEscape(signals)
	}
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Datastar-Request", "true")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHandlerPageRoutesRenderHTML(t *testing.T) {
	t.Parallel()
	handler, _ := newTestHandler(t, nil)

	cases := []struct {
		path        string
		mustContain string
	}{
		{path: "/", mustContain: "Restoring Your Spaces,"},
		{path: "/", mustContain: `<section id="faq"`},
		{path: "/", mustContain: `href="tel:1800954117"`},
		{path: "/areas", mustContain: "<h2>Inner Melbourne</h2>"},
		{path: "/areas", mustContain: `href="/locations/st-kilda"`},
		{path: "/areas?q=carlton", mustContain: `href="/locations/carlton"`},
		{path: "/areas?region=Coastal+Areas", mustContain: "<h2>Coastal Areas</h2>"},
		{path: "/locations/carlton", mustContain: "<title>Mould Removal Carlton Melbourne | Mould &amp; Restoration Co.</title>"},
		{path: "/locations/carlton", mustContain: `<link rel="canonical" href="https://example.test/locations/carlton">`},
		{path: "/locations/port-melbourne", mustContain: `data-location="port-melbourne"`},
		{path: "/locations/carlton/", mustContain: `data-location="carlton"`},
	}

	for _, tc := range cases {
		rec := performRequest(handler, http.MethodGet, tc.path)

		if rec.Code != http.StatusOK {
			t.Fatalf("%s status: expected %d, got %d", tc.path, http.StatusOK, rec.Code)
		}
		if contentType := rec.Header().Get("Content-Type"); !strings.Contains(contentType, "text/html") {
			t.Fatalf("%s content-type: expected html, got %q", tc.path, contentType)
		}
		if body := requireBody(t, rec.Body); !strings.Contains(body, tc.mustContain) {
			t.Fatalf("%s body missing %q", tc.path, tc.mustContain)
		}
	}
}

func TestAreasFilterNarrowsListing(t *testing.T) {
	t.Parallel()
	handler, _ := newTestHandler(t, nil)

	body := requireBody(t, performRequest(handler, http.MethodGet, "/areas?q=carlton").Body)
	if strings.Contains(body, `href="/locations/st-kilda"`) {
		t.Fatal("search for carlton should not list st-kilda")
	}

	body = requireBody(t, performRequest(handler, http.MethodGet, "/areas?region=Coastal+Areas").Body)
	if strings.Contains(body, "<h2>Inner Melbourne</h2>") {
		t.Fatal("coastal filter should hide inner melbourne group")
	}
	if strings.Contains(body, "<h2>Outer Suburbs</h2>") {
		t.Fatal("regions without suburbs should never be listed")
	}

	body = requireBody(t, performRequest(handler, http.MethodGet, "/areas?q=zzzz").Body)
	if !strings.Contains(body, "No suburbs match") {
		t.Fatal("expected empty state for a query with no matches")
	}
}

func TestUnresolvableLocationsRedirectToAreas(t *testing.T) {
	t.Parallel()
	handler, _ := newTestHandler(t, nil)

	for _, path := range []string{"/locations/atlantis", "/locations/", "/locations", "/locations/Carlton", "/locations/carlton%20", "/locations/%20carlton"} {
		rec := performRequest(handler, http.MethodGet, path)
		if rec.Code != http.StatusFound {
			t.Fatalf("%s status: expected %d, got %d", path, http.StatusFound, rec.Code)
		}
		if got := rec.Header().Get("Location"); got != "/areas" {
			t.Fatalf("%s location: expected /areas, got %q", path, got)
		}
	}

	metricsBody := requireBody(t, performRequest(handler, http.MethodGet, "/metrics").Body)
	if !strings.Contains(metricsBody, `mouldsite_location_resolutions_total{outcome="unknown_slug"} 4`) {
		t.Fatalf("expected unknown_slug outcomes in metrics, got:\n%s", metricsBody)
	}
	if !strings.Contains(metricsBody, `mouldsite_location_resolutions_total{outcome="missing_parameter"} 2`) {
		t.Fatalf("expected missing_parameter outcomes in metrics")
	}
}

func TestBrokenLocationPageRedirectsLikeUnknownSlug(t *testing.T) {
	t.Parallel()
	handler, _ := newTestHandler(t, resolver.LoaderFunc(func(context.Context, string, suburbs.Suburb) (locations.Page, error) {
		return locations.Page{}, locations.ErrPageNotRegistered
	}))

	rec := performRequest(handler, http.MethodGet, "/locations/carlton")
	if rec.Code != http.StatusFound {
		t.Fatalf("status: expected %d, got %d", http.StatusFound, rec.Code)
	}
	if got := rec.Header().Get("Location"); got != "/areas" {
		t.Fatalf("location: expected /areas, got %q", got)
	}
}

func TestHandlerLiveLocationNavigation(t *testing.T) {
	t.Parallel()
	handler, _ := newTestHandler(t, nil)

	rec := performLiveRequest(handler, "/locations/carlton", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("live status: expected %d, got %d", http.StatusOK, rec.Code)
	}
	body := requireBody(t, rec.Body)
	if !strings.Contains(body, "event: datastar-patch-elements") {
		t.Fatal("live location missing datastar patch event")
	}
	if !strings.Contains(body, "data: selector #location-shell") {
		t.Fatal("live location missing shell selector")
	}
	loading := strings.Index(body, "Loading location")
	page := strings.Index(body, `data-location="carlton"`)
	if loading < 0 || page < 0 || loading > page {
		t.Fatalf("expected loading indicator before the page, got:\n%s", body)
	}

	for _, path := range []string{"/locations/atlantis", "/locations/carlton%20"} {
		rec = performLiveRequest(handler, path, "")
		body = requireBody(t, rec.Body)
		if !strings.Contains(body, "window.location.replace") || !strings.Contains(body, "/areas") {
			t.Fatalf("%s: live unknown slug should replace location with /areas, got:\n%s", path, body)
		}
		if strings.Contains(body, "data-location=") {
			t.Fatalf("%s: live unknown slug must not render a location page", path)
		}
	}
}

func TestHandlerLiveAreasFilter(t *testing.T) {
	t.Parallel()
	handler, _ := newTestHandler(t, nil)

	rec := performLiveRequest(handler, "/areas", `{"q":"kilda","region":""}`)
	body := requireBody(t, rec.Body)
	if !strings.Contains(body, "data: selector #areas-results") {
		t.Fatalf("live areas missing results selector, got:\n%s", body)
	}
	if !strings.Contains(body, "/locations/st-kilda") {
		t.Fatal("live areas should list st-kilda")
	}
	if strings.Contains(body, "/locations/carlton") {
		t.Fatal("live areas should not list carlton for query kilda")
	}
}

func TestStaleLiveNavigationIsDiscarded(t *testing.T) {
	t.Parallel()

	catalog := newTestCatalog(t)
	entered := make(chan struct{})
	var once sync.Once
	handler, _ := newTestHandler(t, resolver.LoaderFunc(func(ctx context.Context, identifier string, suburb suburbs.Suburb) (locations.Page, error) {
		if suburb.Slug == "carlton" {
			once.Do(func() { close(entered) })
			<-ctx.Done()
			return locations.Page{}, ctx.Err()
		}
		return catalog.Load(ctx, identifier, suburb)
	}))

	signals := `{"navId":"` + uuid.NewString() + `"}`

	slowDone := make(chan *httptest.ResponseRecorder, 1)
	go func() {
		slowDone <- performLiveRequest(handler, "/locations/carlton", signals)
	}()
	<-entered

	fast := performLiveRequest(handler, "/locations/st-kilda", signals)
	fastBody := requireBody(t, fast.Body)
	if !strings.Contains(fastBody, `data-location="st-kilda"`) {
		t.Fatalf("latest navigation should render st-kilda, got:\n%s", fastBody)
	}

	slow := <-slowDone
	slowBody := requireBody(t, slow.Body)
	if strings.Contains(slowBody, "data-location=") {
		t.Fatalf("superseded navigation must not patch a page, got:\n%s", slowBody)
	}
	if strings.Contains(slowBody, "window.location.replace") {
		t.Fatal("superseded navigation must not redirect")
	}

	metricsBody := requireBody(t, performRequest(handler, http.MethodGet, "/metrics").Body)
	if !strings.Contains(metricsBody, `mouldsite_live_navigations_total{result="superseded"} 1`) {
		t.Fatalf("expected one superseded navigation in metrics")
	}
}

func TestHandlerNotFoundHealthAndMounts(t *testing.T) {
	t.Parallel()
	handler, _ := newTestHandler(t, nil)

	recHealth := performRequest(handler, http.MethodGet, "/healthz")
	if recHealth.Code != http.StatusOK {
		t.Fatalf("healthz status: expected %d, got %d", http.StatusOK, recHealth.Code)
	}
	if body := strings.TrimSpace(requireBody(t, recHealth.Body)); body != "ok" {
		t.Fatalf("healthz body: expected %q, got %q", "ok", body)
	}

	recMissing := performRequest(handler, http.MethodGet, "/nowhere")
	if recMissing.Code != http.StatusNotFound {
		t.Fatalf("unmatched status: expected %d, got %d", http.StatusNotFound, recMissing.Code)
	}
	if body := requireBody(t, recMissing.Body); !strings.Contains(body, "Nothing lives at <code>/nowhere</code>") {
		t.Fatalf("unmatched body missing not-found copy")
	}

	recAPI := performRequest(handler, http.MethodGet, "/api/health")
	if recAPI.Code != http.StatusOK {
		t.Fatalf("api health status: expected %d, got %d", http.StatusOK, recAPI.Code)
	}
	if body := requireBody(t, recAPI.Body); !strings.Contains(body, `"status":"healthy"`) {
		t.Fatalf("api health body unexpected: %s", body)
	}

	recSitemap := performRequest(handler, http.MethodGet, "/sitemap.xml")
	if recSitemap.Code != http.StatusOK {
		t.Fatalf("sitemap status: expected %d, got %d", http.StatusOK, recSitemap.Code)
	}
	sitemap := requireBody(t, recSitemap.Body)
	if got, want := strings.Count(sitemap, "<url>"), suburbs.Default().Len()+2; got != want {
		t.Fatalf("sitemap entries: expected %d, got %d", want, got)
	}

	if id := recHealth.Header().Get("X-Request-ID"); id == "" {
		t.Fatal("expected access middleware to set a request id")
	}
}
