package httpserver

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"mouldsite/framework"
	"mouldsite/framework/engine"

	"github.com/a-h/templ"
	"github.com/starfederation/datastar-go/datastar"
)

const defaultCacheControlPolicy = "public, max-age=3600, s-maxage=3600"
const defaultHealthPath = "/healthz"
const defaultHealthBody = "ok"
const defaultStaticPrefix = "/static/"

// LiveRequestHeader is sent by the datastar client on every fetch it makes.
const LiveRequestHeader = "Datastar-Request"

type StaticMount struct {
	URLPrefix string
	Dir       string
}

// Mount serves a handler beside the page routes, e.g. "/api/" or "/metrics".
// Patterns follow http.ServeMux rules.
type Mount struct {
	Pattern string
	Handler http.Handler
}

type CachePolicies struct {
	HTML     string
	Partial  string
	Static   string
	Health   string
	Redirect string
	Error    string
}

func DefaultCachePolicies() CachePolicies {
	return CachePolicies{
		HTML:     defaultCacheControlPolicy,
		Partial:  defaultCacheControlPolicy,
		Static:   defaultCacheControlPolicy,
		Health:   "no-store",
		Redirect: "no-store",
		Error:    "no-store",
	}
}

type Config[C interface{}] struct {
	AppContext C
	Handlers   []framework.RouteHandler[C]

	Static StaticMount
	Mounts []Mount

	// Middleware wraps the whole handler, outermost first.
	Middleware []func(http.Handler) http.Handler

	CachePolicies CachePolicies

	IsNotFoundError func(err error) bool
	NotFoundPage    func(notFoundContext framework.NotFoundContext) templ.Component
	LogServerError  func(err error)

	HealthPath string
	HealthBody string
}

type server[C interface{}] struct {
	cachePolicies CachePolicies
	notFoundPage  func(notFoundContext framework.NotFoundContext) templ.Component
	logServerErr  func(err error)
	healthPath    string
	healthBody    string

	routeEngine *engine.Engine[C]
}

func New[C interface{}](cfg Config[C]) (http.Handler, error) {
	cachePolicies := withDefaultPolicies(cfg.CachePolicies)
	healthPath := normalizeHealthPath(cfg.HealthPath)
	healthBody := strings.TrimSpace(cfg.HealthBody)
	if healthBody == "" {
		healthBody = defaultHealthBody
	}

	srv := &server[C]{
		cachePolicies: cachePolicies,
		notFoundPage:  cfg.NotFoundPage,
		logServerErr:  cfg.LogServerError,
		healthPath:    healthPath,
		healthBody:    healthBody,
	}

	routeEngine, err := engine.New(engine.Config[C]{
		AppContext:        cfg.AppContext,
		Handlers:          cfg.Handlers,
		RenderPage:        srv.renderPage,
		OpenLive:          srv.openLive,
		IsPartialRequest:  IsLiveRequest,
		IsLiveRequest:     IsLiveRequest,
		IsNotFoundError:   cfg.IsNotFoundError,
		HandleNotFound:    srv.handleNotFound,
		HandleRedirect:    srv.handleRedirect,
		HandleServerError: srv.handleServerError,
		ReportError:       srv.logError,
	})
	if err != nil {
		return nil, fmt.Errorf("create route engine: %w", err)
	}
	srv.routeEngine = routeEngine

	mux := http.NewServeMux()
	if strings.TrimSpace(cfg.Static.Dir) != "" {
		prefix := normalizeStaticPrefix(cfg.Static.URLPrefix)
		fs := http.FileServer(http.Dir(cfg.Static.Dir))
		mux.Handle(prefix, withCachePolicy(cachePolicies.Static, http.StripPrefix(prefix, fs)))
	}
	for _, mount := range cfg.Mounts {
		if strings.TrimSpace(mount.Pattern) == "" || mount.Handler == nil {
			return nil, fmt.Errorf("invalid mount %q", mount.Pattern)
		}
		mux.Handle(mount.Pattern, mount.Handler)
	}

	mux.HandleFunc("/", srv.handleRoute)

	var handler http.Handler = mux
	for idx := len(cfg.Middleware) - 1; idx >= 0; idx-- {
		handler = cfg.Middleware[idx](handler)
	}
	return handler, nil
}

// IsLiveRequest reports whether r was issued by the datastar client.
func IsLiveRequest(r *http.Request) bool {
	return r != nil && strings.EqualFold(strings.TrimSpace(r.Header.Get(LiveRequestHeader)), "true")
}

func (s *server[C]) handleRoute(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == s.healthPath {
		s.handleHealth(w)
		return
	}

	w.Header().Add("Vary", LiveRequestHeader)
	if s.routeEngine.ServeRoute(w, r) {
		return
	}

	s.handleNotFound(w, r, framework.NotFoundContext{
		RequestPath: r.URL.Path,
		Source:      framework.NotFoundSourceUnmatchedRoute,
	})
}

func (s *server[C]) renderPage(r *http.Request, w http.ResponseWriter, component templ.Component) error {
	policy := s.cachePolicies.HTML
	if IsLiveRequest(r) {
		policy = s.cachePolicies.Partial
	}
	return s.renderPageWithStatus(r, w, component, 0, policy)
}

func (s *server[C]) renderPageWithStatus(
	r *http.Request,
	w http.ResponseWriter,
	component templ.Component,
	statusCode int,
	cachePolicy string,
) error {
	setCachePolicy(w, cachePolicy)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if statusCode > 0 {
		w.WriteHeader(statusCode)
	}
	return component.Render(r.Context(), w)
}

type liveStream struct {
	sse *datastar.ServerSentEventGenerator
}

// openLive starts the event stream. datastar sets its own no-cache headers.
func (s *server[C]) openLive(w http.ResponseWriter, r *http.Request) framework.LiveStream {
	return &liveStream{sse: datastar.NewSSE(w, r)}
}

func (l *liveStream) PatchElements(selectorID string, component templ.Component) error {
	return l.sse.PatchElementTempl(component, datastar.WithSelectorID(selectorID))
}

func (l *liveStream) ReplaceLocation(url string) error {
	target, err := json.Marshal(url)
	if err != nil {
		return fmt.Errorf("encode location %q: %w", url, err)
	}
	return l.sse.ExecuteScript("window.location.replace(" + string(target) + ")")
}

func (s *server[C]) handleNotFound(
	w http.ResponseWriter,
	r *http.Request,
	notFoundContext framework.NotFoundContext,
) {
	if s.notFoundPage == nil {
		setCachePolicy(w, s.cachePolicies.Error)
		http.NotFound(w, r)
		return
	}

	component := s.notFoundPage(notFoundContext)
	if component == nil {
		setCachePolicy(w, s.cachePolicies.Error)
		http.NotFound(w, r)
		return
	}
	if err := s.renderPageWithStatus(r, w, component, http.StatusNotFound, s.cachePolicies.Error); err != nil {
		s.handleServerError(w, fmt.Errorf("render not found page: %w", err))
	}
}

func (s *server[C]) handleRedirect(
	w http.ResponseWriter,
	r *http.Request,
	redirect *framework.RedirectError,
) {
	setCachePolicy(w, s.cachePolicies.Redirect)
	http.Redirect(w, r, redirect.Location, redirect.StatusCode())
}

func (s *server[C]) handleServerError(w http.ResponseWriter, err error) {
	setCachePolicy(w, s.cachePolicies.Error)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	s.logError(err)
}

func (s *server[C]) logError(err error) {
	if s.logServerErr != nil {
		s.logServerErr(err)
		return
	}

	log.Printf("framework server error: %v", err)
}

func (s *server[C]) handleHealth(w http.ResponseWriter) {
	setCachePolicy(w, s.cachePolicies.Health)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(s.healthBody))
}

func normalizeStaticPrefix(prefix string) string {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return defaultStaticPrefix
	}
	if !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return prefix
}

func normalizeHealthPath(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return defaultHealthPath
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return path
}

func withDefaultPolicies(policies CachePolicies) CachePolicies {
	defaults := DefaultCachePolicies()
	if strings.TrimSpace(policies.HTML) == "" {
		policies.HTML = defaults.HTML
	}
	if strings.TrimSpace(policies.Partial) == "" {
		policies.Partial = defaults.Partial
	}
	if strings.TrimSpace(policies.Static) == "" {
		policies.Static = defaults.Static
	}
	if strings.TrimSpace(policies.Health) == "" {
		policies.Health = defaults.Health
	}
	if strings.TrimSpace(policies.Redirect) == "" {
		policies.Redirect = defaults.Redirect
	}
	if strings.TrimSpace(policies.Error) == "" {
		policies.Error = defaults.Error
	}
	return policies
}

func setCachePolicy(w http.ResponseWriter, policy string) {
	policy = strings.TrimSpace(policy)
	if policy == "" {
		return
	}
	w.Header().Set("Cache-Control", policy)
}

func withCachePolicy(policy string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		setCachePolicy(w, policy)
		next.ServeHTTP(w, r)
	})
}
