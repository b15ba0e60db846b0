package framework

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/a-h/templ"
)

type EmptyParams struct{}

type SlugParams struct {
	Slug string
}

type ParamsParser[P interface{}] func(path string) (P, bool)

type PageLoader[C interface{}, P interface{}, VM interface{}] func(
	ctx context.Context,
	appCtx C,
	r *http.Request,
	params P,
) (VM, error)

type PageRenderer[VM interface{}] func(view VM) templ.Component

type LayoutRenderer[VM interface{}] func(view VM, child templ.Component) templ.Component

type PageModule[C interface{}, P interface{}, VM interface{}] struct {
	Pattern     string
	ParseParams ParamsParser[P]
	Load        PageLoader[C, P, VM]
	Render      PageRenderer[VM]
	Layouts     []LayoutRenderer[VM]
}

// LiveStream is an open server-sent event response.
type LiveStream interface {
	PatchElements(selectorID string, component templ.Component) error
	// ReplaceLocation navigates the browser without adding a history entry.
	ReplaceLocation(url string) error
}

type LiveServer[C interface{}, P interface{}] func(
	ctx context.Context,
	appCtx C,
	stream LiveStream,
	r *http.Request,
	params P,
) error

type RuntimeContext[C interface{}] interface {
	AppContext() C
	IsPartialRequest(r *http.Request) bool
	IsLiveRequest(r *http.Request) bool
	RenderPage(r *http.Request, w http.ResponseWriter, component templ.Component) error
	OpenLive(w http.ResponseWriter, r *http.Request) LiveStream
	IsNotFound(err error) bool
	RespondNotFound(w http.ResponseWriter, r *http.Request, notFoundContext NotFoundContext)
	RespondRedirect(w http.ResponseWriter, r *http.Request, redirect *RedirectError)
	RespondServerError(w http.ResponseWriter, err error)
	ReportError(err error)
}

type NotFoundSource string

const (
	NotFoundSourcePageLoad       NotFoundSource = "page_load"
	NotFoundSourceUnmatchedRoute NotFoundSource = "unmatched_route"
)

type NotFoundContext struct {
	RequestPath         string
	MatchedRoutePattern string
	Source              NotFoundSource
}

// RedirectError is returned by a page loader to send the visitor elsewhere
// instead of rendering. Status defaults to 302 Found, which keeps the
// original URL out of the browser history.
type RedirectError struct {
	Location string
	Status   int
	Cause    error
}

func Redirect(location string, cause error) *RedirectError {
	return &RedirectError{Location: location, Status: http.StatusFound, Cause: cause}
}

func (e *RedirectError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("redirect to %s", e.Location)
	}
	return fmt.Sprintf("redirect to %s: %v", e.Location, e.Cause)
}

func (e *RedirectError) Unwrap() error {
	return e.Cause
}

func (e *RedirectError) StatusCode() int {
	if e.Status < 300 || e.Status > 399 {
		return http.StatusFound
	}
	return e.Status
}

type RouteHandler[C interface{}] interface {
	TryServeLive(runtime RuntimeContext[C], w http.ResponseWriter, r *http.Request) bool
	TryServePage(runtime RuntimeContext[C], w http.ResponseWriter, r *http.Request) bool
}

type PageOnlyRouteHandler[C interface{}, P interface{}, VM interface{}] struct {
	Page PageModule[C, P, VM]
}

func (h PageOnlyRouteHandler[C, P, VM]) TryServeLive(
	RuntimeContext[C],
	http.ResponseWriter,
	*http.Request,
) bool {
	return false
}

func (h PageOnlyRouteHandler[C, P, VM]) TryServePage(
	runtime RuntimeContext[C],
	w http.ResponseWriter,
	r *http.Request,
) bool {
	return servePageModule(runtime, w, r, h.Page)
}

// PageWithLiveRouteHandler serves the page normally and hands live
// (server-sent event) requests for the same path to Live.
type PageWithLiveRouteHandler[C interface{}, P interface{}, VM interface{}] struct {
	Page PageModule[C, P, VM]
	Live LiveServer[C, P]
}

func (h PageWithLiveRouteHandler[C, P, VM]) TryServeLive(
	runtime RuntimeContext[C],
	w http.ResponseWriter,
	r *http.Request,
) bool {
	if h.Live == nil || !runtime.IsLiveRequest(r) {
		return false
	}

	params, ok := h.Page.ParseParams(r.URL.Path)
	if !ok {
		return false
	}

	stream := runtime.OpenLive(w, r)
	if err := h.Live(r.Context(), runtime.AppContext(), stream, r, params); err != nil {
		runtime.ReportError(fmt.Errorf("live route %q: %w", h.Page.Pattern, err))
	}
	return true
}

func (h PageWithLiveRouteHandler[C, P, VM]) TryServePage(
	runtime RuntimeContext[C],
	w http.ResponseWriter,
	r *http.Request,
) bool {
	return servePageModule(runtime, w, r, h.Page)
}

func applyLayouts[VM interface{}](
	layouts []LayoutRenderer[VM],
	view VM,
	child templ.Component,
) templ.Component {
	wrapped := child
	for idx := len(layouts) - 1; idx >= 0; idx-- {
		wrapped = layouts[idx](view, wrapped)
	}
	return wrapped
}

func servePageModule[C interface{}, P interface{}, VM interface{}](
	runtime RuntimeContext[C],
	w http.ResponseWriter,
	r *http.Request,
	module PageModule[C, P, VM],
) bool {
	params, ok := module.ParseParams(r.URL.Path)
	if !ok {
		return false
	}

	view, err := module.Load(r.Context(), runtime.AppContext(), r, params)
	if err != nil {
		handleLoadError(runtime, w, r, err, module.Pattern, NotFoundSourcePageLoad)
		return true
	}

	component := module.Render(view)
	if !runtime.IsPartialRequest(r) {
		component = applyLayouts(module.Layouts, view, component)
	}
	if err := runtime.RenderPage(r, w, component); err != nil {
		runtime.RespondServerError(w, fmt.Errorf("render route %q: %w", module.Pattern, err))
	}
	return true
}

func handleLoadError[C interface{}](
	runtime RuntimeContext[C],
	w http.ResponseWriter,
	r *http.Request,
	err error,
	routePattern string,
	source NotFoundSource,
) {
	var redirect *RedirectError
	if errors.As(err, &redirect) {
		runtime.RespondRedirect(w, r, redirect)
		return
	}

	if runtime.IsNotFound(err) {
		runtime.RespondNotFound(w, r, NotFoundContext{
			RequestPath:         r.URL.Path,
			MatchedRoutePattern: routePattern,
			Source:              source,
		})
		return
	}

	runtime.RespondServerError(w, fmt.Errorf("load route %q: %w", routePattern, err))
}
