package engine

import (
	"errors"
	"net/http"

	"mouldsite/framework"

	"github.com/a-h/templ"
)

type Config[C interface{}] struct {
	AppContext C
	Handlers   []framework.RouteHandler[C]

	RenderPage func(r *http.Request, w http.ResponseWriter, component templ.Component) error
	OpenLive   func(w http.ResponseWriter, r *http.Request) framework.LiveStream

	IsPartialRequest func(r *http.Request) bool
	IsLiveRequest    func(r *http.Request) bool

	IsNotFoundError   func(err error) bool
	HandleNotFound    func(w http.ResponseWriter, r *http.Request, notFoundContext framework.NotFoundContext)
	HandleRedirect    func(w http.ResponseWriter, r *http.Request, redirect *framework.RedirectError)
	HandleServerError func(w http.ResponseWriter, err error)
	ReportError       func(err error)
}

type Engine[C interface{}] struct {
	appContext C
	handlers   []framework.RouteHandler[C]

	renderPage func(r *http.Request, w http.ResponseWriter, component templ.Component) error
	openLive   func(w http.ResponseWriter, r *http.Request) framework.LiveStream

	isPartial   func(r *http.Request) bool
	isLive      func(r *http.Request) bool
	isNotFound  func(err error) bool
	notFound    func(w http.ResponseWriter, r *http.Request, notFoundContext framework.NotFoundContext)
	redirect    func(w http.ResponseWriter, r *http.Request, redirect *framework.RedirectError)
	serverError func(w http.ResponseWriter, err error)
	report      func(err error)
}

func New[C interface{}](cfg Config[C]) (*Engine[C], error) {
	if cfg.RenderPage == nil {
		return nil, errors.New("render page callback is required")
	}

	isLive := cfg.IsLiveRequest
	if isLive == nil {
		isLive = func(*http.Request) bool { return false }
	}
	if cfg.OpenLive == nil && cfg.IsLiveRequest != nil {
		return nil, errors.New("open live callback is required when live requests are detected")
	}

	isPartial := cfg.IsPartialRequest
	if isPartial == nil {
		isPartial = func(*http.Request) bool { return false }
	}

	isNotFound := cfg.IsNotFoundError
	if isNotFound == nil {
		isNotFound = func(error) bool { return false }
	}

	notFound := cfg.HandleNotFound
	if notFound == nil {
		notFound = func(w http.ResponseWriter, r *http.Request, _ framework.NotFoundContext) {
			http.NotFound(w, r)
		}
	}

	redirect := cfg.HandleRedirect
	if redirect == nil {
		redirect = func(w http.ResponseWriter, r *http.Request, target *framework.RedirectError) {
			http.Redirect(w, r, target.Location, target.StatusCode())
		}
	}

	serverError := cfg.HandleServerError
	if serverError == nil {
		serverError = func(w http.ResponseWriter, _ error) {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
	}

	report := cfg.ReportError
	if report == nil {
		report = func(error) {}
	}

	return &Engine[C]{
		appContext:  cfg.AppContext,
		handlers:    cfg.Handlers,
		renderPage:  cfg.RenderPage,
		openLive:    cfg.OpenLive,
		isPartial:   isPartial,
		isLive:      isLive,
		isNotFound:  isNotFound,
		notFound:    notFound,
		redirect:    redirect,
		serverError: serverError,
		report:      report,
	}, nil
}

func (engine *Engine[C]) ServeRoute(w http.ResponseWriter, r *http.Request) bool {
	for _, handler := range engine.handlers {
		if handler.TryServeLive(engine, w, r) {
			return true
		}
	}

	for _, handler := range engine.handlers {
		if handler.TryServePage(engine, w, r) {
			return true
		}
	}

	return false
}

func (engine *Engine[C]) AppContext() C {
	return engine.appContext
}

func (engine *Engine[C]) IsPartialRequest(r *http.Request) bool {
	return engine.isPartial(r)
}

func (engine *Engine[C]) IsLiveRequest(r *http.Request) bool {
	return engine.isLive(r)
}

func (engine *Engine[C]) RenderPage(
	r *http.Request,
	w http.ResponseWriter,
	component templ.Component,
) error {
	return engine.renderPage(r, w, component)
}

func (engine *Engine[C]) OpenLive(w http.ResponseWriter, r *http.Request) framework.LiveStream {
	return engine.openLive(w, r)
}

func (engine *Engine[C]) IsNotFound(err error) bool {
	return engine.isNotFound(err)
}

func (engine *Engine[C]) RespondNotFound(
	w http.ResponseWriter,
	r *http.Request,
	notFoundContext framework.NotFoundContext,
) {
	engine.notFound(w, r, notFoundContext)
}

func (engine *Engine[C]) RespondRedirect(
	w http.ResponseWriter,
	r *http.Request,
	redirect *framework.RedirectError,
) {
	engine.redirect(w, r, redirect)
}

func (engine *Engine[C]) RespondServerError(w http.ResponseWriter, err error) {
	engine.serverError(w, err)
}

func (engine *Engine[C]) ReportError(err error) {
	engine.report(err)
}
