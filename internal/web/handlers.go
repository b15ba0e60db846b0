package web

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"mouldsite/framework/httpserver"
	"mouldsite/internal/config"
	"mouldsite/internal/logger"
	"mouldsite/internal/metrics"
	"mouldsite/internal/web/appcore"
)

type Deps struct {
	Config  config.Config
	App     *appcore.Context
	API     http.Handler
	Metrics *metrics.Metrics
	Logger  *slog.Logger
}

// NewHandler assembles the public site: page routes, live navigation, the
// JSON API, metrics, sitemap and static assets.
func NewHandler(deps Deps) (http.Handler, error) {
	if deps.App == nil || deps.App.Registry == nil || deps.App.Resolver == nil {
		return nil, errors.New("web: app context with registry and resolver is required")
	}
	if _, err := RouteTable(); err != nil {
		return nil, fmt.Errorf("web: %w", err)
	}

	log := deps.Logger
	if log == nil {
		log = slog.Default()
	}
	logServerError := func(err error) {
		log.Error("server error", "error", err)
	}

	mounts := []httpserver.Mount{
		{Pattern: "/sitemap.xml", Handler: sitemapHandler(deps.Config.RootURL, deps.App.Registry, logServerError)},
	}
	if deps.API != nil {
		mounts = append(mounts, httpserver.Mount{Pattern: "/api/", Handler: deps.API})
	}
	if deps.Metrics != nil {
		mounts = append(mounts, httpserver.Mount{Pattern: "/metrics", Handler: deps.Metrics.Handler()})
	}

	handler, err := httpserver.New(httpserver.Config[*appcore.Context]{
		AppContext:      deps.App,
		Handlers:        Handlers(),
		IsNotFoundError: appcore.IsNotFoundError,
		NotFoundPage:    NotFoundPage(deps.App),
		Static: httpserver.StaticMount{
			URLPrefix: "/static/",
			Dir:       deps.Config.StaticDir,
		},
		Mounts:         mounts,
		Middleware:     []func(http.Handler) http.Handler{logger.AccessMiddleware(log), withLocationCache},
		CachePolicies:  cachePolicies(deps.Config),
		LogServerError: logServerError,
	})
	if err != nil {
		return nil, fmt.Errorf("web: %w", err)
	}
	return handler, nil
}
