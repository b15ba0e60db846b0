package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"mouldsite/internal/api"
	"mouldsite/internal/config"
	"mouldsite/internal/locations"
	"mouldsite/internal/metrics"
	"mouldsite/internal/resolver"
	"mouldsite/internal/suburbs"
	"mouldsite/internal/web"
	"mouldsite/internal/web/appcore"
)

// app holds the wired dependencies shared by the commands.
type app struct {
	cfg      config.Config
	log      *slog.Logger
	registry *suburbs.Registry
	catalog  *locations.Catalog
	metrics  *metrics.Metrics
	resolver *resolver.Resolver
}

func newApp(cfg config.Config, log *slog.Logger) (*app, error) {
	registry := suburbs.Default()

	catalog, err := locations.NewCatalog(locations.CatalogConfig{
		Registry: registry,
		Phone:    cfg.Phone,
		RootURL:  cfg.RootURL,
	}, locations.Factories())
	if err != nil {
		return nil, fmt.Errorf("build location catalog: %w", err)
	}

	m := metrics.New()
	res, err := resolver.New(resolver.Config{
		Registry:    registry,
		Loader:      catalog,
		LoadTimeout: cfg.LoadTimeout,
		Logger:      log,
		OnResult: func(result resolver.Result, elapsed time.Duration) {
			m.ObserveResolution(result.Outcome(), elapsed)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("build resolver: %w", err)
	}

	return &app{
		cfg:      cfg,
		log:      log,
		registry: registry,
		catalog:  catalog,
		metrics:  m,
		resolver: res,
	}, nil
}

func (a *app) handler() (http.Handler, error) {
	apiHandler, err := api.New(api.Config{
		Environment: a.cfg.Environment,
		SigningKey:  a.cfg.DemoSigningKey,
		Logger:      a.log,
		Metrics:     a.metrics,
	})
	if err != nil {
		return nil, err
	}

	return web.NewHandler(web.Deps{
		Config: a.cfg,
		App: appcore.NewContext(appcore.ContextConfig{
			Registry: a.registry,
			Resolver: a.resolver,
			Metrics:  a.metrics,
			Logger:   a.log,
			Phone:    a.cfg.Phone,
			RootURL:  a.cfg.RootURL,
		}),
		API:     apiHandler.Router(),
		Metrics: a.metrics,
		Logger:  a.log,
	})
}

// logDrift warns about suburbs without a page and pages without a suburb.
func (a *app) logDrift() locations.Drift {
	drift := a.catalog.Audit()
	if !drift.Empty() {
		a.log.Warn("location registry and page table disagree",
			"missing_pages", drift.MissingPages,
			"orphan_pages", drift.OrphanPages,
		)
	}
	return drift
}
