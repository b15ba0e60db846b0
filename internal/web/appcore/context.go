package appcore

import (
	"errors"
	"log/slog"

	"mouldsite/internal/locations"
	"mouldsite/internal/metrics"
	"mouldsite/internal/resolver"
	"mouldsite/internal/suburbs"
)

var errResolverUnavailable = errors.New("location resolver unavailable")

// Context is shared by every route loader.
type Context struct {
	Registry *suburbs.Registry
	Resolver *resolver.Resolver
	Sessions *resolver.Sessions
	Metrics  *metrics.Metrics
	Logger   *slog.Logger

	Phone   string
	RootURL string
}

type ContextConfig struct {
	Registry *suburbs.Registry
	Resolver *resolver.Resolver
	Metrics  *metrics.Metrics
	Logger   *slog.Logger
	Phone    string
	RootURL  string
}

func NewContext(cfg ContextConfig) *Context {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var sessions *resolver.Sessions
	if cfg.Resolver != nil {
		sessions = resolver.NewSessions(cfg.Resolver)
	}

	return &Context{
		Registry: cfg.Registry,
		Resolver: cfg.Resolver,
		Sessions: sessions,
		Metrics:  cfg.Metrics,
		Logger:   logger,
		Phone:    cfg.Phone,
		RootURL:  cfg.RootURL,
	}
}

func IsNotFoundError(err error) bool {
	return errors.Is(err, suburbs.ErrUnknownSlug) || errors.Is(err, locations.ErrPageNotRegistered)
}
