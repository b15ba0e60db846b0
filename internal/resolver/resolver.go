// Package resolver turns a location route parameter into a loaded page or a
// not-found outcome.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"mouldsite/internal/locations"
	"mouldsite/internal/suburbs"
)

const DefaultLoadTimeout = 5 * time.Second

var ErrLoaderPanic = errors.New("location page loader panicked")

type Registry interface {
	Lookup(slug string) (suburbs.Suburb, bool)
}

type Loader interface {
	Load(ctx context.Context, identifier string, suburb suburbs.Suburb) (locations.Page, error)
}

type LoaderFunc func(ctx context.Context, identifier string, suburb suburbs.Suburb) (locations.Page, error)

func (f LoaderFunc) Load(ctx context.Context, identifier string, suburb suburbs.Suburb) (locations.Page, error) {
	return f(ctx, identifier, suburb)
}

type Config struct {
	Registry    Registry
	Loader      Loader
	LoadTimeout time.Duration
	Logger      *slog.Logger
	// OnResult sees every terminal result with the time taken to reach it.
	OnResult func(result Result, elapsed time.Duration)
}

type Resolver struct {
	registry    Registry
	loader      Loader
	loadTimeout time.Duration
	logger      *slog.Logger
	onResult    func(result Result, elapsed time.Duration)
}

func New(cfg Config) (*Resolver, error) {
	if cfg.Registry == nil {
		return nil, errors.New("resolver registry is required")
	}
	if cfg.Loader == nil {
		return nil, errors.New("resolver loader is required")
	}

	timeout := cfg.LoadTimeout
	if timeout <= 0 {
		timeout = DefaultLoadTimeout
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Resolver{
		registry:    cfg.Registry,
		loader:      cfg.Loader,
		loadTimeout: timeout,
		logger:      logger,
		onResult:    cfg.OnResult,
	}, nil
}

// Resolve validates slug against the registry and loads its page. An empty
// slug means the route parameter was absent. The returned result is always
// terminal; loader errors, panics and timeouts become StateNotFound.
func (r *Resolver) Resolve(ctx context.Context, slug string) Result {
	start := time.Now()
	result := r.resolve(ctx, slug)
	if r.onResult != nil {
		r.onResult(result, time.Since(start))
	}
	return result
}

func (r *Resolver) resolve(ctx context.Context, slug string) Result {
	if slug == "" {
		return NotFound("", ReasonMissingParameter, nil)
	}

	suburb, ok := r.registry.Lookup(slug)
	if !ok {
		r.logger.DebugContext(ctx, "unknown location slug", "slug", slug)
		return NotFound(slug, ReasonUnknownSlug, fmt.Errorf("%w: %q", suburbs.ErrUnknownSlug, slug))
	}

	identifier := suburbs.Identifier(slug)
	page, err := r.load(ctx, identifier, suburb)
	if err == nil {
		return Resolved(slug, identifier, page)
	}

	reason := ReasonLoadFailure
	switch {
	case ctx.Err() != nil:
		reason = ReasonCanceled
	case errors.Is(err, context.DeadlineExceeded):
		reason = ReasonLoadTimeout
	}

	result := NotFound(slug, reason, err)
	result.Identifier = identifier
	if reason == ReasonCanceled {
		r.logger.DebugContext(ctx, "location page load canceled",
			"slug", slug,
			"identifier", identifier,
		)
		return result
	}

	r.logger.ErrorContext(ctx, "location page load failed",
		"slug", slug,
		"identifier", identifier,
		"reason", string(reason),
		"error", err,
	)
	return result
}

type loadOutcome struct {
	page locations.Page
	err  error
}

func (r *Resolver) load(ctx context.Context, identifier string, suburb suburbs.Suburb) (locations.Page, error) {
	loadCtx, cancel := context.WithTimeout(ctx, r.loadTimeout)
	defer cancel()

	done := make(chan loadOutcome, 1)
	go func() {
		defer func() {
			if recovered := recover(); recovered != nil {
				done <- loadOutcome{err: fmt.Errorf("%w: %v", ErrLoaderPanic, recovered)}
			}
		}()

		page, err := r.loader.Load(loadCtx, identifier, suburb)
		done <- loadOutcome{page: page, err: err}
	}()

	select {
	case outcome := <-done:
		return outcome.page, outcome.err
	case <-loadCtx.Done():
		return locations.Page{}, fmt.Errorf("load %q: %w", identifier, loadCtx.Err())
	}
}
