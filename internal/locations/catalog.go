package locations

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"mouldsite/internal/suburbs"

	"golang.org/x/sync/singleflight"
)

var (
	ErrPageNotRegistered = errors.New("location page not registered")
	ErrFactoryPanic      = errors.New("location page factory panicked")
)

type CatalogConfig struct {
	Registry *suburbs.Registry
	Phone    string
	RootURL  string
}

// Catalog loads location pages from a fixed factory table. Concurrent loads
// of the same identifier share one factory call.
type Catalog struct {
	registry  *suburbs.Registry
	phone     string
	rootURL   string
	factories map[string]Factory
	group     singleflight.Group
}

func NewCatalog(cfg CatalogConfig, factories map[string]Factory) (*Catalog, error) {
	if cfg.Registry == nil {
		return nil, errors.New("catalog registry is required")
	}

	table := make(map[string]Factory, len(factories))
	for identifier, factory := range factories {
		if strings.TrimSpace(identifier) == "" {
			return nil, errors.New("catalog identifier cannot be empty")
		}
		if factory == nil {
			return nil, fmt.Errorf("catalog factory for %q is nil", identifier)
		}
		table[identifier] = factory
	}

	return &Catalog{
		registry:  cfg.Registry,
		phone:     strings.TrimSpace(cfg.Phone),
		rootURL:   strings.TrimSpace(cfg.RootURL),
		factories: table,
	}, nil
}

func (c *Catalog) Has(identifier string) bool {
	_, ok := c.factories[identifier]
	return ok
}

// Load builds the page registered under identifier. The shared factory call
// runs detached from any single caller's cancellation; each caller still
// stops waiting when its own ctx is done.
func (c *Catalog) Load(ctx context.Context, identifier string, suburb suburbs.Suburb) (Page, error) {
	factory, ok := c.factories[identifier]
	if !ok {
		return Page{}, fmt.Errorf("%w: %q", ErrPageNotRegistered, identifier)
	}

	env := Env{
		Identifier: identifier,
		Suburb:     suburb,
		Registry:   c.registry,
		Phone:      c.phone,
		RootURL:    c.rootURL,
	}

	shared := context.WithoutCancel(ctx)
	ch := c.group.DoChan(identifier+"\x00"+suburb.Slug, func() (val interface{}, err error) {
		// DoChan re-panics on a fresh goroutine, beyond any caller's recover.
		defer func() {
			if recovered := recover(); recovered != nil {
				err = fmt.Errorf("%w: %v", ErrFactoryPanic, recovered)
			}
		}()
		return factory(shared, env)
	})

	select {
	case <-ctx.Done():
		return Page{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return Page{}, fmt.Errorf("load page %q: %w", identifier, res.Err)
		}
		return res.Val.(Page), nil
	}
}

// Drift lists registry suburbs without a page and pages without a suburb.
type Drift struct {
	MissingPages []string
	OrphanPages  []string
}

func (d Drift) Empty() bool {
	return len(d.MissingPages) == 0 && len(d.OrphanPages) == 0
}

func (c *Catalog) Audit() Drift {
	drift := Drift{}
	known := make(map[string]struct{}, c.registry.Len())

	for _, suburb := range c.registry.All() {
		identifier := suburbs.Identifier(suburb.Slug)
		known[identifier] = struct{}{}
		if !c.Has(identifier) {
			drift.MissingPages = append(drift.MissingPages, suburb.Slug)
		}
	}

	for identifier := range c.factories {
		if _, ok := known[identifier]; !ok {
			drift.OrphanPages = append(drift.OrphanPages, identifier)
		}
	}
	sort.Strings(drift.OrphanPages)

	return drift
}
