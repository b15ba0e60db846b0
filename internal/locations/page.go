// Package locations builds the per-suburb landing pages.
//
// Pages are produced by factories registered in a compile-time table keyed
// by the suburb's normalised identifier (see suburbs.Identifier). The
// registry and this table are kept in step by TestEveryRegistrySuburbHasPage
// and reported at startup by Audit.
package locations

import (
	"context"
	"html/template"

	"mouldsite/internal/suburbs"
)

type Breadcrumb struct {
	Label   string
	Href    string
	Current bool
}

type Page struct {
	Identifier      string
	Suburb          suburbs.Suburb
	Region          suburbs.Region
	Title           string
	MetaDescription string
	Headline        string
	Intro           template.HTML
	Highlights      []string
	PropertyTypes   []string
	Body            template.HTML
	AreasServed     []string
	Nearby          []suburbs.Suburb
	Breadcrumbs     []Breadcrumb
	CanonicalURL    string
	Phone           string
}

// Env is what a factory gets to build one page.
type Env struct {
	Identifier string
	Suburb     suburbs.Suburb
	Registry   *suburbs.Registry
	Phone      string
	RootURL    string
}

type Factory func(ctx context.Context, env Env) (Page, error)
