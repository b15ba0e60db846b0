package appcore

import (
	"context"
	"fmt"
	"net/http"

	"mouldsite/framework"
	"mouldsite/internal/resolver"
	"mouldsite/internal/suburbs"
)

const AreasPath = "/areas"

const siteName = "Mould & Restoration Co."

func LoadHomePage(
	_ context.Context,
	appCtx *Context,
	_ *http.Request,
	_ framework.EmptyParams,
) (HomePageView, error) {
	return newHomePageView(appCtx)
}

func LoadAreasPage(
	ctx context.Context,
	appCtx *Context,
	r *http.Request,
	params framework.EmptyParams,
) (AreasPageView, error) {
	state, err := ParseAreasState(r)
	if err != nil {
		return AreasPageView{}, fmt.Errorf("read areas signals: %w", err)
	}
	return LoadAreasLivePage(ctx, appCtx, r, params, state)
}

func LoadAreasLivePage(
	_ context.Context,
	appCtx *Context,
	_ *http.Request,
	_ framework.EmptyParams,
	state AreasSignalState,
) (AreasPageView, error) {
	registry := appCtx.Registry
	state = sanitizeAreasState(state)
	if _, ok := registry.Region(state.Region); !ok {
		state.Region = ""
	}

	matches := registry.Search(state.Query)
	groups := make([]RegionGroup, 0, len(registry.Regions()))
	regions := make([]suburbs.Region, 0, len(registry.Regions()))
	for _, region := range registry.Regions() {
		if len(registry.ByRegion(region.Name)) == 0 {
			continue
		}
		regions = append(regions, region)
		if state.Region != "" && state.Region != region.Name {
			continue
		}

		group := RegionGroup{Region: region}
		for _, suburb := range matches {
			if suburb.Region == region.Name {
				group.Suburbs = append(group.Suburbs, suburb)
			}
		}
		if len(group.Suburbs) > 0 {
			groups = append(groups, group)
		}
	}

	matched := 0
	for _, group := range groups {
		matched += len(group.Suburbs)
	}

	return AreasPageView{
		SiteView: SiteView{
			PageTitle:       "Service Areas | Mould Removal Across Melbourne | " + siteName,
			MetaDescription: "Find professional mould removal and restoration in your Melbourne suburb. We service the CBD, inner, eastern, northern, western, southern and bayside suburbs.",
			CanonicalURL:    appCtx.RootURL + AreasPath,
			Section:         NavSectionAreas,
			Phone:           appCtx.Phone,
		},
		Filter:  state,
		Regions: regions,
		Groups:  groups,
		Total:   registry.Len(),
		Matched: matched,
	}, nil
}

// LoadLocationPage resolves the suburb and sends the visitor to the areas
// listing, replacing the history entry, when it cannot be shown.
func LoadLocationPage(
	ctx context.Context,
	appCtx *Context,
	_ *http.Request,
	params framework.SlugParams,
) (LocationPageView, error) {
	if appCtx.Resolver == nil {
		return LocationPageView{}, errResolverUnavailable
	}

	result := appCtx.Resolver.Resolve(ctx, params.Slug)
	if result.State != resolver.StateResolved {
		return LocationPageView{}, framework.Redirect(AreasPath, result.Err)
	}
	return NewLocationPageView(appCtx, result), nil
}

func NewLocationPageView(appCtx *Context, result resolver.Result) LocationPageView {
	page := result.Page
	return LocationPageView{
		SiteView: SiteView{
			PageTitle:       page.Title,
			MetaDescription: page.MetaDescription,
			CanonicalURL:    page.CanonicalURL,
			Section:         NavSectionAreas,
			Phone:           appCtx.Phone,
		},
		Page: page,
	}
}

// AwaitLocation runs a live navigation for viewerID. applied is false when
// a newer navigation from the same viewer superseded this one.
func AwaitLocation(
	ctx context.Context,
	appCtx *Context,
	viewerID string,
	slug string,
) (result resolver.Result, applied bool, err error) {
	if appCtx.Sessions == nil {
		return resolver.Result{}, false, errResolverUnavailable
	}

	navigator, ticket := appCtx.Sessions.Navigate(ctx, viewerID, slug)
	defer appCtx.Sessions.Release(viewerID, navigator, ticket)

	result, applied, err = navigator.Await(ctx, ticket)
	if err != nil {
		return resolver.Result{}, false, fmt.Errorf("await location %q: %w", slug, err)
	}

	if appCtx.Metrics != nil {
		if applied {
			appCtx.Metrics.IncLiveNavigation("applied")
		} else {
			appCtx.Metrics.IncLiveNavigation("superseded")
		}
	}
	return result, applied, nil
}
