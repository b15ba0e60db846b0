package web

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"mouldsite/framework"
	"mouldsite/framework/router"
	"mouldsite/internal/resolver"
	"mouldsite/internal/web/appcore"
	"mouldsite/internal/web/components"

	"github.com/a-h/templ"
)

const (
	homeRoute     = "/"
	areasRoute    = "/areas"
	locationRoute = "/locations/[suburb]"
)

var (
	homePattern     = router.MustParse(homeRoute)
	areasPattern    = router.MustParse(areasRoute)
	locationPattern = router.MustParse(locationRoute)
)

// RouteTable lists every page route; NewHandler refuses to start when two
// of them collide.
func RouteTable() (*router.Table, error) {
	return router.NewTable(homeRoute, areasRoute, locationRoute)
}

func Handlers() []framework.RouteHandler[*appcore.Context] {
	return []framework.RouteHandler[*appcore.Context]{
		framework.PageOnlyRouteHandler[*appcore.Context, framework.EmptyParams, appcore.HomePageView]{
			Page: framework.PageModule[*appcore.Context, framework.EmptyParams, appcore.HomePageView]{
				Pattern:     homeRoute,
				ParseParams: emptyParams(homePattern),
				Load:        appcore.LoadHomePage,
				Render:      components.HomePage,
				Layouts:     []framework.LayoutRenderer[appcore.HomePageView]{rootLayout[appcore.HomePageView]},
			},
		},
		framework.PageWithLiveRouteHandler[*appcore.Context, framework.EmptyParams, appcore.AreasPageView]{
			Page: framework.PageModule[*appcore.Context, framework.EmptyParams, appcore.AreasPageView]{
				Pattern:     areasRoute,
				ParseParams: emptyParams(areasPattern),
				Load:        appcore.LoadAreasPage,
				Render:      components.AreasPage,
				Layouts:     []framework.LayoutRenderer[appcore.AreasPageView]{rootLayout[appcore.AreasPageView]},
			},
			Live: serveAreasLive,
		},
		framework.PageWithLiveRouteHandler[*appcore.Context, framework.SlugParams, appcore.LocationPageView]{
			Page: framework.PageModule[*appcore.Context, framework.SlugParams, appcore.LocationPageView]{
				Pattern:     locationRoute,
				ParseParams: parseLocationParams,
				Load:        appcore.LoadLocationPage,
				Render:      components.LocationPage,
				Layouts:     []framework.LayoutRenderer[appcore.LocationPageView]{rootLayout[appcore.LocationPageView]},
			},
			Live: serveLocationLive,
		},
	}
}

func rootLayout[VM appcore.RootLayoutView](view VM, child templ.Component) templ.Component {
	return components.Layout(view, child)
}

func emptyParams(pattern router.Pattern) framework.ParamsParser[framework.EmptyParams] {
	return func(path string) (framework.EmptyParams, bool) {
		_, ok := pattern.Match(path)
		return framework.EmptyParams{}, ok
	}
}

// parseLocationParams also accepts the bare "/locations" path with an empty
// slug so the resolver can report the missing parameter.
func parseLocationParams(path string) (framework.SlugParams, bool) {
	if params, ok := locationPattern.Match(path); ok {
		slug, _ := params.Get("suburb")
		return framework.SlugParams{Slug: slug}, true
	}
	if strings.TrimRight(path, "/") == "/locations" {
		return framework.SlugParams{}, true
	}
	return framework.SlugParams{}, false
}

func serveAreasLive(
	ctx context.Context,
	appCtx *appcore.Context,
	stream framework.LiveStream,
	r *http.Request,
	params framework.EmptyParams,
) error {
	state, err := appcore.ParseAreasState(r)
	if err != nil {
		return fmt.Errorf("read areas signals: %w", err)
	}

	view, err := appcore.LoadAreasLivePage(ctx, appCtx, r, params, state)
	if err != nil {
		return err
	}
	return stream.PatchElements(components.AreasResultsID, components.AreasResults(view))
}

// serveLocationLive shows the loading indicator, then either the page or a
// history-replacing redirect to the areas listing. A navigation superseded
// by a newer one from the same viewer writes nothing further.
func serveLocationLive(
	ctx context.Context,
	appCtx *appcore.Context,
	stream framework.LiveStream,
	r *http.Request,
	params framework.SlugParams,
) error {
	viewerID := appcore.ParseNavigatorID(r)
	if err := stream.PatchElements(components.ShellID, components.Shell(components.LocationLoading(params.Slug))); err != nil {
		return fmt.Errorf("patch loading indicator: %w", err)
	}

	result, applied, err := appcore.AwaitLocation(ctx, appCtx, viewerID, params.Slug)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return err
	}
	if !applied {
		return nil
	}

	if result.State != resolver.StateResolved {
		return stream.ReplaceLocation(appcore.AreasPath)
	}
	view := appcore.NewLocationPageView(appCtx, result)
	return stream.PatchElements(components.ShellID, components.Shell(components.LocationPage(view)))
}

func NotFoundPage(appCtx *appcore.Context) func(framework.NotFoundContext) templ.Component {
	return func(notFoundContext framework.NotFoundContext) templ.Component {
		path := strings.TrimSpace(notFoundContext.RequestPath)
		if path == "" {
			path = "/"
		}
		return components.Layout(appcore.NewNotFoundLayoutView(appCtx.Phone), components.NotFound(path))
	}
}
