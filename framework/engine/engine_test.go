package engine

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"mouldsite/framework"

	"github.com/a-h/templ"
)

type testAppContext struct{}

type componentFunc func(ctx context.Context, w io.Writer) error

func (f componentFunc) Render(ctx context.Context, w io.Writer) error {
	return f(ctx, w)
}

func textComponent(value string) templ.Component {
	return componentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, value)
		return err
	})
}

func wrapComponent(tag string, child templ.Component) templ.Component {
	return componentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, "["+tag+"]"); err != nil {
			return err
		}
		if err := child.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, "[/"+tag+"]")
		return err
	})
}

func TestServeRoutePageOnly(t *testing.T) {
	var rendered string

	routeEngine, err := New(Config[*testAppContext]{
		AppContext: &testAppContext{},
		Handlers: []framework.RouteHandler[*testAppContext]{
			framework.PageOnlyRouteHandler[*testAppContext, framework.EmptyParams, string]{
				Page: framework.PageModule[*testAppContext, framework.EmptyParams, string]{
					Pattern: "/areas",
					ParseParams: func(path string) (framework.EmptyParams, bool) {
						return framework.EmptyParams{}, path == "/areas"
					},
					Load: func(context.Context, *testAppContext, *http.Request, framework.EmptyParams) (string, error) {
						return "page", nil
					},
					Render: func(view string) templ.Component { return textComponent(view) },
				},
			},
		},
		RenderPage: func(_ *http.Request, _ http.ResponseWriter, component templ.Component) error {
			var b bytes.Buffer
			if err := component.Render(context.Background(), &b); err != nil {
				return err
			}
			rendered = b.String()
			return nil
		},
	})
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	if !routeEngine.ServeRoute(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/areas", nil)) {
		t.Fatal("expected route to match")
	}
	if rendered != "page" {
		t.Fatalf("expected page content, got %q", rendered)
	}

	if routeEngine.ServeRoute(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil)) {
		t.Fatal("did not expect missing route to match")
	}
}

func TestServeRouteSkipsLayoutsForPartialRequests(t *testing.T) {
	var rendered string

	routeEngine, err := New(Config[*testAppContext]{
		AppContext: &testAppContext{},
		Handlers: []framework.RouteHandler[*testAppContext]{
			framework.PageOnlyRouteHandler[*testAppContext, framework.EmptyParams, string]{
				Page: framework.PageModule[*testAppContext, framework.EmptyParams, string]{
					Pattern: "/areas",
					ParseParams: func(path string) (framework.EmptyParams, bool) {
						return framework.EmptyParams{}, path == "/areas"
					},
					Load: func(context.Context, *testAppContext, *http.Request, framework.EmptyParams) (string, error) {
						return "body", nil
					},
					Render: func(view string) templ.Component { return textComponent(view) },
					Layouts: []framework.LayoutRenderer[string]{
						func(_ string, child templ.Component) templ.Component {
							return wrapComponent("layout", child)
						},
					},
				},
			},
		},
		IsPartialRequest: func(_ *http.Request) bool { return true },
		RenderPage: func(_ *http.Request, _ http.ResponseWriter, component templ.Component) error {
			var b bytes.Buffer
			if err := component.Render(context.Background(), &b); err != nil {
				return err
			}
			rendered = b.String()
			return nil
		},
	})
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	if !routeEngine.ServeRoute(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/areas", nil)) {
		t.Fatal("expected route to match")
	}
	if rendered != "body" {
		t.Fatalf("expected partial body without layout, got %q", rendered)
	}
}

func TestNotFoundAndServerErrorClassification(t *testing.T) {
	errNotFound := errors.New("not found")
	errBoom := errors.New("boom")

	t.Run("not found", func(t *testing.T) {
		notFoundCalled := false
		serverErrorCalled := false
		var notFoundContext framework.NotFoundContext

		routeEngine, err := New(Config[*testAppContext]{
			AppContext: &testAppContext{},
			Handlers: []framework.RouteHandler[*testAppContext]{
				framework.PageOnlyRouteHandler[*testAppContext, framework.EmptyParams, string]{
					Page: framework.PageModule[*testAppContext, framework.EmptyParams, string]{
						Pattern: "/areas",
						ParseParams: func(path string) (framework.EmptyParams, bool) {
							return framework.EmptyParams{}, path == "/areas"
						},
						Load: func(context.Context, *testAppContext, *http.Request, framework.EmptyParams) (string, error) {
							return "", errNotFound
						},
						Render: func(view string) templ.Component { return textComponent(view) },
					},
				},
			},
			RenderPage:      func(*http.Request, http.ResponseWriter, templ.Component) error { return nil },
			IsNotFoundError: func(err error) bool { return errors.Is(err, errNotFound) },
			HandleNotFound: func(_ http.ResponseWriter, _ *http.Request, ctx framework.NotFoundContext) {
				notFoundCalled = true
				notFoundContext = ctx
			},
			HandleServerError: func(http.ResponseWriter, error) {
				serverErrorCalled = true
			},
		})
		if err != nil {
			t.Fatalf("new engine: %v", err)
		}

		if !routeEngine.ServeRoute(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/areas", nil)) {
			t.Fatal("expected route to match")
		}
		if !notFoundCalled {
			t.Fatal("expected not found callback")
		}
		if notFoundContext.Source != framework.NotFoundSourcePageLoad {
			t.Fatalf("expected not-found source %q, got %q", framework.NotFoundSourcePageLoad, notFoundContext.Source)
		}
		if notFoundContext.MatchedRoutePattern != "/areas" {
			t.Fatalf("expected matched route pattern /areas, got %q", notFoundContext.MatchedRoutePattern)
		}
		if notFoundContext.RequestPath != "/areas" {
			t.Fatalf("expected request path /areas, got %q", notFoundContext.RequestPath)
		}
		if serverErrorCalled {
			t.Fatal("did not expect server error callback")
		}
	})

	t.Run("server error", func(t *testing.T) {
		notFoundCalled := false
		serverErrorCalled := false

		routeEngine, err := New(Config[*testAppContext]{
			AppContext: &testAppContext{},
			Handlers: []framework.RouteHandler[*testAppContext]{
				framework.PageOnlyRouteHandler[*testAppContext, framework.EmptyParams, string]{
					Page: framework.PageModule[*testAppContext, framework.EmptyParams, string]{
						Pattern: "/areas",
						ParseParams: func(path string) (framework.EmptyParams, bool) {
							return framework.EmptyParams{}, path == "/areas"
						},
						Load: func(context.Context, *testAppContext, *http.Request, framework.EmptyParams) (string, error) {
							return "", errBoom
						},
						Render: func(view string) templ.Component { return textComponent(view) },
					},
				},
			},
			RenderPage:      func(*http.Request, http.ResponseWriter, templ.Component) error { return nil },
			IsNotFoundError: func(error) bool { return false },
			HandleNotFound: func(http.ResponseWriter, *http.Request, framework.NotFoundContext) {
				notFoundCalled = true
			},
			HandleServerError: func(http.ResponseWriter, error) {
				serverErrorCalled = true
			},
		})
		if err != nil {
			t.Fatalf("new engine: %v", err)
		}

		if !routeEngine.ServeRoute(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/areas", nil)) {
			t.Fatal("expected route to match")
		}
		if notFoundCalled {
			t.Fatal("did not expect not found callback")
		}
		if !serverErrorCalled {
			t.Fatal("expected server error callback")
		}
	})
}

func TestLayoutOrder(t *testing.T) {
	var rendered string

	routeEngine, err := New(Config[*testAppContext]{
		AppContext: &testAppContext{},
		Handlers: []framework.RouteHandler[*testAppContext]{
			framework.PageOnlyRouteHandler[*testAppContext, framework.EmptyParams, string]{
				Page: framework.PageModule[*testAppContext, framework.EmptyParams, string]{
					Pattern: "/areas",
					ParseParams: func(path string) (framework.EmptyParams, bool) {
						return framework.EmptyParams{}, path == "/areas"
					},
					Load: func(context.Context, *testAppContext, *http.Request, framework.EmptyParams) (string, error) {
						return "body", nil
					},
					Render: func(view string) templ.Component { return textComponent(view) },
					Layouts: []framework.LayoutRenderer[string]{
						func(_ string, child templ.Component) templ.Component {
							return wrapComponent("outer", child)
						},
						func(_ string, child templ.Component) templ.Component {
							return wrapComponent("inner", child)
						},
					},
				},
			},
		},
		RenderPage: func(_ *http.Request, _ http.ResponseWriter, component templ.Component) error {
			var b bytes.Buffer
			if err := component.Render(context.Background(), &b); err != nil {
				return err
			}
			rendered = b.String()
			return nil
		},
	})
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	if !routeEngine.ServeRoute(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/areas", nil)) {
		t.Fatal("expected route to match")
	}
	if rendered != "[outer][inner]body[/inner][/outer]" {
		t.Fatalf("unexpected render output: %q", rendered)
	}
}

func slugModule(load framework.PageLoader[*testAppContext, framework.SlugParams, string]) framework.PageModule[*testAppContext, framework.SlugParams, string] {
	return framework.PageModule[*testAppContext, framework.SlugParams, string]{
		Pattern: "/locations/[suburb]",
		ParseParams: func(path string) (framework.SlugParams, bool) {
			const prefix = "/locations/"
			if !strings.HasPrefix(path, prefix) {
				return framework.SlugParams{}, false
			}
			return framework.SlugParams{Slug: strings.TrimPrefix(path, prefix)}, true
		},
		Load:   load,
		Render: func(view string) templ.Component { return textComponent(view) },
	}
}

func TestRedirectErrorTakesPrecedenceOverNotFound(t *testing.T) {
	errNotFound := errors.New("not found")
	notFoundCalled := false

	routeEngine, err := New(Config[*testAppContext]{
		AppContext: &testAppContext{},
		Handlers: []framework.RouteHandler[*testAppContext]{
			framework.PageOnlyRouteHandler[*testAppContext, framework.SlugParams, string]{
				Page: slugModule(func(context.Context, *testAppContext, *http.Request, framework.SlugParams) (string, error) {
					return "", framework.Redirect("/areas", errNotFound)
				}),
			},
		},
		RenderPage:      func(*http.Request, http.ResponseWriter, templ.Component) error { return nil },
		IsNotFoundError: func(err error) bool { return errors.Is(err, errNotFound) },
		HandleNotFound: func(http.ResponseWriter, *http.Request, framework.NotFoundContext) {
			notFoundCalled = true
		},
	})
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	rec := httptest.NewRecorder()
	if !routeEngine.ServeRoute(rec, httptest.NewRequest(http.MethodGet, "/locations/nowhere", nil)) {
		t.Fatal("expected route to match")
	}
	if notFoundCalled {
		t.Fatal("did not expect not found callback")
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if got := rec.Header().Get("Location"); got != "/areas" {
		t.Fatalf("expected redirect to /areas, got %q", got)
	}
}

type recordingStream struct {
	patches  []string
	replaced string
}

func (s *recordingStream) PatchElements(selectorID string, component templ.Component) error {
	var b bytes.Buffer
	if err := component.Render(context.Background(), &b); err != nil {
		return err
	}
	s.patches = append(s.patches, selectorID+"="+b.String())
	return nil
}

func (s *recordingStream) ReplaceLocation(url string) error {
	s.replaced = url
	return nil
}

func TestServeRouteLivePrecedesPage(t *testing.T) {
	stream := &recordingStream{}
	pageLoads := 0
	var reported error

	handler := framework.PageWithLiveRouteHandler[*testAppContext, framework.SlugParams, string]{
		Page: slugModule(func(context.Context, *testAppContext, *http.Request, framework.SlugParams) (string, error) {
			pageLoads++
			return "page", nil
		}),
		Live: func(_ context.Context, _ *testAppContext, live framework.LiveStream, _ *http.Request, params framework.SlugParams) error {
			if err := live.PatchElements("shell", textComponent("loading")); err != nil {
				return err
			}
			if params.Slug == "nowhere" {
				return live.ReplaceLocation("/areas")
			}
			if err := live.PatchElements("shell", textComponent(params.Slug)); err != nil {
				return err
			}
			return errors.New("stream closed")
		},
	}

	routeEngine, err := New(Config[*testAppContext]{
		AppContext:    &testAppContext{},
		Handlers:      []framework.RouteHandler[*testAppContext]{handler},
		RenderPage:    func(*http.Request, http.ResponseWriter, templ.Component) error { return nil },
		IsLiveRequest: func(r *http.Request) bool { return r.Header.Get("Datastar-Request") == "true" },
		OpenLive: func(http.ResponseWriter, *http.Request) framework.LiveStream {
			return stream
		},
		ReportError: func(err error) { reported = err },
	})
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/locations/carlton", nil)
	req.Header.Set("Datastar-Request", "true")
	if !routeEngine.ServeRoute(httptest.NewRecorder(), req) {
		t.Fatal("expected live route to match")
	}
	if pageLoads != 0 {
		t.Fatalf("expected live request to skip page load, got %d loads", pageLoads)
	}
	if len(stream.patches) != 2 || stream.patches[0] != "shell=loading" || stream.patches[1] != "shell=carlton" {
		t.Fatalf("unexpected patches: %v", stream.patches)
	}
	if reported == nil || !strings.Contains(reported.Error(), "/locations/[suburb]") {
		t.Fatalf("expected live error to be reported with route pattern, got %v", reported)
	}

	req = httptest.NewRequest(http.MethodGet, "/locations/nowhere", nil)
	req.Header.Set("Datastar-Request", "true")
	routeEngine.ServeRoute(httptest.NewRecorder(), req)
	if stream.replaced != "/areas" {
		t.Fatalf("expected location replace to /areas, got %q", stream.replaced)
	}

	if !routeEngine.ServeRoute(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/locations/carlton", nil)) {
		t.Fatal("expected page route to match")
	}
	if pageLoads != 1 {
		t.Fatalf("expected plain request to load page once, got %d", pageLoads)
	}
}

func TestNewRequiresOpenLiveWhenLiveDetected(t *testing.T) {
	_, err := New(Config[*testAppContext]{
		RenderPage:    func(*http.Request, http.ResponseWriter, templ.Component) error { return nil },
		IsLiveRequest: func(*http.Request) bool { return true },
	})
	if err == nil {
		t.Fatal("expected error without open live callback")
	}
}
