package app_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JaimeStill/lang-portal/pkg/client"
	"github.com/JaimeStill/lang-portal/web/app"
)

type recordingObserver struct {
	calls []string
}

func (o *recordingObserver) ObserveNavigation(view string, matched bool) {
	if !matched {
		view = "<none>"
	}
	o.calls = append(o.calls, view)
}

func newApp(t *testing.T, observer app.NavigationObserver) *app.App {
	t.Helper()

	cfg := &client.Config{}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}
	api, err := client.New(cfg)
	if err != nil {
		t.Fatalf("client.New() error = %v", err)
	}

	a, err := app.New(slog.New(slog.DiscardHandler), api, observer)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return a
}

func serve(a *app.App, method, path string, partial bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if partial {
		req.Header.Set(app.NavigationHeader, "navigation")
	}
	w := httptest.NewRecorder()
	a.Handler().ServeHTTP(w, req)
	return w
}

func TestRoutes_Declared(t *testing.T) {
	want := map[string]string{
		"/":                   "Home",
		"/dashboard":          "Dashboard",
		"/study-activities":   "StudyActivities",
		"/malay-chatbox":      "MalayChatbox",
		"/practice-jawi":      "PracticeJawi",
		"/listening-speaking": "ListeningSpeaking",
		"/picture-game":       "PictureGame",
	}

	routes := app.Routes()
	if len(routes) != len(want) {
		t.Fatalf("len(Routes()) = %d, want %d", len(routes), len(want))
	}
	for _, r := range routes {
		if want[r.Path] != r.View {
			t.Errorf("route %q view = %q, want %q", r.Path, r.View, want[r.Path])
		}
	}
}

func TestApp_FullPageForEveryRoute(t *testing.T) {
	a := newApp(t, nil)

	for _, route := range app.Routes() {
		t.Run(route.Path, func(t *testing.T) {
			w := serve(a, http.MethodGet, route.Path, false)

			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
			}
			if got := w.Header().Get(app.ViewHeader); got != route.View {
				t.Errorf("%s = %q, want %q", app.ViewHeader, got, route.View)
			}

			body := w.Body.String()
			if !strings.Contains(body, `data-view="`+route.View+`"`) {
				t.Errorf("body does not render view %s", route.View)
			}
			if strings.Count(body, "data-view=") != 1 {
				t.Error("body should render exactly one view")
			}
			if !strings.Contains(body, `<main id="outlet">`) {
				t.Error("body missing layout outlet")
			}
		})
	}
}

func TestApp_ResolvesLocationIgnoringQuery(t *testing.T) {
	a := newApp(t, nil)

	tests := []struct {
		url  string
		view string
	}{
		{"/dashboard?tab=words", "Dashboard"},
		{"/?lang=ms", "Home"},
		{"/missing?x=1", ""},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			w := serve(a, http.MethodGet, tt.url, false)
			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
			}
			if got := w.Header().Get(app.ViewHeader); got != tt.view {
				t.Errorf("%s = %q, want %q", app.ViewHeader, got, tt.view)
			}
		})
	}
}

func TestApp_PartialRendersFragmentOnly(t *testing.T) {
	a := newApp(t, nil)

	w := serve(a, http.MethodGet, "/practice-jawi", true)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	body := w.Body.String()
	if strings.Contains(body, "<html") {
		t.Error("fragment response contains layout")
	}
	if !strings.Contains(body, `data-view="PracticeJawi"`) {
		t.Errorf("fragment missing view: %s", body)
	}
	if got := w.Header().Get(app.TitleHeader); got != "Practice Jawi" {
		t.Errorf("%s = %q, want %q", app.TitleHeader, got, "Practice Jawi")
	}
}

func TestApp_UnmatchedRendersBlankOutlet(t *testing.T) {
	a := newApp(t, nil)

	w := serve(a, http.MethodGet, "/vocabulary", false)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if got := w.Header().Get(app.ViewHeader); got != "" {
		t.Errorf("%s = %q, want empty", app.ViewHeader, got)
	}

	body := w.Body.String()
	if !strings.Contains(body, `<main id="outlet"></main>`) {
		t.Errorf("outlet not empty: %s", body)
	}
	if strings.Contains(body, "data-view=") {
		t.Error("unmatched path rendered a view")
	}
}

func TestApp_UnmatchedPartialIsEmpty(t *testing.T) {
	a := newApp(t, nil)

	w := serve(a, http.MethodGet, "/vocabulary", true)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if w.Body.Len() != 0 {
		t.Errorf("body = %q, want empty", w.Body.String())
	}
}

func TestApp_LayoutPublishesClientConfig(t *testing.T) {
	a := newApp(t, nil)

	body := serve(a, http.MethodGet, "/", false).Body.String()

	if !strings.Contains(body, `data-api-base="http://localhost:8080/api"`) {
		t.Error("layout missing API base URL")
	}
	if !strings.Contains(body, `data-api-timeout="10000"`) {
		t.Error("layout missing API timeout")
	}
}

func TestApp_RoutesJSON(t *testing.T) {
	a := newApp(t, nil)

	w := serve(a, http.MethodGet, "/routes.json", false)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var entries []app.RouteEntry
	if err := json.NewDecoder(w.Body).Decode(&entries); err != nil {
		t.Fatalf("decode routes: %v", err)
	}

	declared := app.Routes()
	if len(entries) != len(declared) {
		t.Fatalf("len(entries) = %d, want %d", len(entries), len(declared))
	}
	for i := range declared {
		if entries[i].Path != declared[i].Path || entries[i].View != declared[i].View {
			t.Errorf("entries[%d] = %+v, want %+v", i, entries[i], declared[i])
		}
		if entries[i].Title == "" {
			t.Errorf("entries[%d] has no title", i)
		}
	}
}

func TestApp_StaticAssets(t *testing.T) {
	a := newApp(t, nil)

	for _, path := range []string{"/dist/app.js", "/dist/app.css", "/site.webmanifest", "/favicon.svg"} {
		t.Run(path, func(t *testing.T) {
			w := serve(a, http.MethodGet, path, false)
			if w.Code != http.StatusOK {
				t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
			}
		})
	}
}

func TestApp_MethodNotAllowed(t *testing.T) {
	a := newApp(t, nil)

	w := serve(a, http.MethodPost, "/dashboard", false)
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want %d", w.Code, http.StatusMethodNotAllowed)
	}
}

func TestApp_ObservesNavigation(t *testing.T) {
	obs := &recordingObserver{}
	a := newApp(t, obs)

	serve(a, http.MethodGet, "/dashboard", false)
	serve(a, http.MethodGet, "/missing", true)

	want := []string{"Dashboard", "<none>"}
	if len(obs.calls) != len(want) {
		t.Fatalf("calls = %v, want %v", obs.calls, want)
	}
	for i := range want {
		if obs.calls[i] != want[i] {
			t.Errorf("calls[%d] = %q, want %q", i, obs.calls[i], want[i])
		}
	}
}

func TestApp_IndependentInstances(t *testing.T) {
	a := newApp(t, nil)
	b := newApp(t, nil)

	for _, route := range app.Routes() {
		ra, _ := a.Table().Resolve(route.Path)
		rb, _ := b.Table().Resolve(route.Path)
		if ra != rb {
			t.Errorf("instances resolve %q differently: %+v vs %+v", route.Path, ra, rb)
		}
	}
	if a.Table() == b.Table() {
		t.Error("instances share a route table")
	}
}
