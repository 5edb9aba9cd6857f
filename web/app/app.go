// Package app provides the portal web shell with embedded templates and assets.
// Every page request is resolved through the route table: matched paths
// render their view inside the shared layout, unmatched paths render the
// layout with an empty outlet. Requests sent by the bundled navigation
// script receive only the view fragment so content swaps without a reload.
package app

import (
	"embed"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/JaimeStill/lang-portal/pkg/client"
	"github.com/JaimeStill/lang-portal/pkg/handlers"
	"github.com/JaimeStill/lang-portal/pkg/navigation"
	"github.com/JaimeStill/lang-portal/pkg/web"
)

const (
	layout = "app.html"

	// NavigationHeader marks a request issued by the in-page navigation script.
	NavigationHeader = "X-Requested-With"
	navigationValue  = "navigation"

	// ViewHeader reports the resolved view name; empty when unmatched.
	ViewHeader = "X-View"

	// TitleHeader reports the resolved view title for fragment responses.
	TitleHeader = "X-View-Title"
)

//go:embed dist/*
var distFS embed.FS

//go:embed public/*
var publicFS embed.FS

//go:embed server/layouts/*
var layoutFS embed.FS

//go:embed server/views/*
var viewFS embed.FS

var publicFiles = []string{
	"favicon.svg",
	"site.webmanifest",
}

var views = []web.ViewDef{
	{Name: "Home", Route: "/", Template: "home.html", Title: "Home", Bundle: "app"},
	{Name: "Dashboard", Route: "/dashboard", Template: "dashboard.html", Title: "Dashboard", Bundle: "app"},
	{Name: "StudyActivities", Route: "/study-activities", Template: "study-activities.html", Title: "Study Activities", Bundle: "app"},
	{Name: "MalayChatbox", Route: "/malay-chatbox", Template: "malay-chatbox.html", Title: "Malay Chatbox", Bundle: "app"},
	{Name: "PracticeJawi", Route: "/practice-jawi", Template: "practice-jawi.html", Title: "Practice Jawi", Bundle: "app"},
	{Name: "ListeningSpeaking", Route: "/listening-speaking", Template: "listening-speaking.html", Title: "Listening & Speaking", Bundle: "app"},
	{Name: "PictureGame", Route: "/picture-game", Template: "picture-game.html", Title: "Picture Game", Bundle: "app"},
}

// Routes returns the application route table entries in declaration order.
func Routes() []navigation.Route {
	routes := make([]navigation.Route, len(views))
	for i, v := range views {
		routes[i] = navigation.Route{Path: v.Route, View: v.Name}
	}
	return routes
}

// NavigationObserver records route table resolutions.
type NavigationObserver interface {
	ObserveNavigation(view string, matched bool)
}

// ShellData is exposed to the layout so views share the request client configuration.
type ShellData struct {
	APIBaseURL   string
	APITimeoutMs int64
}

// RouteEntry is one element of the published route table.
type RouteEntry struct {
	Path  string `json:"path"`
	View  string `json:"view"`
	Title string `json:"title"`
}

// App is the web shell module.
type App struct {
	nav       *navigation.Manager
	templates *web.TemplateSet
	views     map[string]web.ViewDef
	shell     ShellData
	logger    *slog.Logger
	observer  NavigationObserver
	handler   http.Handler
}

// New creates the web shell. The api client is shared, not copied: its base
// URL and timeout are published to the layout. observer may be nil.
func New(logger *slog.Logger, api *client.Client, observer NavigationObserver) (*App, error) {
	return newApp(layoutFS, viewFS, views, logger, api, observer)
}

func newApp(layouts, viewFiles fs.FS, defs []web.ViewDef, logger *slog.Logger, api *client.Client, observer NavigationObserver) (*App, error) {
	ts, err := web.NewTemplateSet(
		layouts,
		viewFiles,
		"server/layouts/*.html",
		"server/views",
		"",
		defs,
	)
	if err != nil {
		return nil, err
	}

	routes := make([]navigation.Route, len(defs))
	byName := make(map[string]web.ViewDef, len(defs))
	for i, v := range defs {
		routes[i] = navigation.Route{Path: v.Route, View: v.Name}
		byName[v.Name] = v
	}

	nav, err := navigation.NewManager(navigation.NewTable(routes), navigation.HistoryWeb)
	if err != nil {
		return nil, err
	}

	a := &App{
		nav:       nav,
		templates: ts,
		views:     byName,
		shell: ShellData{
			APIBaseURL:   api.BaseURL(),
			APITimeoutMs: api.Timeout().Milliseconds(),
		},
		logger:   logger,
		observer: observer,
	}
	a.handler = a.buildRouter()

	return a, nil
}

// Handler returns the HTTP handler for the shell.
func (a *App) Handler() http.Handler {
	return a.handler
}

// Table returns the route table the shell resolves against.
func (a *App) Table() *navigation.Table {
	return a.nav.Table()
}

func (a *App) buildRouter() http.Handler {
	r := web.NewRouter()
	r.SetFallback(a.serveView)

	r.HandleFunc("GET /routes.json", a.serveRoutes)
	r.HandleFunc("GET /dist/", web.DistServer(distFS, "dist", "/dist/"))

	for _, route := range web.PublicFileRoutes(publicFS, "public", publicFiles...) {
		r.HandleFunc(route.Method+" "+route.Pattern, route.Handler)
	}

	return r
}

func (a *App) serveRoutes(w http.ResponseWriter, r *http.Request) {
	routes := a.nav.Table().Routes()
	entries := make([]RouteEntry, len(routes))
	for i, route := range routes {
		entries[i] = RouteEntry{
			Path:  route.Path,
			View:  route.View,
			Title: a.views[route.View].Title,
		}
	}
	handlers.RespondJSON(w, http.StatusOK, entries)
}

func (a *App) serveView(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	path, err := a.nav.Location(r.URL.String())
	if err != nil {
		a.logger.Warn("invalid navigation location", "url", r.URL.String(), "error", err)
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	state := a.nav.Resolve(path)
	if a.observer != nil {
		a.observer.ObserveNavigation(state.Route.View, state.Matched)
	}

	w.Header().Add("Vary", NavigationHeader)
	w.Header().Set(ViewHeader, state.Route.View)

	partial := r.Header.Get(NavigationHeader) == navigationValue
	data := web.PageData{
		Title:    "Lang Portal",
		BasePath: a.templates.BasePath(),
		Data:     a.shell,
	}

	switch {
	case !state.Matched && partial:
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set(TitleHeader, data.Title)
	case !state.Matched:
		err = a.templates.RenderShell(w, layout, data)
	default:
		view := a.views[state.Route.View]
		data.Title = view.Title
		data.Bundle = view.Bundle
		data.View = view.Name
		if partial {
			w.Header().Set(TitleHeader, view.Title)
			err = a.templates.RenderFragment(w, view.Template, data)
		} else {
			err = a.templates.Render(w, layout, view.Template, data)
		}
	}

	if err != nil {
		a.logger.Error("render view failed", "path", state.Path, "view", state.Route.View, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	a.logger.Debug(
		"navigation resolved",
		"path", state.Path,
		"view", state.Route.View,
		"matched", state.Matched,
		"partial", partial,
		"duration", time.Since(start),
	)
}
