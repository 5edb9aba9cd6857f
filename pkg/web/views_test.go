package web_test

import (
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/JaimeStill/lang-portal/pkg/web"
)

var testFS = fstest.MapFS{
	"layouts/app.html": {Data: []byte(
		`<title>{{ .Title }}</title><main>{{ block "content" . }}{{ end }}</main>`,
	)},
	"views/home.html":  {Data: []byte(`{{ define "content" }}home at {{ .BasePath }}{{ end }}`)},
	"views/about.html": {Data: []byte(`{{ define "content" }}about{{ end }}`)},
	"views/bad.html":   {Data: []byte(`{{ define "content" }}{{ .Nope.Field }}{{ end }}`)},
}

var testViews = []web.ViewDef{
	{Route: "/", Template: "home.html", Title: "Home", Bundle: "app"},
	{Route: "/about", Template: "about.html", Title: "About", Bundle: "app"},
	{Template: "bad.html", Title: "Bad"},
}

func newTemplateSet(t *testing.T) *web.TemplateSet {
	t.Helper()
	ts, err := web.NewTemplateSet(testFS, testFS, "layouts/*.html", "views", "/portal", testViews)
	if err != nil {
		t.Fatalf("NewTemplateSet() error = %v", err)
	}
	return ts
}

func TestNewTemplateSetInvalidLayoutGlob(t *testing.T) {
	if _, err := web.NewTemplateSet(testFS, testFS, "nonexistent/*.html", "views", "", testViews); err == nil {
		t.Error("NewTemplateSet() with invalid layout glob should return error")
	}
}

func TestNewTemplateSetMissingView(t *testing.T) {
	views := []web.ViewDef{{Route: "/x", Template: "missing.html"}}
	if _, err := web.NewTemplateSet(testFS, testFS, "layouts/*.html", "views", "", views); err == nil {
		t.Error("NewTemplateSet() with missing view should return error")
	}
}

func TestRender(t *testing.T) {
	ts := newTemplateSet(t)

	w := httptest.NewRecorder()
	data := web.PageData{Title: "Home", BasePath: ts.BasePath(), View: "Home"}
	if err := ts.Render(w, "app.html", "home.html", data); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	body := w.Body.String()
	if !strings.Contains(body, "<title>Home</title>") {
		t.Errorf("body missing title: %s", body)
	}
	if !strings.Contains(body, "<main>home at /portal</main>") {
		t.Errorf("body missing view content: %s", body)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q, want text/html", ct)
	}
}

func TestRenderExecutionError(t *testing.T) {
	ts := newTemplateSet(t)

	w := httptest.NewRecorder()
	if err := ts.Render(w, "app.html", "bad.html", web.PageData{}); err == nil {
		t.Fatal("Render() error = nil, want execution error")
	}
	if w.Body.Len() != 0 {
		t.Errorf("partial page written on render error: %q", w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "" {
		t.Errorf("Content-Type = %q set on render error", ct)
	}
}

func TestRenderFragment(t *testing.T) {
	ts := newTemplateSet(t)

	w := httptest.NewRecorder()
	if err := ts.RenderFragment(w, "about.html", web.PageData{}); err != nil {
		t.Fatalf("RenderFragment() error = %v", err)
	}
	if w.Body.String() != "about" {
		t.Errorf("body = %q, want %q", w.Body.String(), "about")
	}
}

func TestRenderShell(t *testing.T) {
	ts := newTemplateSet(t)

	w := httptest.NewRecorder()
	if err := ts.RenderShell(w, "app.html", web.PageData{Title: "Lang Portal"}); err != nil {
		t.Fatalf("RenderShell() error = %v", err)
	}
	if !strings.Contains(w.Body.String(), "<main></main>") {
		t.Errorf("body = %q, want empty outlet", w.Body.String())
	}
}

func TestRenderUnknownTemplate(t *testing.T) {
	ts := newTemplateSet(t)

	if err := ts.Render(httptest.NewRecorder(), "app.html", "nope.html", web.PageData{}); err == nil {
		t.Error("Render() with unknown template should return error")
	}
}
