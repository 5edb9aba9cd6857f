package main

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/JaimeStill/lang-portal/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	t.Setenv(config.EnvServiceEnv, "")

	cfg := &config.Config{}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = 0
	return cfg
}

func testHandler(t *testing.T) (http.Handler, *Runtime) {
	t.Helper()
	return testHandlerWithLogger(t, slog.New(slog.DiscardHandler))
}

func testHandlerWithLogger(t *testing.T, logger *slog.Logger) (http.Handler, *Runtime) {
	t.Helper()
	cfg := testConfig(t)

	runtime, err := newRuntime(cfg, logger)
	if err != nil {
		t.Fatalf("newRuntime() error = %v", err)
	}
	modules, err := NewModules(runtime)
	if err != nil {
		t.Fatalf("NewModules() error = %v", err)
	}
	return buildHandler(runtime, modules, cfg), runtime
}

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestHandler_Healthz(t *testing.T) {
	h, _ := testHandler(t)

	w := get(h, "/healthz")
	if w.Code != http.StatusOK || w.Body.String() != "OK" {
		t.Errorf("GET /healthz = %d %q, want 200 OK", w.Code, w.Body.String())
	}
}

func TestHandler_Readyz(t *testing.T) {
	h, runtime := testHandler(t)

	if w := get(h, "/readyz"); w.Code != http.StatusServiceUnavailable {
		t.Errorf("GET /readyz before startup = %d, want %d", w.Code, http.StatusServiceUnavailable)
	}

	runtime.Lifecycle.WaitForStartup()

	if w := get(h, "/readyz"); w.Code != http.StatusOK {
		t.Errorf("GET /readyz after startup = %d, want %d", w.Code, http.StatusOK)
	}
}

func TestHandler_MountsApp(t *testing.T) {
	h, _ := testHandler(t)

	w := get(h, "/study-activities")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if got := w.Header().Get("X-View"); got != "StudyActivities" {
		t.Errorf("X-View = %q, want StudyActivities", got)
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("request id header not set")
	}
}

func TestHandler_TrailingSlashRedirects(t *testing.T) {
	h, _ := testHandler(t)

	w := get(h, "/dashboard/")
	if w.Code != http.StatusMovedPermanently {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusMovedPermanently)
	}
	if loc := w.Header().Get("Location"); loc != "/dashboard" {
		t.Errorf("Location = %q, want /dashboard", loc)
	}
}

func TestHandler_TrailingSlashRedirectIsLogged(t *testing.T) {
	var buf bytes.Buffer
	h, _ := testHandlerWithLogger(t, slog.New(slog.NewTextHandler(&buf, nil)))

	w := get(h, "/malay-chatbox/")
	if w.Code != http.StatusMovedPermanently {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusMovedPermanently)
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("redirect response has no request id")
	}

	out := buf.String()
	if !strings.Contains(out, "uri=/malay-chatbox/") || !strings.Contains(out, "status=301") {
		t.Errorf("redirect not logged: %s", out)
	}
}

func TestHandler_MetricsRecordNavigation(t *testing.T) {
	h, _ := testHandler(t)

	get(h, "/picture-game")
	get(h, "/unknown")

	body := get(h, "/metrics").Body.String()

	for _, want := range []string{
		`portal_navigation_resolutions_total{matched="true",view="PictureGame"} 1`,
		`portal_navigation_resolutions_total{matched="false",view=""} 1`,
		"portal_http_requests_total",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics missing %s", want)
		}
	}
}

func TestServer_StartAndShutdown(t *testing.T) {
	cfg := testConfig(t)

	runtime, err := newRuntime(cfg, slog.New(slog.DiscardHandler))
	if err != nil {
		t.Fatalf("newRuntime() error = %v", err)
	}
	srv, err := newServer(cfg, runtime)
	if err != nil {
		t.Fatalf("newServer() error = %v", err)
	}

	if err := srv.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	resp, err := http.Get(fmt.Sprintf("http://%s/", srv.Addr()))
	if err != nil {
		t.Fatalf("GET / error = %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	if !strings.Contains(string(body), `data-view="Home"`) {
		t.Error("root path did not render Home view")
	}

	if err := srv.Shutdown(5 * time.Second); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}

	if _, err := http.Get(fmt.Sprintf("http://%s/healthz", srv.Addr())); err == nil {
		t.Error("server still accepting requests after shutdown")
	}
}
