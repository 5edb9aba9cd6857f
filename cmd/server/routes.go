package main

import (
	"net/http"

	"github.com/JaimeStill/lang-portal/pkg/lifecycle"
	"github.com/JaimeStill/lang-portal/pkg/web"
)

// buildRouter registers infrastructure endpoints and mounts the app shell as
// the fallback for every other path.
func buildRouter(runtime *Runtime, modules *Modules) *web.Router {
	r := web.NewRouter()

	r.HandleFunc("GET /healthz", handleHealthCheck)
	r.HandleFunc("GET /readyz", func(w http.ResponseWriter, req *http.Request) {
		handleReadinessCheck(w, runtime.Lifecycle)
	})
	r.Handle("GET /metrics", runtime.Metrics.Handler())

	r.SetFallback(modules.App.Handler().ServeHTTP)

	return r
}

func handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func handleReadinessCheck(w http.ResponseWriter, ready lifecycle.ReadinessChecker) {
	if !ready.Ready() {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("NOT READY"))
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("READY"))
}
