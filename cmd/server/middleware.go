package main

import (
	"github.com/JaimeStill/lang-portal/internal/config"
	"github.com/JaimeStill/lang-portal/pkg/middleware"
)

// buildMiddleware creates the middleware stack applied to every request.
func buildMiddleware(runtime *Runtime, cfg *config.Config) middleware.System {
	mw := middleware.New()
	mw.Use(runtime.Metrics.InstrumentHandler)
	mw.Use(middleware.Logger(runtime.Logger))
	mw.Use(middleware.TrimSlash())
	mw.Use(middleware.CORS(&cfg.CORS))
	return mw
}
