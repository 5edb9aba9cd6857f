package main

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/JaimeStill/lang-portal/internal/config"
	"github.com/JaimeStill/lang-portal/internal/server"
)

// Server coordinates the lifecycle of all subsystems.
type Server struct {
	runtime *Runtime
	modules *Modules
	http    server.System
}

// NewServer creates and initializes the service with all subsystems.
func NewServer(cfg *config.Config) (*Server, error) {
	runtime, err := NewRuntime(cfg)
	if err != nil {
		return nil, err
	}
	return newServer(cfg, runtime)
}

func newServer(cfg *config.Config, runtime *Runtime) (*Server, error) {
	modules, err := NewModules(runtime)
	if err != nil {
		return nil, err
	}

	handler := buildHandler(runtime, modules, cfg)

	runtime.Logger.Info(
		"server initialized",
		"addr", cfg.Server.Addr(),
		"api_base_url", runtime.Client.BaseURL(),
		"api_timeout", runtime.Client.Timeout(),
		"routes", modules.App.Table().Len(),
	)

	return &Server{
		runtime: runtime,
		modules: modules,
		http: server.New(
			&cfg.Server,
			handler,
			runtime.Logger,
			cfg.ShutdownTimeoutDuration(),
		),
	}, nil
}

func buildHandler(runtime *Runtime, modules *Modules, cfg *config.Config) http.Handler {
	router := buildRouter(runtime, modules)
	return buildMiddleware(runtime, cfg).Apply(router)
}

// Start begins all subsystems and returns once the listener is bound.
func (s *Server) Start() error {
	s.runtime.Logger.Info("starting service")

	if err := s.http.Start(s.runtime.Lifecycle); err != nil {
		return err
	}

	go func() {
		s.runtime.Lifecycle.WaitForStartup()
		s.runtime.Logger.Info("all subsystems ready", "addr", s.http.Addr())
	}()

	return nil
}

// Addr returns the address the HTTP server is bound to.
func (s *Server) Addr() string {
	return s.http.Addr()
}

// Logger returns the service logger.
func (s *Server) Logger() *slog.Logger {
	return s.runtime.Logger
}

// Shutdown gracefully stops all subsystems within the timeout.
func (s *Server) Shutdown(timeout time.Duration) error {
	s.runtime.Logger.Info("initiating shutdown")
	return s.runtime.Lifecycle.Shutdown(timeout)
}
