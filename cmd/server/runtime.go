package main

import (
	"fmt"
	"log/slog"

	"github.com/JaimeStill/lang-portal/internal/config"
	"github.com/JaimeStill/lang-portal/internal/metrics"
	"github.com/JaimeStill/lang-portal/pkg/client"
	"github.com/JaimeStill/lang-portal/pkg/lifecycle"
	"github.com/JaimeStill/lang-portal/pkg/logging"
)

// Runtime holds the infrastructure shared by every module.
type Runtime struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Metrics   *metrics.Metrics
	Client    *client.Client
}

// NewRuntime builds the shared infrastructure. The request client is created
// once here and handed to each consumer.
func NewRuntime(cfg *config.Config) (*Runtime, error) {
	return newRuntime(cfg, logging.New(&cfg.Logging))
}

func newRuntime(cfg *config.Config, logger *slog.Logger) (*Runtime, error) {
	m := metrics.New()

	api, err := client.New(
		&cfg.Client,
		client.WithTransport(m.InstrumentTransport(nil)),
		client.WithLogger(logger.With("component", "client")),
	)
	if err != nil {
		return nil, fmt.Errorf("client init failed: %w", err)
	}

	return &Runtime{
		Lifecycle: lifecycle.New(),
		Logger:    logger,
		Metrics:   m,
		Client:    api,
	}, nil
}
