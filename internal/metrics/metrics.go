// Package metrics defines the Prometheus collectors for the web shell.
// Collectors live on a private registry so tests and multiple instances
// never collide on the global default registry.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the registry and collectors.
type Metrics struct {
	registry *prometheus.Registry

	navigations    *prometheus.CounterVec
	serverRequests *prometheus.CounterVec
	clientRequests *prometheus.CounterVec
	clientDuration *prometheus.HistogramVec
}

// New creates and registers all collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		navigations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portal_navigation_resolutions_total",
				Help: "Navigation events resolved through the route table",
			},
			[]string{"view", "matched"},
		),
		serverRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portal_http_requests_total",
				Help: "HTTP requests served by the web shell",
			},
			[]string{"code", "method"},
		),
		clientRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portal_api_client_requests_total",
				Help: "Requests issued by the API request client",
			},
			[]string{"code", "method"},
		),
		clientDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "portal_api_client_request_duration_seconds",
				Help:    "Latency of API request client calls",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"code", "method"},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.navigations,
		m.serverRequests,
		m.clientRequests,
		m.clientDuration,
	)

	return m
}

// Registry returns the private registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveNavigation records a route table resolution.
func (m *Metrics) ObserveNavigation(view string, matched bool) {
	label := "false"
	if matched {
		label = "true"
	}
	m.navigations.WithLabelValues(view, label).Inc()
}

// InstrumentHandler counts requests served by next.
func (m *Metrics) InstrumentHandler(next http.Handler) http.Handler {
	return promhttp.InstrumentHandlerCounter(m.serverRequests, next)
}

// InstrumentTransport wraps next with request counting and latency observation.
// A nil next uses http.DefaultTransport.
func (m *Metrics) InstrumentTransport(next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return promhttp.InstrumentRoundTripperCounter(
		m.clientRequests,
		promhttp.InstrumentRoundTripperDuration(m.clientDuration, next),
	)
}
