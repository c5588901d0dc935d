// Package metrics exposes Prometheus instrumentation for the intake service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	LeadsReceived       prometheus.Counter
	ExtractionFallbacks prometheus.Counter
	LedgerFailures      prometheus.Counter
	EmailFailures       prometheus.Counter
	RequestsTotal       *prometheus.CounterVec
}

func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		LeadsReceived: factory.NewCounter(prometheus.CounterOpts{
			Name: "leads_received_total",
			Help: "Total lead submissions accepted for processing.",
		}),
		ExtractionFallbacks: factory.NewCounter(prometheus.CounterOpts{
			Name: "extraction_fallbacks_total",
			Help: "Total submissions processed with the fallback extraction.",
		}),
		LedgerFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "ledger_failures_total",
			Help: "Total ledger append failures (lead lost, request failed).",
		}),
		EmailFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "email_failures_total",
			Help: "Total notification or confirmation emails that failed to deliver.",
		}),
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by method, path, and status.",
		}, []string{"method", "path", "status"}),
	}
}

// Handler serves the registry for scraping at /metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
