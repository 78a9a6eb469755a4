// Package metrics holds Prometheus instruments that are used across the
// service.  All collectors are registered with the global registry, so
// importing this package in main.go is enough to expose them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	ActiveSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "builder_active_sessions",
			Help: "Number of editor sessions currently held in memory.",
		})

	SessionLoadTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "builder_session_load_total",
			Help: "Cumulative number of editor sessions loaded from storage.",
		})

	SessionLoadErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "builder_session_load_errors_total",
			Help: "Cumulative number of editor session load errors.",
		})

	SessionEvictTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "builder_session_evict_total",
			Help: "Cumulative number of editor sessions evicted, by reason.",
		}, []string{"reason"})

	MutationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "builder_mutations_total",
			Help: "Document mutations applied, by operation.",
		}, []string{"op"})

	SavesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "builder_saves_total",
			Help: "Cumulative number of successful page saves.",
		})

	SaveErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "builder_save_errors_total",
			Help: "Cumulative number of failed page saves.",
		})

	PublishTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "builder_publish_total",
			Help: "Cumulative number of site publishes.",
		})

	SitesCreatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "builder_sites_created_total",
			Help: "Cumulative number of sites provisioned.",
		})

	RateLimitedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "builder_rate_limited_total",
			Help: "Requests rejected by the per-client rate limiter.",
		})

	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "builder_http_requests_total",
			Help: "HTTP requests served, by method and status class.",
		}, []string{"method", "code"})

	GatewayLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "builder_gateway_seconds",
			Help:    "Persistence gateway call latency, by operation and outcome.",
			Buckets: prometheus.DefBuckets,
		}, []string{"op", "outcome"})
)

func init() {
	prometheus.MustRegister(
		ActiveSessions,
		SessionLoadTotal,
		SessionLoadErrorsTotal,
		SessionEvictTotal,
		MutationsTotal,
		SavesTotal,
		SaveErrorsTotal,
		PublishTotal,
		SitesCreatedTotal,
		RateLimitedTotal,
		HTTPRequestsTotal,
		GatewayLatency,
	)
}
