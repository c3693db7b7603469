// Pulso - WhatsApp Engagement Analytics and Forecasting
// Copyright 2026 Pulso Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pulsolabs/pulso

// Package metrics defines the Prometheus instrumentation for Pulso,
// exposed at /metrics in Prometheus text format.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Database metrics.
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pulso_duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pulso_duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation", "table"},
	)

	// API endpoint metrics.
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pulso_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pulso_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "pulso_api_active_requests",
			Help: "Current number of in-flight API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pulso_api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Forecasting engine metrics.
	EngineRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pulso_engine_runs_total",
			Help: "Total number of analytics generation runs",
		},
		[]string{"outcome"}, // "ok", "empty", "error"
	)

	EngineRunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pulso_engine_run_duration_seconds",
			Help:    "Duration of one analytics generation run",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
	)

	EngineAlertsGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pulso_engine_alerts_generated_total",
			Help: "Total alerts produced by the engine, by type and severity",
		},
		[]string{"type", "severity"},
	)

	// Aggregate cache metrics.
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pulso_cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_type"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pulso_cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_type"},
	)

	CacheSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "pulso_cache_entries",
			Help: "Current number of cached entries",
		},
		[]string{"cache_type"},
	)

	CacheEvictions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pulso_cache_evictions_total",
			Help: "Total number of cache evictions on TTL expiry",
		},
		[]string{"cache_type"},
	)

	// Insight-state (Badger) metrics.
	StateOverrides = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pulso_state_overrides_total",
			Help: "Total alert/recommendation state overrides written",
		},
		[]string{"kind"}, // "alert", "recommendation"
	)

	// Circuit breaker metrics.
	BreakerStateChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pulso_breaker_state_changes_total",
			Help: "Circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)

	BreakerRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pulso_breaker_rejections_total",
			Help: "Requests rejected while a circuit breaker is open",
		},
		[]string{"name"},
	)

	// Auth metrics.
	AuthLogins = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pulso_auth_logins_total",
			Help: "Login attempts by outcome",
		},
		[]string{"outcome"}, // "success", "invalid_credentials"
	)
)

// RecordEngineAlerts bumps the alert counters for a finished engine run.
func RecordEngineAlerts(alerts []AlertSample) {
	for _, a := range alerts {
		EngineAlertsGenerated.WithLabelValues(a.Type, a.Severity).Inc()
	}
}

// AlertSample is the minimal view of an alert the metrics layer needs,
// avoiding an import cycle with the models package.
type AlertSample struct {
	Type     string
	Severity string
}
