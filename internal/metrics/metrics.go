// Staticmaps - Static Map Rendering Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staticmaps

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Render outcomes used as the "outcome" label of RenderRequestsTotal.
const (
	OutcomeSuccess               = "success"
	OutcomeInvalidInput          = "invalid_input"
	OutcomeTileSourceUnavailable = "tile_source_unavailable"
	OutcomeTimeout               = "timeout"
	OutcomeEncodingError         = "encoding_error"
	OutcomeCanceled              = "canceled"
	OutcomeError                 = "error"
)

// Tile fetch results used as the "result" label of TileFetchTotal.
const (
	TileResultSuccess  = "success"
	TileResultFailure  = "failure"
	TileResultNotFound = "not_found"
	TileResultRejected = "rejected"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Render Pipeline Metrics
	RenderRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "render_requests_total",
			Help: "Total number of map renders by outcome",
		},
		[]string{"outcome"},
	)

	RenderDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "render_duration_seconds",
			Help:    "Time from a validated request to encoded PNG",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		},
	)

	RenderZoomLevel = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "render_zoom_level",
			Help:    "Zoom level chosen by viewport fitting",
			Buckets: prometheus.LinearBuckets(0, 2, 11), // 0, 2, ..., 20
		},
	)

	// Tile Source Metrics
	TileFetchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tile_fetch_total",
			Help: "Total number of tile fetches by result",
		},
		[]string{"result"}, // result: "success", "failure", "not_found", "rejected"
	)

	TileFetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "tile_fetch_duration_seconds",
			Help:    "Tile fetch duration in seconds, retries included",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)

	TilePlaceholders = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tile_placeholders_total",
			Help: "Total number of tiles rendered as placeholders",
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRender records the outcome of one render. Zoom and duration are
// only observed for successful renders.
func RecordRender(outcome string, zoom int, duration time.Duration) {
	RenderRequestsTotal.WithLabelValues(outcome).Inc()
	if outcome == OutcomeSuccess {
		RenderDuration.Observe(duration.Seconds())
		RenderZoomLevel.Observe(float64(zoom))
	}
}

// RecordTileFetch records one tile fetch through the upstream source.
func RecordTileFetch(result string, duration time.Duration) {
	TileFetchTotal.WithLabelValues(result).Inc()
	if result != TileResultRejected {
		TileFetchDuration.Observe(duration.Seconds())
	}
}

// RecordPlaceholders counts tiles drawn as placeholders in one render.
func RecordPlaceholders(n int) {
	if n > 0 {
		TilePlaceholders.Add(float64(n))
	}
}
