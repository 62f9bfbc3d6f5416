// Staticmaps - Static Map Rendering Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staticmaps

/*
Package metrics provides Prometheus metrics collection and export for observability.

All collectors are registered with the default registry through promauto and
exposed at /metrics by promhttp.

# Available Metrics

API Metrics:
  - api_requests_total: Total API requests (counter)
    Labels: method, endpoint, status_code
  - api_request_duration_seconds: Request latency (histogram)
    Labels: method, endpoint
  - api_active_requests: In-flight requests (gauge)

Render Metrics:
  - render_requests_total: Renders by outcome (counter)
    Labels: outcome (success, invalid_input, tile_source_unavailable,
    timeout, encoding_error, canceled, error)
  - render_duration_seconds: Successful render duration (histogram)
  - render_zoom_level: Zoom chosen by viewport fitting (histogram)

Tile Metrics:
  - tile_fetch_total: Upstream tile fetches (counter)
    Labels: result (success, failure, not_found, rejected)
  - tile_fetch_duration_seconds: Fetch duration with retries (histogram)
  - tile_placeholders_total: Tiles drawn as placeholders (counter)

Circuit Breaker Metrics:
  - circuit_breaker_state: Current state (gauge)
    Labels: name
    Values: 0=closed, 1=half-open, 2=open
  - circuit_breaker_requests_total: Requests through the breaker (counter)
    Labels: name, result
  - circuit_breaker_consecutive_failures: Current failure streak (gauge)
  - circuit_breaker_state_transitions_total: State changes (counter)
    Labels: name, from_state, to_state

# Example PromQL

	# Placeholder rate per render
	rate(tile_placeholders_total[5m]) / rate(render_requests_total{outcome="success"}[5m])

	# p95 render latency
	histogram_quantile(0.95, rate(render_duration_seconds_bucket[5m]))

# Thread Safety

All recording functions are safe for concurrent use. The Prometheus client
library handles synchronization internally.
*/
package metrics
