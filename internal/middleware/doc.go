// Staticmaps - Static Map Rendering Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staticmaps

/*
Package middleware provides HTTP middleware components for the application.

Key Components:

  - Request ID: UUID-based request tracking, propagated into the logging
    context as request_id plus a fresh correlation_id
  - Prometheus Metrics: request count, latency and in-flight instrumentation

Both are written as func(http.HandlerFunc) http.HandlerFunc and adapted for
chi by internal/api.

Usage Example - Request ID:

	http.HandleFunc("/render", middleware.RequestID(handler))

	func handler(w http.ResponseWriter, r *http.Request) {
	    logging.CtxInfo(r.Context()).Msg("rendering") // carries request_id
	}

An incoming X-Request-ID is kept when it is printable ASCII of at most 128
bytes; anything else is replaced by a new UUID.

Usage Example - Metrics:

	r.Use(chiMiddleware(middleware.PrometheusMetrics))

The endpoint label is the chi route pattern ("/api/v1/render"), or
"unmatched" for requests no route accepted, so scanners cannot inflate
label cardinality.
*/
package middleware
