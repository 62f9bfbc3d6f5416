// Staticmaps - Static Map Rendering Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staticmaps

// Package api provides the HTTP surface of the static map service.
//
// # Endpoints
//
//	POST /render                 render a map, respond with image/png
//	POST /api/v1/render          same as /render
//	GET  /api/v1/health/live     liveness probe, always 200
//	GET  /api/v1/health/ready    readiness probe, 503 while the tile source breaker is open
//	GET  /metrics                Prometheus exposition
//
// # Render Request
//
//	{
//	    "locations": [[37.618423, 55.751244], [30.315868, 59.939095]],
//	    "route": [[37.618423, 55.751244], [30.315868, 59.939095]],
//	    "width": 800,
//	    "height": 600,
//	    "style": {"marker_color": "#ff0000", "route_width": 4}
//	}
//
// A successful response carries the PNG bytes with the headers
// X-Map-Zoom, X-Map-Center (lon,lat) and X-Tile-Placeholders.
//
// # Errors
//
// Failures use the standard JSON envelope:
//
//	{
//	    "status": "error",
//	    "data": null,
//	    "metadata": {"timestamp": "...", "request_id": "..."},
//	    "error": {"code": "VALIDATION_ERROR", "message": "...", "details": {...}}
//	}
//
// Codes: INVALID_JSON and VALIDATION_ERROR (400), REQUEST_TOO_LARGE (413),
// TILE_SOURCE_UNAVAILABLE (502), REQUEST_CANCELED (503), RENDER_TIMEOUT (504)
// and INTERNAL_ERROR (500).
//
// # Middleware
//
// Every route runs behind request ID propagation, real IP extraction, panic
// recovery, CORS (go-chi/cors) and Prometheus request metrics.
package api
