// Staticmaps - Static Map Rendering Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staticmaps

/*
Package main is the entry point for the staticmaps server.

staticmaps renders PNG maps over an HTTP API. A request lists marker
locations and a route as [longitude, latitude] pairs; the server fits a
Web Mercator viewport around them, stitches basemap tiles fetched from an
upstream tile server, draws the markers and the route, and returns the
image.

# Application Architecture

The server runs under a Suture v4 supervisor tree:

	RootSupervisor ("staticmaps")
	└── APISupervisor ("api-layer")
	    └── HTTP Server

Component initialization order:

 1. Configuration: Koanf v2 with defaults, an optional YAML file and
    environment variables
 2. Logging: zerolog, bridged to slog for the supervisor
 3. Tile source: HTTP fetcher with retries, rate limiting and a circuit
    breaker
 4. Render pipeline: viewport fitter, tile compositor, overlay renderer
 5. HTTP Server: chi router with CORS, request IDs and Prometheus metrics

# Endpoints

	POST /render                    render a map (also /api/v1/render)
	GET  /api/v1/health/live        liveness
	GET  /api/v1/health/ready       readiness, 503 while the tile breaker is open
	GET  /metrics                   Prometheus metrics

# Configuration

The most common settings:

	STATIC_MAP_SERVICE_PORT   listen port (default 8081)
	TILE_URL_TEMPLATE         tile URL with {z}, {x} and {y}
	LOG_LEVEL / LOG_FORMAT    zerolog level and json or console

A config.yaml in the working directory, or the file named by CONFIG_PATH,
is read before the environment.

# Signal Handling

On SIGINT or SIGTERM the server stops accepting connections and waits up
to HTTP_SHUTDOWN_TIMEOUT for in-flight renders to finish.
*/
package main
