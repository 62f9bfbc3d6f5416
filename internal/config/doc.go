// Staticmaps - Static Map Rendering Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staticmaps

/*
Package config provides layered configuration for the static map service.

# Configuration Sources

Koanf v2 merges three layers, later ones winning:
  - built-in defaults
  - an optional YAML file: CONFIG_PATH, else config.yaml, config.yml or
    /etc/staticmaps/config.yaml
  - mapped environment variables

# Example File

	server:
	  port: 8081
	  cors_origins: ["https://maps.example.com"]
	render:
	  max_width: 2048
	  max_height: 2048
	  deadline: 20s
	tiles:
	  url_template: https://tile.example.com/{z}/{x}/{y}.png
	  requests_per_second: 20
	  breaker:
	    failure_ratio: 0.5
	logging:
	  level: debug
	  format: console

# Environment Variables

Server:
  - STATIC_MAP_SERVICE_PORT (or HTTP_PORT): listen port (default: 8081)
  - HTTP_HOST, HTTP_READ_TIMEOUT, HTTP_WRITE_TIMEOUT, HTTP_SHUTDOWN_TIMEOUT
  - CORS_ORIGINS: comma-separated (default: *)

Render:
  - RENDER_DEFAULT_WIDTH, RENDER_DEFAULT_HEIGHT (default: 1280x720)
  - RENDER_MAX_WIDTH, RENDER_MAX_HEIGHT (default: 4096x4096)
  - RENDER_PADDING (default: 20), RENDER_MAX_ZOOM (default: 20)
  - RENDER_SINGLE_POINT_ZOOM (default: 15), RENDER_DEADLINE (default: 30s)
  - MAP_ATTRIBUTION: empty disables the attribution text

Style:
  - STYLE_MARKER_COLOR, STYLE_MARKER_SIZE, STYLE_MARKER_SHAPE
  - STYLE_ROUTE_COLOR, STYLE_ROUTE_WIDTH

Tiles:
  - TILE_URL_TEMPLATE: must contain {z}, {x} and {y}
  - TILE_USER_AGENT, TILE_SIZE, TILE_FETCH_TIMEOUT, TILE_CONCURRENCY
  - TILE_RETRIES, TILE_RETRY_BACKOFF, TILE_REQUESTS_PER_SECOND, TILE_BURST
  - TILE_BREAKER_MIN_REQUESTS, TILE_BREAKER_FAILURE_RATIO,
    TILE_BREAKER_OPEN_TIMEOUT, TILE_BREAKER_INTERVAL

Logging:
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER

Durations use Go syntax such as 500ms or 30s.

# Validation

Validate reports every problem at once, for example a port outside
1..65535 or a default canvas larger than the maximum.
*/
package config
