// Staticmaps - Static Map Rendering Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staticmaps

package config

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

// Config holds all service configuration.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: built-in values for every setting
//  2. Config File: optional YAML file (config.yaml) for persistent settings
//  3. Environment Variables: override any mapped setting
//
// Config is immutable after Load and safe for concurrent reads.
type Config struct {
	Server  ServerConfig  `koanf:"server"`
	Render  RenderConfig  `koanf:"render"`
	Style   StyleConfig   `koanf:"style"`
	Tiles   TilesConfig   `koanf:"tiles"`
	Logging LoggingConfig `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
//
// Environment Variables:
//   - STATIC_MAP_SERVICE_PORT: listen port (default: 8081), wins over HTTP_PORT
//   - HTTP_PORT: listen port
//   - HTTP_HOST: bind address (default: 0.0.0.0)
//   - HTTP_READ_TIMEOUT, HTTP_WRITE_TIMEOUT: per request I/O timeouts (default: 60s)
//   - HTTP_SHUTDOWN_TIMEOUT: graceful shutdown budget (default: 10s)
//   - CORS_ORIGINS: comma-separated allowed origins (default: *)
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	CORSOrigins     []string      `koanf:"cors_origins"`
}

// Addr returns host:port for net.Listen.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// RenderConfig holds canvas and viewport settings.
type RenderConfig struct {
	DefaultWidth  int `koanf:"default_width"`
	DefaultHeight int `koanf:"default_height"`
	MaxWidth      int `koanf:"max_width"`
	MaxHeight     int `koanf:"max_height"`

	// Padding in pixels kept free around the fitted coordinates.
	Padding int `koanf:"padding"`

	MaxZoom         int `koanf:"max_zoom"`
	SinglePointZoom int `koanf:"single_point_zoom"`

	// Deadline bounds a whole render.
	Deadline time.Duration `koanf:"deadline"`

	// Attribution is drawn bottom right. Empty disables it.
	Attribution string `koanf:"attribution"`
}

// StyleConfig holds the overlay style used when a request sets none.
type StyleConfig struct {
	MarkerColor string  `koanf:"marker_color"`
	MarkerSize  float64 `koanf:"marker_size"`
	MarkerShape string  `koanf:"marker_shape"`
	RouteColor  string  `koanf:"route_color"`
	RouteWidth  float64 `koanf:"route_width"`
}

// TilesConfig holds the upstream tile server settings.
type TilesConfig struct {
	URLTemplate string `koanf:"url_template"`
	UserAgent   string `koanf:"user_agent"`
	TileSize    int    `koanf:"tile_size"`

	FetchTimeout time.Duration `koanf:"fetch_timeout"`
	Concurrency  int           `koanf:"concurrency"`
	Retries      int           `koanf:"retries"`
	RetryBackoff time.Duration `koanf:"retry_backoff"`

	// RequestsPerSecond of 0 means unlimited.
	RequestsPerSecond float64 `koanf:"requests_per_second"`
	Burst             int     `koanf:"burst"`

	Breaker BreakerConfig `koanf:"breaker"`
}

// BreakerConfig holds the tile source circuit breaker settings.
type BreakerConfig struct {
	MinRequests  uint32        `koanf:"min_requests"`
	FailureRatio float64       `koanf:"failure_ratio"`
	OpenTimeout  time.Duration `koanf:"open_timeout"`
	Interval     time.Duration `koanf:"interval"`
}

// LoggingConfig holds logging configuration.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: true/false - include caller file:line (default: false)
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Load reads configuration from defaults, an optional file and the
// environment, then validates it.
func Load() (*Config, error) {
	cfg, err := LoadWithKoanf()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
