// Staticmaps - Static Map Rendering Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staticmaps

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/staticmaps/config.yaml",
	"/etc/staticmaps/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// PortEnvVar selects the listening port. It takes precedence over HTTP_PORT.
const PortEnvVar = "STATIC_MAP_SERVICE_PORT"

// DefaultUserAgent identifies the service to tile servers, which require one.
const DefaultUserAgent = "staticmaps/1.0 (+https://github.com/tomtom215/staticmaps)"

// defaultConfig returns a Config struct with all default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8081,
			ReadTimeout:     60 * time.Second,
			WriteTimeout:    60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			CORSOrigins:     []string{"*"},
		},
		Render: RenderConfig{
			DefaultWidth:    1280,
			DefaultHeight:   720,
			MaxWidth:        4096,
			MaxHeight:       4096,
			Padding:         20,
			MaxZoom:         20,
			SinglePointZoom: 15,
			Deadline:        30 * time.Second,
			Attribution:     "Maps & Data (C) openstreetmap.org and contributors, ODbL",
		},
		Style: StyleConfig{
			MarkerColor: "#0000ff",
			MarkerSize:  10,
			MarkerShape: "pin",
			RouteColor:  "#0000ff",
			RouteWidth:  3,
		},
		Tiles: TilesConfig{
			URLTemplate:       "https://tile.openstreetmap.org/{z}/{x}/{y}.png",
			UserAgent:         DefaultUserAgent,
			TileSize:          256,
			FetchTimeout:      10 * time.Second,
			Concurrency:       8,
			Retries:           2,
			RetryBackoff:      200 * time.Millisecond,
			RequestsPerSecond: 0, // unlimited
			Burst:             8,
			Breaker: BreakerConfig{
				MinRequests:  10,
				FailureRatio: 0.6,
				OpenTimeout:  30 * time.Second,
				Interval:     time.Minute,
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// The environment is unordered, so the port alias is resolved explicitly.
	if port := os.Getenv(PortEnvVar); port != "" {
		if err := k.Set("server.port", port); err != nil {
			return nil, fmt.Errorf("failed to set server.port: %w", err)
		}
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"server.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// Env vars come in as strings, but the config expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps lowercased environment variable names to koanf paths.
var envMappings = map[string]string{
	// Server
	"static_map_service_port": "server.port",
	"http_port":               "server.port",
	"http_host":               "server.host",
	"http_read_timeout":       "server.read_timeout",
	"http_write_timeout":      "server.write_timeout",
	"http_shutdown_timeout":   "server.shutdown_timeout",
	"cors_origins":            "server.cors_origins",

	// Render
	"render_default_width":     "render.default_width",
	"render_default_height":    "render.default_height",
	"render_max_width":         "render.max_width",
	"render_max_height":        "render.max_height",
	"render_padding":           "render.padding",
	"render_max_zoom":          "render.max_zoom",
	"render_single_point_zoom": "render.single_point_zoom",
	"render_deadline":          "render.deadline",
	"map_attribution":          "render.attribution",

	// Style
	"style_marker_color": "style.marker_color",
	"style_marker_size":  "style.marker_size",
	"style_marker_shape": "style.marker_shape",
	"style_route_color":  "style.route_color",
	"style_route_width":  "style.route_width",

	// Tiles
	"tile_url_template":          "tiles.url_template",
	"tile_user_agent":            "tiles.user_agent",
	"tile_size":                  "tiles.tile_size",
	"tile_fetch_timeout":         "tiles.fetch_timeout",
	"tile_concurrency":           "tiles.concurrency",
	"tile_retries":               "tiles.retries",
	"tile_retry_backoff":         "tiles.retry_backoff",
	"tile_requests_per_second":   "tiles.requests_per_second",
	"tile_burst":                 "tiles.burst",
	"tile_breaker_min_requests":  "tiles.breaker.min_requests",
	"tile_breaker_failure_ratio": "tiles.breaker.failure_ratio",
	"tile_breaker_open_timeout":  "tiles.breaker.open_timeout",
	"tile_breaker_interval":      "tiles.breaker.interval",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - HTTP_PORT -> server.port
//   - TILE_URL_TEMPLATE -> tiles.url_template
//   - LOG_LEVEL -> logging.level
func envTransformFunc(key string) string {
	// Unmapped keys return "" and are skipped so unrelated environment
	// variables never reach the config.
	return envMappings[strings.ToLower(key)]
}
