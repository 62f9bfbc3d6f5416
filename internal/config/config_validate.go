// Staticmaps - Static Map Rendering Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staticmaps

package config

import (
	"errors"
	"fmt"

	"github.com/tomtom215/staticmaps/internal/logging"
	"github.com/tomtom215/staticmaps/internal/overlay"
	"github.com/tomtom215/staticmaps/internal/tiles"
)

// MaxZoomLimit is the deepest zoom any common tile server offers.
const MaxZoomLimit = 22

// Validate checks that the configuration is consistent. All problems are
// reported together.
func (c *Config) Validate() error {
	return errors.Join(
		c.validateServer(),
		c.validateRender(),
		c.validateStyle(),
		c.validateTiles(),
		c.validateLogging(),
	)
}

// validateServer validates server configuration
func (c *Config) validateServer() error {
	var errs []error
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("%s must be between 1 and 65535, got %d", PortEnvVar, c.Server.Port))
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 {
		errs = append(errs, errors.New("HTTP_READ_TIMEOUT and HTTP_WRITE_TIMEOUT must be positive"))
	}
	if c.Server.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("HTTP_SHUTDOWN_TIMEOUT must be positive"))
	}
	return errors.Join(errs...)
}

func (c *Config) validateRender() error {
	r := c.Render
	var errs []error
	if r.DefaultWidth < 1 || r.DefaultHeight < 1 {
		errs = append(errs, fmt.Errorf("render default size must be positive, got %dx%d", r.DefaultWidth, r.DefaultHeight))
	}
	if r.MaxWidth < 1 || r.MaxHeight < 1 {
		errs = append(errs, fmt.Errorf("render max size must be positive, got %dx%d", r.MaxWidth, r.MaxHeight))
	}
	if r.DefaultWidth > r.MaxWidth || r.DefaultHeight > r.MaxHeight {
		errs = append(errs, fmt.Errorf("render default size %dx%d exceeds max %dx%d",
			r.DefaultWidth, r.DefaultHeight, r.MaxWidth, r.MaxHeight))
	}
	if r.Padding < 0 {
		errs = append(errs, fmt.Errorf("RENDER_PADDING must not be negative, got %d", r.Padding))
	}
	if r.MaxZoom < 0 || r.MaxZoom > MaxZoomLimit {
		errs = append(errs, fmt.Errorf("RENDER_MAX_ZOOM must be between 0 and %d, got %d", MaxZoomLimit, r.MaxZoom))
	}
	if r.SinglePointZoom < 0 || r.SinglePointZoom > r.MaxZoom {
		errs = append(errs, fmt.Errorf("RENDER_SINGLE_POINT_ZOOM must be between 0 and max zoom %d, got %d", r.MaxZoom, r.SinglePointZoom))
	}
	if r.Deadline <= 0 {
		errs = append(errs, errors.New("RENDER_DEADLINE must be positive"))
	}
	return errors.Join(errs...)
}

func (c *Config) validateStyle() error {
	s := c.Style
	var errs []error
	if _, err := overlay.ParseHexColor(s.MarkerColor); err != nil {
		errs = append(errs, fmt.Errorf("STYLE_MARKER_COLOR: %w", err))
	}
	if _, err := overlay.ParseHexColor(s.RouteColor); err != nil {
		errs = append(errs, fmt.Errorf("STYLE_ROUTE_COLOR: %w", err))
	}
	if s.MarkerSize <= 0 || s.RouteWidth <= 0 {
		errs = append(errs, errors.New("STYLE_MARKER_SIZE and STYLE_ROUTE_WIDTH must be positive"))
	}
	switch overlay.Shape(s.MarkerShape) {
	case overlay.ShapePin, overlay.ShapeCircle:
	default:
		errs = append(errs, fmt.Errorf("STYLE_MARKER_SHAPE must be one of: pin, circle, got %q", s.MarkerShape))
	}
	return errors.Join(errs...)
}

func (c *Config) validateTiles() error {
	t := c.Tiles
	var errs []error
	if _, err := tiles.ParseTemplate(t.URLTemplate); err != nil {
		errs = append(errs, fmt.Errorf("TILE_URL_TEMPLATE: %w", err))
	}
	if t.TileSize < 1 {
		errs = append(errs, fmt.Errorf("TILE_SIZE must be positive, got %d", t.TileSize))
	}
	if t.FetchTimeout <= 0 {
		errs = append(errs, errors.New("TILE_FETCH_TIMEOUT must be positive"))
	}
	if t.Concurrency < 1 {
		errs = append(errs, fmt.Errorf("TILE_CONCURRENCY must be positive, got %d", t.Concurrency))
	}
	if t.Retries < 0 || t.RetryBackoff < 0 {
		errs = append(errs, errors.New("TILE_RETRIES and TILE_RETRY_BACKOFF must not be negative"))
	}
	if t.RequestsPerSecond < 0 {
		errs = append(errs, errors.New("TILE_REQUESTS_PER_SECOND must not be negative"))
	}
	if t.Breaker.FailureRatio <= 0 || t.Breaker.FailureRatio > 1 {
		errs = append(errs, fmt.Errorf("TILE_BREAKER_FAILURE_RATIO must be in (0, 1], got %v", t.Breaker.FailureRatio))
	}
	if t.Breaker.OpenTimeout <= 0 {
		errs = append(errs, errors.New("TILE_BREAKER_OPEN_TIMEOUT must be positive"))
	}
	return errors.Join(errs...)
}

// validateLogging validates logging configuration
func (c *Config) validateLogging() error {
	var errs []error
	if !logging.ValidLevel(c.Logging.Level) {
		errs = append(errs, fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error, got %q", c.Logging.Level))
	}
	if c.Logging.Format != "" && !logging.ValidFormat(c.Logging.Format) {
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be one of: json, console, got %q", c.Logging.Format))
	}
	return errors.Join(errs...)
}
