// Staticmaps - Static Map Rendering Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staticmaps

package api

import (
	"context"
	"io"
	"time"

	"github.com/tomtom215/staticmaps/internal/render"
)

// MaxRequestBodyBytes caps the size of a render request body.
const MaxRequestBodyBytes = 1 << 20

// Renderer turns a JSON render request into a PNG.
// *render.Pipeline satisfies it.
type Renderer interface {
	RenderJSON(ctx context.Context, r io.Reader) (*render.Result, error)
}

// ReadinessChecker reports whether the tile source is accepting traffic.
// *tiles.BreakerSource satisfies it.
type ReadinessChecker interface {
	Available() bool
	State() string
}

// Handler serves the HTTP endpoints.
type Handler struct {
	renderer  Renderer
	tiles     ReadinessChecker
	version   string
	startTime time.Time
}

// NewHandler creates a handler. tiles may be nil, in which case readiness
// only reflects that the process is up.
func NewHandler(renderer Renderer, tiles ReadinessChecker, version string) *Handler {
	return &Handler{
		renderer:  renderer,
		tiles:     tiles,
		version:   version,
		startTime: time.Now(),
	}
}
