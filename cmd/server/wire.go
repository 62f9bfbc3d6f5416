// Staticmaps - Static Map Rendering Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staticmaps

package main

import (
	"fmt"
	"net/http"

	"github.com/tomtom215/staticmaps/internal/api"
	"github.com/tomtom215/staticmaps/internal/config"
	"github.com/tomtom215/staticmaps/internal/overlay"
	"github.com/tomtom215/staticmaps/internal/projection"
	"github.com/tomtom215/staticmaps/internal/render"
	"github.com/tomtom215/staticmaps/internal/tiles"
	"github.com/tomtom215/staticmaps/internal/viewport"
)

// app holds the wired components of one server instance.
type app struct {
	pipeline *render.Pipeline
	tiles    *tiles.BreakerSource
	handler  http.Handler
	server   *http.Server
}

// newApp builds every component from a validated configuration. It does
// no I/O; the tile server is first contacted by a render.
func newApp(cfg *config.Config, source tiles.Source) (*app, error) {
	if source == nil {
		tmpl, err := tiles.ParseTemplate(cfg.Tiles.URLTemplate)
		if err != nil {
			return nil, fmt.Errorf("tile url template: %w", err)
		}
		source = tiles.NewHTTPSource(tiles.HTTPConfig{
			Template:          tmpl,
			UserAgent:         cfg.Tiles.UserAgent,
			Timeout:           cfg.Tiles.FetchTimeout,
			Retries:           cfg.Tiles.Retries,
			RetryBackoff:      cfg.Tiles.RetryBackoff,
			RequestsPerSecond: cfg.Tiles.RequestsPerSecond,
			Burst:             cfg.Tiles.Burst,
		})
	}

	breakerCfg := tiles.DefaultBreakerConfig()
	breakerCfg.MinRequests = cfg.Tiles.Breaker.MinRequests
	breakerCfg.FailureRatio = cfg.Tiles.Breaker.FailureRatio
	breakerCfg.OpenTimeout = cfg.Tiles.Breaker.OpenTimeout
	breakerCfg.Interval = cfg.Tiles.Breaker.Interval
	breaker := tiles.NewBreakerSource(source, breakerCfg)

	proj := projection.NewWebMercator(cfg.Tiles.TileSize)

	fitter := viewport.NewFitter(proj)
	fitter.Padding = cfg.Render.Padding
	fitter.MaxZoom = cfg.Render.MaxZoom
	fitter.SinglePointZoom = cfg.Render.SinglePointZoom

	defaults, err := styleDefaults(cfg)
	if err != nil {
		return nil, err
	}

	pipeline := &render.Pipeline{
		Fitter: fitter,
		Compositor: &tiles.Compositor{
			Source:       breaker,
			Projector:    proj,
			Concurrency:  cfg.Tiles.Concurrency,
			FetchTimeout: cfg.Tiles.FetchTimeout,
		},
		Renderer: &overlay.Renderer{Projector: proj, Attribution: cfg.Render.Attribution},
		Defaults: defaults,
		Limits:   render.Limits{MaxWidth: cfg.Render.MaxWidth, MaxHeight: cfg.Render.MaxHeight},
		Deadline: cfg.Render.Deadline,
	}

	mwCfg := api.DefaultChiMiddlewareConfig()
	if len(cfg.Server.CORSOrigins) > 0 {
		mwCfg.CORSAllowedOrigins = cfg.Server.CORSOrigins
	}
	router := api.NewRouter(api.NewHandler(pipeline, breaker, version), api.NewChiMiddleware(mwCfg))
	handler := router.Setup()

	return &app{
		pipeline: pipeline,
		tiles:    breaker,
		handler:  handler,
		server: &http.Server{
			Addr:              cfg.Server.Addr(),
			Handler:           handler,
			ReadTimeout:       cfg.Server.ReadTimeout,
			ReadHeaderTimeout: cfg.Server.ReadTimeout,
			WriteTimeout:      cfg.Server.WriteTimeout,
		},
	}, nil
}

func styleDefaults(cfg *config.Config) (render.Defaults, error) {
	markerColor, err := overlay.ParseHexColor(cfg.Style.MarkerColor)
	if err != nil {
		return render.Defaults{}, fmt.Errorf("style marker color: %w", err)
	}
	routeColor, err := overlay.ParseHexColor(cfg.Style.RouteColor)
	if err != nil {
		return render.Defaults{}, fmt.Errorf("style route color: %w", err)
	}
	return render.Defaults{
		Width:       cfg.Render.DefaultWidth,
		Height:      cfg.Render.DefaultHeight,
		MarkerColor: markerColor,
		MarkerSize:  cfg.Style.MarkerSize,
		MarkerShape: overlay.Shape(cfg.Style.MarkerShape),
		RouteColor:  routeColor,
		RouteWidth:  cfg.Style.RouteWidth,
	}, nil
}
