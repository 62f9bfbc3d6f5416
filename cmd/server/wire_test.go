// Staticmaps - Static Map Rendering Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staticmaps

package main

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tomtom215/staticmaps/internal/config"
	"github.com/tomtom215/staticmaps/internal/tiles"
)

func loadTestConfig(t *testing.T) *config.Config {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv(config.ConfigPathEnvVar, "")
	cfg, err := config.LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	return cfg
}

func greySource() tiles.Source {
	return tiles.SourceFunc(func(_ context.Context, _ tiles.Address) (image.Image, error) {
		return image.NewUniform(color.Gray{Y: 200}), nil
	})
}

func TestNewApp_Defaults(t *testing.T) {
	cfg := loadTestConfig(t)

	a, err := newApp(cfg, nil)
	if err != nil {
		t.Fatalf("newApp() error = %v", err)
	}
	if a.server.Addr != cfg.Server.Addr() {
		t.Errorf("server addr = %q, want %q", a.server.Addr, cfg.Server.Addr())
	}
	if a.server.WriteTimeout != cfg.Server.WriteTimeout {
		t.Errorf("write timeout = %v", a.server.WriteTimeout)
	}
	if a.pipeline.Limits.MaxWidth != cfg.Render.MaxWidth {
		t.Errorf("max width = %d", a.pipeline.Limits.MaxWidth)
	}
	if a.pipeline.Defaults.Width != cfg.Render.DefaultWidth {
		t.Errorf("default width = %d", a.pipeline.Defaults.Width)
	}
	if a.pipeline.Fitter.MaxZoom != cfg.Render.MaxZoom {
		t.Errorf("max zoom = %d", a.pipeline.Fitter.MaxZoom)
	}
	if !a.tiles.Available() {
		t.Error("tile breaker should start closed")
	}
}

func TestNewApp_InvalidStyle(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"marker color", func(c *config.Config) { c.Style.MarkerColor = "blue" }, "marker color"},
		{"route color", func(c *config.Config) { c.Style.RouteColor = "#12" }, "route color"},
		{"template", func(c *config.Config) { c.Tiles.URLTemplate = "https://tiles.example/{z}.png" }, "template"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := loadTestConfig(t)
			tt.mutate(cfg)
			_, err := newApp(cfg, nil)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("newApp() error = %v, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestNewApp_RendersEndToEnd(t *testing.T) {
	cfg := loadTestConfig(t)

	a, err := newApp(cfg, greySource())
	if err != nil {
		t.Fatalf("newApp() error = %v", err)
	}

	body := `{"locations":[[13.38,52.52],[13.40,52.51]],"route":[[13.38,52.52],[13.40,52.51]],"width":320,"height":200}`
	req := httptest.NewRequest(http.MethodPost, "/render", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	a.handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("Content-Type = %q", ct)
	}
	img, err := png.Decode(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 320 || b.Dy() != 200 {
		t.Errorf("image size = %dx%d, want 320x200", b.Dx(), b.Dy())
	}
}
