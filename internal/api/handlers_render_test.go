// Staticmaps - Static Map Rendering Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staticmaps

package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/png"
	"net/http"
	"strings"
	"testing"

	"github.com/tomtom215/staticmaps/internal/geo"
	"github.com/tomtom215/staticmaps/internal/render"
	"github.com/tomtom215/staticmaps/internal/tiles"
	"github.com/tomtom215/staticmaps/internal/validation"
	"github.com/tomtom215/staticmaps/internal/viewport"
)

// ===================================================================================================
// Success Path
// ===================================================================================================

func TestRender_Success(t *testing.T) {
	t.Parallel()

	h := NewHandler(newTestPipeline(solidSource()), nil, "test")
	w := postRender(h.Render, validRenderBody)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("Content-Type = %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); cd != `attachment; filename="map.png"` {
		t.Errorf("Content-Disposition = %q", cd)
	}
	if w.Header().Get(HeaderMapZoom) == "" || w.Header().Get(HeaderMapCenter) == "" {
		t.Errorf("map headers missing: %v", w.Header())
	}
	if got := w.Header().Get(HeaderTilePlaceholders); got != "0" {
		t.Errorf("%s = %q, want 0", HeaderTilePlaceholders, got)
	}
	if w.Header().Get("ETag") == "" {
		t.Error("ETag missing")
	}

	img, err := png.Decode(bytes.NewReader(w.Body.Bytes()))
	if err != nil {
		t.Fatalf("body is not a PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 400 || b.Dy() != 300 {
		t.Errorf("image size = %dx%d, want 400x300", b.Dx(), b.Dy())
	}
}

func TestRender_Headers(t *testing.T) {
	t.Parallel()

	center, err := geo.NewCoordinate(55.75, 37.62)
	if err != nil {
		t.Fatal(err)
	}
	fake := &fakeRenderer{res: &render.Result{
		PNG:      []byte("png-bytes"),
		Viewport: viewport.Viewport{Center: center, Zoom: 6, Width: 10, Height: 10},
		Warnings: []tiles.FetchError{{Address: tiles.NewAddress(1, 2, 6), Err: tiles.ErrTileNotFound}},
	}}
	h := NewHandler(fake, nil, "test")
	w := postRender(h.Render, validRenderBody)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	want := map[string]string{
		HeaderMapZoom:          "6",
		HeaderMapCenter:        "37.620000,55.750000",
		HeaderTilePlaceholders: "1",
		"Content-Length":       "9",
	}
	for k, v := range want {
		if got := w.Header().Get(k); got != v {
			t.Errorf("%s = %q, want %q", k, got, v)
		}
	}
	if w.Body.String() != "png-bytes" {
		t.Errorf("body = %q", w.Body.String())
	}
	if fake.body != validRenderBody {
		t.Error("renderer did not receive the request body unchanged")
	}
}

func TestRender_PlaceholdersStillSucceed(t *testing.T) {
	t.Parallel()

	// A 400x300 canvas spans at least two tile columns and rows, so a
	// checkerboard source mixes good tiles with failures.
	h := NewHandler(newTestPipeline(checkerboardSource()), nil, "test")
	w := postRender(h.Render, validRenderBody)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if got := w.Header().Get(HeaderTilePlaceholders); got == "0" || got == "" {
		t.Errorf("%s = %q, want at least one placeholder", HeaderTilePlaceholders, got)
	}
}

// ===================================================================================================
// Error Mapping
// ===================================================================================================

func TestRender_ErrorMapping(t *testing.T) {
	t.Parallel()

	verr := validation.NewRequestValidationError(
		validation.NewValidationError("width", "max", "4096", 5000, "width must be at most 4096"),
	)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"invalid json", fmt.Errorf("%w: unexpected EOF", render.ErrInvalidJSON), http.StatusBadRequest, CodeInvalidJSON},
		{"validation", fmt.Errorf("%w: %w", render.ErrInvalidInput, verr), http.StatusBadRequest, CodeValidation},
		{"bare invalid input", render.ErrInvalidInput, http.StatusBadRequest, CodeValidation},
		{"tile source", fmt.Errorf("compose: %w", render.ErrTileSourceUnavailable), http.StatusBadGateway, CodeTileSourceUnavailable},
		{"timeout", fmt.Errorf("%w after 30s", render.ErrRenderTimeout), http.StatusGatewayTimeout, CodeRenderTimeout},
		{"canceled", context.Canceled, http.StatusServiceUnavailable, CodeRequestCanceled},
		{"encoding", fmt.Errorf("%w: short write", render.ErrEncoding), http.StatusInternalServerError, CodeInternal},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeRenderer{err: tt.err}, nil, "test")
			w := postRender(h.Render, validRenderBody)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if ct := w.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type = %q", ct)
			}
			resp := decodeEnvelope(t, w.Body)
			if resp.Status != "error" {
				t.Errorf("envelope status = %q", resp.Status)
			}
			if resp.Error == nil || resp.Error.Code != tt.wantCode {
				t.Fatalf("error = %+v, want code %s", resp.Error, tt.wantCode)
			}
			if tt.wantStatus == http.StatusInternalServerError && strings.Contains(resp.Error.Message, "boom") {
				t.Errorf("internal cause leaked to client: %q", resp.Error.Message)
			}
		})
	}
}

func TestRender_ValidationDetails(t *testing.T) {
	t.Parallel()

	h := NewHandler(newTestPipeline(solidSource()), nil, "test")
	w := postRender(h.Render, `{"locations": [[200, 0], [0, 0]], "route": [[0, 0], [1, 1]]}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	resp := decodeEnvelope(t, w.Body)
	if resp.Error == nil || resp.Error.Code != CodeValidation {
		t.Fatalf("error = %+v", resp.Error)
	}
	if resp.Error.Details["field"] != "locations[0]" {
		t.Errorf("details = %v, want field locations[0]", resp.Error.Details)
	}
}

func TestRender_NullCoordinateRejected(t *testing.T) {
	t.Parallel()

	h := NewHandler(newTestPipeline(solidSource()), nil, "test")
	w := postRender(h.Render, `{"locations": [[null, null], [1, 2]], "route": [[1, 2], [3, 4]]}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	resp := decodeEnvelope(t, w.Body)
	if resp.Error == nil || resp.Error.Code != CodeValidation {
		t.Fatalf("error = %+v", resp.Error)
	}
	if resp.Error.Details["field"] != "locations[0]" || resp.Error.Details["tag"] != "lonlat" {
		t.Errorf("details = %v, want lonlat at locations[0]", resp.Error.Details)
	}
}

func TestRender_InvalidJSON(t *testing.T) {
	t.Parallel()

	h := NewHandler(newTestPipeline(solidSource()), nil, "test")
	w := postRender(h.Render, `{"locations": [[1, 2]`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	if resp := decodeEnvelope(t, w.Body); resp.Error == nil || resp.Error.Code != CodeInvalidJSON {
		t.Errorf("error = %+v", resp.Error)
	}
}

func TestRender_TileSourceUnavailable(t *testing.T) {
	t.Parallel()

	h := NewHandler(newTestPipeline(failingSource()), nil, "test")
	w := postRender(h.Render, validRenderBody)

	if w.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
}

func TestRender_BodyTooLarge(t *testing.T) {
	t.Parallel()

	fake := &fakeRenderer{}
	h := NewHandler(fake, nil, "test")
	w := postRender(h.Render, `{"pad": "`+strings.Repeat("x", MaxRequestBodyBytes)+`"}`)

	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d", w.Code)
	}
	resp := decodeEnvelope(t, w.Body)
	if resp.Error == nil || resp.Error.Code != CodeRequestTooLarge {
		t.Errorf("error = %+v", resp.Error)
	}
	if fake.body != "" {
		t.Error("renderer should not be called for an oversized body")
	}
}
