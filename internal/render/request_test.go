// Staticmaps - Static Map Rendering Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staticmaps

package render

import (
	"errors"
	"testing"

	"github.com/tomtom215/staticmaps/internal/geo"
	"github.com/tomtom215/staticmaps/internal/models"
	"github.com/tomtom215/staticmaps/internal/overlay"
)

func intPtr(v int) *int { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestNewRequest_Defaults(t *testing.T) {
	t.Parallel()

	body := models.RenderRequestBody{
		Locations: []models.Position{{37.6, 55.7}, {30.3, 59.9}},
		Route:     []models.Position{{37.6, 55.7}, {34.0, 57.0}, {30.3, 59.9}},
	}
	req, err := NewRequest(body, DefaultDefaults())
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}

	if req.Width != DefaultWidth || req.Height != DefaultHeight {
		t.Errorf("size = %dx%d, want %dx%d", req.Width, req.Height, DefaultWidth, DefaultHeight)
	}
	if len(req.Markers) != 2 || len(req.Route.Points) != 3 {
		t.Fatalf("got %d markers and %d route points", len(req.Markers), len(req.Route.Points))
	}
	if m := req.Markers[0]; m.Position.Lat() != 55.7 || m.Position.Lon() != 37.6 {
		t.Errorf("marker 0 at %v, want lat 55.7 lon 37.6", m.Position)
	}
	if m := req.Markers[1]; m.Color != overlay.DefaultMarkerColor || m.Size != overlay.DefaultMarkerSize || m.Shape != overlay.ShapePin {
		t.Errorf("marker defaults = %+v", m)
	}
	if req.Route.Color != overlay.DefaultRouteColor || req.Route.Width != overlay.DefaultRouteWidth {
		t.Errorf("route defaults = %+v", req.Route)
	}
}

func TestNewRequest_StyleAndSize(t *testing.T) {
	t.Parallel()

	body := models.RenderRequestBody{
		Locations: []models.Position{{1, 2}, {3, 4}},
		Route:     []models.Position{{1, 2}, {3, 4}},
		Width:     intPtr(320),
		Height:    intPtr(240),
		Style: &models.Style{
			MarkerColor: "#ff0000",
			MarkerSize:  floatPtr(14),
			MarkerShape: "circle",
			RouteColor:  "#00ff0080",
			RouteWidth:  floatPtr(5),
		},
	}
	req, err := NewRequest(body, DefaultDefaults())
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	if req.Width != 320 || req.Height != 240 {
		t.Errorf("size = %dx%d, want 320x240", req.Width, req.Height)
	}
	m := req.Markers[0]
	if m.Color != overlay.MustParseHexColor("#ff0000") || m.Size != 14 || m.Shape != overlay.ShapeCircle {
		t.Errorf("marker style = %+v", m)
	}
	if req.Route.Color != overlay.MustParseHexColor("#00ff0080") || req.Route.Width != 5 {
		t.Errorf("route style = %+v", req.Route)
	}
}

func TestNewRequest_RejectsBadPositions(t *testing.T) {
	t.Parallel()

	body := models.RenderRequestBody{
		Locations: []models.Position{{1, 2}, {1, 2, 3}},
		Route:     []models.Position{{1, 2}, {0, 100}},
	}
	_, err := NewRequest(body, DefaultDefaults())
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("error = %v, want ErrInvalidInput", err)
	}
	verr, _ := ValidationErrors(err)
	if verr == nil || len(verr.Errors()) != 2 {
		t.Fatalf("want 2 field errors, got %v", verr)
	}
	if f := verr.Errors()[0].Field(); f != "locations[1]" {
		t.Errorf("first field = %q, want locations[1]", f)
	}
	if f := verr.Errors()[1].Field(); f != "route[1]" {
		t.Errorf("second field = %q, want route[1]", f)
	}
}

func TestRenderRequest_OrderHelpers(t *testing.T) {
	t.Parallel()

	a, b, c := geo.MustCoordinate(1, 1), geo.MustCoordinate(2, 2), geo.MustCoordinate(3, 3)
	req := RenderRequest{
		Markers: []overlay.Marker{{Position: a}, {Position: b}},
		Route:   overlay.Polyline{Points: []geo.Coordinate{c, a}},
	}

	coords := req.Coordinates()
	want := []geo.Coordinate{a, b, c, a}
	if len(coords) != len(want) {
		t.Fatalf("len(Coordinates) = %d, want %d", len(coords), len(want))
	}
	for i := range want {
		if coords[i] != want[i] {
			t.Errorf("Coordinates[%d] = %v, want %v", i, coords[i], want[i])
		}
	}

	objects := req.Objects()
	if len(objects) != 3 {
		t.Fatalf("len(Objects) = %d, want 3", len(objects))
	}
	if m, ok := objects[1].(overlay.Marker); !ok || m.Position != b {
		t.Errorf("Objects[1] = %#v, want second marker", objects[1])
	}
	if _, ok := objects[2].(overlay.Polyline); !ok {
		t.Errorf("route must be drawn last, got %T", objects[2])
	}
}

func TestRenderRequest_ValidateLimits(t *testing.T) {
	t.Parallel()

	base := RenderRequest{
		Markers: []overlay.Marker{{}, {}},
		Route:   overlay.Polyline{Points: []geo.Coordinate{{}, {}}},
	}
	tests := []struct {
		name    string
		w, h    int
		wantErr bool
	}{
		{"within limits", 800, 600, false},
		{"at limit", DefaultMaxWidth, DefaultMaxHeight, false},
		{"too wide", DefaultMaxWidth + 1, 600, true},
		{"too tall", 800, DefaultMaxHeight + 1, true},
		{"negative", -1, 600, true},
	}
	for _, tt := range tests {
		req := base
		req.Width, req.Height = tt.w, tt.h
		err := req.Validate(DefaultLimits())
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: Validate() = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
	}
}
