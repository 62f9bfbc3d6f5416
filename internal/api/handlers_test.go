// Staticmaps - Static Map Rendering Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staticmaps

package api

import (
	"context"
	"image"
	"image/color"
	"image/draw"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/staticmaps/internal/models"
	"github.com/tomtom215/staticmaps/internal/overlay"
	"github.com/tomtom215/staticmaps/internal/projection"
	"github.com/tomtom215/staticmaps/internal/render"
	"github.com/tomtom215/staticmaps/internal/tiles"
	"github.com/tomtom215/staticmaps/internal/viewport"
)

// ===================================================================================================
// Test Fixtures
// ===================================================================================================

const validRenderBody = `{
	"locations": [[37.618423, 55.751244], [30.315868, 59.939095]],
	"route": [[37.618423, 55.751244], [33.0, 57.5], [30.315868, 59.939095]],
	"width": 400,
	"height": 300
}`

// fakeRenderer returns a fixed result or error.
type fakeRenderer struct {
	res  *render.Result
	err  error
	body string
}

func (f *fakeRenderer) RenderJSON(_ context.Context, r io.Reader) (*render.Result, error) {
	data, _ := io.ReadAll(r)
	f.body = string(data)
	return f.res, f.err
}

// fakeReadiness reports a fixed breaker state.
type fakeReadiness struct {
	available bool
	state     string
}

func (f fakeReadiness) Available() bool { return f.available }
func (f fakeReadiness) State() string   { return f.state }

// newTestPipeline builds a real pipeline over an in-memory tile source.
func newTestPipeline(src tiles.Source) *render.Pipeline {
	proj := projection.NewWebMercator(256)
	return &render.Pipeline{
		Fitter: viewport.NewFitter(proj),
		Compositor: &tiles.Compositor{
			Source:       src,
			Projector:    proj,
			Concurrency:  4,
			FetchTimeout: time.Second,
		},
		Renderer: &overlay.Renderer{Projector: proj},
		Defaults: render.DefaultDefaults(),
		Limits:   render.DefaultLimits(),
		Deadline: 5 * time.Second,
	}
}

func solidSource() tiles.Source {
	tile := image.NewRGBA(image.Rect(0, 0, 256, 256))
	draw.Draw(tile, tile.Bounds(), image.NewUniform(color.RGBA{R: 200, G: 220, B: 200, A: 255}), image.Point{}, draw.Src)
	return tiles.SourceFunc(func(ctx context.Context, a tiles.Address) (image.Image, error) {
		return tile, nil
	})
}

func failingSource() tiles.Source {
	return tiles.SourceFunc(func(ctx context.Context, a tiles.Address) (image.Image, error) {
		return nil, tiles.ErrTileNotFound
	})
}

// checkerboardSource fails every tile whose x+y is even.
func checkerboardSource() tiles.Source {
	good := solidSource()
	return tiles.SourceFunc(func(ctx context.Context, a tiles.Address) (image.Image, error) {
		if (a.X+a.Y)%2 == 0 {
			return nil, tiles.ErrTileNotFound
		}
		return good.Fetch(ctx, a)
	})
}

func decodeEnvelope(t *testing.T, body io.Reader) models.APIResponse {
	t.Helper()
	var resp models.APIResponse
	if err := json.NewDecoder(body).Decode(&resp); err != nil {
		t.Fatalf("response is not a JSON envelope: %v", err)
	}
	return resp
}

func postRender(h http.HandlerFunc, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/render", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h(w, req)
	return w
}
