// Staticmaps - Static Map Rendering Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staticmaps

package viewport

import (
	"errors"
	"fmt"
	"math"

	"github.com/tomtom215/staticmaps/internal/geo"
	"github.com/tomtom215/staticmaps/internal/projection"
)

// Default fitting parameters.
const (
	DefaultPadding         = 20
	DefaultMaxZoom         = 20
	DefaultSinglePointZoom = 15
)

// ErrInvalidSize is returned for a non-positive canvas size.
var ErrInvalidSize = errors.New("canvas width and height must be positive")

// Fitter chooses the zoom and center that show a set of coordinates.
type Fitter struct {
	Projector projection.Projector

	// Padding is the margin in pixels kept free on every side.
	Padding int

	// MaxZoom is the highest zoom Fit may return.
	MaxZoom int

	// SinglePointZoom is used when every coordinate is the same position,
	// where any zoom would fit. It is capped at MaxZoom.
	SinglePointZoom int
}

// NewFitter returns a Fitter with the default padding and zoom limits.
func NewFitter(p projection.Projector) *Fitter {
	return &Fitter{
		Projector:       p,
		Padding:         DefaultPadding,
		MaxZoom:         DefaultMaxZoom,
		SinglePointZoom: DefaultSinglePointZoom,
	}
}

// Fit returns the highest zoom at which every coordinate, projected onto a
// width x height canvas, lies inside the padded area. The center is the
// midpoint of the coordinates' bounding box in pixel space. When even zoom 0
// is too small the result is clamped to zoom 0.
func (f *Fitter) Fit(coords []geo.Coordinate, width, height int) (Viewport, error) {
	if width <= 0 || height <= 0 {
		return Viewport{}, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	bounds, err := geo.BoundsOf(coords)
	if err != nil {
		return Viewport{}, err
	}

	maxZoom := max(f.MaxZoom, 0)

	// Distinct coordinates poleward of the clamp latitude can still land on
	// one pixel, so degeneracy is judged after projection.
	if spanX, spanY := f.span(bounds, 0); bounds.IsPoint() || (spanX == 0 && spanY == 0) {
		zoom := min(max(f.SinglePointZoom, 0), maxZoom)
		x, y := f.Projector.Project(coords[0], zoom)
		return Viewport{
			Center: f.Projector.Unproject(x, y, zoom),
			Zoom:   zoom,
			Width:  width,
			Height: height,
		}, nil
	}

	// One pixel of slack absorbs the rounding of the canvas origin.
	availX := float64(width - 2*effectivePadding(f.Padding, width) - 1)
	availY := float64(height - 2*effectivePadding(f.Padding, height) - 1)

	zoom := 0
	for z := maxZoom; z >= 0; z-- {
		spanX, spanY := f.span(bounds, z)
		if spanX <= availX && spanY <= availY {
			zoom = z
			break
		}
	}

	return Viewport{
		Center: f.center(bounds, zoom),
		Zoom:   zoom,
		Width:  width,
		Height: height,
	}, nil
}

// span returns the pixel extent of b at zoom.
func (f *Fitter) span(b geo.Bounds, zoom int) (float64, float64) {
	west, north, east, south := f.corners(b, zoom)
	return east - west, south - north
}

func (f *Fitter) center(b geo.Bounds, zoom int) geo.Coordinate {
	west, north, east, south := f.corners(b, zoom)
	ws := f.Projector.WorldSize(zoom)
	mx := math.Mod((west+east)/2, ws)
	my := (north + south) / 2
	return f.Projector.Unproject(mx, my, zoom)
}

// corners projects the box edges. When the box crosses the antimeridian the
// east edge is moved one world to the right so east >= west.
func (f *Fitter) corners(b geo.Bounds, zoom int) (west, north, east, south float64) {
	nw := geo.Normalized(b.North(), b.West())
	se := geo.Normalized(b.South(), b.East())
	west, north = f.Projector.Project(nw, zoom)
	east, south = f.Projector.Project(se, zoom)
	if b.CrossesAntimeridian() || east < west {
		east += f.Projector.WorldSize(zoom)
	}
	return west, north, east, south
}

// effectivePadding shrinks padding on an axis too small to hold it.
func effectivePadding(padding, dim int) int {
	padding = max(padding, 0)
	if dim-2*padding-1 < 0 {
		return (dim - 1) / 2
	}
	return padding
}
