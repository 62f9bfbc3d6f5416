// Staticmaps - Static Map Rendering Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staticmaps

package viewport

import (
	"fmt"
	"image"
	"math"

	"github.com/tomtom215/staticmaps/internal/geo"
	"github.com/tomtom215/staticmaps/internal/projection"
)

// Viewport is what a rendered canvas shows: a geographic center, an integer
// zoom and the canvas size in pixels. It is computed once per render and
// shared read-only by the compositor and the overlay renderer.
type Viewport struct {
	Center geo.Coordinate
	Zoom   int
	Width  int
	Height int
}

// Origin returns the world pixel position of the canvas top-left corner.
// It is rounded to whole pixels so that tiles land on integer offsets and
// overlays share exactly the same alignment.
func (v Viewport) Origin(p projection.Projector) image.Point {
	cx, cy := p.Project(v.Center, v.Zoom)
	return image.Point{
		X: int(math.Round(cx - float64(v.Width)/2)),
		Y: int(math.Round(cy - float64(v.Height)/2)),
	}
}

// ToCanvas projects c into canvas pixel space. Of the horizontal copies of
// the world, the one closest to the center is used, so a route crossing the
// antimeridian is drawn as one continuous line.
func (v Viewport) ToCanvas(p projection.Projector, c geo.Coordinate) (x, y float64) {
	ws := p.WorldSize(v.Zoom)
	cx, _ := p.Project(v.Center, v.Zoom)
	wx, wy := p.Project(c, v.Zoom)

	dx := wx - cx
	dx -= ws * math.Round(dx/ws)

	o := v.Origin(p)
	return cx + dx - float64(o.X), wy - float64(o.Y)
}

// Bounds returns the canvas rectangle.
func (v Viewport) Bounds() image.Rectangle {
	return image.Rect(0, 0, v.Width, v.Height)
}

func (v Viewport) String() string {
	return fmt.Sprintf("%s z%d %dx%d", v.Center, v.Zoom, v.Width, v.Height)
}
