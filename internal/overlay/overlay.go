// Staticmaps - Static Map Rendering Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staticmaps

package overlay

import (
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"

	"github.com/tomtom215/staticmaps/internal/geo"
	"github.com/tomtom215/staticmaps/internal/projection"
	"github.com/tomtom215/staticmaps/internal/viewport"
)

// Defaults matching the original service: blue pins of size 10 and a blue
// route three pixels wide.
var (
	DefaultMarkerColor = color.RGBA{B: 0xff, A: 0xff}
	DefaultRouteColor  = color.RGBA{B: 0xff, A: 0xff}
	OutlineColor       = color.RGBA{A: 0xff}
)

const (
	DefaultMarkerSize = 10.0
	DefaultRouteWidth = 3.0
)

// Shape selects how a marker is drawn.
type Shape string

const (
	// ShapePin is a round head over a point whose tip sits on the position.
	ShapePin Shape = "pin"

	// ShapeCircle is a disc centered on the position.
	ShapeCircle Shape = "circle"
)

// Object is something drawn over the basemap.
type Object interface {
	Draw(dc *gg.Context, vp viewport.Viewport, p projection.Projector)
}

// Marker is a fixed pixel size symbol anchored at a position.
type Marker struct {
	Position geo.Coordinate
	Color    color.Color
	Size     float64
	Shape    Shape
}

// Anchor returns where the marker's position lands on the canvas.
func (m Marker) Anchor(vp viewport.Viewport, p projection.Projector) (x, y float64) {
	return vp.ToCanvas(p, m.Position)
}

// HeadCenter returns the center of the filled part of the marker on the
// canvas: the pin head, or the circle itself.
func (m Marker) HeadCenter(vp viewport.Viewport, p projection.Projector) (x, y float64) {
	x, y = m.Anchor(vp, p)
	if m.shape() == ShapePin {
		y -= m.size()
	}
	return x, y
}

// Draw paints the marker with a one pixel outline.
func (m Marker) Draw(dc *gg.Context, vp viewport.Viewport, p projection.Projector) {
	x, y := m.Anchor(vp, p)
	size := m.size()
	radius := size / 2

	dc.NewSubPath()
	switch m.shape() {
	case ShapeCircle:
		dc.DrawCircle(x, y, radius)
	default:
		// Tangents from the tip meet the head 60° either side of vertical.
		dc.DrawArc(x, y-size, radius, (90+60)*math.Pi/180, (360+90-60)*math.Pi/180)
		dc.LineTo(x, y)
		dc.ClosePath()
	}

	dc.SetLineJoin(gg.LineJoinRound)
	dc.SetLineWidth(1)
	dc.SetColor(colorOr(m.Color, DefaultMarkerColor))
	dc.FillPreserve()
	dc.SetColor(OutlineColor)
	dc.Stroke()
}

func (m Marker) size() float64 {
	if m.Size <= 0 {
		return DefaultMarkerSize
	}
	return m.Size
}

func (m Marker) shape() Shape {
	if m.Shape == "" {
		return ShapePin
	}
	return m.Shape
}

// Polyline is an ordered path of straight segments.
type Polyline struct {
	Points []geo.Coordinate
	Color  color.Color
	Width  float64
}

// Draw strokes the path with round caps and joins. Fewer than two points
// draw nothing.
func (l Polyline) Draw(dc *gg.Context, vp viewport.Viewport, p projection.Projector) {
	if len(l.Points) < 2 {
		return
	}
	width := l.Width
	if width <= 0 {
		width = DefaultRouteWidth
	}

	dc.NewSubPath()
	for i, pt := range l.Points {
		x, y := vp.ToCanvas(p, pt)
		if i == 0 {
			dc.MoveTo(x, y)
			continue
		}
		dc.LineTo(x, y)
	}
	dc.SetLineCap(gg.LineCapRound)
	dc.SetLineJoin(gg.LineJoinRound)
	dc.SetLineWidth(width)
	dc.SetColor(colorOr(l.Color, DefaultRouteColor))
	dc.Stroke()
}

// Renderer draws overlay objects onto a composited canvas.
type Renderer struct {
	Projector projection.Projector

	// Attribution is drawn in the bottom-right corner after every object.
	// Empty disables it.
	Attribution string
}

// Draw paints objects onto canvas in slice order, so later objects cover
// earlier ones. canvas is modified in place.
func (r *Renderer) Draw(canvas *image.RGBA, vp viewport.Viewport, objects []Object) {
	dc := gg.NewContextForRGBA(canvas)
	for _, o := range objects {
		o.Draw(dc, vp, r.Projector)
		dc.ClearPath()
	}
	if r.Attribution != "" {
		drawAttribution(dc, r.Attribution)
	}
}

func colorOr(c, fallback color.Color) color.Color {
	if c == nil {
		return fallback
	}
	return c
}
