// Staticmaps - Static Map Rendering Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staticmaps

package overlay

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"testing"

	"github.com/tomtom215/staticmaps/internal/geo"
	"github.com/tomtom215/staticmaps/internal/projection"
	"github.com/tomtom215/staticmaps/internal/viewport"
)

var (
	red   = color.RGBA{R: 0xff, A: 0xff}
	green = color.RGBA{G: 0xff, A: 0xff}
	white = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

func newCanvas(w, h int) *image.RGBA {
	return newFilledCanvas(w, h, white)
}

func newFilledCanvas(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

func testSetup() (viewport.Viewport, projection.Projector) {
	return viewport.Viewport{Center: geo.MustCoordinate(0, 0), Zoom: 10, Width: 200, Height: 200},
		projection.NewWebMercator(256)
}

func pixelAt(img *image.RGBA, x, y float64) color.RGBA {
	return img.RGBAAt(int(math.Floor(x)), int(math.Floor(y)))
}

func TestLaterMarkerCoversEarlier(t *testing.T) {
	t.Parallel()

	vp, p := testSetup()
	pos := geo.MustCoordinate(0.01, 0.01)
	first := Marker{Position: pos, Color: red, Size: 16}
	second := Marker{Position: pos, Color: green, Size: 16}

	for _, shape := range []Shape{ShapePin, ShapeCircle} {
		first.Shape, second.Shape = shape, shape
		canvas := newCanvas(vp.Width, vp.Height)
		r := &Renderer{Projector: p}
		r.Draw(canvas, vp, []Object{first, second})

		x, y := second.HeadCenter(vp, p)
		if got := pixelAt(canvas, x, y); got != green {
			t.Errorf("%s: pixel at shared position = %v, want second marker %v", shape, got, green)
		}

		canvas = newCanvas(vp.Width, vp.Height)
		r.Draw(canvas, vp, []Object{second, first})
		if got := pixelAt(canvas, x, y); got != red {
			t.Errorf("%s: reversed order pixel = %v, want %v", shape, got, red)
		}
	}
}

func TestRouteDrawnOverMarkers(t *testing.T) {
	t.Parallel()

	vp, p := testSetup()
	m := Marker{Position: geo.MustCoordinate(0, 0), Color: red, Size: 20, Shape: ShapeCircle}
	route := Polyline{
		Points: []geo.Coordinate{geo.MustCoordinate(0, -0.05), geo.MustCoordinate(0, 0.05)},
		Color:  green,
		Width:  5,
	}

	canvas := newCanvas(vp.Width, vp.Height)
	(&Renderer{Projector: p}).Draw(canvas, vp, []Object{m, route})

	x, y := m.Anchor(vp, p)
	if got := pixelAt(canvas, x, y); got != green {
		t.Errorf("pixel under route = %v, want route colour", got)
	}
}

func TestPolylineSegments(t *testing.T) {
	t.Parallel()

	vp, p := testSetup()
	a := geo.MustCoordinate(0, -1)
	b := geo.MustCoordinate(0, 1)
	route := Polyline{Points: []geo.Coordinate{a, b}, Color: green, Width: 3}

	canvas := newCanvas(vp.Width, vp.Height)
	(&Renderer{Projector: p}).Draw(canvas, vp, []Object{route})

	ax, ay := vp.ToCanvas(p, a)
	bx, _ := vp.ToCanvas(p, b)
	for x := ax + 5; x < bx-5; x += 7 {
		if got := pixelAt(canvas, x, ay); got != green {
			t.Fatalf("pixel (%v, %v) on the route = %v, want %v", x, ay, got, green)
		}
	}
	if got := pixelAt(canvas, (ax+bx)/2, ay+10); got != white {
		t.Errorf("pixel 10px off the route = %v, want untouched background", got)
	}
}

func TestPolylineTooShortIsNoop(t *testing.T) {
	t.Parallel()

	vp, p := testSetup()
	canvas := newCanvas(vp.Width, vp.Height)
	before := append([]byte(nil), canvas.Pix...)

	(&Renderer{Projector: p}).Draw(canvas, vp, []Object{Polyline{Points: []geo.Coordinate{geo.MustCoordinate(0, 0)}}})

	if string(before) != string(canvas.Pix) {
		t.Error("single point polyline modified the canvas")
	}
}

func TestMarkerDefaults(t *testing.T) {
	t.Parallel()

	vp, p := testSetup()
	m := Marker{Position: geo.MustCoordinate(0, 0)}
	canvas := newCanvas(vp.Width, vp.Height)
	(&Renderer{Projector: p}).Draw(canvas, vp, []Object{m})

	x, y := m.HeadCenter(vp, p)
	if _, ay := m.Anchor(vp, p); ay-y != DefaultMarkerSize {
		t.Errorf("pin head %v px above anchor, want %v", ay-y, DefaultMarkerSize)
	}
	if got := pixelAt(canvas, x, y); got != DefaultMarkerColor {
		t.Errorf("default marker pixel = %v, want %v", got, DefaultMarkerColor)
	}
}

func TestAttribution(t *testing.T) {
	t.Parallel()

	vp, p := testSetup()
	grey := color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}

	canvas := newFilledCanvas(vp.Width, vp.Height, grey)
	(&Renderer{Projector: p, Attribution: "(C) OSM"}).Draw(canvas, vp, nil)
	if got := canvas.RGBAAt(vp.Width-1, vp.Height-1); got == grey {
		t.Error("attribution box not drawn in the bottom-right corner")
	}
	if got := canvas.RGBAAt(0, 0); got != grey {
		t.Errorf("top-left pixel = %v, attribution drawn in the wrong place", got)
	}

	canvas = newFilledCanvas(vp.Width, vp.Height, grey)
	(&Renderer{Projector: p}).Draw(canvas, vp, nil)
	if got := canvas.RGBAAt(vp.Width-1, vp.Height-1); got != grey {
		t.Error("empty attribution still drew a box")
	}
}

func TestDrawDeterministic(t *testing.T) {
	t.Parallel()

	vp, p := testSetup()
	objects := []Object{
		Marker{Position: geo.MustCoordinate(0.02, 0.02), Color: red},
		Marker{Position: geo.MustCoordinate(-0.02, -0.02), Color: green, Shape: ShapeCircle},
		Polyline{Points: []geo.Coordinate{geo.MustCoordinate(0.02, 0.02), geo.MustCoordinate(-0.02, -0.02)}},
	}
	r := &Renderer{Projector: p, Attribution: DefaultAttribution}

	a := newCanvas(vp.Width, vp.Height)
	b := newCanvas(vp.Width, vp.Height)
	r.Draw(a, vp, objects)
	r.Draw(b, vp, objects)
	if string(a.Pix) != string(b.Pix) {
		t.Error("identical draws produced different pixels")
	}
}
