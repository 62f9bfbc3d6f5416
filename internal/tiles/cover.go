// Staticmaps - Static Map Rendering Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staticmaps

package tiles

import (
	"image"

	"github.com/tomtom215/staticmaps/internal/projection"
	"github.com/tomtom215/staticmaps/internal/viewport"
)

// Placement is a tile and where its top-left corner lands on the canvas.
// Offsets may be negative when the tile is only partly visible.
type Placement struct {
	Address Address
	Offset  image.Point
}

// Rect is the canvas rectangle covered by the placed tile.
func (p Placement) Rect(tileSize int) image.Rectangle {
	return image.Rect(p.Offset.X, p.Offset.Y, p.Offset.X+tileSize, p.Offset.Y+tileSize)
}

// Cover returns the minimal grid of tiles whose union covers the canvas of
// vp, in row-major order. Columns wrap around the antimeridian, so a canvas
// wider than the world repeats tiles. Rows above or below the world have no
// tile and stay background.
func Cover(vp viewport.Viewport, p projection.Projector) []Placement {
	ts := p.TileSize()
	n := 1 << vp.Zoom
	o := vp.Origin(p)

	minTX, maxTX := floorDiv(o.X, ts), floorDiv(o.X+vp.Width-1, ts)
	minTY, maxTY := floorDiv(o.Y, ts), floorDiv(o.Y+vp.Height-1, ts)

	out := make([]Placement, 0, (maxTX-minTX+1)*(maxTY-minTY+1))
	for ty := minTY; ty <= maxTY; ty++ {
		if ty < 0 || ty >= n {
			continue
		}
		for tx := minTX; tx <= maxTX; tx++ {
			out = append(out, Placement{
				Address: NewAddress(mod(tx, n), ty, vp.Zoom),
				Offset:  image.Point{X: tx*ts - o.X, Y: ty*ts - o.Y},
			})
		}
	}
	return out
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func mod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}
