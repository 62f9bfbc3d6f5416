// Staticmaps - Static Map Rendering Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staticmaps

package projection

import (
	"math"

	"github.com/tomtom215/staticmaps/internal/geo"
)

// MaxLatitude is the latitude at which the Web Mercator world becomes
// square (atan(sinh(pi)) in degrees). Latitudes beyond ±MaxLatitude are
// clamped to the edge, never rejected.
const MaxLatitude = 85.05112878

// DefaultTileSize is the edge length of a slippy-map tile in pixels.
const DefaultTileSize = 256

// Projector maps geographic coordinates to world pixel space and back.
// World pixel space at zoom z is a square of WorldSize(z) pixels with the
// origin at the north-west corner (lon -180, lat +MaxLatitude).
type Projector interface {
	Project(c geo.Coordinate, zoom int) (x, y float64)
	Unproject(x, y float64, zoom int) geo.Coordinate
	WorldSize(zoom int) float64
	TileSize() int
}

// WebMercator is the spherical pseudo-Mercator used by OSM-style tile servers
// (EPSG:3857).
type WebMercator struct {
	tileSize int
}

// NewWebMercator returns a projector for square tiles of tileSize pixels.
// A non-positive size selects DefaultTileSize.
func NewWebMercator(tileSize int) WebMercator {
	if tileSize <= 0 {
		tileSize = DefaultTileSize
	}
	return WebMercator{tileSize: tileSize}
}

// TileSize returns the tile edge in pixels.
func (m WebMercator) TileSize() int {
	if m.tileSize <= 0 {
		return DefaultTileSize
	}
	return m.tileSize
}

// WorldSize returns the world edge in pixels at zoom.
func (m WebMercator) WorldSize(zoom int) float64 {
	return float64(m.TileSize()) * math.Exp2(float64(zoom))
}

// Project returns the world pixel position of c at zoom. Latitude is clamped
// to ±MaxLatitude first.
func (m WebMercator) Project(c geo.Coordinate, zoom int) (x, y float64) {
	ws := m.WorldSize(zoom)
	lon := WrapLongitude(c.Lon())
	lat := ClampLatitude(c.Lat())

	sin := math.Sin(lat * math.Pi / 180)
	x = (lon + 180) / 360 * ws
	y = (0.5 - math.Log((1+sin)/(1-sin))/(4*math.Pi)) * ws
	return x, y
}

// Unproject is the inverse of Project. x outside the world wraps around; y
// outside the world clamps to ±MaxLatitude.
func (m WebMercator) Unproject(x, y float64, zoom int) geo.Coordinate {
	ws := m.WorldSize(zoom)
	lon := x/ws*360 - 180
	n := math.Pi * (1 - 2*y/ws)
	lat := math.Atan(math.Sinh(n)) * 180 / math.Pi
	return geo.Normalized(ClampLatitude(lat), WrapLongitude(lon))
}

// ClampLatitude limits lat to the Web Mercator range.
func ClampLatitude(lat float64) float64 {
	return math.Max(-MaxLatitude, math.Min(MaxLatitude, lat))
}

// WrapLongitude wraps lon into [-180, 180]. In-range values, including both
// -180 and 180, are returned unchanged.
func WrapLongitude(lon float64) float64 {
	return geo.WrapLongitude(lon)
}
