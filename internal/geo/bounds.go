// Staticmaps - Static Map Rendering Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staticmaps

package geo

import (
	"errors"
	"sort"

	"github.com/golang/geo/r1"
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// ErrNoCoordinates is returned when a bounding box is requested for nothing.
var ErrNoCoordinates = errors.New("at least one coordinate is required")

// Bounds is a latitude/longitude box. The longitude interval may cross the
// antimeridian, in which case West > East. Edges are kept in the degrees
// they were built from; the s2 rectangle answers containment and spans.
type Bounds struct {
	south, north float64
	west, east   float64
	rect         s2.Rect
}

// BoundsOf returns the smallest box containing every coordinate. On the
// longitude axis that is the shortest arc holding all longitudes: the
// complement of the largest gap between neighbouring longitudes on the
// circle. Ties prefer the box that does not cross the antimeridian.
func BoundsOf(coords []Coordinate) (Bounds, error) {
	if len(coords) == 0 {
		return Bounds{}, ErrNoCoordinates
	}

	south, north := coords[0].lat, coords[0].lat
	lons := make([]float64, 0, len(coords))
	for _, c := range coords {
		south = min(south, c.lat)
		north = max(north, c.lat)
		lons = append(lons, normalizeLongitude(c.lon))
	}
	sort.Float64s(lons)

	west, east := lons[0], lons[len(lons)-1]
	largestGap := lons[0] + 360 - lons[len(lons)-1]
	for i := 0; i+1 < len(lons); i++ {
		if gap := lons[i+1] - lons[i]; gap > largestGap {
			largestGap = gap
			west, east = lons[i+1], lons[i]
		}
	}

	return Bounds{
		south: south,
		north: north,
		west:  west,
		east:  east,
		rect: s2.Rect{
			Lat: r1.Interval{Lo: degToRad(south), Hi: degToRad(north)},
			Lng: s1.IntervalFromEndpoints(degToRad(west), degToRad(east)),
		},
	}, nil
}

// South returns the southern edge in degrees.
func (b Bounds) South() float64 { return b.south }

// North returns the northern edge in degrees.
func (b Bounds) North() float64 { return b.north }

// West returns the western edge in degrees.
func (b Bounds) West() float64 { return b.west }

// East returns the eastern edge in degrees.
func (b Bounds) East() float64 { return b.east }

// CrossesAntimeridian reports whether the longitude interval wraps past 180°.
func (b Bounds) CrossesAntimeridian() bool { return b.rect.Lng.IsInverted() }

// LngSpan is the east-west extent in degrees, in [0, 360).
func (b Bounds) LngSpan() float64 { return s1.Angle(b.rect.Lng.Length()).Degrees() }

// LatSpan is the north-south extent in degrees.
func (b Bounds) LatSpan() float64 { return s1.Angle(b.rect.Lat.Length()).Degrees() }

// IsPoint reports whether the box collapses to a single position.
func (b Bounds) IsPoint() bool { return b.rect.IsPoint() }

// Contains reports whether c lies inside the box (edges included).
func (b Bounds) Contains(c Coordinate) bool {
	return b.rect.ContainsLatLng(c.LatLng())
}

// Rect exposes the underlying s2 rectangle.
func (b Bounds) Rect() s2.Rect { return b.rect }

func degToRad(deg float64) float64 {
	return (s1.Angle(deg) * s1.Degree).Radians()
}
