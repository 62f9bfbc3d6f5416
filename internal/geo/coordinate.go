// Staticmaps - Static Map Rendering Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staticmaps

package geo

import (
	"errors"
	"fmt"
	"math"

	"github.com/golang/geo/s2"
)

const (
	// MinLatitude and MaxLatitude bound a valid WGS84 latitude in degrees.
	MinLatitude = -90.0
	MaxLatitude = 90.0

	// MinLongitude and MaxLongitude bound a valid WGS84 longitude in degrees.
	MinLongitude = -180.0
	MaxLongitude = 180.0
)

var (
	// ErrLatitudeOutOfRange is returned when a latitude is outside [-90, 90].
	ErrLatitudeOutOfRange = errors.New("latitude out of range")

	// ErrLongitudeOutOfRange is returned when a longitude is outside [-180, 180].
	ErrLongitudeOutOfRange = errors.New("longitude out of range")

	// ErrNotANumber is returned for NaN or infinite components.
	ErrNotANumber = errors.New("coordinate is not a finite number")

	// ErrInvalidPair is returned when a wire position is not a [lon, lat] pair.
	ErrInvalidPair = errors.New("position must be a [longitude, latitude] pair")
)

// Coordinate is a validated WGS84 position. The zero value is (0, 0).
// Fields are unexported so that every Coordinate outside this package went
// through NewCoordinate or Normalized.
type Coordinate struct {
	lat float64
	lon float64
}

// NewCoordinate validates lat/lon (degrees) and returns the coordinate.
func NewCoordinate(lat, lon float64) (Coordinate, error) {
	if !isFinite(lat) || !isFinite(lon) {
		return Coordinate{}, ErrNotANumber
	}
	if lat < MinLatitude || lat > MaxLatitude {
		return Coordinate{}, fmt.Errorf("%w: %v", ErrLatitudeOutOfRange, lat)
	}
	if lon < MinLongitude || lon > MaxLongitude {
		return Coordinate{}, fmt.Errorf("%w: %v", ErrLongitudeOutOfRange, lon)
	}
	return Coordinate{lat: lat, lon: lon}, nil
}

// MustCoordinate is NewCoordinate for literals known to be valid. It panics
// on invalid input.
func MustCoordinate(lat, lon float64) Coordinate {
	c, err := NewCoordinate(lat, lon)
	if err != nil {
		panic(err)
	}
	return c
}

// FromLonLat builds a coordinate from a [lon, lat] wire pair, the order used
// by the render API and GeoJSON.
func FromLonLat(pair []float64) (Coordinate, error) {
	if len(pair) != 2 {
		return Coordinate{}, ErrInvalidPair
	}
	return NewCoordinate(pair[1], pair[0])
}

// Normalized never fails: latitude is clamped into [-90, 90] and longitude
// wrapped into [-180, 180]. Used for coordinates derived from pixel space.
func Normalized(lat, lon float64) Coordinate {
	return Coordinate{
		lat: math.Max(MinLatitude, math.Min(MaxLatitude, lat)),
		lon: WrapLongitude(lon),
	}
}

// Lat returns the latitude in degrees.
func (c Coordinate) Lat() float64 { return c.lat }

// Lon returns the longitude in degrees.
func (c Coordinate) Lon() float64 { return c.lon }

// LatLng converts to an s2.LatLng.
func (c Coordinate) LatLng() s2.LatLng {
	return s2.LatLngFromDegrees(c.lat, c.lon)
}

// String formats as "lat,lon" with six decimals (about 0.1 m).
func (c Coordinate) String() string {
	return fmt.Sprintf("%.6f,%.6f", c.lat, c.lon)
}

// Equal reports whether both coordinates name the same position. The two
// representations of the antimeridian (-180 and 180) are equal.
func (c Coordinate) Equal(o Coordinate) bool {
	return c.lat == o.lat && normalizeLongitude(c.lon) == normalizeLongitude(o.lon)
}

// WrapLongitude returns lon unchanged when it is inside [-180, 180] and wraps
// it modulo 360 into [-180, 180) otherwise.
func WrapLongitude(lon float64) float64 {
	if lon >= MinLongitude && lon <= MaxLongitude {
		return lon
	}
	wrapped := math.Mod(lon+180, 360)
	if wrapped < 0 {
		wrapped += 360
	}
	return wrapped - 180
}

// normalizeLongitude maps lon into (-180, 180] so each meridian has exactly
// one representation.
func normalizeLongitude(lon float64) float64 {
	lon = WrapLongitude(lon)
	if lon == MinLongitude {
		return MaxLongitude
	}
	return lon
}

// Distinct counts the distinct positions in coords.
func Distinct(coords []Coordinate) int {
	seen := make(map[[2]float64]struct{}, len(coords))
	for _, c := range coords {
		seen[[2]float64{c.lat, normalizeLongitude(c.lon)}] = struct{}{}
	}
	return len(seen)
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
