// Staticmaps - Static Map Rendering Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staticmaps

package projection

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/maptile"

	"github.com/tomtom215/staticmaps/internal/geo"
)

const roundTripEpsilon = 1e-6

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	m := NewWebMercator(256)
	for zoom := 0; zoom <= 20; zoom++ {
		for lat := -85.0; lat <= 85.0; lat += 8.5 {
			for lon := -180.0; lon <= 180.0; lon += 22.5 {
				c := geo.MustCoordinate(lat, lon)
				x, y := m.Project(c, zoom)
				back := m.Unproject(x, y, zoom)
				if math.Abs(back.Lat()-lat) > roundTripEpsilon || math.Abs(back.Lon()-lon) > roundTripEpsilon {
					t.Fatalf("zoom %d: round trip of (%v, %v) gave (%v, %v)", zoom, lat, lon, back.Lat(), back.Lon())
				}
			}
		}
	}
}

func TestRoundTripIrregularPoints(t *testing.T) {
	t.Parallel()

	points := []geo.Coordinate{
		geo.MustCoordinate(55.755826, 37.6173),
		geo.MustCoordinate(-33.868820, 151.209296),
		geo.MustCoordinate(37.774929, -122.419416),
		geo.MustCoordinate(84.999999, 179.999999),
		geo.MustCoordinate(-84.999999, -179.999999),
		geo.MustCoordinate(0.000001, -0.000001),
	}
	for _, tileSize := range []int{256, 512} {
		m := NewWebMercator(tileSize)
		for zoom := 0; zoom <= 20; zoom++ {
			for _, c := range points {
				x, y := m.Project(c, zoom)
				back := m.Unproject(x, y, zoom)
				if math.Abs(back.Lat()-c.Lat()) > roundTripEpsilon || math.Abs(back.Lon()-c.Lon()) > roundTripEpsilon {
					t.Errorf("tile %d zoom %d: %v round-tripped to %v", tileSize, zoom, c, back)
				}
			}
		}
	}
}

func TestProjectKnownValues(t *testing.T) {
	t.Parallel()

	m := NewWebMercator(256)
	tests := []struct {
		name  string
		c     geo.Coordinate
		zoom  int
		wantX float64
		wantY float64
	}{
		{"null island z0", geo.MustCoordinate(0, 0), 0, 128, 128},
		{"null island z1", geo.MustCoordinate(0, 0), 1, 256, 256},
		{"west edge", geo.MustCoordinate(0, -180), 0, 0, 128},
		{"east edge", geo.MustCoordinate(0, 180), 0, 256, 128},
		{"top edge", geo.MustCoordinate(MaxLatitude, 0), 0, 128, 0},
		{"bottom edge", geo.MustCoordinate(-MaxLatitude, 0), 0, 128, 256},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			x, y := m.Project(tt.c, tt.zoom)
			if math.Abs(x-tt.wantX) > 1e-6 || math.Abs(y-tt.wantY) > 1e-6 {
				t.Errorf("Project = (%v, %v), want (%v, %v)", x, y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestProjectClampsPoles(t *testing.T) {
	t.Parallel()

	m := NewWebMercator(256)
	_, yNorth := m.Project(geo.MustCoordinate(90, 10), 3)
	_, yEdge := m.Project(geo.MustCoordinate(MaxLatitude, 10), 3)
	if yNorth != yEdge {
		t.Errorf("north pole projected to y=%v, want clamped %v", yNorth, yEdge)
	}
	_, ySouth := m.Project(geo.MustCoordinate(-90, 10), 3)
	if math.Abs(ySouth-m.WorldSize(3)) > 1e-6 {
		t.Errorf("south pole projected to y=%v, want %v", ySouth, m.WorldSize(3))
	}
	if math.IsInf(yNorth, 0) || math.IsNaN(ySouth) {
		t.Error("pole projection is not finite")
	}
}

func TestUnprojectWraps(t *testing.T) {
	t.Parallel()

	m := NewWebMercator(256)
	ws := m.WorldSize(2)
	c := m.Unproject(ws+ws/4, ws/2, 2)
	if math.Abs(c.Lon()-(-90)) > 1e-9 {
		t.Errorf("lon = %v, want -90 after wrapping", c.Lon())
	}
	c = m.Unproject(ws/2, -10, 2)
	if c.Lat() > MaxLatitude {
		t.Errorf("lat = %v, want clamped to %v", c.Lat(), MaxLatitude)
	}
}

func TestProjectMatchesMaptile(t *testing.T) {
	t.Parallel()

	m := NewWebMercator(256)
	points := []geo.Coordinate{
		geo.MustCoordinate(55.755826, 37.6173),
		geo.MustCoordinate(-33.868820, 151.209296),
		geo.MustCoordinate(37.774929, -122.419416),
		geo.MustCoordinate(-54.8019, -68.3030),
	}
	for zoom := 0; zoom <= 18; zoom++ {
		for _, c := range points {
			x, y := m.Project(c, zoom)
			got := maptile.New(uint32(x/256), uint32(y/256), maptile.Zoom(zoom))
			want := maptile.At(orb.Point{c.Lon(), c.Lat()}, maptile.Zoom(zoom))
			if got != want {
				t.Errorf("zoom %d %v: tile %v, maptile says %v", zoom, c, got, want)
			}
		}
	}
}

func TestNewWebMercatorDefaultsTileSize(t *testing.T) {
	t.Parallel()

	if got := NewWebMercator(0).TileSize(); got != DefaultTileSize {
		t.Errorf("TileSize = %d, want %d", got, DefaultTileSize)
	}
	var zero WebMercator
	if got := zero.WorldSize(1); got != 512 {
		t.Errorf("zero value WorldSize(1) = %v, want 512", got)
	}
}
