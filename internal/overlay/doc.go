// Staticmaps - Static Map Rendering Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staticmaps

// Package overlay draws markers, the route polyline and the attribution
// over a composited basemap using anti-aliased vector drawing.
//
// Objects are drawn strictly in the order given. Marker size and line
// width are in canvas pixels and do not change with zoom.
package overlay
