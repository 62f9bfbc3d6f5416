// Staticmaps - Static Map Rendering Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staticmaps

/*
Package projection converts between geographic coordinates and the flat
pixel space that slippy-map tiles are cut from.

Only spherical Web Mercator is implemented. Callers depend on the Projector
interface so another cylindrical projection can be dropped in without
touching viewport fitting or overlay drawing.

Clamping:

Mercator maps the poles to infinity, so latitudes are clamped to
±85.05112878° before projecting. A marker at the pole is drawn on the top
or bottom edge of the world rather than being dropped. Longitudes outside
[-180, 180] wrap modulo 360°.
*/
package projection
