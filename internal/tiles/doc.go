// Staticmaps - Static Map Rendering Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staticmaps

/*
Package tiles builds the basemap of a render from slippy-map raster tiles.

# Components

  - Address and Template: tile identity (z/x/y) and URL expansion.
  - Cover: the minimal tile grid under a viewport, with canvas offsets.
  - HTTPSource: fetches and decodes tiles (PNG, JPEG, WebP) with retries,
    an optional outbound rate limit and duplicate suppression.
  - BreakerSource: circuit breaker in front of any Source.
  - Compositor: bounded concurrent fetch of the covering grid, then paste.

# Failure Semantics

A tile that cannot be fetched (404, timeout, 5xx after retries, decode
error) is drawn as a grey placeholder and reported as a FetchError; the
render continues. Only when every tile of a render fails, or the breaker is
open, does Compose return an error wrapping ErrSourceUnavailable.

Tile fetching is a join barrier: Compose returns only after every fetch has
resolved, so overlays are always drawn on a complete basemap.
*/
package tiles
