// Staticmaps - Static Map Rendering Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staticmaps

/*
Package render orchestrates a static map render from request to PNG bytes.

A render moves through a fixed sequence of states:

	received -> validated -> viewport_computed -> composited -> overlaid -> encoded -> done

Any non-terminal state may move to failed. Input problems fail before the
validated state is reached, so no tile is fetched for a bad request. Every
transition is logged at debug level; an out-of-order transition panics
because it can only come from a bug in this package.

# Error Kinds

  - ErrInvalidInput: the request failed validation. The field list is
    available through ValidationErrors. ErrInvalidJSON wraps it for bodies
    that do not decode.
  - ErrTileSourceUnavailable: no basemap tile could be obtained.
  - ErrRenderTimeout: the total deadline expired. No partial image is
    returned.
  - ErrEncoding: PNG serialization failed.

Individual tile failures are not errors. They are drawn as placeholders and
listed in Result.Warnings.

# Usage

	p := &render.Pipeline{
	    Fitter:     viewport.NewFitter(proj),
	    Compositor: &tiles.Compositor{Source: src, Projector: proj},
	    Renderer:   &overlay.Renderer{Projector: proj, Attribution: overlay.DefaultAttribution},
	    Defaults:   render.DefaultDefaults(),
	    Limits:     render.DefaultLimits(),
	    Deadline:   30 * time.Second,
	}
	res, err := p.RenderJSON(ctx, r.Body)
*/
package render
