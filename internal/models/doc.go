// Staticmaps - Static Map Rendering Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staticmaps

/*
Package models defines the wire structures of the staticmaps HTTP API.

Key Components:

  - RenderRequestBody: JSON body of a render request with validate tags
  - Position: a [longitude, latitude] pair
  - Style: optional per-request overlay appearance
  - APIResponse, APIError, Metadata: the JSON envelope for errors and health
  - HealthStatus: payload of the liveness and readiness probes

Validation tags are evaluated by internal/validation; the custom lonlat rule
checks each Position. Conversion into typed geometry happens in
internal/render, so nothing outside this package depends on the wire shape.

JSON encoding uses github.com/goccy/go-json, a drop-in replacement for
encoding/json.
*/
package models
