// Staticmaps - Static Map Rendering Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staticmaps

package models

import (
	"math"

	"github.com/goccy/go-json"
)

// Position is a [longitude, latitude] pair in degrees, the order GeoJSON uses.
type Position []float64

// UnmarshalJSON decodes an array of numbers. A null or non-numeric element
// becomes NaN so that validation reports the position instead of reading
// it as 0.
func (p *Position) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		*p = nil
		return nil
	}
	out := make(Position, len(raw))
	for i, r := range raw {
		var v *float64
		if err := json.Unmarshal(r, &v); err != nil || v == nil {
			out[i] = math.NaN()
			continue
		}
		out[i] = *v
	}
	*p = out
	return nil
}

// Style overrides the default overlay appearance for one render.
// Every field is optional.
type Style struct {
	MarkerColor string   `json:"marker_color,omitempty" validate:"omitempty,hexcolor"`
	MarkerSize  *float64 `json:"marker_size,omitempty" validate:"omitempty,gt=0,max=64"`
	MarkerShape string   `json:"marker_shape,omitempty" validate:"omitempty,oneof=pin circle"`
	RouteColor  string   `json:"route_color,omitempty" validate:"omitempty,hexcolor"`
	RouteWidth  *float64 `json:"route_width,omitempty" validate:"omitempty,gt=0,max=32"`
}

// RenderRequestBody is the wire schema of POST /render.
//
// Example:
//
//	{
//	  "locations": [[37.6173, 55.7558], [30.3351, 59.9343]],
//	  "route": [[37.6173, 55.7558], [34.3, 57.6], [30.3351, 59.9343]],
//	  "width": 800,
//	  "height": 600,
//	  "style": {"marker_color": "#ff0000", "route_width": 4}
//	}
//
// Width and height fall back to configured defaults when omitted. Their
// upper bounds are configuration and are checked by the render package.
type RenderRequestBody struct {
	Locations []Position `json:"locations" validate:"required,min=2,dive,lonlat"`
	Route     []Position `json:"route" validate:"required,min=2,dive,lonlat"`
	Width     *int       `json:"width,omitempty" validate:"omitempty,min=1"`
	Height    *int       `json:"height,omitempty" validate:"omitempty,min=1"`
	Style     *Style     `json:"style,omitempty" validate:"omitempty"`
}
