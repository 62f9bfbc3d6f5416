// Staticmaps - Static Map Rendering Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staticmaps

// Package validation provides struct validation using go-playground/validator v10.
//
// A thread-safe singleton validator is configured once with the
// application's custom rules and reports field problems under their JSON
// names, so a client sees "locations[1]" rather than "Locations[1]".
//
// # Custom Rules
//
//   - lonlat: a two element numeric [longitude, latitude] pair inside the
//     WGS84 range, used with dive on coordinate lists
//
// Struct-level rules that depend on runtime limits (maximum canvas size) are
// registered with RegisterStructValidationCtx and read their limits from the
// context passed to ValidateStructCtx.
//
// # Quick Start
//
//	type Body struct {
//	    Locations [][]float64 `json:"locations" validate:"required,min=2,dive,lonlat"`
//	}
//
//	if verr := validation.ValidateStruct(&body); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
//	    return
//	}
//
// # API Error Integration
//
// ToAPIError produces the VALIDATION_ERROR shape:
//
//	// Single field error
//	{
//	    "code": "VALIDATION_ERROR",
//	    "message": "locations must contain at least 2 entries",
//	    "details": {"field": "locations", "tag": "min", "value": [[1, 2]]}
//	}
//
//	// Multiple field errors
//	{
//	    "code": "VALIDATION_ERROR",
//	    "message": "locations[0] must be a [longitude, latitude] pair ...; width must be at most 4096",
//	    "details": {
//	        "fields": [
//	            {"field": "locations[0]", "tag": "lonlat", "message": "..."},
//	            {"field": "width", "tag": "max", "message": "..."}
//	        ]
//	    }
//	}
//
// # Thread Safety
//
// The singleton validator is initialized once and safe for concurrent use.
// Registration functions must run before the first validation.
package validation
