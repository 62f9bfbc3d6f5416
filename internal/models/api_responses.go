// Staticmaps - Static Map Rendering Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staticmaps

package models

import (
	"time"
)

// APIResponse represents the standardized JSON wrapper used by every
// non-image response. Successful renders return PNG bytes instead.
//
// Status field values:
//   - "success": Request completed successfully, see Data field
//   - "error": Request failed, see Error field for details
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "data": null,
//	  "metadata": {"timestamp": "2026-01-28T12:00:00Z"},
//	  "error": {
//	    "code": "VALIDATION_ERROR",
//	    "message": "locations must contain at least 2 entries",
//	    "details": {"field": "locations", "tag": "min"}
//	  }
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata for observability.
//
// Fields:
//   - Timestamp: Server time when response was generated (RFC3339 format)
//   - RequestID: Correlates the response with server logs (omitted if unknown)
type Metadata struct {
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"request_id,omitempty"`
}

// APIError represents an error response with structured error details.
//
// Error codes:
//   - VALIDATION_ERROR: The render request failed schema validation
//   - INVALID_JSON: The body could not be decoded
//   - TILE_SOURCE_UNAVAILABLE: No basemap tiles could be obtained
//   - RENDER_TIMEOUT: The render deadline expired
//   - INTERNAL_ERROR: Encoding failure or an unexpected error
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// HealthStatus is the payload of the health endpoints.
//
// Example:
//
//	{
//	  "status": "healthy",
//	  "version": "1.0.0",
//	  "uptime_seconds": 3600,
//	  "checks": {"tile_source": "closed"}
//	}
type HealthStatus struct {
	Status        string            `json:"status"`
	Version       string            `json:"version,omitempty"`
	UptimeSeconds float64           `json:"uptime_seconds"`
	Checks        map[string]string `json:"checks,omitempty"`
}
