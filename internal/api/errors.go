// Staticmaps - Static Map Rendering Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staticmaps

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/tomtom215/staticmaps/internal/models"
	"github.com/tomtom215/staticmaps/internal/render"
)

// Error codes returned in the envelope.
const (
	CodeInvalidJSON           = "INVALID_JSON"
	CodeValidation            = "VALIDATION_ERROR"
	CodeRequestTooLarge       = "REQUEST_TOO_LARGE"
	CodeTileSourceUnavailable = "TILE_SOURCE_UNAVAILABLE"
	CodeRenderTimeout         = "RENDER_TIMEOUT"
	CodeRequestCanceled       = "REQUEST_CANCELED"
	CodeInternal              = "INTERNAL_ERROR"
	CodeNotFound              = "NOT_FOUND"
	CodeMethodNotAllowed      = "METHOD_NOT_ALLOWED"
)

// renderError maps a pipeline error to an HTTP status and client error.
// Internal failures never expose their cause to the client.
func renderError(err error) (int, *models.APIError) {
	if verr, ok := render.ValidationErrors(err); ok {
		apiErr := verr.ToAPIError()
		return http.StatusBadRequest, &models.APIError{
			Code:    apiErr.Code,
			Message: apiErr.Message,
			Details: apiErr.Details,
		}
	}

	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge, &models.APIError{
			Code:    CodeRequestTooLarge,
			Message: "Request body is too large",
			Details: map[string]interface{}{"limit_bytes": tooLarge.Limit},
		}
	case errors.Is(err, render.ErrInvalidJSON):
		return http.StatusBadRequest, &models.APIError{
			Code:    CodeInvalidJSON,
			Message: "Request body is not valid JSON",
		}
	case errors.Is(err, render.ErrInvalidInput):
		return http.StatusBadRequest, &models.APIError{
			Code:    CodeValidation,
			Message: err.Error(),
		}
	case errors.Is(err, render.ErrTileSourceUnavailable):
		return http.StatusBadGateway, &models.APIError{
			Code:    CodeTileSourceUnavailable,
			Message: "Tile source is unavailable",
		}
	case errors.Is(err, render.ErrRenderTimeout):
		return http.StatusGatewayTimeout, &models.APIError{
			Code:    CodeRenderTimeout,
			Message: "Render did not finish in time",
		}
	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable, &models.APIError{
			Code:    CodeRequestCanceled,
			Message: "Request was canceled",
		}
	default:
		return http.StatusInternalServerError, &models.APIError{
			Code:    CodeInternal,
			Message: "Internal server error",
		}
	}
}
