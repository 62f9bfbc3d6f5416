// Staticmaps - Static Map Rendering Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staticmaps

package render

import (
	"context"
	"errors"
	"fmt"

	"github.com/tomtom215/staticmaps/internal/metrics"
	"github.com/tomtom215/staticmaps/internal/tiles"
	"github.com/tomtom215/staticmaps/internal/validation"
)

// Error kinds. Concrete errors wrap one of these, test with errors.Is.
var (
	// ErrInvalidInput marks a request the client must fix. The structured
	// field list is available through errors.As with
	// *validation.RequestValidationError.
	ErrInvalidInput = errors.New("invalid render request")

	// ErrInvalidJSON is the invalid input kind for undecodable bodies.
	ErrInvalidJSON = fmt.Errorf("%w: request body is not valid JSON", ErrInvalidInput)

	// ErrTileSourceUnavailable marks a systemic basemap failure: no tile
	// could be obtained, or the tile source circuit breaker is open.
	ErrTileSourceUnavailable = tiles.ErrSourceUnavailable

	// ErrRenderTimeout is returned when the render deadline expires. No
	// partial image is produced.
	ErrRenderTimeout = errors.New("render deadline exceeded")

	// ErrEncoding is returned when the canvas cannot be serialized.
	ErrEncoding = errors.New("image encoding failed")
)

func invalidInput(verr *validation.RequestValidationError) error {
	return fmt.Errorf("%w: %w", ErrInvalidInput, verr)
}

// ValidationErrors extracts the field problems from an invalid input error.
func ValidationErrors(err error) (*validation.RequestValidationError, bool) {
	var verr *validation.RequestValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}

// outcome maps an error returned by the pipeline to its metrics label.
func outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.Is(err, ErrInvalidInput):
		return metrics.OutcomeInvalidInput
	case errors.Is(err, ErrRenderTimeout):
		return metrics.OutcomeTimeout
	case errors.Is(err, ErrTileSourceUnavailable):
		return metrics.OutcomeTileSourceUnavailable
	case errors.Is(err, ErrEncoding):
		return metrics.OutcomeEncodingError
	case errors.Is(err, context.Canceled):
		return metrics.OutcomeCanceled
	default:
		return metrics.OutcomeError
	}
}
