// Staticmaps - Static Map Rendering Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staticmaps

package tiles

import (
	"context"
	"errors"
	"fmt"
	"image"
)

var (
	// ErrTileNotFound is returned when the tile server has no tile at an
	// address (HTTP 404 or 410). It is not retried.
	ErrTileNotFound = errors.New("tile not found")

	// ErrSourceUnavailable reports a systemic tile source failure: the
	// circuit breaker is open or no tile of a render could be fetched.
	ErrSourceUnavailable = errors.New("tile source unavailable")
)

// Source fetches decoded tile images. Implementations must be safe for
// concurrent use.
type Source interface {
	Fetch(ctx context.Context, a Address) (image.Image, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context, a Address) (image.Image, error)

// Fetch calls f.
func (f SourceFunc) Fetch(ctx context.Context, a Address) (image.Image, error) {
	return f(ctx, a)
}

// FetchError is a failed tile fetch that was recovered as a placeholder.
type FetchError struct {
	Address Address
	Err     error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("tile %s: %v", e.Address, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
