// Staticmaps - Static Map Rendering Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staticmaps

package render

import (
	"context"
	"fmt"
	"image/color"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/tomtom215/staticmaps/internal/geo"
	"github.com/tomtom215/staticmaps/internal/models"
	"github.com/tomtom215/staticmaps/internal/overlay"
	"github.com/tomtom215/staticmaps/internal/validation"
)

const (
	DefaultWidth     = 1280
	DefaultHeight    = 720
	DefaultMaxWidth  = 4096
	DefaultMaxHeight = 4096

	// MinMarkers and MinRoutePoints are the smallest accepted lists.
	MinMarkers     = 2
	MinRoutePoints = 2
)

// Defaults fill in what a request body leaves out.
type Defaults struct {
	Width  int
	Height int

	MarkerColor color.Color
	MarkerSize  float64
	MarkerShape overlay.Shape
	RouteColor  color.Color
	RouteWidth  float64
}

// DefaultDefaults returns the 1280x720 canvas with blue pins and route.
func DefaultDefaults() Defaults {
	return Defaults{
		Width:       DefaultWidth,
		Height:      DefaultHeight,
		MarkerColor: overlay.DefaultMarkerColor,
		MarkerSize:  overlay.DefaultMarkerSize,
		MarkerShape: overlay.ShapePin,
		RouteColor:  overlay.DefaultRouteColor,
		RouteWidth:  overlay.DefaultRouteWidth,
	}
}

// Limits cap the canvas a single request may ask for.
type Limits struct {
	MaxWidth  int
	MaxHeight int
}

// DefaultLimits returns 4096x4096.
func DefaultLimits() Limits {
	return Limits{MaxWidth: DefaultMaxWidth, MaxHeight: DefaultMaxHeight}
}

// RenderRequest is a validated, typed render request.
type RenderRequest struct {
	Markers []overlay.Marker
	Route   overlay.Polyline
	Width   int
	Height  int
}

// Coordinates returns every marker position followed by every route point.
func (r RenderRequest) Coordinates() []geo.Coordinate {
	coords := make([]geo.Coordinate, 0, len(r.Markers)+len(r.Route.Points))
	for _, m := range r.Markers {
		coords = append(coords, m.Position)
	}
	return append(coords, r.Route.Points...)
}

// Objects returns the overlays in drawing order: markers as listed, then
// the route.
func (r RenderRequest) Objects() []overlay.Object {
	objects := make([]overlay.Object, 0, len(r.Markers)+1)
	for _, m := range r.Markers {
		objects = append(objects, m)
	}
	return append(objects, r.Route)
}

// Validate checks a request built in code rather than decoded from JSON.
// All problems are reported together.
func (r RenderRequest) Validate(l Limits) error {
	var errs []validation.ValidationError
	if len(r.Markers) < MinMarkers {
		errs = append(errs, validation.NewValidationError("locations", "min", strconv.Itoa(MinMarkers), len(r.Markers),
			fmt.Sprintf("locations must contain at least %d entries", MinMarkers)))
	}
	if len(r.Route.Points) < MinRoutePoints {
		errs = append(errs, validation.NewValidationError("route", "min", strconv.Itoa(MinRoutePoints), len(r.Route.Points),
			fmt.Sprintf("route must contain at least %d entries", MinRoutePoints)))
	}
	errs = append(errs, checkDimension("width", r.Width, l.MaxWidth)...)
	errs = append(errs, checkDimension("height", r.Height, l.MaxHeight)...)
	if len(errs) > 0 {
		return invalidInput(validation.NewRequestValidationError(errs...))
	}
	return nil
}

func checkDimension(field string, v, limit int) []validation.ValidationError {
	switch {
	case v < 1:
		return []validation.ValidationError{validation.NewValidationError(field, "min", "1", v,
			field+" must be at least 1")}
	case limit > 0 && v > limit:
		return []validation.ValidationError{validation.NewValidationError(field, "max", strconv.Itoa(limit), v,
			fmt.Sprintf("%s must be at most %d", field, limit))}
	}
	return nil
}

// NewRequest converts a validated body into a RenderRequest, taking size
// and style from d where the body is silent.
func NewRequest(body models.RenderRequestBody, d Defaults) (RenderRequest, error) {
	req := RenderRequest{Width: d.Width, Height: d.Height}
	if body.Width != nil {
		req.Width = *body.Width
	}
	if body.Height != nil {
		req.Height = *body.Height
	}

	markerColor, routeColor := d.MarkerColor, d.RouteColor
	markerSize, routeWidth := d.MarkerSize, d.RouteWidth
	shape := d.MarkerShape

	var errs []validation.ValidationError
	if s := body.Style; s != nil {
		if s.MarkerColor != "" {
			c, err := overlay.ParseHexColor(s.MarkerColor)
			if err != nil {
				errs = append(errs, validation.NewValidationError("style.marker_color", "hexcolor", "", s.MarkerColor, err.Error()))
			}
			markerColor = c
		}
		if s.RouteColor != "" {
			c, err := overlay.ParseHexColor(s.RouteColor)
			if err != nil {
				errs = append(errs, validation.NewValidationError("style.route_color", "hexcolor", "", s.RouteColor, err.Error()))
			}
			routeColor = c
		}
		if s.MarkerSize != nil {
			markerSize = *s.MarkerSize
		}
		if s.RouteWidth != nil {
			routeWidth = *s.RouteWidth
		}
		if s.MarkerShape != "" {
			shape = overlay.Shape(s.MarkerShape)
		}
	}

	for i, pos := range body.Locations {
		c, err := geo.FromLonLat(pos)
		if err != nil {
			errs = append(errs, positionError("locations", i, pos, err))
			continue
		}
		req.Markers = append(req.Markers, overlay.Marker{
			Position: c,
			Color:    markerColor,
			Size:     markerSize,
			Shape:    shape,
		})
	}

	req.Route = overlay.Polyline{Color: routeColor, Width: routeWidth}
	for i, pos := range body.Route {
		c, err := geo.FromLonLat(pos)
		if err != nil {
			errs = append(errs, positionError("route", i, pos, err))
			continue
		}
		req.Route.Points = append(req.Route.Points, c)
	}

	if len(errs) > 0 {
		return RenderRequest{}, invalidInput(validation.NewRequestValidationError(errs...))
	}
	return req, nil
}

func positionError(list string, i int, pos models.Position, err error) validation.ValidationError {
	field := fmt.Sprintf("%s[%d]", list, i)
	return validation.NewValidationError(field, "lonlat", "", []float64(pos), field+": "+err.Error())
}

type limitsKey struct{}

func withLimits(ctx context.Context, l Limits) context.Context {
	return context.WithValue(ctx, limitsKey{}, l)
}

func init() {
	validation.RegisterStructValidationCtx(validateDimensions, models.RenderRequestBody{})
}

// validateDimensions applies the configured maximum canvas size, which a
// static struct tag cannot express.
func validateDimensions(ctx context.Context, sl validator.StructLevel) {
	l, ok := ctx.Value(limitsKey{}).(Limits)
	if !ok {
		return
	}
	body, ok := sl.Current().Interface().(models.RenderRequestBody)
	if !ok {
		return
	}
	if body.Width != nil && l.MaxWidth > 0 && *body.Width > l.MaxWidth {
		sl.ReportError(*body.Width, "width", "Width", "max", strconv.Itoa(l.MaxWidth))
	}
	if body.Height != nil && l.MaxHeight > 0 && *body.Height > l.MaxHeight {
		sl.ReportError(*body.Height, "height", "Height", "max", strconv.Itoa(l.MaxHeight))
	}
}
