// Staticmaps - Static Map Rendering Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staticmaps

package api

import (
	"bytes"
	"io"
	"net/http"
	"strconv"

	"github.com/tomtom215/staticmaps/internal/logging"
	"github.com/tomtom215/staticmaps/internal/render"
)

// Response headers describing the rendered map.
const (
	HeaderMapZoom          = "X-Map-Zoom"
	HeaderMapCenter        = "X-Map-Center"
	HeaderTilePlaceholders = "X-Tile-Placeholders"
)

// Render handles POST /render. The body is read in full before decoding so
// an oversized request is rejected before any work starts.
func (h *Handler) Render(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxRequestBodyBytes))
	if err != nil {
		status, apiErr := renderError(err)
		respondError(w, r, status, apiErr, err)
		return
	}

	res, err := h.renderer.RenderJSON(r.Context(), bytes.NewReader(body))
	if err != nil {
		status, apiErr := renderError(err)
		respondError(w, r, status, apiErr, err)
		return
	}

	writePNG(w, r, res)
}

func writePNG(w http.ResponseWriter, r *http.Request, res *render.Result) {
	center := res.Viewport.Center
	hdr := w.Header()
	hdr.Set("Content-Type", "image/png")
	hdr.Set("Content-Disposition", `attachment; filename="map.png"`)
	hdr.Set("Content-Length", strconv.Itoa(len(res.PNG)))
	hdr.Set("Cache-Control", "no-store")
	hdr.Set("ETag", generateETag(res.PNG))
	hdr.Set(HeaderMapZoom, strconv.Itoa(res.Viewport.Zoom))
	hdr.Set(HeaderMapCenter, strconv.FormatFloat(center.Lon(), 'f', 6, 64)+","+strconv.FormatFloat(center.Lat(), 'f', 6, 64))
	hdr.Set(HeaderTilePlaceholders, strconv.Itoa(len(res.Warnings)))

	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(res.PNG); err != nil {
		logging.CtxWarn(r.Context()).Err(err).Msg("Failed to write PNG response")
	}
}
