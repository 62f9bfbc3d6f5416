// Staticmaps - Static Map Rendering Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staticmaps

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/staticmaps/internal/models"
)

// HealthLive handles liveness probe requests (Kubernetes-style).
// Returns 200 OK if the process is alive, regardless of the tile source.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: models.HealthStatus{
			Status:        "alive",
			Version:       h.version,
			UptimeSeconds: h.uptime(),
		},
		Metadata: newMetadata(r),
	})
}

// HealthReady handles readiness probe requests (Kubernetes-style).
// Returns 503 while the tile source circuit breaker is open, since every
// render would fail until it closes again.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	health := models.HealthStatus{
		Status:        "ready",
		Version:       h.version,
		UptimeSeconds: h.uptime(),
	}
	statusCode := http.StatusOK
	envelope := "success"

	if h.tiles != nil {
		health.Checks = map[string]string{"tile_source": h.tiles.State()}
		if !h.tiles.Available() {
			health.Status = "degraded"
			statusCode = http.StatusServiceUnavailable
			envelope = "error"
		}
	}

	respondJSON(w, statusCode, &models.APIResponse{
		Status:   envelope,
		Data:     health,
		Metadata: newMetadata(r),
	})
}

func (h *Handler) uptime() float64 {
	return time.Since(h.startTime).Seconds()
}
