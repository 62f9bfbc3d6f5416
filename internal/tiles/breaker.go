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
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/staticmaps/internal/logging"
	"github.com/tomtom215/staticmaps/internal/metrics"
)

// BreakerConfig configures the tile source circuit breaker.
type BreakerConfig struct {
	Name string

	// MinRequests is the sample size before the failure ratio is evaluated.
	MinRequests uint32

	// FailureRatio at or above which the circuit opens.
	FailureRatio float64

	// OpenTimeout is how long the circuit stays open before probing.
	OpenTimeout time.Duration

	// Interval resets the counts while closed. Zero keeps them forever.
	Interval time.Duration

	// HalfOpenRequests is the number of probes allowed while half-open.
	HalfOpenRequests uint32
}

// DefaultBreakerConfig opens after 60% failures over at least 10 fetches.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		Name:             "tile-source",
		MinRequests:      10,
		FailureRatio:     0.6,
		OpenTimeout:      30 * time.Second,
		Interval:         time.Minute,
		HalfOpenRequests: 3,
	}
}

// BreakerSource wraps a Source with a circuit breaker so that a dead tile
// server fails renders fast instead of waiting out every tile timeout.
//
// A missing tile (ErrTileNotFound) and a caller that gave up
// (context.Canceled) do not count as failures of the server.
type BreakerSource struct {
	next Source
	cb   *gobreaker.CircuitBreaker[image.Image]
	name string
}

// NewBreakerSource wraps next.
func NewBreakerSource(next Source, cfg BreakerConfig) *BreakerSource {
	if cfg.Name == "" {
		cfg.Name = "tile-source"
	}
	minRequests := cfg.MinRequests
	ratio := cfg.FailureRatio

	metrics.CircuitBreakerState.WithLabelValues(cfg.Name).Set(0) // 0 = closed
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(cfg.Name).Set(0)

	cb := gobreaker.NewCircuitBreaker[image.Image](gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.HalfOpenRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.OpenTimeout,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < minRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= ratio
			if shouldTrip {
				logging.Warn().
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", failureRatio*100).
					Msg("[CIRCUIT BREAKER] Opening circuit")
			}
			return shouldTrip
		},

		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrTileNotFound) || errors.Is(err, context.Canceled)
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)

			logging.Info().Str("breaker", name).Str("from", fromStr).Str("to", toStr).Msg("[CIRCUIT BREAKER] State transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()

			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},
	})

	return &BreakerSource{next: next, cb: cb, name: cfg.Name}
}

// Fetch fetches through the breaker. While the circuit is open it fails
// immediately with an error wrapping ErrSourceUnavailable.
func (b *BreakerSource) Fetch(ctx context.Context, a Address) (image.Image, error) {
	img, err := b.cb.Execute(func() (image.Image, error) {
		return b.next.Fetch(ctx, a)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, "rejected").Inc()
			metrics.RecordTileFetch(metrics.TileResultRejected, 0)
			return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
		}
		metrics.CircuitBreakerRequests.WithLabelValues(b.name, "failure").Inc()
		counts := b.cb.Counts()
		metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(b.name).Set(float64(counts.ConsecutiveFailures))
		return nil, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(b.name, "success").Inc()
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(b.name).Set(0)
	return img, nil
}

// State returns "closed", "half-open" or "open".
func (b *BreakerSource) State() string {
	return stateToString(b.cb.State())
}

// Available reports whether fetches are currently let through.
func (b *BreakerSource) Available() bool {
	return b.cb.State() != gobreaker.StateOpen
}

// stateToFloat converts circuit breaker state to numeric value for metrics
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// stateToString converts circuit breaker state to string for logging
func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
