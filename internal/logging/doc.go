// Staticmaps - Static Map Rendering Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staticmaps

// Package logging provides centralized zerolog-based structured logging for
// the static map service.
//
// JSON output is the production default. Console output is available for
// local development.
//
// # Quick Start
//
//	logging.Init(logging.Config{
//	    Level:     "info",
//	    Format:    "json",
//	    Timestamp: true,
//	})
//
//	logging.Info().Str("addr", ":8081").Msg("Server starting")
//	logging.Err(err).Msg("Tile source failed")
//
// # Context-Aware Logging
//
// The request ID middleware stores the request ID and a short correlation ID
// in the request context. Ctx and its level helpers attach both to every
// record:
//
//	logging.CtxInfo(ctx).Int("zoom", 12).Msg("Map rendered")
//	// {"level":"info","service":"staticmaps","request_id":"...","correlation_id":"a1b2c3d4","zoom":12,"message":"Map rendered"}
//
// # Suture Integration
//
// NewSlogLogger returns an slog.Logger backed by the global zerolog logger,
// which the supervisor tree hands to sutureslog:
//
//	handler := &sutureslog.Handler{Logger: logging.NewSlogLogger()}
//
// # Log Levels
//
// trace, debug, info, warn (or warning), error, fatal, panic and disabled.
// Unknown names fall back to info.
//
// # Thread Safety
//
// The global logger is guarded by a RWMutex. Init may be called again to
// reconfigure it.
package logging
