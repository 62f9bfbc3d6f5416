// Staticmaps - Static Map Rendering Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staticmaps

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomtom215/staticmaps/internal/config"
	"github.com/tomtom215/staticmaps/internal/logging"
	"github.com/tomtom215/staticmaps/internal/supervisor"
	"github.com/tomtom215/staticmaps/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Output:    os.Stderr,
	})

	logging.Info().
		Str("version", version).
		Str("addr", cfg.Server.Addr()).
		Str("tile_template", cfg.Tiles.URLTemplate).
		Msg("Starting staticmaps")

	if len(cfg.Server.CORSOrigins) == 1 && cfg.Server.CORSOrigins[0] == "*" {
		logging.Info().Msg("CORS allows any origin (CORS_ORIGINS=*)")
	}

	a, err := newApp(cfg, nil)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to build render pipeline")
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}
	tree.AddAPIService(services.NewHTTPServerService(a.server, cfg.Server.Addr(), cfg.Server.ShutdownTimeout))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// stop() restores default signal handling, so a second signal during
	// the graceful shutdown kills the process.
	err = tree.Run(ctx, func() {
		stop()
		logging.Info().Msg("Received shutdown signal, waiting for in-flight renders")
	})
	if err != nil {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
	}

	logging.Info().Msg("Staticmaps stopped")
}
