// Staticmaps - Static Map Rendering Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staticmaps

/*
Package supervisor provides process supervision using suture v4.

	RootSupervisor ("staticmaps")
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

A crashed service is restarted with suture's failure decay and backoff.
Supervisor events (service panics, restarts, backoff) are logged through
sutureslog into the zerolog-backed slog logger from the logging package.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.Addr(), cfg.Server.ShutdownTimeout))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	err = tree.Run(ctx, stop)

Cancelling the context stops each service within ShutdownTimeout.
UnstoppedServiceReport lists the ones that did not.
*/
package supervisor
