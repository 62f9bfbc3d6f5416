// Staticmaps - Static Map Rendering Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staticmaps

// Package services provides suture.Service wrappers for long-running
// components.
//
// HTTPServerService binds its listener, serves until the context is
// canceled, then shuts the server down gracefully.
package services
