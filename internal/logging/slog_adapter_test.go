// Staticmaps - Static Map Rendering Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staticmaps

package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func newSlog(buf *bytes.Buffer) *slog.Logger {
	return slog.New(NewSlogHandlerWithLogger(zerolog.New(buf)))
}

func TestSlogHandler_Levels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level slog.Level
		want  string
	}{
		{slog.LevelInfo, "info"},
		{slog.LevelWarn, "warn"},
		{slog.LevelError, "error"},
		{slog.LevelError + 4, "error"},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		newSlog(&buf).Log(context.Background(), tt.level, "msg")
		if got := decodeLine(t, strings.TrimSpace(buf.String()))["level"]; got != tt.want {
			t.Errorf("slog level %v -> %v, want %s", tt.level, got, tt.want)
		}
	}
}

func TestSlogToZerologLevel(t *testing.T) {
	t.Parallel()

	tests := map[slog.Level]zerolog.Level{
		slog.LevelDebug - 4: zerolog.TraceLevel,
		slog.LevelDebug:     zerolog.DebugLevel,
		slog.LevelInfo:      zerolog.InfoLevel,
		slog.LevelInfo + 2:  zerolog.InfoLevel,
		slog.LevelWarn:      zerolog.WarnLevel,
		slog.LevelError:     zerolog.ErrorLevel,
	}
	for in, want := range tests {
		if got := slogToZerologLevel(in); got != want {
			t.Errorf("slogToZerologLevel(%v) = %v, want %v", in, got, want)
		}
	}
}

func TestSlogHandler_AttributeKinds(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	newSlog(&buf).Info("supervisor event",
		slog.String("service", "http"),
		slog.Int("restarts", 3),
		slog.Uint64("u", 7),
		slog.Float64("ratio", 0.5),
		slog.Bool("ok", true),
		slog.Duration("backoff", 2*time.Second),
		slog.Any("err", errors.New("listener closed")),
		slog.Group("tree", slog.String("name", "api")),
	)

	m := decodeLine(t, strings.TrimSpace(buf.String()))
	checks := map[string]interface{}{
		"message":   "supervisor event",
		"service":   "http",
		"restarts":  float64(3),
		"u":         float64(7),
		"ratio":     0.5,
		"ok":        true,
		"err":       "listener closed",
		"tree.name": "api",
	}
	for k, v := range checks {
		if m[k] != v {
			t.Errorf("%s = %v (%T), want %v", k, m[k], m[k], v)
		}
	}
	if _, ok := m["backoff"]; !ok {
		t.Error("duration attribute missing")
	}
}

func TestSlogHandler_WithAttrsAndGroup(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := newSlog(&buf).With("layer", "api").WithGroup("svc")
	logger.Info("started", "name", "http")

	m := decodeLine(t, strings.TrimSpace(buf.String()))
	if m["layer"] != "api" {
		t.Errorf("layer = %v", m["layer"])
	}
	if m["svc.name"] != "http" {
		t.Errorf("svc.name = %v, keys: %v", m["svc.name"], m)
	}

	h := NewSlogHandlerWithLogger(zerolog.New(&buf))
	if h.WithGroup("") != h {
		t.Error("empty group should return the same handler")
	}
}

func TestSlogHandler_ContextIDs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	ctx := ContextWithRequestID(context.Background(), "req-9")
	newSlog(&buf).InfoContext(ctx, "with ids")

	if m := decodeLine(t, strings.TrimSpace(buf.String())); m["request_id"] != "req-9" {
		t.Errorf("request_id = %v", m["request_id"])
	}
}

func TestSlogHandler_Enabled(t *testing.T) {
	t.Parallel()

	h := NewSlogHandlerWithLogger(zerolog.New(nil).Level(zerolog.WarnLevel))
	if h.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("info should be disabled on a warn logger")
	}
	if !h.Enabled(context.Background(), slog.LevelError) {
		t.Error("error should be enabled on a warn logger")
	}
}
