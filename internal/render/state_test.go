// Staticmaps - Static Map Rendering Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staticmaps

package render

import (
	"context"
	"testing"
)

func TestStateString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		state State
		want  string
	}{
		{StateReceived, "received"},
		{StateViewportComputed, "viewport_computed"},
		{StateDone, "done"},
		{StateFailed, "failed"},
		{State(42), "state(42)"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", int(tt.state), got, tt.want)
		}
	}
}

func TestStateCanTransition(t *testing.T) {
	t.Parallel()

	tests := []struct {
		from, to State
		want     bool
	}{
		{StateReceived, StateValidated, true},
		{StateValidated, StateViewportComputed, true},
		{StateViewportComputed, StateComposited, true},
		{StateComposited, StateOverlaid, true},
		{StateOverlaid, StateEncoded, true},
		{StateEncoded, StateDone, true},
		{StateReceived, StateFailed, true},
		{StateValidated, StateFailed, true},
		{StateEncoded, StateFailed, true},
		{StateReceived, StateViewportComputed, false},
		{StateComposited, StateValidated, false},
		{StateDone, StateFailed, false},
		{StateFailed, StateReceived, false},
		{StateFailed, StateFailed, false},
	}
	for _, tt := range tests {
		if got := tt.from.CanTransition(tt.to); got != tt.want {
			t.Errorf("%s -> %s = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestTrackerWalksHappyPath(t *testing.T) {
	t.Parallel()

	tr := newTracker(context.Background())
	for s := StateValidated; s <= StateDone; s++ {
		tr.advance(s)
	}
	if tr.state != StateDone {
		t.Errorf("final state = %s, want done", tr.state)
	}
}

func TestTrackerPanicsOnIllegalTransition(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Error("skipping a state should panic")
		}
	}()
	tr := newTracker(context.Background())
	tr.advance(StateComposited)
}
