// Staticmaps - Static Map Rendering Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staticmaps

package render

import (
	"context"
	"fmt"

	"github.com/tomtom215/staticmaps/internal/logging"
)

// State is a stage of one render.
type State int

const (
	StateReceived State = iota
	StateValidated
	StateViewportComputed
	StateComposited
	StateOverlaid
	StateEncoded
	StateDone
	StateFailed
)

var stateNames = [...]string{
	StateReceived:         "received",
	StateValidated:        "validated",
	StateViewportComputed: "viewport_computed",
	StateComposited:       "composited",
	StateOverlaid:         "overlaid",
	StateEncoded:          "encoded",
	StateDone:             "done",
	StateFailed:           "failed",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("state(%d)", int(s))
	}
	return stateNames[s]
}

// Terminal reports whether no transition leaves s.
func (s State) Terminal() bool {
	return s == StateDone || s == StateFailed
}

// CanTransition reports whether the pipeline may move from s to next. The
// happy path is strictly linear. Every non-terminal state may fail.
func (s State) CanTransition(next State) bool {
	if s.Terminal() {
		return false
	}
	if next == StateFailed {
		return true
	}
	return next == s+1
}

// tracker follows one render through its states.
type tracker struct {
	ctx   context.Context
	state State
}

func newTracker(ctx context.Context) *tracker {
	return &tracker{ctx: ctx, state: StateReceived}
}

// advance moves to next. An illegal transition is a bug in the pipeline and
// panics.
func (t *tracker) advance(next State) {
	if !t.state.CanTransition(next) {
		panic(fmt.Sprintf("render: illegal state transition %s -> %s", t.state, next))
	}
	logging.CtxDebug(t.ctx).
		Str("from", t.state.String()).
		Str("to", next.String()).
		Msg("Render state transition")
	t.state = next
}
