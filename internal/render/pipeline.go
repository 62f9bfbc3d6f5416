// Staticmaps - Static Map Rendering Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staticmaps

package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"time"

	"github.com/fogleman/gg"
	"github.com/goccy/go-json"

	"github.com/tomtom215/staticmaps/internal/logging"
	"github.com/tomtom215/staticmaps/internal/metrics"
	"github.com/tomtom215/staticmaps/internal/models"
	"github.com/tomtom215/staticmaps/internal/overlay"
	"github.com/tomtom215/staticmaps/internal/tiles"
	"github.com/tomtom215/staticmaps/internal/validation"
	"github.com/tomtom215/staticmaps/internal/viewport"
)

// DefaultDeadline bounds a whole render when Pipeline.Deadline is zero.
const DefaultDeadline = 30 * time.Second

// Compositor produces the basemap for a viewport.
type Compositor interface {
	Compose(ctx context.Context, vp viewport.Viewport) (*tiles.Result, error)
}

// Pipeline turns render requests into PNG images. It holds no per-request
// state and is safe for concurrent use.
type Pipeline struct {
	Fitter     *viewport.Fitter
	Compositor Compositor
	Renderer   *overlay.Renderer

	Defaults Defaults
	Limits   Limits

	// Deadline bounds the render from validation to encoding.
	Deadline time.Duration

	// encode is replaced in tests.
	encode func(w io.Writer, img *image.RGBA) error
}

// Result is a finished render.
type Result struct {
	PNG      []byte
	Viewport viewport.Viewport

	// Tiles is the number of distinct basemap tiles requested.
	Tiles int

	// Warnings lists tiles drawn as placeholders.
	Warnings []tiles.FetchError

	Duration time.Duration
}

// RenderJSON decodes a JSON body from r and renders it. The body must be a
// single JSON value; trailing content is invalid JSON.
func (p *Pipeline) RenderJSON(ctx context.Context, r io.Reader) (*Result, error) {
	start := time.Now()
	tr := newTracker(ctx)

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, p.fail(ctx, tr, start, fmt.Errorf("read body: %w", err))
	}
	var body models.RenderRequestBody
	if err := json.Unmarshal(data, &body); err != nil {
		return nil, p.fail(ctx, tr, start, fmt.Errorf("%w: %w", ErrInvalidJSON, err))
	}
	return p.renderBody(ctx, tr, start, body)
}

// RenderBody validates a decoded body in one pass and renders it.
func (p *Pipeline) RenderBody(ctx context.Context, body models.RenderRequestBody) (*Result, error) {
	return p.renderBody(ctx, newTracker(ctx), time.Now(), body)
}

func (p *Pipeline) renderBody(ctx context.Context, tr *tracker, start time.Time, body models.RenderRequestBody) (*Result, error) {
	if verr := validation.ValidateStructCtx(withLimits(ctx, p.Limits), &body); verr != nil {
		return nil, p.fail(ctx, tr, start, invalidInput(verr))
	}
	req, err := NewRequest(body, p.Defaults)
	if err != nil {
		return nil, p.fail(ctx, tr, start, err)
	}
	return p.render(ctx, tr, start, req)
}

// Render renders a typed request. The request is validated first, so a
// hand-built RenderRequest gets the same checks as a decoded body.
func (p *Pipeline) Render(ctx context.Context, req RenderRequest) (*Result, error) {
	tr := newTracker(ctx)
	start := time.Now()
	if err := req.Validate(p.Limits); err != nil {
		return nil, p.fail(ctx, tr, start, err)
	}
	return p.render(ctx, tr, start, req)
}

func (p *Pipeline) render(parent context.Context, tr *tracker, start time.Time, req RenderRequest) (*Result, error) {
	tr.advance(StateValidated)

	deadline := p.Deadline
	if deadline <= 0 {
		deadline = DefaultDeadline
	}
	ctx, cancel := context.WithTimeout(parent, deadline)
	defer cancel()

	vp, err := p.Fitter.Fit(req.Coordinates(), req.Width, req.Height)
	if err != nil {
		return nil, p.fail(parent, tr, start, fmt.Errorf("fit viewport: %w", err))
	}
	tr.advance(StateViewportComputed)

	base, err := p.Compositor.Compose(ctx, vp)
	if err != nil {
		return nil, p.fail(parent, tr, start, p.contextError(ctx, deadline, err))
	}
	tr.advance(StateComposited)

	p.Renderer.Draw(base.Image, vp, req.Objects())
	tr.advance(StateOverlaid)

	var buf bytes.Buffer
	if err := p.encoder()(&buf, base.Image); err != nil {
		return nil, p.fail(parent, tr, start, fmt.Errorf("%w: %w", ErrEncoding, err))
	}
	tr.advance(StateEncoded)

	// Finishing late is still a timeout. No partial image leaves the pipeline.
	if err := ctx.Err(); err != nil {
		return nil, p.fail(parent, tr, start, p.contextError(ctx, deadline, err))
	}
	tr.advance(StateDone)

	res := &Result{
		PNG:      buf.Bytes(),
		Viewport: vp,
		Tiles:    base.Tiles,
		Warnings: base.Placeholders,
		Duration: time.Since(start),
	}
	metrics.RecordRender(metrics.OutcomeSuccess, vp.Zoom, res.Duration)
	logging.CtxInfo(parent).
		Int("zoom", vp.Zoom).
		Str("center", vp.Center.String()).
		Int("width", vp.Width).
		Int("height", vp.Height).
		Int("tiles", res.Tiles).
		Int("placeholders", len(res.Warnings)).
		Dur("duration", res.Duration).
		Msg("Map rendered")
	return res, nil
}

// contextError classifies a failure that happened while ctx may be done.
// Any expired deadline is a render timeout. Cancellation by the caller
// passes through as context.Canceled.
func (p *Pipeline) contextError(ctx context.Context, deadline time.Duration, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w after %s", ErrRenderTimeout, deadline)
	}
	if ctx.Err() != nil && !errors.Is(err, ctx.Err()) {
		return fmt.Errorf("%w: %w", ctx.Err(), err)
	}
	return err
}

func (p *Pipeline) fail(ctx context.Context, tr *tracker, start time.Time, err error) error {
	tr.advance(StateFailed)
	out := outcome(err)
	metrics.RecordRender(out, 0, time.Since(start))

	ev := logging.CtxWarn(ctx)
	if out == metrics.OutcomeEncodingError || out == metrics.OutcomeError {
		ev = logging.CtxError(ctx)
	}
	ev.Err(err).Str("outcome", out).Msg("Render failed")
	return err
}

func (p *Pipeline) encoder() func(io.Writer, *image.RGBA) error {
	if p.encode != nil {
		return p.encode
	}
	return encodePNG
}

func encodePNG(w io.Writer, img *image.RGBA) error {
	return gg.NewContextForRGBA(img).EncodePNG(w)
}
