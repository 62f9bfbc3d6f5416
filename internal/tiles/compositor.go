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
	"image/color"
	"time"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/staticmaps/internal/logging"
	"github.com/tomtom215/staticmaps/internal/metrics"
	"github.com/tomtom215/staticmaps/internal/projection"
	"github.com/tomtom215/staticmaps/internal/viewport"
)

// Placeholder and background colours.
var (
	BackgroundColor        = color.RGBA{R: 0xf2, G: 0xef, B: 0xe9, A: 0xff}
	PlaceholderColor       = color.RGBA{R: 0xe0, G: 0xe0, B: 0xe0, A: 0xff}
	PlaceholderBorderColor = color.RGBA{R: 0xc0, G: 0xc0, B: 0xc0, A: 0xff}
)

// Defaults for Compositor fields left at zero.
const (
	DefaultConcurrency  = 8
	DefaultFetchTimeout = 10 * time.Second
)

// Compositor fetches the tiles covering a viewport and stitches them into
// a canvas.
type Compositor struct {
	Source    Source
	Projector projection.Projector

	// Concurrency bounds the number of in-flight tile fetches.
	Concurrency int

	// FetchTimeout bounds each tile fetch.
	FetchTimeout time.Duration
}

// Result is a composited basemap.
type Result struct {
	Image *image.RGBA

	// Tiles is the number of distinct tiles requested.
	Tiles int

	// Placeholders lists the tiles that failed and were drawn as
	// placeholders, in grid order.
	Placeholders []FetchError
}

var errNoImage = errors.New("source returned no image")

type fetched struct {
	img image.Image
	err error
}

// Compose returns the basemap for vp. Individual tile failures become
// placeholders and are reported in Result.Placeholders. Compose fails only
// when ctx is done (returning ctx.Err()) or when no tile at all could be
// fetched (wrapping ErrSourceUnavailable).
func (c *Compositor) Compose(ctx context.Context, vp viewport.Viewport) (*Result, error) {
	placements := Cover(vp, c.Projector)

	index := make(map[Address]int, len(placements))
	var unique []Address
	for _, p := range placements {
		if _, ok := index[p.Address]; !ok {
			index[p.Address] = len(unique)
			unique = append(unique, p.Address)
		}
	}

	results := c.fetchAll(ctx, unique)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ts := c.Projector.TileSize()
	canvas := image.NewRGBA(vp.Bounds())
	xdraw.Draw(canvas, canvas.Bounds(), image.NewUniform(BackgroundColor), image.Point{}, xdraw.Src)

	for _, p := range placements {
		r := results[index[p.Address]]
		dst := p.Rect(ts)
		if r.err != nil {
			drawPlaceholder(canvas, dst)
			continue
		}
		pasteTile(canvas, dst, r.img, ts)
	}

	res := &Result{Image: canvas, Tiles: len(unique)}
	for i, r := range results {
		if r.err == nil {
			continue
		}
		res.Placeholders = append(res.Placeholders, FetchError{Address: unique[i], Err: r.err})
		logging.CtxWarn(ctx).
			Str("tile", unique[i].String()).
			Err(r.err).
			Msg("Tile fetch failed, drawing placeholder")
	}
	metrics.RecordPlaceholders(len(res.Placeholders))

	if len(unique) > 0 && len(res.Placeholders) == len(unique) {
		return nil, fmt.Errorf("%w: all %d tiles failed: %w", ErrSourceUnavailable, len(unique), res.Placeholders[0].Err)
	}
	return res, nil
}

// fetchAll fetches every address with bounded concurrency and waits for
// all of them. Failures are recorded per address, never short-circuited.
func (c *Compositor) fetchAll(ctx context.Context, addrs []Address) []fetched {
	limit := c.Concurrency
	if limit <= 0 {
		limit = DefaultConcurrency
	}
	timeout := c.FetchTimeout
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}

	results := make([]fetched, len(addrs))
	var g errgroup.Group
	g.SetLimit(limit)
	for i, a := range addrs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = fetched{err: err}
				return nil
			}
			tctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()
			img, err := c.Source.Fetch(tctx, a)
			if err == nil && img == nil {
				err = errNoImage
			}
			results[i] = fetched{img: img, err: err}
			return nil
		})
	}
	_ = g.Wait() // goroutines never return errors
	return results
}

// pasteTile draws img into dst, scaling when the tile is not ts pixels.
func pasteTile(canvas *image.RGBA, dst image.Rectangle, img image.Image, ts int) {
	b := img.Bounds()
	if b.Dx() == ts && b.Dy() == ts {
		xdraw.Draw(canvas, dst, img, b.Min, xdraw.Src)
		return
	}
	xdraw.ApproxBiLinear.Scale(canvas, dst, img, b, xdraw.Src, nil)
}

// drawPlaceholder fills dst with a flat grey tile and a one pixel border.
func drawPlaceholder(canvas *image.RGBA, dst image.Rectangle) {
	xdraw.Draw(canvas, dst, image.NewUniform(PlaceholderBorderColor), image.Point{}, xdraw.Src)
	inner := dst.Inset(1)
	if !inner.Empty() {
		xdraw.Draw(canvas, inner, image.NewUniform(PlaceholderColor), image.Point{}, xdraw.Src)
	}
}
