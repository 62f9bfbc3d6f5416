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
	"io"
	"net/http"
	"time"

	// Decoders for the raster formats tile servers commonly return.
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/tomtom215/staticmaps/internal/logging"
	"github.com/tomtom215/staticmaps/internal/metrics"
)

// maxTileBytes bounds how much of a tile response is read.
const maxTileBytes = 4 << 20

// HTTPConfig configures an HTTPSource.
type HTTPConfig struct {
	Template  Template
	UserAgent string

	// Timeout bounds one tile fetch including retries.
	Timeout time.Duration

	// Retries is the number of extra attempts after a transport error,
	// 429 or 5xx. Backoff doubles after each attempt.
	Retries      int
	RetryBackoff time.Duration

	// RequestsPerSecond limits outbound requests; 0 disables the limiter.
	RequestsPerSecond float64
	Burst             int

	// Client overrides the HTTP client, mainly for tests.
	Client *http.Client
}

// HTTPSource fetches tiles over HTTP from a URL template. Concurrent
// requests for the same tile share one upstream fetch.
type HTTPSource struct {
	cfg     HTTPConfig
	client  *http.Client
	limiter *rate.Limiter
	group   singleflight.Group
}

// NewHTTPSource returns a Source backed by cfg.
func NewHTTPSource(cfg HTTPConfig) *HTTPSource {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.Retries < 0 {
		cfg.Retries = 0
	}

	s := &HTTPSource{cfg: cfg, client: cfg.Client}
	if s.client == nil {
		s.client = &http.Client{
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConnsPerHost: 16,
				IdleConnTimeout:     90 * time.Second,
			},
		}
	}
	if cfg.RequestsPerSecond > 0 {
		s.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), max(cfg.Burst, 1))
	}
	return s
}

// Fetch returns the decoded tile at a. The upstream fetch is detached from
// ctx cancellation so that a shared fetch survives one waiter giving up;
// it is bounded by cfg.Timeout instead.
func (s *HTTPSource) Fetch(ctx context.Context, a Address) (image.Image, error) {
	ch := s.group.DoChan(a.String(), func() (interface{}, error) {
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.Timeout)
		defer cancel()
		return s.fetch(fctx, a)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		img, ok := res.Val.(image.Image)
		if !ok {
			return nil, fmt.Errorf("unexpected tile result type %T", res.Val)
		}
		return img, nil
	}
}

func (s *HTTPSource) fetch(ctx context.Context, a Address) (image.Image, error) {
	url := s.cfg.Template.URL(a)
	start := time.Now()
	backoff := s.cfg.RetryBackoff

	var lastErr error
	for attempt := 0; attempt <= s.cfg.Retries; attempt++ {
		if attempt > 0 {
			logging.CtxDebug(ctx).
				Str("tile", a.String()).
				Int("attempt", attempt).
				Err(lastErr).
				Msg("Retrying tile fetch")
			if err := sleep(ctx, backoff); err != nil {
				break
			}
			backoff *= 2
		}

		img, err := s.get(ctx, url)
		if err == nil {
			metrics.RecordTileFetch(metrics.TileResultSuccess, time.Since(start))
			return img, nil
		}
		lastErr = err
		if !isRetryable(err) || ctx.Err() != nil {
			break
		}
	}

	result := metrics.TileResultFailure
	if errors.Is(lastErr, ErrTileNotFound) {
		result = metrics.TileResultNotFound
	}
	metrics.RecordTileFetch(result, time.Since(start))
	return nil, lastErr
}

func (s *HTTPSource) get(ctx context.Context, url string) (image.Image, error) {
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build tile request: %w", err)
	}
	if s.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", s.cfg.UserAgent)
	}
	req.Header.Set("Accept", "image/png,image/*;q=0.8")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &transportError{err: err}
	}
	defer func() {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxTileBytes))
		_ = resp.Body.Close()
	}()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return nil, fmt.Errorf("%w: %s", ErrTileNotFound, url)
	default:
		return nil, &statusError{code: resp.StatusCode, url: url}
	}

	img, _, err := image.Decode(io.LimitReader(resp.Body, maxTileBytes))
	if err != nil {
		return nil, fmt.Errorf("decode tile %s: %w", url, err)
	}
	return img, nil
}

// statusError is an unexpected HTTP status from the tile server.
type statusError struct {
	code int
	url  string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("tile server returned %d for %s", e.code, e.url)
}

// transportError is a failure below HTTP (dial, TLS, reset).
type transportError struct {
	err error
}

func (e *transportError) Error() string { return "tile request: " + e.err.Error() }
func (e *transportError) Unwrap() error { return e.err }

func isRetryable(err error) bool {
	var te *transportError
	if errors.As(err, &te) {
		return true
	}
	var se *statusError
	if errors.As(err, &se) {
		return se.code == http.StatusTooManyRequests || se.code >= 500
	}
	return false
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
