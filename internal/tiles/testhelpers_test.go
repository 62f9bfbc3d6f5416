// Staticmaps - Static Map Rendering Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staticmaps

package tiles

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

// solidTile returns a size x size tile filled with c.
func solidTile(c color.Color, size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// encodePNG encodes img or fails the test.
func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

// colorFor gives every address a distinct, reproducible colour.
func colorFor(a Address) color.RGBA {
	return color.RGBA{R: uint8(a.X*37 + 11), G: uint8(a.Y*53 + 29), B: uint8(int(a.Z)*71 + 3), A: 0xff}
}
