// Staticmaps - Static Map Rendering Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staticmaps

package overlay

import (
	"image/color"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"
)

// DefaultAttribution credits the OpenStreetMap tile data.
const DefaultAttribution = "Maps & Data (C) openstreetmap.org and contributors, ODbL"

var (
	attributionBox  = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xb4}
	attributionText = color.RGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}
)

const attributionPadding = 3

// drawAttribution writes text on a translucent box in the bottom-right
// corner.
func drawAttribution(dc *gg.Context, text string) {
	face := basicfont.Face7x13
	dc.SetFontFace(face)

	tw, _ := dc.MeasureString(text)
	h := float64(face.Ascent + face.Descent)
	boxW := tw + 2*attributionPadding
	boxH := h + 2*attributionPadding
	x := float64(dc.Width()) - boxW
	y := float64(dc.Height()) - boxH

	dc.DrawRectangle(x, y, boxW, boxH)
	dc.SetColor(attributionBox)
	dc.Fill()

	dc.SetColor(attributionText)
	dc.DrawString(text, x+attributionPadding, y+attributionPadding+float64(face.Ascent))
}
