// Staticmaps - Static Map Rendering Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staticmaps

package tiles

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/paulmach/orb/maptile"
)

// Address identifies one slippy-map tile by zoom, column and row.
type Address struct {
	maptile.Tile
}

// NewAddress builds an address from integer tile indices.
func NewAddress(x, y, z int) Address {
	return Address{Tile: maptile.New(uint32(x), uint32(y), maptile.Zoom(z))}
}

// String formats the address as "z/x/y".
func (a Address) String() string {
	return fmt.Sprintf("%d/%d/%d", a.Z, a.X, a.Y)
}

// ErrInvalidTemplate is returned for a URL template missing a placeholder.
var ErrInvalidTemplate = errors.New("tile url template must contain {z}, {x} and {y}")

// subdomains rotated through by the {s} placeholder.
var subdomains = [...]string{"a", "b", "c"}

// Template expands tile URLs such as
// "https://tile.openstreetmap.org/{z}/{x}/{y}.png". An optional {s}
// placeholder is replaced by a, b or c chosen from x+y.
type Template struct {
	raw string
}

// ParseTemplate checks that raw contains {z}, {x} and {y}.
func ParseTemplate(raw string) (Template, error) {
	for _, p := range []string{"{z}", "{x}", "{y}"} {
		if !strings.Contains(raw, p) {
			return Template{}, fmt.Errorf("%w: %q lacks %s", ErrInvalidTemplate, raw, p)
		}
	}
	return Template{raw: raw}, nil
}

// MustParseTemplate is ParseTemplate for constants. It panics on error.
func MustParseTemplate(raw string) Template {
	t, err := ParseTemplate(raw)
	if err != nil {
		panic(err)
	}
	return t
}

// URL returns the fetch URL for a.
func (t Template) URL(a Address) string {
	r := strings.NewReplacer(
		"{z}", strconv.Itoa(int(a.Z)),
		"{x}", strconv.FormatUint(uint64(a.X), 10),
		"{y}", strconv.FormatUint(uint64(a.Y), 10),
		"{s}", subdomains[(uint64(a.X)+uint64(a.Y))%uint64(len(subdomains))],
	)
	return r.Replace(t.raw)
}

func (t Template) String() string { return t.raw }
