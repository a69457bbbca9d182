// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package colors resolves named colors such as "MistyRose"
// or "DarkSlateGray".
// Names are the SVG 1.1 color keywords and are matched
// case-insensitively.
package colors

import (
	"image/color"
	"strings"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"golang.org/x/image/colornames"

	"github.com/gviegas/cellvis/linear"
)

// ErrTypeUnknown is the error type of Lookup failures.
const ErrTypeUnknown = "color_unknown"

// Lookup returns the color with the given name.
func Lookup(name string) (color.RGBA, error) {
	key := strings.ToLower(strings.ReplaceAll(name, " ", ""))
	c, ok := colornames.Map[key]
	if !ok {
		return color.RGBA{}, errors.New("colors: unknown color name").
			WithType(ErrTypeUnknown).
			WithTag("name", name)
	}
	return c, nil
}

// MustLookup is like Lookup but panics if name is unknown.
func MustLookup(name string) color.RGBA {
	c, err := Lookup(name)
	if err != nil {
		panic(err)
	}
	return c
}

// Color3d returns the RGB components of a named color
// in the range [0, 1].
// Unknown names yield black.
func Color3d(name string) linear.V3 {
	c, err := Lookup(name)
	if err != nil {
		return linear.V3{}
	}
	return RGB(c)
}

// RGB converts c to components in the range [0, 1].
// Alpha is ignored.
func RGB(c color.RGBA) linear.V3 {
	return linear.V3{float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255}
}

// Scale returns c with its RGB components multiplied by s,
// clamped to [0, 1].
func Scale(c color.RGBA, s float32) color.RGBA {
	s = max(0, min(s, 1))
	return color.RGBA{
		R: uint8(float32(c.R) * s),
		G: uint8(float32(c.G) * s),
		B: uint8(float32(c.B) * s),
		A: c.A,
	}
}
