// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"github.com/gviegas/cellvis/linear"
)

// Light is a distant light source.
// The light is emitted in the given Direction and
// behaves as if located infinitely far way.
type Light struct {
	// Direction is in world space. It is ignored
	// for headlights, which always point along
	// the camera's direction of projection.
	Direction linear.V3
	Headlight bool
	Intensity float32
	R, G, B   float32
}

// Headlight returns a white light of unit intensity that
// follows the camera.
func Headlight() Light {
	return Light{Headlight: true, Intensity: 1, R: 1, G: 1, B: 1}
}

// viewDirection returns the direction of l in view space.
func (l *Light) viewDirection(view *linear.M4) (d linear.V3) {
	if l.Headlight {
		return linear.V3{0, 0, -1}
	}
	v := linear.V4{l.Direction[0], l.Direction[1], l.Direction[2], 0}
	v.Mul(view, &v)
	d = linear.V3{v[0], v[1], v[2]}
	d.Norm(&d)
	return
}

// illuminate returns the light intensity reaching a surface
// with the given view-space normal.
// Lighting is two-sided.
func (l *Light) illuminate(dir, normal *linear.V3) float32 {
	c := -dir.Dot(normal)
	if c < 0 {
		c = -c
	}
	lum := (l.R + l.G + l.B) / 3
	return c * l.Intensity * lum
}
