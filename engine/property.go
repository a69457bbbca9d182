// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"image/color"
)

// Representation selects how an actor's cells are drawn.
type Representation int

// Representations.
const (
	Surface Representation = iota
	Wireframe
	Points
)

// String implements fmt.Stringer.
func (r Representation) String() string {
	switch r {
	case Surface:
		return "Surface"
	case Wireframe:
		return "Wireframe"
	case Points:
		return "Points"
	default:
		return "[!] invalid Representation value"
	}
}

// Interpolation selects the shading of surfaces.
// Only flat shading is implemented.
type Interpolation int

// Interpolations.
const (
	Flat Interpolation = iota
)

// Property describes the appearance of an actor.
type Property struct {
	Color          color.RGBA
	Representation Representation
	Interpolation  Interpolation
	// Ambient and Diffuse weight the lighting
	// of surfaces. Wireframes and points are
	// not lit.
	Ambient float32
	Diffuse float32
	// Opacity is in the range [0, 1].
	Opacity   float32
	LineWidth float64
	PointSize float64
}

// DefaultProperty returns an opaque, white, flat shaded
// surface property.
func DefaultProperty() Property {
	return Property{
		Color:          color.RGBA{255, 255, 255, 255},
		Representation: Surface,
		Interpolation:  Flat,
		Ambient:        0.1,
		Diffuse:        0.9,
		Opacity:        1,
		LineWidth:      1,
		PointSize:      2,
	}
}

// SetRepresentationToWireframe is a shorthand for setting
// p.Representation to Wireframe.
func (p *Property) SetRepresentationToWireframe() { p.Representation = Wireframe }

// SetInterpolationToFlat is a shorthand for setting
// p.Interpolation to Flat.
func (p *Property) SetInterpolationToFlat() { p.Interpolation = Flat }

// shade returns p's color scaled by the given light
// intensity, with p's opacity applied.
func (p *Property) shade(intensity float32) color.NRGBA {
	k := func(c uint8, f float32) uint8 {
		return uint8(max(0, min(float32(c)*f, 255)))
	}
	return color.NRGBA{
		R: k(p.Color.R, intensity),
		G: k(p.Color.G, intensity),
		B: k(p.Color.B, intensity),
		A: uint8(max(0, min(p.Opacity, 1)) * 255),
	}
}
