// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"github.com/gviegas/cellvis/linear"
	"github.com/gviegas/cellvis/mesh"
)

// Actor identifies poly data to be rendered.
// The renderer reads Mesh on every frame, so changes
// made to it in place are picked up by the next render.
type Actor struct {
	Mesh     *mesh.PolyData
	Property Property
	Visible  bool
}

// NewActor creates a visible actor that draws m with
// the default property.
func NewActor(m *mesh.PolyData) *Actor {
	return &Actor{Mesh: m, Property: DefaultProperty(), Visible: true}
}

// bounds returns the bounds of a's mesh transformed
// by world.
func (a *Actor) bounds(world *linear.M4) linear.Box {
	box := linear.Empty()
	if a.Mesh == nil || len(a.Mesh.Points) == 0 {
		return box
	}
	mb := a.Mesh.Bounds()
	for _, c := range mb.Corners() {
		v := linear.Point(&c)
		v.Mul(world, &v)
		box.Extend(&linear.V3{v[0], v[1], v[2]})
	}
	return box
}
