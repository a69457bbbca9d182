// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package source implements procedural mesh sources.
package source

import (
	"math"

	"github.com/gviegas/cellvis/linear"
	"github.com/gviegas/cellvis/mesh"
)

// Sphere produces a triangulated sphere.
// The sphere is made of two poles on the z axis plus
// PhiResolution-2 latitude rings of ThetaResolution
// points each.
type Sphere struct {
	Radius          float32
	Center          linear.V3
	ThetaResolution int
	PhiResolution   int
}

// Minimum resolution along either direction.
const MinResolution = 3

// NewSphere returns a unit-diameter sphere with the
// default resolution of 8 by 8.
func NewSphere() *Sphere {
	return &Sphere{Radius: 0.5, ThetaResolution: 8, PhiResolution: 8}
}

// Output creates the sphere's poly data.
func (s *Sphere) Output() *mesh.PolyData {
	pd := mesh.New()
	s.Update(pd)
	return pd
}

// Update overwrites pd with the sphere's geometry.
// A sphere of t by p resolution has 2+t(p-2) points
// and 2t(p-2) triangles.
func (s *Sphere) Update(pd *mesh.PolyData) {
	nt := max(MinResolution, s.ThetaResolution)
	np := max(MinResolution, s.PhiResolution)
	r := float64(s.Radius)
	c := s.Center

	nring := np - 2
	pd.Points = make([]linear.V3, 0, 2+nt*nring)
	pd.Lines = pd.Lines[:0]
	pd.Polys = make([][]int32, 0, 2*nt*nring)

	pd.Points = append(pd.Points,
		linear.V3{c[0], c[1], c[2] + float32(r)},
		linear.V3{c[0], c[1], c[2] - float32(r)},
	)
	dt := 2 * math.Pi / float64(nt)
	dp := math.Pi / float64(np-1)
	for i := 0; i < nt; i++ {
		sint, cost := math.Sincos(float64(i) * dt)
		for j := 1; j <= nring; j++ {
			sinp, cosp := math.Sincos(float64(j) * dp)
			pd.Points = append(pd.Points, linear.V3{
				c[0] + float32(r*sinp*cost),
				c[1] + float32(r*sinp*sint),
				c[2] + float32(r*cosp),
			})
		}
	}

	// ring returns the ID of the j-th point of the
	// i-th meridian, wrapping around in i.
	ring := func(i, j int) int32 { return int32(2 + (i%nt)*nring + j) }

	for i := 0; i < nt; i++ {
		pd.Polys = append(pd.Polys, []int32{ring(i, 0), ring(i+1, 0), 0})
	}
	for i := 0; i < nt; i++ {
		pd.Polys = append(pd.Polys, []int32{ring(i, nring-1), 1, ring(i+1, nring-1)})
	}
	for i := 0; i < nt; i++ {
		for j := 0; j < nring-1; j++ {
			a, b := ring(i, j), ring(i, j+1)
			d := ring(i+1, j+1)
			pd.Polys = append(pd.Polys, []int32{a, b, d}, []int32{a, d, d - 1})
		}
	}
	pd.Modified()
}
