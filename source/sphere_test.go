// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package source

import (
	"math"
	"testing"

	"github.com/gviegas/cellvis/linear"
)

func TestSphere(t *testing.T) {
	for _, x := range [...]struct {
		theta, phi    int
		npoint, ncell int
	}{
		{8, 8, 50, 96},
		{10, 10, 82, 160},
		{20, 20, 362, 720},
		{1, 2, 5, 6},
	} {
		s := NewSphere()
		s.ThetaResolution = x.theta
		s.PhiResolution = x.phi
		pd := s.Output()
		if n := len(pd.Points); n != x.npoint {
			t.Fatalf("Sphere %dx%d: points\nhave %d\nwant %d", x.theta, x.phi, n, x.npoint)
		}
		if n := pd.NumCells(); n != x.ncell {
			t.Fatalf("Sphere %dx%d: cells\nhave %d\nwant %d", x.theta, x.phi, n, x.ncell)
		}
		if err := pd.Check(); err != nil {
			t.Fatalf("Sphere %dx%d: Check: %v", x.theta, x.phi, err)
		}
		for i, p := range pd.Points {
			if d := float64(p.Len()) - 0.5; math.Abs(d) > 1e-6 {
				t.Fatalf("Sphere %dx%d: point %d not on the sphere: %v", x.theta, x.phi, i, p)
			}
		}
		for i, c := range pd.Polys {
			if len(c) != 3 {
				t.Fatalf("Sphere %dx%d: cell %d is not a triangle: %v", x.theta, x.phi, i, c)
			}
		}
	}
}

func TestSphereCenter(t *testing.T) {
	s := &Sphere{Radius: 2, Center: linear.V3{1, -1, 3}, ThetaResolution: 6, PhiResolution: 5}
	pd := s.Output()
	b := pd.Bounds()
	if c := b.Center(); math.Abs(float64(c[2]-3)) > 1e-6 {
		t.Fatalf("Sphere.Center: bounds center\nhave %v\nwant z = 3", c)
	}
	if pd.Points[0] != (linear.V3{1, -1, 5}) || pd.Points[1] != (linear.V3{1, -1, 1}) {
		t.Fatalf("Sphere poles\nhave %v, %v\nwant [1 -1 5], [1 -1 1]", pd.Points[0], pd.Points[1])
	}
	v := pd.Version()
	s.Update(pd)
	if pd.Version() <= v {
		t.Fatal("Sphere.Update: Version did not increase")
	}
}
