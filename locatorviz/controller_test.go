// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package locatorviz

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gviegas/cellvis/locator"
	"github.com/gviegas/cellvis/mesh"
	"github.com/gviegas/cellvis/source"
	"github.com/gviegas/cellvis/widget"
)

type surface struct{ redraws int }

func (s *surface) Redraw() { s.redraws++ }

// recorder wraps a partition and records the depths it
// is asked to generate.
type recorder struct {
	Partition
	depths []int
}

func (r *recorder) GenerateRepresentation(depth int, pd *mesh.PolyData) {
	r.depths = append(r.depths, depth)
	r.Partition.GenerateRepresentation(depth, pd)
}

func sphereLocator(theta, phi int) *locator.CellLocator {
	s := source.NewSphere()
	s.ThetaResolution = theta
	s.PhiResolution = phi
	return locator.Build(s.Output())
}

func newController(t *testing.T, theta, phi int) (*Controller, *locator.CellLocator, *surface) {
	t.Helper()
	loc := sphereLocator(theta, phi)
	surf := new(surface)
	c := New(loc, mesh.New(), surf)
	return c, loc, surf
}

func direct(loc Partition, depth int) *mesh.PolyData {
	pd := mesh.New()
	loc.GenerateRepresentation(depth, pd)
	return pd
}

func TestNew(t *testing.T) {
	loc := &recorder{Partition: sphereLocator(20, 20)}
	rep := mesh.New()
	surf := new(surface)
	c := New(loc, rep, surf)

	require.Equal(t, 0, c.Depth())
	require.Equal(t, 2, c.MaxDepth())
	require.Same(t, rep, c.Representation())
	require.Equal(t, []int{0}, loc.depths)
	require.Zero(t, surf.redraws)
	require.True(t, direct(loc.Partition, 0).Equal(rep))
}

func TestQuantize(t *testing.T) {
	for _, x := range []struct {
		raw  float64
		max  int
		want int
	}{
		{0, 2, 0},
		{0.49, 2, 0},
		{0.5, 2, 1},
		{1.4, 2, 1},
		{1.5, 2, 2},
		{1.6, 2, 2},
		{2, 2, 2},
		{2.4, 2, 2},
		{7.4, 2, 2},
		{-0.4, 2, 0},
		{-0.5, 2, 0},
		{-3, 2, 0},
		{1.6, 1, 1},
		{1, 0, 0},
		{math.Inf(1), 3, 3},
		{math.Inf(-1), 3, 0},
		{math.NaN(), 3, 0},
	} {
		require.Equal(t, x.want, Quantize(x.raw, x.max), "Quantize(%v, %d)", x.raw, x.max)
	}
}

func TestDeterministic(t *testing.T) {
	c, loc, _ := newController(t, 20, 20)
	for _, raw := range []float64{0, 0.6, 1.2, 2, 1.51, 0.2} {
		c.OnDepthChanged(raw)
		d := Quantize(raw, c.MaxDepth())
		require.Equal(t, d, c.Depth())
		require.True(t, direct(loc, d).Equal(c.Representation()), "raw %v", raw)
	}
}

func TestIdempotent(t *testing.T) {
	c, _, surf := newController(t, 20, 20)
	c.OnDepthChanged(1)
	first := mesh.New()
	first.Copy(c.Representation())
	v := c.Representation().Version()

	c.OnDepthChanged(1.3)
	require.True(t, first.Equal(c.Representation()))
	require.Greater(t, c.Representation().Version(), v)
	require.Equal(t, 2, surf.redraws)
}

func TestMonotonic(t *testing.T) {
	c, _, _ := newController(t, 20, 20)
	prev := mesh.New()
	prev.Copy(c.Representation())
	for d := 1; d <= c.MaxDepth(); d++ {
		c.OnDepthChanged(float64(d))
		rep := c.Representation()
		require.Greater(t, len(rep.Points), len(prev.Points))
		require.Equal(t, prev.Points, rep.Points[:len(prev.Points)])
		require.Equal(t, prev.Polys, rep.Polys[:len(prev.Polys)])
		prev.Copy(rep)
	}
}

func TestBoundaries(t *testing.T) {
	c, loc, _ := newController(t, 20, 20)

	c.OnDepthChanged(0)
	rep := c.Representation()
	require.Len(t, rep.Points, 8)
	require.Len(t, rep.Polys, 6)
	require.Equal(t, loc.Bounds(), rep.Bounds())

	c.OnDepthChanged(float64(c.MaxDepth()))
	var n int
	for d := 0; d <= c.MaxDepth(); d++ {
		n += loc.NumNodes(d)
	}
	require.Len(t, rep.Points, 8*n)
	require.Len(t, rep.Polys, 6*n)
	require.Equal(t, loc.Bounds(), rep.Bounds())
	require.Len(t, loc.Leaves(), loc.NumNodes(c.MaxDepth()))
}

func TestSphereResolution(t *testing.T) {
	coarse, _, _ := newController(t, 10, 10)
	fine, _, _ := newController(t, 20, 20)
	require.Equal(t, 1, coarse.MaxDepth())
	require.Equal(t, 2, fine.MaxDepth())

	coarse.OnDepthChanged(1.6)
	fine.OnDepthChanged(1.6)
	require.Equal(t, 1, coarse.Depth())
	require.Equal(t, 2, fine.Depth())
	require.Greater(t, len(fine.Representation().Polys), len(coarse.Representation().Polys))
}

func TestOneRedrawPerCall(t *testing.T) {
	c, _, surf := newController(t, 10, 10)
	raws := []float64{0, 1, 1, 0.3, 5, -2, math.NaN()}
	for i, raw := range raws {
		c.OnDepthChanged(raw)
		require.Equal(t, i+1, surf.redraws)
		require.GreaterOrEqual(t, c.Depth(), 0)
		require.LessOrEqual(t, c.Depth(), c.MaxDepth())
	}
}

func TestIdentity(t *testing.T) {
	c, _, _ := newController(t, 20, 20)
	rep := c.Representation()
	for _, raw := range []float64{2, 0, 1} {
		c.OnDepthChanged(raw)
		require.Same(t, rep, c.Representation())
	}
}

// redrawCheck verifies that the representation is
// already regenerated when the surface is redrawn.
type redrawCheck struct {
	t    *testing.T
	c    *Controller
	loc  Partition
	seen int
}

func (r *redrawCheck) Redraw() {
	r.seen++
	require.True(r.t, direct(r.loc, r.c.Depth()).Equal(r.c.Representation()))
}

func TestRegenerateBeforeRedraw(t *testing.T) {
	loc := sphereLocator(20, 20)
	r := &redrawCheck{t: t, loc: loc}
	r.c = New(loc, mesh.New(), r)
	r.c.OnDepthChanged(2)
	r.c.OnDepthChanged(1)
	require.Equal(t, 2, r.seen)
}

type size struct{}

func (size) Size() (int, int) { return 640, 480 }

func TestBind(t *testing.T) {
	c, loc, surf := newController(t, 20, 20)
	rep := widget.NewSliderRepresentation()
	rep.SetRange(-5, 5)
	rep.SetValue(3)
	w := widget.NewSliderWidget(rep, size{})
	c.Bind(w)

	lo, hi := rep.Range()
	require.Equal(t, 0.0, lo)
	require.Equal(t, 2.0, hi)
	require.Equal(t, 0.0, rep.Value())
	require.Zero(t, surf.redraws)

	w.ValueEvent(1.7)
	require.Equal(t, 2, c.Depth())
	require.Equal(t, 1, surf.redraws)
	require.True(t, direct(loc, 2).Equal(c.Representation()))

	w.ValueEvent(9)
	require.Equal(t, 2, c.Depth())
	require.Equal(t, 2, surf.redraws)
}
