// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package locatorviz connects a depth input to the
// visualization of a spatial partition.
//
// A Controller owns the depth being shown. Every depth
// change regenerates the partition's representation in
// place, so anything that draws the representation sees
// the new boxes, and then requests exactly one redraw.
package locatorviz

import (
	"math"

	"github.com/aukilabs/go-tooling/pkg/logs"

	"github.com/gviegas/cellvis/mesh"
)

// Partition is the interface that spatial partitions
// must implement to be visualized.
type Partition interface {
	// Level returns the deepest level of the
	// partition, which is the maximum depth.
	Level() int

	// GenerateRepresentation overwrites pd with the
	// boxes of every node at depth less than or
	// equal to depth.
	GenerateRepresentation(depth int, pd *mesh.PolyData)
}

// Redrawer is the interface that render surfaces must
// implement.
type Redrawer interface {
	Redraw()
}

// Controller keeps a representation in sync with the
// depth selected by the user.
// It is not safe for concurrent use; calls are expected
// to come from a single event loop.
type Controller struct {
	part     Partition
	rep      *mesh.PolyData
	surf     Redrawer
	depth    int
	maxDepth int
}

// New creates a controller at depth 0.
// rep is regenerated for depth 0 before New returns, but
// surf is not redrawn.
// The maximum depth is read from part once.
func New(part Partition, rep *mesh.PolyData, surf Redrawer) *Controller {
	c := &Controller{
		part:     part,
		rep:      rep,
		surf:     surf,
		maxDepth: max(part.Level(), 0),
	}
	part.GenerateRepresentation(0, rep)
	return c
}

// Depth returns the current depth.
func (c *Controller) Depth() int { return c.depth }

// MaxDepth returns the maximum depth.
func (c *Controller) MaxDepth() int { return c.maxDepth }

// Representation returns the representation that c
// regenerates.
// Its identity never changes.
func (c *Controller) Representation() *mesh.PolyData { return c.rep }

// Quantize converts a raw input value into a depth in
// [0, maxDepth].
// Values are rounded half away from zero and then
// clamped. NaN yields 0.
func Quantize(raw float64, maxDepth int) int {
	if math.IsNaN(raw) {
		return 0
	}
	r := math.Round(raw)
	switch {
	case r <= 0:
		return 0
	case r >= float64(maxDepth):
		return maxDepth
	}
	return int(r)
}

// OnDepthChanged handles a new raw depth value.
// The representation is regenerated in place and the
// surface is redrawn once per call, even if the depth
// did not change.
func (c *Controller) OnDepthChanged(raw float64) {
	d := Quantize(raw, c.maxDepth)
	c.depth = d
	c.part.GenerateRepresentation(d, c.rep)
	logs.WithTag("raw", raw).
		WithTag("depth", d).
		WithTag("points", len(c.rep.Points)).
		WithTag("polys", len(c.rep.Polys)).
		Debug("depth changed")
	c.surf.Redraw()
}

// Slider is the interface of range inputs that can drive
// a controller.
type Slider interface {
	SetRange(lo, hi float64)
	SetValue(v float64)
	OnInteraction(f func(value float64))
}

// Bind sets the range of s to [0, c.MaxDepth()], its value
// to c.Depth() and subscribes c to its interactions.
func (c *Controller) Bind(s Slider) {
	s.SetRange(0, float64(c.maxDepth))
	s.SetValue(float64(c.depth))
	s.OnInteraction(c.OnDepthChanged)
}
