// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"math"

	"github.com/gviegas/cellvis/linear"
)

// Camera is a perspective camera.
type Camera struct {
	Position   linear.V3
	FocalPoint linear.V3
	ViewUp     linear.V3
	// ViewAngle is the vertical field of view
	// in degrees.
	ViewAngle float32
	// Near and far clipping distances.
	// They are updated on every render to
	// enclose the visible actors.
	Near, Far float32
}

// NewCamera returns a camera at (0, 0, 1) looking at the
// origin, with a 30 degree view angle.
func NewCamera() *Camera {
	return &Camera{
		Position:  linear.V3{0, 0, 1},
		ViewUp:    linear.V3{0, 1, 0},
		ViewAngle: 30,
		Near:      0.01,
		Far:       1000,
	}
}

// Distance returns the distance from Position to FocalPoint.
func (c *Camera) Distance() float32 {
	var d linear.V3
	d.Sub(&c.Position, &c.FocalPoint)
	return d.Len()
}

// direction returns the normalized direction of projection.
func (c *Camera) direction() (d linear.V3) {
	d.Sub(&c.FocalPoint, &c.Position)
	d.Norm(&d)
	if d == (linear.V3{}) {
		d = linear.V3{0, 0, -1}
	}
	return
}

// Reset moves the camera along its direction of projection
// such that the whole of bounds fits the view angle.
// The focal point is set to the center of bounds.
func (c *Camera) Reset(bounds linear.Box) {
	if bounds.IsEmpty() {
		return
	}
	dir := c.direction()
	ctr := bounds.Center()
	r := bounds.Diagonal() / 2
	if r == 0 {
		r = 0.5
	}
	half := float64(c.ViewAngle) * math.Pi / 360
	dist := r / float32(math.Sin(half))
	var off linear.V3
	off.Scale(-dist, &dir)
	c.FocalPoint = ctr
	c.Position.Add(&ctr, &off)
	c.ResetClippingRange(bounds)
}

// ResetClippingRange sets Near and Far to enclose bounds.
func (c *Camera) ResetClippingRange(bounds linear.Box) {
	if bounds.IsEmpty() {
		return
	}
	dir := c.direction()
	ctr := bounds.Center()
	var d linear.V3
	d.Sub(&ctr, &c.Position)
	mid := d.Dot(&dir)
	r := bounds.Diagonal()/2*1.01 + 1e-6
	c.Far = max(mid+r, 1e-3)
	c.Near = max(mid-r, c.Far*1e-3)
}

// Azimuth rotates the camera about the view up vector
// centered at the focal point.
func (c *Camera) Azimuth(deg float32) {
	c.orbit(c.ViewUp, deg)
}

// Elevation rotates the camera about the cross product of
// the negated direction of projection and the view up vector,
// centered at the focal point.
// The view up vector is rotated along.
func (c *Camera) Elevation(deg float32) {
	dir := c.direction()
	dir.Scale(-1, &dir)
	var axis linear.V3
	axis.Cross(&dir, &c.ViewUp)
	c.orbit(axis, deg)
	c.ViewUp = rotate(c.ViewUp, axis, deg)
}

func (c *Camera) orbit(axis linear.V3, deg float32) {
	var off linear.V3
	off.Sub(&c.Position, &c.FocalPoint)
	off = rotate(off, axis, deg)
	c.Position.Add(&c.FocalPoint, &off)
}

// rotate rotates v about axis by deg degrees (Rodrigues).
func rotate(v, axis linear.V3, deg float32) linear.V3 {
	axis.Norm(&axis)
	s, co := math.Sincos(float64(deg) * math.Pi / 180)
	sin, cos := float32(s), float32(co)
	var a, b, k linear.V3
	a.Scale(cos, &v)
	b.Cross(&axis, &v)
	b.Scale(sin, &b)
	k.Scale(axis.Dot(&v)*(1-cos), &axis)
	a.Add(&a, &b)
	a.Add(&a, &k)
	return a
}

// view computes the view transform.
func (c *Camera) view(m *linear.M4) {
	m.LookAt(&c.Position, &c.FocalPoint, &c.ViewUp)
}

// projection computes the projection transform.
func (c *Camera) projection(m *linear.M4, aspect float32) {
	m.Perspective(c.ViewAngle*math.Pi/180, aspect, c.Near, c.Far)
}
