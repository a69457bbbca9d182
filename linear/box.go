// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package linear

import (
	"math"
)

// Box is an axis-aligned bounding box.
// A box whose Min exceeds its Max on any axis is empty.
type Box struct {
	Min V3
	Max V3
}

// Empty returns an empty box, suitable as the
// starting value of a sequence of Extend calls.
func Empty() Box {
	inf := float32(math.Inf(1))
	return Box{V3{inf, inf, inf}, V3{-inf, -inf, -inf}}
}

// IsEmpty returns whether b contains no points.
func (b *Box) IsEmpty() bool {
	return b.Min[0] > b.Max[0] || b.Min[1] > b.Max[1] || b.Min[2] > b.Max[2]
}

// Extend grows b to contain p.
func (b *Box) Extend(p *V3) {
	for i := range p {
		b.Min[i] = min(b.Min[i], p[i])
		b.Max[i] = max(b.Max[i], p[i])
	}
}

// Union grows b to contain c.
func (b *Box) Union(c *Box) {
	if c.IsEmpty() {
		return
	}
	b.Extend(&c.Min)
	b.Extend(&c.Max)
}

// Center returns the center of b.
func (b *Box) Center() (c V3) {
	c.Add(&b.Min, &b.Max)
	c.Scale(0.5, &c)
	return
}

// Size returns the extent of b along each axis.
func (b *Box) Size() (s V3) {
	s.Sub(&b.Max, &b.Min)
	return
}

// Diagonal returns the length of b's diagonal.
func (b *Box) Diagonal() float32 {
	s := b.Size()
	return s.Len()
}

// Contains returns whether p is inside b.
// The faces of b are considered inside.
func (b *Box) Contains(p *V3) bool {
	for i := range p {
		if p[i] < b.Min[i] || p[i] > b.Max[i] {
			return false
		}
	}
	return true
}

// Overlaps returns whether b and c share at least one point.
func (b *Box) Overlaps(c *Box) bool {
	for i := range b.Min {
		if b.Min[i] > c.Max[i] || c.Min[i] > b.Max[i] {
			return false
		}
	}
	return true
}

// Octant returns the i-th of the eight equally sized
// boxes that b splits into.
// Bit 0 of i selects the upper half along x, bit 1
// along y and bit 2 along z.
func (b *Box) Octant(i int) (o Box) {
	c := b.Center()
	for k := range c {
		if i&(1<<k) == 0 {
			o.Min[k], o.Max[k] = b.Min[k], c[k]
		} else {
			o.Min[k], o.Max[k] = c[k], b.Max[k]
		}
	}
	return
}

// Corners returns the eight corners of b, indexed
// like Octant.
func (b *Box) Corners() (c [8]V3) {
	for i := range c {
		for k := 0; k < 3; k++ {
			if i&(1<<k) == 0 {
				c[i][k] = b.Min[k]
			} else {
				c[i][k] = b.Max[k]
			}
		}
	}
	return
}
