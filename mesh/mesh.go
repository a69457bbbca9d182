// Copyright 2022 Gustavo C. Viegas. All rights reserved.

// Package mesh implements the polygonal data representation
// shared by sources, locators and the renderer.
package mesh

import (
	"github.com/aukilabs/go-tooling/pkg/errors"

	"github.com/gviegas/cellvis/linear"
)

// ErrTypeInvalid is the error type of Check failures.
const ErrTypeInvalid = "mesh_invalid"

// PolyData is a collection of points and the cells
// that reference them.
// Cells are numbered lines first, then polys.
//
// Code that writes to the exported fields directly
// must call Modified afterwards.
type PolyData struct {
	Points []linear.V3
	Lines  [][2]int32
	Polys  [][]int32

	version uint64
}

// New creates an empty PolyData.
func New() *PolyData { return new(PolyData) }

// Version returns the modification counter of p.
// It increases on every change made through p's methods
// or signaled by Modified.
func (p *PolyData) Version() uint64 { return p.version }

// Modified signals that p's contents have changed.
func (p *PolyData) Modified() { p.version++ }

// Reset removes all points and cells from p.
// Allocated storage is retained.
func (p *PolyData) Reset() {
	p.Points = p.Points[:0]
	p.Lines = p.Lines[:0]
	p.Polys = p.Polys[:0]
	p.version++
}

// Copy overwrites p with the contents of src.
// p keeps its identity and none of its storage
// aliases src's.
func (p *PolyData) Copy(src *PolyData) {
	p.Points = append(p.Points[:0], src.Points...)
	p.Lines = append(p.Lines[:0], src.Lines...)
	p.Polys = p.Polys[:0]
	for _, c := range src.Polys {
		p.Polys = append(p.Polys, append([]int32(nil), c...))
	}
	p.version++
}

// AddPoint appends a point and returns its ID.
func (p *PolyData) AddPoint(v linear.V3) int32 {
	p.Points = append(p.Points, v)
	p.version++
	return int32(len(p.Points) - 1)
}

// AddLine appends a line cell.
func (p *PolyData) AddLine(a, b int32) {
	p.Lines = append(p.Lines, [2]int32{a, b})
	p.version++
}

// AddPoly appends a polygon cell.
// ids is copied.
func (p *PolyData) AddPoly(ids ...int32) {
	p.Polys = append(p.Polys, append([]int32(nil), ids...))
	p.version++
}

// NumCells returns the number of cells in p.
func (p *PolyData) NumCells() int { return len(p.Lines) + len(p.Polys) }

// Cell returns the point IDs of the i-th cell.
// The returned slice must not be modified.
func (p *PolyData) Cell(i int) []int32 {
	if i < len(p.Lines) {
		return p.Lines[i][:]
	}
	return p.Polys[i-len(p.Lines)]
}

// CellBounds returns the bounding box of the i-th cell.
func (p *PolyData) CellBounds(i int) linear.Box {
	b := linear.Empty()
	for _, id := range p.Cell(i) {
		b.Extend(&p.Points[id])
	}
	return b
}

// Bounds returns the bounding box of p's points.
func (p *PolyData) Bounds() linear.Box {
	b := linear.Empty()
	for i := range p.Points {
		b.Extend(&p.Points[i])
	}
	return b
}

// Equal returns whether p and q have the same points
// and cells.
// The modification counter is not compared.
func (p *PolyData) Equal(q *PolyData) bool {
	if len(p.Points) != len(q.Points) || len(p.Lines) != len(q.Lines) || len(p.Polys) != len(q.Polys) {
		return false
	}
	for i := range p.Points {
		if p.Points[i] != q.Points[i] {
			return false
		}
	}
	for i := range p.Lines {
		if p.Lines[i] != q.Lines[i] {
			return false
		}
	}
	for i := range p.Polys {
		if len(p.Polys[i]) != len(q.Polys[i]) {
			return false
		}
		for j := range p.Polys[i] {
			if p.Polys[i][j] != q.Polys[i][j] {
				return false
			}
		}
	}
	return true
}

// Check validates the cells of p.
func (p *PolyData) Check() error {
	n := int32(len(p.Points))
	for i, c := range p.Lines {
		if c[0] < 0 || c[0] >= n || c[1] < 0 || c[1] >= n {
			return errors.New("mesh: line references point out of range").
				WithType(ErrTypeInvalid).
				WithTag("cell", i).
				WithTag("points", n)
		}
	}
	for i, c := range p.Polys {
		if len(c) < 3 {
			return errors.New("mesh: poly has fewer than 3 points").
				WithType(ErrTypeInvalid).
				WithTag("cell", len(p.Lines)+i).
				WithTag("count", len(c))
		}
		for _, id := range c {
			if id < 0 || id >= n {
				return errors.New("mesh: poly references point out of range").
					WithType(ErrTypeInvalid).
					WithTag("cell", len(p.Lines)+i).
					WithTag("point", id)
			}
		}
	}
	return nil
}
