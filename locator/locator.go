// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package locator implements an octree-based cell locator.
//
// The locator subdivides the bounds of a mesh into octants
// down to a fixed level, keeping only the octants that
// overlap at least one cell. Its subdivision can be
// visualized level by level with GenerateRepresentation.
package locator

import (
	"math"
	"slices"
	"sync"

	"github.com/gviegas/cellvis/internal/bitvec"
	"github.com/gviegas/cellvis/linear"
	"github.com/gviegas/cellvis/mesh"
)

// Options configures the construction of a CellLocator.
type Options struct {
	// CellsPerNode is the target number of cells per
	// leaf used to compute the level automatically.
	CellsPerNode int
	// MaxLevel caps the depth of the tree.
	MaxLevel int
	// Automatic selects the level from the number
	// of cells. When false, Level is used.
	Automatic bool
	// Level is the requested depth when Automatic
	// is false.
	Level int
}

// DefaultOptions returns the options used by Build when
// none are given.
func DefaultOptions() Options {
	return Options{
		CellsPerNode: 25,
		MaxLevel:     8,
		Automatic:    true,
		Level:        8,
	}
}

// node is an octant of the tree.
type node struct {
	box   linear.Box
	depth int
	// Indices into CellLocator.nodes; -1 for
	// octants that overlap no cells.
	child [8]int32
	// Only leaves keep their cells.
	cells []int32
}

// CellLocator is a spatial partition of a mesh's cells.
// It is read-only once built and its queries can be made
// concurrently.
type CellLocator struct {
	pd    *mesh.PolyData
	opts  Options
	level int
	// Nodes in breadth-first order.
	nodes []node
	// nodes[start[d]:start[d+1]] are the nodes
	// at depth d.
	start []int
	// Per-query cell marks.
	marks sync.Pool
}

// Build creates a locator over pd's cells.
// pd must not be modified while the locator is in use.
func Build(pd *mesh.PolyData, opts ...Options) *CellLocator {
	o := DefaultOptions()
	if len(opts) > 0 {
		o = opts[0]
	}
	o.CellsPerNode = max(1, o.CellsPerNode)
	o.MaxLevel = max(0, o.MaxLevel)
	l := &CellLocator{pd: pd, opts: o}
	l.level = selectLevel(pd.NumCells(), &o)
	l.build()
	return l
}

// selectLevel computes the depth of the tree.
func selectLevel(ncell int, o *Options) int {
	lv := o.Level
	if o.Automatic {
		lv = 0
		if ncell > o.CellsPerNode {
			x := math.Log(float64(ncell)/float64(o.CellsPerNode)) / math.Log(8)
			lv = int(math.Ceil(x))
		}
	}
	return max(0, min(lv, o.MaxLevel))
}

// rootBox returns the bounds of pd with degenerate
// axes padded.
func rootBox(pd *mesh.PolyData) linear.Box {
	b := pd.Bounds()
	if b.IsEmpty() {
		b = linear.Box{}
	}
	pad := b.Diagonal() * 1e-3
	if pad == 0 {
		pad = 0.5
	}
	for i := range b.Min {
		if b.Max[i]-b.Min[i] <= pad {
			b.Min[i] -= pad
			b.Max[i] += pad
		}
	}
	return b
}

func (l *CellLocator) build() {
	n := l.pd.NumCells()
	bounds := make([]linear.Box, n)
	root := node{box: rootBox(l.pd), child: noChildren()}
	root.cells = make([]int32, n)
	for i := range n {
		bounds[i] = l.pd.CellBounds(i)
		root.cells[i] = int32(i)
	}
	l.nodes = append(l.nodes[:0], root)
	l.start = append(l.start[:0], 0, 1)
	for d := 0; d < l.level; d++ {
		for i := l.start[d]; i < l.start[d+1]; i++ {
			for k := range 8 {
				box := l.nodes[i].box.Octant(k)
				var cells []int32
				for _, c := range l.nodes[i].cells {
					if box.Overlaps(&bounds[c]) {
						cells = append(cells, c)
					}
				}
				if len(cells) == 0 {
					continue
				}
				l.nodes[i].child[k] = int32(len(l.nodes))
				l.nodes = append(l.nodes, node{
					box:   box,
					depth: d + 1,
					child: noChildren(),
					cells: cells,
				})
			}
			l.nodes[i].cells = nil
		}
		l.start = append(l.start, len(l.nodes))
	}
	l.marks.New = func() any {
		m := new(bitvec.V[uint64])
		m.Grow(n)
		return m
	}
}

func noChildren() [8]int32 { return [8]int32{-1, -1, -1, -1, -1, -1, -1, -1} }

// Level returns the depth of the tree.
// Depth 0 is the root octant; the nodes at depth
// Level are the leaves.
func (l *CellLocator) Level() int { return l.level }

// Options returns the options l was built with.
func (l *CellLocator) Options() Options { return l.opts }

// Bounds returns the root octant.
func (l *CellLocator) Bounds() linear.Box { return l.nodes[0].box }

// NumNodes returns the number of nodes at a given depth.
func (l *CellLocator) NumNodes(depth int) int {
	if depth < 0 || depth > l.level {
		return 0
	}
	return l.start[depth+1] - l.start[depth]
}

// clampDepth clamps depth to [0, l.Level()].
func (l *CellLocator) clampDepth(depth int) int { return max(0, min(depth, l.level)) }

// Faces of a box, as indices into linear.Box.Corners.
var boxFaces = [6][4]int32{
	{0, 4, 6, 2},
	{1, 3, 7, 5},
	{0, 1, 5, 4},
	{2, 6, 7, 3},
	{0, 2, 3, 1},
	{4, 5, 7, 6},
}

// GenerateRepresentation overwrites pd with the boxes of
// every node whose depth is at most depth.
// Each box contributes 8 points and 6 quads.
// Boxes are emitted in breadth-first order, so the output
// for a given depth is a prefix of the output for any
// greater depth.
// depth is clamped to [0, l.Level()].
func (l *CellLocator) GenerateRepresentation(depth int, pd *mesh.PolyData) {
	n := l.start[l.clampDepth(depth)+1]
	pd.Points = slices.Grow(pd.Points[:0], n*8)
	pd.Lines = pd.Lines[:0]
	pd.Polys = slices.Grow(pd.Polys[:0], n*6)
	for i := range n {
		base := int32(len(pd.Points))
		c := l.nodes[i].box.Corners()
		pd.Points = append(pd.Points, c[:]...)
		for _, f := range boxFaces {
			pd.Polys = append(pd.Polys, []int32{base + f[0], base + f[1], base + f[2], base + f[3]})
		}
	}
	pd.Modified()
}

// Leaves returns the boxes of the nodes at depth Level.
func (l *CellLocator) Leaves() []linear.Box {
	s := make([]linear.Box, 0, l.NumNodes(l.level))
	for i := l.start[l.level]; i < l.start[l.level+1]; i++ {
		s = append(s, l.nodes[i].box)
	}
	return s
}

// FindCellsWithinBounds returns the IDs of the cells whose
// bounding boxes overlap b, in increasing order.
func (l *CellLocator) FindCellsWithinBounds(b linear.Box) []int {
	return l.query(&b, func(c int32) bool {
		cb := l.pd.CellBounds(int(c))
		return cb.Overlaps(&b)
	})
}

// FindCell returns the IDs of the cells whose bounding boxes
// contain p, in increasing order.
// The result is empty if p is outside the locator's bounds.
func (l *CellLocator) FindCell(p linear.V3) []int {
	b := linear.Box{Min: p, Max: p}
	return l.query(&b, func(c int32) bool {
		cb := l.pd.CellBounds(int(c))
		return cb.Contains(&p)
	})
}

// query returns the sorted IDs of the leaf cells that
// overlap b and pass match.
func (l *CellLocator) query(b *linear.Box, match func(int32) bool) []int {
	m := l.marks.Get().(*bitvec.V[uint64])
	defer func() {
		m.Clear()
		l.marks.Put(m)
	}()
	l.visit(m, 0, b, match)
	s := make([]int, 0, m.Count())
	for i := range m.Ones() {
		s = append(s, i)
	}
	return s
}

// visit marks the leaf cells under nodes[i] that pass
// match, descending only into nodes that overlap b.
func (l *CellLocator) visit(m *bitvec.V[uint64], i int32, b *linear.Box, match func(int32) bool) {
	nd := &l.nodes[i]
	if !nd.box.Overlaps(b) {
		return
	}
	if nd.depth == l.level {
		for _, c := range nd.cells {
			if !m.IsSet(int(c)) && match(c) {
				m.Set(int(c))
			}
		}
		return
	}
	for _, k := range nd.child {
		if k >= 0 {
			l.visit(m, k, b, match)
		}
	}
}
