// Copyright 2022 Gustavo C. Viegas. All rights reserved.

// Package scene provides functionality for creating
// scene graphs.
package scene

import (
	"github.com/gviegas/cellvis/linear"
)

// Scene defines a scene graph.
type Scene struct {
	root Node
}

// New creates an initialized scene.
func New() *Scene { return new(Scene).Init() }

// Init initializes a scene.
func (s *Scene) Init() *Scene {
	s.root.Init()
	s.root.Name = "root"
	return s
}

// Root returns the root node of s.
// Its local transform is the world transform
// of the scene.
func (s *Scene) Root() *Node { return &s.root }

// Insert creates a node holding data and inserts it
// as immediate descendant of the root.
func (s *Scene) Insert(name string, data any) *Node {
	n := NewNode()
	n.Name = name
	n.Data = data
	s.root.Insert(n)
	return n
}

// Len returns the number of nodes in s, excluding
// the root.
func (s *Scene) Len() (n int) {
	s.root.ForEach(func(*Node) bool {
		n++
		return true
	})
	return
}

// Walk calls f for every node of s in depth-first,
// pre-order, passing the node's world transform.
// Nodes are visited in the order they would be drawn.
// If f returns false, the descendants of the node
// passed to f are skipped.
func (s *Scene) Walk(f func(n *Node, world *linear.M4) bool) {
	walk(&s.root, &s.root.Local, f)
}

func walk(n *Node, world *linear.M4, f func(*Node, *linear.M4) bool) {
	for x := n.sub; x != nil; x = x.next {
		var w linear.M4
		w.Mul(world, &x.Local)
		if f(x, &w) {
			walk(x, &w, f)
		}
	}
}
