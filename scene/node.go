// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package scene

import (
	"github.com/gviegas/cellvis/linear"
)

// Node represents a single node in a scene graph.
// Nodes have at most one immediate ancestor and
// an arbitrary number of immediate descendants.
type Node struct {
	// next sibling.
	next *Node
	// Either the previous sibling or, for
	// the first descendant, the ancestor.
	prev *Node
	// First immediate descendant.
	sub *Node

	Name string
	// Local is the transform relative to
	// the ancestor.
	Local linear.M4
	// Data is an optional value attached to
	// the node (e.g., a drawable).
	Data any
}

// NewNode creates an initialized node.
func NewNode() *Node { return new(Node).Init() }

// Init initializes node n.
// It sets n's local transform to identity.
func (n *Node) Init() *Node {
	n.Local.I()
	return n
}

// Insert inserts node sub as immediate descendant
// of node n.
// sub is removed from its current ancestor first.
// sub must not be an ancestor of n.
func (n *Node) Insert(sub *Node) {
	sub.Remove()
	sub.next = n.sub
	sub.prev = n
	if n.sub != nil {
		n.sub.prev = sub
	}
	n.sub = sub
}

// Remove detaches n from its ancestor.
// n's descendants remain attached to n.
func (n *Node) Remove() {
	if n.prev != nil {
		if n.prev.sub == n {
			n.prev.sub = n.next
		} else {
			n.prev.next = n.next
		}
	}
	if n.next != nil {
		n.next.prev = n.prev
	}
	n.next = nil
	n.prev = nil
}

// Parent returns the immediate ancestor of n,
// or nil if n is a root.
func (n *Node) Parent() *Node {
	for x := n; x.prev != nil; x = x.prev {
		if x.prev.sub == x {
			return x.prev
		}
	}
	return nil
}

// ForEach calls f for every descendant of n in
// depth-first, pre-order.
// If f returns false, the descendants of the node
// passed to f are skipped.
func (n *Node) ForEach(f func(*Node) bool) {
	for x := n.sub; x != nil; x = x.next {
		if f(x) {
			x.ForEach(f)
		}
	}
}
