// Package red implements the transient cursor over a green tree (spec
// §3, §9): a RedNode supplies absolute byte offsets in O(depth) by
// walking a parent chain that exists only for the duration of one
// traversal, never stored back onto the GreenNode itself. This is the
// other half of the green/red split: green.Node stores only widths so
// it can be freely shared; red.Node adds position without ever
// mutating the tree it is a view over.
package red

import "github.com/wycats/mcparse/green"

// Node is a transient, offset-carrying wrapper around a *green.Node.
type Node struct {
	Green  *green.Node
	Offset int
	Parent *Node
}

// At builds a RedNode for green rooted at the given absolute offset
// (spec §6's red_at). offset is normally 0 for the tree root.
func At(g *green.Node, offset int) *Node {
	return &Node{Green: g, Offset: offset}
}

// End returns the node's absolute end offset.
func (n *Node) End() int { return n.Offset + n.Green.Width() }

// Child returns the i-th red child, computing its absolute offset as
// this node's offset plus the sum of widths of its preceding siblings
// (the invariant in spec §3).
func (n *Node) Child(i int) *Node {
	children := n.Green.Children()
	if i < 0 || i >= len(children) {
		return nil
	}
	off := n.Offset
	for j := 0; j < i; j++ {
		off += children[j].Width()
	}
	return &Node{Green: children[i], Offset: off, Parent: n}
}

// Children returns every red child of n, in order.
func (n *Node) Children() []*Node {
	children := n.Green.Children()
	out := make([]*Node, len(children))
	off := n.Offset
	for i, c := range children {
		out[i] = &Node{Green: c, Offset: off, Parent: n}
		off += c.Width()
	}
	return out
}

// NodeAt returns the deepest red node whose span contains offset. An
// unclosed Delimited node's span is treated as containing its own end
// offset, matching the "cursor at EOF is inside" rule used by
// collect_scope_at and by completion (spec §4.3, §4.6).
func (n *Node) NodeAt(offset int) *Node {
	if offset < n.Offset || offset > n.End() {
		return nil
	}
	for _, c := range n.Children() {
		if offset >= c.Offset && offset <= c.End() {
			if deeper := c.NodeAt(offset); deeper != nil {
				return deeper
			}
			return c
		}
	}
	return n
}
