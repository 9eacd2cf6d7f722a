// Package green implements the immutable, position-independent twin of
// package token's Tree (spec §3, §4.7): a GreenNode only knows its own
// byte width, never an absolute offset, which is what lets identical
// subtrees be shared by reference across successive parse states
// instead of copied. The design note in spec §9 calls this out
// explicitly as the fix for what would otherwise be cyclic parent
// pointers; package red supplies the transient, offset-carrying cursor
// over a GreenNode.
//
// The sharing discipline here is grounded in the teacher's persistent
// treap (lang/scope/namespace.go): that treap never mutates a node in
// place, instead cloning the path from the edited node to the root and
// reusing every untouched sibling by pointer. GreenNode reuses exactly
// that technique, generalized from a name-interning tree to a syntax
// tree (see package edit for the re-lex algorithm that exploits it).
package green

import "github.com/wycats/mcparse/token"

type variant int

const (
	variantAtom variant = iota
	variantDelimited
	variantGroup
	variantError
)

// Node is an immutable green tree node. Nodes are never mutated after
// construction; Node values are typically handled through a *Node so
// that subtrees can be compared and shared by identity.
type Node struct {
	variant  variant
	width    int
	kind     token.AtomKind
	text     string
	delim    token.Delimiter
	closed   bool
	children []*Node
	message  string
	skipped  []*Node
}

// Width returns the node's byte width.
func (n *Node) Width() int { return n.width }

// IsAtom reports whether n wraps a single Token.
func (n *Node) IsAtom() bool { return n.variant == variantAtom }

// IsDelimited reports whether n is a balanced (or unclosed) group.
func (n *Node) IsDelimited() bool { return n.variant == variantDelimited }

// IsGroup reports whether n is a synthetic grouping.
func (n *Node) IsGroup() bool { return n.variant == variantGroup }

// IsError reports whether n is a recovery node.
func (n *Node) IsError() bool { return n.variant == variantError }

// Kind returns the atom kind. Only valid when IsAtom is true.
func (n *Node) Kind() token.AtomKind { return n.kind }

// Delimiter returns the opener/closer pair. Only valid when IsDelimited.
func (n *Node) Delimiter() token.Delimiter { return n.delim }

// Closed reports whether a Delimited node saw its closer before EOF.
func (n *Node) Closed() bool { return n.closed }

// Children returns the node's children, shared by reference with any
// other tree that reused this exact subtree.
func (n *Node) Children() []*Node { return n.children }

// Message returns an Error node's recovery message.
func (n *Node) Message() string { return n.message }

// Skipped returns the trees an Error node swallowed.
func (n *Node) Skipped() []*Node { return n.skipped }

// Of converts an offset-annotated forest (as produced by the lexer or
// by shape matching) into width-only GreenNodes (spec §6's green_of).
// The root is always a synthetic Group so the whole forest has a
// single top-level width.
func Of(trees []token.Tree) *Node {
	children := make([]*Node, len(trees))
	width := 0
	for i, t := range trees {
		children[i] = ofOne(t)
		width += children[i].width
	}
	return &Node{variant: variantGroup, children: children, width: width}
}

func ofOne(t token.Tree) *Node {
	switch {
	case t.IsAtom():
		tok := t.Atom()
		return &Node{variant: variantAtom, kind: tok.Kind, text: tok.Text, width: len(tok.Text)}

	case t.IsDelimited():
		kids := t.Children()
		children := make([]*Node, len(kids))
		width := len(t.Delimiter().Open)
		for i, k := range kids {
			children[i] = ofOne(k)
			width += children[i].width
		}
		if t.Closed() {
			width += len(t.Delimiter().Close)
		}
		return &Node{variant: variantDelimited, delim: t.Delimiter(), closed: t.Closed(), children: children, width: width}

	case t.IsGroup():
		kids := t.Children()
		children := make([]*Node, len(kids))
		width := 0
		for i, k := range kids {
			children[i] = ofOne(k)
			width += children[i].width
		}
		return &Node{variant: variantGroup, children: children, width: width}

	default: // Error
		skipped := t.Skipped()
		sk := make([]*Node, len(skipped))
		width := 0
		for i, s := range skipped {
			sk[i] = ofOne(s)
			width += sk[i].width
		}
		return &Node{variant: variantError, message: t.Message(), skipped: sk, width: width}
	}
}

// WithChildren returns a new node sharing every field of n except its
// children and width, which are replaced. Siblings that did not change
// are passed through by the caller unchanged, so they remain shared by
// pointer with the previous tree (spec §4.7 step 5).
func (n *Node) WithChildren(children []*Node) *Node {
	width := 0
	for _, c := range children {
		width += c.width
	}
	switch n.variant {
	case variantDelimited:
		if n.closed {
			width += len(n.delim.Open) + len(n.delim.Close)
		} else {
			width += len(n.delim.Open)
		}
	}
	clone := *n
	clone.children = children
	clone.width = width
	return &clone
}

// Text reconstructs the exact source text spanned by n.
func (n *Node) Text() string {
	switch n.variant {
	case variantAtom:
		return n.text
	case variantDelimited:
		s := n.delim.Open
		for _, c := range n.children {
			s += c.Text()
		}
		if n.closed {
			s += n.delim.Close
		}
		return s
	case variantGroup:
		s := ""
		for _, c := range n.children {
			s += c.Text()
		}
		return s
	default:
		s := ""
		for _, c := range n.skipped {
			s += c.Text()
		}
		return s
	}
}
