package token

import "strings"

// Tree is a node of the token tree the lexer produces. It is a sum type
// over four variants, mirroring spec §3: Atom, Delimited, Group, and
// Error. Exactly one of the accessor methods below applies to a given
// Tree depending on its Variant.
type Tree struct {
	variant  variant
	atom     Token
	delim    Delimiter
	children []Tree
	closed   bool
	message  string
	skipped  []Tree
	span     Span
}

type variant int

const (
	variantAtom variant = iota
	variantDelimited
	variantGroup
	variantError
)

// NewAtom wraps a single Token as a leaf Tree.
func NewAtom(t Token) Tree {
	return Tree{variant: variantAtom, atom: t, span: t.Span}
}

// NewDelimited builds a balanced (or unclosed-at-EOF) group. closed
// reports whether a matching closer was found before EOF.
func NewDelimited(d Delimiter, children []Tree, closed bool, span Span) Tree {
	return Tree{variant: variantDelimited, delim: d, children: children, closed: closed, span: span}
}

// NewGroup builds a synthetic grouping, e.g. macro-expansion output or
// the root of a file. A Group carries no delimiter of its own.
func NewGroup(children []Tree) Tree {
	span := Span{}
	if len(children) > 0 {
		span = Span{Start: children[0].Span().Start, End: children[len(children)-1].Span().End}
	}
	return Tree{variant: variantGroup, children: children, span: span}
}

// NewError builds a recovery node. Always produced by shape.Recover, or
// by the lexer for an unmatched byte.
func NewError(message string, skipped []Tree, span Span) Tree {
	return Tree{variant: variantError, message: message, skipped: skipped, span: span}
}

// IsAtom reports whether this Tree is the Atom variant.
func (t Tree) IsAtom() bool { return t.variant == variantAtom }

// IsDelimited reports whether this Tree is the Delimited variant.
func (t Tree) IsDelimited() bool { return t.variant == variantDelimited }

// IsGroup reports whether this Tree is the Group variant.
func (t Tree) IsGroup() bool { return t.variant == variantGroup }

// IsError reports whether this Tree is the Error variant.
func (t Tree) IsError() bool { return t.variant == variantError }

// Atom returns the wrapped Token. Only valid when IsAtom is true.
func (t Tree) Atom() Token { return t.atom }

// Delimiter returns the opener/closer pair. Only valid when IsDelimited.
func (t Tree) Delimiter() Delimiter { return t.delim }

// Children returns this node's children. Valid for Delimited and Group;
// nil for Atom and Error.
func (t Tree) Children() []Tree { return t.children }

// Closed reports whether a Delimited group saw its closer before EOF.
func (t Tree) Closed() bool { return t.closed }

// Message returns the recovery message of an Error node.
func (t Tree) Message() string { return t.message }

// Skipped returns the trees an Error node swallowed during recovery.
func (t Tree) Skipped() []Tree { return t.skipped }

// Span returns the node's byte span, computed once at construction for
// Delimited/Group/Error and derived from the wrapped Token for Atom.
func (t Tree) Span() Span { return t.span }

// Text reconstructs the exact source text spanned by this node by
// concatenating leaf token text. Used to rebuild a Delimited node's
// content for incremental re-lex (spec §4.7) and for round-trip tests.
func (t Tree) Text() string {
	var b strings.Builder
	t.writeText(&b)
	return b.String()
}

func (t Tree) writeText(b *strings.Builder) {
	switch t.variant {
	case variantAtom:
		b.WriteString(t.atom.Text)
	case variantDelimited:
		b.WriteString(t.delim.Open)
		for _, c := range t.children {
			c.writeText(b)
		}
		if t.closed {
			b.WriteString(t.delim.Close)
		}
	case variantGroup:
		for _, c := range t.children {
			c.writeText(b)
		}
	case variantError:
		for _, c := range t.skipped {
			c.writeText(b)
		}
	}
}

// WithBinding returns a copy of an Atom node with its Binding slot set.
// Only valid when IsAtom is true. Binding is set at most once and never
// cleared (spec invariant, §3): callers only call this on a token whose
// Binding is still token.NoBinding.
func (t Tree) WithBinding(id BindingId) Tree {
	t.atom.Binding = id
	return t
}

// WithChildren returns a copy of a Delimited or Group node with its
// children replaced. Used by incremental re-lex to splice a re-lexed
// subtree back in while leaving the node's other fields untouched.
func (t Tree) WithChildren(children []Tree, span Span) Tree {
	t.children = children
	t.span = span
	return t
}
