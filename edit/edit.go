// Package edit implements incremental re-lex (spec §4.7): applying a
// single text edit to a green tree without re-lexing the whole source,
// by locating the narrowest enclosing Delimited node, re-lexing just
// its content, and splicing the result back via green.Node.WithChildren
// path-copying (the same technique package green's doc comment
// attributes to the teacher's persistent treap, lang/scope/namespace.go).
package edit

import (
	"strings"

	"github.com/wycats/mcparse/green"
	"github.com/wycats/mcparse/langdef"
	"github.com/wycats/mcparse/lexer"
	"github.com/wycats/mcparse/red"
	"github.com/wycats/mcparse/token"
)

// TextEdit describes replacing source[Start:End] with NewText (spec
// §4.7).
type TextEdit struct {
	Start   int
	End     int
	NewText string
}

// Apply implements apply_edit (spec §6). It locates the deepest
// Delimited node whose content fully contains the edit, re-lexes that
// node's content, and splices the result back up to the root. On any
// failure to produce a balanced re-lex at that depth, it bubbles up to
// the next enclosing Delimited ancestor; the ultimate fallback is a
// full re-lex of the entire source.
func Apply(root *green.Node, e TextEdit, lang *langdef.Definition) *green.Node {
	oldText := root.Text()
	fullText := oldText[:e.Start] + e.NewText + oldText[e.End:]

	rootRed := red.At(root, 0)
	target := findDeepestDelimited(rootRed, e.Start, e.End)

	for node := target; node != nil; node = enclosingDelimited(node) {
		if spliced := tryReplace(node, e, lang); spliced != nil {
			return rebuildToRoot(node, spliced)
		}
	}

	return green.Of(lexer.Lex(fullText, lang))
}

// findDeepestDelimited returns the deepest red Delimited descendant of
// n (n itself excluded unless it is Delimited) whose content span fully
// contains [lo, hi), or nil if none does.
func findDeepestDelimited(n *red.Node, lo, hi int) *red.Node {
	if n.Green.IsDelimited() {
		cs, ce := contentSpan(n)
		if lo < cs || hi > ce {
			return nil
		}
	}

	var best *red.Node
	if n.Green.IsDelimited() {
		best = n
	}
	for _, c := range n.Children() {
		if lo >= c.Offset && hi <= c.End() {
			if deeper := findDeepestDelimited(c, lo, hi); deeper != nil {
				best = deeper
			}
		}
	}
	return best
}

// enclosingDelimited returns the nearest strict ancestor of n that is a
// Delimited node, skipping over Group ancestors along the way.
func enclosingDelimited(n *red.Node) *red.Node {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Green.IsDelimited() {
			return p
		}
	}
	return nil
}

// contentSpan returns the absolute [start, end) of n's content, i.e.
// excluding the opener and (if present) the closer text.
func contentSpan(n *red.Node) (int, int) {
	delim := n.Green.Delimiter()
	start := n.Offset + len(delim.Open)
	end := n.End()
	if n.Green.Closed() {
		end -= len(delim.Close)
	}
	return start, end
}

// tryReplace attempts step 2-4 of apply_edit at node: reconstruct
// node's content, apply e, re-lex, and verify the result is balanced at
// its top level. Returns the replacement green node on success, nil on
// failure.
func tryReplace(node *red.Node, e TextEdit, lang *langdef.Definition) *green.Node {
	cs, _ := contentSpan(node)

	var b strings.Builder
	for _, c := range node.Green.Children() {
		b.WriteString(c.Text())
	}
	content := b.String()

	localStart := e.Start - cs
	localEnd := e.End - cs
	if localStart < 0 || localEnd > len(content) || localStart > localEnd {
		return nil
	}
	newContent := content[:localStart] + e.NewText + content[localEnd:]

	trees := lexer.Lex(newContent, lang)
	if !topLevelBalanced(trees) {
		return nil
	}

	children := green.Of(trees).Children()
	return node.Green.WithChildren(children)
}

func topLevelBalanced(trees []token.Tree) bool {
	for _, t := range trees {
		if t.IsDelimited() && !t.Closed() {
			return false
		}
		if t.IsError() {
			return false
		}
	}
	return true
}

// rebuildToRoot clones the path from node to the root, swapping node's
// green representation for replacement at each step and sharing every
// unchanged sibling by reference (spec §4.7 step 5).
func rebuildToRoot(node *red.Node, replacement *green.Node) *green.Node {
	current := replacement
	for n := node; n.Parent != nil; n = n.Parent {
		parent := n.Parent
		siblings := parent.Green.Children()
		newSiblings := make([]*green.Node, len(siblings))
		copy(newSiblings, siblings)
		for i, s := range siblings {
			if s == n.Green {
				newSiblings[i] = current
				break
			}
		}
		current = parent.Green.WithChildren(newSiblings)
	}
	return current
}
