// Package langdef defines the Language Definition bundle: the one piece
// of long-lived, read-only data that drives every stage of the pipeline
// (spec §2, §6). It plays the role the teacher's ops.Table played for
// Prolog's operator set, generalized to atoms, delimiters, macros, and
// the binding-site predicate.
package langdef

import (
	"github.com/wycats/mcparse/shape"
	"github.com/wycats/mcparse/token"
)

// AtomRule is one atom recogniser. Match attempts to consume a prefix
// of text and, on success, returns the matched length (> 0); the match
// is tagged with Kind. A zero length return means "no match".
type AtomRule struct {
	Kind  token.AtomKind
	Match func(text string) (length int)
}

// BindingPredicate decides whether trees[i] is a binding site, i.e.
// should receive a fresh BindingId. The default predicate
// (DefaultBindingPredicate) implements "identifier immediately
// following one of a configured keyword set" (spec §4.3).
type BindingPredicate func(trees []token.Tree, i int) bool

// Definition bundles everything a Language Definition provides (spec
// §2, §6): the wire-format data is bit-exact between host and core, so
// every field here is plain data or a pure function, never a pointer
// into mutable host state.
type Definition struct {
	// Atoms are tried in this order; the longest match wins, and ties
	// go to the earlier recogniser (spec §4.2).
	Atoms []AtomRule

	// Delimiters are tried before atoms at each lexer step.
	Delimiters []token.Delimiter

	// Macros are keyword- or operator-triggered expansions, indexed
	// for lookup-by-name through shape.Table.
	Macros shape.Table

	// ScopeOpeners names the Delimiter.Name values that open a new
	// child Scope in the binding pass (spec §4.3). Typically just
	// the block delimiter, e.g. "brace".
	ScopeOpeners []string

	// BindingKeywords is the keyword-set input to
	// DefaultBindingPredicate. Ignored if BindingPredicate is set.
	BindingKeywords []string

	// BindingPredicate overrides DefaultBindingPredicate when set.
	BindingPredicate BindingPredicate
}

// Predicate returns the effective binding-site predicate: the explicit
// BindingPredicate override if set, else DefaultBindingPredicate over
// BindingKeywords.
func (d *Definition) Predicate() BindingPredicate {
	if d.BindingPredicate != nil {
		return d.BindingPredicate
	}
	return DefaultBindingPredicate(d.BindingKeywords)
}

// IsScopeOpener reports whether delimName opens a new scope.
func (d *Definition) IsScopeOpener(delimName string) bool {
	for _, name := range d.ScopeOpeners {
		if name == delimName {
			return true
		}
	}
	return false
}

// DefaultBindingPredicate implements spec §4.3's default: trees[i] is a
// binding site if it is an Identifier atom immediately preceded (after
// skipping whitespace/comments) by a keyword atom whose text is in
// keywords.
func DefaultBindingPredicate(keywords []string) BindingPredicate {
	set := make(map[string]struct{}, len(keywords))
	for _, k := range keywords {
		set[k] = struct{}{}
	}
	return func(trees []token.Tree, i int) bool {
		cur := trees[i]
		if !cur.IsAtom() || cur.Atom().Kind != token.Identifier {
			return false
		}
		j := i - 1
		for j >= 0 {
			prev := trees[j]
			if !prev.IsAtom() {
				return false
			}
			k := prev.Atom().Kind
			if k == token.Whitespace || k == token.Comment {
				j--
				continue
			}
			_, ok := set[prev.Atom().Text]
			return ok
		}
		return false
	}
}
