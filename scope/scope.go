// Package scope implements the binding and reference passes (spec
// §4.3): two depth-first walks over an already-lexed token tree that
// together populate every Token's Binding slot. Binding-first, then
// reference, because a reference may textually precede its binding
// (hoisting) — a single combined pass could not handle that case.
//
// The Scope/Stack design generalizes the teacher's persistent,
// ID-stamped Namespace (lang/scope/namespace.go): where the teacher's
// Namespace interns Prolog symbols into a shared treap keyed by a
// lexicographic address, this package interns identifier text into
// per-block scopes keyed by a monotonically generated BindingId, one
// scope per Delimited node the language configures as a scope-opener.
package scope

import "github.com/wycats/mcparse/token"

// Binding pairs a declared name with the BindingId assigned to it.
type Binding struct {
	Text string
	ID   token.BindingId
}

// Scope maps names to BindingIds within one delimited region.
type Scope struct {
	Parent   *Scope
	Bindings []Binding // declaration order, for completion listings
	byText   map[string]token.BindingId
	Opener   token.Span
}

// declare registers text under id in s.
func (s *Scope) declare(text string, id token.BindingId) {
	if s.byText == nil {
		s.byText = make(map[string]token.BindingId)
	}
	s.byText[text] = id
	s.Bindings = append(s.Bindings, Binding{Text: text, ID: id})
}

// Lookup resolves text through the scope chain, innermost first.
func (s *Scope) Lookup(text string) (token.BindingId, bool) {
	for cur := s; cur != nil; cur = cur.Parent {
		if id, ok := cur.byText[text]; ok {
			return id, true
		}
	}
	return 0, false
}

// Stack is a snapshot of nested scopes, outermost first, innermost
// last — the shape collect_scope_at returns (spec §4.3, §4.6).
type Stack struct {
	Frames []*Scope
}

// Innermost returns the deepest scope in the stack, or nil if empty.
func (s Stack) Innermost() *Scope {
	if len(s.Frames) == 0 {
		return nil
	}
	return s.Frames[len(s.Frames)-1]
}

// Lookup resolves text starting from the innermost frame.
func (s Stack) Lookup(text string) (token.BindingId, bool) {
	return s.Innermost().Lookup(text)
}

// idGenerator hands out monotonically increasing BindingIds, mirroring
// the teacher parser's p.nextID (lang/parser.go / lang/term/parser.go).
type idGenerator struct{ next uint32 }

func (g *idGenerator) nextID() token.BindingId {
	g.next++
	return token.BindingId(g.next)
}

// BindingPass walks trees depth-first, assigning a fresh BindingId to
// every binding-site token (as identified by predicate) and pushing a
// new child Scope whenever it enters a Delimited node whose delimiter
// name is a configured scope-opener. It mutates trees in place.
func BindingPass(trees []token.Tree, isScopeOpener func(string) bool, predicate func(trees []token.Tree, i int) bool) {
	gen := &idGenerator{}
	root := &Scope{}
	bindingWalk(trees, root, gen, isScopeOpener, predicate)
}

func bindingWalk(trees []token.Tree, sc *Scope, gen *idGenerator, isScopeOpener func(string) bool, predicate func([]token.Tree, int) bool) {
	for i := range trees {
		t := trees[i]
		switch {
		case t.IsAtom():
			if predicate(trees, i) {
				id := gen.nextID()
				trees[i] = t.WithBinding(id)
				sc.declare(t.Atom().Text, id)
			}

		case t.IsDelimited():
			child := sc
			if isScopeOpener(t.Delimiter().Name) {
				child = &Scope{Parent: sc, Opener: t.Span()}
			}
			bindingWalk(t.Children(), child, gen, isScopeOpener, predicate)

		case t.IsGroup():
			bindingWalk(t.Children(), sc, gen, isScopeOpener, predicate)

		case t.IsError():
			bindingWalk(t.Skipped(), sc, gen, isScopeOpener, predicate)
		}
	}
}

// ReferencePass walks trees depth-first with a live Stack reconstructed
// as it goes, resolving every identifier token whose Binding is still
// unset to the nearest enclosing binding of the same text. Unresolved
// references are left as token.NoBinding (spec §4.3: "not errors at
// this stage"). It mutates trees in place.
func ReferencePass(trees []token.Tree, isScopeOpener func(string) bool) {
	root := &Scope{}
	collectDeclared(trees, root)
	referenceWalk(trees, root, isScopeOpener)
}

func referenceWalk(trees []token.Tree, sc *Scope, isScopeOpener func(string) bool) {
	for i := range trees {
		t := trees[i]
		switch {
		case t.IsAtom():
			tok := t.Atom()
			if tok.Kind == token.Identifier && tok.Binding == token.NoBinding {
				if id, ok := sc.Lookup(tok.Text); ok {
					trees[i] = t.WithBinding(id)
				}
			}

		case t.IsDelimited():
			child := sc
			if isScopeOpener(t.Delimiter().Name) {
				child = &Scope{Parent: sc, Opener: t.Span()}
				// Re-collect this block's own bindings so lookups
				// inside it see sibling declarations, matching the
				// scope shape BindingPass built.
				collectDeclared(t.Children(), child)
			}
			referenceWalk(t.Children(), child, isScopeOpener)

		case t.IsGroup():
			referenceWalk(t.Children(), sc, isScopeOpener)

		case t.IsError():
			referenceWalk(t.Skipped(), sc, isScopeOpener)
		}
	}
}

// collectDeclared re-derives a Scope's bindings map from the BindingId
// values BindingPass already stamped onto declaration-site tokens,
// without re-running the binding predicate. Declaration sites are
// exactly the tokens whose Binding is set and whose declaring token
// lives directly in this block (not in a nested one).
func collectDeclared(trees []token.Tree, sc *Scope) {
	for _, t := range trees {
		if t.IsAtom() {
			tok := t.Atom()
			if tok.Binding != token.NoBinding {
				sc.declare(tok.Text, tok.Binding)
			}
		}
	}
}

// CollectScopeAt reconstructs the scope stack as it would exist at
// targetOffset (spec §4.3's collect_scope_at), walking to the deepest
// node whose span contains the offset. Unclosed Delimited nodes count
// the cursor as "inside" at their end offset (spec §4.3).
func CollectScopeAt(trees []token.Tree, targetOffset int, isScopeOpener func(string) bool) Stack {
	root := &Scope{}
	stack := Stack{Frames: []*Scope{root}}
	return collectWalk(trees, targetOffset, stack, isScopeOpener)
}

func collectWalk(trees []token.Tree, target int, stack Stack, isScopeOpener func(string) bool) Stack {
	sc := stack.Innermost()
	collectDeclared(trees, sc)

	for _, t := range trees {
		span := t.Span()
		inside := target >= span.Start && target <= span.End
		if t.IsDelimited() {
			if t.Closed() {
				// A closed node's end offset is the position right after
				// its own closer: the cursor there has left the node, so
				// collect_scope_at must pop it rather than recurse in
				// (spec §8: a fully closed program's trailing offset
				// returns the empty/root-only scope stack).
				inside = target >= span.Start && target < span.End
			} else {
				inside = target >= span.Start
			}
		}
		if !inside {
			continue
		}

		if t.IsDelimited() {
			child := sc
			next := stack
			if isScopeOpener(t.Delimiter().Name) {
				child = &Scope{Parent: sc, Opener: span}
				next = Stack{Frames: append(append([]*Scope{}, stack.Frames...), child)}
			}
			return collectWalk(t.Children(), target, next, isScopeOpener)
		}
		if t.IsGroup() {
			return collectWalk(t.Children(), target, stack, isScopeOpener)
		}
		if t.IsError() {
			return collectWalk(t.Skipped(), target, stack, isScopeOpener)
		}
		// Atom: target is inside a leaf token, nothing deeper to enter.
		return stack
	}

	return stack
}
