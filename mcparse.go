// Package mcparse is the external boundary of the parsing core (spec
// §6): lex, scope, match_shape, parse_expression, green_of, red_at,
// apply_edit, and complete, each a thin wrapper over the corresponding
// internal package. The facade spares a host from importing cursor,
// lexer, scope, edit or complete directly; the host still builds shapes
// with package shape and reads trees through package token. It hands
// the core a Definition and text or trees, and gets back trees, a green
// tree, or completion items.
//
// Every operation here is synchronous and pure over its inputs (spec
// §5): none of them spawn goroutines, block on I/O, or retain state
// between calls beyond what the caller passes back in on the next one.
package mcparse

import (
	"github.com/wycats/mcparse/complete"
	"github.com/wycats/mcparse/cursor"
	"github.com/wycats/mcparse/edit"
	"github.com/wycats/mcparse/green"
	"github.com/wycats/mcparse/langdef"
	"github.com/wycats/mcparse/lexer"
	"github.com/wycats/mcparse/red"
	"github.com/wycats/mcparse/scope"
	"github.com/wycats/mcparse/shape"
	"github.com/wycats/mcparse/token"
)

// TextEdit replaces source[Start:End] with NewText (spec §4.7).
type TextEdit = edit.TextEdit

// CompletionItem is one completion candidate (spec §6).
type CompletionItem = complete.Item

// Lex runs the atomic lexer over text (spec §4.2). Total and pure: it
// never returns an error, reporting unrecognised input and unclosed
// delimiters as tree nodes instead (spec §7).
func Lex(text string, lang *langdef.Definition) []token.Tree {
	return lexer.Lex(text, lang)
}

// Scope runs the binding pass followed by the reference pass over
// trees, mutating every atom's Binding slot in place (spec §4.3, §6).
func Scope(trees []token.Tree, lang *langdef.Definition) {
	scope.BindingPass(trees, lang.IsScopeOpener, lang.Predicate())
	scope.ReferencePass(trees, lang.IsScopeOpener)
}

// MatchShape runs s against trees from the start (spec §4.4, §6),
// returning the consumed tree and the unconsumed remainder, or the
// ParseError s failed with.
func MatchShape(s shape.Shape, trees []token.Tree, ctx *shape.MatchContext) (token.Tree, []token.Tree, *shape.ParseError) {
	stream := cursor.NewTokenStream(trees)
	tree, rest, err := s.Match(stream, ctx)
	if err != nil {
		return token.Tree{}, nil, err
	}
	return tree, rest.Rest(), nil
}

// ParseExpression runs the precedence-climbing expression loop over
// trees starting at minPrecedence (spec §4.5, §6).
func ParseExpression(trees []token.Tree, lang *langdef.Definition, minPrecedence uint) (token.Tree, *shape.ParseError) {
	ctx := shape.NewMatchContext(&lang.Macros)
	stream := cursor.NewTokenStream(trees)
	tree, _, err := ctx.ParseExpression(stream, minPrecedence)
	return tree, err
}

// GreenOf converts an offset-annotated forest into width-only GreenNode
// form (spec §4.7, §6).
func GreenOf(trees []token.Tree) *green.Node {
	return green.Of(trees)
}

// RedAt builds a RedNode cursor over g rooted at offset (spec §6).
func RedAt(g *green.Node, offset int) *red.Node {
	return red.At(g, offset)
}

// ApplyEdit applies e to g, re-lexing only the narrowest enclosing
// Delimited node where possible (spec §4.7, §6).
func ApplyEdit(g *green.Node, e TextEdit, lang *langdef.Definition) *green.Node {
	return edit.Apply(g, e, lang)
}

// Complete computes completion items for trees at cursorOffset (spec
// §4.6, §6), combining scope-visible bindings with the descriptions of
// whichever term matchers top would attempt there. top may be nil if
// the caller only wants binding suggestions.
func Complete(lang *langdef.Definition, trees []token.Tree, top shape.Shape, cursorOffset int) []CompletionItem {
	return complete.At(trees, cursorOffset, lang.IsScopeOpener, top, &lang.Macros)
}
