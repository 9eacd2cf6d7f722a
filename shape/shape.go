// Package shape implements the combinator algebra (spec §4.4): a small
// set of primitives — term, seq, choice, rep, enter, adjacent, empty,
// end, recover — that compose into a grammar while supporting
// whitespace-sensitive adjacency, error recovery, and cursor-aware
// completion. Each primitive is its own concrete type implementing
// Shape, per spec §9's design note: no node needs boxing beyond the
// Shape interface value itself, and recursion through a grammar rule
// calling itself is handled the same way the teacher's parser recurses
// through ordinary Go function calls (lang/parser.go's read/readOp
// mutual recursion), not through an explicit AST of combinators.
package shape

import (
	"github.com/wycats/mcparse/cursor"
	"github.com/wycats/mcparse/token"
)

// Shape is the capability every combinator implements: given a
// TokenStream and a MatchContext, produce the consumed tree and the
// remainder, or a ParseError (spec §4.4).
type Shape interface {
	Match(s cursor.TokenStream, ctx *MatchContext) (token.Tree, cursor.TokenStream, *ParseError)
}

// Term skips leading whitespace/comments, then consumes one tree if m
// accepts it.
func Term(m Matcher) Shape { return termShape{m} }

type termShape struct{ m Matcher }

func (t termShape) Match(s cursor.TokenStream, ctx *MatchContext) (token.Tree, cursor.TokenStream, *ParseError) {
	trimmed := s.SkipTrivia()
	peeked, ok := trimmed.Peek()
	if at, hasCursor := ctx.CursorOffset(); hasCursor {
		if ok {
			if at >= peeked.Span().Start && at <= peeked.Span().End {
				ctx.recordSuggestion(t.m.Describe())
			}
		} else if at >= trimmed.EndOffset() {
			// Nothing left to peek: the cursor can only be at or past
			// the end of this stream, which is exactly the position
			// this matcher is being attempted at (spec §4.6 point 2).
			ctx.recordSuggestion(t.m.Describe())
		}
	}
	if !ok || !t.m.Matches(peeked) {
		return token.Tree{}, trimmed, expectationError(spanFor(trimmed, peeked, ok), t.m.Describe(), peeked, ok)
	}
	return peeked, trimmed.Advance(1), nil
}

func spanFor(s cursor.TokenStream, t token.Tree, ok bool) token.Span {
	if ok {
		return t.Span()
	}
	return token.Span{}
}

// Seq runs a, then runs b on the remainder. Errors propagate unchanged
// from whichever side fails first.
func Seq(a, b Shape) Shape { return seqShape{a, b} }

type seqShape struct{ a, b Shape }

func (s seqShape) Match(stream cursor.TokenStream, ctx *MatchContext) (token.Tree, cursor.TokenStream, *ParseError) {
	aTree, rest, err := s.a.Match(stream, ctx)
	if err != nil {
		return token.Tree{}, rest, err
	}
	bTree, rest2, err := s.b.Match(rest, ctx)
	if err != nil {
		return token.Tree{}, rest2, err
	}
	return token.NewGroup([]token.Tree{aTree, bTree}), rest2, nil
}

// Choice attempts a on a cloned stream; if a succeeds, it commits. If a
// fails, b is tried fresh against the original stream — spec §9's Open
// Question (a) resolves ambiguity about partial consumption by
// mandating exactly this: branches run against a copy (TokenStream is
// already a value type, so stream here is never mutated by a's
// attempt), and only the winner's remainder is returned. a's error is
// discarded if b succeeds or fails; on double failure b's error wins.
func Choice(a, b Shape) Shape { return choiceShape{a, b} }

type choiceShape struct{ a, b Shape }

func (c choiceShape) Match(stream cursor.TokenStream, ctx *MatchContext) (token.Tree, cursor.TokenStream, *ParseError) {
	if tree, rest, err := c.a.Match(stream, ctx); err == nil {
		return tree, rest, nil
	}
	tree, rest, err := c.b.Match(stream, ctx)
	return tree, rest, err
}

// Rep repeatedly runs a until it fails, collecting successes into a
// Group. Always succeeds, possibly with zero children.
func Rep(a Shape) Shape { return repShape{a} }

type repShape struct{ a Shape }

func (r repShape) Match(stream cursor.TokenStream, ctx *MatchContext) (token.Tree, cursor.TokenStream, *ParseError) {
	var children []token.Tree
	cur := stream
	for {
		tree, rest, err := r.a.Match(cur, ctx)
		if err != nil {
			break
		}
		progressed := rest.Len() < cur.Len()
		children = append(children, tree)
		cur = rest
		if !progressed {
			break
		}
	}
	return token.NewGroup(children), cur, nil
}

// Enter requires the current tree to be a Delimited node matching
// delimName, then recurses inner on its children with an implicit
// End() — inner must consume all of them.
func Enter(delimName string, inner Shape) Shape { return enterShape{delimName, inner} }

type enterShape struct {
	delimName string
	inner     Shape
}

func (e enterShape) Match(stream cursor.TokenStream, ctx *MatchContext) (token.Tree, cursor.TokenStream, *ParseError) {
	trimmed := stream.SkipTrivia()
	peeked, ok := trimmed.Peek()
	if !ok || !peeked.IsDelimited() || peeked.Delimiter().Name != e.delimName {
		return token.Tree{}, trimmed, expectationError(spanFor(trimmed, peeked, ok), e.delimName, peeked, ok)
	}

	childStream := cursor.NewTokenStream(peeked.Children())
	_, innerRest, err := e.inner.Match(childStream, ctx)
	if err != nil {
		return token.Tree{}, trimmed, err
	}
	if remaining := innerRest.SkipTrivia(); remaining.Len() != 0 {
		leftover, _ := remaining.Peek()
		return token.Tree{}, trimmed, expectationError(leftover.Span(), "end of "+e.delimName, leftover, true)
	}

	return peeked, trimmed.Advance(1), nil
}

// Adjacent runs a, then peeks the raw next tree without whitespace
// skipping — if it is whitespace or a comment, fails; otherwise runs b.
// This is what lets a grammar distinguish `x.y` from `x . y` (spec
// §4.4, testable property #7).
func Adjacent(a, b Shape) Shape { return adjacentShape{a, b} }

type adjacentShape struct{ a, b Shape }

func (ad adjacentShape) Match(stream cursor.TokenStream, ctx *MatchContext) (token.Tree, cursor.TokenStream, *ParseError) {
	aTree, rest, err := ad.a.Match(stream, ctx)
	if err != nil {
		return token.Tree{}, rest, err
	}
	if peeked, ok := rest.Peek(); ok && peeked.IsAtom() {
		kind := peeked.Atom().Kind
		if kind == token.Whitespace || kind == token.Comment {
			return token.Tree{}, rest, &ParseError{Span: peeked.Span(), Expected: "no intervening whitespace", Found: "whitespace"}
		}
	}
	bTree, rest2, err := ad.b.Match(rest, ctx)
	if err != nil {
		return token.Tree{}, rest2, err
	}
	return token.NewGroup([]token.Tree{aTree, bTree}), rest2, nil
}

// Empty always succeeds, consumes nothing, and yields an empty Group —
// the closest fit within the four-variant TokenTree sum type (spec §3)
// to the "Empty tree" spec §4.4 describes.
func Empty() Shape { return emptyShape{} }

type emptyShape struct{}

func (emptyShape) Match(stream cursor.TokenStream, ctx *MatchContext) (token.Tree, cursor.TokenStream, *ParseError) {
	return token.NewGroup(nil), stream, nil
}

// End succeeds iff no trees remain, after skipping trivia.
func End() Shape { return endShape{} }

type endShape struct{}

func (endShape) Match(stream cursor.TokenStream, ctx *MatchContext) (token.Tree, cursor.TokenStream, *ParseError) {
	trimmed := stream.SkipTrivia()
	if trimmed.Len() != 0 {
		peeked, _ := trimmed.Peek()
		return token.Tree{}, trimmed, expectationError(peeked.Span(), "end of input", peeked, true)
	}
	return token.NewGroup(nil), trimmed, nil
}

// Recover runs inner; on failure it discards the error, advances the
// stream token-by-token until terminator matches (consumed) or the
// stream ends, and always succeeds with a TokenTree Error node (spec
// §4.4, §7). Recovery rescans from the original stream position, not
// wherever inner's own partial attempt left off, for the same
// no-partial-consumption reason Choice does (spec §9 Open Question a).
func Recover(inner Shape, terminator Matcher) Shape { return recoverShape{inner, terminator} }

type recoverShape struct {
	inner      Shape
	terminator Matcher
}

func (r recoverShape) Match(stream cursor.TokenStream, ctx *MatchContext) (token.Tree, cursor.TokenStream, *ParseError) {
	tree, rest, err := r.inner.Match(stream, ctx)
	if err == nil {
		return tree, rest, nil
	}

	var skipped []token.Tree
	cur := stream
	for {
		peeked, ok := cur.Peek()
		if !ok {
			break
		}
		skipped = append(skipped, peeked)
		cur = cur.Advance(1)
		if r.terminator.Matches(peeked) {
			break
		}
	}

	span := token.Span{}
	if len(skipped) > 0 {
		span = token.Span{Start: skipped[0].Span().Start, End: skipped[len(skipped)-1].Span().End}
	}
	return token.NewError(err.Error(), skipped, span), cur, nil
}

// Opt = choice(a, empty()).
func Opt(a Shape) Shape { return Choice(a, Empty()) }

// Separated = seq(item, rep(seq(sep, item))).
func Separated(item, sep Shape) Shape { return Seq(item, Rep(Seq(sep, item))) }

// Joined = seq(a, rep(adjacent(empty(), a))) — one-or-more with no
// intervening whitespace.
func Joined(a Shape) Shape { return Seq(a, Rep(Adjacent(Empty(), a))) }
