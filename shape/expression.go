package shape

import (
	"github.com/wycats/mcparse/cursor"
	"github.com/wycats/mcparse/token"
)

// parseExpression implements spec §4.5's expression-parsing loop. It is
// grounded directly on the teacher's operator-precedence parser
// (lang/parser.go readOp / lang/term/parser.go readOp): both climb
// precedence by recursing with an adjusted minimum precedence for the
// right-hand side, and both dispatch purely on the operator's textual
// name looked up in a table (ops.Table here generalized to
// shape.Table). Where the teacher hard-codes Prolog's seven fx/fy/xf
// /yf/xfx/xfy/yfx operator types, this loop only needs Left/Right
// because spec §4.5 folds prefix/postfix handling into ordinary
// non-operator macros (the head-position dispatch in step 1) and keeps
// only infix continuation here.
func parseExpression(ctx *MatchContext, stream cursor.TokenStream, minPrecedence uint) (token.Tree, cursor.TokenStream, *ParseError) {
	lhs, stream, err := parseHead(ctx, stream)
	if err != nil {
		return token.Tree{}, stream, err
	}

	for {
		name, ok := peekOperatorName(stream)
		if !ok {
			return lhs, stream, nil
		}
		macro, found := ctx.macros.LookupOperator(name)
		if !found {
			return lhs, stream, nil
		}
		// The loop continues purely on precedence vs. the inherited
		// floor, regardless of this operator's own associativity —
		// associativity only shapes the floor passed to its own rhs,
		// below. Branching this check on Associativity as well would
		// stop a tighter-binding left-associative operator (e.g. `*`
		// against a looser `+`) one level too early.
		if macro.Precedence < minPrecedence {
			return lhs, stream, nil
		}

		afterOp := stream.SkipTrivia().Advance(1)
		nextMin := macro.Precedence
		if macro.Associativity == Left {
			nextMin = macro.Precedence + 1
		}

		rhs, rest, err := parseExpression(ctx, afterOp, nextMin)
		if err != nil {
			return token.Tree{}, rest, err
		}

		args := token.NewGroup([]token.Tree{lhs, rhs})
		lhsCopy := lhs
		expanded, expandErr := macro.Expand(ctx, args, &lhsCopy)
		if expandErr != nil {
			span := rhs.Span()
			return token.Tree{}, rest, &ParseError{Span: span, Expected: "valid operands for " + macro.Name, Found: expandErr.Error()}
		}
		lhs = expanded
		stream = rest
	}
}

// parseHead implements spec §4.5 step 1.
func parseHead(ctx *MatchContext, stream cursor.TokenStream) (token.Tree, cursor.TokenStream, *ParseError) {
	trimmed := stream.SkipTrivia()
	peeked, ok := trimmed.Peek()
	if !ok {
		return token.Tree{}, trimmed, &ParseError{Found: "end of input", Expected: "an expression"}
	}

	if peeked.IsAtom() && peeked.Atom().Kind == token.Identifier {
		tok := peeked.Atom()
		macro, found := ctx.macros.LookupNonOperator(tok.Text)
		shadowed := tok.Binding != token.NoBinding
		if found && !shadowed {
			afterName := trimmed.Advance(1)
			args, rest, err := macro.Signature.Match(afterName, ctx)
			if err != nil {
				return token.Tree{}, rest, err
			}
			expanded, expandErr := macro.Expand(ctx, args, nil)
			if expandErr != nil {
				return token.Tree{}, rest, &ParseError{Span: args.Span(), Expected: macro.Name + " expansion", Found: expandErr.Error()}
			}
			return expanded, rest, nil
		}
	}

	return peeked, trimmed.Advance(1), nil
}

// peekOperatorName returns the text of the next tree if it is an
// Identifier or Operator atom, without consuming it.
func peekOperatorName(stream cursor.TokenStream) (string, bool) {
	trimmed := stream.SkipTrivia()
	t, ok := trimmed.Peek()
	if !ok || !t.IsAtom() {
		return "", false
	}
	kind := t.Atom().Kind
	if kind != token.Identifier && kind != token.Operator {
		return "", false
	}
	return t.Atom().Text, true
}
