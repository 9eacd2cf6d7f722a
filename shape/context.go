package shape

import (
	"github.com/wycats/mcparse/cursor"
	"github.com/wycats/mcparse/token"
)

// MatchContext is the mutable, passed-through capability every shape
// combinator and every Macro.Expand receives so it can recurse back
// into expression parsing without holding a direct reference to the
// parser (spec §4.4, §9). It is single-owner for the duration of one
// parse (spec §5) and carries the optional cursor offset completion
// needs (spec §4.6) without the core ever synthesizing a cursor token
// into the tree.
type MatchContext struct {
	macros      *Table
	hasCursor   bool
	cursorAt    int
	suggestions *[]string
	seen        map[string]bool
}

// NewMatchContext builds a MatchContext over the given macro table.
func NewMatchContext(macros *Table) *MatchContext {
	return &MatchContext{macros: macros}
}

// WithCursor returns a copy of ctx carrying a completion cursor offset.
// The suggestion set is shared by pointer across copies, so every
// recursive call spawned from the returned context (and from further
// WithCursor copies of it) accumulates into the same collection.
func (ctx *MatchContext) WithCursor(offset int) *MatchContext {
	c := *ctx
	c.hasCursor = true
	c.cursorAt = offset
	if c.suggestions == nil {
		c.suggestions = &[]string{}
		c.seen = map[string]bool{}
	}
	return &c
}

// CursorOffset returns the completion cursor offset, if one was set.
func (ctx *MatchContext) CursorOffset() (int, bool) {
	return ctx.cursorAt, ctx.hasCursor
}

// recordSuggestion notes that a term matcher described by label was
// attempted at a position touching the cursor (spec §4.6 point 2). A
// no-op unless this context carries a cursor.
func (ctx *MatchContext) recordSuggestion(label string) {
	if !ctx.hasCursor || ctx.suggestions == nil || ctx.seen[label] {
		return
	}
	ctx.seen[label] = true
	*ctx.suggestions = append(*ctx.suggestions, label)
}

// Suggestions returns every matcher description recorded by a term
// shape attempted at the cursor position since the cursor was attached,
// across all Match calls made with this context, in attempt order and
// without duplicates.
func (ctx *MatchContext) Suggestions() []string {
	if ctx.suggestions == nil {
		return nil
	}
	return *ctx.suggestions
}

// ParseExpression implements the Pratt-style expression continuation
// loop (spec §4.5, §6): it is reentrant, so a macro's Expand function
// may call back into it for a sub-expression (e.g. the body of a
// grouping macro) with no shared mutable state beyond ctx itself.
func (ctx *MatchContext) ParseExpression(stream cursor.TokenStream, minPrecedence uint) (token.Tree, cursor.TokenStream, *ParseError) {
	return parseExpression(ctx, stream, minPrecedence)
}
