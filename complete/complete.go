// Package complete implements spec §4.6's completion operation,
// combining two independent sources into one suggestion list: the
// scope-visible bindings at a cursor offset (package scope's
// CollectScopeAt) and the self-descriptions of whichever term matchers
// a grammar's top-level Shape would attempt at that same offset
// (recorded by package shape's MatchContext while re-running Match with
// a cursor attached). Neither source requires the other; complete only
// owns the merge.
package complete

import (
	"github.com/wycats/mcparse/cursor"
	"github.com/wycats/mcparse/scope"
	"github.com/wycats/mcparse/shape"
	"github.com/wycats/mcparse/token"
)

// Kind classifies a CompletionItem (spec §6).
type Kind int

const (
	Keyword Kind = iota
	Variable
	Function
	Other
)

func (k Kind) String() string {
	switch k {
	case Keyword:
		return "Keyword"
	case Variable:
		return "Variable"
	case Function:
		return "Function"
	default:
		return "Other"
	}
}

// Item is one completion candidate (spec §6's CompletionItem). Detail
// is the empty string when the source offers no further description —
// this module never distinguishes that from an intentionally-blank
// detail, mirroring how the language-agnostic CompletionItem leaves
// detail optional rather than meaningful-when-empty.
type Item struct {
	Label  string
	Kind   Kind
	Detail string
}

// At computes completion items for trees at cursorOffset (spec §4.6).
// isScopeOpener identifies scope-opening delimiters the same way it
// does for the binding/reference passes. top, if non-nil, is the
// grammar's top-level Shape; its term matchers contribute Keyword
// suggestions wherever their describe() would apply at the cursor.
// macros backs the MatchContext threaded through the trial match — a
// grammar whose top Shape never recurses into parse_expression may pass
// an empty Table.
func At(trees []token.Tree, cursorOffset int, isScopeOpener func(string) bool, top shape.Shape, macros *shape.Table) []Item {
	var items []Item

	stack := scope.CollectScopeAt(trees, cursorOffset, isScopeOpener)
	for _, frame := range stack.Frames {
		for _, b := range frame.Bindings {
			items = append(items, Item{Label: b.Text, Kind: Variable})
		}
	}

	if top != nil {
		ctx := shape.NewMatchContext(macros).WithCursor(cursorOffset)
		stream := cursor.NewTokenStream(trees)
		// The match's own result (success or ParseError) is not the
		// point of this call; every term matcher it attempts at the
		// cursor position records itself into ctx as a side effect.
		top.Match(stream, ctx)
		for _, label := range ctx.Suggestions() {
			items = append(items, Item{Label: label, Kind: Keyword})
		}
	}

	return items
}
