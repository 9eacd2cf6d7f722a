// Package cursor provides the two position-tracked iteration value
// types the rest of McParse is built on: Cursor walks raw source text
// for the lexer, and TokenStream walks a slice of already-lexed trees
// for the shape algebra. Both are value types with no interior
// mutability (spec §4.1) — advancing either returns a new value rather
// than mutating in place, the same way the teacher's lexer threads a
// cursor position through by value across its state functions.
package cursor

import "github.com/wycats/mcparse/token"

// Cursor is a position-tracked view over remaining source text.
type Cursor struct {
	rest   string
	offset int
}

// New returns a Cursor positioned at the start of text.
func New(text string) Cursor {
	return Cursor{rest: text, offset: 0}
}

// Rest returns the unconsumed remainder of the source text.
func (c Cursor) Rest() string { return c.rest }

// Offset returns the absolute byte offset of the cursor.
func (c Cursor) Offset() int { return c.offset }

// Done reports whether the cursor has no remaining text.
func (c Cursor) Done() bool { return len(c.rest) == 0 }

// Advance returns a new Cursor n bytes further into the text.
func (c Cursor) Advance(n int) Cursor {
	return Cursor{rest: c.rest[n:], offset: c.offset + n}
}

// HasPrefix reports whether the remaining text starts with s.
func (c Cursor) HasPrefix(s string) bool {
	if len(s) > len(c.rest) {
		return false
	}
	return c.rest[:len(s)] == s
}

// TokenStream is a position-tracked view over a slice of token trees,
// used by the shape algebra to walk siblings within one Delimited
// group or Group (spec §4.1).
type TokenStream struct {
	trees []token.Tree
	index int
}

// NewTokenStream returns a TokenStream starting at the first tree.
func NewTokenStream(trees []token.Tree) TokenStream {
	return TokenStream{trees: trees}
}

// Len returns the number of unconsumed trees.
func (s TokenStream) Len() int { return len(s.trees) - s.index }

// Peek returns the next unconsumed tree and true, or the zero Tree and
// false if the stream is exhausted.
func (s TokenStream) Peek() (token.Tree, bool) {
	if s.index >= len(s.trees) {
		return token.Tree{}, false
	}
	return s.trees[s.index], true
}

// Advance returns a new TokenStream with the first k trees consumed.
func (s TokenStream) Advance(k int) TokenStream {
	return TokenStream{trees: s.trees, index: s.index + k}
}

// Rest returns the unconsumed trees as a slice.
func (s TokenStream) Rest() []token.Tree {
	return s.trees[s.index:]
}

// EndOffset returns the offset immediately past the last tree in the
// stream's backing slice — the only position a fully exhausted stream
// (Peek returning ok=false) can still be compared against, since it has
// no next tree to derive a span from.
func (s TokenStream) EndOffset() int {
	if len(s.trees) == 0 {
		return 0
	}
	return s.trees[len(s.trees)-1].Span().End
}

// SkipTrivia returns a new TokenStream with any leading Whitespace or
// Comment atoms dropped, without allocating (spec §4.1). Non-atom
// trees (Delimited, Group, Error) are never trivia and stop the skip.
func (s TokenStream) SkipTrivia() TokenStream {
	i := s.index
	for i < len(s.trees) {
		t := s.trees[i]
		if !t.IsAtom() {
			break
		}
		k := t.Atom().Kind
		if k != token.Whitespace && k != token.Comment {
			break
		}
		i++
	}
	return TokenStream{trees: s.trees, index: i}
}
