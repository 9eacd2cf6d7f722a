// Package token defines the data model shared by every stage of the
// pipeline: the lexer emits Tokens and TokenTrees, the scoping passes
// annotate Tokens in place, and the shape algebra consumes TokenTrees.
package token

import "fmt"

// AtomKind classifies the lexeme a Token carries. The built-in kinds
// cover the minimum set a language definition must be able to produce;
// languages may declare further kinds for their own atoms.
type AtomKind int

// The built-in atom kinds.
const (
	Whitespace AtomKind = iota
	Comment
	Identifier
	Number
	String
	Boolean
	Null
	Operator
	Error
)

var atomKindNames = [...]string{
	Whitespace: "Whitespace",
	Comment:    "Comment",
	Identifier: "Identifier",
	Number:     "Number",
	String:     "String",
	Boolean:    "Boolean",
	Null:       "Null",
	Operator:   "Operator",
	Error:      "Error",
}

func (k AtomKind) String() string {
	if int(k) >= 0 && int(k) < len(atomKindNames) && atomKindNames[k] != "" {
		return atomKindNames[k]
	}
	return fmt.Sprintf("AtomKind(%d)", int(k))
}

// Span is a half-open byte range into the source text, [Start, End).
type Span struct {
	Start int
	End   int
}

// Len returns the width of the span in bytes.
func (s Span) Len() int { return s.End - s.Start }

// Contains reports whether offset falls within the span. A span's end
// counts as contained, matching the "cursor at EOF is inside" rule for
// unclosed delimited groups (spec §4.3).
func (s Span) Contains(offset int) bool {
	return s.Start <= offset && offset <= s.End
}

func (s Span) String() string {
	return fmt.Sprintf("%d..%d", s.Start, s.End)
}

// BindingId is an opaque, monotonically assigned identifier linking a
// reference token to the binding-site token that declared it.
type BindingId uint32

// NoBinding is the zero value of BindingId, meaning "unresolved" or
// "not a binding/reference site".
const NoBinding BindingId = 0

// Token is a single lexeme produced by the atomic lexer. Binding is set
// at most once, by the scoping passes, never by the lexer or by macro
// expansion (spec invariants, §3).
type Token struct {
	Kind    AtomKind
	Text    string
	Span    Span
	Binding BindingId
}

func (t Token) String() string {
	return fmt.Sprintf("%s %q @ %s", t.Kind, t.Text, t.Span)
}

// Delimiter names a matched opener/closer pair, e.g. ("paren", "(", ")").
type Delimiter struct {
	Name  string
	Open  string
	Close string
}
