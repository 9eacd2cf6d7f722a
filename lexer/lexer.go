// Package lexer implements the atomic lexer (spec §4.2): a total,
// deterministic function from source text and a Language Definition to
// a forest of token trees. It plays the role of the teacher's
// lang/lex.Lex, but where the teacher drives a goroutine-fed channel of
// Lexemes through a hand-written per-rune state machine, this lexer is
// a plain synchronous function over a declared, ordered list of atom
// recognisers — matching spec §5's "single-threaded, synchronous" core
// and spec §4.2's "greedy longest match among atoms, ties go to the
// earlier recogniser" contract, which a fixed Prolog state machine
// cannot express for an arbitrary language.
package lexer

import (
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/wycats/mcparse/langdef"
	"github.com/wycats/mcparse/token"
)

// Lex tokenizes text under the given language definition. It always
// succeeds: every byte is accounted for exactly once, with unmatched
// bytes becoming single-rune Error atoms (spec §4.2).
//
// Text is normalized to NFC first, the same normalization the teacher
// applies before lexing Prolog source (lang/lexer.go, lang/lex/lexer.go)
// so that combining-character identifiers compare equal later in the
// scope maps regardless of how the host supplied them.
func Lex(text string, lang *langdef.Definition) []token.Tree {
	text = norm.String(norm.NFC, text)
	lx := &lexState{text: text, lang: lang}
	lx.run()
	return lx.stack[0].children
}

// builder accumulates the children of one in-progress Delimited group
// (or, at stack depth 0, the root forest).
type builder struct {
	delim    token.Delimiter
	children []token.Tree
	start    int
}

type lexState struct {
	text  string
	lang  *langdef.Definition
	pos   int
	stack []builder
}

func (lx *lexState) run() {
	lx.stack = []builder{{start: 0}} // depth 0: the root forest, no delimiter

	for lx.pos < len(lx.text) {
		rest := lx.text[lx.pos:]

		if d, ok := lx.matchOpener(rest); ok {
			lx.stack = append(lx.stack, builder{
				delim: d,
				start: lx.pos,
			})
			lx.pos += len(d.Open)
			continue
		}

		if lx.atTop() && lx.matchCloser(rest) {
			lx.popClosed()
			continue
		}

		if length, kind, ok := lx.matchAtom(rest); ok {
			start := lx.pos
			lx.pos += length
			lx.emit(token.NewAtom(token.Token{
				Kind: kind,
				Text: lx.text[start:lx.pos],
				Span: token.Span{Start: start, End: lx.pos},
			}))
			continue
		}

		// No delimiter or atom matched: single-rune Error token.
		start := lx.pos
		_, size := utf8.DecodeRuneInString(rest)
		if size == 0 {
			size = 1
		}
		lx.pos += size
		span := token.Span{Start: start, End: lx.pos}
		bad := token.NewAtom(token.Token{Kind: token.Error, Text: lx.text[start:lx.pos], Span: span})
		lx.emit(token.NewError("unrecognized character", []token.Tree{bad}, span))
	}

	// Unclosed builders are popped in order; each becomes an
	// unclosed Delimited whose span extends to EOF (spec §4.2 step 6).
	for len(lx.stack) > 1 {
		lx.popUnclosed()
	}
}

func (lx *lexState) atTop() bool { return len(lx.stack) > 1 }

func (lx *lexState) top() *builder { return &lx.stack[len(lx.stack)-1] }

func (lx *lexState) emit(t token.Tree) {
	top := lx.top()
	top.children = append(top.children, t)
}

// matchOpener checks every declared delimiter's opener text against
// rest, in declaration order (spec §4.2 step 3).
func (lx *lexState) matchOpener(rest string) (token.Delimiter, bool) {
	for _, d := range lx.lang.Delimiters {
		if hasPrefix(rest, d.Open) {
			return d, true
		}
	}
	return token.Delimiter{}, false
}

// matchCloser checks only the current stack top's closer (spec §4.2
// step 4): innermost unclosed opener wins by construction, since
// nothing else is checked while it is on top of the stack.
func (lx *lexState) matchCloser(rest string) bool {
	return hasPrefix(rest, lx.top().delim.Close)
}

func (lx *lexState) popClosed() {
	b := lx.stack[len(lx.stack)-1]
	lx.stack = lx.stack[:len(lx.stack)-1]
	closeLen := len(b.delim.Close)
	lx.pos += closeLen
	node := token.NewDelimited(b.delim, b.children, true, token.Span{Start: b.start, End: lx.pos})
	lx.emit(node)
}

func (lx *lexState) popUnclosed() {
	b := lx.stack[len(lx.stack)-1]
	lx.stack = lx.stack[:len(lx.stack)-1]
	node := token.NewDelimited(b.delim, b.children, false, token.Span{Start: b.start, End: lx.pos})
	lx.emit(node)
}

// matchAtom tries every declared atom recogniser in order, adopting
// the longest successful match; ties go to the earlier recogniser
// (spec §4.2 step 2).
func (lx *lexState) matchAtom(rest string) (length int, kind token.AtomKind, ok bool) {
	bestLen := 0
	var bestKind token.AtomKind
	found := false
	for _, a := range lx.lang.Atoms {
		n := a.Match(rest)
		if n > bestLen {
			bestLen = n
			bestKind = a.Kind
			found = true
		}
	}
	return bestLen, bestKind, found
}

func hasPrefix(s, prefix string) bool {
	if prefix == "" {
		return false
	}
	if len(prefix) > len(s) {
		return false
	}
	return s[:len(prefix)] == prefix
}
