package shape_test

import (
	"testing"
	"unicode"

	"github.com/wycats/mcparse/cursor"
	"github.com/wycats/mcparse/langdef"
	"github.com/wycats/mcparse/lexer"
	. "github.com/wycats/mcparse/shape"
	"github.com/wycats/mcparse/token"
)

func testLang() *langdef.Definition {
	return &langdef.Definition{
		Atoms: []langdef.AtomRule{
			{Kind: token.Whitespace, Match: matchWhile(unicode.IsSpace)},
			{Kind: token.Number, Match: matchWhile(unicode.IsDigit)},
			{Kind: token.Identifier, Match: matchIdentifier},
			{Kind: token.Operator, Match: matchOneOf("+", "*", ".", ",")},
		},
		Delimiters: []token.Delimiter{{Name: "brace", Open: "{", Close: "}"}},
	}
}

func matchWhile(pred func(rune) bool) func(string) int {
	return func(text string) int {
		n := 0
		for _, r := range text {
			if !pred(r) {
				break
			}
			n += len(string(r))
		}
		return n
	}
}

func matchIdentifier(text string) int {
	n := 0
	for i, r := range text {
		isStart := i == 0 && (unicode.IsLetter(r) || r == '_')
		isCont := i > 0 && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_')
		if !isStart && !isCont {
			break
		}
		n += len(string(r))
	}
	return n
}

func matchOneOf(ops ...string) func(string) int {
	return func(text string) int {
		for _, op := range ops {
			if len(text) >= len(op) && text[:len(op)] == op {
				return len(op)
			}
		}
		return 0
	}
}

func streamOf(src string) cursor.TokenStream {
	return cursor.NewTokenStream(lexer.Lex(src, testLang()))
}

func TestTermSkipsTriviaAndConsumesOne(t *testing.T) {
	s := streamOf("  42")
	tr, rest, err := Term(ByKind(token.Number)).Match(s, NewMatchContext(nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tr.Atom().Text != "42" {
		t.Fatalf("consumed = %q, want \"42\"", tr.Atom().Text)
	}
	if rest.Len() != 0 {
		t.Fatalf("rest.Len() = %d, want 0", rest.Len())
	}
}

func TestTermFailureReportsExpectedAndFound(t *testing.T) {
	s := streamOf("abc")
	_, _, err := Term(ByKind(token.Number)).Match(s, NewMatchContext(nil))
	if err == nil {
		t.Fatal("expected a ParseError")
	}
	if err.Expected != "Number" {
		t.Fatalf("Expected = %q, want %q", err.Expected, "Number")
	}
	if err.Found != "Identifier" {
		t.Fatalf("Found = %q, want %q", err.Found, "Identifier")
	}
}

func TestSeqPropagatesSecondError(t *testing.T) {
	s := streamOf("1 2")
	shape := Seq(Term(ByKind(token.Number)), Term(ByKind(token.Identifier)))
	_, _, err := shape.Match(s, NewMatchContext(nil))
	if err == nil {
		t.Fatal("expected an error from the second term")
	}
	if err.Expected != "Identifier" {
		t.Fatalf("Expected = %q, want %q", err.Expected, "Identifier")
	}
}

func TestChoicePrefersFirstSuccess(t *testing.T) {
	s := streamOf("7")
	shape := Choice(Term(ByKind(token.Number)), Term(ByKind(token.Identifier)))
	tr, _, err := shape.Match(s, NewMatchContext(nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tr.Atom().Text != "7" {
		t.Fatalf("consumed = %q", tr.Atom().Text)
	}
}

func TestChoiceFallsBackToSecondBranch(t *testing.T) {
	s := streamOf("name")
	shape := Choice(Term(ByKind(token.Number)), Term(ByKind(token.Identifier)))
	tr, _, err := shape.Match(s, NewMatchContext(nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tr.Atom().Text != "name" {
		t.Fatalf("consumed = %q", tr.Atom().Text)
	}
}

func TestChoiceReturnsSecondErrorWhenBothFail(t *testing.T) {
	s := streamOf(",")
	shape := Choice(Term(ByKind(token.Number)), Term(ByKind(token.Identifier)))
	_, _, err := shape.Match(s, NewMatchContext(nil))
	if err == nil || err.Expected != "Identifier" {
		t.Fatalf("err = %v, want Expected == Identifier", err)
	}
}

func TestRepCollectsZeroOrMore(t *testing.T) {
	s := streamOf("1 2 3 x")
	tr, rest, err := Rep(Term(ByKind(token.Number))).Match(s, NewMatchContext(nil))
	if err != nil {
		t.Fatalf("rep should never fail: %v", err)
	}
	if len(tr.Children()) != 3 {
		t.Fatalf("got %d children, want 3: %v", len(tr.Children()), tr.Children())
	}
	if peek, ok := rest.Peek(); !ok || peek.Atom().Text != "x" {
		t.Fatalf("rest should still have \"x\" unconsumed, got %v, %v", peek, ok)
	}
}

func TestRepOnNoMatchesSucceedsEmpty(t *testing.T) {
	s := streamOf("x")
	tr, rest, err := Rep(Term(ByKind(token.Number))).Match(s, NewMatchContext(nil))
	if err != nil {
		t.Fatalf("rep should never fail: %v", err)
	}
	if len(tr.Children()) != 0 {
		t.Fatalf("expected zero children, got %d", len(tr.Children()))
	}
	if rest.Len() != 1 {
		t.Fatalf("rest.Len() = %d, want 1 (untouched)", rest.Len())
	}
}

func TestEnterRequiresMatchingDelimiterAndFullConsumption(t *testing.T) {
	s := streamOf("{ 1 }")
	shape := Enter("brace", Term(ByKind(token.Number)))
	tr, rest, err := shape.Match(s, NewMatchContext(nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !tr.IsDelimited() || tr.Delimiter().Name != "brace" {
		t.Fatalf("expected the brace node back, got %v", tr)
	}
	if rest.Len() != 0 {
		t.Fatalf("rest.Len() = %d, want 0", rest.Len())
	}
}

func TestEnterFailsOnUnconsumedContent(t *testing.T) {
	s := streamOf("{ 1 2 }")
	shape := Enter("brace", Term(ByKind(token.Number)))
	_, _, err := shape.Match(s, NewMatchContext(nil))
	if err == nil {
		t.Fatal("expected an error: inner shape leaves a second number unconsumed")
	}
}

func TestAdjacentSucceedsWithNoWhitespace(t *testing.T) {
	s := streamOf("a.b")
	shape := Adjacent(Term(ByKind(token.Identifier)), Seq(Term(ByText(".")), Term(ByKind(token.Identifier))))
	_, rest, err := shape.Match(s, NewMatchContext(nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rest.Len() != 0 {
		t.Fatalf("rest.Len() = %d, want 0", rest.Len())
	}
}

func TestAdjacentFailsOnIntroducedWhitespace(t *testing.T) {
	s := streamOf("a . b")
	shape := Adjacent(Term(ByKind(token.Identifier)), Seq(Term(ByText(".")), Term(ByKind(token.Identifier))))
	_, _, err := shape.Match(s, NewMatchContext(nil))
	if err == nil {
		t.Fatal("expected an adjacency violation")
	}
}

func TestEmptyAlwaysSucceedsWithoutConsuming(t *testing.T) {
	s := streamOf("x")
	tr, rest, err := Empty().Match(s, NewMatchContext(nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !tr.IsGroup() || len(tr.Children()) != 0 {
		t.Fatalf("expected an empty Group, got %v", tr)
	}
	if rest.Len() != 1 {
		t.Fatalf("rest.Len() = %d, want 1 (untouched)", rest.Len())
	}
}

func TestEndSucceedsOnlyAtExhaustion(t *testing.T) {
	if _, _, err := End().Match(streamOf("  "), NewMatchContext(nil)); err != nil {
		t.Fatalf("expected success at exhaustion (after trivia): %v", err)
	}
	if _, _, err := End().Match(streamOf("x"), NewMatchContext(nil)); err == nil {
		t.Fatal("expected failure: trees remain")
	}
}

func TestRecoverAlwaysSucceedsAndSkipsToTerminator(t *testing.T) {
	s := streamOf("broken , ok")
	shape := Recover(Term(ByKind(token.Number)), ByText(","))
	tr, rest, err := shape.Match(s, NewMatchContext(nil))
	if err != nil {
		t.Fatalf("recover should never fail: %v", err)
	}
	if !tr.IsError() {
		t.Fatalf("expected an Error tree, got %v", tr)
	}
	peek, ok := rest.SkipTrivia().Peek()
	if !ok || peek.Atom().Text != "ok" {
		t.Fatalf("expected trailing \"ok\" identifier to remain, got %v, %v", peek, ok)
	}
}

func TestOptSucceedsEvenOnMismatch(t *testing.T) {
	s := streamOf("x")
	tr, rest, err := Opt(Term(ByKind(token.Number))).Match(s, NewMatchContext(nil))
	if err != nil {
		t.Fatalf("opt should never fail: %v", err)
	}
	if len(tr.Children()) != 0 {
		t.Fatalf("expected the empty branch, got %v", tr)
	}
	if rest.Len() != 1 {
		t.Fatalf("rest.Len() = %d, want 1 (untouched)", rest.Len())
	}
}

func TestSeparatedConsumesEveryItemAndSeparator(t *testing.T) {
	s := streamOf("1, 2, 3")
	shape := Separated(Term(ByKind(token.Number)), Term(ByText(",")))
	_, rest, err := shape.Match(s, NewMatchContext(nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rest.Len() != 0 {
		t.Fatalf("rest.Len() = %d, want 0", rest.Len())
	}
}

func TestSeparatedFailsOnMissingItemScenario3(t *testing.T) {
	s := streamOf("1, , 3")
	shape := Separated(Term(ByKind(token.Number)), Term(ByText(",")))
	_, _, err := shape.Match(s, NewMatchContext(nil))
	if err == nil {
		t.Fatal("expected a ParseError for the missing item between commas")
	}
	if err.Expected != "Number" {
		t.Fatalf("Expected = %q, want %q", err.Expected, "Number")
	}
}

func TestJoinedConcatenatesWithNoIntermediateWhitespace(t *testing.T) {
	s := streamOf("+*")
	_, rest, err := Joined(Term(ByKind(token.Operator))).Match(s, NewMatchContext(nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rest.Len() != 0 {
		t.Fatalf("rest.Len() = %d, want 0", rest.Len())
	}
}
