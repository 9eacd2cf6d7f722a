package token

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func number(text string, start int) Tree {
	return NewAtom(Token{Kind: Number, Text: text, Span: Span{Start: start, End: start + len(text)}})
}

func TestTreeTextRoundTripsAtoms(t *testing.T) {
	trees := []Tree{
		number("12", 0),
		NewAtom(Token{Kind: Whitespace, Text: " ", Span: Span{Start: 2, End: 3}}),
		number("34", 3),
	}
	group := NewGroup(trees)
	if got, want := group.Text(), "12 34"; got != want {
		t.Fatalf("Text() = %q, want %q", got, want)
	}
}

func TestTreeTextClosedDelimited(t *testing.T) {
	paren := Delimiter{Name: "paren", Open: "(", Close: ")"}
	inner := number("1", 1)
	closed := NewDelimited(paren, []Tree{inner}, true, Span{Start: 0, End: 3})
	if got, want := closed.Text(), "(1)"; got != want {
		t.Fatalf("Text() = %q, want %q", got, want)
	}
}

func TestTreeTextUnclosedDelimitedOmitsCloser(t *testing.T) {
	paren := Delimiter{Name: "paren", Open: "(", Close: ")"}
	inner := number("1", 1)
	unclosed := NewDelimited(paren, []Tree{inner}, false, Span{Start: 0, End: 2})
	if got, want := unclosed.Text(), "(1"; got != want {
		t.Fatalf("Text() = %q, want %q", got, want)
	}
	if unclosed.Closed() {
		t.Fatal("expected Closed() == false")
	}
}

func TestTreeTextErrorNodeRepeatsSkipped(t *testing.T) {
	skipped := []Tree{number("1", 0), number("2", 1)}
	errNode := NewError("broken", skipped, Span{Start: 0, End: 2})
	if got, want := errNode.Text(), "12"; got != want {
		t.Fatalf("Text() = %q, want %q", got, want)
	}
	if errNode.Message() != "broken" {
		t.Fatalf("Message() = %q", errNode.Message())
	}
}

func TestWithBindingSetsBindingWithoutMutatingOriginal(t *testing.T) {
	orig := NewAtom(Token{Kind: Identifier, Text: "x", Span: Span{Start: 0, End: 1}})
	bound := orig.WithBinding(BindingId(7))

	if orig.Atom().Binding != NoBinding {
		t.Fatalf("original mutated: Binding = %d", orig.Atom().Binding)
	}
	if bound.Atom().Binding != BindingId(7) {
		t.Fatalf("bound.Atom().Binding = %d, want 7", bound.Atom().Binding)
	}
}

func TestWithChildrenReplacesChildrenAndSpan(t *testing.T) {
	paren := Delimiter{Name: "paren", Open: "(", Close: ")"}
	orig := NewDelimited(paren, []Tree{number("1", 1)}, true, Span{Start: 0, End: 3})

	newChildren := []Tree{number("42", 1)}
	replaced := orig.WithChildren(newChildren, Span{Start: 0, End: 4})

	if replaced.Text() != "(42)" {
		t.Fatalf("Text() = %q", replaced.Text())
	}
	if orig.Text() != "(1)" {
		t.Fatalf("original mutated: Text() = %q", orig.Text())
	}
}

func TestWithChildrenLeavesOriginalStructurallyUntouched(t *testing.T) {
	paren := Delimiter{Name: "paren", Open: "(", Close: ")"}
	before := NewDelimited(paren, []Tree{number("1", 1)}, true, Span{Start: 0, End: 3})
	snapshot := NewDelimited(paren, []Tree{number("1", 1)}, true, Span{Start: 0, End: 3})

	_ = before.WithChildren([]Tree{number("42", 1)}, Span{Start: 0, End: 4})

	if diff := cmp.Diff(snapshot, before, cmp.AllowUnexported(Tree{}, Token{})); diff != "" {
		t.Fatalf("WithChildren mutated its receiver (-want +got):\n%s", diff)
	}
}

func TestVariantPredicatesAreExclusive(t *testing.T) {
	cases := []Tree{
		number("1", 0),
		NewDelimited(Delimiter{Name: "paren", Open: "(", Close: ")"}, nil, true, Span{}),
		NewGroup(nil),
		NewError("x", nil, Span{}),
	}
	for i, tr := range cases {
		flags := []bool{tr.IsAtom(), tr.IsDelimited(), tr.IsGroup(), tr.IsError()}
		n := 0
		for _, f := range flags {
			if f {
				n++
			}
		}
		if n != 1 {
			t.Fatalf("case %d: expected exactly one variant predicate true, got %v", i, flags)
		}
	}
}
