package shape_test

import (
	"errors"
	"testing"
	"unicode"

	"github.com/wycats/mcparse/cursor"
	"github.com/wycats/mcparse/langdef"
	"github.com/wycats/mcparse/lexer"
	. "github.com/wycats/mcparse/shape"
	"github.com/wycats/mcparse/token"
)

func arithLang() *langdef.Definition {
	return &langdef.Definition{
		Atoms: []langdef.AtomRule{
			{Kind: token.Whitespace, Match: matchWhile(unicode.IsSpace)},
			{Kind: token.Number, Match: matchWhile(unicode.IsDigit)},
			{Kind: token.Operator, Match: matchOneOf("+", "*")},
		},
	}
}

// opTree names the parts of an Op(name, lhs, rhs) tree. The test macros
// below build that shape as a Delimited node named after the operator,
// with lhs and rhs as its two children, and the tests assert against it.
type opTree struct {
	name     string
	lhs, rhs token.Tree
}

func binaryMacro(name string, precedence uint) Macro {
	return Macro{
		Name:          name,
		IsOperator:    true,
		Precedence:    precedence,
		Associativity: Left,
		Expand: func(ctx *MatchContext, args token.Tree, lhs *token.Tree) (token.Tree, error) {
			children := args.Children()
			if len(children) != 2 {
				return token.Tree{}, errors.New("expected lhs and rhs")
			}
			return token.NewDelimited(
				token.Delimiter{Name: name},
				children,
				true,
				token.Span{Start: children[0].Span().Start, End: children[1].Span().End},
			), nil
		},
	}
}

func TestParseExpressionRespectsPrecedence(t *testing.T) {
	lang := arithLang()
	trees := lexer.Lex("1 + 2 * 3", lang)
	table := NewTable(binaryMacro("+", 1), binaryMacro("*", 2))
	ctx := NewMatchContext(&table)

	tree, rest, err := ctx.ParseExpression(cursor.NewTokenStream(trees), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rest.SkipTrivia().Len() != 0 {
		t.Fatalf("expected the whole expression to be consumed, %d trees remain", rest.Len())
	}

	if !tree.IsDelimited() || tree.Delimiter().Name != "+" {
		t.Fatalf("expected the outermost node to be \"+\", got %v", tree)
	}
	outerKids := tree.Children()
	if outerKids[0].Atom().Text != "1" {
		t.Fatalf("left operand of + should be 1, got %v", outerKids[0])
	}
	inner := outerKids[1]
	if !inner.IsDelimited() || inner.Delimiter().Name != "*" {
		t.Fatalf("right operand of + should be the \"*\" subtree (tighter precedence binds first), got %v", inner)
	}
	innerKids := inner.Children()
	if innerKids[0].Atom().Text != "2" || innerKids[1].Atom().Text != "3" {
		t.Fatalf("* operands = %v, %v, want 2 and 3", innerKids[0], innerKids[1])
	}
}

func TestParseExpressionLeftAssociatesEqualPrecedence(t *testing.T) {
	lang := arithLang()
	trees := lexer.Lex("1 + 2 + 3", lang)
	table := NewTable(binaryMacro("+", 1))
	ctx := NewMatchContext(&table)

	tree, _, err := ctx.ParseExpression(cursor.NewTokenStream(trees), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !tree.IsDelimited() || tree.Delimiter().Name != "+" {
		t.Fatalf("expected outermost +, got %v", tree)
	}
	left := tree.Children()[0]
	if !left.IsDelimited() || left.Delimiter().Name != "+" {
		t.Fatalf("left-associativity requires the left child to be the nested +, got %v", left)
	}
	right := tree.Children()[1]
	if right.Atom().Text != "3" {
		t.Fatalf("outermost right operand should be 3, got %v", right)
	}
}

func TestTableLookupSeparatesOperatorAndNonOperatorMacros(t *testing.T) {
	table := NewTable(
		Macro{Name: "if", IsOperator: false},
		Macro{Name: "if", IsOperator: true, Precedence: 1},
	)
	if m, ok := table.LookupNonOperator("if"); !ok || m.IsOperator {
		t.Fatalf("expected a non-operator \"if\" macro, got %v, %v", m, ok)
	}
	if m, ok := table.LookupOperator("if"); !ok || !m.IsOperator {
		t.Fatalf("expected an operator \"if\" macro, got %v, %v", m, ok)
	}
}

func TestTableInsertReplacesSameNameAndOperatorness(t *testing.T) {
	table := NewTable(Macro{Name: "+", IsOperator: true, Precedence: 1})
	replaced := table.Insert(Macro{Name: "+", IsOperator: true, Precedence: 9})
	if !replaced {
		t.Fatal("expected Insert to report a replacement")
	}
	m, ok := table.LookupOperator("+")
	if !ok || m.Precedence != 9 {
		t.Fatalf("expected the replacement's precedence 9, got %v, %v", m, ok)
	}
}

func TestTableDeleteRemovesOnlyMatchingEntry(t *testing.T) {
	table := NewTable(
		Macro{Name: "not", IsOperator: false},
		Macro{Name: "not", IsOperator: true, Precedence: 5},
	)
	if !table.Delete("not", true) {
		t.Fatal("expected Delete to report the operator entry existed")
	}
	if _, ok := table.LookupOperator("not"); ok {
		t.Fatal("operator \"not\" should be gone")
	}
	if _, ok := table.LookupNonOperator("not"); !ok {
		t.Fatal("non-operator \"not\" should remain")
	}
}
