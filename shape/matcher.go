package shape

import "github.com/wycats/mcparse/token"

// Matcher is the leaf capability of the shape algebra (spec §4.4): a
// predicate on a single tree plus a self-description string used both
// for error messages (ParseError.Expected) and for completion
// (spec §4.6).
type Matcher interface {
	Matches(t token.Tree) bool
	Describe() string
}

// ByKind matches any Atom of the given kind.
func ByKind(kind token.AtomKind) Matcher { return kindMatcher{kind} }

type kindMatcher struct{ kind token.AtomKind }

func (m kindMatcher) Matches(t token.Tree) bool {
	return t.IsAtom() && t.Atom().Kind == m.kind
}

func (m kindMatcher) Describe() string { return m.kind.String() }

// ByText matches any Atom whose exact text equals text.
func ByText(text string) Matcher { return textMatcher{text} }

type textMatcher struct{ text string }

func (m textMatcher) Matches(t token.Tree) bool {
	return t.IsAtom() && t.Atom().Text == m.text
}

func (m textMatcher) Describe() string { return "\"" + m.text + "\"" }

// ByDelimiter matches any Delimited node with the given delimiter name.
func ByDelimiter(name string) Matcher { return delimMatcher{name} }

type delimMatcher struct{ name string }

func (m delimMatcher) Matches(t token.Tree) bool {
	return t.IsDelimited() && t.Delimiter().Name == m.name
}

func (m delimMatcher) Describe() string { return m.name }

// describeTree names the kind of tree found, for ParseError.Found.
func describeTree(t token.Tree, ok bool) string {
	if !ok {
		return "end of input"
	}
	switch {
	case t.IsAtom():
		return t.Atom().Kind.String()
	case t.IsDelimited():
		return t.Delimiter().Name
	case t.IsGroup():
		return "group"
	default:
		return "error"
	}
}
