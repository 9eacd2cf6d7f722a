package shape

import (
	"fmt"

	"github.com/wycats/mcparse/token"
)

// ParseError describes an expectation mismatch during shape matching
// (spec §3, §7). Every propagation path (seq/choice/recover) passes a
// *ParseError around rather than a generic `error`, so that callers can
// inspect Expected/Found without a type assertion — the teacher's
// Parser.reportf similarly builds a value carrying line/column plus a
// formatted message (lang/parser.go), just without the structured
// Expected/Found split this module's completion and diagnostics need.
type ParseError struct {
	Span     token.Span
	Expected string
	Found    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: expected %s, found %s", e.Span, e.Expected, e.Found)
}

func expectationError(span token.Span, expected string, t token.Tree, ok bool) *ParseError {
	return &ParseError{Span: span, Expected: expected, Found: describeTree(t, ok)}
}
