package shape

import (
	"fmt"
	"sort"

	"github.com/wycats/mcparse/token"
)

// Associativity of an operator macro (spec §4.5).
type Associativity int

const (
	Left Associativity = iota
	Right
)

// Macro is a keyword- or operator-triggered transformation from a
// matched signature to a token tree (spec §4.5).
type Macro struct {
	Name          string
	Signature     Shape
	IsOperator    bool
	Precedence    uint
	Associativity Associativity
	Expand        func(ctx *MatchContext, args token.Tree, lhs *token.Tree) (token.Tree, error)
}

// Table is a collection of macros indexed by name, supporting
// mid-session Insert/Delete the way the teacher's ops.Table lets a
// Prolog directive register a new operator between clauses
// (lang/ops/table.go). Non-operator macros and operator macros sharing
// a name (a word that is both a statement-introducing keyword and an
// infix operator) coexist as separate entries, the way the teacher
// keeps a prefix, an infix, and a postfix entry for one operator name
// side by side.
type Table struct {
	macros []Macro
}

// NewTable builds a Table from an initial macro list.
func NewTable(macros ...Macro) Table {
	t := Table{}
	for _, m := range macros {
		t.Insert(m)
	}
	return t
}

// search returns the first index at which a macro named name could
// appear (macros of the same name are kept contiguous).
func (t *Table) search(name string) int {
	return sort.Search(len(t.macros), func(i int) bool { return t.macros[i].Name >= name })
}

// Lookup returns every macro registered under name.
func (t *Table) Lookup(name string) []Macro {
	i := t.search(name)
	j := i
	for j < len(t.macros) && t.macros[j].Name == name {
		j++
	}
	out := make([]Macro, j-i)
	copy(out, t.macros[i:j])
	return out
}

// LookupNonOperator returns the non-operator macro registered under
// name, if any (spec §4.5 step 1: head-position macro dispatch).
func (t *Table) LookupNonOperator(name string) (Macro, bool) {
	for _, m := range t.Lookup(name) {
		if !m.IsOperator {
			return m, true
		}
	}
	return Macro{}, false
}

// LookupOperator returns the operator macro registered under name, if
// any (spec §4.5 step 2: continuation dispatch).
func (t *Table) LookupOperator(name string) (Macro, bool) {
	for _, m := range t.Lookup(name) {
		if m.IsOperator {
			return m, true
		}
	}
	return Macro{}, false
}

// Insert adds m to the table, replacing any existing macro of the same
// name and operator-ness (mirrors lang/ops.Table.Insert).
func (t *Table) Insert(m Macro) (replaced bool) {
	i := t.search(m.Name)
	j := i
	for j < len(t.macros) && t.macros[j].Name == m.Name {
		if t.macros[j].IsOperator == m.IsOperator {
			t.macros[j] = m
			return true
		}
		j++
	}
	t.macros = append(t.macros, Macro{})
	copy(t.macros[j+1:], t.macros[j:])
	t.macros[j] = m
	t.resort(i, j+1)
	return false
}

// Delete removes the macro named name with the given operator-ness.
func (t *Table) Delete(name string, isOperator bool) (existed bool) {
	for i, m := range t.macros {
		if m.Name == name && m.IsOperator == isOperator {
			t.macros = append(t.macros[:i], t.macros[i+1:]...)
			return true
		}
	}
	return false
}

func (t *Table) resort(lo, hi int) {
	if hi > len(t.macros) {
		hi = len(t.macros)
	}
	slice := t.macros[lo:hi]
	sort.SliceStable(slice, func(i, j int) bool { return slice[i].Name < slice[j].Name })
}

func (m Macro) String() string {
	kind := "keyword"
	if m.IsOperator {
		kind = "operator"
	}
	return fmt.Sprintf("%s macro %q (prec %d)", kind, m.Name, m.Precedence)
}
