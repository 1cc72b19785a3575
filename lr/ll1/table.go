package ll1

import (
	"bytes"
	"fmt"

	"github.com/npillmayer/parsekit/lr"
	"github.com/npillmayer/parsekit/lr/sparse"
)

// Table is an LL(1) parse table, mapping (non-terminal, lookahead) to a rule.
// Rows are non-terminals, columns are terminals; cells hold rule numbers.
type Table struct {
	g         *lr.Grammar
	ga        *lr.LRAnalysis
	matrix    *sparse.IntMatrix
	conflicts []Conflict
}

// Conflict is logged if two rules compete for the same table cell. Kept is
// the rule entered first, which stays in the table.
type Conflict struct {
	NonTerminal *lr.Symbol
	Lookahead   *lr.Symbol
	Kept        *lr.Rule
	Rejected    *lr.Rule
}

func (c Conflict) String() string {
	return fmt.Sprintf("LL(1) conflict at [%s, %s]: %s vs %s", c.NonTerminal, c.Lookahead,
		c.Kept, c.Rejected)
}

// NewTable computes the LL(1) table for an analysed grammar:
// Table[A][a] = α for every a ∈ FIRST(α)\{ε}, and Table[A][b] = α for every
// b ∈ FOLLOW(A) if α ⇒* ε.
// Rules are entered in grammar order, lookaheads in order of symbol IDs.
func NewTable(ga *lr.LRAnalysis) *Table {
	g := ga.Grammar()
	t := &Table{
		g:      g,
		ga:     ga,
		matrix: sparse.NewIntMatrix(len(g.NonTerminals()), len(g.Terminals()), sparse.DefaultNullValue),
	}
	for _, r := range g.Rules()[1:] { // S' ⟶ S is not needed for top-down parsing
		first := ga.FirstOfSequence(r.RHS())
		for _, a := range first.Symbols() {
			if !a.IsEpsilon() {
				t.enter(r.LHS, a, r)
			}
		}
		if first.ContainsEpsilon() {
			for _, b := range ga.Follow(r.LHS).Symbols() {
				t.enter(r.LHS, b, r)
			}
		}
	}
	tracer().Infof("LL(1) table for %q: %d entries, %d conflicts", g.Name,
		t.matrix.ValueCount(), len(t.conflicts))
	return t
}

func (t *Table) row(A *lr.Symbol) int {
	return A.ID - len(t.g.Terminals())
}

func (t *Table) enter(A *lr.Symbol, a *lr.Symbol, r *lr.Rule) {
	i, j := t.row(A), a.ID
	prev := t.matrix.Value(i, j)
	if prev == t.matrix.NullValue() {
		tracer().Debugf("LL(1)[%s, %s] = %s", A, a, r)
		t.matrix.Set(i, j, int32(r.Serial))
		return
	}
	if int(prev) == r.Serial {
		return
	}
	c := Conflict{NonTerminal: A, Lookahead: a, Kept: t.g.Rule(int(prev)), Rejected: r}
	tracer().Infof("%s", c)
	t.conflicts = append(t.conflicts, c)
}

// Grammar returns the grammar of this table.
func (t *Table) Grammar() *lr.Grammar {
	return t.g
}

// Entry returns the rule to expand A with, given lookahead a.
func (t *Table) Entry(A *lr.Symbol, a *lr.Symbol) (*lr.Rule, bool) {
	if A == nil || a == nil || !A.IsNonTerminal() || !a.IsTerminal() {
		return nil, false
	}
	v := t.matrix.Value(t.row(A), a.ID)
	if v == t.matrix.NullValue() {
		return nil, false
	}
	return t.g.Rule(int(v)), true
}

// Conflicts returns all conflicts, in order of discovery.
func (t *Table) Conflicts() []Conflict {
	return t.conflicts
}

// HasConflicts is true if the grammar is not LL(1).
func (t *Table) HasConflicts() bool {
	return len(t.conflicts) > 0
}

// Listing returns all non-empty table entries, row by row.
func (t *Table) Listing() string {
	var b bytes.Buffer
	for _, A := range t.g.NonTerminals() {
		for _, a := range t.g.Terminals() {
			if r, ok := t.Entry(A, a); ok {
				b.WriteString(fmt.Sprintf("    LL1[%s, %s] = %s\n", A, a, r))
			}
		}
	}
	return b.String()
}
