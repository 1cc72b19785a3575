package lr

import (
	"bytes"
	"fmt"

	"github.com/npillmayer/parsekit"
	"github.com/npillmayer/parsekit/lr/sparse"
)

// === Actions ===============================================================

// Action is an entry of an ACTION table. It is one of Shift, Reduce, Accept
// or Reject. An empty table cell is represented as nil.
type Action interface {
	fmt.Stringer
	isAction()
}

// Shift the lookahead and go to State.
type Shift struct {
	State int
}

// Reduce by the grammar rule with serial number Rule.
type Reduce struct {
	Rule int
}

// Accept the input.
type Accept struct{}

// Reject is an explicit error entry, written when a conflict is resolved by
// a non-associative operator.
type Reject struct{}

func (Shift) isAction()  {}
func (Reduce) isAction() {}
func (Accept) isAction() {}
func (Reject) isAction() {}

func (a Shift) String() string  { return fmt.Sprintf("shift %d", a.State) }
func (a Reduce) String() string { return fmt.Sprintf("reduce %d", a.Rule) }
func (Accept) String() string   { return "accept" }
func (Reject) String() string   { return "error" }

// Actions are stored as int32 in a sparse matrix:
//
//    shift j   →  -(j+1)
//    reduce r  →  r        (r ≥ 1, rule 0 is never reduced)
//    accept    →  0
//    reject    →  null+1
//
const rejectValue = sparse.DefaultNullValue + 1

func encodeAction(a Action) int32 {
	switch act := a.(type) {
	case Shift:
		return int32(-(act.State + 1))
	case Reduce:
		return int32(act.Rule)
	case Accept:
		return 0
	case Reject:
		return rejectValue
	}
	panic(fmt.Sprintf("unknown action type %T", a))
}

func decodeAction(v int32) Action {
	switch {
	case v == sparse.DefaultNullValue:
		return nil
	case v == rejectValue:
		return Reject{}
	case v == 0:
		return Accept{}
	case v < 0:
		return Shift{State: int(-v) - 1}
	}
	return Reduce{Rule: int(v)}
}

// === Conflicts =============================================================

// ConflictKind categorizes conflicts in ACTION tables.
type ConflictKind int

// Kinds of conflicts. OtherConflict covers pairings like accept/reduce or
// writes into an error cell.
const (
	ShiftReduce ConflictKind = iota
	ReduceReduce
	OtherConflict
)

func (k ConflictKind) String() string {
	switch k {
	case ShiftReduce:
		return "shift/reduce"
	case ReduceReduce:
		return "reduce/reduce"
	case OtherConflict:
		return "other"
	}
	return fmt.Sprintf("ConflictKind(%d)", int(k))
}

// Resolution tells how a conflict has been decided.
type Resolution int

// Conflicts are either unresolved (the first action is kept) or resolved by
// precedence levels or by associativity of the lookahead.
const (
	Unresolved Resolution = iota
	ByPrecedence
	ByAssociativity
)

func (r Resolution) String() string {
	switch r {
	case Unresolved:
		return "unresolved"
	case ByPrecedence:
		return "precedence"
	case ByAssociativity:
		return "associativity"
	}
	return fmt.Sprintf("Resolution(%d)", int(r))
}

// Conflict is an entry of the conflict log of a TableGenerator.
type Conflict struct {
	State      int
	Symbol     *Symbol // lookahead terminal
	Kind       ConflictKind
	First      Action // action already present in the cell
	Second     Action // action to be written
	Chosen     Action // action the cell holds after the conflict
	ResolvedBy Resolution
}

// Resolved is true if precedence or associativity decided the conflict.
func (c Conflict) Resolved() bool {
	return c.ResolvedBy != Unresolved
}

func (c Conflict) String() string {
	if c.Resolved() {
		return fmt.Sprintf("resolved %s conflict at state %d, %s: %s vs %s → %s (by %s)",
			c.Kind, c.State, c.Symbol, c.First, c.Second, c.Chosen, c.ResolvedBy)
	}
	return fmt.Sprintf("%s conflict at state %d, symbol %s: %s vs %s", c.Kind, c.State,
		c.Symbol, c.First, c.Second)
}

// === Tables ================================================================

// Table is a parser table, either ACTION or GOTO, indexed by state ID and
// by grammar symbol.
type Table struct {
	matrix *sparse.IntMatrix
	offset int // symbol ID of column 0
}

func newTable(states, columns, offset int) *Table {
	return &Table{
		matrix: sparse.NewIntMatrix(states, columns, sparse.DefaultNullValue),
		offset: offset,
	}
}

func (t *Table) column(A *Symbol) (int, bool) {
	j := A.ID - t.offset
	return j, j >= 0 && j < t.matrix.N()
}

// NullValue is the value of empty cells.
func (t *Table) NullValue() int32 {
	return t.matrix.NullValue()
}

// Value returns the raw value of a cell, or the null-value.
func (t *Table) Value(state int, A *Symbol) int32 {
	j, ok := t.column(A)
	if !ok || state < 0 || state >= t.matrix.M() {
		return t.matrix.NullValue()
	}
	return t.matrix.Value(state, j)
}

func (t *Table) set(state int, A *Symbol, v int32) {
	j, ok := t.column(A)
	if !ok {
		panic(fmt.Sprintf("symbol %s outside of table columns", A))
	}
	t.matrix.Set(state, j, v)
}

// ValueCount returns the number of non-empty cells.
func (t *Table) ValueCount() int {
	return t.matrix.ValueCount()
}

// === Table Generator =======================================================

// TableGenerator is a generator object to construct LR parser tables.
// Clients usually create a Grammar G, then an LRAnalysis-object for G,
// and then a table generator. TableGenerator.CreateTables() constructs
// the CFSM and parser tables for an SLR(1), LR(1) or LALR(1) parser.
// The tables are read-only after construction.
type TableGenerator struct {
	g            *Grammar
	ga           *LRAnalysis
	kind         parsekit.Kind
	opts         []Option
	dfa          *CFSM
	gototable    *Table
	actiontable  *Table
	conflicts    []Conflict
	HasConflicts bool // true if any conflict could not be resolved
}

// NewTableGenerator creates a new TableGenerator for a (previously analysed) grammar
// and a bottom-up parser kind.
func NewTableGenerator(ga *LRAnalysis, kind parsekit.Kind, opts ...Option) *TableGenerator {
	return &TableGenerator{
		g:    ga.Grammar(),
		ga:   ga,
		kind: kind,
		opts: opts,
	}
}

// CreateTables creates the CFSM and the GOTO and ACTION tables.
// It returns a *BuildError if the automaton grows beyond the state ceiling.
// Conflicts do not result in an error, but are logged (see Conflicts()).
func (lrgen *TableGenerator) CreateTables() error {
	var err error
	switch lrgen.kind {
	case parsekit.SLR1:
		lrgen.dfa, err = BuildLR0(lrgen.ga, lrgen.opts...)
	case parsekit.LR1:
		lrgen.dfa, err = BuildLR1(lrgen.ga, lrgen.opts...)
	case parsekit.LALR1:
		lrgen.dfa, err = BuildLALR1(lrgen.ga, lrgen.opts...)
	default:
		return fmt.Errorf("cannot create LR tables for parser kind %s", lrgen.kind)
	}
	if err != nil {
		return err
	}
	lrgen.conflicts = nil
	lrgen.HasConflicts = false
	lrgen.buildGotoTable()
	lrgen.buildActionTable()
	tracer().Infof("%s tables for %q: %d states, %d actions, %d gotos, %d conflicts",
		lrgen.kind, lrgen.g.Name, lrgen.dfa.Size(), lrgen.actiontable.ValueCount(),
		lrgen.gototable.ValueCount(), len(lrgen.conflicts))
	return nil
}

// Kind returns the kind of parser tables this generator creates.
func (lrgen *TableGenerator) Kind() parsekit.Kind {
	return lrgen.kind
}

// Grammar returns the grammar for which tables are generated.
func (lrgen *TableGenerator) Grammar() *Grammar {
	return lrgen.g
}

// Analysis returns the grammar analysis the tables are based on.
func (lrgen *TableGenerator) Analysis() *LRAnalysis {
	return lrgen.ga
}

// CFSM returns the characteristic finite state machine (CFSM) for a grammar.
// Usually clients call lrgen.CreateTables() beforehand, otherwise it returns nil.
func (lrgen *TableGenerator) CFSM() *CFSM {
	return lrgen.dfa
}

// GotoTable returns the GOTO table for the parser. Columns are non-terminals.
func (lrgen *TableGenerator) GotoTable() *Table {
	if lrgen.gototable == nil {
		tracer().Errorf("tables not yet initialized")
	}
	return lrgen.gototable
}

// ActionTable returns the ACTION table for the parser. Columns are terminals.
func (lrgen *TableGenerator) ActionTable() *Table {
	if lrgen.actiontable == nil {
		tracer().Errorf("tables not yet initialized")
	}
	return lrgen.actiontable
}

// Action returns the ACTION entry for a state and a terminal, or nil if the
// cell is empty.
func (lrgen *TableGenerator) Action(state int, a *Symbol) Action {
	if lrgen.actiontable == nil || a == nil || !a.IsTerminal() {
		return nil
	}
	return decodeAction(lrgen.actiontable.Value(state, a))
}

// Goto returns the GOTO entry for a state and a non-terminal.
func (lrgen *TableGenerator) Goto(state int, A *Symbol) (int, bool) {
	if lrgen.gototable == nil || A == nil || !A.IsNonTerminal() {
		return 0, false
	}
	v := lrgen.gototable.Value(state, A)
	if v == lrgen.gototable.NullValue() {
		return 0, false
	}
	return int(v), true
}

// Conflicts returns the conflict log, in order of discovery. It contains
// resolved as well as unresolved conflicts.
func (lrgen *TableGenerator) Conflicts() []Conflict {
	return lrgen.conflicts
}

// UnresolvedConflicts returns the conflicts which could not be decided by
// precedence or associativity.
func (lrgen *TableGenerator) UnresolvedConflicts() []Conflict {
	var unresolved []Conflict
	for _, c := range lrgen.conflicts {
		if !c.Resolved() {
			unresolved = append(unresolved, c)
		}
	}
	return unresolved
}

// AcceptingStates returns all states of the CFSM which represent an accept action.
// Clients have to call CreateTables() first.
func (lrgen *TableGenerator) AcceptingStates() []int {
	if lrgen.dfa == nil {
		tracer().Errorf("tables not yet generated; call CreateTables() first")
		return nil
	}
	var acc []int
	for _, s := range lrgen.dfa.states {
		if s.Accept {
			acc = append(acc, s.ID)
		}
	}
	return acc
}

func (lrgen *TableGenerator) buildGotoTable() {
	nt := len(lrgen.g.terminals)
	lrgen.gototable = newTable(lrgen.dfa.Size(), len(lrgen.g.nonterminals), nt)
	for _, s := range lrgen.dfa.states {
		for _, A := range lrgen.g.nonterminals {
			if to, ok := lrgen.dfa.Transition(s.ID, A); ok {
				lrgen.gototable.set(s.ID, A, int32(to))
			}
		}
	}
}

// buildActionTable writes, per state, shift entries first, then reduce and
// accept entries. Items are visited in state order. SLR(1) reduces on
// FOLLOW(A), LR(1) and LALR(1) on the item's lookahead.
func (lrgen *TableGenerator) buildActionTable() {
	lrgen.actiontable = newTable(lrgen.dfa.Size(), len(lrgen.g.terminals), 0)
	for _, s := range lrgen.dfa.states {
		tracer().Debugf("--- state %d --------------------------------", s.ID)
		items := s.Items()
		for _, i := range items {
			a := i.PeekSymbol()
			if a == nil || !a.IsTerminal() {
				continue
			}
			if to, ok := lrgen.dfa.Transition(s.ID, a); ok {
				lrgen.addAction(s.ID, a, Shift{State: to})
			}
		}
		for _, i := range items {
			if !i.IsComplete() {
				continue
			}
			if i.rule.Serial == 0 {
				lrgen.addAction(s.ID, lrgen.g.EOF(), Accept{})
				continue
			}
			if lrgen.kind == parsekit.SLR1 {
				for _, la := range lrgen.ga.Follow(i.rule.LHS).Symbols() {
					lrgen.addAction(s.ID, la, Reduce{Rule: i.rule.Serial})
				}
			} else if i.la != nil {
				lrgen.addAction(s.ID, i.la, Reduce{Rule: i.rule.Serial})
			}
		}
	}
}

// addAction writes an action into a cell. If the cell already holds a different
// action, the conflict is resolved (if possible) and logged.
func (lrgen *TableGenerator) addAction(state int, a *Symbol, act Action) {
	prev := decodeAction(lrgen.actiontable.Value(state, a))
	if prev == nil || prev == act {
		tracer().Debugf("    action(%d, %s) = %s", state, a, act)
		lrgen.actiontable.set(state, a, encodeAction(act))
		return
	}
	c := lrgen.resolve(state, a, prev, act)
	lrgen.conflicts = append(lrgen.conflicts, c)
	if c.Resolved() {
		lrgen.actiontable.set(state, a, encodeAction(c.Chosen))
		tracer().Infof("%s", c)
		return
	}
	lrgen.HasConflicts = true
	tracer().Infof("%s", c)
}

// resolve decides a conflict between the action prev already in cell (state, a)
// and a new action.
//
// Shift/reduce: if only the lookahead has a precedence, shift; if only the rule
// has one, reduce. A higher level wins. On equal levels the associativity of the
// lookahead decides: left reduces, right shifts, nonassoc writes an error entry.
//
// Reduce/reduce: the rule with strictly higher precedence wins.
//
// Anything else is unresolved and the first action is kept.
func (lrgen *TableGenerator) resolve(state int, a *Symbol, prev, next Action) Conflict {
	c := Conflict{
		State:  state,
		Symbol: a,
		Kind:   OtherConflict,
		First:  prev,
		Second: next,
		Chosen: prev,
	}
	switch p := prev.(type) {
	case Shift:
		if r, ok := next.(Reduce); ok {
			c.Kind = ShiftReduce
			lrgen.resolveShiftReduce(&c, a, p, r)
		}
	case Reduce:
		switch n := next.(type) {
		case Shift:
			c.Kind = ShiftReduce
			lrgen.resolveShiftReduce(&c, a, n, p)
		case Reduce:
			c.Kind = ReduceReduce
			p1 := lrgen.g.RulePrecedence(lrgen.g.Rule(p.Rule)).Level
			p2 := lrgen.g.RulePrecedence(lrgen.g.Rule(n.Rule)).Level
			if p1 > p2 {
				c.Chosen, c.ResolvedBy = p, ByPrecedence
			} else if p2 > p1 {
				c.Chosen, c.ResolvedBy = n, ByPrecedence
			}
		}
	}
	return c
}

func (lrgen *TableGenerator) resolveShiftReduce(c *Conflict, a *Symbol, sh Shift, red Reduce) {
	laPrec := lrgen.g.Precedence(a)
	rulePrec := lrgen.g.RulePrecedence(lrgen.g.Rule(red.Rule))
	switch {
	case !laPrec.IsDefined() && !rulePrec.IsDefined():
		return
	case !rulePrec.IsDefined(), laPrec.Level > rulePrec.Level:
		c.Chosen, c.ResolvedBy = sh, ByPrecedence
	case !laPrec.IsDefined(), laPrec.Level < rulePrec.Level:
		c.Chosen, c.ResolvedBy = red, ByPrecedence
	default:
		switch laPrec.Assoc {
		case Left:
			c.Chosen, c.ResolvedBy = red, ByAssociativity
		case Right:
			c.Chosen, c.ResolvedBy = sh, ByAssociativity
		case NonAssoc:
			c.Chosen, c.ResolvedBy = Reject{}, ByAssociativity
		}
	}
}

// --- Diagnostics -----------------------------------------------------------

// TablesListing returns a listing of all non-empty ACTION and GOTO entries
// and of the conflict log.
func (lrgen *TableGenerator) TablesListing() string {
	if lrgen.dfa == nil {
		return ""
	}
	var b bytes.Buffer
	b.WriteString(fmt.Sprintf("%s ACTION table:\n", lrgen.kind))
	lrgen.actiontable.matrix.Each(func(state, j int, v int32) {
		a := lrgen.g.terminals[j]
		b.WriteString(fmt.Sprintf("    ACTION[%d, %s] = %s\n", state, a, lrgen.actionString(decodeAction(v))))
	})
	b.WriteString(fmt.Sprintf("%s GOTO table:\n", lrgen.kind))
	lrgen.gototable.matrix.Each(func(state, j int, v int32) {
		A := lrgen.g.nonterminals[j]
		b.WriteString(fmt.Sprintf("    GOTO[%d, %s] = %d\n", state, A, v))
	})
	if len(lrgen.conflicts) > 0 {
		b.WriteString("Conflicts:\n")
		for _, c := range lrgen.conflicts {
			b.WriteString(fmt.Sprintf("    %s\n", c))
		}
	}
	return b.String()
}

func (lrgen *TableGenerator) actionString(act Action) string {
	if r, ok := act.(Reduce); ok {
		return fmt.Sprintf("reduce %s", lrgen.g.Rule(r.Rule))
	}
	return act.String()
}

// DumpTables is a debugging helper, writing the tables to the tracer.
func (lrgen *TableGenerator) DumpTables() {
	tracer().Debugf("\n%s", lrgen.TablesListing())
}
