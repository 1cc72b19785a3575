package lr

import (
	"fmt"
	"testing"

	"github.com/npillmayer/parsekit"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeTables(t *testing.T, g *Grammar, kind parsekit.Kind) *TableGenerator {
	lrgen := NewTableGenerator(Analysis(g), kind)
	require.NoError(t, lrgen.CreateTables())
	return lrgen
}

func TestActionEncoding(t *testing.T) {
	for _, a := range []Action{Shift{0}, Shift{17}, Reduce{1}, Reduce{42}, Accept{}, Reject{}} {
		assert.Equal(t, a, decodeAction(encodeAction(a)))
	}
	assert.Nil(t, decodeAction(rejectValue-1))
}

func TestSLRTables(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsekit.lr")
	defer teardown()
	//
	g := dragonGrammar(t)
	lrgen := makeTables(t, g, parsekit.SLR1)
	lrgen.DumpTables()
	assert.False(t, lrgen.HasConflicts)
	assert.Empty(t, lrgen.Conflicts())
	assert.Equal(t, parsekit.SLR1, lrgen.Kind())
	assert.Equal(t, 12, lrgen.CFSM().Size())
	id := g.SymbolByName("id")
	act := lrgen.Action(0, id)
	require.IsType(t, Shift{}, act)
	s := act.(Shift).State
	// after shifting id, reduce F ⟶ id on every terminal of FOLLOW(F)
	for _, a := range []string{"+", "*", ")", "$"} {
		assert.Equal(t, Reduce{Rule: 6}, lrgen.Action(s, g.SymbolByName(a)), a)
	}
	assert.Nil(t, lrgen.Action(s, g.SymbolByName("(")))
	acc := lrgen.AcceptingStates()
	require.Equal(t, 1, len(acc))
	assert.Equal(t, Accept{}, lrgen.Action(acc[0], g.EOF()))
	to, ok := lrgen.Goto(0, g.SymbolByName("E"))
	assert.True(t, ok)
	assert.Equal(t, acc[0], to)
	_, ok = lrgen.Goto(0, id)
	assert.False(t, ok)
	listing := lrgen.TablesListing()
	assert.Contains(t, listing, "ACTION[0, id] = shift")
	assert.Contains(t, listing, fmt.Sprintf("ACTION[%d, $] = accept", acc[0]))
	assert.Contains(t, listing, fmt.Sprintf("GOTO[0, E] = %d", acc[0]))
}

func TestLL1KindIsNoLRTable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsekit.lr")
	defer teardown()
	//
	lrgen := NewTableGenerator(Analysis(ccGrammar(t)), parsekit.LL1)
	assert.Error(t, lrgen.CreateTables())
	assert.Nil(t, lrgen.CFSM())
}

// S ⟶ a A d | b B d | a B e | b A e,  A ⟶ c,  B ⟶ c
func TestLR1ButNotLALR(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsekit.lr")
	defer teardown()
	//
	b := NewGrammarBuilder("LR1-not-LALR")
	b.LHS("S").T("a").N("A").T("d").End()
	b.LHS("S").T("b").N("B").T("d").End()
	b.LHS("S").T("a").N("B").T("e").End()
	b.LHS("S").T("b").N("A").T("e").End()
	b.LHS("A").T("c").End()
	b.LHS("B").T("c").End()
	g, err := b.Grammar()
	require.NoError(t, err)
	lr1 := makeTables(t, g, parsekit.LR1)
	assert.False(t, lr1.HasConflicts)
	lalr := makeTables(t, g, parsekit.LALR1)
	assert.True(t, lalr.HasConflicts)
	unresolved := lalr.UnresolvedConflicts()
	require.NotEmpty(t, unresolved)
	for _, c := range unresolved {
		assert.Equal(t, ReduceReduce, c.Kind)
		assert.Equal(t, c.First, c.Chosen)
	}
	assert.Less(t, lalr.CFSM().Size(), lr1.CFSM().Size())
}

// S ⟶ L = R | R,  L ⟶ * R | id,  R ⟶ L
func TestLALRButNotSLR(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsekit.lr")
	defer teardown()
	//
	b := NewGrammarBuilder("LALR-not-SLR")
	b.LHS("S").N("L").T("=").N("R").End()
	b.LHS("S").N("R").End()
	b.LHS("L").T("*").N("R").End()
	b.LHS("L").T("id").End()
	b.LHS("R").N("L").End()
	g, err := b.Grammar()
	require.NoError(t, err)
	slr := makeTables(t, g, parsekit.SLR1)
	assert.True(t, slr.HasConflicts)
	c := slr.UnresolvedConflicts()[0]
	assert.Equal(t, ShiftReduce, c.Kind)
	assert.Equal(t, "=", c.Symbol.Name)
	assert.IsType(t, Shift{}, c.Chosen)
	assert.Contains(t, c.String(), "shift/reduce conflict at state")
	assert.False(t, makeTables(t, g, parsekit.LALR1).HasConflicts)
	assert.False(t, makeTables(t, g, parsekit.LR1).HasConflicts)
}

func danglingElse(t *testing.T, withPrecedence bool) *Grammar {
	b := NewGrammarBuilder("Dangling-Else")
	b.LHS("Stmt").T("if").N("E").T("then").N("Stmt").End()
	b.LHS("Stmt").T("if").N("E").T("then").N("Stmt").T("else").N("Stmt").End()
	b.LHS("Stmt").T("other").End()
	b.LHS("E").T("id").End()
	if withPrecedence {
		b.Left("then")
		b.Left("else")
	}
	g, err := b.Grammar()
	require.NoError(t, err)
	return g
}

func TestDanglingElse(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsekit.lr")
	defer teardown()
	//
	lrgen := makeTables(t, danglingElse(t, false), parsekit.SLR1)
	assert.True(t, lrgen.HasConflicts)
	require.Equal(t, 1, len(lrgen.Conflicts()))
	c := lrgen.Conflicts()[0]
	assert.Equal(t, ShiftReduce, c.Kind)
	assert.Equal(t, "else", c.Symbol.Name)
	assert.False(t, c.Resolved())
	assert.IsType(t, Shift{}, c.First)
	assert.Equal(t, Reduce{Rule: 1}, c.Second)
	assert.Equal(t, c.First, lrgen.Action(c.State, c.Symbol))
	//
	lrgen = makeTables(t, danglingElse(t, true), parsekit.SLR1)
	assert.False(t, lrgen.HasConflicts)
	require.Equal(t, 1, len(lrgen.Conflicts()))
	c = lrgen.Conflicts()[0]
	assert.Equal(t, ByPrecedence, c.ResolvedBy)
	assert.IsType(t, Shift{}, c.Chosen)
	assert.Contains(t, c.String(), "resolved shift/reduce conflict")
}

func ambiguousExpr(t *testing.T) *Grammar {
	b := NewGrammarBuilder("Ambiguous")
	b.LHS("E").N("E").T("+").N("E").End()
	b.LHS("E").N("E").T("*").N("E").End()
	b.LHS("E").T("(").N("E").T(")").End()
	b.LHS("E").T("id").End()
	b.Left("+")
	b.Left("*")
	g, err := b.Grammar()
	require.NoError(t, err)
	return g
}

func TestPrecedenceResolvesAmbiguity(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsekit.lr")
	defer teardown()
	//
	for _, kind := range []parsekit.Kind{parsekit.SLR1, parsekit.LR1, parsekit.LALR1} {
		lrgen := makeTables(t, ambiguousExpr(t), kind)
		assert.False(t, lrgen.HasConflicts, kind.String())
		require.NotEmpty(t, lrgen.Conflicts(), kind.String())
		for _, c := range lrgen.Conflicts() {
			assert.True(t, c.Resolved(), c.String())
			assert.Equal(t, c.Chosen, lrgen.Action(c.State, c.Symbol))
			rule := lrgen.Grammar().Rule(1) // E ⟶ E + E
			if r, ok := c.Second.(Reduce); ok && r.Rule == rule.Serial && c.Symbol.Name == "+" {
				assert.Equal(t, ByAssociativity, c.ResolvedBy) // left associative
				assert.Equal(t, r, c.Chosen)
			}
		}
	}
}

func TestNonAssocWritesErrorEntry(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsekit.lr")
	defer teardown()
	//
	b := NewGrammarBuilder("NonAssoc")
	b.LHS("E").N("E").T("<").N("E").End()
	b.LHS("E").T("id").End()
	b.NonAssoc("<")
	g, err := b.Grammar()
	require.NoError(t, err)
	lrgen := makeTables(t, g, parsekit.LALR1)
	assert.False(t, lrgen.HasConflicts)
	require.Equal(t, 1, len(lrgen.Conflicts()))
	c := lrgen.Conflicts()[0]
	assert.Equal(t, ByAssociativity, c.ResolvedBy)
	assert.Equal(t, Reject{}, c.Chosen)
	assert.Equal(t, Reject{}, lrgen.Action(c.State, g.SymbolByName("<")))
}

// S ⟶ A | t B,  A ⟶ t X,  B ⟶ X,  X ⟶ x
func TestReduceReduceByPrecedence(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsekit.lr")
	defer teardown()
	//
	build := func(prec bool) *Grammar {
		b := NewGrammarBuilder("RR")
		b.LHS("S").N("A").End()
		b.LHS("S").T("t").N("B").End()
		b.LHS("A").T("t").N("X").End()
		b.LHS("B").N("X").End()
		b.LHS("X").T("x").End()
		if prec {
			b.Left("t")
		}
		g, err := b.Grammar()
		require.NoError(t, err)
		return g
	}
	lrgen := makeTables(t, build(false), parsekit.SLR1)
	assert.True(t, lrgen.HasConflicts)
	require.Equal(t, 1, len(lrgen.Conflicts()))
	assert.Equal(t, ReduceReduce, lrgen.Conflicts()[0].Kind)
	//
	lrgen = makeTables(t, build(true), parsekit.SLR1)
	assert.False(t, lrgen.HasConflicts)
	require.Equal(t, 1, len(lrgen.Conflicts()))
	c := lrgen.Conflicts()[0]
	assert.Equal(t, ByPrecedence, c.ResolvedBy)
	assert.Equal(t, Reduce{Rule: 3}, c.Chosen)
}
