package lr

import (
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dragonGrammar is the left-recursive expression grammar
//
//     E ⟶ E + T | T
//     T ⟶ T * F | F
//     F ⟶ ( E ) | id
//
func dragonGrammar(t *testing.T) *Grammar {
	b := NewGrammarBuilder("Dragon")
	b.LHS("E").N("E").T("+").N("T").End()
	b.LHS("E").N("T").End()
	b.LHS("T").N("T").T("*").N("F").End()
	b.LHS("T").N("F").End()
	b.LHS("F").T("(").N("E").T(")").End()
	b.LHS("F").T("id").End()
	g, err := b.Grammar()
	require.NoError(t, err)
	return g
}

func TestClosureOfStartItem(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsekit.lr")
	defer teardown()
	//
	g := dragonGrammar(t)
	ga := Analysis(g)
	C := ga.closure(StartItem(g.Rule(0), nil))
	assert.Equal(t, 7, C.Size()) // all rules, dot at the front
	i := asItem(C.Values()[0])
	assert.Equal(t, "E' ⟶ • E", i.String())
	assert.Equal(t, g.Start(), i.PeekSymbol())
	assert.Equal(t, "E' ⟶ E •", i.Advance().String())
	assert.True(t, i.Advance().IsComplete())
}

func TestLR1ClosureLookaheads(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsekit.lr")
	defer teardown()
	//
	g := ccGrammar(t)
	ga := Analysis(g)
	C := ga.closure(StartItem(g.Rule(0), g.EOF()))
	// S' ⟶ •S,$  S ⟶ •C C,$  C ⟶ •c C,c/d  C ⟶ •d,c/d
	assert.Equal(t, 6, C.Size())
	var items []string
	for _, x := range C.Values() {
		items = append(items, asItem(x).String())
	}
	assert.Contains(t, items, "C ⟶ • c C, d")
	assert.Contains(t, items, "C ⟶ • d, c")
	assert.Equal(t, 2, len(g.Rule(1).RHS())) // RHS is never extended by lookaheads
}

func TestLR0Automaton(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsekit.lr")
	defer teardown()
	//
	ga := Analysis(dragonGrammar(t))
	cfsm, err := BuildLR0(ga)
	require.NoError(t, err)
	assert.Equal(t, 12, cfsm.Size())
	assert.False(t, cfsm.HasLookahead())
	assert.Equal(t, 0, cfsm.S0.ID)
	E := ga.Grammar().SymbolByName("E")
	to, ok := cfsm.Transition(0, E)
	require.True(t, ok)
	assert.True(t, cfsm.State(to).Accept)
	_, ok = cfsm.Transition(0, ga.Grammar().SymbolByName(")"))
	assert.False(t, ok)
	edges := cfsm.Edges(0)
	for k := 1; k < len(edges); k++ {
		assert.Less(t, edges[k-1].Label.ID, edges[k].Label.ID)
	}
	assert.Equal(t, 5, len(edges)) // ( id E T F
	listing := cfsm.Listing()
	assert.True(t, strings.HasPrefix(listing, "state 0\n"))
	assert.Contains(t, listing, "(accept)")
	assert.Nil(t, cfsm.State(12))
}

func TestLR0AutomatonIsDeterministic(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsekit.lr")
	defer teardown()
	//
	ga := Analysis(dragonGrammar(t))
	c1, err := BuildLR0(ga)
	require.NoError(t, err)
	c2, err := BuildLR0(ga)
	require.NoError(t, err)
	assert.Equal(t, c1.Listing(), c2.Listing())
}

func TestLR1AndLALRStateCounts(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsekit.lr")
	defer teardown()
	//
	ga := Analysis(ccGrammar(t))
	lr1, err := BuildLR1(ga)
	require.NoError(t, err)
	assert.Equal(t, 10, lr1.Size())
	assert.True(t, lr1.HasLookahead())
	lalr, err := BuildLALR1(ga)
	require.NoError(t, err)
	assert.Equal(t, 7, lalr.Size())
	assert.True(t, lalr.IsMerged())
	lr0, err := BuildLR0(ga)
	require.NoError(t, err)
	assert.Equal(t, 7, lr0.Size())
	// every LALR state has the core of an LR(0) state
	cores := make(map[string]bool)
	for _, s := range lr0.States() {
		cores[itemSetKey(s.items, true)] = true
	}
	for _, s := range lalr.States() {
		assert.True(t, cores[itemSetKey(s.items, true)], s.String())
	}
}

func TestItemSetKeyIgnoresOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsekit.lr")
	defer teardown()
	//
	g := ccGrammar(t)
	i1 := StartItem(g.Rule(2), g.EOF())
	i2 := StartItem(g.Rule(3), g.SymbolByName("c"))
	k1 := itemSetKey(newItemSet(i1, i2), false)
	k2 := itemSetKey(newItemSet(i2, i1), false)
	assert.Equal(t, k1, k2)
	k3 := itemSetKey(newItemSet(i1, i2.Core()), false)
	assert.NotEqual(t, k1, k3)
	assert.Equal(t, itemSetKey(newItemSet(i1, i2), true), itemSetKey(newItemSet(i1.Core(), i2.Core()), true))
}

func TestStateCeiling(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsekit.lr")
	defer teardown()
	//
	ga := Analysis(ccGrammar(t))
	_, err := BuildLR1(ga, WithMaxStates(3))
	var berr *BuildError
	require.True(t, errors.As(err, &berr))
	assert.Equal(t, ResourceExceeded, berr.Kind)
	assert.Equal(t, 3, berr.Limit)
	_, err = BuildLALR1(ga, WithMaxStates(9))
	assert.Error(t, err) // ceiling applies to the canonical automaton
	_, err = BuildLALR1(ga, WithMaxStates(10))
	assert.NoError(t, err)
}
