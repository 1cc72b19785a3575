package ptree

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/npillmayer/parsekit"
	"github.com/npillmayer/parsekit/lr"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A ⟶ a B,  B ⟶ b | ε
func smallGrammar(t *testing.T) *lr.Grammar {
	b := lr.NewGrammarBuilder("Small")
	b.LHS("A").T("a").N("B").End()
	b.LHS("B").T("b").End()
	b.LHS("B").Epsilon()
	g, err := b.Grammar()
	require.NoError(t, err)
	return g
}

func TestTreeConstruction(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsekit.lr")
	defer teardown()
	//
	g := smallGrammar(t)
	a := Leaf(g.SymbolByName("a"), 0)
	B := Inner(g.Rule(3), []*Node{EpsilonLeaf(g.Epsilon(), 1)})
	root := Inner(g.Rule(1), []*Node{a, B})
	assert.Equal(t, "(A a (B ε))", root.String())
	assert.Equal(t, parsekit.Span{0, 1}, root.Span)
	assert.True(t, B.Span.IsEmpty())
	assert.False(t, B.IsLeaf())
	assert.True(t, B.Children[0].IsEpsilon())
	assert.Equal(t, 2, len(root.Leaves()))
	assert.Equal(t, []string{"a"}, root.Yield())
	depths := map[string]int{}
	root.Walk(func(n *Node, depth int) {
		depths[n.Symbol.Name] = depth
	})
	assert.Equal(t, map[string]int{"A": 0, "a": 1, "B": 1, "ε": 2}, depths)
	var nilnode *Node
	assert.Equal(t, "()", nilnode.String())
}

func TestParseErrorMessage(t *testing.T) {
	err := &ParseError{Kind: NoTableEntry, Pos: 2, Lookahead: "$", State: 4, Msg: "no action"}
	assert.Equal(t, "NoTableEntry at position 2 (lookahead $) in state 4: no action", err.Error())
	err = &ParseError{Kind: TerminalMismatch, Pos: 0, Lookahead: "x", State: -1}
	assert.Equal(t, "TerminalMismatch at position 0 (lookahead x)", err.Error())
}

func TestTraceRecorder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsekit.lr")
	defer teardown()
	//
	rec := NewTraceRecorder(true)
	states := []int{0, 3}
	rec.Record(states, []string{"id"}, []string{"+", "$"}, "shift")
	states[1] = 7 // snapshot must not change
	rec.Record(states, []string{"F"}, []string{"+", "$"}, "reduce")
	ev := rec.Events()
	require.Equal(t, 2, len(ev))
	assert.Equal(t, []int{0, 3}, ev[0].States)
	assert.Equal(t, 1, ev[1].Seq)
	assert.Contains(t, ev[0].String(), "ACTION: shift")
	off := NewTraceRecorder(false)
	off.Record(nil, nil, nil, "accept")
	assert.Empty(t, off.Events())
}

type lengthParser struct {
	calls int32
}

func (p *lengthParser) Parse(tokens []string) *Result {
	atomic.AddInt32(&p.calls, 1)
	return &Result{Accepted: len(tokens)%2 == 0, Kind: parsekit.LALR1}
}

func TestParseAll(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsekit.lr")
	defer teardown()
	//
	inputs := [][]string{{"a"}, {"a", "b"}, {}, {"a", "b", "c"}}
	p := &lengthParser{}
	results, err := ParseAll(context.Background(), p, inputs, 2)
	require.NoError(t, err)
	require.Equal(t, len(inputs), len(results))
	for i, res := range results {
		assert.Equal(t, len(inputs[i])%2 == 0, res.Accepted, i)
	}
	assert.Equal(t, int32(4), atomic.LoadInt32(&p.calls))
}

func TestParseAllCancelled(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsekit.lr")
	defer teardown()
	//
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := &lengthParser{}
	_, err := ParseAll(ctx, p, [][]string{{"a"}, {"b"}}, 0)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, int32(0), atomic.LoadInt32(&p.calls))
}
