package lr

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
	"github.com/npillmayer/parsekit/lr/iteratable"
)

// === Closure and Goto-Set Operations =======================================

// Refer to "Crafting A Compiler" by Charles N. Fisher & Richard J. LeBlanc, Jr.
// Section 6.2.1 LR(0) Parsing and 6.3 LR(1) Parsing

// Compute the closure of a single item.
func (ga *LRAnalysis) closure(i Item) *iteratable.Set {
	return ga.closureSet(newItemSet(i))
}

// Compute the closure of an item set. For every item A ⟶ α • B β [, a] we add
// B ⟶ • γ for every B-rule; LR(1) items get every lookahead b ∈ FIRST(β a).
// Items added during the pass are visited by the same pass.
func (ga *LRAnalysis) closureSet(S *iteratable.Set) *iteratable.Set {
	C := S.Copy() // add start items to closure
	C.IterateOnce()
	for C.Next() {
		item := asItem(C.Item())
		B := item.PeekSymbol()              // get symbol B after dot
		if B == nil || !B.IsNonTerminal() { // need B to be non-terminal
			continue
		}
		lookaheads := []*Symbol{nil}
		if item.la != nil {
			rest := item.rule.rhs[item.dot+1:]
			beta := make([]*Symbol, len(rest), len(rest)+1)
			copy(beta, rest)
			lookaheads = ga.FirstOfSequence(append(beta, item.la)).Symbols()
		}
		for _, r := range ga.g.RulesFor(B) {
			for _, la := range lookaheads {
				if la != nil && la.IsEpsilon() {
					continue
				}
				C.Add(Item{rule: r, dot: 0, la: la})
			}
		}
	}
	return C
}

// gotoSet advances the dot over A for every item of closure which permits it.
func (ga *LRAnalysis) gotoSet(closure *iteratable.Set, A *Symbol) *iteratable.Set {
	gotoset := newItemSet()
	for _, x := range closure.Values() {
		i := asItem(x)
		if i.PeekSymbol() == A {
			gotoset.Add(i.Advance())
		}
	}
	return gotoset
}

func (ga *LRAnalysis) gotoSetClosure(i *iteratable.Set, A *Symbol) *iteratable.Set {
	gotoset := ga.gotoSet(i, A)
	if gotoset.Empty() {
		return gotoset
	}
	gclosure := ga.closureSet(gotoset)
	tracer().Debugf("goto(%s) --%s--> %s", itemSetString(i), A, itemSetString(gclosure))
	return gclosure
}

// === CFSM Construction =====================================================

// CFSMState is a state within the CFSM for a grammar.
type CFSMState struct {
	ID     int             // serial ID of this state
	items  *iteratable.Set // configuration items within this state
	Accept bool            // does this state contain S' ⟶ S • ?
}

// Create a state from an item set
func state(id int, iset *iteratable.Set) *CFSMState {
	s := &CFSMState{ID: id}
	if iset == nil {
		s.items = newItemSet()
	} else {
		s.items = iset
	}
	return s
}

// Items returns the items of a state, in the order they have been derived.
func (s *CFSMState) Items() []Item {
	vals := s.items.Values()
	items := make([]Item, len(vals))
	for i, x := range vals {
		items[i] = asItem(x)
	}
	return items
}

func (s *CFSMState) String() string {
	return fmt.Sprintf("(state %d | [%d])", s.ID, s.items.Size())
}

func (s *CFSMState) containsCompletedStartRule() bool {
	for _, x := range s.items.Values() {
		i := asItem(x)
		if i.rule.Serial == 0 && i.IsComplete() {
			return true
		}
	}
	return false
}

// Dump is a debugging helper
func (s *CFSMState) Dump() {
	tracer().Debugf("--- state %03d -----------", s.ID)
	for _, i := range s.Items() {
		tracer().Debugf("    %s", i)
	}
	tracer().Debugf("-------------------------")
}

// transition is the key for the transition function state × symbol → state
type transition struct {
	from int
	sym  *Symbol
}

// Edge is a transition of the CFSM, labeled with a grammar symbol.
type Edge struct {
	From, To int
	Label    *Symbol
}

// CFSM is the characteristic finite state machine for a LR grammar, i.e. the
// LR(0) or LR(1) state diagram. It will be constructed by a TableGenerator.
// Clients normally do not use it directly. Nevertheless, there are some methods
// defined on it, e.g, for debugging purposes, or even to
// compute your own tables from it.
//
// States are compared by the structure of their item sets, never by identity:
// new states are registered under a canonical key of their items.
type CFSM struct {
	g         *Grammar
	ga        *LRAnalysis
	states    []*CFSMState
	index     map[string]int // canonical item-set key → state ID
	trans     map[transition]int
	S0        *CFSMState // start state
	lookahead bool       // LR(1) items?
	merged    bool       // LALR(1) core-merged?
	maxStates int
}

// create an empty (initial) CFSM automata.
func emptyCFSM(ga *LRAnalysis, lookahead bool, maxStates int) *CFSM {
	return &CFSM{
		g:         ga.g,
		ga:        ga,
		index:     make(map[string]int),
		trans:     make(map[transition]int),
		lookahead: lookahead,
		maxStates: maxStates,
	}
}

// addState registers a state for an item set, if not already present. It returns
// the state and a flag indicating whether it is new.
func (c *CFSM) addState(iset *iteratable.Set) (*CFSMState, bool, error) {
	key := itemSetKey(iset, false)
	if id, ok := c.index[key]; ok {
		return c.states[id], false, nil
	}
	if len(c.states) >= c.maxStates {
		return nil, false, &BuildError{
			Kind:  ResourceExceeded,
			Limit: c.maxStates,
			Msg:   fmt.Sprintf("automaton for grammar %q has too many states", c.g.Name),
		}
	}
	s := state(len(c.states), iset)
	s.Accept = s.containsCompletedStartRule()
	c.states = append(c.states, s)
	c.index[key] = s.ID
	return s, true, nil
}

func (c *CFSM) addEdge(s0, s1 *CFSMState, sym *Symbol) {
	c.trans[transition{from: s0.ID, sym: sym}] = s1.ID
}

// BuildLR0 constructs the LR(0) automaton for a grammar, as used by SLR(1) parsers.
func BuildLR0(ga *LRAnalysis, opts ...Option) (*CFSM, error) {
	return buildCFSM(ga, false, makeOptions(opts))
}

// BuildLR1 constructs the canonical LR(1) automaton for a grammar.
func BuildLR1(ga *LRAnalysis, opts ...Option) (*CFSM, error) {
	return buildCFSM(ga, true, makeOptions(opts))
}

// BuildLALR1 constructs the LALR(1) automaton for a grammar, by first building the
// canonical LR(1) automaton and then merging states with identical cores.
// The state ceiling applies to the canonical automaton.
func BuildLALR1(ga *LRAnalysis, opts ...Option) (*CFSM, error) {
	lr1, err := buildCFSM(ga, true, makeOptions(opts))
	if err != nil {
		return nil, err
	}
	return lr1.mergeCores(), nil
}

// We need this for the set of states. It sorts states by serial ID.
func stateComparator(s1, s2 interface{}) int {
	c1 := s1.(*CFSMState)
	c2 := s2.(*CFSMState)
	return utils.IntComparator(c1.ID, c2.ID)
}

// Construct the characteristic finite state machine CFSM for a grammar.
// The worklist is ordered by state ID, and goto-sets are computed for symbols in
// order of symbol IDs, which makes state numbering deterministic.
func buildCFSM(ga *LRAnalysis, lookahead bool, opts options) (*CFSM, error) {
	tracer().Debugf("=== build CFSM ==================================================")
	G := ga.g
	cfsm := emptyCFSM(ga, lookahead, opts.maxStates)
	var la *Symbol
	if lookahead {
		la = G.EOF()
	}
	closure0 := ga.closure(StartItem(G.rules[0], la))
	s0, _, err := cfsm.addState(closure0)
	if err != nil {
		return nil, err
	}
	cfsm.S0 = s0
	cfsm.S0.Dump()
	S := treeset.NewWith(stateComparator)
	S.Add(cfsm.S0)
	for S.Size() > 0 {
		s := S.Values()[0].(*CFSMState)
		S.Remove(s)
		for _, A := range symbolsAfterDot(s) {
			gotoset := ga.gotoSetClosure(s.items, A)
			snew, isNew, err := cfsm.addState(gotoset)
			if err != nil {
				tracer().Errorf("%v", err)
				return nil, err
			}
			if isNew {
				S.Add(snew)
				snew.Dump()
			}
			cfsm.addEdge(s, snew, A)
		}
	}
	tracer().Infof("CFSM for %q (LR(%d)) has %d states", G.Name, boolToInt(lookahead), len(cfsm.states))
	return cfsm, nil
}

// symbolsAfterDot collects the symbols following a dot in any item of s, in order of IDs.
func symbolsAfterDot(s *CFSMState) []*Symbol {
	syms := NewSymbolSet()
	for _, x := range s.items.Values() {
		if A := asItem(x).PeekSymbol(); A != nil {
			syms.add(A)
		}
	}
	return syms.Symbols()
}

// mergeCores creates the LALR(1) automaton from a canonical LR(1) automaton.
// States with identical cores, i.e. equal (rule, dot) pairs ignoring lookaheads,
// are merged, uniting their items. Transitions are re-indexed onto merged states.
func (c *CFSM) mergeCores() *CFSM {
	m := emptyCFSM(c.ga, true, c.maxStates)
	m.merged = true
	cores := make(map[string]int)
	idx := make([]int, len(c.states))
	for _, s := range c.states {
		key := itemSetKey(s.items, true)
		if j, ok := cores[key]; ok {
			m.states[j].items.Union(s.items)
			m.states[j].Accept = m.states[j].Accept || s.Accept
			idx[s.ID] = j
			continue
		}
		snew := state(len(m.states), s.items.Copy())
		snew.Accept = s.Accept
		cores[key] = snew.ID
		idx[s.ID] = snew.ID
		m.states = append(m.states, snew)
	}
	for _, s := range m.states {
		m.index[itemSetKey(s.items, false)] = s.ID
	}
	for t, to := range c.trans {
		m.trans[transition{from: idx[t.from], sym: t.sym}] = idx[to]
	}
	m.S0 = m.states[idx[c.S0.ID]]
	tracer().Infof("LALR(1) merged %d LR(1) states into %d states", len(c.states), len(m.states))
	return m
}

// --- Queries ---------------------------------------------------------------

// Grammar returns the grammar of this automaton.
func (c *CFSM) Grammar() *Grammar {
	return c.g
}

// States returns all states, in order of IDs.
func (c *CFSM) States() []*CFSMState {
	return c.states
}

// State returns the state with the given ID, or nil.
func (c *CFSM) State(id int) *CFSMState {
	if id < 0 || id >= len(c.states) {
		return nil
	}
	return c.states[id]
}

// Size returns the number of states.
func (c *CFSM) Size() int {
	return len(c.states)
}

// HasLookahead is true for LR(1) and LALR(1) automata.
func (c *CFSM) HasLookahead() bool {
	return c.lookahead
}

// IsMerged is true for LALR(1) automata.
func (c *CFSM) IsMerged() bool {
	return c.merged
}

// Transition returns the target state for a transition from state id over A.
func (c *CFSM) Transition(id int, A *Symbol) (int, bool) {
	to, ok := c.trans[transition{from: id, sym: A}]
	return to, ok
}

// Edges returns all outgoing transitions of a state, ordered by symbol ID.
func (c *CFSM) Edges(id int) []Edge {
	var edges []Edge
	for t, to := range c.trans {
		if t.from == id {
			edges = append(edges, Edge{From: id, To: to, Label: t.sym})
		}
	}
	sort.Slice(edges, func(i, j int) bool {
		return edges[i].Label.ID < edges[j].Label.ID
	})
	return edges
}

// Listing returns a textual listing of all states with their items and transitions.
func (c *CFSM) Listing() string {
	var b bytes.Buffer
	for _, s := range c.states {
		if s.Accept {
			b.WriteString(fmt.Sprintf("state %d (accept)\n", s.ID))
		} else {
			b.WriteString(fmt.Sprintf("state %d\n", s.ID))
		}
		for _, i := range s.Items() {
			b.WriteString(fmt.Sprintf("    %s\n", i))
		}
		for _, e := range c.Edges(s.ID) {
			b.WriteString(fmt.Sprintf("    on %s → %d\n", e.Label, e.To))
		}
	}
	return b.String()
}

// Dump is a debugging helper, writing the listing to the tracer.
func (c *CFSM) Dump() {
	for _, s := range c.states {
		s.Dump()
	}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
