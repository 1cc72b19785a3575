package shiftreduce

import (
	"fmt"

	"github.com/npillmayer/parsekit/lr"
	"github.com/npillmayer/parsekit/lr/ptree"
	"github.com/npillmayer/schuko/gconf"
)

// Parser is a shift-reduce parser type. Create and initialize one with
// shiftreduce.NewParser(...). Parsers do not hold any state of a parse run and
// may be shared between goroutines.
type Parser struct {
	lrgen       *lr.TableGenerator
	g           *lr.Grammar
	trace       bool
	panicOnGoto bool
}

// Option configures a parser.
type Option func(*Parser)

// WithTrace lets the parser record a trace event for every step.
func WithTrace() Option {
	return func(p *Parser) {
		p.trace = true
	}
}

// NewParser creates a shift-reduce parser for tables created by lrgen.
// Tables must have been created with lrgen.CreateTables().
func NewParser(lrgen *lr.TableGenerator, opts ...Option) *Parser {
	p := &Parser{
		lrgen:       lrgen,
		g:           lrgen.Grammar(),
		panicOnGoto: gconf.GetBool("lr.panic-on-missing-goto"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// The parser stack consists of three parallel stacks: CFSM states, grammar
// symbols and parse tree nodes. The state stack is one entry longer, holding
// the start state at the bottom.
type run struct {
	p      *Parser
	states []int
	syms   []*lr.Symbol
	nodes  []*ptree.Node
	input  []*lr.Symbol // nil for names which are not terminals of the grammar
	names  []string
	pos    int
	trace  *ptree.TraceRecorder
	result *ptree.Result
}

// Parse parses a sequence of terminal names. The end-of-input marker is
// appended by the parser.
//
// Rejected input results in a ptree.Result with Accepted=false and a
// ptree.ParseError describing the position of the error.
func (p *Parser) Parse(tokens []string) *ptree.Result {
	tracer().Debugf("~~~ %s parse of %v ~~~~~~~~~~~~~~~~~~~~~~~~~~", p.lrgen.Kind(), tokens)
	r := &run{
		p:      p,
		states: make([]int, 1, 64),
		names:  append(append([]string{}, tokens...), lr.EOFName),
		trace:  ptree.NewTraceRecorder(p.trace),
		result: &ptree.Result{Kind: p.lrgen.Kind()},
	}
	if p.lrgen.CFSM() == nil {
		tracer().Errorf("shift-reduce parser: tables not initialized")
		r.fail(ptree.NoTableEntry, "", "parse tables not initialized")
		return r.result
	}
	r.states[0] = p.lrgen.CFSM().S0.ID
	r.input = make([]*lr.Symbol, len(r.names))
	for i, name := range r.names {
		if a := p.g.SymbolByName(name); a != nil && a.IsTerminal() && !a.IsEOF() {
			r.input[i] = a
		}
	}
	r.input[len(r.input)-1] = p.g.EOF() // only the appended marker ends the input
	if r.parse() {
		r.result.Accepted = true
		r.result.Tree = r.nodes[len(r.nodes)-1]
	}
	r.result.Trace = r.trace.Events()
	return r.result
}

func (r *run) parse() bool {
	for {
		s := r.states[len(r.states)-1] // TOS
		a := r.input[r.pos]
		act := r.p.lrgen.Action(s, a)
		switch action := act.(type) {
		case nil:
			r.record("error: no action")
			r.fail(ptree.NoTableEntry, "", fmt.Sprintf("no action for %s", r.names[r.pos]))
			return false
		case lr.Reject:
			r.record("error: non-associative")
			r.fail(ptree.NoTableEntry, "", fmt.Sprintf("operator %s is non-associative", a))
			r.result.Err.NonAssoc = true
			return false
		case lr.Shift:
			r.record(fmt.Sprintf("shift %s → %d", a, action.State))
			r.syms = append(r.syms, a)
			r.nodes = append(r.nodes, ptree.Leaf(a, uint64(r.pos)))
			r.states = append(r.states, action.State)
			r.pos++
		case lr.Reduce:
			rule := r.p.g.Rule(action.Rule)
			r.record(fmt.Sprintf("reduce %s", rule))
			if !r.reduce(rule) {
				return false
			}
		case lr.Accept:
			r.record("accept")
			return true
		default:
			panic(fmt.Sprintf("unknown parser action %v", act))
		}
	}
}

// reduce pops |RHS| entries off the stacks and pushes the LHS of rule
// together with a new tree node. An ε-rule gets a single ε leaf as child.
func (r *run) reduce(rule *lr.Rule) bool {
	k := rule.Len()
	var children []*ptree.Node
	if k == 0 {
		children = []*ptree.Node{ptree.EpsilonLeaf(r.p.g.Epsilon(), uint64(r.pos))}
	} else {
		children = make([]*ptree.Node, k)
		copy(children, r.nodes[len(r.nodes)-k:])
		r.nodes = r.nodes[:len(r.nodes)-k]
		r.syms = r.syms[:len(r.syms)-k]
		r.states = r.states[:len(r.states)-k]
	}
	t := r.states[len(r.states)-1]
	next, ok := r.p.lrgen.Goto(t, rule.LHS)
	if !ok {
		msg := fmt.Sprintf("no GOTO entry for state %d and %s after reducing %s", t, rule.LHS, rule)
		tracer().Errorf("internal error: %s", msg)
		if r.p.panicOnGoto {
			panic(msg)
		}
		r.fail(ptree.NoGotoEntry, rule.LHS.Name, msg)
		return false
	}
	r.syms = append(r.syms, rule.LHS)
	r.nodes = append(r.nodes, ptree.Inner(rule, children))
	r.states = append(r.states, next)
	r.result.Derivation = append(r.result.Derivation, ptree.Step{LHS: rule.LHS, Rule: rule})
	return true
}

func (r *run) symbols() []string {
	names := make([]string, len(r.syms))
	for i, A := range r.syms {
		names[i] = A.Name
	}
	return names
}

func (r *run) record(action string) {
	r.trace.Record(r.states, r.symbols(), r.names[r.pos:], action)
}

func (r *run) fail(kind ptree.ErrorKind, sym string, msg string) {
	err := &ptree.ParseError{
		Kind:      kind,
		Pos:       r.pos,
		Lookahead: r.names[r.pos],
		Symbol:    sym,
		State:     r.states[len(r.states)-1],
		Stack:     r.symbols(),
		States:    append([]int{}, r.states...),
		Msg:       msg,
	}
	tracer().Infof("%s parse rejected: %v", r.p.lrgen.Kind(), err)
	r.result.Err = err
}
