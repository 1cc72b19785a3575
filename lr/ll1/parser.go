package ll1

import (
	"fmt"

	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/npillmayer/parsekit"
	"github.com/npillmayer/parsekit/lr"
	"github.com/npillmayer/parsekit/lr/ptree"
)

// Parser is a predictive LL(1) parser. Create one with NewParser. A parser
// holds no per-run state and may be used by concurrent goroutines.
type Parser struct {
	table *Table
	trace bool
}

// Option configures a parser.
type Option func(*Parser)

// WithTrace lets the parser record a trace event for every step.
func WithTrace() Option {
	return func(p *Parser) {
		p.trace = true
	}
}

// NewParser creates a predictive parser for an LL(1) table.
func NewParser(table *Table, opts ...Option) *Parser {
	p := &Parser{table: table}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// stack entries are pairs of grammar symbols and the tree nodes they will become.
type entry struct {
	sym  *lr.Symbol
	node *ptree.Node
}

// expansion remembers the height of the stack below an expanded non-terminal
// and the lowest stack height seen since.
type expansion struct {
	below, low int
}

// run holds the state of a single parse.
type run struct {
	p       *Parser
	g       *lr.Grammar
	stack   *arraystack.Stack
	input   []*lr.Symbol // nil for names which are not terminals of the grammar
	names   []string
	pos     int
	trace   *ptree.TraceRecorder
	result  *ptree.Result
	pending map[*lr.Symbol]expansion // expansions since the last match
}

// Parse parses a sequence of terminal names. The end-of-input marker is appended.
func (p *Parser) Parse(tokens []string) *ptree.Result {
	g := p.table.g
	r := &run{
		p:       p,
		g:       g,
		stack:   arraystack.New(),
		names:   append(append([]string{}, tokens...), lr.EOFName),
		trace:   ptree.NewTraceRecorder(p.trace),
		result:  &ptree.Result{Kind: parsekit.LL1},
		pending: make(map[*lr.Symbol]expansion),
	}
	r.input = make([]*lr.Symbol, len(r.names))
	for i, name := range r.names {
		if a := g.SymbolByName(name); a != nil && a.IsTerminal() && !a.IsEOF() {
			r.input[i] = a
		}
	}
	r.input[len(r.input)-1] = g.EOF() // only the appended marker ends the input
	tracer().Debugf("~~~ LL(1) parse of %v ~~~~~~~~~~~~~~~~~~~~~~~~~~", tokens)
	root := &ptree.Node{Symbol: g.Start()}
	r.stack.Push(entry{sym: g.EOF()})
	r.stack.Push(entry{sym: g.Start(), node: root})
	if r.parse() {
		root.UpdateSpans()
		r.result.Accepted = true
		r.result.Tree = root
	}
	r.result.Trace = r.trace.Events()
	return r.result
}

func (r *run) parse() bool {
	for {
		x, _ := r.stack.Peek()
		top := x.(entry)
		a := r.input[r.pos]
		if top.sym.IsTerminal() {
			if top.sym != a {
				r.record(fmt.Sprintf("error: expected %s", top.sym))
				r.fail(ptree.TerminalMismatch, top.sym, fmt.Sprintf("expected %s", top.sym))
				return false
			}
			if a.IsEOF() {
				r.record("accept")
				return true
			}
			r.record(fmt.Sprintf("match %s", a))
			r.stack.Pop()
			top.node.Span = parsekit.Span{uint64(r.pos), uint64(r.pos + 1)}
			r.pos++
			r.pending = make(map[*lr.Symbol]expansion)
			continue
		}
		rule, ok := r.p.table.Entry(top.sym, a)
		if !ok {
			r.record("error: no table entry")
			r.fail(ptree.NoTableEntry, top.sym, fmt.Sprintf("no rule for %s", top.sym))
			return false
		}
		if r.loops(top.sym) {
			r.record("error: no progress")
			r.fail(ptree.NoTableEntry, top.sym,
				fmt.Sprintf("expansion of %s does not consume input (left recursion)", top.sym))
			return false
		}
		r.record(fmt.Sprintf("expand %s", rule))
		r.expand(top, rule)
	}
}

// expand replaces the non-terminal on top of the stack by the RHS of rule,
// pushed in reverse. The tree node for the non-terminal gets its children.
func (r *run) expand(top entry, rule *lr.Rule) {
	r.stack.Pop()
	below := r.stack.Size()
	r.result.Derivation = append(r.result.Derivation, ptree.Step{LHS: top.sym, Rule: rule})
	top.node.Rule = rule
	if rule.IsEpsilon() {
		top.node.Children = []*ptree.Node{ptree.EpsilonLeaf(r.g.Epsilon(), uint64(r.pos))}
	} else {
		rhs := rule.RHS()
		top.node.Children = make([]*ptree.Node, len(rhs))
		for i, X := range rhs {
			top.node.Children[i] = &ptree.Node{Symbol: X}
		}
		for i := len(rhs) - 1; i >= 0; i-- {
			r.stack.Push(entry{sym: rhs[i], node: top.node.Children[i]})
		}
	}
	for A, e := range r.pending {
		if below < e.low {
			r.pending[A] = expansion{below: e.below, low: below}
		}
	}
	r.pending[top.sym] = expansion{below: below, low: r.stack.Size()}
}

// loops checks if expanding A would repeat an earlier expansion of A without
// consuming input and without touching the stack below it. Such a parse
// would never terminate.
func (r *run) loops(A *lr.Symbol) bool {
	e, ok := r.pending[A]
	below := r.stack.Size() - 1
	return ok && below >= e.below && e.low >= e.below
}

func (r *run) record(action string) {
	r.trace.Record(nil, r.symbols(), r.names[r.pos:], action)
}

// symbols returns the names of the stack symbols, bottom first.
func (r *run) symbols() []string {
	vals := r.stack.Values() // top first
	syms := make([]string, len(vals))
	for i, v := range vals {
		syms[len(vals)-1-i] = v.(entry).sym.Name
	}
	return syms
}

func (r *run) fail(kind ptree.ErrorKind, top *lr.Symbol, msg string) {
	err := &ptree.ParseError{
		Kind:      kind,
		Pos:       r.pos,
		Lookahead: r.names[r.pos],
		Symbol:    top.Name,
		State:     -1,
		Stack:     r.symbols(),
		Msg:       msg,
	}
	if kind == ptree.TerminalMismatch {
		err.Expected = top.Name
	}
	tracer().Infof("LL(1) parse rejected: %v", err)
	r.result.Err = err
}
