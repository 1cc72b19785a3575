package ptree

import (
	"fmt"
	"strings"

	"github.com/npillmayer/parsekit"
	"github.com/npillmayer/parsekit/lr"
)

// Parser is implemented by all parsers of this module. Input is a sequence of
// terminal names; the end-of-input marker is appended by the parser.
type Parser interface {
	Parse(tokens []string) *Result
}

// Step is a step of a derivation: a non-terminal and the rule it has been
// derived with.
type Step struct {
	LHS  *lr.Symbol
	Rule *lr.Rule
}

func (s Step) String() string {
	return s.Rule.String()
}

// Result is the outcome of a single parse run.
//
// Derivation lists the steps in leftmost order for LL(1) parsers. For shift-reduce
// parsers it lists the reductions in the order they happened, which is a
// rightmost derivation in reverse.
type Result struct {
	Accepted   bool
	Tree       *Node // root of the parse tree, if accepted
	Derivation []Step
	Kind       parsekit.Kind // kind of parser which produced this result
	Err        *ParseError   // non-nil if the input has been rejected
	Trace      []TraceEvent  // only if tracing has been requested
}

// Rules returns the serial numbers of the derivation rules.
func (r *Result) Rules() []int {
	rules := make([]int, len(r.Derivation))
	for i, s := range r.Derivation {
		rules[i] = s.Rule.Serial
	}
	return rules
}

// --- Errors ----------------------------------------------------------------

// ErrorKind categorizes parse errors.
type ErrorKind int

// Kinds of parse errors. NoGotoEntry indicates inconsistent tables rather than
// erroneous input.
const (
	TerminalMismatch ErrorKind = iota + 1
	NoTableEntry
	NoGotoEntry
)

func (k ErrorKind) String() string {
	switch k {
	case TerminalMismatch:
		return "TerminalMismatch"
	case NoTableEntry:
		return "NoTableEntry"
	case NoGotoEntry:
		return "NoGotoEntry"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// ParseError describes why an input has been rejected, together with a snapshot
// of the parser stacks at the point of failure.
type ParseError struct {
	Kind      ErrorKind
	Pos       int    // index of the lookahead within the input
	Lookahead string // terminal at Pos, "$" at the end of input
	Expected  string // expected terminal for TerminalMismatch
	Symbol    string // symbol on top of the stack (LL) or to goto with (LR)
	State     int    // automaton state for shift-reduce parsers, -1 otherwise
	NonAssoc  bool   // lookahead hit an error entry of a non-associative operator
	Stack     []string
	States    []int
	Msg       string
}

func (e *ParseError) Error() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s at position %d (lookahead %s)", e.Kind, e.Pos, e.Lookahead))
	if e.State >= 0 {
		b.WriteString(fmt.Sprintf(" in state %d", e.State))
	}
	if e.Msg != "" {
		b.WriteString(": ")
		b.WriteString(e.Msg)
	}
	return b.String()
}

// --- Traces ----------------------------------------------------------------

// TraceEvent is a snapshot of a parser before executing Action.
type TraceEvent struct {
	Seq    int
	States []int    // state stack, bottom first; empty for LL(1)
	Stack  []string // symbol stack, bottom first
	Input  []string // remaining input
	Action string
}

func (ev TraceEvent) String() string {
	states := make([]string, len(ev.States))
	for i, s := range ev.States {
		states[i] = fmt.Sprintf("%d", s)
	}
	return fmt.Sprintf("STATES: [%-20s] SYMS: %-20s INPUT: %-30s ACTION: %s",
		strings.Join(states, ","), strings.Join(ev.Stack, " "),
		strings.Join(ev.Input, " "), ev.Action)
}

// TraceRecorder collects trace events for a parse run. Every event is sent to
// the tracer; events are kept only if recording is switched on.
type TraceRecorder struct {
	keep   bool
	seq    int
	events []TraceEvent
}

// NewTraceRecorder creates a recorder, keeping events if keep is true.
func NewTraceRecorder(keep bool) *TraceRecorder {
	return &TraceRecorder{keep: keep}
}

// Record snapshots the parser stacks. Arguments are copied.
func (r *TraceRecorder) Record(states []int, stack []string, input []string, action string) {
	ev := TraceEvent{
		Seq:    r.seq,
		States: append([]int{}, states...),
		Stack:  append([]string{}, stack...),
		Input:  append([]string{}, input...),
		Action: action,
	}
	r.seq++
	tracer().Debugf("%s", ev)
	if r.keep {
		r.events = append(r.events, ev)
	}
}

// Events returns the recorded events, in order.
func (r *TraceRecorder) Events() []TraceEvent {
	return r.events
}
