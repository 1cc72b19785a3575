package lr

import (
	"fmt"
	"strings"
)

// --- Symbols ---------------------------------------------------------------

// SymbolKind tags grammar symbols.
type SymbolKind int

// Kinds of grammar symbols. Epsilon is not a symbol of any rule; it is used
// within FIRST-sets and as a leaf in parse trees.
const (
	Terminal SymbolKind = iota
	NonTerminal
	Epsilon
)

func (k SymbolKind) String() string {
	switch k {
	case Terminal:
		return "T"
	case NonTerminal:
		return "N"
	case Epsilon:
		return "ε"
	}
	panic(fmt.Sprintf("unknown symbol kind %d", int(k)))
}

// Reserved symbol names.
const (
	EOFName     = "$"
	EpsilonName = "ε"
)

// Symbol is a grammar symbol. Symbols are unique within a grammar and may
// be compared by pointer. IDs are dense: the end-of-input terminal '$' has ID 0,
// followed by all other terminals and then by all non-terminals. The epsilon
// symbol has ID -1.
type Symbol struct {
	Name string
	ID   int
	kind SymbolKind
}

// Kind returns the kind of symbol A.
func (A *Symbol) Kind() SymbolKind {
	return A.kind
}

// IsTerminal returns true if A is a terminal (including '$').
func (A *Symbol) IsTerminal() bool {
	return A.kind == Terminal
}

// IsNonTerminal returns true if A is a non-terminal.
func (A *Symbol) IsNonTerminal() bool {
	return A.kind == NonTerminal
}

// IsEpsilon returns true for the epsilon symbol.
func (A *Symbol) IsEpsilon() bool {
	return A.kind == Epsilon
}

// IsEOF returns true for the end-of-input terminal.
func (A *Symbol) IsEOF() bool {
	return A.kind == Terminal && A.ID == 0
}

func (A *Symbol) String() string {
	return A.Name
}

// isEpsilonName checks for one of the spellings of ε.
func isEpsilonName(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case EpsilonName, "eps", "epsilon":
		return true
	}
	return false
}

// --- Precedence ------------------------------------------------------------

// Associativity of a terminal.
type Associativity int

// Associativity values. NoAssoc means that no associativity is declared.
const (
	NoAssoc Associativity = iota
	Left
	Right
	NonAssoc
)

func (a Associativity) String() string {
	switch a {
	case NoAssoc:
		return "none"
	case Left:
		return "left"
	case Right:
		return "right"
	case NonAssoc:
		return "nonassoc"
	}
	return fmt.Sprintf("Associativity(%d)", int(a))
}

// Precedence is the precedence of a terminal or a rule. Level 0 means
// 'undefined'; higher levels bind tighter.
type Precedence struct {
	Level int
	Assoc Associativity
}

// IsDefined is false for the zero precedence.
func (p Precedence) IsDefined() bool {
	return p.Level > 0
}

// --- Rules -----------------------------------------------------------------

// Rule is a type for rules of a grammar. Rules cannot be shared between grammars.
// An epsilon rule has an empty right hand side.
type Rule struct {
	Serial int     // order number of this rule within a grammar
	LHS    *Symbol // symbol of left hand side
	rhs    []*Symbol
}

// RHS returns the right hand side of a rule. Clients must not modify it.
func (r *Rule) RHS() []*Symbol {
	return r.rhs
}

// Len is the number of symbols on the right hand side.
func (r *Rule) Len() int {
	return len(r.rhs)
}

// IsEpsilon returns true for rules A ⟶ ε.
func (r *Rule) IsEpsilon() bool {
	return len(r.rhs) == 0
}

// RHSNames returns the names of the RHS symbols. For epsilon rules it returns
// an empty slice.
func (r *Rule) RHSNames() []string {
	names := make([]string, len(r.rhs))
	for i, A := range r.rhs {
		names[i] = A.Name
	}
	return names
}

func (r *Rule) String() string {
	if r.IsEpsilon() {
		return fmt.Sprintf("%s ⟶ %s", r.LHS, EpsilonName)
	}
	return fmt.Sprintf("%s ⟶ %s", r.LHS, strings.Join(r.RHSNames(), " "))
}

// --- Grammar ---------------------------------------------------------------

// Grammar is a type for a context-free grammar. Grammars are immutable once
// they are built. Rule 0 is always the augmented start rule S' ⟶ S.
type Grammar struct {
	Name         string
	terminals    []*Symbol // terminals[0] is '$'
	nonterminals []*Symbol // nonterminals[0] is S'
	symbols      map[string]*Symbol
	rules        []*Rule
	rulesByLHS   map[*Symbol][]*Rule
	start        *Symbol
	epsilon      *Symbol
	precedence   map[*Symbol]Precedence
}

// GrammarSpec is a declarative description of a grammar.
type GrammarSpec struct {
	Name         string
	Terminals    []string
	NonTerminals []string
	Start        string
	Productions  []ProductionSpec
	Precedence   []PrecedenceGroup // in order of increasing precedence
}

// ProductionSpec lists the alternatives for a non-terminal. An empty
// alternative or an alternative consisting of ε (or "eps", "epsilon")
// denotes an epsilon production.
type ProductionSpec struct {
	LHS          string
	Alternatives [][]string
}

// PrecedenceGroup declares terminals of equal precedence and associativity.
type PrecedenceGroup struct {
	Assoc     Associativity
	Terminals []string
}

// NewGrammar creates a grammar from a specification. It returns a *GrammarError
// if the specification is malformed.
func NewGrammar(spec GrammarSpec) (*Grammar, error) {
	g := &Grammar{
		Name:       spec.Name,
		symbols:    make(map[string]*Symbol),
		rulesByLHS: make(map[*Symbol][]*Rule),
		precedence: make(map[*Symbol]Precedence),
		epsilon:    &Symbol{Name: EpsilonName, ID: -1, kind: Epsilon},
	}
	eof := &Symbol{Name: EOFName, ID: 0, kind: Terminal}
	g.terminals = append(g.terminals, eof)
	for _, name := range spec.Terminals {
		if _, err := g.declare(name, Terminal); err != nil {
			return nil, err
		}
	}
	for _, grp := range spec.Precedence { // may declare additional terminals
		for _, name := range grp.Terminals {
			if A, ok := g.symbols[name]; ok && !A.IsTerminal() {
				return nil, grammarError(g.Name, "precedence declared for non-terminal %q", name)
			} else if !ok {
				if _, err := g.declare(name, Terminal); err != nil {
					return nil, err
				}
			}
		}
	}
	for _, name := range spec.NonTerminals {
		if _, err := g.declare(name, NonTerminal); err != nil {
			return nil, err
		}
	}
	for level, grp := range spec.Precedence {
		if grp.Assoc < Left || grp.Assoc > NonAssoc {
			return nil, grammarError(g.Name, "invalid associativity in precedence group %d", level+1)
		}
		for _, name := range grp.Terminals {
			g.precedence[g.symbols[name]] = Precedence{Level: level + 1, Assoc: grp.Assoc}
		}
	}
	start, ok := g.symbols[spec.Start]
	if !ok || !start.IsNonTerminal() {
		return nil, grammarError(g.Name, "start symbol %q is not a declared non-terminal", spec.Start)
	}
	g.start = start
	// augment grammar: S' ⟶ S, with a name not colliding with any symbol
	augname := start.Name + "'"
	for g.symbols[augname] != nil {
		augname += "'"
	}
	augstart := &Symbol{Name: augname, kind: NonTerminal}
	g.nonterminals = append([]*Symbol{augstart}, g.nonterminals...)
	g.symbols[augname] = augstart
	for i, A := range g.nonterminals { // nonterminals follow terminals
		A.ID = len(g.terminals) + i
	}
	g.addRule(augstart, []*Symbol{start})
	for _, p := range spec.Productions {
		lhs, ok := g.symbols[p.LHS]
		if !ok || !lhs.IsNonTerminal() || lhs == augstart {
			return nil, grammarError(g.Name, "left hand side %q is not a declared non-terminal", p.LHS)
		}
		for _, alt := range p.Alternatives {
			rhs, err := g.normalize(lhs, alt)
			if err != nil {
				return nil, err
			}
			g.addRule(lhs, rhs)
		}
	}
	for _, A := range g.nonterminals {
		if len(g.rulesByLHS[A]) == 0 {
			return nil, grammarError(g.Name, "non-terminal %q has no productions", A.Name)
		}
	}
	tracer().Debugf("grammar %q: %d terminals, %d non-terminals, %d rules", g.Name,
		len(g.terminals), len(g.nonterminals), len(g.rules))
	return g, nil
}

func (g *Grammar) declare(name string, kind SymbolKind) (*Symbol, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, grammarError(g.Name, "empty symbol name")
	}
	if name == EOFName || isEpsilonName(name) {
		return nil, grammarError(g.Name, "symbol name %q is reserved", name)
	}
	if A, ok := g.symbols[name]; ok {
		if A.kind != kind {
			return nil, grammarError(g.Name, "symbol %q declared as both terminal and non-terminal", name)
		}
		return A, nil
	}
	A := &Symbol{Name: name, kind: kind}
	switch kind {
	case Terminal:
		A.ID = len(g.terminals)
		g.terminals = append(g.terminals, A)
	case NonTerminal:
		g.nonterminals = append(g.nonterminals, A) // IDs are assigned after augmentation
	default:
		panic(fmt.Sprintf("cannot declare symbol of kind %s", kind))
	}
	g.symbols[name] = A
	return A, nil
}

// normalize turns an alternative into a RHS, mapping ε-alternatives to the empty RHS.
func (g *Grammar) normalize(lhs *Symbol, alt []string) ([]*Symbol, error) {
	if len(alt) == 0 || len(alt) == 1 && isEpsilonName(alt[0]) {
		return []*Symbol{}, nil
	}
	rhs := make([]*Symbol, 0, len(alt))
	for _, name := range alt {
		if isEpsilonName(name) {
			return nil, grammarError(g.Name, "ε must stand alone in production for %q", lhs.Name)
		}
		A, ok := g.symbols[strings.TrimSpace(name)]
		if !ok {
			return nil, grammarError(g.Name, "symbol %q in production for %q is neither terminal nor non-terminal",
				name, lhs.Name)
		}
		rhs = append(rhs, A)
	}
	return rhs, nil
}

func (g *Grammar) addRule(lhs *Symbol, rhs []*Symbol) *Rule {
	r := &Rule{Serial: len(g.rules), LHS: lhs, rhs: rhs}
	g.rules = append(g.rules, r)
	g.rulesByLHS[lhs] = append(g.rulesByLHS[lhs], r)
	return r
}

// Rule gets a grammar rule by serial number.
func (g *Grammar) Rule(no int) *Rule {
	if no < 0 || no >= len(g.rules) {
		return nil
	}
	return g.rules[no]
}

// Rules returns all rules, in order of serial numbers.
func (g *Grammar) Rules() []*Rule {
	return g.rules
}

// RulesFor returns the rules with LHS A, in order of serial numbers.
func (g *Grammar) RulesFor(A *Symbol) []*Rule {
	return g.rulesByLHS[A]
}

// SymbolByName returns a symbol by name, or nil. '$' and ε are found as well.
func (g *Grammar) SymbolByName(name string) *Symbol {
	switch name {
	case EOFName:
		return g.EOF()
	case EpsilonName:
		return g.epsilon
	}
	return g.symbols[name]
}

// Start returns the start symbol as specified by the client.
func (g *Grammar) Start() *Symbol {
	return g.start
}

// AugmentedStart returns S', the LHS of rule 0.
func (g *Grammar) AugmentedStart() *Symbol {
	return g.nonterminals[0]
}

// EOF returns the end-of-input terminal '$'.
func (g *Grammar) EOF() *Symbol {
	return g.terminals[0]
}

// Epsilon returns the ε symbol of this grammar.
func (g *Grammar) Epsilon() *Symbol {
	return g.epsilon
}

// Terminals returns all terminals, including '$', in order of IDs.
func (g *Grammar) Terminals() []*Symbol {
	return g.terminals
}

// NonTerminals returns all non-terminals, including S', in order of IDs.
func (g *Grammar) NonTerminals() []*Symbol {
	return g.nonterminals
}

// SymbolCount returns the number of terminals plus non-terminals.
func (g *Grammar) SymbolCount() int {
	return len(g.terminals) + len(g.nonterminals)
}

// EachSymbol iterates over all terminals and non-terminals, in order of IDs.
func (g *Grammar) EachSymbol(mapper func(A *Symbol) interface{}) []interface{} {
	return append(g.EachTerminal(mapper), g.EachNonTerminal(mapper)...)
}

// EachTerminal iterates over all terminals, in order of IDs.
func (g *Grammar) EachTerminal(mapper func(A *Symbol) interface{}) []interface{} {
	var r []interface{}
	for _, A := range g.terminals {
		r = append(r, mapper(A))
	}
	return r
}

// EachNonTerminal iterates over all non-terminals, in order of IDs.
func (g *Grammar) EachNonTerminal(mapper func(A *Symbol) interface{}) []interface{} {
	var r []interface{}
	for _, A := range g.nonterminals {
		r = append(r, mapper(A))
	}
	return r
}

// Precedence returns the declared precedence of a terminal.
func (g *Grammar) Precedence(A *Symbol) Precedence {
	return g.precedence[A]
}

// RulePrecedence is the precedence of the rightmost terminal of a rule's RHS.
// It is undefined if the rule has no terminals.
func (g *Grammar) RulePrecedence(r *Rule) Precedence {
	for i := len(r.rhs) - 1; i >= 0; i-- {
		if r.rhs[i].IsTerminal() {
			return g.precedence[r.rhs[i]]
		}
	}
	return Precedence{}
}

// Dump is a debugging helper, listing all rules to the tracer.
func (g *Grammar) Dump() {
	tracer().Debugf("--- %s --------------------------------------------", g.Name)
	for _, r := range g.rules {
		tracer().Debugf("%3d: [%s] ::= %v", r.Serial, r.LHS, r.RHSNames())
	}
	tracer().Debugf("-------------------------------------------------------")
}
