package lr

// GrammarBuilder is a builder type for grammars. Use it like this:
//
//     b := NewGrammarBuilder("Expr")
//     b.LHS("E").N("E").T("+").N("E").End()   // E ⟶ E + E
//     b.LHS("E").T("id").End()                // E ⟶ id
//     b.Left("+")
//     g, err := b.Grammar()
//
// Terminals and non-terminals are declared implicitly by their first usage.
// The start symbol is the LHS of the first rule, unless set with Start().
type GrammarBuilder struct {
	name     string
	start    string
	kinds    map[string]SymbolKind
	terms    []string
	nonterms []string
	prods    []ProductionSpec
	prec     []PrecedenceGroup
	err      error
}

// NewGrammarBuilder gets a new grammar builder, given the name of the grammar to build.
func NewGrammarBuilder(gname string) *GrammarBuilder {
	return &GrammarBuilder{
		name:  gname,
		kinds: make(map[string]SymbolKind),
	}
}

// RuleBuilder is a builder type for a single rule, see GrammarBuilder.LHS.
type RuleBuilder struct {
	gb  *GrammarBuilder
	lhs string
	rhs []string
}

// LHS starts a rule given the left hand side symbol (non-terminal).
func (gb *GrammarBuilder) LHS(s string) *RuleBuilder {
	gb.use(s, NonTerminal)
	if gb.start == "" {
		gb.start = s
	}
	return &RuleBuilder{gb: gb, lhs: s, rhs: []string{}}
}

// Start sets the start symbol of the grammar.
func (gb *GrammarBuilder) Start(s string) *GrammarBuilder {
	gb.start = s
	return gb
}

// Left declares a group of left-associative terminals. Each call to Left, Right
// or NonAssoc opens a new precedence level, binding tighter than the previous ones.
func (gb *GrammarBuilder) Left(terminals ...string) *GrammarBuilder {
	return gb.precedence(Left, terminals)
}

// Right declares a group of right-associative terminals.
func (gb *GrammarBuilder) Right(terminals ...string) *GrammarBuilder {
	return gb.precedence(Right, terminals)
}

// NonAssoc declares a group of non-associative terminals.
func (gb *GrammarBuilder) NonAssoc(terminals ...string) *GrammarBuilder {
	return gb.precedence(NonAssoc, terminals)
}

func (gb *GrammarBuilder) precedence(assoc Associativity, terminals []string) *GrammarBuilder {
	for _, t := range terminals {
		gb.use(t, Terminal)
	}
	gb.prec = append(gb.prec, PrecedenceGroup{Assoc: assoc, Terminals: terminals})
	return gb
}

func (gb *GrammarBuilder) use(s string, kind SymbolKind) {
	if k, ok := gb.kinds[s]; ok {
		if k != kind && gb.err == nil {
			gb.err = grammarError(gb.name, "symbol %q used as both terminal and non-terminal", s)
		}
		return
	}
	gb.kinds[s] = kind
	if kind == Terminal {
		gb.terms = append(gb.terms, s)
	} else {
		gb.nonterms = append(gb.nonterms, s)
	}
}

// N appends a non-terminal to the builder.
func (rb *RuleBuilder) N(s string) *RuleBuilder {
	rb.gb.use(s, NonTerminal)
	rb.rhs = append(rb.rhs, s)
	return rb
}

// T appends a terminal to the builder.
func (rb *RuleBuilder) T(s string) *RuleBuilder {
	rb.gb.use(s, Terminal)
	rb.rhs = append(rb.rhs, s)
	return rb
}

// End a rule.
func (rb *RuleBuilder) End() {
	rb.gb.prods = append(rb.gb.prods, ProductionSpec{
		LHS:          rb.lhs,
		Alternatives: [][]string{rb.rhs},
	})
}

// Epsilon sets ε as the RHS of a rule and ends the rule.
func (rb *RuleBuilder) Epsilon() {
	rb.rhs = rb.rhs[:0]
	rb.End()
}

// Spec returns the grammar specification collected so far.
func (gb *GrammarBuilder) Spec() GrammarSpec {
	return GrammarSpec{
		Name:         gb.name,
		Terminals:    gb.terms,
		NonTerminals: gb.nonterms,
		Start:        gb.start,
		Productions:  gb.prods,
		Precedence:   gb.prec,
	}
}

// Grammar returns the (immutable) grammar, or an error if the grammar is malformed.
func (gb *GrammarBuilder) Grammar() (*Grammar, error) {
	if gb.err != nil {
		return nil, gb.err
	}
	return NewGrammar(gb.Spec())
}
