package lr

// LRAnalysis is an object for grammar analysis (computing FIRST- and FOLLOW-sets).
// Create one with Analysis(g). The sets are computed once and are read-only
// afterwards, so an LRAnalysis may be shared between goroutines.
type LRAnalysis struct {
	g      *Grammar
	first  map[*Symbol]*SymbolSet
	follow map[*Symbol]*SymbolSet
	passes int // number of iterations until the fixed points were reached
}

// Analysis creates an analyser for a grammar. The analyser immediately starts
// its analysis and computes FIRST and FOLLOW.
func Analysis(g *Grammar) *LRAnalysis {
	ga := &LRAnalysis{
		g:      g,
		first:  make(map[*Symbol]*SymbolSet),
		follow: make(map[*Symbol]*SymbolSet),
	}
	for _, a := range g.terminals {
		ga.first[a] = NewSymbolSet(a)
	}
	ga.first[g.epsilon] = NewSymbolSet(g.epsilon)
	for _, A := range g.nonterminals {
		ga.first[A] = NewSymbolSet()
		ga.follow[A] = NewSymbolSet()
	}
	for ga.firstPass() {
		ga.passes++
	}
	ga.follow[g.start].add(g.EOF())
	ga.follow[g.AugmentedStart()].add(g.EOF())
	for ga.followPass() {
		ga.passes++
	}
	tracer().Infof("grammar %q analysed after %d passes", g.Name, ga.passes)
	return ga
}

// Grammar returns the grammar this analyser operates on.
func (ga *LRAnalysis) Grammar() *Grammar {
	return ga.g
}

// firstPass performs one iteration over all rules. It returns true if any
// FIRST-set has grown.
func (ga *LRAnalysis) firstPass() bool {
	changed := false
	for _, r := range ga.g.rules {
		if ga.first[r.LHS].union(ga.FirstOfSequence(r.rhs)) {
			changed = true
		}
	}
	return changed
}

// followPass performs one iteration over all rules. For every rule
// A ⟶ α B β, FOLLOW(B) gains FIRST(β)\{ε}, and FOLLOW(A) if β ⇒* ε.
// It returns true if any FOLLOW-set has grown.
func (ga *LRAnalysis) followPass() bool {
	changed := false
	for _, r := range ga.g.rules {
		for i, B := range r.rhs {
			if !B.IsNonTerminal() {
				continue
			}
			fbeta := ga.FirstOfSequence(r.rhs[i+1:])
			if ga.follow[B].union(fbeta, ga.g.epsilon) {
				changed = true
			}
			if fbeta.ContainsEpsilon() && ga.follow[B].union(ga.follow[r.LHS]) {
				changed = true
			}
		}
	}
	return changed
}

// First returns the FIRST-set of a symbol. The set may contain ε.
// Clients must not modify the returned set.
func (ga *LRAnalysis) First(A *Symbol) *SymbolSet {
	if S, ok := ga.first[A]; ok {
		return S
	}
	return NewSymbolSet()
}

// Follow returns the FOLLOW-set of a non-terminal. The set may contain '$'.
// Clients must not modify the returned set.
func (ga *LRAnalysis) Follow(A *Symbol) *SymbolSet {
	if S, ok := ga.follow[A]; ok {
		return S
	}
	return NewSymbolSet()
}

// Nullable is true if A ⇒* ε.
func (ga *LRAnalysis) Nullable(A *Symbol) bool {
	return ga.First(A).ContainsEpsilon()
}

// FirstOfSequence computes FIRST(X1 X2 … Xn). Symbols are scanned from left to right,
// adding FIRST(Xi)\{ε} until a symbol is found which cannot derive ε. ε is part of
// the result only if every symbol is nullable (or the sequence is empty).
func (ga *LRAnalysis) FirstOfSequence(syms []*Symbol) *SymbolSet {
	S := NewSymbolSet()
	for _, A := range syms {
		F := ga.First(A)
		S.union(F, ga.g.epsilon)
		if !F.ContainsEpsilon() {
			return S
		}
	}
	S.add(ga.g.epsilon)
	return S
}

// Dump is a debugging helper, listing FIRST and FOLLOW sets to the tracer.
func (ga *LRAnalysis) Dump() {
	for _, A := range ga.g.nonterminals {
		tracer().Debugf("FIRST(%s) = %v", A, ga.First(A))
		tracer().Debugf("FOLLOW(%s) = %v", A, ga.Follow(A))
	}
}
