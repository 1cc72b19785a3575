/*
Package lr implements prerequisites for LL and LR parsing: grammars, grammar
analysis, the LR item automaton and ACTION/GOTO tables.

Building a Grammar

Grammars are specified either declaratively, using a GrammarSpec, or by using a
grammar builder object. Clients add rules, consisting of non-terminal symbols
and terminals. Grammars may contain epsilon-productions.

Example:

    b := lr.NewGrammarBuilder("G")
    b.LHS("S").N("A").T("a").End()     // S  ->  A a
    b.LHS("A").N("B").N("D").End()     // A  ->  B D
    b.LHS("B").T("b").End()            // B  ->  b
    b.LHS("B").Epsilon()               // B  ->
    b.LHS("D").T("d").End()            // D  ->  d
    b.LHS("D").Epsilon()               // D  ->
    g, err := b.Grammar()

This results in the following trivial grammar:

   g.Dump()

   0: [S'] ::= [S]
   1: [S] ::= [A a]
   2: [A] ::= [B D]
   3: [B] ::= [b]
   4: [B] ::= []
   5: [D] ::= [d]
   6: [D] ::= []

Rule 0 is always the augmented start rule S' ⟶ S. Precedence groups for terminals
may be declared with b.Left(…), b.Right(…) and b.NonAssoc(…); groups declared
later bind tighter.

Static Grammar Analysis

After the grammar is complete, it has to be analysed. For this end, the
grammar is subjected to an LRAnalysis object, which computes FIRST and
FOLLOW sets for the grammar by fixed-point iteration.

    ga := lr.Analysis(g)
    for _, A := range ga.Grammar().NonTerminals() {
        fmt.Printf("FIRST(%s) = %v\n", A, ga.First(A))
    }

    // Output:
    FIRST(S') = { a b d }
    FIRST(S) = { a b d }
    FIRST(A) = { ε b d }
    FIRST(B) = { ε b }
    FIRST(D) = { ε d }

Parser Construction

Using grammar analysis as input, a bottom-up parser can be constructed.
First a characteristic finite state machine (CFSM) is built from the
grammar: LR(0) items for SLR(1), LR(1) items for canonical LR(1), and LR(1)
items with merged cores for LALR(1). The CFSM will then be transformed into a
GOTO table and an ACTION table. Conflicts are resolved with the precedence
declarations of the grammar, if possible, and every conflict is logged. The
CFSM will not be thrown away, but is made available to the client.

Example:

    lrgen := lr.NewTableGenerator(ga, parsekit.LALR1)
    if err := lrgen.CreateTables(); err != nil { … }
    for _, c := range lrgen.Conflicts() { … }

Configuration

The automaton construction stops with a BuildError if more than a maximum number
of states is created. The limit is taken from option WithMaxStates or from the
global configuration key "lr.max-states".

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lr

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'parsekit.lr'.
func tracer() tracing.Trace {
	return tracing.Select("parsekit.lr")
}
