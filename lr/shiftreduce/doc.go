/*
Package shiftreduce provides a table-driven shift-reduce parser. Clients have to
use the tools of package lr to prepare the necessary parse tables. The
parser utilizes these tables to create a right derivation for a given input.
The same parser runs SLR(1), canonical LR(1) and LALR(1) tables.

This parser is intended for small to moderate grammars, e.g. for configuration
input or small domain-specific languages, and for studying the different
table constructions side by side. It is *not* intended for full-fledged
programming languages.

The main focus for this implementation is adaptability and on-the-fly usage.
Clients are able to construct the parse tables from a grammar and use the
parser directly, without a code-generation or compile step.

Usage

Clients construct a grammar, usually by using a grammar builder:

	b := lr.NewGrammarBuilder("Signed Variables Grammar")
	b.LHS("Var").N("Sign").T("a").End()  // Var  --> Sign a
	b.LHS("Sign").T("+").End()           // Sign --> +
	b.LHS("Sign").T("-").End()           // Sign --> -
	b.LHS("Sign").Epsilon()              // Sign -->
	g, err := b.Grammar()

This grammar is subjected to grammar analysis and table generation.

	ga := lr.Analysis(g)
	lrgen := lr.NewTableGenerator(ga, parsekit.LALR1)
	if err := lrgen.CreateTables(); err != nil { ... }
	if lrgen.HasConflicts { ... }  // not an LALR(1) grammar

Finally parse some input:

	p := shiftreduce.NewParser(lrgen)
	res := p.Parse([]string{"+", "a"})
	if res.Accepted { fmt.Println(res.Tree) }

Grammars with unresolved conflicts may still be used: the tables keep the action
which has been entered first.

Configuration

If configuration key "lr.panic-on-missing-goto" is set, the parser panics
if a GOTO entry is missing after a reduction. This cannot happen for tables
built by package lr.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package shiftreduce

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'parsekit.lr'.
func tracer() tracing.Trace {
	return tracing.Select("parsekit.lr")
}
