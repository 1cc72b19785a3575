/*
Package ll1 implements LL(1) predictive parse tables and a table-driven
predictive parser.

The table is computed from the FIRST and FOLLOW sets of a grammar analysis:

    ga := lr.Analysis(g)
    table := ll1.NewTable(ga)
    if table.HasConflicts() {
        for _, c := range table.Conflicts() { … }
    }
    p := ll1.NewParser(table)
    res := p.Parse([]string{"id", "+", "id"})

Tables are built for every grammar. If the grammar is not LL(1), every
conflicting pair of rules is logged and the table keeps the rule which has been
entered first. Parse results carry a leftmost derivation.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package ll1

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'parsekit.lr'.
func tracer() tracing.Trace {
	return tracing.Select("parsekit.lr")
}
