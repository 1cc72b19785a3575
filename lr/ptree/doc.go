/*
Package ptree holds the results of parse runs: concrete parse trees, derivation
sequences, parse errors and step-by-step traces.

Parse trees are concrete: every terminal of the input is a leaf, every
reduction (or expansion, for top-down parsers) is an inner node with its children
in RHS order. An ε-production results in a node with exactly one ε leaf as
its child.

    res := parser.Parse([]string{"id", "+", "id"})
    if res.Accepted {
        fmt.Println(res.Tree)   // (E (T (F id) (T' ε)) (E' + (T (F id) (T' ε)) (E' ε)))
    }

Parsers of all kinds implement the Parser interface. Their tables are read-only,
thus many inputs may be parsed concurrently with ParseAll.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package ptree

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'parsekit.lr'.
func tracer() tracing.Trace {
	return tracing.Select("parsekit.lr")
}
