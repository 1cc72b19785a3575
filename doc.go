/*
Package parsekit is a toolbox for table-driven parsing of context-free grammars.

It focusses on the classic textbook constructions and makes every intermediate
artifact available to clients: FIRST/FOLLOW sets, the LR item automaton,
ACTION/GOTO tables including a log of all conflicts, and parse runs yielding a
concrete parse tree plus the derivation sequence. Package structure is
as follows:

■ lr: Package lr implements the grammar model, grammar analysis, the LR(0)/LR(1)/LALR(1)
item automaton and ACTION/GOTO table construction with precedence-based
conflict resolution.

■ lr/ll1: Package ll1 implements LL(1) predictive tables and a predictive parser.

■ lr/shiftreduce: Package shiftreduce implements a shift-reduce parser, driven by
SLR(1), canonical LR(1) or LALR(1) tables.

■ lr/ptree: Package ptree holds parse results (trees, derivations, errors, traces).

The base package contains data types which are used throughout all the other packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package parsekit
