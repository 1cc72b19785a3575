package lr

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/cnf/structhash"
	"github.com/npillmayer/parsekit/lr/iteratable"
)

// Item is an LR item: a rule with a dot marking how much of its RHS has been
// matched. LR(1) items additionally carry a lookahead terminal; for LR(0) items
// the lookahead is nil. Items are values and may be used as map keys.
//
//   E ⟶ E • + T, $
type Item struct {
	rule *Rule
	dot  int
	la   *Symbol
}

// StartItem returns the item S' ⟶ • S for rule 0 of a grammar, with an
// optional lookahead.
func StartItem(r *Rule, la *Symbol) Item {
	return Item{rule: r, dot: 0, la: la}
}

// Rule returns the rule of an item.
func (i Item) Rule() *Rule {
	return i.rule
}

// Dot returns the position of the dot.
func (i Item) Dot() int {
	return i.dot
}

// Lookahead returns the lookahead terminal, or nil for LR(0) items.
func (i Item) Lookahead() *Symbol {
	return i.la
}

// PeekSymbol returns the symbol after the dot, or nil if the item is complete.
func (i Item) PeekSymbol() *Symbol {
	if i.dot >= len(i.rule.rhs) {
		return nil
	}
	return i.rule.rhs[i.dot]
}

// IsComplete is true if the dot is at the end of the RHS.
func (i Item) IsComplete() bool {
	return i.dot >= len(i.rule.rhs)
}

// Advance moves the dot one symbol to the right.
func (i Item) Advance() Item {
	if i.IsComplete() {
		return i
	}
	return Item{rule: i.rule, dot: i.dot + 1, la: i.la}
}

// Core returns the item without lookahead.
func (i Item) Core() Item {
	return Item{rule: i.rule, dot: i.dot}
}

func (i Item) String() string {
	var b bytes.Buffer
	b.WriteString(i.rule.LHS.Name)
	b.WriteString(" ⟶")
	for n, A := range i.rule.rhs {
		if n == i.dot {
			b.WriteString(" •")
		}
		b.WriteString(" ")
		b.WriteString(A.Name)
	}
	if i.IsComplete() {
		b.WriteString(" •")
	}
	if i.la != nil {
		b.WriteString(", ")
		b.WriteString(i.la.Name)
	}
	return b.String()
}

func asItem(x interface{}) Item {
	return x.(Item)
}

func newItemSet(items ...Item) *iteratable.Set {
	S := iteratable.NewSet()
	for _, i := range items {
		S.Add(i)
	}
	return S
}

// --- Canonical keys for item sets ------------------------------------------

// itemTriple is the serializable form of an item. LA is -2 for LR(0) items.
type itemTriple struct {
	Rule int
	Dot  int
	LA   int
}

type itemSetDigest struct {
	Items []itemTriple
}

const noLookahead = -2

// itemSetKey returns a canonical representation of an item set: two item sets
// are structurally equal iff their keys are equal. With cores=true lookaheads
// are ignored (used for LALR merging).
func itemSetKey(S *iteratable.Set, cores bool) string {
	seen := make(map[itemTriple]bool, S.Size())
	triples := make([]itemTriple, 0, S.Size())
	for _, x := range S.Values() {
		i := asItem(x)
		t := itemTriple{Rule: i.rule.Serial, Dot: i.dot, LA: noLookahead}
		if i.la != nil && !cores {
			t.LA = i.la.ID
		}
		if !seen[t] {
			seen[t] = true
			triples = append(triples, t)
		}
	}
	sort.Slice(triples, func(a, b int) bool {
		ta, tb := triples[a], triples[b]
		if ta.Rule != tb.Rule {
			return ta.Rule < tb.Rule
		}
		if ta.Dot != tb.Dot {
			return ta.Dot < tb.Dot
		}
		return ta.LA < tb.LA
	})
	return string(structhash.Dump(itemSetDigest{Items: triples}, 1))
}

func itemSetString(S *iteratable.Set) string {
	var b bytes.Buffer
	b.WriteString("{")
	first := true
	for _, x := range S.Values() {
		if first {
			b.WriteString(" ")
			first = false
		} else {
			b.WriteString(", ")
		}
		b.WriteString(fmt.Sprintf("[%s]", asItem(x)))
	}
	b.WriteString(" }")
	return b.String()
}
