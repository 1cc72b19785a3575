package lr

import (
	"strings"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
)

// SymbolSet is a set of grammar symbols, ordered by symbol ID. ε sorts first.
// Sets handed out to clients must be treated as read-only.
type SymbolSet struct {
	set *treeset.Set
}

// We need this for the sets of symbols. It sorts symbols by ID.
func symbolComparator(s1, s2 interface{}) int {
	A := s1.(*Symbol)
	B := s2.(*Symbol)
	return utils.IntComparator(A.ID, B.ID)
}

// NewSymbolSet creates a set of symbols.
func NewSymbolSet(syms ...*Symbol) *SymbolSet {
	S := &SymbolSet{set: treeset.NewWith(symbolComparator)}
	S.add(syms...)
	return S
}

// add inserts symbols and reports whether the set has grown.
func (S *SymbolSet) add(syms ...*Symbol) bool {
	n := S.set.Size()
	for _, A := range syms {
		S.set.Add(A)
	}
	return S.set.Size() > n
}

// union adds all symbols of other, except for symbols in exclude.
func (S *SymbolSet) union(other *SymbolSet, exclude ...*Symbol) bool {
	grown := false
	for _, A := range other.Symbols() {
		if containsSymbol(exclude, A) {
			continue
		}
		if S.add(A) {
			grown = true
		}
	}
	return grown
}

func containsSymbol(syms []*Symbol, A *Symbol) bool {
	for _, B := range syms {
		if A == B {
			return true
		}
	}
	return false
}

// Contains checks if A is a member of S.
func (S *SymbolSet) Contains(A *Symbol) bool {
	return S.set.Contains(A)
}

// ContainsEpsilon is a shortcut for checking membership of ε.
func (S *SymbolSet) ContainsEpsilon() bool {
	if S.set.Empty() {
		return false
	}
	return S.set.Values()[0].(*Symbol).IsEpsilon()
}

// Size returns the number of symbols in S.
func (S *SymbolSet) Size() int {
	return S.set.Size()
}

// Symbols returns the members of S in order of IDs.
func (S *SymbolSet) Symbols() []*Symbol {
	vals := S.set.Values()
	syms := make([]*Symbol, len(vals))
	for i, v := range vals {
		syms[i] = v.(*Symbol)
	}
	return syms
}

// Names returns the names of the members of S in order of IDs.
func (S *SymbolSet) Names() []string {
	syms := S.Symbols()
	names := make([]string, len(syms))
	for i, A := range syms {
		names[i] = A.Name
	}
	return names
}

// Copy returns an independent copy of S.
func (S *SymbolSet) Copy() *SymbolSet {
	return NewSymbolSet(S.Symbols()...)
}

func (S *SymbolSet) String() string {
	if S.Size() == 0 {
		return "{ }"
	}
	return "{ " + strings.Join(S.Names(), " ") + " }"
}
