package iteratable

import (
	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/emirpasic/gods/sets/hashset"
)

// Set is an insertion-ordered set of comparable values.
// The zero value is not usable, create sets with NewSet.
type Set struct {
	order  *arraylist.List
	member *hashset.Set
	cursor int
}

// NewSet creates a set containing the given values (in order).
func NewSet(values ...interface{}) *Set {
	S := &Set{
		order:  arraylist.New(),
		member: hashset.New(),
		cursor: -1,
	}
	for _, v := range values {
		S.Add(v)
	}
	return S
}

// Add inserts x, if not already present. It returns true if the set has grown.
func (S *Set) Add(x interface{}) bool {
	if S.member.Contains(x) {
		return false
	}
	S.member.Add(x)
	S.order.Add(x)
	return true
}

// Contains checks for membership of x.
func (S *Set) Contains(x interface{}) bool {
	return S.member.Contains(x)
}

// Size returns the number of elements.
func (S *Set) Size() int {
	return S.order.Size()
}

// Empty is true for a set without elements.
func (S *Set) Empty() bool {
	return S.order.Empty()
}

// Values returns the elements of S in order of insertion.
func (S *Set) Values() []interface{} {
	return S.order.Values()
}

// Union adds all elements of other to S, which is returned.
func (S *Set) Union(other *Set) *Set {
	if other == nil {
		return S
	}
	for _, x := range other.Values() {
		S.Add(x)
	}
	return S
}

// Copy returns a shallow copy of S.
func (S *Set) Copy() *Set {
	return NewSet(S.Values()...)
}

// Each calls f for every element, in order of insertion.
func (S *Set) Each(f func(x interface{})) {
	for _, x := range S.Values() {
		f(x)
	}
}

// --- Iteration -------------------------------------------------------------

// IterateOnce prepares S for a single pass over all of its elements.
// Elements added during the pass will be visited as well.
func (S *Set) IterateOnce() {
	S.cursor = -1
}

// Next moves to the next element of an iteration. It returns false if
// no more elements are left.
func (S *Set) Next() bool {
	if S.cursor+1 >= S.order.Size() {
		return false
	}
	S.cursor++
	return true
}

// Item returns the current element of an iteration.
func (S *Set) Item() interface{} {
	if S.cursor < 0 {
		return nil
	}
	x, _ := S.order.Get(S.cursor)
	return x
}
