// Package intset implements a sorted, deduplicated set of signed
// 64-bit integers with binary-search membership and ordered insertion.
package intset

import (
	"math/rand/v2"
	"sort"
)

// Set is a sorted, deduplicated slice of int64. The zero value is an
// empty set ready to use.
type Set struct {
	vals []int64
}

// New returns an empty IntSet.
func New() *Set {
	return &Set{}
}

// NewFromSlice builds a Set from members, deduplicating and sorting
// them. Useful for promotion-time bulk construction.
func NewFromSlice(members []int64) *Set {
	s := &Set{vals: make([]int64, 0, len(members))}
	for _, m := range members {
		s.Add(m)
	}
	return s
}

// search returns the index at which v is, or would be inserted to keep
// vals sorted, and whether v is already present.
func (s *Set) search(v int64) (int, bool) {
	i := sort.Search(len(s.vals), func(i int) bool { return s.vals[i] >= v })
	return i, i < len(s.vals) && s.vals[i] == v
}

// Add inserts v, preserving order. Returns true if v was not already
// present.
func (s *Set) Add(v int64) bool {
	i, found := s.search(v)
	if found {
		return false
	}
	s.vals = append(s.vals, 0)
	copy(s.vals[i+1:], s.vals[i:])
	s.vals[i] = v
	return true
}

// Remove deletes v if present. Returns true if it was removed.
func (s *Set) Remove(v int64) bool {
	i, found := s.search(v)
	if !found {
		return false
	}
	s.vals = append(s.vals[:i], s.vals[i+1:]...)
	return true
}

// Contains reports whether v is a member.
func (s *Set) Contains(v int64) bool {
	_, found := s.search(v)
	return found
}

// Len returns the number of elements.
func (s *Set) Len() int {
	return len(s.vals)
}

// Get returns the i-th element in ascending order. Panics if i is out
// of range; callers must check against Len first.
func (s *Set) Get(i int) int64 {
	return s.vals[i]
}

// Random returns a uniformly random element. The set must be
// non-empty.
func (s *Set) Random(rng *rand.Rand) int64 {
	return s.vals[rng.IntN(len(s.vals))]
}

// Values returns the underlying ascending slice. Callers must treat it
// as read-only; mutating it breaks the set's invariants.
func (s *Set) Values() []int64 {
	return s.vals
}

// Clone returns a standalone copy, used by destructive paths that must
// not alias a shared set.
func (s *Set) Clone() *Set {
	cp := make([]int64, len(s.vals))
	copy(cp, s.vals)
	return &Set{vals: cp}
}
