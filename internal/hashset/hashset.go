// Package hashset implements a general hash set over byte-string
// values, with expected O(1) membership and random-element selection.
package hashset

import "math/rand/v2"

// Set is a hash set of byte-string members, keyed on the string form
// to get value semantics for free.
type Set struct {
	m map[string]struct{}
	// keys caches a snapshot of m's keys for Random and Iter;
	// invalidated on any mutation and rebuilt lazily on the next read
	// rather than kept continuously in sync.
	keys  []string
	dirty bool
}

// New returns an empty HashSet, optionally sized to hold n elements
// without rehashing (used by SetObject promotion).
func New(sizeHint int) *Set {
	return &Set{m: make(map[string]struct{}, sizeHint), dirty: true}
}

// Add inserts member. Returns true if it was not already present.
func (s *Set) Add(member string) bool {
	if _, ok := s.m[member]; ok {
		return false
	}
	s.m[member] = struct{}{}
	s.dirty = true
	return true
}

// Remove deletes member if present. Returns true if it was removed.
func (s *Set) Remove(member string) bool {
	if _, ok := s.m[member]; !ok {
		return false
	}
	delete(s.m, member)
	s.dirty = true
	return true
}

// Contains reports whether member is present.
func (s *Set) Contains(member string) bool {
	_, ok := s.m[member]
	return ok
}

// Len returns the number of elements.
func (s *Set) Len() int {
	return len(s.m)
}

func (s *Set) refresh() {
	if !s.dirty {
		return
	}
	s.keys = make([]string, 0, len(s.m))
	for k := range s.m {
		s.keys = append(s.keys, k)
	}
	s.dirty = false
}

// Random returns a uniformly random member. The set must be
// non-empty.
func (s *Set) Random(rng *rand.Rand) string {
	s.refresh()
	return s.keys[rng.IntN(len(s.keys))]
}

// Iterator is a restartable, one-shot cursor over a HashSet's current
// members. Its order is unspecified but stable for its lifetime as
// long as the underlying set is not mutated.
type Iterator struct {
	keys []string
	pos  int
}

// Iter returns a fresh Iterator snapshotting the current membership.
func (s *Set) Iter() *Iterator {
	s.refresh()
	// Copy so a concurrently-refreshed s.keys slice (from a later
	// Add/Remove) can't be observed mid-iteration.
	keys := make([]string, len(s.keys))
	copy(keys, s.keys)
	return &Iterator{keys: keys}
}

// Next returns the next member and true, or ("", false) when
// exhausted.
func (it *Iterator) Next() (string, bool) {
	if it.pos >= len(it.keys) {
		return "", false
	}
	v := it.keys[it.pos]
	it.pos++
	return v, true
}

// Clone returns a standalone copy, used by destructive paths that must
// not alias a shared set.
func (s *Set) Clone() *Set {
	cp := &Set{m: make(map[string]struct{}, len(s.m)), dirty: true}
	for k := range s.m {
		cp.m[k] = struct{}{}
	}
	return cp
}
