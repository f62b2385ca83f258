// Package setobj implements SetObject: a tagged union wrapping either
// an IntSet or a HashSet, with one-way promotion from the former to
// the latter.
package setobj

import (
	"math/rand/v2"

	"github.com/vpol/redis/internal/hashset"
	"github.com/vpol/redis/internal/intset"
)

// Encoding identifies which representation backs an Object.
type Encoding int

const (
	EncodingIntSet Encoding = iota
	EncodingHashSet
)

func (e Encoding) String() string {
	if e == EncodingIntSet {
		return "intset"
	}
	return "hashtable"
}

// DefaultMaxIntsetEntries is intset_max_entries' default.
const DefaultMaxIntsetEntries = 512

// Object is a SET value: exactly one of IntSet or HashSet form at any
// time, never empty while reachable (callers must delete the owning
// key once Size reaches zero — Object itself has no keyspace handle
// to do that).
type Object struct {
	encoding Encoding
	ints     *intset.Set
	hash     *hashset.Set
	maxInts  int
}

// NewEmpty returns an Object starting in IntSet form, ready to accept
// its first element. maxIntsetEntries <= 0 uses DefaultMaxIntsetEntries.
func NewEmpty(maxIntsetEntries int) *Object {
	if maxIntsetEntries <= 0 {
		maxIntsetEntries = DefaultMaxIntsetEntries
	}
	return &Object{
		encoding: EncodingIntSet,
		ints:     intset.New(),
		maxInts:  maxIntsetEntries,
	}
}

// CreateFor returns a new Object whose initial encoding is chosen by
// value: IntSet if value is integer-representable, HashSet otherwise.
// The first add is performed before returning.
func CreateFor(value string, maxIntsetEntries int) *Object {
	o := NewEmpty(maxIntsetEntries)
	if _, ok := CanonicalInt64(value); !ok {
		o.promoteToHash()
	}
	o.Add(value)
	return o
}

// Encoding reports the Object's current representation.
func (o *Object) Encoding() Encoding {
	return o.encoding
}

// Size returns the element count.
func (o *Object) Size() int {
	if o.encoding == EncodingIntSet {
		return o.ints.Len()
	}
	return o.hash.Len()
}

// Contains reports whether value is a member.
func (o *Object) Contains(value string) bool {
	if o.encoding == EncodingIntSet {
		n, ok := CanonicalInt64(value)
		if !ok {
			return false
		}
		return o.ints.Contains(n)
	}
	return o.hash.Contains(value)
}

// Add inserts value, promoting to HashSet first if required by the
// policy in spec §4.3. Returns whether value was newly inserted and
// whether this call triggered a promotion (for keyspace-event/logging
// callers; promotion itself is never rolled back).
func (o *Object) Add(value string) (inserted bool, promoted bool) {
	n, isInt := CanonicalInt64(value)

	if o.encoding == EncodingIntSet && !isInt {
		o.promoteToHash()
		promoted = true
	}

	if o.encoding == EncodingIntSet {
		inserted = o.ints.Add(n)
		if inserted && o.ints.Len() > o.maxInts {
			o.promoteToHash()
			promoted = true
		}
		return inserted, promoted
	}

	inserted = o.hash.Add(value)
	return inserted, promoted
}

// Remove deletes value if present. Returns whether it was removed.
func (o *Object) Remove(value string) bool {
	if o.encoding == EncodingIntSet {
		n, ok := CanonicalInt64(value)
		if !ok {
			return false
		}
		return o.ints.Remove(n)
	}
	return o.hash.Remove(value)
}

// promoteToHash allocates a HashSet sized for the current element
// count, enumerates IntSet members as canonical decimal strings,
// inserts each, then swaps the representation. One-way: never called
// when already in HashSet form.
func (o *Object) promoteToHash() {
	if o.encoding == EncodingHashSet {
		return
	}
	h := hashset.New(o.ints.Len())
	for i := 0; i < o.ints.Len(); i++ {
		h.Add(Element{Kind: KindInt, Int: o.ints.Get(i)}.String())
	}
	o.encoding = EncodingHashSet
	o.hash = h
	o.ints = nil
}

// Random returns a uniformly random element without mutation or copy
// of the payload beyond the Element value itself.
func (o *Object) Random(rng *rand.Rand) Element {
	if o.encoding == EncodingIntSet {
		return intElement(o.ints.Random(rng))
	}
	return strElement(o.hash.Random(rng))
}

// Iterator yields elements lazily without promoting the set. Behavior
// under concurrent mutation of the same Object is undefined.
type Iterator struct {
	obj *Object
	// intset path
	idx int
	// hashset path
	hit *hashset.Iterator
}

// Iter returns a fresh Iterator over the current membership.
func (o *Object) Iter() *Iterator {
	if o.encoding == EncodingIntSet {
		return &Iterator{obj: o}
	}
	return &Iterator{obj: o, hit: o.hash.Iter()}
}

// Next returns the next element and true, or a zero Element and false
// once exhausted.
func (it *Iterator) Next() (Element, bool) {
	if it.obj.encoding == EncodingIntSet {
		if it.idx >= it.obj.ints.Len() {
			return Element{}, false
		}
		v := it.obj.ints.Get(it.idx)
		it.idx++
		return intElement(v), true
	}
	s, ok := it.hit.Next()
	if !ok {
		return Element{}, false
	}
	return strElement(s), true
}

// All materializes every element, for callers (e.g. the reply layer,
// or destructive paths that must mutate while enumerating) that need
// a snapshot rather than a lazy cursor.
func (o *Object) All() []Element {
	out := make([]Element, 0, o.Size())
	it := o.Iter()
	for {
		e, ok := it.Next()
		if !ok {
			break
		}
		out = append(out, e)
	}
	return out
}
