package setobj

import "strconv"

// Kind tags which form an Element actually carries.
type Kind int

const (
	KindInt Kind = iota
	KindString
)

// Element is a set member as handed back from iteration, random
// selection, or pop/add results. Exactly one of Int/Str is meaningful,
// selected by Kind.
type Element struct {
	Kind Kind
	Int  int64
	Str  string
}

func intElement(v int64) Element  { return Element{Kind: KindInt, Int: v} }
func strElement(v string) Element { return Element{Kind: KindString, Str: v} }

// String returns the element's canonical decimal or byte-string form.
func (e Element) String() string {
	if e.Kind == KindInt {
		return strconv.FormatInt(e.Int, 10)
	}
	return e.Str
}

// CanonicalInt64 reports whether s round-trips through a signed
// 64-bit decimal parse/format: no leading zeros, no '+' prefix, no
// "-0", no surrounding whitespace. Values that don't round-trip stay
// in HashSet form.
func CanonicalInt64(s string) (int64, bool) {
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	if strconv.FormatInt(n, 10) != s {
		return 0, false
	}
	return n, true
}
