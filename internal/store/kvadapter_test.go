package store

import (
	"bytes"
	"sort"
	"testing"

	"github.com/pingcap/tidb/kv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vpol/redis/internal/setobj"
)

// fakeTxn is a minimal in-memory stand-in for a kv.Transaction: just
// enough of Get/Set/Delete/Iter to drive Adapter end-to-end in tests
// without a live TiKV cluster, the same role the teacher's own
// Transaction wrapper plays over a real tikv client.
type fakeTxn struct {
	data map[string][]byte
}

func newFakeTxn() *fakeTxn {
	return &fakeTxn{data: make(map[string][]byte)}
}

func (f *fakeTxn) Get(k []byte) ([]byte, error) {
	v, ok := f.data[string(k)]
	if !ok {
		return nil, kv.ErrNotExist
	}
	return v, nil
}

func (f *fakeTxn) Set(k, v []byte) error {
	f.data[string(k)] = append([]byte(nil), v...)
	return nil
}

func (f *fakeTxn) Delete(k []byte) error {
	delete(f.data, string(k))
	return nil
}

func (f *fakeTxn) Iter(lower, upper []byte) (kv.Iterator, error) {
	var keys []string
	for k := range f.data {
		kb := []byte(k)
		if bytes.Compare(kb, lower) < 0 {
			continue
		}
		if upper != nil && bytes.Compare(kb, upper) >= 0 {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return &fakeIterator{txn: f, keys: keys}, nil
}

type fakeIterator struct {
	txn  *fakeTxn
	keys []string
	pos  int
}

func (it *fakeIterator) Valid() bool   { return it.pos < len(it.keys) }
func (it *fakeIterator) Key() kv.Key   { return kv.Key(it.keys[it.pos]) }
func (it *fakeIterator) Value() []byte { return it.txn.data[it.keys[it.pos]] }
func (it *fakeIterator) Next() error   { it.pos++; return nil }
func (it *fakeIterator) Close()        {}

func TestMetaRoundTrip(t *testing.T) {
	m := meta{id: "abc-123", encoding: 1}
	enc := encodeMeta(m)
	got, err := decodeMeta(enc)
	require.NoError(t, err)
	assert.Equal(t, m, got)
}

func TestDecodeMetaRejectsMalformed(t *testing.T) {
	_, err := decodeMeta([]byte("no-colon-here"))
	assert.Error(t, err)
}

func TestMemberKeyConcatenatesPrefixAndMember(t *testing.T) {
	prefix := dataKeyPrefix(0, "obj1")
	got := memberKey(prefix, "hello")
	assert.Equal(t, append(append([]byte{}, prefix...), "hello"...), got)
}

func TestAdapterPutGetDeleteRoundTrip(t *testing.T) {
	txn := newFakeTxn()
	a := NewAdapter(txn, 0)

	assert.False(t, a.Exists("s"))
	_, ok, err := a.GetSet("s")
	require.NoError(t, err)
	assert.False(t, ok)

	obj := setobj.NewEmpty(4)
	obj.Add("1")
	obj.Add("2")
	obj.Add("3")
	a.PutSet("s", obj)

	assert.True(t, a.Exists("s"))
	got, ok, err := a.GetSet("s")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 3, got.Size())
	assert.True(t, got.Contains("1"))
	assert.True(t, got.Contains("2"))
	assert.True(t, got.Contains("3"))

	assert.True(t, a.Delete("s"))
	assert.False(t, a.Exists("s"))
	_, ok, err = a.GetSet("s")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, a.Delete("s"))
}

func TestAdapterPutSetReplacesPriorMembers(t *testing.T) {
	txn := newFakeTxn()
	a := NewAdapter(txn, 0)

	first := setobj.NewEmpty(4)
	first.Add("a")
	first.Add("b")
	a.PutSet("first-key", first)

	second := setobj.NewEmpty(4)
	second.Add("c")
	a.PutSet("first-key", second)

	got, ok, err := a.GetSet("first-key")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 1, got.Size())
	assert.True(t, got.Contains("c"))
	assert.False(t, got.Contains("a"))
	assert.False(t, got.Contains("b"))
}

func TestAdapterKeepsTwoKeysIndependent(t *testing.T) {
	txn := newFakeTxn()
	a := NewAdapter(txn, 0)

	sObj := setobj.NewEmpty(4)
	sObj.Add("1")
	a.PutSet("s", sObj)

	tObj := setobj.NewEmpty(4)
	tObj.Add("2")
	a.PutSet("t", tObj)

	assert.True(t, a.Delete("s"))
	assert.False(t, a.Exists("s"))

	got, ok, err := a.GetSet("t")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 1, got.Size())
	assert.True(t, got.Contains("2"))
}
