// Package store adapts the setobj.Object model onto a transactional
// key-value backend, grounded on Lgsdream-titan's db/set.go: the same
// MetaKey/DataKey namespacing, the SetNilValue sentinel for tikv's lack
// of a true empty value, and kv.Key(...).PrefixNext() prefix iteration
// over a key's members. Where the teacher's set.go reached into a
// larger titan package (Transaction, Object, UUID, MetaKey/DataKey
// helpers) that is out of scope here, this adapter reconstructs a
// minimal, self-contained version of that namespacing scheme directly
// against github.com/pingcap/tidb/kv, and uses google/uuid for object
// ID generation instead of titan's internal UUID() helper.
package store

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/pingcap/tidb/kv"

	"github.com/vpol/redis/internal/keyspace"
	"github.com/vpol/redis/internal/setobj"
)

// setNilValue mirrors Lgsdream-titan's SetNilValue: tikv-backed
// transactions can't store a truly empty value, so membership is
// marked with a one-byte sentinel instead.
var setNilValue = []byte{0}

// metaKey and dataKey reproduce the teacher's two-keyspace layout: a
// meta record per logical key (holding the object ID and encoding
// hint) and a member record per element, namespaced under that ID so
// a rename or SMOVE never has to touch every member key.
func metaKey(db uint8, key string) []byte {
	return []byte(fmt.Sprintf("m:%d:%s", db, key))
}

func dataKeyPrefix(db uint8, id string) []byte {
	return []byte(fmt.Sprintf("d:%d:%s:", db, id))
}

func memberKey(prefix []byte, member string) []byte {
	out := make([]byte, 0, len(prefix)+len(member))
	out = append(out, prefix...)
	out = append(out, member...)
	return out
}

// meta is the per-key record stored at metaKey: just enough to locate
// and rebuild the Object (its generated ID and the encoding it had
// last time it was saved; encoding is advisory only, since Adapter
// always reconstructs via setobj.NewEmpty/Add which re-derives it).
type meta struct {
	id       string
	encoding setobj.Encoding
}

func encodeMeta(m meta) []byte {
	return []byte(fmt.Sprintf("%s:%d", m.id, m.encoding))
}

func decodeMeta(b []byte) (meta, error) {
	idx := bytes.LastIndexByte(b, ':')
	if idx < 0 {
		return meta{}, errors.New("store: malformed meta record")
	}
	id := string(b[:idx])
	var enc int
	if _, err := fmt.Sscanf(string(b[idx+1:]), "%d", &enc); err != nil {
		return meta{}, err
	}
	return meta{id: id, encoding: setobj.Encoding(enc)}, nil
}

func isNotFound(err error) bool {
	return err != nil && errors.Is(err, kv.ErrNotExist)
}

// Txn is the slice of kv.Transaction this adapter actually calls,
// grounded on the teacher's own txn.t field (db/set.go narrows its own
// wrapper to exactly the Get/Set/Delete/Iter calls it needs). Its
// methods take plain []byte keys and Get takes no context, so a
// kv.Transaction does not satisfy Txn directly and needs a thin
// wrapper; tests drive Adapter against a small in-memory fake instead
// of a live TiKV cluster.
type Txn interface {
	Get(k []byte) ([]byte, error)
	Set(k, v []byte) error
	Delete(k []byte) error
	Iter(lower, upper []byte) (kv.Iterator, error)
}

// Adapter implements keyspace.Keyspace against a single tidb/kv
// transaction, as a persistence-layer demonstration of how SetObject
// could be made durable (spec.md treats the real keyspace as an
// external collaborator; this is a reference adapter, not the
// production store). Every operation runs in the one transaction the
// Adapter was built from; callers that need cross-command atomicity
// must wrap a whole command in one Adapter built from one transaction.
type Adapter struct {
	txn Txn
	db  uint8
}

// NewAdapter wraps an open transaction for database index db. Any
// Txn implementation (a wrapper over a kv.Transaction, or the tests'
// in-memory fake) may be passed.
func NewAdapter(txn Txn, db uint8) *Adapter {
	return &Adapter{txn: txn, db: db}
}

func (a *Adapter) Exists(key string) bool {
	_, err := a.txn.Get(metaKey(a.db, key))
	return err == nil
}

// GetSet reconstructs an Object by reading its meta record then
// iterating its member-key prefix, the same two-step shape as the
// teacher's GetSet + SMembers.
func (a *Adapter) GetSet(key string) (*setobj.Object, bool, error) {
	mk := metaKey(a.db, key)
	raw, err := a.txn.Get(mk)
	if isNotFound(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	m, err := decodeMeta(raw)
	if err != nil {
		return nil, false, err
	}

	prefix := dataKeyPrefix(a.db, m.id)
	endPrefix := kv.Key(prefix).PrefixNext()
	it, err := a.txn.Iter(prefix, endPrefix)
	if err != nil {
		return nil, false, err
	}
	defer it.Close()

	obj := setobj.NewEmpty(setobj.DefaultMaxIntsetEntries)
	for it.Valid() && bytes.HasPrefix([]byte(it.Key()), prefix) {
		member := string(it.Key())[len(prefix):]
		obj.Add(member)
		if err := it.Next(); err != nil {
			return nil, false, err
		}
	}
	return obj, true, nil
}

// PutSet replaces whatever key holds with obj: delete the old member
// range (if any), mint a fresh object ID the way the teacher's newSet
// does with UUID(), and write one member record per element plus the
// meta record, matching the teacher's SAdd's per-member SetNilValue
// writes.
func (a *Adapter) PutSet(key string, obj *setobj.Object) {
	a.mustDeleteMembers(key)

	id := uuid.NewString()
	prefix := dataKeyPrefix(a.db, id)
	for _, e := range obj.All() {
		_ = a.txn.Set(memberKey(prefix, e.String()), setNilValue)
	}
	_ = a.txn.Set(metaKey(a.db, key), encodeMeta(meta{id: id, encoding: obj.Encoding()}))
}

func (a *Adapter) mustDeleteMembers(key string) {
	mk := metaKey(a.db, key)
	raw, err := a.txn.Get(mk)
	if isNotFound(err) || err != nil {
		return
	}
	m, err := decodeMeta(raw)
	if err != nil {
		return
	}
	prefix := dataKeyPrefix(a.db, m.id)
	endPrefix := kv.Key(prefix).PrefixNext()
	it, err := a.txn.Iter(prefix, endPrefix)
	if err != nil {
		return
	}
	defer it.Close()
	for it.Valid() && bytes.HasPrefix([]byte(it.Key()), prefix) {
		_ = a.txn.Delete(it.Key())
		if err := it.Next(); err != nil {
			return
		}
	}
}

// Delete removes key's meta record and every member record under its
// data prefix, returning whether it had existed.
func (a *Adapter) Delete(key string) bool {
	mk := metaKey(a.db, key)
	raw, err := a.txn.Get(mk)
	if isNotFound(err) {
		return false
	}
	if err != nil {
		return false
	}
	m, decErr := decodeMeta(raw)
	if decErr == nil {
		prefix := dataKeyPrefix(a.db, m.id)
		endPrefix := kv.Key(prefix).PrefixNext()
		if it, iterErr := a.txn.Iter(prefix, endPrefix); iterErr == nil {
			for it.Valid() && bytes.HasPrefix([]byte(it.Key()), prefix) {
				_ = a.txn.Delete(it.Key())
				if it.Next() != nil {
					break
				}
			}
			it.Close()
		}
	}
	_ = a.txn.Delete(mk)
	return true
}

var _ keyspace.Keyspace = (*Adapter)(nil)
