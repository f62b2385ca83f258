// Package keyspace defines the Keyspace collaborator contract the
// command layer operates through: mapping keys to typed values. The
// production dispatcher and its real keyspace live outside this
// module's scope (spec.md §1); Memory here is a reference
// implementation used by the bundled CLI and by tests.
package keyspace

import (
	"errors"
	"sync"

	"github.com/vpol/redis/internal/setobj"
)

// ErrWrongType is returned when a key exists but does not hold a SET.
var ErrWrongType = errors.New("WRONGTYPE Operation against a key holding the wrong kind of value")

// Keyspace is the collaborator contract: lookup, typed fetch/store,
// and delete for SET-shaped values. Implementations need not be
// concurrency-safe beyond what spec.md §5 requires (single-threaded
// cooperative scheduling per logical database).
type Keyspace interface {
	// Exists reports whether key currently holds any value.
	Exists(key string) bool
	// GetSet returns the SET at key. ok is false if the key is
	// missing. err is ErrWrongType if key holds a non-SET value.
	GetSet(key string) (obj *setobj.Object, ok bool, err error)
	// PutSet installs obj at key, overwriting whatever was there
	// (SMOVE and the STORE-family commands rely on this).
	PutSet(key string, obj *setobj.Object)
	// Delete removes key. Returns whether it had been present.
	Delete(key string) bool
}

// Memory is an in-memory Keyspace. The zero value is not usable; use
// NewMemory.
type Memory struct {
	mu   sync.Mutex
	vals map[string]any
}

// NewMemory returns an empty in-memory Keyspace.
func NewMemory() *Memory {
	return &Memory{vals: make(map[string]any)}
}

func (m *Memory) Exists(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.vals[key]
	return ok
}

func (m *Memory) GetSet(key string) (*setobj.Object, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.vals[key]
	if !ok {
		return nil, false, nil
	}
	obj, ok := v.(*setobj.Object)
	if !ok {
		return nil, true, ErrWrongType
	}
	return obj, true, nil
}

func (m *Memory) PutSet(key string, obj *setobj.Object) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vals[key] = obj
}

// PutOther installs a non-SET value at key, for exercising WRONGTYPE
// paths in tests.
func (m *Memory) PutOther(key string, v any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vals[key] = v
}

func (m *Memory) Delete(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.vals[key]
	delete(m.vals, key)
	return ok
}
