// Package command implements the SingleKeyOps and MultiKeyOps command
// surface of spec.md §4.4-§4.5: SADD, SREM, SISMEMBER, SCARD, SMOVE,
// SPOP, SRANDMEMBER, SINTER(STORE), SUNION(STORE), SDIFF(STORE), and
// SSCAN, plus the algorithm-selection rules and replication rewrites
// those commands require.
//
// Handlers are grounded on the EchoVault-SugarDB set command
// handlers' shape (lookup key, validate type, mutate, emit event,
// reply) adapted from a wire-byte reply to the typed Reply in
// reply.go, since the wire codec itself is out of scope.
package command

import (
	"math/rand/v2"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vpol/redis/internal/keyspace"
	"github.com/vpol/redis/internal/repl"
	"github.com/vpol/redis/internal/setobj"
)

// EventSink is the keyspace-event publisher collaborator contract
// (spec.md §1: out of scope to implement for real). NopEvents and
// RecordingEvents below are reference/test implementations.
type EventSink interface {
	Publish(event, key string)
}

// NopEvents discards every event.
type NopEvents struct{}

func (NopEvents) Publish(string, string) {}

// RecordingEvents remembers every published event in order, for
// assertions in tests.
type RecordingEvents struct {
	Events []PublishedEvent
}

type PublishedEvent struct {
	Event string
	Key   string
}

func (r *RecordingEvents) Publish(event, key string) {
	r.Events = append(r.Events, PublishedEvent{Event: event, Key: key})
}

// DirtyCounter is the process-wide monotonic mutation counter the
// persistence collaborator watches (spec.md GLOSSARY).
type DirtyCounter struct {
	n int64
}

func (d *DirtyCounter) Add(n int64) { d.n += n }
func (d *DirtyCounter) Value() int64 { return d.n }

// Env bundles everything a handler needs beyond its argv: the
// keyspace, the replication shim for the currently executing command,
// the event sink, the dirty counter, configuration, and a source of
// randomness for sampling.
type Env struct {
	Keys             keyspace.Keyspace
	Repl             repl.Shim
	Events           EventSink
	Dirty            *DirtyCounter
	MaxIntsetEntries int
	Log              *logrus.Logger

	rng *rand.Rand
}

// NewEnv returns an Env ready for one command invocation. Repl may be
// nil for read-only commands that never propagate.
func NewEnv(ks keyspace.Keyspace, sh repl.Shim, events EventSink, dirty *DirtyCounter, maxIntsetEntries int) *Env {
	if events == nil {
		events = NopEvents{}
	}
	if dirty == nil {
		dirty = &DirtyCounter{}
	}
	if maxIntsetEntries <= 0 {
		maxIntsetEntries = setobj.DefaultMaxIntsetEntries
	}
	return &Env{
		Keys:             ks,
		Repl:             sh,
		Events:           events,
		Dirty:            dirty,
		MaxIntsetEntries: maxIntsetEntries,
	}
}

// WithRand overrides the random source, for deterministic tests.
func (e *Env) WithRand(r *rand.Rand) *Env {
	e.rng = r
	return e
}

func (e *Env) rand() *rand.Rand {
	if e.rng == nil {
		e.rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), uint64(time.Now().UnixNano())>>1|1))
	}
	return e.rng
}

func elementsToStrings(es []setobj.Element) []string {
	out := make([]string, 0, len(es))
	for _, e := range es {
		out = append(out, e.String())
	}
	return out
}

// logPromotion records encoding promotions at info level; called by
// handlers after a mutating Add that reports promoted=true.
func logPromotion(log *logrus.Logger, key string, to setobj.Encoding, size int) {
	if log == nil {
		return
	}
	log.WithFields(logrus.Fields{
		"key":  key,
		"to":   to.String(),
		"size": size,
	}).Info("set encoding promoted")
}
