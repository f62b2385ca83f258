package repl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuppressCurrentDropsOriginal(t *testing.T) {
	r := NewRecorder([]string{"SPOP", "key"})
	r.SuppressCurrent()
	r.Propagate([]string{"SREM", "key", "a"}, ModeAll)

	got := r.Finalize()
	assert.Len(t, got, 1)
	assert.Equal(t, []string{"SREM", "key", "a"}, got[0].Argv)
}

func TestRewriteCurrentReplacesVector(t *testing.T) {
	r := NewRecorder([]string{"SPOP", "key"})
	r.RewriteCurrent([]string{"SREM", "key", "a"})

	got := r.Finalize()
	assert.Len(t, got, 1)
	assert.Equal(t, []string{"SREM", "key", "a"}, got[0].Argv)
}

func TestNoOpLeavesOriginal(t *testing.T) {
	r := NewRecorder([]string{"SADD", "key", "a"})
	got := r.Finalize()
	assert.Len(t, got, 1)
	assert.Equal(t, []string{"SADD", "key", "a"}, got[0].Argv)
}
