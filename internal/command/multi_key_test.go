package command

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScenarioS3Intersect(t *testing.T) {
	env, ks, _ := newTestEnv()
	SAdd(env, "a", []string{"1", "2", "3", "4"})
	SAdd(env, "b", []string{"3", "4", "5", "6"})

	rep, err := SInter(env, []string{"a", "b"})
	require.NoError(t, err)
	sort.Strings(rep.Array)
	assert.Equal(t, []string{"3", "4"}, rep.Array)

	store, err := SInterStore(env, "dst", []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), store.Int)

	dst, ok, err := ks.GetSet("dst")
	require.NoError(t, err)
	require.True(t, ok)
	members := elementsToStrings(dst.All())
	sort.Strings(members)
	assert.Equal(t, []string{"3", "4"}, members)
}

func TestScenarioS5Difference(t *testing.T) {
	env, _, _ := newTestEnv()
	SAdd(env, "a", []string{"1", "2", "3"})
	SAdd(env, "b", []string{"2"})
	SAdd(env, "c", []string{"3"})

	rep, err := SDiff(env, []string{"a", "b", "c"})
	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, rep.Array)
}

func TestIntersectMissingSourceIsEmpty(t *testing.T) {
	env, ks, _ := newTestEnv()
	SAdd(env, "a", []string{"1", "2"})

	rep, err := SInter(env, []string{"a", "missing"})
	require.NoError(t, err)
	assert.Empty(t, rep.Array)

	store, err := SInterStore(env, "dst", []string{"a", "missing"})
	require.NoError(t, err)
	assert.Equal(t, int64(0), store.Int)
	assert.False(t, ks.Exists("dst"))
}

func TestUnionTreatsMissingAsEmpty(t *testing.T) {
	env, _, _ := newTestEnv()
	SAdd(env, "a", []string{"1", "2"})

	rep, err := SUnion(env, []string{"a", "missing"})
	require.NoError(t, err)
	sort.Strings(rep.Array)
	assert.Equal(t, []string{"1", "2"}, rep.Array)
}

func TestDiffTreatsMissingOthersAsEmpty(t *testing.T) {
	env, _, _ := newTestEnv()
	SAdd(env, "a", []string{"1", "2"})

	rep, err := SDiff(env, []string{"a", "missing"})
	require.NoError(t, err)
	sort.Strings(rep.Array)
	assert.Equal(t, []string{"1", "2"}, rep.Array)
}

func TestStoreDeletesDestinationWhenResultEmpty(t *testing.T) {
	env, ks, ev := newTestEnv()
	SAdd(env, "a", []string{"1"})
	SAdd(env, "b", []string{"2"})
	SAdd(env, "dst", []string{"stale"})

	store, err := SInterStore(env, "dst", []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, int64(0), store.Int)
	assert.False(t, ks.Exists("dst"))

	var sawDel bool
	for _, e := range ev.Events {
		if e.Event == "del" && e.Key == "dst" {
			sawDel = true
		}
	}
	assert.True(t, sawDel)
}
