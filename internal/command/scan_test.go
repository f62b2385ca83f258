package command

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSScanPagesThroughMembers(t *testing.T) {
	env, _, _ := newTestEnv()
	SAdd(env, "s", []string{"1", "2", "3", "4", "5"})

	page, err := SScan(env, "s", 0, "", 2)
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.NotEqual(t, uint64(0), page.NextCursor)

	var all []string
	cursor := uint64(0)
	for {
		page, err := SScan(env, "s", cursor, "", 2)
		require.NoError(t, err)
		all = append(all, page.Items...)
		cursor = page.NextCursor
		if cursor == 0 {
			break
		}
	}
	sort.Strings(all)
	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, all)
}

func TestSScanMissingKeyIsEmptyPage(t *testing.T) {
	env, _, _ := newTestEnv()
	page, err := SScan(env, "nope", 0, "", 10)
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, uint64(0), page.NextCursor)
}

func TestDispatchSScanReturnsScanReply(t *testing.T) {
	env, _, _ := newTestEnv()
	_, err := Dispatch(env, []string{"SADD", "s", "1", "2", "3"})
	require.NoError(t, err)

	rep, err := Dispatch(env, []string{"SSCAN", "s", "0"})
	require.NoError(t, err)
	assert.Equal(t, KindScan, rep.Kind)
	assert.Len(t, rep.Array, 3)
}

func TestDispatchSScanWithMatchAndCount(t *testing.T) {
	env, _, _ := newTestEnv()
	_, err := Dispatch(env, []string{"SADD", "s", "foo", "bar", "baz"})
	require.NoError(t, err)

	rep, err := Dispatch(env, []string{"SSCAN", "s", "0", "MATCH", "ba*", "COUNT", "10"})
	require.NoError(t, err)
	sort.Strings(rep.Array)
	assert.Equal(t, []string{"bar", "baz"}, rep.Array)
}

func TestDispatchSScanBadCursorIsSyntaxError(t *testing.T) {
	env, _, _ := newTestEnv()
	_, err := Dispatch(env, []string{"SSCAN", "s", "notacursor"})
	assert.ErrorIs(t, err, ErrSyntax)
}
