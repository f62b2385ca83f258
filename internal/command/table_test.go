package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupIsCaseInsensitive(t *testing.T) {
	c, ok := Lookup("sadd")
	require.True(t, ok)
	assert.Equal(t, "SADD", c.Name)

	_, ok = Lookup("NOPE")
	assert.False(t, ok)
}

func TestDispatchUnknownCommand(t *testing.T) {
	env, _, _ := newTestEnv()
	_, err := Dispatch(env, []string{"FROB", "x"})
	assert.ErrorIs(t, err, ErrSyntax)
}

func TestDispatchEmptyArgv(t *testing.T) {
	env, _, _ := newTestEnv()
	_, err := Dispatch(env, nil)
	assert.ErrorIs(t, err, ErrSyntax)
}

func TestDispatchRejectsTooFewArgs(t *testing.T) {
	env, _, _ := newTestEnv()
	_, err := Dispatch(env, []string{"SADD", "key"})
	assert.ErrorIs(t, err, ErrSyntax)
}

func TestDispatchSAddThenSCard(t *testing.T) {
	env, _, _ := newTestEnv()
	_, err := Dispatch(env, []string{"SADD", "s", "1", "2", "3"})
	require.NoError(t, err)

	rep, err := Dispatch(env, []string{"SCARD", "s"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), rep.Int)
}

func TestDispatchSPopWithAndWithoutCount(t *testing.T) {
	env, _, _ := newTestEnv()
	_, err := Dispatch(env, []string{"SADD", "s", "1", "2", "3"})
	require.NoError(t, err)

	rep, err := Dispatch(env, []string{"SPOP", "s"})
	require.NoError(t, err)
	assert.NotEmpty(t, rep.Bulk)

	rep, err = Dispatch(env, []string{"SPOP", "s", "5"})
	require.NoError(t, err)
	assert.Len(t, rep.Array, 2)
}

func TestDispatchSPopBadCountIsSyntaxError(t *testing.T) {
	env, _, _ := newTestEnv()
	_, err := Dispatch(env, []string{"SADD", "s", "1"})
	require.NoError(t, err)

	_, err = Dispatch(env, []string{"SPOP", "s", "notanumber"})
	assert.ErrorIs(t, err, ErrSyntax)
}

func TestDispatchSInterStoreRoundTrip(t *testing.T) {
	env, _, _ := newTestEnv()
	_, err := Dispatch(env, []string{"SADD", "a", "1", "2"})
	require.NoError(t, err)
	_, err = Dispatch(env, []string{"SADD", "b", "2", "3"})
	require.NoError(t, err)

	rep, err := Dispatch(env, []string{"SINTERSTORE", "dst", "a", "b"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), rep.Int)
}
