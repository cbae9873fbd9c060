package game

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoomCodeFormat(t *testing.T) {
	for i := 0; i < 50; i++ {
		code := newRoomCode()
		require.Len(t, code, roomCodeLength)
		for _, c := range code {
			assert.True(t, strings.ContainsRune(roomCodeAlphabet, c), "unexpected character %q", c)
		}
	}
}

func TestRoomCapacity(t *testing.T) {
	r := newRoom()
	require.NoError(t, r.addPlayer(newPlayer("a", "A", true)))
	require.NoError(t, r.addPlayer(newPlayer("b", "B", false)))
	assert.ErrorIs(t, r.addPlayer(newPlayer("c", "C", false)), ErrRoomFull)
	assert.Len(t, r.players, 2)
}

func TestRoomOtherPlayer(t *testing.T) {
	r := newRoom()
	require.NoError(t, r.addPlayer(newPlayer("a", "A", true)))
	assert.Nil(t, r.otherPlayer("a"))

	require.NoError(t, r.addPlayer(newPlayer("b", "B", false)))
	assert.Equal(t, "b", r.otherPlayer("a").ID)
	assert.Equal(t, "a", r.otherPlayer("b").ID)
}

func TestRoomRemovePlayer(t *testing.T) {
	r := newRoom()
	require.NoError(t, r.addPlayer(newPlayer("a", "A", true)))
	require.NoError(t, r.addPlayer(newPlayer("b", "B", false)))

	remaining, empty := r.removePlayer("a")
	require.NotNil(t, remaining)
	assert.Equal(t, "b", remaining.ID)
	assert.False(t, empty)

	// Removing an absent player is a no-op.
	_, empty = r.removePlayer("a")
	assert.False(t, empty)

	_, empty = r.removePlayer("b")
	assert.True(t, empty)
}

func TestRoomDestroyIsIdempotent(t *testing.T) {
	r := newRoom()
	r.afterFunc(testMatchConfig().BallReleaseDelay, func() {})
	r.destroy()
	r.destroy()
	assert.True(t, r.destroyed)
	assert.Nil(t, r.timers)

	// Timers scheduled after destruction are refused.
	r.afterFunc(testMatchConfig().BallReleaseDelay, func() {})
	assert.Nil(t, r.timers)
}

func TestPlayerNameDefault(t *testing.T) {
	p := newPlayer("id", "", false)
	assert.Equal(t, "Player", p.Name)
}
