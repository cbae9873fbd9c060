package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// driveTicks advances the match clock second by second, the way the real
// ticker would, but fully deterministically.
func driveTicks(h *Hub, room *Room, from time.Time, seconds int) time.Time {
	now := from
	for i := 0; i < seconds; i++ {
		now = now.Add(time.Second)
		h.tickMatch(room, now)
	}
	return now
}

func TestMatchProgression(t *testing.T) {
	h := newTestHub()
	hostConn, hostID, guestConn, guestID, room := startedRoom(t, h)

	room.mu.Lock()
	base := room.match.lastTick
	room.mu.Unlock()

	h.HandleEvent(hostID, EventPlayerScored, mustJSON(t, map[string]string{"scoringPlayer": hostID}))
	h.HandleEvent(hostID, EventPlayerScored, mustJSON(t, map[string]string{"scoringPlayer": hostID}))

	// Set 1: 119 countdown broadcasts, then the rest period fires.
	now := driveTicks(h, room, base, 120)
	assert.Equal(t, 119, hostConn.count(EventTimerUpdate))
	rest := hostConn.last(t, EventRestPeriodStarting).data.(matchStateEvent).MatchState
	require.True(t, rest.IsRestPeriod)
	assert.Equal(t, 1, rest.CurrentSet)
	assert.Equal(t, 30.0, rest.RestTimeRemaining)
	assert.Equal(t, 2, rest.Set1Scores[hostID])
	assert.Equal(t, 0, rest.Set1Scores[guestID])

	// Live scores reset for the second set.
	room.mu.Lock()
	assert.Equal(t, 0, room.game.Scores[hostID])
	room.mu.Unlock()

	// Rest: 29 countdown broadcasts, then set 2 starts.
	now = driveTicks(h, room, now, 30)
	assert.Equal(t, 29, hostConn.count(EventRestPeriodUpdate))
	set2 := guestConn.last(t, EventSet2Starting).data.(matchStateEvent).MatchState
	assert.False(t, set2.IsRestPeriod)
	assert.Equal(t, 2, set2.CurrentSet)
	assert.Equal(t, 120.0, set2.TimeRemaining)

	h.HandleEvent(guestID, EventPlayerScored, mustJSON(t, map[string]string{"scoringPlayer": guestID}))

	// Set 2 runs its full 120 seconds, then the match finishes for good.
	driveTicks(h, room, now, 120)
	for _, conn := range []*fakeConn{hostConn, guestConn} {
		results := conn.last(t, EventMatchResults).data.(matchStateEvent).MatchState
		assert.Equal(t, 2, results.Set1Scores[hostID])
		assert.Equal(t, 0, results.Set1Scores[guestID])
		assert.Equal(t, 0, results.Set2Scores[hostID])
		assert.Equal(t, 1, results.Set2Scores[guestID])
	}
	assert.Equal(t, 1, hostConn.count(EventMatchResults))

	// The clock is permanently stopped: further ticks do nothing.
	done := h.tickMatch(room, time.Now().Add(time.Hour))
	assert.True(t, done)
	assert.Equal(t, 1, hostConn.count(EventMatchResults))
}

func TestTickDriftCorrection(t *testing.T) {
	h := newTestHub()
	hostConn, _, _, _, room := startedRoom(t, h)

	room.mu.Lock()
	base := room.match.lastTick
	room.mu.Unlock()

	// A tick that arrives 5 seconds late still accounts for all 5 seconds.
	h.tickMatch(room, base.Add(5*time.Second))
	update := hostConn.last(t, EventTimerUpdate).data.(timerUpdateEvent)
	assert.Equal(t, 115.0, update.TimeRemaining)
	assert.Equal(t, 1, update.CurrentSet)

	// Ticks from the past are ignored rather than rewinding the clock.
	h.tickMatch(room, base)
	assert.Equal(t, 1, hostConn.count(EventTimerUpdate))
}

func TestTimerBroadcastsCurrentSet(t *testing.T) {
	h := newTestHub()
	hostConn, _, _, _, room := startedRoom(t, h)

	room.mu.Lock()
	base := room.match.lastTick
	room.mu.Unlock()

	now := driveTicks(h, room, base, 1)
	assert.Equal(t, 1, hostConn.last(t, EventTimerUpdate).data.(timerUpdateEvent).CurrentSet)

	now = driveTicks(h, room, now, 149) // through end of set 1 and the rest
	driveTicks(h, room, now, 1)
	assert.Equal(t, 2, hostConn.last(t, EventTimerUpdate).data.(timerUpdateEvent).CurrentSet)
}

func TestRoomDestructionStopsClock(t *testing.T) {
	h := newTestHub()
	hostConn, hostID, _, guestID, room := startedRoom(t, h)

	room.mu.Lock()
	base := room.match.lastTick
	room.mu.Unlock()

	h.Disconnect(guestID)
	h.Disconnect(hostID)

	done := h.tickMatch(room, base.Add(time.Second))
	assert.True(t, done)
	assert.Zero(t, hostConn.count(EventTimerUpdate))

	// The stop channel is closed so the clock goroutine exits.
	select {
	case <-room.stopCh:
	default:
		t.Fatal("stop channel still open after room destruction")
	}
}
