package game

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fakeConn records everything the server sends, standing in for a transport.
type fakeConn struct {
	mu     sync.Mutex
	events []sentEvent
	closed bool
}

type sentEvent struct {
	name string
	data any
}

func (c *fakeConn) Send(event string, data any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, sentEvent{name: event, data: data})
	return nil
}

func (c *fakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *fakeConn) named(name string) []sentEvent {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []sentEvent
	for _, e := range c.events {
		if e.name == name {
			out = append(out, e)
		}
	}
	return out
}

func (c *fakeConn) count(name string) int {
	return len(c.named(name))
}

func (c *fakeConn) last(t *testing.T, name string) sentEvent {
	t.Helper()
	events := c.named(name)
	require.NotEmpty(t, events, "no %q event received", name)
	return events[len(events)-1]
}

// testMatchConfig keeps real durations but pushes every background timer out
// of reach so tests drive the clock deterministically via tickMatch.
func testMatchConfig() MatchConfig {
	return MatchConfig{
		SetDuration:      120 * time.Second,
		RestDuration:     30 * time.Second,
		TickInterval:     time.Hour,
		BallReleaseDelay: time.Hour,
		BallRepeatDelay:  time.Hour,
	}
}

func newTestHub() *Hub {
	return NewHub(testMatchConfig())
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return raw
}

func connect(t *testing.T, h *Hub) (*fakeConn, string) {
	t.Helper()
	conn := &fakeConn{}
	playerID := h.Connect(conn)
	ev := conn.last(t, EventConnection)
	require.Equal(t, playerID, ev.data.(connectionEvent).PlayerID)
	return conn, playerID
}

// startedRoom wires up a full two-player room with the game running.
func startedRoom(t *testing.T, h *Hub) (hostConn *fakeConn, hostID string, guestConn *fakeConn, guestID string, room *Room) {
	t.Helper()
	hostConn, hostID = connect(t, h)
	guestConn, guestID = connect(t, h)

	h.HandleEvent(hostID, EventCreateRoom, mustJSON(t, map[string]string{"playerName": "Alice"}))
	roomID := hostConn.last(t, EventRoomCreated).data.(roomCreatedEvent).RoomID

	h.HandleEvent(guestID, EventJoinRoom, mustJSON(t, map[string]string{"roomId": roomID, "playerName": "Bob"}))
	h.HandleEvent(hostID, EventPlayerReady, nil)
	h.HandleEvent(guestID, EventPlayerReady, nil)

	h.mu.Lock()
	room = h.rooms[roomID]
	h.mu.Unlock()
	require.NotNil(t, room)
	require.True(t, room.started)
	return hostConn, hostID, guestConn, guestID, room
}
