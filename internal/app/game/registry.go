package game

import (
	"sync"

	"github.com/google/uuid"
	"github.com/pongarena/pongarena/pkg/logging"
	"go.uber.org/zap"
)

// Conn is the transport-agnostic handle the core uses to reach a client.
// Both the raw websocket and the socket.io bindings implement it.
type Conn interface {
	Send(event string, data any) error
	Close() error
}

// Registry tracks live connections and which room each player is in.
// Delivery is best effort: a failed or missing connection is logged and
// swallowed so game logic never sees transport errors.
type Registry struct {
	mu    sync.RWMutex
	conns map[string]Conn
	rooms map[string]string // player id -> room id
}

func NewRegistry() *Registry {
	return &Registry{
		conns: make(map[string]Conn),
		rooms: make(map[string]string),
	}
}

// Register assigns an opaque player id to the connection.
func (r *Registry) Register(conn Conn) string {
	id := uuid.NewString()
	r.mu.Lock()
	r.conns[id] = conn
	r.mu.Unlock()
	return id
}

// Unregister removes the connection and its room index. It reports whether
// the player was still registered, which gives disconnect handling its
// exactly-once guarantee.
func (r *Registry) Unregister(playerID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.conns[playerID]; !ok {
		return false
	}
	delete(r.conns, playerID)
	delete(r.rooms, playerID)
	return true
}

// SetRoom records the player's room. A player that already disconnected is
// not re-indexed; it reports false so the caller can undo the membership the
// disconnect path never saw.
func (r *Registry) SetRoom(playerID, roomID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.conns[playerID]; !ok {
		return false
	}
	r.rooms[playerID] = roomID
	return true
}

func (r *Registry) RoomOf(playerID string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	roomID, ok := r.rooms[playerID]
	return roomID, ok
}

// Send delivers an event to one player. Failures never propagate.
func (r *Registry) Send(playerID, event string, data any) {
	r.mu.RLock()
	conn, ok := r.conns[playerID]
	r.mu.RUnlock()
	if !ok {
		logging.Debug("send to unknown player",
			zap.String("player_id", playerID),
			zap.String("event", event),
		)
		return
	}
	if err := conn.Send(event, data); err != nil {
		logging.Error("couldn't notify player",
			zap.String("player_id", playerID),
			zap.String("event", event),
			zap.Error(err),
		)
	}
}
