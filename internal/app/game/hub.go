package game

import (
	"sync"

	"github.com/pongarena/pongarena/pkg/logging"
	"go.uber.org/zap"
)

// Hub owns the rooms, the matchmaking queue and the connection registry.
// Rooms are independent of one another; the hub lock covers only the room map
// and the queue, each room serializes its own state behind its own mutex.
type Hub struct {
	cfg      MatchConfig
	registry *Registry

	mu    sync.Mutex
	rooms map[string]*Room
	queue matchQueue
}

func NewHub(cfg MatchConfig) *Hub {
	return &Hub{
		cfg:      cfg,
		registry: NewRegistry(),
		rooms:    make(map[string]*Room),
	}
}

// Connect registers a transport connection and tells the client its id.
func (h *Hub) Connect(conn Conn) string {
	playerID := h.registry.Register(conn)
	h.registry.Send(playerID, EventConnection, connectionEvent{PlayerID: playerID})
	logging.Info("player connected", zap.String("player_id", playerID))
	return playerID
}

// Disconnect tears down everything the connection owned: its queue entry, its
// room membership and, when the room empties, the room itself. Safe to call
// more than once; only the first call does anything.
func (h *Hub) Disconnect(playerID string) {
	roomID, _ := h.registry.RoomOf(playerID)
	if !h.registry.Unregister(playerID) {
		return
	}

	h.mu.Lock()
	h.queue.remove(playerID)
	room := h.rooms[roomID]
	h.mu.Unlock()

	logging.Info("player disconnected", zap.String("player_id", playerID))
	if room != nil {
		h.evictFromRoom(playerID, room, true)
	}
}

// evictFromRoom removes the player from the room and tears the room down when
// it empties. A lobby that loses its host promotes the remaining member so a
// later joiner never readies into a hostless match. notify controls whether
// the remaining member hears about the departure; callers that never
// announced the player skip it.
func (h *Hub) evictFromRoom(playerID string, room *Room, notify bool) {
	room.mu.Lock()
	remaining, empty := room.removePlayer(playerID)
	if remaining != nil && !room.started && !remaining.IsHost {
		remaining.IsHost = true
	}
	if empty {
		room.destroy()
	}
	room.mu.Unlock()

	if empty {
		h.mu.Lock()
		delete(h.rooms, room.ID)
		h.mu.Unlock()
		logging.Info("room destroyed", zap.String("room_id", room.ID))
		return
	}
	if notify && remaining != nil {
		h.registry.Send(remaining.ID, EventOpponentDisconnected, emptyEvent{})
	}
}

// roomFor resolves the caller's current room, or nil when the player is not
// in one (or the room already vanished in a disconnect race).
func (h *Hub) roomFor(playerID string) *Room {
	roomID, ok := h.registry.RoomOf(playerID)
	if !ok {
		return nil
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.rooms[roomID]
}

func (h *Hub) sendTo(playerIDs []string, event string, data any) {
	for _, id := range playerIDs {
		h.registry.Send(id, event, data)
	}
}

func (h *Hub) sendError(playerID, message string) {
	h.registry.Send(playerID, EventError, errorEvent{Message: message})
}
