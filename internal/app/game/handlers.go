package game

import (
	"encoding/json"
	"math/rand"
	"strings"
	"time"

	"github.com/pongarena/pongarena/pkg/logging"
	"go.uber.org/zap"
)

// HandleEvent routes one inbound event to its handler. Unknown event names
// are ignored; malformed payloads are reported to the sender only. Handlers
// that reference a room or player that no longer exists no-op instead of
// erroring, since disconnect races are expected.
func (h *Hub) HandleEvent(playerID, event string, data []byte) {
	if len(data) == 0 {
		data = []byte("{}")
	}
	switch event {
	case EventCreateRoom:
		h.handleCreateRoom(playerID, data)
	case EventJoinRoom:
		h.handleJoinRoom(playerID, data)
	case EventFindGame:
		h.handleFindGame(playerID, data)
	case EventPlayerReady:
		h.handlePlayerReady(playerID)
	case EventPaddleMove:
		h.handlePaddleMove(playerID, data)
	case EventBallUpdate:
		h.handleBallUpdate(playerID, data)
	case EventScoreUpdate:
		h.handleScoreUpdate(playerID, data)
	case EventPlayerScored:
		h.handlePlayerScored(playerID, data)
	default:
		logging.Debug("unknown event",
			zap.String("player_id", playerID),
			zap.String("event", event),
		)
	}
}

// decode reports malformed payloads back to the sender without touching any
// shared state.
func (h *Hub) decode(playerID string, data []byte, v any) bool {
	if err := json.Unmarshal(data, v); err != nil {
		logging.Debug("malformed payload",
			zap.String("player_id", playerID),
			zap.Error(err),
		)
		h.sendError(playerID, msgInvalidPayload)
		return false
	}
	return true
}

func (h *Hub) handleCreateRoom(playerID string, data []byte) {
	var p createRoomPayload
	if !h.decode(playerID, data, &p) {
		return
	}
	if _, inRoom := h.registry.RoomOf(playerID); inRoom {
		return
	}

	room := newRoom()
	host := newPlayer(playerID, p.PlayerName, true)
	room.addPlayer(host)

	h.mu.Lock()
	h.queue.remove(playerID) // creating a room withdraws any quick-match request
	h.rooms[room.ID] = room
	h.mu.Unlock()
	if !h.registry.SetRoom(playerID, room.ID) {
		h.evictFromRoom(playerID, room, false)
		return
	}

	h.registry.Send(playerID, EventRoomCreated, roomCreatedEvent{RoomID: room.ID})
	logging.Info("room created",
		zap.String("room_id", room.ID),
		zap.String("player_id", playerID),
	)
}

func (h *Hub) handleJoinRoom(playerID string, data []byte) {
	var p joinRoomPayload
	if !h.decode(playerID, data, &p) {
		return
	}
	code := strings.ToUpper(strings.TrimSpace(p.RoomID))
	if code == "" {
		h.sendError(playerID, msgInvalidPayload)
		return
	}
	if _, inRoom := h.registry.RoomOf(playerID); inRoom {
		return
	}

	h.mu.Lock()
	h.queue.remove(playerID) // joining a room withdraws any quick-match request
	room := h.rooms[code]
	h.mu.Unlock()
	if room == nil {
		h.sendError(playerID, ErrRoomNotFound.Error())
		return
	}

	joiner := newPlayer(playerID, p.PlayerName, false)
	room.mu.Lock()
	if room.destroyed {
		room.mu.Unlock()
		h.sendError(playerID, ErrRoomNotFound.Error())
		return
	}
	err := room.addPlayer(joiner)
	var hostID, hostName string
	if err == nil {
		if host := room.host(); host != nil {
			hostID, hostName = host.ID, host.Name
		}
	}
	room.mu.Unlock()
	if err != nil {
		h.sendError(playerID, err.Error())
		return
	}
	if !h.registry.SetRoom(playerID, room.ID) {
		// The joiner vanished before anyone heard about the join; undo quietly.
		h.evictFromRoom(playerID, room, false)
		return
	}

	h.registry.Send(hostID, EventPlayerJoined, playerJoinedEvent{
		PlayerID:   playerID,
		PlayerName: joiner.Name,
	})
	h.registry.Send(playerID, EventRoomJoined, roomJoinedEvent{
		RoomID:   room.ID,
		HostName: hostName,
	})
	logging.Info("player joined room",
		zap.String("room_id", room.ID),
		zap.String("player_id", playerID),
	)
}

// handleFindGame pairs the two longest-waiting distinct players. The pop and
// the room publication happen under one hub lock so a third caller can never
// observe a partial pairing.
func (h *Hub) handleFindGame(playerID string, data []byte) {
	var p findGamePayload
	if !h.decode(playerID, data, &p) {
		return
	}
	if _, inRoom := h.registry.RoomOf(playerID); inRoom {
		return
	}
	name := p.PlayerName
	if name == "" {
		name = defaultPlayerName
	}

	h.mu.Lock()
	h.queue.add(playerID, name)
	first, second, ok := h.queue.popPair()
	var room *Room
	var host, guest queueEntry
	if ok {
		// The triggering player is host whenever it is one of the pair.
		host, guest = first, second
		if second.playerID == playerID {
			host, guest = second, first
		}
		room = newRoom()
		room.addPlayer(newPlayer(host.playerID, host.name, true))
		room.addPlayer(newPlayer(guest.playerID, guest.name, false))
		h.rooms[room.ID] = room
	}
	h.mu.Unlock()

	if !ok {
		h.registry.Send(playerID, EventWaitingForOpponent, emptyEvent{})
		return
	}

	hostIndexed := h.registry.SetRoom(host.playerID, room.ID)
	guestIndexed := h.registry.SetRoom(guest.playerID, room.ID)
	if hostIndexed {
		h.registry.Send(host.playerID, EventGameFound, gameFoundEvent{
			RoomID:       room.ID,
			IsHost:       true,
			OpponentName: guest.name,
		})
	}
	if guestIndexed {
		h.registry.Send(guest.playerID, EventGameFound, gameFoundEvent{
			RoomID:       room.ID,
			IsHost:       false,
			OpponentName: host.name,
		})
	}
	// A player that disconnected between the pop and the index is evicted the
	// way the disconnect path would have done, so the survivor hears about it.
	if !hostIndexed {
		h.evictFromRoom(host.playerID, room, true)
	}
	if !guestIndexed {
		h.evictFromRoom(guest.playerID, room, true)
	}
	if !hostIndexed || !guestIndexed {
		return
	}
	logging.Info("quick match paired",
		zap.String("room_id", room.ID),
		zap.String("host_id", host.playerID),
		zap.String("guest_id", guest.playerID),
	)
}

func (h *Hub) handlePlayerReady(playerID string) {
	room := h.roomFor(playerID)
	if room == nil {
		return
	}

	room.mu.Lock()
	player := room.players[playerID]
	if player == nil || room.destroyed {
		room.mu.Unlock()
		return
	}
	player.Ready = true
	if room.started || !room.allReady() {
		room.mu.Unlock()
		return
	}

	// Both present and ready: this transition fires exactly once per room.
	room.started = true
	room.game = newGameState(room.order)
	room.match = newMatchState(h.cfg, time.Now())
	playerIDs := room.memberIDs()
	playerNames := make(map[string]string, len(playerIDs))
	for _, id := range playerIDs {
		playerNames[id] = room.players[id].Name
	}
	state := room.game.snapshot()
	room.afterFunc(h.cfg.BallReleaseDelay, func() { h.releaseBall(room) })
	go h.runMatch(room)
	room.mu.Unlock()

	for _, id := range playerIDs {
		h.registry.Send(id, EventGameStarting, gameStartingEvent{
			GameState:   state,
			PlayerIDs:   playerIDs,
			PlayerNames: playerNames,
			YourID:      id,
		})
	}
	logging.Info("game starting", zap.String("room_id", room.ID))
}

// releaseBall randomizes the ball velocity shortly after the match starts and
// broadcasts it twice, the second time after a short delay, so a single
// dropped delivery cannot leave a client with a frozen ball.
func (h *Hub) releaseBall(room *Room) {
	room.mu.Lock()
	if room.destroyed || !room.started {
		room.mu.Unlock()
		return
	}
	room.game.Ball.SpeedX = launchSpeed()
	room.game.Ball.SpeedY = launchSpeed()
	ball := room.game.Ball
	members := room.memberIDs()
	room.afterFunc(h.cfg.BallRepeatDelay, func() { h.rebroadcastBall(room) })
	room.mu.Unlock()

	h.sendTo(members, EventBallMoving, ballMovingEvent{Ball: ball})
}

func (h *Hub) rebroadcastBall(room *Room) {
	room.mu.Lock()
	if room.destroyed || !room.started {
		room.mu.Unlock()
		return
	}
	ball := room.game.Ball
	members := room.memberIDs()
	room.mu.Unlock()

	h.sendTo(members, EventBallMoving, ballMovingEvent{Ball: ball})
}

func launchSpeed() float64 {
	if rand.Intn(2) == 0 {
		return -ballLaunchSpeed
	}
	return ballLaunchSpeed
}

// handlePaddleMove relays the sender's new paddle position to the other room
// member only, not the whole room.
func (h *Hub) handlePaddleMove(playerID string, data []byte) {
	var p paddleMovePayload
	if !h.decode(playerID, data, &p) {
		return
	}
	if p.Y == nil {
		h.sendError(playerID, msgInvalidPayload)
		return
	}
	room := h.roomFor(playerID)
	if room == nil {
		return
	}

	room.mu.Lock()
	if !room.started || room.destroyed || room.players[playerID] == nil {
		room.mu.Unlock()
		return
	}
	room.game.Paddles[playerID] = Paddle{Y: *p.Y}
	other := room.otherPlayer(playerID)
	room.mu.Unlock()

	if other != nil {
		h.registry.Send(other.ID, EventOpponentMove, opponentMoveEvent{Y: *p.Y})
	}
}

// handleBallUpdate applies the host's authoritative ball state and relays it
// to the non-host. Submissions from the non-host are silently ignored.
func (h *Hub) handleBallUpdate(playerID string, data []byte) {
	var p ballUpdatePayload
	if !h.decode(playerID, data, &p) {
		return
	}
	if p.Ball == nil {
		h.sendError(playerID, msgInvalidPayload)
		return
	}
	room := h.roomFor(playerID)
	if room == nil {
		return
	}

	room.mu.Lock()
	player := room.players[playerID]
	if !room.started || room.destroyed || player == nil || !player.IsHost {
		room.mu.Unlock()
		return
	}
	room.game.Ball = *p.Ball
	other := room.otherPlayer(playerID)
	room.mu.Unlock()

	if other != nil {
		h.registry.Send(other.ID, EventBallUpdate, ballUpdateEvent{Ball: *p.Ball})
	}
}

// handleScoreUpdate bulk-replaces the live score map and broadcasts it to the
// whole room, sender included, so every client converges on one value.
func (h *Hub) handleScoreUpdate(playerID string, data []byte) {
	var p scoreUpdatePayload
	if !h.decode(playerID, data, &p) {
		return
	}
	if p.Scores == nil {
		h.sendError(playerID, msgInvalidPayload)
		return
	}
	room := h.roomFor(playerID)
	if room == nil {
		return
	}

	room.mu.Lock()
	if room.game == nil || room.destroyed || room.players[playerID] == nil {
		room.mu.Unlock()
		return
	}
	room.game.Scores = copyScores(p.Scores)
	scores := copyScores(room.game.Scores)
	members := room.memberIDs()
	room.mu.Unlock()

	h.sendTo(members, EventScoreUpdate, scoreUpdateEvent{Scores: scores})
}

// handlePlayerScored increments one player's score and broadcasts the full map.
func (h *Hub) handlePlayerScored(playerID string, data []byte) {
	var p playerScoredPayload
	if !h.decode(playerID, data, &p) {
		return
	}
	if p.ScoringPlayer == "" {
		h.sendError(playerID, msgInvalidPayload)
		return
	}
	room := h.roomFor(playerID)
	if room == nil {
		return
	}

	room.mu.Lock()
	if room.game == nil || room.destroyed || room.players[playerID] == nil {
		room.mu.Unlock()
		return
	}
	if _, ok := room.players[p.ScoringPlayer]; !ok {
		room.mu.Unlock()
		return
	}
	room.game.Scores[p.ScoringPlayer]++
	scores := copyScores(room.game.Scores)
	members := room.memberIDs()
	room.mu.Unlock()

	h.sendTo(members, EventScoreUpdate, scoreUpdateEvent{Scores: scores})
}
