package game

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/pongarena/pongarena/pkg/utils"
)

const (
	roomCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	roomCodeLength   = 6
	maxRoomPlayers   = 2
)

// Room groups the two players of one match. All mutable fields are guarded by
// mu; the match clock goroutine and the event handlers contend on it.
type Room struct {
	ID string

	mu        sync.Mutex
	players   map[string]*Player
	order     []string // join order; never iterate the map to find "the other" player
	game      *GameState
	match     *MatchState
	started   bool
	destroyed bool

	stopCh chan struct{}
	timers []*time.Timer
}

func newRoom() *Room {
	return &Room{
		ID:      newRoomCode(),
		players: make(map[string]*Player, maxRoomPlayers),
		stopCh:  make(chan struct{}),
	}
}

// newRoomCode draws a 6-character uppercase base-36 code. Codes are
// collision-probabilistic, not guaranteed unique.
func newRoomCode() string {
	b := make([]byte, roomCodeLength)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	for i := range b {
		b[i] = roomCodeAlphabet[int(b[i])%len(roomCodeAlphabet)]
	}
	return string(b)
}

// addPlayer enforces the two-player cap. Callers hold mu.
func (r *Room) addPlayer(p *Player) error {
	if len(r.players) >= maxRoomPlayers {
		return ErrRoomFull
	}
	r.players[p.ID] = p
	r.order = append(r.order, p.ID)
	return nil
}

// removePlayer drops the player and returns the remaining member, if any.
// Callers hold mu.
func (r *Room) removePlayer(playerID string) (remaining *Player, empty bool) {
	if _, ok := r.players[playerID]; !ok {
		return nil, len(r.players) == 0
	}
	delete(r.players, playerID)
	for i, id := range r.order {
		if id == playerID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	for _, id := range r.order {
		remaining = r.players[id]
	}
	return remaining, len(r.players) == 0
}

// otherPlayer resolves the single opposing member explicitly from the join
// order, never from map iteration order. Callers hold mu.
func (r *Room) otherPlayer(playerID string) *Player {
	for _, id := range r.order {
		if id != playerID {
			return r.players[id]
		}
	}
	return nil
}

// host returns the room's authority for ball physics. Callers hold mu.
func (r *Room) host() *Player {
	for _, id := range r.order {
		if p := r.players[id]; p != nil && p.IsHost {
			return p
		}
	}
	return nil
}

// allReady reports whether both players are present and ready. Callers hold mu.
func (r *Room) allReady() bool {
	if len(r.players) < maxRoomPlayers {
		return false
	}
	for _, p := range r.players {
		if !p.Ready {
			return false
		}
	}
	return true
}

// memberIDs returns a copy of the roster in join order. Callers hold mu.
func (r *Room) memberIDs() []string {
	return append([]string(nil), r.order...)
}

// afterFunc schedules a room-owned timer that dies with the room.
// Callers hold mu.
func (r *Room) afterFunc(d time.Duration, fn func()) {
	if r.destroyed {
		return
	}
	r.timers = append(r.timers, time.AfterFunc(d, fn))
}

// destroy cancels all pending timers and stops the match clock goroutine.
// Idempotent. Callers hold mu.
func (r *Room) destroy() {
	if r.destroyed {
		return
	}
	r.destroyed = true
	for _, t := range r.timers {
		t.Stop()
	}
	r.timers = nil
	if !utils.IsClosed(r.stopCh) {
		close(r.stopCh)
	}
}
