package game

import "time"

type queueEntry struct {
	playerID   string
	name       string
	enqueuedAt time.Time
}

// matchQueue holds players waiting for a quick-match opponent in insertion
// order. It has no lock of its own: the hub serializes all access so that
// pairing two players is atomic with room creation.
type matchQueue struct {
	entries []queueEntry
}

// add enqueues the player unless already waiting.
func (q *matchQueue) add(playerID, name string) bool {
	for _, e := range q.entries {
		if e.playerID == playerID {
			return false
		}
	}
	q.entries = append(q.entries, queueEntry{
		playerID:   playerID,
		name:       name,
		enqueuedAt: time.Now(),
	})
	return true
}

func (q *matchQueue) remove(playerID string) bool {
	for i, e := range q.entries {
		if e.playerID == playerID {
			q.entries = append(q.entries[:i], q.entries[i+1:]...)
			return true
		}
	}
	return false
}

func (q *matchQueue) size() int {
	return len(q.entries)
}

// popPair removes and returns the two longest-waiting entries.
func (q *matchQueue) popPair() (first, second queueEntry, ok bool) {
	if len(q.entries) < 2 {
		return queueEntry{}, queueEntry{}, false
	}
	first, second = q.entries[0], q.entries[1]
	q.entries = q.entries[2:]
	return first, second, true
}
