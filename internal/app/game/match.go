package game

import (
	"time"

	"github.com/pongarena/pongarena/pkg/logging"
	"go.uber.org/zap"
)

// MatchConfig carries the pacing of a match. Tests shrink these to keep runs
// fast; production values come from the server config.
type MatchConfig struct {
	SetDuration      time.Duration
	RestDuration     time.Duration
	TickInterval     time.Duration
	BallReleaseDelay time.Duration
	BallRepeatDelay  time.Duration
}

func DefaultMatchConfig() MatchConfig {
	return MatchConfig{
		SetDuration:      120 * time.Second,
		RestDuration:     30 * time.Second,
		TickInterval:     time.Second,
		BallReleaseDelay: 2 * time.Second,
		BallRepeatDelay:  500 * time.Millisecond,
	}
}

// MatchState tracks the two-set match structure: set 1, a rest interval, set 2.
// Exactly one of the two countdowns is live at any moment until the match
// finishes.
type MatchState struct {
	CurrentSet        int            `json:"currentSet"`
	TimeRemaining     float64        `json:"timeRemaining"`
	IsRestPeriod      bool           `json:"isRestPeriod"`
	RestTimeRemaining float64        `json:"restTimeRemaining"`
	Set1Scores        map[string]int `json:"set1Scores"`
	Set2Scores        map[string]int `json:"set2Scores"`

	lastTick time.Time
	finished bool
}

func newMatchState(cfg MatchConfig, now time.Time) *MatchState {
	return &MatchState{
		CurrentSet:    1,
		TimeRemaining: cfg.SetDuration.Seconds(),
		lastTick:      now,
	}
}

// snapshot returns a copy safe to marshal after the room lock is released.
func (ms *MatchState) snapshot() *MatchState {
	cp := *ms
	cp.Set1Scores = copyScores(ms.Set1Scores)
	cp.Set2Scores = copyScores(ms.Set2Scores)
	return &cp
}

// runMatch is the per-room clock. It runs concurrently with the event
// handlers and is stopped by room teardown or by the match finishing.
func (h *Hub) runMatch(r *Room) {
	ticker := time.NewTicker(h.cfg.TickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-r.stopCh:
			return
		case now := <-ticker.C:
			if h.tickMatch(r, now) {
				return
			}
		}
	}
}

// tickMatch advances the match by the real time elapsed since the previous
// tick, so a delayed tick still accounts for every second. It reports whether
// the match reached its terminal state.
func (h *Hub) tickMatch(r *Room, now time.Time) bool {
	r.mu.Lock()
	ms := r.match
	if ms == nil || ms.finished || r.destroyed {
		r.mu.Unlock()
		return true
	}
	elapsed := now.Sub(ms.lastTick).Seconds()
	if elapsed <= 0 {
		r.mu.Unlock()
		return false
	}
	ms.lastTick = now

	var event string
	var data any
	if ms.IsRestPeriod {
		ms.RestTimeRemaining -= elapsed
		if ms.RestTimeRemaining <= 0 {
			ms.RestTimeRemaining = 0
			ms.IsRestPeriod = false
			ms.CurrentSet = 2
			ms.TimeRemaining = h.cfg.SetDuration.Seconds()
			r.game.resetScores()
			event, data = EventSet2Starting, matchStateEvent{MatchState: ms.snapshot()}
			logging.Info("second set starting", zap.String("room_id", r.ID))
		} else {
			event, data = EventRestPeriodUpdate, restPeriodUpdateEvent{RestTimeRemaining: ms.RestTimeRemaining}
		}
	} else {
		ms.TimeRemaining -= elapsed
		if ms.TimeRemaining <= 0 {
			ms.TimeRemaining = 0
			if ms.CurrentSet == 1 {
				ms.Set1Scores = copyScores(r.game.Scores)
				r.game.resetScores()
				ms.IsRestPeriod = true
				ms.RestTimeRemaining = h.cfg.RestDuration.Seconds()
				event, data = EventRestPeriodStarting, matchStateEvent{MatchState: ms.snapshot()}
				logging.Info("rest period starting", zap.String("room_id", r.ID))
			} else {
				ms.Set2Scores = copyScores(r.game.Scores)
				ms.finished = true
				event, data = EventMatchResults, matchStateEvent{MatchState: ms.snapshot()}
				logging.Info("match finished", zap.String("room_id", r.ID))
			}
		} else {
			event, data = EventTimerUpdate, timerUpdateEvent{TimeRemaining: ms.TimeRemaining, CurrentSet: ms.CurrentSet}
		}
	}
	members := r.memberIDs()
	done := ms.finished
	r.mu.Unlock()

	h.sendTo(members, event, data)
	return done
}
