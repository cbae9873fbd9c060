package game

// Inbound event names (client to server).
const (
	EventCreateRoom   = "create_room"
	EventJoinRoom     = "join_room"
	EventFindGame     = "find_game"
	EventPlayerReady  = "player_ready"
	EventPaddleMove   = "paddle_move"
	EventBallUpdate   = "ball_update"
	EventScoreUpdate  = "score_update"
	EventPlayerScored = "player_scored"
)

// Outbound event names (server to client). Ball and score updates reuse the
// inbound names since they carry the same payloads both ways.
const (
	EventConnection           = "connection"
	EventRoomCreated          = "room_created"
	EventPlayerJoined         = "player_joined"
	EventRoomJoined           = "room_joined"
	EventError                = "error"
	EventWaitingForOpponent   = "waiting_for_opponent"
	EventGameFound            = "game_found"
	EventGameStarting         = "game_starting"
	EventBallMoving           = "ball_moving"
	EventOpponentMove         = "opponent_move"
	EventTimerUpdate          = "timer_update"
	EventRestPeriodStarting   = "rest_period_starting"
	EventRestPeriodUpdate     = "rest_period_update"
	EventSet2Starting         = "set2_starting"
	EventMatchResults         = "match_results"
	EventOpponentDisconnected = "opponent_disconnected"
)

// InboundEvents lists every event name a transport should subscribe to.
func InboundEvents() []string {
	return []string{
		EventCreateRoom,
		EventJoinRoom,
		EventFindGame,
		EventPlayerReady,
		EventPaddleMove,
		EventBallUpdate,
		EventScoreUpdate,
		EventPlayerScored,
	}
}

type createRoomPayload struct {
	PlayerName string `json:"playerName"`
}

type joinRoomPayload struct {
	RoomID     string `json:"roomId"`
	PlayerName string `json:"playerName"`
}

type findGamePayload struct {
	PlayerName string `json:"playerName"`
}

type paddleMovePayload struct {
	Y *float64 `json:"y"`
}

type ballUpdatePayload struct {
	Ball *Ball `json:"ball"`
}

type scoreUpdatePayload struct {
	Scores map[string]int `json:"scores"`
}

type playerScoredPayload struct {
	ScoringPlayer string `json:"scoringPlayer"`
}

type connectionEvent struct {
	PlayerID string `json:"playerId"`
}

type roomCreatedEvent struct {
	RoomID string `json:"roomId"`
}

type playerJoinedEvent struct {
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
}

type roomJoinedEvent struct {
	RoomID   string `json:"roomId"`
	HostName string `json:"hostName"`
}

type errorEvent struct {
	Message string `json:"message"`
}

type gameFoundEvent struct {
	RoomID       string `json:"roomId"`
	IsHost       bool   `json:"isHost"`
	OpponentName string `json:"opponentName"`
}

type gameStartingEvent struct {
	GameState   *GameState        `json:"gameState"`
	PlayerIDs   []string          `json:"playerIds"`
	PlayerNames map[string]string `json:"playerNames"`
	YourID      string            `json:"yourId"`
}

type ballMovingEvent struct {
	Ball Ball `json:"ball"`
}

type opponentMoveEvent struct {
	Y float64 `json:"y"`
}

type ballUpdateEvent struct {
	Ball Ball `json:"ball"`
}

type scoreUpdateEvent struct {
	Scores map[string]int `json:"scores"`
}

type timerUpdateEvent struct {
	TimeRemaining float64 `json:"timeRemaining"`
	CurrentSet    int     `json:"currentSet"`
}

type matchStateEvent struct {
	MatchState *MatchState `json:"matchState"`
}

type restPeriodUpdateEvent struct {
	RestTimeRemaining float64 `json:"restTimeRemaining"`
}

type emptyEvent struct{}
