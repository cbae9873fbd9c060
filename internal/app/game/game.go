package game

const (
	initialBallX   = 400.0
	initialBallY   = 200.0
	initialPaddleY = 150.0

	ballLaunchSpeed = 10.0
)

type Ball struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	SpeedX float64 `json:"speedX"`
	SpeedY float64 `json:"speedY"`
}

type Paddle struct {
	Y float64 `json:"y"`
}

// GameState is the authoritative per-room snapshot shared with both clients.
type GameState struct {
	Ball    Ball              `json:"ball"`
	Paddles map[string]Paddle `json:"paddles"`
	Scores  map[string]int    `json:"scores"`
}

// newGameState places the ball at rest in the center and gives every player a
// centered paddle and a zero score.
func newGameState(playerIDs []string) *GameState {
	gs := &GameState{
		Ball:    Ball{X: initialBallX, Y: initialBallY},
		Paddles: make(map[string]Paddle, len(playerIDs)),
		Scores:  make(map[string]int, len(playerIDs)),
	}
	for _, id := range playerIDs {
		gs.Paddles[id] = Paddle{Y: initialPaddleY}
		gs.Scores[id] = 0
	}
	return gs
}

// snapshot returns a deep copy safe to marshal after the room lock is released.
func (gs *GameState) snapshot() *GameState {
	cp := &GameState{
		Ball:    gs.Ball,
		Paddles: make(map[string]Paddle, len(gs.Paddles)),
		Scores:  copyScores(gs.Scores),
	}
	for id, paddle := range gs.Paddles {
		cp.Paddles[id] = paddle
	}
	return cp
}

func (gs *GameState) resetScores() {
	for id := range gs.Scores {
		gs.Scores[id] = 0
	}
}

func copyScores(scores map[string]int) map[string]int {
	cp := make(map[string]int, len(scores))
	for id, score := range scores {
		cp[id] = score
	}
	return cp
}
