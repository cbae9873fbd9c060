package game

const defaultPlayerName = "Player"

type Player struct {
	ID     string
	Name   string
	Ready  bool
	IsHost bool
}

func newPlayer(id, name string, isHost bool) *Player {
	if name == "" {
		name = defaultPlayerName
	}
	return &Player{
		ID:     id,
		Name:   name,
		IsHost: isHost,
	}
}
