package model

import "github.com/RovarQRoom/gochess/internal/board"

type Player struct {
	ID    string
	Color board.Color
}

// ClientPlayer is the player view sent with every game state broadcast.
type ClientPlayer struct {
	ID       string      `json:"name"`
	Color    board.Color `json:"color"`
	TimeLeft int         `json:"timeLeft"`
}
