package model

import "github.com/RovarQRoom/gochess/internal/board"

// MatchFoundEvent is pushed to a queued player when matchmaking pairs them
// into a game.
type MatchFoundEvent struct {
	GameID string      `json:"gameId"`
	Color  board.Color `json:"color"`
}
