package model

import "github.com/RovarQRoom/gochess/internal/board"

// WSMove is the move payload received over the websocket. Promotion is
// accepted for protocol compatibility; the board auto-promotes to queen.
type WSMove struct {
	From      board.Square    `json:"from"`
	To        board.Square    `json:"to"`
	Promotion board.PieceType `json:"promotion"`
}

// Ply is one side's move as shown to clients.
type Ply struct {
	Piece          board.PieceType `json:"piece"`
	Color          board.Color     `json:"color"`
	From           board.Square    `json:"from"`
	To             board.Square    `json:"to"`
	CapturedPiece  *board.Piece    `json:"capturedPiece"`
	CastleRookMove *board.RookMove `json:"castleRookMove"`
	Notation       string          `json:"notation"`
}

// Move pairs a white ply with black's reply in the client-facing history.
type Move struct {
	WhitePly *Ply `json:"whitePly"`
	BlackPly *Ply `json:"blackPly"`
}

type SimpleMove struct {
	From board.Square `json:"from"`
	To   board.Square `json:"to"`
}

func plyFromRecord(rec board.MoveRecord) *Ply {
	return &Ply{
		Piece:          rec.Piece,
		Color:          rec.Color,
		From:           rec.From,
		To:             rec.To,
		CapturedPiece:  rec.Captured,
		CastleRookMove: rec.RookMove,
		Notation:       rec.Notation,
	}
}
