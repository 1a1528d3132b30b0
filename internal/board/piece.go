package board

import "fmt"

type Color string

const (
	White Color = "white"
	Black Color = "black"
)

func (c Color) Opponent() Color {
	if c == White {
		return Black
	}
	return White
}

type PieceType string

const (
	King   PieceType = "king"
	Queen  PieceType = "queen"
	Rook   PieceType = "rook"
	Bishop PieceType = "bishop"
	Knight PieceType = "knight"
	Pawn   PieceType = "pawn"
)

func (p PieceType) Notation() string {
	switch p {
	case King:
		return "K"
	case Queen:
		return "Q"
	case Rook:
		return "R"
	case Bishop:
		return "B"
	case Knight:
		return "N"
	case Pawn:
		return ""
	}
	return ""
}

// Square is a board coordinate. Row 0 is black's back rank, row 7 white's.
type Square struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (s Square) InBounds() bool {
	return s.Row >= 0 && s.Row < 8 && s.Col >= 0 && s.Col < 8
}

func (s Square) Notation() string {
	return fmt.Sprintf("%c%d", 'a'+s.Col, 8-s.Row)
}

func (s Square) FileNotation() string {
	return fmt.Sprintf("%c", 'a'+s.Col)
}

// Piece lives in exactly one grid cell of a Position. Square is kept as
// plain coordinate data, never a reference, so cloning a position can
// copy pieces wholesale.
type Piece struct {
	Type     PieceType `json:"type"`
	Color    Color     `json:"color"`
	Square   Square    `json:"square"`
	HasMoved bool      `json:"hasMoved"`
}
