package board

import "fmt"

type SideRights struct {
	Kingside  bool `json:"kingside"`
	Queenside bool `json:"queenside"`
}

type CastlingRights struct {
	White SideRights `json:"white"`
	Black SideRights `json:"black"`
}

func (cr CastlingRights) side(c Color) SideRights {
	if c == White {
		return cr.White
	}
	return cr.Black
}

type MoveKind string

const (
	MoveRegular         MoveKind = "regular"
	MovePromotion       MoveKind = "promotion"
	MoveEnPassant       MoveKind = "enPassant"
	MoveCastleKingside  MoveKind = "castleKingside"
	MoveCastleQueenside MoveKind = "castleQueenside"
)

// RookMove records the rook relocation that accompanies a castle.
type RookMove struct {
	From Square `json:"from"`
	To   Square `json:"to"`
}

// MoveRecord is appended to the history on every successful ApplyMove and
// never mutated afterwards.
type MoveRecord struct {
	Piece     PieceType      `json:"piece"`
	Color     Color          `json:"color"`
	From      Square         `json:"from"`
	To        Square         `json:"to"`
	Kind      MoveKind       `json:"kind"`
	Captured  *Piece         `json:"captured"`
	RookMove  *RookMove      `json:"rookMove"`
	EnPassant *Square        `json:"enPassant"`
	Rights    CastlingRights `json:"rights"`
	Halfmove  int            `json:"halfmove"`
	Fullmove  int            `json:"fullmove"`
	Notation  string         `json:"notation"`
}

type CapturedPieces struct {
	White []Piece `json:"white"`
	Black []Piece `json:"black"`
}

// Position is the full game state: the grid plus the metadata needed to
// apply moves and answer the rules queries.
type Position struct {
	Grid            [8][8]*Piece   `json:"board"`
	WhiteKingSquare Square         `json:"whiteKingSquare"`
	BlackKingSquare Square         `json:"blackKingSquare"`
	Captured        CapturedPieces `json:"capturedPieces"`
	Rights          CastlingRights `json:"castlingRights"`
	EnPassantTarget *Square        `json:"enPassantTarget"`
	HalfmoveClock   int            `json:"halfmoveClock"`
	FullmoveNumber  int            `json:"fullmoveNumber"`
	History         []MoveRecord   `json:"-"`
}

// NewPosition returns the standard starting arrangement.
func NewPosition() *Position {
	p := NewEmptyPosition()
	backRank := []PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for col, kind := range backRank {
		p.PlacePiece(kind, Black, Square{Row: 0, Col: col})
		p.PlacePiece(kind, White, Square{Row: 7, Col: col})
	}
	for col := 0; col < 8; col++ {
		p.PlacePiece(Pawn, Black, Square{Row: 1, Col: col})
		p.PlacePiece(Pawn, White, Square{Row: 6, Col: col})
	}
	return p
}

// NewEmptyPosition returns a position with no pieces. Castling rights start
// held on both sides; they only matter once matching kings and rooks are
// placed on their origin squares.
func NewEmptyPosition() *Position {
	return &Position{
		Captured: CapturedPieces{
			White: make([]Piece, 0),
			Black: make([]Piece, 0),
		},
		Rights: CastlingRights{
			White: SideRights{Kingside: true, Queenside: true},
			Black: SideRights{Kingside: true, Queenside: true},
		},
		FullmoveNumber: 1,
		History:        make([]MoveRecord, 0),
	}
}

// PlacePiece puts a fresh piece on the grid, replacing whatever was there.
func (p *Position) PlacePiece(kind PieceType, color Color, sq Square) {
	p.Grid[sq.Row][sq.Col] = &Piece{Type: kind, Color: color, Square: sq}
	if kind == King {
		p.setKingSquare(color, sq)
	}
}

func (p *Position) PieceAt(row, col int) *Piece {
	sq := Square{Row: row, Col: col}
	if !sq.InBounds() {
		return nil
	}
	return p.Grid[row][col]
}

func (p *Position) KingSquare(c Color) Square {
	if c == White {
		return p.WhiteKingSquare
	}
	return p.BlackKingSquare
}

func (p *Position) setKingSquare(c Color, sq Square) {
	if c == White {
		p.WhiteKingSquare = sq
	} else {
		p.BlackKingSquare = sq
	}
}

// kingSquareChecked validates the king cache before handing it out. A miss
// means the one-king-per-color invariant is broken, which is a corrupted
// precondition rather than anything a caller can recover from.
func (p *Position) kingSquareChecked(c Color) Square {
	sq := p.KingSquare(c)
	piece := p.Grid[sq.Row][sq.Col]
	if piece == nil || piece.Type != King || piece.Color != c {
		panic(fmt.Sprintf("board: king square cache for %s broken at %s", c, sq.Notation()))
	}
	return sq
}

// Clone deep-copies the position. Pieces are value-copied so the clone
// shares no mutable state with the original.
func (p *Position) Clone() *Position {
	c := &Position{
		WhiteKingSquare: p.WhiteKingSquare,
		BlackKingSquare: p.BlackKingSquare,
		Rights:          p.Rights,
		HalfmoveClock:   p.HalfmoveClock,
		FullmoveNumber:  p.FullmoveNumber,
	}
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			if piece := p.Grid[row][col]; piece != nil {
				cp := *piece
				c.Grid[row][col] = &cp
			}
		}
	}
	if p.EnPassantTarget != nil {
		ep := *p.EnPassantTarget
		c.EnPassantTarget = &ep
	}
	c.Captured.White = append([]Piece(nil), p.Captured.White...)
	c.Captured.Black = append([]Piece(nil), p.Captured.Black...)
	c.History = append([]MoveRecord(nil), p.History...)
	return c
}

// classifyMove buckets a move into exactly one special-move kind using the
// mover's type, the geometry, and the current en passant target.
func (p *Position) classifyMove(piece *Piece, from, to Square) MoveKind {
	switch piece.Type {
	case Pawn:
		if (piece.Color == White && to.Row == 0) || (piece.Color == Black && to.Row == 7) {
			return MovePromotion
		}
		if abs(from.Col-to.Col) == 1 && p.Grid[to.Row][to.Col] == nil &&
			p.EnPassantTarget != nil && *p.EnPassantTarget == to {
			return MoveEnPassant
		}
	case King:
		switch to.Col - from.Col {
		case 2:
			return MoveCastleKingside
		case -2:
			return MoveCastleQueenside
		}
	}
	return MoveRegular
}

// ApplyMove executes a move and updates every piece of game metadata. It
// does not verify legality beyond requiring a piece at the start square;
// callers gate on LegalMoves first.
func (p *Position) ApplyMove(from, to Square) bool {
	if !from.InBounds() || !to.InBounds() {
		return false
	}
	piece := p.Grid[from.Row][from.Col]
	if piece == nil {
		return false
	}

	kind := p.classifyMove(piece, from, to)
	notation := p.notation(piece, from, to, kind)

	var captured *Piece
	var rookMove *RookMove

	switch kind {
	case MoveEnPassant:
		// The passed pawn sits beside the start square, not on the
		// (empty) destination.
		passed := p.Grid[from.Row][to.Col]
		captured = passed
		p.Grid[from.Row][to.Col] = nil
	case MoveCastleKingside:
		rookMove = p.relocateRook(from.Row, 7, 5)
	case MoveCastleQueenside:
		rookMove = p.relocateRook(from.Row, 0, 3)
	default:
		captured = p.Grid[to.Row][to.Col]
	}

	p.Grid[to.Row][to.Col] = piece
	p.Grid[from.Row][from.Col] = nil
	piece.Square = to
	piece.HasMoved = true

	if kind == MovePromotion {
		// Auto-promote to queen.
		p.Grid[to.Row][to.Col] = &Piece{Type: Queen, Color: piece.Color, Square: to, HasMoved: true}
	}

	if piece.Type == King {
		p.setKingSquare(piece.Color, to)
		p.clearRights(piece.Color)
	}
	if piece.Type == Rook {
		p.clearRookRights(piece.Color, from)
	}
	if captured != nil && captured.Type == Rook {
		p.clearRookRights(captured.Color, captured.Square)
	}

	if captured != nil {
		switch piece.Color {
		case White:
			p.Captured.White = append(p.Captured.White, *captured)
		case Black:
			p.Captured.Black = append(p.Captured.Black, *captured)
		}
	}

	// A fresh two-square pawn advance exposes the skipped square for
	// exactly one ply.
	p.EnPassantTarget = nil
	if piece.Type == Pawn && abs(from.Row-to.Row) == 2 {
		p.EnPassantTarget = &Square{Row: (from.Row + to.Row) / 2, Col: from.Col}
	}

	if piece.Type == Pawn || captured != nil {
		p.HalfmoveClock = 0
	} else {
		p.HalfmoveClock++
	}
	if piece.Color == Black {
		p.FullmoveNumber++
	}

	var epCopy *Square
	if p.EnPassantTarget != nil {
		ep := *p.EnPassantTarget
		epCopy = &ep
	}
	p.History = append(p.History, MoveRecord{
		Piece:     piece.Type,
		Color:     piece.Color,
		From:      from,
		To:        to,
		Kind:      kind,
		Captured:  captured,
		RookMove:  rookMove,
		EnPassant: epCopy,
		Rights:    p.Rights,
		Halfmove:  p.HalfmoveClock,
		Fullmove:  p.FullmoveNumber,
		Notation:  notation,
	})

	return true
}

func (p *Position) relocateRook(row, fromCol, toCol int) *RookMove {
	rook := p.Grid[row][fromCol]
	if rook == nil {
		return nil
	}
	p.Grid[row][fromCol] = nil
	p.Grid[row][toCol] = rook
	rook.Square = Square{Row: row, Col: toCol}
	rook.HasMoved = true
	return &RookMove{
		From: Square{Row: row, Col: fromCol},
		To:   Square{Row: row, Col: toCol},
	}
}

func (p *Position) clearRights(c Color) {
	if c == White {
		p.Rights.White = SideRights{}
	} else {
		p.Rights.Black = SideRights{}
	}
}

// clearRookRights drops the castling right tied to a rook's origin square
// when that rook moves off it or is captured on it.
func (p *Position) clearRookRights(c Color, sq Square) {
	homeRow := 0
	if c == White {
		homeRow = 7
	}
	if sq.Row != homeRow {
		return
	}
	rights := &p.Rights.Black
	if c == White {
		rights = &p.Rights.White
	}
	switch sq.Col {
	case 0:
		rights.Queenside = false
	case 7:
		rights.Kingside = false
	}
}

func (p *Position) notation(piece *Piece, from, to Square, kind MoveKind) string {
	switch kind {
	case MoveCastleKingside:
		return "O-O"
	case MoveCastleQueenside:
		return "O-O-O"
	}
	capture := ""
	if p.Grid[to.Row][to.Col] != nil || kind == MoveEnPassant {
		capture = "x"
	}
	fileSpecifier := ""
	if piece.Type == Pawn && from.Col != to.Col {
		fileSpecifier = from.FileNotation()
	}
	suffix := ""
	if kind == MovePromotion {
		suffix = "=Q"
	}
	return fmt.Sprintf("%s%s%s%s%s", piece.Type.Notation(), fileSpecifier, capture, to.Notation(), suffix)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
