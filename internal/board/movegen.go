package board

var (
	orthogonalDirs = []Square{{Row: -1, Col: 0}, {Row: 1, Col: 0}, {Row: 0, Col: -1}, {Row: 0, Col: 1}}
	diagonalDirs   = []Square{{Row: -1, Col: -1}, {Row: -1, Col: 1}, {Row: 1, Col: -1}, {Row: 1, Col: 1}}
	knightOffsets  = []Square{
		{Row: -2, Col: -1}, {Row: -2, Col: 1}, {Row: -1, Col: -2}, {Row: -1, Col: 2},
		{Row: 1, Col: -2}, {Row: 1, Col: 2}, {Row: 2, Col: -1}, {Row: 2, Col: 1},
	}
	kingOffsets = []Square{
		{Row: -1, Col: -1}, {Row: -1, Col: 0}, {Row: -1, Col: 1}, {Row: 0, Col: -1},
		{Row: 0, Col: 1}, {Row: 1, Col: -1}, {Row: 1, Col: 0}, {Row: 1, Col: 1},
	}
)

// PseudoLegalMoves generates destinations satisfying the piece's movement
// geometry and occupancy rules, without checking whether the mover's own
// king ends up in check.
func (p *Position) PseudoLegalMoves(sq Square) []Square {
	if !sq.InBounds() {
		return nil
	}
	piece := p.Grid[sq.Row][sq.Col]
	if piece == nil {
		return nil
	}
	switch piece.Type {
	case Pawn:
		return p.pawnMoves(piece)
	case Knight:
		return p.offsetMoves(piece, knightOffsets)
	case Bishop:
		return p.rayMoves(piece, diagonalDirs)
	case Rook:
		return p.rayMoves(piece, orthogonalDirs)
	case Queen:
		return append(p.rayMoves(piece, orthogonalDirs), p.rayMoves(piece, diagonalDirs)...)
	case King:
		return p.kingMoves(piece)
	}
	return nil
}

func (p *Position) pawnMoves(piece *Piece) []Square {
	moves := []Square{}
	dir := -1
	if piece.Color == Black {
		dir = 1
	}

	forward := Square{Row: piece.Square.Row + dir, Col: piece.Square.Col}
	if forward.InBounds() && p.Grid[forward.Row][forward.Col] == nil {
		moves = append(moves, forward)
		double := Square{Row: piece.Square.Row + 2*dir, Col: piece.Square.Col}
		if !piece.HasMoved && double.InBounds() && p.Grid[double.Row][double.Col] == nil {
			moves = append(moves, double)
		}
	}

	for _, dc := range []int{-1, 1} {
		target := Square{Row: piece.Square.Row + dir, Col: piece.Square.Col + dc}
		if !target.InBounds() {
			continue
		}
		occupant := p.Grid[target.Row][target.Col]
		if occupant != nil && occupant.Color != piece.Color {
			moves = append(moves, target)
		} else if p.EnPassantTarget != nil && *p.EnPassantTarget == target {
			moves = append(moves, target)
		}
	}
	return moves
}

func (p *Position) offsetMoves(piece *Piece, offsets []Square) []Square {
	moves := []Square{}
	for _, off := range offsets {
		target := Square{Row: piece.Square.Row + off.Row, Col: piece.Square.Col + off.Col}
		if !target.InBounds() {
			continue
		}
		occupant := p.Grid[target.Row][target.Col]
		if occupant == nil || occupant.Color != piece.Color {
			moves = append(moves, target)
		}
	}
	return moves
}

func (p *Position) rayMoves(piece *Piece, dirs []Square) []Square {
	moves := []Square{}
	for _, dir := range dirs {
		target := Square{Row: piece.Square.Row + dir.Row, Col: piece.Square.Col + dir.Col}
		for target.InBounds() {
			occupant := p.Grid[target.Row][target.Col]
			if occupant == nil {
				moves = append(moves, target)
			} else {
				if occupant.Color != piece.Color {
					moves = append(moves, target)
				}
				break
			}
			target = Square{Row: target.Row + dir.Row, Col: target.Col + dir.Col}
		}
	}
	return moves
}

func (p *Position) kingMoves(piece *Piece) []Square {
	moves := p.offsetMoves(piece, kingOffsets)

	// Castling candidates: the king is on its original square unmoved, not
	// currently in check, the right is still held, the corridor to the
	// rook is empty, and the squares the king crosses are not attacked.
	if piece.HasMoved || p.IsInCheck(piece.Color) {
		return moves
	}
	rights := p.Rights.side(piece.Color)
	row := piece.Square.Row
	col := piece.Square.Col

	if rights.Kingside && p.isOriginalRook(row, 7, piece.Color) {
		if p.corridorEmpty(row, col+1, 6) && p.transitSafe(piece.Color, row, col+1, col+2) {
			moves = append(moves, Square{Row: row, Col: col + 2})
		}
	}
	if rights.Queenside && p.isOriginalRook(row, 0, piece.Color) {
		if p.corridorEmpty(row, 1, col-1) && p.transitSafe(piece.Color, row, col-2, col-1) {
			moves = append(moves, Square{Row: row, Col: col - 2})
		}
	}
	return moves
}

func (p *Position) isOriginalRook(row, col int, c Color) bool {
	rook := p.Grid[row][col]
	return rook != nil && rook.Type == Rook && rook.Color == c && !rook.HasMoved
}

func (p *Position) corridorEmpty(row, fromCol, toCol int) bool {
	for col := fromCol; col <= toCol; col++ {
		if p.Grid[row][col] != nil {
			return false
		}
	}
	return true
}

func (p *Position) transitSafe(c Color, row, fromCol, toCol int) bool {
	for col := fromCol; col <= toCol; col++ {
		if p.IsSquareAttacked(Square{Row: row, Col: col}, c) {
			return false
		}
	}
	return true
}
