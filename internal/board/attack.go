package board

// IsSquareAttacked reports whether any piece of the opposing color
// geometrically threatens sq. It works from raw attack patterns rather
// than legal-move generation, so it can be called from check detection
// without recursing.
func (p *Position) IsSquareAttacked(sq Square, defender Color) bool {
	attacker := defender.Opponent()

	for _, dir := range orthogonalDirs {
		if p.rayHits(sq, dir, attacker, Rook) {
			return true
		}
	}
	for _, dir := range diagonalDirs {
		if p.rayHits(sq, dir, attacker, Bishop) {
			return true
		}
	}
	for _, off := range knightOffsets {
		if p.offsetHits(sq, off, attacker, Knight) {
			return true
		}
	}
	for _, off := range kingOffsets {
		if p.offsetHits(sq, off, attacker, King) {
			return true
		}
	}

	// Pawns attack diagonally toward the defender's side.
	pawnRow := sq.Row + 1
	if attacker == Black {
		pawnRow = sq.Row - 1
	}
	for _, dc := range []int{-1, 1} {
		from := Square{Row: pawnRow, Col: sq.Col + dc}
		if !from.InBounds() {
			continue
		}
		piece := p.Grid[from.Row][from.Col]
		if piece != nil && piece.Color == attacker && piece.Type == Pawn {
			return true
		}
	}
	return false
}

// rayHits walks one sliding direction from sq and reports whether the
// first occupied square holds an attacker queen or the given slider kind.
func (p *Position) rayHits(sq, dir Square, attacker Color, slider PieceType) bool {
	target := Square{Row: sq.Row + dir.Row, Col: sq.Col + dir.Col}
	for target.InBounds() {
		piece := p.Grid[target.Row][target.Col]
		if piece != nil {
			return piece.Color == attacker && (piece.Type == Queen || piece.Type == slider)
		}
		target = Square{Row: target.Row + dir.Row, Col: target.Col + dir.Col}
	}
	return false
}

func (p *Position) offsetHits(sq, off Square, attacker Color, kind PieceType) bool {
	from := Square{Row: sq.Row + off.Row, Col: sq.Col + off.Col}
	if !from.InBounds() {
		return false
	}
	piece := p.Grid[from.Row][from.Col]
	return piece != nil && piece.Color == attacker && piece.Type == kind
}

// IsInCheck reports whether the given color's king is attacked.
func (p *Position) IsInCheck(c Color) bool {
	return p.IsSquareAttacked(p.kingSquareChecked(c), c)
}
