package board

// LegalMoves filters the pseudo-legal candidates for the piece at sq by
// simulating each one on a clone and discarding any that leave the mover's
// own king in check. This simulate-and-discard step dominates the cost of
// the whole system.
func (p *Position) LegalMoves(sq Square) []Square {
	if !sq.InBounds() {
		return nil
	}
	piece := p.Grid[sq.Row][sq.Col]
	if piece == nil {
		return nil
	}

	legal := []Square{}
	for _, candidate := range p.PseudoLegalMoves(sq) {
		clone := p.Clone()
		clone.ApplyMove(sq, candidate)
		if !clone.IsInCheck(piece.Color) {
			legal = append(legal, candidate)
		}
	}
	return legal
}

// HasAnyLegalMove reports whether any piece of the given color can move.
func (p *Position) HasAnyLegalMove(c Color) bool {
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			piece := p.Grid[row][col]
			if piece != nil && piece.Color == c && len(p.LegalMoves(piece.Square)) > 0 {
				return true
			}
		}
	}
	return false
}

func (p *Position) IsCheckmate(c Color) bool {
	return p.IsInCheck(c) && !p.HasAnyLegalMove(c)
}

func (p *Position) IsStalemate(c Color) bool {
	return !p.IsInCheck(c) && !p.HasAnyLegalMove(c)
}
