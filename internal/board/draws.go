package board

// IsDrawByInsufficientMaterial reports the dead-material draws: bare
// kings, king plus a single minor piece, or two bishops standing on
// same-colored squares beside bare kings. Everything else is treated as
// sufficient.
func (p *Position) IsDrawByInsufficientMaterial() bool {
	var pieces []*Piece
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			piece := p.Grid[row][col]
			if piece != nil && piece.Type != King {
				pieces = append(pieces, piece)
			}
		}
	}

	switch len(pieces) {
	case 0:
		return true
	case 1:
		return pieces[0].Type == Bishop || pieces[0].Type == Knight
	case 2:
		if pieces[0].Type == Bishop && pieces[1].Type == Bishop {
			parity0 := (pieces[0].Square.Row + pieces[0].Square.Col) % 2
			parity1 := (pieces[1].Square.Row + pieces[1].Square.Col) % 2
			return parity0 == parity1
		}
	}
	return false
}

// IsDrawByFiftyMoveRule reports fifty full moves without a pawn move or
// capture.
func (p *Position) IsDrawByFiftyMoveRule() bool {
	return p.HalfmoveClock >= 100
}

// IsDrawByRepetitionHeuristic detects an exact four-ply back-and-forth
// pattern in the last eight moves. This is a deliberate approximation of
// threefold repetition, not the full rule.
func (p *Position) IsDrawByRepetitionHeuristic() bool {
	if len(p.History) < 8 {
		return false
	}
	recent := p.History[len(p.History)-8:]
	for i := 0; i < 4; i++ {
		if recent[i].From != recent[i+4].From || recent[i].To != recent[i+4].To {
			return false
		}
	}
	return true
}
