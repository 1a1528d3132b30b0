package engine

import "github.com/RovarQRoom/gochess/internal/board"

// Scores are always expressed from the searching engine's perspective.
const (
	mateScore = 100000
)

// evaluate scores a position: terminal outcomes first, then material plus
// phase-selected positional tables, then king safety, pawn structure and
// mobility differentials.
func (e *Engine) evaluate(pos *board.Position) int {
	opponent := e.color.Opponent()

	if pos.IsCheckmate(opponent) {
		return mateScore
	}
	if pos.IsCheckmate(e.color) {
		return -mateScore
	}
	if pos.IsStalemate(board.White) || pos.IsStalemate(board.Black) {
		return 0
	}

	phase := determinePhase(pos)
	score := 0
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			piece := pos.Grid[row][col]
			if piece == nil {
				continue
			}
			pieceScore := pieceValue(piece.Type) + positionalValue(piece, phase)
			if piece.Color == e.color {
				score += pieceScore
			} else {
				score -= pieceScore
			}
		}
	}

	score += kingSafety(pos, e.color) - kingSafety(pos, opponent)
	score += pawnStructure(pos, e.color) - pawnStructure(pos, opponent)
	score += mobility(pos, e.color) - mobility(pos, opponent)

	return score
}

// determinePhase classifies the position by total non-king material and
// queen presence.
func determinePhase(pos *board.Position) gamePhase {
	total := 0
	queensPresent := false
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			piece := pos.Grid[row][col]
			if piece == nil || piece.Type == board.King {
				continue
			}
			total += pieceValue(piece.Type)
			if piece.Type == board.Queen {
				queensPresent = true
			}
		}
	}
	switch {
	case total > 5000 && queensPresent:
		return phaseEarly
	case total < 3000:
		return phaseLate
	default:
		return phaseMid
	}
}

func kingSafety(pos *board.Position, c board.Color) int {
	score := 0
	king := pos.KingSquare(c)

	if pos.IsInCheck(c) {
		score -= 150
	}

	attacked := 0
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			sq := board.Square{Row: king.Row + dr, Col: king.Col + dc}
			if sq.InBounds() && pos.IsSquareAttacked(sq, c) {
				attacked++
			}
		}
	}
	score -= attacked * 20

	homeRow := 0
	if c == board.White {
		homeRow = 7
	}
	if king.Row == homeRow && (king.Col == 6 || king.Col == 2) {
		score += 100
	}

	// Pawn shield directly in front of the king.
	dir := 1
	if c == board.White {
		dir = -1
	}
	for dc := -1; dc <= 1; dc++ {
		sq := board.Square{Row: king.Row + dir, Col: king.Col + dc}
		if !sq.InBounds() {
			continue
		}
		piece := pos.Grid[sq.Row][sq.Col]
		if piece != nil && piece.Type == board.Pawn && piece.Color == c {
			score += 30
		}
	}

	return score
}

func pawnStructure(pos *board.Position, c board.Color) int {
	score := 0
	var pawns []board.Square
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			piece := pos.Grid[row][col]
			if piece != nil && piece.Type == board.Pawn && piece.Color == c {
				pawns = append(pawns, piece.Square)
			}
		}
	}

	var fileCounts [8]int
	for _, sq := range pawns {
		fileCounts[sq.Col]++
	}
	for col := 0; col < 8; col++ {
		if fileCounts[col] > 1 {
			score -= 20 * (fileCounts[col] - 1)
		}
	}

	for _, sq := range pawns {
		isolated := true
		for _, adj := range []int{sq.Col - 1, sq.Col + 1} {
			if adj >= 0 && adj < 8 && fileCounts[adj] > 0 {
				isolated = false
				break
			}
		}
		if isolated {
			score -= 15
		}
	}

	dir := 1
	homeRow := 0
	if c == board.White {
		dir = -1
		homeRow = 7
	}
	opponent := c.Opponent()
	for _, sq := range pawns {
		passed := true
	ahead:
		for r := sq.Row + dir; r > 0 && r < 7; r += dir {
			for _, col := range []int{sq.Col - 1, sq.Col, sq.Col + 1} {
				if col < 0 || col >= 8 {
					continue
				}
				piece := pos.Grid[r][col]
				if piece != nil && piece.Type == board.Pawn && piece.Color == opponent {
					passed = false
					break ahead
				}
			}
		}
		if passed {
			advancement := abs(sq.Row - homeRow)
			score += 20 + advancement*10
		}
	}

	// Pawn chains: a pawn protected by another pawn.
	for _, sq := range pawns {
		protectorRow := sq.Row - dir
		for _, col := range []int{sq.Col - 1, sq.Col + 1} {
			protector := board.Square{Row: protectorRow, Col: col}
			if !protector.InBounds() {
				continue
			}
			piece := pos.Grid[protector.Row][protector.Col]
			if piece != nil && piece.Type == board.Pawn && piece.Color == c {
				score += 10
			}
		}
	}

	return score
}

func mobility(pos *board.Position, c board.Color) int {
	score := 0
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			piece := pos.Grid[row][col]
			if piece == nil || piece.Color != c {
				continue
			}
			moves := len(pos.LegalMoves(piece.Square))
			score += moves * 5
			if piece.Type == board.Knight || piece.Type == board.Bishop {
				score += moves * 2
			}
		}
	}
	return score
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
